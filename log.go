package trajlog

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/clarityrt/trajlog/codec/compressed"
	"github.com/clarityrt/trajlog/codec/native"
	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/internal/hash"
	"github.com/clarityrt/trajlog/section"
	"github.com/clarityrt/trajlog/timeseries"
)

// TrajectoryLog is the in-memory form of one trajectory log: the header, its
// sub-beams ordered by sequence number, and the axis arena wrapped in a
// timeseries.Store. The log exclusively owns the axis buffers and the
// sub-beam list; snapshot and column views borrow it. It is
// immutable after load except for metadata anonymization and edit-then-save.
type TrajectoryLog struct {
	Header   section.Header
	SubBeams []SubBeam
	Store    *timeseries.Store

	axes   []timeseries.AxisData
	ranges []subBeamRange
}

// New assembles a log from its parts, validating the header counts against
// the arrays and ordering sub-beams by sequence number.
func New(header section.Header, subBeams []section.SubBeamRecord, axes []timeseries.AxisData) (*TrajectoryLog, error) {
	if err := header.Validate(); err != nil {
		return nil, err
	}

	if len(subBeams) != int(header.NumberOfSubBeams) {
		return nil, fmt.Errorf("%w: %d sub-beam records, header declares %d",
			errs.ErrInvalidOperation, len(subBeams), header.NumberOfSubBeams)
	}

	store, err := timeseries.NewStore(header.SamplingIntervalMs, header.AxisScale, header.MlcModel,
		int(header.NumberOfSnapshots), axes)
	if err != nil {
		return nil, err
	}

	beams := make([]SubBeam, len(subBeams))
	for i, rec := range subBeams {
		beams[i] = SubBeam{
			ControlPoint:   rec.ControlPoint,
			MU:             rec.MU,
			RadTime:        rec.RadTime,
			SequenceNumber: rec.SequenceNumber,
			Name:           rec.Name,
		}
	}

	sort.SliceStable(beams, func(a, b int) bool {
		return beams[a].SequenceNumber < beams[b].SequenceNumber
	})

	return &TrajectoryLog{
		Header:   header,
		SubBeams: beams,
		Store:    store,
		axes:     axes,
	}, nil
}

// Axes returns the log's axis buffers in header order.
func (l *TrajectoryLog) Axes() []timeseries.AxisData { return l.axes }

// NumSnapshots returns the snapshot count.
func (l *TrajectoryLog) NumSnapshots() int { return int(l.Header.NumberOfSnapshots) }

// FromNative wraps a parsed native file.
func FromNative(f *native.File) (*TrajectoryLog, error) {
	if f == nil {
		return nil, errs.ErrInvalidArgument
	}

	return New(f.Header, f.SubBeams, f.Axes)
}

// ToNative converts the log back to a writable native file.
func (l *TrajectoryLog) ToNative() *native.File {
	return &native.File{
		Header:   l.Header,
		SubBeams: l.subBeamRecords(),
		Axes:     l.axes,
	}
}

// FromCompressed wraps a parsed compressed file, carrying the original log
// version forward into the native header.
func FromCompressed(f *compressed.File) (*TrajectoryLog, error) {
	if f == nil {
		return nil, errs.ErrInvalidArgument
	}

	header := section.Header{
		Version:            f.Header.OriginalLogVersion,
		SamplingIntervalMs: f.Header.SamplingIntervalMs,
		AxesSampled:        f.Header.AxesSampled,
		SamplesPerAxis:     f.Header.SamplesPerAxis,
		AxisScale:          f.Header.AxisScale,
		NumberOfSubBeams:   f.Header.NumberOfSubBeams,
		IsTruncated:        f.Header.IsTruncated,
		NumberOfSnapshots:  f.Header.NumberOfSnapshots,
		MlcModel:           f.Header.MlcModel,
		Meta:               f.Header.Meta,
	}

	return New(header, f.SubBeams, f.Axes)
}

// ToCompressed converts the log to a compressed file ready for Marshal.
func (l *TrajectoryLog) ToCompressed() *compressed.File {
	return &compressed.File{
		Header: section.CompressedHeader{
			OriginalLogVersion: l.Header.Version,
			SamplingIntervalMs: l.Header.SamplingIntervalMs,
			AxesSampled:        l.Header.AxesSampled,
			SamplesPerAxis:     l.Header.SamplesPerAxis,
			AxisScale:          l.Header.AxisScale,
			NumberOfSubBeams:   l.Header.NumberOfSubBeams,
			IsTruncated:        l.Header.IsTruncated,
			NumberOfSnapshots:  l.Header.NumberOfSnapshots,
			MlcModel:           l.Header.MlcModel,
			Meta:               l.Header.Meta,
		},
		SubBeams: l.subBeamRecords(),
		Axes:     l.axes,
	}
}

func (l *TrajectoryLog) subBeamRecords() []section.SubBeamRecord {
	recs := make([]section.SubBeamRecord, len(l.SubBeams))
	for i, sb := range l.SubBeams {
		recs[i] = section.SubBeamRecord{
			ControlPoint:   sb.ControlPoint,
			MU:             sb.MU,
			RadTime:        sb.RadTime,
			SequenceNumber: sb.SequenceNumber,
			Name:           sb.Name,
		}
	}

	return recs
}

// Open reads path as either a native or a compressed trajectory log,
// dispatching on the file's leading bytes: a gzip wrapper or the VOSTLC
// signature selects the compressed codec, VOSTL the native one.
func Open(path string) (*TrajectoryLog, error) {
	if path == "" {
		return nil, errs.ErrInvalidArgument
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", errs.ErrNotFound, path)
		}

		return nil, err
	}

	return Decode(raw)
}

// Decode parses raw as either codec's byte stream.
func Decode(raw []byte) (*TrajectoryLog, error) {
	switch {
	case len(raw) >= 2 && raw[0] == 0x1f && raw[1] == 0x8b:
		fallthrough
	case bytes.HasPrefix(raw, section.CompressedSignature[:6]):
		f, err := compressed.Parse(raw)
		if err != nil {
			return nil, err
		}

		return FromCompressed(f)
	default:
		f, err := native.ReadFrom(bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}

		return FromNative(f)
	}
}

// Save writes the log to path in the native format.
func (l *TrajectoryLog) Save(path string) error {
	return native.Write(path, l.ToNative())
}

// SaveCompressed writes the log to path in the compressed format.
func (l *TrajectoryLog) SaveCompressed(path string, opts ...compressed.WriteOption) error {
	return compressed.Write(path, l.ToCompressed(), opts...)
}

// Checksum returns a content fingerprint of the log's canonical native byte
// representation, for round-trip integrity checks.
func (l *TrajectoryLog) Checksum() (uint64, error) {
	var buf bytes.Buffer
	if err := native.WriteTo(&buf, l.ToNative()); err != nil {
		return 0, err
	}

	return hash.Checksum(buf.Bytes()), nil
}
