package section

import (
	"fmt"
	"strconv"

	"github.com/clarityrt/trajlog/endian"
	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/format"
)

// Header is the native trajectory-log header: signature, version,
// sampling interval, per-axis metadata, sub-beam/snapshot counts, the MLC
// model tag, and the embedded textual MetaData block.
type Header struct {
	Version            float64
	SamplingIntervalMs int32
	AxesSampled        []format.AxisKind
	SamplesPerAxis     []int32
	AxisScale          format.Scale
	NumberOfSubBeams   int32
	IsTruncated        bool
	NumberOfSnapshots  int32
	MlcModel           format.MlcModel
	Meta               MetaData
}

// Validate checks the header-count invariants: axis-count
// array consistency and the three validated ranges.
func (h Header) Validate() error {
	if len(h.AxesSampled) != len(h.SamplesPerAxis) {
		return fmt.Errorf("%w: AxesSampled/SamplesPerAxis length mismatch", errs.ErrInvalidOperation)
	}

	if len(h.AxesSampled) < 0 || len(h.AxesSampled) > MaxAxesSampled {
		return fmt.Errorf("%w: NumAxesSampled out of range", errs.ErrInvalidHeader)
	}

	if h.NumberOfSnapshots < 0 || h.NumberOfSnapshots > MaxSnapshots {
		return fmt.Errorf("%w: NumberOfSnapshots out of range", errs.ErrInvalidHeader)
	}

	if h.NumberOfSubBeams < 0 || h.NumberOfSubBeams > MaxSubBeams {
		return fmt.Errorf("%w: NumberOfSubBeams out of range", errs.ErrInvalidHeader)
	}

	return nil
}

// EncodedSize returns the total byte size of the native header section,
// i.e. the fixed layout through the 1024-byte boundary. The pad is
// 1024 - (64 + NumAxes*8) - 745; when the per-axis arrays are large enough
// that this would go negative, the header simply extends past 1024 (no
// padding is written) rather than truncating axis data.
func (h Header) EncodedSize() int {
	return NativeHeaderSizeForAxes(len(h.AxesSampled))
}

// NativeHeaderSizeForAxes computes the native header's on-disk size given
// only the axis count, before a full Header is available — used by the
// streaming reader to know how many bytes to read before it can call
// ParseHeader.
func NativeHeaderSizeForAxes(numAxes int) int {
	body := NativeFixedPrefixSize + numAxes*8 + NativeFixedSuffixSize + MetadataBlockSize
	if body >= NativeHeaderSize {
		return body
	}

	return NativeHeaderSize
}

// PeekNumAxesSampled reads NumAxesSampled out of the fixed prefix without
// requiring the rest of the header to be present, so a streaming reader can
// size its next read.
func PeekNumAxesSampled(prefix []byte) (int32, error) {
	if len(prefix) < NativeFixedPrefixSize {
		return 0, errs.ErrUnexpectedEOF
	}

	engine := endian.GetLittleEndianEngine()
	numAxes := int32(engine.Uint32(prefix[32+4+4:]))

	if numAxes < 0 || numAxes > MaxAxesSampled {
		return 0, fmt.Errorf("%w: NumAxesSampled=%d", errs.ErrInvalidHeader, numAxes)
	}

	return numAxes, nil
}

// Bytes serializes the header to its native binary layout.
func (h Header) Bytes() ([]byte, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}

	engine := endian.GetLittleEndianEngine()
	size := h.EncodedSize()
	buf := make([]byte, size)

	off := 0
	copy(buf[off:off+16], NativeSignature[:])
	off += 16

	versionStr := strconv.FormatFloat(h.Version, 'f', -1, 64)
	copy(buf[off:off+16], versionStr)
	off += 16

	engine.PutUint32(buf[off:], uint32(NativeHeaderSize))
	off += 4
	engine.PutUint32(buf[off:], uint32(h.SamplingIntervalMs))
	off += 4
	engine.PutUint32(buf[off:], uint32(len(h.AxesSampled)))
	off += 4

	for _, a := range h.AxesSampled {
		engine.PutUint32(buf[off:], uint32(a))
		off += 4
	}
	for _, s := range h.SamplesPerAxis {
		engine.PutUint32(buf[off:], uint32(s))
		off += 4
	}

	engine.PutUint32(buf[off:], uint32(h.AxisScale))
	off += 4
	engine.PutUint32(buf[off:], uint32(h.NumberOfSubBeams))
	off += 4
	if h.IsTruncated {
		engine.PutUint32(buf[off:], 1)
	} else {
		engine.PutUint32(buf[off:], 0)
	}
	off += 4
	engine.PutUint32(buf[off:], uint32(h.NumberOfSnapshots))
	off += 4
	engine.PutUint32(buf[off:], uint32(h.MlcModel))
	off += 4

	metaBytes := h.Meta.Encode()
	if len(metaBytes) > MetadataBlockSize {
		metaBytes = metaBytes[:MetadataBlockSize]
	}
	copy(buf[off:off+MetadataBlockSize], metaBytes)
	// Remainder of buf (padding, if any) is already zero from make().

	return buf, nil
}

// ParseHeader decodes a native header from data, which must contain at
// least the fixed prefix needed to learn NumAxesSampled.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < NativeFixedPrefixSize {
		return Header{}, errs.ErrUnexpectedEOF
	}

	engine := endian.GetLittleEndianEngine()

	var sig [16]byte
	copy(sig[:], data[0:16])
	if sig[0] != 'V' || sig[1] != 'O' || sig[2] != 'S' || sig[3] != 'T' || sig[4] != 'L' {
		return Header{}, errs.ErrInvalidSignature
	}

	versionRaw := trimCString(data[16:32])
	version, err := strconv.ParseFloat(versionRaw, 64)
	if err != nil {
		return Header{}, fmt.Errorf("%w: %q", errs.ErrInvalidVersion, versionRaw)
	}

	off := 32
	_ = engine.Uint32(data[off:]) // declared header-size, informational only
	off += 4
	samplingIntervalMs := int32(engine.Uint32(data[off:]))
	off += 4
	numAxes := int32(engine.Uint32(data[off:]))
	off += 4

	if numAxes < 0 || numAxes > MaxAxesSampled {
		return Header{}, fmt.Errorf("%w: NumAxesSampled=%d", errs.ErrInvalidHeader, numAxes)
	}

	need := off + int(numAxes)*8 + NativeFixedSuffixSize + MetadataBlockSize
	if len(data) < need {
		return Header{}, errs.ErrUnexpectedEOF
	}

	axes := make([]format.AxisKind, numAxes)
	for i := range axes {
		axes[i] = format.AxisKind(int32(engine.Uint32(data[off:])))
		off += 4
	}

	samplesPerAxis := make([]int32, numAxes)
	for i := range samplesPerAxis {
		samplesPerAxis[i] = int32(engine.Uint32(data[off:]))
		off += 4
	}

	axisScale := format.Scale(int32(engine.Uint32(data[off:])))
	off += 4
	numSubBeams := int32(engine.Uint32(data[off:]))
	off += 4
	isTruncated := engine.Uint32(data[off:]) != 0
	off += 4
	numSnapshots := int32(engine.Uint32(data[off:]))
	off += 4
	mlcModel := format.MlcModel(int32(engine.Uint32(data[off:])))
	off += 4

	if numSnapshots < 0 || numSnapshots > MaxSnapshots {
		return Header{}, fmt.Errorf("%w: NumberOfSnapshots=%d", errs.ErrInvalidHeader, numSnapshots)
	}
	if numSubBeams < 0 || numSubBeams > MaxSubBeams {
		return Header{}, fmt.Errorf("%w: NumberOfSubBeams=%d", errs.ErrInvalidHeader, numSubBeams)
	}

	meta := DecodeMetaData(data[off : off+MetadataBlockSize])

	return Header{
		Version:            version,
		SamplingIntervalMs: samplingIntervalMs,
		AxesSampled:        axes,
		SamplesPerAxis:     samplesPerAxis,
		AxisScale:          axisScale,
		NumberOfSubBeams:   numSubBeams,
		IsTruncated:        isTruncated,
		NumberOfSnapshots:  numSnapshots,
		MlcModel:           mlcModel,
		Meta:               meta,
	}, nil
}

func trimCString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}

	return string(b)
}
