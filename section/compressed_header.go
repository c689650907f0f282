package section

import (
	"fmt"
	"math"

	"github.com/clarityrt/trajlog/endian"
	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/format"
)

// CompressedVersion discriminates the two compressed-codec wire
// formats: v1.0 uses one fixed scale for every stream and carries no
// scale table; v2.0 writes a dynamic per-stream scale table.
type CompressedVersion int

const (
	CompressedV1 CompressedVersion = 1
	CompressedV2 CompressedVersion = 2
)

func (v CompressedVersion) String() string {
	switch v {
	case CompressedV1:
		return "1.0"
	case CompressedV2:
		return "2.0"
	default:
		return "unknown"
	}
}

// CompressedHeader mirrors Header's axis/sub-beam metadata for the
// compressed codec: same fields as the native header minus the
// 1024-byte fixed padding, plus the original log's version and the
// compressed-format version discriminator.
type CompressedHeader struct {
	FormatVersion      CompressedVersion
	OriginalLogVersion float64
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

// StreamCount returns K = sum(samplesPerSnapshot across all axes), the
// number of independently-scaled streams in the v2 scale table.
func (h CompressedHeader) StreamCount() int {
	k := 0
	for _, s := range h.SamplesPerAxis {
		k += int(s)
	}

	return k
}

// Bytes serializes the compressed header (signature through MetaData,
// without padding).
func (h CompressedHeader) Bytes() ([]byte, error) {
	if len(h.AxesSampled) != len(h.SamplesPerAxis) {
		return nil, fmt.Errorf("%w: AxesSampled/SamplesPerAxis length mismatch", errs.ErrInvalidOperation)
	}

	engine := endian.GetLittleEndianEngine()
	buf := make([]byte, 0, 16+16+8+4+4+len(h.AxesSampled)*8+NativeFixedSuffixSize+MetadataBlockSize)

	buf = append(buf, CompressedSignature[:]...)

	var versionStr [16]byte
	copy(versionStr[:], h.FormatVersion.String())
	buf = append(buf, versionStr[:]...)

	buf = engine.AppendUint64(buf, doubleBits(h.OriginalLogVersion))
	buf = engine.AppendUint32(buf, uint32(h.SamplingIntervalMs))
	buf = engine.AppendUint32(buf, uint32(len(h.AxesSampled)))

	for _, a := range h.AxesSampled {
		buf = engine.AppendUint32(buf, uint32(a))
	}
	for _, s := range h.SamplesPerAxis {
		buf = engine.AppendUint32(buf, uint32(s))
	}

	buf = engine.AppendUint32(buf, uint32(h.AxisScale))
	buf = engine.AppendUint32(buf, uint32(h.NumberOfSubBeams))
	if h.IsTruncated {
		buf = engine.AppendUint32(buf, 1)
	} else {
		buf = engine.AppendUint32(buf, 0)
	}
	buf = engine.AppendUint32(buf, uint32(h.NumberOfSnapshots))
	buf = engine.AppendUint32(buf, uint32(h.MlcModel))

	metaBytes := h.Meta.Encode()
	padded := make([]byte, MetadataBlockSize)
	copy(padded, metaBytes)
	buf = append(buf, padded...)

	return buf, nil
}

// ParseCompressedHeader decodes a CompressedHeader from the start of data
// (the byte slice following signature validation by the caller).
func ParseCompressedHeader(data []byte) (CompressedHeader, int, error) {
	if len(data) < 16+8+4+4 {
		return CompressedHeader{}, 0, errs.ErrUnexpectedEOF
	}

	engine := endian.GetLittleEndianEngine()

	versionStr := trimCString(data[0:16])
	var fv CompressedVersion
	switch versionStr {
	case "1.0":
		fv = CompressedV1
	case "2.0":
		fv = CompressedV2
	default:
		return CompressedHeader{}, 0, fmt.Errorf("%w: compressed format version %q", errs.ErrInvalidVersion, versionStr)
	}

	off := 16
	originalVersion := bitsToDouble(engine.Uint64(data[off:]))
	off += 8
	samplingIntervalMs := int32(engine.Uint32(data[off:]))
	off += 4
	numAxes := int32(engine.Uint32(data[off:]))
	off += 4

	if numAxes < 0 || numAxes > MaxAxesSampled {
		return CompressedHeader{}, 0, fmt.Errorf("%w: NumAxesSampled=%d", errs.ErrInvalidHeader, numAxes)
	}

	need := off + int(numAxes)*8 + NativeFixedSuffixSize + MetadataBlockSize
	if len(data) < need {
		return CompressedHeader{}, 0, errs.ErrUnexpectedEOF
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
		return CompressedHeader{}, 0, fmt.Errorf("%w: NumberOfSnapshots=%d", errs.ErrInvalidHeader, numSnapshots)
	}
	if numSubBeams < 0 || numSubBeams > MaxSubBeams {
		return CompressedHeader{}, 0, fmt.Errorf("%w: NumberOfSubBeams=%d", errs.ErrInvalidHeader, numSubBeams)
	}

	meta := DecodeMetaData(data[off : off+MetadataBlockSize])
	off += MetadataBlockSize

	h := CompressedHeader{
		FormatVersion:      fv,
		OriginalLogVersion: originalVersion,
		SamplingIntervalMs: samplingIntervalMs,
		AxesSampled:        axes,
		SamplesPerAxis:     samplesPerAxis,
		AxisScale:          axisScale,
		NumberOfSubBeams:   numSubBeams,
		IsTruncated:        isTruncated,
		NumberOfSnapshots:  numSnapshots,
		MlcModel:           mlcModel,
		Meta:               meta,
	}

	return h, off, nil
}

// CompressedHeaderPrefixSize is the byte count of signature-trailing
// version + original-version + sampling-interval + NumAxesSampled, before
// the two per-axis arrays (the compressed header has no leading signature
// in this count — callers validate it separately).
const CompressedHeaderPrefixSize = 16 + 8 + 4 + 4

// PeekCompressedNumAxes reads NumAxesSampled out of a compressed header's
// fixed prefix (version through NumAxesSampled) without requiring the rest
// of the header to be present.
func PeekCompressedNumAxes(prefix []byte) (int32, error) {
	if len(prefix) < CompressedHeaderPrefixSize {
		return 0, errs.ErrUnexpectedEOF
	}

	engine := endian.GetLittleEndianEngine()
	numAxes := int32(engine.Uint32(prefix[16+8+4:]))

	if numAxes < 0 || numAxes > MaxAxesSampled {
		return 0, fmt.Errorf("%w: NumAxesSampled=%d", errs.ErrInvalidHeader, numAxes)
	}

	return numAxes, nil
}

// CompressedHeaderSizeForAxes computes the compressed header's on-disk size
// (no 1024-byte padding) given only the axis count.
func CompressedHeaderSizeForAxes(numAxes int) int {
	return CompressedHeaderPrefixSize + numAxes*8 + NativeFixedSuffixSize + MetadataBlockSize
}

func doubleBits(f float64) uint64 {
	return math.Float64bits(f)
}

func bitsToDouble(b uint64) float64 {
	return math.Float64frombits(b)
}
