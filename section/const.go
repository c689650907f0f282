// Package section implements the fixed and semi-fixed binary layouts shared
// by the native and compressed trajectory-log codecs: the header, the
// textual metadata block, and the per-sub-beam record.
package section

// NativeSignature is the 16-byte (null-padded) magic at the start of a
// native trajectory log file.
var NativeSignature = [16]byte{'V', 'O', 'S', 'T', 'L'}

// CompressedSignature is the 16-byte (null-padded) magic at the start of a
// compressed trajectory log file's body (after any gzip unwrap).
var CompressedSignature = [16]byte{'V', 'O', 'S', 'T', 'L', 'C'}

const (
	// NativeHeaderSize is the fixed size, in bytes, of the native header
	// section (signature through padding, before the sub-beam records).
	NativeHeaderSize = 1024

	// MetadataBlockSize is the size, in bytes, of the textual metadata
	// block embedded in the native header.
	MetadataBlockSize = 745

	// NativeFixedPrefixSize is the byte count of signature + version +
	// header-size + sampling-interval + NumAxesSampled, before the two
	// per-axis arrays.
	NativeFixedPrefixSize = 16 + 16 + 4 + 4 + 4

	// NativeFixedSuffixSize is the byte count of axis-scale,
	// NumberOfSubBeams, isTruncated, NumberOfSnapshots, and MlcModel,
	// following the two per-axis arrays.
	NativeFixedSuffixSize = 4 + 4 + 4 + 4 + 4

	// SubBeamNameSize is the fixed width of a sub-beam's UTF-8 name field.
	SubBeamNameSize = 512
	// SubBeamReservedSize is the fixed width of a sub-beam's reserved tail.
	SubBeamReservedSize = 32
	// SubBeamRecordSize is the total on-disk size of one sub-beam record.
	SubBeamRecordSize = 4 + 4 + 4 + 4 + SubBeamNameSize + SubBeamReservedSize

	// MaxAxesSampled, MaxSnapshots, and MaxSubBeams are the header
	// validation ceilings.
	MaxAxesSampled = 1000
	MaxSnapshots   = 10_000_000
	MaxSubBeams    = 10_000
)
