// Package format defines the small value types shared by every layer of the
// codec: the sampled axis kinds, the coordinate-scale conventions, the MLC
// model tag, and the compression algorithm selector.
package format

// AxisKind identifies one of the mechanical/dosimetric channels a trajectory
// log can sample. The numeric values match the Varian TrueBeam axis enum
// codes written into the native header's axis-code array.
type AxisKind int32

const (
	AxisMLC            AxisKind = 0
	AxisCollRtn        AxisKind = 1
	AxisGantryRtn      AxisKind = 2
	AxisY1             AxisKind = 3
	AxisY2             AxisKind = 4
	AxisX1             AxisKind = 5
	AxisX2             AxisKind = 6
	AxisCouchVrt       AxisKind = 7
	AxisCouchLng       AxisKind = 8
	AxisCouchLat       AxisKind = 9
	AxisCouchRtn       AxisKind = 10
	AxisCouchPit       AxisKind = 11
	AxisCouchRol       AxisKind = 12
	AxisMU             AxisKind = 13
	AxisBeamHold       AxisKind = 14
	AxisControlPoint   AxisKind = 15
	AxisTargetPosition AxisKind = 16
)

// String returns a short human-readable name, used by diagnostics and by the
// CSV exporter's column headers.
func (a AxisKind) String() string {
	switch a {
	case AxisMLC:
		return "MLC"
	case AxisCollRtn:
		return "CollRtn"
	case AxisGantryRtn:
		return "GantryRtn"
	case AxisY1:
		return "Y1"
	case AxisY2:
		return "Y2"
	case AxisX1:
		return "X1"
	case AxisX2:
		return "X2"
	case AxisCouchVrt:
		return "CouchVrt"
	case AxisCouchLng:
		return "CouchLng"
	case AxisCouchLat:
		return "CouchLat"
	case AxisCouchRtn:
		return "CouchRtn"
	case AxisCouchPit:
		return "CouchPit"
	case AxisCouchRol:
		return "CouchRol"
	case AxisMU:
		return "MU"
	case AxisBeamHold:
		return "BeamHold"
	case AxisControlPoint:
		return "ControlPoint"
	case AxisTargetPosition:
		return "TargetPosition"
	default:
		return "Unknown"
	}
}

// IsFullRotation reports whether the axis wraps every 360 degrees and
// therefore needs shortest-arc normalization for deltas and compressed-codec
// quantized deltas.
func (a AxisKind) IsFullRotation() bool {
	switch a {
	case AxisGantryRtn, AxisCollRtn, AxisCouchRtn:
		return true
	default:
		return false
	}
}

// IsScalar reports whether the axis is a plain expected/actual pair
// (samplesPerSnapshot == 2), as opposed to the MLC axis whose layout is
// carriage + per-leaf-pair data.
func (a AxisKind) IsScalar() bool {
	return a != AxisMLC
}

// Scale identifies one of the three IEC coordinate conventions a trajectory
// log (or a single value) can be expressed in.
type Scale int32

const (
	MachineScale           Scale = 0
	ModifiedIEC61217       Scale = 1
	MachineScaleIsocentric Scale = 2
)

func (s Scale) String() string {
	switch s {
	case MachineScale:
		return "MachineScale"
	case ModifiedIEC61217:
		return "ModifiedIEC61217"
	case MachineScaleIsocentric:
		return "MachineScaleIsocentric"
	default:
		return "Unknown"
	}
}

// MlcModel identifies the MLC geometry used by a log: leaf-pair count and
// (for fluence reconstruction) nominal leaf width.
type MlcModel int32

const (
	NDS80    MlcModel = 0 // 40 leaf pairs
	NDS120   MlcModel = 1 // 60 leaf pairs
	NDS120HD MlcModel = 2 // 60 leaf pairs, fine center leaves
)

// LeafPairCount returns the number of leaf pairs per bank for the model.
func (m MlcModel) LeafPairCount() int {
	switch m {
	case NDS80:
		return 40
	case NDS120, NDS120HD:
		return 60
	default:
		return 0
	}
}

func (m MlcModel) String() string {
	switch m {
	case NDS80:
		return "NDS80"
	case NDS120:
		return "NDS120"
	case NDS120HD:
		return "NDS120HD"
	default:
		return "Unknown"
	}
}

// CompressionType identifies the algorithm used to wrap a compressed
// trajectory log's body. Gzip auto-detects on read via its
// standard 1F 8B magic; the others are selected explicitly by the writer.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x0
	CompressionGzip CompressionType = 0x1
	CompressionZstd CompressionType = 0x2
	CompressionS2   CompressionType = 0x3
	CompressionLZ4  CompressionType = 0x4
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionGzip:
		return "Gzip"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// StreamClass determines the quantized base/delta bit width used by the
// compressed codec for a given axis sample slot.
type StreamClass uint8

const (
	// StreamSmall uses a 16-bit base value and 8-bit deltas: MLC leaves,
	// jaws, couch pitch/roll.
	StreamSmall StreamClass = 0
	// StreamLarge uses a 32-bit base value and 16-bit deltas: couch
	// Vrt/Lng/Lat, MU, ControlPoint, GantryRtn, CollRtn, CouchRtn.
	StreamLarge StreamClass = 1
)

// ClassOf returns the stream classification for an axis kind.
func ClassOf(a AxisKind) StreamClass {
	switch a {
	case AxisCouchVrt, AxisCouchLng, AxisCouchLat,
		AxisMU, AxisControlPoint,
		AxisGantryRtn, AxisCollRtn, AxisCouchRtn:
		return StreamLarge
	default:
		return StreamSmall
	}
}
