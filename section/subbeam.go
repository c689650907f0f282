package section

import (
	"math"

	"github.com/clarityrt/trajlog/endian"
	"github.com/clarityrt/trajlog/errs"
)

// SubBeamRecord is the fixed-size on-disk representation of one
// sub-beam: control-point index, delivered MU, expected radiation time,
// sequence number, and a fixed-width UTF-8 name.
type SubBeamRecord struct {
	ControlPoint   int32
	MU             float32
	RadTime        float32
	SequenceNumber int32
	Name           string
}

// Bytes serializes the record to its SubBeamRecordSize-byte layout.
func (s SubBeamRecord) Bytes() []byte {
	engine := endian.GetLittleEndianEngine()
	buf := make([]byte, SubBeamRecordSize)

	off := 0
	engine.PutUint32(buf[off:], uint32(s.ControlPoint))
	off += 4
	engine.PutUint32(buf[off:], math.Float32bits(s.MU))
	off += 4
	engine.PutUint32(buf[off:], math.Float32bits(s.RadTime))
	off += 4
	engine.PutUint32(buf[off:], uint32(s.SequenceNumber))
	off += 4

	name := []byte(s.Name)
	if len(name) > SubBeamNameSize {
		name = name[:SubBeamNameSize]
	}
	copy(buf[off:off+SubBeamNameSize], name)
	// off+SubBeamNameSize..end (reserved bytes) left zero.

	return buf
}

// ParseSubBeamRecord decodes one SubBeamRecordSize-byte record.
func ParseSubBeamRecord(data []byte) (SubBeamRecord, error) {
	if len(data) < SubBeamRecordSize {
		return SubBeamRecord{}, errs.ErrUnexpectedEOF
	}

	engine := endian.GetLittleEndianEngine()

	off := 0
	cp := int32(engine.Uint32(data[off:]))
	off += 4
	mu := math.Float32frombits(engine.Uint32(data[off:]))
	off += 4
	radTime := math.Float32frombits(engine.Uint32(data[off:]))
	off += 4
	seq := int32(engine.Uint32(data[off:]))
	off += 4
	name := trimCString(data[off : off+SubBeamNameSize])

	return SubBeamRecord{
		ControlPoint:   cp,
		MU:             mu,
		RadTime:        radTime,
		SequenceNumber: seq,
		Name:           name,
	}, nil
}
