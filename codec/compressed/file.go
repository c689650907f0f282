package compressed

import (
	"github.com/clarityrt/trajlog/section"
	"github.com/clarityrt/trajlog/timeseries"
)

// File is the parsed contents of a compressed trajectory log: the header,
// its sub-beam records, and its axis data in the same stride-major form
// codec/native produces.
type File struct {
	Header   section.CompressedHeader
	SubBeams []section.SubBeamRecord
	Axes     []timeseries.AxisData
}
