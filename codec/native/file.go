package native

import (
	"github.com/clarityrt/trajlog/section"
	"github.com/clarityrt/trajlog/timeseries"
)

// File is the parsed contents of a native trajectory log: the header, its
// sub-beam records, and its axis data in the columnar, stride-major form
// the time-series model expects.
type File struct {
	Header   section.Header
	SubBeams []section.SubBeamRecord
	Axes     []timeseries.AxisData
}
