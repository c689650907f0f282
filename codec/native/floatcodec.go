package native

import (
	"math"

	"github.com/clarityrt/trajlog/endian"
)

// decodeFloat32Row decodes len(out) little-endian float32 values from src
// into out.
func decodeFloat32Row(src []byte, out []float32) {
	engine := endian.GetLittleEndianEngine()
	for i := range out {
		out[i] = math.Float32frombits(engine.Uint32(src[i*4:]))
	}
}

// encodeFloat32Row appends len(in) little-endian float32 values to dst.
func encodeFloat32Row(dst []byte, in []float32) []byte {
	engine := endian.GetLittleEndianEngine()
	for _, v := range in {
		dst = engine.AppendUint32(dst, math.Float32bits(v))
	}

	return dst
}
