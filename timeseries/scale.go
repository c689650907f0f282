package timeseries

import (
	"math"

	"github.com/clarityrt/trajlog/format"
)

// mod360 reduces x into [0, 360).
func mod360(x float64) float64 {
	x = math.Mod(x, 360)
	if x < 0 {
		x += 360
	}

	return x
}

// normalizeTo180 reduces a rotational delta into (-180, 180], the
// shortest-arc convention shared by GetDelta and the converter's Delta.
func normalizeTo180(d float64) float64 {
	for d > 180 {
		d -= 360
	}
	for d <= -180 {
		d += 360
	}

	return d
}

func isCouchLinear(axis format.AxisKind) bool {
	switch axis {
	case format.AxisCouchVrt, format.AxisCouchLng, format.AxisCouchLat:
		return true
	default:
		return false
	}
}

func isXJaw(axis format.AxisKind) bool {
	return axis == format.AxisX1 || axis == format.AxisX2
}

// toIecRotational and fromIecRotational implement the full-rotation rule.
// Modified-IEC differs from canonical IEC-61217 by a +180 shift (self
// inverse mod 360); Machine and Machine-Isocentric differ from it by a
// reflection (also self inverse).
func toIecRotational(scale format.Scale, value float64) float64 {
	switch scale {
	case format.ModifiedIEC61217:
		return mod360(value + 180)
	default: // MachineScale, MachineScaleIsocentric
		return mod360(360 - value)
	}
}

func fromIecRotational(scale format.Scale, iec float64) float64 {
	switch scale {
	case format.ModifiedIEC61217:
		return mod360(iec + 180)
	default:
		return mod360(360 - iec)
	}
}

// toIecLinearCouch implements the offset-wrap convention: values above 500
// represent a signed position via value-1000. This applies the
// same way regardless of source scale.
func toIecLinearCouch(value float64) float64 {
	if value > 500 {
		return value - 1000
	}

	return value
}

func fromIecLinearCouch(iec float64) float64 {
	if iec < 0 {
		return iec + 1000
	}

	return iec
}

// toIecXJaw/fromIecXJaw implement the X-jaw sign inversion: Machine (and
// Machine-Isocentric) invert sign relative to IEC; Modified-IEC already
// matches IEC sign.
func toIecXJaw(scale format.Scale, value float64) float64 {
	if scale == format.ModifiedIEC61217 {
		return value
	}

	return -value
}

func fromIecXJaw(scale format.Scale, iec float64) float64 {
	return toIecXJaw(scale, iec) // sign flip is its own inverse
}

// ToIec converts value, expressed in scale on axis, to canonical IEC-61217
// form.
func ToIec(scale format.Scale, axis format.AxisKind, value float64) float64 {
	switch {
	case axis.IsFullRotation():
		return toIecRotational(scale, value)
	case isCouchLinear(axis):
		return toIecLinearCouch(value)
	case isXJaw(axis):
		return toIecXJaw(scale, value)
	default:
		return value
	}
}

// FromIec converts an IEC-61217 value to scale on axis.
func FromIec(scale format.Scale, axis format.AxisKind, iecValue float64) float64 {
	switch {
	case axis.IsFullRotation():
		return fromIecRotational(scale, iecValue)
	case isCouchLinear(axis):
		return fromIecLinearCouch(iecValue)
	case isXJaw(axis):
		return fromIecXJaw(scale, iecValue)
	default:
		return iecValue
	}
}

// Convert maps value on axis from one scale to another via the canonical
// IEC-61217 form. from == to is a no-op short-circuit so values
// already expressed in a scale are never pushed through a lossy
// offset-wrap round trip.
func Convert(from, to format.Scale, axis format.AxisKind, value float64) float64 {
	if from == to {
		return value
	}

	return FromIec(to, axis, ToIec(from, axis, value))
}

// Delta returns b_iec - a_iec for a on aScale and b on bScale, normalized to
// (-180, 180] for rotational axes.
func Delta(aScale format.Scale, a float64, bScale format.Scale, b float64, axis format.AxisKind) float64 {
	d := ToIec(bScale, axis, b) - ToIec(aScale, axis, a)
	if axis.IsFullRotation() {
		d = normalizeTo180(d)
	}

	return d
}

// LeafToIec converts an MLC leaf position to IEC form: bank 0 preserves
// sign, bank 1 inverts it, since IEC uses a single X axis increasing toward
// X2.
func LeafToIec(bank int, value float64) float64 {
	if bank == 0 {
		return value
	}

	return -value
}

// LeafFromIec is LeafToIec's inverse (the sign flip is self-inverse).
func LeafFromIec(bank int, iecValue float64) float64 {
	return LeafToIec(bank, iecValue)
}
