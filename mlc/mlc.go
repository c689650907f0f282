// Package mlc models the multileaf-collimator leaf geometry for the three
// supported TrueBeam MLC models: per-pair leaf widths and the Y coordinate of
// each pair's center, as projected to the isocenter plane. The fluence engine
// uses this to turn per-leaf positions into aperture rectangles.
package mlc

import (
	"github.com/clarityrt/trajlog/format"
)

// Model is the resolved leaf geometry for one MLC model tag. Widths and
// centers are in millimeters at isocenter; pair 0 sits at the most negative
// Y, pairs stack upward from there.
type Model struct {
	Tag     format.MlcModel
	widths  []float64
	centers []float64
}

// leafWidths returns the per-pair widths, in mm at isocenter, bottom pair
// first.
func leafWidths(tag format.MlcModel) []float64 {
	switch tag {
	case format.NDS80:
		return uniformWidths(40, 10)
	case format.NDS120:
		// 10 outer 10mm pairs, 40 central 5mm pairs, 10 outer 10mm pairs.
		w := make([]float64, 0, 60)
		w = append(w, uniformWidths(10, 10)...)
		w = append(w, uniformWidths(40, 5)...)
		w = append(w, uniformWidths(10, 10)...)

		return w
	case format.NDS120HD:
		// 14 outer 5mm pairs, 32 central 2.5mm pairs, 14 outer 5mm pairs.
		w := make([]float64, 0, 60)
		w = append(w, uniformWidths(14, 5)...)
		w = append(w, uniformWidths(32, 2.5)...)
		w = append(w, uniformWidths(14, 5)...)

		return w
	default:
		return nil
	}
}

func uniformWidths(n int, width float64) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = width
	}

	return w
}

// ModelFor resolves the leaf geometry for tag.
func ModelFor(tag format.MlcModel) Model {
	widths := leafWidths(tag)

	total := 0.0
	for _, w := range widths {
		total += w
	}

	centers := make([]float64, len(widths))
	y := -total / 2
	for i, w := range widths {
		centers[i] = y + w/2
		y += w
	}

	return Model{Tag: tag, widths: widths, centers: centers}
}

// LeafPairs returns the number of leaf pairs per bank.
func (m Model) LeafPairs() int { return len(m.widths) }

// Width returns the width, in mm, of leaf pair i.
func (m Model) Width(i int) float64 { return m.widths[i] }

// CenterY returns the Y coordinate, in mm at isocenter, of pair i's center.
func (m Model) CenterY(i int) float64 { return m.centers[i] }

// FieldExtentY returns the total Y span covered by the leaf bank, in mm.
func (m Model) FieldExtentY() float64 {
	total := 0.0
	for _, w := range m.widths {
		total += w
	}

	return total
}
