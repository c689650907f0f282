package fluence

import "github.com/clarityrt/trajlog/mlc"

// Jaws holds the four jaw edge positions as signed coordinates in mm at
// isocenter: the open field spans [X1, X2] x [Y1, Y2], so X1 and Y1 are
// normally negative.
type Jaws struct {
	X1, Y1, X2, Y2 float64
}

// FieldData is one snapshot's delivery state as the fluence engine consumes
// it: jaw edges, machine angles, per-leaf-pair positions, the MU
// delivered since the previous snapshot, and the beam-hold flag. All
// positions are in mm at isocenter on a single IEC X axis increasing toward
// X2.
type FieldData interface {
	// Jaws returns the signed jaw edge coordinates.
	Jaws() Jaws

	// GantryAngle returns the gantry angle in degrees.
	GantryAngle() float64

	// CollimatorAngle returns the collimator angle in degrees.
	CollimatorAngle() float64

	// LeafPair returns leaf pair i's bank-A (X2 side) and bank-B edge
	// positions. An open pair has a > b.
	LeafPair(i int) (a, b float64)

	// DeltaMU returns the MU delivered since the previous snapshot, >= 0.
	DeltaMU() float64

	// InBeamHold reports whether the snapshot was recorded during a beam
	// hold.
	InBeamHold() bool

	// Model returns the MLC leaf geometry.
	Model() mlc.Model
}

// StaticField is a literal FieldData value, used by tests and by callers
// reconstructing fluence from plan-derived control points rather than a
// trajectory log.
type StaticField struct {
	Jaw        Jaws
	Gantry     float64
	Collimator float64
	// BankA and BankB hold one edge position per leaf pair.
	BankA, BankB []float64
	MU           float64
	BeamHold     bool
	MLC          mlc.Model
}

func (s StaticField) Jaws() Jaws               { return s.Jaw }
func (s StaticField) GantryAngle() float64     { return s.Gantry }
func (s StaticField) CollimatorAngle() float64 { return s.Collimator }
func (s StaticField) DeltaMU() float64         { return s.MU }
func (s StaticField) InBeamHold() bool         { return s.BeamHold }
func (s StaticField) Model() mlc.Model         { return s.MLC }

func (s StaticField) LeafPair(i int) (a, b float64) {
	return s.BankA[i], s.BankB[i]
}
