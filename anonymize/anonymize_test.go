package anonymize_test

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarityrt/trajlog"
	"github.com/clarityrt/trajlog/anonymize"
	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/format"
	"github.com/clarityrt/trajlog/section"
	"github.com/clarityrt/trajlog/timeseries"
)

func buildLog(t *testing.T) *trajlog.TrajectoryLog {
	t.Helper()

	mu, err := timeseries.NewAxisData(format.AxisMU, 2, 1, []float32{0, 0})
	require.NoError(t, err)

	header := section.Header{
		Version:            4.0,
		SamplingIntervalMs: 20,
		AxesSampled:        []format.AxisKind{format.AxisMU},
		SamplesPerAxis:     []int32{2},
		NumberOfSubBeams:   2,
		NumberOfSnapshots:  1,
		MlcModel:           format.NDS120,
		Meta: section.MetaData{
			PatientID: "PT-77",
			PlanName:  "Head & Neck",
			PlanUID:   "1.2.3.4",
			BeamName:  "Arc 2",
		},
	}

	subBeams := []section.SubBeamRecord{
		{SequenceNumber: 0, Name: "Field 1"},
		{SequenceNumber: 1, Name: "Field 2"},
	}

	log, err := trajlog.New(header, subBeams, []timeseries.AxisData{mu})
	require.NoError(t, err)

	return log
}

func TestApplyOverrides(t *testing.T) {
	log := buildLog(t)

	err := anonymize.Apply(log, anonymize.Options{
		PatientID: "ANON",
		PlanName:  "Plan",
		PlanUID:   "0.0.0.1",
		BeamName:  "Beam",
		SubBeamName: func(seq int) string {
			return fmt.Sprintf("Beam %d", seq+1)
		},
	})
	require.NoError(t, err)

	require.Equal(t, "ANON", log.Header.Meta.PatientID)
	require.Equal(t, "Plan", log.Header.Meta.PlanName)
	require.Equal(t, "0.0.0.1", log.Header.Meta.PlanUID)
	require.Equal(t, "Beam", log.Header.Meta.BeamName)
	require.Equal(t, "Beam 1", log.SubBeams[0].Name)
	require.Equal(t, "Beam 2", log.SubBeams[1].Name)
}

func TestApplyLeavesUnsetFields(t *testing.T) {
	log := buildLog(t)

	require.NoError(t, anonymize.Apply(log, anonymize.Options{PatientID: "ANON"}))

	require.Equal(t, "ANON", log.Header.Meta.PatientID)
	require.Equal(t, "Head & Neck", log.Header.Meta.PlanName)
	require.Equal(t, "Field 1", log.SubBeams[0].Name)
}

func TestSOPInstanceUIDWins(t *testing.T) {
	log := buildLog(t)

	require.NoError(t, anonymize.Apply(log, anonymize.Options{
		PlanUID:        "1.1",
		SOPInstanceUID: "2.2",
	}))
	require.Equal(t, "2.2", log.Header.Meta.PlanUID)
}

func TestApplyChangesChecksum(t *testing.T) {
	log := buildLog(t)

	before, err := log.Checksum()
	require.NoError(t, err)

	require.NoError(t, anonymize.Apply(log, anonymize.Options{PatientID: "ANON"}))

	after, err := log.Checksum()
	require.NoError(t, err)
	require.NotEqual(t, before, after)
}

func TestApplyNilLog(t *testing.T) {
	require.ErrorIs(t, anonymize.Apply(nil, anonymize.Options{}), errs.ErrInvalidArgument)
}

func TestPath(t *testing.T) {
	orig := filepath.Join("data", "patient-77.bin")

	require.Equal(t, orig, anonymize.Path(orig, anonymize.Options{}))
	require.Equal(t, filepath.Join("data", "anon.bin"),
		anonymize.Path(orig, anonymize.Options{FilePath: "anon"}))
	require.Equal(t, filepath.Join("data", "anon.cbin"),
		anonymize.Path(orig, anonymize.Options{FilePath: "anon.cbin"}))
}
