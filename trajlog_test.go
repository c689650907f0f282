package trajlog_test

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarityrt/trajlog"
	"github.com/clarityrt/trajlog/codec/compressed"
	"github.com/clarityrt/trajlog/codec/native"
	"github.com/clarityrt/trajlog/format"
	"github.com/clarityrt/trajlog/section"
	"github.com/clarityrt/trajlog/timeseries"
)

func scalarAxis(t *testing.T, kind format.AxisKind, actual []float64) timeseries.AxisData {
	t.Helper()

	data := make([]float32, 0, len(actual)*2)
	for _, v := range actual {
		data = append(data, float32(v), float32(v))
	}

	a, err := timeseries.NewAxisData(kind, 2, len(actual), data)
	require.NoError(t, err)

	return a
}

func mlcAxis(t *testing.T, model format.MlcModel, numSnapshots int, leafValue float32) timeseries.AxisData {
	t.Helper()

	leafPairs := model.LeafPairCount()
	stride := timeseries.MLCStride(leafPairs)

	data := make([]float32, numSnapshots*stride)
	for snap := 0; snap < numSnapshots; snap++ {
		for bank := 0; bank < 2; bank++ {
			for leaf := 0; leaf < leafPairs; leaf++ {
				data[snap*stride+timeseries.LeafOffset(leafPairs, bank, leaf, false)] = leafValue
				data[snap*stride+timeseries.LeafOffset(leafPairs, bank, leaf, true)] = leafValue
			}
		}
	}

	a, err := timeseries.NewAxisData(format.AxisMLC, stride, numSnapshots, data)
	require.NoError(t, err)

	return a
}

// buildLog assembles a five-snapshot log with four sub-beams, the last of
// which never starts.
func buildLog(t *testing.T) *trajlog.TrajectoryLog {
	t.Helper()

	const n = 5

	axes := []timeseries.AxisData{
		scalarAxis(t, format.AxisControlPoint, []float64{0, 0, 1, 1, 2}),
		scalarAxis(t, format.AxisMU, []float64{0, 1, 1.5, 1.5, 2}),
		scalarAxis(t, format.AxisX1, []float64{5, 5, 5, 5, 5}),
		scalarAxis(t, format.AxisX2, []float64{5, 5, 5, 5, 5}),
		scalarAxis(t, format.AxisY1, []float64{5, 5, 5, 5, 5}),
		scalarAxis(t, format.AxisY2, []float64{5, 5, 5, 5, 5}),
		scalarAxis(t, format.AxisCollRtn, []float64{180, 180, 180, 180, 180}),
		scalarAxis(t, format.AxisGantryRtn, []float64{180, 180, 180, 180, 180}),
		scalarAxis(t, format.AxisBeamHold, []float64{0, 0, 0, 0, 0}),
		mlcAxis(t, format.NDS80, n, 2),
	}

	header := section.Header{
		Version:            5.0,
		SamplingIntervalMs: 1000,
		AxesSampled: []format.AxisKind{
			format.AxisControlPoint, format.AxisMU,
			format.AxisX1, format.AxisX2, format.AxisY1, format.AxisY2,
			format.AxisCollRtn, format.AxisGantryRtn, format.AxisBeamHold,
			format.AxisMLC,
		},
		SamplesPerAxis: []int32{2, 2, 2, 2, 2, 2, 2, 2, 2,
			int32(timeseries.MLCStride(format.NDS80.LeafPairCount()))},
		AxisScale:         format.MachineScale,
		NumberOfSubBeams:  4,
		NumberOfSnapshots: n,
		MlcModel:          format.NDS80,
		Meta: section.MetaData{
			PatientID: "PT-1001",
			PlanName:  "Prostate VMAT",
			PlanUID:   "1.2.246.352.71.5.1",
			Energy:    "6X",
			BeamName:  "Arc 1",
		},
	}

	// Deliberately unsorted by sequence number.
	subBeams := []section.SubBeamRecord{
		{ControlPoint: 1, MU: 50, RadTime: 20, SequenceNumber: 1, Name: "Beam B"},
		{ControlPoint: 0, MU: 50, RadTime: 20, SequenceNumber: 0, Name: "Beam A"},
		{ControlPoint: 2, MU: 20, RadTime: 10, SequenceNumber: 2, Name: "Beam C"},
		{ControlPoint: 99, MU: 0, RadTime: 0, SequenceNumber: 3, Name: "Beam D"},
	}

	log, err := trajlog.New(header, subBeams, axes)
	require.NoError(t, err)

	return log
}

func TestNewOrdersSubBeams(t *testing.T) {
	log := buildLog(t)

	require.Equal(t, []string{"Beam A", "Beam B", "Beam C", "Beam D"}, []string{
		log.SubBeams[0].Name, log.SubBeams[1].Name, log.SubBeams[2].Name, log.SubBeams[3].Name,
	})
}

func TestSubBeamRanges(t *testing.T) {
	log := buildLog(t)

	start, end, started, err := log.SubBeamRange(0)
	require.NoError(t, err)
	require.True(t, started)
	require.Equal(t, 0, start)
	require.Equal(t, 1, end)

	start, end, started, err = log.SubBeamRange(1)
	require.NoError(t, err)
	require.True(t, started)
	require.Equal(t, 2, start)
	require.Equal(t, 3, end)

	start, end, started, err = log.SubBeamRange(2)
	require.NoError(t, err)
	require.True(t, started)
	require.Equal(t, 4, start)
	require.Equal(t, 4, end)

	_, _, started, err = log.SubBeamRange(3)
	require.NoError(t, err)
	require.False(t, started)

	snaps, err := log.SubBeamSnapshots(1)
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	require.Equal(t, 2, snaps[0].Index())

	snaps, err = log.SubBeamSnapshots(3)
	require.NoError(t, err)
	require.Empty(t, snaps)
}

func TestNativeRoundTripBitExact(t *testing.T) {
	log := buildLog(t)

	var buf bytes.Buffer
	require.NoError(t, native.WriteTo(&buf, log.ToNative()))

	reloaded, err := trajlog.Decode(buf.Bytes())
	require.NoError(t, err)

	require.Equal(t, log.Header, reloaded.Header)
	require.Equal(t, log.SubBeams, reloaded.SubBeams)
	for i, a := range log.Axes() {
		require.Equal(t, a.Data, reloaded.Axes()[i].Data)
	}

	sum1, err := log.Checksum()
	require.NoError(t, err)
	sum2, err := reloaded.Checksum()
	require.NoError(t, err)
	require.Equal(t, sum1, sum2)
}

func TestCompressedRoundTripTolerances(t *testing.T) {
	log := buildLog(t)

	data, err := compressed.Marshal(log.ToCompressed())
	require.NoError(t, err)

	reloaded, err := trajlog.Decode(data)
	require.NoError(t, err)

	require.Equal(t, log.Header.Meta, reloaded.Header.Meta)
	require.Equal(t, log.SubBeams, reloaded.SubBeams)
	require.InDelta(t, log.Header.Version, reloaded.Header.Version, 1e-12)

	tolerances := map[format.AxisKind]float64{
		format.AxisX1: 0.005, format.AxisX2: 0.005, // jaws: 0.05mm in cm
		format.AxisY1: 0.005, format.AxisY2: 0.005,
		format.AxisMU: 0.002, format.AxisControlPoint: 0.002,
		format.AxisGantryRtn: 0.05, format.AxisCollRtn: 0.05,
		format.AxisBeamHold: 0.01,
		format.AxisMLC:      0.005,
	}

	for i, a := range log.Axes() {
		tol := tolerances[a.Kind]
		require.Greater(t, tol, 0.0, "missing tolerance for %s", a.Kind)
		require.InDeltaSlice(t, a.Data, reloaded.Axes()[i].Data, tol)
	}
}

func TestOpenDispatchesOnLeadingBytes(t *testing.T) {
	log := buildLog(t)
	dir := t.TempDir()

	nativePath := filepath.Join(dir, "delivery.bin")
	require.NoError(t, log.Save(nativePath))

	compressedPath := filepath.Join(dir, "delivery.cbin")
	require.NoError(t, log.SaveCompressed(compressedPath, compressed.WithCompression(format.CompressionGzip)))

	fromNative, err := trajlog.Open(nativePath)
	require.NoError(t, err)
	require.Equal(t, log.NumSnapshots(), fromNative.NumSnapshots())

	fromCompressed, err := trajlog.Open(compressedPath)
	require.NoError(t, err)
	require.Equal(t, log.NumSnapshots(), fromCompressed.NumSnapshots())
	require.Equal(t, log.Header.Meta, fromCompressed.Header.Meta)
}

func TestFieldsProjection(t *testing.T) {
	log := buildLog(t)

	fields, err := log.Fields()
	require.NoError(t, err)
	require.Len(t, fields, 5)

	f := fields[0]

	jaws := f.Jaws()
	require.InDelta(t, -50.0, jaws.X1, 1e-6) // 5cm machine-scale X1 -> -50mm IEC
	require.InDelta(t, 50.0, jaws.X2, 1e-6)
	require.InDelta(t, -50.0, jaws.Y1, 1e-6)
	require.InDelta(t, 50.0, jaws.Y2, 1e-6)

	a, b := f.LeafPair(0)
	require.InDelta(t, 20.0, a, 1e-6)  // bank A preserves sign
	require.InDelta(t, -20.0, b, 1e-6) // bank B inverts

	require.InDelta(t, 0.0, f.DeltaMU(), 1e-9)
	require.InDelta(t, 1.0, fields[1].DeltaMU(), 1e-6)
	require.InDelta(t, 0.5, fields[2].DeltaMU(), 1e-6)
	require.False(t, f.InBeamHold())

	require.Equal(t, 40, f.Model().LeafPairs())
}
