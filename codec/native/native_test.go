package native_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clarityrt/trajlog/codec/native"
	"github.com/clarityrt/trajlog/errs"
	"github.com/clarityrt/trajlog/format"
	"github.com/clarityrt/trajlog/section"
	"github.com/clarityrt/trajlog/timeseries"
)

func buildFile(t *testing.T) *native.File {
	t.Helper()

	x1, err := timeseries.NewAxisData(format.AxisX1, 2, 3, []float32{
		5, 5,
		5, 5.1,
		5, 5.2,
	})
	require.NoError(t, err)

	gantry, err := timeseries.NewAxisData(format.AxisGantryRtn, 2, 3, []float32{
		0, 0,
		10, 10.1,
		350, 350.2,
	})
	require.NoError(t, err)

	header := section.Header{
		Version:            2.1,
		SamplingIntervalMs: 20,
		AxesSampled:        []format.AxisKind{format.AxisX1, format.AxisGantryRtn},
		SamplesPerAxis:     []int32{2, 2},
		AxisScale:          format.ModifiedIEC61217,
		NumberOfSubBeams:   1,
		NumberOfSnapshots:  3,
		MlcModel:           format.NDS120,
		Meta: section.MetaData{
			PatientID: "12345",
			PlanName:  "Plan A",
			BeamName:  "Field 1",
		},
	}

	subBeams := []section.SubBeamRecord{
		{ControlPoint: 0, MU: 100, RadTime: 60, SequenceNumber: 0, Name: "Field 1"},
	}

	return &native.File{
		Header:   header,
		SubBeams: subBeams,
		Axes:     []timeseries.AxisData{x1, gantry},
	}
}

func TestNativeRoundTrip(t *testing.T) {
	f := buildFile(t)

	var buf bytes.Buffer
	require.NoError(t, native.WriteTo(&buf, f))

	got, err := native.ReadFrom(&buf)
	require.NoError(t, err)

	require.Equal(t, f.Header.Version, got.Header.Version)
	require.Equal(t, f.Header.AxesSampled, got.Header.AxesSampled)
	require.Equal(t, f.Header.SamplesPerAxis, got.Header.SamplesPerAxis)
	require.Equal(t, f.Header.NumberOfSnapshots, got.Header.NumberOfSnapshots)
	require.Equal(t, f.Header.Meta, got.Header.Meta)
	require.Equal(t, f.SubBeams, got.SubBeams)
	require.Len(t, got.Axes, 2)

	for i := range f.Axes {
		require.Equal(t, f.Axes[i].Kind, got.Axes[i].Kind)
		require.Equal(t, f.Axes[i].Stride, got.Axes[i].Stride)
		require.InDeltaSlice(t, f.Axes[i].Data, got.Axes[i].Data, 0)
	}
}

func TestNativeHeaderOnly(t *testing.T) {
	f := buildFile(t)

	var buf bytes.Buffer
	require.NoError(t, native.WriteTo(&buf, f))

	got, err := native.ReadFrom(&buf, native.WithHeaderOnly())
	require.NoError(t, err)
	require.Nil(t, got.SubBeams)
	require.Nil(t, got.Axes)
	require.Equal(t, f.Header.NumberOfSnapshots, got.Header.NumberOfSnapshots)
}

func TestNativeInvalidSignature(t *testing.T) {
	data := make([]byte, section.NativeHeaderSize)
	copy(data, "NOTVOSTL")

	_, err := native.ReadFrom(bytes.NewReader(data))
	require.ErrorIs(t, err, errs.ErrInvalidSignature)
}

func TestNativeTruncatedPayload(t *testing.T) {
	f := buildFile(t)

	var buf bytes.Buffer
	require.NoError(t, native.WriteTo(&buf, f))

	truncated := buf.Bytes()[:buf.Len()-4]
	_, err := native.ReadFrom(bytes.NewReader(truncated))
	require.ErrorIs(t, err, errs.ErrUnexpectedEOF)
}

func TestNativeWriteRejectsCountMismatch(t *testing.T) {
	f := buildFile(t)
	f.Header.NumberOfSubBeams = 5

	var buf bytes.Buffer
	err := native.WriteTo(&buf, f)
	require.ErrorIs(t, err, errs.ErrInvalidOperation)
}
