package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/flood-forcing/internal/units"
)

func intensity(v float64) *units.Quantity[units.IntensityUnit] {
	q := units.MustNew(v, units.MillimetersPerHour)
	return &q
}

func blockParams() SyntheticParams[units.IntensityUnit] {
	return SyntheticParams[units.IntensityUnit]{
		Shape:     ShapeBlock,
		Duration:  units.MustNew(2, units.Hours),
		PeakTime:  units.MustNew(1, units.Hours),
		PeakValue: intensity(10),
	}
}

func TestNewSynthetic_Validation(t *testing.T) {
	t.Run("valid block", func(t *testing.T) {
		_, err := NewSynthetic(blockParams(), nil)
		require.NoError(t, err)
	})

	t.Run("both peak and cumulative", func(t *testing.T) {
		p := blockParams()
		p.Cumulative = intensity(8)
		_, err := NewSynthetic(p, nil)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("neither peak nor cumulative", func(t *testing.T) {
		p := blockParams()
		p.PeakValue = nil
		_, err := NewSynthetic(p, nil)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("zero duration", func(t *testing.T) {
		p := blockParams()
		p.Duration = units.MustNew(0, units.Hours)
		_, err := NewSynthetic(p, nil)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown shape", func(t *testing.T) {
		p := blockParams()
		p.Shape = ShapeType("sawtooth")
		_, err := NewSynthetic(p, nil)
		require.ErrorIs(t, err, ErrUnsupportedShape)
	})

	t.Run("scs requires cumulative", func(t *testing.T) {
		p := blockParams()
		p.Shape = ShapeSCS
		p.SCSType = "type_2"
		_, err := NewSynthetic(p, nil)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("scs forbids peak value", func(t *testing.T) {
		p := blockParams()
		p.Shape = ShapeSCS
		p.Cumulative = intensity(8)
		p.SCSType = "type_2"
		_, err := NewSynthetic(p, nil)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("scs without type or site default", func(t *testing.T) {
		p := blockParams()
		p.Shape = ShapeSCS
		p.PeakValue = nil
		p.Cumulative = intensity(8)
		_, err := NewSynthetic(p, nil)
		require.ErrorIs(t, err, ErrMissingConfiguration)
	})

	t.Run("scs falls back to site default", func(t *testing.T) {
		p := blockParams()
		p.Shape = ShapeSCS
		p.PeakValue = nil
		p.Cumulative = intensity(8)
		ts, err := NewSynthetic(p, &SCSDefaults{StormType: "type_2"})
		require.NoError(t, err)
		assert.Equal(t, "type_2", ts.curve.stormType)
	})
}

func TestSynthetic_DerivedInterval(t *testing.T) {
	p := SyntheticParams[units.IntensityUnit]{
		Shape:     ShapeBlock,
		Duration:  units.MustNew(4, units.Hours),
		PeakTime:  units.MustNew(1, units.Hours),
		PeakValue: intensity(10),
	}
	ts, err := NewSynthetic(p, nil)
	require.NoError(t, err)

	// start = peak - duration/2 may precede the frame origin.
	assert.Equal(t, -1*time.Hour, ts.StartOffset())
	assert.Equal(t, 3*time.Hour, ts.EndOffset())
}

func TestSynthetic_Data(t *testing.T) {
	ts, err := NewSynthetic(blockParams(), nil)
	require.NoError(t, err)

	values, err := ts.Data(10 * time.Minute)
	require.NoError(t, err)

	require.Len(t, values, 13)
	for _, v := range values {
		assert.Equal(t, 10.0, v)
	}
}

func TestSynthetic_Series(t *testing.T) {
	ts, err := NewSynthetic(blockParams(), nil)
	require.NoError(t, err)

	frame, err := NewTimeFrameWithStep(frameStart, frameStart.Add(4*time.Hour), 10*time.Minute)
	require.NoError(t, err)

	series, err := ts.Series(frame)
	require.NoError(t, err)

	require.Len(t, series.Values, 25)
	// The block covers [0h, 2h]: ticks inside carry the height, ticks
	// strictly after the curve end are exactly the fill value.
	for i := 0; i <= 12; i++ {
		assert.Equal(t, 10.0, series.Values[i], "tick %d", i)
	}
	for i := 13; i < 25; i++ {
		assert.Equal(t, 0.0, series.Values[i], "tick %d", i)
	}
}

func TestSynthetic_SeriesCustomFill(t *testing.T) {
	p := blockParams()
	p.FillValue = -999
	ts, err := NewSynthetic(p, nil)
	require.NoError(t, err)

	frame, err := NewTimeFrameWithStep(frameStart, frameStart.Add(3*time.Hour), 10*time.Minute)
	require.NoError(t, err)

	series, err := ts.Series(frame)
	require.NoError(t, err)
	assert.Equal(t, -999.0, series.Values[len(series.Values)-1])
}

func TestSynthetic_Clone(t *testing.T) {
	ts, err := NewSynthetic(blockParams(), nil)
	require.NoError(t, err)

	clone := ts.Clone()
	require.NotSame(t, ts, clone)
	assert.Equal(t, ts.Params().Shape, clone.Params().Shape)
	assert.True(t, ts.Params().Duration.Equal(clone.Params().Duration))
}

func TestFromObject(t *testing.T) {
	ts, err := NewSynthetic(blockParams(), nil)
	require.NoError(t, err)

	derived, err := FromObject(ts, nil)
	require.NoError(t, err)
	assert.Equal(t, ts.StartOffset(), derived.StartOffset())
	assert.Equal(t, ts.EndOffset(), derived.EndOffset())
}
