package timeseries

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/flood-forcing/internal/units"
)

func writeBackingFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "waterlevel.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const gaugeCSV = `time,waterlevel
2021-01-01 00:00:00,1.0
2021-01-01 00:10:00,1.2
2021-01-01 00:20:00,1.4
2021-01-01 00:30:00,1.6
2021-01-01 00:40:00,1.8
2021-01-01 00:50:00,2.0
2021-01-01 01:00:00,2.2
`

func openGauge(t *testing.T, content string) *CSVBacked[units.LengthUnit] {
	t.Helper()
	ts, err := OpenCSV(CSVParams[units.LengthUnit]{
		Path:  writeBackingFile(t, content),
		Units: units.Meters,
	})
	require.NoError(t, err)
	return ts
}

func TestOpenCSV(t *testing.T) {
	t.Run("header auto-detected", func(t *testing.T) {
		ts := openGauge(t, gaugeCSV)
		values, err := ts.Data(0)
		require.NoError(t, err)
		assert.Equal(t, []float64{1.0, 1.2, 1.4, 1.6, 1.8, 2.0, 2.2}, values)
	})

	t.Run("no header", func(t *testing.T) {
		ts := openGauge(t, "2021-01-01 00:00:00,1.5\n2021-01-01 01:00:00,2.5\n")
		values, err := ts.Data(0)
		require.NoError(t, err)
		assert.Equal(t, []float64{1.5, 2.5}, values)
	})

	t.Run("rfc3339 timestamps", func(t *testing.T) {
		ts := openGauge(t, "2021-01-01T00:00:00Z,3.5\n2021-01-01T01:00:00Z,4.5\n")
		values, err := ts.Data(0)
		require.NoError(t, err)
		assert.Equal(t, []float64{3.5, 4.5}, values)
	})

	t.Run("unparsable rows dropped", func(t *testing.T) {
		content := "2021-01-01 00:00:00,1.0\nnot-a-time,9.9\n2021-01-01 01:00:00,2.0\n"
		ts := openGauge(t, content)
		values, err := ts.Data(0)
		require.NoError(t, err)
		assert.Equal(t, []float64{1.0, 2.0}, values)
	})

	t.Run("unsorted rows sorted on load", func(t *testing.T) {
		content := "2021-01-01 01:00:00,2.0\n2021-01-01 00:00:00,1.0\n"
		ts := openGauge(t, content)
		values, err := ts.Data(0)
		require.NoError(t, err)
		assert.Equal(t, []float64{1.0, 2.0}, values)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := OpenCSV(CSVParams[units.LengthUnit]{
			Path:  writeBackingFile(t, ""),
			Units: units.Meters,
		})
		require.ErrorIs(t, err, ErrEmptyFile)
	})

	t.Run("no data column", func(t *testing.T) {
		_, err := OpenCSV(CSVParams[units.LengthUnit]{
			Path:  writeBackingFile(t, "2021-01-01 00:00:00\n2021-01-01 01:00:00\n"),
			Units: units.Meters,
		})
		require.ErrorIs(t, err, ErrMalformedFile)
	})

	t.Run("nothing parseable", func(t *testing.T) {
		_, err := OpenCSV(CSVParams[units.LengthUnit]{
			Path:  writeBackingFile(t, "time,level\nalpha,beta\n"),
			Units: units.Meters,
		})
		require.ErrorIs(t, err, ErrMalformedFile)
	})

	t.Run("unknown units", func(t *testing.T) {
		_, err := OpenCSV(CSVParams[units.LengthUnit]{
			Path:  writeBackingFile(t, gaugeCSV),
			Units: units.LengthUnit("fathoms"),
		})
		require.ErrorIs(t, err, units.ErrInvalidUnit)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := OpenCSV(CSVParams[units.LengthUnit]{
			Path:  filepath.Join(t.TempDir(), "absent.csv"),
			Units: units.Meters,
		})
		require.Error(t, err)
	})
}

func TestCSVBacked_ReadTimeFrame(t *testing.T) {
	ts := openGauge(t, gaugeCSV)

	tf, err := ts.ReadTimeFrame()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), tf.Start())
	assert.Equal(t, time.Date(2021, 1, 1, 1, 0, 0, 0, time.UTC), tf.End())
}

func TestCSVBacked_Series(t *testing.T) {
	// A gauge file covering 00:00-01:00 resampled onto a frame spanning
	// 23:00 the previous day through 02:00: ticks before and after the
	// file's coverage are exactly the fill value, ticks inside match the
	// source.
	ts := openGauge(t, gaugeCSV)

	frame, err := NewTimeFrameWithStep(
		time.Date(2020, 12, 31, 23, 0, 0, 0, time.UTC),
		time.Date(2021, 1, 1, 2, 0, 0, 0, time.UTC),
		10*time.Minute,
	)
	require.NoError(t, err)

	series, err := ts.Series(frame)
	require.NoError(t, err)
	require.Len(t, series.Values, 19)

	for i := 0; i < 6; i++ {
		assert.Equal(t, 0.0, series.Values[i], "tick %d before file coverage", i)
	}
	want := []float64{1.0, 1.2, 1.4, 1.6, 1.8, 2.0, 2.2}
	for i, w := range want {
		assert.InDelta(t, w, series.Values[6+i], 1e-9, "tick %d inside coverage", 6+i)
	}
	for i := 13; i < 19; i++ {
		assert.Equal(t, 0.0, series.Values[i], "tick %d after file coverage", i)
	}
}

func TestCSVBacked_SeriesCustomFill(t *testing.T) {
	ts, err := OpenCSV(CSVParams[units.LengthUnit]{
		Path:      writeBackingFile(t, gaugeCSV),
		Units:     units.Meters,
		FillValue: -7,
	})
	require.NoError(t, err)

	frame, err := NewTimeFrameWithStep(
		time.Date(2020, 12, 31, 23, 0, 0, 0, time.UTC),
		time.Date(2021, 1, 1, 2, 0, 0, 0, time.UTC),
		10*time.Minute,
	)
	require.NoError(t, err)

	series, err := ts.Series(frame)
	require.NoError(t, err)
	assert.Equal(t, -7.0, series.Values[0])
	assert.Equal(t, -7.0, series.Values[18])
}

func TestCSVBacked_SeriesInterpolatesInteriorGaps(t *testing.T) {
	// Samples 40 minutes apart on a 10-minute grid: the middle tick has no
	// sample within one step and is linearly interpolated from the covered
	// ticks either side. Boundary ticks stay at fill.
	content := "2021-01-01 00:00:00,0\n2021-01-01 00:40:00,40\n"
	ts := openGauge(t, content)

	frame, err := NewTimeFrameWithStep(
		time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 1, 1, 1, 0, 0, 0, time.UTC),
		10*time.Minute,
	)
	require.NoError(t, err)

	series, err := ts.Series(frame)
	require.NoError(t, err)

	assert.Equal(t, 0.0, series.Values[0])
	assert.Equal(t, 0.0, series.Values[1], "snapped to the sample one step back")
	assert.InDelta(t, 20.0, series.Values[2], 1e-9, "interior gap is interpolated")
	assert.Equal(t, 40.0, series.Values[3], "snapped to the sample one step ahead")
	assert.Equal(t, 40.0, series.Values[4])
	assert.Equal(t, 0.0, series.Values[5], "outside coverage, never interpolated")
	assert.Equal(t, 0.0, series.Values[6])
}

func TestCSVBacked_SeriesNearestCadence(t *testing.T) {
	// A 15-minute native cadence on a 10-minute grid: each tick takes the
	// nearest sample within one step.
	content := "2021-01-01 00:00:00,1\n2021-01-01 00:15:00,2\n2021-01-01 00:30:00,3\n"
	ts := openGauge(t, content)

	frame, err := NewTimeFrameWithStep(
		time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, 1, 1, 0, 30, 0, 0, time.UTC),
		10*time.Minute,
	)
	require.NoError(t, err)

	series, err := ts.Series(frame)
	require.NoError(t, err)

	// Ticks at 0, 10, 20, 30 minutes: the 10 and 20 minute ticks are both
	// nearest the 15-minute sample.
	assert.Equal(t, []float64{1, 2, 2, 3}, series.Values)
}
