package timeseries

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/flood-forcing/internal/units"
)

// Timestamp layouts accepted in backing data files. The space-separated
// layout is canonical; RFC 3339 is also accepted because gauge exports
// commonly use it.
var csvTimeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// CSVParams identifies a backing data file and the physical units its
// values carry.
type CSVParams[U units.Unit] struct {
	Path  string
	Units U
	// FillValue pads frame ticks outside the file's covered interval.
	FillValue float64
}

// CSVBacked is a timeseries loaded from a delimited file: first column a
// timestamp, remaining columns numeric data. The file is read eagerly at
// construction so malformed input fails fast. When a file carries several
// data columns only the first is kept; column semantics are the caller's.
type CSVBacked[U units.Unit] struct {
	params CSVParams[U]
	times  []time.Time
	values []float64
}

// OpenCSV loads a backing file. It fails with ErrEmptyFile when the file
// has no content and ErrMalformedFile when no row parses into a timestamp
// plus at least one data column. Rows whose timestamp does not parse are
// dropped rather than failing the whole load.
func OpenCSV[U units.Unit](p CSVParams[U]) (*CSVBacked[U], error) {
	if _, err := units.Parse[U](string(p.Units)); err != nil {
		return nil, err
	}

	f, err := os.Open(p.Path)
	if err != nil {
		return nil, fmt.Errorf("open backing file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedFile, p.Path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, p.Path)
	}

	ts := &CSVBacked[U]{params: p}
	for _, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("%w: %s needs a timestamp plus at least one data column", ErrMalformedFile, p.Path)
		}
		// A row whose first field is not a timestamp is either the header
		// (auto-detected, optional) or noise; both are dropped.
		when, ok := parseCSVTime(row[0])
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(row[1]), 64)
		if err != nil {
			continue
		}
		ts.times = append(ts.times, when)
		ts.values = append(ts.values, v)
	}
	if len(ts.times) == 0 {
		return nil, fmt.Errorf("%w: %s has no parseable data rows", ErrMalformedFile, p.Path)
	}

	sort.Sort(byTime{ts.times, ts.values})
	return ts, nil
}

// Params returns a copy of the file parameters.
func (c *CSVBacked[U]) Params() CSVParams[U] { return c.params }

// Data returns the raw loaded samples at the file's native cadence. The
// step argument exists to satisfy the shared timeseries contract; file
// cadence is whatever was stored.
func (c *CSVBacked[U]) Data(_ time.Duration) ([]float64, error) {
	out := make([]float64, len(c.values))
	copy(out, c.values)
	return out, nil
}

// ReadTimeFrame derives the frame implied by the file's own first and last
// timestamps, for callers that need the native coverage before building
// their simulation window.
func (c *CSVBacked[U]) ReadTimeFrame() (TimeFrame, error) {
	return NewTimeFrame(c.times[0], c.times[len(c.times)-1])
}

// Series clips the loaded samples to the overlap between the file's covered
// interval and the frame, reindexes them onto the frame grid with a
// nearest-neighbor snap limited to one grid step, linearly interpolates any
// interior gaps, and fills everything else with the fill value.
func (c *CSVBacked[U]) Series(frame TimeFrame) (Series, error) {
	step := frame.TimeStep()
	ticks := frame.Ticks()
	first, last := c.times[0], c.times[len(c.times)-1]

	values := make([]float64, len(ticks))
	covered := make([]bool, len(ticks))
	for i, t := range ticks {
		values[i] = c.params.FillValue
		if t.Before(first) || t.After(last) {
			continue
		}
		if j, ok := c.nearest(t, step); ok {
			values[i] = c.values[j]
			covered[i] = true
		}
	}
	interpolateGaps(ticks, values, covered)
	return Series{Times: ticks, Values: values}, nil
}

// nearest finds the sample closest to t, accepting it only within one grid
// step. A timestamp exactly half way between samples snaps to the later one.
func (c *CSVBacked[U]) nearest(t time.Time, step time.Duration) (int, bool) {
	i := sort.Search(len(c.times), func(k int) bool { return !c.times[k].Before(t) })
	best := -1
	var bestDelta time.Duration
	// The candidate at or after t is checked first, so a tie keeps the
	// later sample.
	for _, k := range []int{i, i - 1} {
		if k < 0 || k >= len(c.times) {
			continue
		}
		delta := absDuration(t.Sub(c.times[k]))
		if best == -1 || delta < bestDelta {
			best, bestDelta = k, delta
		}
	}
	if best < 0 || bestDelta > step {
		return 0, false
	}
	return best, true
}

// interpolateGaps linearly fills uncovered ticks that sit strictly between
// covered ticks. Ticks outside the covered span keep the fill value:
// boundary padding is never interpolated from neighbors.
func interpolateGaps(ticks []time.Time, values []float64, covered []bool) {
	prev := -1
	for i := range ticks {
		if !covered[i] {
			continue
		}
		if prev >= 0 && i-prev > 1 {
			span := ticks[i].Sub(ticks[prev])
			for k := prev + 1; k < i; k++ {
				frac := float64(ticks[k].Sub(ticks[prev])) / float64(span)
				values[k] = values[prev] + frac*(values[i]-values[prev])
			}
		}
		prev = i
	}
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// byTime sorts parallel time/value slices by timestamp.
type byTime struct {
	times  []time.Time
	values []float64
}

func (b byTime) Len() int           { return len(b.times) }
func (b byTime) Less(i, j int) bool { return b.times[i].Before(b.times[j]) }
func (b byTime) Swap(i, j int) {
	b.times[i], b.times[j] = b.times[j], b.times[i]
	b.values[i], b.values[j] = b.values[j], b.values[i]
}

func parseCSVTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range csvTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
