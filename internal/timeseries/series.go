package timeseries

import "time"

// Series is a timestamp-indexed value sequence at a fixed cadence, the
// produced-data contract of every resampling call. The index is always
// sorted ascending; column semantics beyond the index belong to the caller.
type Series struct {
	// Name labels the value column. The engine is agnostic to physical
	// meaning, so callers set this to their forcing kind.
	Name   string
	Times  []time.Time
	Values []float64
}

// Len returns the number of points.
func (s Series) Len() int { return len(s.Values) }

// At returns the i-th (timestamp, value) point.
func (s Series) At(i int) (time.Time, float64) { return s.Times[i], s.Values[i] }

// Integral numerically integrates the series with the trapezoid rule,
// expressing time in multiples of per (e.g. per=time.Hour integrates an
// mm/hr series into mm).
func (s Series) Integral(per time.Duration) float64 {
	var total float64
	for i := 1; i < len(s.Values); i++ {
		dt := float64(s.Times[i].Sub(s.Times[i-1])) / float64(per)
		total += (s.Values[i] + s.Values[i-1]) / 2 * dt
	}
	return total
}

// trapezoid integrates uniformly spaced samples with the given spacing.
func trapezoid(values []float64, spacing float64) float64 {
	var total float64
	for i := 1; i < len(values); i++ {
		total += (values[i] + values[i-1]) / 2 * spacing
	}
	return total
}
