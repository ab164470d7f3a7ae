package timeseries

import (
	"fmt"
	"math"
	"time"
)

// ShapeType identifies a parametric curve family.
type ShapeType string

const (
	ShapeBlock    ShapeType = "block"
	ShapeTriangle ShapeType = "triangle"
	ShapeGaussian ShapeType = "gaussian"
	ShapeSCS      ShapeType = "scs"
)

// shapeInput is the unit-stripped view of synthetic parameters handed to a
// calculator. Times are hours relative to the shared frame origin, so
// calculators invoked with the same peak time and duration produce
// time-aligned arrays. Magnitudes stay in the caller's chosen units with
// intensities per hour.
type shapeInput struct {
	startHours float64
	endHours   float64
	peakHours  float64
	peakValue  float64 // valid when hasPeak
	cumulative float64 // valid when !hasPeak
	hasPeak    bool
	curve      *scsCurve // reference distribution, SCS only
}

func (in shapeInput) durationHours() float64 { return in.endHours - in.startHours }

// shapeCalculator turns parameters into one sample per tick of a time axis
// spanning [start, end] inclusive at the given spacing. Calculators are pure
// functions: deterministic, no hidden state, safe to call concurrently.
type shapeCalculator func(in shapeInput, step time.Duration) ([]float64, error)

var shapeCalculators = map[ShapeType]shapeCalculator{
	ShapeBlock:    calcBlock,
	ShapeTriangle: calcTriangle,
	ShapeGaussian: calcGaussian,
	ShapeSCS:      calcSCS,
}

// shapeTicks builds the local time axis in hours, start to end inclusive.
func shapeTicks(in shapeInput, step time.Duration) ([]float64, error) {
	if step <= 0 {
		return nil, fmt.Errorf("%w: time step must be positive, got %s", ErrValidation, step)
	}
	stepH := step.Hours()
	// The small slop keeps an end tick that lands on the grid from being
	// dropped to float rounding.
	n := int(math.Floor(in.durationHours()/stepH+1e-9)) + 1
	ticks := make([]float64, n)
	for i := range ticks {
		ticks[i] = in.startHours + float64(i)*stepH
	}
	return ticks, nil
}

// calcBlock produces a constant height over [start, end]. Cumulative-driven
// blocks spread the volume evenly so the area under the curve is exact.
func calcBlock(in shapeInput, step time.Duration) ([]float64, error) {
	ticks, err := shapeTicks(in, step)
	if err != nil {
		return nil, err
	}
	height := in.peakValue
	if !in.hasPeak {
		height = in.cumulative / in.durationHours()
	}
	values := make([]float64, len(ticks))
	for i := range values {
		values[i] = height
	}
	return values, nil
}

// calcTriangle ramps linearly up to the peak and back down to the end. The
// peak sits at the interval midpoint (start and end are derived as peak
// time +- duration/2), so a cumulative-driven height of 2*cumulative/duration
// makes the triangle area equal the cumulative volume.
func calcTriangle(in shapeInput, step time.Duration) ([]float64, error) {
	ticks, err := shapeTicks(in, step)
	if err != nil {
		return nil, err
	}
	height := in.peakValue
	if !in.hasPeak {
		height = 2 * in.cumulative / in.durationHours()
	}
	rise := in.peakHours - in.startHours
	fall := in.endHours - in.peakHours

	values := make([]float64, len(ticks))
	for i, t := range ticks {
		var v float64
		switch {
		case t <= in.peakHours && rise > 0:
			v = height * (t - in.startHours) / rise
		case t > in.peakHours && fall > 0:
			v = height * (in.endHours - t) / fall
		default:
			v = height
		}
		values[i] = math.Max(0, math.Min(v, height))
	}
	return values, nil
}

// calcGaussian centers a bell on the interval with sigma = duration/6, so
// 99.7% of the mass falls inside the window. Peak-driven curves scale the
// maximum; cumulative-driven curves normalize by the numerically integrated
// area so the final integral equals the cumulative volume.
func calcGaussian(in shapeInput, step time.Duration) ([]float64, error) {
	ticks, err := shapeTicks(in, step)
	if err != nil {
		return nil, err
	}
	mean := (in.startHours + in.endHours) / 2
	sigma := in.durationHours() / 6

	values := make([]float64, len(ticks))
	for i, t := range ticks {
		z := (t - mean) / sigma
		values[i] = math.Exp(-0.5 * z * z)
	}

	if in.hasPeak {
		for i := range values {
			values[i] *= in.peakValue
		}
		return values, nil
	}

	area := trapezoid(values, step.Hours())
	if area <= 0 {
		return nil, fmt.Errorf("%w: gaussian area degenerate for step %s", ErrValidation, step)
	}
	scale := in.cumulative / area
	for i := range values {
		values[i] *= scale
	}
	return values, nil
}

// calcSCS shapes the cumulative volume after a named reference storm
// distribution. The reference curve's time axis is rescaled to the duration
// and its cumulative fractions differentiated into instantaneous intensity,
// which is then interpolated onto the tick grid. Differentiation plus
// interpolation does not exactly reproduce the input cumulative, so the
// result is rescaled a second time against its own trapezoid area.
func calcSCS(in shapeInput, step time.Duration) ([]float64, error) {
	if in.curve == nil {
		return nil, fmt.Errorf("%w: SCS shape has no reference curve", ErrMissingConfiguration)
	}
	ticks, err := shapeTicks(in, step)
	if err != nil {
		return nil, err
	}

	durH := in.durationHours()
	nodes := in.curve.fractions
	cum := in.curve.cumFractions

	// Midpoint intensity between consecutive reference nodes.
	mids := make([]float64, 0, len(nodes)-1)
	rates := make([]float64, 0, len(nodes)-1)
	for i := 1; i < len(nodes); i++ {
		dt := (nodes[i] - nodes[i-1]) * durH
		if dt <= 0 {
			continue
		}
		mids = append(mids, in.startHours+(nodes[i]+nodes[i-1])/2*durH)
		rates = append(rates, in.cumulative*(cum[i]-cum[i-1])/dt)
	}
	if len(mids) < 2 {
		return nil, fmt.Errorf("%w: reference curve has fewer than two usable segments", ErrMalformedFile)
	}

	values := make([]float64, len(ticks))
	for i, t := range ticks {
		values[i] = interpClamped(mids, rates, t)
	}

	area := trapezoid(values, step.Hours())
	if area > 0 {
		scale := in.cumulative / area
		for i := range values {
			values[i] *= scale
		}
	}
	return values, nil
}

// interpClamped linearly interpolates y(x) over sorted xs, holding the edge
// values outside the node range.
func interpClamped(xs, ys []float64, x float64) float64 {
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[len(xs)-1] {
		return ys[len(ys)-1]
	}
	for i := 1; i < len(xs); i++ {
		if x <= xs[i] {
			frac := (x - xs[i-1]) / (xs[i] - xs[i-1])
			return ys[i-1] + frac*(ys[i]-ys[i-1])
		}
	}
	return ys[len(ys)-1]
}
