package timeseries

import (
	"fmt"
	"time"

	"github.com/couchcryptid/flood-forcing/internal/units"
)

// SyntheticParams describes a parametric curve in category U: the shape
// selector plus the handful of descriptive attributes the calculators need.
// Exactly one of PeakValue and Cumulative must be set; the SCS shape is
// always cumulative-driven.
type SyntheticParams[U units.Unit] struct {
	Shape     ShapeType
	Duration  units.Quantity[units.TimeUnit]
	PeakTime  units.Quantity[units.TimeUnit]
	PeakValue *units.Quantity[U]
	// Cumulative is the total area the curve must produce, as an
	// alternative to specifying its peak.
	Cumulative *units.Quantity[U]
	// FillValue pads frame ticks outside the curve's own interval.
	FillValue float64
	// SCSFile and SCSType select the reference distribution for the SCS
	// shape; when empty the factory falls back to the site defaults.
	SCSFile string
	SCSType string
}

// Synthetic is a parametric timeseries: a parameter container bound to a
// shape calculator. Instances are immutable after construction.
type Synthetic[U units.Unit] struct {
	params SyntheticParams[U]
	calc   shapeCalculator
	curve  *scsCurve // resolved eagerly, SCS only
}

// NewSynthetic validates parameters and binds the matching calculator. For
// the SCS shape the reference curve is resolved here — from the parameters
// if present, else from the site defaults — and loaded eagerly so malformed
// configuration fails at construction.
func NewSynthetic[U units.Unit](p SyntheticParams[U], site *SCSDefaults) (*Synthetic[U], error) {
	calc, ok := shapeCalculators[p.Shape]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedShape, p.Shape)
	}

	durSec, err := p.Duration.Convert(units.Seconds)
	if err != nil {
		return nil, err
	}
	if durSec <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %s", ErrValidation, p.Duration)
	}
	if _, err := p.PeakTime.Convert(units.Seconds); err != nil {
		return nil, err
	}

	if p.Shape == ShapeSCS {
		if p.PeakValue != nil {
			return nil, fmt.Errorf("%w: SCS shape is cumulative-driven, peak value is forbidden", ErrValidation)
		}
		if p.Cumulative == nil {
			return nil, fmt.Errorf("%w: SCS shape requires a cumulative volume", ErrValidation)
		}
	}
	if p.PeakValue == nil && p.Cumulative == nil {
		return nil, fmt.Errorf("%w: either peak value or cumulative must be set", ErrValidation)
	}
	if p.PeakValue != nil && p.Cumulative != nil {
		return nil, fmt.Errorf("%w: peak value and cumulative are mutually exclusive", ErrValidation)
	}

	ts := &Synthetic[U]{params: p, calc: calc}
	if p.Shape == ShapeSCS {
		file, stormType := p.SCSFile, p.SCSType
		if stormType == "" {
			if site == nil || site.StormType == "" {
				return nil, fmt.Errorf("%w: no storm type given and no site default", ErrMissingConfiguration)
			}
			file, stormType = site.File, site.StormType
		}
		curve, err := loadSCSCurve(file, stormType)
		if err != nil {
			return nil, err
		}
		ts.curve = curve
	}
	return ts, nil
}

// Params returns a copy of the parameters, e.g. to re-derive a concrete
// instance of the same shape.
func (s *Synthetic[U]) Params() SyntheticParams[U] { return s.params }

// Clone builds an independent timeseries from the same parameters.
func (s *Synthetic[U]) Clone() *Synthetic[U] {
	clone := *s
	return &clone
}

// StartOffset is the derived curve start, peak time - duration/2, relative
// to the frame origin. Read-only: recomputed from the stored fields.
func (s *Synthetic[U]) StartOffset() time.Duration {
	return s.peakOffset() - s.durationSpan()/2
}

// EndOffset is the derived curve end, peak time + duration/2.
func (s *Synthetic[U]) EndOffset() time.Duration {
	return s.peakOffset() + s.durationSpan()/2
}

func (s *Synthetic[U]) peakOffset() time.Duration {
	sec, _ := s.params.PeakTime.Convert(units.Seconds)
	return time.Duration(sec * float64(time.Second))
}

func (s *Synthetic[U]) durationSpan() time.Duration {
	sec, _ := s.params.Duration.Convert(units.Seconds)
	return time.Duration(sec * float64(time.Second))
}

// Data computes the raw curve samples at the given spacing, one value per
// tick of [start, end] inclusive.
func (s *Synthetic[U]) Data(step time.Duration) ([]float64, error) {
	if s.calc == nil {
		// Construction validates the shape; this is the defensive branch.
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedShape, s.params.Shape)
	}
	in, err := s.shapeInput()
	if err != nil {
		return nil, err
	}
	return s.calc(in, step)
}

// Series computes the curve at the frame's cadence and projects it onto the
// frame grid, padding ticks outside the curve's interval with the fill
// value.
func (s *Synthetic[U]) Series(frame TimeFrame) (Series, error) {
	data, err := s.Data(frame.TimeStep())
	if err != nil {
		return Series{}, err
	}
	return resampleUniform(data, s.StartOffset(), s.EndOffset(), frame, s.params.FillValue), nil
}

func (s *Synthetic[U]) shapeInput() (shapeInput, error) {
	durH, err := s.params.Duration.Convert(units.Hours)
	if err != nil {
		return shapeInput{}, err
	}
	peakH, err := s.params.PeakTime.Convert(units.Hours)
	if err != nil {
		return shapeInput{}, err
	}
	in := shapeInput{
		startHours: peakH - durH/2,
		endHours:   peakH + durH/2,
		peakHours:  peakH,
		curve:      s.curve,
	}
	if s.params.PeakValue != nil {
		in.peakValue = s.params.PeakValue.Value()
		in.hasPeak = true
	} else {
		in.cumulative = s.params.Cumulative.Value()
	}
	return in, nil
}
