package timeseries

import (
	"fmt"
	"math"
	"time"
)

// gridPoints is the nominal number of steps a simulation window is divided
// into when no explicit step is requested.
const gridPoints = 1000

// TimeFrame is a simulation window with a uniform tick spacing. The step is
// derived from the window, not mutable state: to "change" a frame, construct
// a new one. Every downstream resampling operation depends on the step being
// reproducible from start and end alone.
type TimeFrame struct {
	start time.Time
	end   time.Time
	step  time.Duration // 0 means derived from the window
}

// NewTimeFrame builds a frame whose step is duration/1000 rounded to whole
// seconds, floored at one second so short windows still produce a grid.
func NewTimeFrame(start, end time.Time) (TimeFrame, error) {
	if !start.Before(end) {
		return TimeFrame{}, fmt.Errorf("%w: start %s must be before end %s",
			ErrValidation, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return TimeFrame{start: start, end: end}, nil
}

// NewTimeFrameWithStep builds a frame with an explicit tick spacing, for
// callers that must match an external cadence (a model's output interval, a
// gauge's native sampling).
func NewTimeFrameWithStep(start, end time.Time, step time.Duration) (TimeFrame, error) {
	tf, err := NewTimeFrame(start, end)
	if err != nil {
		return TimeFrame{}, err
	}
	if step <= 0 {
		return TimeFrame{}, fmt.Errorf("%w: time step must be positive, got %s", ErrValidation, step)
	}
	tf.step = step
	return tf, nil
}

// Start returns the window start.
func (tf TimeFrame) Start() time.Time { return tf.start }

// End returns the window end.
func (tf TimeFrame) End() time.Time { return tf.end }

// Duration returns the window length.
func (tf TimeFrame) Duration() time.Duration { return tf.end.Sub(tf.start) }

// TimeStep returns the tick spacing.
func (tf TimeFrame) TimeStep() time.Duration {
	if tf.step > 0 {
		return tf.step
	}
	secs := math.Round(tf.Duration().Seconds() / gridPoints)
	if secs < 1 {
		secs = 1
	}
	return time.Duration(secs) * time.Second
}

// Ticks returns the full tick sequence from start to end inclusive, spaced
// by TimeStep. The end tick is included only when it lands on the grid.
func (tf TimeFrame) Ticks() []time.Time {
	step := tf.TimeStep()
	n := tickCount(tf.start, tf.end, step)
	ticks := make([]time.Time, n)
	for i := range ticks {
		ticks[i] = tf.start.Add(time.Duration(i) * step)
	}
	return ticks
}

func (tf TimeFrame) String() string {
	return fmt.Sprintf("TimeFrame{%s %s step=%s}",
		tf.start.Format(time.RFC3339), tf.end.Format(time.RFC3339), tf.TimeStep())
}

// tickCount is the number of grid ticks in [start, end] at the given step.
func tickCount(start, end time.Time, step time.Duration) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start)/step) + 1
}
