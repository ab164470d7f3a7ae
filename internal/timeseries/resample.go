package timeseries

import (
	"math"
	"time"
)

// resampleUniform projects samples defined on a uniform local interval onto
// a frame's full tick grid. The local interval [offStart, offEnd] is an
// offset from the frame start and carries the same tick spacing as the
// frame.
//
// Policy decisions, relied on as contracts throughout the forcing layer:
//
//   - When the sample count disagrees with the local tick count (samples
//     from a file with a different native cadence), the longer side is
//     truncated to the shorter length before samples are assigned to ticks.
//     Synthetic curves always agree by construction; for foreign cadences a
//     partial assignment beats guessing an alignment, and the trailing ticks
//     that lose their sample fall back to fill like any uncovered tick.
//   - Ticks strictly outside the local interval are always exactly fill,
//     never interpolated from neighbors.
//   - Ticks inside the interval snap to the nearest local sample, but only
//     when one lies within a single grid step; a tick exactly half a step
//     between two samples snaps to the later one.
func resampleUniform(samples []float64, offStart, offEnd time.Duration, frame TimeFrame, fill float64) Series {
	step := frame.TimeStep()
	ticks := frame.Ticks()
	localStart := frame.Start().Add(offStart)
	localEnd := frame.Start().Add(offEnd)

	nLocal := tickCount(localStart, localEnd, step)
	if len(samples) < nLocal {
		nLocal = len(samples)
	}

	values := make([]float64, len(ticks))
	for i, t := range ticks {
		if t.Before(localStart) || t.After(localEnd) || nLocal == 0 {
			values[i] = fill
			continue
		}
		j := int(math.Round(float64(t.Sub(localStart)) / float64(step)))
		if j >= nLocal {
			j = nLocal - 1
		}
		if delta := t.Sub(localStart.Add(time.Duration(j) * step)); delta > step || delta < -step {
			values[i] = fill
			continue
		}
		values[i] = samples[j]
	}
	return Series{Times: ticks, Values: values}
}
