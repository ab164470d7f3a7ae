package forcing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/flood-forcing/internal/observability"
	"github.com/couchcryptid/flood-forcing/internal/timeseries"
)

// Kind identifies the physical quantity a forcing drives at the model
// boundary.
type Kind string

const (
	KindRainfall      Kind = "rainfall"
	KindWindSpeed     Kind = "wind_speed"
	KindWindDirection Kind = "wind_direction"
	KindDischarge     Kind = "discharge"
	KindWaterLevel    Kind = "water_level"
)

var knownKinds = map[Kind]struct{}{
	KindRainfall:      {},
	KindWindSpeed:     {},
	KindWindDirection: {},
	KindDischarge:     {},
	KindWaterLevel:    {},
}

// Valid reports whether k names a supported forcing kind.
func (k Kind) Valid() bool {
	_, ok := knownKinds[k]
	return ok
}

// Timeseries produces values on a frame's grid. Synthetic and file-backed
// sources both satisfy it.
type Timeseries interface {
	Series(frame timeseries.TimeFrame) (timeseries.Series, error)
}

// Forcing pairs a source timeseries with the kind it drives.
type Forcing struct {
	Kind   Kind
	Source Timeseries
}

// Result is one computed forcing: the series on the requested frame plus the
// time it was generated.
type Result struct {
	Kind        Kind
	Series      timeseries.Series
	GeneratedAt time.Time
}

// Engine computes sets of forcings on a shared time frame.
type Engine struct {
	logger  *slog.Logger
	metrics *observability.Metrics
	ready   atomic.Bool
}

// NewEngine creates an Engine with the given observability.
func NewEngine(logger *slog.Logger, metrics *observability.Metrics) *Engine {
	return &Engine{logger: logger, metrics: metrics}
}

// CheckReadiness returns nil once the engine has served at least one
// computation, or an error describing why the service is not yet ready.
func (e *Engine) CheckReadiness(_ context.Context) error {
	if !e.ready.Load() {
		return errors.New("engine has not computed any forcings yet")
	}
	return nil
}

// ComputeAll evaluates every forcing on the frame. Sources are independent,
// so they run concurrently; results keep the input order. The first failure
// cancels the remaining work and is returned.
func (e *Engine) ComputeAll(ctx context.Context, frame timeseries.TimeFrame, forcings []Forcing) ([]Result, error) {
	e.metrics.ComputeRequests.Inc()
	start := clock.Now()

	for _, f := range forcings {
		if !f.Kind.Valid() {
			e.metrics.ComputeErrors.Inc()
			return nil, fmt.Errorf("%w: unknown forcing kind %q", timeseries.ErrValidation, f.Kind)
		}
		if f.Source == nil {
			e.metrics.ComputeErrors.Inc()
			return nil, fmt.Errorf("%w: forcing %q has no source", timeseries.ErrValidation, f.Kind)
		}
	}

	results := make([]Result, len(forcings))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range forcings {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			series, err := f.Source.Series(frame)
			if err != nil {
				return fmt.Errorf("compute %s: %w", f.Kind, err)
			}
			results[i] = Result{Kind: f.Kind, Series: series, GeneratedAt: clock.Now()}
			e.metrics.ForcingsComputed.WithLabelValues(string(f.Kind)).Inc()
			e.metrics.SeriesPoints.Observe(float64(series.Len()))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		e.metrics.ComputeErrors.Inc()
		e.logger.Error("forcing computation failed", "error", err)
		return nil, err
	}

	e.metrics.ComputeDuration.Observe(clock.Since(start).Seconds())
	e.ready.Store(true)
	e.logger.Info("forcings computed",
		"count", len(forcings),
		"step", frame.TimeStep(),
	)
	return results, nil
}
