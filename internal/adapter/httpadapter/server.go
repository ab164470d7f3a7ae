// Package httpadapter exposes the forcing engine over HTTP: health,
// readiness, and metrics endpoints plus a compute route that evaluates a set
// of synthetic forcings on a requested time frame.
package httpadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/flood-forcing/internal/forcing"
	"github.com/couchcryptid/flood-forcing/internal/timeseries"
	"github.com/couchcryptid/flood-forcing/internal/units"
)

// Engine computes forcing sets for incoming requests.
type Engine interface {
	ComputeAll(ctx context.Context, frame timeseries.TimeFrame, forcings []forcing.Forcing) ([]forcing.Result, error)
	CheckReadiness(ctx context.Context) error
}

// Server exposes the engine plus health, readiness, and metrics routes.
type Server struct {
	httpServer *http.Server
	engine     Engine
	site       *timeseries.SCSDefaults
	logger     *slog.Logger
}

// NewServer creates an HTTP server. site carries the deployment's fallback
// SCS distribution and may be nil.
func NewServer(addr string, engine Engine, site *timeseries.SCSDefaults, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		engine: engine,
		site:   site,
		logger: logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/forcings:compute", s.handleCompute)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.engine.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

type quantityDoc struct {
	Value float64 `json:"value"`
	Units string  `json:"units"`
}

type timeFrameDoc struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	// StepSeconds overrides the derived grid spacing when positive.
	StepSeconds int `json:"step_seconds,omitempty"`
}

type forcingDoc struct {
	Kind       string       `json:"kind"`
	ShapeType  string       `json:"shape_type"`
	Duration   quantityDoc  `json:"duration"`
	PeakTime   quantityDoc  `json:"peak_time"`
	PeakValue  *quantityDoc `json:"peak_value,omitempty"`
	Cumulative *quantityDoc `json:"cumulative,omitempty"`
	FillValue  float64      `json:"fill_value"`
	SCSFile    string       `json:"scs_file_name,omitempty"`
	SCSType    string       `json:"scs_type,omitempty"`
}

type computeRequest struct {
	TimeFrame timeFrameDoc `json:"time_frame"`
	Forcings  []forcingDoc `json:"forcings"`
}

type seriesDoc struct {
	Kind        string      `json:"kind"`
	GeneratedAt time.Time   `json:"generated_at"`
	Times       []time.Time `json:"times"`
	Values      []float64   `json:"values"`
}

type computeResponse struct {
	Results []seriesDoc `json:"results"`
}

func (s *Server) handleCompute(w http.ResponseWriter, r *http.Request) {
	var req computeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}
	if len(req.Forcings) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("at least one forcing is required"))
		return
	}

	frame, err := buildFrame(req.TimeFrame)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	forcings := make([]forcing.Forcing, 0, len(req.Forcings))
	for _, doc := range req.Forcings {
		f, err := s.buildForcing(doc)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		forcings = append(forcings, f)
	}

	results, err := s.engine.ComputeAll(r.Context(), frame, forcings)
	if err != nil {
		status := http.StatusInternalServerError
		if isBadRequest(err) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err)
		return
	}

	resp := computeResponse{Results: make([]seriesDoc, len(results))}
	for i, res := range results {
		resp.Results[i] = seriesDoc{
			Kind:        string(res.Kind),
			GeneratedAt: res.GeneratedAt,
			Times:       res.Series.Times,
			Values:      res.Series.Values,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func buildFrame(doc timeFrameDoc) (timeseries.TimeFrame, error) {
	if doc.StepSeconds > 0 {
		return timeseries.NewTimeFrameWithStep(doc.Start, doc.End, time.Duration(doc.StepSeconds)*time.Second)
	}
	return timeseries.NewTimeFrame(doc.Start, doc.End)
}

// buildForcing maps the request kind to its physical category and builds the
// synthetic source. The category switch is the one place the closed unit set
// meets the wire format.
func (s *Server) buildForcing(doc forcingDoc) (forcing.Forcing, error) {
	kind := forcing.Kind(doc.Kind)

	var (
		src forcing.Timeseries
		err error
	)
	switch kind {
	case forcing.KindRainfall:
		src, err = buildSynthetic[units.IntensityUnit](doc, s.site)
	case forcing.KindWindSpeed:
		src, err = buildSynthetic[units.VelocityUnit](doc, s.site)
	case forcing.KindWindDirection:
		src, err = buildSynthetic[units.DirectionUnit](doc, s.site)
	case forcing.KindDischarge:
		src, err = buildSynthetic[units.DischargeUnit](doc, s.site)
	case forcing.KindWaterLevel:
		src, err = buildSynthetic[units.LengthUnit](doc, s.site)
	default:
		return forcing.Forcing{}, fmt.Errorf("%w: unknown forcing kind %q", timeseries.ErrValidation, doc.Kind)
	}
	if err != nil {
		return forcing.Forcing{}, fmt.Errorf("forcing %q: %w", doc.Kind, err)
	}
	return forcing.Forcing{Kind: kind, Source: src}, nil
}

func buildSynthetic[U units.Unit](doc forcingDoc, site *timeseries.SCSDefaults) (forcing.Timeseries, error) {
	duration, err := units.NewFromString[units.TimeUnit](doc.Duration.Value, doc.Duration.Units)
	if err != nil {
		return nil, err
	}
	peakTime, err := units.NewFromString[units.TimeUnit](doc.PeakTime.Value, doc.PeakTime.Units)
	if err != nil {
		return nil, err
	}

	p := timeseries.SyntheticParams[U]{
		Shape:     timeseries.ShapeType(doc.ShapeType),
		Duration:  duration,
		PeakTime:  peakTime,
		FillValue: doc.FillValue,
		SCSFile:   doc.SCSFile,
		SCSType:   doc.SCSType,
	}
	if doc.PeakValue != nil {
		q, err := units.NewFromString[U](doc.PeakValue.Value, doc.PeakValue.Units)
		if err != nil {
			return nil, err
		}
		p.PeakValue = &q
	}
	if doc.Cumulative != nil {
		q, err := units.NewFromString[U](doc.Cumulative.Value, doc.Cumulative.Units)
		if err != nil {
			return nil, err
		}
		p.Cumulative = &q
	}
	return timeseries.NewSynthetic(p, site)
}

func isBadRequest(err error) bool {
	return errors.Is(err, timeseries.ErrValidation) ||
		errors.Is(err, timeseries.ErrUnsupportedShape) ||
		errors.Is(err, timeseries.ErrMissingConfiguration) ||
		errors.Is(err, units.ErrValidation) ||
		errors.Is(err, units.ErrInvalidUnit)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
