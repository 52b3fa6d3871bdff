// Package server exposes a shared growth model over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/san-kum/growthlab/internal/config"
	"github.com/san-kum/growthlab/internal/export"
	"github.com/san-kum/growthlab/internal/growth"
	"github.com/san-kum/growthlab/internal/metrics"
)

// MaxSteps caps the path length of GET /simulate.
const MaxSteps = 100000

// Server serves one growth.Model. Every handler reads a consistent
// parameter snapshot; PUT /params swaps parameters atomically.
type Server struct {
	Model   *growth.Model
	Metrics *Metrics
	Logger  *slog.Logger
}

func New(m *growth.Model, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{Model: m, Metrics: NewMetrics(), Logger: logger}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/params", s.GetParams)
	r.Put("/params", s.PutParams)
	r.Get("/steady-state", s.GetSteadyState)
	r.Get("/simulate", s.GetSimulate)
	r.Get("/motion", s.GetMotion)
	r.Method(http.MethodGet, "/metrics", s.Metrics.Handler())
	return r
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		code := ww.Status()
		if code == 0 {
			code = http.StatusOK
		}
		s.Metrics.Requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
		s.Logger.Debug("request",
			"method", r.Method,
			"route", route,
			"code", code,
			"duration", time.Since(start),
		)
	})
}

// GetParams handles GET /params.
func (s *Server) GetParams(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Model.Params())
}

// PutParams handles PUT /params. The body is a parameter set; the response
// is the comparative report of the replacement.
func (s *Server) PutParams(w http.ResponseWriter, r *http.Request) {
	var set growth.ParameterSet
	if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	p, err := growth.Decode(set)
	if err != nil {
		code := statusFor(err)
		if code == http.StatusInternalServerError {
			code = http.StatusBadRequest
		}
		writeError(w, code, err)
		return
	}

	report, err := s.Model.ReplaceParameters(p)
	if err != nil {
		s.Logger.Warn("replace parameters failed", "params", p.String(), "error", err)
		writeError(w, statusFor(err), err)
		return
	}
	s.Metrics.Replacements.Inc()
	s.Logger.Info("parameters replaced",
		"params", p.String(),
		"k_star_change", report.CapitalChangePct,
	)
	writeJSON(w, http.StatusOK, report)
}

// GetSteadyState handles GET /steady-state.
func (s *Server) GetSteadyState(w http.ResponseWriter, r *http.Request) {
	ss, err := s.Model.SteadyState()
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, ss)
}

// GetSimulate handles GET /simulate?k0=&steps=.
func (s *Server) GetSimulate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	k0, err := floatParam(q.Get("k0"), config.DefaultInitialCapital)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	steps := config.DefaultSteps
	if v := q.Get("steps"); v != "" {
		steps, err = strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("steps: %w", growth.ErrInvalidStepCount))
			return
		}
	}
	if steps > MaxSteps {
		writeError(w, http.StatusBadRequest, fmt.Errorf("steps above %d: %w", MaxSteps, growth.ErrInvalidStepCount))
		return
	}

	// Take the snapshot once so the steady state and the path agree.
	model := growth.New(s.Model.Params())
	run := export.Run{Params: model.Params(), InitialCapital: k0, Steps: steps}

	var ms []metrics.Metric
	if ss, err := model.SteadyState(); err == nil {
		run.SteadyState = &ss
		ms = metrics.Default(ss.Capital)
	}

	d, err := model.SimulateDeltas(k0, steps, metrics.Observers(ms)...)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if !d.Path.IsValid() {
		writeError(w, http.StatusUnprocessableEntity, fmt.Errorf("simulate: path diverged: %w", growth.ErrInvalidDomain))
		return
	}
	run.Diagnostics = d
	if len(ms) > 0 {
		run.Metrics = metrics.Collect(ms)
	}
	s.Metrics.Steps.Observe(float64(steps))
	writeJSON(w, http.StatusOK, run)
}

type motionResponse struct {
	K          float64 `json:"k"`
	KDot       float64 `json:"k_dot"`
	GrowthRate float64 `json:"growth_rate"`
	Output     float64 `json:"output"`
}

// GetMotion handles GET /motion?k=.
func (s *Server) GetMotion(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("k")
	if raw == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing query parameter k"))
		return
	}
	k, err := floatParam(raw, 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	model := growth.New(s.Model.Params())
	resp := motionResponse{K: k}
	if resp.KDot, err = model.EquationOfMotion(k); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if resp.GrowthRate, err = model.GrowthRate(k); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	if resp.Output, err = model.Production(k); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// statusFor maps model failures onto HTTP status codes: malformed input is
// the caller's fault, a well-formed but degenerate model is unprocessable.
func statusFor(err error) int {
	switch {
	case errors.Is(err, growth.ErrMissingParameter),
		errors.Is(err, growth.ErrAliasConflict),
		errors.Is(err, growth.ErrInvalidStepCount):
		return http.StatusBadRequest
	case errors.Is(err, growth.ErrDegenerateDenominator),
		errors.Is(err, growth.ErrInvalidDomain):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func floatParam(raw string, def float64) (float64, error) {
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid number %q", raw)
	}
	return v, nil
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes before writing the status so an unencodable value
// reports 500 instead of an empty 200.
func writeJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
		buf.Reset()
		code = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Error("write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, errorResponse{Error: err.Error()})
}
