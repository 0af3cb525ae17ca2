// Package httpapi exposes the automation over HTTP: simulation endpoints
// that transform a posted CSV, a trigger for a full automation run and a
// health probe.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"ticketcsv/internal/logging"
	"ticketcsv/internal/pipeline"
	"ticketcsv/internal/status"
	"ticketcsv/internal/transform"
)

const (
	msgOK             = "The automation was successfully executed"
	msgSimulationFail = "Fail while executing simulation"
	msgAutomationFail = "Fail while executing automation"

	maxBody = 32 << 20
)

// Automation runs one source → transform → sinks cycle.
type Automation interface {
	Run(ctx context.Context) (*pipeline.Result, error)
}

type request struct {
	CSVContent   string `json:"csvContent"`
	Policy       string `json:"policy,omitempty"`
	StatusColumn string `json:"statusColumn,omitempty"`
	ShortRows    string `json:"shortRows,omitempty"`
}

type response struct {
	Data    string         `json:"data"`
	Message string         `json:"message"`
	Counts  map[string]int `json:"counts,omitempty"`
}

type Server struct {
	tr   transform.Client
	auto Automation
}

// NewRouter wires the routes. auto may be nil, in which case
// /run-automation answers 503.
func NewRouter(tr transform.Client, auto Automation) http.Handler {
	s := &Server{tr: tr, auto: auto}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Post("/simulate-external-support", s.simulate(status.PolicyDeterministic.String()))
	r.Post("/simulate-pending-resolution", s.simulate(status.PolicyConditionalRandom.String()))
	r.Post("/transform", s.simulate(""))
	r.Post("/run-automation", s.runAutomation)
	r.Get("/health", health)
	return r
}

// simulate transforms the posted CSV. A non-empty policy pins the endpoint
// to that policy; otherwise the request's policy (or the default) applies.
func (s *Server) simulate(policy string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logging.L().With("req", middleware.GetReqID(r.Context()))
		var req request
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
			log.Warn("bad simulation request", "err", err)
			writeJSON(w, http.StatusBadRequest, response{Message: msgSimulationFail})
			return
		}
		if policy != "" {
			req.Policy = policy
		}
		resp, err := s.tr.Transform(r.Context(), transform.Request{
			CSV:       req.CSVContent,
			Policy:    req.Policy,
			Column:    req.StatusColumn,
			ShortRows: req.ShortRows,
		})
		if err != nil {
			log.Error("simulation failed", "err", err)
			writeJSON(w, codeFor(err), response{Message: msgSimulationFail})
			return
		}
		log.Info("simulation finished", "policy", resp.Policy, "rows", resp.Rows)
		writeJSON(w, http.StatusOK, response{Data: resp.CSV, Message: msgOK, Counts: resp.Counts})
	}
}

func (s *Server) runAutomation(w http.ResponseWriter, r *http.Request) {
	log := logging.L().With("req", middleware.GetReqID(r.Context()))
	if s.auto == nil {
		writeJSON(w, http.StatusServiceUnavailable, response{Message: msgAutomationFail})
		return
	}
	res, err := s.auto.Run(r.Context())
	if err != nil {
		log.Error("automation failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, response{Message: msgAutomationFail})
		return
	}
	log.Info("automation finished", "run", res.ID, "rows", res.Rows, "empty", res.Empty)
	writeJSON(w, http.StatusOK, response{Data: res.CSV, Message: msgOK, Counts: res.Counts})
}

func health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct{}{})
}

func codeFor(err error) int {
	switch {
	case errors.Is(err, status.ErrMalformedInput),
		errors.Is(err, status.ErrSchemaMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, status.ErrUnknownPolicy),
		errors.Is(err, status.ErrUnknownShape):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logging.L().Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"took", time.Since(start),
			"req", middleware.GetReqID(r.Context()))
	})
}
