// Package server exposes the scouting pipeline over HTTP.
//
// Each request to GET /api/github-candidates runs one pipeline invocation
// with the query parameters as its request:
//
//	GET /api/github-candidates?repoLimit=10&offset=0&maxCandidatesPerRepo=1
//	    &requiredTechnologies=solidity,javascript,web3&requireAllTechnologies=false
//
// Missing parameters take the pipeline defaults. The response is
// {"candidatesWithInfo": [...], "processedRepos": n}; failures are reported
// as {"error": "..."} with status 400 for malformed parameters and 500 for
// anything else.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/ecoscout/pkg/buildinfo"
	"github.com/matzehuels/ecoscout/pkg/candidate"
	pkgerrors "github.com/matzehuels/ecoscout/pkg/errors"
	"github.com/matzehuels/ecoscout/pkg/pipeline"
)

// CandidatesPath is the route of the pipeline invocation surface.
const CandidatesPath = "/api/github-candidates"

const shutdownTimeout = 10 * time.Second

// Scout runs the pipeline. *pipeline.Runner satisfies it.
type Scout interface {
	Run(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

var _ Scout = (*pipeline.Runner)(nil)

// Server serves the candidates endpoint.
type Server struct {
	scout  Scout
	logger *log.Logger
	router chi.Router
}

// New creates a server backed by scout. If logger is nil, the default
// logger is used.
func New(scout Scout, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{scout: scout, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)
	r.Get("/healthz", s.handleHealth)
	r.Get(CandidatesPath, s.handleCandidates)
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// candidatesResponse is the success body of the candidates endpoint.
type candidatesResponse struct {
	CandidatesWithInfo []candidate.Enriched `json:"candidatesWithInfo"`
	ProcessedRepos     int                  `json:"processedRepos"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	req, err := ParseRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: pkgerrors.UserMessage(err)})
		return
	}

	res, err := s.scout.Run(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if pkgerrors.IsValidation(err) {
			status = http.StatusBadRequest
		}
		logger(r, s.logger).Error("pipeline run failed", "err", err)
		writeJSON(w, status, errorResponse{Error: pkgerrors.UserMessage(err)})
		return
	}

	out := candidatesResponse{
		CandidatesWithInfo: res.Candidates,
		ProcessedRepos:     res.ProcessedRepos,
	}
	if out.CandidatesWithInfo == nil {
		out.CandidatesWithInfo = []candidate.Enriched{}
	}
	writeJSON(w, http.StatusOK, out)
}

// ParseRequest builds a pipeline request from query parameters. Absent
// parameters take their defaults; malformed ones are INVALID_REQUEST.
func ParseRequest(r *http.Request) (pipeline.Request, error) {
	q := r.URL.Query()
	req := pipeline.DefaultRequest()

	ints := []struct {
		name string
		dst  *int
	}{
		{"repoLimit", &req.RepoLimit},
		{"offset", &req.Offset},
		{"maxCandidatesPerRepo", &req.MaxCandidatesPerRepo},
	}
	for _, p := range ints {
		if !q.Has(p.name) {
			continue
		}
		n, err := strconv.Atoi(q.Get(p.name))
		if err != nil {
			return req, pkgerrors.New(pkgerrors.ErrCodeInvalidRequest, "%s must be an integer, got %q", p.name, q.Get(p.name))
		}
		*p.dst = n
	}

	if q.Has("requiredTechnologies") {
		req.RequiredTechnologies = pipeline.ParseTechnologies(q.Get("requiredTechnologies"))
	}
	if q.Has("requireAllTechnologies") {
		b, err := strconv.ParseBool(q.Get("requireAllTechnologies"))
		if err != nil {
			return req, pkgerrors.New(pkgerrors.ErrCodeInvalidRequest, "requireAllTechnologies must be a boolean, got %q", q.Get("requireAllTechnologies"))
		}
		req.RequireAllTechnologies = b
	}
	if q.Has("strategy") {
		st, err := pipeline.ParseStrategy(q.Get("strategy"))
		if err != nil {
			return req, err
		}
		req.Strategy = st
	}

	req = req.Normalize()
	return req, req.Validate()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// =============================================================================
// Request Logging
// =============================================================================

type loggerKey struct{}

// requestLogger tags each request with an id and logs its completion.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)

		l := s.logger.With("req", id[:min(8, len(id))])
		r = r.WithContext(context.WithValue(r.Context(), loggerKey{}, l))

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		l.Info("request", "method", r.Method, "path", r.URL.Path, "status", ww.Status(), "duration", time.Since(start))
	})
}

func logger(r *http.Request, fallback *log.Logger) *log.Logger {
	if l, ok := r.Context().Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return fallback
}
