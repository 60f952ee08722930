package control

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/example/alignview/internal/settings"
	"github.com/example/alignview/internal/viewport"
)

// DefaultTimeout bounds how long a request waits for the event loop.
const DefaultTimeout = 5 * time.Second

// Server routes HTTP requests to the viewer event loop.
type Server struct {
	poster  Poster
	bridge  settings.Bridge
	logger  *log.Logger
	timeout time.Duration
	router  chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithBridge sets the settings source used by /settings/reload.
func WithBridge(b settings.Bridge) Option { return func(s *Server) { s.bridge = b } }

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// WithTimeout sets how long a request waits for the event loop.
func WithTimeout(d time.Duration) Option { return func(s *Server) { s.timeout = d } }

// New builds a Server posting commands through p.
func New(p Poster, opts ...Option) *Server {
	s := &Server{
		poster:  p,
		bridge:  settings.Nop{},
		logger:  log.Default(),
		timeout: DefaultTimeout,
	}
	for _, o := range opts {
		o(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/state", s.handleState)
	r.Post("/load", s.handleLoad)
	r.Post("/clear", s.handleClear)
	r.Put("/status", s.handleStatus)
	r.Put("/transform", s.handleSetTransform)
	r.Post("/transform/apply", s.handleApplyTransform)
	r.Post("/reset", s.handleReset)
	r.Post("/settings/reload", s.handleReloadSettings)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("control request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

type loadRequest struct {
	Path      string                    `json:"path"`
	Transform *viewport.TransformParams `json:"transform,omitempty"`
}

type loadResponse struct {
	RequestID string `json:"request_id"`
	Seq       uint64 `json:"seq"`
}

type statusRequest struct {
	Status viewport.Status `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, NewCommand("state", func(t Target) (interface{}, error) {
		return t.Snapshot(), nil
	}))
}

func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req loadRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		writeError(w, http.StatusBadRequest, errors.New("path is required"))
		return
	}
	if req.Transform != nil {
		if err := req.Transform.Validate(); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	id := uuid.NewString()
	s.run(w, r, NewCommand("load", func(t Target) (interface{}, error) {
		seq := t.LoadImage(req.Path, req.Transform)
		s.logger.Info("load requested over control", "request_id", id, "path", req.Path, "seq", seq)
		return loadResponse{RequestID: id, Seq: seq}, nil
	}))
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, NewCommand("clear", func(t Target) (interface{}, error) {
		t.Clear()
		return t.Snapshot(), nil
	}))
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decode(w, r, &req) {
		return
	}
	s.run(w, r, NewCommand("status", func(t Target) (interface{}, error) {
		t.SetStatus(req.Status)
		return t.Snapshot(), nil
	}))
}

func (s *Server) handleSetTransform(w http.ResponseWriter, r *http.Request) {
	var req viewport.TransformParams
	if !decode(w, r, &req) {
		return
	}
	s.run(w, r, NewCommand("set-transform", func(t Target) (interface{}, error) {
		if err := t.SetTransform(req); err != nil {
			return nil, err
		}
		return t.Snapshot(), nil
	}))
}

func (s *Server) handleApplyTransform(w http.ResponseWriter, r *http.Request) {
	var req viewport.TransformParams
	if !decode(w, r, &req) {
		return
	}
	s.run(w, r, NewCommand("apply-transform", func(t Target) (interface{}, error) {
		if err := t.ApplyTransform(req); err != nil {
			return nil, err
		}
		return t.Snapshot(), nil
	}))
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, NewCommand("reset", func(t Target) (interface{}, error) {
		t.ResetToStartScale()
		return t.Snapshot(), nil
	}))
}

func (s *Server) handleReloadSettings(w http.ResponseWriter, r *http.Request) {
	resp, err := s.bridge.Fetch(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, fmt.Errorf("fetch settings: %w", err))
		return
	}
	s.run(w, r, NewCommand("settings", func(t Target) (interface{}, error) {
		if err := t.ApplySettings(resp); err != nil {
			return nil, err
		}
		return t.Snapshot(), nil
	}))
}

// run posts c and writes its answer.
func (s *Server) run(w http.ResponseWriter, r *http.Request, c Command) {
	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	val, err := Do(ctx, s.poster, c)
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, val)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, viewport.ErrInvalidScale), errors.Is(err, viewport.ErrUnknownStatus):
		return http.StatusBadRequest
	case errors.Is(err, settings.ErrUnsuccessful):
		return http.StatusConflict
	case errors.Is(err, settings.ErrMalformed):
		return http.StatusBadGateway
	case errors.Is(err, ErrClosed):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
