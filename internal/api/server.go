package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"dexEvents/internal/pipeline"
)

const (
	msgBadRequest = "Both 'fromBlock' and 'toBlock' are required"
	msgUpstream   = "Failed to fetch events data"
)

// EventsService answers block range queries.
type EventsService interface {
	Events(ctx context.Context, from, to string) (pipeline.Response, error)
}

// Server exposes the events API over HTTP.
type Server struct {
	events EventsService
	logger *zap.Logger
	http   *http.Server
}

// NewServer wires the routes onto a new HTTP server listening on addr.
func NewServer(events EventsService, addr string, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{events: events, logger: logger}

	r := mux.NewRouter()
	r.HandleFunc("/api/events", s.handleEvents).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Use(s.logRequests)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Start blocks serving requests until the server is stopped.
func (s *Server) Start() error {
	s.logger.Info("http server listening", zap.String("addr", s.http.Addr))
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop drains in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	resp, err := s.events.Events(r.Context(), query.Get("fromBlock"), query.Get("toBlock"))
	if err != nil {
		if errors.Is(err, pipeline.ErrBadRequest) {
			s.logger.Debug("rejected events query", zap.Error(err))
			writeError(w, http.StatusBadRequest, msgBadRequest)
			return
		}
		s.logger.Error("events query failed",
			zap.String("fromBlock", query.Get("fromBlock")),
			zap.String("toBlock", query.Get("toBlock")),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, msgUpstream)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "dex-events",
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
