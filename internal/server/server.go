// internal/server/server.go

// Package server exposes the query router over HTTP.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fieldscope/internal/common/config"
	"fieldscope/internal/common/logger"
	"fieldscope/internal/common/observability"
	"fieldscope/internal/models"
	"fieldscope/internal/router"
)

// QueryRequest is the body of POST /api/query. Prior carries entities from
// earlier turns of the same conversation.
type QueryRequest struct {
	Query string           `json:"query"`
	Prior *models.Entities `json:"prior,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Server struct {
	router *router.Router
	obs    *observability.Observability
	logger logger.Logger
	srv    *http.Server
	mux    *http.ServeMux
}

// New builds the server. obs may be nil; query metrics are skipped then.
func New(cfg config.ServerConfig, r *router.Router, obs *observability.Observability, log logger.Logger) *Server {
	s := &Server{
		router: r,
		obs:    obs,
		logger: log,
		mux:    http.NewServeMux(),
	}

	s.mux.HandleFunc("/api/query", s.handleQuery)
	s.mux.HandleFunc("/healthz", s.handleHealth)
	s.mux.Handle("/metrics", promhttp.Handler())

	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.mux,
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Millisecond,
	}
	return s
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler { return s.mux }

// Start blocks until the listener stops. A clean Shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{"address": s.srv.Addr})
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "query is required"})
		return
	}

	start := time.Now()
	result := s.router.Route(r.Context(), req.Query, req.Prior)
	if s.obs != nil {
		status := "failed"
		if result.Success {
			status = "succeeded"
		}
		s.obs.RecordQueryProcessed(r.Context(), status)
		s.obs.RecordQueryDuration(r.Context(), time.Since(start), status)
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
