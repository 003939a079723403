package server

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/me/vertexdash/internal/logging"
	"github.com/me/vertexdash/pkg/model"
)

// Version is reported by /healthz.
var Version = "0.1.0"

type healthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
	Store     string `json:"store"`
	Backend   string `json:"backend"`
	Archive   string `json:"archive"`
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, logging.RequestID(r.Context()), http.StatusNotFound,
		model.NewNotFoundError("route", r.URL.Path), nil)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	reqID := logging.RequestID(r.Context())

	archive := "disabled"
	if s.archiver != nil {
		archive = s.archiver.String()
	}
	resp := healthResponse{
		Status:    "healthy",
		Version:   Version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(s.startTime).Round(time.Second).String(),
		Store:     "ok",
		Backend:   s.backend.BaseURL(),
		Archive:   archive,
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Error("health check: store ping failed", "error", err)
		resp.Status = "unhealthy"
		resp.Store = "unavailable"
		respondError(w, reqID, http.StatusServiceUnavailable, model.NewUnavailableError("store", err), resp)
		return
	}

	respondOK(w, reqID, resp)
}
