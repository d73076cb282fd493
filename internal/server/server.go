// Package server implements the event gateway: a small HTTP server that
// publishes state changes into the broadcast hub and streams the hub to
// external consumers over Server-Sent Events.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/installd/switchboard/pkg/constants"
	"github.com/installd/switchboard/pkg/events"
	"github.com/installd/switchboard/pkg/locale"
	"github.com/installd/switchboard/pkg/progress"
	"github.com/installd/switchboard/pkg/software"
)

// Server holds the gateway state and dependencies.
type Server struct {
	hub       *events.Hub
	http      *http.Server
	logger    *zerolog.Logger
	config    Config
	startedAt utc.Time
}

// New creates a new gateway around the given hub.
func New(hub *events.Hub, cfg Config, logger *zerolog.Logger) *Server {
	s := &Server{
		hub:       hub,
		logger:    logger,
		config:    cfg,
		startedAt: utc.Now(),
	}

	s.http = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}

	return s
}

// Handler returns the configured http.Handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	prefix := s.config.PathPrefix

	mux.HandleFunc("GET "+prefix+"/events", s.handleEvents)
	mux.HandleFunc("GET "+prefix+"/status", s.handleStatus)
	mux.HandleFunc("POST "+prefix+"/locale", s.handleLocale)
	mux.HandleFunc("POST "+prefix+"/product", s.handleProduct)
	mux.HandleFunc("POST "+prefix+"/progress", s.handleProgress)
	mux.HandleFunc("POST "+prefix+"/patterns", s.handlePatterns)

	return mux
}

// ListenAndServe runs the gateway until ctx is cancelled, then shuts it
// down gracefully. Closing the hub during shutdown unblocks every open
// event stream.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("Event gateway listening")
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("Shutting down event gateway")
	s.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownTimeout)
	defer cancel()
	return s.http.Shutdown(shutdownCtx)
}

// handleStatus reports gateway liveness and hub statistics.
func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"started_at":  s.startedAt,
		"uptime":      time.Since(s.startedAt.Time).String(),
		"subscribers": s.hub.SubscriberCount(),
	})
}

// handleLocale validates and publishes a LocaleChanged event.
func (s *Server) handleLocale(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Locale string `json:"locale"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	normalized, err := locale.Normalize(body.Locale)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	s.hub.Publish(events.LocaleChanged{Locale: normalized})
	w.WriteHeader(http.StatusNoContent)
}

// handleProduct publishes a ProductChanged event.
func (s *Server) handleProduct(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	if body.ID == "" {
		s.writeError(w, http.StatusUnprocessableEntity, fmt.Errorf("product id must not be empty"))
		return
	}

	s.hub.Publish(events.ProductChanged{ID: body.ID})
	w.WriteHeader(http.StatusNoContent)
}

// handleProgress publishes a Progress event.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	var snapshot progress.Progress
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	s.hub.Publish(events.ProgressChanged{Progress: snapshot})
	w.WriteHeader(http.StatusNoContent)
}

// handlePatterns publishes a PatternsChanged event.
func (s *Server) handlePatterns(w http.ResponseWriter, r *http.Request) {
	var statuses map[string]software.PatternStatus
	if err := json.NewDecoder(r.Body).Decode(&statuses); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	for id, status := range statuses {
		if !status.Valid() {
			s.writeError(w, http.StatusUnprocessableEntity,
				fmt.Errorf("unknown status %q for pattern %q", status, id))
			return
		}
	}

	s.hub.Publish(events.PatternsChanged(statuses))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
