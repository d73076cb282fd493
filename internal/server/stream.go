package server

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/installd/switchboard/pkg/errors"
	"github.com/installd/switchboard/pkg/events"
)

// handleEvents streams the broadcast hub to one client over Server-Sent
// Events. Each client gets its own hub subscription, so a slow client lags
// independently; a detected gap is surfaced as a "lagged" SSE event carrying
// the number of missed events instead of being silently skipped.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	sub := s.hub.Subscribe()
	defer sub.Close()

	s.logger.Info().Msg("SSE client connected")
	defer s.logger.Info().Msg("SSE client disconnected")

	for {
		event, err := sub.Next(r.Context())
		switch {
		case err == nil:
			data, merr := events.Marshal(event)
			if merr != nil {
				s.logger.Error().Err(merr).Msg("Failed to marshal event")
				continue
			}
			s.writeSSE(w, flusher, "", data)

		case errors.IsLagged(err):
			var lagErr *errors.LagError
			missed := uint64(0)
			if stderrors.As(err, &lagErr) {
				missed = lagErr.Missed
			}
			s.logger.Warn().Uint64("missed", missed).Msg("SSE client lagged")
			s.writeSSE(w, flusher, "lagged", []byte(strconv.FormatUint(missed, 10)))

		case errors.IsHubClosed(err):
			s.writeSSE(w, flusher, "closed", []byte("{}"))
			return

		default:
			// Client context ended.
			return
		}
	}
}

// writeSSE writes a single SSE frame and flushes it.
func (s *Server) writeSSE(w http.ResponseWriter, flusher http.Flusher, event string, data []byte) {
	if event != "" {
		_, _ = fmt.Fprintf(w, "event: %s\n", event)
	}
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}
