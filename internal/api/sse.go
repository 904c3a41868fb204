package api

import (
	"encoding/json"
	"net/http"
)

// handleEvents serves the live event feed via Server-Sent Events:
// fatigue warnings, loyalty risk transitions, and store degradation.
// SSE instead of WebSocket for simplicity and HTTP/2 compatibility.
// GET /api/events
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
	flusher.Flush()

	// The hub is safe to subscribe to without the engine lock.
	ch, unsub := s.eng.Events().Subscribe()
	defer unsub()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			w.Write([]byte("data: "))
			w.Write(data)
			w.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}
