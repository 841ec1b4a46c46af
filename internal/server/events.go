package server

import (
	"io"
	"net/http"
	"strings"
)

// handleEvents streams every new body as one server-sent event.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	sub := s.updates.Subscribe(ctx)
	defer sub.Close()
	s.logger.Printf("events: client connected (%d)", s.updates.Len())

	for {
		body, err := sub.Next(ctx)
		if err != nil {
			return
		}
		if body == "" {
			continue
		}
		if _, err := io.WriteString(w, formatEvent(body)); err != nil {
			s.logger.Printf("events: client dropped: %v", err)
			return
		}
		flusher.Flush()
	}
}

// formatEvent frames data as one event, one "data:" field per line, so the
// browser rejoins the lines with "\n".
func formatEvent(data string) string {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	data = strings.ReplaceAll(data, "\r", "\n")

	var sb strings.Builder
	sb.Grow(len(data) + 16)
	for line := range strings.SplitSeq(data, "\n") {
		sb.WriteString("data: ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	sb.WriteByte('\n')
	return sb.String()
}
