package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const wsWriteWait = 10 * time.Second

// The default origin check accepts same-host pages, which is where the
// live-reload script runs.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// handleWebSocket streams every new body as a text frame. Incoming frames
// are read and discarded; a read error means the peer went away.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("ws: upgrade failed: %v", err)
		return
	}
	defer func() { _ = conn.Close() }()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.logger.Printf("ws: unexpected close: %v", err)
				}
				return
			}
		}
	}()

	sub := s.updates.Subscribe(ctx)
	defer sub.Close()
	s.logger.Printf("ws: client connected (%d)", s.updates.Len())

	for {
		body, err := sub.Next(ctx)
		if err != nil {
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			return
		}
		if body == "" {
			continue
		}
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(body)); err != nil {
			s.logger.Printf("ws: client dropped: %v", err)
			return
		}
	}
}
