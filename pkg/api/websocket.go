package api

import (
	"net/http"

	"github.com/gorilla/websocket"

	"easyfrench/pkg/logger"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type wsClient struct {
	conn *websocket.Conn
	send chan string
}

// handleLogs upgrades to a websocket and streams the buffered log history
// followed by live log lines until the client disconnects.
func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Debug("Websocket upgrade failed", "err", err)
		return
	}

	client := &wsClient{conn: conn, send: make(chan string, 256)}
	s.addClient(client)
	defer func() {
		s.removeClient(client)
		conn.Close()
	}()

	logger.Debug("Log stream client connected", "remote", r.RemoteAddr)

	for _, line := range logger.GetHistory() {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
			return
		}
	}

	// Read loop only to detect disconnect; inbound messages are ignored.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case line := <-client.send:
			if err := conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
