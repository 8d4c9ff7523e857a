// Package api exposes a small operational surface next to the Stremio
// routes: version info and a live log stream for the configuration page.
package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"easyfrench/pkg/logger"
)

// Server handles /api requests.
type Server struct {
	version string

	mu      sync.Mutex
	clients map[*wsClient]struct{}
}

// NewServer creates the API server and hooks the logger broadcast so
// connected websocket clients receive live log lines.
func NewServer(version string) *Server {
	s := &Server{
		version: version,
		clients: make(map[*wsClient]struct{}),
	}

	ch := make(chan string, 256)
	logger.SetBroadcast(ch)
	go s.fanOut(ch)

	return s
}

// Handler returns the /api mux.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/logs", s.handleLogs)
	return mux
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"version": s.version})
}

// fanOut delivers broadcast log lines to every connected client,
// non-blocking; slow clients drop lines rather than stalling the logger.
func (s *Server) fanOut(ch <-chan string) {
	for line := range ch {
		s.mu.Lock()
		for c := range s.clients {
			select {
			case c.send <- line:
			default:
			}
		}
		s.mu.Unlock()
	}
}

func (s *Server) addClient(c *wsClient) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
}

func (s *Server) removeClient(c *wsClient) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()
}
