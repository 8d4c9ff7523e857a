package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"easyfrench/pkg/logger"
)

func (s *Server) clientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func TestVersionEndpoint(t *testing.T) {
	logger.Init("DEBUG")
	srv := NewServer("1.2.3")

	server := httptest.NewServer(srv.Handler())
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/version")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["version"] != "1.2.3" {
		t.Errorf("version = %q, want 1.2.3", body["version"])
	}
}

func TestLogStreamReplaysHistory(t *testing.T) {
	logger.Init("DEBUG")
	logger.Info("history line before connect")

	srv := NewServer("1.0.0")
	server := httptest.NewServer(srv.Handler())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/logs"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("expected a replayed history line: %v", err)
	}
	if len(msg) == 0 {
		t.Error("history line is empty")
	}
}

func TestLogStreamClientCleanupOnDisconnect(t *testing.T) {
	logger.Init("DEBUG")

	srv := NewServer("1.0.0")
	server := httptest.NewServer(srv.Handler())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/logs"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatal(err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for srv.clientCount() != 1 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	// Closing the connection must unpark the handler without waiting for
	// another broadcast line.
	conn.Close()

	deadline = time.Now().Add(2 * time.Second)
	for srv.clientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("handler still registered after disconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
