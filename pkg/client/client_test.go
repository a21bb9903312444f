package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newFakeDaemon(t *testing.T, alive bool, pid int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/healthz", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]bool{"ok": true})
	})
	mux.HandleFunc("/api/start", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		_ = json.NewEncoder(w).Encode(MessageResponse{Message: "started"})
	})
	mux.HandleFunc("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		_ = json.NewEncoder(w).Encode(MessageResponse{Message: "stopped"})
	})
	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		st := Status{Alive: alive}
		if alive {
			st.PID = &pid
		}
		_ = json.NewEncoder(w).Encode(st)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientLifecycle(t *testing.T) {
	srv := newFakeDaemon(t, true, 777)
	c := New(Config{BaseURL: srv.URL + "/api"})
	ctx := context.Background()

	if !c.IsReachable(ctx) {
		t.Fatal("daemon should be reachable")
	}
	msg, err := c.Start(ctx)
	if err != nil || msg != "started" {
		t.Fatalf("start = (%q, %v)", msg, err)
	}
	st, err := c.Status(ctx)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if !st.Alive || st.PID == nil || *st.PID != 777 {
		t.Fatalf("status = %+v", st)
	}
	msg, err = c.Stop(ctx)
	if err != nil || msg != "stopped" {
		t.Fatalf("stop = (%q, %v)", msg, err)
	}
}

func TestClientErrorResponse(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/start", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(ErrorResponse{Error: "spawn failed: boom"})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL + "/api"})
	_, err := c.Start(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "spawn failed: boom") {
		t.Fatalf("error = %v", err)
	}
}

func TestClientUnreachable(t *testing.T) {
	c := New(Config{BaseURL: "http://127.0.0.1:1/api"})
	if c.IsReachable(context.Background()) {
		t.Fatal("unreachable daemon reported reachable")
	}
	if _, err := c.Start(context.Background()); err == nil {
		t.Fatal("expected error against closed port")
	}
}

func TestClientDefaults(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.BaseURL != "http://localhost:8080/api" {
		t.Fatalf("default base url = %q", cfg.BaseURL)
	}
	c := New(Config{})
	if c.baseURL != cfg.BaseURL {
		t.Fatalf("client base url = %q", c.baseURL)
	}
}
