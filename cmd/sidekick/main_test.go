package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestBuildRootCommands(t *testing.T) {
	root := buildRoot()
	if root.Use != "sidekick" {
		t.Fatalf("root use = %q", root.Use)
	}
	want := map[string]bool{"serve": false, "start": false, "stop": false, "status": false}
	for _, c := range root.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
	if root.PersistentFlags().Lookup("config") == nil {
		t.Error("missing --config persistent flag")
	}
}

func TestAPIFlagsWired(t *testing.T) {
	root := buildRoot()
	for _, name := range []string{"start", "stop", "status"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil {
			t.Fatalf("find %s: %v", name, err)
		}
		if cmd.Flags().Lookup("api-url") == nil {
			t.Errorf("%s missing --api-url", name)
		}
		if cmd.Flags().Lookup("api-timeout") == nil {
			t.Errorf("%s missing --api-timeout", name)
		}
	}
}

func newFakeDaemon(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/start", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "started"})
	})
	mux.HandleFunc("/api/stop", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "stopped"})
	})
	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		pid := 321
		_ = json.NewEncoder(w).Encode(map[string]any{"alive": true, "pid": pid})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientCommandsAgainstFakeDaemon(t *testing.T) {
	srv := newFakeDaemon(t)
	flags := APIFlags{URL: srv.URL + "/api", Timeout: 2 * time.Second}

	if err := runStart(flags); err != nil {
		t.Errorf("runStart: %v", err)
	}
	if err := runStatus(flags); err != nil {
		t.Errorf("runStatus: %v", err)
	}
	if err := runStop(flags); err != nil {
		t.Errorf("runStop: %v", err)
	}
}

func TestClientCommandsUnreachableDaemon(t *testing.T) {
	flags := APIFlags{URL: "http://127.0.0.1:1/api", Timeout: time.Second}
	if err := runStart(flags); err == nil {
		t.Error("runStart against closed port should fail")
	}
	if err := runStatus(flags); err == nil {
		t.Error("runStatus against closed port should fail")
	}
}
