package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func gatherValue(t *testing.T, reg *prometheus.Registry, family, name string) (float64, bool) {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() != family {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "name" && l.GetValue() == name {
					if m.GetCounter() != nil {
						return m.GetCounter().GetValue(), true
					}
					if m.GetGauge() != nil {
						return m.GetGauge().GetValue(), true
					}
				}
			}
		}
	}
	return 0, false
}

func TestRegisterAndCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	// Second Register is a no-op.
	if err := Register(reg); err != nil {
		t.Fatalf("second register: %v", err)
	}

	IncStart("m1")
	IncStart("m1")
	IncStop("m1")
	IncSpawnFailure("m1")
	IncKillFailure("m1")
	IncUnexpectedExit("m1")
	SetUp("m1", true)

	checks := []struct {
		family string
		want   float64
	}{
		{"sidekick_sidecar_starts_total", 2},
		{"sidekick_sidecar_stops_total", 1},
		{"sidekick_sidecar_spawn_failures_total", 1},
		{"sidekick_sidecar_kill_failures_total", 1},
		{"sidekick_sidecar_unexpected_exits_total", 1},
		{"sidekick_sidecar_up", 1},
	}
	for _, c := range checks {
		got, ok := gatherValue(t, reg, c.family, "m1")
		if !ok {
			t.Errorf("metric %s not found", c.family)
			continue
		}
		if got != c.want {
			t.Errorf("%s = %v, want %v", c.family, got, c.want)
		}
	}

	SetUp("m1", false)
	if got, _ := gatherValue(t, reg, "sidekick_sidecar_up", "m1"); got != 0 {
		t.Errorf("up after SetUp(false) = %v, want 0", got)
	}
}

func TestHandlerServes(t *testing.T) {
	_ = Register(prometheus.DefaultRegisterer)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
}
