package profiling_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sammyhga/SoulsData/infrastructure/profiling"
)

func TestAddr(t *testing.T) {
	t.Setenv("PPROF_PORT", "")
	if got := profiling.Addr(); got != "localhost:6060" {
		t.Errorf("Addr() = %q, want localhost:6060", got)
	}

	t.Setenv("PPROF_PORT", "7070")
	if got := profiling.Addr(); got != "localhost:7070" {
		t.Errorf("Addr() = %q, want localhost:7070", got)
	}
}

func TestEnabled(t *testing.T) {
	t.Setenv("ENABLE_PROFILING", "false")
	if profiling.Enabled() {
		t.Error("Enabled() = true with ENABLE_PROFILING=false")
	}
	t.Setenv("ENABLE_PROFILING", "true")
	if !profiling.Enabled() {
		t.Error("Enabled() = false with ENABLE_PROFILING=true")
	}
}

func TestHandler_ServesIndex(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	profiling.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}
