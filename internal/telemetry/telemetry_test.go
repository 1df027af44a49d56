package telemetry_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/sammyhga/SoulsData/internal/telemetry"
)

func TestProvider_IndependentRegistries(t *testing.T) {
	t.Parallel()

	a := telemetry.NewProvider()
	b := telemetry.NewProvider()

	a.Metrics.EntriesCreated.WithLabelValues("won").Inc()

	if got := testutil.ToFloat64(a.Metrics.EntriesCreated.WithLabelValues("won")); got != 1 {
		t.Errorf("provider a created = %v, want 1", got)
	}
	if got := testutil.ToFloat64(b.Metrics.EntriesCreated.WithLabelValues("won")); got != 0 {
		t.Errorf("provider b created = %v, want 0", got)
	}
}

func TestProvider_Handler(t *testing.T) {
	t.Parallel()

	p := telemetry.NewProvider()
	p.Metrics.ReportsBuilt.WithLabelValues(telemetry.WindowLabel(30)).Inc()
	p.Metrics.SnapshotCache.WithLabelValues(telemetry.CacheHit).Inc()

	srv := httptest.NewServer(p.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET /metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		`soulsdata_reports_built_total{window_days="30"} 1`,
		`soulsdata_snapshot_cache_total{result="hit"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
