package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sammyhga/SoulsData/infrastructure/logger"
	"github.com/sammyhga/SoulsData/internal/analytics"
	"github.com/sammyhga/SoulsData/internal/domain"
	"github.com/sammyhga/SoulsData/internal/service"
	"github.com/sammyhga/SoulsData/internal/telemetry"
)

type staticSource struct {
	entries []domain.Entry
	err     error
}

func (s staticSource) Snapshot(context.Context) ([]domain.Entry, error) {
	return s.entries, s.err
}

func newReportService(src service.SnapshotSource) (*service.ReportService, *telemetry.Provider) {
	now := time.Date(2024, time.June, 30, 12, 0, 0, 0, time.UTC)
	engine := analytics.NewEngine(analytics.Options{Now: func() time.Time { return now }})
	provider := telemetry.NewProvider()
	return service.NewReportService(src, engine, 30, provider, logger.NewNop()), provider
}

func TestReportService_Build(t *testing.T) {
	t.Parallel()

	src := staticSource{entries: []domain.Entry{
		{Date: "2024-06-29", Category: domain.CategoryWon, SoulWinner: "Grace", OnWhatsApp: "yes", Age: "20"},
		{Date: "2024-06-10", Category: domain.CategoryInvited, SoulWinner: "Paul", OnWhatsApp: "no"},
		{Date: "2024-01-01", Category: domain.CategoryWon, SoulWinner: "Grace"},
		{Date: "someday", Category: domain.CategoryWon, SoulWinner: "Grace"},
	}}
	svc, provider := newReportService(src)

	report, err := svc.Build(t.Context(), 0)
	require.NoError(t, err)

	assert.Equal(t, 30, report.WindowDays)
	assert.Equal(t, 2, report.Stats.TotalEntries)
	assert.Equal(t, 1, report.Undated)
	assert.InDelta(t, 1, testutil.ToFloat64(provider.Metrics.ReportsBuilt.WithLabelValues("30")), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(provider.Metrics.SnapshotSize), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(provider.Metrics.UndatedEntries), 0)

	yearly, err := svc.Build(t.Context(), analytics.WindowYear)
	require.NoError(t, err)
	assert.Equal(t, 3, yearly.Stats.TotalEntries)
}

func TestReportService_Build_Errors(t *testing.T) {
	t.Parallel()

	svc, _ := newReportService(staticSource{})
	_, err := svc.Build(t.Context(), -7)
	require.ErrorIs(t, err, analytics.ErrInvalidWindow)

	failing, _ := newReportService(staticSource{err: errStoreDown})
	_, err = failing.Build(t.Context(), 7)
	require.ErrorIs(t, err, errStoreDown)
}
