package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/sammyhga/SoulsData/infrastructure/logger"
	"github.com/sammyhga/SoulsData/internal/analytics"
	"github.com/sammyhga/SoulsData/internal/domain"
	"github.com/sammyhga/SoulsData/internal/telemetry"
)

// SnapshotSource supplies the entries a report is built from.
type SnapshotSource interface {
	Snapshot(ctx context.Context) ([]domain.Entry, error)
}

// ReportService builds dashboard reports.
type ReportService struct {
	source        SnapshotSource
	engine        *analytics.Engine
	defaultWindow int
	telemetry     *telemetry.Provider
	log           logger.Logger
}

// NewReportService wires a ReportService. defaultWindow is used when Build
// is called with a zero window.
func NewReportService(
	source SnapshotSource,
	engine *analytics.Engine,
	defaultWindow int,
	provider *telemetry.Provider,
	log logger.Logger,
) *ReportService {
	return &ReportService{
		source:        source,
		engine:        engine,
		defaultWindow: defaultWindow,
		telemetry:     provider,
		log:           log,
	}
}

// DefaultWindow returns the window used when none is requested.
func (s *ReportService) DefaultWindow() int {
	return s.defaultWindow
}

// Build loads the snapshot and reports on the trailing windowDays. Zero
// selects the default window; a negative window returns
// analytics.ErrInvalidWindow.
func (s *ReportService) Build(ctx context.Context, windowDays int) (*analytics.Report, error) {
	if windowDays == 0 {
		windowDays = s.defaultWindow
	}

	ctx, span := s.telemetry.Tracer.Start(ctx, "report.build")
	defer span.End()
	span.SetAttributes(attribute.Int("report.window_days", windowDays))

	start := time.Now()
	entries, err := s.source.Snapshot(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "snapshot failed")
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	report, err := s.engine.Build(entries, analytics.Query{WindowDays: windowDays})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	m := s.telemetry.Metrics
	m.ReportBuildDuration.Observe(time.Since(start).Seconds())
	m.ReportsBuilt.WithLabelValues(telemetry.WindowLabel(windowDays)).Inc()
	m.SnapshotSize.Set(float64(len(entries)))
	m.UndatedEntries.Set(float64(report.Undated))

	span.SetAttributes(
		attribute.Int("report.snapshot_size", len(entries)),
		attribute.Int("report.total", report.Stats.TotalEntries),
		attribute.Int("report.undated", report.Undated),
	)

	if report.Undated > 0 {
		s.log.Debug("Entries skipped for unparseable dates",
			logger.Int("undated", report.Undated),
			logger.Int("window_days", windowDays),
		)
	}
	return report, nil
}
