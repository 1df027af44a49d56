// Package scheduler runs the daily reporting digest.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sammyhga/SoulsData/infrastructure/logger"
	"github.com/sammyhga/SoulsData/internal/analytics"
	"github.com/sammyhga/SoulsData/internal/domain"
	"github.com/sammyhga/SoulsData/internal/telemetry"
)

// digestTimeout bounds one digest run.
const digestTimeout = 2 * time.Minute

// Run statuses recorded on the digest metric.
const (
	statusSuccess = "success"
	statusFailure = "failure"
)

var errAlreadyStarted = errors.New("digest scheduler already started")

// Refresher reloads the entry snapshot from the store.
type Refresher interface {
	Refresh(ctx context.Context) ([]domain.Entry, error)
}

// Digest summarises one window.
type Digest struct {
	WindowDays       int
	Total            int
	Won              int
	Recommitted      int
	TopRecorder      string
	TopRecorderCount int
	Undated          int
}

// Options configures a DigestScheduler.
type Options struct {
	Spec       string
	WindowDays int
	Location   *time.Location
}

// DigestScheduler refreshes the snapshot cache on a cron schedule and logs
// a digest of the trailing window.
type DigestScheduler struct {
	opts      Options
	refresher Refresher
	engine    *analytics.Engine
	metrics   *telemetry.Metrics
	log       logger.Logger

	mu      sync.Mutex
	cron    *cron.Cron
	entryID cron.EntryID
}

// New creates a DigestScheduler. Call Start to begin running.
func New(opts Options, refresher Refresher, engine *analytics.Engine, metrics *telemetry.Metrics, log logger.Logger) *DigestScheduler {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &DigestScheduler{
		opts:      opts,
		refresher: refresher,
		engine:    engine,
		metrics:   metrics,
		log:       log,
	}
}

// Start registers the digest job and starts the cron loop. The job stops
// being scheduled once ctx is done or Stop is called.
func (s *DigestScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil {
		return errAlreadyStarted
	}

	c := cron.New(
		cron.WithLocation(s.opts.Location),
		cron.WithParser(cron.NewParser(cron.Minute|cron.Hour|cron.Dom|cron.Month|cron.Dow)),
		cron.WithChain(cron.Recover(cron.DefaultLogger), cron.SkipIfStillRunning(cron.DefaultLogger)),
	)

	id, err := c.AddFunc(s.opts.Spec, func() {
		runCtx, cancel := context.WithTimeout(ctx, digestTimeout)
		defer cancel()
		if _, runErr := s.RunDigest(runCtx); runErr != nil {
			s.log.Error("Digest run failed", logger.Error(runErr))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule digest %q: %w", s.opts.Spec, err)
	}

	s.cron = c
	s.entryID = id
	c.Start()

	s.log.Info("Digest scheduler started",
		logger.String("schedule", s.opts.Spec),
		logger.Int("window_days", s.opts.WindowDays),
		logger.Time("next_run", c.Entry(id).Next),
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

// Stop halts the cron loop and waits for a running digest to finish.
func (s *DigestScheduler) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c == nil {
		return
	}
	<-c.Stop().Done()
	s.log.Info("Digest scheduler stopped")
}

// NextRun returns when the digest runs next, or the zero time when stopped.
func (s *DigestScheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron == nil {
		return time.Time{}
	}
	return s.cron.Entry(s.entryID).Next
}

// RunDigest refreshes the snapshot and logs the digest once.
func (s *DigestScheduler) RunDigest(ctx context.Context) (*Digest, error) {
	entries, err := s.refresher.Refresh(ctx)
	if err != nil {
		s.record(statusFailure)
		return nil, fmt.Errorf("refresh snapshot: %w", err)
	}

	report, err := s.engine.Build(entries, analytics.Query{WindowDays: s.opts.WindowDays})
	if err != nil {
		s.record(statusFailure)
		return nil, fmt.Errorf("build digest: %w", err)
	}

	d := &Digest{
		WindowDays:  report.WindowDays,
		Total:       report.Stats.TotalEntries,
		Won:         report.Stats.Won,
		Recommitted: report.Stats.Recommitted,
		Undated:     report.Undated,
	}
	if len(report.TopRecorders) > 0 {
		d.TopRecorder = report.TopRecorders[0].Label
		d.TopRecorderCount = report.TopRecorders[0].Count
	}

	s.record(statusSuccess)
	s.log.Info("Reporting digest",
		logger.Int("window_days", d.WindowDays),
		logger.Int("total", d.Total),
		logger.Int("won", d.Won),
		logger.Int("recommitted", d.Recommitted),
		logger.String("top_recorder", d.TopRecorder),
		logger.Int("top_recorder_count", d.TopRecorderCount),
		logger.Int("undated", d.Undated),
	)
	return d, nil
}

func (s *DigestScheduler) record(status string) {
	if s.metrics != nil {
		s.metrics.DigestRuns.WithLabelValues(status).Inc()
	}
}
