// Package service holds the SoulsData use cases shared by the HTTP API,
// the scheduler and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sammyhga/SoulsData/infrastructure/logger"
	"github.com/sammyhga/SoulsData/internal/cache"
	"github.com/sammyhga/SoulsData/internal/database"
	"github.com/sammyhga/SoulsData/internal/domain"
	"github.com/sammyhga/SoulsData/internal/telemetry"
)

// Listing defaults.
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// EntryStore is the persistence the service needs. *database.EntryRepository
// satisfies it.
type EntryStore interface {
	Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)
	List(ctx context.Context) ([]domain.Entry, error)
	Search(ctx context.Context, term string, limit, offset int) ([]domain.Entry, int, error)
	Totals(ctx context.Context) (database.CategoryTotals, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// EntryService records, removes and lists entries.
type EntryService struct {
	store   EntryStore
	cache   cache.SnapshotCache
	loc     *time.Location
	metrics *telemetry.Metrics
	log     logger.Logger
	now     func() time.Time
}

// NewEntryService wires an EntryService. A nil cache disables caching.
func NewEntryService(
	store EntryStore,
	snapshots cache.SnapshotCache,
	loc *time.Location,
	metrics *telemetry.Metrics,
	log logger.Logger,
) *EntryService {
	if snapshots == nil {
		snapshots = cache.NopSnapshotCache{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &EntryService{
		store:   store,
		cache:   snapshots,
		loc:     loc,
		metrics: metrics,
		log:     log,
		now:     time.Now,
	}
}

// Create validates req and stores it as a new entry. It returns
// domain.ValidationErrors for bad input and domain.ErrDuplicateSoul when the
// name of soul is already recorded.
func (s *EntryService) Create(ctx context.Context, req domain.NewEntryRequest) (*domain.Entry, error) {
	req.Normalize()
	if err := req.Validate(s.loc); err != nil {
		s.reject(telemetry.RejectValidation)
		return nil, err
	}

	exists, err := s.store.ExistsByName(ctx, req.NameOfSoul)
	switch {
	case err != nil:
		// The unique index still catches a real duplicate on insert.
		s.log.Warn("Duplicate check failed, continuing",
			logger.String("name_of_soul", req.NameOfSoul),
			logger.Error(err),
		)
	case exists:
		s.reject(telemetry.RejectDuplicate)
		return nil, domain.ErrDuplicateSoul
	}

	entry := req.ToEntry()
	entry.ID = uuid.New()
	entry.CreatedAt = s.now().UTC()

	created, err := s.store.Create(ctx, entry)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateSoul) {
			s.reject(telemetry.RejectDuplicate)
			return nil, err
		}
		return nil, fmt.Errorf("create entry: %w", err)
	}

	s.invalidate(ctx)
	if s.metrics != nil {
		s.metrics.EntriesCreated.WithLabelValues(string(created.Category)).Inc()
	}
	s.log.Info("Entry recorded",
		logger.String("entry_id", created.ID.String()),
		logger.String("category", string(created.Category)),
		logger.String("soul_winner", created.SoulWinner),
	)
	return created, nil
}

// Delete removes the entry with id. It returns domain.ErrNotFound when no
// such entry exists.
func (s *EntryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete entry %s: %w", id, err)
	}

	s.invalidate(ctx)
	if s.metrics != nil {
		s.metrics.EntriesDeleted.Inc()
	}
	s.log.Info("Entry deleted", logger.String("entry_id", id.String()))
	return nil
}

// Snapshot returns every entry, newest first, from the cache when warm and
// from the store otherwise.
func (s *EntryService) Snapshot(ctx context.Context) ([]domain.Entry, error) {
	entries, ok, err := s.cache.Get(ctx)
	switch {
	case err != nil:
		s.cacheResult(telemetry.CacheError)
		s.log.Warn("Snapshot cache read failed", logger.Error(err))
	case ok:
		s.cacheResult(telemetry.CacheHit)
		return entries, nil
	default:
		s.cacheResult(telemetry.CacheMiss)
	}

	return s.Refresh(ctx)
}

// Refresh loads every entry from the store and repopulates the cache. The
// cache is left alone when a create or delete lands during the load.
func (s *EntryService) Refresh(ctx context.Context) ([]domain.Entry, error) {
	gen, genErr := s.cache.Generation(ctx)

	entries, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}

	if genErr != nil {
		s.log.Warn("Snapshot cache generation read failed", logger.Error(genErr))
		return entries, nil
	}
	switch setErr := s.cache.Set(ctx, gen, entries); {
	case errors.Is(setErr, cache.ErrStale):
		s.log.Debug("Snapshot changed while loading, not cached")
	case setErr != nil:
		s.log.Warn("Snapshot cache write failed", logger.Error(setErr))
	}
	return entries, nil
}

// SearchQuery selects one page of the admin listing. Page is 1-based.
type SearchQuery struct {
	Term    string
	Page    int
	PerPage int
}

func (q *SearchQuery) normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage <= 0 {
		q.PerPage = DefaultPerPage
	}
	if q.PerPage > MaxPerPage {
		q.PerPage = MaxPerPage
	}
}

// SearchResult is one page of matches plus all-time category totals.
type SearchResult struct {
	Entries     []domain.Entry `json:"entries"`
	Total       int            `json:"total"`
	Page        int            `json:"page"`
	PerPage     int            `json:"per_page"`
	TotalPages  int            `json:"total_pages"`
	Won         int            `json:"won"`
	Recommitted int            `json:"recommitted"`
}

// Search pages through entries matching q.Term.
func (s *EntryService) Search(ctx context.Context, q SearchQuery) (*SearchResult, error) {
	q.normalize()

	entries, total, err := s.store.Search(ctx, q.Term, q.PerPage, (q.Page-1)*q.PerPage)
	if err != nil {
		return nil, fmt.Errorf("search entries: %w", err)
	}
	totals, err := s.store.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	if entries == nil {
		entries = []domain.Entry{}
	}

	return &SearchResult{
		Entries:     entries,
		Total:       total,
		Page:        q.Page,
		PerPage:     q.PerPage,
		TotalPages:  (total + q.PerPage - 1) / q.PerPage,
		Won:         totals.Won,
		Recommitted: totals.Recommitted,
	}, nil
}

// All returns every entry matching term, for exports.
func (s *EntryService) All(ctx context.Context, term string) ([]domain.Entry, error) {
	entries, _, err := s.store.Search(ctx, term, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("search entries: %w", err)
	}
	return entries, nil
}

func (s *EntryService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("Snapshot cache invalidation failed", logger.Error(err))
	}
}

func (s *EntryService) reject(reason string) {
	if s.metrics != nil {
		s.metrics.EntriesRejected.WithLabelValues(reason).Inc()
	}
}

func (s *EntryService) cacheResult(result string) {
	if s.metrics != nil {
		s.metrics.SnapshotCache.WithLabelValues(result).Inc()
	}
}
