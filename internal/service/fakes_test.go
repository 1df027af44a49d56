package service_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/sammyhga/SoulsData/internal/cache"
	"github.com/sammyhga/SoulsData/internal/database"
	"github.com/sammyhga/SoulsData/internal/domain"
)

var errStoreDown = errors.New("store unavailable")

// memoryStore is an in-memory EntryStore.
type memoryStore struct {
	mu        sync.Mutex
	entries   []domain.Entry
	listCalls int
	existsErr error
	listErr   error
	// afterList runs once, after List has copied the entries.
	afterList func()
}

func (m *memoryStore) Create(_ context.Context, entry *domain.Entry) (*domain.Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if strings.EqualFold(e.NameOfSoul, entry.NameOfSoul) {
			return nil, domain.ErrDuplicateSoul
		}
	}
	m.entries = append([]domain.Entry{*entry}, m.entries...)
	stored := *entry
	return &stored, nil
}

func (m *memoryStore) List(_ context.Context) ([]domain.Entry, error) {
	m.mu.Lock()
	m.listCalls++
	if m.listErr != nil {
		m.mu.Unlock()
		return nil, m.listErr
	}
	out := make([]domain.Entry, len(m.entries))
	copy(out, m.entries)
	hook := m.afterList
	m.afterList = nil
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memoryStore) Search(_ context.Context, term string, limit, offset int) ([]domain.Entry, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	term = strings.ToLower(term)
	var matched []domain.Entry
	for _, e := range m.entries {
		fields := []string{e.SoulWinner, e.NameOfSoul, e.Residence, string(e.Category)}
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), term) {
				matched = append(matched, e)
				break
			}
		}
	}
	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (m *memoryStore) Totals(_ context.Context) (database.CategoryTotals, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var t database.CategoryTotals
	for _, e := range m.entries {
		switch domain.Category(strings.ToLower(string(e.Category))) {
		case domain.CategoryWon:
			t.Won++
		case domain.CategoryRecommitted:
			t.Recommitted++
		}
	}
	return t, nil
}

func (m *memoryStore) ExistsByName(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.existsErr != nil {
		return false, m.existsErr
	}
	for _, e := range m.entries {
		if strings.EqualFold(e.NameOfSoul, name) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// memoryCache is a SnapshotCache that can be told to fail.
type memoryCache struct {
	entries     []domain.Entry
	warm        bool
	failGet     bool
	invalidated int
	generation  int64
}

func (c *memoryCache) Get(context.Context) ([]domain.Entry, bool, error) {
	if c.failGet {
		return nil, false, errors.New("cache unavailable")
	}
	return c.entries, c.warm, nil
}

func (c *memoryCache) Generation(context.Context) (int64, error) {
	return c.generation, nil
}

func (c *memoryCache) Set(_ context.Context, gen int64, entries []domain.Entry) error {
	if gen != c.generation {
		return cache.ErrStale
	}
	c.entries = entries
	c.warm = true
	return nil
}

func (c *memoryCache) Invalidate(context.Context) error {
	c.entries = nil
	c.warm = false
	c.invalidated++
	c.generation++
	return nil
}

func validRequest(name string) domain.NewEntryRequest {
	return domain.NewEntryRequest{
		SoulWinner:  "Grace Mensah",
		Zone:        "Zone A",
		Date:        "2024-06-20",
		Category:    "Won",
		NameOfSoul:  name,
		Age:         "24",
		Residence:   "Madina",
		PhoneNumber: "0241234567",
		OnWhatsApp:  "yes",
	}
}
