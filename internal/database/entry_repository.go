package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sammyhga/SoulsData/internal/domain"
)

const uniqueViolation = "23505"

const entryColumns = `id, soul_winner, zone, date, category, name_of_soul, age,
	residence, phone_number, on_whatsapp, created_at`

// searchFilter matches the term against the columns the admin listing
// searches. $1 is the escaped ILIKE pattern; an empty term becomes "%%"
// and matches every row.
const searchFilter = `
	WHERE soul_winner ILIKE $1
	   OR name_of_soul ILIKE $1
	   OR residence ILIKE $1
	   OR category ILIKE $1`

// CategoryTotals holds all-time outcome counts.
type CategoryTotals struct {
	Won         int `db:"won"         json:"won"`
	Recommitted int `db:"recommitted" json:"recommitted"`
}

// EntryRepository reads and writes soul_entries.
type EntryRepository struct {
	db *sqlx.DB
}

// NewEntryRepository creates a repository over db.
func NewEntryRepository(db *sqlx.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Create inserts entry and returns the stored row.
func (r *EntryRepository) Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	query := `
		INSERT INTO soul_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + entryColumns

	stored := &domain.Entry{}
	err := r.db.QueryRowxContext(ctx, query,
		entry.ID, entry.SoulWinner, entry.Zone, entry.Date, entry.Category, entry.NameOfSoul,
		entry.Age, entry.Residence, entry.PhoneNumber, entry.OnWhatsApp, entry.CreatedAt,
	).StructScan(stored)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, domain.ErrDuplicateSoul
		}
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}
	return stored, nil
}

// List returns every entry, newest first.
func (r *EntryRepository) List(ctx context.Context) ([]domain.Entry, error) {
	entries := []domain.Entry{}
	query := `SELECT ` + entryColumns + ` FROM soul_entries ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return entries, nil
}

// Search returns entries matching term, newest first, plus the total match
// count. A limit of zero returns every match.
func (r *EntryRepository) Search(ctx context.Context, term string, limit, offset int) ([]domain.Entry, int, error) {
	pattern := likePattern(term)

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM soul_entries`+searchFilter, pattern); err != nil {
		return nil, 0, fmt.Errorf("failed to count entries: %w", err)
	}

	query := `SELECT ` + entryColumns + ` FROM soul_entries` + searchFilter + `
		ORDER BY created_at DESC`
	args := []any{pattern}
	if limit > 0 {
		query += ` LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	entries := []domain.Entry{}
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to search entries: %w", err)
	}
	return entries, total, nil
}

// Totals counts won and recommitted entries across all time, ignoring the
// case of the stored category.
func (r *EntryRepository) Totals(ctx context.Context) (CategoryTotals, error) {
	var totals CategoryTotals
	query := `
		SELECT
			COUNT(*) FILTER (WHERE LOWER(category) = 'won') AS won,
			COUNT(*) FILTER (WHERE LOWER(category) = 'recommitted') AS recommitted
		FROM soul_entries`

	if err := r.db.GetContext(ctx, &totals, query); err != nil {
		return CategoryTotals{}, fmt.Errorf("failed to count totals: %w", err)
	}
	return totals, nil
}

// ExistsByName reports whether a subject with name is already recorded,
// ignoring case.
func (r *EntryRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM soul_entries WHERE name_of_soul ILIKE $1)`

	if err := r.db.GetContext(ctx, &exists, query, escapeLike(name)); err != nil {
		return false, fmt.Errorf("failed to check duplicate name: %w", err)
	}
	return exists, nil
}

// Delete removes the entry with id.
func (r *EntryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM soul_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Ping checks connectivity.
func (r *EntryRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func likePattern(term string) string {
	return "%" + escapeLike(strings.TrimSpace(term)) + "%"
}
