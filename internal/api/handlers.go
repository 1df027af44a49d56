// Package api exposes SoulsData over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sammyhga/SoulsData/infrastructure/logger"
	"github.com/sammyhga/SoulsData/internal/analytics"
	"github.com/sammyhga/SoulsData/internal/domain"
	"github.com/sammyhga/SoulsData/internal/export"
	"github.com/sammyhga/SoulsData/internal/service"
)

// EntryService is the entry use cases the handlers call.
type EntryService interface {
	Create(ctx context.Context, req domain.NewEntryRequest) (*domain.Entry, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, q service.SearchQuery) (*service.SearchResult, error)
	All(ctx context.Context, term string) ([]domain.Entry, error)
}

// ReportBuilder builds reports for a window.
type ReportBuilder interface {
	Build(ctx context.Context, windowDays int) (*analytics.Report, error)
}

// Handler serves the /api/v1 endpoints.
type Handler struct {
	entries EntryService
	reports ReportBuilder
	loc     *time.Location
	log     logger.Logger
	now     func() time.Time
}

// NewHandler creates a Handler. loc controls how exported dates are shown.
func NewHandler(entries EntryService, reports ReportBuilder, loc *time.Location, log logger.Logger) *Handler {
	if loc == nil {
		loc = time.UTC
	}
	return &Handler{
		entries: entries,
		reports: reports,
		loc:     loc,
		log:     log,
		now:     time.Now,
	}
}

// GetReport returns the dashboard report.
// GET /api/v1/reports?window=30
func (h *Handler) GetReport(c *gin.Context) {
	window, ok := parseWindow(c)
	if !ok {
		return
	}

	report, err := h.reports.Build(c.Request.Context(), window)
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidWindow) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("Failed to build report", logger.Int("window_days", window), logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report"})
		return
	}

	c.JSON(http.StatusOK, report)
}

// ListEntries returns one page of the admin listing.
// GET /api/v1/entries?q=&page=1&per_page=10
func (h *Handler) ListEntries(c *gin.Context) {
	page, ok := parsePositiveQuery(c, "page")
	if !ok {
		return
	}
	perPage, ok := parsePositiveQuery(c, "per_page")
	if !ok {
		return
	}

	result, err := h.entries.Search(c.Request.Context(), service.SearchQuery{
		Term:    c.Query("q"),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		h.log.Error("Failed to search entries", logger.Error(err))
		handleServiceError(c, err, "search")
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateEntry records a new entry.
// POST /api/v1/entries
func (h *Handler) CreateEntry(c *gin.Context) {
	var req domain.NewEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	entry, err := h.entries.Create(c.Request.Context(), req)
	if err != nil {
		if !isClientError(err) {
			h.log.Error("Failed to create entry", logger.Error(err))
		}
		handleServiceError(c, err, "create")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// DeleteEntry removes an entry.
// DELETE /api/v1/entries/:id
func (h *Handler) DeleteEntry(c *gin.Context) {
	id, ok := parseUUID(c, "id")
	if !ok {
		return
	}

	if err := h.entries.Delete(c.Request.Context(), id); err != nil {
		if !isClientError(err) {
			h.log.Error("Failed to delete entry", logger.String("entry_id", id.String()), logger.Error(err))
		}
		handleServiceError(c, err, "delete")
		return
	}

	c.Status(http.StatusNoContent)
}

// ExportEntries downloads the listing, optionally filtered by q.
// GET /api/v1/entries/export?format=csv|xlsx&q=
func (h *Handler) ExportEntries(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid format. Valid values: csv, xlsx"})
		return
	}

	entries, err := h.entries.All(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.log.Error("Failed to load entries for export", logger.Error(err))
		handleServiceError(c, err, "export")
		return
	}

	name := export.FileName(format, h.now().In(h.loc))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Header("Content-Type", format.ContentType())
	c.Status(http.StatusOK)

	if err = export.Write(c.Writer, format, entries, h.loc); err != nil {
		// Headers are already sent; all that is left is to log.
		h.log.Error("Failed to write export",
			logger.String("format", string(format)),
			logger.Int("entries", len(entries)),
			logger.Error(err),
		)
	}
}

func parseWindow(c *gin.Context) (int, bool) {
	raw := c.Query("window")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "window must be a whole number of days"})
		return 0, false
	}
	if n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": analytics.ErrInvalidWindow.Error()})
		return 0, false
	}
	return n, true
}

func parsePositiveQuery(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return n, true
}
