// Package analytics derives reporting figures from a snapshot of entries.
//
// Every function here is pure: it reads the entries it is given and the
// clock and location configured on the Engine, and returns fresh values.
// Entries whose date cannot be parsed are left out of windowed results, and
// unparseable ages only drop out of the age figures.
package analytics

import (
	"errors"
	"time"

	"github.com/sammyhga/SoulsData/internal/domain"
)

// Window presets offered by the dashboard. Any positive day count works.
const (
	WindowWeek    = 7
	WindowMonth   = 30
	WindowQuarter = 90
	WindowYear    = 365
	WindowAllTime = 3650
)

// Default ranking sizes.
const (
	DefaultTopRecorders  = 10
	DefaultTopResidences = 6
	DefaultTopZones      = 6
)

// ErrInvalidWindow is returned for a window of zero or fewer days.
var ErrInvalidWindow = errors.New("window must be a positive number of days")

// Options configures an Engine.
type Options struct {
	TopRecorders  int
	TopResidences int
	TopZones      int
	// Location decides calendar days and months. Defaults to UTC.
	Location *time.Location
	// Now is the clock used for window cutoffs. Defaults to time.Now.
	Now func() time.Time
}

func (o *Options) setDefaults() {
	if o.TopRecorders <= 0 {
		o.TopRecorders = DefaultTopRecorders
	}
	if o.TopResidences <= 0 {
		o.TopResidences = DefaultTopResidences
	}
	if o.TopZones <= 0 {
		o.TopZones = DefaultTopZones
	}
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Engine builds reports. It holds no state between calls.
type Engine struct {
	opts Options
}

// NewEngine returns an Engine with opts, filling unset fields with defaults.
func NewEngine(opts Options) *Engine {
	opts.setDefaults()
	return &Engine{opts: opts}
}

// Location returns the engine's calendar location.
func (e *Engine) Location() *time.Location {
	return e.opts.Location
}

// Query selects the trailing window to report on.
type Query struct {
	WindowDays int
}

// Report is everything the dashboard shows for one window.
type Report struct {
	WindowDays        int               `json:"window_days"`
	GeneratedAt       time.Time         `json:"generated_at"`
	Stats             WindowedStats     `json:"stats"`
	CategoryBreakdown []Slice           `json:"category_breakdown"`
	ChannelBreakdown  []Slice           `json:"channel_breakdown"`
	Granularity       Granularity       `json:"granularity"`
	TimeSeries        []TimeSeriesPoint `json:"time_series"`
	TopRecorders      []RankedCount     `json:"top_recorders"`
	TopResidences     []RankedCount     `json:"top_residences"`
	TopZones          []RankedCount     `json:"top_zones"`
	AgeBands          []AgeBand         `json:"age_bands"`
	// Undated counts snapshot entries left out because their date did not parse.
	Undated int `json:"undated"`
}

// Build filters entries to q's window and derives every figure from the
// filtered set. The input slice is not modified.
func (e *Engine) Build(entries []domain.Entry, q Query) (*Report, error) {
	if q.WindowDays <= 0 {
		return nil, ErrInvalidWindow
	}

	now := e.opts.Now().In(e.opts.Location)
	filtered := FilterWindow(entries, q.WindowDays, now, e.opts.Location)
	stats := Summarize(filtered)
	granularity, series := BucketTimeSeries(filtered, e.opts.Location)

	return &Report{
		WindowDays:        q.WindowDays,
		GeneratedAt:       now,
		Stats:             stats,
		CategoryBreakdown: CategoryBreakdown(stats),
		ChannelBreakdown:  ChannelBreakdown(stats),
		Granularity:       granularity,
		TimeSeries:        series,
		TopRecorders:      TopRecorders(filtered, e.opts.TopRecorders),
		TopResidences:     TopResidences(filtered, e.opts.TopResidences),
		TopZones:          TopZones(filtered, e.opts.TopZones),
		AgeBands:          BucketAges(filtered),
		Undated:           CountUndated(entries, e.opts.Location),
	}, nil
}
