package analytics

import (
	"sort"
	"time"

	"github.com/sammyhga/SoulsData/internal/domain"
)

// Granularity is the bucket size chosen for a time series.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

// monthlyThresholdDays is the span above which buckets become months.
const monthlyThresholdDays = 60

const (
	dayKeyLayout     = "2006-01-02"
	dayLabelLayout   = "02 Jan"
	monthKeyLayout   = "2006-01"
	monthLabelLayout = "Jan 2006"
)

// TimeSeriesPoint is one bucket. Daily labels carry no year.
type TimeSeriesPoint struct {
	Key         string `json:"key"`
	Label       string `json:"label"`
	Total       int    `json:"total"`
	Won         int    `json:"won"`
	Recommitted int    `json:"recommitted"`
}

func (p *TimeSeriesPoint) add(c domain.Category) {
	p.Total++
	switch c {
	case domain.CategoryWon:
		p.Won++
	case domain.CategoryRecommitted:
		p.Recommitted++
	}
}

type datedEntry struct {
	at       time.Time
	category domain.Category
}

// BucketTimeSeries groups entries by day, or by month when the span between
// the earliest and latest entry exceeds 60 whole days. Monthly series cover
// every month in range; daily series only contain days with entries.
func BucketTimeSeries(entries []domain.Entry, loc *time.Location) (Granularity, []TimeSeriesPoint) {
	dated := make([]datedEntry, 0, len(entries))
	for i := range entries {
		if at, ok := domain.ParseDate(entries[i].Date, loc); ok {
			dated = append(dated, datedEntry{at: at.In(loc), category: entries[i].Category})
		}
	}
	if len(dated) == 0 {
		return GranularityDay, []TimeSeriesPoint{}
	}

	earliest, latest := dated[0].at, dated[0].at
	for _, d := range dated[1:] {
		if d.at.Before(earliest) {
			earliest = d.at
		}
		if d.at.After(latest) {
			latest = d.at
		}
	}

	if WholeDaysBetween(earliest, latest) > monthlyThresholdDays {
		return GranularityMonth, monthly(dated, earliest, latest, loc)
	}
	return GranularityDay, daily(dated)
}

// WholeDaysBetween counts complete days from earliest to latest: the
// calendar-day difference, less one when latest's time of day falls before
// earliest's.
func WholeDaysBetween(earliest, latest time.Time) int {
	loc := earliest.Location()
	latest = latest.In(loc)

	ey, em, ed := earliest.Date()
	ly, lm, ld := latest.Date()
	days := int(time.Date(ly, lm, ld, 0, 0, 0, 0, time.UTC).
		Sub(time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC)).Hours() / 24)

	if days > 0 && latest.AddDate(0, 0, -days).Before(earliest) {
		days--
	}
	return days
}

func monthly(dated []datedEntry, earliest, latest time.Time, loc *time.Location) []TimeSeriesPoint {
	start := time.Date(earliest.Year(), earliest.Month(), 1, 0, 0, 0, 0, loc)
	end := time.Date(latest.Year(), latest.Month(), 1, 0, 0, 0, 0, loc)

	var points []TimeSeriesPoint
	index := make(map[string]int)
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		key := m.Format(monthKeyLayout)
		index[key] = len(points)
		points = append(points, TimeSeriesPoint{Key: key, Label: m.Format(monthLabelLayout)})
	}

	for _, d := range dated {
		points[index[d.at.Format(monthKeyLayout)]].add(d.category)
	}
	return points
}

func daily(dated []datedEntry) []TimeSeriesPoint {
	buckets := make(map[string]*TimeSeriesPoint)
	for _, d := range dated {
		key := d.at.Format(dayKeyLayout)
		p, ok := buckets[key]
		if !ok {
			p = &TimeSeriesPoint{Key: key, Label: d.at.Format(dayLabelLayout)}
			buckets[key] = p
		}
		p.add(d.category)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	points := make([]TimeSeriesPoint, 0, len(keys))
	for _, k := range keys {
		points = append(points, *buckets[k])
	}
	return points
}
