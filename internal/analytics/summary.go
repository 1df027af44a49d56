package analytics

import (
	"math"

	"github.com/sammyhga/SoulsData/internal/domain"
)

// Channel breakdown labels.
const (
	LabelOnWhatsApp    = "On WhatsApp"
	LabelNotOnWhatsApp = "Not on WhatsApp"
)

// WindowedStats holds the scalar figures for a filtered set.
type WindowedStats struct {
	TotalEntries      int `json:"total_entries"`
	Won               int `json:"won"`
	Recommitted       int `json:"recommitted"`
	Encouraged        int `json:"encouraged"`
	Invited           int `json:"invited"`
	OnWhatsApp        int `json:"on_whatsapp"`
	UniqueResidences  int `json:"unique_residences"`
	UniqueSoulWinners int `json:"unique_soul_winners"`
	UniqueZones       int `json:"unique_zones"`
	AverageAge        int `json:"average_age"`
}

// CategoryCount returns the tally for c; categories outside the vocabulary
// are not tallied.
func (s WindowedStats) CategoryCount(c domain.Category) int {
	switch c {
	case domain.CategoryWon:
		return s.Won
	case domain.CategoryRecommitted:
		return s.Recommitted
	case domain.CategoryEncouraged:
		return s.Encouraged
	case domain.CategoryInvited:
		return s.Invited
	default:
		return 0
	}
}

// Slice is one non-zero segment of a breakdown chart.
type Slice struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Summarize tallies entries. Distinct counts compare raw strings, so case
// differences count as different values.
func Summarize(entries []domain.Entry) WindowedStats {
	var (
		stats      WindowedStats
		residences = make(map[string]struct{})
		recorders  = make(map[string]struct{})
		zones      = make(map[string]struct{})
		ageSum     float64
		ageCount   int
	)

	for i := range entries {
		e := &entries[i]
		stats.TotalEntries++

		switch e.Category {
		case domain.CategoryWon:
			stats.Won++
		case domain.CategoryRecommitted:
			stats.Recommitted++
		case domain.CategoryEncouraged:
			stats.Encouraged++
		case domain.CategoryInvited:
			stats.Invited++
		}
		if e.Reachable() {
			stats.OnWhatsApp++
		}

		residences[e.Residence] = struct{}{}
		recorders[e.SoulWinner] = struct{}{}
		zones[e.Zone] = struct{}{}

		if age, ok := domain.ParseAge(e.Age); ok {
			ageSum += float64(age)
			ageCount++
		}
	}

	stats.UniqueResidences = len(residences)
	stats.UniqueSoulWinners = len(recorders)
	stats.UniqueZones = len(zones)
	if ageCount > 0 {
		stats.AverageAge = roundAge(ageSum / float64(ageCount))
	}
	return stats
}

// roundAge rounds half up and clamps to the int range, since stored ages
// are free text and can be arbitrarily large.
func roundAge(mean float64) int {
	r := math.Floor(mean + 0.5)
	switch {
	case r >= math.MaxInt:
		return math.MaxInt
	case r <= math.MinInt:
		return math.MinInt
	default:
		return int(r)
	}
}

// CategoryBreakdown lists the vocabulary categories with a non-zero count,
// in vocabulary order.
func CategoryBreakdown(stats WindowedStats) []Slice {
	out := make([]Slice, 0, len(domain.Categories))
	for _, c := range domain.Categories {
		if n := stats.CategoryCount(c); n > 0 {
			out = append(out, Slice{Key: string(c), Label: c.Label(), Count: n})
		}
	}
	return out
}

// ChannelBreakdown splits the total by WhatsApp reachability, omitting
// empty slices.
func ChannelBreakdown(stats WindowedStats) []Slice {
	out := make([]Slice, 0, 2)
	if stats.OnWhatsApp > 0 {
		out = append(out, Slice{Key: domain.WhatsAppYes, Label: LabelOnWhatsApp, Count: stats.OnWhatsApp})
	}
	if off := stats.TotalEntries - stats.OnWhatsApp; off > 0 {
		out = append(out, Slice{Key: domain.WhatsAppNo, Label: LabelNotOnWhatsApp, Count: off})
	}
	return out
}
