package analytics

import (
	"sort"

	"github.com/sammyhga/SoulsData/internal/domain"
)

// RankedCount is one row of a top-N list.
type RankedCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// TopRecorders ranks soul winners by won and recommitted entries only.
func TopRecorders(entries []domain.Entry, limit int) []RankedCount {
	return rank(entries, limit,
		func(e *domain.Entry) string { return e.SoulWinner },
		func(e *domain.Entry) bool { return e.Category.Successful() },
	)
}

// TopResidences ranks residences by entry count.
func TopResidences(entries []domain.Entry, limit int) []RankedCount {
	return rank(entries, limit, func(e *domain.Entry) string { return e.Residence }, nil)
}

// TopZones ranks zones by entry count.
func TopZones(entries []domain.Entry, limit int) []RankedCount {
	return rank(entries, limit, func(e *domain.Entry) string { return e.Zone }, nil)
}

// rank groups by the raw label and sorts by count, keeping first-seen order
// among equal counts. A limit of zero or less keeps every label.
func rank(entries []domain.Entry, limit int, label func(*domain.Entry) string, include func(*domain.Entry) bool) []RankedCount {
	index := make(map[string]int)
	out := make([]RankedCount, 0)

	for i := range entries {
		e := &entries[i]
		if include != nil && !include(e) {
			continue
		}
		l := label(e)
		if pos, ok := index[l]; ok {
			out[pos].Count++
			continue
		}
		index[l] = len(out)
		out = append(out, RankedCount{Label: l, Count: 1})
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].Count > out[b].Count })

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
