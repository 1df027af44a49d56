package analytics

import "github.com/sammyhga/SoulsData/internal/domain"

// AgeBand is one fixed age range and its count.
type AgeBand struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

var ageBands = []struct {
	label string
	upper int
}{
	{"0-12", 12},
	{"13-19", 19},
	{"20-30", 30},
	{"31-40", 40},
	{"41-50", 50},
}

const overflowBand = "51+"

// BucketAges counts entries per age band. All six bands are returned, in
// ascending order, even when empty; entries without a numeric age are
// skipped.
func BucketAges(entries []domain.Entry) []AgeBand {
	out := make([]AgeBand, 0, len(ageBands)+1)
	for _, b := range ageBands {
		out = append(out, AgeBand{Label: b.label})
	}
	out = append(out, AgeBand{Label: overflowBand})

	for i := range entries {
		age, ok := domain.ParseAge(entries[i].Age)
		if !ok {
			continue
		}
		out[bandIndex(age)].Count++
	}
	return out
}

func bandIndex(age int) int {
	for i, b := range ageBands {
		if age <= b.upper {
			return i
		}
	}
	return len(ageBands)
}
