package analytics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sammyhga/SoulsData/internal/analytics"
	"github.com/sammyhga/SoulsData/internal/domain"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	entries := []domain.Entry{
		newEntry("2024-06-01", withAge("20"), withResidence("Madina"), withZone("A"), withWinner("Grace")),
		newEntry("2024-06-02", withAge("21"), withResidence("madina"), withZone("A"), withWinner("Grace"),
			withCategory(domain.CategoryRecommitted), withWhatsApp(domain.WhatsAppNo)),
		newEntry("2024-06-03", withAge("abc"), withResidence("Legon"), withZone("B"), withWinner("Ama"),
			withCategory(domain.CategoryEncouraged)),
		newEntry("2024-06-04", withAge(""), withZone(""), withCategory(domain.CategoryInvited)),
		newEntry("2024-06-05", withZone("A"), withCategory("healed")),
	}

	got := analytics.Summarize(entries)

	assert.Equal(t, analytics.WindowedStats{
		TotalEntries:      5,
		Won:               1,
		Recommitted:       1,
		Encouraged:        1,
		Invited:           1,
		OnWhatsApp:        4,
		UniqueResidences:  3,
		UniqueSoulWinners: 2,
		UniqueZones:       3,
		// (20 + 21 + 25) / 3 = 22
		AverageAge: 22,
	}, got)
}

func TestSummarize_AverageAgeRoundsHalfUp(t *testing.T) {
	t.Parallel()

	entries := []domain.Entry{newEntry("2024-06-01", withAge("20")), newEntry("2024-06-01", withAge("21"))}
	assert.Equal(t, 21, analytics.Summarize(entries).AverageAge)
}

func TestSummarize_AverageAgeOfHugeAges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ages []string
		want int
	}{
		{name: "sum exceeds int", ages: []string{"9000000000000000000", "9000000000000000000"}, want: 9000000000000000000},
		{name: "mean at int max", ages: []string{"9223372036854775807", "9223372036854775807"}, want: math.MaxInt},
		{name: "mean at int min", ages: []string{"-9223372036854775808", "-9223372036854775808"}, want: math.MinInt},
		{name: "huge and small", ages: []string{"9000000000000000000", "20"}, want: 4500000000000000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			entries := make([]domain.Entry, 0, len(tt.ages))
			for _, age := range tt.ages {
				entries = append(entries, newEntry("2024-06-01", withAge(age)))
			}
			assert.Equal(t, tt.want, analytics.Summarize(entries).AverageAge)
		})
	}
}

func TestSummarize_NoNumericAges(t *testing.T) {
	t.Parallel()

	entries := []domain.Entry{newEntry("2024-06-01", withAge("abc")), newEntry("2024-06-01", withAge(""))}
	got := analytics.Summarize(entries)

	assert.Equal(t, 2, got.TotalEntries)
	assert.Zero(t, got.AverageAge)
}

func TestSummarize_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, analytics.WindowedStats{}, analytics.Summarize(nil))
}

func TestCategoryBreakdown(t *testing.T) {
	t.Parallel()

	stats := analytics.WindowedStats{TotalEntries: 6, Won: 2, Invited: 3}

	assert.Equal(t, []analytics.Slice{
		{Key: "won", Label: "Won to Christ", Count: 2},
		{Key: "invited", Label: "Invited", Count: 3},
	}, analytics.CategoryBreakdown(stats))
	assert.Empty(t, analytics.CategoryBreakdown(analytics.WindowedStats{}))
}

func TestCategoryBreakdown_CountConservation(t *testing.T) {
	t.Parallel()

	entries := []domain.Entry{
		newEntry("2024-06-01"),
		newEntry("2024-06-01", withCategory(domain.CategoryInvited)),
		newEntry("2024-06-01", withCategory("healed")),
	}
	stats := analytics.Summarize(entries)

	sum := 0
	for _, s := range analytics.CategoryBreakdown(stats) {
		sum += s.Count
	}
	assert.Equal(t, 2, sum)
	assert.LessOrEqual(t, sum, stats.TotalEntries)
}

func TestChannelBreakdown(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []analytics.Slice{
		{Key: "yes", Label: analytics.LabelOnWhatsApp, Count: 3},
		{Key: "no", Label: analytics.LabelNotOnWhatsApp, Count: 1},
	}, analytics.ChannelBreakdown(analytics.WindowedStats{TotalEntries: 4, OnWhatsApp: 3}))

	assert.Equal(t, []analytics.Slice{
		{Key: "no", Label: analytics.LabelNotOnWhatsApp, Count: 2},
	}, analytics.ChannelBreakdown(analytics.WindowedStats{TotalEntries: 2}))

	assert.Empty(t, analytics.ChannelBreakdown(analytics.WindowedStats{}))
}
