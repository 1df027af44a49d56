package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sammyhga/SoulsData/internal/analytics"
	"github.com/sammyhga/SoulsData/internal/domain"
)

func TestTopRecorders_OnlySuccessfulOutcomes(t *testing.T) {
	t.Parallel()

	entries := []domain.Entry{
		newEntry("2024-06-01", withWinner("Ama"), withCategory(domain.CategoryEncouraged)),
		newEntry("2024-06-01", withWinner("Ama"), withCategory(domain.CategoryEncouraged)),
		newEntry("2024-06-01", withWinner("Kwame")),
		newEntry("2024-06-01", withWinner("Esi"), withCategory(domain.CategoryRecommitted)),
		newEntry("2024-06-01", withWinner("Esi")),
	}

	assert.Equal(t, []analytics.RankedCount{
		{Label: "Esi", Count: 2},
		{Label: "Kwame", Count: 1},
	}, analytics.TopRecorders(entries, analytics.DefaultTopRecorders))
}

func TestTopResidencesAndZones_CountEveryCategory(t *testing.T) {
	t.Parallel()

	entries := []domain.Entry{
		newEntry("2024-06-01", withResidence("Legon"), withZone("B"), withCategory(domain.CategoryEncouraged)),
		newEntry("2024-06-01", withResidence("Madina"), withZone("A"), withCategory(domain.CategoryInvited)),
	}

	assert.Len(t, analytics.TopResidences(entries, 6), 2)
	assert.Len(t, analytics.TopZones(entries, 6), 2)
	assert.Empty(t, analytics.TopRecorders(entries, 10))
}

func TestRanking_TiesKeepFirstSeenOrder(t *testing.T) {
	t.Parallel()

	entries := []domain.Entry{
		newEntry("2024-06-01", withResidence("Tema")),
		newEntry("2024-06-01", withResidence("Accra")),
		newEntry("2024-06-01", withResidence("Kumasi")),
		newEntry("2024-06-01", withResidence("Kumasi")),
		newEntry("2024-06-01", withResidence("Accra")),
		newEntry("2024-06-01", withResidence("Tema")),
		newEntry("2024-06-01", withResidence("Ho")),
	}

	assert.Equal(t, []analytics.RankedCount{
		{Label: "Tema", Count: 2},
		{Label: "Accra", Count: 2},
		{Label: "Kumasi", Count: 2},
		{Label: "Ho", Count: 1},
	}, analytics.TopResidences(entries, 6))
}

func TestRanking_Limits(t *testing.T) {
	t.Parallel()

	var entries []domain.Entry
	for _, z := range []string{"A", "B", "C", "D", "E", "F", "G", "H"} {
		entries = append(entries, newEntry("2024-06-01", withZone(z), withWinner("W"+z)))
	}

	assert.Len(t, analytics.TopZones(entries, 6), 6)
	assert.Len(t, analytics.TopRecorders(entries, 10), 8)
	assert.Len(t, analytics.TopRecorders(entries, 3), 3)
	assert.Len(t, analytics.TopZones(entries, 0), 8)
}

func TestRanking_UncuratedLabelsKeptLiterally(t *testing.T) {
	t.Parallel()

	entries := []domain.Entry{
		newEntry("2024-06-01", withZone("")),
		newEntry("2024-06-01", withZone("zone a")),
		newEntry("2024-06-01", withZone("Zone A")),
	}

	got := analytics.TopZones(entries, 6)
	assert.Equal(t, []analytics.RankedCount{
		{Label: "", Count: 1},
		{Label: "zone a", Count: 1},
		{Label: "Zone A", Count: 1},
	}, got)
}
