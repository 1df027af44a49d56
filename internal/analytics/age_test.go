package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sammyhga/SoulsData/internal/analytics"
	"github.com/sammyhga/SoulsData/internal/domain"
)

func TestBucketAges_Boundaries(t *testing.T) {
	t.Parallel()

	var entries []domain.Entry
	for _, age := range []string{"0", "12", "13", "19", "20", "30", "31", "40", "41", "50", "51", "90", "abc", ""} {
		entries = append(entries, newEntry("2024-06-01", withAge(age)))
	}

	assert.Equal(t, []analytics.AgeBand{
		{Label: "0-12", Count: 2},
		{Label: "13-19", Count: 2},
		{Label: "20-30", Count: 2},
		{Label: "31-40", Count: 2},
		{Label: "41-50", Count: 2},
		{Label: "51+", Count: 2},
	}, analytics.BucketAges(entries))
}

func TestBucketAges_AllBandsPresentWhenEmpty(t *testing.T) {
	t.Parallel()

	got := analytics.BucketAges(nil)

	labels := make([]string, 0, len(got))
	for _, b := range got {
		labels = append(labels, b.Label)
		assert.Zero(t, b.Count)
	}
	assert.Equal(t, []string{"0-12", "13-19", "20-30", "31-40", "41-50", "51+"}, labels)
}
