package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sammyhga/SoulsData/internal/domain"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	lagos := time.FixedZone("WAT", 60*60)

	tests := []struct {
		name string
		raw  string
		loc  *time.Location
		want time.Time
		ok   bool
	}{
		{name: "iso with millis", raw: "2024-03-05T10:15:00.000Z", loc: time.UTC, want: time.Date(2024, 3, 5, 10, 15, 0, 0, time.UTC), ok: true},
		{name: "rfc3339 offset", raw: "2024-03-05T10:15:00+01:00", loc: time.UTC, want: time.Date(2024, 3, 5, 9, 15, 0, 0, time.UTC), ok: true},
		{name: "date only in location", raw: "2024-03-05", loc: lagos, want: time.Date(2024, 3, 5, 0, 0, 0, 0, lagos), ok: true},
		{name: "local datetime", raw: "2024-03-05T08:00:00", loc: time.UTC, want: time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC), ok: true},
		{name: "postgres text", raw: "2024-03-05 08:00:00+00", loc: time.UTC, want: time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC), ok: true},
		{name: "surrounding space", raw: " 2024-03-05 ", loc: nil, want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), ok: true},
		{name: "local minutes", raw: "2024-03-05T10:00", loc: lagos, want: time.Date(2024, 3, 5, 10, 0, 0, 0, lagos), ok: true},
		{name: "local minutes with space", raw: "2024-03-05 10:30", loc: time.UTC, want: time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC), ok: true},
		{name: "zoned minutes", raw: "2024-03-05T10:00Z", loc: lagos, want: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), ok: true},
		{name: "minutes with offset", raw: "2024-03-05T10:00+01:00", loc: time.UTC, want: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC), ok: true},
		{name: "local hour", raw: "2024-03-05T10", loc: time.UTC, want: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), ok: true},
		{name: "empty", raw: "", ok: false},
		{name: "garbage", raw: "yesterday", ok: false},
		{name: "impossible day", raw: "2024-02-30", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := domain.ParseDate(tt.raw, tt.loc)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseAge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want int
		ok   bool
	}{
		{raw: "25", want: 25, ok: true},
		{raw: " 30 ", want: 30, ok: true},
		{raw: "41 yrs", want: 41, ok: true},
		{raw: "+7", want: 7, ok: true},
		{raw: "-3", want: -3, ok: true},
		{raw: "abc", ok: false},
		{raw: "", ok: false},
		{raw: "-", ok: false},
		{raw: "x12", ok: false},
		{raw: "99999999999999999999999", ok: false},
	}

	for _, tt := range tests {
		got, ok := domain.ParseAge(tt.raw)
		assert.Equal(t, tt.ok, ok, "ParseAge(%q)", tt.raw)
		assert.Equal(t, tt.want, got, "ParseAge(%q)", tt.raw)
	}
}
