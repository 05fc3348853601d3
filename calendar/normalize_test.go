package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 13, 9, 0, 0, 0, Eastern())

func TestNormalizeDropsNonHighImpact(t *testing.T) {
	t.Parallel()

	for _, impact := range []string{string(ImpactMedium), string(ImpactLow), "Holiday", ""} {
		raw := RawRecord{
			Title:   "CPI y/y",
			Country: "USD",
			Impact:  impact,
			Date:    "2025-01-15T08:30:00-05:00",
		}
		_, ok := Normalize(raw, testNow)
		assert.False(t, ok, "impact %q should be dropped", impact)
	}
}

func TestNormalizeDropsMissingCurrency(t *testing.T) {
	t.Parallel()

	raw := RawRecord{Title: "CPI y/y", Impact: "High", Date: "2025-01-15T08:30:00-05:00"}
	_, ok := Normalize(raw, testNow)
	assert.False(t, ok)
}

func TestNormalizeDropsPastEvents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		date string
	}{
		{"yesterday", "2025-01-12T08:30:00-05:00"},
		{"exactly now", "2025-01-13T09:00:00-05:00"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw := RawRecord{Title: "NFP", Country: "USD", Impact: "High", Date: tt.date}
			_, ok := Normalize(raw, testNow)
			assert.False(t, ok)
		})
	}
}

func TestNormalizeExplicitOffset(t *testing.T) {
	t.Parallel()

	// 13:30 UTC is 08:30 Eastern.
	raw := RawRecord{Title: "NFP", Country: "usd", Impact: "High", Date: "2025-01-17T13:30:00Z"}
	ev, ok := Normalize(raw, testNow)
	require.True(t, ok)

	want := time.Date(2025, 1, 17, 8, 30, 0, 0, Eastern())
	assert.True(t, ev.OccursAt.Equal(want), "got %v", ev.OccursAt)
	assert.Equal(t, "USD", ev.Currency)
	assert.Equal(t, Eastern(), ev.OccursAt.Location())
}

func TestNormalizeNaiveTimeIsEastern(t *testing.T) {
	t.Parallel()

	for _, date := range []string{"2025-01-17T08:30:00", "2025-01-17 08:30:00"} {
		raw := RawRecord{Title: "Retail Sales", Country: "GBP", Impact: "High", Date: date}
		ev, ok := Normalize(raw, testNow)
		require.True(t, ok, "date %q", date)

		want := time.Date(2025, 1, 17, 8, 30, 0, 0, Eastern())
		assert.True(t, ev.OccursAt.Equal(want), "date %q got %v", date, ev.OccursAt)
	}
}

func TestNormalizeDateOnlyDefaultsToNoon(t *testing.T) {
	t.Parallel()

	raw := RawRecord{Title: "Bank Holiday", Country: "EUR", Impact: "High", Date: "2025-01-17"}
	ev, ok := Normalize(raw, testNow)
	require.True(t, ok)

	want := time.Date(2025, 1, 17, 12, 0, 0, 0, Eastern())
	assert.True(t, ev.OccursAt.Equal(want))
}

func TestNormalizeSeparateClockField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		clock string
		hour  int
		min   int
	}{
		{"24h", "14:00", 14, 0},
		{"am-pm", "8:30am", 8, 30},
		{"all day falls back to noon", "All Day", 12, 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			raw := RawRecord{Title: "FOMC", Country: "USD", Impact: "High", Date: "2025-01-17", Time: tt.clock}
			ev, ok := Normalize(raw, testNow)
			require.True(t, ok)

			want := time.Date(2025, 1, 17, tt.hour, tt.min, 0, 0, Eastern())
			assert.True(t, ev.OccursAt.Equal(want), "got %v", ev.OccursAt)
		})
	}
}

func TestNormalizeUnparseableDateDropped(t *testing.T) {
	t.Parallel()

	raw := RawRecord{Title: "FOMC", Country: "USD", Impact: "High", Date: "next tuesday"}
	_, ok := Normalize(raw, testNow)
	assert.False(t, ok)
}

func TestNormalizeFallbackTitle(t *testing.T) {
	t.Parallel()

	raw := RawRecord{Country: "USD", Impact: "High", Date: "2025-01-17T08:30:00-05:00"}
	ev, ok := Normalize(raw, testNow)
	require.True(t, ok)
	assert.Equal(t, "Economic Event", ev.Title)
}
