package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/traderndumia/propfire/calendar"
)

func et(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, calendar.Eastern())
}

func TestSessionContainsWrapAround(t *testing.T) {
	t.Parallel()

	asia := Session{Name: "Asia", Start: TimeOfDay{19, 0}, End: TimeOfDay{4, 0}}

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"late evening in session", et(2025, 1, 13, 23, 0), true},
		{"just after open", et(2025, 1, 13, 19, 0), true},
		{"early morning in session", et(2025, 1, 14, 3, 59), true},
		{"mid-morning out of session", et(2025, 1, 14, 10, 0), false},
		{"at close", et(2025, 1, 14, 4, 0), false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, asia.Contains(tt.at))
		})
	}
}

func TestSessionContainsDaytime(t *testing.T) {
	t.Parallel()

	london := Sessions["London"]
	assert.True(t, london.Contains(et(2025, 1, 13, 7, 0)))
	assert.False(t, london.Contains(et(2025, 1, 13, 14, 0)))
}

func TestSessionNextStartToday(t *testing.T) {
	t.Parallel()

	ny := Sessions["New York"]
	now := et(2025, 1, 13, 6, 30)

	got := ny.NextStart(now)
	assert.True(t, got.Equal(et(2025, 1, 13, 8, 0)), "got %v", got)
}

func TestSessionNextStartRollsToTomorrow(t *testing.T) {
	t.Parallel()

	ny := Sessions["New York"]
	now := et(2025, 1, 13, 9, 0)

	got := ny.NextStart(now)
	assert.True(t, got.Equal(et(2025, 1, 14, 8, 0)), "got %v", got)
}

func TestSessionNextStartAtExactOpenRolls(t *testing.T) {
	t.Parallel()

	ny := Sessions["New York"]
	now := et(2025, 1, 13, 8, 0)

	got := ny.NextStart(now)
	assert.True(t, got.Equal(et(2025, 1, 14, 8, 0)), "got %v", got)
}
