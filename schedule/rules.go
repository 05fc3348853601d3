package schedule

import "time"

// Rule is a prop firm's exclusion window around a high-impact release:
// trading is disallowed from event-Before through event+After.
type Rule struct {
	Before time.Duration
	After  time.Duration
}

// Firms maps prop firm names to their news-trading restrictions.
var Firms = map[string]Rule{
	"FTMO":         {Before: 2 * time.Minute, After: 2 * time.Minute},
	"MyForexFunds": {Before: 5 * time.Minute, After: 5 * time.Minute},
	"The5ers":      {Before: 3 * time.Minute, After: 3 * time.Minute},
	"FundedNext":   {Before: 2 * time.Minute, After: 3 * time.Minute},
}

// FirmByName looks up a prop firm rule.
func FirmByName(name string) (Rule, bool) {
	r, ok := Firms[name]
	return r, ok
}

// Days are the selectable trading days, in week order.
var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// dayIndex returns the Monday-based index of a selectable day name.
func dayIndex(name string) (int, bool) {
	for i, d := range Days {
		if d == name {
			return i, true
		}
	}
	return 0, false
}

// weekdayIndex maps a time to the same Monday-based indexing, so
// Saturday is 5 and Sunday is 6.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
