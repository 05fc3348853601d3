// Package schedule computes, from the current time and the user's
// currency/day/session/prop-firm selection, the next moment trading is
// permitted and a status classification. Everything here is pure; all
// I/O lives with the caller.
package schedule

import (
	"fmt"
	"time"

	"github.com/traderndumia/propfire/calendar"
)

// TimeOfDay is a clock time in the reference (US Eastern) zone.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

func (t TimeOfDay) minutes() int {
	return t.Hour*60 + t.Minute
}

// Session is a fixed time-of-day trading interval. Start > End means
// the session wraps midnight (the overnight Asia session).
type Session struct {
	Name  string
	Start TimeOfDay
	End   TimeOfDay
}

// Contains reports whether t falls inside the session, honoring the
// wrap-around rule for overnight sessions.
func (s Session) Contains(t time.Time) bool {
	local := t.In(calendar.Eastern())
	m := local.Hour()*60 + local.Minute()
	start, end := s.Start.minutes(), s.End.minutes()
	if start <= end {
		return m >= start && m < end
	}
	return m >= start || m < end
}

// NextStart returns the next session open strictly after now. A start
// time already passed today rolls to the same time tomorrow.
func (s Session) NextStart(now time.Time) time.Time {
	loc := calendar.Eastern()
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(),
		s.Start.Hour, s.Start.Minute, 0, 0, loc)
	if !now.Before(start) {
		start = start.AddDate(0, 0, 1)
	}
	return start
}

// Sessions are the selectable trading sessions, in Eastern time.
var Sessions = map[string]Session{
	"Asia":     {Name: "Asia", Start: TimeOfDay{19, 0}, End: TimeOfDay{4, 0}},
	"London":   {Name: "London", Start: TimeOfDay{3, 0}, End: TimeOfDay{12, 0}},
	"New York": {Name: "New York", Start: TimeOfDay{8, 0}, End: TimeOfDay{17, 0}},
}

// SessionByName looks up a session definition.
func SessionByName(name string) (Session, bool) {
	s, ok := Sessions[name]
	return s, ok
}
