package calendar

import (
	"strings"
	"time"
)

// fallbackTitle is used when the source omits the event name.
const fallbackTitle = "Economic Event"

// Normalize converts one raw provider record into a canonical Event.
// The returned bool reports whether the record was kept. A record is
// dropped when its currency is missing, its impact is not High, its
// timestamp cannot be parsed, or the resolved time is not after now.
//
// Output order is whatever the provider emitted; callers that need
// chronological order must sort.
func Normalize(raw RawRecord, now time.Time) (Event, bool) {
	currency := strings.ToUpper(strings.TrimSpace(raw.Country))
	if currency == "" {
		return Event{}, false
	}
	if !strings.EqualFold(strings.TrimSpace(raw.Impact), string(ImpactHigh)) {
		return Event{}, false
	}

	occursAt, ok := resolveTime(raw.Date, raw.Time)
	if !ok {
		return Event{}, false
	}
	if !occursAt.After(now) {
		return Event{}, false
	}

	title := strings.TrimSpace(raw.Title)
	if title == "" {
		title = fallbackTitle
	}

	return Event{
		Title:    title,
		Currency: currency,
		Impact:   ImpactHigh,
		OccursAt: occursAt,
		Actual:   strings.TrimSpace(raw.Actual),
		Forecast: strings.TrimSpace(raw.Forecast),
		Previous: strings.TrimSpace(raw.Previous),
	}, true
}

// resolveTime applies the time-resolution policy, in priority order:
//  1. timestamp carries an explicit UTC offset: convert to Eastern
//  2. date+time with no offset: treat as already Eastern
//  3. date only: 12:00 Eastern, unless a separate clock field parses
//
// The noon default is a documented approximation, not a guarantee.
func resolveTime(date, clock string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	if date == "" {
		return time.Time{}, false
	}
	loc := Eastern()

	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.In(loc), true
	}

	naive := []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}
	for _, layout := range naive {
		if t, err := time.ParseInLocation(layout, date, loc); err == nil {
			return t, true
		}
	}

	day, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, false
	}
	hour, min := 12, 0
	if h, m, ok := parseClock(clock); ok {
		hour, min = h, m
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, loc), true
}

// parseClock handles the separate time field some feeds emit. Values
// like "All Day" or "Tentative" simply fail to parse and the caller
// falls back to noon.
func parseClock(s string) (hour, min int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false
	}
	for _, layout := range []string{"15:04", "3:04pm", "3:04PM"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Hour(), t.Minute(), true
		}
	}
	return 0, 0, false
}
