// Package calendar fetches the weekly economic calendar, normalizes it
// into a canonical high-impact event set, and caches it in memory and
// on disk.
package calendar

import (
	"context"
	"sync"
	"time"
)

// Impact classifies the expected market impact of a calendar entry.
type Impact string

const (
	ImpactHigh   Impact = "High"
	ImpactMedium Impact = "Medium"
	ImpactLow    Impact = "Low"
)

// Event is one normalized calendar entry. Only high-impact events
// survive normalization, and OccursAt always carries the reference
// (US Eastern) zone.
type Event struct {
	Title    string    `json:"title"`
	Currency string    `json:"currency"`
	Impact   Impact    `json:"impact"`
	OccursAt time.Time `json:"occurs_at"`

	// Upstream figures, passed through unparsed.
	Actual   string `json:"actual,omitempty"`
	Forecast string `json:"forecast,omitempty"`
	Previous string `json:"previous,omitempty"`
}

// RawRecord is the provider-agnostic intermediate shape. Each provider
// adapts its own payload into this before normalization.
type RawRecord struct {
	Title    string
	Country  string
	Impact   string
	Date     string // ISO with offset, "2006-01-02 15:04:05", or bare date
	Time     string // optional separate clock time, e.g. "8:30am"
	Actual   string
	Forecast string
	Previous string
}

// Provider fetches the raw weekly calendar from one upstream source.
// The currency argument is advisory; providers whose feed is not
// currency-scoped may ignore it and return the full week.
type Provider interface {
	Name() string
	FetchRawRecords(ctx context.Context, currency string) ([]RawRecord, error)
}

var (
	easternOnce sync.Once
	eastern     *time.Location
)

// Eastern returns the reference zone all event times are resolved to.
func Eastern() *time.Location {
	easternOnce.Do(func() {
		loc, err := time.LoadLocation("America/New_York")
		if err != nil {
			// No tzdata on this host; standard offset is the best we can do.
			loc = time.FixedZone("EST", -5*60*60)
		}
		eastern = loc
	})
	return eastern
}
