package calendar

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultMemoryTTL = 5 * time.Minute
	DefaultDiskTTL   = 6 * time.Hour
)

// Info describes how a set of events was obtained.
type Info struct {
	FromCache bool
	Stale     bool // served past its TTL because a refresh failed
	FetchedAt time.Time
}

type cacheEntry struct {
	fetchedAt time.Time
	events    []Event
}

// CacheOptions tune the cache. Zero values select defaults.
type CacheOptions struct {
	MemoryTTL time.Duration
	DiskTTL   time.Duration
	Now       func() time.Time
}

// Cache is a time-boxed in-memory event cache backed by a slower-expiry
// on-disk snapshot, with a Provider fetch as the miss path. Entries are
// immutable once stored; a refresh replaces the whole slice.
type Cache struct {
	provider Provider
	store    diskStore
	memTTL   time.Duration
	diskTTL  time.Duration
	now      func() time.Time
	log      zerolog.Logger

	mu      sync.RWMutex
	entries map[string]cacheEntry

	group singleflight.Group
}

// NewCache builds a cache over the given provider, persisting snapshots
// under dir.
func NewCache(provider Provider, dir string, log zerolog.Logger, opts CacheOptions) *Cache {
	if opts.MemoryTTL <= 0 {
		opts.MemoryTTL = DefaultMemoryTTL
	}
	if opts.DiskTTL <= 0 {
		opts.DiskTTL = DefaultDiskTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Cache{
		provider: provider,
		store:    diskStore{dir: dir},
		memTTL:   opts.MemoryTTL,
		diskTTL:  opts.DiskTTL,
		now:      opts.Now,
		log:      log,
		entries:  make(map[string]cacheEntry),
	}
}

// Events returns the current high-impact events for currency, sorted
// chronologically. A fresh in-memory entry is served directly. On a
// miss the provider is called, with concurrent callers for the same
// currency and day sharing a single in-flight fetch. When the fetch
// fails the cache degrades: stale memory first, then the disk snapshot
// within its TTL, and finally an empty list with ErrNoData.
func (c *Cache) Events(ctx context.Context, currency string) ([]Event, Info, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	now := c.now()

	if ent, ok := c.lookup(currency); ok && c.fresh(ent, now) {
		return ent.events, Info{FromCache: true, FetchedAt: ent.fetchedAt}, nil
	}

	// The key includes the calendar date so a new day always forces at
	// least one fresh fetch.
	key := currency + "-" + now.In(Eastern()).Format("2006-01-02")
	v, err, _ := c.group.Do(key, func() (any, error) {
		ent, err := c.refresh(ctx, currency)
		if err != nil {
			return nil, err
		}
		return ent, nil
	})
	if err == nil {
		ent := v.(cacheEntry)
		return ent.events, Info{FetchedAt: ent.fetchedAt}, nil
	}

	if ent, ok := c.lookup(currency); ok {
		c.log.Warn().Err(err).Str("currency", currency).
			Time("fetched_at", ent.fetchedAt).
			Msg("calendar refresh failed; serving stale memory entry")
		return ent.events, Info{FromCache: true, Stale: true, FetchedAt: ent.fetchedAt}, nil
	}

	if snap, ok := c.store.load(currency); ok && now.Sub(snap.FetchedAt) < c.diskTTL {
		c.log.Warn().Err(err).Str("currency", currency).
			Time("fetched_at", snap.FetchedAt).
			Msg("calendar refresh failed; serving disk snapshot")
		return snap.Events, Info{FromCache: true, Stale: true, FetchedAt: snap.FetchedAt}, nil
	}

	return nil, Info{}, fmt.Errorf("%w: %v", ErrNoData, err)
}

func (c *Cache) lookup(currency string) (cacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ent, ok := c.entries[currency]
	return ent, ok
}

// fresh requires both the TTL and the same calendar day, so yesterday's
// snapshot never satisfies today's read even inside the TTL.
func (c *Cache) fresh(ent cacheEntry, now time.Time) bool {
	if now.Sub(ent.fetchedAt) >= c.memTTL {
		return false
	}
	loc := Eastern()
	y1, d1 := ent.fetchedAt.In(loc).Year(), ent.fetchedAt.In(loc).YearDay()
	y2, d2 := now.In(loc).Year(), now.In(loc).YearDay()
	return y1 == y2 && d1 == d2
}

func (c *Cache) refresh(ctx context.Context, currency string) (cacheEntry, error) {
	raws, err := c.provider.FetchRawRecords(ctx, currency)
	if err != nil {
		return cacheEntry{}, err
	}

	now := c.now()
	events := make([]Event, 0, len(raws))
	for _, raw := range raws {
		ev, ok := Normalize(raw, now)
		if !ok {
			continue
		}
		if ev.Currency != currency {
			continue
		}
		events = append(events, ev)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].OccursAt.Before(events[j].OccursAt)
	})

	ent := cacheEntry{fetchedAt: now, events: events}
	c.mu.Lock()
	c.entries[currency] = ent
	c.mu.Unlock()

	if err := c.store.save(currency, diskSnapshot{FetchedAt: now, Events: events}); err != nil {
		c.log.Warn().Err(err).Str("currency", currency).Msg("calendar disk cache write failed")
	}

	c.log.Info().Str("provider", c.provider.Name()).Str("currency", currency).
		Int("events", len(events)).Msg("calendar refreshed")
	return ent, nil
}
