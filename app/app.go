// Package app runs the background calendar refresh and the periodic
// evaluation loop, publishing immutable snapshots so the display layer
// never reads a half-written event list.
package app

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/traderndumia/propfire/calendar"
	"github.com/traderndumia/propfire/config"
	"github.com/traderndumia/propfire/schedule"
)

// Snapshot is one published view of the calendar. The fetch worker
// stores a new snapshot atomically; the tick loop only ever loads the
// latest pointer.
type Snapshot struct {
	Events []calendar.Event
	Info   calendar.Info
	Err    error
	At     time.Time
}

// Update is one tick's evaluation, consumed by the display layer.
type Update struct {
	At        time.Time
	Outcome   schedule.Outcome
	Countdown time.Duration
	// Fallback is set when the snapshot is stale or empty and the
	// display should note "using cached/fallback timing".
	Fallback bool
}

// App wires the cache, scheduler, and settings into a running timer.
type App struct {
	cfg   *config.Config
	cache *calendar.Cache
	set   schedule.Settings
	log   zerolog.Logger
	now   func() time.Time

	snap    atomic.Pointer[Snapshot]
	updates chan Update
}

// New builds the runtime. Settings must already be validated.
func New(cfg *config.Config, cache *calendar.Cache, log zerolog.Logger) *App {
	a := &App{
		cfg:   cfg,
		cache: cache,
		set: schedule.Settings{
			Currency: cfg.Settings.Currency,
			PropFirm: cfg.Settings.PropFirm,
			Day:      cfg.Settings.Day,
			Session:  cfg.Settings.Session,
		},
		log:     log,
		now:     time.Now,
		updates: make(chan Update, 1),
	}
	a.snap.Store(&Snapshot{})
	return a
}

// Updates returns the evaluation stream. The channel buffers only the
// latest update; a slow consumer never blocks the tick loop.
func (a *App) Updates() <-chan Update { return a.updates }

// Run fetches once immediately, schedules periodic refreshes, and
// evaluates the restriction state once per second until ctx is
// canceled. In-flight fetches are simply abandoned at shutdown; their
// own timeout bounds them.
func (a *App) Run(ctx context.Context) error {
	cr := cron.New()
	spec := fmt.Sprintf("@every %s", a.cfg.Calendar.Refresh)
	if _, err := cr.AddFunc(spec, func() { a.refresh(ctx) }); err != nil {
		return fmt.Errorf("schedule calendar refresh: %w", err)
	}

	go a.refresh(ctx)
	cr.Start()
	defer cr.Stop()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			close(a.updates)
			return nil
		case <-ticker.C:
			a.tick()
		}
	}
}

// refresh runs on the fetch worker, never on the tick loop.
func (a *App) refresh(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	events, info, err := a.cache.Events(ctx, a.set.Currency)
	a.snap.Store(&Snapshot{Events: events, Info: info, Err: err, At: a.now()})

	switch {
	case err != nil:
		a.log.Warn().Err(err).Msg("calendar unavailable; falling back to session timing")
	case info.Stale:
		a.log.Warn().Time("fetched_at", info.FetchedAt).Msg("using cached calendar data")
	}
}

func (a *App) tick() {
	now := a.now()
	snap := a.snap.Load()

	out, err := schedule.Evaluate(now, a.set, snap.Events)
	if err != nil {
		// Settings were validated at startup; this is a bug, not a
		// user-facing condition.
		a.log.Error().Err(err).Msg("schedule evaluation failed")
		return
	}

	a.publish(Update{
		At:        now,
		Outcome:   out,
		Countdown: out.NextAllowedAt.Sub(now),
		Fallback:  snap.Err != nil || snap.Info.Stale,
	})
}

// publish replaces any undelivered update so the consumer always sees
// the freshest evaluation.
func (a *App) publish(u Update) {
	for {
		select {
		case a.updates <- u:
			return
		default:
			select {
			case <-a.updates:
			default:
			}
		}
	}
}
