package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/traderndumia/propfire/calendar"
)

// Status classifies why trading is (or is not) currently restricted.
type Status string

const (
	// TradingOpen means no restriction is active right now.
	TradingOpen Status = "trading_open"
	// BlockedPending means an upcoming event's window has not opened yet;
	// trading is allowed until the window starts.
	BlockedPending Status = "blocked_pending"
	// BlockedActive means now is inside an event's exclusion window.
	BlockedActive Status = "blocked_active"
	// AwaitingSession means no qualifying event exists and the countdown
	// targets the next session open.
	AwaitingSession Status = "awaiting_session"
)

// Settings is the user selection the scheduler evaluates against. All
// four fields must name members of their fixed enumerated sets.
type Settings struct {
	Currency string
	PropFirm string
	Day      string
	Session  string
}

// Resolve maps the enumerated names onto their rule and session
// definitions. Unknown names are a caller error.
func (s Settings) Resolve() (Rule, Session, error) {
	rule, ok := FirmByName(s.PropFirm)
	if !ok {
		return Rule{}, Session{}, fmt.Errorf("unknown prop firm %q", s.PropFirm)
	}
	sess, ok := SessionByName(s.Session)
	if !ok {
		return Rule{}, Session{}, fmt.Errorf("unknown session %q", s.Session)
	}
	if _, ok := dayIndex(s.Day); !ok {
		return Rule{}, Session{}, fmt.Errorf("unknown trading day %q", s.Day)
	}
	return rule, sess, nil
}

// Outcome is the scheduler's verdict for one evaluation instant.
type Outcome struct {
	NextAllowedAt time.Time
	Status        Status
	Message       string

	// DayElapsed is advisory: the selected day already passed this week.
	// It overrides the message but not the countdown target.
	DayElapsed bool

	// Event drives a blocked status; nil otherwise.
	Event *calendar.Event
}

// Evaluate computes the next allowed-trade instant. It is deterministic
// given its inputs and performs no I/O. The error is non-nil only for
// settings outside their enumerated sets.
func Evaluate(now time.Time, s Settings, events []calendar.Event) (Outcome, error) {
	rule, sess, err := s.Resolve()
	if err != nil {
		return Outcome{}, err
	}
	return evaluate(now, s, rule, sess, events), nil
}

func evaluate(now time.Time, s Settings, rule Rule, sess Session, events []calendar.Event) Outcome {
	var out Outcome

	if next := upcomingEvent(now, s, events); next != nil {
		blockStart := next.OccursAt.Add(-rule.Before)
		blockEnd := next.OccursAt.Add(rule.After)
		switch {
		case now.Before(blockStart):
			out = Outcome{
				NextAllowedAt: blockStart,
				Status:        BlockedPending,
				Message:       fmt.Sprintf("Trading blocked before %s", next.Title),
				Event:         next,
			}
		case !now.After(blockEnd):
			out = Outcome{
				NextAllowedAt: blockEnd,
				Status:        BlockedActive,
				Message:       fmt.Sprintf("Waiting for %s restriction to end", next.Title),
				Event:         next,
			}
		default:
			// The future-event filter should make this unreachable; fall
			// back to session timing rather than trust it.
			out = awaitSession(now, sess)
		}
	} else {
		out = awaitSession(now, sess)
	}

	if !out.NextAllowedAt.After(now) {
		out = Outcome{
			NextAllowedAt: now,
			Status:        TradingOpen,
			Message:       "no active restriction",
		}
	}

	if idx, ok := dayIndex(s.Day); ok && idx < weekdayIndex(now.In(calendar.Eastern())) {
		out.DayElapsed = true
		out.Message = fmt.Sprintf("%s has already passed this week", s.Day)
	}

	return out
}

func awaitSession(now time.Time, sess Session) Outcome {
	return Outcome{
		NextAllowedAt: sess.NextStart(now),
		Status:        AwaitingSession,
		Message:       fmt.Sprintf("Waiting for %s session to begin", sess.Name),
	}
}

// upcomingEvent selects the earliest future event matching the selected
// currency and day of week.
func upcomingEvent(now time.Time, s Settings, events []calendar.Event) *calendar.Event {
	loc := calendar.Eastern()
	var best *calendar.Event
	for i := range events {
		ev := events[i]
		if !strings.EqualFold(ev.Currency, s.Currency) {
			continue
		}
		if ev.OccursAt.In(loc).Weekday().String() != s.Day {
			continue
		}
		if !ev.OccursAt.After(now) {
			continue
		}
		if best == nil || ev.OccursAt.Before(best.OccursAt) {
			best = &ev
		}
	}
	return best
}
