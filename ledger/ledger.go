// Package ledger persists the running account-equity curve and the
// daily trading journal in a local SQLite database. Both tables are
// keyed by calendar date with last-write-wins upserts.
package ledger

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dateLayout = "2006-01-02"

// EquityPoint is one day on the equity curve.
type EquityPoint struct {
	Date   time.Time
	Equity float64
	PnL    float64
}

// Ledger owns one local SQLite store. At most one writer is expected;
// per-date upserts keep individual writes atomic across restarts.
type Ledger struct {
	db              *sql.DB
	startingBalance float64
}

// Open opens (creating if needed) the ledger database at path.
// startingBalance seeds equity derivation while the curve is empty.
func Open(path string, startingBalance float64) (*Ledger, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init ledger schema: %w", err)
	}
	return &Ledger{db: db, startingBalance: startingBalance}, nil
}

func (l *Ledger) Close() error { return l.db.Close() }

// StartingBalance returns the configured starting balance.
func (l *Ledger) StartingBalance() float64 { return l.startingBalance }

// RecordDay upserts the PnL for one calendar day and returns the day's
// resulting equity: equity(latest entry strictly before date) + pnl,
// falling back to the starting balance when no prior entry exists.
//
// Only the immediately preceding entry is consulted, so correcting a
// past day does not ripple into later recorded equities. That
// forward-only model is deliberate and preserved as-is.
func (l *Ledger) RecordDay(date time.Time, pnl float64) (float64, error) {
	day := date.Format(dateLayout)

	prev := l.startingBalance
	err := l.db.QueryRow(`
		SELECT equity FROM equity_curve
		WHERE date < ? ORDER BY date DESC LIMIT 1`, day).Scan(&prev)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("look up prior equity: %w", err)
	}

	equity := prev + pnl
	if _, err := l.db.Exec(`
		INSERT OR REPLACE INTO equity_curve (date, equity, pnl)
		VALUES (?, ?, ?)`, day, equity, pnl); err != nil {
		return 0, fmt.Errorf("record day %s: %w", day, err)
	}
	return equity, nil
}

// CurrentEquity returns the equity of the chronologically last entry,
// or the starting balance when the curve is empty.
func (l *Ledger) CurrentEquity() (float64, error) {
	var equity float64
	err := l.db.QueryRow(`
		SELECT equity FROM equity_curve
		ORDER BY date DESC LIMIT 1`).Scan(&equity)
	if err == sql.ErrNoRows {
		return l.startingBalance, nil
	}
	if err != nil {
		return 0, fmt.Errorf("current equity: %w", err)
	}
	return equity, nil
}

// History returns the full equity curve in date order.
func (l *Ledger) History() ([]EquityPoint, error) {
	rows, err := l.db.Query(`
		SELECT date, equity, pnl FROM equity_curve
		ORDER BY date ASC`)
	if err != nil {
		return nil, fmt.Errorf("query equity curve: %w", err)
	}
	defer rows.Close()

	var out []EquityPoint
	for rows.Next() {
		var (
			day    string
			equity float64
			pnl    float64
		)
		if err := rows.Scan(&day, &equity, &pnl); err != nil {
			return nil, err
		}
		date, err := time.Parse(dateLayout, day)
		if err != nil {
			return nil, fmt.Errorf("bad date %q in equity curve: %w", day, err)
		}
		out = append(out, EquityPoint{Date: date, Equity: equity, PnL: pnl})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Reset sets a new starting balance and clears the recorded curve.
// This is a reset, not a recompute: all history is discarded.
func (l *Ledger) Reset(balance float64) error {
	if _, err := l.db.Exec(`DELETE FROM equity_curve`); err != nil {
		return fmt.Errorf("clear equity curve: %w", err)
	}
	l.startingBalance = balance
	return nil
}
