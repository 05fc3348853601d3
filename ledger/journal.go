package ledger

import (
	"database/sql"
	"fmt"
	"math"
	"time"
)

// TradeEntry is one journaled trading day.
type TradeEntry struct {
	Date       time.Time
	PnL        float64
	EntryPrice float64
	StopLoss   float64
	TakeProfit float64
	RiskReward float64
	Notes      string
	ChartImage string // stored attachment path, empty if none
}

// MonthlySummary aggregates one month of journal entries.
type MonthlySummary struct {
	TotalPnL    float64
	TradingDays int // days with non-zero PnL
}

// RR returns the reward-to-risk ratio for a planned trade, or 0 when
// the stop distance is zero.
func RR(entry, stop, target float64) float64 {
	risk := math.Abs(entry - stop)
	if risk == 0 {
		return 0
	}
	return math.Abs(target-entry) / risk
}

// SaveEntry upserts a journal entry for its date.
func (l *Ledger) SaveEntry(e TradeEntry) error {
	_, err := l.db.Exec(`
		INSERT OR REPLACE INTO trade_entries
		(date, pnl, entry_price, stop_loss, take_profit, risk_reward, notes, chart_image)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Date.Format(dateLayout), e.PnL, e.EntryPrice, e.StopLoss,
		e.TakeProfit, e.RiskReward, e.Notes, e.ChartImage,
	)
	if err != nil {
		return fmt.Errorf("save journal entry: %w", err)
	}
	return nil
}

// Entry returns the journal entry for a date, if one exists.
func (l *Ledger) Entry(date time.Time) (TradeEntry, bool, error) {
	row := l.db.QueryRow(`
		SELECT date, pnl, entry_price, stop_loss, take_profit, risk_reward, notes, chart_image
		FROM trade_entries WHERE date = ?`, date.Format(dateLayout))

	e, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return TradeEntry{}, false, nil
	}
	if err != nil {
		return TradeEntry{}, false, fmt.Errorf("load journal entry: %w", err)
	}
	return e, true, nil
}

// MonthEntries returns all journal entries for a month, in date order.
func (l *Ledger) MonthEntries(year int, month time.Month) ([]TradeEntry, error) {
	prefix := fmt.Sprintf("%04d-%02d%%", year, month)
	rows, err := l.db.Query(`
		SELECT date, pnl, entry_price, stop_loss, take_profit, risk_reward, notes, chart_image
		FROM trade_entries WHERE date LIKE ? ORDER BY date ASC`, prefix)
	if err != nil {
		return nil, fmt.Errorf("query month entries: %w", err)
	}
	defer rows.Close()

	var out []TradeEntry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Summary aggregates the month's entries.
func (l *Ledger) Summary(year int, month time.Month) (MonthlySummary, error) {
	entries, err := l.MonthEntries(year, month)
	if err != nil {
		return MonthlySummary{}, err
	}
	var s MonthlySummary
	for _, e := range entries {
		s.TotalPnL += e.PnL
		if e.PnL != 0 {
			s.TradingDays++
		}
	}
	return s, nil
}

func scanEntry(scan func(dest ...any) error) (TradeEntry, error) {
	var (
		e   TradeEntry
		day string
	)
	if err := scan(&day, &e.PnL, &e.EntryPrice, &e.StopLoss,
		&e.TakeProfit, &e.RiskReward, &e.Notes, &e.ChartImage); err != nil {
		return TradeEntry{}, err
	}
	date, err := time.Parse(dateLayout, day)
	if err != nil {
		return TradeEntry{}, fmt.Errorf("bad date %q in journal: %w", day, err)
	}
	e.Date = date
	return e, nil
}
