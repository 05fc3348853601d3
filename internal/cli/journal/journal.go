// Package journal implements the trading-journal subcommands.
package journal

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/traderndumia/propfire/internal/cli/config"
	"github.com/traderndumia/propfire/ledger"
)

const dateLayout = "2006-01-02"

func New(rc *config.RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Record and review daily trading results",
	}

	cmd.AddCommand(
		newRecordCmd(rc),
		newShowCmd(rc),
		newMonthCmd(rc),
	)

	return cmd
}

func newRecordCmd(rc *config.RootConfig) *cobra.Command {
	var (
		dateStr string
		pnl     float64
		entry   float64
		stop    float64
		target  float64
		notes   string
		image   string
	)

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record (or overwrite) one day's result",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := rc.Load()
			if err != nil {
				return err
			}

			date, err := parseDate(dateStr)
			if err != nil {
				return err
			}

			l, err := ledger.Open(cfg.DBPath, cfg.StartingBalance)
			if err != nil {
				return err
			}
			defer l.Close()

			e := ledger.TradeEntry{
				Date:       date,
				PnL:        pnl,
				EntryPrice: entry,
				StopLoss:   stop,
				TakeProfit: target,
				Notes:      notes,
			}
			if entry != 0 && stop != 0 && target != 0 {
				e.RiskReward = ledger.RR(entry, stop, target)
			}
			if image != "" {
				stored, err := ledger.StoreAttachment(cfg.AttachmentsDir, date, image)
				if err != nil {
					return err
				}
				e.ChartImage = stored
			}

			if err := l.SaveEntry(e); err != nil {
				return err
			}

			// Journal saves drive the equity curve.
			equity, err := l.RecordDay(date, pnl)
			if err != nil {
				return err
			}
			cmd.Printf("%s  pnl %+.2f  equity %.2f\n", date.Format(dateLayout), pnl, equity)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Entry date YYYY-MM-DD (default: today)")
	cmd.Flags().Float64Var(&pnl, "pnl", 0, "Realized PnL for the day")
	cmd.Flags().Float64Var(&entry, "entry", 0, "Entry price")
	cmd.Flags().Float64Var(&stop, "stop", 0, "Stop-loss price")
	cmd.Flags().Float64Var(&target, "target", 0, "Take-profit price")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	cmd.Flags().StringVar(&image, "image", "", "Chart screenshot to attach")
	_ = cmd.MarkFlagRequired("pnl")

	return cmd
}

func newShowCmd(rc *config.RootConfig) *cobra.Command {
	var dateStr string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show one day's journal entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := rc.Load()
			if err != nil {
				return err
			}
			date, err := parseDate(dateStr)
			if err != nil {
				return err
			}

			l, err := ledger.Open(cfg.DBPath, cfg.StartingBalance)
			if err != nil {
				return err
			}
			defer l.Close()

			e, ok, err := l.Entry(date)
			if err != nil {
				return err
			}
			if !ok {
				cmd.Printf("no entry for %s\n", date.Format(dateLayout))
				return nil
			}

			cmd.Printf("%s  pnl %+.2f\n", e.Date.Format(dateLayout), e.PnL)
			if e.EntryPrice != 0 {
				cmd.Printf("entry %.5f  stop %.5f  target %.5f  rr %.2f\n",
					e.EntryPrice, e.StopLoss, e.TakeProfit, e.RiskReward)
			}
			if e.Notes != "" {
				cmd.Printf("notes: %s\n", e.Notes)
			}
			if e.ChartImage != "" {
				cmd.Printf("chart: %s\n", e.ChartImage)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateStr, "date", "", "Entry date YYYY-MM-DD (default: today)")

	return cmd
}

func newMonthCmd(rc *config.RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Summarize a month of entries",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := rc.Load()
			if err != nil {
				return err
			}

			now := time.Now()
			year, month := now.Year(), now.Month()
			if len(args) == 1 {
				t, err := time.Parse("2006-01", args[0])
				if err != nil {
					return fmt.Errorf("bad month %q: %w", args[0], err)
				}
				year, month = t.Year(), t.Month()
			}

			l, err := ledger.Open(cfg.DBPath, cfg.StartingBalance)
			if err != nil {
				return err
			}
			defer l.Close()

			entries, err := l.MonthEntries(year, month)
			if err != nil {
				return err
			}
			for _, e := range entries {
				cmd.Printf("%s  %+10.2f  %s\n", e.Date.Format(dateLayout), e.PnL, e.Notes)
			}

			s, err := l.Summary(year, month)
			if err != nil {
				return err
			}
			cmd.Printf("total %+.2f over %d trading days\n", s.TotalPnL, s.TradingDays)
			return nil
		},
	}

	return cmd
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: %w", s, err)
	}
	return t, nil
}
