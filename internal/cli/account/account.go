// Package account implements the equity-curve subcommands.
package account

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/traderndumia/propfire/internal/cli/config"
	"github.com/traderndumia/propfire/ledger"
)

func New(rc *config.RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Inspect or reset the account equity curve",
	}

	cmd.AddCommand(
		newBalanceCmd(rc),
		newEquityCmd(rc),
		newHistoryCmd(rc),
	)

	return cmd
}

func newBalanceCmd(rc *config.RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <amount>",
		Short: "Set a new starting balance and clear the equity history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			balance, err := strconv.ParseFloat(args[0], 64)
			if err != nil || balance <= 0 {
				return fmt.Errorf("bad balance %q: must be a positive number", args[0])
			}

			cfg, _, err := rc.Load()
			if err != nil {
				return err
			}

			l, err := ledger.Open(cfg.DBPath, cfg.StartingBalance)
			if err != nil {
				return err
			}
			defer l.Close()

			if err := l.Reset(balance); err != nil {
				return err
			}

			cfg.StartingBalance = balance
			if err := cfg.Save(rc.ConfigPath); err != nil {
				return err
			}

			cmd.Printf("starting balance set to %.2f, equity history cleared\n", balance)
			return nil
		},
	}
}

func newEquityCmd(rc *config.RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "equity",
		Short: "Print the current account equity",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := rc.Load()
			if err != nil {
				return err
			}

			l, err := ledger.Open(cfg.DBPath, cfg.StartingBalance)
			if err != nil {
				return err
			}
			defer l.Close()

			equity, err := l.CurrentEquity()
			if err != nil {
				return err
			}
			cmd.Printf("%.2f\n", equity)
			return nil
		},
	}
}

func newHistoryCmd(rc *config.RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List the equity curve day by day",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := rc.Load()
			if err != nil {
				return err
			}

			l, err := ledger.Open(cfg.DBPath, cfg.StartingBalance)
			if err != nil {
				return err
			}
			defer l.Close()

			points, err := l.History()
			if err != nil {
				return err
			}
			if len(points) == 0 {
				cmd.Printf("no equity history (starting balance %.2f)\n", cfg.StartingBalance)
				return nil
			}
			for _, p := range points {
				cmd.Printf("%s  %+10.2f  %12.2f\n", p.Date.Format("2006-01-02"), p.PnL, p.Equity)
			}
			return nil
		},
	}
}
