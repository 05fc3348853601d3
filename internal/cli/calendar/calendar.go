// Package calendar implements the economic-calendar subcommands.
package calendar

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	cal "github.com/traderndumia/propfire/calendar"
	"github.com/traderndumia/propfire/internal/cli/config"
)

func New(rc *config.RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Economic calendar tools",
	}

	cmd.AddCommand(newListCmd(rc))

	return cmd
}

func newListCmd(rc *config.RootConfig) *cobra.Command {
	var currency string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List upcoming high-impact events",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := rc.Load()
			if err != nil {
				return err
			}
			if currency == "" {
				currency = cfg.Settings.Currency
			}

			provider, err := cal.NewProvider(cfg.Calendar.Provider, cfg.Calendar.BaseURL)
			if err != nil {
				return err
			}
			cache := cal.NewCache(provider, cfg.Calendar.CacheDir, log, cal.CacheOptions{
				MemoryTTL: cfg.Calendar.MemoryTTL,
				DiskTTL:   cfg.Calendar.DiskTTL,
			})

			events, info, err := cache.Events(cmd.Context(), currency)
			if errors.Is(err, cal.ErrNoData) {
				// Non-fatal: the scheduler runs on session timing alone.
				cmd.Printf("no event data available for %s (%v)\n", currency, err)
				return nil
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintf(out, "no upcoming high-impact %s events this week\n", currency)
			}
			for _, ev := range events {
				line := fmt.Sprintf("%s  %-35s", ev.OccursAt.Format("Mon 2006-01-02 15:04 MST"), ev.Title)
				if ev.Forecast != "" {
					line += fmt.Sprintf("  forecast %s", ev.Forecast)
				}
				if ev.Previous != "" {
					line += fmt.Sprintf("  previous %s", ev.Previous)
				}
				fmt.Fprintln(out, line)
			}
			if info.Stale {
				fmt.Fprintf(out, "(cached data from %s; refresh failed)\n",
					info.FetchedAt.Format("15:04:05"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "", "Currency to list (default: configured currency)")

	return cmd
}
