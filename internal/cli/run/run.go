// Package run implements the live countdown command.
package run

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/traderndumia/propfire/app"
	"github.com/traderndumia/propfire/calendar"
	"github.com/traderndumia/propfire/internal/cli/config"
	"github.com/traderndumia/propfire/schedule"
)

func New(rc *config.RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the live trade-restriction countdown",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := rc.Load()
			if err != nil {
				return err
			}

			provider, err := calendar.NewProvider(cfg.Calendar.Provider, cfg.Calendar.BaseURL)
			if err != nil {
				return err
			}
			cache := calendar.NewCache(provider, cfg.Calendar.CacheDir, log, calendar.CacheOptions{
				MemoryTTL: cfg.Calendar.MemoryTTL,
				DiskTTL:   cfg.Calendar.DiskTTL,
			})

			a := app.New(cfg, cache, log)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s | %s | %s | %s\n",
				cfg.Settings.Currency, cfg.Settings.PropFirm,
				cfg.Settings.Day, cfg.Settings.Session)

			sess, _ := schedule.SessionByName(cfg.Settings.Session)

			done := make(chan struct{})
			go func() {
				defer close(done)
				for u := range a.Updates() {
					render(out, u, sess.Contains(u.At))
				}
			}()

			err = a.Run(ctx)
			<-done
			fmt.Fprintln(out)
			return err
		},
	}
}

func render(w io.Writer, u app.Update, inSession bool) {
	marker := ""
	if inSession {
		marker = " [session open]"
	}
	if u.Fallback {
		marker += " [using cached/fallback timing]"
	}
	if u.Outcome.Status == schedule.TradingOpen {
		fmt.Fprintf(w, "\rTRADE NOW — %s%s        ", u.Outcome.Message, marker)
		return
	}
	fmt.Fprintf(w, "\r%s  %s%s        ",
		formatCountdown(u.Countdown), u.Outcome.Message, marker)
}

func formatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
