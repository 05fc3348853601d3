package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	appcfg "github.com/traderndumia/propfire/config"
	"github.com/traderndumia/propfire/internal/cli/account"
	"github.com/traderndumia/propfire/internal/cli/calendar"
	"github.com/traderndumia/propfire/internal/cli/config"
	"github.com/traderndumia/propfire/internal/cli/journal"
	"github.com/traderndumia/propfire/internal/cli/run"
)

func NewRootCmd() *cobra.Command {
	rc := &config.RootConfig{}

	cmd := &cobra.Command{
		Use:           "propfire",
		Short:         "Prop Fire — news-restriction timer and trading journal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "propfire.yaml", "Path to config file")
	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "", "Override log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVar(&rc.NoColor, "no-color", false, "Disable colored output")

	// Subcommands
	cmd.AddCommand(
		run.New(rc),
		calendar.New(rc),
		journal.New(rc),
		account.New(rc),
		newConfigCmd(rc),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("propfire (dev)")
		},
	})

	return cmd
}

func newConfigCmd(rc *config.RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or initialize the configuration file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := rc.Load()
			if err != nil {
				return err
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			cmd.Print(string(data))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(rc.ConfigPath); err == nil {
				return fmt.Errorf("%s already exists", rc.ConfigPath)
			}
			if err := appcfg.Default().Save(rc.ConfigPath); err != nil {
				return err
			}
			cmd.Printf("wrote %s\n", rc.ConfigPath)
			return nil
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
