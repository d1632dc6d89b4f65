package main

import (
	"fmt"
	"os"

	"solana-token-tracker/internal/config"
	"solana-token-tracker/internal/services"
	"solana-token-tracker/pkg/logger"

	"github.com/spf13/cobra"
)

// app holds what every subcommand needs once the root command has run its
// pre-run hook
type app struct {
	config     *config.Config
	dataSource services.TokenDataSource
	jsonOutput bool
}

func CmdTracker() *cobra.Command {
	a := &app{}
	var logLevel string

	cmd := &cobra.Command{
		Use:           "tracker",
		Short:         "Query trending Solana tokens and wallet balances",
		Args:          cobra.ExactArgs(0),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.LoadConfig()
			switch {
			case cmd.Flags().Changed("log-level"):
				cfg.Logging.Level = logLevel
			case os.Getenv("LOG_LEVEL") != "":
				// keep LOG_LEVEL
			case cfg.Tracker.Debug:
				// DEBUG_MODE call logs must not be hidden by the quiet CLI default
				cfg.Logging.Level = "debug"
			default:
				cfg.Logging.Level = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			// stdout is reserved for command output
			if err := logger.Initialize(&logger.Config{
				Level:       cfg.Logging.Level,
				Environment: cfg.Logging.Environment,
				OutputPaths: []string{"stderr"},
			}); err != nil {
				return err
			}

			a.config = cfg
			a.dataSource = services.NewDataSource(&cfg.Tracker)
			return nil
		},
	}
	cmd.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Print results as JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level written to stderr (debug when DEBUG_MODE is set)")

	cmd.AddCommand(CmdTrending(a))
	cmd.AddCommand(CmdWallet(a))
	cmd.AddCommand(CmdValidate(a))
	cmd.AddCommand(CmdConnect(a))

	return cmd
}

func main() {
	rootCmd := CmdTracker()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
