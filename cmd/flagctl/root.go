package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	featureflags "github.com/easytrade/featureflags-go"
)

var (
	envFiles []string
	debug    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "flagctl",
	Short: "Inspect and serve the easytrade feature flags",
	Long: `flagctl builds the easytrade feature flag catalog from APP_FLAGS_* environment
variables and evaluates flags against the feature flag service.

Examples:
  flagctl catalog                          # Print the grouped catalog as JSON
  flagctl --env-file .env catalog          # Load variables from a file first
  flagctl eval delay_simulation            # Evaluate a flag on the flag service
  flagctl serve --addr :8080 --store redis # Run the demo service`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "Load environment variables from these files first")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
}

// loadRegistry reads the settings and publishes the initial catalog.
func loadRegistry() (*featureflags.Registry, error) {
	s, err := featureflags.LoadSettings(envFiles...)
	if err != nil {
		return nil, err
	}
	return featureflags.NewRegistry(s, s.ModifyEnabled()), nil
}
