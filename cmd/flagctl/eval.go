package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	featureflags "github.com/easytrade/featureflags-go"
)

var (
	evalBaseURL string
	evalTimeout time.Duration
	evalDefault bool
)

var evalCmd = &cobra.Command{
	Use:   "eval <key>",
	Short: "Evaluate a boolean flag against the feature flag service",
	Long: `Evaluate a boolean flag against the feature flag service. The default value is
returned when the service cannot answer; the reason column tells which happened.`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVar(&evalBaseURL, "base-url", featureflags.DefaultBaseURL, "Feature flag service URL")
	evalCmd.Flags().DurationVar(&evalTimeout, "timeout", featureflags.DefaultTimeout, "Request timeout")
	evalCmd.Flags().BoolVar(&evalDefault, "default", false, "Value returned when the flag cannot be fetched")
}

func runEval(cmd *cobra.Command, args []string) error {
	client := featureflags.NewClient(
		featureflags.WithBaseURL(evalBaseURL),
		featureflags.WithRequestTimeout(evalTimeout),
		featureflags.WithLogger(slog.Default()),
	)
	p := featureflags.NewProvider(client)

	res := p.BooleanEvaluation(cmd.Context(), args[0], evalDefault, featureflags.EvaluationContext{})

	out := cmd.OutOrStdout()
	if res.ErrorCode != featureflags.ErrorKindNone {
		_, err := fmt.Fprintf(out, "%s\t%t\t%s\t%s\n", args[0], res.Value, res.Reason, res.ErrorCode)
		return err
	}
	_, err := fmt.Fprintf(out, "%s\t%t\t%s\n", args[0], res.Value, res.Reason)
	return err
}
