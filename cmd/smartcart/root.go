package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nawi-n/SmartCart/pkg/config"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:           "smartcart",
		Short:         "SmartCart - LLM-backed shopping agents",
		Long:          `SmartCart profiles customers and products, scores recommendations and answers shoppers through a pluggable LLM provider.`,
		Version:       fmt.Sprintf("%s (commit=%s, date=%s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return fmt.Errorf("load %s: %w", envFile, err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")

	root.AddCommand(newServeCmd(), newMCPCmd(), newExecCmd(), newPromptsCmd(), newEvalCmd())
	return root
}

// setupLogging installs a JSON slog handler on stderr so stdout stays
// reserved for command output and the MCP stdio transport.
func setupLogging(cfg *config.Config) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	return logger
}
