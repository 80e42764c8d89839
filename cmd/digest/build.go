package main

import (
	"encoding/json"
	"fmt"

	"newsdigest/internal/app"
	"newsdigest/internal/config"
	"newsdigest/internal/logger"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [ticker]",
	Short: "Fetch, annotate and print the digest for one ticker",
	Long: `Runs the full pipeline once for the ticker and prints the digest as JSON.
Without a news API key the configured fallback decides between placeholder
articles and an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Logs go to stderr so stdout stays valid JSON.
	logr := logger.NewWithWriter(cmd.ErrOrStderr(), cfg.LogLevel)

	coordinator, err := app.NewCoordinator(cfg, logr)
	if err != nil {
		return err
	}

	digest, err := coordinator.BuildDigest(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("digest failed: %w", err)
	}

	data, err := json.MarshalIndent(digest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal digest: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
