package main

import (
	"fmt"

	"newsdigest/internal/config"
	"newsdigest/pkg/llm"

	"github.com/spf13/cobra"
)

var summarizePromptIndex int

var summarizeCmd = &cobra.Command{
	Use:   "summarize [text]",
	Short: "Summarize text with one of the prompt templates",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

func init() {
	summarizeCmd.Flags().IntVarP(&summarizePromptIndex, "prompt-index", "p", 0, "template index (defaults to PROMPT_INDEX)")
	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	index := cfg.Summary.PromptIndex
	if cmd.Flags().Changed("prompt-index") {
		index = summarizePromptIndex
	}

	provider, err := llm.NewProvider(llm.ProviderConfig{
		Name:   cfg.Summary.Provider,
		Model:  cfg.Summary.Model,
		APIKey: cfg.Summary.APIKey,
	})
	if err != nil {
		return err
	}

	templates, err := llm.LoadTemplates(cfg.Summary.PromptsPath)
	if err != nil {
		return err
	}

	summarizer, err := llm.NewSummarizer(provider, templates)
	if err != nil {
		return err
	}

	result, err := summarizer.Summarize(cmd.Context(), args[0], index)
	if err != nil {
		return fmt.Errorf("summarize failed: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, result.Text)
	fmt.Fprintf(out, "(%s, %d ms)\n", provider.Name(), result.LatencyMS)
	return nil
}
