package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avdmeer/woordlicht/internal/assist"
	"github.com/avdmeer/woordlicht/internal/timeline"
)

var assistCmd = &cobra.Command{
	Use:   "assist [timeline_file]",
	Short: "Fix transcription mistakes in a word timeline with an LLM",
	Long: `Send the words of a timeline to Claude for a correction pass.

Only the word text is changed: spelling, casing, and punctuation. Word
count, order, and timestamps are left untouched, so the corrected file
stays a valid edit artifact for the render command.

The corrected timeline is written to a new file so the original is kept
for comparison.

Examples:
  woordlicht assist video_timestamps.json
  woordlicht assist edited.json --api-key YOUR_KEY -o fixed.json
  woordlicht assist edited.json --prompt "Speaker names: Jan, Pieter"`,
	Args: cobra.ExactArgs(1),
	RunE: runAssist,
}

func init() {
	rootCmd.AddCommand(assistCmd)

	assistCmd.Flags().
		StringP("api-key", "k", "", "Anthropic API key (or set ANTHROPIC_API_KEY env var)")
	assistCmd.Flags().
		String("model", "", "Claude model to use (default claude-haiku-4-5)")
	assistCmd.Flags().
		String("prompt", "", "Extra context for the correction pass (names, jargon)")
	assistCmd.Flags().
		Int("batch-size", assist.DefaultBatchSize, "Words per correction request")
}

func runAssist(cmd *cobra.Command, args []string) error {
	timelinePath := args[0]
	ctx := context.Background()

	apiKey, _ := cmd.Flags().GetString("api-key")
	model, _ := cmd.Flags().GetString("model")
	prompt, _ := cmd.Flags().GetString("prompt")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	outputPath, _ := cmd.Flags().GetString("output")
	language, _ := cmd.Flags().GetString("language")

	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return fmt.Errorf("Anthropic API key is required: use --api-key flag or set ANTHROPIC_API_KEY environment variable")
	}

	if _, err := os.Stat(timelinePath); os.IsNotExist(err) {
		return fmt.Errorf("timeline file not found: %s", timelinePath)
	}

	words, err := timeline.Load(timelinePath)
	if err != nil {
		return fmt.Errorf("failed to load timeline: %w", err)
	}
	if len(words) == 0 {
		return fmt.Errorf("timeline %s contains no words", timelinePath)
	}

	if outputPath == "" {
		base := strings.TrimSuffix(timelinePath, filepath.Ext(timelinePath))
		outputPath = base + "_corrected.json"
	}

	corrector, err := assist.NewAnthropicCorrector(apiKey, assist.Options{
		Language:  language,
		Model:     model,
		Prompt:    prompt,
		BatchSize: batchSize,
	})
	if err != nil {
		return fmt.Errorf("failed to create corrector: %w", err)
	}

	logger.Infow("Reviewing transcript",
		"input", timelinePath,
		"words", len(words),
		"batch_size", batchSize,
	)

	results, err := corrector.Correct(ctx, assist.Items(words))
	if err != nil {
		return fmt.Errorf("correction failed: %w", err)
	}

	changed := assist.Apply(words, results)

	logger.Infow("Correction complete",
		"changed", changed,
	)

	if err := timeline.Save(words, outputPath); err != nil {
		return fmt.Errorf("failed to write corrected timeline: %w", err)
	}

	fmt.Printf("Corrected timeline written to %s (%d words changed)\n", outputPath, changed)
	return nil
}
