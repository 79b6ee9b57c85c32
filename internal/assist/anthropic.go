package assist

import (
	"context"
	"fmt"
	"sort"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// implements Corrector using Anthropic Claude
type AnthropicCorrector struct {
	client  anthropic.Client
	model   anthropic.Model
	options Options
}

func NewAnthropicCorrector(apiKey string, opts Options) (*AnthropicCorrector, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	model := anthropic.Model(opts.Model)
	if opts.Model == "" {
		model = anthropic.ModelClaudeHaiku4_5
	}

	return &AnthropicCorrector{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

func (c *AnthropicCorrector) batchSize() int {
	if c.options.BatchSize > 0 {
		return c.options.BatchSize
	}
	return DefaultBatchSize
}

func (c *AnthropicCorrector) Correct(
	ctx context.Context,
	items []ReviewItem,
) ([]ReviewResult, error) {
	if len(items) == 0 {
		return []ReviewResult{}, nil
	}

	batchSize := c.batchSize()
	if len(items) <= batchSize {
		return c.correctBatch(ctx, items)
	}

	var allResults []ReviewResult
	for i := 0; i < len(items); i += batchSize {
		end := i + batchSize
		if end > len(items) {
			end = len(items)
		}

		batch := items[i:end]
		results, err := c.correctBatch(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("batch %d failed: %w", i/batchSize, err)
		}
		allResults = append(allResults, results...)
	}

	sort.Slice(allResults, func(i, j int) bool {
		return allResults[i].Index < allResults[j].Index
	})

	return allResults, nil
}

func (c *AnthropicCorrector) correctBatch(
	ctx context.Context,
	items []ReviewItem,
) ([]ReviewResult, error) {
	prompt := BuildPrompt(c.options, items)

	message, err := c.client.Messages.New(
		ctx,
		anthropic.MessageNewParams{
			Model:     c.model,
			MaxTokens: 8192,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(
					anthropic.NewTextBlock(prompt),
				),
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("correction failed: %w", err)
	}

	return c.parseResponse(message, len(items))
}

func (c *AnthropicCorrector) parseResponse(
	message *anthropic.Message,
	expectedCount int,
) ([]ReviewResult, error) {
	if message == nil || len(message.Content) == 0 {
		return nil, fmt.Errorf("empty response from Anthropic")
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText += block.Text
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text in Anthropic response")
	}

	responseText = cleanJSONResponse(responseText)

	results, err := extractReviewResults(responseText)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to parse JSON response: %w (response: %s)",
			err,
			truncateString(responseText, 200),
		)
	}

	if len(results) != expectedCount {
		return nil, fmt.Errorf(
			"expected %d results, got %d",
			expectedCount,
			len(results),
		)
	}

	return results, nil
}
