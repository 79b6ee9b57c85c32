package assist

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/avdmeer/woordlicht/internal/timeline"
)

// single word sent for review
type ReviewItem struct {
	Index int    `json:"index"`
	Word  string `json:"word"`
}

// corrected word returned by the model
type ReviewResult struct {
	Index int    `json:"index"`
	Word  string `json:"word"`
}

// interface for transcript correction
type Corrector interface {
	Correct(ctx context.Context, items []ReviewItem) ([]ReviewResult, error)
}

type Options struct {
	Language  string // language of the transcript (e.g. "nl")
	Model     string
	Prompt    string // extra instructions, e.g. names to watch for
	BatchSize int    // items per API request (default 200)
}

const DefaultBatchSize = 200

// Apply rewrites the timeline's word texts with the model's corrections,
// never touching timing. Out-of-range indices are ignored; words the model
// left out keep their original text. Returns how many words changed.
func Apply(words timeline.Timeline, results []ReviewResult) int {
	changed := 0
	for _, r := range results {
		if r.Index < 0 || r.Index >= len(words) {
			continue
		}
		if words[r.Index].Text != r.Word {
			words[r.Index].Text = r.Word
			changed++
		}
	}
	return changed
}

// Items converts a timeline into review items, preserving leading
// whitespace so the model can return it unchanged.
func Items(words timeline.Timeline) []ReviewItem {
	items := make([]ReviewItem, len(words))
	for i, w := range words {
		items[i] = ReviewItem{Index: i, Word: w.Text}
	}
	return items
}

// BuildPrompt creates the correction prompt for LLM providers
func BuildPrompt(opts Options, items []ReviewItem) string {
	var sb strings.Builder

	if opts.Language != "" {
		sb.WriteString(fmt.Sprintf(
			"The following JSON array holds a word-level %s speech transcript in spoken order.\n\n",
			opts.Language,
		))
	} else {
		sb.WriteString("The following JSON array holds a word-level speech transcript in spoken order.\n\n")
	}

	sb.WriteString("IMPORTANT INSTRUCTIONS:\n")
	sb.WriteString("1. Fix ONLY spelling, capitalization, and obviously misheard words.\n")
	sb.WriteString("2. Never merge, split, reorder, add, or remove words.\n")
	sb.WriteString("3. Preserve each word's leading whitespace exactly.\n")
	sb.WriteString("4. Return ONLY a JSON array with the same structure.\n")
	sb.WriteString("5. Each object must have 'index' and 'word' fields.\n")
	sb.WriteString("6. The 'index' values must match the input indices exactly.\n")
	sb.WriteString("7. Do not add any explanation or markdown formatting.\n\n")

	if opts.Prompt != "" {
		sb.WriteString(fmt.Sprintf("Additional instructions: %s\n\n", opts.Prompt))
	}

	sb.WriteString("Input JSON:\n")

	inputJSON, _ := json.MarshalIndent(items, "", "  ")
	sb.Write(inputJSON)

	sb.WriteString("\n\nOutput the corrected JSON array only:")

	return sb.String()
}

// parses the model's JSON array response
func extractReviewResults(responseText string) ([]ReviewResult, error) {
	var results []ReviewResult
	if err := json.Unmarshal([]byte(responseText), &results); err != nil {
		start := strings.Index(responseText, "[")
		end := strings.LastIndex(responseText, "]")
		if start < 0 || end <= start {
			return nil, err
		}
		if err := json.Unmarshal([]byte(responseText[start:end+1]), &results); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// removes markdown formatting from the response
func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)

	jsonBlockRegex := regexp.MustCompile("```(?:json)?\\s*")
	s = jsonBlockRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")

	return strings.TrimSpace(s)
}

// truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
