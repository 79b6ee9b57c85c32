package timeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Word is a single spoken word with its timing in seconds.
//
// Text keeps whatever leading whitespace the transcriber produced; that
// whitespace is what separates words when a line is rendered, so editors
// must preserve it when correcting spelling.
type Word struct {
	Text  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func (w Word) Duration() float64 {
	return w.End - w.Start
}

// Timeline is the ordered word sequence handed between the transcription
// step and the render step. Order is reading order and is never re-sorted:
// hand edits may retime words freely and the downstream stages are expected
// to cope.
type Timeline []Word

// joined text of all words, leading whitespace preserved
func (t Timeline) Text() string {
	var sb strings.Builder
	for _, w := range t {
		sb.WriteString(w.Text)
	}
	return sb.String()
}

// Normalize repairs words whose end precedes their start by clamping the
// end to the start, so the word survives as a zero-duration marker instead
// of being dropped. Returns how many words were repaired.
func Normalize(words Timeline) int {
	repaired := 0
	for i := range words {
		if words[i].End < words[i].Start {
			words[i].End = words[i].Start
			repaired++
		}
	}
	return repaired
}

// Load reads a timeline JSON file (the edit artifact).
func Load(path string) (Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read timeline: %w", err)
	}

	var words Timeline
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("failed to parse timeline %s: %w", path, err)
	}

	return words, nil
}

// Save writes the timeline as indented JSON so it stays pleasant to edit
// by hand.
func Save(words Timeline, path string) error {
	data, err := json.MarshalIndent(words, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode timeline: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write timeline: %w", err)
	}

	return nil
}
