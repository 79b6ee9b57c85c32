package caption

import (
	"strings"
	"unicode/utf8"

	"github.com/avdmeer/woordlicht/internal/timeline"
)

// Line is one displayed caption: a contiguous run of timeline words in
// original order. Start is the first word's start, End the last word's
// end. Text joins the words preserving each word's leading whitespace.
type Line struct {
	Words []timeline.Word
	Start float64
	End   float64
	Text  string
}

// Segment partitions the timeline into lines in a single forward pass.
// Every word lands in exactly one line, in input order; concatenating the
// lines' word slices reconstructs the input.
//
// A word is appended to the current line unless doing so would push the
// line over a limit, checked in fixed order: word count, rendered
// characters, duration, inter-word gap. An empty candidate accepts any
// word unconditionally, so a single word that alone exceeds a limit still
// becomes its own line, unsplit.
func Segment(words timeline.Timeline, cfg Config) ([]Line, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, nil
	}

	var lines []Line
	var cur []timeline.Word
	curChars := 0

	for _, w := range words {
		if len(cur) > 0 && breaksLine(cur, curChars, w, cfg) {
			lines = append(lines, finalize(cur))
			cur = nil
			curChars = 0
		}
		cur = append(cur, w)
		curChars += utf8.RuneCountInString(w.Text)
	}
	lines = append(lines, finalize(cur))

	return lines, nil
}

// reports whether appending next to the candidate violates a limit; the
// candidate is known non-empty
func breaksLine(cur []timeline.Word, curChars int, next timeline.Word, cfg Config) bool {
	if len(cur)+1 > cfg.MaxWords {
		return true
	}
	if curChars+utf8.RuneCountInString(next.Text) > cfg.MaxChars {
		return true
	}
	if next.End-cur[0].Start > cfg.MaxDuration {
		return true
	}
	// overlapping words have a negative raw gap; floor at zero so an edit
	// that slides a word backwards never reads as a long silence
	gap := next.Start - cur[len(cur)-1].End
	if gap < 0 {
		gap = 0
	}
	return gap > cfg.MaxGap
}

func finalize(words []timeline.Word) Line {
	var sb strings.Builder
	for _, w := range words {
		sb.WriteString(w.Text)
	}
	return Line{
		Words: words,
		Start: words[0].Start,
		End:   words[len(words)-1].End,
		Text:  sb.String(),
	}
}
