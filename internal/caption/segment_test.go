package caption

import (
	"strings"
	"testing"

	"github.com/avdmeer/woordlicht/internal/timeline"
)

func testConfig() Config {
	return Config{MaxWords: 3, MaxChars: 80, MaxDuration: 3.0, MaxGap: 1.5}
}

func lineTexts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}

func TestSegmentWordCountLimit(t *testing.T) {
	words := timeline.Timeline{
		{Text: " Hallo", Start: 0.0, End: 0.5},
		{Text: " wereld", Start: 0.5, End: 1.0},
		{Text: " dit", Start: 1.0, End: 1.3},
		{Text: " is", Start: 1.3, End: 1.5},
		{Text: " een", Start: 1.5, End: 1.8},
	}

	lines, err := Segment(words, testConfig())
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	want := []string{" Hallo wereld dit", " is een"}
	got := lineTexts(lines)
	if len(got) != len(want) {
		t.Fatalf("got %d lines %q, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}

	if lines[0].Start != 0.0 || lines[0].End != 1.3 {
		t.Errorf("line 0 span = [%v, %v], want [0, 1.3]", lines[0].Start, lines[0].End)
	}
	if lines[1].Start != 1.3 || lines[1].End != 1.8 {
		t.Errorf("line 1 span = [%v, %v], want [1.3, 1.8]", lines[1].Start, lines[1].End)
	}
}

func TestSegmentGapLimit(t *testing.T) {
	words := timeline.Timeline{
		{Text: " A", Start: 0.0, End: 0.2},
		{Text: " B", Start: 4.0, End: 4.2},
	}

	lines, err := Segment(words, testConfig())
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2 (gap 3.8 > max 1.5)", len(lines))
	}
}

func TestSegmentGapExactlyAtLimitDoesNotBreak(t *testing.T) {
	words := timeline.Timeline{
		{Text: " A", Start: 0.0, End: 0.2},
		{Text: " B", Start: 1.7, End: 1.9},
	}

	lines, err := Segment(words, testConfig())
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 (gap exactly 1.5 is not a violation)", len(lines))
	}
}

func TestSegmentZeroGapBreaksOnAnySilence(t *testing.T) {
	cfg := testConfig()
	cfg.MaxGap = 0

	words := timeline.Timeline{
		{Text: " A", Start: 0.0, End: 0.5},
		{Text: " B", Start: 0.5, End: 1.0}, // seamless, stays
		{Text: " C", Start: 1.1, End: 1.4}, // 0.1s silence, breaks
	}

	lines, err := Segment(words, cfg)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	want := []string{" A B", " C"}
	got := lineTexts(lines)
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSegmentOverlapIsNotAGap(t *testing.T) {
	// a word slid backwards over its neighbour must not read as a huge
	// positive gap
	words := timeline.Timeline{
		{Text: " video", Start: 1.0, End: 1.5},
		{Text: " conferentie", Start: 1.3, End: 1.8},
	}

	lines, err := Segment(words, testConfig())
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
}

func TestSegmentDurationLimit(t *testing.T) {
	words := timeline.Timeline{
		{Text: " een", Start: 0.0, End: 1.4},
		{Text: " twee", Start: 1.4, End: 2.8},
		{Text: " drie", Start: 2.8, End: 4.0}, // would stretch line to 4.0s
	}

	lines, err := Segment(words, testConfig())
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	want := []string{" een twee", " drie"}
	got := lineTexts(lines)
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSegmentCharLimit(t *testing.T) {
	cfg := testConfig()
	cfg.MaxWords = 10
	cfg.MaxChars = 12

	words := timeline.Timeline{
		{Text: " zonnebloem", Start: 0.0, End: 0.5},  // 11 runes
		{Text: " veld", Start: 0.5, End: 1.0},        // would make 16
		{Text: " in", Start: 1.0, End: 1.2},          // 5 + 3 = 8
		{Text: " bloei", Start: 1.2, End: 1.5},       // would make 14
	}

	lines, err := Segment(words, cfg)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	want := []string{" zonnebloem", " veld in", " bloei"}
	got := lineTexts(lines)
	if len(got) != len(want) {
		t.Fatalf("got %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSegmentOversizedSingleWordIsItsOwnLine(t *testing.T) {
	long := " " + strings.Repeat("x", 90)
	words := timeline.Timeline{
		{Text: " kort", Start: 0.0, End: 0.3},
		{Text: long, Start: 0.3, End: 0.7},
		{Text: " na", Start: 0.7, End: 0.9},
	}

	lines, err := Segment(words, testConfig())
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if lines[1].Text != long {
		t.Errorf("oversized word was not emitted unsplit")
	}
}

func TestSegmentEmptyTimeline(t *testing.T) {
	lines, err := Segment(nil, testConfig())
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("got %d lines, want 0", len(lines))
	}
}

func TestSegmentSingleWord(t *testing.T) {
	words := timeline.Timeline{{Text: " solo", Start: 0.0, End: 0.4}}

	lines, err := Segment(words, testConfig())
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	if len(lines) != 1 || len(lines[0].Words) != 1 {
		t.Fatalf("got %+v, want one single-word line", lines)
	}
}

func TestSegmentCoverageAndOrder(t *testing.T) {
	words := timeline.Timeline{
		{Text: " a", Start: 0.0, End: 0.3},
		{Text: " b", Start: 0.3, End: 0.6},
		{Text: " c", Start: 2.5, End: 2.9},
		{Text: " d", Start: 2.9, End: 3.1},
		{Text: " e", Start: 3.1, End: 3.4},
		{Text: " f", Start: 3.4, End: 3.6},
		{Text: " g", Start: 9.0, End: 9.2},
	}

	lines, err := Segment(words, testConfig())
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	var flat timeline.Timeline
	for _, l := range lines {
		if len(l.Words) == 0 {
			t.Fatal("empty line emitted")
		}
		flat = append(flat, l.Words...)
	}

	if len(flat) != len(words) {
		t.Fatalf("reassembled %d words, want %d", len(flat), len(words))
	}
	for i := range words {
		if flat[i] != words[i] {
			t.Errorf("word %d = %+v, want %+v", i, flat[i], words[i])
		}
	}
}

func TestSegmentConstraintSatisfaction(t *testing.T) {
	words := timeline.Timeline{
		{Text: " een", Start: 0.0, End: 0.4},
		{Text: " twee", Start: 0.6, End: 1.0},
		{Text: " drie", Start: 1.0, End: 1.5},
		{Text: " vier", Start: 1.5, End: 2.2},
		{Text: " vijf", Start: 4.5, End: 5.0},
		{Text: " zes", Start: 5.1, End: 5.6},
	}
	cfg := testConfig()

	lines, err := Segment(words, cfg)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	for li, l := range lines {
		if len(l.Words) < 2 {
			continue // singleton lines may violate any limit
		}
		if len(l.Words) > cfg.MaxWords {
			t.Errorf("line %d has %d words, max %d", li, len(l.Words), cfg.MaxWords)
		}
		if len([]rune(l.Text)) > cfg.MaxChars {
			t.Errorf("line %d has %d chars, max %d", li, len([]rune(l.Text)), cfg.MaxChars)
		}
		if l.End-l.Start > cfg.MaxDuration {
			t.Errorf("line %d lasts %g, max %g", li, l.End-l.Start, cfg.MaxDuration)
		}
		for i := 1; i < len(l.Words); i++ {
			gap := l.Words[i].Start - l.Words[i-1].End
			if gap > cfg.MaxGap {
				t.Errorf("line %d gap %g between words %d and %d, max %g", li, gap, i-1, i, cfg.MaxGap)
			}
		}
	}
}

func TestSegmentDeterminism(t *testing.T) {
	words := timeline.Timeline{
		{Text: " a", Start: 0.0, End: 0.3},
		{Text: " b", Start: 0.3, End: 0.6},
		{Text: " c", Start: 2.5, End: 2.9},
		{Text: " d", Start: 2.9, End: 3.1},
	}

	first, err := Segment(words, testConfig())
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	second, err := Segment(words, testConfig())
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("runs disagree: %d vs %d lines", len(first), len(second))
	}
	for i := range first {
		if first[i].Text != second[i].Text ||
			first[i].Start != second[i].Start ||
			first[i].End != second[i].End {
			t.Errorf("line %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(c *Config) {}, false},
		{"zero max words", func(c *Config) { c.MaxWords = 0 }, true},
		{"negative max words", func(c *Config) { c.MaxWords = -1 }, true},
		{"zero max chars", func(c *Config) { c.MaxChars = 0 }, true},
		{"zero max duration", func(c *Config) { c.MaxDuration = 0 }, true},
		{"negative max duration", func(c *Config) { c.MaxDuration = -2 }, true},
		{"zero max gap allowed", func(c *Config) { c.MaxGap = 0 }, false},
		{"negative max gap", func(c *Config) { c.MaxGap = -0.1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSegmentRejectsInvalidConfig(t *testing.T) {
	words := timeline.Timeline{{Text: " a", Start: 0, End: 0.1}}
	if _, err := Segment(words, Config{}); err == nil {
		t.Fatal("expected configuration error")
	}
}
