package timeline

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	words := Timeline{
		{Text: " Hallo", Start: 0.0, End: 0.5},
		{Text: " wereld", Start: 0.5, End: 1.0},
	}

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "timestamps.json")

	if err := Save(words, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded) != len(words) {
		t.Fatalf("got %d words, want %d", len(loaded), len(words))
	}
	for i, w := range loaded {
		if w != words[i] {
			t.Errorf("word %d = %+v, want %+v", i, w, words[i])
		}
	}
}

func TestLoadPreservesLeadingWhitespace(t *testing.T) {
	content := `[{"word": " Hallo", "start": 0.5, "end": 0.8}]`
	path := filepath.Join(t.TempDir(), "timestamps.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	words, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if words[0].Text != " Hallo" {
		t.Errorf("Text = %q, want %q", words[0].Text, " Hallo")
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`[{"word": `), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name         string
		words        Timeline
		wantRepaired int
		wantEnds     []float64
	}{
		{
			name: "well formed timeline untouched",
			words: Timeline{
				{Text: " A", Start: 0.0, End: 0.5},
				{Text: " B", Start: 0.5, End: 1.0},
			},
			wantRepaired: 0,
			wantEnds:     []float64{0.5, 1.0},
		},
		{
			name: "inverted word clamped to zero duration",
			words: Timeline{
				{Text: " A", Start: 1.0, End: 0.4},
				{Text: " B", Start: 1.2, End: 1.5},
			},
			wantRepaired: 1,
			wantEnds:     []float64{1.0, 1.5},
		},
		{
			name: "zero duration word is valid as-is",
			words: Timeline{
				{Text: " A", Start: 2.0, End: 2.0},
			},
			wantRepaired: 0,
			wantEnds:     []float64{2.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repaired := Normalize(tt.words)
			if repaired != tt.wantRepaired {
				t.Errorf("repaired = %d, want %d", repaired, tt.wantRepaired)
			}
			for i, want := range tt.wantEnds {
				if tt.words[i].End != want {
					t.Errorf("word %d End = %v, want %v", i, tt.words[i].End, want)
				}
			}
		})
	}
}

func TestText(t *testing.T) {
	words := Timeline{
		{Text: " Hallo", Start: 0, End: 0.5},
		{Text: " wereld", Start: 0.5, End: 1.0},
	}
	if got := words.Text(); got != " Hallo wereld" {
		t.Errorf("Text() = %q, want %q", got, " Hallo wereld")
	}
}
