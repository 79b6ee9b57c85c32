package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "woordlicht.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadPartialOverrides(t *testing.T) {
	path := writeConfig(t, `
caption:
  max_words: 6
  max_gap: 0.8
style:
  highlight_color: "&H0000FFFF"
`)

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cfg := f.CaptionConfig()
	if cfg.MaxWords != 6 {
		t.Errorf("MaxWords = %d, want 6", cfg.MaxWords)
	}
	if cfg.MaxGap != 0.8 {
		t.Errorf("MaxGap = %g, want 0.8", cfg.MaxGap)
	}
	// untouched fields keep defaults
	if cfg.MaxChars != 80 || cfg.MaxDuration != 3.0 {
		t.Errorf("defaults lost: %+v", cfg)
	}

	style := f.SubtitleStyle()
	if style.HighlightColor != "&H0000FFFF" {
		t.Errorf("HighlightColor = %q", style.HighlightColor)
	}
	if style.FontName == "" {
		t.Error("default font lost")
	}
}

func TestNilFileGivesDefaults(t *testing.T) {
	var f *File
	if got := f.CaptionConfig(); got.MaxWords != 4 {
		t.Errorf("nil file MaxWords = %d, want 4", got.MaxWords)
	}
	if got := f.SubtitleStyle(); got.Color == "" {
		t.Error("nil file lost default style")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := writeConfig(t, "caption: [broken")
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed yaml")
	}
}
