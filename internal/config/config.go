package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avdmeer/woordlicht/internal/caption"
	"github.com/avdmeer/woordlicht/internal/subtitle"
)

// File is the optional project configuration. Zero values fall back to
// the built-in defaults, so a config file only needs the fields it wants
// to change.
type File struct {
	Caption struct {
		MaxWords    int     `yaml:"max_words"`
		MaxChars    int     `yaml:"max_chars"`
		MaxDuration float64 `yaml:"max_duration"`
		MaxGap      float64 `yaml:"max_gap"`
	} `yaml:"caption"`
	Style subtitle.Style `yaml:"style"`
}

func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return &f, nil
}

// CaptionConfig merges the file's caption section over the defaults.
func (f *File) CaptionConfig() caption.Config {
	cfg := caption.DefaultConfig()
	if f == nil {
		return cfg
	}
	if f.Caption.MaxWords != 0 {
		cfg.MaxWords = f.Caption.MaxWords
	}
	if f.Caption.MaxChars != 0 {
		cfg.MaxChars = f.Caption.MaxChars
	}
	if f.Caption.MaxDuration != 0 {
		cfg.MaxDuration = f.Caption.MaxDuration
	}
	if f.Caption.MaxGap != 0 {
		cfg.MaxGap = f.Caption.MaxGap
	}
	return cfg
}

// SubtitleStyle merges the file's style section over the defaults.
func (f *File) SubtitleStyle() subtitle.Style {
	style := subtitle.DefaultStyle()
	if f == nil {
		return style
	}
	s := f.Style
	if s.Title != "" {
		style.Title = s.Title
	}
	if s.FontName != "" {
		style.FontName = s.FontName
	}
	if s.FontSize != 0 {
		style.FontSize = s.FontSize
	}
	if s.FontScale != 0 {
		style.FontScale = s.FontScale
	}
	if s.Color != "" {
		style.Color = s.Color
	}
	if s.HighlightColor != "" {
		style.HighlightColor = s.HighlightColor
	}
	if s.OutlineColor != "" {
		style.OutlineColor = s.OutlineColor
	}
	if s.OutlineWidth != 0 {
		style.OutlineWidth = s.OutlineWidth
	}
	if s.ShadowDepth != 0 {
		style.ShadowDepth = s.ShadowDepth
	}
	if s.MarginV != 0 {
		style.MarginV = s.MarginV
	}
	return style
}
