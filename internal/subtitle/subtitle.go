package subtitle

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/avdmeer/woordlicht/internal/caption"
)

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
	FormatASS Format = "ass"
)

// interface for writing a render plan to a subtitle file
type Writer interface {
	Write(plan *caption.Plan, path string) error
}

func NewWriter(format Format, style Style) (Writer, error) {
	switch format {
	case FormatSRT:
		return &SRTWriter{}, nil
	case FormatVTT:
		return &VTTWriter{}, nil
	case FormatASS:
		return &ASSWriter{Style: style}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "srt":
		return FormatSRT, nil
	case "vtt":
		return FormatVTT, nil
	case "ass":
		return FormatASS, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use srt, vtt, or ass", s)
	}
}

// file extension for a format
func GetExtensionForFormat(format Format) string {
	switch format {
	case FormatVTT:
		return ".vtt"
	case FormatASS:
		return ".ass"
	default:
		return ".srt"
	}
}

// subtitle format based on file extension
func GetFormatFromExtension(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".vtt":
		return FormatVTT
	case ".ass", ".ssa":
		return FormatASS
	default:
		return FormatSRT
	}
}
