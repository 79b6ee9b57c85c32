package subtitle

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avdmeer/woordlicht/internal/caption"
)

// SubRip format: one entry per caption line, no word highlighting
type SRTWriter struct{}

// WebVTT format: one cue per caption line, no word highlighting
type VTTWriter struct{}

// writes the plan's lines to an SRT file
func (w *SRTWriter) Write(plan *caption.Plan, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	var sb strings.Builder
	for i, entry := range plan.Entries {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatSRTTime(seconds(entry.Line.Start)),
			formatSRTTime(seconds(entry.Line.End))))

		sb.WriteString(strings.TrimSpace(entry.Line.Text))
		sb.WriteString("\n\n")
	}

	return os.WriteFile(path, []byte(sb.String()), 0644)
}

// writes the plan's lines to a VTT file
func (w *VTTWriter) Write(plan *caption.Plan, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")

	for i, entry := range plan.Entries {
		// optional cue identifier
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00.000 --> 00:00:00.000
		sb.WriteString(fmt.Sprintf("%s --> %s\n",
			formatVTTTime(seconds(entry.Line.Start)),
			formatVTTTime(seconds(entry.Line.End))))

		sb.WriteString(strings.TrimSpace(entry.Line.Text))
		sb.WriteString("\n\n")
	}

	return os.WriteFile(path, []byte(sb.String()), 0644)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func formatSRTTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}

func formatVTTTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
}

func formatASSTime(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	secs := int(d.Seconds()) % 60
	centis := (int(d.Milliseconds()) % 1000) / 10

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0755)
}
