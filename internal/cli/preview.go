package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avdmeer/woordlicht/internal/caption"
)

var previewCmd = &cobra.Command{
	Use:   "preview [timeline_file]",
	Short: "Preview the highlight timing of a word timeline in the terminal",
	Long: `Preview how captions will appear over time without rendering anything.

The timeline is segmented into caption lines and sampled at the given
frame rate, exactly as a renderer would query it. Every frame where the
visible state changes is printed with its timestamp, the caption line,
and the highlighted word wrapped in >markers<.

Useful for checking hand edits to a timeline before burning subtitles
into a video.

Examples:
  woordlicht preview video_timestamps.json
  woordlicht preview edited.json --fps 30 --max-words 3`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().
		Int("fps", 24, "Frame rate to sample the timeline at")
	previewCmd.Flags().
		Int("max-words", 0, "Maximum words per caption line")
	previewCmd.Flags().
		Int("max-chars", 0, "Maximum characters per caption line")
	previewCmd.Flags().
		Float64("max-duration", 0, "Maximum caption line duration in seconds")
	previewCmd.Flags().
		Float64("max-gap", 0, "Maximum silence between words in a line, in seconds")
}

func runPreview(cmd *cobra.Command, args []string) error {
	timelinePath := args[0]

	fps, _ := cmd.Flags().GetInt("fps")
	if fps < 1 {
		return fmt.Errorf("fps must be at least 1, got %d", fps)
	}

	cfgFile, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	cfg := captionConfigFromFlags(cmd, cfgFile)

	plan, err := buildPlan(timelinePath, cfg)
	if err != nil {
		return err
	}

	end := 0.0
	for _, entry := range plan.Entries {
		if entry.Line.End > end {
			end = entry.Line.End
		}
	}

	frameDur := 1.0 / float64(fps)
	var lastEntry *caption.Entry
	lastWord := caption.NoWord
	started := false

	for frame := 0; ; frame++ {
		t := float64(frame) * frameDur
		if t >= end {
			break
		}

		entry, word := plan.Resolve(t)
		if started && entry == lastEntry && word == lastWord {
			continue
		}
		started = true
		lastEntry = entry
		lastWord = word

		fmt.Printf("%8.3f  %s\n", t, previewLine(entry, word))
	}

	return nil
}

// previewLine renders one frame's caption state, marking the highlighted
// word. A nil entry means no caption is on screen.
func previewLine(entry *caption.Entry, word int) string {
	if entry == nil {
		return "(no caption)"
	}

	var sb strings.Builder
	for i, w := range entry.Line.Words {
		text := strings.TrimSpace(w.Text)
		if i > 0 {
			sb.WriteString(" ")
		}
		if i == word {
			sb.WriteString(">")
			sb.WriteString(text)
			sb.WriteString("<")
		} else {
			sb.WriteString(text)
		}
	}
	return sb.String()
}
