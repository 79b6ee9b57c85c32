package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avdmeer/woordlicht/internal/caption"
	"github.com/avdmeer/woordlicht/internal/config"
	"github.com/avdmeer/woordlicht/internal/subtitle"
	"github.com/avdmeer/woordlicht/internal/timeline"
	"github.com/avdmeer/woordlicht/internal/video"
)

var renderCmd = &cobra.Command{
	Use:   "render [timeline_file] [video_file]",
	Short: "Render subtitles from an edited word timeline",
	Long: `Render word-highlight subtitles from a word timeline JSON file.

The timeline file is the output of the transcribe command, possibly edited
by hand. Words are grouped into caption lines and each word gets a
highlight window covering the time it is spoken.

When a video file is given, the subtitle style is sized to the video's
resolution and the subtitles are burned into a new video file. Pass
--no-burn to keep the video untouched and only write the subtitle file.

Examples:
  woordlicht render video_timestamps.json video.mp4
  woordlicht render video_timestamps.json video.mp4 --no-burn
  woordlicht render edited.json --format srt -o captions.srt
  woordlicht render edited.json video.mp4 --max-words 3 --max-gap 1.0`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().
		StringP("format", "f", "ass", "Output subtitle format (srt, vtt, ass)")
	renderCmd.Flags().
		Bool("no-burn", false, "Write the subtitle file only, do not burn into the video")
	renderCmd.Flags().
		Int("max-words", 0, "Maximum words per caption line")
	renderCmd.Flags().
		Int("max-chars", 0, "Maximum characters per caption line")
	renderCmd.Flags().
		Float64("max-duration", 0, "Maximum caption line duration in seconds")
	renderCmd.Flags().
		Float64("max-gap", 0, "Maximum silence between words in a line, in seconds")
}

func runRender(cmd *cobra.Command, args []string) error {
	timelinePath := args[0]
	videoPath := ""
	if len(args) == 2 {
		videoPath = args[1]
	}
	ctx := context.Background()

	formatStr, _ := cmd.Flags().GetString("format")
	noBurn, _ := cmd.Flags().GetBool("no-burn")
	outputPath, _ := cmd.Flags().GetString("output")

	format, err := subtitle.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	cfgFile, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	cfg := captionConfigFromFlags(cmd, cfgFile)
	style := cfgFile.SubtitleStyle()

	plan, err := buildPlan(timelinePath, cfg)
	if err != nil {
		return err
	}

	if videoPath != "" {
		info, err := video.Probe(videoPath)
		if err != nil {
			return fmt.Errorf("failed to probe video: %w", err)
		}
		style.AutoSize(info.Width, info.Height)
	}

	// when burning, the -o path names the video output and the subtitle
	// file lands next to the timeline
	burn := videoPath != "" && !noBurn
	subtitlePath := outputPath
	if burn || subtitlePath == "" {
		subtitlePath = replaceExt(timelinePath, subtitle.GetExtensionForFormat(format))
	}

	writer, err := subtitle.NewWriter(format, style)
	if err != nil {
		return err
	}

	logger.Infow("Writing subtitles",
		"output", subtitlePath,
		"format", formatStr,
		"lines", len(plan.Entries),
	)

	if err := writer.Write(plan, subtitlePath); err != nil {
		return fmt.Errorf("failed to write subtitles: %w", err)
	}

	if !burn {
		fmt.Printf("Subtitles written to %s\n", subtitlePath)
		return nil
	}

	burnedPath := outputPath
	if burnedPath == "" {
		base := strings.TrimSuffix(videoPath, filepath.Ext(videoPath))
		burnedPath = base + "_subtitled" + filepath.Ext(videoPath)
	}

	logger.Infow("Burning subtitles into video",
		"video", videoPath,
		"output", burnedPath,
	)

	if err := video.Burn(ctx, videoPath, subtitlePath, burnedPath); err != nil {
		return fmt.Errorf("failed to burn subtitles: %w", err)
	}

	fmt.Printf("Subtitled video written to %s\n", burnedPath)
	return nil
}

// buildPlan loads a word timeline and turns it into a render plan.
func buildPlan(timelinePath string, cfg caption.Config) (*caption.Plan, error) {
	if _, err := os.Stat(timelinePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("timeline file not found: %s", timelinePath)
	}

	words, err := timeline.Load(timelinePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load timeline: %w", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("timeline %s contains no words", timelinePath)
	}

	if repaired := timeline.Normalize(words); repaired > 0 {
		logger.Warnw("Repaired inverted word timestamps",
			"count", repaired,
		)
	}

	lines, err := caption.Segment(words, cfg)
	if err != nil {
		return nil, err
	}

	logger.Infow("Segmented timeline",
		"words", len(words),
		"lines", len(lines),
	)

	return caption.BuildPlan(lines), nil
}

// captionConfigFromFlags merges explicit render flags over the config
// file values. Only flags the user actually set override the file.
func captionConfigFromFlags(cmd *cobra.Command, cfgFile *config.File) caption.Config {
	cfg := cfgFile.CaptionConfig()

	if cmd.Flags().Changed("max-words") {
		cfg.MaxWords, _ = cmd.Flags().GetInt("max-words")
	}
	if cmd.Flags().Changed("max-chars") {
		cfg.MaxChars, _ = cmd.Flags().GetInt("max-chars")
	}
	if cmd.Flags().Changed("max-duration") {
		cfg.MaxDuration, _ = cmd.Flags().GetFloat64("max-duration")
	}
	if cmd.Flags().Changed("max-gap") {
		cfg.MaxGap, _ = cmd.Flags().GetFloat64("max-gap")
	}

	return cfg
}

func replaceExt(path, newExt string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + newExt
}
