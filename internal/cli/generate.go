package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avdmeer/woordlicht/internal/audio"
	"github.com/avdmeer/woordlicht/internal/caption"
	"github.com/avdmeer/woordlicht/internal/subtitle"
	"github.com/avdmeer/woordlicht/internal/timeline"
	"github.com/avdmeer/woordlicht/internal/video"
)

var generateCmd = &cobra.Command{
	Use:   "generate [media_file]",
	Short: "Transcribe and render word-highlight subtitles in one step",
	Long: `Generate word-highlight subtitles for the specified media file.

This is the one-shot pipeline: transcribe, segment into caption lines, and
render. The intermediate word timeline is still written next to the media
file, so a later render run can pick up hand edits without transcribing
again.

For video files the subtitles are burned into a new video unless --no-burn
is given; for audio files only the subtitle file is written.

Examples:
  woordlicht generate video.mp4
  woordlicht generate video.mp4 --no-burn --format srt
  woordlicht generate podcast.mp3 --provider openai -f vtt
  woordlicht generate video.mp4 --max-words 3 --chunk-duration 2`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addTranscribeFlags(generateCmd)

	generateCmd.Flags().
		StringP("format", "f", "ass", "Output subtitle format (srt, vtt, ass)")
	generateCmd.Flags().
		Bool("no-burn", false, "Write the subtitle file only, do not burn into the video")
	generateCmd.Flags().
		Int("max-words", 0, "Maximum words per caption line")
	generateCmd.Flags().
		Int("max-chars", 0, "Maximum characters per caption line")
	generateCmd.Flags().
		Float64("max-duration", 0, "Maximum caption line duration in seconds")
	generateCmd.Flags().
		Float64("max-gap", 0, "Maximum silence between words in a line, in seconds")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	ctx := context.Background()

	params, err := transcribeParamsFromFlags(cmd)
	if err != nil {
		return err
	}

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

	words, err := transcribeMedia(ctx, mediaPath, params)
	if err != nil {
		return err
	}
	if len(words) == 0 {
		return fmt.Errorf("transcription produced no words for %s", mediaPath)
	}

	timelinePath := timelinePathFor(mediaPath)
	if err := timeline.Save(words, timelinePath); err != nil {
		return fmt.Errorf("failed to write timeline: %w", err)
	}
	logger.Infow("Word timeline written",
		"path", timelinePath,
	)

	lines, err := caption.Segment(words, cfg)
	if err != nil {
		return err
	}
	plan := caption.BuildPlan(lines)

	logger.Infow("Segmented timeline",
		"words", len(words),
		"lines", len(lines),
	)

	isVideo := audio.IsVideoFile(mediaPath)
	if isVideo {
		info, err := video.Probe(mediaPath)
		if err != nil {
			return fmt.Errorf("failed to probe video: %w", err)
		}
		style.AutoSize(info.Width, info.Height)
	}

	burn := isVideo && !noBurn
	subtitlePath := outputPath
	if burn || subtitlePath == "" {
		subtitlePath = replaceExt(mediaPath, subtitle.GetExtensionForFormat(format))
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
		base := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
		burnedPath = base + "_subtitled" + filepath.Ext(mediaPath)
	}

	logger.Infow("Burning subtitles into video",
		"video", mediaPath,
		"output", burnedPath,
	)

	if err := video.Burn(ctx, mediaPath, subtitlePath, burnedPath); err != nil {
		return fmt.Errorf("failed to burn subtitles: %w", err)
	}

	fmt.Printf("Subtitled video written to %s\n", burnedPath)
	return nil
}
