package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/avdmeer/woordlicht/internal/ffmpeg"
)

// video stream information
type Info struct {
	Width  int
	Height int
	Codec  string
}

// holds options for audio extraction
type ExtractAudioOptions struct {
	Format     string // Output format (wav, mp3, aac, flac)
	SampleRate int    // Sample rate in Hz (e.g., 16000, 44100, 48000)
	Channels   int    // Number of channels (1 = mono, 2 = stereo)
	Bitrate    string // Bitrate for lossy formats (e.g., "128k", "320k")
}

// JSON output from ffprobe stream inspection
type ffprobeStreams struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Width     int    `json:"width"`
		Height    int    `json:"height"`
	} `json:"streams"`
}

// Probe returns the first video stream's resolution and codec.
func Probe(videoPath string) (*Info, error) {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("video file not found: %s", videoPath)
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		videoPath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe ffprobeStreams
	if err := json.Unmarshal(out.Bytes(), &probe); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	for _, s := range probe.Streams {
		if s.CodecType == "video" {
			return &Info{Width: s.Width, Height: s.Height, Codec: s.CodecName}, nil
		}
	}

	return nil, fmt.Errorf("no video stream found in %s", videoPath)
}

// extracts the first audio stream from a video file; videos with multiple
// audio tracks (e.g. iPhone spatial audio) otherwise confuse ffmpeg's
// default stream selection
func ExtractAudio(
	ctx context.Context,
	videoPath, outputPath string,
	opts ExtractAudioOptions,
) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	kwargs := ffmpeg.KwArgs{
		"map": "0:a:0",
		"vn":  "",
		"ar":  opts.SampleRate,
		"ac":  opts.Channels,
		"y":   "",
	}

	switch opts.Format {
	case "aac":
		kwargs["acodec"] = "aac"
	case "flac":
		kwargs["acodec"] = "flac"
	case "wav":
		kwargs["acodec"] = "pcm_s16le"
	default:
		kwargs["acodec"] = "libmp3lame"
	}
	if opts.Bitrate != "" && opts.Format != "flac" && opts.Format != "wav" {
		kwargs["b:a"] = opts.Bitrate
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	err = ffmpeg.Input(videoPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()

	if err != nil {
		return fmt.Errorf("ffmpeg extraction failed: %w", err)
	}

	return nil
}

// Burn renders the subtitle file into the video with the libass subtitles
// filter, copying the audio stream through untouched.
func Burn(ctx context.Context, videoPath, subtitlePath, outputPath string) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}
	if _, err := os.Stat(subtitlePath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", subtitlePath)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return err
	}

	err = ffmpeg.Input(videoPath).
		Output(outputPath, ffmpeg.KwArgs{
			"vf":       fmt.Sprintf("subtitles=%s", escapeFilterPath(subtitlePath)),
			"acodec":   "copy",
			"vcodec":   "libx264",
			"preset":   "medium",
			"movflags": "+faststart",
			"y":        "",
		}).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()

	if err != nil {
		return fmt.Errorf("subtitle burn-in failed: %w", err)
	}

	return nil
}

// the subtitles filter parses its argument, so path separators and colons
// need escaping on the filter level
func escapeFilterPath(path string) string {
	path = strings.ReplaceAll(path, `\`, `\\`)
	path = strings.ReplaceAll(path, `:`, `\:`)
	path = strings.ReplaceAll(path, `'`, `\'`)
	return path
}
