package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/avdmeer/woordlicht/internal/audio"
	"github.com/avdmeer/woordlicht/internal/store"
	"github.com/avdmeer/woordlicht/internal/timeline"
	"github.com/avdmeer/woordlicht/internal/transcribe"
	"github.com/avdmeer/woordlicht/internal/video"
)

var transcribeCmd = &cobra.Command{
	Use:   "transcribe [media_file]",
	Short: "Transcribe a media file into an editable word timeline",
	Long: `Transcribe the specified audio or video file with word-level timestamps.

The command accepts both audio files (mp3, wav, aac, etc.) and video files
(mp4, mkv, etc.). For video files, audio is automatically extracted before
transcription.

The audio is split into chunks (default 1 minute) and transcribed in
parallel. The resulting word timeline is written as a JSON file next to
the media file. Review and edit that file before rendering: fix misheard
words, adjust timestamps, or delete filler words.

Transcriptions are cached by file content, so re-running the command on an
unchanged file returns the cached timeline without calling the API.

Examples:
  woordlicht transcribe video.mp4
  woordlicht transcribe audio.mp3 --provider openai
  woordlicht transcribe video.mp4 --api-key YOUR_KEY --chunk-duration 2
  woordlicht transcribe interview.mp4 -l en --concurrency 5`,
	Args: cobra.ExactArgs(1),
	RunE: runTranscribe,
}

func init() {
	rootCmd.AddCommand(transcribeCmd)
	addTranscribeFlags(transcribeCmd)
}

// transcription flags shared by the transcribe and generate commands
func addTranscribeFlags(cmd *cobra.Command) {
	cmd.Flags().
		StringP("provider", "p", "gemini", "Transcription provider (gemini, openai)")
	cmd.Flags().
		StringP("api-key", "k", "", "Provider API key (or set GEMINI_API_KEY / OPENAI_API_KEY)")
	cmd.Flags().
		String("model", "", "Model to use for transcription (provider default if empty)")
	cmd.Flags().
		IntP("chunk-duration", "d", 1, "Chunk duration in minutes for splitting audio")
	cmd.Flags().
		Int("concurrency", 3, "Number of parallel transcription workers")
	cmd.Flags().
		String("prompt", "", "Extra context for the transcriber (names, jargon)")
	cmd.Flags().
		Bool("force", false, "Ignore the cache and transcribe again")
}

type transcribeParams struct {
	provider      transcribe.Provider
	apiKey        string
	model         string
	prompt        string
	language      string
	chunkDuration time.Duration
	concurrency   int
	force         bool
}

func transcribeParamsFromFlags(cmd *cobra.Command) (transcribeParams, error) {
	var p transcribeParams

	providerStr, _ := cmd.Flags().GetString("provider")
	provider, err := transcribe.ParseProvider(providerStr)
	if err != nil {
		return p, err
	}
	p.provider = provider

	p.apiKey, _ = cmd.Flags().GetString("api-key")
	if p.apiKey == "" {
		switch provider {
		case transcribe.ProviderGemini:
			p.apiKey = os.Getenv("GEMINI_API_KEY")
		case transcribe.ProviderOpenAI:
			p.apiKey = os.Getenv("OPENAI_API_KEY")
		}
	}
	if p.apiKey == "" {
		return p, fmt.Errorf("API key is required: use --api-key flag or set the provider's environment variable")
	}

	p.model, _ = cmd.Flags().GetString("model")
	p.prompt, _ = cmd.Flags().GetString("prompt")
	p.language, _ = cmd.Flags().GetString("language")
	p.concurrency, _ = cmd.Flags().GetInt("concurrency")

	minutes, _ := cmd.Flags().GetInt("chunk-duration")
	p.chunkDuration = time.Duration(minutes) * time.Minute

	p.force, _ = cmd.Flags().GetBool("force")

	return p, nil
}

func runTranscribe(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]
	ctx := context.Background()

	params, err := transcribeParamsFromFlags(cmd)
	if err != nil {
		return err
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = timelinePathFor(mediaPath)
	}

	words, err := transcribeMedia(ctx, mediaPath, params)
	if err != nil {
		return err
	}

	return writeTimeline(words, outputPath)
}

// transcribeMedia runs the full media-to-words pipeline: cache lookup,
// audio extraction, chunking, parallel transcription, and timestamp
// normalization.
func transcribeMedia(ctx context.Context, mediaPath string, params transcribeParams) (timeline.Timeline, error) {
	if _, err := os.Stat(mediaPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", mediaPath)
	}
	if !audio.IsMediaFile(mediaPath) {
		return nil, fmt.Errorf("unsupported file type: %s (expected audio or video file)", filepath.Ext(mediaPath))
	}

	cache, err := openCache()
	if err != nil {
		logger.Warnw("Transcription cache unavailable", "error", err)
	} else {
		defer cache.Close()
	}

	var mediaHash string
	if cache != nil {
		mediaHash, err = store.HashFile(mediaPath)
		if err != nil {
			return nil, fmt.Errorf("failed to hash media file: %w", err)
		}

		if params.force {
			if err := cache.Invalidate(mediaHash); err != nil {
				return nil, fmt.Errorf("failed to invalidate cache: %w", err)
			}
		} else if words, ok, err := cache.Get(mediaHash); err == nil && ok {
			logger.Infow("Using cached transcription",
				"input", mediaPath,
				"words", len(words),
			)
			return words, nil
		}
	}

	logger.Infow("Starting transcription",
		"input", mediaPath,
		"provider", params.provider,
		"language", params.language,
		"chunk_duration", params.chunkDuration.String(),
		"concurrency", params.concurrency,
	)

	tempDir, err := os.MkdirTemp("", "woordlicht-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	audioPath := filepath.Join(tempDir, "audio.mp3")
	compressionOpts := audio.DefaultCompressionOptions()

	if audio.IsVideoFile(mediaPath) {
		logger.Infow("Extracting audio from video")

		extractOpts := video.ExtractAudioOptions{
			Format:     compressionOpts.Format,
			SampleRate: compressionOpts.SampleRate,
			Channels:   compressionOpts.Channels,
			Bitrate:    compressionOpts.Bitrate,
		}
		if err := video.ExtractAudio(ctx, mediaPath, audioPath, extractOpts); err != nil {
			return nil, fmt.Errorf("failed to extract audio: %w", err)
		}
	} else {
		logger.Infow("Compressing audio for transcription")

		if err := audio.CompressAudio(ctx, mediaPath, audioPath, compressionOpts); err != nil {
			return nil, fmt.Errorf("failed to compress audio: %w", err)
		}
	}

	duration, err := audio.GetDuration(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get audio duration: %w", err)
	}

	logger.Infow("Audio prepared",
		"duration", duration.String(),
	)

	chunkDir := filepath.Join(tempDir, "chunks")
	chunks, err := audio.ChunkAudio(ctx, audioPath, params.chunkDuration, chunkDir)
	if err != nil {
		return nil, fmt.Errorf("failed to split audio: %w", err)
	}

	logger.Infow("Created audio chunks",
		"count", len(chunks),
	)

	transcriber, err := transcribe.Factory(ctx, params.provider, params.apiKey, transcribe.Options{
		Language: params.language,
		Model:    params.model,
		Prompt:   params.prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create transcriber: %w", err)
	}

	logger.Infow("Transcribing audio",
		"concurrency", params.concurrency,
	)

	result, err := transcribe.TranscribeChunks(ctx, transcriber, chunks, params.concurrency)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	if repaired := timeline.Normalize(result.Words); repaired > 0 {
		logger.Warnw("Repaired inverted word timestamps",
			"count", repaired,
		)
	}

	logger.Infow("Transcription complete",
		"words", len(result.Words),
	)

	if cache != nil {
		if err := cache.Put(mediaHash, mediaPath, params.language, result.Words); err != nil {
			logger.Warnw("Failed to cache transcription", "error", err)
		}
	}

	return result.Words, nil
}

func writeTimeline(words timeline.Timeline, outputPath string) error {
	if err := timeline.Save(words, outputPath); err != nil {
		return fmt.Errorf("failed to write timeline: %w", err)
	}

	fmt.Printf("Word timeline written to %s\n", outputPath)
	fmt.Println("Review the file and fix any mistakes, then render with:")
	fmt.Printf("  woordlicht render %s [video_file]\n", outputPath)
	return nil
}

// default edit artifact path: video.mp4 -> video_timestamps.json
func timelinePathFor(mediaPath string) string {
	base := strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath))
	return base + "_timestamps.json"
}

// openCache opens the content-addressed transcription cache in the user
// cache directory.
func openCache() (*store.Store, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(cacheDir, "woordlicht")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return store.Open(filepath.Join(dir, "timelines.db"))
}
