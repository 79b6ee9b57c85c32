package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/avdmeer/woordlicht/internal/ffmpeg"
)

// audio chunk info
type ChunkInfo struct {
	Path      string
	Index     int
	StartTime time.Duration
	EndTime   time.Duration
}

// settings for audio compression
type CompressionOptions struct {
	Format     string // Output format (mp3, aac, etc.)
	SampleRate int    // Sample rate in Hz
	Channels   int    // Number of channels (1=mono, 2=stereo)
	Bitrate    string // Bitrate (e.g., "64k", "128k")
}

// defaults for transcription
func DefaultCompressionOptions() CompressionOptions {
	return CompressionOptions{
		Format:     "mp3",
		SampleRate: 16000,
		Channels:   1,
		Bitrate:    "64k",
	}
}

// JSON output from ffprobe
type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// duration of an audio/video file
func GetDuration(filePath string) (time.Duration, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return 0, fmt.Errorf("file not found: %s", filePath)
	}

	ffprobePath, err := ffmpegbin.FFprobePath()
	if err != nil {
		return 0, err
	}

	cmd := exec.Command(ffprobePath,
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		filePath,
	)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out.Bytes(), &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	var seconds float64
	if _, err := fmt.Sscanf(probe.Format.Duration, "%f", &seconds); err != nil {
		return 0, fmt.Errorf("failed to parse duration: %w", err)
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

// compresses an audio file with the given options
func CompressAudio(
	ctx context.Context,
	inputPath, outputPath string,
	opts CompressionOptions,
) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	kwargs := ffmpeg.KwArgs{
		"vn": "",              // No video
		"ar": opts.SampleRate, // Sample rate
		"ac": opts.Channels,   // Channels
		"y":  "",              // Overwrite output
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

	err = ffmpeg.Input(inputPath).
		Output(outputPath, kwargs).
		OverWriteOutput().
		SetFfmpegPath(ffmpegPath).
		Run()

	if err != nil {
		return fmt.Errorf("compression failed: %w", err)
	}

	return nil
}

// splits an audio file into chunks of the given duration; chunk extraction
// runs a few ffmpeg processes in parallel since each is a cheap stream copy
func ChunkAudio(
	ctx context.Context,
	audioPath string,
	chunkDuration time.Duration,
	outputDir string,
) ([]ChunkInfo, error) {
	if chunkDuration <= 0 {
		return nil, fmt.Errorf("chunk duration must be positive, got %v", chunkDuration)
	}

	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	totalDuration, err := GetDuration(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get audio duration: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return nil, err
	}

	baseName := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	ext := filepath.Ext(audioPath)

	type chunkJob struct {
		index      int
		start, end float64
	}

	chunkSeconds := chunkDuration.Seconds()
	totalSeconds := totalDuration.Seconds()

	var jobs []chunkJob
	for i := 0; float64(i)*chunkSeconds < totalSeconds; i++ {
		start := float64(i) * chunkSeconds
		end := start + chunkSeconds
		if end > totalSeconds {
			end = totalSeconds
		}
		jobs = append(jobs, chunkJob{index: i, start: start, end: end})
	}

	var (
		mu       sync.Mutex
		chunks   []ChunkInfo
		firstErr error
		wg       sync.WaitGroup
	)
	sem := make(chan struct{}, 4)

	for _, job := range jobs {
		wg.Add(1)
		go func(j chunkJob) {
			defer wg.Done()

			sem <- struct{}{}
			defer func() { <-sem }()

			select {
			case <-ctx.Done():
				return
			default:
			}

			mu.Lock()
			abort := firstErr != nil
			mu.Unlock()
			if abort {
				return
			}

			chunkPath := filepath.Join(outputDir, fmt.Sprintf("%s_chunk_%03d%s", baseName, j.index, ext))

			err := ffmpeg.Input(audioPath).
				Output(chunkPath, ffmpeg.KwArgs{
					"ss": j.start,
					"t":  j.end - j.start,
					"y":  "",
					"c":  "copy", // Copy codec for speed
				}).
				OverWriteOutput().
				SetFfmpegPath(ffmpegPath).
				Run()

			mu.Lock()
			defer mu.Unlock()

			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("failed to create chunk %d: %w", j.index, err)
				}
				return
			}

			chunks = append(chunks, ChunkInfo{
				Path:      chunkPath,
				Index:     j.index,
				StartTime: time.Duration(j.start * float64(time.Second)),
				EndTime:   time.Duration(j.end * float64(time.Second)),
			})
		}(job)
	}

	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// sort chunks by index to maintain order
	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].Index < chunks[j].Index
	})

	return chunks, nil
}

// checks if the file is a video based on extension
func IsVideoFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".webm", ".m4v", ".mpeg", ".mpg", ".3gp":
		return true
	}
	return false
}

// checks if the file is an audio file based on extension
func IsAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".wav", ".aac", ".flac", ".ogg", ".m4a", ".wma", ".opus":
		return true
	}
	return false
}

// checks if the file is a supported media file
func IsMediaFile(path string) bool {
	return IsVideoFile(path) || IsAudioFile(path)
}
