package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// Binary discovery. ffmpeg and ffprobe are expected on PATH; the
// WOORDLICHT_FFMPEG / WOORDLICHT_FFPROBE environment variables override
// the lookup for non-standard installs.
type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var (
	ensureOnce sync.Once
	ensureErr  error
	ensurePath BinaryPaths
)

func Ensure() (BinaryPaths, error) {
	ensureOnce.Do(func() {
		ensurePath, ensureErr = ensure()
	})
	return ensurePath, ensureErr
}

func FFmpegPath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

func FFprobePath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

func ensure() (BinaryPaths, error) {
	ffmpegPath, err := locate("ffmpeg", "WOORDLICHT_FFMPEG")
	if err != nil {
		return BinaryPaths{}, err
	}
	ffprobePath, err := locate("ffprobe", "WOORDLICHT_FFPROBE")
	if err != nil {
		return BinaryPaths{}, err
	}
	return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}

func locate(name, envVar string) (string, error) {
	if override := os.Getenv(envVar); override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("%s points to %s: %w", envVar, override, err)
		}
		return override, nil
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s not found on PATH (install ffmpeg or set %s): %w", name, envVar, err)
	}
	return path, nil
}
