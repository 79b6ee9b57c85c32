package transcribe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avdmeer/woordlicht/internal/timeline"
)

// transcription result with word-level timing
type Result struct {
	Words    timeline.Timeline
	Language string
	Duration time.Duration
}

// interface for word-level audio transcription
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Result, error)
}

// transcription service provider
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
)

// transcription options
type Options struct {
	Language string // Source language of audio (e.g. "nl")
	Model    string
	Prompt   string
}

// creates transcriber based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Transcriber, error) {
	switch provider {
	case ProviderGemini:
		return NewGeminiTranscriber(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAITranscriber(ctx, apiKey, opts)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func ParseProvider(s string) (Provider, error) {
	switch strings.ToLower(s) {
	case "gemini":
		return ProviderGemini, nil
	case "openai":
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("unsupported provider %q: use gemini or openai", s)
	}
}

// Every word in the edit artifact carries its separating whitespace as a
// leading space; providers that return bare word text get it added here so
// the rendered line text joins correctly.
func ensureLeadingSpace(word string) string {
	if word == "" || strings.HasPrefix(word, " ") || strings.HasPrefix(word, "\t") {
		return word
	}
	return " " + word
}
