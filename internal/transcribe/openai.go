package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/avdmeer/woordlicht/internal/audio"
	"github.com/avdmeer/woordlicht/internal/timeline"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// implements Transcriber interface using OpenAI Audio API
type OpenAITranscriber struct {
	client  openai.Client
	model   string
	options Options
}

// word entry from Whisper verbose_json response
type whisperWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// verbose_json response structure from Whisper
type whisperVerboseResponse struct {
	Text     string        `json:"text"`
	Words    []whisperWord `json:"words"`
	Language string        `json:"language"`
	Duration float64       `json:"duration"`
}

func NewOpenAITranscriber(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*OpenAITranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	model := opts.Model
	if model == "" {
		model = "whisper-1"
	}

	return &OpenAITranscriber{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

// transcribes single audio file with word timestamp granularity
func (t *OpenAITranscriber) Transcribe(
	ctx context.Context,
	audioPath string,
) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio file: %w", err)
	}
	defer file.Close()

	duration, _ := audio.GetDuration(audioPath)

	params := openai.AudioTranscriptionNewParams{
		File:                   file,
		Model:                  openai.AudioModel(t.model),
		ResponseFormat:         openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []string{"word"},
	}

	if t.options.Language != "" {
		params.Language = openai.String(t.options.Language)
	}

	if t.options.Prompt != "" {
		params.Prompt = openai.String(t.options.Prompt)
	}

	resp, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	words, lang, err := parseVerboseJSONWords(resp.RawJSON())
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcription: %w", err)
	}
	if lang == "" {
		lang = t.options.Language
	}

	return &Result{
		Words:    words,
		Language: lang,
		Duration: duration,
	}, nil
}

// extracts word timings from a Whisper verbose_json payload
func parseVerboseJSONWords(raw string) (timeline.Timeline, string, error) {
	var resp whisperVerboseResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, "", fmt.Errorf("invalid verbose_json payload: %w", err)
	}

	if len(resp.Words) == 0 {
		return nil, "", fmt.Errorf("no word timestamps in response")
	}

	words := make(timeline.Timeline, len(resp.Words))
	for i, w := range resp.Words {
		words[i] = timeline.Word{
			Text:  ensureLeadingSpace(w.Word),
			Start: w.Start,
			End:   w.End,
		}
	}

	return words, resp.Language, nil
}
