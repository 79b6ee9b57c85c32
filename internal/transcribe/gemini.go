package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/avdmeer/woordlicht/internal/audio"
	"github.com/avdmeer/woordlicht/internal/timeline"
	"google.golang.org/genai"
)

// implements Transcriber interface using Google Gemini
type GeminiTranscriber struct {
	client  *genai.Client
	model   string
	options Options
}

// word entry from Gemini's JSON response
type transcriptWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

func NewGeminiTranscriber(ctx context.Context, apiKey string, opts Options) (*GeminiTranscriber, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &GeminiTranscriber{
		client:  client,
		model:   model,
		options: opts,
	}, nil
}

// transcribes single audio file with word-level timestamps
func (t *GeminiTranscriber) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	if _, err := os.Stat(audioPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("audio file not found: %s", audioPath)
	}

	uploadedFile, err := t.client.Files.UploadFromPath(ctx, audioPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upload audio file: %w", err)
	}

	defer func() {
		_, _ = t.client.Files.Delete(ctx, uploadedFile.Name, nil)
	}()

	prompt := t.buildTranscriptionPrompt()

	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
		genai.NewPartFromURI(uploadedFile.URI, uploadedFile.MIMEType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := t.client.Models.GenerateContent(ctx, t.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("transcription failed: %w", err)
	}

	words, err := t.parseTranscriptionResponse(result)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transcription: %w", err)
	}

	duration, _ := audio.GetDuration(audioPath)

	return &Result{
		Words:    words,
		Language: t.options.Language,
		Duration: duration,
	}, nil
}

// creates the prompt for word-level transcription
func (t *GeminiTranscriber) buildTranscriptionPrompt() string {
	var sb strings.Builder

	sb.WriteString("Generate a word-level transcript of this audio. ")
	sb.WriteString("For every single spoken word, provide its start timestamp, end timestamp, and the exact word. ")
	sb.WriteString("Format your response as a JSON array with objects containing 'word', 'start', and 'end' fields, ")
	sb.WriteString("where 'start' and 'end' are timestamps in seconds (as numbers). ")
	sb.WriteString("Keep the words in spoken order and do not merge words together. ")

	if t.options.Language != "" {
		sb.WriteString(fmt.Sprintf("The audio is in %s. ", t.options.Language))
	}

	if t.options.Prompt != "" {
		sb.WriteString(t.options.Prompt)
		sb.WriteString(" ")
	}

	sb.WriteString("Return ONLY the JSON array, no other text or markdown formatting.")

	return sb.String()
}

// parses Gemini's response into timeline words
func (t *GeminiTranscriber) parseTranscriptionResponse(result *genai.GenerateContentResponse) (timeline.Timeline, error) {
	if result == nil || len(result.Candidates) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	var responseText string
	for _, candidate := range result.Candidates {
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					responseText += part.Text
				}
			}
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text in Gemini response")
	}

	return extractTranscriptWords(responseText)
}

// parses a JSON word array out of possibly chatty model output
func extractTranscriptWords(responseText string) (timeline.Timeline, error) {
	responseText = cleanJSONResponse(responseText)

	var transcriptWords []transcriptWord
	if err := json.Unmarshal([]byte(responseText), &transcriptWords); err != nil {
		// models sometimes wrap the array in an object or surround it
		// with prose; retry on the outermost array
		start := strings.Index(responseText, "[")
		end := strings.LastIndex(responseText, "]")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("failed to parse JSON response: %w (response: %s)", err, truncateString(responseText, 200))
		}
		if err := json.Unmarshal([]byte(responseText[start:end+1]), &transcriptWords); err != nil {
			return nil, fmt.Errorf("failed to parse JSON response: %w (response: %s)", err, truncateString(responseText, 200))
		}
	}

	words := make(timeline.Timeline, len(transcriptWords))
	for i, tw := range transcriptWords {
		words[i] = timeline.Word{
			Text:  ensureLeadingSpace(strings.TrimRight(tw.Word, " ")),
			Start: tw.Start,
			End:   tw.End,
		}
	}

	return words, nil
}

// removes markdown formatting from the response
func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)

	// remove ```json and ``` markers
	jsonBlockRegex := regexp.MustCompile("```(?:json)?\\s*")
	s = jsonBlockRegex.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "```", "")

	s = strings.TrimSpace(s)

	return s
}

// truncates a string to maxLen characters
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
