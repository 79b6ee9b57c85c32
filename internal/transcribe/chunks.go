package transcribe

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/avdmeer/woordlicht/internal/audio"
	"github.com/avdmeer/woordlicht/internal/timeline"
)

// holds the result of transcribing a chunk
type chunkResult struct {
	Index    int
	Words    timeline.Timeline
	Language string
	Error    error
}

// TranscribeChunks runs the transcriber over audio chunks in parallel and
// merges the word timelines in chunk order, shifting each chunk's
// timestamps by its offset in the full recording.
func TranscribeChunks(
	ctx context.Context,
	t Transcriber,
	chunks []audio.ChunkInfo,
	concurrency int,
) (*Result, error) {
	if len(chunks) == 0 {
		return &Result{}, nil
	}

	if concurrency <= 0 {
		concurrency = 3
	}

	workChan := make(chan audio.ChunkInfo, len(chunks))
	resultChan := make(chan chunkResult, len(chunks))

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Go(func() {
			for chunk := range workChan {
				words, lang, err := transcribeChunk(ctx, t, chunk)
				resultChan <- chunkResult{
					Index:    chunk.Index,
					Words:    words,
					Language: lang,
					Error:    err,
				}
			}
		})
	}

	for _, chunk := range chunks {
		workChan <- chunk
	}
	close(workChan)

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]chunkResult, 0, len(chunks))
	var language string
	for result := range resultChan {
		if result.Error != nil {
			return nil, fmt.Errorf("chunk %d failed: %w", result.Index, result.Error)
		}
		if language == "" {
			language = result.Language
		}
		results = append(results, result)
	}

	// sort by index to maintain order
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})

	// merge
	var allWords timeline.Timeline
	for _, r := range results {
		allWords = append(allWords, r.Words...)
	}

	return &Result{
		Words:    allWords,
		Language: language,
		Duration: chunks[len(chunks)-1].EndTime,
	}, nil
}

// transcribes a single chunk and shifts timestamps by the chunk offset
func transcribeChunk(ctx context.Context, t Transcriber, chunk audio.ChunkInfo) (timeline.Timeline, string, error) {
	result, err := t.Transcribe(ctx, chunk.Path)
	if err != nil {
		return nil, "", err
	}

	offset := chunk.StartTime.Seconds()
	adjusted := make(timeline.Timeline, len(result.Words))
	for i, w := range result.Words {
		adjusted[i] = timeline.Word{
			Text:  w.Text,
			Start: w.Start + offset,
			End:   w.End + offset,
		}
	}

	return adjusted, result.Language, nil
}
