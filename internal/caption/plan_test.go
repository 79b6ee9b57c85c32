package caption

import (
	"sync"
	"testing"

	"github.com/avdmeer/woordlicht/internal/timeline"
)

func TestBuildPlanPairsLinesWithSchedules(t *testing.T) {
	words := timeline.Timeline{
		{Text: " een", Start: 0.0, End: 0.4},
		{Text: " twee", Start: 0.4, End: 0.9},
		{Text: " drie", Start: 4.0, End: 4.5},
	}
	lines, err := Segment(words, testConfig())
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}

	plan := BuildPlan(lines)
	if len(plan.Entries) != len(lines) {
		t.Fatalf("plan has %d entries, want %d", len(plan.Entries), len(lines))
	}
	for i, entry := range plan.Entries {
		if entry.Line.Text != lines[i].Text {
			t.Errorf("entry %d line = %q, want %q", i, entry.Line.Text, lines[i].Text)
		}
		if len(entry.Windows) != len(entry.Line.Words) {
			t.Errorf("entry %d has %d windows for %d words", i, len(entry.Windows), len(entry.Line.Words))
		}
	}
}

func TestPlanConcurrentResolve(t *testing.T) {
	plan := buildTestPlan(t)

	// the plan is shared read-only across parallel frame queries
	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(offset float64) {
			defer wg.Done()
			for ts := offset; ts < 7.0; ts += 0.1 {
				entry, word := plan.Resolve(ts)
				if entry != nil && word != NoWord {
					if word < 0 || word >= len(entry.Line.Words) {
						t.Errorf("t=%g: word index %d out of range", ts, word)
					}
				}
			}
		}(float64(worker) * 0.013)
	}
	wg.Wait()
}
