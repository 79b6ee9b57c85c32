package caption

// Entry pairs a line with its word highlight schedule.
type Entry struct {
	Line    Line
	Windows []Window
}

// Plan is the complete render plan: every line of the timeline with its
// highlight windows, in display order. It is immutable once built and may
// be queried concurrently.
type Plan struct {
	Entries []Entry

	// true when line intervals are sorted and non-overlapping, which
	// allows Resolve to binary search instead of scanning
	ordered bool
}

// BuildPlan schedules each line and assembles the plan. Pure composition:
// segmentation and scheduling stay independently testable.
func BuildPlan(lines []Line) *Plan {
	entries := make([]Entry, len(lines))
	for i, line := range lines {
		entries[i] = Entry{
			Line:    line,
			Windows: Schedule(line),
		}
	}
	return &Plan{Entries: entries, ordered: orderedDisjoint(entries)}
}

func orderedDisjoint(entries []Entry) bool {
	for i := 1; i < len(entries); i++ {
		if entries[i].Line.Start < entries[i-1].Line.End {
			return false
		}
	}
	return true
}
