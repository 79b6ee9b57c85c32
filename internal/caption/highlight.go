package caption

// Window is the half-open interval [Start, End) during which one word of a
// line is the highlighted word. A zero-length window (End == Start) means
// the word is never solely highlighted but still appears in the line text.
type Window struct {
	Start float64
	End   float64
}

func (w Window) Contains(t float64) bool {
	return t >= w.Start && t < w.End
}

// Schedule computes one window per word of the line, in line order.
//
// The default window is the word's own [start, end). Hand-edited timelines
// can make adjacent words overlap, so each window's end is clamped to the
// next word's start; if that inverts the window it collapses to zero
// length. The last word keeps its own end. Windows therefore never
// overlap and never reorder or drop words.
func Schedule(line Line) []Window {
	windows := make([]Window, len(line.Words))
	for i, w := range line.Words {
		start, end := w.Start, w.End
		if i < len(line.Words)-1 {
			if next := line.Words[i+1].Start; next < end {
				end = next
			}
		}
		if end < start {
			end = start
		}
		windows[i] = Window{Start: start, End: end}
	}
	return windows
}
