package caption

import "sort"

// NoWord is returned by Resolve when the active line has no highlighted
// word at the queried time.
const NoWord = -1

// Resolve maps a playback timestamp to the active plan entry and the
// index of the highlighted word within it. Outside every line's
// [start, end) it returns (nil, NoWord); inside a line but between
// highlight windows it returns the entry with NoWord.
//
// The resolver is stateless: the compositor may query frames in any
// order, so lookup does not keep a cursor. For the usual well-ordered
// timeline it is a binary search over line start times; when hand edits
// leave lines out of order or overlapping it degrades to a scan, and the
// earliest entry containing t wins.
func (p *Plan) Resolve(t float64) (*Entry, int) {
	if !p.ordered {
		for i := range p.Entries {
			entry := &p.Entries[i]
			if t >= entry.Line.Start && t < entry.Line.End {
				return entry, highlightAt(entry.Windows, t)
			}
		}
		return nil, NoWord
	}

	// last entry starting at or before t
	i := sort.Search(len(p.Entries), func(i int) bool {
		return p.Entries[i].Line.Start > t
	})
	if i == 0 {
		return nil, NoWord
	}
	entry := &p.Entries[i-1]
	if t >= entry.Line.End {
		return nil, NoWord
	}
	return entry, highlightAt(entry.Windows, t)
}

// index of the window containing t, or NoWord
func highlightAt(windows []Window, t float64) int {
	for i, w := range windows {
		if w.Contains(t) {
			return i
		}
	}
	return NoWord
}
