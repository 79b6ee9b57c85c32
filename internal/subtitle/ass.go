package subtitle

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/avdmeer/woordlicht/internal/caption"
)

// Advanced SubStation Alpha with per-word highlighting. The writer plays
// the role of the frame compositor: it slices playback time at every line
// and highlight-window boundary, asks the plan what is visible in each
// slice, and emits one Dialogue event per slice with the highlighted word
// recolored inline.
type ASSWriter struct {
	Style Style
}

func (w *ASSWriter) Write(plan *caption.Plan, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	var sb strings.Builder
	w.writeHeader(&sb)

	for _, sp := range timeSlices(plan) {
		entry, word := plan.Resolve(midpoint(sp.start, sp.end))
		if entry == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			formatASSTime(seconds(sp.start)),
			formatASSTime(seconds(sp.end)),
			w.dialogueText(entry, word)))
	}

	return os.WriteFile(path, []byte(sb.String()), 0644)
}

func (w *ASSWriter) writeHeader(sb *strings.Builder) {
	style := w.Style

	// script info section
	sb.WriteString("[Script Info]\n")
	sb.WriteString(fmt.Sprintf("Title: %s\n", style.Title))
	sb.WriteString("ScriptType: v4.00+\n")
	if style.PlayResX > 0 && style.PlayResY > 0 {
		sb.WriteString(fmt.Sprintf("PlayResX: %d\n", style.PlayResX))
		sb.WriteString(fmt.Sprintf("PlayResY: %d\n", style.PlayResY))
	}
	sb.WriteString("Collisions: Normal\n")
	sb.WriteString("PlayDepth: 0\n\n")

	fontSize := style.FontSize
	if fontSize <= 0 {
		fontSize = 80
	}

	// v4+ styles section
	sb.WriteString("[V4+ Styles]\n")
	sb.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
	sb.WriteString(fmt.Sprintf("Style: Default,%s,%d,%s,%s,%s,&H00000000,-1,0,0,0,100,100,0,0,1,%d,%d,2,10,10,%d,1\n\n",
		style.FontName, fontSize, style.Color, style.HighlightColor,
		style.OutlineColor, style.OutlineWidth, style.ShadowDepth, style.MarginV))

	// events section
	sb.WriteString("[Events]\n")
	sb.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")
}

// full line text with the highlighted word recolored; word -1 renders the
// plain line
func (w *ASSWriter) dialogueText(entry *caption.Entry, word int) string {
	var sb strings.Builder
	for i, wd := range entry.Line.Words {
		text := wd.Text
		if i == 0 {
			text = strings.TrimLeft(text, " \t")
		}
		text = escapeASSText(text)
		if i == word {
			sb.WriteString(fmt.Sprintf("{\\1c%s}%s{\\1c%s}", asOverride(w.Style.HighlightColor), text, asOverride(w.Style.Color)))
		} else {
			sb.WriteString(text)
		}
	}
	return sb.String()
}

type span struct {
	start float64
	end   float64
}

// playback intervals between consecutive highlight-state changes
func timeSlices(plan *caption.Plan) []span {
	var bounds []float64
	for _, entry := range plan.Entries {
		bounds = append(bounds, entry.Line.Start, entry.Line.End)
		for _, w := range entry.Windows {
			if w.End > w.Start {
				bounds = append(bounds, w.Start, w.End)
			}
		}
	}
	sort.Float64s(bounds)

	var spans []span
	for i := 1; i < len(bounds); i++ {
		if bounds[i] > bounds[i-1] {
			spans = append(spans, span{bounds[i-1], bounds[i]})
		}
	}
	return spans
}

func midpoint(a, b float64) float64 {
	return a + (b-a)/2
}

// inline color overrides use &HBBGGRR& while style colors carry an alpha
// byte
func asOverride(color string) string {
	c := strings.TrimSuffix(strings.TrimPrefix(color, "&H"), "&")
	if len(c) == 8 {
		c = c[2:]
	}
	return "&H" + c + "&"
}

func escapeASSText(text string) string {
	text = strings.ReplaceAll(text, "\\", "\\\\")
	text = strings.ReplaceAll(text, "{", "\\{")
	text = strings.ReplaceAll(text, "}", "\\}")
	text = strings.ReplaceAll(text, "\n", "\\N")
	return text
}
