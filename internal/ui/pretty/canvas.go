package pretty

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"

	"github.com/yaklabco/richview/pkg/document"
	"github.com/yaklabco/richview/pkg/layout"
	"github.com/yaklabco/richview/pkg/span"
)

// minBoxSize is the smallest block that gets a bordered placeholder.
const minBoxSize = 3

// Canvas paints laid out documents as terminal rows.
type Canvas struct {
	styles *Styles
}

// NewCanvas creates a canvas using styles.
func NewCanvas(styles *Styles) *Canvas {
	if styles == nil {
		styles = NewStyles(false)
	}
	return &Canvas{styles: styles}
}

// Render paints l, which must have been computed from doc, one terminal
// row per layout row. Padding rows and columns are included so that row
// and column numbers match view coordinates.
func (c *Canvas) Render(doc *document.Document, l *layout.Layout) string {
	style := l.Style()
	indent := strings.Repeat(" ", style.PaddingLeft)

	rows := make([]string, 0, style.PaddingTop+l.Height()+style.PaddingBottom)
	for range style.PaddingTop {
		rows = append(rows, "")
	}

	for i, line := range l.Lines() {
		var body []string
		if line.IsBlock() {
			body = c.renderBlock(line)
		} else {
			body = c.renderTextLine(doc, l, i, line)
		}

		for row := range line.Height() {
			text := ""
			if row < len(body) {
				text = body[row]
			}
			rows = append(rows, strings.TrimRight(indent+text, " "))
		}
	}

	for range style.PaddingBottom {
		rows = append(rows, "")
	}

	return strings.Join(rows, "\n") + "\n"
}

// renderTextLine returns the rows of a text line. Text sits on the row
// above the baseline.
func (c *Canvas) renderTextLine(doc *document.Document, l *layout.Layout, index int, line layout.Line) []string {
	entries := doc.EntriesInRange(line.Start, line.End, document.All)

	var (
		out     strings.Builder
		run     strings.Builder
		current []span.Span
	)
	flush := func() {
		if run.Len() == 0 {
			return
		}
		out.WriteString(c.combine(current).Render(run.String()))
		run.Reset()
	}

	text := doc.Slice(line.Start, line.End)
	offset := line.Start
	state := -1
	for len(text) > 0 {
		cluster, rest, _, newState := uniseg.FirstGraphemeClusterInString(text, state)
		covering := spansAt(entries, offset)
		if !sameSpans(covering, current) {
			flush()
			current = covering
		}

		switch {
		case cluster == "\t" || strings.TrimSpace(cluster) == "":
			width := l.HorizontalOnLine(index, offset+len(cluster)) - l.HorizontalOnLine(index, offset)
			run.WriteString(strings.Repeat(" ", max(width, 0)))
		case cluster == document.ObjectReplacement:
			// A replacement span that did not get a line of its own.
		default:
			run.WriteString(cluster)
		}

		offset += len(cluster)
		text, state = rest, newState
	}
	flush()

	rows := make([]string, line.Baseline-line.Top)
	rows[len(rows)-1] = out.String()
	return rows
}

// renderBlock returns the rows of a media placeholder sized to the line's
// block.
func (c *Canvas) renderBlock(line layout.Line) []string {
	width, height := line.Width, line.Ascent
	label := MediaLabel(line.Block)

	if width < minBoxSize || height < minBoxSize {
		return []string{c.styles.Media.Render(truncateCells(label, width))}
	}

	box := c.styles.MediaBorder.
		Border(lipgloss.RoundedBorder()).
		Width(width - 2).
		Height(height - 2).
		MaxHeight(height).
		Render(c.styles.Media.Render(truncateCells(label, width-2)))
	return strings.Split(box, "\n")
}

// combine merges the styles of overlapping spans. Earlier spans win
// conflicting properties.
func (c *Canvas) combine(spans []span.Span) lipgloss.Style {
	combined := lipgloss.NewStyle()
	for _, s := range spans {
		combined = combined.Inherit(c.styles.ForSpan(s))
	}
	return combined
}

// MediaLabel returns the placeholder text shown for a media block.
func MediaLabel(r span.Replacement) string {
	switch v := r.(type) {
	case *span.YouTube:
		return "▶ YouTube " + v.ID
	case *span.Video:
		return "▶ " + v.URI
	default:
		return "▶ " + r.Kind().String()
	}
}

// spansAt returns the spans whose half-open range covers offset.
func spansAt(entries []document.Entry, offset int) []span.Span {
	var out []span.Span
	for _, entry := range entries {
		if entry.Start <= offset && offset < entry.End {
			out = append(out, entry.Span)
		}
	}
	return out
}

func sameSpans(a, b []span.Span) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// truncateCells cuts s to at most width terminal cells.
func truncateCells(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(s) <= width {
		return s
	}

	var out strings.Builder
	used := 0
	state := -1
	for len(s) > 0 {
		cluster, rest, w, newState := uniseg.FirstGraphemeClusterInString(s, state)
		if used+w > width {
			break
		}
		out.WriteString(cluster)
		used += w
		s, state = rest, newState
	}
	return out.String()
}
