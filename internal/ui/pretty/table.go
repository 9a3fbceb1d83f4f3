package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"

	"github.com/yaklabco/richview/pkg/document"
	"github.com/yaklabco/richview/pkg/layout"
	"github.com/yaklabco/richview/pkg/span"
)

// Table formatting constants.
const (
	interactiveSymbol = "*"
	tablePadding      = 2
	tableColumnCount  = 5 // KIND, RANGE, LINE, TEXT, TARGET
	markerColumnWidth = 1
	minKindWidth      = 6
	minRangeWidth     = 7
	minLineWidth      = 4
	minTextWidth      = 12
	minTargetWidth    = 12
	heavySeparator    = "="
	defaultTermWidth  = 100
)

// TableRow represents a single span in the span table.
type TableRow struct {
	Kind        string
	Range       string
	Line        string
	Text        string
	Target      string
	Interactive bool
	Span        span.Span
}

// SpanRows builds one table row per span of doc. The LINE column holds
// the 1-based first line of the span in l, or is empty when l is nil.
func SpanRows(doc *document.Document, l *layout.Layout) []TableRow {
	entries := doc.Entries()
	rows := make([]TableRow, 0, len(entries))
	for _, entry := range entries {
		row := TableRow{
			Kind:        entry.Span.Kind().String(),
			Range:       fmt.Sprintf("%d-%d", entry.Start, entry.End),
			Text:        strings.Join(strings.Fields(doc.Slice(entry.Start, entry.End)), " "),
			Target:      SpanTarget(entry.Span),
			Interactive: span.IsInteractive(entry.Span),
			Span:        entry.Span,
		}
		if style, ok := entry.Span.(*span.Style); ok {
			row.Kind = "style:" + style.Style.String()
		}
		if l != nil {
			row.Line = strconv.Itoa(l.LineForOffset(entry.Start) + 1)
		}
		rows = append(rows, row)
	}
	return rows
}

// SpanTarget describes where a span leads: a URL for clickable spans, the
// media URI for videos, the language for code.
func SpanTarget(s span.Span) string {
	switch v := s.(type) {
	case span.Clickable:
		return v.Target()
	case *span.Video:
		return v.URI
	case *span.Style:
		if v.Style == span.StyleHeading && v.Level > 0 {
			return fmt.Sprintf("h%d", v.Level)
		}
		return v.Language
	default:
		return ""
	}
}

// TableFormatter formats spans as a styled table.
type TableFormatter struct {
	styles    *Styles
	termWidth int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:    styles,
		termWidth: termWidth,
	}
}

type columnWidths struct {
	kind   int
	rng    int
	line   int
	text   int
	target int
}

// FormatTable formats rows as a styled table. Interactive spans are marked.
func (t *TableFormatter) FormatTable(rows []TableRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.styles.TableHeader.Render(fmt.Sprintf(" %-*s  %-*s  %-*s  %-*s  %-*s",
		widths.kind, "KIND",
		widths.rng, "RANGE",
		widths.line, "LINE",
		widths.text, "TEXT",
		widths.target, "TARGET",
	)))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")
	builder.WriteString(t.styles.Dim.Render(fmt.Sprintf(" %s = interactive", interactiveSymbol)))
	builder.WriteString("\n")

	return builder.String()
}

// calculateColumnWidths determines column widths from content, shrinking
// the text and target columns to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		kind:   minKindWidth,
		rng:    minRangeWidth,
		line:   minLineWidth,
		text:   minTextWidth,
		target: minTargetWidth,
	}

	for _, row := range rows {
		widths.kind = max(widths.kind, uniseg.StringWidth(row.Kind))
		widths.rng = max(widths.rng, uniseg.StringWidth(row.Range))
		widths.line = max(widths.line, uniseg.StringWidth(row.Line))
		widths.text = max(widths.text, uniseg.StringWidth(row.Text))
		widths.target = max(widths.target, uniseg.StringWidth(row.Target))
	}

	total := t.calculateTotalWidth(widths)
	if total > t.termWidth {
		excess := total - t.termWidth
		reduced := max(minTextWidth, widths.text-excess)
		excess -= widths.text - reduced
		widths.text = reduced

		if excess > 0 {
			widths.target = max(minTargetWidth, widths.target-excess)
		}
	}

	return widths
}

// calculateTotalWidth calculates the total table width from column widths.
func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.kind + widths.rng + widths.line + widths.text + widths.target +
		tablePadding*(tableColumnCount-1) + markerColumnWidth
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, t.calculateTotalWidth(widths)))
}

// formatRow formats a single table row styled like the span it lists.
func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	marker := " "
	if row.Interactive {
		marker = interactiveSymbol
	}

	style := lipgloss.NewStyle()
	if row.Span != nil {
		style = t.styles.ForSpan(row.Span)
	}

	return fmt.Sprintf("%s%s  %s  %s  %s  %s",
		marker,
		padCells(row.Kind, widths.kind),
		padCells(row.Range, widths.rng),
		padCells(row.Line, widths.line),
		style.Render(padCells(truncateString(row.Text, widths.text), widths.text)),
		truncateString(row.Target, widths.target),
	)
}

// padCells right-pads s with spaces to width cells.
func padCells(s string, width int) string {
	return s + strings.Repeat(" ", max(width-uniseg.StringWidth(s), 0))
}

// truncateString truncates a string to maxLen cells, adding "..." if truncated.
func truncateString(str string, maxLen int) string {
	if uniseg.StringWidth(str) <= maxLen {
		return str
	}
	if maxLen <= 3 {
		return truncateCells(str, maxLen)
	}
	return truncateCells(str, maxLen-3) + "..."
}
