package pretty

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/yaklabco/richview/pkg/document"
	"github.com/yaklabco/richview/pkg/layout"
	"github.com/yaklabco/richview/pkg/span"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats document statistics as a single line.
// Example: "3 lines, 24 rows, 5 spans (2 interactive)".
func (s *Styles) FormatSummaryOneLine(doc *document.Document, l *layout.Layout) string {
	spans := doc.Spans()
	interactive := lo.CountBy(spans, span.IsInteractive)

	parts := []string{
		plural(l.LineCount(), "line", "lines"),
		plural(l.Height(), "row", "rows"),
	}

	spanPart := plural(len(spans), "span", "spans")
	if interactive > 0 {
		spanPart += " (" + s.Success.Render(fmt.Sprintf("%d interactive", interactive)) + ")"
	}
	parts = append(parts, spanPart)

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats document statistics as a summary block with a
// count per span kind.
func (s *Styles) FormatSummary(doc *document.Document, l *layout.Layout) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Characters:  " + s.SummaryValue.Render(strconv.Itoa(doc.Len())) + "\n")
	builder.WriteString("  Lines:       " + s.SummaryValue.Render(strconv.Itoa(l.LineCount())) + "\n")
	builder.WriteString("  Rows:        " + s.SummaryValue.Render(strconv.Itoa(l.Height())) + "\n")
	builder.WriteString("  Width:       " + s.SummaryValue.Render(strconv.Itoa(l.ContentWidth())) + "\n")

	counts := lo.CountValuesBy(doc.Spans(), func(sp span.Span) string {
		return sp.Kind().String()
	})
	if len(counts) > 0 {
		builder.WriteString("\n")
		kinds := lo.Keys(counts)
		sort.Strings(kinds)
		for _, kind := range kinds {
			fmt.Fprintf(&builder, "  %-12s %s\n", kind+":", s.SummaryValue.Render(strconv.Itoa(counts[kind])))
		}
	}

	return builder.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
