package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/samber/lo"
	"golang.org/x/term"

	"github.com/yaklabco/richview/internal/ui/pretty"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableReporter formats results as a styled table, one row per span or
// link.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	termWidth := opts.TermWidth
	if termWidth <= 0 {
		termWidth = getTerminalWidth(opts.Writer)
	}

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, termWidth),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	rows := tableRows(result)
	if len(rows) == 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("No spans."))
		return 0, nil
	}

	fmt.Fprint(r.bw, r.formatter.FormatTable(rows))

	if r.opts.ShowSummary && result.Hit == nil && result.Document != nil && result.Layout != nil {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Document, result.Layout))
	}

	return interactiveCount(result), nil
}

// tableRows lists classifications first, then the spans of the document,
// narrowed to the hit spans when result holds a hit test.
func tableRows(result *Result) []pretty.TableRow {
	if result == nil {
		return nil
	}

	rows := lo.Map(result.Classifications, func(c Classification, _ int) pretty.TableRow {
		return pretty.TableRow{
			Kind:        c.Reference.Kind.String(),
			Text:        c.Link,
			Target:      c.Reference.URL,
			Interactive: c.Matched,
		}
	})

	if result.Document == nil {
		return rows
	}

	spanRows := pretty.SpanRows(result.Document, result.Layout)
	if result.Hit != nil {
		spanRows = lo.Filter(spanRows, func(row pretty.TableRow, _ int) bool {
			return lo.Contains(result.Hit.Result.Spans, row.Span)
		})
	}
	return append(rows, spanRows...)
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
