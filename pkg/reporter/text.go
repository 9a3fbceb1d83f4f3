package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/richview/internal/ui/pretty"
	"github.com/yaklabco/richview/pkg/document"
	"github.com/yaklabco/richview/pkg/span"
)

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	r.reportClassifications(result.Classifications)

	switch {
	case result.Hit != nil:
		r.reportHit(result)
	case result.Document != nil && result.Layout != nil:
		if r.opts.ShowCanvas {
			fmt.Fprint(r.bw, pretty.NewCanvas(r.styles).Render(result.Document, result.Layout))
		}
		if r.opts.ShowSummary {
			summary := r.styles.FormatSummaryOneLine(result.Document, result.Layout)
			fmt.Fprintln(r.bw, r.styles.Dim.Render(strings.TrimSuffix(summary, "\n")))
		}
	}

	return interactiveCount(result), nil
}

func (r *TextReporter) reportClassifications(classifications []Classification) {
	for _, c := range classifications {
		if !c.Matched {
			fmt.Fprintf(r.bw, "%s %s\n",
				r.styles.Unsupported.Render(c.Link),
				r.styles.Warning.Render("unsupported"),
			)
			continue
		}

		fmt.Fprintf(r.bw, "%s %s %s\n    %s\n",
			r.styles.Link.Render(c.Link),
			r.styles.Success.Render(c.Reference.Kind.String()),
			r.styles.Bold.Render(c.Reference.ID),
			r.styles.Dim.Render(c.Reference.URL),
		)
	}
}

func (r *TextReporter) reportHit(result *Result) {
	hit := result.Hit
	fmt.Fprintf(r.bw, "(%d, %d) -> line %d, offset %d\n",
		hit.Point.X, hit.Point.Y, hit.Result.Line+1, hit.Result.Offset)

	if len(hit.Result.Spans) == 0 {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("  no interactive span"))
		return
	}

	for _, s := range hit.Result.Spans {
		fmt.Fprintf(r.bw, "  %s\n", r.formatSpan(result.Document, s))
	}
	for _, action := range hit.Actions {
		fmt.Fprintf(r.bw, "  %s %s\n", r.styles.Success.Render("->"), action)
	}
}

// formatSpan describes s as "kind start-end target" with the span's text
// styled like the span itself.
func (r *TextReporter) formatSpan(doc *document.Document, s span.Span) string {
	line := s.Kind().String()
	if doc != nil {
		if start, end, ok := doc.RangeOf(s); ok {
			line += fmt.Sprintf(" %d-%d %s", start, end, r.styles.ForSpan(s).Render(doc.Slice(start, end)))
		}
	}
	if target := pretty.SpanTarget(s); target != "" {
		line += " " + r.styles.Dim.Render(target)
	}
	return line
}
