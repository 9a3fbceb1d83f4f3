package reporter

import (
	"bufio"
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/samber/lo"

	"github.com/yaklabco/richview/internal/ui/pretty"
)

// SummaryReporter formats results as aggregate counts.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	if len(result.Classifications) > 0 {
		r.reportClassifications(result.Classifications)
	}

	if result.Document != nil && result.Layout != nil {
		fmt.Fprint(r.bw, r.styles.FormatSummary(result.Document, result.Layout))
	}

	return interactiveCount(result), nil
}

func (r *SummaryReporter) reportClassifications(classifications []Classification) {
	counts := lo.CountValuesBy(classifications, func(c Classification) string {
		return c.Reference.Kind.String()
	})

	kinds := lo.Keys(counts)
	sort.Strings(kinds)

	fmt.Fprintln(r.bw, r.styles.SummaryTitle.Render("Links"))
	for _, kind := range kinds {
		fmt.Fprintf(r.bw, "  %-12s %s\n", kind+":", r.styles.SummaryValue.Render(strconv.Itoa(counts[kind])))
	}
}
