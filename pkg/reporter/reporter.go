// Package reporter writes the results of richview commands: link
// classifications, laid out documents and hit tests.
package reporter

import (
	"context"

	"github.com/samber/lo"

	"github.com/yaklabco/richview/pkg/document"
	"github.com/yaklabco/richview/pkg/embed"
	"github.com/yaklabco/richview/pkg/hittest"
	"github.com/yaklabco/richview/pkg/layout"
	"github.com/yaklabco/richview/pkg/span"
)

// Reporter formats and writes command results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of interactive items reported and any write
	// errors.
	Report(ctx context.Context, result *Result) (int, error)
}

// Result is the output of a single command. Any combination of the
// sections may be set.
type Result struct {
	// Source names the input, usually a file path.
	Source string

	Classifications []Classification

	// Document and Layout describe a rendered document. Layout may be nil
	// when only spans are reported.
	Document *document.Document
	Layout   *layout.Layout

	// Hit is a hit test against Document and Layout.
	Hit *Hit
}

// Classification is the outcome of classifying one link.
type Classification struct {
	Link      string
	Reference embed.Reference
	Matched   bool
}

// Hit is a hit test at a view point.
type Hit struct {
	Point  layout.Point
	Result hittest.Result

	// Actions lists what a tap at Point did, such as "open <url>", when
	// the tap was simulated.
	Actions []string
}

// Classify classifies every link with c.
func Classify(c *embed.Classifier, links []string) []Classification {
	out := make([]Classification, 0, len(links))
	for _, link := range links {
		ref, ok := c.Classify(link)
		out = append(out, Classification{Link: link, Reference: ref, Matched: ok})
	}
	return out
}

// interactiveCount counts the interactive items in result.
func interactiveCount(result *Result) int {
	if result == nil {
		return 0
	}

	total := lo.CountBy(result.Classifications, func(c Classification) bool {
		return c.Matched
	})
	if result.Hit != nil {
		total += len(result.Hit.Result.Spans)
	} else if result.Document != nil {
		total += lo.CountBy(result.Document.Spans(), span.IsInteractive)
	}
	return total
}

// New creates the Reporter for opts.Format, writing to stdout when
// opts.Writer is nil.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format, err := ParseFormat(string(opts.Format))
	if err != nil {
		return nil, err
	}
	entry, _ := lookupFormat(format)
	return entry.build(opts), nil
}
