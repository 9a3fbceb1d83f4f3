package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/richview/internal/ui/pretty"
	"github.com/yaklabco/richview/pkg/document"
	"github.com/yaklabco/richview/pkg/hittest"
	"github.com/yaklabco/richview/pkg/layout"
	"github.com/yaklabco/richview/pkg/span"
)

// jsonVersion is the version of the JSON output schema.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version         string               `json:"version"`
	Source          string               `json:"source,omitempty"`
	Classifications []JSONClassification `json:"classifications,omitempty"`
	Document        *JSONDocument        `json:"document,omitempty"`
	Hit             *JSONHit             `json:"hit,omitempty"`
}

// JSONClassification represents a single classified link.
type JSONClassification struct {
	Link    string `json:"link"`
	Matched bool   `json:"matched"`
	Kind    string `json:"kind"`
	ID      string `json:"id,omitempty"`
	URL     string `json:"url,omitempty"`
}

// JSONDocument describes a document and, when laid out, its metrics.
type JSONDocument struct {
	Length int        `json:"length"`
	Lines  int        `json:"lines,omitempty"`
	Height int        `json:"height,omitempty"`
	Width  int        `json:"width,omitempty"`
	Spans  []JSONSpan `json:"spans"`
}

// JSONSpan represents a single span.
type JSONSpan struct {
	Kind        string     `json:"kind"`
	Style       string     `json:"style,omitempty"`
	Start       int        `json:"start"`
	End         int        `json:"end"`
	Text        string     `json:"text,omitempty"`
	Target      string     `json:"target,omitempty"`
	Interactive bool       `json:"interactive"`
	Line        int        `json:"line,omitempty"`
	Rect        *JSONRect  `json:"rect,omitempty"`
	Anchor      *JSONPoint `json:"anchor,omitempty"`
}

// JSONRect is a rectangle in view cells. Right and Bottom are exclusive.
type JSONRect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

// JSONPoint is a point in cells.
type JSONPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// JSONHit is a hit test result.
type JSONHit struct {
	View    JSONPoint  `json:"view"`
	Content JSONPoint  `json:"content"`
	Line    int        `json:"line"`
	Offset  int        `json:"offset"`
	Spans   []JSONSpan `json:"spans"`
	Actions []string   `json:"actions,omitempty"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := buildJSONOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return interactiveCount(result), nil
}

func buildJSONOutput(result *Result) *JSONOutput {
	output := &JSONOutput{Version: jsonVersion}
	if result == nil {
		return output
	}

	output.Source = result.Source

	for _, c := range result.Classifications {
		output.Classifications = append(output.Classifications, JSONClassification{
			Link:    c.Link,
			Matched: c.Matched,
			Kind:    c.Reference.Kind.String(),
			ID:      c.Reference.ID,
			URL:     c.Reference.URL,
		})
	}

	doc, l := result.Document, result.Layout
	if doc == nil {
		return output
	}

	if result.Hit != nil {
		hit := result.Hit
		output.Hit = &JSONHit{
			View:    JSONPoint{X: hit.Point.X, Y: hit.Point.Y},
			Content: JSONPoint{X: hit.Result.Point.X, Y: hit.Result.Point.Y},
			Line:    hit.Result.Line + 1,
			Offset:  hit.Result.Offset,
			Spans:   make([]JSONSpan, 0, len(hit.Result.Spans)),
			Actions: hit.Actions,
		}
		for _, s := range hit.Result.Spans {
			if start, end, ok := doc.RangeOf(s); ok {
				output.Hit.Spans = append(output.Hit.Spans, jsonSpan(doc, l, document.Entry{Span: s, Start: start, End: end}))
			}
		}
		return output
	}

	output.Document = &JSONDocument{
		Length: doc.Len(),
		Spans:  make([]JSONSpan, 0, len(doc.Entries())),
	}
	if l != nil {
		output.Document.Lines = l.LineCount()
		output.Document.Height = l.Height()
		output.Document.Width = l.ContentWidth()
	}
	for _, entry := range doc.Entries() {
		output.Document.Spans = append(output.Document.Spans, jsonSpan(doc, l, entry))
	}

	return output
}

// jsonSpan describes entry. Interactive spans of a laid out document carry
// their view rectangle and popover anchor.
func jsonSpan(doc *document.Document, l *layout.Layout, entry document.Entry) JSONSpan {
	out := JSONSpan{
		Kind:        entry.Span.Kind().String(),
		Start:       entry.Start,
		End:         entry.End,
		Text:        doc.Slice(entry.Start, entry.End),
		Interactive: span.IsInteractive(entry.Span),
	}
	if style, ok := entry.Span.(*span.Style); ok {
		out.Style = style.Style.String()
	}
	out.Target = pretty.SpanTarget(entry.Span)

	if l == nil {
		return out
	}

	out.Line = l.LineForOffset(entry.Start) + 1
	if !out.Interactive {
		return out
	}

	tester := hittest.Tester{Padding: hittest.InsetsOf(l.Style())}
	rect, anchor, err := tester.SpanScreenRect(entry.Span, l, doc, layout.Point{})
	if err == nil {
		out.Rect = &JSONRect{Left: rect.Left, Top: rect.Top, Right: rect.Right, Bottom: rect.Bottom}
		out.Anchor = &JSONPoint{X: anchor.X, Y: anchor.Y}
	}
	return out
}
