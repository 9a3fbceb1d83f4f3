package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/richview/internal/ui/pretty"
	"github.com/yaklabco/richview/pkg/document"
	"github.com/yaklabco/richview/pkg/layout"
	"github.com/yaklabco/richview/pkg/span"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()
	l := layout.Compute(doc, 32, layout.Style{})

	got := pretty.NewStyles(false).FormatSummaryOneLine(doc, l)

	assert.Equal(t, "3 lines, 20 rows, 2 spans (2 interactive)\n", got)
}

func TestFormatSummaryOneLine_NoInteractive(t *testing.T) {
	t.Parallel()

	var b document.Builder
	b.Push(span.NewStyle(span.StyleBold))
	b.WriteString("bold")
	b.Pop()
	doc := document.FromContent(b.Content())
	l := layout.Compute(doc, 32, layout.Style{})

	got := pretty.NewStyles(false).FormatSummaryOneLine(doc, l)

	assert.Equal(t, "1 line, 1 row, 1 span\n", got)
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()
	l := layout.Compute(doc, 32, layout.Style{})

	got := pretty.NewStyles(false).FormatSummary(doc, l)

	assert.Contains(t, got, "Summary")
	assert.Contains(t, got, "Lines:       3")
	assert.Contains(t, got, "Rows:        20")
	assert.Contains(t, got, "Width:       32")
	assert.Contains(t, got, "link:        1")
	assert.Contains(t, got, "video:       1")
}
