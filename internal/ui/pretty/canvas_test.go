package pretty_test

import (
	"strings"
	"testing"

	"github.com/rivo/uniseg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richview/internal/ui/pretty"
	"github.com/yaklabco/richview/pkg/document"
	"github.com/yaklabco/richview/pkg/layout"
	"github.com/yaklabco/richview/pkg/span"
)

// sampleDocument returns "see docs", a blank line and a video block.
func sampleDocument() *document.Document {
	var b document.Builder
	b.WriteString("see ")
	b.Push(span.NewLink("https://example.com/docs"))
	b.WriteString("docs")
	b.Pop()
	b.WriteString("\n\n")
	b.Object(span.NewVideo("https://example.com/v.mp4"))
	return document.FromContent(b.Content())
}

func renderRows(t *testing.T, doc *document.Document, width int, style layout.Style) []string {
	t.Helper()
	out := pretty.NewCanvas(pretty.NewStyles(false)).Render(doc, layout.Compute(doc, width, style))
	require.True(t, strings.HasSuffix(out, "\n"))
	return strings.Split(strings.TrimSuffix(out, "\n"), "\n")
}

func TestCanvas_RendersTextAndBlock(t *testing.T) {
	t.Parallel()

	rows := renderRows(t, sampleDocument(), 32, layout.Style{})

	require.Len(t, rows, 20)
	assert.Equal(t, "see docs", rows[0])
	assert.Empty(t, rows[1])
	assert.True(t, strings.HasPrefix(rows[2], "╭"), rows[2])
	assert.True(t, strings.HasPrefix(rows[19], "╰"), rows[19])
	for _, row := range rows[2:] {
		assert.Equal(t, 32, uniseg.StringWidth(row), row)
	}
	assert.Contains(t, strings.Join(rows, "\n"), "▶ https://example.com/v.mp4")
}

func TestCanvas_Padding(t *testing.T) {
	t.Parallel()

	var b document.Builder
	b.WriteString("hello")
	doc := document.FromContent(b.Content())

	rows := renderRows(t, doc, 20, layout.Style{PaddingLeft: 2, PaddingTop: 1, PaddingBottom: 2})

	assert.Equal(t, []string{"", "  hello", "", ""}, rows)
}

func TestCanvas_ExpandsTabs(t *testing.T) {
	t.Parallel()

	var b document.Builder
	b.WriteString("a\tb")
	doc := document.FromContent(b.Content())

	rows := renderRows(t, doc, 20, layout.Style{TabWidth: 4})

	assert.Equal(t, []string{"a   b"}, rows)
}

func TestCanvas_LineSpacing(t *testing.T) {
	t.Parallel()

	var b document.Builder
	b.WriteString("one\ntwo")
	doc := document.FromContent(b.Content())

	rows := renderRows(t, doc, 20, layout.Style{LineSpacingAdd: 1})

	assert.Equal(t, []string{"one", "", "two", ""}, rows)
}

func TestCanvas_SmallBlockFallsBackToLabel(t *testing.T) {
	t.Parallel()

	var b document.Builder
	b.Object(span.NewYouTube("abc123"))
	doc := document.FromContent(b.Content())

	rows := renderRows(t, doc, 2, layout.Style{})

	require.NotEmpty(t, rows)
	assert.Equal(t, "▶", rows[0])
}

func TestMediaLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "▶ YouTube abc", pretty.MediaLabel(span.NewYouTube("abc")))
	assert.Equal(t, "▶ https://example.com/v.mp4", pretty.MediaLabel(span.NewVideo("https://example.com/v.mp4")))
}
