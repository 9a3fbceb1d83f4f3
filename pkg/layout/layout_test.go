package layout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richview/pkg/document"
	"github.com/yaklabco/richview/pkg/layout"
	"github.com/yaklabco/richview/pkg/span"
)

// badge is a replacement span with a fixed size.
type badge struct {
	span.Link

	width, height int
	asked         []int
}

func (b *badge) Size(availableWidth int) (int, int) {
	b.asked = append(b.asked, availableWidth)
	return b.width, b.height
}

func textDoc(text string) *document.Document {
	return document.FromContent(document.Content{Text: text})
}

func starts(l *layout.Layout) []int {
	out := make([]int, 0, l.LineCount())
	for _, line := range l.Lines() {
		out = append(out, line.Start)
	}
	return out
}

func TestCompute_Wrapping(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name       string
		text       string
		width      int
		wantStarts []int
		wantHeight int
	}

	tests := []testCase{
		{name: "fits", text: "hello world", width: 80, wantStarts: []int{0}, wantHeight: 1},
		{name: "wraps at space", text: "hello world foo", width: 11, wantStarts: []int{0, 12}, wantHeight: 2},
		{name: "hard breaks", text: "a\nb", width: 80, wantStarts: []int{0, 2}, wantHeight: 2},
		{name: "trailing newline", text: "a\n", width: 80, wantStarts: []int{0, 2}, wantHeight: 2},
		{name: "overlong word", text: "abcdefghij", width: 4, wantStarts: []int{0, 4, 8}, wantHeight: 3},
		{name: "empty", text: "", width: 80, wantStarts: []int{0}, wantHeight: 1},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			l := layout.Compute(textDoc(testCase.text), testCase.width, layout.Style{})
			assert.Equal(t, testCase.wantStarts, starts(l))
			assert.Equal(t, testCase.wantHeight, l.Height())
		})
	}
}

func TestCompute_LineWidthExcludesTrailingSpace(t *testing.T) {
	t.Parallel()

	l := layout.Compute(textDoc("hello world foo"), 11, layout.Style{})
	require.Equal(t, 2, l.LineCount())

	first := l.Line(0)
	assert.Equal(t, 12, first.End)
	assert.Equal(t, 11, first.Width)
	assert.Equal(t, 3, l.Line(1).Width)
	assert.Equal(t, 11, l.Width())
}

func TestCompute_Padding(t *testing.T) {
	t.Parallel()

	style := layout.Style{PaddingLeft: 2, PaddingRight: 3}
	l := layout.Compute(textDoc("hello world foo"), 16, style)

	assert.Equal(t, 11, l.ContentWidth())
	assert.Equal(t, []int{0, 12}, starts(l))
}

func TestCompute_VideoOccupiesItsOwnLine(t *testing.T) {
	t.Parallel()

	video := span.NewVideo("https://example.com/v.mp4")

	var b document.Builder
	b.WriteString("intro\n\n")
	b.Object(video)
	b.WriteString("\n\nafter")
	doc := document.FromContent(b.Content())

	l := layout.Compute(doc, 36, layout.Style{PaddingLeft: 2, PaddingRight: 2})
	require.Equal(t, 5, l.LineCount())

	block := l.Line(2)
	require.True(t, block.IsBlock())
	assert.Same(t, video, block.Block)
	assert.Equal(t, 7, block.Start)
	assert.Equal(t, 7+len(document.ObjectReplacement), block.End)
	assert.Equal(t, 32, block.Width)
	assert.Equal(t, 18, block.Ascent)
	assert.Equal(t, 0, block.Descent)
	assert.Equal(t, block.Top+18, block.Baseline)
	assert.Equal(t, 2, block.Top)

	assert.Equal(t, 22, l.Height())
	assert.Equal(t, 2, l.LineForVertical(10))
	assert.Equal(t, 7, l.OffsetForHorizontal(2, 5))
	assert.Equal(t, 4, l.LineForOffset(13))
}

func TestCompute_ReplacementSizeCallback(t *testing.T) {
	t.Parallel()

	custom := &badge{width: 10, height: 3}

	var b document.Builder
	b.WriteString("x")
	b.Object(custom)
	b.WriteString("y")
	doc := document.FromContent(b.Content())

	l := layout.Compute(doc, 40, layout.Style{})
	require.Equal(t, 3, l.LineCount())
	assert.Equal(t, []int{40}, custom.asked)

	block := l.Line(1)
	assert.Equal(t, 10, block.Width)
	assert.Equal(t, 3, block.Ascent)
	assert.Equal(t, 5, l.Height())
}

func TestCompute_ReplacementFallsBackToAspect(t *testing.T) {
	t.Parallel()

	var b document.Builder
	b.Object(&badge{})
	doc := document.FromContent(b.Content())

	l := layout.Compute(doc, 32, layout.Style{})
	require.Equal(t, 1, l.LineCount())
	assert.Equal(t, 32, l.Line(0).Width)
	assert.Equal(t, 18, l.Line(0).Ascent)
}

func TestLayout_Offsets(t *testing.T) {
	t.Parallel()

	l := layout.Compute(textDoc("hello world"), 80, layout.Style{})

	assert.Equal(t, 0, l.OffsetForHorizontal(0, -3))
	assert.Equal(t, 0, l.OffsetForHorizontal(0, 0))
	assert.Equal(t, 4, l.OffsetForHorizontal(0, 4))
	assert.Equal(t, 11, l.OffsetForHorizontal(0, 100))
	assert.Equal(t, 6, l.PrimaryHorizontal(6))
	assert.Equal(t, 11, l.PrimaryHorizontal(11))
	assert.Equal(t, 0, l.LineForOffset(11))
}

func TestLayout_WideAndTab(t *testing.T) {
	t.Parallel()

	wide := layout.Compute(textDoc("日本"), 80, layout.Style{})
	assert.Equal(t, 4, wide.Width())
	assert.Equal(t, 2, wide.PrimaryHorizontal(3))

	tab := layout.Compute(textDoc("\tx"), 80, layout.Style{TabWidth: 4})
	assert.Equal(t, 4, tab.PrimaryHorizontal(1))
	assert.Equal(t, 5, tab.Width())
}

func TestLayout_Vertical(t *testing.T) {
	t.Parallel()

	l := layout.Compute(textDoc("a\nb"), 80, layout.Style{LineSpacingAdd: 1})

	assert.Equal(t, 4, l.Height())
	assert.Equal(t, 0, l.LineForVertical(-5))
	assert.Equal(t, 0, l.LineForVertical(1))
	assert.Equal(t, 1, l.LineForVertical(2))
	assert.Equal(t, 1, l.LineForVertical(100))

	bounds := l.LineBounds(1)
	assert.Equal(t, layout.Rect{Left: 0, Top: 2, Right: 1, Bottom: 4}, bounds)
}

func TestEngine_Caches(t *testing.T) {
	t.Parallel()

	engine := layout.NewEngine()
	doc := textDoc("some text")
	style := layout.Style{}

	first := engine.Layout(doc, 40, style)
	second := engine.Layout(doc, 40, style)
	assert.Same(t, first, second)
	assert.Equal(t, 1, engine.Computations())

	engine.Layout(doc, 41, style)
	assert.Equal(t, 2, engine.Computations())

	doc.SetText(document.Content{Text: "other"})
	engine.Layout(doc, 41, style)
	assert.Equal(t, 3, engine.Computations())

	engine.Layout(doc, 41, layout.Style{PaddingLeft: 1})
	assert.Equal(t, 4, engine.Computations())

	engine.Layout(textDoc("other"), 41, layout.Style{PaddingLeft: 1})
	assert.Equal(t, 5, engine.Computations())
}

func TestEngine_Invalidate(t *testing.T) {
	t.Parallel()

	engine := layout.NewEngine()
	doc := textDoc("text")

	assert.Nil(t, engine.Current())
	l := engine.Layout(doc, 10, layout.Style{})
	assert.Same(t, l, engine.Current())

	engine.Invalidate()
	assert.Nil(t, engine.Current())

	engine.Layout(doc, 10, layout.Style{})
	assert.Equal(t, 2, engine.Computations())
}

func TestDefaultStyle(t *testing.T) {
	t.Parallel()

	style := layout.DefaultStyle()
	assert.Equal(t, layout.DefaultLineHeight, style.LineHeight)
	assert.Equal(t, layout.DefaultTabWidth, style.TabWidth)
	assert.Equal(t, span.AspectWidth, style.AspectWidth)
	assert.Equal(t, span.AspectHeight, style.AspectHeight)
	assert.InDelta(t, 1.0, style.LineSpacingMult, 0)
	assert.Equal(t, 1, style.ContentWidth(0))
}
