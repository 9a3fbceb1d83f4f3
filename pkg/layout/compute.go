package layout

import (
	"math"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/yaklabco/richview/pkg/document"
	"github.com/yaklabco/richview/pkg/span"
)

// Compute lays out doc for availableWidth without caching. Most callers
// want Engine.Layout instead.
func Compute(doc *document.Document, availableWidth int, style Style) *Layout {
	style = style.normalized()
	contentWidth := style.ContentWidth(availableWidth)

	b := &lineBuilder{
		text:  doc.Text(),
		style: style,
		width: contentWidth,
	}
	b.build(blocksOf(doc))

	return &Layout{
		lines:        b.lines,
		contentWidth: contentWidth,
		height:       b.y,
		version:      doc.Version(),
		style:        style,
	}
}

// block is a replacement span and the text range it covers.
type block struct {
	span       span.Replacement
	start, end int
}

// blocksOf returns the non-overlapping replacement spans of doc in order.
func blocksOf(doc *document.Document) []block {
	if !doc.HasSpans() {
		return nil
	}

	var blocks []block
	lastEnd := 0
	for _, entry := range doc.Entries() {
		r, ok := entry.Span.(span.Replacement)
		if !ok || entry.Start >= entry.End || entry.Start < lastEnd {
			continue
		}
		blocks = append(blocks, block{span: r, start: entry.Start, end: entry.End})
		lastEnd = entry.End
	}
	return blocks
}

// lineBuilder fills lines greedily.
type lineBuilder struct {
	text  string
	style Style
	width int

	lines []Line
	y     int

	// current line state
	start int
	x     int
	stops []stop
	used  bool
}

func (b *lineBuilder) build(blocks []block) {
	pos := 0
	afterBlock := false

	for {
		next := len(b.text)
		var blk *block
		if len(blocks) > 0 && blocks[0].start < next {
			next = blocks[0].start
			blk = &blocks[0]
		}

		newline := strings.IndexByte(b.text[pos:next], '\n')
		switch {
		case newline >= 0:
			end := pos + newline
			b.run(pos, end)
			if !(afterBlock && end == b.start && !b.used) {
				b.finishText(end)
			}
			afterBlock = false
			pos = end + 1
			b.begin(pos)
		case blk != nil:
			b.run(pos, blk.start)
			if b.used || blk.start > b.start {
				b.finishText(blk.start)
			}
			b.placeBlock(*blk)
			blocks = blocks[1:]
			afterBlock = true
			pos = blk.end
			b.begin(pos)
		default:
			b.run(pos, next)
			if !(afterBlock && !b.used && b.start == len(b.text)) || len(b.lines) == 0 {
				b.finishText(len(b.text))
			}
			return
		}
	}
}

// run places the text in [from, to), which holds no newline.
func (b *lineBuilder) run(from, to int) {
	text := b.text[from:to]
	state := -1
	offset := from

	for len(text) > 0 {
		segment, rest, mustBreak, newState := uniseg.FirstLineSegmentInString(text, state)
		b.placeSegment(segment, offset)

		offset += len(segment)
		text, state = rest, newState
		if mustBreak && len(text) > 0 {
			b.finishText(offset)
			b.begin(offset)
		}
	}
}

// glyph is one grapheme cluster of a segment.
type glyph struct {
	offset int
	size   int
	width  int
	space  bool
	tab    bool
}

func (b *lineBuilder) glyphs(segment string, offset int) []glyph {
	var out []glyph
	state := -1
	for len(segment) > 0 {
		cluster, rest, width, newState := uniseg.FirstGraphemeClusterInString(segment, state)
		out = append(out, glyph{
			offset: offset,
			size:   len(cluster),
			width:  width,
			space:  strings.TrimSpace(cluster) == "",
			tab:    cluster == "\t",
		})
		offset += len(cluster)
		segment, state = rest, newState
	}
	return out
}

// placeSegment places one break opportunity's worth of text, moving it to
// a new line when its visible part does not fit.
func (b *lineBuilder) placeSegment(segment string, offset int) {
	glyphs := b.glyphs(segment, offset)

	visible := 0
	x := b.x
	for _, g := range glyphs {
		x += b.advance(g, x)
		if !g.space {
			visible = x - b.x
		}
	}

	if b.used && b.x+visible > b.width {
		b.finishText(offset)
		b.begin(offset)
	}

	for _, g := range glyphs {
		w := b.advance(g, b.x)
		if !g.space && b.used && b.x+w > b.width {
			// A word longer than the line breaks between graphemes.
			b.finishText(g.offset)
			b.begin(g.offset)
		}
		if g.space {
			w = min(w, max(b.width-b.x, 0))
		}
		b.stops = append(b.stops, stop{offset: g.offset, x: b.x})
		b.x += w
		b.used = true
	}
}

// advance returns the cells g occupies when placed at column x.
func (b *lineBuilder) advance(g glyph, x int) int {
	if g.tab {
		return b.style.TabWidth - x%b.style.TabWidth
	}
	return g.width
}

func (b *lineBuilder) begin(start int) {
	b.start = start
	b.x = 0
	b.stops = nil
	b.used = false
}

// finishText closes the current text line at end.
func (b *lineBuilder) finishText(end int) {
	stops := append(b.stops, stop{offset: end, x: b.x})

	width := 0
	for i := 0; i+1 < len(stops); i++ {
		if strings.TrimSpace(b.text[stops[i].offset:stops[i+1].offset]) != "" {
			width = stops[i+1].x
		}
	}

	lineHeight := b.style.LineHeight
	spacing := int(math.Round(float64(lineHeight)*(b.style.LineSpacingMult-1))) + b.style.LineSpacingAdd

	b.lines = append(b.lines, Line{
		Start:    b.start,
		End:      end,
		Top:      b.y,
		Baseline: b.y + lineHeight,
		Bottom:   b.y + lineHeight + max(spacing, 0),
		Ascent:   lineHeight,
		Width:    width,
		stops:    stops,
	})
	b.y = b.lines[len(b.lines)-1].Bottom
}

// placeBlock emits a line holding only blk. The block's height is all
// ascent so it sits on the baseline as one unbreakable unit.
func (b *lineBuilder) placeBlock(blk block) {
	width, height := blk.span.Size(b.width)
	if width <= 0 || height <= 0 {
		width = b.width
		height = width * b.style.AspectHeight / b.style.AspectWidth
	}
	width = min(width, b.width)
	height = max(height, 1)

	b.lines = append(b.lines, Line{
		Start:    blk.start,
		End:      blk.end,
		Top:      b.y,
		Baseline: b.y + height,
		Bottom:   b.y + height + max(b.style.LineSpacingAdd, 0),
		Ascent:   height,
		Width:    width,
		Block:    blk.span,
		stops:    []stop{{offset: blk.start, x: 0}, {offset: blk.end, x: width}},
	})
	b.y = b.lines[len(b.lines)-1].Bottom
}
