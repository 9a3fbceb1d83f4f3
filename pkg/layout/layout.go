// Package layout breaks a document into lines for a given width and
// answers geometric queries against the result.
//
// Coordinates are terminal cells in content space: x = 0 is the left edge
// of the content box and y = 0 the top of the first line. Callers apply
// padding and scrolling themselves.
package layout

import (
	"sort"

	"github.com/yaklabco/richview/pkg/span"
)

// Point is a position in cells.
type Point struct {
	X int
	Y int
}

// Rect is a rectangle in cells. Right and Bottom are exclusive.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Width returns the horizontal extent of r.
func (r Rect) Width() int { return r.Right - r.Left }

// Height returns the vertical extent of r.
func (r Rect) Height() int { return r.Bottom - r.Top }

// Offset returns r translated by (dx, dy).
func (r Rect) Offset(dx, dy int) Rect {
	return Rect{Left: r.Left + dx, Top: r.Top + dy, Right: r.Right + dx, Bottom: r.Bottom + dy}
}

// stop maps a text offset to the x position of its left edge.
type stop struct {
	offset int
	x      int
}

// Line is one laid out line.
type Line struct {
	// Start and End delimit the line's text. End excludes the newline
	// that terminated the line, if any.
	Start int
	End   int

	// Top is the first row of the line and Bottom the first row after it,
	// spacing included. Baseline is Top + Ascent.
	Top      int
	Baseline int
	Bottom   int

	Ascent  int
	Descent int

	// Width is the visible width, trailing spaces excluded.
	Width int

	// Block is the replacement span occupying the line, or nil for text.
	Block span.Replacement

	stops []stop
}

// Height returns the number of rows the line occupies, spacing included.
func (l Line) Height() int {
	return l.Bottom - l.Top
}

// IsBlock reports whether the line holds an inline block.
func (l Line) IsBlock() bool {
	return l.Block != nil
}

// Layout is the immutable result of laying out one document version at
// one width.
type Layout struct {
	lines        []Line
	contentWidth int
	height       int
	version      uint64
	style        Style
}

// LineCount returns the number of lines. Every layout has at least one.
func (l *Layout) LineCount() int {
	return len(l.lines)
}

// Line returns line i, clamped to the valid range.
func (l *Layout) Line(i int) Line {
	return l.lines[l.clampLine(i)]
}

// Lines returns all lines. The slice must not be modified.
func (l *Layout) Lines() []Line {
	return l.lines
}

// Height returns the content height in rows, padding excluded.
func (l *Layout) Height() int {
	return l.height
}

// ContentWidth returns the width lines were broken at.
func (l *Layout) ContentWidth() int {
	return l.contentWidth
}

// Width returns the widest line.
func (l *Layout) Width() int {
	widest := 0
	for _, line := range l.lines {
		widest = max(widest, line.Width)
	}
	return widest
}

// Version returns the document version the layout was computed from.
func (l *Layout) Version() uint64 {
	return l.version
}

// Style returns the normalized style the layout was computed with.
func (l *Layout) Style() Style {
	return l.style
}

// LineForVertical returns the line containing row y. Rows above the first
// line map to it, rows below the last line map to the last.
func (l *Layout) LineForVertical(y int) int {
	if y < 0 {
		return 0
	}
	i := sort.Search(len(l.lines), func(i int) bool {
		return l.lines[i].Bottom > y
	})
	return l.clampLine(i)
}

// LineForOffset returns the line containing text offset off.
func (l *Layout) LineForOffset(off int) int {
	i := sort.Search(len(l.lines), func(i int) bool {
		return l.lines[i].Start > off
	})
	return l.clampLine(i - 1)
}

// OffsetForHorizontal returns the text offset closest to column x on
// line. For a block line, any x inside the block maps to its start.
func (l *Layout) OffsetForHorizontal(line, x int) int {
	ln := l.lines[l.clampLine(line)]

	if ln.Block != nil {
		if x < ln.Width {
			return ln.Start
		}
		return ln.End
	}

	if len(ln.stops) == 0 || x <= 0 {
		return ln.Start
	}

	for i := 0; i+1 < len(ln.stops); i++ {
		left, right := ln.stops[i], ln.stops[i+1]
		if x < right.x {
			if x-left.x < right.x-x {
				return left.offset
			}
			return right.offset
		}
	}
	return ln.End
}

// PrimaryHorizontal returns the x position of the left edge of the
// character at offset off.
func (l *Layout) PrimaryHorizontal(off int) int {
	return l.HorizontalOnLine(l.LineForOffset(off), off)
}

// HorizontalOnLine returns the x position of offset off measured on line.
// Offsets outside the line are clamped to its ends.
func (l *Layout) HorizontalOnLine(line, off int) int {
	ln := l.lines[l.clampLine(line)]

	if ln.Block != nil {
		if off <= ln.Start {
			return 0
		}
		return ln.Width
	}

	x := 0
	for _, st := range ln.stops {
		if st.offset > off {
			break
		}
		x = st.x
	}
	return x
}

// LineBounds returns the rectangle covered by line i's visible content.
func (l *Layout) LineBounds(i int) Rect {
	ln := l.lines[l.clampLine(i)]
	return Rect{Left: 0, Top: ln.Top, Right: ln.Width, Bottom: ln.Bottom}
}

func (l *Layout) clampLine(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(l.lines) {
		return len(l.lines) - 1
	}
	return i
}
