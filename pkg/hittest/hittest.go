// Package hittest maps view coordinates to text offsets and the spans
// covering them, and spans back to screen rectangles.
package hittest

import (
	"errors"

	"github.com/yaklabco/richview/pkg/document"
	"github.com/yaklabco/richview/pkg/layout"
	"github.com/yaklabco/richview/pkg/span"
)

// Sentinel errors.
var (
	// ErrNoLayout is returned before the first measurement. Callers fall
	// back to default touch handling.
	ErrNoLayout = errors.New("no layout available")

	// ErrSpanNotFound is returned when a span does not belong to the document.
	ErrSpanNotFound = errors.New("span not in document")
)

// Insets is the padding around the content box.
type Insets struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// InsetsOf returns the padding of a layout style.
func InsetsOf(style layout.Style) Insets {
	return Insets{
		Left:   style.PaddingLeft,
		Top:    style.PaddingTop,
		Right:  style.PaddingRight,
		Bottom: style.PaddingBottom,
	}
}

// Result is the outcome of a hit test.
type Result struct {
	// Point is the touch in content coordinates.
	Point layout.Point

	// Line is the line under the touch.
	Line int

	// Offset is the text offset under the touch.
	Offset int

	// Spans are the interactive spans covering Offset, in document order.
	Spans []span.Span
}

// Tester translates view coordinates using the view's padding and scroll
// position. The zero Tester has no padding and no scroll.
type Tester struct {
	Padding Insets
	Scroll  layout.Point

	// Filter selects the spans reported. Nil means document.Interactive.
	Filter document.Filter
}

// ToContent converts a view point to content coordinates.
func (t Tester) ToContent(p layout.Point) layout.Point {
	return layout.Point{
		X: p.X - t.Padding.Left + t.Scroll.X,
		Y: p.Y - t.Padding.Top + t.Scroll.Y,
	}
}

// HitTest resolves the view point p against l and doc. It does not modify
// either, so repeated calls give identical results.
func (t Tester) HitTest(l *layout.Layout, doc *document.Document, p layout.Point) (Result, error) {
	if l == nil {
		return Result{}, ErrNoLayout
	}

	content := t.ToContent(p)
	line := l.LineForVertical(content.Y)
	offset := l.OffsetForHorizontal(line, content.X)

	filter := t.Filter
	if filter == nil {
		filter = document.Interactive
	}

	return Result{
		Point:  content,
		Line:   line,
		Offset: offset,
		Spans:  doc.SpansInRange(offset, offset, filter),
	}, nil
}

// HitTest resolves p with a zero Tester.
func HitTest(l *layout.Layout, doc *document.Document, p layout.Point) (Result, error) {
	return Tester{}.HitTest(l, doc, p)
}

// SpanScreenRect returns the on-screen rectangle of s and the point to
// anchor a popover at, relative to viewOrigin.
//
// A span whose start and end offsets fall on different lines is reported
// by its first line only, from the start of the span to the end of that
// line, and anchored at the bottom left of that rectangle. A single-line span is anchored at its
// bottom center.
func (t Tester) SpanScreenRect(s span.Span, l *layout.Layout, doc *document.Document, viewOrigin layout.Point) (layout.Rect, layout.Point, error) {
	if l == nil {
		return layout.Rect{}, layout.Point{}, ErrNoLayout
	}

	start, end, ok := doc.RangeOf(s)
	if !ok {
		return layout.Rect{}, layout.Point{}, ErrSpanNotFound
	}

	startLine := l.LineForOffset(start)
	endLine := l.LineForOffset(end)
	line := l.Line(startLine)
	multiLine := startLine != endLine

	left := l.PrimaryHorizontal(start)
	right := line.Width
	if !multiLine {
		right = l.HorizontalOnLine(startLine, end)
	}
	if line.IsBlock() {
		left, right = 0, line.Width
	}
	right = max(right, left)

	rect := layout.Rect{Left: left, Top: line.Top, Right: right, Bottom: line.Bottom}
	rect = rect.Offset(
		viewOrigin.X+t.Padding.Left-t.Scroll.X,
		viewOrigin.Y+t.Padding.Top-t.Scroll.Y,
	)

	anchor := layout.Point{X: rect.Left + rect.Width()/2, Y: rect.Bottom}
	if multiLine {
		anchor.X = rect.Left
	}
	return rect, anchor, nil
}
