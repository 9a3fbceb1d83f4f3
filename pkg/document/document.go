// Package document holds a text buffer and the spans annotating it.
//
// A Document is replaced wholesale through SetText; it is never edited
// incrementally. Every replacement bumps the version so derived artifacts
// such as layouts can tell when they are stale.
package document

import (
	"slices"

	"github.com/samber/lo"

	"github.com/yaklabco/richview/pkg/span"
)

// Entry positions a span over [Start, End) byte offsets of the text.
type Entry struct {
	Span  span.Span
	Start int
	End   int
}

// Content is a text buffer plus its span entries, as produced by a Builder.
type Content struct {
	Text    string
	Entries []Entry
}

// Document owns a text buffer and its spans, ordered by start offset with
// ties kept in insertion order.
//
// Span lookups are linear scans. Documents typically carry fewer than a
// hundred spans, so an interval tree would not pay for itself.
type Document struct {
	text    string
	entries []Entry
	version uint64
}

// New creates an empty document.
func New() *Document {
	return &Document{}
}

// FromContent creates a document holding c.
func FromContent(c Content) *Document {
	doc := New()
	doc.SetText(c)
	return doc
}

// SetText replaces the buffer and all spans at once. Entries are clamped
// to the new buffer so no stale offset survives.
func (d *Document) SetText(c Content) {
	length := len(c.Text)

	entries := make([]Entry, 0, len(c.Entries))
	for _, entry := range c.Entries {
		if entry.Span == nil {
			continue
		}
		entry.Start = clamp(entry.Start, 0, length)
		entry.End = clamp(entry.End, entry.Start, length)
		entries = append(entries, entry)
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return a.Start - b.Start
	})

	d.text = c.Text
	d.entries = entries
	d.version++
}

// Version increases with every SetText.
func (d *Document) Version() uint64 {
	return d.version
}

// Len returns the buffer length in bytes.
func (d *Document) Len() int {
	return len(d.text)
}

// Text returns the buffer.
func (d *Document) Text() string {
	return d.text
}

// Slice returns the text in [start, end), clamped to the buffer.
func (d *Document) Slice(start, end int) string {
	start, end = d.clampRange(start, end)
	return d.text[start:end]
}

// Entries returns the span entries in document order.
// The returned slice must not be modified.
func (d *Document) Entries() []Entry {
	return d.entries
}

// Spans returns all spans in document order.
func (d *Document) Spans() []span.Span {
	return lo.Map(d.entries, func(entry Entry, _ int) span.Span {
		return entry.Span
	})
}

// HasSpans reports whether the document carries any span.
func (d *Document) HasSpans() bool {
	return len(d.entries) > 0
}

// EntriesInRange returns the entries intersecting [start, end] in document
// order. Endpoints are inclusive: a span ending exactly at start matches,
// which lets zero-width queries find the span under a touch.
// Offsets are clamped to [0, Len].
func (d *Document) EntriesInRange(start, end int, filter Filter) []Entry {
	if len(d.entries) == 0 {
		return nil
	}

	start, end = d.clampRange(start, end)
	return lo.Filter(d.entries, func(entry Entry, _ int) bool {
		return entry.Start <= end && entry.End >= start && filter.Accept(entry.Span)
	})
}

// SpansInRange returns the spans intersecting [start, end] that pass
// filter, in document order. A nil filter accepts every span.
func (d *Document) SpansInRange(start, end int, filter Filter) []span.Span {
	entries := d.EntriesInRange(start, end, filter)
	if len(entries) == 0 {
		return nil
	}
	return lo.Map(entries, func(entry Entry, _ int) span.Span {
		return entry.Span
	})
}

// RangeOf returns the offsets of s. ok is false when s is not in the
// document.
func (d *Document) RangeOf(s span.Span) (start, end int, ok bool) {
	for _, entry := range d.entries {
		if entry.Span == s {
			return entry.Start, entry.End, true
		}
	}
	return 0, 0, false
}

// Contains reports whether s belongs to the document.
func (d *Document) Contains(s span.Span) bool {
	_, _, ok := d.RangeOf(s)
	return ok
}

func (d *Document) clampRange(start, end int) (int, int) {
	if start > end {
		start, end = end, start
	}
	length := len(d.text)
	return clamp(start, 0, length), clamp(end, 0, length)
}

func clamp(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
