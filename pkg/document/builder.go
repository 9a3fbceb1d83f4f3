package document

import (
	"strings"

	"github.com/yaklabco/richview/pkg/span"
)

// ObjectReplacement is the character that stands in for an inline block
// such as a video in the text buffer.
const ObjectReplacement = "\uFFFC"

// Builder accumulates text and spans into a Content.
// Spans may be opened and closed around text (Push/Pop) or marked over an
// explicit range.
type Builder struct {
	text    strings.Builder
	entries []Entry
	open    []int // indexes into entries of spans still open
}

// Len returns the number of bytes written so far.
func (b *Builder) Len() int {
	return b.text.Len()
}

// WriteString appends text.
func (b *Builder) WriteString(s string) {
	b.text.WriteString(s)
}

// String returns the text written so far.
func (b *Builder) String() string {
	return b.text.String()
}

// Push opens s at the current offset.
func (b *Builder) Push(s span.Span) {
	b.open = append(b.open, len(b.entries))
	b.entries = append(b.entries, Entry{Span: s, Start: b.Len(), End: -1})
}

// Pop closes the most recently opened span at the current offset.
// Pop without a matching Push does nothing.
func (b *Builder) Pop() {
	if len(b.open) == 0 {
		return
	}
	last := b.open[len(b.open)-1]
	b.open = b.open[:len(b.open)-1]
	b.entries[last].End = b.Len()
}

// Mark records s over [start, end).
func (b *Builder) Mark(s span.Span, start, end int) {
	b.entries = append(b.entries, Entry{Span: s, Start: start, End: end})
}

// Object appends a replacement character covered by s, so the span owns a
// text position the layout can size and hit-test.
func (b *Builder) Object(s span.Span) {
	start := b.Len()
	b.WriteString(ObjectReplacement)
	b.Mark(s, start, b.Len())
}

// Content returns the accumulated content, closing any span left open.
func (b *Builder) Content() Content {
	for len(b.open) > 0 {
		b.Pop()
	}
	entries := make([]Entry, len(b.entries))
	copy(entries, b.entries)
	return Content{Text: b.text.String(), Entries: entries}
}
