package document

import (
	"slices"

	"github.com/yaklabco/richview/pkg/span"
)

// Filter selects spans in range queries. A nil Filter accepts everything.
type Filter func(s span.Span) bool

// Accept reports whether f selects s.
func (f Filter) Accept(s span.Span) bool {
	return f == nil || f(s)
}

// All accepts every span.
func All(span.Span) bool { return true }

// Interactive accepts spans that react to touches.
func Interactive(s span.Span) bool {
	return span.IsInteractive(s)
}

// Clickable accepts spans that navigate when activated.
func Clickable(s span.Span) bool {
	_, ok := s.(span.Clickable)
	return ok
}

// Playable accepts spans that toggle playback.
func Playable(s span.Span) bool {
	_, ok := s.(span.Playable)
	return ok
}

// Replacement accepts spans rendered as inline blocks.
func Replacement(s span.Span) bool {
	_, ok := s.(span.Replacement)
	return ok
}

// OfKind accepts spans of any of the given kinds.
func OfKind(kinds ...span.Kind) Filter {
	return func(s span.Span) bool {
		return slices.Contains(kinds, s.Kind())
	}
}
