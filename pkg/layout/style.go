package layout

import "github.com/yaklabco/richview/pkg/span"

// Default style values applied to zero fields.
const (
	DefaultLineHeight = 1
	DefaultTabWidth   = 4
)

// Style holds the measurements that affect line breaking and metrics.
// All lengths are terminal cells. Zero fields fall back to defaults, so
// the zero Style is usable.
type Style struct {
	PaddingLeft   int
	PaddingRight  int
	PaddingTop    int
	PaddingBottom int

	// LineHeight is the number of rows a text line occupies.
	LineHeight int

	// LineSpacingMult scales the height of text lines. Zero means 1.
	LineSpacingMult float64

	// LineSpacingAdd is added below every line.
	LineSpacingAdd int

	// TabWidth is the distance between tab stops.
	TabWidth int

	// AspectWidth and AspectHeight size replacement spans that report no
	// size of their own.
	AspectWidth  int
	AspectHeight int
}

// DefaultStyle returns a Style with every default spelled out.
func DefaultStyle() Style {
	return Style{}.normalized()
}

// HorizontalPadding returns the combined left and right padding.
func (s Style) HorizontalPadding() int {
	return s.PaddingLeft + s.PaddingRight
}

// VerticalPadding returns the combined top and bottom padding.
func (s Style) VerticalPadding() int {
	return s.PaddingTop + s.PaddingBottom
}

// ContentWidth returns the width left for content inside availableWidth.
// It is never less than one cell.
func (s Style) ContentWidth(availableWidth int) int {
	return max(availableWidth-s.HorizontalPadding(), 1)
}

func (s Style) normalized() Style {
	if s.LineHeight <= 0 {
		s.LineHeight = DefaultLineHeight
	}
	if s.LineSpacingMult <= 0 {
		s.LineSpacingMult = 1
	}
	if s.TabWidth <= 0 {
		s.TabWidth = DefaultTabWidth
	}
	if s.AspectWidth <= 0 || s.AspectHeight <= 0 {
		s.AspectWidth = span.AspectWidth
		s.AspectHeight = span.AspectHeight
	}
	s.PaddingLeft = max(s.PaddingLeft, 0)
	s.PaddingRight = max(s.PaddingRight, 0)
	s.PaddingTop = max(s.PaddingTop, 0)
	s.PaddingBottom = max(s.PaddingBottom, 0)
	return s
}
