// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/yaklabco/richview/pkg/span"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style

	// Span styles
	Link        lipgloss.Style
	Media       lipgloss.Style
	Unsupported lipgloss.Style
	Heading     lipgloss.Style
	Strong      lipgloss.Style
	Emphasis    lipgloss.Style
	Strike      lipgloss.Style
	Code        lipgloss.Style
	Quote       lipgloss.Style

	// Media placeholder box
	MediaBorder lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),

		Link:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Underline(true),
		Media:       lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		Unsupported: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Underline(true),
		Heading:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Strong:      lipgloss.NewStyle().Bold(true),
		Emphasis:    lipgloss.NewStyle().Italic(true),
		Strike:      lipgloss.NewStyle().Strikethrough(true),
		Code:        lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Quote:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),

		MediaBorder: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:          plain,
		Warning:        plain,
		Success:        plain,
		Link:           plain,
		Media:          plain,
		Unsupported:    plain,
		Heading:        plain,
		Strong:         plain,
		Emphasis:       plain,
		Strike:         plain,
		Code:           plain,
		Quote:          plain,
		MediaBorder:    plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		TableHeader:    plain,
		TableSeparator: plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// ForSpan returns the style that renders text covered by s.
func (s *Styles) ForSpan(sp span.Span) lipgloss.Style {
	switch v := sp.(type) {
	case *span.Style:
		return s.forTextStyle(v.Style)
	case *span.Unsupported:
		return s.Unsupported
	case *span.Link:
		return s.Link
	case span.Replacement:
		return s.Media
	default:
		return lipgloss.NewStyle()
	}
}

func (s *Styles) forTextStyle(style span.TextStyle) lipgloss.Style {
	switch style {
	case span.StyleBold:
		return s.Strong
	case span.StyleItalic:
		return s.Emphasis
	case span.StyleStrike:
		return s.Strike
	case span.StyleCode:
		return s.Code
	case span.StyleHeading:
		return s.Heading
	case span.StyleQuote:
		return s.Quote
	default:
		return lipgloss.NewStyle()
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
