package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richview/internal/ui/pretty"
	"github.com/yaklabco/richview/pkg/span"
)

func TestNewStyles_ColorEnabled(t *testing.T) {
	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	// Verify that all style fields are properly initialized
	// Note: Lipgloss may not render ANSI codes in non-TTY environments
	// so we just verify the struct is properly constructed
	assert.NotNil(t, styles.Bold)
	assert.NotNil(t, styles.Error)
	assert.NotNil(t, styles.Warning)
	assert.NotNil(t, styles.Link)
}

func TestNewStyles_ColorDisabled(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	// With color disabled, styles should return unmodified text
	text := "test"
	rendered := styles.Bold.Render(text)
	assert.Equal(t, text, rendered, "No-color Bold should not add formatting")

	rendered = styles.Error.Render(text)
	assert.Equal(t, text, rendered, "No-color Error should not add formatting")
}

func TestIsColorEnabled_AlwaysMode(t *testing.T) {
	var buf bytes.Buffer
	result := pretty.IsColorEnabled("always", &buf)
	assert.True(t, result, "always mode should return true")
}

func TestIsColorEnabled_NeverMode(t *testing.T) {
	result := pretty.IsColorEnabled("never", os.Stdout)
	assert.False(t, result, "never mode should return false")
}

func TestIsColorEnabled_AutoMode_NonTTY(t *testing.T) {
	// bytes.Buffer is not a TTY
	var buf bytes.Buffer
	result := pretty.IsColorEnabled("auto", &buf)
	assert.False(t, result, "auto mode with non-TTY should return false")
}

func TestIsColorEnabled_AutoMode_NoColorEnv(t *testing.T) {
	// Set NO_COLOR environment variable
	t.Setenv("NO_COLOR", "1")

	// Even with a TTY, NO_COLOR should disable colors
	result := pretty.IsColorEnabled("auto", os.Stdout)
	assert.False(t, result, "auto mode with NO_COLOR set should return false")
}

func TestIsColorEnabled_DefaultsToAuto(t *testing.T) {
	// Clear NO_COLOR if set
	t.Setenv("NO_COLOR", "")

	// Empty or unknown mode should default to auto behavior
	var buf bytes.Buffer
	result := pretty.IsColorEnabled("", &buf)
	assert.False(t, result, "empty mode with non-TTY should return false (auto behavior)")

	result = pretty.IsColorEnabled("unknown", &buf)
	assert.False(t, result, "unknown mode with non-TTY should return false (auto behavior)")
}

func TestStyles_AllFieldsInitialized(t *testing.T) {
	styles := pretty.NewStyles(true)

	for name, style := range map[string]lipgloss.Style{
		"Error":          styles.Error,
		"Warning":        styles.Warning,
		"Success":        styles.Success,
		"Link":           styles.Link,
		"Media":          styles.Media,
		"Unsupported":    styles.Unsupported,
		"Heading":        styles.Heading,
		"Strong":         styles.Strong,
		"Emphasis":       styles.Emphasis,
		"Strike":         styles.Strike,
		"Code":           styles.Code,
		"Quote":          styles.Quote,
		"MediaBorder":    styles.MediaBorder,
		"SummaryTitle":   styles.SummaryTitle,
		"SummaryValue":   styles.SummaryValue,
		"TableHeader":    styles.TableHeader,
		"TableSeparator": styles.TableSeparator,
		"Dim":            styles.Dim,
		"Bold":           styles.Bold,
	} {
		assert.NotEmpty(t, style.Render("x"), name)
	}
}

func TestStyles_ForSpan(t *testing.T) {
	styles := pretty.NewStyles(true)

	tests := []struct {
		name string
		span span.Span
		want lipgloss.Style
	}{
		{"link", span.NewLink("https://example.com"), styles.Link},
		{"unsupported", span.NewUnsupported("https://example.com/x"), styles.Unsupported},
		{"video", span.NewVideo("https://example.com/v.mp4"), styles.Media},
		{"youtube", span.NewYouTube("abc"), styles.Media},
		{"bold", span.NewStyle(span.StyleBold), styles.Strong},
		{"italic", span.NewStyle(span.StyleItalic), styles.Emphasis},
		{"code", span.NewStyle(span.StyleCode), styles.Code},
		{"heading", span.NewStyle(span.StyleHeading), styles.Heading},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := styles.ForSpan(tt.span)
			assert.Equal(t, tt.want.Render("x"), got.Render("x"))
		})
	}
}
