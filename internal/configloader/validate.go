package configloader

import (
	"fmt"
	"strings"

	"github.com/yaklabco/richview/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "layout.tab_width").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	if cfg.Flavor != "" && !cfg.Flavor.IsValid() {
		result.addError("flavor", cfg.Flavor, "invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor)
	}
	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format, "invalid format %q; must be one of: text, table, json, summary", cfg.Format)
	}
	if cfg.Color != "" && !cfg.Color.IsValid() {
		result.addError("color", cfg.Color, "invalid color mode %q; must be one of: auto, always, never", cfg.Color)
	}

	validateLayout(cfg.Layout, result)

	if cfg.Embed.SoundCloudClientID == "" {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "embed.soundcloud_client_id",
			Message: "empty client id; the built-in default will be used",
		})
	}

	return result
}

// validateLayout checks layout settings for negative or inconsistent values.
func validateLayout(l config.LayoutConfig, result *ValidationResult) {
	nonNegative := []struct {
		field string
		value int
	}{
		{"layout.width", l.Width},
		{"layout.padding_left", l.PaddingLeft},
		{"layout.padding_right", l.PaddingRight},
		{"layout.padding_top", l.PaddingTop},
		{"layout.padding_bottom", l.PaddingBottom},
		{"layout.line_height", l.LineHeight},
		{"layout.line_spacing_add", l.LineSpacingAdd},
		{"layout.tab_width", l.TabWidth},
		{"layout.aspect_width", l.AspectWidth},
		{"layout.aspect_height", l.AspectHeight},
	}
	for _, entry := range nonNegative {
		if entry.value < 0 {
			result.addError(entry.field, entry.value, "must be >= 0 (0 means default)")
		}
	}

	if l.LineSpacingMult < 0 {
		result.addError("layout.line_spacing_mult", l.LineSpacingMult, "must be >= 0 (0 means 1)")
	}

	if (l.AspectWidth == 0) != (l.AspectHeight == 0) {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "layout.aspect_width",
			Message: "aspect_width and aspect_height must be set together; using 16:9",
		})
	}

	if l.Width > 0 && l.PaddingLeft+l.PaddingRight >= l.Width {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "layout.width",
			Value:   l.Width,
			Message: "horizontal padding leaves no room for content",
		})
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
