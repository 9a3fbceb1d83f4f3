// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldInput      = "input"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldComponent  = "component"

	// Configuration fields.
	FieldFlavor   = "flavor"
	FieldFormat   = "format"
	FieldWidth    = "width"
	FieldClassify = "classify_links"
	FieldConfig   = "config"

	// Document fields.
	FieldLength = "length"
	FieldSpans  = "spans"
	FieldKind   = "kind"
	FieldURL    = "url"

	// Layout fields.
	FieldLines  = "lines"
	FieldHeight = "height"

	// Touch fields.
	FieldX      = "x"
	FieldY      = "y"
	FieldOffset = "offset"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
