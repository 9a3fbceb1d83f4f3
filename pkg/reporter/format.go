package reporter

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Format names an output format.
type Format string

// Output formats.
const (
	FormatText    Format = "text"
	FormatTable   Format = "table"
	FormatJSON    Format = "json"
	FormatSummary Format = "summary"
)

type formatEntry struct {
	format Format
	build  func(Options) Reporter
}

// formatTable lists every format with its reporter, in the order formats
// are presented to users.
//
//nolint:gochecknoglobals // Read-only lookup table.
var formatTable = []formatEntry{
	{FormatText, func(o Options) Reporter { return NewTextReporter(o) }},
	{FormatTable, func(o Options) Reporter { return NewTableReporter(o) }},
	{FormatJSON, func(o Options) Reporter { return NewJSONReporter(o) }},
	{FormatSummary, func(o Options) Reporter { return NewSummaryReporter(o) }},
}

// Formats returns the supported formats in display order.
func Formats() []Format {
	return lo.Map(formatTable, func(e formatEntry, _ int) Format { return e.format })
}

// ParseFormat parses a format name. The empty string selects FormatText.
func ParseFormat(name string) (Format, error) {
	if name == "" {
		return FormatText, nil
	}
	format := Format(name)
	if !format.IsValid() {
		return "", fmt.Errorf("unknown format %q; valid formats: %s", name, joinFormats(Formats()))
	}
	return format, nil
}

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// IsValid reports whether f names a supported format.
func (f Format) IsValid() bool {
	_, ok := lookupFormat(f)
	return ok
}

func lookupFormat(f Format) (formatEntry, bool) {
	return lo.Find(formatTable, func(e formatEntry) bool { return e.format == f })
}

func joinFormats(formats []Format) string {
	return strings.Join(lo.Map(formats, func(f Format, _ int) string { return string(f) }), ", ")
}
