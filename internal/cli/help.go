// Package cli provides the Cobra command structure for richview.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/richview/internal/ui/pretty"
	"github.com/yaklabco/richview/pkg/reporter"
)

// Command groups listed in root help.
const (
	groupDocument = "document"
	groupSetup    = "setup"
)

// HelpStyles contains Lipgloss styles for command help formatting.
type HelpStyles struct {
	Command lipgloss.Style
	Heading lipgloss.Style
	Name    lipgloss.Style
	Flag    lipgloss.Style
	Dim     lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{Command: plain, Heading: plain, Name: plain, Flag: plain, Dim: plain}
	}
	return &HelpStyles{
		Command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Name:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders help for richview commands: commands grouped into
// document and setup commands, flags as an aligned table, and on the root
// command a footer with output formats and exit codes.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a help formatter for the given color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

// ApplyToCommand registers the command groups on root and installs the
// help and usage renderers for it and every subcommand.
func (h *HelpFormatter) ApplyToCommand(root *cobra.Command) {
	root.AddGroup(
		&cobra.Group{ID: groupDocument, Title: "Document Commands:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)
	root.SetHelpCommandGroupID(groupSetup)
	root.SetCompletionCommandGroupID(groupSetup)

	funcs := template.FuncMap{
		"command": h.styles.Command.Render,
		"heading": h.styles.Heading.Render,
		"name":    h.styles.Name.Render,
		"dim":     h.styles.Dim.Render,
		"rpad":    rpad,
		"flags":   h.flagTable,
		"footer":  h.footer,
		"trim":    trimTrailingWhitespaces,
	}
	usage := template.Must(template.New("usage").Funcs(funcs).Parse(usageTemplate))
	help := template.Must(template.Must(usage.Clone()).New("help").Parse(helpTemplate))

	root.SetUsageFunc(func(cmd *cobra.Command) error {
		if err := usage.ExecuteTemplate(cmd.OutOrStderr(), "usage", cmd); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		if err := help.ExecuteTemplate(cmd.OutOrStdout(), "help", cmd); err != nil {
			cmd.PrintErrln(err)
		}
	})
}

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable}}
  {{ command .UseLine }}
{{- end}}
{{- if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]
{{- end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}
{{- if .HasAvailableSubCommands}}{{$cmds := .Commands}}
{{- range $group := .Groups}}

{{ heading $group.Title }}
{{- range $cmds}}{{if and (eq .GroupID $group.ID) (or .IsAvailableCommand (eq .Name "help"))}}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}
{{- end}}{{end}}
{{- end}}
{{- if not .AllChildCommandsHaveGroup}}

{{ heading "Other Commands:" }}
{{- range $cmds}}{{if and (eq .GroupID "") (or .IsAvailableCommand (eq .Name "help"))}}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}
{{- end}}{{end}}
{{- end}}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}
{{- if not .HasParent}}

{{ footer }}
{{- end}}
{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trim . }}

{{end}}{{template "usage" .}}`

// flagTable lists the visible flags of fs, one per line, with names
// padded to a common width. Non-zero defaults are appended to the usage.
func (h *HelpFormatter) flagTable(fs *pflag.FlagSet) string {
	type flagRow struct {
		flag, arg, usage string
	}

	var rows []flagRow
	width := 0
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		row := flagRow{flag: "    --" + f.Name}
		if f.Shorthand != "" {
			row.flag = "-" + f.Shorthand + ", --" + f.Name
		}
		row.arg, row.usage = pflag.UnquoteUsage(f)
		if def := flagDefault(f); def != "" {
			row.usage += " (default " + def + ")"
		}
		width = max(width, len(row.flag)+len(row.arg)+1)
		rows = append(rows, row)
	})

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		plain := len(row.flag) + len(row.arg) + 1
		lines = append(lines, "  "+h.styles.Flag.Render(row.flag)+" "+h.styles.Dim.Render(row.arg)+
			strings.Repeat(" ", width-plain)+"   "+row.usage)
	}
	return trimTrailingWhitespaces(strings.Join(lines, "\n"))
}

// flagDefault returns the default of f as shown in help, or "" when the
// default is the zero value of its type.
func flagDefault(f *pflag.Flag) string {
	switch f.DefValue {
	case "", "0", "false", "[]":
		return ""
	}
	if f.Value.Type() == "string" {
		return fmt.Sprintf("%q", f.DefValue)
	}
	return f.DefValue
}

// footer describes the output formats, configuration sources and exit
// codes shared by every command.
func (h *HelpFormatter) footer() string {
	formats := make([]string, 0, len(reporter.Formats()))
	for _, f := range reporter.Formats() {
		formats = append(formats, f.String())
	}

	var b strings.Builder
	b.WriteString(h.styles.Heading.Render("Output Formats:") + "\n")
	b.WriteString("  " + strings.Join(formats, ", ") + "\n\n")

	b.WriteString(h.styles.Heading.Render("Configuration:") + "\n")
	b.WriteString("  .richview.yml (searched upward), --config, --env-file, RICHVIEW_* variables\n\n")

	b.WriteString(h.styles.Heading.Render("Exit Codes:") + "\n")
	for _, code := range []struct {
		code int
		desc string
	}{
		{ExitSuccess, "success"},
		{ExitNoMatch, "nothing matched (unrecognized links, no span at the point, no documents)"},
		{ExitConfigError, "invalid configuration"},
		{ExitInternalError, "internal error"},
		{ExitIOError, "file could not be read or written"},
	} {
		fmt.Fprintf(&b, "  %s %s\n", h.styles.Name.Render(rpad(fmt.Sprint(code.code), 3)), code.desc)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// rpad adds padding to the right of a string.
func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

// trimTrailingWhitespaces removes trailing whitespace from lines.
func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
