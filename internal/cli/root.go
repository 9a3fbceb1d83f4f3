// Package cli provides the Cobra command structure for richview.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richview/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root richview command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string
	var envFiles []string

	rootCmd := &cobra.Command{
		Use:   "richview",
		Short: "Lay out rich documents and resolve taps on their links and media",
		Long: `richview turns Markdown and HTML into an annotated document, lays it out
for a terminal-sized view and answers the questions a view asks of it:
what is drawn where, which link or video sits under a point, and what a
tap there would do.

Links to YouTube, Gfycat, SoundCloud and Twitter are classified into
typed media references. Documents can be exported as span bundles and
rendered again later.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringArrayVar(&envFiles, "env-file", nil,
		"dotenv file with RICHVIEW_ variables (repeatable)")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	for _, cmd := range []*cobra.Command{
		newClassifyCommand(),
		newRenderCommand(),
		newHitCommand(),
		newExportCommand(),
	} {
		cmd.GroupID = groupDocument
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{
		newInitCommand(),
		newVersionCommand(info),
	} {
		cmd.GroupID = groupSetup
		rootCmd.AddCommand(cmd)
	}

	// Styled help with command groups.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
