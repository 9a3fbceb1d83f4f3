package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richview/pkg/reporter"
)

func newRenderCommand() *cobra.Command {
	flags := &documentFlags{}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Lay out a document and draw it",
		Long: `Render reads a Markdown, HTML or span bundle file, lays it out for the
view width and prints the result. Links and media are drawn with their
styles and embedded media as placeholder boxes the size of the player.

The width defaults to the terminal width. Use --format table to list the
spans instead, or --format json for positions and bounding boxes.`,
		Example: `  richview render README.md
  richview render --width 60 page.html
  richview render --format json notes.rvsb`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], flags)
		},
	}

	addDocumentFlags(cmd, flags)

	return cmd
}

func runRender(cmd *cobra.Command, path string, flags *documentFlags) error {
	cfg, err := loadConfig(cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)

	ctrl, err := openView(ctx, cfg, path, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer ctrl.Detach()

	rep, err := newReporter(cmd, cfg, flags)
	if err != nil {
		return err
	}

	if _, err := rep.Report(ctx, &reporter.Result{
		Source:   path,
		Document: ctrl.Document(),
		Layout:   ctrl.Layout(),
	}); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
