package cli

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/yaklabco/richview/internal/logging"
	"github.com/yaklabco/richview/pkg/reporter"
)

func newClassifyCommand() *cobra.Command {
	flags := &documentFlags{}
	var clientID string

	cmd := &cobra.Command{
		Use:   "classify <link>...",
		Short: "Identify media links",
		Long: `Classify runs each link through the media recognizers and prints the
reference it resolves to: a YouTube video ID, a Gfycat MP4, a SoundCloud
stream or a tweet ID.

The command exits with status 1 when any link is not recognized.`,
		Example: `  richview classify https://youtu.be/dQw4w9WgXcQ
  richview classify --format json https://gfycat.com/SomeName`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClassify(cmd, args, flags, clientID)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, summary")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output where applicable")
	cmd.Flags().StringVar(&clientID, "client-id", "", "SoundCloud client ID for stream URLs")

	return cmd
}

func runClassify(cmd *cobra.Command, links []string, flags *documentFlags, clientID string) error {
	cliCfg := flags.cliConfig(cmd)
	if cmd.Flags().Changed("client-id") {
		cliCfg.Embed.SoundCloudClientID = clientID
	}

	cfg, err := loadConfig(cmd, cliCfg)
	if err != nil {
		return err
	}

	classifications := reporter.Classify(cfg.Classifier(), links)
	logging.Default().Debug("classified links",
		"links", len(links),
		"matched", lo.CountBy(classifications, func(c reporter.Classification) bool { return c.Matched }),
	)

	rep, err := newReporter(cmd, cfg, flags)
	if err != nil {
		return err
	}
	if _, err := rep.Report(commandContext(cmd), &reporter.Result{Classifications: classifications}); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if lo.SomeBy(classifications, func(c reporter.Classification) bool { return !c.Matched }) {
		return ErrNoMatch
	}
	return nil
}
