package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/richview/internal/configloader"
	"github.com/yaklabco/richview/internal/logging"
	"github.com/yaklabco/richview/pkg/config"
	"github.com/yaklabco/richview/pkg/reporter"
)

// documentFlags are the flags shared by commands that read a document.
type documentFlags struct {
	format     string
	flavor     string
	width      int
	noClassify bool
	noDetect   bool
	noLinkify  bool
	noSummary  bool
	compact    bool
}

func addDocumentFlags(cmd *cobra.Command, flags *documentFlags) {
	addParseFlags(cmd, flags)
	addOutputFlags(cmd, flags)
}

// addParseFlags registers the flags that control how a source is read.
func addParseFlags(cmd *cobra.Command, flags *documentFlags) {
	cmd.Flags().StringVar(&flags.flavor, "flavor", "gfm", "Markdown flavor: commonmark, gfm")
	cmd.Flags().BoolVar(&flags.noClassify, "no-classify", false, "keep media links as plain links")
	cmd.Flags().BoolVar(&flags.noDetect, "no-detect", false, "do not guess the language of code blocks")
	cmd.Flags().BoolVar(&flags.noLinkify, "no-linkify", false, "leave bare web addresses as plain text")
}

// addOutputFlags registers the flags that control how results are shown.
func addOutputFlags(cmd *cobra.Command, flags *documentFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, table, json, summary")
	cmd.Flags().IntVar(&flags.width, "width", 0, "view width in cells (0 = terminal width)")
	cmd.Flags().BoolVar(&flags.noSummary, "no-summary", false, "hide the document summary")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output where applicable")
}

// cliConfig maps explicitly set flags onto a config overlay. Flags left at
// their defaults do not override config files.
func (f *documentFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := &config.Config{}
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(f.format)
	}
	if cmd.Flags().Changed("flavor") {
		cfg.Flavor = config.Flavor(f.flavor)
	}
	if cmd.Flags().Changed("width") {
		cfg.Layout.Width = f.width
	}
	if f.noClassify {
		off := false
		cfg.ClassifyLinks = &off
	}
	if f.noDetect {
		off := false
		cfg.DetectLanguage = &off
	}
	if f.noLinkify {
		off := false
		cfg.Linkify = &off
	}
	return cfg
}

// loadConfig resolves the configuration for cmd, layering cliCfg over the
// config files and environment.
func loadConfig(cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.FromContext(commandContext(cmd))

	if cliCfg == nil {
		cliCfg = &config.Config{}
	}
	if color := cmd.Flags().Lookup("color"); color != nil && color.Changed {
		cliCfg.Color = config.ColorMode(color.Value.String())
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	envFiles, err := cmd.Flags().GetStringArray("env-file")
	if err != nil {
		return nil, fmt.Errorf("get env-file flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(commandContext(cmd), configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		EnvFiles:     envFiles,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, errors.Join(errors.New("failed to load configuration"), err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", "files", loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldFormat, cfg.Format,
		logging.FieldWidth, cfg.Layout.Width,
		logging.FieldClassify, *cfg.ClassifyLinks,
	)
	return cfg, nil
}

// commandContext returns the context of cmd with a logger tagged by the
// command name.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return logging.WithComponent(ctx, cmd.Name())
}

// viewWidth returns the configured width, else the width of the terminal
// behind w, else config.DefaultWidth.
func viewWidth(cfg *config.Config, w io.Writer) int {
	if cfg.Layout.Width > 0 {
		return cfg.Layout.Width
	}
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			if width, _, err := term.GetSize(fd); err == nil && width > 0 {
				return width
			}
		}
	}
	return config.DefaultWidth
}

// newReporter creates the reporter selected by cfg, writing to cmd's
// output.
func newReporter(cmd *cobra.Command, cfg *config.Config, flags *documentFlags) (reporter.Reporter, error) {
	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, fmt.Errorf("invalid format: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      format,
		Color:       string(cfg.Color),
		ShowSummary: !flags.noSummary,
		ShowCanvas:  true,
		Compact:     flags.compact,
	})
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}
	return rep, nil
}
