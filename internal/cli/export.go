package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/richview/internal/logging"
	"github.com/yaklabco/richview/pkg/config"
	"github.com/yaklabco/richview/pkg/document"
	"github.com/yaklabco/richview/pkg/fsutil"
	"github.com/yaklabco/richview/pkg/runner"
	"github.com/yaklabco/richview/pkg/span"
)

// bundlePermissions is the file mode for exported span bundles.
const bundlePermissions = 0o644

// errOutputNeedsOneFile is returned when --output is combined with more
// than one document.
var errOutputNeedsOneFile = errors.New("--output requires exactly one document")

type exportFlags struct {
	documentFlags

	output  string
	backup  bool
	jobs    int
	exclude []string
}

func newExportCommand() *cobra.Command {
	flags := &exportFlags{}

	cmd := &cobra.Command{
		Use:   "export <path>...",
		Short: "Save documents as span bundles",
		Long: `Export parses documents and writes their text and spans as span
bundles. Bundles keep classified media spans exactly as they were when
exported. Render and hit accept bundles by their ` + BundleExtension + ` extension.

Paths may be files or directories. Directories are searched for Markdown
and HTML files, skipping hidden entries and anything matching --exclude,
and documents are exported in parallel. Each bundle is written next to
its source unless --output names the bundle for a single document.

Bundles are written atomically and left untouched when their content has
not changed. A document that changes while it is being read is not
exported.`,
		Example: `  richview export README.md
  richview export -o build/readme.rvsb --backup README.md
  richview export --exclude 'vendor/**' docs/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, flags)
		},
	}

	addParseFlags(cmd, &flags.documentFlags)
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"bundle path for a single document (default: the source path with a "+BundleExtension+" extension)")
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "back up an existing bundle before overwriting it")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "documents exported in parallel (0 = number of CPUs)")
	cmd.Flags().StringArrayVar(&flags.exclude, "exclude", nil, "glob of paths to skip (repeatable)")

	return cmd
}

func runExport(cmd *cobra.Command, paths []string, flags *exportFlags) error {
	cfg, err := loadConfig(cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")

	files, err := runner.Discover(ctx, runner.Options{
		Paths:        paths,
		ExcludeGlobs: flags.exclude,
	})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no documents under %s", ErrNoMatch, strings.Join(paths, ", "))
	}
	if flags.output != "" && len(files) != 1 {
		return errOutputNeedsOneFile
	}

	exp := &exporter{
		cfg:    cfg,
		output: flags.output,
		backup: flags.backup,
		logger: logger,
	}

	result, err := runner.New(exp.export).RunFiles(ctx, files, flags.jobs)
	if err != nil {
		return err
	}

	for _, outcome := range result.Files {
		if outcome.Error != nil {
			logger.Error("export failed", logging.FieldInput, outcome.Path, logging.FieldError, outcome.Error)
		}
	}

	if len(files) > 1 {
		stats := result.Stats
		logger.Info("export finished",
			"documents", stats.FilesDiscovered,
			"written", stats.FilesWritten,
			"unchanged", stats.FilesUnchanged,
			"failed", stats.FilesErrored,
			logging.FieldSpans, stats.Spans,
		)
	}

	return result.Err()
}

// exporter writes one document as a span bundle.
type exporter struct {
	cfg    *config.Config
	output string
	backup bool
	logger *log.Logger
}

func (e *exporter) export(ctx context.Context, path string) (runner.FileResult, error) {
	src, err := readSource(logging.WithFields(ctx, logging.FieldInput, path), e.cfg, path)
	if err != nil {
		return runner.FileResult{}, err
	}

	data, err := document.FromContent(src.content).MarshalBundle(span.Builtin())
	if err != nil {
		return runner.FileResult{}, fmt.Errorf("encode bundle for %s: %w", path, err)
	}

	modified, err := fsutil.CheckModified(ctx, src.info)
	if err != nil {
		return runner.FileResult{}, fmt.Errorf("check source: %w", err)
	}
	if modified {
		return runner.FileResult{}, fmt.Errorf("%w: %s", fsutil.ErrSourceChanged, path)
	}

	result := runner.FileResult{
		Output: e.output,
		Spans:  len(src.content.Entries),
	}
	if result.Output == "" {
		result.Output = bundlePath(path)
	}

	if e.backup {
		result.BackedUp, err = fsutil.CreateBackup(ctx, result.Output)
		if err != nil {
			return runner.FileResult{}, fmt.Errorf("back up %s: %w", result.Output, err)
		}
		if result.BackedUp {
			e.logger.Info("backed up bundle", logging.FieldPath, fsutil.BackupPath(result.Output))
		}
	}

	result.Written, err = fsutil.WriteAtomicIfChanged(ctx, result.Output, data, bundlePermissions)
	if err != nil {
		return runner.FileResult{}, fmt.Errorf("write bundle: %w", err)
	}

	if result.Written {
		e.logger.Info("exported bundle",
			logging.FieldInput, path,
			logging.FieldOutput, result.Output,
			logging.FieldSpans, result.Spans,
		)
	} else {
		e.logger.Info("bundle unchanged", logging.FieldOutput, result.Output)
	}
	return result, nil
}

// bundlePath replaces the extension of path with BundleExtension.
func bundlePath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + BundleExtension
}
