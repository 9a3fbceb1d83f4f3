package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/richview/internal/logging"
	"github.com/yaklabco/richview/pkg/layout"
	"github.com/yaklabco/richview/pkg/reporter"
	"github.com/yaklabco/richview/pkg/span"
	"github.com/yaklabco/richview/pkg/view"
)

type hitFlags struct {
	documentFlags

	x      int
	y      int
	scroll int
	tap    bool
}

func newHitCommand() *cobra.Command {
	flags := &hitFlags{}

	cmd := &cobra.Command{
		Use:   "hit <file>",
		Short: "Find the interactive span under a point",
		Long: `Hit lays out a document and reports the line, character offset and
interactive spans under a point in view coordinates, padding included.

With --tap the point is also pressed and released, and the actions the
view took are listed: links open, unsupported media fall back to the
browser and videos start or stop playing. Nothing is actually opened.

The command exits with status 1 when no interactive span is under the
point.`,
		Example: `  richview hit README.md --x 5 --y 0
  richview hit --tap --x 10 --y 4 page.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHit(cmd, args[0], flags)
		},
	}

	addDocumentFlags(cmd, &flags.documentFlags)
	cmd.Flags().IntVar(&flags.x, "x", 0, "column of the point in the view")
	cmd.Flags().IntVar(&flags.y, "y", 0, "row of the point in the view")
	cmd.Flags().IntVar(&flags.scroll, "scroll", 0, "rows the view is scrolled down")
	cmd.Flags().BoolVar(&flags.tap, "tap", false, "simulate a tap at the point")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")

	return cmd
}

func runHit(cmd *cobra.Command, path string, flags *hitFlags) error {
	cfg, err := loadConfig(cmd, flags.cliConfig(cmd))
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	actions := &actionRecorder{}
	ctrl, err := openView(ctx, cfg, path, cmd.OutOrStdout(),
		view.WithHandlers(actions),
		view.WithPlayerFactory(view.PlayerFactoryFunc(actions.newPlayer)),
	)
	if err != nil {
		return err
	}
	defer ctrl.Detach()

	ctrl.SetScroll(layout.Point{Y: flags.scroll})
	point := layout.Point{X: flags.x, Y: flags.y}

	result, err := ctrl.Tester().HitTest(ctrl.Layout(), ctrl.Document(), point)
	if err != nil {
		return fmt.Errorf("hit test: %w", err)
	}
	logger.Debug("hit test",
		logging.FieldX, point.X,
		logging.FieldY, point.Y,
		logging.FieldOffset, result.Offset,
		logging.FieldSpans, len(result.Spans),
	)

	if flags.tap {
		ctrl.Touch(view.Event{Action: view.ActionDown, X: point.X, Y: point.Y})
		ctrl.Touch(view.Event{Action: view.ActionUp, X: point.X, Y: point.Y})
	}

	rep, err := newReporter(cmd, cfg, &flags.documentFlags)
	if err != nil {
		return err
	}

	if _, err := rep.Report(ctx, &reporter.Result{
		Source:   path,
		Document: ctrl.Document(),
		Layout:   ctrl.Layout(),
		Hit: &reporter.Hit{
			Point:   point,
			Result:  result,
			Actions: actions.actions,
		},
	}); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if len(result.Spans) == 0 {
		return ErrNoMatch
	}
	return nil
}

// actionRecorder stands in for the platform: it records the URLs a view
// would open and the players it would drive.
type actionRecorder struct {
	actions []string
}

func (r *actionRecorder) record(format string, args ...any) {
	r.actions = append(r.actions, fmt.Sprintf(format, args...))
}

// OpenURL implements view.Handlers.
func (r *actionRecorder) OpenURL(url string) error {
	r.record("open %s", url)
	return nil
}

// ShowFallback implements view.Handlers.
func (r *actionRecorder) ShowFallback(url string) error {
	r.record("fallback %s", url)
	return nil
}

func (r *actionRecorder) newPlayer(uri string) span.Player {
	return &recordedPlayer{uri: uri, recorder: r}
}

type recordedPlayer struct {
	uri      string
	recorder *actionRecorder
	playing  bool
}

func (p *recordedPlayer) Play() {
	p.playing = true
	p.recorder.record("play %s", p.uri)
}

func (p *recordedPlayer) Pause() {
	if p.playing {
		p.recorder.record("pause %s", p.uri)
	}
	p.playing = false
}

func (p *recordedPlayer) Playing() bool { return p.playing }

func (p *recordedPlayer) Release() {}
