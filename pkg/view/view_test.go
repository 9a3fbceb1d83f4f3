package view_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/richview/pkg/document"
	"github.com/yaklabco/richview/pkg/layout"
	"github.com/yaklabco/richview/pkg/span"
	"github.com/yaklabco/richview/pkg/view"
)

type fakePlayer struct {
	playing  bool
	released bool
}

func (p *fakePlayer) Play()         { p.playing = true }
func (p *fakePlayer) Pause()        { p.playing = false }
func (p *fakePlayer) Playing() bool { return p.playing }
func (p *fakePlayer) Release()      { p.released = true }

type fakeHandlers struct {
	opened    []string
	fallbacks []string
	err       error
}

func (h *fakeHandlers) OpenURL(url string) error {
	h.opened = append(h.opened, url)
	return h.err
}

func (h *fakeHandlers) ShowFallback(url string) error {
	h.fallbacks = append(h.fallbacks, url)
	return h.err
}

type fakeDownloads struct {
	urls    []string
	pending []func(span.Image)
}

func (d *fakeDownloads) Download(url string, done func(span.Image)) {
	d.urls = append(d.urls, url)
	d.pending = append(d.pending, done)
}

// fixture is "see docs\n\n<video>": a link on row 0 and a 32x18 video
// block from row 2.
type fixture struct {
	ctrl     *view.Controller
	link     *span.Link
	video    *span.Video
	handlers *fakeHandlers
	players  []*fakePlayer
}

func newFixture(t *testing.T, opts ...view.Option) *fixture {
	t.Helper()

	f := &fixture{
		link:     span.NewLink("https://example.com/docs"),
		video:    span.NewVideo("https://example.com/v.mp4"),
		handlers: &fakeHandlers{},
	}

	var b document.Builder
	b.WriteString("see ")
	b.Push(f.link)
	b.WriteString("docs")
	b.Pop()
	b.WriteString("\n\n")
	b.Object(f.video)

	opts = append([]view.Option{
		view.WithHandlers(f.handlers),
		view.WithPlayerFactory(view.PlayerFactoryFunc(func(string) span.Player {
			player := &fakePlayer{}
			f.players = append(f.players, player)
			return player
		})),
	}, opts...)

	f.ctrl = view.New(opts...)
	f.ctrl.SetContent(b.Content())
	f.ctrl.Attach()
	return f
}

func tap(c *view.Controller, x, y int) bool {
	down := c.Touch(view.Event{Action: view.ActionDown, X: x, Y: y})
	up := c.Touch(view.Event{Action: view.ActionUp, X: x, Y: y})
	return down && up
}

func TestTouch_NoLayoutIsUnhandled(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	assert.False(t, f.ctrl.Touch(view.Event{Action: view.ActionDown, X: 5}))
	assert.Equal(t, view.StateIdle, f.ctrl.State())
	assert.Empty(t, f.handlers.opened)
}

func TestTouch_LinkOpensURL(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.ctrl.Measure(32)

	assert.True(t, f.ctrl.Touch(view.Event{Action: view.ActionDown, X: 5}))
	assert.Equal(t, view.StatePressed, f.ctrl.State())
	assert.Equal(t, []span.Span{f.link}, f.ctrl.Pressed().Spans)

	assert.True(t, f.ctrl.Touch(view.Event{Action: view.ActionMove, X: 5}))
	assert.True(t, f.ctrl.Touch(view.Event{Action: view.ActionUp, X: 5}))
	assert.Equal(t, view.StateIdle, f.ctrl.State())
	assert.Equal(t, []string{"https://example.com/docs"}, f.handlers.opened)
}

func TestTouch_PlainTextIsHandledWithoutDispatch(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.ctrl.Measure(32)

	assert.True(t, tap(f.ctrl, 1, 0))
	assert.Empty(t, f.handlers.opened)
}

func TestTouch_UpWithoutDown(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.ctrl.Measure(32)

	assert.False(t, f.ctrl.Touch(view.Event{Action: view.ActionUp, X: 5}))
	assert.Empty(t, f.handlers.opened)
}

func TestTouch_Cancel(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.ctrl.Measure(32)

	f.ctrl.Touch(view.Event{Action: view.ActionDown, X: 5})
	assert.True(t, f.ctrl.Touch(view.Event{Action: view.ActionCancel}))
	assert.Equal(t, view.StateIdle, f.ctrl.State())
	assert.False(t, f.ctrl.Touch(view.Event{Action: view.ActionUp, X: 5}))
	assert.Empty(t, f.handlers.opened)
}

func TestTouch_VideoTogglesPlayback(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.ctrl.Measure(32)

	require.True(t, tap(f.ctrl, 3, 5))
	require.Len(t, f.players, 1)
	assert.True(t, f.video.Running())
	assert.Equal(t, span.StateActive, f.video.State())

	require.True(t, tap(f.ctrl, 3, 5))
	assert.False(t, f.video.Running())
	assert.Equal(t, span.StateAttached, f.video.State())

	assert.Empty(t, f.handlers.opened)
	assert.Empty(t, f.handlers.fallbacks)
}

func TestTouch_ScrollAndPadding(t *testing.T) {
	t.Parallel()

	f := newFixture(t, view.WithStyle(layout.Style{PaddingLeft: 2, PaddingTop: 1}))
	f.ctrl.Measure(34)
	f.ctrl.SetScroll(layout.Point{Y: 1})

	// Padding and scroll cancel out vertically.
	assert.True(t, tap(f.ctrl, 7, 0))
	assert.Equal(t, []string{"https://example.com/docs"}, f.handlers.opened)
}

func TestOnSpansResolved(t *testing.T) {
	t.Parallel()

	handlers := &fakeHandlers{}
	youtube := span.NewYouTube("dQw4w9WgXcQ")
	fallback := span.NewUnsupported("https://vimeo.com/1")
	claimed := span.NewLink("https://claimed.example")
	link := span.NewLink("https://example.com")

	ctrl := view.New(
		view.WithHandlers(handlers),
		view.WithObserver(view.ObserverFunc(func(s span.Span) bool {
			return s == claimed
		})),
	)

	ctrl.OnSpansResolved([]span.Span{youtube, fallback, claimed, link})

	assert.Equal(t, []string{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "https://example.com"}, handlers.opened)
	assert.Equal(t, []string{"https://vimeo.com/1"}, handlers.fallbacks)
}

func TestOnSpansResolved_HandlerErrorsAreSwallowed(t *testing.T) {
	t.Parallel()

	handlers := &fakeHandlers{err: errors.New("no browser")}
	ctrl := view.New(view.WithHandlers(handlers))

	assert.NotPanics(t, func() {
		ctrl.OnSpansResolved([]span.Span{span.NewLink("a"), span.NewLink("b")})
	})
	assert.Equal(t, []string{"a", "b"}, handlers.opened)
}

func TestSetContent_DetachesOldSpans(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.ctrl.Measure(32)
	require.True(t, tap(f.ctrl, 3, 5))
	require.Len(t, f.players, 1)

	f.ctrl.SetContent(document.Content{Text: "replaced"})

	assert.Equal(t, span.StateDetached, f.video.State())
	assert.True(t, f.players[0].released)
	assert.False(t, f.ctrl.Document().Contains(f.video))
	require.NotNil(t, f.ctrl.Layout())
	assert.Equal(t, f.ctrl.Document().Version(), f.ctrl.Layout().Version())
}

func TestAttachDetach(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	assert.True(t, f.ctrl.Alive())
	assert.Equal(t, span.StateAttached, f.video.State())

	f.ctrl.Detach()
	assert.False(t, f.ctrl.Alive())
	assert.Equal(t, span.StateDetached, f.video.State())

	f.video.Start()
	assert.False(t, f.video.Running())
	assert.Empty(t, f.players)
}

func TestMeasure(t *testing.T) {
	t.Parallel()

	f := newFixture(t, view.WithStyle(layout.Style{PaddingLeft: 1, PaddingRight: 1, PaddingTop: 2, PaddingBottom: 3}))

	assert.Equal(t, 0, f.ctrl.ContentWidth())
	w, h := f.ctrl.Measure(34)
	assert.Equal(t, 34, w)
	assert.Equal(t, 2+20+3, h)
	assert.Equal(t, 32, f.ctrl.ContentWidth())

	f.ctrl.Measure(34)
	assert.Equal(t, 1, f.ctrl.Engine().Computations())
}

func TestPerformLayout(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	assert.False(t, f.ctrl.PerformLayout())

	f.ctrl.Measure(32)
	assert.True(t, f.ctrl.PerformLayout())
	assert.Equal(t, 2, f.ctrl.Engine().Computations())
	assert.NotNil(t, f.ctrl.Layout())
}

func TestContentLoaded_RelayoutsLiveSpan(t *testing.T) {
	t.Parallel()

	downloads := &fakeDownloads{}
	youtube := span.NewYouTube("dQw4w9WgXcQ")

	var b document.Builder
	b.Object(youtube)

	ctrl := view.New(view.WithDownloader(downloads))
	ctrl.Attach()
	ctrl.SetContent(b.Content())

	require.Equal(t, []string{"https://img.youtube.com/vi/dQw4w9WgXcQ/hqdefault.jpg"}, downloads.urls)

	_, h := ctrl.Measure(32)
	assert.Equal(t, 18, h)

	downloads.pending[0](span.Image{Width: 480, Height: 360})

	assert.True(t, youtube.Loaded())
	assert.Equal(t, 2, ctrl.Engine().Computations())
	_, h = ctrl.Measure(32)
	assert.Equal(t, 24, h)
}

func TestContentLoaded_IgnoresStaleSpans(t *testing.T) {
	t.Parallel()

	downloads := &fakeDownloads{}
	youtube := span.NewYouTube("dQw4w9WgXcQ")

	var b document.Builder
	b.Object(youtube)

	ctrl := view.New(view.WithDownloader(downloads))
	ctrl.Attach()
	ctrl.SetContent(b.Content())
	ctrl.Measure(32)

	ctrl.SetContent(document.Content{Text: "new"})
	computations := ctrl.Engine().Computations()

	downloads.pending[0](span.Image{Width: 480, Height: 360})
	assert.False(t, youtube.Loaded())

	ctrl.ContentLoaded(youtube)
	assert.Equal(t, computations, ctrl.Engine().Computations())
}

func TestContentLoaded_IgnoredWhenDetached(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.ctrl.Measure(32)
	f.ctrl.Detach()

	f.ctrl.ContentLoaded(f.video)
	assert.Equal(t, 1, f.ctrl.Engine().Computations())
}

func TestSpanOrigin(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	_, err := f.ctrl.SpanOrigin(f.link, layout.Point{})
	require.Error(t, err)

	f.ctrl.Measure(32)
	origin, err := f.ctrl.SpanOrigin(f.link, layout.Point{X: 10, Y: 10})
	require.NoError(t, err)
	assert.Equal(t, layout.Point{X: 16, Y: 11}, origin)
}

func TestSetDocument(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	doc := f.ctrl.Document()

	f.ctrl.SetDocument(doc)
	assert.Equal(t, span.StateAttached, f.video.State())

	other := document.FromContent(document.Content{Text: "other"})
	f.ctrl.SetDocument(other)
	assert.Same(t, other, f.ctrl.Document())
	assert.Equal(t, span.StateDetached, f.video.State())
}

func TestStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "down", view.ActionDown.String())
	assert.Equal(t, "cancel", view.ActionCancel.String())
	assert.Equal(t, "pressed", view.StatePressed.String())
	assert.Equal(t, "idle", view.StateIdle.String())
}
