// Package view drives a document on screen: it owns the document and its
// layout, fans lifecycle events out to spans and turns touches into span
// activations.
//
// A Controller is confined to one goroutine, the view's event loop. Async
// collaborators such as downloaders must call back on that goroutine.
package view

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/richview/pkg/document"
	"github.com/yaklabco/richview/pkg/hittest"
	"github.com/yaklabco/richview/pkg/layout"
	"github.com/yaklabco/richview/pkg/span"
)

// Compile-time interface check.
var _ span.Host = (*Controller)(nil)

// Observer may claim activated spans before default handling.
type Observer interface {
	// OnSpanClicked returns true when it handled s.
	OnSpanClicked(s span.Span) bool
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(s span.Span) bool

// OnSpanClicked implements Observer.
func (f ObserverFunc) OnSpanClicked(s span.Span) bool { return f(s) }

// Handlers performs the default actions for unclaimed spans.
type Handlers interface {
	// OpenURL navigates to url.
	OpenURL(url string) error

	// ShowFallback displays content that cannot be rendered inline.
	ShowFallback(url string) error
}

// Downloader fetches bitmaps for spans that show images.
type Downloader interface {
	Download(url string, done func(span.Image))
}

// DownloaderFunc adapts a function to Downloader.
type DownloaderFunc func(url string, done func(span.Image))

// Download implements Downloader.
func (f DownloaderFunc) Download(url string, done func(span.Image)) { f(url, done) }

// PlayerFactory creates playback collaborators for media spans.
type PlayerFactory interface {
	NewPlayer(uri string) span.Player
}

// PlayerFactoryFunc adapts a function to PlayerFactory.
type PlayerFactoryFunc func(uri string) span.Player

// NewPlayer implements PlayerFactory.
func (f PlayerFactoryFunc) NewPlayer(uri string) span.Player { return f(uri) }

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithStyle sets the layout style.
func WithStyle(style layout.Style) Option {
	return func(c *Controller) {
		c.style = style
	}
}

// WithObserver sets the observer consulted before default span handling.
func WithObserver(observer Observer) Option {
	return func(c *Controller) {
		c.observer = observer
	}
}

// WithHandlers sets the default span actions.
func WithHandlers(handlers Handlers) Option {
	return func(c *Controller) {
		c.handlers = handlers
	}
}

// WithDownloader sets the bitmap downloader.
func WithDownloader(downloader Downloader) Option {
	return func(c *Controller) {
		c.downloader = downloader
	}
}

// WithPlayerFactory sets the media player factory.
func WithPlayerFactory(players PlayerFactory) Option {
	return func(c *Controller) {
		c.players = players
	}
}

// Controller is the view-side owner of a document.
type Controller struct {
	doc    *document.Document
	engine *layout.Engine
	style  layout.Style
	scroll layout.Point

	attached      bool
	measuredWidth int
	measured      bool

	state   State
	pressed hittest.Result

	observer   Observer
	handlers   Handlers
	downloader Downloader
	players    PlayerFactory
	logger     *log.Logger
}

// New creates a detached Controller holding an empty document.
func New(opts ...Option) *Controller {
	c := &Controller{
		doc:    document.New(),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.engine = layout.NewEngine(layout.WithLogger(c.logger))
	return c
}

// Document returns the displayed document.
func (c *Controller) Document() *document.Document {
	return c.doc
}

// Engine returns the layout engine.
func (c *Controller) Engine() *layout.Engine {
	return c.engine
}

// Style returns the layout style.
func (c *Controller) Style() layout.Style {
	return c.style
}

// SetStyle changes the layout style and drops the current layout.
func (c *Controller) SetStyle(style layout.Style) {
	if style == c.style {
		return
	}
	c.style = style
	c.requestLayout()
}

// Scroll returns the scroll position.
func (c *Controller) Scroll() layout.Point {
	return c.scroll
}

// SetScroll sets the scroll position used to translate touches.
func (c *Controller) SetScroll(p layout.Point) {
	c.scroll = p
}

// Attached reports whether the view is attached.
func (c *Controller) Attached() bool {
	return c.attached
}

// SetContent replaces the document's text and spans. Old spans are
// detached before the replacement and new spans are handed the view.
func (c *Controller) SetContent(content document.Content) {
	c.replace(func() {
		c.doc.SetText(content)
	})
}

// SetDocument displays doc. Setting the current document again does
// nothing.
func (c *Controller) SetDocument(doc *document.Document) {
	if doc == nil || doc == c.doc {
		return
	}
	c.replace(func() {
		c.doc = doc
	})
}

func (c *Controller) replace(swap func()) {
	if c.attached {
		for _, s := range c.doc.Spans() {
			s.OnDetached(c)
		}
	}

	swap()
	c.state = StateIdle
	c.engine.Invalidate()

	for _, s := range c.doc.Spans() {
		s.OnSpannedSet(c)
	}
	if c.attached {
		for _, s := range c.doc.Spans() {
			s.OnAttached(c)
		}
	}

	c.logger.Debug("document set", "length", c.doc.Len(), "spans", len(c.doc.Entries()))
	c.requestLayout()
}

// Attach marks the view visible and attaches every span.
func (c *Controller) Attach() {
	if c.attached {
		return
	}
	c.attached = true
	for _, s := range c.doc.Spans() {
		s.OnAttached(c)
	}
}

// Detach marks the view gone and detaches every span. Pending async
// callbacks become no-ops.
func (c *Controller) Detach() {
	if !c.attached {
		return
	}
	c.attached = false
	c.state = StateIdle
	for _, s := range c.doc.Spans() {
		s.OnDetached(c)
	}
}

// Measure lays the document out for availableWidth and returns the
// view's size, vertical padding included.
func (c *Controller) Measure(availableWidth int) (int, int) {
	c.measuredWidth = availableWidth
	c.measured = true

	l := c.engine.Layout(c.doc, availableWidth, c.style)
	return availableWidth, l.Height() + max(c.style.PaddingTop, 0) + max(c.style.PaddingBottom, 0)
}

// Layout returns the current layout, or nil when the view has not been
// measured since the document or style last changed.
func (c *Controller) Layout() *layout.Layout {
	l := c.engine.Current()
	if l == nil || l.Version() != c.doc.Version() {
		return nil
	}
	return l
}

// PerformLayout drops the current layout, if any, and lays out again at
// the last measured width. It reports whether a layout was dropped.
func (c *Controller) PerformLayout() bool {
	if c.engine.Current() == nil {
		return false
	}
	c.requestLayout()
	return true
}

// requestLayout invalidates the layout and remeasures when a width is
// known.
func (c *Controller) requestLayout() {
	c.engine.Invalidate()
	if c.measured {
		c.Measure(c.measuredWidth)
	}
}

// Tester returns a hit tester for the view's padding and scroll.
func (c *Controller) Tester() hittest.Tester {
	return hittest.Tester{
		Padding: hittest.InsetsOf(c.style),
		Scroll:  c.scroll,
	}
}

// SpanOrigin returns the anchor point for a popover attached to s, in the
// coordinate space of viewOrigin.
func (c *Controller) SpanOrigin(s span.Span, viewOrigin layout.Point) (layout.Point, error) {
	_, anchor, err := c.Tester().SpanScreenRect(s, c.Layout(), c.doc, viewOrigin)
	return anchor, err
}
