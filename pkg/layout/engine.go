package layout

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/richview/pkg/document"
)

// cacheKey identifies the inputs a layout was computed from.
type cacheKey struct {
	doc     *document.Document
	version uint64
	width   int
	style   Style
}

// Engine caches the most recent layout and recomputes only when the
// document, its version, the width or the style changes.
//
// An Engine is not safe for concurrent use; it belongs to one view.
type Engine struct {
	logger       *log.Logger
	key          cacheKey
	current      *Layout
	computations int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger that reports recomputations at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Layout returns the layout of doc at availableWidth, reusing the cached
// one when nothing changed.
func (e *Engine) Layout(doc *document.Document, availableWidth int, style Style) *Layout {
	key := cacheKey{doc: doc, version: doc.Version(), width: availableWidth, style: style}
	if e.current != nil && e.key == key {
		return e.current
	}

	e.current = Compute(doc, availableWidth, style)
	e.key = key
	e.computations++

	if e.logger != nil {
		e.logger.Debug("layout computed",
			"width", availableWidth,
			"version", key.version,
			"lines", e.current.LineCount(),
			"height", e.current.Height(),
			"computations", e.computations,
		)
	}

	return e.current
}

// Current returns the cached layout, or nil when none has been computed
// since the last Invalidate.
func (e *Engine) Current() *Layout {
	return e.current
}

// Invalidate drops the cached layout so the next Layout call recomputes.
func (e *Engine) Invalidate() {
	e.current = nil
	e.key = cacheKey{}
}

// Computations returns how many layouts the engine has computed.
func (e *Engine) Computations() int {
	return e.computations
}
