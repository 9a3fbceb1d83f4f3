package view

import "github.com/yaklabco/richview/pkg/span"

// Alive implements span.Host.
func (c *Controller) Alive() bool {
	return c.attached
}

// ContentWidth implements span.Host. It is zero before the first Measure.
func (c *Controller) ContentWidth() int {
	if !c.measured {
		return 0
	}
	return c.style.ContentWidth(c.measuredWidth)
}

// ContentLoaded implements span.Host. A span that finished loading while
// still displayed forces a relayout; calls for spans of a replaced
// document or a detached view are ignored.
func (c *Controller) ContentLoaded(s span.Span) {
	if !c.attached || !c.doc.Contains(s) {
		c.logger.Debug("ignoring content loaded for stale span", "kind", s.Kind())
		return
	}
	c.PerformLayout()
}

// NewPlayer implements span.Host.
func (c *Controller) NewPlayer(uri string) span.Player {
	if c.players == nil {
		c.logger.Debug("no player factory", "uri", uri)
		return nil
	}
	return c.players.NewPlayer(uri)
}

// Download implements span.Host.
func (c *Controller) Download(url string, done func(span.Image)) {
	if c.downloader == nil {
		c.logger.Debug("no downloader", "url", url)
		return
	}
	c.downloader.Download(url, done)
}
