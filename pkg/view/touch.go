package view

import (
	"github.com/yaklabco/richview/pkg/hittest"
	"github.com/yaklabco/richview/pkg/layout"
	"github.com/yaklabco/richview/pkg/span"
)

// Action is the kind of a touch event.
type Action uint8

// Touch actions.
const (
	ActionDown Action = iota
	ActionMove
	ActionUp
	ActionCancel
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	case ActionCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Event is a touch in view coordinates.
type Event struct {
	Action Action
	X      int
	Y      int
}

// Point returns the event position.
func (e Event) Point() layout.Point {
	return layout.Point{X: e.X, Y: e.Y}
}

// State is the per-gesture touch state.
type State uint8

// Touch states. A gesture goes Idle -> Pressed on down, Pressed ->
// Resolved on up while spans are dispatched, then back to Idle.
const (
	StateIdle State = iota
	StatePressed
	StateResolved
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePressed:
		return "pressed"
	case StateResolved:
		return "resolved"
	default:
		return "idle"
	}
}

// State returns the touch state.
func (c *Controller) State() State {
	return c.state
}

// Pressed returns the hit result of the gesture's down event. It is only
// meaningful in StatePressed.
func (c *Controller) Pressed() hittest.Result {
	return c.pressed
}

// Touch feeds one touch event through the gesture state machine and
// reports whether the view handled it. Without a layout the gesture is
// left to default handling.
func (c *Controller) Touch(ev Event) bool {
	switch ev.Action {
	case ActionDown:
		l := c.Layout()
		if l == nil {
			c.state = StateIdle
			return false
		}
		result, err := c.Tester().HitTest(l, c.doc, ev.Point())
		if err != nil {
			c.state = StateIdle
			return false
		}
		c.pressed = result
		c.state = StatePressed
		return true

	case ActionMove:
		return c.state == StatePressed

	case ActionUp:
		l := c.Layout()
		if c.state != StatePressed || l == nil {
			c.state = StateIdle
			return false
		}
		result, err := c.Tester().HitTest(l, c.doc, ev.Point())
		if err != nil {
			c.state = StateIdle
			return false
		}

		c.state = StateResolved
		c.resolve(result.Spans)
		c.state = StateIdle
		return true

	case ActionCancel:
		handled := c.state == StatePressed
		c.state = StateIdle
		return handled

	default:
		return false
	}
}

// resolve activates the spans under a finished gesture. The first
// playable span toggles and suppresses navigation; otherwise clickable
// spans are dispatched.
func (c *Controller) resolve(spans []span.Span) {
	for _, s := range spans {
		if playable, ok := s.(span.Playable); ok {
			c.toggle(playable)
			return
		}
	}

	var clickable []span.Span
	for _, s := range spans {
		if _, ok := s.(span.Clickable); ok {
			clickable = append(clickable, s)
		}
	}
	if len(clickable) > 0 {
		c.OnSpansResolved(clickable)
	}
}

func (c *Controller) toggle(p span.Playable) {
	if p.Running() {
		p.Stop()
		c.logger.Debug("playback stopped", "kind", p.Kind())
		return
	}
	p.Start()
	c.logger.Debug("playback started", "kind", p.Kind(), "running", p.Running())
}

// OnSpansResolved dispatches activated spans in order. The observer may
// claim each one; unclaimed YouTube and link spans open their URL and
// unsupported content opens the fallback viewer. Handler failures are
// logged and never returned.
func (c *Controller) OnSpansResolved(spans []span.Span) {
	for _, s := range spans {
		if c.observer != nil && c.observer.OnSpanClicked(s) {
			continue
		}
		if c.handlers == nil {
			c.logger.Debug("no handlers for span", "kind", s.Kind())
			continue
		}

		var err error
		switch target := s.(type) {
		case *span.Unsupported:
			err = c.handlers.ShowFallback(target.URL)
		case span.Clickable:
			err = c.handlers.OpenURL(target.Target())
		default:
			continue
		}

		if err != nil {
			c.logger.Warn("could not open span", "kind", s.Kind(), "error", err)
		}
	}
}
