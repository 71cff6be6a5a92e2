package engine

import "resume-hotspots/pkg/geometry"

// Controller translates raw pointer/touch events into engine gestures.
// It decides what a pointer-down means (draw a new region, drag a body,
// move a resize handle, or clear the selection) and guarantees that only
// one gesture is active at a time. Multi-touch
// input belongs to the viewer's pinch-zoom transform, never to the
// engine: any event carrying two or more touch points is withheld.
type Controller struct {
	engine *Engine

	active   bool // single-pointer gesture in flight
	pinching bool // 2+ touch points captured by the viewer surface

	onSelectionChanged func(id string)
}

// NewController creates a controller for the given engine.
func NewController(e *Engine) *Controller {
	return &Controller{engine: e}
}

// SetOnSelectionChanged registers a callback fired when a pointer-down
// changes which region is selected.
func (c *Controller) SetOnSelectionChanged(fn func(id string)) {
	c.onSelectionChanged = fn
}

// Active reports whether a gesture is currently in flight.
func (c *Controller) Active() bool {
	return c.active
}

// PointerDown dispatches a pointer press at a display-space position.
// touchCount is the number of touch points on the surface after this
// press; 1 for mouse input.
func (c *Controller) PointerDown(p geometry.Point2D, touchCount int) {
	if touchCount >= 2 {
		// A second finger landed: the surface is now pinching. An
		// in-flight gesture resolves with its release semantics.
		if c.active {
			c.engine.Cancel()
			c.active = false
		}
		c.pinching = true
		return
	}
	if c.pinching || c.active {
		// New gesture intents are ignored while another is in progress.
		return
	}

	if c.engine.DrawMode() {
		c.engine.BeginDraw(p)
		c.active = c.engine.State() == StateDrawing
		return
	}

	id, h := c.engine.HitTest(p)
	switch {
	case h != HandleNone:
		c.engine.BeginResize(id, h, p)
		c.active = c.engine.State() == StateResizing
	case id != "":
		c.changeSelection(id)
		c.engine.BeginDrag(id, p)
		c.active = c.engine.State() == StateDragging
	default:
		// Click on empty canvas space clears the selection.
		c.changeSelection("")
	}
}

// PointerMove advances the active gesture. Moves are dropped while the
// surface is pinching.
func (c *Controller) PointerMove(p geometry.Point2D, touchCount int) {
	if c.pinching || touchCount >= 2 {
		return
	}
	if c.active {
		c.engine.Move(p)
	}
}

// PointerUp resolves the active gesture, if any. When the last pinch
// finger lifts, the surface returns to normal dispatch.
func (c *Controller) PointerUp(touchCount int) {
	if c.pinching {
		if touchCount == 0 {
			c.pinching = false
		}
		return
	}
	if c.active {
		c.engine.End()
		c.active = false
	}
}

// PointerLeave handles the pointer leaving the interactive surface mid
// gesture. The engine receives the same release semantics the gesture
// expects: a draw in progress is discarded, drag and resize freeze at
// the last computed rectangle.
func (c *Controller) PointerLeave() {
	c.pinching = false
	if c.active {
		c.engine.Cancel()
		c.active = false
	}
}

func (c *Controller) changeSelection(id string) {
	prev := c.engine.Selected()
	if id == "" {
		c.engine.ClearSelection()
	} else if !c.engine.Select(id) {
		return
	}
	if prev != id && c.onSelectionChanged != nil {
		c.onSelectionChanged(id)
	}
}
