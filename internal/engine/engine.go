package engine

import (
	"resume-hotspots/internal/region"
	"resume-hotspots/pkg/geometry"
)

// MinRegionSize is the minimum width and height of a region, in
// authoring units. Drag and resize operations clamp to this floor
// instead of rejecting the gesture.
const MinRegionSize = 20

// HandleHitRadius is the pick distance for resize handles, in display
// pixels.
const HandleHitRadius = 8

// State is the engine's gesture state.
type State int

const (
	StateIdle State = iota
	StateDrawing
	StateDragging
	StateResizing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	case StateDragging:
		return "dragging"
	case StateResizing:
		return "resizing"
	default:
		return "invalid"
	}
}

// Engine owns the live region collection for the edited page and turns
// gesture events into create/move/resize state transitions. Input points
// arrive in display space; the committed region list is always kept in
// authoring space. The engine is single-threaded by design: every
// operation runs synchronously on the UI event callback that caused it.
type Engine struct {
	space Space
	snap  Snapper

	// Measured size of the rendered page. Zero until the renderer
	// reports its dimensions; all geometry operations are suppressed
	// until then.
	displayWidth  float64
	displayHeight float64

	regions  []region.Region
	selected string
	drawMode bool

	state State

	// Drawing: candidate rectangle in display space.
	drawStart geometry.Point2D
	draft     geometry.Rect
	hasDraft  bool

	// Dragging and resizing.
	gestureID    string
	handle       Handle
	origin       geometry.Rect    // authoring-space rect captured at gesture start
	gestureStart geometry.Point2D // display space; resize deltas are absolute from here
	last         geometry.Point2D // display space; drag deltas rebase off this

	draftSeq int
	onChange func([]region.Region)
}

// New creates an engine for the given coordinate space. The engine is
// not usable for geometry until SetDisplaySize reports a measured page.
func New(space Space) *Engine {
	return &Engine{
		space: space,
		snap:  NewSnapper(),
	}
}

// SetOnChange registers the callback invoked with the canonical
// authoring-space region list after every committed change.
func (e *Engine) SetOnChange(fn func([]region.Region)) {
	e.onChange = fn
}

// SetDisplaySize is the "renderer measured" event: the external renderer
// reports the exact pixel size of the rendered page. Non-positive sizes
// are ignored and leave the engine suppressed.
func (e *Engine) SetDisplaySize(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	e.displayWidth = width
	e.displayHeight = height
}

// Ready reports whether the renderer has been measured and geometry
// operations are allowed.
func (e *Engine) Ready() bool {
	return e.displayWidth > 0 && e.space.Valid()
}

// Space returns the engine's coordinate space.
func (e *Engine) Space() Space {
	return e.space
}

// SetSpace replaces the coordinate space, e.g. after loading a resume
// with a different page aspect ratio. Regions are re-clamped so none
// sticks out of the new page.
func (e *Engine) SetSpace(s Space) {
	e.space = s
	e.clampAll()
}

// SetRegions replaces the region collection, discarding any gesture in
// progress. Malformed regions are dropped rather than crashing the
// editing surface; regions that stick out of the page (e.g. persisted
// against a different page size) are clamped into it.
func (e *Engine) SetRegions(regions []region.Region) {
	e.state = StateIdle
	e.hasDraft = false
	e.regions = e.regions[:0]
	for _, r := range regions {
		if r.Validate() != nil {
			continue
		}
		e.regions = append(e.regions, r)
	}
	region.SortByOrder(e.regions)
	e.clampAll()
	if e.selected != "" && e.indexOf(e.selected) < 0 {
		e.selected = ""
	}
}

func (e *Engine) clampAll() {
	if !e.space.Valid() {
		return
	}
	for i := range e.regions {
		e.regions[i].SetRect(e.clampIntoPage(e.regions[i].Rect()))
	}
}

// Regions returns a copy of the committed region list in authoring space.
func (e *Engine) Regions() []region.Region {
	out := make([]region.Region, len(e.regions))
	copy(out, e.regions)
	return out
}

// InProgress returns the display-space candidate rectangle of an active
// draw gesture, for overlay rendering.
func (e *Engine) InProgress() (geometry.Rect, bool) {
	return e.draft, e.hasDraft
}

// State returns the current gesture state.
func (e *Engine) State() State {
	return e.state
}

// SetDrawMode toggles draw mode. Entering draw mode clears the selection.
func (e *Engine) SetDrawMode(on bool) {
	e.drawMode = on
	if on {
		e.selected = ""
	}
}

// DrawMode reports whether draw mode is active.
func (e *Engine) DrawMode() bool {
	return e.drawMode
}

// SetSnapEnabled toggles edge snapping globally.
func (e *Engine) SetSnapEnabled(on bool) {
	e.snap.Enabled = on
}

// SnapEnabled reports whether edge snapping is active.
func (e *Engine) SnapEnabled() bool {
	return e.snap.Enabled
}

// SetSnapThreshold overrides the snap attraction distance, in display
// pixels. Non-positive values are ignored.
func (e *Engine) SetSnapThreshold(t float64) {
	if t > 0 {
		e.snap.Threshold = t
	}
}

// Selected returns the id of the selected region, or "".
func (e *Engine) Selected() string {
	return e.selected
}

// Select marks a region as selected. At most one region is selected at
// a time; selection is required before resize handles are shown or
// delete is permitted.
func (e *Engine) Select(id string) bool {
	if e.indexOf(id) < 0 {
		return false
	}
	e.selected = id
	return true
}

// ClearSelection deselects any selected region.
func (e *Engine) ClearSelection() {
	e.selected = ""
}

// Delete removes a region by id. Remaining order indexes keep their
// gaps until save-time reconciliation.
func (e *Engine) Delete(id string) bool {
	i := e.indexOf(id)
	if i < 0 {
		return false
	}
	e.regions = append(e.regions[:i], e.regions[i+1:]...)
	if e.selected == id {
		e.selected = ""
	}
	e.emit()
	return true
}

// BeginDraw starts sizing a new region from a display-space start point.
// Legal only while draw mode is active and no gesture is in progress.
func (e *Engine) BeginDraw(p geometry.Point2D) {
	if !e.Ready() || e.state != StateIdle || !e.drawMode {
		return
	}
	e.state = StateDrawing
	e.drawStart = p
	e.draft = geometry.RectFromPoints(p, p)
	e.hasDraft = true
}

// BeginDrag starts translating an existing region from a pointer-down on
// its body. Legal only outside draw mode.
func (e *Engine) BeginDrag(id string, p geometry.Point2D) {
	if !e.Ready() || e.state != StateIdle || e.drawMode {
		return
	}
	i := e.indexOf(id)
	if i < 0 {
		return
	}
	e.state = StateDragging
	e.gestureID = id
	e.origin = e.regions[i].Rect()
	e.last = p
}

// BeginResize starts moving one handle of the selected region.
func (e *Engine) BeginResize(id string, h Handle, p geometry.Point2D) {
	if !e.Ready() || e.state != StateIdle || e.drawMode {
		return
	}
	if _, ok := handleTable[h]; !ok {
		return
	}
	i := e.indexOf(id)
	if i < 0 || e.selected != id {
		return
	}
	e.state = StateResizing
	e.gestureID = id
	e.handle = h
	e.origin = e.regions[i].Rect()
	e.gestureStart = p
}

// Move advances the active gesture to a new display-space pointer
// position. A no-op when idle.
func (e *Engine) Move(p geometry.Point2D) {
	switch e.state {
	case StateDrawing:
		e.draft = geometry.RectFromPoints(e.drawStart, p)
	case StateDragging:
		e.moveDrag(p)
	case StateResizing:
		e.moveResize(p)
	}
}

// End resolves the active gesture on pointer release. Drawing commits
// the candidate (or discards it if it has zero area); dragging and
// resizing have already applied their last rectangle, so they simply
// return to idle.
func (e *Engine) End() {
	switch e.state {
	case StateDrawing:
		e.commitDraw()
	case StateDragging, StateResizing:
		// The in-progress rectangle was kept in authoring space
		// throughout; it is already the committed value.
	}
	e.reset()
}

// Cancel resolves a gesture that ended without a regular release, e.g.
// the pointer left the interactive surface. A draw in progress is
// discarded; drag and resize freeze at the last computed rectangle,
// exactly as if the pointer had been released there.
func (e *Engine) Cancel() {
	// Drawing is the only state with uncommitted geometry to discard.
	e.reset()
}

// HitTest resolves a display-space point against the selected region's
// handles first, then against region bodies in top-most-first z order.
// It returns the hit region id and HandleNone for a body hit.
func (e *Engine) HitTest(p geometry.Point2D) (string, Handle) {
	if !e.Ready() {
		return "", HandleNone
	}
	if e.selected != "" {
		if i := e.indexOf(e.selected); i >= 0 {
			for _, hp := range handlePoints(e.displayRect(e.regions[i])) {
				if p.Distance(hp.p) <= HandleHitRadius {
					return e.selected, hp.h
				}
			}
		}
	}
	for i := len(e.regions) - 1; i >= 0; i-- {
		if e.displayRect(e.regions[i]).Contains(p) {
			return e.regions[i].ID, HandleNone
		}
	}
	return "", HandleNone
}

// DisplayRect converts a region's authoring rectangle to display space
// for the current render width.
func (e *Engine) DisplayRect(r region.Region) geometry.Rect {
	return e.displayRect(r)
}

func (e *Engine) displayRect(r region.Region) geometry.Rect {
	return r.Rect().Scale(e.displayWidth / e.space.AuthoringWidth)
}

func (e *Engine) indexOf(id string) int {
	for i, r := range e.regions {
		if r.ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) reset() {
	e.state = StateIdle
	e.hasDraft = false
	e.gestureID = ""
	e.handle = HandleNone
}

func (e *Engine) emit() {
	if e.onChange != nil {
		e.onChange(e.Regions())
	}
}

func (e *Engine) nextOrderIndex() int {
	next := 0
	for _, r := range e.regions {
		if r.OrderIndex >= next {
			next = r.OrderIndex + 1
		}
	}
	return next
}

// snapTargets collects display-space snap targets for one axis: the page
// boundaries first, then every edge of every region except the one being
// manipulated, in region order. Target order is the snap tie-break.
func (e *Engine) snapTargets(excludeID string, vertical bool) []float64 {
	var targets []float64
	if vertical {
		targets = append(targets, 0, e.space.DisplayHeight(e.displayWidth))
	} else {
		targets = append(targets, 0, e.displayWidth)
	}
	for _, r := range e.regions {
		if r.ID == excludeID {
			continue
		}
		dr := e.displayRect(r)
		if vertical {
			targets = append(targets, dr.Y, dr.Bottom())
		} else {
			targets = append(targets, dr.X, dr.Right())
		}
	}
	return targets
}

// commitDraw turns the draw candidate into a committed region: each edge
// is snap-resolved independently, the result converted to authoring
// space, clamped into the page, and appended with a draft id and the
// next order index. Zero-area candidates are discarded silently.
func (e *Engine) commitDraw() {
	if !e.hasDraft || e.draft.Empty() {
		return
	}

	tx := e.snapTargets("", false)
	ty := e.snapTargets("", true)
	x1, _ := e.snap.Resolve(e.draft.X, tx)
	x2, _ := e.snap.Resolve(e.draft.Right(), tx)
	y1, _ := e.snap.Resolve(e.draft.Y, ty)
	y2, _ := e.snap.Resolve(e.draft.Bottom(), ty)

	rect := geometry.Rect{
		X:      e.space.ToAuthoring(x1, e.displayWidth),
		Y:      e.space.ToAuthoring(y1, e.displayWidth),
		Width:  e.space.ToAuthoring(x2-x1, e.displayWidth),
		Height: e.space.ToAuthoring(y2-y1, e.displayWidth),
	}
	// Snapping can collapse both edges onto the same target.
	if rect.Empty() {
		return
	}
	rect = e.clampIntoPage(rect)

	e.draftSeq++
	e.regions = append(e.regions, region.Region{
		ID:         region.DraftID(e.draftSeq),
		X:          rect.X,
		Y:          rect.Y,
		Width:      rect.Width,
		Height:     rect.Height,
		PageNumber: 1,
		OrderIndex: e.nextOrderIndex(),
	})
	e.emit()
}

// clampIntoPage enforces the minimum size floor and keeps the rectangle
// inside [0, authoringWidth] x [0, authoringHeight].
func (e *Engine) clampIntoPage(r geometry.Rect) geometry.Rect {
	r.Width = geometry.Clamp(r.Width, MinRegionSize, e.space.AuthoringWidth)
	r.Height = geometry.Clamp(r.Height, MinRegionSize, e.space.AuthoringHeight)
	r.X = geometry.Clamp(r.X, 0, e.space.AuthoringWidth-r.Width)
	r.Y = geometry.Clamp(r.Y, 0, e.space.AuthoringHeight-r.Height)
	return r
}

// moveDrag translates the dragged region by the delta from the last
// pointer position. Each move rebases off the previous one so the region
// tracks continuous drag motion smoothly.
func (e *Engine) moveDrag(p geometry.Point2D) {
	i := e.indexOf(e.gestureID)
	if i < 0 {
		e.reset()
		return
	}
	r := e.regions[i].Rect()
	r.X += e.space.ToAuthoring(p.X-e.last.X, e.displayWidth)
	r.Y += e.space.ToAuthoring(p.Y-e.last.Y, e.displayWidth)
	e.last = p

	r.X = e.snapAxisPosition(r.X, r.Width, e.snapTargets(e.gestureID, false))
	r.Y = e.snapAxisPosition(r.Y, r.Height, e.snapTargets(e.gestureID, true))

	r.X = geometry.Clamp(r.X, 0, e.space.AuthoringWidth-r.Width)
	r.Y = geometry.Clamp(r.Y, 0, e.space.AuthoringHeight-r.Height)

	e.regions[i].SetRect(r)
	e.emit()
}

// snapAxisPosition snaps a dragged region's position along one axis: the
// leading edge is tried first, then the trailing edge. Values move
// through display space so the pixel threshold is consistent at any
// render width.
func (e *Engine) snapAxisPosition(pos, size float64, targets []float64) float64 {
	lead := e.space.ToDisplay(pos, e.displayWidth)
	if snapped, ok := e.snap.Resolve(lead, targets); ok {
		return e.space.ToAuthoring(snapped, e.displayWidth)
	}
	trail := e.space.ToDisplay(pos+size, e.displayWidth)
	if snapped, ok := e.snap.Resolve(trail, targets); ok {
		return e.space.ToAuthoring(snapped, e.displayWidth) - size
	}
	return pos
}

// moveResize recomputes the resized rectangle from the original captured
// rect and the total delta since the gesture start (absolute, unlike
// dragging), snaps the moved edges, and clamps each moved edge so the
// size floor and page containment hold with the opposite edge fixed.
func (e *Engine) moveResize(p geometry.Point2D) {
	i := e.indexOf(e.gestureID)
	if i < 0 {
		e.reset()
		return
	}
	dx := e.space.ToAuthoring(p.X-e.gestureStart.X, e.displayWidth)
	dy := e.space.ToAuthoring(p.Y-e.gestureStart.Y, e.displayWidth)
	r := e.handle.apply(e.origin, dx, dy)

	tx := e.snapTargets(e.gestureID, false)
	ty := e.snapTargets(e.gestureID, true)

	if e.handle.movesWest() {
		right := r.Right()
		left := e.snapEdge(r.X, tx)
		left = geometry.Clamp(left, 0, right-MinRegionSize)
		r.X = left
		r.Width = right - left
	}
	if e.handle.movesEast() {
		right := e.snapEdge(r.Right(), tx)
		right = geometry.Clamp(right, r.X+MinRegionSize, e.space.AuthoringWidth)
		r.Width = right - r.X
	}
	if e.handle.movesNorth() {
		bottom := r.Bottom()
		top := e.snapEdge(r.Y, ty)
		top = geometry.Clamp(top, 0, bottom-MinRegionSize)
		r.Y = top
		r.Height = bottom - top
	}
	if e.handle.movesSouth() {
		bottom := e.snapEdge(r.Bottom(), ty)
		bottom = geometry.Clamp(bottom, r.Y+MinRegionSize, e.space.AuthoringHeight)
		r.Height = bottom - r.Y
	}

	e.regions[i].SetRect(r)
	e.emit()
}

// snapEdge snap-resolves a single authoring-space edge coordinate
// against display-space targets.
func (e *Engine) snapEdge(v float64, targets []float64) float64 {
	d := e.space.ToDisplay(v, e.displayWidth)
	if snapped, ok := e.snap.Resolve(d, targets); ok {
		return e.space.ToAuthoring(snapped, e.displayWidth)
	}
	return v
}
