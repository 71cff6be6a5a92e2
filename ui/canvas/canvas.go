// Package canvas provides the page canvas: the resume page bitmap with
// the hot zone editor drawn on top.
package canvas

import (
	"image"

	"resume-hotspots/internal/engine"
	"resume-hotspots/pkg/geometry"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const (
	minZoom  = 0.25
	maxZoom  = 4.0
	zoomStep = 1.25
)

// PageCanvas displays the page image and routes pointer gestures into
// the zone editor. Zone rectangles live in authoring coordinates; the
// canvas reports its content size to the engine so the engine can
// convert, and feeds it pointer positions in content pixels.
type PageCanvas struct {
	widget.BaseWidget

	engine   *engine.Engine
	gestures *engine.Controller

	page   image.Image
	raster *fynecanvas.Raster
	zoom   float64

	scroll  *zoomScroll
	surface *pointerSurface
	imgSize fyne.Size

	onZoomChange func(zoom float64)
}

// NewPageCanvas creates a canvas bound to a zone editor.
func NewPageCanvas(e *engine.Engine) *PageCanvas {
	pc := &PageCanvas{
		engine:   e,
		gestures: engine.NewController(e),
		zoom:     1.0,
		imgSize:  fyne.NewSize(400, 566),
	}

	pc.raster = fynecanvas.NewRaster(pc.draw)
	pc.raster.ScaleMode = fynecanvas.ImageScalePixels
	pc.raster.SetMinSize(pc.imgSize)

	pc.surface = newPointerSurface(pc, pc.raster)
	pc.scroll = newZoomScroll(pc.surface, pc)

	pc.ExtendBaseWidget(pc)
	return pc
}

// Gestures returns the gesture controller, for wiring selection
// callbacks.
func (pc *PageCanvas) Gestures() *engine.Controller {
	return pc.gestures
}

// Container returns the canvas container for embedding in layouts.
func (pc *PageCanvas) Container() fyne.CanvasObject {
	return pc.scroll
}

// SetPage sets the page bitmap. The canvas sizes its content to the
// bitmap at the current zoom and reports the new display size to the
// engine. A nil image clears the page and suppresses editing.
func (pc *PageCanvas) SetPage(img image.Image) {
	pc.page = img
	pc.updateContentSize()
}

// SetZoom sets the zoom level relative to the bitmap's native size.
func (pc *PageCanvas) SetZoom(zoom float64) {
	if zoom < minZoom {
		zoom = minZoom
	}
	if zoom > maxZoom {
		zoom = maxZoom
	}
	pc.zoom = zoom
	pc.updateContentSize()

	if pc.onZoomChange != nil {
		pc.onZoomChange(zoom)
	}
}

// Zoom returns the current zoom level.
func (pc *PageCanvas) Zoom() float64 {
	return pc.zoom
}

// ZoomIn increases the zoom level.
func (pc *PageCanvas) ZoomIn() {
	pc.SetZoom(pc.zoom * zoomStep)
}

// ZoomOut decreases the zoom level.
func (pc *PageCanvas) ZoomOut() {
	pc.SetZoom(pc.zoom / zoomStep)
}

// FitToWindow adjusts zoom so the whole page fits the visible area.
func (pc *PageCanvas) FitToWindow() {
	if pc.page == nil {
		return
	}
	viewSize := pc.scroll.Size()
	if viewSize.Width <= 0 || viewSize.Height <= 0 {
		return
	}

	b := pc.page.Bounds()
	zoomX := float64(viewSize.Width) / float64(b.Dx())
	zoomY := float64(viewSize.Height) / float64(b.Dy())

	zoom := zoomX
	if zoomY < zoomX {
		zoom = zoomY
	}
	pc.SetZoom(zoom * 0.95) // Leave a small margin
}

// OnZoomChange sets a callback for zoom changes.
func (pc *PageCanvas) OnZoomChange(callback func(zoom float64)) {
	pc.onZoomChange = callback
}

// Refresh refreshes the canvas display.
func (pc *PageCanvas) Refresh() {
	pc.raster.Refresh()
}

func (pc *PageCanvas) updateContentSize() {
	if pc.page == nil {
		pc.imgSize = fyne.NewSize(400, 566)
	} else {
		b := pc.page.Bounds()
		pc.imgSize = fyne.NewSize(
			float32(float64(b.Dx())*pc.zoom),
			float32(float64(b.Dy())*pc.zoom),
		)
		pc.engine.SetDisplaySize(float64(pc.imgSize.Width), float64(pc.imgSize.Height))
	}

	pc.raster.SetMinSize(pc.imgSize)
	pc.raster.Resize(pc.imgSize)
	if pc.surface != nil {
		pc.surface.Resize(pc.imgSize)
		pc.surface.Refresh()
	}
	pc.raster.Refresh()
	if pc.scroll != nil {
		pc.scroll.Refresh()
	}
}

// CreateRenderer implements fyne.Widget.
func (pc *PageCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(pc.scroll)
}

// zoomScroll wraps a scroll container but intercepts the wheel for zoom.
type zoomScroll struct {
	widget.BaseWidget
	scroll *container.Scroll
	canvas *PageCanvas
}

func newZoomScroll(content fyne.CanvasObject, canvas *PageCanvas) *zoomScroll {
	scroll := container.NewScroll(content)
	scroll.Direction = container.ScrollBoth
	zs := &zoomScroll{scroll: scroll, canvas: canvas}
	zs.ExtendBaseWidget(zs)
	return zs
}

func (zs *zoomScroll) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		zs.canvas.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		zs.canvas.ZoomOut()
	}
}

func (zs *zoomScroll) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(zs.scroll)
}

func (zs *zoomScroll) Size() fyne.Size {
	return zs.scroll.Size()
}

func (zs *zoomScroll) Refresh() {
	zs.scroll.Refresh()
	zs.BaseWidget.Refresh()
}

func (zs *zoomScroll) Resize(size fyne.Size) {
	zs.scroll.Resize(size)
	zs.BaseWidget.Resize(size)
}

// pointerSurface wraps the raster and translates mouse events into
// gesture controller calls. Event positions are relative to the
// surface, which is sized to the page content, so they are already
// display coordinates.
type pointerSurface struct {
	widget.BaseWidget
	canvas *PageCanvas
	raster *fynecanvas.Raster
}

var _ desktop.Mouseable = (*pointerSurface)(nil)
var _ desktop.Hoverable = (*pointerSurface)(nil)
var _ fyne.Draggable = (*pointerSurface)(nil)

func newPointerSurface(pc *PageCanvas, raster *fynecanvas.Raster) *pointerSurface {
	ps := &pointerSurface{canvas: pc, raster: raster}
	ps.ExtendBaseWidget(ps)
	return ps
}

func (ps *pointerSurface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(ps.raster)
}

func (ps *pointerSurface) MinSize() fyne.Size {
	return ps.raster.MinSize()
}

func (ps *pointerSurface) MouseDown(ev *desktop.MouseEvent) {
	ps.canvas.gestures.PointerDown(ps.point(ev.Position), 1)
	ps.canvas.Refresh()
}

func (ps *pointerSurface) MouseUp(*desktop.MouseEvent) {
	ps.canvas.gestures.PointerUp(0)
	ps.canvas.Refresh()
}

func (ps *pointerSurface) Dragged(ev *fyne.DragEvent) {
	ps.canvas.gestures.PointerMove(ps.point(ev.Position), 1)
	ps.canvas.Refresh()
}

func (ps *pointerSurface) DragEnd() {
	// MouseUp already resolved the gesture.
}

func (ps *pointerSurface) MouseIn(*desktop.MouseEvent) {}

func (ps *pointerSurface) MouseMoved(*desktop.MouseEvent) {}

// MouseOut ends any in-flight gesture with release semantics.
func (ps *pointerSurface) MouseOut() {
	ps.canvas.gestures.PointerLeave()
	ps.canvas.Refresh()
}

func (ps *pointerSurface) point(pos fyne.Position) geometry.Point2D {
	return geometry.NewPoint2D(float64(pos.X), float64(pos.Y))
}
