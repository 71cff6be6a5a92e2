package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"resume-hotspots/internal/region"
	"resume-hotspots/pkg/geometry"
)

const a4Aspect = 1123.0 / 794.0

// newTestEngine returns an engine for an A4-shaped page rendered at 1:1
// scale (display width equals the authoring width).
func newTestEngine() *Engine {
	e := New(NewSpace(DefaultAuthoringWidth, a4Aspect))
	e.SetDisplaySize(794, 1123)
	return e
}

func pt(x, y float64) geometry.Point2D {
	return geometry.Point2D{X: x, Y: y}
}

func draw(e *Engine, from, to geometry.Point2D) {
	e.SetDrawMode(true)
	e.BeginDraw(from)
	e.Move(to)
	e.End()
	e.SetDrawMode(false)
}

func TestDrawCreatesRegion(t *testing.T) {
	e := newTestEngine()
	draw(e, pt(100, 100), pt(300, 250))

	regions := e.Regions()
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	r := regions[0]
	want := region.Region{ID: r.ID, X: 100, Y: 100, Width: 200, Height: 150, PageNumber: 1, OrderIndex: 0}
	if diff := cmp.Diff(want, r); diff != "" {
		t.Fatalf("drawn region mismatch (-want +got):\n%s", diff)
	}
	if !r.IsDraft() {
		t.Fatalf("new region id %q is not a draft id", r.ID)
	}
}

func TestDrawReversedDirection(t *testing.T) {
	// Dragging up-left from the start point yields the same normalized
	// rectangle as dragging down-right.
	forward := newTestEngine()
	draw(forward, pt(100, 100), pt(300, 250))
	reversed := newTestEngine()
	draw(reversed, pt(300, 250), pt(100, 100))

	f, r := forward.Regions()[0], reversed.Regions()[0]
	if f.Rect() != r.Rect() {
		t.Fatalf("reversed draw rect %+v, want %+v", r.Rect(), f.Rect())
	}
}

func TestDrawZeroAreaDiscarded(t *testing.T) {
	e := newTestEngine()
	e.SetDrawMode(true)
	e.BeginDraw(pt(150, 150))
	e.Move(pt(150, 150))
	e.End()

	if n := len(e.Regions()); n != 0 {
		t.Fatalf("zero-area draw committed %d regions, want 0", n)
	}
	if e.State() != StateIdle {
		t.Fatalf("state after release = %v, want idle", e.State())
	}
}

func TestDrawSnapsToSiblingEdge(t *testing.T) {
	e := newTestEngine()
	e.SetRegions([]region.Region{
		{ID: "rgn-1", X: 0, Y: 0, Width: 200, Height: 100, PageNumber: 1, OrderIndex: 0},
	})

	// 205 is within 10 display pixels of the sibling's right edge at 200.
	draw(e, pt(205, 300), pt(400, 420))

	regions := e.Regions()
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(regions))
	}
	if got := regions[1].X; got != 200 {
		t.Fatalf("snapped x = %g, want 200", got)
	}
	if got := regions[1].Width; got != 200 {
		t.Fatalf("width after snap = %g, want 200", got)
	}
}

func TestDrawRequiresDrawMode(t *testing.T) {
	e := newTestEngine()
	e.BeginDraw(pt(10, 10))
	if e.State() != StateIdle {
		t.Fatalf("draw started outside draw mode, state = %v", e.State())
	}
}

func TestGeometrySuppressedUntilMeasured(t *testing.T) {
	e := New(NewSpace(DefaultAuthoringWidth, a4Aspect))
	e.SetDrawMode(true)
	e.BeginDraw(pt(10, 10))
	if e.State() != StateIdle {
		t.Fatal("draw started before the renderer was measured")
	}

	e.SetDisplaySize(0, 0) // invalid, still suppressed
	e.BeginDraw(pt(10, 10))
	if e.State() != StateIdle {
		t.Fatal("draw started with a non-positive display width")
	}

	e.SetDisplaySize(794, 1123)
	e.BeginDraw(pt(10, 10))
	if e.State() != StateDrawing {
		t.Fatal("draw did not start after measurement")
	}
}

func TestDragMovesAndClamps(t *testing.T) {
	// Page of authoring width 100: a +1000 drag clamps x to 100-50=50.
	e := New(NewSpace(100, 1))
	e.SetDisplaySize(100, 100)
	e.SetSnapEnabled(false)
	e.SetRegions([]region.Region{
		{ID: "rgn-1", X: 10, Y: 10, Width: 50, Height: 50, PageNumber: 1, OrderIndex: 0},
	})

	e.BeginDrag("rgn-1", pt(35, 35))
	e.Move(pt(1035, 35))
	e.End()

	r := e.Regions()[0]
	if r.X != 50 || r.Y != 10 {
		t.Fatalf("dragged region at (%g,%g), want (50,10)", r.X, r.Y)
	}
}

func TestDragIsIncremental(t *testing.T) {
	e := newTestEngine()
	e.SetRegions([]region.Region{
		{ID: "rgn-1", X: 300, Y: 300, Width: 100, Height: 100, PageNumber: 1, OrderIndex: 0},
	})

	e.BeginDrag("rgn-1", pt(350, 350))
	e.Move(pt(380, 350)) // +30
	e.Move(pt(380, 390)) // +40 in y, rebased off the previous move
	e.End()

	r := e.Regions()[0]
	if r.X != 330 || r.Y != 340 {
		t.Fatalf("region at (%g,%g), want (330,340)", r.X, r.Y)
	}
}

func TestDragSnapsToSibling(t *testing.T) {
	e := newTestEngine()
	e.SetRegions([]region.Region{
		{ID: "rgn-1", X: 0, Y: 0, Width: 200, Height: 100, PageNumber: 1, OrderIndex: 0},
		{ID: "rgn-2", X: 400, Y: 300, Width: 100, Height: 100, PageNumber: 1, OrderIndex: 1},
	})

	// Drag rgn-2 so its left edge lands at 206: within threshold of the
	// sibling edge at 200.
	e.BeginDrag("rgn-2", pt(450, 350))
	e.Move(pt(256, 350))
	e.End()

	r := e.Regions()[1]
	if r.X != 200 {
		t.Fatalf("dragged x = %g, want snap to 200", r.X)
	}
	if r.Y != 300 {
		t.Fatalf("y moved to %g during horizontal drag, want 300", r.Y)
	}
}

func TestDragKeepsExactAlignment(t *testing.T) {
	// An edge sitting exactly on a snap target counts as snapped; the
	// opposite edge never gets a chance to pull the region off its
	// alignment.
	e := newTestEngine()
	e.SetRegions([]region.Region{
		{ID: "rgn-1", X: 100, Y: 50, Width: 95, Height: 50, PageNumber: 1, OrderIndex: 0},
		{ID: "rgn-2", X: 100, Y: 500, Width: 100, Height: 50, PageNumber: 1, OrderIndex: 1},
	})

	// rgn-1's left edge is aligned with rgn-2's at 100 while its right
	// edge (195) is within threshold of rgn-2's right edge (200). A
	// zero-delta drag must not move it.
	e.BeginDrag("rgn-1", pt(120, 70))
	e.Move(pt(120, 70))
	e.End()

	if got := e.Regions()[0].X; got != 100 {
		t.Fatalf("aligned region pulled to x = %g, want 100", got)
	}
}

func TestResizeEastFloor(t *testing.T) {
	e := newTestEngine()
	e.SetRegions([]region.Region{
		{ID: "rgn-1", X: 100, Y: 400, Width: 30, Height: 30, PageNumber: 1, OrderIndex: 0},
	})
	e.Select("rgn-1")

	// Handle e dragged 50 units left: width clamps to the 20-unit
	// floor, never negative.
	e.BeginResize("rgn-1", HandleE, pt(130, 415))
	e.Move(pt(80, 415))
	e.End()

	r := e.Regions()[0]
	if r.Width != 20 {
		t.Fatalf("width = %g, want 20", r.Width)
	}
	if r.X != 100 || r.Height != 30 {
		t.Fatalf("handle e moved other edges: %+v", r)
	}
}

func TestResizeHandleTable(t *testing.T) {
	// Each handle moves exactly the edges it implies.
	base := region.Region{ID: "rgn-1", X: 300, Y: 300, Width: 100, Height: 100, PageNumber: 1, OrderIndex: 0}
	tests := []struct {
		handle Handle
		start  geometry.Point2D
		want   geometry.Rect
	}{
		{HandleNW, pt(300, 300), geometry.NewRect(330, 330, 70, 70)},
		{HandleN, pt(350, 300), geometry.NewRect(300, 330, 100, 70)},
		{HandleNE, pt(400, 300), geometry.NewRect(300, 330, 130, 70)},
		{HandleE, pt(400, 350), geometry.NewRect(300, 300, 130, 100)},
		{HandleSE, pt(400, 400), geometry.NewRect(300, 300, 130, 130)},
		{HandleS, pt(350, 400), geometry.NewRect(300, 300, 100, 130)},
		{HandleSW, pt(300, 400), geometry.NewRect(330, 300, 70, 130)},
		{HandleW, pt(300, 350), geometry.NewRect(330, 300, 70, 100)},
	}

	for _, tt := range tests {
		e := newTestEngine()
		e.SetSnapEnabled(false)
		e.SetRegions([]region.Region{base})
		e.Select("rgn-1")

		e.BeginResize("rgn-1", tt.handle, tt.start)
		e.Move(tt.start.Add(pt(30, 30)))
		e.End()

		if got := e.Regions()[0].Rect(); got != tt.want {
			t.Fatalf("handle %v: rect %+v, want %+v", tt.handle, got, tt.want)
		}
	}
}

func TestResizeDeltaIsAbsolute(t *testing.T) {
	// Resize deltas are always relative to the original captured
	// rectangle, not to the previous move.
	e := newTestEngine()
	e.SetSnapEnabled(false)
	e.SetRegions([]region.Region{
		{ID: "rgn-1", X: 300, Y: 300, Width: 100, Height: 100, PageNumber: 1, OrderIndex: 0},
	})
	e.Select("rgn-1")

	e.BeginResize("rgn-1", HandleSE, pt(400, 400))
	e.Move(pt(450, 450))
	e.Move(pt(420, 420)) // back toward the start: total delta is +20
	e.End()

	r := e.Regions()[0]
	if r.Width != 120 || r.Height != 120 {
		t.Fatalf("size = %gx%g, want 120x120", r.Width, r.Height)
	}
}

func TestResizeContainment(t *testing.T) {
	e := newTestEngine()
	e.SetSnapEnabled(false)
	e.SetRegions([]region.Region{
		{ID: "rgn-1", X: 600, Y: 900, Width: 100, Height: 100, PageNumber: 1, OrderIndex: 0},
	})
	e.Select("rgn-1")

	e.BeginResize("rgn-1", HandleSE, pt(700, 1000))
	e.Move(pt(2000, 3000))
	e.End()

	r := e.Regions()[0].Rect()
	if r.Right() != 794 {
		t.Fatalf("right edge = %g, want clamp at 794", r.Right())
	}
	if r.Bottom() != 1123 {
		t.Fatalf("bottom edge = %g, want clamp at 1123", r.Bottom())
	}
}

func TestOversizeRegionStaysOnPage(t *testing.T) {
	// A persisted region wider than the page is clamped on load, so a
	// later drag cannot push it off the left edge.
	e := newTestEngine()
	e.SetRegions([]region.Region{
		{ID: "rgn-1", X: 0, Y: 0, Width: 2000, Height: 100, PageNumber: 1, OrderIndex: 0},
	})

	r := e.Regions()[0]
	if r.Width != 794 {
		t.Fatalf("width after load = %g, want the page width 794", r.Width)
	}

	e.BeginDrag("rgn-1", pt(100, 50))
	e.Move(pt(99, 50))
	e.End()

	r = e.Regions()[0]
	if r.X < 0 || r.Rect().Right() > 794 {
		t.Fatalf("region escaped the page: %+v", r)
	}
}

func TestResizeRequiresSelection(t *testing.T) {
	e := newTestEngine()
	e.SetRegions([]region.Region{
		{ID: "rgn-1", X: 100, Y: 100, Width: 100, Height: 100, PageNumber: 1, OrderIndex: 0},
	})
	e.BeginResize("rgn-1", HandleE, pt(200, 150))
	if e.State() != StateIdle {
		t.Fatal("resize started without selection")
	}
}

func TestCancelDiscardsDraw(t *testing.T) {
	e := newTestEngine()
	e.SetDrawMode(true)
	e.BeginDraw(pt(100, 100))
	e.Move(pt(300, 250))
	e.Cancel()

	if n := len(e.Regions()); n != 0 {
		t.Fatalf("cancelled draw committed %d regions, want 0", n)
	}
	if _, ok := e.InProgress(); ok {
		t.Fatal("draft rectangle survived cancel")
	}
}

func TestCancelFreezesDrag(t *testing.T) {
	// Drag ends wherever the pointer last was: an interrupted drag
	// keeps the last computed rectangle, with no rollback.
	e := newTestEngine()
	e.SetRegions([]region.Region{
		{ID: "rgn-1", X: 300, Y: 300, Width: 100, Height: 100, PageNumber: 1, OrderIndex: 0},
	})

	e.BeginDrag("rgn-1", pt(350, 350))
	e.Move(pt(390, 350))
	e.Cancel()

	r := e.Regions()[0]
	if r.X != 340 {
		t.Fatalf("x after interrupted drag = %g, want 340", r.X)
	}
	if e.State() != StateIdle {
		t.Fatalf("state = %v, want idle", e.State())
	}
}

func TestInvariantsAfterGestureSequence(t *testing.T) {
	e := newTestEngine()
	e.SetRegions([]region.Region{
		{ID: "rgn-1", X: 10, Y: 10, Width: 80, Height: 60, PageNumber: 1, OrderIndex: 0},
		{ID: "rgn-2", X: 500, Y: 700, Width: 150, Height: 200, PageNumber: 1, OrderIndex: 1},
	})

	// A hostile mix of drags and resizes, many pushing off the page.
	e.BeginDrag("rgn-1", pt(50, 40))
	e.Move(pt(-500, -500))
	e.Move(pt(3000, 20))
	e.End()

	e.Select("rgn-2")
	e.BeginResize("rgn-2", HandleNW, pt(500, 700))
	e.Move(pt(5000, 5000))
	e.End()
	e.BeginResize("rgn-2", HandleSE, pt(650, 900))
	e.Move(pt(-400, -400))
	e.End()

	s := e.Space()
	for _, r := range e.Regions() {
		if r.Width < MinRegionSize || r.Height < MinRegionSize {
			t.Fatalf("region %s below size floor: %gx%g", r.ID, r.Width, r.Height)
		}
		if r.X < 0 || r.Y < 0 || r.Rect().Right() > s.AuthoringWidth || r.Rect().Bottom() > s.AuthoringHeight {
			t.Fatalf("region %s escaped the page: %+v", r.ID, r)
		}
	}
}

func TestDeleteKeepsOrderGaps(t *testing.T) {
	e := newTestEngine()
	e.SetRegions([]region.Region{
		{ID: "rgn-1", X: 10, Y: 10, Width: 50, Height: 50, PageNumber: 1, OrderIndex: 0},
		{ID: "rgn-2", X: 100, Y: 10, Width: 50, Height: 50, PageNumber: 1, OrderIndex: 1},
		{ID: "rgn-3", X: 200, Y: 10, Width: 50, Height: 50, PageNumber: 1, OrderIndex: 2},
	})

	if !e.Delete("rgn-2") {
		t.Fatal("delete failed")
	}
	regions := e.Regions()
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(regions))
	}
	// No implicit re-compaction during interactive edits.
	if regions[0].OrderIndex != 0 || regions[1].OrderIndex != 2 {
		t.Fatalf("order indexes re-compacted: %d, %d", regions[0].OrderIndex, regions[1].OrderIndex)
	}

	// The next draw continues after the highest surviving index.
	draw(e, pt(400, 400), pt(500, 500))
	if got := e.Regions()[2].OrderIndex; got != 3 {
		t.Fatalf("new region order index = %d, want 3", got)
	}
}

func TestSelectionRules(t *testing.T) {
	e := newTestEngine()
	e.SetRegions([]region.Region{
		{ID: "rgn-1", X: 10, Y: 10, Width: 50, Height: 50, PageNumber: 1, OrderIndex: 0},
	})

	if e.Select("missing") {
		t.Fatal("selected a region that does not exist")
	}
	if !e.Select("rgn-1") {
		t.Fatal("select failed")
	}
	// Switching into draw mode clears the selection.
	e.SetDrawMode(true)
	if e.Selected() != "" {
		t.Fatal("selection survived entering draw mode")
	}
}

func TestHitTest(t *testing.T) {
	e := newTestEngine()
	e.SetRegions([]region.Region{
		{ID: "rgn-1", X: 100, Y: 100, Width: 200, Height: 200, PageNumber: 1, OrderIndex: 0},
		{ID: "rgn-2", X: 150, Y: 150, Width: 200, Height: 200, PageNumber: 1, OrderIndex: 1},
	})

	// Overlap resolves to the top-most region.
	if id, h := e.HitTest(pt(200, 200)); id != "rgn-2" || h != HandleNone {
		t.Fatalf("overlap hit = %q/%v, want rgn-2 body", id, h)
	}
	if id, _ := e.HitTest(pt(110, 110)); id != "rgn-1" {
		t.Fatalf("hit = %q, want rgn-1", id)
	}
	if id, _ := e.HitTest(pt(700, 900)); id != "" {
		t.Fatalf("empty space hit = %q, want none", id)
	}

	// Handles are only live on the selected region.
	if _, h := e.HitTest(pt(100, 100)); h != HandleNone {
		t.Fatalf("handle hit without selection: %v", h)
	}
	e.Select("rgn-1")
	if id, h := e.HitTest(pt(100, 100)); id != "rgn-1" || h != HandleNW {
		t.Fatalf("hit = %q/%v, want rgn-1/nw", id, h)
	}
	if _, h := e.HitTest(pt(300, 200)); h != HandleE {
		t.Fatalf("hit = %v, want handle e", h)
	}
}

func TestOnChangeEmitsCanonicalList(t *testing.T) {
	e := newTestEngine()
	var emitted [][]region.Region
	e.SetOnChange(func(rs []region.Region) {
		emitted = append(emitted, rs)
	})

	draw(e, pt(100, 100), pt(300, 250))
	if len(emitted) != 1 {
		t.Fatalf("draw emitted %d times, want 1", len(emitted))
	}

	e.BeginDrag(e.Regions()[0].ID, pt(200, 200))
	e.Move(pt(210, 200))
	e.Move(pt(220, 200))
	e.End()
	// Every committed mutation emits; two moves, no separate emit on End.
	if len(emitted) != 3 {
		t.Fatalf("after drag, emitted %d times, want 3", len(emitted))
	}
}

func TestSetRegionsDropsMalformed(t *testing.T) {
	e := newTestEngine()
	e.SetRegions([]region.Region{
		{ID: "ok", X: 10, Y: 10, Width: 50, Height: 50, PageNumber: 1, OrderIndex: 0},
		{ID: "flat", X: 10, Y: 10, Width: 0, Height: 50, PageNumber: 1, OrderIndex: 1},
		{ID: "nopage", X: 10, Y: 10, Width: 50, Height: 50, PageNumber: 0, OrderIndex: 2},
	})
	if n := len(e.Regions()); n != 1 {
		t.Fatalf("kept %d regions, want 1", n)
	}
}
