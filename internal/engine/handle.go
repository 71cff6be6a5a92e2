package engine

import "resume-hotspots/pkg/geometry"

// Handle identifies one of the eight resize handles of a selected region.
type Handle int

const (
	HandleNone Handle = iota
	HandleNW
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
)

var handleNames = map[Handle]string{
	HandleNone: "none",
	HandleNW:   "nw",
	HandleN:    "n",
	HandleNE:   "ne",
	HandleE:    "e",
	HandleSE:   "se",
	HandleS:    "s",
	HandleSW:   "sw",
	HandleW:    "w",
}

func (h Handle) String() string {
	if s, ok := handleNames[h]; ok {
		return s
	}
	return "invalid"
}

// handleCoeffs describes how a gesture delta (dx, dy) applies to a
// rectangle: each field is the coefficient of dx or dy contributed to
// x, width, y, and height respectively. The eight handles reduce to one
// parameterized formula instead of eight duplicated branches.
type handleCoeffs struct {
	dxToX, dxToW float64
	dyToY, dyToH float64
}

var handleTable = map[Handle]handleCoeffs{
	HandleNW: {dxToX: 1, dxToW: -1, dyToY: 1, dyToH: -1},
	HandleN:  {dyToY: 1, dyToH: -1},
	HandleNE: {dxToW: 1, dyToY: 1, dyToH: -1},
	HandleE:  {dxToW: 1},
	HandleSE: {dxToW: 1, dyToH: 1},
	HandleS:  {dyToH: 1},
	HandleSW: {dxToX: 1, dxToW: -1, dyToH: 1},
	HandleW:  {dxToX: 1, dxToW: -1},
}

// apply returns the rectangle after moving the handle by (dx, dy) in
// authoring units. Only the edges implied by the handle change.
func (h Handle) apply(r geometry.Rect, dx, dy float64) geometry.Rect {
	c, ok := handleTable[h]
	if !ok {
		return r
	}
	return geometry.Rect{
		X:      r.X + c.dxToX*dx,
		Y:      r.Y + c.dyToY*dy,
		Width:  r.Width + c.dxToW*dx,
		Height: r.Height + c.dyToH*dy,
	}
}

// movesWest reports whether the handle moves the left edge.
func (h Handle) movesWest() bool { return handleTable[h].dxToX != 0 }

// movesEast reports whether the handle moves the right edge.
func (h Handle) movesEast() bool {
	c := handleTable[h]
	return c.dxToW != 0 && c.dxToX == 0
}

// movesNorth reports whether the handle moves the top edge.
func (h Handle) movesNorth() bool { return handleTable[h].dyToY != 0 }

// movesSouth reports whether the handle moves the bottom edge.
func (h Handle) movesSouth() bool {
	c := handleTable[h]
	return c.dyToH != 0 && c.dyToY == 0
}

// handlePoints returns the eight handle anchor points of a rectangle,
// indexed in the same order hit-testing scans them.
func handlePoints(r geometry.Rect) [8]struct {
	h Handle
	p geometry.Point2D
} {
	cx := r.X + r.Width/2
	cy := r.Y + r.Height/2
	return [8]struct {
		h Handle
		p geometry.Point2D
	}{
		{HandleNW, geometry.Point2D{X: r.X, Y: r.Y}},
		{HandleN, geometry.Point2D{X: cx, Y: r.Y}},
		{HandleNE, geometry.Point2D{X: r.Right(), Y: r.Y}},
		{HandleE, geometry.Point2D{X: r.Right(), Y: cy}},
		{HandleSE, geometry.Point2D{X: r.Right(), Y: r.Bottom()}},
		{HandleS, geometry.Point2D{X: cx, Y: r.Bottom()}},
		{HandleSW, geometry.Point2D{X: r.X, Y: r.Bottom()}},
		{HandleW, geometry.Point2D{X: r.X, Y: cy}},
	}
}
