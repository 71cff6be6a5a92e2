package canvas

import (
	"image"
	"image/color"

	"resume-hotspots/internal/engine"
	"resume-hotspots/pkg/geometry"

	"golang.org/x/image/draw"
)

var (
	zoneColor     = color.RGBA{R: 0x1A, G: 0x73, B: 0xE8, A: 255} // blue outline
	selectedColor = color.RGBA{R: 0xFF, G: 0xA0, B: 0x00, A: 255} // amber
	draftColor    = color.RGBA{R: 0x1A, G: 0x73, B: 0xE8, A: 255}
	labelColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	handleFill    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Handle squares match the engine's hit radius.
const handleSize = int(engine.HandleHitRadius)

// digitPatterns contains 3x5 pixel patterns for digits 0-9, used for
// the zone ordinal badges.
var digitPatterns = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

// draw is the raster drawing function.
func (pc *PageCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))

	// Dark neutral background behind the page.
	for i := 0; i < len(output.Pix); i += 4 {
		output.Pix[i] = 0x2b
		output.Pix[i+1] = 0x2b
		output.Pix[i+2] = 0x2b
		output.Pix[i+3] = 255
	}

	if pc.page == nil {
		return output
	}

	// Blit the page scaled to the content size.
	draw.ApproxBiLinear.Scale(output, output.Bounds(), pc.page, pc.page.Bounds(), draw.Src, nil)

	selected := pc.engine.Selected()
	for _, r := range pc.engine.Regions() {
		rect := pc.engine.DisplayRect(r)
		col := zoneColor
		if r.ID == selected {
			col = selectedColor
		}
		drawRectOutline(output, rect, col, 2)
		pc.drawOrdinal(output, rect, r.OrderIndex+1)
		if r.ID == selected {
			drawHandles(output, rect)
		}
	}

	// In-progress draw gesture shows as a dashed candidate.
	if draft, ok := pc.engine.InProgress(); ok {
		drawDashedRect(output, draft, draftColor)
	}

	return output
}

// drawRectOutline draws a rectangle outline with the given thickness.
func drawRectOutline(output *image.RGBA, r geometry.Rect, col color.RGBA, thickness int) {
	x1, y1 := int(r.X), int(r.Y)
	x2, y2 := int(r.Right()), int(r.Bottom())
	bounds := output.Bounds()

	for t := 0; t < thickness; t++ {
		for x := x1; x <= x2; x++ {
			setPixel(output, bounds, x, y1+t, col)
			setPixel(output, bounds, x, y2-t, col)
		}
		for y := y1; y <= y2; y++ {
			setPixel(output, bounds, x1+t, y, col)
			setPixel(output, bounds, x2-t, y, col)
		}
	}
}

// drawDashedRect draws a dashed rectangle outline, one pixel thick.
func drawDashedRect(output *image.RGBA, r geometry.Rect, col color.RGBA) {
	x1, y1 := int(r.X), int(r.Y)
	x2, y2 := int(r.Right()), int(r.Bottom())
	bounds := output.Bounds()

	for x := x1; x <= x2; x++ {
		if (x+y1)%6 < 3 {
			setPixel(output, bounds, x, y1, col)
		}
		if (x+y2)%6 < 3 {
			setPixel(output, bounds, x, y2, col)
		}
	}
	for y := y1; y <= y2; y++ {
		if (x1+y)%6 < 3 {
			setPixel(output, bounds, x1, y, col)
		}
		if (x2+y)%6 < 3 {
			setPixel(output, bounds, x2, y, col)
		}
	}
}

// drawHandles draws the eight resize handles of the selected zone:
// four corners and four edge midpoints.
func drawHandles(output *image.RGBA, r geometry.Rect) {
	cx, cy := r.X+r.Width/2, r.Y+r.Height/2
	anchors := []geometry.Point2D{
		{X: r.X, Y: r.Y}, {X: cx, Y: r.Y}, {X: r.Right(), Y: r.Y},
		{X: r.Right(), Y: cy}, {X: r.Right(), Y: r.Bottom()},
		{X: cx, Y: r.Bottom()}, {X: r.X, Y: r.Bottom()}, {X: r.X, Y: cy},
	}
	bounds := output.Bounds()
	half := handleSize / 2

	for _, a := range anchors {
		ax, ay := int(a.X), int(a.Y)
		for y := ay - half; y <= ay+half; y++ {
			for x := ax - half; x <= ax+half; x++ {
				onEdge := x == ax-half || x == ax+half || y == ay-half || y == ay+half
				if onEdge {
					setPixel(output, bounds, x, y, selectedColor)
				} else {
					setPixel(output, bounds, x, y, handleFill)
				}
			}
		}
	}
}

// drawOrdinal draws the 1-based zone number in a small badge at the
// zone's top-left corner.
func (pc *PageCanvas) drawOrdinal(output *image.RGBA, r geometry.Rect, n int) {
	if n < 1 {
		return
	}
	label := itoa(n)

	scale := int(pc.zoom * 2)
	if scale < 2 {
		scale = 2
	}
	if scale > 5 {
		scale = 5
	}

	charWidth := 3 * scale
	charHeight := 5 * scale
	spacing := scale
	labelWidth := len(label)*charWidth + (len(label)-1)*spacing
	pad := scale

	bx := int(r.X) + 2
	by := int(r.Y) + 2
	bounds := output.Bounds()

	// Badge background
	for y := by; y < by+charHeight+2*pad; y++ {
		for x := bx; x < bx+labelWidth+2*pad; x++ {
			setPixel(output, bounds, x, y, zoneColor)
		}
	}

	// Digits
	for i, ch := range label {
		pattern := digitPatterns[ch-'0']
		charX := bx + pad + i*(charWidth+spacing)
		for row := 0; row < 5; row++ {
			for c := 0; c < 3; c++ {
				if (pattern[row] & (1 << (2 - c))) == 0 {
					continue
				}
				for dy := 0; dy < scale; dy++ {
					for dx := 0; dx < scale; dx++ {
						setPixel(output, bounds, charX+c*scale+dx, by+pad+row*scale+dy, labelColor)
					}
				}
			}
		}
	}
}

func setPixel(output *image.RGBA, bounds image.Rectangle, x, y int, col color.RGBA) {
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		output.SetRGBA(x, y, col)
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 && i > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
