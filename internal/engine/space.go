// Package engine implements the interactive region geometry engine: the
// authoring/display coordinate mapping, edge snapping, and the
// draw/drag/resize state machine that keeps hot-zone rectangles anchored
// to the resume page across different render widths.
package engine

// DefaultAuthoringWidth is the fixed reference width of the authoring
// coordinate space. All region geometry is persisted in this space,
// independent of how large the page is rendered on any given screen.
const DefaultAuthoringWidth = 794

// Space converts between authoring space and the display space of the
// currently rendered page. Width and height scale by the same factor;
// the aspect ratio of the page is preserved uniformly.
type Space struct {
	AuthoringWidth  float64
	AuthoringHeight float64
}

// NewSpace creates a coordinate space for a page with the given aspect
// ratio (page height divided by page width).
func NewSpace(authoringWidth, aspect float64) Space {
	return Space{
		AuthoringWidth:  authoringWidth,
		AuthoringHeight: authoringWidth * aspect,
	}
}

// Valid reports whether the space has usable dimensions.
func (s Space) Valid() bool {
	return s.AuthoringWidth > 0 && s.AuthoringHeight > 0
}

// ToDisplay converts an authoring-space value to display space for the
// given display width. displayWidth must be positive; callers gate on a
// measured renderer before doing geometry.
func (s Space) ToDisplay(v, displayWidth float64) float64 {
	return v * (displayWidth / s.AuthoringWidth)
}

// ToAuthoring converts a display-space value back to authoring space.
func (s Space) ToAuthoring(v, displayWidth float64) float64 {
	return v * (s.AuthoringWidth / displayWidth)
}

// DisplayHeight returns the page height in display space for the given
// display width.
func (s Space) DisplayHeight(displayWidth float64) float64 {
	return s.ToDisplay(s.AuthoringHeight, displayWidth)
}
