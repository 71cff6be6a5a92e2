package engine

import "math"

// DefaultSnapThreshold is the snap distance in display pixels.
const DefaultSnapThreshold = 10

// Snapper resolves a proposed edge coordinate against a list of target
// coordinates, producing the sticky alignment used while drawing,
// dragging, and resizing. It is a pure function of its inputs and keeps
// no memory of previous calls.
type Snapper struct {
	Enabled   bool
	Threshold float64
}

// NewSnapper returns an enabled snapper with the default threshold.
func NewSnapper() Snapper {
	return Snapper{Enabled: true, Threshold: DefaultSnapThreshold}
}

// Resolve returns the first target within Threshold of value, scanning
// targets in order. Target order is the tie-break: callers list page
// edges before sibling edges, so page edges win when both are in range.
// The flag reports whether a target matched; a value already sitting
// exactly on a target still counts as a match, so callers do not fall
// through to a weaker candidate. If no target is close enough, or
// snapping is disabled, the proposed value is returned unchanged.
func (sn Snapper) Resolve(value float64, targets []float64) (float64, bool) {
	if !sn.Enabled {
		return value, false
	}
	for _, t := range targets {
		if math.Abs(value-t) <= sn.Threshold {
			return t, true
		}
	}
	return value, false
}
