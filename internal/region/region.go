// Package region defines the hot-zone data model shared by the editor,
// the persistence layer, and the publisher.
package region

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"resume-hotspots/pkg/geometry"
)

// DraftIDPrefix marks regions that exist only in the editor and have not
// yet been assigned a stable identifier by the store.
const DraftIDPrefix = "draft-"

// Region is a rectangular hot zone anchored to a page of the resume.
// All coordinates are in authoring space (fixed reference width,
// canonically 794 units); persistence and geometry math never use any
// other coordinate system.
type Region struct {
	ID         string  `json:"id"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	PageNumber int     `json:"page_number"`
	OrderIndex int     `json:"order_index"`
}

// DraftID returns the ephemeral id for the n-th region created in this
// editing session.
func DraftID(seq int) string {
	return fmt.Sprintf("%s%d", DraftIDPrefix, seq)
}

// IsDraft reports whether the region has not yet been persisted.
func (r Region) IsDraft() bool {
	return strings.HasPrefix(r.ID, DraftIDPrefix)
}

// Rect returns the region's rectangle as a geometry value.
func (r Region) Rect() geometry.Rect {
	return geometry.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// SetRect replaces the region's rectangle.
func (r *Region) SetRect(rect geometry.Rect) {
	r.X = rect.X
	r.Y = rect.Y
	r.Width = rect.Width
	r.Height = rect.Height
}

// Validate reports why the region cannot be used, or nil if it is well formed.
func (r Region) Validate() error {
	for _, v := range []float64{r.X, r.Y, r.Width, r.Height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("region %s: non-finite coordinate", r.ID)
		}
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("region %s: zero or negative size %gx%g", r.ID, r.Width, r.Height)
	}
	if r.PageNumber < 1 {
		return fmt.Errorf("region %s: invalid page number %d", r.ID, r.PageNumber)
	}
	return nil
}

// SortByOrder sorts regions by OrderIndex, keeping relative order for ties.
func SortByOrder(regions []Region) {
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].OrderIndex < regions[j].OrderIndex
	})
}

// Photo is one entry of a region's carousel. Photos are owned by the
// persistence layer; the editor core treats a region's photo set as opaque.
type Photo struct {
	ID         string `json:"id"`
	RegionID   string `json:"region_id"`
	ImagePath  string `json:"image_path"`
	Caption    string `json:"caption,omitempty"`
	OrderIndex int    `json:"order_index"`
}

// SortPhotos sorts photos by region, then by carousel order.
func SortPhotos(photos []Photo) {
	sort.SliceStable(photos, func(i, j int) bool {
		if photos[i].RegionID != photos[j].RegionID {
			return photos[i].RegionID < photos[j].RegionID
		}
		return photos[i].OrderIndex < photos[j].OrderIndex
	})
}

// PhotosFor returns the carousel for one region, in display order.
func PhotosFor(photos []Photo, regionID string) []Photo {
	var out []Photo
	for _, p := range photos {
		if p.RegionID == regionID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OrderIndex < out[j].OrderIndex
	})
	return out
}
