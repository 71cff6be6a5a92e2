package region

import (
	"math"
	"testing"
)

func TestDraftID(t *testing.T) {
	r := Region{ID: DraftID(3), X: 1, Y: 1, Width: 10, Height: 10, PageNumber: 1}
	if !r.IsDraft() {
		t.Fatalf("%q not recognized as draft", r.ID)
	}
	r.ID = "rgn-000003"
	if r.IsDraft() {
		t.Fatalf("%q wrongly recognized as draft", r.ID)
	}
}

func TestValidate(t *testing.T) {
	valid := Region{ID: "rgn-1", X: 10, Y: 20, Width: 100, Height: 50, PageNumber: 1}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid region rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Region)
	}{
		{"zero width", func(r *Region) { r.Width = 0 }},
		{"negative height", func(r *Region) { r.Height = -5 }},
		{"NaN x", func(r *Region) { r.X = math.NaN() }},
		{"infinite y", func(r *Region) { r.Y = math.Inf(1) }},
		{"page zero", func(r *Region) { r.PageNumber = 0 }},
	}
	for _, tt := range tests {
		r := valid
		tt.mutate(&r)
		if err := r.Validate(); err == nil {
			t.Fatalf("%s: malformed region accepted", tt.name)
		}
	}
}

func TestPhotosFor(t *testing.T) {
	photos := []Photo{
		{ID: "p1", RegionID: "a", OrderIndex: 1},
		{ID: "p2", RegionID: "b", OrderIndex: 0},
		{ID: "p3", RegionID: "a", OrderIndex: 0},
	}
	got := PhotosFor(photos, "a")
	if len(got) != 2 || got[0].ID != "p3" || got[1].ID != "p1" {
		t.Fatalf("carousel order wrong: %+v", got)
	}
}
