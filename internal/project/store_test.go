package project

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"resume-hotspots/internal/region"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cv.rhz")
	s, err := Create(path, "cv")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return s
}

func TestCreateRejectsExisting(t *testing.T) {
	s := newTestStore(t)
	if _, err := Create(s.Path, "again"); err == nil {
		t.Fatal("Create over an existing project succeeded")
	}
}

func TestSaveRegionsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	edited := []region.Region{
		{ID: region.DraftID(1), X: 100, Y: 100, Width: 200, Height: 150, PageNumber: 1, OrderIndex: 0},
		{ID: region.DraftID(2), X: 400, Y: 300, Width: 80, Height: 60, PageNumber: 1, OrderIndex: 1},
	}
	res, err := s.SaveRegions(edited)
	if err != nil {
		t.Fatalf("SaveRegions: %v", err)
	}
	if got := res.Regions[0].ID; got != "rgn-000001" {
		t.Fatalf("first stable id = %q, want rgn-000001", got)
	}

	// Reopen from disk and compare.
	reopened, err := Open(s.Path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if diff := cmp.Diff(s.Regions(), reopened.Regions()); diff != "" {
		t.Fatalf("regions did not survive reopen (-saved +loaded):\n%s", diff)
	}
	if reopened.File.NextRegionID != 2 {
		t.Fatalf("id counter = %d, want 2", reopened.File.NextRegionID)
	}
}

func TestSaveRegionsKeepsStableIDs(t *testing.T) {
	s := newTestStore(t)

	res, err := s.SaveRegions([]region.Region{
		{ID: region.DraftID(1), X: 0, Y: 0, Width: 50, Height: 50, PageNumber: 1},
	})
	if err != nil {
		t.Fatalf("SaveRegions: %v", err)
	}
	id := res.Regions[0].ID

	// A later save with a moved copy must not mint a new id.
	moved := res.Regions
	moved[0].X = 123
	res2, err := s.SaveRegions(moved)
	if err != nil {
		t.Fatalf("SaveRegions: %v", err)
	}
	if res2.Regions[0].ID != id {
		t.Fatalf("id changed across saves: %q then %q", id, res2.Regions[0].ID)
	}
}

func TestDeletedRegionDropsPhotos(t *testing.T) {
	s := newTestStore(t)

	res, err := s.SaveRegions([]region.Region{
		{ID: region.DraftID(1), X: 0, Y: 0, Width: 50, Height: 50, PageNumber: 1},
	})
	if err != nil {
		t.Fatalf("SaveRegions: %v", err)
	}
	id := res.Regions[0].ID
	if _, err := s.AddPhoto(id, "photos/a.jpg", "site"); err != nil {
		t.Fatalf("AddPhoto: %v", err)
	}

	if _, err := s.SaveRegions(nil); err != nil {
		t.Fatalf("SaveRegions: %v", err)
	}
	if n := len(s.Photos()); n != 0 {
		t.Fatalf("%d photos survived region deletion", n)
	}
}

func TestPhotoCarousel(t *testing.T) {
	s := newTestStore(t)

	res, err := s.SaveRegions([]region.Region{
		{ID: region.DraftID(1), X: 0, Y: 0, Width: 50, Height: 50, PageNumber: 1},
	})
	if err != nil {
		t.Fatalf("SaveRegions: %v", err)
	}
	id := res.Regions[0].ID

	if _, err := s.AddPhoto(region.DraftID(9), "x.jpg", ""); err == nil {
		t.Fatal("AddPhoto accepted a draft region id")
	}

	var ids []string
	for _, name := range []string{"a.jpg", "b.jpg", "c.jpg"} {
		p, err := s.AddPhoto(id, "photos/"+name, "")
		if err != nil {
			t.Fatalf("AddPhoto(%s): %v", name, err)
		}
		ids = append(ids, p.ID)
	}

	// Move the last photo to the front, clamping past the end.
	if err := s.MovePhoto(ids[2], -5); err != nil {
		t.Fatalf("MovePhoto: %v", err)
	}
	got := region.PhotosFor(s.Photos(), id)
	if got[0].ID != ids[2] || got[1].ID != ids[0] || got[2].ID != ids[1] {
		t.Fatalf("carousel order after move: %s %s %s", got[0].ID, got[1].ID, got[2].ID)
	}

	// The raw list is kept in carousel order too, matching what a
	// reload produces.
	raw := s.Photos()
	for i := 1; i < len(raw); i++ {
		if raw[i-1].OrderIndex > raw[i].OrderIndex {
			t.Fatalf("photo list out of carousel order: %+v", raw)
		}
	}

	if err := s.SetPhotoCaption(ids[0], "kitchen remodel"); err != nil {
		t.Fatalf("SetPhotoCaption: %v", err)
	}

	// Removing the middle photo compacts the order indexes.
	if err := s.DeletePhoto(ids[0]); err != nil {
		t.Fatalf("DeletePhoto: %v", err)
	}
	got = region.PhotosFor(s.Photos(), id)
	if len(got) != 2 || got[0].OrderIndex != 0 || got[1].OrderIndex != 1 {
		t.Fatalf("carousel not compacted: %+v", got)
	}

	// Everything persists across a reopen.
	reopened, err := Open(s.Path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if diff := cmp.Diff(s.Photos(), reopened.Photos()); diff != "" {
		t.Fatalf("photos did not survive reopen (-saved +loaded):\n%s", diff)
	}
}
