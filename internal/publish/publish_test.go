package publish

import (
	"encoding/json"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resume-hotspots/internal/engine"
	"resume-hotspots/internal/photo"
	"resume-hotspots/internal/region"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encoding %s: %v", path, err)
	}
}

func TestPublish(t *testing.T) {
	work := t.TempDir()
	pageImage := filepath.Join(work, "page.png")
	writePNG(t, pageImage, 794, 1123)

	photosDir := photo.Dir{Path: filepath.Join(work, "photos")}
	if err := os.MkdirAll(photosDir.Path, 0755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, photosDir.Abs("deck.png"), 2000, 1000)

	p := &Publisher{
		Space:     engine.NewSpace(engine.DefaultAuthoringWidth, 1123.0/794.0),
		PageImage: pageImage,
		Regions: []region.Region{
			{ID: "rgn-000002", X: 400, Y: 300, Width: 80, Height: 60, PageNumber: 1, OrderIndex: 1},
			{ID: "rgn-000001", X: 100, Y: 100, Width: 200, Height: 150, PageNumber: 1, OrderIndex: 0},
		},
		Photos: []region.Photo{
			{ID: "pho-000001", RegionID: "rgn-000001", ImagePath: "deck.png", Caption: "new deck"},
		},
		PhotosDir: photosDir,
	}

	out := filepath.Join(work, "site")
	err := p.Publish(Options{OutDir: out, Title: "Jane Doe", MaxPhotoDim: 400})
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	// Manifest is ordered by zone order index and carries the photo.
	data, err := os.ReadFile(filepath.Join(out, "regions.json"))
	if err != nil {
		t.Fatalf("reading manifest: %v", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("parsing manifest: %v", err)
	}
	if m.AuthoringWidth != engine.DefaultAuthoringWidth {
		t.Fatalf("authoring width = %g", m.AuthoringWidth)
	}
	if len(m.Regions) != 2 || m.Regions[0].ID != "rgn-000001" {
		t.Fatalf("manifest zones out of order: %+v", m.Regions)
	}
	if len(m.Regions[0].Photos) != 1 || m.Regions[0].Photos[0].Caption != "new deck" {
		t.Fatalf("manifest photos wrong: %+v", m.Regions[0].Photos)
	}

	// The exported photo was scaled down to the requested bound.
	exported := filepath.Join(out, "photos", "pho-000001.jpg")
	f, err := os.Open(exported)
	if err != nil {
		t.Fatalf("opening exported photo: %v", err)
	}
	cfg, _, err := image.DecodeConfig(f)
	f.Close()
	if err != nil {
		t.Fatalf("decoding exported photo: %v", err)
	}
	if cfg.Width != 400 || cfg.Height != 200 {
		t.Fatalf("exported photo is %dx%d, want 400x200", cfg.Width, cfg.Height)
	}

	// The viewer page references the copied page bitmap.
	html, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatalf("reading index.html: %v", err)
	}
	if !strings.Contains(string(html), `src="page.png"`) {
		t.Fatal("index.html does not reference the page image")
	}
	if !strings.Contains(string(html), "Jane Doe") {
		t.Fatal("index.html does not carry the title")
	}
}

func TestPublishRequiresGeometry(t *testing.T) {
	p := &Publisher{}
	if err := p.Publish(Options{OutDir: t.TempDir()}); err == nil {
		t.Fatal("publish without page geometry succeeded")
	}
}
