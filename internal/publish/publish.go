// Package publish renders a project into a static web viewer: a single
// HTML page, a JSON manifest and scaled copies of the page image and
// photos. The output has no server side component and can be dropped
// onto any static host.
package publish

import (
	"encoding/json"
	"fmt"
	"html/template"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"strings"

	"resume-hotspots/internal/engine"
	"resume-hotspots/internal/photo"
	"resume-hotspots/internal/region"
)

// Options controls the published output.
type Options struct {
	OutDir      string
	Title       string
	MaxPhotoDim int // longest photo side in pixels, 0 for a default
}

const defaultMaxPhotoDim = 1600

// Manifest is the regions.json document the viewer script loads.
type Manifest struct {
	Title          string         `json:"title"`
	AuthoringWidth float64        `json:"authoring_width"`
	PageAspect     float64        `json:"page_aspect"`
	PageImage      string         `json:"page_image"`
	Regions        []ManifestZone `json:"regions"`
}

// ManifestZone is one hot zone plus its carousel.
type ManifestZone struct {
	ID     string          `json:"id"`
	X      float64         `json:"x"`
	Y      float64         `json:"y"`
	Width  float64         `json:"width"`
	Height float64         `json:"height"`
	Photos []ManifestPhoto `json:"photos"`
}

// ManifestPhoto is one published photo file with its caption.
type ManifestPhoto struct {
	File    string `json:"file"`
	Caption string `json:"caption,omitempty"`
}

// Publisher writes static viewer output for a project.
type Publisher struct {
	Space     engine.Space
	PageImage string // absolute path to the rendered page bitmap
	Regions   []region.Region
	Photos    []region.Photo
	PhotosDir photo.Dir
	Cache     *photo.Cache
}

// Publish writes the whole site into opts.OutDir, creating it if
// needed. Existing files with the same names are overwritten.
func (p *Publisher) Publish(opts Options) error {
	if !p.Space.Valid() {
		return fmt.Errorf("page geometry unknown, load a resume first")
	}
	if p.PageImage == "" {
		return fmt.Errorf("no page image to publish")
	}
	maxDim := opts.MaxPhotoDim
	if maxDim <= 0 {
		maxDim = defaultMaxPhotoDim
	}

	photoDir := filepath.Join(opts.OutDir, "photos")
	if err := os.MkdirAll(photoDir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	cache := p.Cache
	if cache == nil {
		cache = photo.NewCache()
	}

	pageName, err := p.exportPage(cache, opts.OutDir)
	if err != nil {
		return fmt.Errorf("copying page image: %w", err)
	}

	manifest := Manifest{
		Title:          opts.Title,
		AuthoringWidth: p.Space.AuthoringWidth,
		PageAspect:     p.Space.AuthoringHeight / p.Space.AuthoringWidth,
		PageImage:      pageName,
	}

	sorted := make([]region.Region, len(p.Regions))
	copy(sorted, p.Regions)
	region.SortByOrder(sorted)

	for _, r := range sorted {
		zone := ManifestZone{
			ID: r.ID, X: r.X, Y: r.Y, Width: r.Width, Height: r.Height,
		}
		for _, ph := range region.PhotosFor(p.Photos, r.ID) {
			name, err := p.exportPhoto(cache, photoDir, ph, maxDim)
			if err != nil {
				return fmt.Errorf("photo %s: %w", ph.ID, err)
			}
			zone.Photos = append(zone.Photos, ManifestPhoto{
				File:    "photos/" + name,
				Caption: ph.Caption,
			})
		}
		manifest.Regions = append(manifest.Regions, zone)
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(opts.OutDir, "regions.json"), data, 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	return p.writeIndex(opts.OutDir, manifest)
}

// exportPage places the page bitmap into the output directory. Browser
// formats are copied verbatim; anything else (e.g. a TIFF scan) is
// re-encoded as JPEG.
func (p *Publisher) exportPage(cache *photo.Cache, outDir string) (string, error) {
	switch strings.ToLower(filepath.Ext(p.PageImage)) {
	case ".png", ".jpg", ".jpeg":
		name := "page" + filepath.Ext(p.PageImage)
		return name, copyFile(p.PageImage, filepath.Join(outDir, name))
	}

	img, err := cache.Get(p.PageImage)
	if err != nil {
		return "", err
	}
	out, err := os.Create(filepath.Join(outDir, "page.jpg"))
	if err != nil {
		return "", err
	}
	defer out.Close()
	return "page.jpg", jpeg.Encode(out, img, &jpeg.Options{Quality: 90})
}

// exportPhoto writes a scaled JPEG copy of one photo into the output
// photo directory and returns the file name.
func (p *Publisher) exportPhoto(cache *photo.Cache, photoDir string, ph region.Photo, maxDim int) (string, error) {
	img, err := cache.Get(p.PhotosDir.Abs(ph.ImagePath))
	if err != nil {
		return "", err
	}
	img = photo.Scale(img, maxDim)

	name := ph.ID + ".jpg"
	out, err := os.Create(filepath.Join(photoDir, name))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if err := jpeg.Encode(out, img, &jpeg.Options{Quality: 85}); err != nil {
		return "", err
	}
	return name, nil
}

func (p *Publisher) writeIndex(outDir string, manifest Manifest) error {
	f, err := os.Create(filepath.Join(outDir, "index.html"))
	if err != nil {
		return fmt.Errorf("writing index.html: %w", err)
	}
	defer f.Close()

	return indexTemplate.Execute(f, manifest)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))
