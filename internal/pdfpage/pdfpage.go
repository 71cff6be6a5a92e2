// Package pdfpage extracts page geometry from resume PDFs. Only the
// MediaBox and rotation of the first page matter here, the page bitmap
// itself is rendered outside the application.
package pdfpage

import (
	"fmt"
	"image"
	"os"

	_ "image/jpeg"
	_ "image/png"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
)

// PageInfo describes the printed geometry of a single PDF page.
type PageInfo struct {
	WidthPts  float64 // MediaBox width in PDF points
	HeightPts float64
	Rotate    int // 0, 90, 180 or 270
}

// Aspect returns height over width as displayed, after applying the
// page rotation.
func (pi PageInfo) Aspect() float64 {
	w, h := pi.WidthPts, pi.HeightPts
	if pi.Rotate == 90 || pi.Rotate == 270 {
		w, h = h, w
	}
	if w <= 0 {
		return 0
	}
	return h / w
}

// ReadFirstPage opens a PDF file and reads the geometry of its first
// page. Inherited MediaBox and Rotate entries are already resolved by
// the page tree walk.
func ReadFirstPage(path string) (PageInfo, error) {
	r, err := pdf.Open(path, nil)
	if err != nil {
		return PageInfo{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer r.Close()

	dict, err := pagetree.GetPage(r, 0)
	if err != nil {
		return PageInfo{}, fmt.Errorf("reading first page: %w", err)
	}

	box, err := pdf.GetRectangle(r, dict["MediaBox"])
	if err != nil {
		return PageInfo{}, fmt.Errorf("reading MediaBox: %w", err)
	}
	if box == nil {
		return PageInfo{}, fmt.Errorf("%s: first page has no MediaBox", path)
	}

	info := PageInfo{
		WidthPts:  box.URx - box.LLx,
		HeightPts: box.URy - box.LLy,
	}
	if info.WidthPts <= 0 || info.HeightPts <= 0 {
		return PageInfo{}, fmt.Errorf("%s: degenerate MediaBox %v", path, box)
	}

	if _, ok := dict["Rotate"]; ok {
		rot, err := pdf.GetInteger(r, dict["Rotate"])
		if err == nil {
			info.Rotate = ((int(rot) % 360) + 360) % 360
		}
	}

	return info, nil
}

// AspectFromImage returns the height over width ratio of a rendered
// page bitmap. Used when the project has a page image but no PDF.
func AspectFromImage(path string) (float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, fmt.Errorf("decoding %s: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, fmt.Errorf("%s: empty image", path)
	}
	return float64(cfg.Height) / float64(cfg.Width), nil
}
