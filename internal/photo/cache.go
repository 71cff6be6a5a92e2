// Package photo provides loading, caching and project-local storage of
// the work photos attached to hot zones.
package photo

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	// Scanned resumes sometimes arrive as TIFF page bitmaps.
	_ "golang.org/x/image/tiff"
)

// Cache keeps decoded photos and their scaled thumbnails in memory so
// the carousel panel does not re-decode on every refresh.
type Cache struct {
	mu     sync.Mutex
	images map[string]image.Image
	thumbs map[string]image.Image
}

// NewCache creates an empty photo cache.
func NewCache() *Cache {
	return &Cache{
		images: make(map[string]image.Image),
		thumbs: make(map[string]image.Image),
	}
}

// Get returns the decoded photo at path, loading it on first use.
func (c *Cache) Get(path string) (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if img, ok := c.images[path]; ok {
		return img, nil
	}

	img, err := decode(path)
	if err != nil {
		return nil, err
	}
	c.images[path] = img
	return img, nil
}

// Thumbnail returns a copy of the photo scaled so its longest side is
// maxDim pixels. Smaller photos are returned unscaled.
func (c *Cache) Thumbnail(path string, maxDim int) (image.Image, error) {
	key := fmt.Sprintf("%s@%d", path, maxDim)

	c.mu.Lock()
	if img, ok := c.thumbs[key]; ok {
		c.mu.Unlock()
		return img, nil
	}
	c.mu.Unlock()

	src, err := c.Get(path)
	if err != nil {
		return nil, err
	}

	thumb := Scale(src, maxDim)

	c.mu.Lock()
	c.thumbs[key] = thumb
	c.mu.Unlock()
	return thumb, nil
}

// Clear drops all cached images, for example when a project closes.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.images = make(map[string]image.Image)
	c.thumbs = make(map[string]image.Image)
}

// Len returns the number of cached full-size images.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.images)
}

// Scale resizes img so that its longest side is maxDim pixels,
// preserving the aspect ratio. Images already small enough come back
// unchanged.
func Scale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return img
	}

	var tw, th int
	if w >= h {
		tw = maxDim
		th = h * maxDim / w
	} else {
		th = maxDim
		tw = w * maxDim / h
	}
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, tw, th))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func decode(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open photo: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode photo: %w", err)
	}
	return img, nil
}

// SupportedFormats returns the list of supported photo formats.
func SupportedFormats() []string {
	return []string{".png", ".jpg", ".jpeg"}
}

// IsSupportedFormat checks if the given path has a supported photo format.
func IsSupportedFormat(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, format := range SupportedFormats() {
		if ext == format {
			return true
		}
	}
	return false
}
