// Package app provides application lifecycle management, configuration, and events.
package app

import (
	"fmt"
	goimage "image"
	"os"
	"sync"

	"resume-hotspots/internal/engine"
	"resume-hotspots/internal/pdfpage"
	"resume-hotspots/internal/photo"
	"resume-hotspots/internal/project"
	"resume-hotspots/internal/region"
)

// State holds the application state: the open project, the page image
// and geometry, the working copy of the zones and the photo cache.
type State struct {
	mu sync.RWMutex

	// Project
	Store    *project.Store
	Modified bool

	// Rendered page
	PageImage goimage.Image
	Space     engine.Space

	// Working copies. Regions track the editor live, photos mirror the
	// store and refresh after every photo mutation.
	Regions []region.Region
	Photos  []region.Photo

	// Photo cache shared by the carousel panel and the publisher.
	PhotoCache *photo.Cache

	// Event listeners
	listeners map[EventType][]EventListener
}

// EventType identifies different application events.
type EventType int

const (
	EventProjectLoaded EventType = iota
	EventProjectSaved
	EventPageLoaded
	EventRegionsChanged
	EventSelectionChanged
	EventPhotosChanged
	EventModified
	EventPublished
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates a new application state.
func NewState() *State {
	return &State{
		PhotoCache: photo.NewCache(),
		listeners:  make(map[EventType][]EventListener),
	}
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}

// SetModified marks the project as modified and emits an event.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// ProjectPath returns the path of the open project, or "".
func (s *State) ProjectPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Store == nil {
		return ""
	}
	return s.Store.Path
}

// NewProject creates a project on disk and makes it current.
func (s *State) NewProject(path, name string) error {
	store, err := project.Create(path, name)
	if err != nil {
		return err
	}
	s.adopt(store)
	s.Emit(EventProjectLoaded, path)
	return nil
}

// OpenProject loads a project and its page geometry.
func (s *State) OpenProject(path string) error {
	store, err := project.Open(path)
	if err != nil {
		return err
	}
	s.adopt(store)

	if p := store.File.GetPageImagePath(path); p != "" {
		if err := s.loadPage(store, p); err != nil {
			return err
		}
	}

	s.Emit(EventProjectLoaded, path)
	return nil
}

func (s *State) adopt(store *project.Store) {
	s.mu.Lock()
	s.Store = store
	s.Modified = false
	s.PageImage = nil
	s.Space = engine.Space{}
	s.Regions = store.Regions()
	s.Photos = store.Photos()
	s.mu.Unlock()
	s.PhotoCache.Clear()
}

// SetResume attaches a resume PDF to the project and derives the page
// aspect ratio from its first page.
func (s *State) SetResume(pdfPath string) error {
	store := s.store()
	if store == nil {
		return fmt.Errorf("no project open")
	}

	info, err := pdfpage.ReadFirstPage(pdfPath)
	if err != nil {
		return err
	}

	s.mu.Lock()
	store.File.SetResumePDF(store.Path, pdfPath)
	width := store.File.AuthoringWidth
	if width <= 0 {
		width = engine.DefaultAuthoringWidth
	}
	s.Space = engine.NewSpace(width, info.Aspect())
	s.mu.Unlock()

	if err := store.File.Save(store.Path); err != nil {
		return err
	}
	s.Emit(EventPageLoaded, info)
	return nil
}

// SetPageImage attaches the rendered page bitmap to the project. When
// no PDF is attached, the bitmap's own aspect ratio defines the page
// geometry.
func (s *State) SetPageImage(imagePath string) error {
	store := s.store()
	if store == nil {
		return fmt.Errorf("no project open")
	}
	store.File.SetPageImage(store.Path, imagePath)
	if err := s.loadPage(store, imagePath); err != nil {
		return err
	}
	return store.File.Save(store.Path)
}

func (s *State) loadPage(store *project.Store, imagePath string) error {
	file, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("opening page image: %w", err)
	}
	img, _, err := goimage.Decode(file)
	file.Close()
	if err != nil {
		return fmt.Errorf("decoding page image: %w", err)
	}

	s.mu.Lock()
	s.PageImage = img
	if !s.Space.Valid() {
		width := store.File.AuthoringWidth
		if width <= 0 {
			width = engine.DefaultAuthoringWidth
		}
		b := img.Bounds()
		s.Space = engine.NewSpace(width, float64(b.Dy())/float64(b.Dx()))
	}
	s.mu.Unlock()

	s.Emit(EventPageLoaded, img)
	return nil
}

// SetRegions replaces the working copy after an editor change.
func (s *State) SetRegions(regions []region.Region) {
	s.mu.Lock()
	s.Regions = regions
	s.mu.Unlock()
	s.SetModified(true)
	s.Emit(EventRegionsChanged, regions)
}

// RegionsCopy returns a copy of the working region list.
func (s *State) RegionsCopy() []region.Region {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]region.Region, len(s.Regions))
	copy(out, s.Regions)
	return out
}

// PhotosCopy returns a copy of the photo list.
func (s *State) PhotosCopy() []region.Photo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]region.Photo, len(s.Photos))
	copy(out, s.Photos)
	return out
}

// SaveProject reconciles the working zones against the store, which
// promotes drafts to stable ids, and writes everything to disk. The
// saved list (with stable ids) replaces the working copy.
func (s *State) SaveProject() (region.Result, error) {
	store := s.store()
	if store == nil {
		return region.Result{}, fmt.Errorf("no project open")
	}

	res, err := store.SaveRegions(s.RegionsCopy())
	if err != nil {
		return res, err
	}

	s.mu.Lock()
	s.Regions = store.Regions()
	s.Photos = store.Photos()
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventRegionsChanged, s.RegionsCopy())
	s.Emit(EventProjectSaved, store.Path)
	return res, nil
}

// AddPhoto imports a photo file into the project and attaches it to a
// region's carousel.
func (s *State) AddPhoto(regionID, srcPath, caption string) error {
	store := s.store()
	if store == nil {
		return fmt.Errorf("no project open")
	}

	dir := photo.Dir{Path: store.File.GetPhotosDir(store.Path)}
	name, err := dir.Import(srcPath)
	if err != nil {
		return err
	}

	if _, err := store.AddPhoto(regionID, name, caption); err != nil {
		dir.Remove(name)
		return err
	}
	s.refreshPhotos(store)
	return nil
}

// DeletePhoto removes a photo record and its stored file.
func (s *State) DeletePhoto(photoID string) error {
	store := s.store()
	if store == nil {
		return fmt.Errorf("no project open")
	}

	var name string
	for _, p := range store.Photos() {
		if p.ID == photoID {
			name = p.ImagePath
			break
		}
	}
	if err := store.DeletePhoto(photoID); err != nil {
		return err
	}
	if name != "" {
		dir := photo.Dir{Path: store.File.GetPhotosDir(store.Path)}
		dir.Remove(name)
	}
	s.refreshPhotos(store)
	return nil
}

// SetPhotoCaption updates a photo's caption.
func (s *State) SetPhotoCaption(photoID, caption string) error {
	store := s.store()
	if store == nil {
		return fmt.Errorf("no project open")
	}
	if err := store.SetPhotoCaption(photoID, caption); err != nil {
		return err
	}
	s.refreshPhotos(store)
	return nil
}

// MovePhoto shifts a photo within its carousel.
func (s *State) MovePhoto(photoID string, delta int) error {
	store := s.store()
	if store == nil {
		return fmt.Errorf("no project open")
	}
	if err := store.MovePhoto(photoID, delta); err != nil {
		return err
	}
	s.refreshPhotos(store)
	return nil
}

// PhotosDir returns the project's photo directory.
func (s *State) PhotosDir() photo.Dir {
	store := s.store()
	if store == nil {
		return photo.Dir{}
	}
	return photo.Dir{Path: store.File.GetPhotosDir(store.Path)}
}

func (s *State) refreshPhotos(store *project.Store) {
	s.mu.Lock()
	s.Photos = store.Photos()
	s.mu.Unlock()
	s.Emit(EventPhotosChanged, nil)
}

func (s *State) store() *project.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Store
}
