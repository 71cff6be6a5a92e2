package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"resume-hotspots/internal/region"
)

// Store is an open project: the .rhz file plus the region and photo
// data files next to it. All mutating calls write through to disk.
type Store struct {
	Path string
	File *File

	regions []region.Region
	photos  []region.Photo
}

// Create makes a new project on disk at path.
func Create(path, name string) (*Store, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("project already exists: %s", path)
	}

	proj := New(name)
	if err := proj.Save(path); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	return &Store{Path: path, File: proj}, nil
}

// Open loads an existing project and its data files. Missing data
// files are treated as empty, not as errors.
func Open(path string) (*Store, error) {
	proj, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading project: %w", err)
	}

	s := &Store{Path: path, File: proj}
	if err := s.loadData(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) loadData() error {
	if err := readJSONFile(s.File.GetRegionsPath(s.Path), &s.regions); err != nil {
		return fmt.Errorf("loading regions: %w", err)
	}
	if err := readJSONFile(s.File.GetPhotosPath(s.Path), &s.photos); err != nil {
		return fmt.Errorf("loading photos: %w", err)
	}
	region.SortByOrder(s.regions)
	region.SortPhotos(s.photos)
	return nil
}

func readJSONFile(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func writeJSONFile(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Regions returns a copy of the saved region list.
func (s *Store) Regions() []region.Region {
	out := make([]region.Region, len(s.regions))
	copy(out, s.regions)
	return out
}

// Photos returns a copy of the saved photo list.
func (s *Store) Photos() []region.Photo {
	out := make([]region.Photo, len(s.photos))
	copy(out, s.photos)
	return out
}

// SaveRegions reconciles the edited list against the saved one,
// promotes drafts to stable ids and writes everything to disk. Photos
// attached to deleted regions are dropped.
func (s *Store) SaveRegions(edited []region.Region) (region.Result, error) {
	res := region.Reconcile(s.regions, edited, s.nextRegionID)

	s.regions = res.Regions
	s.photos = region.RemapPhotos(s.photos, res)

	if err := writeJSONFile(s.File.GetRegionsPath(s.Path), s.regions); err != nil {
		return res, fmt.Errorf("saving regions: %w", err)
	}
	if err := writeJSONFile(s.File.GetPhotosPath(s.Path), s.photos); err != nil {
		return res, fmt.Errorf("saving photos: %w", err)
	}
	if err := s.File.Save(s.Path); err != nil {
		return res, fmt.Errorf("saving project: %w", err)
	}
	return res, nil
}

func (s *Store) nextRegionID() string {
	s.File.NextRegionID++
	return fmt.Sprintf("rgn-%06d", s.File.NextRegionID)
}

func (s *Store) nextPhotoID() string {
	s.File.NextPhotoID++
	return fmt.Sprintf("pho-%06d", s.File.NextPhotoID)
}

// AddPhoto appends a photo to a region's carousel and persists it.
// The region must have a stable id, drafts cannot hold photos.
func (s *Store) AddPhoto(regionID, imagePath, caption string) (region.Photo, error) {
	if regionID == "" || strings.HasPrefix(regionID, region.DraftIDPrefix) {
		return region.Photo{}, fmt.Errorf("photos need a saved region, got %q", regionID)
	}
	if !s.hasRegion(regionID) {
		return region.Photo{}, fmt.Errorf("unknown region: %s", regionID)
	}

	p := region.Photo{
		ID:         s.nextPhotoID(),
		RegionID:   regionID,
		ImagePath:  imagePath,
		Caption:    caption,
		OrderIndex: len(region.PhotosFor(s.photos, regionID)),
	}
	s.photos = append(s.photos, p)
	if err := s.savePhotos(); err != nil {
		return region.Photo{}, err
	}
	return p, nil
}

// DeletePhoto removes a photo and compacts the carousel order of its
// region.
func (s *Store) DeletePhoto(photoID string) error {
	idx := s.photoIndex(photoID)
	if idx < 0 {
		return fmt.Errorf("unknown photo: %s", photoID)
	}
	regionID := s.photos[idx].RegionID
	s.photos = append(s.photos[:idx], s.photos[idx+1:]...)
	s.compactCarousel(regionID)
	return s.savePhotos()
}

// SetPhotoCaption updates a photo's caption.
func (s *Store) SetPhotoCaption(photoID, caption string) error {
	idx := s.photoIndex(photoID)
	if idx < 0 {
		return fmt.Errorf("unknown photo: %s", photoID)
	}
	s.photos[idx].Caption = caption
	return s.savePhotos()
}

// MovePhoto shifts a photo within its region's carousel by delta
// positions. Moves past either end are clamped.
func (s *Store) MovePhoto(photoID string, delta int) error {
	idx := s.photoIndex(photoID)
	if idx < 0 {
		return fmt.Errorf("unknown photo: %s", photoID)
	}
	group := region.PhotosFor(s.photos, s.photos[idx].RegionID)

	pos := 0
	for i, p := range group {
		if p.ID == photoID {
			pos = i
			break
		}
	}
	target := pos + delta
	if target < 0 {
		target = 0
	}
	if target >= len(group) {
		target = len(group) - 1
	}
	if target == pos {
		return nil
	}

	moved := group[pos]
	group = append(group[:pos], group[pos+1:]...)
	group = append(group[:target], append([]region.Photo{moved}, group[target:]...)...)
	for i := range group {
		group[i].OrderIndex = i
		s.photos[s.photoIndex(group[i].ID)] = group[i]
	}
	return s.savePhotos()
}

func (s *Store) compactCarousel(regionID string) {
	group := region.PhotosFor(s.photos, regionID)
	for i := range group {
		group[i].OrderIndex = i
		s.photos[s.photoIndex(group[i].ID)] = group[i]
	}
}

func (s *Store) savePhotos() error {
	// Keep the slice in the same canonical order Open produces, so the
	// in-memory list and a reload never disagree.
	region.SortPhotos(s.photos)
	if err := writeJSONFile(s.File.GetPhotosPath(s.Path), s.photos); err != nil {
		return fmt.Errorf("saving photos: %w", err)
	}
	return s.File.Save(s.Path)
}

func (s *Store) hasRegion(id string) bool {
	for _, r := range s.regions {
		if r.ID == id {
			return true
		}
	}
	return false
}

func (s *Store) photoIndex(id string) int {
	for i, p := range s.photos {
		if p.ID == id {
			return i
		}
	}
	return -1
}
