// Package project provides project file handling and persistence.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// File represents a resume hot zones project file (.rhz).
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	// Source files (relative to project file). The PDF supplies the page
	// aspect ratio, the page image is the pre-rendered bitmap the editor
	// draws the zones over.
	ResumePDFPath string `json:"resume_pdf,omitempty"`
	PageImagePath string `json:"page_image,omitempty"`

	// Reference width of the zone coordinate space. 0 means the default.
	AuthoringWidth float64 `json:"authoring_width,omitempty"`

	// Data file paths (relative to project file)
	RegionsPath string `json:"regions,omitempty"`
	PhotosPath  string `json:"photos,omitempty"`
	PhotosDir   string `json:"photos_dir,omitempty"`

	// Counters for stable ids assigned at save time. Never reused, even
	// after deletions.
	NextRegionID int `json:"next_region_id"`
	NextPhotoID  int `json:"next_photo_id"`

	// User settings
	Settings ProjectSettings `json:"settings,omitempty"`
}

// ProjectSettings holds user preferences for the project.
type ProjectSettings struct {
	SnapEnabled   bool    `json:"snap_enabled"`
	SnapThreshold float64 `json:"snap_threshold,omitempty"`
}

// New creates a new project file with default settings.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Name:     name,
		Created:  now,
		Modified: now,
		Settings: ProjectSettings{
			SnapEnabled: true,
		},
	}
}

// Load loads a project from a .rhz file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var proj File
	if err := json.Unmarshal(data, &proj); err != nil {
		return nil, err
	}

	return &proj, nil
}

// Save saves the project to a file.
func (p *File) Save(path string) error {
	p.Modified = time.Now()

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// SetResumePDF sets the resume PDF path (relative to project).
func (p *File) SetResumePDF(projectPath, pdfPath string) {
	rel, err := filepath.Rel(filepath.Dir(projectPath), pdfPath)
	if err != nil {
		p.ResumePDFPath = pdfPath
	} else {
		p.ResumePDFPath = rel
	}
	p.Modified = time.Now()
}

// SetPageImage sets the rendered page image path (relative to project).
func (p *File) SetPageImage(projectPath, imagePath string) {
	rel, err := filepath.Rel(filepath.Dir(projectPath), imagePath)
	if err != nil {
		p.PageImagePath = imagePath
	} else {
		p.PageImagePath = rel
	}
	p.Modified = time.Now()
}

// GetResumePDFPath returns the absolute path to the resume PDF.
func (p *File) GetResumePDFPath(projectPath string) string {
	if p.ResumePDFPath == "" {
		return ""
	}
	if filepath.IsAbs(p.ResumePDFPath) {
		return p.ResumePDFPath
	}
	return filepath.Join(filepath.Dir(projectPath), p.ResumePDFPath)
}

// GetPageImagePath returns the absolute path to the rendered page image.
func (p *File) GetPageImagePath(projectPath string) string {
	if p.PageImagePath == "" {
		return ""
	}
	if filepath.IsAbs(p.PageImagePath) {
		return p.PageImagePath
	}
	return filepath.Join(filepath.Dir(projectPath), p.PageImagePath)
}

// GetRegionsPath returns the absolute path to the regions file.
func (p *File) GetRegionsPath(projectPath string) string {
	if p.RegionsPath == "" {
		// Default: project_name_regions.json
		base := projectPath[:len(projectPath)-len(filepath.Ext(projectPath))]
		return base + "_regions.json"
	}
	if filepath.IsAbs(p.RegionsPath) {
		return p.RegionsPath
	}
	return filepath.Join(filepath.Dir(projectPath), p.RegionsPath)
}

// GetPhotosPath returns the absolute path to the photo manifest file.
func (p *File) GetPhotosPath(projectPath string) string {
	if p.PhotosPath == "" {
		// Default: project_name_photos.json
		base := projectPath[:len(projectPath)-len(filepath.Ext(projectPath))]
		return base + "_photos.json"
	}
	if filepath.IsAbs(p.PhotosPath) {
		return p.PhotosPath
	}
	return filepath.Join(filepath.Dir(projectPath), p.PhotosPath)
}

// GetPhotosDir returns the absolute path to the directory holding
// imported photo files.
func (p *File) GetPhotosDir(projectPath string) string {
	if p.PhotosDir == "" {
		return filepath.Join(filepath.Dir(projectPath), "photos")
	}
	if filepath.IsAbs(p.PhotosDir) {
		return p.PhotosDir
	}
	return filepath.Join(filepath.Dir(projectPath), p.PhotosDir)
}
