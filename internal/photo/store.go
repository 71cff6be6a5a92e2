package photo

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Dir is the project-local directory that imported photo files are
// copied into. Photo records in the project reference files here by
// name, which keeps the project folder relocatable.
type Dir struct {
	Path string
}

// Import copies a photo file into the directory and returns the stored
// file name. Name collisions get a numeric suffix instead of
// overwriting the existing file.
func (d Dir) Import(srcPath string) (string, error) {
	if !IsSupportedFormat(srcPath) {
		return "", fmt.Errorf("unsupported photo format: %s", filepath.Ext(srcPath))
	}
	if err := os.MkdirAll(d.Path, 0755); err != nil {
		return "", fmt.Errorf("creating photos dir: %w", err)
	}

	name := d.freeName(filepath.Base(srcPath))

	src, err := os.Open(srcPath)
	if err != nil {
		return "", fmt.Errorf("opening photo: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(d.Path, name))
	if err != nil {
		return "", fmt.Errorf("importing photo: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("copying photo: %w", err)
	}
	return name, nil
}

// Remove deletes a stored photo file. A file that is already gone is
// not an error.
func (d Dir) Remove(name string) error {
	err := os.Remove(filepath.Join(d.Path, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Abs returns the absolute path of a stored photo file.
func (d Dir) Abs(name string) string {
	return filepath.Join(d.Path, name)
}

func (d Dir) freeName(base string) string {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	name := base
	for i := 1; ; i++ {
		if _, err := os.Stat(filepath.Join(d.Path, name)); os.IsNotExist(err) {
			return name
		}
		name = fmt.Sprintf("%s-%d%s", stem, i, ext)
	}
}
