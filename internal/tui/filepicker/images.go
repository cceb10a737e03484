// ABOUTME: Discovers uploadable images in a directory
// ABOUTME: Matches the image types the backend accepts by file extension

package filepicker

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// imageExts are the extensions the backend stores as images
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// Image is a discovered image file
type Image struct {
	Name string // base name, e.g. "logo.png"
	Path string
	Size int64
}

// IsImage reports whether path has an image extension
func IsImage(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

// Discover finds the image files directly inside dir, sorted by name.
// A missing directory yields no images.
func Discover(dir string) ([]Image, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return []Image{}, nil
	}
	if err != nil {
		return nil, err
	}

	images := []Image{}
	for _, entry := range entries {
		if entry.IsDir() || !IsImage(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		images = append(images, Image{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
			Size: info.Size(),
		})
	}
	sort.Slice(images, func(i, j int) bool { return images[i].Name < images[j].Name })
	return images, nil
}
