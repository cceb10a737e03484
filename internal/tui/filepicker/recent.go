// ABOUTME: Remembers recently uploaded image paths for the file picker
// ABOUTME: Stored as JSON next to the session in the config directory

package filepicker

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// MaxRecent is the number of recent uploads kept
const MaxRecent = 5

// RecentFileName is the file holding the list inside the config directory
const RecentFileName = "recent_uploads.json"

// Recent manages the list of recently uploaded files
type Recent struct {
	configDir string
	files     []string
}

type recentData struct {
	Files []string `json:"files"`
}

// NewRecent creates a list stored in configDir
func NewRecent(configDir string) *Recent {
	return &Recent{configDir: configDir}
}

func (r *Recent) path() string {
	return filepath.Join(r.configDir, RecentFileName)
}

// Load reads the list, dropping files that no longer exist.
// A missing or corrupt file yields an empty list.
func (r *Recent) Load() ([]string, error) {
	data, err := os.ReadFile(r.path())
	if os.IsNotExist(err) {
		r.files = []string{}
		return r.files, nil
	}
	if err != nil {
		return nil, err
	}

	var stored recentData
	if err := json.Unmarshal(data, &stored); err != nil {
		r.files = []string{}
		return r.files, nil
	}

	r.files = make([]string, 0, len(stored.Files))
	for _, p := range stored.Files {
		if _, err := os.Stat(p); err == nil {
			r.files = append(r.files, p)
		}
	}
	return r.files, nil
}

// Add moves path to the front of the list and saves it
func (r *Recent) Add(path string) error {
	if r.files == nil {
		if _, err := r.Load(); err != nil {
			r.files = []string{}
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	files := make([]string, 0, len(r.files)+1)
	files = append(files, path)
	for _, f := range r.files {
		if f != path {
			files = append(files, f)
		}
	}
	if len(files) > MaxRecent {
		files = files[:MaxRecent]
	}
	r.files = files

	if err := os.MkdirAll(r.configDir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(recentData{Files: files}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path(), data, 0600)
}
