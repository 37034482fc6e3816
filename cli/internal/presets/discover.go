// ABOUTME: Discovers named preset files in a presets directory
// ABOUTME: Looks in FABRIC_SIZER_PRESETS_PATH or ./presets

package presets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File represents a discovered preset file
type File struct {
	Name string // Preset name without extension (e.g., "pod-64")
	Path string // Full path to the file
}

// Discover finds all YAML files in the given directory, sorted by name
func Discover(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return []File{}, nil
	}
	if err != nil {
		return nil, err
	}

	files := []File{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		files = append(files, File{
			Name: strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())),
			Path: filepath.Join(dir, entry.Name()),
		})
	}

	return files, nil
}

// FindDir locates the presets directory
// Checks in order:
// 1. FABRIC_SIZER_PRESETS_PATH environment variable
// 2. ./presets/ relative to given base path
func FindDir(basePath string) string {
	if envPath := os.Getenv("FABRIC_SIZER_PRESETS_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	dir := filepath.Join(basePath, "presets")
	if _, err := os.Stat(dir); err == nil {
		return dir
	}

	return ""
}

// Resolve maps a --config argument to a file path. Existing paths are returned as is;
// otherwise a bare name is looked up among the presets in dir.
func Resolve(arg, dir string) string {
	if _, err := os.Stat(arg); err == nil || dir == "" {
		return arg
	}

	files, err := Discover(dir)
	if err != nil {
		return arg
	}
	for _, f := range files {
		if f.Name == arg {
			return f.Path
		}
	}
	return arg
}
