// ABOUTME: Tests for preset file discovery
// ABOUTME: Validates finding YAML presets and resolving names to paths

package presets

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscover(t *testing.T) {
	tmpDir := t.TempDir()

	os.WriteFile(filepath.Join(tmpDir, "pod-64.yaml"), []byte("radix: 64\n"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "lab.yml"), []byte("radix: 32\n"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "readme.txt"), []byte("ignore"), 0644)
	os.Mkdir(filepath.Join(tmpDir, "nested.yaml"), 0755)

	files, err := Discover(tmpDir)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 YAML files, got %d", len(files))
	}
	// os.ReadDir returns entries sorted by filename
	if files[0].Name != "lab" || files[1].Name != "pod-64" {
		t.Errorf("unexpected names %q, %q", files[0].Name, files[1].Name)
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	files, err := Discover("/nonexistent/path")
	if err != nil {
		t.Fatalf("Discover() should not error for missing dir, got: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("expected empty list for missing dir, got %d", len(files))
	}
}

func TestFindDir_Env(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("FABRIC_SIZER_PRESETS_PATH", tmpDir)

	if got := FindDir("/nonexistent"); got != tmpDir {
		t.Errorf("FindDir() = %q, want %q", got, tmpDir)
	}
}

func TestFindDir_Relative(t *testing.T) {
	t.Setenv("FABRIC_SIZER_PRESETS_PATH", "")
	base := t.TempDir()
	os.Mkdir(filepath.Join(base, "presets"), 0755)

	if got := FindDir(base); got != filepath.Join(base, "presets") {
		t.Errorf("FindDir() = %q, want presets under base", got)
	}
	if got := FindDir(t.TempDir()); got != "" {
		t.Errorf("FindDir() = %q, want empty when no presets dir", got)
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	named := filepath.Join(dir, "pod-64.yaml")
	os.WriteFile(named, []byte("radix: 64\n"), 0644)

	tests := []struct {
		name string
		arg  string
		dir  string
		want string
	}{
		{"existing path", named, "", named},
		{"bare name", "pod-64", dir, named},
		{"unknown name", "missing", dir, "missing"},
		{"no presets dir", "pod-64", "", "pod-64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.arg, tt.dir); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.arg, got, tt.want)
			}
		})
	}
}
