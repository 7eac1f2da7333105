package handoff

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Storage writes captures as timestamped PNG files.
type Storage struct {
	dir string
	now func() time.Time
}

// NewStorage returns a Storage rooted at dir. A leading ~ expands to the
// home directory and an empty dir falls back to DefaultDir.
func NewStorage(dir string) *Storage {
	return &Storage{dir: expandHome(dir), now: time.Now}
}

// DefaultDir is ~/Pictures when it exists, otherwise the working directory.
func DefaultDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		pics := filepath.Join(home, "Pictures")
		if st, err := os.Stat(pics); err == nil && st.IsDir() {
			return pics
		}
	}
	return "."
}

// Dir returns the target directory.
func (s *Storage) Dir() string {
	if s.dir == "" {
		return DefaultDir()
	}
	return s.dir
}

// Save writes img and returns the path. An existing file is never
// overwritten; a numeric suffix is added instead.
func (s *Storage) Save(img image.Image) (string, error) {
	dir := s.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("save: create %s: %w", dir, err)
	}
	base := "cropshot_" + s.now().Format("20060102_150405")
	var f *os.File
	var path string
	for i := 0; ; i++ {
		name := base + ".png"
		if i > 0 {
			name = fmt.Sprintf("%s_%d.png", base, i)
		}
		path = filepath.Join(dir, name)
		var err error
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			break
		}
		if !os.IsExist(err) {
			return "", fmt.Errorf("save: %w", err)
		}
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("save: encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("save: %w", err)
	}
	return path, nil
}

func expandHome(dir string) string {
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(dir, "~"))
		}
	}
	return dir
}
