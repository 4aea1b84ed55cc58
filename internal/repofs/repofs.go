// Package repofs locates the repository under analysis and manages the
// .repodoc cache directory inside it.
package repofs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/k1lgor/RepoDoctor/internal/errdefs"
)

// CacheDirName is the per-repository state directory.
const CacheDirName = ".repodoc"

// ScanCacheName is the cached result of the last full scan.
const ScanCacheName = "last_scan.json"

// codeExtensions marks a directory as containing analyzable content.
var codeExtensions = map[string]bool{
	".py": true, ".js": true, ".ts": true, ".java": true,
	".go": true, ".rs": true, ".rb": true, ".cpp": true,
	".c": true, ".h": true, ".css": true, ".html": true,
}

// Root resolves dir (empty means the working directory) and verifies it
// holds at least one code file within the first two directory levels.
// An unreadable directory passes; refusing to analyze on a permission
// hiccup would be worse than a wasted invocation.
func Root(dir string) (string, error) {
	if dir == "" {
		var err error
		dir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("repository %s: %w", abs, err)
		}
		return abs, nil
	}

	for _, e := range entries {
		if !e.IsDir() {
			if codeExtensions[filepath.Ext(e.Name())] {
				return abs, nil
			}
			continue
		}
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		sub, err := os.ReadDir(filepath.Join(abs, e.Name()))
		if err != nil {
			continue
		}
		for _, s := range sub {
			if !s.IsDir() && codeExtensions[filepath.Ext(s.Name())] {
				return abs, nil
			}
		}
	}
	return "", errdefs.EmptyRepo()
}

// CacheDir ensures <root>/.repodoc exists and returns its path.
func CacheDir(root string) (string, error) {
	dir := filepath.Join(root, CacheDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create cache dir %s: %w", dir, err)
	}
	return dir, nil
}

// ScanCachePath returns where the last scan result is cached.
func ScanCachePath(root string) string {
	return filepath.Join(root, CacheDirName, ScanCacheName)
}

// SaveJSON writes v as indented JSON, creating parent directories.
func SaveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
