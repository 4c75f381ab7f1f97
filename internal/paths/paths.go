// Package paths contains small path helpers shared across stackscan.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// NormalizePath normalizes a path by converting backslashes to forward slashes.
// This is useful for paths that are already relative but need normalization.
func NormalizePath(path string) string {
	return filepath.ToSlash(path)
}

// ExpandHome expands a leading "~" or "~/" prefix to the user's home
// directory. Paths without the prefix are returned unchanged. If the home
// directory cannot be resolved the original path is returned.
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(home, path[2:])
	}

	// "~user" style paths are not supported; leave as-is
	return path
}

// DefaultCacheDir returns the default location for the analysis cache,
// under the user's home profile.
func DefaultCacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".stackscan", "cache"), nil
}

// IsWithin checks whether path is lexically inside root.
func IsWithin(path string, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
