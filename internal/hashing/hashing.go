// Package hashing provides the deterministic digest primitives used by
// fingerprinting. All digests are hex-encoded SHA-256.
package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultSkipDirs are directory names excluded from structural hashing and
// tree walks: version control, build output, dependency caches, vendored
// code, and editor state.
var DefaultSkipDirs = []string{
	".git",
	".svn",
	".hg",
	"node_modules",
	"vendor",
	"dist",
	"build",
	"out",
	"target",
	".next",
	".nuxt",
	"__pycache__",
	".venv",
	"venv",
	".dart_tool",
	"coverage",
	".cache",
	".idea",
}

// HashContent computes the SHA-256 digest of the given bytes.
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashString computes the SHA-256 digest of a string.
func HashString(s string) string {
	return HashContent([]byte(s))
}

// HashFile reads the whole file and hashes its bytes. Unreadable files
// return an error; callers treat this as recoverable and skip the file.
func HashFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return HashContent(data), nil
}

// HashMultiple hashes an ordered list of values with a stable separator.
// Order matters: callers must pass values in a fixed, pre-determined order,
// never out of an unordered set.
func HashMultiple(values []string) string {
	h := sha256.New()
	for _, v := range values {
		h.Write([]byte(v))
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// HashDirectoryTree computes a structural hash of a directory tree: the
// relative path and entry kind (dir/file) of every entry, in lexical walk
// order. Directory names in skipDirs are not descended into. File contents
// are not read, so this is a cheap proxy for topology change.
func HashDirectoryTree(root string, skipDirs []string) (string, error) {
	skip := make(map[string]bool, len(skipDirs))
	for _, d := range skipDirs {
		skip[d] = true
	}

	var entries []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree: record nothing for it and keep walking
			if path == root {
				return err
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if skip[d.Name()] {
				return filepath.SkipDir
			}
			entries = append(entries, filepath.ToSlash(rel)+":dir")
			return nil
		}

		entries = append(entries, filepath.ToSlash(rel)+":file")
		return nil
	})
	if err != nil {
		return "", err
	}

	return HashMultiple(entries), nil
}
