package hashing

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHashContent(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := HashContent([]byte("hello"))
		b := HashContent([]byte("hello"))
		if a != b {
			t.Errorf("same input produced different hashes: %s vs %s", a, b)
		}
	})

	t.Run("distinct inputs", func(t *testing.T) {
		if HashContent([]byte("a")) == HashContent([]byte("b")) {
			t.Error("different inputs produced the same hash")
		}
	})

	t.Run("hex encoded sha256", func(t *testing.T) {
		h := HashContent(nil)
		if len(h) != 64 {
			t.Errorf("hash length = %d, want 64", len(h))
		}
	})
}

func TestHashFile(t *testing.T) {
	tmpDir, err := os.MkdirTemp("", "stackscan-hash-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "file.txt")
	if err := os.WriteFile(path, []byte("content"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	t.Run("matches content hash", func(t *testing.T) {
		fileHash, err := HashFile(path)
		if err != nil {
			t.Fatalf("HashFile failed: %v", err)
		}
		if fileHash != HashContent([]byte("content")) {
			t.Error("file hash does not match content hash")
		}
	})

	t.Run("missing file returns error", func(t *testing.T) {
		if _, err := HashFile(filepath.Join(tmpDir, "missing.txt")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}

func TestHashMultiple(t *testing.T) {
	t.Run("order matters", func(t *testing.T) {
		ab := HashMultiple([]string{"a", "b"})
		ba := HashMultiple([]string{"b", "a"})
		if ab == ba {
			t.Error("reordered values produced the same hash")
		}
	})

	t.Run("separator prevents boundary collisions", func(t *testing.T) {
		if HashMultiple([]string{"ab", "c"}) == HashMultiple([]string{"a", "bc"}) {
			t.Error("values with shifted boundaries collided")
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		if HashMultiple([]string{"x", "y"}) != HashMultiple([]string{"x", "y"}) {
			t.Error("same values produced different hashes")
		}
	})
}

func TestHashDirectoryTree(t *testing.T) {
	setup := func(t *testing.T) string {
		t.Helper()
		tmpDir, err := os.MkdirTemp("", "stackscan-tree-test")
		if err != nil {
			t.Fatalf("failed to create temp dir: %v", err)
		}
		t.Cleanup(func() { os.RemoveAll(tmpDir) })

		if err := os.MkdirAll(filepath.Join(tmpDir, "src"), 0755); err != nil {
			t.Fatalf("failed to create src: %v", err)
		}
		if err := os.WriteFile(filepath.Join(tmpDir, "src", "main.go"), []byte("package main"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		return tmpDir
	}

	t.Run("deterministic", func(t *testing.T) {
		dir := setup(t)
		first, err := HashDirectoryTree(dir, DefaultSkipDirs)
		if err != nil {
			t.Fatalf("HashDirectoryTree failed: %v", err)
		}
		second, err := HashDirectoryTree(dir, DefaultSkipDirs)
		if err != nil {
			t.Fatalf("HashDirectoryTree failed: %v", err)
		}
		if first != second {
			t.Error("unchanged tree produced different hashes")
		}
	})

	t.Run("content agnostic", func(t *testing.T) {
		dir := setup(t)
		before, _ := HashDirectoryTree(dir, DefaultSkipDirs)
		if err := os.WriteFile(filepath.Join(dir, "src", "main.go"), []byte("package main // edited"), 0644); err != nil {
			t.Fatalf("failed to rewrite file: %v", err)
		}
		after, _ := HashDirectoryTree(dir, DefaultSkipDirs)
		if before != after {
			t.Error("editing file content changed the structural hash")
		}
	})

	t.Run("topology sensitive", func(t *testing.T) {
		dir := setup(t)
		before, _ := HashDirectoryTree(dir, DefaultSkipDirs)
		if err := os.MkdirAll(filepath.Join(dir, "docs"), 0755); err != nil {
			t.Fatalf("failed to create docs: %v", err)
		}
		after, _ := HashDirectoryTree(dir, DefaultSkipDirs)
		if before == after {
			t.Error("adding a directory did not change the structural hash")
		}
	})

	t.Run("skip list ignored", func(t *testing.T) {
		dir := setup(t)
		before, _ := HashDirectoryTree(dir, DefaultSkipDirs)
		if err := os.MkdirAll(filepath.Join(dir, "node_modules", "lodash"), 0755); err != nil {
			t.Fatalf("failed to create node_modules: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "node_modules", "lodash", "index.js"), []byte("x"), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		after, _ := HashDirectoryTree(dir, DefaultSkipDirs)
		if before != after {
			t.Error("skip-listed directory changed the structural hash")
		}
	})

	t.Run("missing root returns error", func(t *testing.T) {
		if _, err := HashDirectoryTree("/nonexistent/stackscan-test-path", DefaultSkipDirs); err == nil {
			t.Error("expected error for missing root")
		}
	})
}
