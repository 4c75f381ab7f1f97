package analyzer

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDetectStructureEmptyProject(t *testing.T) {
	dir := setupProject(t)
	profile := New(Options{}).DetectStructure(dir)

	if len(profile.Directories) != 0 {
		t.Errorf("directories = %v, want none", profile.Directories)
	}
	if profile.HasSourceDir || profile.HasTestDir || profile.HasDocsDir || profile.HasCIConfig {
		t.Error("all flags should be false for an empty tree")
	}
}

func TestDetectStructureConventionalLayout(t *testing.T) {
	dir := setupProject(t)
	for _, d := range []string{"src", "tests", "docs", "scripts"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0755); err != nil {
			t.Fatalf("failed to create %s: %v", d, err)
		}
	}

	profile := New(Options{}).DetectStructure(dir)

	want := []string{"src", "tests", "docs", "scripts"}
	if !reflect.DeepEqual(profile.Directories, want) {
		t.Errorf("directories = %v, want %v in table order", profile.Directories, want)
	}
	if !profile.HasSourceDir {
		t.Error("hasSourceDir should be true with src/ present")
	}
	if !profile.HasTestDir {
		t.Error("hasTestDir should be true with tests/ present")
	}
	if !profile.HasDocsDir {
		t.Error("hasDocsDir should be true with docs/ present")
	}
	if profile.HasCIConfig {
		t.Error("hasCiConfig should be false without CI markers")
	}
}

func TestDetectStructureFileShadowingDirectory(t *testing.T) {
	dir := setupProject(t)
	// A plain file named like a conventional directory does not count
	writeFile(t, dir, "src", "not a directory")

	profile := New(Options{}).DetectStructure(dir)

	if len(profile.Directories) != 0 {
		t.Errorf("directories = %v, want none for a file named src", profile.Directories)
	}
	if profile.HasSourceDir {
		t.Error("hasSourceDir should be false for a file named src")
	}
}

func TestDetectStructureCIMarkers(t *testing.T) {
	t.Run("github actions", func(t *testing.T) {
		dir := setupProject(t)
		writeFile(t, dir, ".github/workflows/ci.yml", "name: ci")
		if !New(Options{}).DetectStructure(dir).HasCIConfig {
			t.Error("hasCiConfig should be true with .github/workflows present")
		}
	})

	t.Run("gitlab ci", func(t *testing.T) {
		dir := setupProject(t)
		writeFile(t, dir, ".gitlab-ci.yml", "stages: [test]")
		if !New(Options{}).DetectStructure(dir).HasCIConfig {
			t.Error("hasCiConfig should be true with .gitlab-ci.yml present")
		}
	})

	t.Run("jenkinsfile", func(t *testing.T) {
		dir := setupProject(t)
		writeFile(t, dir, "Jenkinsfile", "pipeline {}")
		if !New(Options{}).DetectStructure(dir).HasCIConfig {
			t.Error("hasCiConfig should be true with a Jenkinsfile present")
		}
	})
}
