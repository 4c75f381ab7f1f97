package analyzer

import (
	"os"
	"path/filepath"
)

// DetectStructure checks the project root for conventional top-level
// directories and common CI configuration locations.
func (a *Analyzer) DetectStructure(projectPath string) StructureProfile {
	var profile StructureProfile

	for _, dir := range conventionalDirectories {
		info, err := os.Stat(filepath.Join(projectPath, dir))
		if err != nil || !info.IsDir() {
			continue
		}
		profile.Directories = append(profile.Directories, dir)
		if sourceDirNames[dir] {
			profile.HasSourceDir = true
		}
		if testDirNames[dir] {
			profile.HasTestDir = true
		}
		if docsDirNames[dir] {
			profile.HasDocsDir = true
		}
	}

	ciMarkers := []string{
		filepath.Join(".github", "workflows"),
		".gitlab-ci.yml",
		filepath.Join(".circleci", "config.yml"),
		"Jenkinsfile",
	}
	for _, marker := range ciMarkers {
		if _, err := os.Stat(filepath.Join(projectPath, marker)); err == nil {
			profile.HasCIConfig = true
			break
		}
	}

	return profile
}
