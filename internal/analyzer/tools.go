package analyzer

import (
	"os"
	"path/filepath"
	"strings"
)

// DetectFrameworks matches the project against the static framework table.
func (a *Analyzer) DetectFrameworks(projectPath string) []DetectedTool {
	return a.matchTable(projectPath, frameworkTable)
}

// DetectBuildTools matches the project against the static build-tool table.
func (a *Analyzer) DetectBuildTools(projectPath string) []DetectedTool {
	return a.matchTable(projectPath, buildToolTable)
}

// DetectConfigs matches the project against the static configuration table.
func (a *Analyzer) DetectConfigs(projectPath string) []DetectedTool {
	return a.matchTable(projectPath, configTable)
}

// matchTable applies OR semantics: a tool matches when any one of its
// marker files exists or any one of its marker dependency names appears in
// the project's direct or development dependencies. Multiple tools in the
// same category may match simultaneously.
func (a *Analyzer) matchTable(projectPath string, table []toolMarker) []DetectedTool {
	depNames := a.collectDependencyNames(projectPath)

	var matched []DetectedTool
	for _, tool := range table {
		var files []string
		for _, f := range tool.Files {
			if _, err := os.Stat(filepath.Join(projectPath, filepath.FromSlash(f))); err == nil {
				files = append(files, f)
			}
		}
		depHit := false
		for _, d := range tool.Deps {
			if depNames[strings.ToLower(d)] {
				depHit = true
				break
			}
		}
		if len(files) == 0 && !depHit {
			continue
		}
		matched = append(matched, DetectedTool{
			Category:     tool.Category,
			Name:         tool.Name,
			MatchedFiles: files,
		})
	}
	return matched
}

// collectDependencyNames gathers a lowercase set of direct and development
// dependency names from every parseable root manifest. Each table detector
// re-reads the manifests itself: detectors share no state, so they stay
// independently and concurrently runnable.
func (a *Analyzer) collectDependencyNames(projectPath string) map[string]bool {
	names := make(map[string]bool)
	for _, m := range dependencyManifests {
		full := filepath.Join(projectPath, m.FileName)
		if _, err := os.Stat(full); err != nil {
			continue
		}
		deps, devDeps, err := parseManifest(full, m.FileName)
		if err != nil {
			continue
		}
		for _, d := range deps {
			names[strings.ToLower(d)] = true
		}
		for _, d := range devDeps {
			names[strings.ToLower(d)] = true
		}
	}
	return names
}
