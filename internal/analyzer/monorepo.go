package analyzer

import (
	"encoding/json"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DetectMonorepo checks the fixed set of multi-package workspace markers
// and collects declared member globs where the marker format carries them.
func (a *Analyzer) DetectMonorepo(projectPath string) MonorepoProfile {
	var profile MonorepoProfile

	addTool := func(tool, marker string, globs []string) {
		profile.IsMonorepo = true
		profile.Tools = append(profile.Tools, tool)
		profile.Markers = append(profile.Markers, marker)
		profile.WorkspaceGlobs = append(profile.WorkspaceGlobs, globs...)
	}

	if globs, ok := a.pnpmWorkspaceGlobs(projectPath); ok {
		addTool("pnpm", "pnpm-workspace.yaml", globs)
	}
	if globs, ok := a.packageJSONWorkspaces(projectPath); ok {
		addTool("npm-workspaces", "package.json", globs)
	}
	if globs, ok := a.lernaPackages(projectPath); ok {
		addTool("lerna", "lerna.json", globs)
	}
	if _, err := os.Stat(filepath.Join(projectPath, "nx.json")); err == nil {
		addTool("nx", "nx.json", nil)
	}
	if _, err := os.Stat(filepath.Join(projectPath, "turbo.json")); err == nil {
		addTool("turborepo", "turbo.json", nil)
	}
	if _, err := os.Stat(filepath.Join(projectPath, "go.work")); err == nil {
		addTool("go-workspace", "go.work", nil)
	}
	if members, ok := a.cargoWorkspaceMembers(projectPath); ok {
		addTool("cargo-workspace", "Cargo.toml", members)
	}

	return profile
}

func (a *Analyzer) pnpmWorkspaceGlobs(projectPath string) ([]string, bool) {
	data, err := os.ReadFile(filepath.Join(projectPath, "pnpm-workspace.yaml"))
	if err != nil {
		return nil, false
	}

	var ws struct {
		Packages []string `yaml:"packages"`
	}
	if err := yaml.Unmarshal(data, &ws); err != nil {
		a.logger.Warn("failed to parse pnpm-workspace.yaml", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, true // marker present even if unparseable
	}
	return ws.Packages, true
}

// packageJSONWorkspaces handles both the array form and the object form
// ({"packages": [...]}) of the workspaces field.
func (a *Analyzer) packageJSONWorkspaces(projectPath string) ([]string, bool) {
	data, err := os.ReadFile(filepath.Join(projectPath, "package.json"))
	if err != nil {
		return nil, false
	}

	var pkg struct {
		Workspaces json.RawMessage `json:"workspaces"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil || len(pkg.Workspaces) == 0 {
		return nil, false
	}

	var globs []string
	if err := json.Unmarshal(pkg.Workspaces, &globs); err == nil {
		return globs, len(globs) > 0
	}

	var obj struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(pkg.Workspaces, &obj); err == nil {
		return obj.Packages, len(obj.Packages) > 0
	}

	return nil, false
}

func (a *Analyzer) lernaPackages(projectPath string) ([]string, bool) {
	data, err := os.ReadFile(filepath.Join(projectPath, "lerna.json"))
	if err != nil {
		return nil, false
	}

	var lerna struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(data, &lerna); err != nil {
		return nil, true
	}
	return lerna.Packages, true
}

func (a *Analyzer) cargoWorkspaceMembers(projectPath string) ([]string, bool) {
	data, err := os.ReadFile(filepath.Join(projectPath, "Cargo.toml"))
	if err != nil {
		return nil, false
	}

	var manifest struct {
		Workspace struct {
			Members []string `toml:"members"`
		} `toml:"workspace"`
	}
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, false
	}
	if len(manifest.Workspace.Members) == 0 {
		return nil, false
	}
	return manifest.Workspace.Members, true
}
