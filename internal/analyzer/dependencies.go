package analyzer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DetectDependencies scans the fixed manifest and lockfile evidence sets at
// the project root and parses direct and development dependency names from
// the manifests it understands. A manifest that fails to parse still counts
// as present; its dependency names are simply absent.
func (a *Analyzer) DetectDependencies(projectPath string) DependencyProfile {
	var profile DependencyProfile
	managers := make(map[string]bool)

	for _, m := range dependencyManifests {
		full := filepath.Join(projectPath, m.FileName)
		if _, err := os.Stat(full); err != nil {
			continue
		}
		profile.Manifests = append(profile.Manifests, m.FileName)
		if !managers[m.PackageManager] {
			managers[m.PackageManager] = true
			profile.PackageManagers = append(profile.PackageManagers, m.PackageManager)
		}

		deps, devDeps, err := parseManifest(full, m.FileName)
		if err != nil {
			a.logger.Warn("failed to parse manifest", map[string]interface{}{
				"manifest": m.FileName,
				"error":    err.Error(),
			})
			continue
		}
		profile.Dependencies = append(profile.Dependencies, deps...)
		profile.DevDependencies = append(profile.DevDependencies, devDeps...)
	}

	for _, lf := range lockfileManagers {
		if _, err := os.Stat(filepath.Join(projectPath, lf.FileName)); err != nil {
			continue
		}
		profile.Lockfiles = append(profile.Lockfiles, lf.FileName)
		profile.LockfilePresent = true
		if !managers[lf.PackageManager] {
			managers[lf.PackageManager] = true
			profile.PackageManagers = append(profile.PackageManagers, lf.PackageManager)
		}
	}

	return profile
}

// parseManifest dispatches on the manifest file name and returns sorted
// direct and development dependency names.
func parseManifest(path, fileName string) (deps, devDeps []string, err error) {
	switch fileName {
	case "package.json", "composer.json":
		return parsePackageJSON(path)
	case "go.mod":
		deps, err = parseGoMod(path)
		return deps, nil, err
	case "Cargo.toml":
		return parseCargoToml(path)
	case "pyproject.toml":
		return parsePyprojectToml(path)
	case "requirements.txt":
		deps, err = parseRequirementsTxt(path)
		return deps, nil, err
	case "pubspec.yaml":
		return parsePubspecYaml(path)
	case "Gemfile":
		deps, err = parseGemfile(path)
		return deps, nil, err
	default:
		// Presence-only manifests (pom.xml, build.gradle, mix.exs)
		return nil, nil, nil
	}
}

func parsePackageJSON(path string) ([]string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var pkg struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
		RequireDev      map[string]string `json:"require-dev"` // composer
		Require         map[string]string `json:"require"`     // composer
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, nil, err
	}

	deps := sortedKeys(pkg.Dependencies)
	deps = append(deps, sortedKeys(pkg.Require)...)
	devDeps := sortedKeys(pkg.DevDependencies)
	devDeps = append(devDeps, sortedKeys(pkg.RequireDev)...)
	return deps, devDeps, nil
}

// parseGoMod extracts direct requirements by line scanning, the same way
// module names are pulled from go.mod elsewhere: no full modfile parse is
// needed for names only.
func parseGoMod(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var deps []string
	inRequire := false
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "require ("):
			inRequire = true
		case inRequire && trimmed == ")":
			inRequire = false
		case inRequire:
			if strings.Contains(trimmed, "// indirect") {
				continue
			}
			fields := strings.Fields(trimmed)
			if len(fields) >= 2 {
				deps = append(deps, fields[0])
			}
		case strings.HasPrefix(trimmed, "require "):
			fields := strings.Fields(trimmed)
			if len(fields) >= 3 && !strings.Contains(trimmed, "// indirect") {
				deps = append(deps, fields[1])
			}
		}
	}
	return deps, nil
}

func parseCargoToml(path string) ([]string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var manifest struct {
		Dependencies    map[string]interface{} `toml:"dependencies"`
		DevDependencies map[string]interface{} `toml:"dev-dependencies"`
	}
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, nil, err
	}

	return sortedKeys(manifest.Dependencies), sortedKeys(manifest.DevDependencies), nil
}

func parsePyprojectToml(path string) ([]string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var manifest struct {
		Project struct {
			Dependencies []string `toml:"dependencies"`
		} `toml:"project"`
		Tool struct {
			Poetry struct {
				Dependencies    map[string]interface{} `toml:"dependencies"`
				DevDependencies map[string]interface{} `toml:"dev-dependencies"`
			} `toml:"poetry"`
		} `toml:"tool"`
	}
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, nil, err
	}

	var deps []string
	for _, spec := range manifest.Project.Dependencies {
		if name := stripVersionSpec(spec); name != "" {
			deps = append(deps, name)
		}
	}
	for _, name := range sortedKeys(manifest.Tool.Poetry.Dependencies) {
		if name != "python" {
			deps = append(deps, name)
		}
	}
	sort.Strings(deps)

	return deps, sortedKeys(manifest.Tool.Poetry.DevDependencies), nil
}

func parseRequirementsTxt(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var deps []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "-") {
			continue
		}
		if name := stripVersionSpec(trimmed); name != "" {
			deps = append(deps, name)
		}
	}
	return deps, nil
}

func parsePubspecYaml(path string) ([]string, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var manifest struct {
		Dependencies    map[string]interface{} `yaml:"dependencies"`
		DevDependencies map[string]interface{} `yaml:"dev_dependencies"`
	}
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, nil, err
	}

	return sortedKeys(manifest.Dependencies), sortedKeys(manifest.DevDependencies), nil
}

func parseGemfile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var deps []string
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "gem ") {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(trimmed, "gem "))
		rest = strings.Trim(rest, `"'`)
		if idx := strings.IndexAny(rest, `"',`); idx >= 0 {
			rest = rest[:idx]
		}
		if rest != "" {
			deps = append(deps, rest)
		}
	}
	return deps, nil
}

// stripVersionSpec cuts a PEP 508-style requirement down to its name.
func stripVersionSpec(spec string) string {
	if idx := strings.IndexAny(spec, " <>=!~[;("); idx >= 0 {
		spec = spec[:idx]
	}
	return strings.TrimSpace(spec)
}

func sortedKeys[V any](m map[string]V) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
