// Package fingerprint derives a deterministic content identifier for a
// project tree from its version-control state, directory topology,
// dependency lockfiles, and configuration files. The fingerprint keys the
// analysis cache: identical inputs always produce an identical hash, and
// any change to a watched input changes it.
package fingerprint

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	scanerrors "stackscan/internal/errors"
	"stackscan/internal/hashing"
	"stackscan/internal/logging"
	"stackscan/internal/version"
)

// Sentinel inputs used when a component has no evidence, so "nothing
// present" is still a stable, distinct hash.
const (
	noLockfilesSentinel = "no-lockfiles"
	noConfigsSentinel   = "no-configs"
)

// DefaultLockfileNames is the fixed, ordered list of dependency lockfiles
// folded into the dependencies component. Order is part of the hash
// contract; never reorder without bumping the schema version.
var DefaultLockfileNames = []string{
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"bun.lockb",
	"go.sum",
	"Cargo.lock",
	"poetry.lock",
	"Pipfile.lock",
	"uv.lock",
	"Gemfile.lock",
	"composer.lock",
	"mix.lock",
}

// DefaultConfigFileNames is the fixed, ordered list of configuration files
// folded into the configs component. Same ordering contract as lockfiles.
var DefaultConfigFileNames = []string{
	"tsconfig.json",
	"jsconfig.json",
	".eslintrc.json",
	".eslintrc.js",
	".prettierrc",
	"babel.config.js",
	"webpack.config.js",
	"vite.config.js",
	"vite.config.ts",
	"rollup.config.js",
	"jest.config.js",
	"vitest.config.ts",
	"tailwind.config.js",
	"postcss.config.js",
	".editorconfig",
	"Makefile",
	"Dockerfile",
	"docker-compose.yml",
}

// Components holds the four independently computed component hashes.
type Components struct {
	// VCSHead is the head revision identifier, empty when no repository
	// or no commits exist
	VCSHead string `json:"vcsHead,omitempty"`
	// Structure is the structural hash of the directory tree
	Structure string `json:"structure"`
	// Dependencies is the combined hash of all present lockfiles
	Dependencies string `json:"dependencies"`
	// Configs is the combined hash of all present configuration files
	Configs string `json:"configs"`
}

// Result is an immutable fingerprint of a project tree.
type Result struct {
	Hash          string     `json:"hash"`
	Components    Components `json:"components"`
	TimestampMs   int64      `json:"timestampMs"`
	Valid         bool       `json:"valid"`
	InvalidReason string     `json:"invalidReason,omitempty"`
}

// Options configures a Generator. Zero values fall back to the package
// defaults, so tests can inject short lists without touching real state.
type Options struct {
	// SchemaVersion is folded into the combined hash; bumping it
	// invalidates every previously produced fingerprint
	SchemaVersion string
	// LockfileNames overrides the ordered lockfile list
	LockfileNames []string
	// ConfigFileNames overrides the ordered configuration file list
	ConfigFileNames []string
	// SkipDirs overrides the directory names excluded from the
	// structure hash
	SkipDirs []string
	// Logger receives per-file skip warnings
	Logger *logging.Logger
}

// Generator computes project fingerprints.
type Generator struct {
	schemaVersion string
	lockfiles     []string
	configFiles   []string
	skipDirs      []string
	logger        *logging.Logger
}

// NewGenerator creates a Generator, filling unset options with defaults.
func NewGenerator(opts Options) *Generator {
	g := &Generator{
		schemaVersion: opts.SchemaVersion,
		lockfiles:     opts.LockfileNames,
		configFiles:   opts.ConfigFileNames,
		skipDirs:      opts.SkipDirs,
		logger:        opts.Logger,
	}
	if g.schemaVersion == "" {
		g.schemaVersion = version.Schema
	}
	if g.lockfiles == nil {
		g.lockfiles = DefaultLockfileNames
	}
	if g.configFiles == nil {
		g.configFiles = DefaultConfigFileNames
	}
	if g.skipDirs == nil {
		g.skipDirs = hashing.DefaultSkipDirs
	}
	if g.logger == nil {
		g.logger = logging.Nop()
	}
	return g
}

// Generate computes the fingerprint of projectPath. It never returns an
// error: every failure mode is representable in the Result. A nonexistent
// path yields an invalid result immediately; an unexpected failure in any
// component is downgraded to an invalid result with a reason.
func (g *Generator) Generate(projectPath string) (result Result) {
	result.TimestampMs = time.Now().UnixMilli()

	defer func() {
		if r := recover(); r != nil {
			result = Result{
				TimestampMs: result.TimestampMs,
				Valid:       false,
				InvalidReason: scanerrors.New(scanerrors.InternalError,
					fmt.Sprintf("unexpected failure: %v", r), nil).Error(),
			}
		}
	}()

	if _, err := os.Stat(projectPath); err != nil {
		result.Valid = false
		result.InvalidReason = fmt.Sprintf("path does not exist: %s", projectPath)
		return result
	}

	var comps Components
	var structErr error

	eg := &errgroup.Group{}
	eg.Go(func() error {
		comps.VCSHead = g.headRevision(projectPath)
		return nil
	})
	eg.Go(func() error {
		comps.Structure, structErr = hashing.HashDirectoryTree(projectPath, g.skipDirs)
		return structErr
	})
	eg.Go(func() error {
		comps.Dependencies = g.hashFileList(projectPath, g.lockfiles, noLockfilesSentinel)
		return nil
	})
	eg.Go(func() error {
		comps.Configs = g.hashFileList(projectPath, g.configFiles, noConfigsSentinel)
		return nil
	})

	if err := eg.Wait(); err != nil {
		result.Valid = false
		result.InvalidReason = err.Error()
		return result
	}

	result.Components = comps
	result.Hash = g.combine(comps)
	result.Valid = true
	return result
}

// combine folds the schema version and the four component hashes into the
// final fingerprint hash.
func (g *Generator) combine(comps Components) string {
	vcs := comps.VCSHead
	if vcs == "" {
		vcs = "none"
	}
	return hashing.HashString(fmt.Sprintf(
		"schema:%s|vcs:%s|structure:%s|dependencies:%s|configs:%s",
		g.schemaVersion, vcs, comps.Structure, comps.Dependencies, comps.Configs,
	))
}

// headRevision returns the version-control head identifier, or "" when the
// path is not a repository or the repository has no commits. Absence is
// never an error.
func (g *Generator) headRevision(projectPath string) string {
	if _, err := os.Stat(filepath.Join(projectPath, ".git")); err != nil {
		return ""
	}

	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = projectPath
	output, err := cmd.Output()
	if err != nil {
		// Repository with no commits yet, or git unavailable
		g.logger.Debug("head revision unavailable", map[string]interface{}{
			"path":  projectPath,
			"error": scanerrors.New(scanerrors.VCSUnavailable, "git rev-parse failed", err).Error(),
		})
		return ""
	}

	return strings.TrimSpace(string(output))
}

// hashFileList hashes each present file from the fixed ordered name list
// and combines "<name>:<hash>" records. Unreadable files are skipped with
// a warning. When no file is present the sentinel keeps the component a
// stable, distinct value.
func (g *Generator) hashFileList(projectPath string, names []string, sentinel string) string {
	var records []string
	for _, name := range names {
		full := filepath.Join(projectPath, name)
		if _, err := os.Stat(full); err != nil {
			continue
		}
		h, err := hashing.HashFile(full)
		if err != nil {
			g.logger.Warn("skipping unreadable file", map[string]interface{}{
				"file":  name,
				"error": scanerrors.New(scanerrors.UnreadableFile, name, err).Error(),
			})
			continue
		}
		records = append(records, name+":"+h)
	}

	if len(records) == 0 {
		return hashing.HashString(sentinel)
	}
	return hashing.HashMultiple(records)
}
