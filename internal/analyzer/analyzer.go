package analyzer

import (
	"stackscan/internal/hashing"
	"stackscan/internal/logging"
)

// defaultMaxDepth caps tree recursion in the language detector.
const defaultMaxDepth = 8

// Options configures an Analyzer. Zero values fall back to defaults so
// tests can inject shallow depths and custom skip lists.
type Options struct {
	// MaxDepth caps recursion depth for tree walks
	MaxDepth int
	// SkipDirs overrides the directory names excluded from walks
	SkipDirs []string
	// Logger receives detector debug output
	Logger *logging.Logger
}

// Analyzer holds the shared, immutable detector configuration. All
// detectors are read-only methods; an Analyzer is safe for concurrent use.
type Analyzer struct {
	maxDepth int
	skipDirs map[string]bool
	logger   *logging.Logger
}

// New creates an Analyzer, filling unset options with defaults.
func New(opts Options) *Analyzer {
	a := &Analyzer{
		maxDepth: opts.MaxDepth,
		logger:   opts.Logger,
	}
	if a.maxDepth <= 0 {
		a.maxDepth = defaultMaxDepth
	}
	skipDirs := opts.SkipDirs
	if skipDirs == nil {
		skipDirs = hashing.DefaultSkipDirs
	}
	a.skipDirs = make(map[string]bool, len(skipDirs))
	for _, d := range skipDirs {
		a.skipDirs[d] = true
	}
	if a.logger == nil {
		a.logger = logging.Nop()
	}
	return a
}
