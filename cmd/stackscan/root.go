package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"stackscan/internal/config"
	scanerrors "stackscan/internal/errors"
	"stackscan/internal/logging"
	"stackscan/internal/version"
)

var (
	// verboseFlag enables debug logging
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "stackscan",
	Short: "stackscan - project technology profiler",
	Long: `stackscan analyzes a project directory and produces a structured,
cacheable description of its technology profile: languages, dependencies,
frameworks, build tooling, monorepo layout, and configuration. Results are
keyed by a content fingerprint so unchanged projects are never re-analyzed.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("stackscan version {{.Version}}\n")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false,
		"Enable debug logging")
}

// resolveProjectPath turns the optional positional argument into an
// absolute project path, defaulting to the working directory.
func resolveProjectPath(args []string) (string, error) {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	return filepath.Abs(path)
}

// newLogger builds the logger used by a command run, honoring --verbose
// and the CLI output format.
func newLogger(format string) *logging.Logger {
	level := logging.InfoLevel
	if verboseFlag {
		level = logging.DebugLevel
	}
	logFormat := logging.HumanFormat
	if format == "json" {
		logFormat = logging.JSONFormat
	}
	return logging.NewLogger(logging.Config{
		Format: logFormat,
		Level:  level,
		Output: os.Stderr,
	})
}

// loadConfig loads configuration for the project, falling back to defaults
// when the project carries none.
func loadConfig(projectPath string, logger *logging.Logger) *config.Config {
	cfg, err := config.LoadConfig(projectPath)
	if err != nil {
		logger.Warn("failed to load config, using defaults", map[string]interface{}{
			"error": err.Error(),
		})
		return config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn("invalid config, using defaults", map[string]interface{}{
			"error": scanerrors.New(scanerrors.ConfigInvalid, "configuration failed validation", err).Error(),
		})
		return config.DefaultConfig()
	}
	return cfg
}
