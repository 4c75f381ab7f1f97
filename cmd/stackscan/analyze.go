package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stackscan/internal/analyzer"
	"stackscan/internal/cache"
	"stackscan/internal/config"
	scanerrors "stackscan/internal/errors"
	"stackscan/internal/fingerprint"
	"stackscan/internal/logging"
)

var (
	analyzeFormat  string
	analyzeNoCache bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Analyze a project's technology profile",
	Long: `Fingerprints the project, returns the cached analysis when the
fingerprint matches a previous run, and otherwise runs the full detector
set and caches the result.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "human", "Output format (json, human)")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "Skip the cache and re-analyze")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logger := newLogger(analyzeFormat)

	projectPath, err := resolveProjectPath(args)
	if err != nil {
		return fmt.Errorf("failed to resolve project path: %w", err)
	}

	cfg := loadConfig(projectPath, logger)

	result, cached, err := analyzeProject(projectPath, cfg, logger, analyzeNoCache)
	if err != nil {
		return err
	}

	output, err := FormatAnalysis(result, cached, OutputFormat(analyzeFormat))
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Println(output)
	return nil
}

// analyzeProject is the cache-check ordering around the orchestrator:
// fingerprint, look up, run on miss, store. An invalid fingerprint (for an
// existing path) falls through to an uncached analysis rather than failing.
func analyzeProject(projectPath string, cfg *config.Config, logger *logging.Logger, noCache bool) (*analyzer.Result, bool, error) {
	gen := fingerprint.NewGenerator(fingerprint.Options{
		SkipDirs: cfg.Analysis.IgnoreDirs,
		Logger:   logger,
	})
	fp := gen.Generate(projectPath)
	if !fp.Valid {
		if _, statErr := os.Stat(projectPath); statErr != nil {
			return nil, false, scanerrors.New(scanerrors.PathNotFound, fp.InvalidReason, statErr).
				WithFixes(scanerrors.GetSuggestedFixes(scanerrors.PathNotFound)...)
		}
		logger.Warn("fingerprint invalid, analysis will not be cached", map[string]interface{}{
			"reason": fp.InvalidReason,
		})
	}

	var store *cache.Cache
	if fp.Valid && !noCache {
		var err error
		store, err = cache.New(cache.Options{
			Root:     cfg.Cache.Root,
			TTL:      cfg.Cache.TTL(),
			Compress: cfg.Cache.Compress,
			Logger:   logger,
		})
		if err != nil {
			logger.Warn("cache unavailable", map[string]interface{}{"error": err.Error()})
		} else if hit := store.Get(fp.Hash); hit != nil {
			logger.Debug("cache hit", map[string]interface{}{"fingerprint": fp.Hash})
			return hit, true, nil
		}
	}

	orch := analyzer.NewOrchestrator(analyzer.Options{
		MaxDepth: cfg.Analysis.MaxDepth,
		SkipDirs: cfg.Analysis.IgnoreDirs,
		Logger:   logger,
	})
	result := orch.Run(projectPath)

	if store != nil {
		if err := store.Set(fp.Hash, result); err != nil {
			logger.Warn("failed to cache analysis", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return result, false, nil
}
