package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"stackscan/internal/cache"
	"stackscan/internal/logging"
)

var cacheFormat string

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the analysis cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache statistics",
	RunE:  runCacheStats,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every cached analysis",
	RunE:  runCacheClear,
}

var cacheClearExpiredCmd = &cobra.Command{
	Use:   "clear-expired",
	Short: "Delete cached analyses that are expired or schema-incompatible",
	RunE:  runCacheClearExpired,
}

func init() {
	cacheCmd.PersistentFlags().StringVar(&cacheFormat, "format", "human", "Output format (json, human)")
	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheClearExpiredCmd)
	rootCmd.AddCommand(cacheCmd)
}

// openCache builds the cache from the working directory's config, so cache
// commands honor a project-local cache root override.
func openCache(logger *logging.Logger) (*cache.Cache, error) {
	cfg := loadConfig(".", logger)
	return cache.New(cache.Options{
		Root:     cfg.Cache.Root,
		TTL:      cfg.Cache.TTL(),
		Compress: cfg.Cache.Compress,
		Logger:   logger,
	})
}

func runCacheStats(cmd *cobra.Command, args []string) error {
	logger := newLogger(cacheFormat)

	store, err := openCache(logger)
	if err != nil {
		return err
	}

	stats, err := store.Stats()
	if err != nil {
		return fmt.Errorf("failed to collect cache stats: %w", err)
	}

	if cacheFormat == "json" {
		output, err := FormatJSONValue(stats)
		if err != nil {
			return err
		}
		fmt.Println(output)
		return nil
	}

	fmt.Printf("Cache root:  %s\n", store.Root())
	fmt.Printf("Entries:     %d\n", stats.EntryCount)
	fmt.Printf("Total size:  %s\n", humanize.Bytes(uint64(stats.TotalBytes)))
	if stats.OldestTimestampMs > 0 {
		fmt.Printf("Oldest:      %s\n", humanize.Time(time.UnixMilli(stats.OldestTimestampMs)))
	}
	if stats.NewestTimestampMs > 0 {
		fmt.Printf("Newest:      %s\n", humanize.Time(time.UnixMilli(stats.NewestTimestampMs)))
	}
	return nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	logger := newLogger(cacheFormat)

	store, err := openCache(logger)
	if err != nil {
		return err
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	fmt.Println("Cache cleared.")
	return nil
}

func runCacheClearExpired(cmd *cobra.Command, args []string) error {
	logger := newLogger(cacheFormat)

	store, err := openCache(logger)
	if err != nil {
		return err
	}

	removed, err := store.ClearExpired()
	if err != nil {
		return fmt.Errorf("failed to clear expired entries: %w", err)
	}
	fmt.Printf("Removed %d expired entries.\n", removed)
	return nil
}
