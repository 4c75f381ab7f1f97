package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"stackscan/internal/fingerprint"
)

var fingerprintFormat string

var fingerprintCmd = &cobra.Command{
	Use:   "fingerprint [path]",
	Short: "Compute a project's content fingerprint",
	Long: `Computes the deterministic fingerprint of a project tree from its
version-control head, directory structure, dependency lockfiles, and
configuration files. The same tree always yields the same fingerprint.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFingerprint,
}

func init() {
	fingerprintCmd.Flags().StringVar(&fingerprintFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(fingerprintCmd)
}

func runFingerprint(cmd *cobra.Command, args []string) error {
	logger := newLogger(fingerprintFormat)

	projectPath, err := resolveProjectPath(args)
	if err != nil {
		return fmt.Errorf("failed to resolve project path: %w", err)
	}

	cfg := loadConfig(projectPath, logger)

	gen := fingerprint.NewGenerator(fingerprint.Options{
		SkipDirs: cfg.Analysis.IgnoreDirs,
		Logger:   logger,
	})
	result := gen.Generate(projectPath)

	output, err := FormatFingerprint(result, OutputFormat(fingerprintFormat))
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Println(output)
	return nil
}
