package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"stackscan/internal/analyzer"
	"stackscan/internal/fingerprint"
	"stackscan/internal/version"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

var (
	headerColor  = color.New(color.FgCyan, color.Bold)
	subtleColor  = color.New(color.Faint)
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen)
)

// FormatJSONValue marshals any value as indented JSON.
func FormatJSONValue(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// FormatAnalysis formats a static-analysis result.
func FormatAnalysis(result *analyzer.Result, cached bool, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return FormatJSONValue(result)
	case FormatHuman:
		return formatAnalysisHuman(result, cached), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// FormatFingerprint formats a fingerprint result.
func FormatFingerprint(result fingerprint.Result, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return FormatJSONValue(result)
	case FormatHuman:
		return formatFingerprintHuman(result), nil
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatAnalysisHuman(result *analyzer.Result, cached bool) string {
	var b strings.Builder

	b.WriteString(headerColor.Sprintf("stackscan v%s", version.Version))
	if cached {
		b.WriteString(subtleColor.Sprint("  (cached)"))
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")

	b.WriteString(headerColor.Sprintln("Languages"))
	if len(result.Languages.Languages) == 0 {
		b.WriteString(subtleColor.Sprintln("  none detected"))
	}
	for _, lang := range result.Languages.Languages {
		b.WriteString(fmt.Sprintf("  %-14s %4d files  ~%d lines  %.1f%%\n",
			lang.Language, lang.FileCount, lang.EstimatedLineCount, lang.PercentageOfTotal))
	}
	b.WriteString("\n")

	b.WriteString(headerColor.Sprintln("Dependencies"))
	if len(result.Dependencies.Manifests) == 0 {
		b.WriteString(subtleColor.Sprintln("  no manifests found"))
	} else {
		b.WriteString(fmt.Sprintf("  Manifests:        %s\n", strings.Join(result.Dependencies.Manifests, ", ")))
		b.WriteString(fmt.Sprintf("  Package managers: %s\n", strings.Join(result.Dependencies.PackageManagers, ", ")))
		b.WriteString(fmt.Sprintf("  Direct deps:      %d (dev: %d)\n",
			len(result.Dependencies.Dependencies), len(result.Dependencies.DevDependencies)))
		if result.Dependencies.LockfilePresent {
			b.WriteString(successColor.Sprintf("  Lockfiles:        %s\n", strings.Join(result.Dependencies.Lockfiles, ", ")))
		} else {
			b.WriteString(warnColor.Sprintln("  Lockfiles:        none"))
		}
	}
	b.WriteString("\n")

	writeTools := func(title string, tools []analyzer.DetectedTool) {
		b.WriteString(headerColor.Sprintln(title))
		if len(tools) == 0 {
			b.WriteString(subtleColor.Sprintln("  none detected"))
		}
		for _, t := range tools {
			b.WriteString(fmt.Sprintf("  %-14s [%s]", t.Name, t.Category))
			if len(t.MatchedFiles) > 0 {
				b.WriteString(subtleColor.Sprintf("  via %s", strings.Join(t.MatchedFiles, ", ")))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
	writeTools("Frameworks", result.Frameworks)
	writeTools("Build tools", result.BuildTools)
	writeTools("Configuration", result.Configs)

	if result.Monorepo.IsMonorepo {
		b.WriteString(headerColor.Sprintln("Monorepo"))
		b.WriteString(fmt.Sprintf("  Tools: %s\n", strings.Join(result.Monorepo.Tools, ", ")))
		if len(result.Monorepo.WorkspaceGlobs) > 0 {
			b.WriteString(fmt.Sprintf("  Workspaces: %s\n", strings.Join(result.Monorepo.WorkspaceGlobs, ", ")))
		}
		b.WriteString("\n")
	}

	b.WriteString(subtleColor.Sprintf("confidence %.2f · analyzed in %dms · id %s\n",
		result.Confidence, result.ExecutionTimeMs, result.AnalysisID))

	return b.String()
}

func formatFingerprintHuman(result fingerprint.Result) string {
	var b strings.Builder

	if !result.Valid {
		b.WriteString(warnColor.Sprintf("invalid fingerprint: %s\n", result.InvalidReason))
		return b.String()
	}

	b.WriteString(successColor.Sprintf("%s\n", result.Hash))
	vcs := result.Components.VCSHead
	if vcs == "" {
		vcs = subtleColor.Sprint("none")
	}
	b.WriteString(fmt.Sprintf("  vcs:          %s\n", vcs))
	b.WriteString(fmt.Sprintf("  structure:    %s\n", result.Components.Structure))
	b.WriteString(fmt.Sprintf("  dependencies: %s\n", result.Components.Dependencies))
	b.WriteString(fmt.Sprintf("  configs:      %s\n", result.Components.Configs))

	return b.String()
}
