package analyzer

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"stackscan/internal/version"
)

// Per-signal confidence increments. A signal that fired contributes its
// increment to the running sum and bumps the divisor; absent evidence
// contributes nothing to either, so the final value is an unweighted mean
// over only the signals that fired.
const (
	incrementDepsWithLockfile = 0.90
	incrementDepsManifestOnly = 0.70
	incrementFrameworks       = 0.90
	incrementBuildTools       = 0.85
	incrementMonorepo         = 0.80
	incrementConfigs          = 0.75
	incrementStructure        = 0.70
)

// Orchestrator runs the full detector set concurrently and aggregates the
// combined result. Detectors are read-only and share no mutable state, so
// no concurrency limit is applied.
type Orchestrator struct {
	analyzer *Analyzer
}

// NewOrchestrator creates an Orchestrator over an Analyzer built from opts.
func NewOrchestrator(opts Options) *Orchestrator {
	return &Orchestrator{analyzer: New(opts)}
}

// Run launches all seven detectors concurrently and returns the combined
// result. Only total batch wall-clock time is recorded, not per-detector
// time. Detectors never fail for ordinary absence of evidence; a detector
// fault that is not absence-of-evidence is a defect, and no additional
// containment is provided for it here.
func (o *Orchestrator) Run(projectPath string) *Result {
	start := time.Now()

	result := &Result{
		SchemaVersion: version.Schema,
		AnalysisID:    uuid.New().String(),
		TimestampMs:   start.UnixMilli(),
	}

	eg := &errgroup.Group{}
	eg.Go(func() error {
		result.Languages = o.analyzer.DetectLanguages(projectPath)
		return nil
	})
	eg.Go(func() error {
		result.Dependencies = o.analyzer.DetectDependencies(projectPath)
		return nil
	})
	eg.Go(func() error {
		result.Structure = o.analyzer.DetectStructure(projectPath)
		return nil
	})
	eg.Go(func() error {
		result.Frameworks = o.analyzer.DetectFrameworks(projectPath)
		return nil
	})
	eg.Go(func() error {
		result.BuildTools = o.analyzer.DetectBuildTools(projectPath)
		return nil
	})
	eg.Go(func() error {
		result.Monorepo = o.analyzer.DetectMonorepo(projectPath)
		return nil
	})
	eg.Go(func() error {
		result.Configs = o.analyzer.DetectConfigs(projectPath)
		return nil
	})
	_ = eg.Wait()

	result.ExecutionTimeMs = time.Since(start).Milliseconds()
	result.Confidence = aggregateConfidence(result)
	return result
}

// aggregateConfidence starts from the language confidence and folds in one
// increment per remaining signal with positive evidence.
func aggregateConfidence(r *Result) float64 {
	sum := r.Languages.Confidence
	weight := 1.0

	if len(r.Dependencies.Manifests) > 0 || r.Dependencies.LockfilePresent {
		if r.Dependencies.LockfilePresent {
			sum += incrementDepsWithLockfile
		} else {
			sum += incrementDepsManifestOnly
		}
		weight++
	}
	if len(r.Frameworks) > 0 {
		sum += incrementFrameworks
		weight++
	}
	if len(r.BuildTools) > 0 {
		sum += incrementBuildTools
		weight++
	}
	if r.Monorepo.IsMonorepo {
		sum += incrementMonorepo
		weight++
	}
	if len(r.Configs) > 0 {
		sum += incrementConfigs
		weight++
	}
	if len(r.Structure.Directories) > 0 || r.Structure.HasCIConfig {
		sum += incrementStructure
		weight++
	}

	return clamp01(sum / weight)
}
