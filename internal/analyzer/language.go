package analyzer

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/src-d/enry/v2"
)

// DetectLanguages walks the tree counting files by extension, estimates
// line counts from the fixed averages table, and adds a weighted bonus for
// root-level manifests strongly indicative of a language. Line counts are
// estimates, not measurements.
func (a *Analyzer) DetectLanguages(projectPath string) LanguageProfile {
	counts := a.countFilesByLanguage(projectPath)

	// Manifest evidence: a matching root-level manifest boosts its
	// language even when file counts tie.
	bonuses := make(map[string]float64)
	for _, m := range languageManifests {
		if _, err := os.Stat(filepath.Join(projectPath, m.FileName)); err == nil {
			bonuses[m.Language] += m.Weight
		}
	}

	totalFiles := 0
	for _, c := range counts {
		totalFiles += c
	}

	scores := make(map[string]float64)
	estimated := make(map[string]int)
	for lang, count := range counts {
		avg := averageLinesPerFile[lang]
		if avg == 0 {
			avg = defaultAverageLines
		}
		estimated[lang] = count * avg
		scores[lang] = float64(count) + float64(estimated[lang])/100 + 10*bonuses[lang]
	}
	// A manifest with no source files yet still counts as weak evidence
	for lang, bonus := range bonuses {
		if _, seen := scores[lang]; !seen && bonus > 0 {
			scores[lang] = 10 * bonus
		}
	}

	if len(scores) == 0 {
		return LanguageProfile{}
	}

	totalScore := 0.0
	for _, s := range scores {
		totalScore += s
	}

	langs := make([]DetectedLanguage, 0, len(scores))
	for lang, score := range scores {
		langs = append(langs, DetectedLanguage{
			Language:           lang,
			FileCount:          counts[lang],
			EstimatedLineCount: estimated[lang],
			PercentageOfTotal:  score / totalScore * 100,
		})
	}
	sort.Slice(langs, func(i, j int) bool {
		if scores[langs[i].Language] != scores[langs[j].Language] {
			return scores[langs[i].Language] > scores[langs[j].Language]
		}
		return langs[i].Language < langs[j].Language
	})

	confidence := langs[0].PercentageOfTotal / 100
	switch {
	case len(langs) > 3:
		confidence *= 0.8
	case len(langs) >= 2:
		confidence *= 0.9
	}

	return LanguageProfile{
		Languages:  langs,
		Primary:    langs[0].Language,
		Confidence: clamp01(confidence),
		TotalFiles: totalFiles,
	}
}

// countFilesByLanguage walks the tree (depth-capped, skip list applied)
// and buckets files by language. Extensions outside the fixed table are
// classified with go-enry; files it cannot name are dropped.
func (a *Analyzer) countFilesByLanguage(projectPath string) map[string]int {
	counts := make(map[string]int)

	_ = filepath.WalkDir(projectPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, relErr := filepath.Rel(projectPath, path)
		if relErr != nil || rel == "." {
			return nil
		}

		if d.IsDir() {
			name := d.Name()
			if a.skipDirs[name] || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if strings.Count(rel, string(filepath.Separator))+1 >= a.maxDepth {
				return filepath.SkipDir
			}
			return nil
		}

		lang := classifyFile(d.Name())
		if lang != "" {
			counts[lang]++
		}
		return nil
	})

	return counts
}

func classifyFile(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if lang, ok := extensionLanguages[ext]; ok {
		return lang
	}
	if ext == "" {
		return ""
	}
	// Data, markup, and prose files are not part of the census
	lang := enry.GetLanguage(name, nil)
	if lang == "" || enry.GetLanguageType(lang) != enry.Programming {
		return ""
	}
	return lang
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
