// Package analyzer contains the static-analysis detector set and the
// orchestrator that runs them. Each detector is a pure, read-only function
// of the project path: absence of evidence is encoded as empty fields,
// never as an error, which is what makes unrestricted concurrent execution
// safe.
package analyzer

// DetectedLanguage describes one language found in the tree, ranked by a
// combined score of file count, estimated lines, and manifest evidence.
type DetectedLanguage struct {
	Language           string  `json:"language"`
	FileCount          int     `json:"fileCount"`
	EstimatedLineCount int     `json:"estimatedLineCount"`
	PercentageOfTotal  float64 `json:"percentageOfTotal"`
}

// LanguageProfile is the language detector output.
type LanguageProfile struct {
	// Languages is ranked descending by score
	Languages []DetectedLanguage `json:"languages"`
	// Primary is the leading language, empty when nothing was found
	Primary string `json:"primary,omitempty"`
	// Confidence is the leading language's share, discounted when the
	// tree is polyglot
	Confidence float64 `json:"confidence"`
	TotalFiles int     `json:"totalFiles"`
}

// DependencyProfile is the dependency detector output.
type DependencyProfile struct {
	// Manifests lists the dependency manifests found at the project root
	Manifests []string `json:"manifests,omitempty"`
	// Lockfiles lists the lockfiles found at the project root
	Lockfiles       []string `json:"lockfiles,omitempty"`
	LockfilePresent bool     `json:"lockfilePresent"`
	// PackageManagers are inferred from manifests and lockfiles
	PackageManagers []string `json:"packageManagers,omitempty"`
	// Dependencies and DevDependencies are direct dependency names
	// parsed from the manifests
	Dependencies    []string `json:"dependencies,omitempty"`
	DevDependencies []string `json:"devDependencies,omitempty"`
}

// StructureProfile is the directory-structure detector output.
type StructureProfile struct {
	// Directories lists the conventional top-level directories present
	Directories  []string `json:"directories,omitempty"`
	HasSourceDir bool     `json:"hasSourceDir"`
	HasTestDir   bool     `json:"hasTestDir"`
	HasDocsDir   bool     `json:"hasDocsDir"`
	HasCIConfig  bool     `json:"hasCiConfig"`
}

// MonorepoProfile is the monorepo detector output.
type MonorepoProfile struct {
	IsMonorepo bool `json:"isMonorepo"`
	// Tools lists the workspace tools whose markers matched
	Tools []string `json:"tools,omitempty"`
	// WorkspaceGlobs are the member globs declared by the workspace files
	WorkspaceGlobs []string `json:"workspaceGlobs,omitempty"`
	// Markers are the raw marker files that matched
	Markers []string `json:"markers,omitempty"`
}

// DetectedTool describes one matched entry from a static category table.
// A tool matches when any one of its markers is present; several tools in
// the same category may match at once.
type DetectedTool struct {
	Category     string   `json:"category"`
	Name         string   `json:"name"`
	MatchedFiles []string `json:"matchedFiles,omitempty"`
}

// Result is the aggregate static-analysis output. It is the payload
// persisted by the fingerprint cache, so it carries the schema version and
// timestamp the cache validates on every read.
type Result struct {
	SchemaVersion string `json:"schemaVersion"`
	AnalysisID    string `json:"analysisId"`
	TimestampMs   int64  `json:"timestampMs"`

	Languages    LanguageProfile   `json:"languages"`
	Dependencies DependencyProfile `json:"dependencies"`
	Structure    StructureProfile  `json:"structure"`
	Frameworks   []DetectedTool    `json:"frameworks,omitempty"`
	BuildTools   []DetectedTool    `json:"buildTools,omitempty"`
	Monorepo     MonorepoProfile   `json:"monorepo"`
	Configs      []DetectedTool    `json:"configs,omitempty"`

	ExecutionTimeMs int64 `json:"executionTimeMs"`
	// Confidence is always clamped to [0,1]
	Confidence float64 `json:"confidence"`
}
