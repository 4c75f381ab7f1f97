package analyzer

// extensionLanguages maps file extensions to language names. Extensions
// not listed here fall back to go-enry classification.
var extensionLanguages = map[string]string{
	".go":    "Go",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".mjs":   "JavaScript",
	".cjs":   "JavaScript",
	".py":    "Python",
	".rs":    "Rust",
	".java":  "Java",
	".kt":    "Kotlin",
	".kts":   "Kotlin",
	".rb":    "Ruby",
	".php":   "PHP",
	".cs":    "C#",
	".c":     "C",
	".h":     "C",
	".cpp":   "C++",
	".cc":    "C++",
	".hpp":   "C++",
	".swift": "Swift",
	".dart":  "Dart",
	".ex":    "Elixir",
	".exs":   "Elixir",
	".scala": "Scala",
	".sh":    "Shell",
	".bash":  "Shell",
	".lua":   "Lua",
	".r":     "R",
	".zig":   "Zig",
}

// averageLinesPerFile estimates line counts per language without reading
// file contents. These are estimates by design, not measurements.
var averageLinesPerFile = map[string]int{
	"Go":         150,
	"TypeScript": 120,
	"JavaScript": 110,
	"Python":     100,
	"Rust":       140,
	"Java":       160,
	"Kotlin":     120,
	"Ruby":       90,
	"PHP":        120,
	"C#":         140,
	"C":          180,
	"C++":        190,
	"Swift":      130,
	"Dart":       120,
	"Elixir":     100,
	"Scala":      110,
	"Shell":      60,
	"Lua":        80,
	"R":          70,
	"Zig":        150,
}

// defaultAverageLines is used for languages missing from the table above.
const defaultAverageLines = 80

// languageManifest is a root-level file that strongly indicates a language.
// Weight feeds the language score; a type-system config outweighs a generic
// package manifest because it pins the language rather than the ecosystem.
type languageManifest struct {
	FileName string
	Language string
	Weight   float64
}

var languageManifests = []languageManifest{
	{FileName: "tsconfig.json", Language: "TypeScript", Weight: 2.0},
	{FileName: "package.json", Language: "JavaScript", Weight: 1.0},
	{FileName: "go.mod", Language: "Go", Weight: 1.5},
	{FileName: "Cargo.toml", Language: "Rust", Weight: 1.5},
	{FileName: "pyproject.toml", Language: "Python", Weight: 1.0},
	{FileName: "requirements.txt", Language: "Python", Weight: 1.0},
	{FileName: "Gemfile", Language: "Ruby", Weight: 1.0},
	{FileName: "composer.json", Language: "PHP", Weight: 1.0},
	{FileName: "pubspec.yaml", Language: "Dart", Weight: 1.5},
	{FileName: "mix.exs", Language: "Elixir", Weight: 1.5},
	{FileName: "pom.xml", Language: "Java", Weight: 1.0},
	{FileName: "build.gradle", Language: "Java", Weight: 1.0},
	{FileName: "build.gradle.kts", Language: "Kotlin", Weight: 1.0},
}

// dependencyManifest describes a parseable dependency manifest and the
// package manager it implies.
type dependencyManifest struct {
	FileName       string
	PackageManager string
}

// dependencyManifests is the fixed, ordered evidence set of the dependency
// detector.
var dependencyManifests = []dependencyManifest{
	{FileName: "package.json", PackageManager: "npm"},
	{FileName: "go.mod", PackageManager: "go"},
	{FileName: "Cargo.toml", PackageManager: "cargo"},
	{FileName: "pyproject.toml", PackageManager: "pip"},
	{FileName: "requirements.txt", PackageManager: "pip"},
	{FileName: "Gemfile", PackageManager: "bundler"},
	{FileName: "composer.json", PackageManager: "composer"},
	{FileName: "pubspec.yaml", PackageManager: "pub"},
	{FileName: "mix.exs", PackageManager: "hex"},
	{FileName: "pom.xml", PackageManager: "maven"},
	{FileName: "build.gradle", PackageManager: "gradle"},
	{FileName: "build.gradle.kts", PackageManager: "gradle"},
}

// lockfileManagers maps lockfiles to the package manager that writes them.
var lockfileManagers = []dependencyManifest{
	{FileName: "package-lock.json", PackageManager: "npm"},
	{FileName: "yarn.lock", PackageManager: "yarn"},
	{FileName: "pnpm-lock.yaml", PackageManager: "pnpm"},
	{FileName: "bun.lockb", PackageManager: "bun"},
	{FileName: "go.sum", PackageManager: "go"},
	{FileName: "Cargo.lock", PackageManager: "cargo"},
	{FileName: "poetry.lock", PackageManager: "poetry"},
	{FileName: "Pipfile.lock", PackageManager: "pipenv"},
	{FileName: "uv.lock", PackageManager: "uv"},
	{FileName: "Gemfile.lock", PackageManager: "bundler"},
	{FileName: "composer.lock", PackageManager: "composer"},
	{FileName: "mix.lock", PackageManager: "hex"},
}

// conventionalDirectories are the top-level directory names the structure
// detector looks for.
var conventionalDirectories = []string{
	"src",
	"lib",
	"app",
	"cmd",
	"internal",
	"pkg",
	"api",
	"test",
	"tests",
	"spec",
	"__tests__",
	"docs",
	"doc",
	"examples",
	"scripts",
	"tools",
	"assets",
	"public",
	"config",
}

var sourceDirNames = map[string]bool{"src": true, "lib": true, "app": true, "cmd": true, "internal": true, "pkg": true}
var testDirNames = map[string]bool{"test": true, "tests": true, "spec": true, "__tests__": true}
var docsDirNames = map[string]bool{"docs": true, "doc": true}

// toolMarker defines one tool in a category table. A tool matches if any
// marker file exists or any marker dependency name appears in the project's
// direct dependencies (OR semantics).
type toolMarker struct {
	Category string
	Name     string
	Files    []string
	Deps     []string
}

// frameworkTable is the static framework evidence table.
var frameworkTable = []toolMarker{
	{Category: "frontend", Name: "React", Deps: []string{"react"}},
	{Category: "frontend", Name: "Vue", Files: []string{"vue.config.js"}, Deps: []string{"vue"}},
	{Category: "frontend", Name: "Angular", Files: []string{"angular.json"}, Deps: []string{"@angular/core"}},
	{Category: "frontend", Name: "Svelte", Files: []string{"svelte.config.js"}, Deps: []string{"svelte"}},
	{Category: "fullstack", Name: "Next.js", Files: []string{"next.config.js", "next.config.mjs", "next.config.ts"}, Deps: []string{"next"}},
	{Category: "fullstack", Name: "Nuxt", Files: []string{"nuxt.config.js", "nuxt.config.ts"}, Deps: []string{"nuxt"}},
	{Category: "backend", Name: "Express", Deps: []string{"express"}},
	{Category: "backend", Name: "NestJS", Files: []string{"nest-cli.json"}, Deps: []string{"@nestjs/core"}},
	{Category: "backend", Name: "Fastify", Deps: []string{"fastify"}},
	{Category: "backend", Name: "Django", Files: []string{"manage.py"}, Deps: []string{"django"}},
	{Category: "backend", Name: "Flask", Deps: []string{"flask"}},
	{Category: "backend", Name: "FastAPI", Deps: []string{"fastapi"}},
	{Category: "backend", Name: "Rails", Files: []string{"config/routes.rb"}, Deps: []string{"rails"}},
	{Category: "backend", Name: "Laravel", Files: []string{"artisan"}, Deps: []string{"laravel/framework"}},
	{Category: "backend", Name: "Gin", Deps: []string{"github.com/gin-gonic/gin"}},
	{Category: "backend", Name: "Echo", Deps: []string{"github.com/labstack/echo"}},
	{Category: "backend", Name: "Axum", Deps: []string{"axum"}},
	{Category: "mobile", Name: "Flutter", Files: []string{"pubspec.yaml"}, Deps: []string{"flutter"}},
	{Category: "mobile", Name: "React Native", Deps: []string{"react-native"}},
	{Category: "desktop", Name: "Electron", Deps: []string{"electron"}},
	{Category: "desktop", Name: "Tauri", Files: []string{"src-tauri/tauri.conf.json"}, Deps: []string{"tauri"}},
}

// buildToolTable is the static build-tool evidence table.
var buildToolTable = []toolMarker{
	{Category: "bundler", Name: "Webpack", Files: []string{"webpack.config.js", "webpack.config.ts"}, Deps: []string{"webpack"}},
	{Category: "bundler", Name: "Vite", Files: []string{"vite.config.js", "vite.config.ts"}, Deps: []string{"vite"}},
	{Category: "bundler", Name: "Rollup", Files: []string{"rollup.config.js", "rollup.config.mjs"}, Deps: []string{"rollup"}},
	{Category: "bundler", Name: "esbuild", Deps: []string{"esbuild"}},
	{Category: "taskrunner", Name: "Make", Files: []string{"Makefile", "makefile", "GNUmakefile"}},
	{Category: "taskrunner", Name: "Just", Files: []string{"justfile", "Justfile"}},
	{Category: "taskrunner", Name: "Task", Files: []string{"Taskfile.yml", "Taskfile.yaml"}},
	{Category: "buildsystem", Name: "CMake", Files: []string{"CMakeLists.txt"}},
	{Category: "buildsystem", Name: "Gradle", Files: []string{"build.gradle", "build.gradle.kts", "gradlew"}},
	{Category: "buildsystem", Name: "Maven", Files: []string{"pom.xml"}},
	{Category: "buildsystem", Name: "Bazel", Files: []string{"WORKSPACE", "WORKSPACE.bazel", "MODULE.bazel"}},
	{Category: "buildsystem", Name: "Cargo", Files: []string{"Cargo.toml"}},
	{Category: "buildsystem", Name: "Go", Files: []string{"go.mod"}},
}

// configTable is the static configuration evidence table.
var configTable = []toolMarker{
	{Category: "linting", Name: "ESLint", Files: []string{".eslintrc.json", ".eslintrc.js", ".eslintrc.yml", "eslint.config.js", "eslint.config.mjs"}, Deps: []string{"eslint"}},
	{Category: "linting", Name: "Prettier", Files: []string{".prettierrc", ".prettierrc.json", "prettier.config.js"}, Deps: []string{"prettier"}},
	{Category: "linting", Name: "Ruff", Files: []string{"ruff.toml", ".ruff.toml"}},
	{Category: "linting", Name: "golangci-lint", Files: []string{".golangci.yml", ".golangci.yaml"}},
	{Category: "typing", Name: "TypeScript", Files: []string{"tsconfig.json"}, Deps: []string{"typescript"}},
	{Category: "typing", Name: "mypy", Files: []string{"mypy.ini", ".mypy.ini"}},
	{Category: "testing", Name: "Jest", Files: []string{"jest.config.js", "jest.config.ts"}, Deps: []string{"jest"}},
	{Category: "testing", Name: "Vitest", Files: []string{"vitest.config.ts", "vitest.config.js"}, Deps: []string{"vitest"}},
	{Category: "testing", Name: "Pytest", Files: []string{"pytest.ini", "conftest.py"}, Deps: []string{"pytest"}},
	{Category: "testing", Name: "Playwright", Files: []string{"playwright.config.ts", "playwright.config.js"}, Deps: []string{"@playwright/test"}},
	{Category: "ci", Name: "GitHub Actions", Files: []string{".github/workflows"}},
	{Category: "ci", Name: "GitLab CI", Files: []string{".gitlab-ci.yml"}},
	{Category: "ci", Name: "CircleCI", Files: []string{".circleci/config.yml"}},
	{Category: "containers", Name: "Docker", Files: []string{"Dockerfile"}},
	{Category: "containers", Name: "Docker Compose", Files: []string{"docker-compose.yml", "docker-compose.yaml", "compose.yml", "compose.yaml"}},
	{Category: "editor", Name: "EditorConfig", Files: []string{".editorconfig"}},
}
