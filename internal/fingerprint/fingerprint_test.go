package fingerprint

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"stackscan/internal/hashing"
)

func newTestGenerator() *Generator {
	return NewGenerator(Options{})
}

func setupProject(t *testing.T) string {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "stackscan-fp-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tmpDir) })
	return tmpDir
}

func TestGenerateNonexistentPath(t *testing.T) {
	result := newTestGenerator().Generate("/nonexistent/stackscan-test-path")

	if result.Valid {
		t.Error("expected invalid result for nonexistent path")
	}
	if result.Hash != "" {
		t.Errorf("hash = %q, want empty", result.Hash)
	}
	if !strings.Contains(result.InvalidReason, "does not exist") {
		t.Errorf("invalidReason = %q, want mention of missing path", result.InvalidReason)
	}
	if !strings.Contains(result.InvalidReason, "/nonexistent/stackscan-test-path") {
		t.Errorf("invalidReason = %q, want the path included", result.InvalidReason)
	}
}

func TestGenerateEmptyDirectory(t *testing.T) {
	dir := setupProject(t)
	result := newTestGenerator().Generate(dir)

	if !result.Valid {
		t.Fatalf("expected valid result, got invalid: %s", result.InvalidReason)
	}
	if result.Hash == "" {
		t.Error("expected non-empty hash")
	}
	if result.Components.VCSHead != "" {
		t.Errorf("vcsHead = %q, want empty for non-repository", result.Components.VCSHead)
	}
	if result.Components.Dependencies != hashing.HashString("no-lockfiles") {
		t.Error("dependencies component should be the no-lockfiles sentinel hash")
	}
	if result.Components.Configs != hashing.HashString("no-configs") {
		t.Error("configs component should be the no-configs sentinel hash")
	}
}

func TestGenerateDeterminism(t *testing.T) {
	dir := setupProject(t)
	if err := os.WriteFile(filepath.Join(dir, "package-lock.json"), []byte("{}"), 0644); err != nil {
		t.Fatalf("failed to write lockfile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "tsconfig.json"), []byte("{}"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	gen := newTestGenerator()
	first := gen.Generate(dir)
	second := gen.Generate(dir)

	if !first.Valid || !second.Valid {
		t.Fatal("expected valid results")
	}
	if first.Hash != second.Hash {
		t.Errorf("unchanged tree produced different hashes: %s vs %s", first.Hash, second.Hash)
	}
	if first.Components != second.Components {
		t.Errorf("unchanged tree produced different components: %+v vs %+v", first.Components, second.Components)
	}
}

func TestGenerateLockfileSensitivity(t *testing.T) {
	dir := setupProject(t)
	lockfile := filepath.Join(dir, "yarn.lock")
	if err := os.WriteFile(lockfile, []byte("v1"), 0644); err != nil {
		t.Fatalf("failed to write lockfile: %v", err)
	}

	gen := newTestGenerator()
	before := gen.Generate(dir)

	if err := os.WriteFile(lockfile, []byte("v2"), 0644); err != nil {
		t.Fatalf("failed to rewrite lockfile: %v", err)
	}
	after := gen.Generate(dir)

	if before.Hash == after.Hash {
		t.Error("editing a lockfile did not change the combined hash")
	}
	if before.Components.Dependencies == after.Components.Dependencies {
		t.Error("editing a lockfile did not change the dependencies component")
	}
	if before.Components.Structure != after.Components.Structure {
		t.Error("editing a lockfile changed the structure component")
	}
	if before.Components.Configs != after.Components.Configs {
		t.Error("editing a lockfile changed the configs component")
	}
}

func TestGenerateConfigSensitivity(t *testing.T) {
	dir := setupProject(t)
	cfgFile := filepath.Join(dir, "tsconfig.json")
	if err := os.WriteFile(cfgFile, []byte(`{"strict":false}`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	gen := newTestGenerator()
	before := gen.Generate(dir)

	if err := os.WriteFile(cfgFile, []byte(`{"strict":true}`), 0644); err != nil {
		t.Fatalf("failed to rewrite config: %v", err)
	}
	after := gen.Generate(dir)

	if before.Hash == after.Hash {
		t.Error("editing a config file did not change the combined hash")
	}
	if before.Components.Configs == after.Components.Configs {
		t.Error("editing a config file did not change the configs component")
	}
	if before.Components.Dependencies != after.Components.Dependencies {
		t.Error("editing a config file changed the dependencies component")
	}
}

func TestGenerateStructureSensitivity(t *testing.T) {
	dir := setupProject(t)

	gen := newTestGenerator()
	before := gen.Generate(dir)

	if err := os.MkdirAll(filepath.Join(dir, "src"), 0755); err != nil {
		t.Fatalf("failed to create src: %v", err)
	}
	after := gen.Generate(dir)

	if before.Hash == after.Hash {
		t.Error("adding a directory did not change the combined hash")
	}
	if before.Components.Structure == after.Components.Structure {
		t.Error("adding a directory did not change the structure component")
	}
	if before.Components.Dependencies != after.Components.Dependencies {
		t.Error("adding a directory changed the dependencies component")
	}
}

func TestGenerateSchemaPropagation(t *testing.T) {
	dir := setupProject(t)

	v1 := NewGenerator(Options{SchemaVersion: "1.0.0"}).Generate(dir)
	v2 := NewGenerator(Options{SchemaVersion: "2.0.0"}).Generate(dir)

	if !v1.Valid || !v2.Valid {
		t.Fatal("expected valid results")
	}
	if v1.Hash == v2.Hash {
		t.Error("schema version change did not change the combined hash for an identical tree")
	}
	if v1.Components != v2.Components {
		t.Error("schema version change altered component hashes")
	}
}

func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=test",
		"GIT_AUTHOR_EMAIL=test@example.com",
		"GIT_COMMITTER_NAME=test",
		"GIT_COMMITTER_EMAIL=test@example.com",
	)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, output)
	}
}

func TestGenerateVCSHeadSensitivity(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	dir := setupProject(t)
	runGit(t, dir, "init")

	gen := newTestGenerator()

	// Repository with no commits yet: vcs component stays absent
	empty := gen.Generate(dir)
	if !empty.Valid {
		t.Fatalf("expected valid result, got invalid: %s", empty.InvalidReason)
	}
	if empty.Components.VCSHead != "" {
		t.Errorf("vcsHead = %q, want empty before the first commit", empty.Components.VCSHead)
	}

	runGit(t, dir, "commit", "--allow-empty", "-m", "first")
	first := gen.Generate(dir)
	if !first.Valid {
		t.Fatalf("expected valid result, got invalid: %s", first.InvalidReason)
	}
	if first.Components.VCSHead == "" {
		t.Fatal("vcsHead should be populated inside a repository with commits")
	}
	if first.Hash == empty.Hash {
		t.Error("the first commit did not change the combined hash")
	}

	runGit(t, dir, "commit", "--allow-empty", "-m", "second")
	second := gen.Generate(dir)

	if second.Components.VCSHead == first.Components.VCSHead {
		t.Error("advancing the head did not change the vcs component")
	}
	if second.Hash == first.Hash {
		t.Error("advancing the head did not change the combined hash")
	}
	if second.Components.Structure != first.Components.Structure {
		t.Error("advancing the head changed the structure component")
	}
	if second.Components.Dependencies != first.Components.Dependencies {
		t.Error("advancing the head changed the dependencies component")
	}
	if second.Components.Configs != first.Components.Configs {
		t.Error("advancing the head changed the configs component")
	}
}

func TestGenerateUnreadableLockfileSkipped(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks are bypassed for root")
	}

	dir := setupProject(t)
	lockfile := filepath.Join(dir, "go.sum")
	if err := os.WriteFile(lockfile, []byte("module v1.0.0 h1:x"), 0000); err != nil {
		t.Fatalf("failed to write lockfile: %v", err)
	}

	result := newTestGenerator().Generate(dir)
	if !result.Valid {
		t.Errorf("unreadable lockfile should be non-fatal, got invalid: %s", result.InvalidReason)
	}
	// With the only lockfile unreadable, the component falls back to the sentinel
	if result.Components.Dependencies != hashing.HashString("no-lockfiles") {
		t.Error("unreadable lockfile should be excluded from the dependencies component")
	}
}

func TestGenerateCustomLists(t *testing.T) {
	dir := setupProject(t)
	if err := os.WriteFile(filepath.Join(dir, "deps.list"), []byte("a"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	gen := NewGenerator(Options{
		LockfileNames:   []string{"deps.list"},
		ConfigFileNames: []string{"settings.conf"},
	})
	result := gen.Generate(dir)

	if !result.Valid {
		t.Fatalf("expected valid result: %s", result.InvalidReason)
	}
	wantDeps := hashing.HashMultiple([]string{"deps.list:" + hashing.HashString("a")})
	if result.Components.Dependencies != wantDeps {
		t.Error("dependencies component should hash the injected lockfile list in order")
	}
	if result.Components.Configs != hashing.HashString("no-configs") {
		t.Error("configs component should fall back to the sentinel")
	}
}
