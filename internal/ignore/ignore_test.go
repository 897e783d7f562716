package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/KnockOutEZ/codedigest/internal/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestBuiltInPatterns(t *testing.T) {
	r := New(t.TempDir(), config.Default(), zaptest.NewLogger(t))

	tests := map[string]bool{
		"node_modules/react/index.js": true,
		"src/node_modules/x.js":       true,
		".git/HEAD":                   true,
		"package-lock.json":           true,
		"logs/app.log":                true,
		"src/main.go":                 false,
		"README.md":                   false,
		"":                            false,
	}
	for path, want := range tests {
		if got := r.Ignored(path); got != want {
			t.Errorf("Ignored(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestGitignoreRespect(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "# generated\n\nsecret.txt\ntmp/\n")

	t.Run("Enabled", func(t *testing.T) {
		r := New(root, config.Default(), zaptest.NewLogger(t))
		if !r.Ignored("secret.txt") {
			t.Error("secret.txt should be ignored when .gitignore is respected")
		}
		if !r.Ignored("tmp/cache/a.bin") {
			t.Error("files under tmp/ should be ignored")
		}
		if r.Ignored("src/a.js") {
			t.Error("src/a.js should not be ignored")
		}
	})

	t.Run("Disabled", func(t *testing.T) {
		cfg := config.Default()
		cfg.RespectGitignore = false
		r := New(root, cfg, zaptest.NewLogger(t))
		if r.Ignored("secret.txt") {
			t.Error("secret.txt should not be ignored when .gitignore is not respected")
		}
	})
}

func TestMergeOrderAndNegation(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "*.log\n")
	writeFile(t, filepath.Join(root, ".npmignore"), "!keep.log\n")
	writeFile(t, filepath.Join(root, ".dockerignore"), "docs/\n")

	cfg := config.Default()
	cfg.IgnorePatterns = nil
	cfg.RespectNpmignore = true
	cfg.RespectDockerignore = true
	cfg.ExcludePatterns = []string{"**/*.md"}

	r := New(root, cfg, zaptest.NewLogger(t))

	tests := map[string]bool{
		"debug.log":      true,
		"keep.log":       false,
		"docs/guide.txt": true,
		"README.md":      true,
		"src/notes/a.md": true,
		"src/index.js":   false,
	}
	for path, want := range tests {
		if got := r.Ignored(path); got != want {
			t.Errorf("Ignored(%q) = %v, want %v", path, got, want)
		}
	}

	names := []string{}
	for _, s := range r.Sources() {
		names = append(names, s.Name)
	}
	want := []string{"built-in", ".gitignore", ".npmignore", ".dockerignore", "exclude"}
	if len(names) != len(want) {
		t.Fatalf("Sources() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Sources()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestExcludesApplyWithoutIgnoreFiles(t *testing.T) {
	cfg := config.Default()
	cfg.RespectGitignore = false
	cfg.ExcludePatterns = []string{"*.snap"}
	r := New(t.TempDir(), cfg, nil)
	if !r.Ignored("tests/__snapshots__/a.snap") {
		t.Error("explicit excludes must apply regardless of ignore-file flags")
	}
	if !r.Ignored("node_modules/x/index.js") {
		t.Error("built-in patterns must apply regardless of ignore-file flags")
	}
}

func TestUnreadableIgnoreFileWarns(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, ".gitignore"), 0755); err != nil {
		t.Fatal(err)
	}

	core, logs := observer.New(zapcore.WarnLevel)
	r := New(root, config.Default(), zap.New(core))

	if logs.Len() != 1 {
		t.Fatalf("expected one warning, got %d", logs.Len())
	}
	if r.Ignored("src/a.js") {
		t.Error("an unreadable ignore file must contribute no patterns")
	}
}

func TestMissingIgnoreFileIsSilent(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	cfg := config.Default()
	cfg.RespectNpmignore = true
	New(t.TempDir(), cfg, zap.New(core))
	if logs.Len() != 0 {
		t.Errorf("missing ignore files should not warn, got %d entries", logs.Len())
	}
}

func TestMatchDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, ".gitignore"), "out/\n")
	r := New(root, config.Default(), zaptest.NewLogger(t))

	tests := []struct {
		rel   string
		isDir bool
		want  bool
	}{
		{"out", true, true},
		{"out", false, false},
		{"src/node_modules", true, true},
		{"dist", true, true},
		{"src", true, false},
	}
	for _, tt := range tests {
		if got := r.Match(tt.rel, tt.isDir); got != tt.want {
			t.Errorf("Match(%q, %v) = %v, want %v", tt.rel, tt.isDir, got, tt.want)
		}
	}
}
