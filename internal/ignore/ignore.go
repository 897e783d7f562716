// Package ignore merges the built-in ignore list, the root-level ignore
// files and explicit exclude patterns into one gitignore-style predicate.
package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"go.uber.org/zap"

	"github.com/KnockOutEZ/codedigest/internal/config"
	"github.com/KnockOutEZ/codedigest/internal/logging"
)

// Ignore file names read from the scanned root.
const (
	GitIgnoreFile    = ".gitignore"
	NpmIgnoreFile    = ".npmignore"
	DockerIgnoreFile = ".dockerignore"
)

// Source is one named contributor of ignore patterns.
type Source struct {
	Name     string
	Patterns []string
}

// Resolver answers whether a root-relative path is ignored. It is read-only
// after construction and safe for concurrent use.
type Resolver struct {
	sources []Source
	matcher gitignore.Matcher
}

// New builds the resolver for root. Sources are merged in the order
// built-in list, .gitignore, .npmignore, .dockerignore, explicit excludes;
// a later negated pattern can re-include a path matched by an earlier one.
// Unreadable ignore files are logged and skipped.
func New(root string, cfg *config.Config, logger *zap.Logger) *Resolver {
	logger = logging.OrNop(logger)

	sources := []Source{{Name: "built-in", Patterns: cleanLines(cfg.IgnorePatterns)}}

	files := []struct {
		name    string
		enabled bool
	}{
		{GitIgnoreFile, cfg.RespectGitignore},
		{NpmIgnoreFile, cfg.RespectNpmignore},
		{DockerIgnoreFile, cfg.RespectDockerignore},
	}
	for _, f := range files {
		if !f.enabled {
			continue
		}
		patterns, err := readIgnoreFile(filepath.Join(root, f.name))
		if err != nil {
			if !os.IsNotExist(err) {
				logger.Warn("Skipping unreadable ignore file", zap.String("file", f.name), zap.Error(err))
			}
			continue
		}
		logger.Debug("Loaded ignore file", zap.String("file", f.name), zap.Int("patterns", len(patterns)))
		sources = append(sources, Source{Name: f.name, Patterns: patterns})
	}

	sources = append(sources, Source{Name: "exclude", Patterns: cleanLines(cfg.ExcludePatterns)})

	var compiled []gitignore.Pattern
	for _, src := range sources {
		for _, p := range src.Patterns {
			compiled = append(compiled, gitignore.ParsePattern(p, nil))
		}
	}

	return &Resolver{
		sources: sources,
		matcher: gitignore.NewMatcher(compiled),
	}
}

// Ignored reports whether the root-relative file path is excluded.
func (r *Resolver) Ignored(rel string) bool {
	return r.Match(rel, false)
}

// Match reports whether rel is excluded. Directory-only patterns such as
// "build/" match rel itself only when isDir is set.
func (r *Resolver) Match(rel string, isDir bool) bool {
	rel = strings.Trim(filepath.ToSlash(rel), "/")
	if rel == "" || rel == "." {
		return false
	}
	return r.matcher.Match(strings.Split(rel, "/"), isDir)
}

// Sources returns the pattern sources in merge order.
func (r *Resolver) Sources() []Source {
	return r.sources
}

func readIgnoreFile(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &os.PathError{Op: "read", Path: path, Err: os.ErrInvalid}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return cleanLines(strings.Split(string(data), "\n")), nil
}

// cleanLines drops blank lines and comments and strips trailing whitespace.
func cleanLines(lines []string) []string {
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result = append(result, filepath.ToSlash(line))
	}
	return result
}
