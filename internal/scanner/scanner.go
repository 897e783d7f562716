package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/KnockOutEZ/codedigest/internal/config"
	"github.com/KnockOutEZ/codedigest/internal/logging"
	"github.com/KnockOutEZ/codedigest/internal/utils"
)

// IgnoreFunc reports whether a root-relative path is ignored. isDir is set
// when rel names a directory, so directory-only patterns can prune it.
type IgnoreFunc func(rel string, isDir bool) bool

// Scanner discovers the files a digest run will consider.
type Scanner struct {
	cfg     *config.Config
	ignored IgnoreFunc
	logger  *zap.Logger
}

// New creates a Scanner. A nil ignored predicate ignores nothing.
func New(cfg *config.Config, ignored IgnoreFunc, logger *zap.Logger) *Scanner {
	if ignored == nil {
		ignored = func(string, bool) bool { return false }
	}
	return &Scanner{
		cfg:     cfg,
		ignored: ignored,
		logger:  logging.OrNop(logger),
	}
}

// Scan expands the include patterns against root and returns the matching
// slash-separated relative paths, filtered and ordered by the configured policies.
func (s *Scanner) Scan(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	excludes := utils.NormalizePatterns(s.cfg.ExcludePatterns)
	base := os.DirFS(root)
	fsys := prunedFS{
		FS: base,
		skip: func(rel string, d fs.DirEntry) bool {
			return s.skipEntry(base, excludes, rel, d)
		},
	}
	opts := []doublestar.GlobOption{doublestar.WithFilesOnly()}
	if !s.cfg.FollowSymlinks {
		opts = append(opts, doublestar.WithNoFollow())
	}

	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range utils.NormalizePatterns(s.cfg.IncludePatterns) {
		if !doublestar.ValidatePattern(pattern) {
			s.logger.Warn("Skipping invalid include pattern", zap.String("pattern", pattern))
			continue
		}
		matches, err := doublestar.Glob(fsys, pattern, opts...)
		if err != nil {
			s.logger.Warn("Glob expansion failed", zap.String("pattern", pattern), zap.Error(err))
			continue
		}
		for _, rel := range matches {
			if _, ok := seen[rel]; ok {
				continue
			}
			seen[rel] = struct{}{}
			if utils.MatchAny(excludes, rel) {
				continue
			}
			files = append(files, rel)
		}
	}

	files = s.filter(root, files)
	s.sort(root, files)
	files = applyFileOrder(files, s.cfg.FileOrder)
	applyDirectoryOrder(files, s.cfg.DirectoryOrder)

	s.logger.Debug("Discovered files", zap.String("root", root), zap.Int("count", len(files)))
	return files, nil
}

func (s *Scanner) filter(root string, files []string) []string {
	kept := files[:0]
	for _, rel := range files {
		if !s.cfg.IncludeHidden && (utils.HasHiddenSegment(rel) || utils.IsHiddenFile(filepath.Join(root, filepath.FromSlash(rel)))) {
			continue
		}
		if s.cfg.MaxDepth > 0 && utils.PathDepth(rel) > s.cfg.MaxDepth {
			continue
		}
		if s.ignored(rel, false) {
			s.logger.Debug("Ignored", zap.String("path", rel))
			continue
		}
		kept = append(kept, rel)
	}
	return kept
}

// sort orders files by path first so that every other key breaks ties the
// same way on every run.
func (s *Scanner) sort(root string, files []string) {
	sort.Strings(files)

	desc := s.cfg.SortDirection == config.SortDesc
	var less func(a, b string) bool

	switch s.cfg.SortBy {
	case config.SortBySize, config.SortByModified:
		stats := make(map[string]os.FileInfo, len(files))
		for _, rel := range files {
			if info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel))); err == nil {
				stats[rel] = info
			}
		}
		if s.cfg.SortBy == config.SortBySize {
			less = func(a, b string) bool { return sizeOf(stats[a]) < sizeOf(stats[b]) }
		} else {
			less = func(a, b string) bool { return modOf(stats[a]) < modOf(stats[b]) }
		}
	case config.SortByExtension:
		less = func(a, b string) bool { return utils.Extension(a) < utils.Extension(b) }
	default:
		if desc {
			sort.Sort(sort.Reverse(sort.StringSlice(files)))
		}
		return
	}

	sort.SliceStable(files, func(i, j int) bool {
		if desc {
			return less(files[j], files[i])
		}
		return less(files[i], files[j])
	})
}

func sizeOf(info os.FileInfo) int64 {
	if info == nil {
		return 0
	}
	return info.Size()
}

func modOf(info os.FileInfo) int64 {
	if info == nil {
		return 0
	}
	return info.ModTime().UnixNano()
}

// applyFileOrder moves explicitly listed files to the front in list order.
func applyFileOrder(files, order []string) []string {
	if len(order) == 0 {
		return files
	}

	present := make(map[string]bool, len(files))
	for _, f := range files {
		present[f] = true
	}

	listed := make(map[string]bool, len(order))
	result := make([]string, 0, len(files))
	for _, f := range utils.NormalizePatterns(order) {
		if present[f] && !listed[f] {
			listed[f] = true
			result = append(result, f)
		}
	}
	for _, f := range files {
		if !listed[f] {
			result = append(result, f)
		}
	}
	return result
}

// applyDirectoryOrder stably partitions files by the first listed directory
// containing them; files outside every listed directory go last.
func applyDirectoryOrder(files, dirs []string) {
	if len(dirs) == 0 {
		return
	}

	prefixes := make([]string, 0, len(dirs))
	for _, d := range utils.NormalizePatterns(dirs) {
		prefixes = append(prefixes, strings.TrimSuffix(d, "/")+"/")
	}

	rank := func(rel string) int {
		for i, p := range prefixes {
			if strings.HasPrefix(rel, p) {
				return i
			}
		}
		return len(prefixes)
	}

	sort.SliceStable(files, func(i, j int) bool {
		return rank(files[i]) < rank(files[j])
	})
}
