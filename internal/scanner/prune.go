package scanner

import (
	"io/fs"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/KnockOutEZ/codedigest/internal/utils"
)

// prunedFS hides directory entries rejected by skip, so glob expansion never
// descends into ignored or excluded trees.
type prunedFS struct {
	fs.FS
	skip func(rel string, d fs.DirEntry) bool
}

func (p prunedFS) ReadDir(name string) ([]fs.DirEntry, error) {
	entries, err := fs.ReadDir(p.FS, name)
	kept := entries[:0]
	for _, entry := range entries {
		if p.skip(path.Join(name, entry.Name()), entry) {
			continue
		}
		kept = append(kept, entry)
	}
	return kept, err
}

// skipEntry reports whether a directory listing entry must be hidden from the
// glob walk. Regular files are always kept and filtered later. Symlinks are
// resolved: dangling links are dropped, and links to directories are dropped
// unless symlinks are followed.
func (s *Scanner) skipEntry(fsys fs.FS, excludes []string, rel string, d fs.DirEntry) bool {
	isDir := d.IsDir()
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := fs.Stat(fsys, rel)
		if err != nil {
			s.logger.Debug("Skipping broken symlink", zap.String("path", rel))
			return true
		}
		if info.IsDir() && !s.cfg.FollowSymlinks {
			return true
		}
		isDir = info.IsDir()
	}
	if !isDir {
		return false
	}

	if !s.cfg.IncludeHidden && strings.HasPrefix(d.Name(), ".") {
		return true
	}
	if s.cfg.MaxDepth > 0 && utils.PathDepth(rel) >= s.cfg.MaxDepth {
		return true
	}
	if s.ignored(rel, true) || excludesDir(excludes, rel) {
		s.logger.Debug("Pruned directory", zap.String("path", rel))
		return true
	}
	return false
}

// excludesDir reports whether an exclude pattern of the form "<dir>/**"
// covers everything below rel.
func excludesDir(excludes []string, rel string) bool {
	for _, pattern := range excludes {
		prefix, ok := strings.CutSuffix(pattern, "/**")
		if !ok {
			continue
		}
		if matched, err := doublestar.Match(prefix, rel); err == nil && matched {
			return true
		}
	}
	return false
}
