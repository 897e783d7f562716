package utils

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ParsePatternList parses a comma-separated pattern list
func ParsePatternList(patterns string) []string {
	if patterns == "" {
		return nil
	}

	parts := strings.Split(patterns, ",")
	result := make([]string, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}

	return result
}

// NormalizePatterns converts separators to slashes and drops a leading "./"
// so patterns compare against root-relative paths.
func NormalizePatterns(patterns []string) []string {
	result := make([]string, 0, len(patterns))

	for _, pattern := range patterns {
		pattern = strings.TrimPrefix(filepath.ToSlash(strings.TrimSpace(pattern)), "./")
		if pattern == "" {
			continue
		}
		result = append(result, pattern)
	}

	return result
}

// MatchAny reports whether the slash-separated path matches any doublestar
// pattern. Malformed patterns never match.
func MatchAny(patterns []string, path string) bool {
	path = filepath.ToSlash(path)
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}

// PathDepth returns the number of segments in a slash-separated relative path.
func PathDepth(rel string) int {
	rel = strings.Trim(rel, "/")
	if rel == "" || rel == "." {
		return 0
	}
	return strings.Count(rel, "/") + 1
}

// HasHiddenSegment reports whether any segment of rel is a dotfile or dot-directory.
func HasHiddenSegment(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if seg != "." && seg != ".." && strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}
