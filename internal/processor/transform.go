package processor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/KnockOutEZ/codedigest/internal/config"
)

// Markers inserted by the content windowing steps.
const (
	TruncatedLineSuffix = "..."
	PreviewMarker       = "... [truncated]"
	TailMarker          = "[truncated middle section]"
)

var (
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineComment  = regexp.MustCompile(`//.*`)
	hashComment  = regexp.MustCompile(`(?m)^[ \t]*#.*$`)
	htmlComment  = regexp.MustCompile(`(?s)<!--.*?-->`)
)

// Transform applies the enabled content transformations in their fixed
// order: line truncation, preview window, tail window, comment stripping and
// whitespace stripping.
func Transform(content string, cfg *config.Config) string {
	if cfg.TruncateLineLength > 0 {
		content = TruncateLines(content, cfg.TruncateLineLength)
	}
	if cfg.FileContentPreview > 0 || cfg.FileContentTail > 0 {
		content = Window(content, cfg.FileContentPreview, cfg.FileContentTail)
	}
	if cfg.CommentStripping {
		content = StripComments(content)
	}
	if cfg.StripWhitespace {
		content = StripWhitespace(content)
	}
	return content
}

// TruncateLines cuts every line longer than limit characters and marks it.
func TruncateLines(content string, limit int) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if utf8.RuneCountInString(line) > limit {
			lines[i] = string([]rune(line)[:limit]) + TruncatedLineSuffix
		}
	}
	return strings.Join(lines, "\n")
}

// Window keeps the first preview lines and, when the content is longer than
// both windows together, the last tail lines behind a marker. The tail is
// always measured on the content as it was before the preview cut.
func Window(content string, preview, tail int) string {
	lines := strings.Split(content, "\n")
	total := len(lines)

	result := lines
	if preview > 0 && total > preview {
		result = append(append([]string{}, lines[:preview]...), PreviewMarker)
	}

	if tail > 0 && total > preview+tail {
		if preview <= 0 {
			result = nil
		}
		result = append(result, TailMarker)
		result = append(result, lines[total-tail:]...)
	}

	return strings.Join(result, "\n")
}

// StripComments removes block, line, hash and HTML comments regardless of
// the file's language. Comment markers inside string literals (URLs with
// "//", "#" in strings) are stripped too.
func StripComments(content string) string {
	content = blockComment.ReplaceAllString(content, "")
	content = htmlComment.ReplaceAllString(content, "")
	content = lineComment.ReplaceAllString(content, "")
	content = hashComment.ReplaceAllString(content, "")
	return content
}

// StripWhitespace trims every line and collapses runs of blank lines into one.
func StripWhitespace(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if blank {
				continue
			}
			blank = true
		} else {
			blank = false
		}
		result = append(result, line)
	}
	return strings.Join(result, "\n")
}
