package processor

import (
	"path"
	"sort"
	"strings"

	"github.com/KnockOutEZ/codedigest/internal/config"
	"github.com/KnockOutEZ/codedigest/internal/models"
	"github.com/KnockOutEZ/codedigest/internal/utils"
)

// Group stably reorders records by their group key. Records sharing a key
// keep their relative order. GroupNone and unknown modes leave records as is.
func Group(records []models.FileRecord, mode config.GroupingMode, depth int) {
	switch mode {
	case config.GroupExtension, config.GroupDirectory, config.GroupLanguage:
	default:
		return
	}

	keys := make(map[string]string, len(records))
	for i := range records {
		keys[records[i].Path] = GroupKey(&records[i], mode, depth)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return keys[records[i].Path] < keys[records[j].Path]
	})
}

// GroupKey computes the key a record is clustered under.
func GroupKey(r *models.FileRecord, mode config.GroupingMode, depth int) string {
	switch mode {
	case config.GroupExtension:
		return r.Extension
	case config.GroupDirectory:
		dir := path.Dir(r.Path)
		if dir == "." || dir == "/" {
			return "."
		}
		if depth < 1 {
			depth = 1
		}
		segments := strings.Split(dir, "/")
		if len(segments) > depth {
			segments = segments[:depth]
		}
		return strings.Join(segments, "/")
	case config.GroupLanguage:
		if lang := utils.LanguageForPath(r.Path); lang != "" {
			return lang
		}
		if r.Extension != "" {
			return r.Extension
		}
		return "unknown"
	}
	return ""
}
