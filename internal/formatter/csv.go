package formatter

import (
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"github.com/KnockOutEZ/codedigest/internal/config"
	"github.com/KnockOutEZ/codedigest/internal/models"
)

// CSVFormatter writes one row per record with the configured fields.
type CSVFormatter struct{}

var csvFields = map[string]func(*models.FileRecord) string{
	"path":      func(r *models.FileRecord) string { return r.Path },
	"size":      func(r *models.FileRecord) string { return strconv.FormatInt(r.Size, 10) },
	"modified":  func(r *models.FileRecord) string { return r.Modified.Format(time.RFC3339) },
	"created":   func(r *models.FileRecord) string { return r.Created.Format(time.RFC3339) },
	"extension": func(r *models.FileRecord) string { return r.Extension },
	"isBinary":  func(r *models.FileRecord) string { return strconv.FormatBool(r.IsBinary) },
	"hash":      func(r *models.FileRecord) string { return r.Hash },
	"mimeType":  func(r *models.FileRecord) string { return r.MimeType },
	"content":   func(r *models.FileRecord) string { return r.Content },
	"encoding":  func(r *models.FileRecord) string { return r.Encoding },
	"error":     func(r *models.FileRecord) string { return r.Error },
}

func (f *CSVFormatter) Format(records []models.FileRecord, cfg *config.Config) (string, error) {
	fields := cfg.CSVFields
	if len(fields) == 0 {
		fields = config.DefaultCSVFields
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write(fields); err != nil {
		return "", err
	}

	row := make([]string, len(fields))
	for i := range records {
		for j, field := range fields {
			if get, ok := csvFields[field]; ok {
				row[j] = get(&records[i])
			} else {
				row[j] = ""
			}
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
