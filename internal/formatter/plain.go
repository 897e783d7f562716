package formatter

import (
	"fmt"
	"strings"

	"github.com/KnockOutEZ/codedigest/internal/config"
	"github.com/KnockOutEZ/codedigest/internal/models"
)

const (
	sectionRule = "================================================================\n"
	fileRule    = "================\n"
)

type PlainFormatter struct{}

func (f *PlainFormatter) Format(records []models.FileRecord, cfg *config.Config) (string, error) {
	var sb strings.Builder

	if cfg.HeaderText != "" {
		sb.WriteString(cfg.HeaderText)
		sb.WriteString("\n\n")
	}

	if len(records) == 0 {
		sb.WriteString(NoFilesMessage + "\n")
		writeFooter(&sb, cfg)
		return sb.String(), nil
	}

	if cfg.ShowStatistics {
		sb.WriteString(sectionRule)
		sb.WriteString("File Summary\n")
		sb.WriteString(sectionRule)
		sb.WriteString(generateFileSummary(records, cfg.TopFilesLength))
		sb.WriteString("\n")
	}

	if cfg.ShowTree {
		sb.WriteString(sectionRule)
		sb.WriteString("Directory Structure\n")
		sb.WriteString(sectionRule)
		sb.WriteString(generateDirectoryStructure(records, cfg))
		sb.WriteString("\n")
	}

	for i := range records {
		r := &records[i]
		if cfg.ShowSeparators {
			sb.WriteString(fileRule)
		}
		if cfg.ShowFileHeaders {
			sb.WriteString(fmt.Sprintf("File: %s\n", r.Path))
			if cfg.IncludeMetadata {
				for _, line := range metadataLines(r) {
					sb.WriteString(line + "\n")
				}
			}
		}
		if cfg.ShowSeparators {
			sb.WriteString(fileRule)
		}
		sb.WriteString(displayContent(r, cfg.ShowLineNumbers))
		sb.WriteString("\n\n")
	}

	writeFooter(&sb, cfg)
	return sb.String(), nil
}

func writeFooter(sb *strings.Builder, cfg *config.Config) {
	if cfg.FooterText != "" {
		sb.WriteString(cfg.FooterText)
		sb.WriteString("\n")
	}
}
