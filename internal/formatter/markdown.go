package formatter

import (
	"fmt"
	"strings"

	"github.com/KnockOutEZ/codedigest/internal/config"
	"github.com/KnockOutEZ/codedigest/internal/models"
	"github.com/KnockOutEZ/codedigest/internal/utils"
)

type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(records []models.FileRecord, cfg *config.Config) (string, error) {
	var sb strings.Builder

	sb.WriteString("# Code Digest\n\n")

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
		sb.WriteString("## Summary\n\n```\n")
		sb.WriteString(generateFileSummary(records, cfg.TopFilesLength))
		sb.WriteString("```\n\n")
	}

	if cfg.ShowTree {
		sb.WriteString("## Directory Structure\n\n```\n")
		sb.WriteString(generateDirectoryStructure(records, cfg))
		sb.WriteString("```\n\n")
	}

	for i := range records {
		r := &records[i]
		if cfg.ShowFileHeaders {
			sb.WriteString(fmt.Sprintf("## %s\n\n", r.Path))
			if cfg.IncludeMetadata {
				for _, line := range metadataLines(r) {
					sb.WriteString("- " + line + "\n")
				}
				sb.WriteString("\n")
			}
		}

		content := displayContent(r, cfg.ShowLineNumbers)
		fence := codeFence(content)
		sb.WriteString(fence)
		if r.Encoding == "" {
			sb.WriteString(utils.LanguageForPath(r.Path))
		}
		sb.WriteString("\n")
		sb.WriteString(content)
		if !strings.HasSuffix(content, "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString(fence)
		sb.WriteString("\n\n")

		if cfg.ShowSeparators && i < len(records)-1 {
			sb.WriteString("---\n\n")
		}
	}

	writeFooter(&sb, cfg)
	return sb.String(), nil
}

// codeFence returns a backtick fence longer than any backtick run in content.
func codeFence(content string) string {
	longest, run := 0, 0
	for _, c := range content {
		if c == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	if longest < 3 {
		return "```"
	}
	return strings.Repeat("`", longest+1)
}
