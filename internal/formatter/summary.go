package formatter

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/KnockOutEZ/codedigest/internal/models"
)

// NoFilesMessage is rendered by the text-like formats for an empty digest.
const NoFilesMessage = "No files found."

// Statistics summarizes a digest. It carries no run timestamps so repeated
// runs over the same tree render identically.
type Statistics struct {
	TotalFiles   int            `json:"totalFiles"`
	TotalSize    int64          `json:"totalSize"`
	BinaryFiles  int            `json:"binaryFiles"`
	ErrorFiles   int            `json:"errorFiles"`
	Extensions   map[string]int `json:"extensions"`
	LargestFiles []FileSize     `json:"largestFiles"`
}

// FileSize is one entry of the largest-files list.
type FileSize struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

func computeStatistics(records []models.FileRecord, topN int) Statistics {
	stats := Statistics{
		TotalFiles:   len(records),
		Extensions:   make(map[string]int),
		LargestFiles: []FileSize{},
	}
	for _, r := range records {
		stats.TotalSize += r.Size
		if r.IsBinary {
			stats.BinaryFiles++
		}
		if r.Failed() {
			stats.ErrorFiles++
		}
		ext := r.Extension
		if ext == "" {
			ext = "(none)"
		}
		stats.Extensions[ext]++
	}
	for _, r := range getLargestFiles(records, topN) {
		stats.LargestFiles = append(stats.LargestFiles, FileSize{Path: r.Path, Size: r.Size})
	}
	return stats
}

func generateFileSummary(records []models.FileRecord, topN int) string {
	var sb strings.Builder
	stats := computeStatistics(records, topN)

	sb.WriteString(fmt.Sprintf("Total Files: %d\n", stats.TotalFiles))
	sb.WriteString(fmt.Sprintf("Total Size: %s\n", formatSize(stats.TotalSize)))
	if stats.BinaryFiles > 0 {
		sb.WriteString(fmt.Sprintf("Binary Files: %d\n", stats.BinaryFiles))
	}
	if stats.ErrorFiles > 0 {
		sb.WriteString(fmt.Sprintf("Files With Errors: %d\n", stats.ErrorFiles))
	}

	exts := make([]string, 0, len(stats.Extensions))
	for ext := range stats.Extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	if len(exts) > 0 {
		sb.WriteString("\nFiles by extension:\n")
		for _, ext := range exts {
			sb.WriteString(fmt.Sprintf("  %s: %d\n", ext, stats.Extensions[ext]))
		}
	}

	if len(stats.LargestFiles) > 0 {
		sb.WriteString(fmt.Sprintf("\nTop %d largest files:\n", len(stats.LargestFiles)))
		for i, f := range stats.LargestFiles {
			sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, f.Path, formatSize(f.Size)))
		}
	}

	return sb.String()
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

// getLargestFiles returns up to n records by descending size, ties by path.
func getLargestFiles(records []models.FileRecord, n int) []models.FileRecord {
	if n <= 0 {
		return nil
	}
	sorted := append([]models.FileRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Size != sorted[j].Size {
			return sorted[i].Size > sorted[j].Size
		}
		return sorted[i].Path < sorted[j].Path
	})
	if len(sorted) > n {
		return sorted[:n]
	}
	return sorted
}

// metadataLines lists the optional per-file metadata shown by the text-like formats.
func metadataLines(r *models.FileRecord) []string {
	lines := []string{
		fmt.Sprintf("Size: %s", formatSize(r.Size)),
		fmt.Sprintf("Modified: %s", r.Modified.Format(time.RFC3339)),
	}
	if r.Hash != "" {
		lines = append(lines, fmt.Sprintf("Hash: %s", r.Hash))
	}
	if r.MimeType != "" {
		lines = append(lines, fmt.Sprintf("MIME Type: %s", r.MimeType))
	}
	if r.Encoding != "" {
		lines = append(lines, fmt.Sprintf("Encoding: %s", r.Encoding))
	}
	if r.Error != "" {
		lines = append(lines, fmt.Sprintf("Error: %s", r.Error))
	}
	return lines
}

// addLineNumbers prefixes every line with its right-aligned number.
func addLineNumbers(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = fmt.Sprintf("%5d | %s", i+1, line)
	}
	return strings.Join(lines, "\n")
}

// displayContent returns the content as rendered by the text-like formats.
// Line numbers are never added to encoded binary content.
func displayContent(r *models.FileRecord, showLineNumbers bool) string {
	if showLineNumbers && r.Encoding == "" && !r.Failed() {
		return addLineNumbers(r.Content)
	}
	return r.Content
}
