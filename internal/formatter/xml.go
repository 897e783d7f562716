package formatter

import (
	"encoding/xml"
	"time"

	"github.com/KnockOutEZ/codedigest/internal/config"
	"github.com/KnockOutEZ/codedigest/internal/models"
)

type XMLFormatter struct{}

type xmlOutput struct {
	XMLName  xml.Name    `xml:"codeDigest"`
	Header   string      `xml:"header,omitempty"`
	Summary  *xmlSummary `xml:"summary,omitempty"`
	Codebase xmlCodebase `xml:"codebase"`
	Footer   string      `xml:"footer,omitempty"`
}

type xmlSummary struct {
	TotalFiles int   `xml:"totalFiles"`
	TotalSize  int64 `xml:"totalSize"`
}

type xmlCodebase struct {
	Files []xmlFile `xml:"file"`
}

type xmlFile struct {
	Path     string     `xml:"path,attr"`
	Size     int64      `xml:"size,attr"`
	Modified string     `xml:"modified,attr,omitempty"`
	Binary   bool       `xml:"binary,attr,omitempty"`
	Encoding string     `xml:"encoding,attr,omitempty"`
	Hash     string     `xml:"hash,attr,omitempty"`
	MimeType string     `xml:"mimeType,attr,omitempty"`
	Error    string     `xml:"error,attr,omitempty"`
	Content  xmlContent `xml:"content"`
}

type xmlContent struct {
	Text string `xml:",cdata"`
}

func (f *XMLFormatter) Format(records []models.FileRecord, cfg *config.Config) (string, error) {
	output := xmlOutput{
		Header: cfg.HeaderText,
		Footer: cfg.FooterText,
	}

	if cfg.ShowStatistics {
		stats := computeStatistics(records, cfg.TopFilesLength)
		output.Summary = &xmlSummary{TotalFiles: stats.TotalFiles, TotalSize: stats.TotalSize}
	}

	for i := range records {
		r := &records[i]
		file := xmlFile{
			Path:     r.Path,
			Size:     r.Size,
			Binary:   r.IsBinary,
			Encoding: r.Encoding,
			Hash:     r.Hash,
			MimeType: r.MimeType,
			Error:    r.Error,
			Content:  xmlContent{Text: r.Content},
		}
		if cfg.IncludeMetadata {
			file.Modified = r.Modified.Format(time.RFC3339)
		}
		output.Codebase.Files = append(output.Codebase.Files, file)
	}

	var data []byte
	var err error
	if cfg.PrettyPrint {
		data, err = xml.MarshalIndent(output, "", "  ")
	} else {
		data, err = xml.Marshal(output)
	}
	if err != nil {
		return "", err
	}

	return xml.Header + string(data) + "\n", nil
}
