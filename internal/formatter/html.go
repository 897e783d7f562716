package formatter

import (
	"html/template"
	"strings"

	"github.com/KnockOutEZ/codedigest/internal/config"
	"github.com/KnockOutEZ/codedigest/internal/models"
	"github.com/KnockOutEZ/codedigest/internal/utils"
)

// HTMLFormatter renders a standalone HTML page.
type HTMLFormatter struct{}

var htmlTemplate = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>Code Digest</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
pre { background: #f6f8fa; padding: 1rem; overflow-x: auto; }
.meta { color: #57606a; font-size: 0.9em; }
</style>
</head>
<body>
<h1>Code Digest</h1>
{{- if .Header}}
<p>{{.Header}}</p>
{{- end}}
{{- if .Summary}}
<h2>Summary</h2>
<pre>{{.Summary}}</pre>
{{- end}}
{{- if .Tree}}
<h2>Directory Structure</h2>
<pre>{{.Tree}}</pre>
{{- end}}
{{- range .Files}}
<section class="file">
<h2>{{.Path}}</h2>
{{- if .Meta}}
<ul class="meta">
{{- range .Meta}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- end}}
<pre><code{{if .Language}} class="language-{{.Language}}"{{end}}>{{.Content}}</code></pre>
</section>
{{- else}}
<p>No files found.</p>
{{- end}}
{{- if .Footer}}
<p>{{.Footer}}</p>
{{- end}}
</body>
</html>
`))

type htmlPage struct {
	Header  string
	Footer  string
	Summary string
	Tree    string
	Files   []htmlFile
}

type htmlFile struct {
	Path     string
	Language string
	Meta     []string
	Content  string
}

func (f *HTMLFormatter) Format(records []models.FileRecord, cfg *config.Config) (string, error) {
	page := htmlPage{Header: cfg.HeaderText, Footer: cfg.FooterText}
	if cfg.ShowStatistics && len(records) > 0 {
		page.Summary = generateFileSummary(records, cfg.TopFilesLength)
	}
	if cfg.ShowTree && len(records) > 0 {
		page.Tree = generateDirectoryStructure(records, cfg)
	}

	for i := range records {
		r := &records[i]
		file := htmlFile{
			Path:    r.Path,
			Content: displayContent(r, cfg.ShowLineNumbers),
		}
		if r.Encoding == "" {
			file.Language = utils.LanguageForPath(r.Path)
		}
		if cfg.IncludeMetadata {
			file.Meta = metadataLines(r)
		}
		page.Files = append(page.Files, file)
	}

	var sb strings.Builder
	if err := htmlTemplate.Execute(&sb, page); err != nil {
		return "", err
	}
	return sb.String(), nil
}
