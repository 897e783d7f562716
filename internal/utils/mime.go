package utils

import "strings"

// DefaultMimeType is reported for extensions missing from the table.
const DefaultMimeType = "application/octet-stream"

var mimeTypes = map[string]string{
	"txt":      "text/plain",
	"md":       "text/markdown",
	"markdown": "text/markdown",
	"html":     "text/html",
	"htm":      "text/html",
	"css":      "text/css",
	"scss":     "text/x-scss",
	"csv":      "text/csv",
	"tsv":      "text/tab-separated-values",
	"xml":      "application/xml",
	"svg":      "image/svg+xml",
	"json":     "application/json",
	"yaml":     "application/yaml",
	"yml":      "application/yaml",
	"toml":     "application/toml",
	"js":       "application/javascript",
	"mjs":      "application/javascript",
	"cjs":      "application/javascript",
	"jsx":      "text/jsx",
	"ts":       "application/typescript",
	"tsx":      "text/tsx",
	"go":       "text/x-go",
	"py":       "text/x-python",
	"rb":       "text/x-ruby",
	"php":      "application/x-httpd-php",
	"java":     "text/x-java-source",
	"kt":       "text/x-kotlin",
	"rs":       "text/x-rust",
	"c":        "text/x-c",
	"h":        "text/x-c",
	"cpp":      "text/x-c++",
	"hpp":      "text/x-c++",
	"cs":       "text/x-csharp",
	"swift":    "text/x-swift",
	"sh":       "application/x-sh",
	"sql":      "application/sql",
	"png":      "image/png",
	"jpg":      "image/jpeg",
	"jpeg":     "image/jpeg",
	"gif":      "image/gif",
	"webp":     "image/webp",
	"ico":      "image/x-icon",
	"bmp":      "image/bmp",
	"pdf":      "application/pdf",
	"zip":      "application/zip",
	"gz":       "application/gzip",
	"tar":      "application/x-tar",
	"wasm":     "application/wasm",
	"mp3":      "audio/mpeg",
	"wav":      "audio/wav",
	"mp4":      "video/mp4",
	"woff":     "font/woff",
	"woff2":    "font/woff2",
	"ttf":      "font/ttf",
}

// MimeTypeForExtension looks up an extension given with or without its dot.
func MimeTypeForExtension(ext string) string {
	if mt, ok := mimeTypes[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return mt
	}
	return DefaultMimeType
}
