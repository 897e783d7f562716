package utils

import (
	"path"
	"strings"
)

var languages = map[string]string{
	"go":       "go",
	"js":       "javascript",
	"mjs":      "javascript",
	"cjs":      "javascript",
	"jsx":      "jsx",
	"ts":       "typescript",
	"tsx":      "tsx",
	"py":       "python",
	"rb":       "ruby",
	"php":      "php",
	"java":     "java",
	"kt":       "kotlin",
	"scala":    "scala",
	"swift":    "swift",
	"rs":       "rust",
	"c":        "c",
	"h":        "c",
	"cpp":      "cpp",
	"hpp":      "cpp",
	"cc":       "cpp",
	"hh":       "cpp",
	"cs":       "csharp",
	"sh":       "bash",
	"bash":     "bash",
	"zsh":      "bash",
	"ps1":      "powershell",
	"html":     "html",
	"htm":      "html",
	"css":      "css",
	"scss":     "scss",
	"sass":     "sass",
	"less":     "less",
	"vue":      "vue",
	"svelte":   "svelte",
	"md":       "markdown",
	"markdown": "markdown",
	"json":     "json",
	"xml":      "xml",
	"svg":      "xml",
	"yaml":     "yaml",
	"yml":      "yaml",
	"toml":     "toml",
	"ini":      "ini",
	"sql":      "sql",
	"graphql":  "graphql",
	"proto":    "protobuf",
}

// LanguageForExtension returns the code-fence language identifier for an
// extension given with or without its dot, or "" when unknown.
func LanguageForExtension(ext string) string {
	return languages[strings.ToLower(strings.TrimPrefix(ext, "."))]
}

// LanguageForPath resolves the language of a slash-separated path. Files
// without an extension (Dockerfile, Makefile) are looked up by base name.
func LanguageForPath(p string) string {
	if ext := path.Ext(p); ext != "" {
		return LanguageForExtension(ext)
	}
	switch strings.ToLower(path.Base(p)) {
	case "dockerfile":
		return "dockerfile"
	case "makefile":
		return "makefile"
	}
	return ""
}

// Extension returns the lowercase extension of p without its leading dot.
func Extension(p string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
}
