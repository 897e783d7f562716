package config

// DefaultIgnorePatterns is the built-in ignore list, in gitignore syntax.
var DefaultIgnorePatterns = []string{
	".git/",
	".svn/",
	".hg/",
	"node_modules/",
	"bower_components/",
	"vendor/",
	"dist/",
	"build/",
	"coverage/",
	".next/",
	".nuxt/",
	".cache/",
	".idea/",
	".vscode/",
	"__pycache__/",
	"*.pyc",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"Cargo.lock",
	"composer.lock",
	"Gemfile.lock",
	"poetry.lock",
	"go.sum",
	"*.log",
	"*.tmp",
	"*.temp",
	"*.swp",
	".DS_Store",
	"Thumbs.db",
	"desktop.ini",
}

// DefaultBinaryExtensions short-circuits content sniffing for known binary types.
var DefaultBinaryExtensions = []string{
	"png", "jpg", "jpeg", "gif", "bmp", "ico", "webp", "tiff", "psd",
	"mp3", "mp4", "wav", "ogg", "flac", "avi", "mov", "mkv", "webm",
	"zip", "tar", "gz", "tgz", "bz2", "xz", "7z", "rar", "jar", "war",
	"exe", "dll", "so", "dylib", "o", "a", "lib", "bin", "class", "wasm",
	"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx",
	"ttf", "otf", "woff", "woff2", "eot",
	"sqlite", "db", "pyc",
}

// DefaultTextExtensions short-circuits content sniffing for known text types.
var DefaultTextExtensions = []string{
	"txt", "md", "markdown", "rst", "adoc",
	"js", "mjs", "cjs", "jsx", "ts", "tsx", "vue", "svelte",
	"go", "py", "rb", "php", "java", "kt", "scala", "swift", "rs", "c", "h", "cpp", "hpp", "cc", "cs",
	"sh", "bash", "zsh", "ps1", "bat",
	"html", "htm", "css", "scss", "sass", "less", "xml", "svg",
	"json", "yaml", "yml", "toml", "ini", "cfg", "conf", "env",
	"sql", "graphql", "proto", "csv", "tsv",
}

// DefaultCSVFields are the record fields written by the CSV renderer.
var DefaultCSVFields = []string{"path", "size", "modified", "extension", "content"}

// Default returns a fresh, fully populated configuration.
func Default() *Config {
	return &Config{
		OutputFormat:    string(FormatText),
		OutputEncoding:  "utf8",
		PrettyPrint:     true,
		CSVFields:       clone(DefaultCSVFields),
		IncludePatterns: []string{"**/*"},
		ExcludePatterns: []string{},
		IgnorePatterns:  clone(DefaultIgnorePatterns),

		RespectGitignore: true,
		MaxFileSize:      10 * 1024 * 1024,
		FileOrder:        []string{},
		DirectoryOrder:   []string{},
		BinaryExtensions: clone(DefaultBinaryExtensions),
		TextExtensions:   clone(DefaultTextExtensions),

		Encoding:          "auto",
		DetectEncoding:    true,
		DetectBinary:      true,
		SkipBinaryFiles:   true,
		BinaryFilesAction: BinarySkip,

		ShowFileHeaders:   true,
		ShowSeparators:    true,
		HashAlgorithm:     "md5",
		FileGrouping:      GroupNone,
		FileGroupingDepth: 1,
		SortBy:            SortByPath,
		SortDirection:     SortAsc,
		TopFilesLength:    5,

		Timeout:         300000,
		RetryDelay:      1000,
		ContinueOnError: true,

		Parallel:             true,
		MaxParallelProcesses: 4,
	}
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
