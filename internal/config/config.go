package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the working directory when
// no explicit path is given.
const DefaultFileName = "codedigest.config.json"

// Config holds every option of a digest run. A value is built once per run
// and must not be mutated after it has been handed to the pipeline.
type Config struct {
	// Output
	OutputFormat    string   `json:"outputFormat" yaml:"outputFormat"`
	OutputFile      string   `json:"outputFile" yaml:"outputFile"`
	OutputEncoding  string   `json:"outputEncoding" yaml:"outputEncoding"`
	Compress        bool     `json:"compress" yaml:"compress"`
	MaxOutputSize   int64    `json:"maxOutputSize" yaml:"maxOutputSize"`
	CopyToClipboard bool     `json:"copyToClipboard" yaml:"copyToClipboard"`
	PrettyPrint     bool     `json:"prettyPrint" yaml:"prettyPrint"`
	HeaderText      string   `json:"headerText" yaml:"headerText"`
	FooterText      string   `json:"footerText" yaml:"footerText"`
	CSVFields       []string `json:"csvFields" yaml:"csvFields"`

	// File selection
	IncludePatterns     []string `json:"includePatterns" yaml:"includePatterns"`
	ExcludePatterns     []string `json:"excludePatterns" yaml:"excludePatterns"`
	IgnorePatterns      []string `json:"ignorePatterns" yaml:"ignorePatterns"`
	RespectGitignore    bool     `json:"respectGitignore" yaml:"respectGitignore"`
	RespectNpmignore    bool     `json:"respectNpmignore" yaml:"respectNpmignore"`
	RespectDockerignore bool     `json:"respectDockerignore" yaml:"respectDockerignore"`
	MinFileSize         int64    `json:"minFileSize" yaml:"minFileSize"`
	MaxFileSize         int64    `json:"maxFileSize" yaml:"maxFileSize"`
	IncludeHidden       bool     `json:"includeHidden" yaml:"includeHidden"`
	FollowSymlinks      bool     `json:"followSymlinks" yaml:"followSymlinks"`
	MaxDepth            int      `json:"maxDepth" yaml:"maxDepth"`
	FileOrder           []string `json:"fileOrder" yaml:"fileOrder"`
	DirectoryOrder      []string `json:"directoryOrder" yaml:"directoryOrder"`
	SkipEmptyFiles      bool     `json:"skipEmptyFiles" yaml:"skipEmptyFiles"`
	BinaryExtensions    []string `json:"binaryExtensions" yaml:"binaryExtensions"`
	TextExtensions      []string `json:"textExtensions" yaml:"textExtensions"`

	// Content processing
	Encoding           string       `json:"encoding" yaml:"encoding"`
	DetectEncoding     bool         `json:"detectEncoding" yaml:"detectEncoding"`
	DetectBinary       bool         `json:"detectBinary" yaml:"detectBinary"`
	SkipBinaryFiles    bool         `json:"skipBinaryFiles" yaml:"skipBinaryFiles"`
	BinaryFilesAction  BinaryAction `json:"binaryFilesAction" yaml:"binaryFilesAction"`
	TruncateLineLength int          `json:"truncateLineLength" yaml:"truncateLineLength"`
	FileContentPreview int          `json:"fileContentPreview" yaml:"fileContentPreview"`
	FileContentTail    int          `json:"fileContentTail" yaml:"fileContentTail"`
	CommentStripping   bool         `json:"commentStripping" yaml:"commentStripping"`
	StripWhitespace    bool         `json:"stripWhitespace" yaml:"stripWhitespace"`

	// Formatting
	ShowFileHeaders   bool          `json:"showFileHeaders" yaml:"showFileHeaders"`
	ShowSeparators    bool          `json:"showSeparators" yaml:"showSeparators"`
	ShowLineNumbers   bool          `json:"showLineNumbers" yaml:"showLineNumbers"`
	IncludeMetadata   bool          `json:"includeMetadata" yaml:"includeMetadata"`
	IncludeFileHash   bool          `json:"includeFileHash" yaml:"includeFileHash"`
	HashAlgorithm     string        `json:"hashAlgorithm" yaml:"hashAlgorithm"`
	IncludeMimeType   bool          `json:"includeMimeType" yaml:"includeMimeType"`
	FileGrouping      GroupingMode  `json:"fileGrouping" yaml:"fileGrouping"`
	FileGroupingDepth int           `json:"fileGroupingDepth" yaml:"fileGroupingDepth"`
	SortBy            SortKey       `json:"sortBy" yaml:"sortBy"`
	SortDirection     SortDirection `json:"sortDirection" yaml:"sortDirection"`
	ShowStatistics    bool          `json:"showStatistics" yaml:"showStatistics"`
	ShowTree          bool          `json:"showTree" yaml:"showTree"`
	TreeShowSize      bool          `json:"treeShowSize" yaml:"treeShowSize"`
	TreeShowModified  bool          `json:"treeShowModified" yaml:"treeShowModified"`
	TopFilesLength    int           `json:"topFilesLength" yaml:"topFilesLength"`

	// Resilience, all durations in milliseconds
	Timeout         int  `json:"timeout" yaml:"timeout"`
	RetryCount      int  `json:"retryCount" yaml:"retryCount"`
	RetryDelay      int  `json:"retryDelay" yaml:"retryDelay"`
	ContinueOnError bool `json:"continueOnError" yaml:"continueOnError"`

	// Concurrency
	Parallel             bool `json:"parallel" yaml:"parallel"`
	MaxParallelProcesses int  `json:"maxParallelProcesses" yaml:"maxParallelProcesses"`

	SecurityCheck bool `json:"securityCheck" yaml:"securityCheck"`
	Verbose       bool `json:"verbose" yaml:"verbose"`
	Debug         bool `json:"debug" yaml:"debug"`
}

// Load reads a JSON or YAML config file and merges it over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but returns the defaults when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Parse merges data over the defaults. ext selects the decoder: ".yaml" and
// ".yml" use YAML, anything else is read as JSON. Keys missing from data keep
// their default values and unknown keys are ignored.
func Parse(data []byte, ext string) (*Config, error) {
	cfg := Default()
	if len(strings.TrimSpace(string(data))) == 0 {
		return cfg, nil
	}

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}
	return cfg, nil
}

// Save writes the config as JSON, or as YAML when path ends in .yaml/.yml.
func (c *Config) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the options that would make a run meaningless. Options with
// a documented fallback (hash algorithm, binary action, sort key, grouping)
// are not rejected here.
func (c *Config) Validate() error {
	if _, err := ParseFormat(c.OutputFormat); err != nil {
		return err
	}
	if c.MaxParallelProcesses < 1 {
		return &ValidationError{Field: "maxParallelProcesses", Message: "must be at least 1"}
	}
	if c.MinFileSize < 0 {
		return &ValidationError{Field: "minFileSize", Message: "must not be negative"}
	}
	if c.MaxFileSize > 0 && c.MaxFileSize < c.MinFileSize {
		return &ValidationError{Field: "maxFileSize", Message: "must not be smaller than minFileSize"}
	}
	if c.MaxDepth < 0 {
		return &ValidationError{Field: "maxDepth", Message: "must not be negative"}
	}
	if c.Timeout < 0 {
		return &ValidationError{Field: "timeout", Message: "must not be negative"}
	}
	if c.RetryCount < 0 {
		return &ValidationError{Field: "retryCount", Message: "must not be negative"}
	}
	if c.RetryDelay < 0 {
		return &ValidationError{Field: "retryDelay", Message: "must not be negative"}
	}
	if c.FileGroupingDepth < 1 {
		return &ValidationError{Field: "fileGroupingDepth", Message: "must be at least 1"}
	}
	if c.MaxOutputSize < 0 {
		return &ValidationError{Field: "maxOutputSize", Message: "must not be negative"}
	}
	return nil
}

// TimeoutDuration returns the whole-run deadline; zero means no deadline.
func (c *Config) TimeoutDuration() time.Duration {
	return time.Duration(c.Timeout) * time.Millisecond
}

// RetryDelayDuration returns the pause between retry attempts.
func (c *Config) RetryDelayDuration() time.Duration {
	return time.Duration(c.RetryDelay) * time.Millisecond
}

// Format returns the parsed output format, falling back to text.
func (c *Config) Format() Format {
	f, err := ParseFormat(c.OutputFormat)
	if err != nil {
		return FormatText
	}
	return f
}

// ValidationError reports an out-of-range option.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
