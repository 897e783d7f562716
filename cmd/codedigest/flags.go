package main

import (
	"github.com/spf13/cobra"

	"github.com/KnockOutEZ/codedigest/internal/config"
	"github.com/KnockOutEZ/codedigest/internal/utils"
)

// flags holds command line values. A flag only overrides the loaded config
// when it was set explicitly.
type flags struct {
	configPath   string
	initConfig   bool
	remoteURL    string
	remoteBranch string
	progress     bool

	output         string
	format         string
	outputEncoding string
	compress       bool
	maxOutputSize  int64
	copy           bool
	header         string
	footer         string

	include        string
	exclude        string
	noGitignore    bool
	includeHidden  bool
	followSymlinks bool
	maxDepth       int
	minFileSize    int64
	maxFileSize    int64
	skipEmpty      bool

	binaryAction  string
	stripComments bool
	lineNumbers   bool
	metadata      bool
	hash          string
	stats         bool
	tree          bool
	topFiles      int
	sortBy        string
	sortDirection string
	groupBy       string

	timeout       int
	retries       int
	retryDelay    int
	failFast      bool
	noParallel    bool
	workers       int
	securityCheck bool
	verbose       bool
	debug         bool
}

func (f *flags) register(cmd *cobra.Command) {
	fl := cmd.Flags()

	fl.StringVarP(&f.configPath, "config", "c", "", "path to a JSON or YAML config file (default "+config.DefaultFileName+")")
	fl.BoolVar(&f.initConfig, "init", false, "write a default config file and exit")
	fl.StringVar(&f.remoteURL, "remote", "", "clone and digest a remote git repository (URL or owner/repo)")
	fl.StringVar(&f.remoteBranch, "remote-branch", "", "branch or tag to check out with --remote")
	fl.BoolVar(&f.progress, "progress", false, "show a progress bar on stderr")

	fl.StringVarP(&f.output, "output", "o", "", "write the digest to this file instead of stdout")
	fl.StringVarP(&f.format, "format", "f", "", "output format: text, json, markdown, tree, csv, html or xml")
	fl.StringVar(&f.outputEncoding, "output-encoding", "", "charset of the written digest")
	fl.BoolVar(&f.compress, "compress", false, "gzip the written digest")
	fl.Int64Var(&f.maxOutputSize, "max-output-size", 0, "truncate output files beyond this many bytes")
	fl.BoolVar(&f.copy, "copy", false, "copy the digest to the clipboard")
	fl.StringVar(&f.header, "header", "", "text placed before the digest")
	fl.StringVar(&f.footer, "footer", "", "text placed after the digest")

	fl.StringVar(&f.include, "include", "", "comma-separated glob patterns to include")
	fl.StringVarP(&f.exclude, "ignore", "i", "", "comma-separated glob patterns to exclude")
	fl.BoolVar(&f.noGitignore, "no-gitignore", false, "do not read .gitignore")
	fl.BoolVar(&f.includeHidden, "hidden", false, "include hidden files")
	fl.BoolVar(&f.followSymlinks, "follow-symlinks", false, "follow symbolic links")
	fl.IntVar(&f.maxDepth, "max-depth", 0, "maximum directory depth, 0 for unlimited")
	fl.Int64Var(&f.minFileSize, "min-file-size", 0, "skip files smaller than this many bytes")
	fl.Int64Var(&f.maxFileSize, "max-file-size", 0, "skip files larger than this many bytes, 0 for unlimited")
	fl.BoolVar(&f.skipEmpty, "skip-empty", false, "skip empty files")

	fl.StringVar(&f.binaryAction, "binary", "", "binary file handling: skip, include or hexdump")
	fl.BoolVar(&f.stripComments, "strip-comments", false, "remove comments from file content")
	fl.BoolVar(&f.lineNumbers, "line-numbers", false, "prefix content lines with their number")
	fl.BoolVar(&f.metadata, "metadata", false, "include per-file metadata")
	fl.StringVar(&f.hash, "hash", "", "include a content hash computed with this algorithm")
	fl.BoolVar(&f.stats, "stats", false, "include a statistics summary")
	fl.BoolVar(&f.tree, "tree", false, "include a directory tree")
	fl.IntVar(&f.topFiles, "top-files-len", 0, "number of largest files listed in the summary")
	fl.StringVar(&f.sortBy, "sort-by", "", "sort key: path, size, extension or modified")
	fl.StringVar(&f.sortDirection, "sort-direction", "", "sort direction: asc or desc")
	fl.StringVar(&f.groupBy, "group-by", "", "group files by none, extension, directory or language")

	fl.IntVar(&f.timeout, "timeout", 0, "run timeout in milliseconds, 0 for none")
	fl.IntVar(&f.retries, "retries", 0, "number of retries after a failed run")
	fl.IntVar(&f.retryDelay, "retry-delay", 0, "delay between retries in milliseconds")
	fl.BoolVar(&f.failFast, "fail-fast", false, "abort on the first unreadable file")
	fl.BoolVar(&f.noParallel, "no-parallel", false, "process files sequentially")
	fl.IntVar(&f.workers, "workers", 0, "maximum number of concurrent workers")
	fl.BoolVar(&f.securityCheck, "security-check", false, "scan included content for secrets")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log progress information")
	fl.BoolVar(&f.debug, "debug", false, "log debug information")
}

// apply copies explicitly set flags onto cfg.
func (f *flags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed

	if changed("output") {
		cfg.OutputFile = f.output
	}
	if changed("format") {
		format, err := config.ParseFormat(f.format)
		if err != nil {
			return err
		}
		cfg.OutputFormat = string(format)
	}
	if changed("output-encoding") {
		cfg.OutputEncoding = f.outputEncoding
	}
	if changed("compress") {
		cfg.Compress = f.compress
	}
	if changed("max-output-size") {
		cfg.MaxOutputSize = f.maxOutputSize
	}
	if changed("copy") {
		cfg.CopyToClipboard = f.copy
	}
	if changed("header") {
		cfg.HeaderText = f.header
	}
	if changed("footer") {
		cfg.FooterText = f.footer
	}

	if changed("include") {
		cfg.IncludePatterns = utils.ParsePatternList(f.include)
	}
	if changed("ignore") {
		cfg.ExcludePatterns = append(cfg.ExcludePatterns, utils.ParsePatternList(f.exclude)...)
	}
	if changed("no-gitignore") {
		cfg.RespectGitignore = !f.noGitignore
	}
	if changed("hidden") {
		cfg.IncludeHidden = f.includeHidden
	}
	if changed("follow-symlinks") {
		cfg.FollowSymlinks = f.followSymlinks
	}
	if changed("max-depth") {
		cfg.MaxDepth = f.maxDepth
	}
	if changed("min-file-size") {
		cfg.MinFileSize = f.minFileSize
	}
	if changed("max-file-size") {
		cfg.MaxFileSize = f.maxFileSize
	}
	if changed("skip-empty") {
		cfg.SkipEmptyFiles = f.skipEmpty
	}

	if changed("binary") {
		cfg.BinaryFilesAction = config.BinaryAction(f.binaryAction)
		cfg.SkipBinaryFiles = cfg.BinaryFilesAction == config.BinarySkip
	}
	if changed("strip-comments") {
		cfg.CommentStripping = f.stripComments
	}
	if changed("line-numbers") {
		cfg.ShowLineNumbers = f.lineNumbers
	}
	if changed("metadata") {
		cfg.IncludeMetadata = f.metadata
	}
	if changed("hash") {
		cfg.IncludeFileHash = true
		cfg.HashAlgorithm = f.hash
	}
	if changed("stats") {
		cfg.ShowStatistics = f.stats
	}
	if changed("tree") {
		cfg.ShowTree = f.tree
	}
	if changed("top-files-len") {
		cfg.TopFilesLength = f.topFiles
	}
	if changed("sort-by") {
		cfg.SortBy = config.SortKey(f.sortBy)
	}
	if changed("sort-direction") {
		cfg.SortDirection = config.SortDirection(f.sortDirection)
	}
	if changed("group-by") {
		cfg.FileGrouping = config.GroupingMode(f.groupBy)
	}

	if changed("timeout") {
		cfg.Timeout = f.timeout
	}
	if changed("retries") {
		cfg.RetryCount = f.retries
	}
	if changed("retry-delay") {
		cfg.RetryDelay = f.retryDelay
	}
	if changed("fail-fast") {
		cfg.ContinueOnError = !f.failFast
	}
	if changed("no-parallel") {
		cfg.Parallel = !f.noParallel
	}
	if changed("workers") {
		cfg.MaxParallelProcesses = f.workers
	}
	if changed("security-check") {
		cfg.SecurityCheck = f.securityCheck
	}
	if changed("verbose") {
		cfg.Verbose = f.verbose
	}
	if changed("debug") {
		cfg.Debug = f.debug
	}
	return nil
}
