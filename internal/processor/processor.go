// Package processor turns a directory into the ordered list of file records
// handed to a formatter.
package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/KnockOutEZ/codedigest/internal/config"
	"github.com/KnockOutEZ/codedigest/internal/ignore"
	"github.com/KnockOutEZ/codedigest/internal/logging"
	"github.com/KnockOutEZ/codedigest/internal/models"
	"github.com/KnockOutEZ/codedigest/internal/scanner"
	"github.com/KnockOutEZ/codedigest/internal/utils"
)

// ErrInvalidDirectory is returned when the input path is missing or not a directory.
var ErrInvalidDirectory = errors.New("invalid directory")

// Processor runs the discovery, classification and reading stages. The
// configuration is treated as read-only and the processor is safe to reuse
// across runs.
type Processor struct {
	cfg    *config.Config
	logger *zap.Logger
	bar    *progressbar.ProgressBar

	hashAlgorithm string
	binaryAction  config.BinaryAction
	binaryExts    map[string]bool
	textExts      map[string]bool
}

// Option customizes a Processor.
type Option func(*Processor)

// WithProgress reports every processed file on bar.
func WithProgress(bar *progressbar.ProgressBar) Option {
	return func(p *Processor) {
		p.bar = bar
	}
}

// New prepares a processor. Unsupported hash algorithms and binary actions
// are reported once and replaced by md5 and skip.
func New(cfg *config.Config, logger *zap.Logger, opts ...Option) *Processor {
	p := &Processor{
		cfg:        cfg,
		logger:     logging.OrNop(logger),
		binaryExts: extensionSet(cfg.BinaryExtensions),
		textExts:   extensionSet(cfg.TextExtensions),
	}
	for _, opt := range opts {
		opt(p)
	}

	algo, ok := utils.NormalizeHashAlgorithm(cfg.HashAlgorithm)
	if !ok && cfg.IncludeFileHash {
		p.logger.Warn("Unsupported hash algorithm, using default",
			zap.String("algorithm", cfg.HashAlgorithm), zap.String("default", algo))
	}
	p.hashAlgorithm = algo

	switch cfg.BinaryFilesAction {
	case config.BinarySkip, config.BinaryInclude, config.BinaryHexdump:
		p.binaryAction = cfg.BinaryFilesAction
	default:
		p.logger.Warn("Unknown binary files action, skipping binary content",
			zap.String("action", string(cfg.BinaryFilesAction)))
		p.binaryAction = config.BinarySkip
	}

	return p
}

// ProcessDirectory runs the whole pipeline over root and returns the records
// in their final order.
func (p *Processor) ProcessDirectory(ctx context.Context, root string) ([]models.FileRecord, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDirectory, root)
	}

	start := time.Now()
	resolver := ignore.New(root, p.cfg, p.logger)

	paths, err := scanner.New(p.cfg, resolver.Match, p.logger).Scan(root)
	if err != nil {
		return nil, fmt.Errorf("failed to discover files: %w", err)
	}
	p.logger.Info("Discovered files", zap.String("root", root), zap.Int("count", len(paths)))

	if p.bar != nil {
		p.bar.ChangeMax(len(paths))
	}

	records, err := p.ProcessAll(ctx, root, paths)
	if err != nil {
		return nil, err
	}

	Group(records, p.cfg.FileGrouping, p.cfg.FileGroupingDepth)

	p.logger.Info("Processed directory",
		zap.Int("files", len(records)),
		zap.Int("skipped", len(paths)-len(records)),
		zap.Duration("elapsed", time.Since(start)))
	return records, nil
}

// ProcessFile classifies and reads one file. A nil record means the file
// was rejected by the classifier.
func (p *Processor) ProcessFile(abs, rel string) (*models.FileRecord, error) {
	d, err := p.Classify(abs, rel)
	if err != nil {
		return nil, err
	}
	if !d.Proceed {
		p.logger.Debug("Skipping file", zap.String("path", rel), zap.String("reason", d.Reason))
		return nil, nil
	}
	return p.ReadRecord(abs, rel, d)
}
