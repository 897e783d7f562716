// Package formatter renders processed file records into a digest.
package formatter

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/KnockOutEZ/codedigest/internal/config"
	"github.com/KnockOutEZ/codedigest/internal/logging"
	"github.com/KnockOutEZ/codedigest/internal/models"
	"github.com/KnockOutEZ/codedigest/internal/utils"
)

// Formatter renders the ordered records of one run.
type Formatter interface {
	Format(records []models.FileRecord, cfg *config.Config) (string, error)
}

var formatters = map[config.Format]Formatter{
	config.FormatText:     &PlainFormatter{},
	config.FormatJSON:     &JSONFormatter{},
	config.FormatMarkdown: &MarkdownFormatter{},
	config.FormatTree:     &TreeFormatter{},
	config.FormatCSV:      &CSVFormatter{},
	config.FormatHTML:     &HTMLFormatter{},
	config.FormatXML:      &XMLFormatter{},
}

// Get returns the renderer registered for f.
func Get(f config.Format) (Formatter, error) {
	fm, ok := formatters[f]
	if !ok {
		return nil, &config.UnknownFormatError{Value: string(f)}
	}
	return fm, nil
}

// Render dispatches on cfg.OutputFormat. Values outside the supported set
// are logged and rendered as text; callers validate the format beforehand
// when an unknown value must be an error.
func Render(records []models.FileRecord, cfg *config.Config, logger *zap.Logger) (string, error) {
	f, err := config.ParseFormat(cfg.OutputFormat)
	if err != nil {
		logging.OrNop(logger).Warn("Unknown output format, falling back to text", zap.String("format", cfg.OutputFormat))
		f = config.FormatText
	}
	fm, err := Get(f)
	if err != nil {
		return "", err
	}
	return fm.Format(records, cfg)
}

// TruncationMarker is appended when the digest exceeds maxOutputSize.
const TruncationMarker = "\n\n[Output truncated: digest exceeded maxOutputSize of %d bytes]\n"

// Encode prepares a rendered digest for its sink: it enforces maxOutputSize
// when writing to a file, converts to the output encoding and gzips when
// compression is on.
func Encode(output string, cfg *config.Config, logger *zap.Logger) ([]byte, error) {
	logger = logging.OrNop(logger)

	if cfg.OutputFile != "" && cfg.MaxOutputSize > 0 && int64(len(output)) > cfg.MaxOutputSize {
		logger.Warn("Output exceeds maxOutputSize, truncating",
			zap.Int("size", len(output)), zap.Int64("maxOutputSize", cfg.MaxOutputSize))
		output = truncateUTF8(output, int(cfg.MaxOutputSize)) + fmt.Sprintf(TruncationMarker, cfg.MaxOutputSize)
	}

	data, err := utils.EncodeString(output, cfg.OutputEncoding)
	if err != nil {
		return nil, err
	}

	if !cfg.Compress {
		return data, nil
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, fmt.Errorf("failed to compress output: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to compress output: %w", err)
	}
	return buf.Bytes(), nil
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
