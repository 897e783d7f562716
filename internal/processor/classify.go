package processor

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/KnockOutEZ/codedigest/internal/utils"
)

// Rejection reasons reported by the classifier.
const (
	ReasonEmpty    = "empty"
	ReasonTooSmall = "below minFileSize"
	ReasonTooLarge = "exceeds maxFileSize"
	ReasonBinary   = "binary"
)

// binaryThreshold is the share of suspicious bytes above which a sample is binary.
const binaryThreshold = 0.1

// Decision is the classifier verdict for one file.
type Decision struct {
	Proceed  bool
	Reason   string
	IsBinary bool
	Info     os.FileInfo
}

// Classify decides whether the file at abs takes part in the digest. Stat
// failures are rejections unless errors are not tolerated.
func (p *Processor) Classify(abs, rel string) (Decision, error) {
	info, err := os.Stat(abs)
	if err != nil {
		if !p.cfg.ContinueOnError {
			return Decision{}, fmt.Errorf("failed to stat %s: %w", rel, err)
		}
		return Decision{Reason: err.Error()}, nil
	}

	size := info.Size()
	if size == 0 && p.cfg.SkipEmptyFiles {
		return Decision{Reason: ReasonEmpty, Info: info}, nil
	}
	if size < p.cfg.MinFileSize {
		return Decision{Reason: ReasonTooSmall, Info: info}, nil
	}
	if p.cfg.MaxFileSize > 0 && size > p.cfg.MaxFileSize {
		return Decision{Reason: ReasonTooLarge, Info: info}, nil
	}

	binary := false
	if p.cfg.DetectBinary {
		binary = p.isBinary(abs, rel)
	}
	if binary && p.cfg.SkipBinaryFiles {
		return Decision{Reason: ReasonBinary, IsBinary: true, Info: info}, nil
	}

	return Decision{Proceed: true, IsBinary: binary, Info: info}, nil
}

// isBinary consults the extension lists first and falls back to sniffing
// the leading bytes of the file.
func (p *Processor) isBinary(abs, rel string) bool {
	ext := utils.Extension(rel)
	if ext != "" {
		if p.binaryExts[ext] {
			return true
		}
		if p.textExts[ext] {
			return false
		}
	}

	sample, err := utils.ReadSample(abs, utils.SampleSize)
	if err != nil {
		p.logger.Debug("Binary sniffing failed, assuming text", zap.String("path", rel), zap.Error(err))
		return false
	}
	return IsBinaryContent(sample)
}

// IsBinaryContent reports whether more than 10% of sample are NUL bytes or
// control characters other than tab, LF and CR. An empty sample is text.
func IsBinaryContent(sample []byte) bool {
	if len(sample) == 0 {
		return false
	}

	suspicious := 0
	for _, b := range sample {
		if b == 0 || (b < 32 && b != '\t' && b != '\n' && b != '\r') {
			suspicious++
		}
	}
	return float64(suspicious)/float64(len(sample)) > binaryThreshold
}

func extensionSet(exts []string) map[string]bool {
	set := make(map[string]bool, len(exts))
	for _, e := range exts {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e != "" {
			set[e] = true
		}
	}
	return set
}
