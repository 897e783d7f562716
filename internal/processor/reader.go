package processor

import (
	"encoding/base64"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/KnockOutEZ/codedigest/internal/config"
	"github.com/KnockOutEZ/codedigest/internal/models"
	"github.com/KnockOutEZ/codedigest/internal/utils"
)

// BinaryPlaceholder is the content of binary files handled with the skip action.
const BinaryPlaceholder = "[Binary file content not included]"

// Encoding tags set on records whose binary content was included.
const (
	EncodingBase64  = "base64"
	EncodingHexdump = "hexdump"
)

// ReadRecord builds the record for an accepted file. Failures become error
// records when errors are tolerated and are returned otherwise.
func (p *Processor) ReadRecord(abs, rel string, d Decision) (*models.FileRecord, error) {
	info := d.Info
	if info == nil {
		var err error
		if info, err = os.Stat(abs); err != nil {
			return p.failed(&models.FileRecord{Path: rel, Extension: utils.Extension(rel)}, err)
		}
	}

	record := &models.FileRecord{
		Path:      rel,
		Size:      info.Size(),
		Modified:  info.ModTime(),
		Created:   utils.CreatedTime(abs, info),
		Extension: utils.Extension(rel),
		IsBinary:  d.IsBinary,
	}

	if p.cfg.IncludeFileHash {
		hash, err := utils.HashFile(abs, p.hashAlgorithm)
		if err != nil {
			return p.failed(record, err)
		}
		record.Hash = hash
	}
	if p.cfg.IncludeMimeType {
		record.MimeType = utils.MimeTypeForExtension(record.Extension)
	}

	if d.IsBinary {
		return p.readBinary(abs, record)
	}
	return p.readText(abs, record)
}

func (p *Processor) readBinary(abs string, record *models.FileRecord) (*models.FileRecord, error) {
	if p.binaryAction == config.BinarySkip {
		record.Content = BinaryPlaceholder
		return record, nil
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return p.failed(record, err)
	}

	switch p.binaryAction {
	case config.BinaryInclude:
		record.Content = base64.StdEncoding.EncodeToString(data)
		record.Encoding = EncodingBase64
	case config.BinaryHexdump:
		record.Content = utils.Hexdump(data)
		record.Encoding = EncodingHexdump
	}
	return record, nil
}

func (p *Processor) readText(abs string, record *models.FileRecord) (*models.FileRecord, error) {
	data, err := os.ReadFile(abs)
	if err != nil {
		return p.failed(record, err)
	}

	content, err := utils.DecodeBytes(data, p.encodingFor(data))
	if err != nil {
		return p.failed(record, err)
	}

	record.Content = Transform(content, p.cfg)
	return record, nil
}

// encodingFor resolves the charset used to decode data.
func (p *Processor) encodingFor(data []byte) string {
	if p.cfg.Encoding != "" && p.cfg.Encoding != "auto" {
		return p.cfg.Encoding
	}
	if !p.cfg.DetectEncoding {
		return utils.EncodingUTF8
	}
	sample := data
	if len(sample) > utils.SampleSize {
		sample = sample[:utils.SampleSize]
	}
	return utils.DetectEncoding(sample)
}

// failed turns err into an error record, or returns it when errors are not tolerated.
func (p *Processor) failed(record *models.FileRecord, err error) (*models.FileRecord, error) {
	if !p.cfg.ContinueOnError {
		return nil, fmt.Errorf("failed to process %s: %w", record.Path, err)
	}

	p.logger.Warn("Failed to process file", zap.String("path", record.Path), zap.Error(err))
	record.Size = 0
	record.Content = fmt.Sprintf("[Error processing file: %v]", err)
	record.Error = err.Error()
	return record, nil
}
