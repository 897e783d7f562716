package formatter

import (
	"github.com/goccy/go-json"

	"github.com/KnockOutEZ/codedigest/internal/config"
	"github.com/KnockOutEZ/codedigest/internal/models"
)

// JSONFormatter renders the records as a JSON array, or as an object with
// metadata and files when statistics are requested.
type JSONFormatter struct{}

type jsonDigest struct {
	Metadata jsonMetadata        `json:"metadata"`
	Files    []models.FileRecord `json:"files"`
}

type jsonMetadata struct {
	Header     string     `json:"header,omitempty"`
	Footer     string     `json:"footer,omitempty"`
	Statistics Statistics `json:"statistics"`
}

func (f *JSONFormatter) Format(records []models.FileRecord, cfg *config.Config) (string, error) {
	if records == nil {
		records = []models.FileRecord{}
	}

	var v interface{} = records
	if cfg.ShowStatistics {
		v = jsonDigest{
			Metadata: jsonMetadata{
				Header:     cfg.HeaderText,
				Footer:     cfg.FooterText,
				Statistics: computeStatistics(records, cfg.TopFilesLength),
			},
			Files: records,
		}
	}

	var (
		data []byte
		err  error
	)
	if cfg.PrettyPrint {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
