package models

import "time"

// FileRecord is the processed form of one accepted file.
type FileRecord struct {
	// Path is slash-separated and relative to the scanned root
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	Modified  time.Time `json:"modified"`
	Created   time.Time `json:"created"`
	Extension string    `json:"extension"`
	IsBinary  bool      `json:"isBinary"`
	Hash      string    `json:"hash,omitempty"`
	MimeType  string    `json:"mimeType,omitempty"`
	Content   string    `json:"content"`

	// Encoding is "base64" or "hexdump" when binary content was included.
	Encoding string `json:"encoding,omitempty"`

	// Error is set only for files that failed to read while errors are
	// tolerated. Content then holds a placeholder and Size is zero.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the record carries a processing error.
func (r *FileRecord) Failed() bool {
	return r.Error != ""
}
