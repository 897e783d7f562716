package utils

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// Canonical encoding tags.
const (
	EncodingUTF8    = "utf8"
	EncodingUTF16LE = "utf16le"
	EncodingUTF16BE = "utf16be"
)

// SampleSize is the number of leading bytes inspected for binary and charset detection.
const SampleSize = 4096

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ReadSample reads up to n bytes from the start of the file.
func ReadSample(path string, n int) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return buf[:read], nil
}

// DetectEncoding guesses the charset of sample. A byte order mark wins, valid
// UTF-8 is reported as utf8, anything else goes through statistical detection.
// Unknown or unsupported results fall back to utf8.
func DetectEncoding(sample []byte) string {
	switch {
	case bytes.HasPrefix(sample, bomUTF8):
		return EncodingUTF8
	case bytes.HasPrefix(sample, bomUTF16LE):
		return EncodingUTF16LE
	case bytes.HasPrefix(sample, bomUTF16BE):
		return EncodingUTF16BE
	}

	if len(sample) == 0 || validUTF8Prefix(sample) {
		return EncodingUTF8
	}

	result, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || result == nil {
		return EncodingUTF8
	}
	name := NormalizeEncodingName(result.Charset)
	if _, err := lookupEncoding(name); err != nil {
		return EncodingUTF8
	}
	return name
}

// NormalizeEncodingName maps common spellings ("UTF-8", "utf_16le") onto
// the canonical tags and lowercases everything else.
func NormalizeEncodingName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	switch strings.NewReplacer("-", "", "_", "").Replace(n) {
	case "utf8":
		return EncodingUTF8
	case "utf16le", "ucs2":
		return EncodingUTF16LE
	case "utf16be":
		return EncodingUTF16BE
	}
	return n
}

// DecodeBytes converts data in the named charset to a Go string. A leading
// byte order mark is dropped and invalid UTF-8 becomes U+FFFD.
func DecodeBytes(data []byte, encodingName string) (string, error) {
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return "", err
	}
	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s content: %w", encodingName, err)
	}
	return string(decoded), nil
}

// EncodeString converts s into the named charset.
func EncodeString(s, encodingName string) ([]byte, error) {
	if NormalizeEncodingName(encodingName) == EncodingUTF8 || encodingName == "" {
		return []byte(s), nil
	}
	enc, err := lookupEncoding(encodingName)
	if err != nil {
		return nil, err
	}
	out, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("failed to encode output as %s: %w", encodingName, err)
	}
	return out, nil
}

func lookupEncoding(name string) (encoding.Encoding, error) {
	switch NormalizeEncodingName(name) {
	case EncodingUTF8, "":
		return unicode.UTF8BOM, nil
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), nil
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM), nil
	}

	if enc, err := htmlindex.Get(name); err == nil {
		return enc, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unsupported encoding: %s", name)
	}
	return enc, nil
}

// validUTF8Prefix reports whether b is valid UTF-8, tolerating one rune cut
// off at the end of the sample.
func validUTF8Prefix(b []byte) bool {
	if utf8.Valid(b) {
		return true
	}
	for k := 1; k < utf8.UTFMax && k <= len(b); k++ {
		if utf8.RuneStart(b[len(b)-k]) {
			if utf8.FullRune(b[len(b)-k:]) {
				return false
			}
			return utf8.Valid(b[:len(b)-k])
		}
	}
	return false
}

// CountLines counts lines, including a final line without a trailing newline.
func CountLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}

	count := bytes.Count(content, []byte{'\n'})
	if content[len(content)-1] != '\n' {
		count++
	}
	return count
}
