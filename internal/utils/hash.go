package utils

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"
)

// DefaultHashAlgorithm is used when the configured algorithm is not supported.
const DefaultHashAlgorithm = "md5"

var hashConstructors = map[string]func() hash.Hash{
	"md5":    md5.New,
	"sha1":   sha1.New,
	"sha256": sha256.New,
	"sha384": sha512.New384,
	"sha512": sha512.New,
}

// NormalizeHashAlgorithm returns the lowercase algorithm name and whether it
// is supported. Unsupported names resolve to DefaultHashAlgorithm.
func NormalizeHashAlgorithm(name string) (string, bool) {
	n := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "-", ""))
	if _, ok := hashConstructors[n]; ok {
		return n, true
	}
	return DefaultHashAlgorithm, false
}

// HashFile streams the file through the named algorithm and returns the hex digest.
func HashFile(path, algorithm string) (string, error) {
	algo, _ := NormalizeHashAlgorithm(algorithm)

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := hashConstructors[algo]()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
