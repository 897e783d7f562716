package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHexdumpSeventeenBytes(t *testing.T) {
	data := []byte("ABCDEFGHIJKLMNOP\x00")
	dump := Hexdump(data)

	lines := strings.Split(dump, "\n")
	if len(lines) != 2 {
		t.Fatalf("Hexdump() produced %d lines, want 2:\n%s", len(lines), dump)
	}
	if !strings.HasPrefix(lines[1], "00000010") {
		t.Errorf("second line offset = %q, want 00000010", lines[1][:8])
	}

	first := lines[0]
	start := strings.Index(first, "|")
	end := strings.LastIndex(first, "|")
	if start < 0 || end <= start {
		t.Fatalf("first line has no ASCII column: %q", first)
	}
	if ascii := first[start+1 : end]; len(ascii) != 16 {
		t.Errorf("ASCII column = %q (%d chars), want 16", ascii, len(ascii))
	}

	want := "00000010  00" + strings.Repeat("   ", 15) + "  |.|"
	if lines[1] != want {
		t.Errorf("second line = %q, want %q", lines[1], want)
	}
}

func TestHexdumpEmpty(t *testing.T) {
	if got := Hexdump(nil); got != "" {
		t.Errorf("Hexdump(nil) = %q, want empty", got)
	}
}

func TestNormalizeHashAlgorithm(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"md5", "md5", true},
		{"SHA256", "sha256", true},
		{"sha-512", "sha512", true},
		{"sha384", "sha384", true},
		{"crc32", "md5", false},
		{"", "md5", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeHashAlgorithm(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeHashAlgorithm(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHashFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := map[string]string{
		"md5":    "5d41402abc4b2a76b9719d911017c592",
		"sha1":   "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d",
		"sha256": "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		"bogus":  "5d41402abc4b2a76b9719d911017c592",
	}
	for algo, want := range tests {
		got, err := HashFile(path, algo)
		if err != nil {
			t.Fatalf("HashFile(%s) error = %v", algo, err)
		}
		if got != want {
			t.Errorf("HashFile(%s) = %s, want %s", algo, got, want)
		}
	}

	if _, err := HashFile(filepath.Join(t.TempDir(), "missing"), "md5"); err == nil {
		t.Error("HashFile() should fail for a missing file")
	}
}

func TestMimeTypeForExtension(t *testing.T) {
	if got := MimeTypeForExtension(".json"); got != "application/json" {
		t.Errorf("MimeTypeForExtension(.json) = %q", got)
	}
	if got := MimeTypeForExtension("PNG"); got != "image/png" {
		t.Errorf("MimeTypeForExtension(PNG) = %q", got)
	}
	if got := MimeTypeForExtension("nope"); got != DefaultMimeType {
		t.Errorf("MimeTypeForExtension(nope) = %q, want %q", got, DefaultMimeType)
	}
}

func TestLanguageForPath(t *testing.T) {
	tests := map[string]string{
		"README.md":         "markdown",
		"src/a.js":          "javascript",
		"main.GO":           "go",
		"deploy/Dockerfile": "dockerfile",
		"data.unknown":      "",
		"LICENSE":           "",
	}
	for in, want := range tests {
		if got := LanguageForPath(in); got != want {
			t.Errorf("LanguageForPath(%q) = %q, want %q", in, got, want)
		}
	}
	if got := Extension("dir/File.TXT"); got != "txt" {
		t.Errorf("Extension() = %q, want txt", got)
	}
}

func TestDetectEncoding(t *testing.T) {
	tests := []struct {
		name   string
		sample []byte
		want   string
	}{
		{"Empty", nil, EncodingUTF8},
		{"ASCII", []byte("plain text"), EncodingUTF8},
		{"UTF8BOM", []byte("\xEF\xBB\xBFhi"), EncodingUTF8},
		{"UTF16LEBOM", []byte{0xFF, 0xFE, 'h', 0}, EncodingUTF16LE},
		{"UTF16BEBOM", []byte{0xFE, 0xFF, 0, 'h'}, EncodingUTF16BE},
		{"CutRune", []byte("caf\xC3"), EncodingUTF8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectEncoding(tt.sample); got != tt.want {
				t.Errorf("DetectEncoding() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeBytes(t *testing.T) {
	t.Run("UTF16LE", func(t *testing.T) {
		got, err := DecodeBytes([]byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "utf16le")
		if err != nil {
			t.Fatalf("DecodeBytes() error = %v", err)
		}
		if got != "hi" {
			t.Errorf("DecodeBytes() = %q, want hi", got)
		}
	})

	t.Run("UTF8StripsBOM", func(t *testing.T) {
		got, err := DecodeBytes([]byte("\xEF\xBB\xBFhello"), "UTF-8")
		if err != nil {
			t.Fatalf("DecodeBytes() error = %v", err)
		}
		if got != "hello" {
			t.Errorf("DecodeBytes() = %q, want hello", got)
		}
	})

	t.Run("Latin1", func(t *testing.T) {
		got, err := DecodeBytes([]byte{'c', 'a', 'f', 0xE9}, "latin1")
		if err != nil {
			t.Fatalf("DecodeBytes() error = %v", err)
		}
		if got != "café" {
			t.Errorf("DecodeBytes() = %q, want café", got)
		}
	})

	t.Run("Unsupported", func(t *testing.T) {
		if _, err := DecodeBytes([]byte("x"), "not-a-charset"); err == nil {
			t.Error("DecodeBytes() should reject an unknown charset")
		}
	})
}

func TestEncodeString(t *testing.T) {
	out, err := EncodeString("hi", "utf8")
	if err != nil || string(out) != "hi" {
		t.Fatalf("EncodeString(utf8) = %q, %v", out, err)
	}
	out, err = EncodeString("é", "latin1")
	if err != nil {
		t.Fatalf("EncodeString(latin1) error = %v", err)
	}
	if len(out) != 1 || out[0] != 0xE9 {
		t.Errorf("EncodeString(latin1) = %x, want e9", out)
	}
}

func TestReadSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	if err := os.WriteFile(path, []byte("abc"), 0644); err != nil {
		t.Fatal(err)
	}
	got, err := ReadSample(path, SampleSize)
	if err != nil {
		t.Fatalf("ReadSample() error = %v", err)
	}
	if string(got) != "abc" {
		t.Errorf("ReadSample() = %q, want abc", got)
	}
}

func TestPatternHelpers(t *testing.T) {
	if got := ParsePatternList(" *.go, ,src/** "); len(got) != 2 || got[0] != "*.go" || got[1] != "src/**" {
		t.Errorf("ParsePatternList() = %v", got)
	}
	if got := NormalizePatterns([]string{"./src/*.go", "", `docs\*.md`}); len(got) != 2 || got[0] != "src/*.go" {
		t.Errorf("NormalizePatterns() = %v", got)
	}
	if !MatchAny([]string{"[", "**/*.md"}, "docs/a.md") {
		t.Error("MatchAny() should skip malformed patterns and match the rest")
	}
	if MatchAny([]string{"*.md"}, "docs/a.md") {
		t.Error("MatchAny(*.md) should not cross directories")
	}

	depths := map[string]int{"": 0, "a.txt": 1, "src/a.js": 2, "a/b/c/d": 4}
	for p, want := range depths {
		if got := PathDepth(p); got != want {
			t.Errorf("PathDepth(%q) = %d, want %d", p, got, want)
		}
	}

	if !HasHiddenSegment(".github/workflows/ci.yml") || !HasHiddenSegment("src/.env") {
		t.Error("HasHiddenSegment() missed a dot segment")
	}
	if HasHiddenSegment("src/a.js") {
		t.Error("HasHiddenSegment() flagged a visible path")
	}
}

func TestCountLines(t *testing.T) {
	tests := map[string]int{"": 0, "a": 1, "a\n": 1, "a\nb": 2, "a\nb\n": 2}
	for in, want := range tests {
		if got := CountLines([]byte(in)); got != want {
			t.Errorf("CountLines(%q) = %d, want %d", in, got, want)
		}
	}
}
