package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Format() != FormatText {
		t.Errorf("Format() = %q, want %q", cfg.Format(), FormatText)
	}
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	a := Default()
	b := Default()
	a.IgnorePatterns[0] = "changed"
	if b.IgnorePatterns[0] == "changed" {
		t.Error("Default() values share the ignore pattern slice")
	}
	if DefaultIgnorePatterns[0] == "changed" {
		t.Error("Default() leaked the package-level ignore list")
	}
}

func TestParsePartialJSONMergesOverDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{"outputFormat":"json","excludePatterns":["**/*.md"],"unknownKey":42}`), ".json")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.OutputFormat != "json" {
		t.Errorf("OutputFormat = %q, want json", cfg.OutputFormat)
	}
	if len(cfg.ExcludePatterns) != 1 || cfg.ExcludePatterns[0] != "**/*.md" {
		t.Errorf("ExcludePatterns = %v", cfg.ExcludePatterns)
	}
	if len(cfg.IncludePatterns) != 1 || cfg.IncludePatterns[0] != "**/*" {
		t.Errorf("IncludePatterns should keep its default, got %v", cfg.IncludePatterns)
	}
	if !cfg.ContinueOnError || cfg.MaxParallelProcesses != 4 {
		t.Error("unrelated fields lost their defaults")
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte("outputFormat: markdown\nretryCount: 2\nparallel: false\n")
	cfg, err := Parse(data, ".yml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if cfg.OutputFormat != "markdown" || cfg.RetryCount != 2 || cfg.Parallel {
		t.Errorf("unexpected config: format=%q retry=%d parallel=%v", cfg.OutputFormat, cfg.RetryCount, cfg.Parallel)
	}
	if cfg.HashAlgorithm != "md5" {
		t.Errorf("HashAlgorithm = %q, want default md5", cfg.HashAlgorithm)
	}
}

func TestParseEmptyAndMalformed(t *testing.T) {
	cfg, err := Parse(nil, ".json")
	if err != nil {
		t.Fatalf("Parse(nil) error = %v", err)
	}
	if cfg.OutputFormat != "text" {
		t.Errorf("OutputFormat = %q", cfg.OutputFormat)
	}

	if _, err := Parse([]byte(`{"outputFormat":`), ".json"); err == nil {
		t.Error("Parse() should fail on malformed JSON")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("MissingExplicitFile", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "missing.json")); err == nil {
			t.Error("Load() should fail for a missing file")
		}
	})

	t.Run("MissingDefaultFile", func(t *testing.T) {
		cfg, err := LoadOrDefault(filepath.Join(dir, "missing.json"))
		if err != nil {
			t.Fatalf("LoadOrDefault() error = %v", err)
		}
		if cfg.OutputFormat != "text" {
			t.Errorf("OutputFormat = %q", cfg.OutputFormat)
		}
	})

	t.Run("SaveRoundTrip", func(t *testing.T) {
		path := filepath.Join(dir, "nested", "codedigest.config.json")
		cfg := Default()
		cfg.OutputFormat = "xml"
		cfg.MaxDepth = 3
		if err := cfg.Save(path); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		loaded, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if loaded.OutputFormat != "xml" || loaded.MaxDepth != 3 {
			t.Errorf("loaded format=%q depth=%d", loaded.OutputFormat, loaded.MaxDepth)
		}
	})

	t.Run("YAMLFile", func(t *testing.T) {
		path := filepath.Join(dir, "cfg.yaml")
		if err := os.WriteFile(path, []byte("outputFormat: csv\n"), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.OutputFormat != "csv" {
			t.Errorf("OutputFormat = %q", cfg.OutputFormat)
		}
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"text", FormatText, false},
		{"JSON", FormatJSON, false},
		{" Markdown ", FormatMarkdown, false},
		{"tree", FormatTree, false},
		{"csv", FormatCSV, false},
		{"html", FormatHTML, false},
		{"xml", FormatXML, false},
		{"pdf", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				var ufe *UnknownFormatError
				if !errors.As(err, &ufe) {
					t.Fatalf("ParseFormat(%q) error = %v, want *UnknownFormatError", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		field  string
	}{
		{"Workers", func(c *Config) { c.MaxParallelProcesses = 0 }, "maxParallelProcesses"},
		{"SizeBounds", func(c *Config) { c.MinFileSize = 10; c.MaxFileSize = 5 }, "maxFileSize"},
		{"Depth", func(c *Config) { c.MaxDepth = -1 }, "maxDepth"},
		{"Retry", func(c *Config) { c.RetryCount = -1 }, "retryCount"},
		{"GroupingDepth", func(c *Config) { c.FileGroupingDepth = 0 }, "fileGroupingDepth"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() error = %v, want *ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
		})
	}

	t.Run("UnlimitedMaxFileSize", func(t *testing.T) {
		cfg := Default()
		cfg.MinFileSize = 10
		cfg.MaxFileSize = 0
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil for maxFileSize 0", err)
		}
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		cfg := Default()
		cfg.OutputFormat = "yaml"
		var ufe *UnknownFormatError
		if err := cfg.Validate(); !errors.As(err, &ufe) {
			t.Errorf("Validate() error = %v, want *UnknownFormatError", err)
		}
	})
}

func TestDurations(t *testing.T) {
	cfg := Default()
	cfg.Timeout = 1500
	cfg.RetryDelay = 10
	if cfg.TimeoutDuration() != 1500*time.Millisecond {
		t.Errorf("TimeoutDuration() = %v", cfg.TimeoutDuration())
	}
	if cfg.RetryDelayDuration() != 10*time.Millisecond {
		t.Errorf("RetryDelayDuration() = %v", cfg.RetryDelayDuration())
	}
}
