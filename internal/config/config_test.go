package config

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tsawler/bionic"
)

// TestNewConfig verifies the defaults.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	if cfg.Addr() != "127.0.0.1:3003" {
		t.Errorf("expected address 127.0.0.1:3003, got %s", cfg.Addr())
	}
	if cfg.MaxFileSize != 50*1024*1024 {
		t.Errorf("expected MaxFileSize 50MB, got %d", cfg.MaxFileSize)
	}
	if cfg.Jobs <= 0 {
		t.Errorf("expected positive Jobs, got %d", cfg.Jobs)
	}
	if cfg.OutputDir != XDGDataDir() || !strings.HasSuffix(cfg.OutputDir, "bionic") {
		t.Errorf("unexpected OutputDir %q", cfg.OutputDir)
	}
	if cfg.Converter.OverlapThreshold != 1 || cfg.Converter.HeaderFooterMargin != 72 {
		t.Errorf("unexpected converter defaults %+v", cfg.Converter)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to be valid, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }, ErrInvalidPort},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, ErrInvalidPort},
		{"max file size", func(c *Config) { c.MaxFileSize = 0 }, ErrInvalidMaxFileSize},
		{"jobs", func(c *Config) { c.Jobs = -1 }, ErrInvalidJobs},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, ErrInvalidLogLevel},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, ErrInvalidLogFormat},
		{"threshold", func(c *Config) { c.Converter.OverlapThreshold = -1 }, ErrInvalidThreshold},
		{"margin", func(c *Config) { c.Converter.HeaderFooterMargin = -0.5 }, ErrInvalidThreshold},
		{"uppercase level", func(c *Config) { c.Log.Level = "DEBUG" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := NewConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `server:
  port: 8080
jobs: 2
log:
  level: debug
  format: json
converter:
  overlap_threshold: 2.5
  optimize: false
  validate: true
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Addr() != "127.0.0.1:8080" {
		t.Errorf("expected the default host kept, got %s", cfg.Addr())
	}
	if cfg.Jobs != 2 || cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("unexpected values %+v", cfg)
	}
	if cfg.MaxFileSize != DefaultMaxFileSize {
		t.Errorf("expected the default max file size, got %d", cfg.MaxFileSize)
	}
	if cfg.Converter.OverlapThreshold != 2.5 || cfg.Converter.HeaderFooterMargin != 72 {
		t.Errorf("unexpected converter %+v", cfg.Converter)
	}
	if cfg.Converter.Optimize == nil || *cfg.Converter.Optimize {
		t.Error("expected optimize explicitly disabled")
	}
	if cfg.Converter.Compress != nil {
		t.Error("expected compress left unset")
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound, got %v", err)
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("server: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected a parse error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("jobs: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); !errors.Is(err, ErrInvalidJobs) {
		t.Errorf("expected ErrInvalidJobs, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	if _, err := Resolve(filepath.Join(t.TempDir(), "nope.yaml")); !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("expected ErrConfigNotFound for an explicit path, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("jobs: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.Jobs != 3 {
		t.Errorf("expected jobs 3, got %d", cfg.Jobs)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	if got := FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); got != "" {
		t.Errorf("expected empty path, got %q", got)
	}

	path := filepath.Join(t.TempDir(), "here.yaml")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	if got := FindConfigFile(path); got != path {
		t.Errorf("expected %q, got %q", path, got)
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	cfg := NewConfig()
	cfg.Log = Log{Level: "warn", Format: "json"}

	logger, err := cfg.NewLogger(&buf)
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "file", "a.pdf")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("expected info to be filtered at warn level")
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"file":"a.pdf"`) {
		t.Errorf("expected a JSON record, got %q", out)
	}

	cfg.Log.Format = "yaml"
	if _, err := cfg.NewLogger(&buf); !errors.Is(err, ErrInvalidLogFormat) {
		t.Errorf("expected ErrInvalidLogFormat, got %v", err)
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	off := false
	cfg := NewConfig()
	cfg.Converter.Optimize = &off
	cfg.Converter.Validate = true

	conv := cfg.Apply(bionic.FromBytes([]byte("not a pdf")))
	if _, _, err := conv.Convert(context.Background()); !errors.Is(err, bionic.ErrNotPDF) {
		t.Errorf("expected the configured converter to reject non-PDF input, got %v", err)
	}
}
