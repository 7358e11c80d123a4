package config

import (
	"io"
	"log/slog"
	"net"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/adrg/xdg"

	"github.com/tsawler/bionic"
)

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "bionic"

	// DefaultHost binds the server to loopback only.
	DefaultHost = "127.0.0.1"

	// DefaultPort is the port the server listens on.
	DefaultPort = 3003

	// DefaultMaxFileSize is the largest upload the server accepts.
	DefaultMaxFileSize = 50 * 1024 * 1024 // 50MB

	// DefaultOverlapThreshold is the margin added around accepted elements.
	DefaultOverlapThreshold = 1.0

	// DefaultHeaderFooterMargin is the height of the header and footer bands.
	DefaultHeaderFooterMargin = 72.0
)

// Config holds the settings of the command and server.
type Config struct {
	Server      Server    `yaml:"server"`
	MaxFileSize int64     `yaml:"max_file_size"`
	Jobs        int       `yaml:"jobs"`
	OutputDir   string    `yaml:"output_dir"`
	Log         Log       `yaml:"log"`
	Converter   Converter `yaml:"converter"`
}

// Server is the HTTP listener configuration.
type Server struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Log selects the level and handler of the structured logger.
type Log struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Converter tunes the conversion. Pointers distinguish "unset" from false.
type Converter struct {
	OverlapThreshold   float64 `yaml:"overlap_threshold"`
	HeaderFooterMargin float64 `yaml:"header_footer_margin"`
	Compress           *bool   `yaml:"compress"`
	Optimize           *bool   `yaml:"optimize"`
	Validate           bool    `yaml:"validate"`
	MirrorFonts        *bool   `yaml:"mirror_fonts"`
}

// NewConfig returns a Config with every default filled in.
func NewConfig() *Config {
	return &Config{
		Server: Server{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		MaxFileSize: DefaultMaxFileSize,
		Jobs:        runtime.NumCPU(),
		OutputDir:   XDGDataDir(),
		Log: Log{
			Level:  "info",
			Format: "text",
		},
		Converter: Converter{
			OverlapThreshold:   DefaultOverlapThreshold,
			HeaderFooterMargin: DefaultHeaderFooterMargin,
		},
	}
}

// XDGDataDir returns the default directory for converted files.
// On Linux: ~/.local/share/bionic
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the directory searched for config.yaml.
// On Linux: ~/.config/bionic
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Addr returns the server listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Validate checks the configuration and returns the first problem found.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return ErrInvalidPort
	}
	if c.MaxFileSize <= 0 {
		return ErrInvalidMaxFileSize
	}
	if c.Jobs <= 0 {
		return ErrInvalidJobs
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return ErrInvalidLogFormat
	}
	if c.Converter.OverlapThreshold < 0 || c.Converter.HeaderFooterMargin < 0 {
		return ErrInvalidThreshold
	}
	return nil
}

// Apply sets the converter tuning on conv.
func (c *Config) Apply(conv *bionic.Converter) *bionic.Converter {
	cc := c.Converter
	conv = conv.OverlapThreshold(cc.OverlapThreshold).HeaderFooterMargin(cc.HeaderFooterMargin)
	if cc.Compress != nil {
		conv = conv.Compress(*cc.Compress)
	}
	if cc.Optimize != nil {
		conv = conv.Optimize(*cc.Optimize)
	}
	if cc.MirrorFonts != nil {
		conv = conv.MirrorFonts(*cc.MirrorFonts)
	}
	if cc.Validate {
		conv = conv.Validate()
	}
	return conv
}

// NewLogger builds the structured logger described by the Log section.
func (c *Config) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(c.Log.Format) {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, ErrInvalidLogFormat
	}
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, ErrInvalidLogLevel
	}
}
