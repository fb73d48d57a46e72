// Package config holds the runtime configuration of the cipherlab binary.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	flags "github.com/jessevdk/go-flags"

	"github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab/logging"
	"github.com/hsiuhsiu/cipherlab-go/pkg/cipherlab/sdes"
)

// Config is parsed by go-flags; every option can also come from a
// CIPHERLAB_* environment variable.
type Config struct {
	Listen          string        `long:"listen" env:"CIPHERLAB_LISTEN" default:"127.0.0.1:8000" description:"Address the HTTP API listens on"`
	LogLevel        string        `long:"log-level" env:"CIPHERLAB_LOG_LEVEL" default:"info" description:"Log level: debug, info, warn or error"`
	LogFormat       string        `long:"log-format" env:"CIPHERLAB_LOG_FORMAT" default:"text" choice:"text" choice:"json" description:"Log output format"`
	MaxBodyBytes    int64         `long:"max-body-bytes" env:"CIPHERLAB_MAX_BODY_BYTES" default:"65536" description:"Largest accepted request body"`
	ReadTimeout     time.Duration `long:"read-timeout" env:"CIPHERLAB_READ_TIMEOUT" default:"10s" description:"HTTP read timeout"`
	WriteTimeout    time.Duration `long:"write-timeout" env:"CIPHERLAB_WRITE_TIMEOUT" default:"10s" description:"HTTP write timeout"`
	ShutdownTimeout time.Duration `long:"shutdown-timeout" env:"CIPHERLAB_SHUTDOWN_TIMEOUT" default:"5s" description:"Grace period for in-flight requests on shutdown"`
}

// Default returns the configuration used when no flags are given. It mirrors
// the struct tag defaults.
func Default() Config {
	return Config{
		Listen:          "127.0.0.1:8000",
		LogLevel:        "info",
		LogFormat:       "text",
		MaxBodyBytes:    64 << 10,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}

// NewParser returns a go-flags parser bound to cfg. Callers may register
// subcommands on it before parsing.
func NewParser(cfg *Config, options flags.Options) *flags.Parser {
	return flags.NewParser(cfg, options)
}

// Parse parses args (without the program name) into a validated Config and
// returns the arguments that were not consumed.
func Parse(args []string) (*Config, []string, error) {
	cfg := Default()
	rest, err := NewParser(&cfg, flags.HelpFlag|flags.PassDoubleDash).ParseArgs(args)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return &cfg, rest, nil
}

// Validate checks ranges and formats that go-flags cannot express.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	if _, _, err := net.SplitHostPort(c.Listen); err != nil {
		return fmt.Errorf("listen %q: %w", c.Listen, err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("log format %q: want text or json", c.LogFormat)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max body bytes must be positive, got %d", c.MaxBodyBytes)
	}
	for name, d := range map[string]time.Duration{
		"read timeout":     c.ReadTimeout,
		"write timeout":    c.WriteTimeout,
		"shutdown timeout": c.ShutdownTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	return nil
}

// String summarizes the configuration for the startup log line.
func (c *Config) String() string {
	return fmt.Sprintf("listen=%s log=%s/%s max-body=%d read=%s write=%s shutdown=%s",
		c.Listen, c.LogFormat, c.LogLevel, c.MaxBodyBytes,
		c.ReadTimeout, c.WriteTimeout, c.ShutdownTimeout)
}

// LoadTables reads an S-DES table set from a JSON file laid out like the API
// request body. Tables missing from the file keep their default values. The
// result is validated before it is returned.
func LoadTables(path string) (*sdes.Tables, error) {
	absPath, err := SecurePath(path)
	if err != nil {
		return nil, fmt.Errorf("secure path: %w", err)
	}
	data, err := os.ReadFile(absPath) // #nosec G304 -- absPath validated by SecurePath
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	tables := sdes.DefaultTables()
	if err := json.Unmarshal(data, tables); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	return tables, nil
}

// SecurePath resolves path and rejects it if it escapes the working
// directory.
func SecurePath(path string) (string, error) {
	clean := filepath.Clean(path)
	absPath, err := filepath.Abs(clean)
	if err != nil {
		return "", fmt.Errorf("absolute path: %w", err)
	}
	base, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	rel, err := filepath.Rel(base, absPath)
	if err != nil {
		return "", fmt.Errorf("relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", fmt.Errorf("path %q escapes working directory", path)
	}
	return absPath, nil
}
