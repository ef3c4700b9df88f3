package config

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// DefaultReadLimit is how many leading bytes of each file are read for
// metadata when read_limit is unset.
const DefaultReadLimit int64 = 20 * 1048576

// Config represents the main configuration for exifsort.
type Config struct {
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	LogLevel   string           `toml:"log_level"` // "debug", "info" (default), "warn" or "error"
	Workers    int              `toml:"workers"`   // 0 = one per CPU
	ReadLimit  int64            `toml:"read_limit"`
	Link       LinkConfig       `toml:"link"`
	Naming     NamingConfig     `toml:"naming"`
	Filesystem FilesystemConfig `toml:"filesystem"`
}

// LinkConfig selects how destinations point back at source files.
type LinkConfig struct {
	Type string `toml:"type"` // "symlink" (default), "hardlink" or "copy"
}

// NamingConfig controls destination file names.
type NamingConfig struct {
	Clock         string `toml:"clock"`         // "12h" (default) or "24h"
	Disambiguator string `toml:"disambiguator"` // "size" (default) or "ordinal"
}

// FilesystemConfig holds filesystem-related settings.
type FilesystemConfig struct {
	Ignore []string `toml:"ignore"`
}

// defaultIgnore skips NAS thumbnail folders, OS metadata and trash.
var defaultIgnore = []string{
	".DS_Store",
	"Thumbs.db",
	"@eaDir",
	".Trashes",
	".Spotlight-V100",
	"$RECYCLE.BIN",
}

// NewConfig creates a new Config with defaults rooted at baseDir.
func NewConfig(baseDir string) *Config {
	return &Config{
		BaseDir:   baseDir,
		LogDir:    filepath.Join(baseDir, "log"),
		LogLevel:  "info",
		ReadLimit: DefaultReadLimit,
		Link:      LinkConfig{Type: "symlink"},
		Naming:    NamingConfig{Clock: "12h", Disambiguator: "size"},
		Filesystem: FilesystemConfig{
			Ignore: append([]string(nil), defaultIgnore...),
		},
	}
}

// ApplyDefaults fills unset fields from NewConfig(baseDir).
func (c *Config) ApplyDefaults(baseDir string) {
	d := NewConfig(baseDir)
	if c.BaseDir == "" {
		c.BaseDir = d.BaseDir
	}
	if c.LogDir == "" {
		c.LogDir = filepath.Join(c.BaseDir, "log")
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.ReadLimit == 0 {
		c.ReadLimit = d.ReadLimit
	}
	if c.Link.Type == "" {
		c.Link.Type = d.Link.Type
	}
	if c.Naming.Clock == "" {
		c.Naming.Clock = d.Naming.Clock
	}
	if c.Naming.Disambiguator == "" {
		c.Naming.Disambiguator = d.Naming.Disambiguator
	}
	if c.Filesystem.Ignore == nil {
		c.Filesystem.Ignore = d.Filesystem.Ignore
	}
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.ReadLimit < 0 {
		errs = append(errs, fmt.Errorf("read_limit must not be negative, got %d", c.ReadLimit))
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	switch c.Link.Type {
	case "", "symlink", "hardlink", "copy":
	default:
		errs = append(errs, fmt.Errorf("unknown link type %q", c.Link.Type))
	}
	switch c.Naming.Clock {
	case "", "12h", "24h":
	default:
		errs = append(errs, fmt.Errorf("unknown naming clock %q", c.Naming.Clock))
	}
	switch c.Naming.Disambiguator {
	case "", "size", "ordinal":
	default:
		errs = append(errs, fmt.Errorf("unknown naming disambiguator %q", c.Naming.Disambiguator))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	var cfg Config
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return &cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads the config at path, fills defaults and validates the result.
// A missing file is not an error: the defaults for baseDir are used.
func Load(path, baseDir string) (*Config, error) {
	cfg, err := ReadFromFile(path)
	if errors.Is(err, iofs.ErrNotExist) {
		cfg = NewConfig(baseDir)
	} else if err != nil {
		return nil, err
	}
	cfg.ApplyDefaults(baseDir)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the provided Config.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
