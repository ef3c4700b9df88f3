package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestManager_ReadWrite_RoundTrip(t *testing.T) {
	original := &Config{
		BaseDir:   "/home/user/.local/share/exifsort",
		LogDir:    "/home/user/.local/share/exifsort/log",
		LogLevel:  "debug",
		Workers:   6,
		ReadLimit: 65536,
		Link:      LinkConfig{Type: "hardlink"},
		Naming:    NamingConfig{Clock: "24h", Disambiguator: "ordinal"},
		Filesystem: FilesystemConfig{
			Ignore: []string{"*.xmp", "@eaDir"},
		},
	}

	var buf bytes.Buffer
	m := &Manager{}

	if err := m.Write(&buf, original); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := m.Read(&buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	if got.LogDir != original.LogDir {
		t.Errorf("LogDir = %q, want %q", got.LogDir, original.LogDir)
	}
	if got.Workers != 6 {
		t.Errorf("Workers = %d, want 6", got.Workers)
	}
	if got.ReadLimit != 65536 {
		t.Errorf("ReadLimit = %d, want 65536", got.ReadLimit)
	}
	if got.Link.Type != "hardlink" {
		t.Errorf("Link.Type = %q, want hardlink", got.Link.Type)
	}
	if got.Naming != original.Naming {
		t.Errorf("Naming = %+v, want %+v", got.Naming, original.Naming)
	}
	if len(got.Filesystem.Ignore) != 2 {
		t.Fatalf("len(Filesystem.Ignore) = %d, want 2", len(got.Filesystem.Ignore))
	}
}

func TestManager_Read(t *testing.T) {
	t.Run("partial file leaves other fields unset", func(t *testing.T) {
		cfg, err := (&Manager{}).Read(strings.NewReader("workers = 2\n[link]\ntype = \"copy\"\n"))
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
		if cfg.Workers != 2 || cfg.Link.Type != "copy" || cfg.Naming.Clock != "" {
			t.Errorf("cfg = %+v", cfg)
		}
	})

	t.Run("rejects unknown keys", func(t *testing.T) {
		_, err := (&Manager{}).Read(strings.NewReader("wrokers = 2\n"))
		if err == nil {
			t.Fatal("Read() expected error for misspelled key")
		}
	})

	t.Run("rejects malformed toml", func(t *testing.T) {
		if _, err := (&Manager{}).Read(strings.NewReader("workers = [")); err == nil {
			t.Fatal("Read() expected error")
		}
	})
}

func TestNewConfig(t *testing.T) {
	cfg := NewConfig("/data/exifsort")

	if cfg.BaseDir != "/data/exifsort" {
		t.Errorf("BaseDir = %q, want /data/exifsort", cfg.BaseDir)
	}
	if cfg.LogDir != "/data/exifsort/log" {
		t.Errorf("LogDir = %q, want /data/exifsort/log", cfg.LogDir)
	}
	if cfg.ReadLimit != DefaultReadLimit {
		t.Errorf("ReadLimit = %d, want %d", cfg.ReadLimit, DefaultReadLimit)
	}
	if cfg.Link.Type != "symlink" || cfg.Naming.Clock != "12h" || cfg.Naming.Disambiguator != "size" {
		t.Errorf("defaults = %+v %+v", cfg.Link, cfg.Naming)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"negative read limit", func(c *Config) { c.ReadLimit = -5 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
		{"unknown link type", func(c *Config) { c.Link.Type = "junction" }},
		{"unknown clock", func(c *Config) { c.Naming.Clock = "36h" }},
		{"unknown disambiguator", func(c *Config) { c.Naming.Disambiguator = "random" }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig("/data")
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() expected error")
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		dir := t.TempDir()
		cfg, err := Load(filepath.Join(dir, "absent.toml"), dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.LogDir != filepath.Join(dir, "log") {
			t.Errorf("LogDir = %q", cfg.LogDir)
		}
		if len(cfg.Filesystem.Ignore) == 0 {
			t.Error("default ignore patterns missing")
		}
	})

	t.Run("fills gaps in a partial file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "exifsort.toml")
		if err := os.WriteFile(path, []byte("[naming]\nclock = \"24h\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		cfg, err := Load(path, dir)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Naming.Clock != "24h" {
			t.Errorf("Naming.Clock = %q, want 24h", cfg.Naming.Clock)
		}
		if cfg.Naming.Disambiguator != "size" || cfg.Link.Type != "symlink" || cfg.ReadLimit != DefaultReadLimit {
			t.Errorf("defaults not applied: %+v", cfg)
		}
	})

	t.Run("invalid values are rejected", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "exifsort.toml")
		if err := os.WriteFile(path, []byte("[link]\ntype = \"teleport\"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Load(path, dir); err == nil {
			t.Fatal("Load() expected error")
		}
	})
}

func TestInit(t *testing.T) {
	t.Run("creates config file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "nested", "exifsort.toml")

		if err := Init(path, NewConfig(dir)); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		got, err := ReadFromFile(path)
		if err != nil {
			t.Fatalf("ReadFromFile() error = %v", err)
		}
		if got.Link.Type != "symlink" {
			t.Errorf("Link.Type = %q, want symlink", got.Link.Type)
		}
	})

	t.Run("fails if file already exists", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "exifsort.toml")
		cfg := NewConfig(dir)

		if err := Init(path, cfg); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}
		if err := Init(path, cfg); err == nil {
			t.Fatal("second Init() expected error")
		}
	})
}

func TestReadFromFile_Missing(t *testing.T) {
	if _, err := ReadFromFile("/nonexistent/path/exifsort.toml"); err == nil {
		t.Fatal("ReadFromFile() expected error for missing file")
	}
}
