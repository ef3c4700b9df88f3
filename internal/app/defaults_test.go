package app

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetDefaults(t *testing.T) {
	t.Run("uses env vars when set", func(t *testing.T) {
		t.Setenv("EXIFSORT_CONFIG_PATH", "/custom/exifsort.toml")
		t.Setenv("EXIFSORT_HOME", "/custom/exifsort")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		if defaults["config_path"] != "/custom/exifsort.toml" {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], "/custom/exifsort.toml")
		}
		if defaults["base_dir"] != "/custom/exifsort" {
			t.Errorf("base_dir = %q, want %q", defaults["base_dir"], "/custom/exifsort")
		}
		if defaults["log_dir"] != "/custom/exifsort/log" {
			t.Errorf("log_dir = %q, want %q", defaults["log_dir"], "/custom/exifsort/log")
		}
	})

	t.Run("falls back to home dir defaults", func(t *testing.T) {
		t.Setenv("EXIFSORT_CONFIG_PATH", "")
		t.Setenv("EXIFSORT_HOME", "")

		defaults, err := GetDefaults()
		if err != nil {
			t.Fatalf("GetDefaults() error = %v", err)
		}

		homeDir, _ := os.UserHomeDir()

		if want := filepath.Join(homeDir, ".config", "exifsort.toml"); defaults["config_path"] != want {
			t.Errorf("config_path = %q, want %q", defaults["config_path"], want)
		}
		wantBase := filepath.Join(homeDir, ".local", "share", "exifsort")
		if defaults["base_dir"] != wantBase {
			t.Errorf("base_dir = %q, want %q", defaults["base_dir"], wantBase)
		}
		if want := filepath.Join(wantBase, "log"); defaults["log_dir"] != want {
			t.Errorf("log_dir = %q, want %q", defaults["log_dir"], want)
		}
	})
}
