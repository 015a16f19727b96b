package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "station.json")
	body := `{"prefix": "FR", "baud_rate": 9600, "output_dir": "out"}`
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Prefix != "FR" {
		t.Errorf("Prefix = %q, want FR", cfg.Prefix)
	}
	if cfg.BaudRate != 9600 {
		t.Errorf("BaudRate = %d, want 9600", cfg.BaudRate)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("OutputDir = %q, want out", cfg.OutputDir)
	}
	// Omitted fields keep their defaults.
	if cfg.LabelWidth != 543 || cfg.LabelHeight != 248 {
		t.Errorf("label dims = %dx%d, want defaults 543x248", cfg.LabelWidth, cfg.LabelHeight)
	}
	if cfg.Terminator != "\r" {
		t.Errorf("Terminator = %q, want \\r", cfg.Terminator)
	}
}

func TestLoadRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()

	t.Run("wrong extension", func(t *testing.T) {
		path := filepath.Join(dir, "station.yaml")
		os.WriteFile(path, []byte("{}"), 0644)
		if _, err := Load(path); err == nil {
			t.Error("Load() accepted non-json extension")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := Load(filepath.Join(dir, "absent.json")); err == nil {
			t.Error("Load() accepted missing file")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		os.WriteFile(path, []byte("{nope"), 0644)
		if _, err := Load(path); err == nil {
			t.Error("Load() accepted malformed JSON")
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.json")
		os.WriteFile(path, []byte(`{"label_width": -1}`), 0644)
		if _, err := Load(path); err == nil {
			t.Error("Load() accepted invalid configuration")
		}
	})
}

func TestValidate(t *testing.T) {
	mutations := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero baud", func(c *Config) { c.BaudRate = 0 }},
		{"bad timeout", func(c *Config) { c.ReadTimeout = "fast" }},
		{"empty terminator", func(c *Config) { c.Terminator = "" }},
		{"zero max pending", func(c *Config) { c.MaxPending = 0 }},
		{"zero width", func(c *Config) { c.LabelWidth = 0 }},
		{"margin swallows label", func(c *Config) { c.Margin = 300 }},
		{"zero module width", func(c *Config) { c.ModuleWidth = 0 }},
		{"negative quiet zone", func(c *Config) { c.QuietZone = -1 }},
		{"zero caption size", func(c *Config) { c.CaptionSize = 0 }},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }},
		{"zero dpi", func(c *Config) { c.OutputDPI = 0 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "chatty" }},
	}

	for _, tt := range mutations {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() = nil, want error")
			}
		})
	}
}

func TestGetReadTimeout(t *testing.T) {
	cfg := Default()
	if got := cfg.GetReadTimeout(); got != 100*time.Millisecond {
		t.Errorf("GetReadTimeout() = %v, want 100ms", got)
	}
	cfg.ReadTimeout = "250ms"
	if got := cfg.GetReadTimeout(); got != 250*time.Millisecond {
		t.Errorf("GetReadTimeout() = %v, want 250ms", got)
	}

	// An unvalidated config with a broken duration falls back to the
	// default poll window instead of a zero timeout.
	cfg.ReadTimeout = "fast"
	if got := cfg.GetReadTimeout(); got != 100*time.Millisecond {
		t.Errorf("GetReadTimeout() fallback = %v, want 100ms", got)
	}
}
