package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("Default config should validate, got %v", err)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeTempConfig(t, `display:
  screen_width: 320
  screen_height: 200
quality:
  initial_stride: 3
  window: 500ms
textures:
  wall: "custom/wall.png"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.GetScreenWidth() != 320 || cfg.GetScreenHeight() != 200 {
		t.Errorf("Expected 320x200, got %dx%d", cfg.GetScreenWidth(), cfg.GetScreenHeight())
	}
	if cfg.Quality.InitialStride != 3 {
		t.Errorf("Expected initial stride 3, got %d", cfg.Quality.InitialStride)
	}
	if cfg.Quality.Window != 500*time.Millisecond {
		t.Errorf("Expected 500ms window, got %v", cfg.Quality.Window)
	}
	if cfg.Textures.Wall != "custom/wall.png" {
		t.Errorf("Expected wall texture override, got %q", cfg.Textures.Wall)
	}
	// Untouched keys keep their defaults
	if cfg.Quality.TargetFPSLow != 50 || cfg.Quality.TargetFPSHigh != 58 {
		t.Errorf("Expected default FPS band 50..58, got %.0f..%.0f", cfg.Quality.TargetFPSLow, cfg.Quality.TargetFPSHigh)
	}
	if cfg.Textures.Floor != "textures/floor.jpg" {
		t.Errorf("Expected default floor texture, got %q", cfg.Textures.Floor)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero width", "display:\n  screen_width: 0\n"},
		{"zero stride", "quality:\n  min_stride: 0\n  initial_stride: 0\n"},
		{"inverted band", "quality:\n  target_fps_low: 70\n  target_fps_high: 40\n"},
		{"fov too wide", "quality:\n  max_fov: 180\n"},
		{"stride ceiling below floor", "quality:\n  max_stride: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeTempConfig(t, tt.body))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestMustLoadConfigPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected MustLoadConfig to panic on a missing file")
		}
	}()
	MustLoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
}
