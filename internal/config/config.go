package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all game configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Render   RenderConfig   `yaml:"render"`
	Quality  QualityConfig  `yaml:"quality"`
	Movement MovementConfig `yaml:"movement"`
	Textures TexturesConfig `yaml:"textures"`
	Colors   ColorsConfig   `yaml:"colors"`
	Audio    AudioConfig    `yaml:"audio"`
	Levels   LevelsConfig   `yaml:"levels"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
	PerfDebug    bool   `yaml:"perf_debug"`
}

type RenderConfig struct {
	// ViewDistance is the distance in tiles at which flat shading reaches BrightnessMin
	ViewDistance  float64 `yaml:"view_distance"`
	BrightnessMin float64 `yaml:"brightness_min"`
	Parallel      bool    `yaml:"parallel"`
	Workers       int     `yaml:"workers"` // 0 means one per CPU
}

type QualityConfig struct {
	TargetFPSLow  float64       `yaml:"target_fps_low"`
	TargetFPSHigh float64       `yaml:"target_fps_high"`
	InitialStride int           `yaml:"initial_stride"`
	MinStride     int           `yaml:"min_stride"`
	MaxStride     int           `yaml:"max_stride"`
	Window        time.Duration `yaml:"window"`
	BaseFOV       float64       `yaml:"base_fov"`
	TrapFOV       float64       `yaml:"trap_fov"`
	MinFOV        float64       `yaml:"min_fov"`
	MaxFOV        float64       `yaml:"max_fov"`
	FOVStep       float64       `yaml:"fov_step"`
}

type MovementConfig struct {
	MoveSpeed        float64 `yaml:"move_speed"`    // tiles per tick
	RotationSpeed    float64 `yaml:"rotation_speed"` // radians per tick for keyboard turning
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`
	SprintMultiplier float64 `yaml:"sprint_multiplier"`
	MaxStamina       float64 `yaml:"max_stamina"`
	StaminaDrain     float64 `yaml:"stamina_drain"`    // per second while sprinting
	StaminaRecovery  float64 `yaml:"stamina_recovery"` // per second after the cooldown
	RegenCooldown    float64 `yaml:"regen_cooldown"`   // seconds
}

type TexturesConfig struct {
	Wall  string  `yaml:"wall"`
	Floor string  `yaml:"floor"`
	Sky   string  `yaml:"sky"`
	Scale float64 `yaml:"scale"`
}

type ColorsConfig struct {
	Sky   [3]int `yaml:"sky"`
	Wall  [3]int `yaml:"wall"`
	Floor [3]int `yaml:"floor"`
}

type AudioConfig struct {
	Music  string  `yaml:"music"`
	Volume float64 `yaml:"volume"` // beep volume exponent, 0 is unchanged
	Muted  bool    `yaml:"muted"`
}

type LevelsConfig struct {
	Dir     string `yaml:"dir"`
	Default string `yaml:"default"`
	Palette string `yaml:"palette"`
}

// TileConfig is the tile palette document (assets/tiles.yaml)
type TileConfig struct {
	TileData map[string]TileData `yaml:"tiles"`
}

// TileData describes one tile kind in the palette
type TileData struct {
	Name       string `yaml:"name"`
	Letter     string `yaml:"letter"`
	FloorColor [3]int `yaml:"floor_color"`
}

// DefaultConfig returns the values the game ships with.
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  800,
			ScreenHeight: 600,
			WindowTitle:  "Gridcaster",
			Resizable:    false,
		},
		Render: RenderConfig{
			ViewDistance:  16,
			BrightnessMin: 0.15,
			Parallel:      true,
		},
		Quality: QualityConfig{
			TargetFPSLow:  50,
			TargetFPSHigh: 58,
			InitialStride: 2,
			MinStride:     1,
			MaxStride:     8,
			Window:        time.Second,
			BaseFOV:       60,
			TrapFOV:       120,
			MinFOV:        30,
			MaxFOV:        120,
			FOVStep:       1,
		},
		Movement: MovementConfig{
			MoveSpeed:        0.02,
			RotationSpeed:    0.04,
			MouseSensitivity: 0.001,
			SprintMultiplier: 4,
			MaxStamina:       50,
			StaminaDrain:     15,
			StaminaRecovery:  30,
			RegenCooldown:    2.5,
		},
		Textures: TexturesConfig{
			Wall:  "textures/brick3.jpg",
			Floor: "textures/floor.jpg",
			Sky:   "textures/sky1.jpg",
			Scale: 1.0,
		},
		Colors: ColorsConfig{
			Sky:   [3]int{135, 206, 235},
			Wall:  [3]int{160, 160, 160},
			Floor: [3]int{110, 110, 110},
		},
		Audio: AudioConfig{
			Music: "sounds/background-music2.wav",
		},
		Levels: LevelsConfig{
			Dir:     "levels",
			Default: "demo",
			Palette: "assets/tiles.yaml",
		},
	}
}

// LoadConfig loads the configuration from a YAML file. Keys missing from the
// file keep their DefaultConfig values.
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate rejects values the renderer and quality controller cannot run with.
func (c *Config) Validate() error {
	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidConfig, c.Display.ScreenWidth, c.Display.ScreenHeight)
	}
	q := c.Quality
	if q.MinStride < 1 {
		return fmt.Errorf("%w: min_stride %d < 1", ErrInvalidConfig, q.MinStride)
	}
	if q.MaxStride < q.MinStride {
		return fmt.Errorf("%w: max_stride %d < min_stride %d", ErrInvalidConfig, q.MaxStride, q.MinStride)
	}
	if q.InitialStride < q.MinStride || q.InitialStride > q.MaxStride {
		return fmt.Errorf("%w: initial_stride %d outside [%d,%d]", ErrInvalidConfig, q.InitialStride, q.MinStride, q.MaxStride)
	}
	if q.TargetFPSLow > q.TargetFPSHigh {
		return fmt.Errorf("%w: target_fps_low %.1f > target_fps_high %.1f", ErrInvalidConfig, q.TargetFPSLow, q.TargetFPSHigh)
	}
	if q.MinFOV <= 0 || q.MaxFOV >= 180 || q.MinFOV > q.MaxFOV {
		return fmt.Errorf("%w: fov range [%.1f,%.1f]", ErrInvalidConfig, q.MinFOV, q.MaxFOV)
	}
	if q.FOVStep <= 0 {
		return fmt.Errorf("%w: fov_step must be positive", ErrInvalidConfig)
	}
	if q.Window <= 0 {
		return fmt.Errorf("%w: window must be positive", ErrInvalidConfig)
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}
