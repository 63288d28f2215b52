// Package config loads conversion profiles for img2adofai.
//
// A profile is a single YAML file named by the --config flag or the
// IMG2ADOFAI_CONFIG environment variable. There is no discovery: without
// either, the built-in defaults apply. Command-line flags override values
// from the file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/wbrown/img2adofai"
)

// EnvVar names the environment variable holding the profile path.
const EnvVar = "IMG2ADOFAI_CONFIG"

// Config is a conversion profile.
type Config struct {
	// MaxPixels caps the pixel count of every converted image or frame.
	MaxPixels int `yaml:"max_pixels"`

	// TargetFPS is the rate at which video frames are sampled.
	TargetFPS float64 `yaml:"target_fps"`

	// MaxFrames limits how many video frames are sampled; 0 means no limit.
	MaxFrames int `yaml:"max_frames"`

	// DiffThreshold is the color distance below which a tile keeps its
	// color between frames.
	DiffThreshold float64 `yaml:"diff_threshold"`

	// Palette configures the optional color reduction of still images.
	Palette PaletteConfig `yaml:"palette"`

	// CameraEvent adds an explicit MoveCamera event to generated levels.
	CameraEvent bool `yaml:"camera_event"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Jobs is the number of inputs converted concurrently.
	Jobs int `yaml:"jobs"`
}

// PaletteConfig configures palette reduction.
type PaletteConfig struct {
	// Colors is the palette size; 0 disables reduction.
	Colors int `yaml:"colors"`

	// Method is kmeans or dominant.
	Method string `yaml:"method"`
}

// Default returns the built-in profile.
func Default() *Config {
	return &Config{
		MaxPixels:     300000,
		TargetFPS:     10,
		MaxFrames:     100,
		DiffThreshold: img2adofai.DefaultDiffThreshold,
		Palette: PaletteConfig{
			Colors: 0,
			Method: "kmeans",
		},
		LogLevel: "info",
		Jobs:     1,
	}
}

// Load loads the profile named by IMG2ADOFAI_CONFIG, or the defaults when
// the variable is not set.
func Load() (*Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads a profile from path. Keys missing from the file keep
// their default values.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the profile for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.MaxPixels <= 0 {
		errs = append(errs, fmt.Errorf("max_pixels must be positive, got %d", c.MaxPixels))
	}
	if c.TargetFPS <= 0 {
		errs = append(errs, fmt.Errorf("target_fps must be positive, got %v", c.TargetFPS))
	}
	if c.MaxFrames < 0 {
		errs = append(errs, fmt.Errorf("max_frames must not be negative, got %d", c.MaxFrames))
	}
	if c.DiffThreshold < 0 {
		errs = append(errs, fmt.Errorf("diff_threshold must not be negative, got %v", c.DiffThreshold))
	}
	if c.Palette.Colors < 0 {
		errs = append(errs, fmt.Errorf("palette.colors must not be negative, got %d", c.Palette.Colors))
	}
	if _, err := img2adofai.ParsePaletteMethod(c.Palette.Method); err != nil {
		errs = append(errs, fmt.Errorf("palette.method: %w", err))
	}
	if _, err := c.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.Jobs < 1 {
		errs = append(errs, fmt.Errorf("jobs must be at least 1, got %d", c.Jobs))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SlogLevel parses LogLevel.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

// PaletteMethod returns the parsed palette method.
func (c *Config) PaletteMethod() img2adofai.PaletteMethod {
	m, err := img2adofai.ParsePaletteMethod(c.Palette.Method)
	if err != nil {
		return img2adofai.PaletteKMeans
	}
	return m
}
