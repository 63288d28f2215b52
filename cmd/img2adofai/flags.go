package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"

	"github.com/wbrown/img2adofai"
	"github.com/wbrown/img2adofai/config"
)

// convertFlags are the flags shared by the conversion commands. Their
// defaults mirror config.Default; only flags set on the command line
// override the loaded profile.
type convertFlags struct {
	configPath string
	output     string
	maxPixels  int
	targetFPS  float64
	maxFrames  int
	threshold  float64
	colors     int
	method     string
	camera     bool
	logLevel   string
	jobs       int
}

func (f *convertFlags) register(fs *pflag.FlagSet, video bool) {
	def := config.Default()
	fs.StringVar(&f.configPath, "config", "", "path to a YAML profile (default: $"+config.EnvVar+")")
	fs.StringVarP(&f.output, "output", "o", "", "output level path (default: input with .adofai extension)")
	fs.IntVar(&f.maxPixels, "max-pixels", def.MaxPixels, "maximum number of tiles per image or frame")
	fs.BoolVar(&f.camera, "camera", def.CameraEvent, "add a MoveCamera event framing the picture")
	fs.StringVar(&f.logLevel, "log-level", def.LogLevel, "log level: debug, info, warn, error")
	if video {
		fs.Float64Var(&f.targetFPS, "fps", def.TargetFPS, "frames sampled per second of video")
		fs.IntVar(&f.maxFrames, "max-frames", def.MaxFrames, "maximum number of frames sampled (0 for no limit)")
		fs.Float64Var(&f.threshold, "threshold", def.DiffThreshold, "color distance below which a tile is not recolored")
		return
	}
	fs.IntVar(&f.colors, "colors", def.Palette.Colors, "reduce each image to this many colors (0 keeps all)")
	fs.StringVar(&f.method, "palette", def.Palette.Method, "palette reduction method: kmeans or dominant")
	fs.IntVarP(&f.jobs, "jobs", "j", def.Jobs, "number of images converted concurrently")
}

// resolve loads the profile and applies the flags given on the command
// line on top of it.
func (f *convertFlags) resolve(fs *pflag.FlagSet) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if f.configPath != "" {
		cfg, err = config.LoadFile(f.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if fs.Changed("max-pixels") {
		cfg.MaxPixels = f.maxPixels
	}
	if fs.Changed("camera") {
		cfg.CameraEvent = f.camera
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if fs.Changed("fps") {
		cfg.TargetFPS = f.targetFPS
	}
	if fs.Changed("max-frames") {
		cfg.MaxFrames = f.maxFrames
	}
	if fs.Changed("threshold") {
		cfg.DiffThreshold = f.threshold
	}
	if fs.Changed("colors") {
		cfg.Palette.Colors = f.colors
	}
	if fs.Changed("palette") {
		cfg.Palette.Method = f.method
	}
	if fs.Changed("jobs") {
		cfg.Jobs = f.jobs
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// parseFlags parses args, printing usage for --help. It reports false
// when the command should stop without error.
func parseFlags(fs *pflag.FlagSet, args []string, usage string, stderr io.Writer) (bool, error) {
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage:\n  %s\n\nFlags:\n", usage)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// outputPath is the level path written for input when no output is given.
func outputPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + img2adofai.Extension
}

func commandLogger(cfg *config.Config, stderr io.Writer) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	return newLogger(stderr, level)
}
