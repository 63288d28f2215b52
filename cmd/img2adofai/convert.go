package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/wbrown/img2adofai"
	"github.com/wbrown/img2adofai/config"
	"github.com/wbrown/img2adofai/imageutil"
	"github.com/wbrown/img2adofai/video"
)

func runImage(ctx context.Context, args []string, stderr io.Writer) error {
	var flags convertFlags
	fs := pflag.NewFlagSet("image", pflag.ContinueOnError)
	flags.register(fs, false)
	if ok, err := parseFlags(fs, args, "img2adofai image [flags] <input>...", stderr); !ok {
		return err
	}

	inputs := fs.Args()
	if len(inputs) == 0 {
		return fmt.Errorf("image: no input given")
	}
	if flags.output != "" && len(inputs) > 1 {
		return fmt.Errorf("image: --output needs a single input, got %d", len(inputs))
	}
	cfg, err := flags.resolve(fs)
	if err != nil {
		return err
	}
	logger := commandLogger(cfg, stderr)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Jobs)
	for _, input := range inputs {
		out := flags.output
		if out == "" {
			out = outputPath(input)
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return convertImage(input, out, cfg, logger.With("input", input))
		})
	}
	return g.Wait()
}

func convertImage(input, output string, cfg *config.Config, logger *slog.Logger) error {
	start := time.Now()
	img, err := imageutil.DecodeAndResize(input, cfg.MaxPixels)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	width, height := img.Width(), img.Height()
	logger.Info("image loaded", "width", width, "height", height)

	grid := img2adofai.GridFromImage(img.RGBA)
	if cfg.Palette.Colors > 0 {
		reduced, palette, err := img2adofai.ReducePalette(grid, width, height,
			cfg.Palette.Colors, cfg.PaletteMethod())
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		logger.Info("palette reduced", "method", cfg.PaletteMethod(), "colors", len(palette))
		grid = reduced
	}

	b := img2adofai.StillBuilder{Logger: logger, CameraEvent: cfg.CameraEvent}
	lvl, err := b.Build(grid, width, height)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if err := img2adofai.SaveLevel(output, lvl); err != nil {
		return err
	}
	logger.Info("level written", "output", output, "tiles", width*height,
		"elapsed", time.Since(start))
	return nil
}

func runVideo(ctx context.Context, args []string, stderr io.Writer) error {
	var flags convertFlags
	fs := pflag.NewFlagSet("video", pflag.ContinueOnError)
	flags.register(fs, true)
	if ok, err := parseFlags(fs, args, "img2adofai video [flags] <input>", stderr); !ok {
		return err
	}

	if fs.NArg() != 1 {
		return fmt.Errorf("video: need exactly one input, got %d", fs.NArg())
	}
	input := fs.Arg(0)
	output := flags.output
	if output == "" {
		output = outputPath(input)
	}
	cfg, err := flags.resolve(fs)
	if err != nil {
		return err
	}
	logger := commandLogger(cfg, stderr).With("input", input)

	src, err := video.Open(input, logger)
	if err != nil {
		return err
	}
	defer src.Close()

	start := time.Now()
	b := img2adofai.TemporalBuilder{
		Logger:      logger,
		CameraEvent: cfg.CameraEvent,
		Progress: func(r img2adofai.FrameReport) {
			if r.Skipped {
				return
			}
			logger.Info("frame converted", "frame", r.Index, "max_frames", cfg.MaxFrames,
				"recolors", r.Emitted)
		},
	}
	frames := src.Frames(ctx, cfg.TargetFPS, cfg.MaxFrames, cfg.MaxPixels)
	lvl, err := b.Build(ctx, frames, cfg.TargetFPS, cfg.DiffThreshold)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if err := img2adofai.SaveLevel(output, lvl); err != nil {
		return err
	}
	logger.Info("level written", "output", output, "actions", len(lvl.Actions),
		"elapsed", time.Since(start))
	return nil
}
