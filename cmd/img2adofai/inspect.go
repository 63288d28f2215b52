package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/pflag"

	"github.com/wbrown/img2adofai"
	"github.com/wbrown/img2adofai/config"
	"github.com/wbrown/img2adofai/imageutil"
	"github.com/wbrown/img2adofai/video"
)

func runInspect(args []string, stdout, stderr io.Writer) error {
	var logLevel string
	fs := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
	fs.StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	if ok, err := parseFlags(fs, args, "img2adofai inspect <level>", stderr); !ok {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("inspect: need exactly one level, got %d", fs.NArg())
	}

	cfg := config.Default()
	cfg.LogLevel = logLevel
	doc, err := img2adofai.ReadLevelFile(fs.Arg(0), commandLogger(cfg, stderr))
	if err != nil {
		return err
	}
	printSummary(stdout, fs.Arg(0), img2adofai.Summarize(doc))
	return nil
}

func printSummary(w io.Writer, path string, s img2adofai.LevelSummary) {
	fmt.Fprintf(w, "level:   %s\n", path)
	fmt.Fprintf(w, "version: %d\n", s.Version)
	fmt.Fprintf(w, "bpm:     %g\n", s.BPM)
	fmt.Fprintf(w, "tiles:   %d\n", s.Tiles)
	if s.Width > 0 && s.Tiles > 0 {
		fmt.Fprintf(w, "grid:    %dx%d\n", s.Width, (s.Tiles+s.Width-1)/s.Width)
	}

	types := make([]string, 0, len(s.Events))
	for t := range s.Events {
		types = append(types, t)
	}
	slices.Sort(types)
	fmt.Fprintln(w, "events:")
	for _, t := range types {
		fmt.Fprintf(w, "  %-14s %d\n", t, s.Events[t])
	}

	if s.Path != "" {
		path := s.Path
		if len(path) > 64 {
			path = path[:64] + "..."
		}
		fmt.Fprintf(w, "path:    %s\n", path)
	}
}

func runPreview(args []string, stderr io.Writer) error {
	var scale int
	fs := pflag.NewFlagSet("preview", pflag.ContinueOnError)
	fs.IntVar(&scale, "scale", 4, "pixels per tile in the output image")
	if ok, err := parseFlags(fs, args, "img2adofai preview [--scale N] <level> <out.png>", stderr); !ok {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("preview: need a level and an output path")
	}

	doc, err := img2adofai.ReadLevelFile(fs.Arg(0), nil)
	if err != nil {
		return err
	}
	img, err := img2adofai.RenderPreview(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", fs.Arg(0), err)
	}
	return img2adofai.SavePreviewPNG(img, fs.Arg(1), scale)
}

func runFirstFrame(args []string, stderr io.Writer) error {
	var flags convertFlags
	fs := pflag.NewFlagSet("firstframe", pflag.ContinueOnError)
	flags.register(fs, true)
	if ok, err := parseFlags(fs, args, "img2adofai firstframe [flags] <video> <out.png>", stderr); !ok {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("firstframe: need a video and an output path")
	}
	cfg, err := flags.resolve(fs)
	if err != nil {
		return err
	}

	img, err := video.FirstFrame(fs.Arg(0), cfg.MaxPixels)
	if err != nil {
		return err
	}
	commandLogger(cfg, stderr).Info("first frame", "video", fs.Arg(0),
		"width", img.Width(), "height", img.Height())
	return imageutil.SavePNG(img.RGBA, fs.Arg(1))
}
