// img2adofai converts pictures and videos into ADOFAI levels whose tiles
// form the image.
//
// Usage:
//
//	img2adofai image [flags] <input>...
//	img2adofai video [flags] <input>
//	img2adofai inspect <level>
//	img2adofai preview [--scale N] <level> <out.png>
//	img2adofai firstframe [flags] <video> <out.png>
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		printUsage(stderr)
		return fmt.Errorf("no command given")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "image":
		return runImage(ctx, rest, stderr)
	case "video":
		return runVideo(ctx, rest, stderr)
	case "inspect":
		return runInspect(rest, stdout, stderr)
	case "preview":
		return runPreview(rest, stderr)
	case "firstframe":
		return runFirstFrame(rest, stderr)
	case "help", "--help", "-h":
		printUsage(stdout)
		return nil
	}
	printUsage(stderr)
	return fmt.Errorf("unknown command %q", cmd)
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `img2adofai - convert images and videos into ADOFAI levels

Usage:
  img2adofai image [flags] <input>...        build a still level per image
  img2adofai video [flags] <input>           build a recoloring level from a video
  img2adofai inspect <level>                 summarize a level file
  img2adofai preview [--scale N] <level> <out.png>
                                             render a level's colors to a PNG
  img2adofai firstframe [flags] <video> <out.png>
                                             save the first sampled frame of a video

Run "img2adofai <command> --help" for the flags of a command.
A YAML profile can be given with --config or the IMG2ADOFAI_CONFIG
environment variable; flags override it.
`)
}

// newLogger logs text to terminals and JSON everywhere else.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	options := &slog.HandlerOptions{Level: level}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, options))
	}
	return slog.New(slog.NewJSONHandler(w, options))
}
