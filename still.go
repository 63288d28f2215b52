package img2adofai

import (
	"io"
	"log/slog"
)

// StillBuilder turns a single pixel grid into a level. The zero value is
// ready to use and logs nowhere.
type StillBuilder struct {
	Logger *slog.Logger

	// CameraEvent adds an explicit MoveCamera event on floor 0 carrying
	// the same framing as the settings record.
	CameraEvent bool
}

// BuildStill converts grid with a default StillBuilder.
func BuildStill(grid PixelGrid, width, height int) (*Level, error) {
	var b StillBuilder
	return b.Build(grid, width, height)
}

// Build lays the grid out as one straight track, one tile per pixel, in
// reading order starting at floor 1. A ColorTrack is emitted only when
// a tile's color differs from the previous tile, since the game keeps
// the last color until it is overridden. After every row but the last a
// PositionTrack moves the track back to the left edge one unit down.
func (b *StillBuilder) Build(grid PixelGrid, width, height int) (*Level, error) {
	if err := grid.check(width, height); err != nil {
		return nil, err
	}
	logger := loggerOrDiscard(b.Logger)
	logger.Info("building still level", "width", width, "height", height,
		"tiles", width*height)

	lb := newLevelBuilder(width, height)
	if b.CameraEvent {
		lb.add(CameraFor(width, height).MoveEvent(0))
	}

	floor := 1
	lastColor := ""
	colored := 0
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			hex := grid.At(x, y).Hex()
			if hex != lastColor {
				lb.add(newColorTrack(floor, hex))
				lastColor = hex
				colored++
			}
			floor++
		}
		if y < height-1 {
			lb.add(rowWrap(floor, width))
		}
	}

	lvl := lb.level(StillBPM)
	logger.Info("still level built", "color_events", colored,
		"actions", len(lvl.Actions))
	return lvl, nil
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
