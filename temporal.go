package img2adofai

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
)

// DefaultDiffThreshold is the color distance below which a pixel is
// considered unchanged between frames.
const DefaultDiffThreshold = 10.0

// FrameReport describes the outcome of one frame of a temporal build.
type FrameReport struct {
	Index   int
	Emitted int
	Skipped bool
	// Err explains why a skipped frame was dropped.
	Err error
}

// TemporalBuilder turns an ordered frame sequence into a single level in
// which every tile is recolored over time. The zero value is ready to use.
type TemporalBuilder struct {
	Logger *slog.Logger

	// Progress, when set, is called once per frame after the frame has
	// been processed or skipped.
	Progress func(FrameReport)

	// CameraEvent adds an explicit MoveCamera event on floor 0.
	CameraEvent bool
}

// BuildTemporal converts frames with a default TemporalBuilder.
func BuildTemporal(ctx context.Context, frames iter.Seq2[Frame, error],
	fps, diffThreshold float64) (*Level, error) {
	var b TemporalBuilder
	return b.Build(ctx, frames, fps, diffThreshold)
}

// BuildTemporalFrames is BuildTemporal over an in-memory slice.
func BuildTemporalFrames(ctx context.Context, frames []Frame,
	fps, diffThreshold float64) (*Level, error) {
	return BuildTemporal(ctx, FrameSeq(frames), fps, diffThreshold)
}

// FrameSeq adapts a slice to the lazy frame sequence builders consume.
func FrameSeq(frames []Frame) iter.Seq2[Frame, error] {
	return func(yield func(Frame, error) bool) {
		for _, f := range frames {
			if !yield(f, nil) {
				return
			}
		}
	}
}

// AngleOffset is the phase, in degrees, at which the recolors of frame i
// fire. The game advances 180 degrees per beat, so at one frame per beat
// divided by fps the frames line up with real time.
func AngleOffset(frameIndex int, fps float64) float64 {
	return float64(frameIndex) * (180 / fps)
}

// Build consumes frames strictly in order. The first frame fixes the
// tile grid; later frames of a different size are skipped. Frame 0
// recolors every tile, every later frame only the tiles whose color moved
// at least diffThreshold away from the previous accepted frame.
//
// ctx is checked between frames only.
func (b *TemporalBuilder) Build(ctx context.Context, frames iter.Seq2[Frame, error],
	fps, diffThreshold float64) (*Level, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("%w: fps must be positive, got %v", ErrInvalidParameter, fps)
	}
	if diffThreshold < 0 {
		return nil, fmt.Errorf("%w: diff threshold must not be negative, got %v",
			ErrInvalidParameter, diffThreshold)
	}
	logger := loggerOrDiscard(b.Logger)

	var (
		lb       *levelBuilder
		prev     PixelGrid
		index    int
		recolors int
	)
	for frame, err := range frames {
		if err != nil {
			return nil, fmt.Errorf("reading frame %d: %w", index, err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if lb == nil {
			if err := frame.Pixels.check(frame.Width, frame.Height); err != nil {
				return nil, fmt.Errorf("frame %d: %w", index, err)
			}
			logger.Info("using first frame size", "width", frame.Width,
				"height", frame.Height)
			lb = newLevelBuilder(frame.Width, frame.Height)
			if b.CameraEvent {
				lb.add(CameraFor(frame.Width, frame.Height).MoveEvent(0))
			}
			lb.addRowWraps()
		} else if frame.Width != lb.width || frame.Height != lb.height {
			mismatch := &DimensionMismatchError{
				Index: index,
				Width: frame.Width, Height: frame.Height,
				WantW: lb.width, WantH: lb.height,
			}
			logger.Warn("skipping frame", "error", mismatch)
			b.report(FrameReport{Index: index, Skipped: true, Err: mismatch})
			index++
			continue
		} else if err := frame.Pixels.check(frame.Width, frame.Height); err != nil {
			return nil, fmt.Errorf("frame %d: %w", index, err)
		}

		emitted := b.recolorFrame(lb, index, frame.Pixels, prev, fps, diffThreshold)
		logger.Debug("frame processed", "frame", index, "recolors", emitted,
			"angle_offset", AngleOffset(index, fps))
		b.report(FrameReport{Index: index, Emitted: emitted})

		recolors += emitted
		prev = frame.Pixels
		index++
	}
	if lb == nil {
		return nil, ErrEmptyFrameSequence
	}

	lvl := lb.level(VideoBPM)
	logger.Info("video level built", "frames", index, "recolor_events", recolors,
		"actions", len(lvl.Actions))
	return lvl, nil
}

// recolorFrame appends the RecolorTrack events of one frame and returns
// how many were emitted. prev is nil for the first frame.
func (b *TemporalBuilder) recolorFrame(lb *levelBuilder, index int, cur, prev PixelGrid,
	fps, diffThreshold float64) int {
	offset := AngleOffset(index, fps)
	emitted := 0
	floor := 1
	for y := 0; y < lb.height; y++ {
		for x := 0; x < lb.width; x++ {
			c := cur.At(x, y)
			if prev != nil && unchanged(c, prev.At(x, y), diffThreshold) {
				floor++
				continue
			}
			lb.add(newRecolorTrack(floor, c.Hex(), offset))
			emitted++
			floor++
		}
	}
	return emitted
}

// unchanged reports whether a pixel may keep its previous color. An
// identical color never needs a recolor, even at threshold 0.
func unchanged(c, prev RGB, diffThreshold float64) bool {
	d := c.colorDistance(prev)
	return d == 0 || d < diffThreshold
}

func (b *TemporalBuilder) report(r FrameReport) {
	if b.Progress != nil {
		b.Progress(r)
	}
}
