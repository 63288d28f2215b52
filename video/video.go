// Package video samples frames out of video files for temporal level
// conversion. Decoding is done by OpenCV through gocv.
package video

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"iter"
	"log/slog"

	"gocv.io/x/gocv"

	"github.com/wbrown/img2adofai"
	"github.com/wbrown/img2adofai/imageutil"
)

// capture is the part of gocv.VideoCapture a Source reads from.
type capture interface {
	Get(prop gocv.VideoCaptureProperties) float64
	Set(prop gocv.VideoCaptureProperties, param float64)
	Read(m *gocv.Mat) bool
	Close() error
}

// Info describes an opened video.
type Info struct {
	FPS        float64
	FrameCount int
	Width      int
	Height     int
}

// Source is an opened video file. A Source is not safe for concurrent
// use.
type Source struct {
	Logger *slog.Logger

	path string
	cap  capture
	info Info
}

// Open opens the video at path.
func Open(path string, logger *slog.Logger) (*Source, error) {
	vc, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening video %s: %w", path, err)
	}
	if !vc.IsOpened() {
		vc.Close()
		return nil, fmt.Errorf("opening video %s: no decodable stream", path)
	}
	s := newSource(path, vc, logger)
	s.Logger.Info("video opened", "path", path, "fps", s.info.FPS,
		"frames", s.info.FrameCount, "width", s.info.Width, "height", s.info.Height)
	return s, nil
}

func newSource(path string, c capture, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Source{
		Logger: logger,
		path:   path,
		cap:    c,
		info: Info{
			FPS:        c.Get(gocv.VideoCaptureFPS),
			FrameCount: int(c.Get(gocv.VideoCaptureFrameCount)),
			Width:      int(c.Get(gocv.VideoCaptureFrameWidth)),
			Height:     int(c.Get(gocv.VideoCaptureFrameHeight)),
		},
	}
}

// Info returns the stream properties reported by the container.
func (s *Source) Info() Info {
	return s.info
}

// Close releases the decoder.
func (s *Source) Close() error {
	return s.cap.Close()
}

// FrameInterval is the number of source frames between two sampled
// frames: originalFPS/targetFPS truncated, and never less than 1 so that
// a target above the source rate samples every frame.
func FrameInterval(originalFPS, targetFPS float64) int {
	if originalFPS <= 0 || targetFPS <= 0 {
		return 1
	}
	return max(1, int(originalFPS/targetFPS))
}

// Frames samples the video at targetFPS, starting at frame 0. Each frame
// is shrunk to at most maxPixels pixels. Sampling stops when a read
// fails, after maxFrames frames (0 means no limit), or when the next
// position is past the reported frame count. ctx is checked before each
// frame; a cancelled context is yielded as the final error.
func (s *Source) Frames(ctx context.Context, targetFPS float64, maxFrames,
	maxPixels int) iter.Seq2[img2adofai.Frame, error] {
	return func(yield func(img2adofai.Frame, error) bool) {
		if targetFPS <= 0 {
			yield(img2adofai.Frame{}, fmt.Errorf("%w: target fps must be positive, got %v",
				img2adofai.ErrInvalidParameter, targetFPS))
			return
		}
		interval := FrameInterval(s.info.FPS, targetFPS)
		s.Logger.Info("sampling frames", "path", s.path, "source_fps", s.info.FPS,
			"target_fps", targetFPS, "interval", interval)

		mat := gocv.NewMat()
		defer mat.Close()

		count := 0
		for pos := 0; ; pos += interval {
			if err := ctx.Err(); err != nil {
				yield(img2adofai.Frame{}, err)
				return
			}
			s.cap.Set(gocv.VideoCapturePosFrames, float64(pos))
			if !s.cap.Read(&mat) || mat.Empty() {
				s.Logger.Debug("end of stream", "position", pos)
				break
			}

			frame, err := matToImage(mat)
			if err != nil {
				yield(img2adofai.Frame{}, fmt.Errorf("%s: frame %d: %w", s.path, pos, err))
				return
			}
			img := imageutil.ResizeToMaxPixels(frame, maxPixels)
			s.Logger.Debug("frame sampled", "position", pos, "frame", count,
				"width", img.Width(), "height", img.Height())
			if !yield(img2adofai.NewFrame(img.RGBA), nil) {
				return
			}

			count++
			if maxFrames > 0 && count >= maxFrames {
				s.Logger.Info("frame limit reached", "frames", count)
				break
			}
			if s.info.FrameCount > 0 && pos+interval >= s.info.FrameCount {
				break
			}
		}
		s.Logger.Info("sampling finished", "frames", count)
	}
}

// FirstFrame decodes frame 0 of the video at path, shrunk to at most
// maxPixels pixels.
func FirstFrame(path string, maxPixels int) (*imageutil.RGBAImage, error) {
	src, err := Open(path, nil)
	if err != nil {
		return nil, err
	}
	defer src.Close()
	return src.firstFrame(maxPixels)
}

func (s *Source) firstFrame(maxPixels int) (*imageutil.RGBAImage, error) {
	mat := gocv.NewMat()
	defer mat.Close()

	s.cap.Set(gocv.VideoCapturePosFrames, 0)
	if !s.cap.Read(&mat) || mat.Empty() {
		return nil, fmt.Errorf("%s: %w", s.path, img2adofai.ErrEmptyFrameSequence)
	}
	img, err := matToImage(mat)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}
	return imageutil.ResizeToMaxPixels(img, maxPixels), nil
}

// matToImage copies an 8-bit frame into an RGBAImage. Gray and BGRA
// mats are converted to BGR first.
func matToImage(mat gocv.Mat) (*imageutil.RGBAImage, error) {
	switch mat.Type() {
	case gocv.MatTypeCV8UC3:
	case gocv.MatTypeCV8UC1, gocv.MatTypeCV8UC4:
		code := gocv.ColorGrayToBGR
		if mat.Channels() == 4 {
			code = gocv.ColorBGRAToBGR
		}
		bgr := gocv.NewMat()
		defer bgr.Close()
		gocv.CvtColor(mat, &bgr, code)
		if bgr.Empty() {
			return nil, fmt.Errorf("converting %v frame to BGR failed", mat.Type())
		}
		mat = bgr
	default:
		return nil, fmt.Errorf("%w: unsupported frame type %v",
			img2adofai.ErrInvalidParameter, mat.Type())
	}

	rows, cols := mat.Rows(), mat.Cols()
	img := imageutil.NewRGBAImage(cols, rows)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := mat.GetVecbAt(y, x)
			img.SetRGBA(x, y, color.RGBA{R: v[2], G: v[1], B: v[0], A: 255})
		}
	}
	return img, nil
}
