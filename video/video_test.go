package video

import (
	"context"
	"errors"
	"testing"

	"gocv.io/x/gocv"

	"github.com/wbrown/img2adofai"
)

// fakeCapture serves solid frames whose blue channel is the frame
// position, so tests can tell which source frames were sampled.
type fakeCapture struct {
	fps           float64
	frames        int
	width, height int

	pos   int
	reads []int
}

func (f *fakeCapture) Get(prop gocv.VideoCaptureProperties) float64 {
	switch prop {
	case gocv.VideoCaptureFPS:
		return f.fps
	case gocv.VideoCaptureFrameCount:
		return float64(f.frames)
	case gocv.VideoCaptureFrameWidth:
		return float64(f.width)
	case gocv.VideoCaptureFrameHeight:
		return float64(f.height)
	}
	return 0
}

func (f *fakeCapture) Set(prop gocv.VideoCaptureProperties, param float64) {
	if prop == gocv.VideoCapturePosFrames {
		f.pos = int(param)
	}
}

func (f *fakeCapture) Read(m *gocv.Mat) bool {
	if f.pos >= f.frames {
		return false
	}
	f.reads = append(f.reads, f.pos)
	// Scalar channels are in BGR order.
	src := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(float64(f.pos), 20, 10, 0),
		f.height, f.width, gocv.MatTypeCV8UC3)
	defer src.Close()
	src.CopyTo(m)
	return true
}

func (f *fakeCapture) Close() error { return nil }

func TestFrameInterval(t *testing.T) {
	tests := []struct {
		orig, target float64
		want         int
	}{
		{30, 10, 3},
		{29.97, 10, 2},
		{25, 10, 2},
		{60, 10, 6},
		{10, 10, 1},
		{5, 10, 1},
		{0, 10, 1},
		{30, 0, 1},
	}
	for _, tt := range tests {
		if got := FrameInterval(tt.orig, tt.target); got != tt.want {
			t.Errorf("FrameInterval(%v, %v) = %d, want %d", tt.orig, tt.target, got, tt.want)
		}
	}
}

func TestSourceInfo(t *testing.T) {
	s := newSource("clip.mp4", &fakeCapture{fps: 24, frames: 48, width: 64, height: 36}, nil)
	want := Info{FPS: 24, FrameCount: 48, Width: 64, Height: 36}
	if got := s.Info(); got != want {
		t.Errorf("Info() = %+v, want %+v", got, want)
	}
}

func TestFramesSamplesAtInterval(t *testing.T) {
	fc := &fakeCapture{fps: 30, frames: 10, width: 4, height: 3}
	s := newSource("clip.mp4", fc, nil)

	var got []img2adofai.Frame
	for f, err := range s.Frames(context.Background(), 10, 0, 0) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, f)
	}

	wantPos := []int{0, 3, 6, 9}
	if len(fc.reads) != len(wantPos) {
		t.Fatalf("read positions %v, want %v", fc.reads, wantPos)
	}
	for i, p := range wantPos {
		if fc.reads[i] != p {
			t.Errorf("read %d at position %d, want %d", i, fc.reads[i], p)
		}
	}
	if len(got) != len(wantPos) {
		t.Fatalf("got %d frames, want %d", len(got), len(wantPos))
	}
	for i, f := range got {
		if f.Width != 4 || f.Height != 3 {
			t.Errorf("frame %d is %dx%d, want 4x3", i, f.Width, f.Height)
		}
		px := f.Pixels[1][2]
		if px.R != 10 || px.G != 20 || int(px.B) != wantPos[i] {
			t.Errorf("frame %d pixel = %v, want R=10 G=20 B=%d", i, px, wantPos[i])
		}
	}
}

func TestFramesMaxFrames(t *testing.T) {
	fc := &fakeCapture{fps: 10, frames: 100, width: 2, height: 2}
	s := newSource("clip.mp4", fc, nil)

	n := 0
	for _, err := range s.Frames(context.Background(), 10, 5, 0) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		n++
	}
	if n != 5 {
		t.Errorf("got %d frames, want 5", n)
	}
}

func TestFramesResizes(t *testing.T) {
	fc := &fakeCapture{fps: 10, frames: 1, width: 40, height: 20}
	s := newSource("clip.mp4", fc, nil)

	for f, err := range s.Frames(context.Background(), 10, 0, 200) {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if f.Width != 20 || f.Height != 10 {
			t.Errorf("frame is %dx%d, want 20x10", f.Width, f.Height)
		}
	}
}

func TestFramesCancelled(t *testing.T) {
	fc := &fakeCapture{fps: 10, frames: 100, width: 2, height: 2}
	s := newSource("clip.mp4", fc, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	n := 0
	var lastErr error
	for _, err := range s.Frames(ctx, 10, 0, 0) {
		if err != nil {
			lastErr = err
			break
		}
		n++
		if n == 2 {
			cancel()
		}
	}
	if !errors.Is(lastErr, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", lastErr)
	}
	if n != 2 {
		t.Errorf("got %d frames before cancellation, want 2", n)
	}
}

func TestFramesInvalidTargetFPS(t *testing.T) {
	s := newSource("clip.mp4", &fakeCapture{fps: 10, frames: 10, width: 2, height: 2}, nil)
	for _, err := range s.Frames(context.Background(), 0, 0, 0) {
		if !errors.Is(err, img2adofai.ErrInvalidParameter) {
			t.Errorf("expected ErrInvalidParameter, got %v", err)
		}
	}
}

func TestFramesFeedTemporalBuilder(t *testing.T) {
	fc := &fakeCapture{fps: 30, frames: 9, width: 3, height: 2}
	s := newSource("clip.mp4", fc, nil)

	lvl, err := img2adofai.BuildTemporal(context.Background(), s.Frames(context.Background(), 10, 0, 0), 10, 0)
	if err != nil {
		t.Fatalf("BuildTemporal: %v", err)
	}
	// Every frame changes the blue channel of every pixel.
	if got, want := lvl.Count(img2adofai.RecolorTrack), 3*6; got != want {
		t.Errorf("got %d recolors, want %d", got, want)
	}
}

func TestFirstFrame(t *testing.T) {
	fc := &fakeCapture{fps: 30, frames: 9, width: 3, height: 2}
	s := newSource("clip.mp4", fc, nil)
	fc.pos = 5

	img, err := s.firstFrame(0)
	if err != nil {
		t.Fatalf("firstFrame: %v", err)
	}
	if img.Width() != 3 || img.Height() != 2 {
		t.Errorf("first frame is %dx%d, want 3x2", img.Width(), img.Height())
	}
	if got := img.GetRGB(0, 0).B; got != 0 {
		t.Errorf("first frame came from position %d, want 0", got)
	}

	empty := newSource("empty.mp4", &fakeCapture{fps: 30}, nil)
	if _, err := empty.firstFrame(0); !errors.Is(err, img2adofai.ErrEmptyFrameSequence) {
		t.Errorf("expected ErrEmptyFrameSequence, got %v", err)
	}
}

func TestMatToImageChannels(t *testing.T) {
	tests := []struct {
		name    string
		scalar  gocv.Scalar
		typ     gocv.MatType
		want    [3]uint8
		wantErr bool
	}{
		{"bgr", gocv.NewScalar(30, 20, 10, 0), gocv.MatTypeCV8UC3, [3]uint8{10, 20, 30}, false},
		{"bgra", gocv.NewScalar(30, 20, 10, 128), gocv.MatTypeCV8UC4, [3]uint8{10, 20, 30}, false},
		{"gray", gocv.NewScalar(77, 0, 0, 0), gocv.MatTypeCV8UC1, [3]uint8{77, 77, 77}, false},
		{"float", gocv.NewScalar(0.5, 0.5, 0.5, 0), gocv.MatTypeCV32FC3, [3]uint8{}, true},
	}
	for _, tt := range tests {
		mat := gocv.NewMatWithSizeFromScalar(tt.scalar, 2, 3, tt.typ)
		img, err := matToImage(mat)
		mat.Close()
		if tt.wantErr {
			if !errors.Is(err, img2adofai.ErrInvalidParameter) {
				t.Errorf("%s: expected ErrInvalidParameter, got %v", tt.name, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if img.Width() != 3 || img.Height() != 2 {
			t.Errorf("%s: image is %dx%d, want 3x2", tt.name, img.Width(), img.Height())
		}
		px := img.GetRGB(1, 1)
		if got := [3]uint8{px.R, px.G, px.B}; got != tt.want {
			t.Errorf("%s: pixel = %v, want %v", tt.name, got, tt.want)
		}
	}
}
