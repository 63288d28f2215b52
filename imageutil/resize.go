package imageutil

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationArea uses Catmull-Rom for high-quality downscaling.
	// This is the closest equivalent to OpenCV's INTER_AREA.
	InterpolationArea Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	// Equivalent to OpenCV's INTER_LINEAR.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality; keeps tile previews crisp.
	InterpolationNearest
)

// Resize resizes an RGBA image to the specified dimensions using the
// given interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	dstRect := image.Rect(0, 0, width, height)

	var scaler draw.Scaler
	switch interp {
	case InterpolationArea:
		// CatmullRom provides high quality for both up and down scaling
		scaler = draw.CatmullRom
	case InterpolationLinear:
		scaler = draw.BiLinear
	case InterpolationNearest:
		scaler = draw.NearestNeighbor
	default:
		scaler = draw.CatmullRom
	}

	scaler.Scale(dst.RGBA, dstRect, img.RGBA, img.Bounds(), draw.Over, nil)
	return dst
}

// FitMaxPixels returns the size a width x height picture is shrunk to so
// that it holds at most maxPixels pixels. Pictures already under the cap
// keep their size; otherwise both sides are scaled by
// sqrt(maxPixels/(width*height)), truncated and kept at least 1.
func FitMaxPixels(width, height, maxPixels int) (int, int) {
	pixels := width * height
	if maxPixels <= 0 || pixels <= maxPixels {
		return width, height
	}
	scale := math.Sqrt(float64(maxPixels) / float64(pixels))
	w := max(1, int(float64(width)*scale))
	h := max(1, int(float64(height)*scale))
	// A side clamped to 1 can push a very thin picture over the cap.
	if w*h > maxPixels {
		if w >= h {
			w = max(1, maxPixels/h)
		} else {
			h = max(1, maxPixels/w)
		}
	}
	return w, h
}

// ResizeToMaxPixels shrinks img with a Lanczos filter so that it holds at
// most maxPixels pixels, preserving the aspect ratio. Images under the
// cap are returned unchanged.
func ResizeToMaxPixels(img *RGBAImage, maxPixels int) *RGBAImage {
	w, h := FitMaxPixels(img.Width(), img.Height(), maxPixels)
	if w == img.Width() && h == img.Height() {
		return img
	}
	return RGBAImageFromImage(imaging.Resize(img.RGBA, w, h, imaging.Lanczos))
}
