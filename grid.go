package img2adofai

import (
	"fmt"
	"image"
	"image/color"
)

// PixelGrid is a row-major grid of straight-alpha pixels, indexed
// grid[y][x].
type PixelGrid [][]color.RGBA

// NewPixelGrid allocates a width x height grid of transparent black.
func NewPixelGrid(width, height int) PixelGrid {
	grid := make(PixelGrid, height)
	for y := range grid {
		grid[y] = make([]color.RGBA, width)
	}
	return grid
}

// GridFromImage converts any image.Image into a PixelGrid. Premultiplied
// sources are converted back to straight alpha so that translucent pixels
// keep their original RGB values.
func GridFromImage(img image.Image) PixelGrid {
	bounds := img.Bounds()
	grid := NewPixelGrid(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := grid[y-bounds.Min.Y]
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			row[x-bounds.Min.X] = color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
		}
	}
	return grid
}

// At returns the RGB value of the pixel at (x, y).
func (g PixelGrid) At(x, y int) RGB {
	return rgbFromRGBA(g[y][x])
}

// check verifies that the grid covers width x height.
func (g PixelGrid) check(width, height int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: negative grid size %dx%d",
			ErrInvalidParameter, width, height)
	}
	if len(g) < height {
		return fmt.Errorf("%w: grid has %d rows, want %d",
			ErrInvalidParameter, len(g), height)
	}
	for y := 0; y < height; y++ {
		if len(g[y]) < width {
			return fmt.Errorf("%w: grid row %d has %d pixels, want %d",
				ErrInvalidParameter, y, len(g[y]), width)
		}
	}
	return nil
}

// Frame is one decoded picture of a sequence. Width and Height are the
// declared size and drive all geometry.
type Frame struct {
	Pixels PixelGrid
	Width  int
	Height int
}

// NewFrame wraps an image as a Frame.
func NewFrame(img image.Image) Frame {
	bounds := img.Bounds()
	return Frame{
		Pixels: GridFromImage(img),
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}
}
