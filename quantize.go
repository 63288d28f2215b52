package img2adofai

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

// PaletteMethod selects how ReducePalette picks its colors.
type PaletteMethod int

const (
	// PaletteKMeans clusters the pixels of the grid.
	PaletteKMeans PaletteMethod = iota
	// PaletteDominant uses the weighted dominant colors of the grid.
	PaletteDominant
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteKMeans:
		return "kmeans"
	case PaletteDominant:
		return "dominant"
	}
	return fmt.Sprintf("PaletteMethod(%d)", int(m))
}

// ParsePaletteMethod parses "kmeans" or "dominant".
func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch s {
	case "kmeans":
		return PaletteKMeans, nil
	case "dominant", "dominantcolor":
		return PaletteDominant, nil
	}
	return 0, fmt.Errorf("%w: unknown palette method %q", ErrInvalidParameter, s)
}

// maxPaletteSamples bounds the number of pixels handed to the clusterer.
const maxPaletteSamples = 12000

// ReducePalette maps every pixel of grid to the nearest of at most k
// colors and returns the new grid with the palette used. Alpha is kept.
// k <= 0 returns grid unchanged with a nil palette.
//
// Reducing the palette lengthens the runs of equal colors, so still
// levels built from the result need fewer ColorTrack events. Clustering
// is randomized; the same input may give slightly different palettes.
func ReducePalette(grid PixelGrid, width, height, k int, method PaletteMethod) (PixelGrid, []RGB, error) {
	if err := grid.check(width, height); err != nil {
		return nil, nil, err
	}
	if k <= 0 || width == 0 || height == 0 {
		return grid, nil, nil
	}

	var palette []RGB
	switch method {
	case PaletteKMeans:
		p, err := kmeansPalette(grid, width, height, k)
		if err != nil {
			return nil, nil, err
		}
		palette = p
	case PaletteDominant:
		palette = dominantPalette(grid, width, height, k)
	default:
		return nil, nil, fmt.Errorf("%w: unknown palette method %v", ErrInvalidParameter, method)
	}
	if len(palette) == 0 {
		return grid, nil, nil
	}

	tree := buildPaletteTree(palette)
	cache := make(map[uint32]RGB)
	out := NewPixelGrid(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := grid[y][x]
			c := rgbFromRGBA(px)
			key := c.toUint32()
			nearest, ok := cache[key]
			if !ok {
				nearest = tree.nearest(c)
				cache[key] = nearest
			}
			out[y][x] = color.RGBA{R: nearest.R, G: nearest.G, B: nearest.B, A: px.A}
		}
	}
	return out, palette, nil
}

func kmeansPalette(grid PixelGrid, width, height, k int) ([]RGB, error) {
	step := 1
	if width*height > maxPaletteSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxPaletteSamples))) + 1
	}

	var dataset clusters.Observations
	for y := 0; y < height; y += step {
		for x := 0; x < width; x += step {
			c := grid.At(x, y)
			dataset = append(dataset, clusters.Coordinates{
				float64(c.R) / 255,
				float64(c.G) / 255,
				float64(c.B) / 255,
			})
		}
	}
	k = min(k, len(dataset))

	km := kmeans.New()
	cc, err := km.Partition(dataset, k)
	if err != nil {
		return nil, fmt.Errorf("clustering colors: %w", err)
	}

	palette := make([]RGB, 0, len(cc))
	seen := make(map[RGB]bool)
	for _, c := range cc {
		if len(c.Observations) == 0 || len(c.Center) < 3 {
			continue
		}
		rgb := fromColorful(colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]})
		if !seen[rgb] {
			seen[rgb] = true
			palette = append(palette, rgb)
		}
	}
	return palette, nil
}

func dominantPalette(grid PixelGrid, width, height, k int) []RGB {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			px := grid[y][x]
			img.SetNRGBA(x, y, color.NRGBA{R: px.R, G: px.G, B: px.B, A: 255})
		}
	}

	palette := make([]RGB, 0, k)
	seen := make(map[RGB]bool)
	for _, c := range dominantcolor.FindWeight(img, k) {
		col, _ := colorful.MakeColor(c.RGBA)
		rgb := fromColorful(col)
		if !seen[rgb] {
			seen[rgb] = true
			palette = append(palette, rgb)
		}
	}
	return palette
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}
