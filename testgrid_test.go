package img2adofai

import "image/color"

// solidGrid returns a width x height grid of one opaque color.
func solidGrid(width, height int, c RGB) PixelGrid {
	grid := NewPixelGrid(width, height)
	for y := range grid {
		for x := range grid[y] {
			grid[y][x] = c.ToColor()
		}
	}
	return grid
}

// stripeGrid colors each column from colors, cycling.
func stripeGrid(width, height int, colors ...RGB) PixelGrid {
	grid := NewPixelGrid(width, height)
	for y := range grid {
		for x := range grid[y] {
			grid[y][x] = colors[x%len(colors)].ToColor()
		}
	}
	return grid
}

func cloneGrid(g PixelGrid) PixelGrid {
	out := make(PixelGrid, len(g))
	for y := range g {
		out[y] = append([]color.RGBA(nil), g[y]...)
	}
	return out
}

func actionsOf[T Event](lvl *Level) []T {
	var out []T
	for _, a := range lvl.Actions {
		if e, ok := a.(T); ok {
			out = append(out, e)
		}
	}
	return out
}
