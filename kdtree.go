package img2adofai

import (
	"cmp"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// ColorNode represents a node in a KD-tree of palette colors. Each node
// splits its subtree on one channel: 0 for red, 1 for green, 2 for blue.
type ColorNode struct {
	Color     RGB
	Left      *ColorNode
	Right     *ColorNode
	SplitAxis int
}

// buildPaletteTree returns a KD-tree over palette. The palette slice is
// not modified.
func buildPaletteTree(palette []RGB) *ColorNode {
	return buildKDTree(slices.Clone(palette))
}

// buildKDTree sorts colors in place and splits at the median on the
// channel with the largest variance.
func buildKDTree(colors []RGB) *ColorNode {
	if len(colors) == 0 {
		return nil
	}

	axis := chooseSplitAxis(colors)
	slices.SortFunc(colors, func(a, b RGB) int {
		return cmp.Compare(getColorComponent(a, axis), getColorComponent(b, axis))
	})

	median := len(colors) / 2
	return &ColorNode{
		Color:     colors[median],
		Left:      buildKDTree(colors[:median]),
		Right:     buildKDTree(colors[median+1:]),
		SplitAxis: axis,
	}
}

func chooseSplitAxis(colors []RGB) int {
	values := make([]float64, len(colors))
	best, bestVar := 0, -1.0
	for axis := 0; axis < 3; axis++ {
		for i, c := range colors {
			values[i] = float64(getColorComponent(c, axis))
		}
		// A single color has no variance; NaN never wins and red is kept.
		if v := stat.Variance(values, nil); v > bestVar {
			best, bestVar = axis, v
		}
	}
	return best
}

func getColorComponent(c RGB, axis int) uint8 {
	switch axis {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}

// nearest returns the palette color closest to target by Euclidean
// distance. The tree must not be nil.
func (n *ColorNode) nearest(target RGB) RGB {
	best, _ := n.search(target, n.Color, math.MaxFloat64)
	return best
}

func (n *ColorNode) search(target, best RGB, bestDist float64) (RGB, float64) {
	if n == nil {
		return best, bestDist
	}
	if d := target.colorDistance(n.Color); d < bestDist {
		best, bestDist = n.Color, d
	}

	diff := float64(getColorComponent(target, n.SplitAxis)) -
		float64(getColorComponent(n.Color, n.SplitAxis))
	near, far := n.Left, n.Right
	if diff >= 0 {
		near, far = n.Right, n.Left
	}

	best, bestDist = near.search(target, best, bestDist)
	// The far side can only hold a closer color if the splitting plane is
	// nearer than the best match so far.
	if math.Abs(diff) < bestDist {
		best, bestDist = far.search(target, best, bestDist)
	}
	return best, bestDist
}
