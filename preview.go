package img2adofai

import (
	"fmt"

	"github.com/wbrown/img2adofai/imageutil"
)

// DefaultTrackColor is the track color the game uses when a level does
// not set one.
const DefaultTrackColor = "debb7b"

// RenderPreview replays the color events of a parsed level onto a raster
// with one pixel per tile. The row width is taken from the first
// PositionTrack, so levels without row wraps render as a single row.
// ColorTracks hold their color forward from their floor; RecolorTracks
// are then applied in document order, so the picture shows the final
// state of a video level.
func RenderPreview(doc *OrderedMap) (*imageutil.RGBAImage, error) {
	s := Summarize(doc)
	if s.Tiles == 0 {
		return nil, fmt.Errorf("%w: level has no tiles", ErrInvalidParameter)
	}
	width := s.Width
	height := (s.Tiles + width - 1) / width

	base := DefaultTrackColor
	if settings, ok := objectField(doc, "settings"); ok {
		if c, ok := stringField(settings, "trackColor"); ok {
			base = c
		}
	}
	baseColor, err := ParseHex(base)
	if err != nil {
		return nil, fmt.Errorf("settings trackColor: %w", err)
	}

	tiles := make([]RGB, s.Tiles+1)
	for i := range tiles {
		tiles[i] = baseColor
	}

	actions := arrayField(doc, "actions")
	colorFrom := make(map[int]RGB)
	for _, a := range actions {
		ev, ok := a.(*OrderedMap)
		if !ok {
			continue
		}
		if t, _ := stringField(ev, "eventType"); t != string(ColorTrack) {
			continue
		}
		c, err := eventColor(ev)
		if err != nil {
			return nil, err
		}
		colorFrom[int(numberField(ev, "floor", 0))] = c
	}
	current := baseColor
	for floor := range tiles {
		if c, ok := colorFrom[floor]; ok {
			current = c
		}
		tiles[floor] = current
	}

	for _, a := range actions {
		ev, ok := a.(*OrderedMap)
		if !ok {
			continue
		}
		if t, _ := stringField(ev, "eventType"); t != string(RecolorTrack) {
			continue
		}
		c, err := eventColor(ev)
		if err != nil {
			return nil, err
		}
		start := arrayField(ev, "startTile")
		if len(start) == 0 {
			continue
		}
		if tile := int(toFloat(start[0])); tile >= 0 && tile < len(tiles) {
			tiles[tile] = c
		}
	}

	img := imageutil.NewRGBAImage(width, height)
	for floor := 1; floor <= s.Tiles; floor++ {
		img.SetRGB((floor-1)%width, (floor-1)/width, imageutil.RGB(tiles[floor]))
	}
	return img, nil
}

func eventColor(ev *OrderedMap) (RGB, error) {
	hex, _ := stringField(ev, "trackColor")
	c, err := ParseHex(hex)
	if err != nil {
		t, _ := stringField(ev, "eventType")
		return RGB{}, fmt.Errorf("%s on floor %d: %w", t,
			int(numberField(ev, "floor", 0)), err)
	}
	return c, nil
}

// SavePreviewPNG enlarges a preview by an integer factor with
// nearest-neighbor scaling and writes it as a PNG.
func SavePreviewPNG(img *imageutil.RGBAImage, path string, scale int) error {
	if scale < 1 {
		return fmt.Errorf("%w: preview scale must be at least 1, got %d",
			ErrInvalidParameter, scale)
	}
	if scale > 1 {
		img = imageutil.Resize(img, img.Width()*scale, img.Height()*scale,
			imageutil.InterpolationNearest)
	}
	if err := imageutil.SavePNG(img.RGBA, path); err != nil {
		return &SinkWriteError{Path: path, Err: err}
	}
	return nil
}
