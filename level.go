package img2adofai

import "math"

// Level is a complete ADOFAI level document. Once returned by a builder
// it is not modified again.
type Level struct {
	AngleData   []float64 `json:"angleData"`
	Settings    Settings  `json:"settings"`
	Actions     []Event   `json:"actions"`
	Decorations []any     `json:"decorations"`
}

// Count returns the number of actions of the given type.
func (l *Level) Count(t EventType) int {
	n := 0
	for _, e := range l.Actions {
		if e.Type() == t {
			n++
		}
	}
	return n
}

// Camera is the framing that fits a width x height tile picture on
// screen. A 300x300 picture is shown at zoom 5000; zoom scales linearly
// with the larger side.
type Camera struct {
	Position [2]int
	Zoom     int
}

const (
	baseZoom = 5000
	baseSize = 300
)

// CameraFor computes the camera framing for a picture.
func CameraFor(width, height int) Camera {
	reference := max(width, height)
	return Camera{
		Position: [2]int{
			int(math.Round(float64(width) * 0.5)),
			int(math.Round(float64(height) * -0.5)),
		},
		Zoom: int(math.Round(baseZoom * float64(reference) / baseSize)),
	}
}

// MoveEvent returns an instant MoveCamera event applying the framing at
// the given floor.
func (c Camera) MoveEvent(floor int) *MoveCameraEvent {
	return &MoveCameraEvent{
		Floor:      floor,
		EventType:  MoveCamera,
		RelativeTo: "Tile",
		Position:   c.Position,
		Zoom:       c.Zoom,
		Ease:       "OutCubic",
	}
}

// levelBuilder accumulates the action list of a single conversion.
type levelBuilder struct {
	width, height int
	actions       []Event
}

func newLevelBuilder(width, height int) *levelBuilder {
	return &levelBuilder{
		width:   width,
		height:  height,
		actions: []Event{anchorEvent()},
	}
}

func (b *levelBuilder) add(e Event) {
	b.actions = append(b.actions, e)
}

// addRowWraps appends the PositionTrack events for every row boundary.
func (b *levelBuilder) addRowWraps() {
	for y := 0; y < b.height-1; y++ {
		b.add(rowWrap((y+1)*b.width+1, b.width))
	}
}

// level finalizes the document.
func (b *levelBuilder) level(bpm int) *Level {
	return &Level{
		AngleData:   make([]float64, b.width*b.height),
		Settings:    NewSettings(CameraFor(b.width, b.height), bpm),
		Actions:     b.actions,
		Decorations: []any{},
	}
}
