package img2adofai

import (
	"encoding/json"
	"fmt"
)

// EventType tags an entry of a level's action list.
type EventType string

const (
	MoveTrack     EventType = "MoveTrack"
	ColorTrack    EventType = "ColorTrack"
	RecolorTrack  EventType = "RecolorTrack"
	PositionTrack EventType = "PositionTrack"
	MoveCamera    EventType = "MoveCamera"
)

// Event is one entry of a level's action list. Concrete events are plain
// structs whose field order matches the editor's key order.
type Event interface {
	Type() EventType
}

// TileRef addresses a tile relative to an anchor, encoded on the wire as
// a two element array such as [12, "Start"].
type TileRef struct {
	Index  int
	Anchor string
}

// Tile anchors understood by the game.
const (
	AnchorStart    = "Start"
	AnchorEnd      = "End"
	AnchorThisTile = "ThisTile"
)

func (t TileRef) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{t.Index, t.Anchor})
}

func (t *TileRef) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("tile reference has %d elements, want 2", len(raw))
	}
	if err := json.Unmarshal(raw[0], &t.Index); err != nil {
		return fmt.Errorf("tile reference index: %w", err)
	}
	return json.Unmarshal(raw[1], &t.Anchor)
}

// MoveTrackEvent moves or scales a range of tiles.
type MoveTrackEvent struct {
	Floor       int        `json:"floor"`
	EventType   EventType  `json:"eventType"`
	StartTile   TileRef    `json:"startTile"`
	EndTile     TileRef    `json:"endTile"`
	GapLength   int        `json:"gapLength"`
	Duration    float64    `json:"duration"`
	Scale       [2]float64 `json:"scale"`
	AngleOffset float64    `json:"angleOffset"`
	Ease        string     `json:"ease"`
	MaxVfxOnly  bool       `json:"maxVfxOnly"`
	EventTag    string     `json:"eventTag"`
}

func (e *MoveTrackEvent) Type() EventType { return MoveTrack }

// anchorEvent is the zero-duration MoveTrack every generated level opens
// with on floor 0.
func anchorEvent() *MoveTrackEvent {
	return &MoveTrackEvent{
		Floor:     0,
		EventType: MoveTrack,
		StartTile: TileRef{0, AnchorStart},
		EndTile:   TileRef{0, AnchorEnd},
		Scale:     [2]float64{100, 179.6407},
		Ease:      "Linear",
	}
}

// ColorTrackEvent sets the color of every tile from Floor onwards until
// another ColorTrack overrides it.
type ColorTrackEvent struct {
	Floor                  int       `json:"floor"`
	EventType              EventType `json:"eventType"`
	TrackColorType         string    `json:"trackColorType"`
	TrackColor             string    `json:"trackColor"`
	SecondaryTrackColor    string    `json:"secondaryTrackColor"`
	TrackColorAnimDuration float64   `json:"trackColorAnimDuration"`
	TrackColorPulse        string    `json:"trackColorPulse"`
	TrackPulseLength       int       `json:"trackPulseLength"`
	TrackStyle             string    `json:"trackStyle"`
	TrackTexture           string    `json:"trackTexture"`
	TrackTextureScale      float64   `json:"trackTextureScale"`
	TrackGlowIntensity     int       `json:"trackGlowIntensity"`
	JustThisTile           bool      `json:"justThisTile"`
}

func (e *ColorTrackEvent) Type() EventType { return ColorTrack }

func newColorTrack(floor int, hex string) *ColorTrackEvent {
	return &ColorTrackEvent{
		Floor:               floor,
		EventType:           ColorTrack,
		TrackColorType:      "Single",
		TrackColor:          hex,
		SecondaryTrackColor: "ffffff",
		TrackColorPulse:     "None",
		TrackPulseLength:    10,
		TrackStyle:          "Minimal",
		TrackTextureScale:   1,
		TrackGlowIntensity:  100,
	}
}

// RecolorTrackEvent recolors a tile range at a point in time. Generated
// levels trigger every recolor from floor 1 and place it in time through
// AngleOffset.
type RecolorTrackEvent struct {
	Floor                  int       `json:"floor"`
	EventType              EventType `json:"eventType"`
	StartTile              TileRef   `json:"startTile"`
	EndTile                TileRef   `json:"endTile"`
	GapLength              int       `json:"gapLength"`
	Duration               float64   `json:"duration"`
	TrackColorType         string    `json:"trackColorType"`
	TrackColor             string    `json:"trackColor"`
	SecondaryTrackColor    string    `json:"secondaryTrackColor"`
	TrackColorAnimDuration float64   `json:"trackColorAnimDuration"`
	TrackColorPulse        string    `json:"trackColorPulse"`
	TrackPulseLength       int       `json:"trackPulseLength"`
	TrackStyle             string    `json:"trackStyle"`
	TrackGlowIntensity     int       `json:"trackGlowIntensity"`
	EventTag               string    `json:"eventTag"`
	AngleOffset            float64   `json:"angleOffset"`
}

func (e *RecolorTrackEvent) Type() EventType { return RecolorTrack }

// Tile returns the tile the event recolors.
func (e *RecolorTrackEvent) Tile() int { return e.StartTile.Index }

func newRecolorTrack(tile int, hex string, angleOffset float64) *RecolorTrackEvent {
	return &RecolorTrackEvent{
		Floor:                  1,
		EventType:              RecolorTrack,
		StartTile:              TileRef{tile, AnchorStart},
		EndTile:                TileRef{tile, AnchorStart},
		TrackColorType:         "Single",
		TrackColor:             hex,
		SecondaryTrackColor:    "ffffffff",
		TrackColorAnimDuration: 2,
		TrackColorPulse:        "None",
		TrackPulseLength:       10,
		TrackStyle:             "Minimal",
		TrackGlowIntensity:     100,
		AngleOffset:            angleOffset,
	}
}

// PositionTrackEvent shifts the track from Floor onwards.
type PositionTrackEvent struct {
	Floor          int       `json:"floor"`
	EventType      EventType `json:"eventType"`
	PositionOffset [2]int    `json:"positionOffset"`
	RelativeTo     TileRef   `json:"relativeTo"`
	JustThisTile   bool      `json:"justThisTile"`
	EditorOnly     bool      `json:"editorOnly"`
}

func (e *PositionTrackEvent) Type() EventType { return PositionTrack }

// rowWrap returns the event that carries the track from the end of one
// pixel row back to the start of the next, one unit down.
func rowWrap(floor, width int) *PositionTrackEvent {
	return &PositionTrackEvent{
		Floor:          floor,
		EventType:      PositionTrack,
		PositionOffset: [2]int{-width, -1},
		RelativeTo:     TileRef{0, AnchorThisTile},
	}
}

// MoveCameraEvent moves the camera relative to a tile.
type MoveCameraEvent struct {
	Floor       int       `json:"floor"`
	EventType   EventType `json:"eventType"`
	RelativeTo  string    `json:"relativeTo"`
	Duration    float64   `json:"duration"`
	Position    [2]int    `json:"position"`
	Zoom        int       `json:"zoom"`
	AngleOffset float64   `json:"angleOffset"`
	Ease        string    `json:"ease"`
	EventTag    string    `json:"eventTag"`
}

func (e *MoveCameraEvent) Type() EventType { return MoveCamera }
