package img2adofai

// Settings is the ADOFAI v15 level settings record. Field order follows
// the key order the game editor writes, so that generated files diff
// cleanly against editor-saved ones. Only Position and Zoom are computed;
// BPM differs between still and video levels.
type Settings struct {
	Version                 int      `json:"version"`
	Artist                  string   `json:"artist"`
	SpecialArtistType       string   `json:"specialArtistType"`
	ArtistPermission        string   `json:"artistPermission"`
	Song                    string   `json:"song"`
	Author                  string   `json:"author"`
	SeparateCountdownTime   bool     `json:"separateCountdownTime"`
	PreviewImage            string   `json:"previewImage"`
	PreviewIcon             string   `json:"previewIcon"`
	PreviewIconColor        string   `json:"previewIconColor"`
	PreviewSongStart        int      `json:"previewSongStart"`
	PreviewSongDuration     int      `json:"previewSongDuration"`
	SeizureWarning          bool     `json:"seizureWarning"`
	LevelDesc               string   `json:"levelDesc"`
	LevelTags               string   `json:"levelTags"`
	ArtistLinks             string   `json:"artistLinks"`
	SpeedTrialAim           int      `json:"speedTrialAim"`
	Difficulty              int      `json:"difficulty"`
	RequiredMods            []string `json:"requiredMods"`
	SongFilename            string   `json:"songFilename"`
	BPM                     int      `json:"bpm"`
	Volume                  int      `json:"volume"`
	Offset                  int      `json:"offset"`
	Pitch                   int      `json:"pitch"`
	Hitsound                string   `json:"hitsound"`
	HitsoundVolume          int      `json:"hitsoundVolume"`
	CountdownTicks          int      `json:"countdownTicks"`
	SongURL                 string   `json:"songURL"`
	TileShape               string   `json:"tileShape"`
	TrackColorType          string   `json:"trackColorType"`
	TrackColor              string   `json:"trackColor"`
	SecondaryTrackColor     string   `json:"secondaryTrackColor"`
	TrackColorAnimDuration  int      `json:"trackColorAnimDuration"`
	TrackColorPulse         string   `json:"trackColorPulse"`
	TrackPulseLength        int      `json:"trackPulseLength"`
	TrackStyle              string   `json:"trackStyle"`
	TrackTexture            string   `json:"trackTexture"`
	TrackTextureScale       int      `json:"trackTextureScale"`
	TrackGlowIntensity      int      `json:"trackGlowIntensity"`
	TrackAnimation          string   `json:"trackAnimation"`
	BeatsAhead              int      `json:"beatsAhead"`
	TrackDisappearAnimation string   `json:"trackDisappearAnimation"`
	BeatsBehind             int      `json:"beatsBehind"`
	BackgroundColor         string   `json:"backgroundColor"`
	ShowDefaultBGIfNoImage  bool     `json:"showDefaultBGIfNoImage"`
	ShowDefaultBGTile       bool     `json:"showDefaultBGTile"`
	DefaultBGTileColor      string   `json:"defaultBGTileColor"`
	DefaultBGShapeType      string   `json:"defaultBGShapeType"`
	DefaultBGShapeColor     string   `json:"defaultBGShapeColor"`
	BGImage                 string   `json:"bgImage"`
	BGImageColor            string   `json:"bgImageColor"`
	Parallax                [2]int   `json:"parallax"`
	BGDisplayMode           string   `json:"bgDisplayMode"`
	ImageSmoothing          bool     `json:"imageSmoothing"`
	LockRot                 bool     `json:"lockRot"`
	LoopBG                  bool     `json:"loopBG"`
	ScalingRatio            int      `json:"scalingRatio"`
	RelativeTo              string   `json:"relativeTo"`
	Position                [2]int   `json:"position"`
	Rotation                int      `json:"rotation"`
	Zoom                    int      `json:"zoom"`
	PulseOnFloor            bool     `json:"pulseOnFloor"`
	StartCamLowVFX          bool     `json:"startCamLowVFX"`
	BGVideo                 string   `json:"bgVideo"`
	LoopVideo               bool     `json:"loopVideo"`
	VidOffset               int      `json:"vidOffset"`
	FloorIconOutlines       bool     `json:"floorIconOutlines"`
	StickToFloors           bool     `json:"stickToFloors"`
	PlanetEase              string   `json:"planetEase"`
	PlanetEaseParts         int      `json:"planetEaseParts"`
	PlanetEasePartBehavior  string   `json:"planetEasePartBehavior"`
	CustomClass             string   `json:"customClass"`
	DefaultTextColor        string   `json:"defaultTextColor"`
	DefaultTextShadowColor  string   `json:"defaultTextShadowColor"`
	CongratsText            string   `json:"congratsText"`
	PerfectText             string   `json:"perfectText"`
	LegacyFlash             bool     `json:"legacyFlash"`
	LegacyCamRelativeTo     bool     `json:"legacyCamRelativeTo"`
	LegacySpriteTiles       bool     `json:"legacySpriteTiles"`
	LegacyTween             bool     `json:"legacyTween"`
	DisableV15Features      bool     `json:"disableV15Features"`
}

const (
	// StillBPM is the song tempo written into still image levels.
	StillBPM = 100
	// VideoBPM is the song tempo written into video levels.
	VideoBPM = 60
)

// NewSettings returns the fixed settings template with the camera
// framing and tempo merged in.
func NewSettings(cam Camera, bpm int) Settings {
	return Settings{
		Version:                 15,
		SpecialArtistType:       "None",
		SeparateCountdownTime:   true,
		PreviewIconColor:        "003f52",
		PreviewSongDuration:     10,
		Difficulty:              1,
		RequiredMods:            []string{},
		BPM:                     bpm,
		Volume:                  100,
		Pitch:                   100,
		Hitsound:                "Kick",
		HitsoundVolume:          100,
		CountdownTicks:          4,
		TileShape:               "Long",
		TrackColorType:          "Single",
		TrackColor:              "debb7b",
		SecondaryTrackColor:     "ffffff",
		TrackColorAnimDuration:  2,
		TrackColorPulse:         "None",
		TrackPulseLength:        10,
		TrackStyle:              "Standard",
		TrackTextureScale:       1,
		TrackGlowIntensity:      100,
		TrackAnimation:          "None",
		BeatsAhead:              3,
		TrackDisappearAnimation: "None",
		BeatsBehind:             4,
		BackgroundColor:         "000000",
		ShowDefaultBGIfNoImage:  true,
		ShowDefaultBGTile:       true,
		DefaultBGTileColor:      "101121",
		DefaultBGShapeType:      "Default",
		DefaultBGShapeColor:     "ffffff",
		BGImageColor:            "ffffff",
		Parallax:                [2]int{100, 100},
		BGDisplayMode:           "FitToScreen",
		ImageSmoothing:          true,
		ScalingRatio:            100,
		RelativeTo:              "Tile",
		Position:                cam.Position,
		Zoom:                    cam.Zoom,
		PulseOnFloor:            true,
		StickToFloors:           true,
		PlanetEase:              "Linear",
		PlanetEaseParts:         1,
		PlanetEasePartBehavior:  "Mirror",
		DefaultTextColor:        "ffffff",
		DefaultTextShadowColor:  "00000050",
	}
}
