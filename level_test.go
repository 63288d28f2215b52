package img2adofai

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCameraFor(t *testing.T) {
	tests := []struct {
		width, height int
		want          Camera
	}{
		{300, 300, Camera{Position: [2]int{150, -150}, Zoom: 5000}},
		{600, 300, Camera{Position: [2]int{300, -150}, Zoom: 10000}},
		{300, 600, Camera{Position: [2]int{150, -300}, Zoom: 10000}},
		{3, 3, Camera{Position: [2]int{2, -2}, Zoom: 50}},
		{1, 1, Camera{Position: [2]int{1, -1}, Zoom: 17}},
		{0, 0, Camera{Position: [2]int{0, 0}, Zoom: 0}},
	}
	for _, tt := range tests {
		if got := CameraFor(tt.width, tt.height); got != tt.want {
			t.Errorf("CameraFor(%d, %d) = %+v, want %+v", tt.width, tt.height, got, tt.want)
		}
	}
}

func TestSettingsCamera(t *testing.T) {
	lvl, err := BuildStill(solidGrid(300, 300, red), 300, 300)
	if err != nil {
		t.Fatal(err)
	}
	if lvl.Settings.Zoom != 5000 || lvl.Settings.Position != [2]int{150, -150} {
		t.Errorf("settings camera %v zoom %d", lvl.Settings.Position, lvl.Settings.Zoom)
	}
	if lvl.Settings.Version != 15 || lvl.Settings.RelativeTo != "Tile" {
		t.Errorf("unexpected settings template %+v", lvl.Settings)
	}
}

func TestMarshalLevelFieldOrder(t *testing.T) {
	lvl, err := BuildStill(stripeGrid(2, 2, red, blue), 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	data, err := MarshalLevel(lvl)
	if err != nil {
		t.Fatal(err)
	}

	text := string(data)
	order := []string{`"angleData"`, `"settings"`, `"version": 15`, `"bpm": 100`,
		`"actions"`, `"eventType": "MoveTrack"`, `"eventType": "ColorTrack"`,
		`"eventType": "PositionTrack"`, `"decorations": []`}
	last := -1
	for _, key := range order {
		i := strings.Index(text, key)
		if i < 0 {
			t.Fatalf("%s missing from level", key)
		}
		if i < last {
			t.Errorf("%s out of order", key)
		}
		last = i
	}
	if !strings.Contains(text, `"startTile": [`) || !strings.Contains(text, `"Start"`) {
		t.Error("tile references should encode as [index, anchor]")
	}
	if !strings.Contains(text, `"requiredMods": []`) {
		t.Error("requiredMods should encode as an empty array")
	}
}

func TestTileRefJSON(t *testing.T) {
	ref := TileRef{Index: 7, Anchor: AnchorThisTile}
	data, err := json.Marshal(ref)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `[7,"ThisTile"]` {
		t.Errorf("marshaled as %s", data)
	}
	var back TileRef
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back != ref {
		t.Errorf("got %+v, want %+v", back, ref)
	}
	if err := json.Unmarshal([]byte(`[1]`), &back); err == nil {
		t.Error("expected error for a one-element tile reference")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteLevel(t *testing.T) {
	lvl, err := BuildStill(solidGrid(2, 1, red), 2, 1)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WriteLevel(&buf, lvl); err != nil {
		t.Fatal(err)
	}
	if !json.Valid(buf.Bytes()) {
		t.Error("written level is not valid JSON")
	}

	err = WriteLevel(failingWriter{}, lvl)
	if !errors.Is(err, ErrSinkWrite) {
		t.Errorf("expected ErrSinkWrite, got %v", err)
	}
}

func TestSaveLevel(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "out.adofai")

	lvl, err := BuildStill(stripeGrid(3, 3, red, green), 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := SaveLevel(path, lvl); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.adofai" {
		t.Errorf("directory holds %v, want only out.adofai", entries)
	}

	doc, err := ReadLevelFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	s := Summarize(doc)
	if s.Tiles != 9 || s.Width != 3 || s.Version != 15 || s.BPM != StillBPM {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.Events["PositionTrack"] != 2 || s.Events["MoveTrack"] != 1 {
		t.Errorf("unexpected event counts %v", s.Events)
	}
	if s.Path != "RRRRRRRRR" {
		t.Errorf("path = %q", s.Path)
	}
}

func TestSaveLevelMissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.adofai")
	lvl, err := BuildStill(solidGrid(1, 1, red), 1, 1)
	if err != nil {
		t.Fatal(err)
	}

	err = SaveLevel(path, lvl)
	if !errors.Is(err, ErrSinkWrite) {
		t.Fatalf("expected ErrSinkWrite, got %v", err)
	}
	var sinkErr *SinkWriteError
	if !errors.As(err, &sinkErr) || sinkErr.Path != path {
		t.Errorf("unexpected error %v", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("OS error should be wrapped unchanged, got %v", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("no file should be left behind")
	}
}

func TestReadLevelFilePathData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.adofai")
	content := "\ufeff{\"pathData\": \"RRUL\", \"settings\": {\"version\": 5, \"bpm\": 120,},\n\"actions\": [],}"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := ReadLevelFile(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	s := Summarize(doc)
	if s.Tiles != 4 || s.Version != 5 || s.BPM != 120 || s.Width != 4 {
		t.Errorf("unexpected summary %+v", s)
	}
	if s.Path != "RRUL" {
		t.Errorf("path = %q", s.Path)
	}
}

func TestReadLevelFileErrors(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return p
	}

	if _, err := ReadLevelFile(filepath.Join(dir, "missing.adofai"), nil); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := ReadLevelFile(write("array.adofai", `[1,2]`), nil); err == nil {
		t.Error("expected error for non-object level")
	}
	_, err := ReadLevelFile(write("bad-path.adofai", `{"pathData":"RX#"}`), nil)
	if !errors.Is(err, ErrUnknownOpcode) {
		t.Errorf("expected ErrUnknownOpcode, got %v", err)
	}
	_, err = ReadLevelFile(write("garbage.adofai", `not a level`), nil)
	if !errors.Is(err, ErrJSONRepairFailed) {
		t.Errorf("expected ErrJSONRepairFailed, got %v", err)
	}
}
