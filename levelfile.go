package img2adofai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Extension is the file extension of ADOFAI levels.
const Extension = ".adofai"

// MarshalLevel encodes a level the way the converter writes it: indented
// by two spaces, without HTML escaping.
func MarshalLevel(lvl *Level) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(lvl); err != nil {
		return nil, fmt.Errorf("encoding level: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteLevel encodes the whole level before writing it to w in a single
// call.
func WriteLevel(w io.Writer, lvl *Level) error {
	data, err := MarshalLevel(lvl)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return &SinkWriteError{Err: err}
	}
	return nil
}

// SaveLevel writes lvl to path. The document goes to a temporary file in
// the same directory which is renamed over path once complete, so a
// failed write never leaves a truncated level behind.
func SaveLevel(path string, lvl *Level) error {
	data, err := MarshalLevel(lvl)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &SinkWriteError{Path: path, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &SinkWriteError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &SinkWriteError{Path: path, Err: err}
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return &SinkWriteError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &SinkWriteError{Path: path, Err: err}
	}
	return nil
}

// ReadLevelFile reads and repairs a level file. Levels saved in the
// legacy format carry "pathData" instead of "angleData"; for those the
// path is decoded and stored under "angleData".
func ReadLevelFile(path string, logger *slog.Logger) (*OrderedMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	r := Reader{Logger: logger}
	v, err := r.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc, ok := v.(*OrderedMap)
	if !ok {
		return nil, fmt.Errorf("%s: level is %T, not an object", path, v)
	}
	if err := expandPathData(doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

func expandPathData(doc *OrderedMap) error {
	raw, ok := doc.Get("pathData")
	if !ok {
		return nil
	}
	if _, ok := doc.Get("angleData"); ok {
		return nil
	}
	path, ok := raw.(string)
	if !ok {
		return fmt.Errorf("pathData is %T, not a string", raw)
	}
	angles, err := DecodePath(path)
	if err != nil {
		return fmt.Errorf("decoding pathData: %w", err)
	}
	arr := make([]any, len(angles))
	for i, a := range angles {
		arr[i] = a
	}
	doc.Set("angleData", arr)
	return nil
}

// LevelSummary is an overview of a parsed level.
type LevelSummary struct {
	Version int
	BPM     float64
	Tiles   int
	Width   int
	Events  map[string]int
	Path    string
}

// Summarize inspects a parsed level document.
func Summarize(doc *OrderedMap) LevelSummary {
	s := LevelSummary{Events: make(map[string]int)}
	angles := arrayField(doc, "angleData")
	s.Tiles = len(angles)
	if path, err := EncodeAngles(numbers(angles)); err == nil {
		s.Path = path
	}
	if settings, ok := objectField(doc, "settings"); ok {
		s.Version = int(numberField(settings, "version", 0))
		s.BPM = numberField(settings, "bpm", 0)
	}
	for _, a := range arrayField(doc, "actions") {
		ev, ok := a.(*OrderedMap)
		if !ok {
			continue
		}
		t, _ := stringField(ev, "eventType")
		s.Events[t]++
		if t == string(PositionTrack) && s.Width == 0 {
			if off := arrayField(ev, "positionOffset"); len(off) > 0 {
				s.Width = -int(toFloat(off[0]))
			}
		}
	}
	// A damaged offset must not widen the grid past the tile count.
	if s.Width <= 0 || s.Width > s.Tiles {
		s.Width = s.Tiles
	}
	return s
}

func arrayField(m *OrderedMap, key string) []any {
	v, _ := m.Get(key)
	arr, _ := v.([]any)
	return arr
}

func objectField(m *OrderedMap, key string) (*OrderedMap, bool) {
	v, _ := m.Get(key)
	obj, ok := v.(*OrderedMap)
	return obj, ok
}

func stringField(m *OrderedMap, key string) (string, bool) {
	v, _ := m.Get(key)
	s, ok := v.(string)
	return s, ok
}

func numberField(m *OrderedMap, key string, def float64) float64 {
	v, ok := m.Get(key)
	if !ok {
		return def
	}
	return toFloat(v)
}

func numbers(arr []any) []float64 {
	out := make([]float64, len(arr))
	for i, v := range arr {
		out[i] = toFloat(v)
	}
	return out
}

// toFloat converts the numeric forms a parsed document can hold.
func toFloat(v any) float64 {
	switch n := v.(type) {
	case json.Number:
		f, _ := n.Float64()
		return f
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}
