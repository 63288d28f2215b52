package img2adofai

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

// plain converts parsed values into map/slice form for comparison.
func plain(v any) any {
	switch t := v.(type) {
	case *OrderedMap:
		m := make(map[string]any)
		t.Iterate(func(k string, v any) { m[k] = plain(v) })
		return m
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plain(e)
		}
		return out
	case json.Number:
		f, _ := t.Float64()
		return f
	}
	return v
}

func TestParseWithStage(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		stage ParseStage
	}{
		{"valid", `{"a":1,"b":[true,null,"x"]}`, `{"a":1,"b":[true,null,"x"]}`, StageStrict},
		{"valid with newlines", "{\n\t\"a\": 1\n}", `{"a":1}`, StageStrict},
		{"byte order mark", "\ufeff{\"a\":1}", `{"a":1}`, StageStrict},
		{"control characters", "{\"a\":\x001}", `{"a":1}`, StageStrict},
		{"trailing comma", `{"a":1,}`, `{"a":1}`, StageRepaired},
		{"trailing comma in array", `{"a":[1,2,],}`, `{"a":[1,2]}`, StageRepaired},
		{"unclosed", `{"a":[1,2`, `{"a":[1,2]}`, StageRepaired},
		{"unclosed nested", `{"a":{"b":[{"c":1`, `{"a":{"b":[{"c":1}]}}`, StageRepaired},
		{"unclosed after trailing comma", `{"a":[1,2,`, `{"a":[1,2]}`, StageRepaired},
		{"bracket inside string", `{"a":"[{","b":[1`, `{"a":"[{","b":[1]}`, StageRepaired},
		{"truncated string", `{"a":"abc`, `{"a":"abc"}`, StageRepaired},
		{"double comma", `{"a":[1,,2]}`, `{"a":[1,2]}`, StageAggressive},
		{"missing comma after array", `{"a":[1]"b":2}`, `{"a":[1],"b":2}`, StageAggressive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, stage, err := ParseWithStage(tt.raw)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if stage != tt.stage {
				t.Errorf("stage = %v, want %v", stage, tt.stage)
			}
			var want any
			if err := json.Unmarshal([]byte(tt.want), &want); err != nil {
				t.Fatal(err)
			}
			if got := plain(v); !reflect.DeepEqual(got, want) {
				t.Errorf("got %#v, want %#v", got, want)
			}
		})
	}
}

func TestParseFailure(t *testing.T) {
	for _, raw := range []string{``, `{"a" 1}`, `nonsense`, `{"a":1}}`} {
		_, err := Parse(raw)
		if !errors.Is(err, ErrJSONRepairFailed) {
			t.Errorf("Parse(%q): expected ErrJSONRepairFailed, got %v", raw, err)
		}
		var repairErr *JSONRepairError
		if errors.As(err, &repairErr) && repairErr.Err == nil {
			t.Errorf("Parse(%q): repair error carries no diagnostic", raw)
		}
	}
}

func TestParsePreservesKeyOrder(t *testing.T) {
	v, err := Parse(`{"zeta":1,"alpha":{"y":1,"x":2},"mid":3,`)
	if err != nil {
		t.Fatal(err)
	}
	doc := v.(*OrderedMap)
	if got := doc.Keys(); !reflect.DeepEqual(got, []string{"zeta", "alpha", "mid"}) {
		t.Errorf("keys = %v", got)
	}
	inner, _ := doc.Get("alpha")
	if got := inner.(*OrderedMap).Keys(); !reflect.DeepEqual(got, []string{"y", "x"}) {
		t.Errorf("inner keys = %v", got)
	}

	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `{"zeta":1,"alpha":{"y":1,"x":2},"mid":3}` {
		t.Errorf("re-encoded as %s", out)
	}
}

func TestParseKeepsNumberText(t *testing.T) {
	v, err := Parse(`{"scale":[100,179.6407]}`)
	if err != nil {
		t.Fatal(err)
	}
	scale, _ := v.(*OrderedMap).Get("scale")
	if n := scale.([]any)[1].(json.Number); n.String() != "179.6407" {
		t.Errorf("number = %s", n)
	}
}

func TestCloseBrackets(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`{}`, `{}`},
		{`{"a":[1,2`, `{"a":[1,2]}`},
		{`[[[`, `[[[]]]`},
		{`{"a":"}"`, `{"a":"}"}`},
		{`{"a":"x\"`, `{"a":"x\""}`},
		{`{"a":"x\`, `{"a":"x\\"}`},
		{`[1]]`, `[1]]`},
	}
	for _, tt := range tests {
		if got := closeBrackets(tt.in); got != tt.want {
			t.Errorf("closeBrackets(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReadGeneratedLevel(t *testing.T) {
	lvl, err := BuildStill(stripeGrid(3, 2, red, blue), 3, 2)
	if err != nil {
		t.Fatal(err)
	}
	data, err := MarshalLevel(lvl)
	if err != nil {
		t.Fatal(err)
	}
	v, stage, err := ParseWithStage(string(data))
	if err != nil || stage != StageStrict {
		t.Fatalf("generated level should parse strictly: stage %v, err %v", stage, err)
	}
	doc := v.(*OrderedMap)
	if got := doc.Keys(); !reflect.DeepEqual(got, []string{"angleData", "settings", "actions", "decorations"}) {
		t.Errorf("top-level keys = %v", got)
	}

	// Cut the file after the second to last action: the reader recovers
	// everything before the cut.
	cut := bytes.LastIndex(data, []byte("},"))
	v, err = Parse(string(data[:cut+2]))
	if err != nil {
		t.Fatalf("truncated level: %v", err)
	}
	actions := arrayField(v.(*OrderedMap), "actions")
	if len(actions) != len(lvl.Actions)-1 {
		t.Errorf("recovered %d actions, want %d", len(actions), len(lvl.Actions)-1)
	}
}
