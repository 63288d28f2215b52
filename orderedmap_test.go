package img2adofai

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestOrderedMap(t *testing.T) {
	om := NewOrderedMap()
	om.Set("b", 1)
	om.Set("a", 2)
	om.Set("c", 3)
	om.Set("a", 4)

	if om.Len() != 3 {
		t.Errorf("Len() = %d, want 3", om.Len())
	}
	if got := om.Keys(); !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Errorf("Keys() = %v", got)
	}
	if v, ok := om.Get("a"); !ok || v != 4 {
		t.Errorf("Get(a) = %v, %v", v, ok)
	}

	if _, ok := om.Get("z"); ok {
		t.Error("Get(z) found a missing key")
	}
	var visited []string
	om.Iterate(func(k string, v any) { visited = append(visited, k) })
	if !reflect.DeepEqual(visited, []string{"b", "a", "c"}) {
		t.Errorf("Iterate visited %v", visited)
	}

	data, err := json.Marshal(om)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"b":1,"a":4,"c":3}` {
		t.Errorf("marshaled as %s", data)
	}
}
