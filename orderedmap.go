package img2adofai

import (
	"bytes"
	"encoding/json"
)

// OrderedMap is a JSON object that remembers the order its keys were
// inserted in. Level files read through Parse decode their objects into
// OrderedMaps so that a round trip keeps the editor's key order. It is
// not safe for concurrent mutation.
type OrderedMap struct {
	keys   []string
	values map[string]any
}

// NewOrderedMap creates a new OrderedMap
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{
		keys:   make([]string, 0),
		values: make(map[string]any),
	}
}

// Set adds a Key-Value pair to the map
func (om *OrderedMap) Set(key string, value any) {
	if _, exists := om.values[key]; !exists {
		om.keys = append(om.keys, key)
	}
	om.values[key] = value
}

// Get retrieves a Value from the map by Key
func (om *OrderedMap) Get(key string) (any, bool) {
	val, exists := om.values[key]
	return val, exists
}

// Keys returns a slice of keys in the order they were inserted
func (om *OrderedMap) Keys() []string {
	return append([]string{}, om.keys...)
}

// Iterate calls the provided function for each Key-Value pair in order
func (om *OrderedMap) Iterate(f func(key string, value any)) {
	for _, k := range om.keys {
		f(k, om.values[k])
	}
}

// Len returns the number of elements in the map
func (om *OrderedMap) Len() int {
	return len(om.keys)
}

// MarshalJSON writes the object with its keys in insertion order.
func (om *OrderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range om.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(om.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
