package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// ExtensionState is a bag of JSON values keyed by name. Its contents are
// opaque to the code carrying it around.
type ExtensionState map[string]json.RawMessage

// Set stores v under key after marshalling it to JSON.
func (e *ExtensionState) Set(k string, v any) error {
	if *e == nil {
		*e = ExtensionState{}
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal extension %q: %w", k, err)
	}

	(*e)[k] = json.RawMessage(b)
	return nil
}

// Get unmarshals the extension value at key into out.
// Returns (found=false, nil) if not present.
func (e ExtensionState) Get(key string, out any) (bool, error) {
	if e == nil {
		return false, nil
	}

	raw, ok := e[key]
	if !ok || len(raw) == 0 {
		return false, nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("unmarshal extension %q: %w", key, err)
	}
	return true, nil
}

// Delete removes the extension key, if present.
func (e ExtensionState) Delete(key string) {
	if e == nil {
		return
	}
	delete(e, key)
}

// Empty reports whether no keys are set.
func (e ExtensionState) Empty() bool {
	return len(e) == 0
}

// Equal reports whether both states hold the same keys with byte-identical
// values. A nil state equals an empty one.
func (e ExtensionState) Equal(other ExtensionState) bool {
	return maps.EqualFunc(e, other, func(a, b json.RawMessage) bool {
		return bytes.Equal(a, b)
	})
}

// Clone returns a deep copy. Cloning an empty state returns nil.
func (e ExtensionState) Clone() ExtensionState {
	if len(e) == 0 {
		return nil
	}
	out := make(ExtensionState, len(e))
	for k, v := range e {
		out[k] = bytes.Clone(v)
	}
	return out
}
