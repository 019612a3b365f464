package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Versions is the pinned-version record: package name to version
// string, preserving the order keys first appeared. JSON object keys
// keep their file order on read, and writes emit them back in the same
// order, so round trips do not reshuffle the file.
type Versions struct {
	keys   []string
	values map[string]string
}

func New() *Versions {
	return &Versions{values: map[string]string{}}
}

// Read loads a versions file. The top level must be a JSON object;
// entries with non-string values are dropped without error.
func Read(path string) (*Versions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New(path + " must contain a JSON object")
	}
	v := New()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%s: unexpected key token %v", path, keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		var val string
		if err := json.Unmarshal(raw, &val); err != nil {
			// Tolerated: wrong-typed values are skipped, not fatal.
			continue
		}
		v.Set(key, val)
	}
	return v, nil
}

// Get returns the pinned version for name.
func (v *Versions) Get(name string) (string, bool) {
	val, ok := v.values[name]
	return val, ok
}

// Set records a version, appending the key if it is new.
func (v *Versions) Set(name, version string) {
	if _, ok := v.values[name]; !ok {
		v.keys = append(v.keys, name)
	}
	v.values[name] = version
}

func (v *Versions) Len() int { return len(v.keys) }

// Keys returns the key order as a copy.
func (v *Versions) Keys() []string {
	return append([]string(nil), v.keys...)
}

// Clone returns an independent copy with the same key order.
func (v *Versions) Clone() *Versions {
	out := New()
	for _, k := range v.keys {
		out.Set(k, v.values[k])
	}
	return out
}

// Encode renders the mapping as a 4-space-indented JSON object with a
// trailing newline, keys in insertion order.
func (v *Versions) Encode() ([]byte, error) {
	var b bytes.Buffer
	if len(v.keys) == 0 {
		b.WriteString("{}\n")
		return b.Bytes(), nil
	}
	b.WriteString("{\n")
	for i, k := range v.keys {
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(v.values[k])
		if err != nil {
			return nil, err
		}
		b.WriteString("    ")
		b.Write(kb)
		b.WriteString(": ")
		b.Write(vb)
		if i < len(v.keys)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString("}\n")
	return b.Bytes(), nil
}

// Write persists the mapping to path in one whole-file rewrite.
func (v *Versions) Write(path string) error {
	data, err := v.Encode()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
