// Package gamedata holds the embedded creature definitions and helpers for
// reading them.
package gamedata

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed *.json
var dataFS embed.FS

// Load decodes an embedded JSON file into T. Unknown fields are rejected so
// that typos in data files fail loudly instead of silently zeroing a value.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("read embedded %s: %w", filename, err)
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&result); err != nil {
		return result, fmt.Errorf("decode %s: %w", filename, err)
	}
	return result, nil
}
