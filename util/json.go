// util/json.go
// Copyright(c) 2024-2026 gal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

///////////////////////////////////////////////////////////////////////////
// JSON

// DuplicateJSONKey records an object key that appears more than once in
// the same JSON object.
type DuplicateJSONKey struct {
	Path string // dotted path to the object holding the key
	Key  string
}

func (d DuplicateJSONKey) String() string {
	if d.Path == "" {
		return d.Key
	}
	return d.Path + "." + d.Key
}

// FindDuplicateJSONKeys returns all of the keys in data that are repeated
// within a single object. Invalid JSON is reported by the decoder later;
// here scanning just stops at the first bad token.
func FindDuplicateJSONKeys(data []byte) []DuplicateJSONKey {
	dec := json.NewDecoder(bytes.NewReader(data))
	var dups []DuplicateJSONKey
	findDuplicates(dec, nil, &dups)
	return dups
}

// findDuplicates consumes one JSON value from dec.
func findDuplicates(dec *json.Decoder, path []string, dups *[]DuplicateJSONKey) bool {
	tok, err := dec.Token()
	if err != nil {
		return false
	}

	switch tok {
	case json.Delim('{'):
		seen := make(map[string]bool)
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return false
			}
			key, _ := kt.(string)
			if seen[key] {
				*dups = append(*dups, DuplicateJSONKey{Path: strings.Join(path, "."), Key: key})
			}
			seen[key] = true
			if !findDuplicates(dec, append(path, key), dups) {
				return false
			}
		}
		_, err := dec.Token() // '}'
		return err == nil

	case json.Delim('['):
		for dec.More() {
			if !findDuplicates(dec, path, dups) {
				return false
			}
		}
		_, err := dec.Token() // ']'
		return err == nil
	}
	return true
}

// UnmarshalJSON reads all of r and decodes it as UnmarshalJSONBytes does.
func UnmarshalJSON[T any](r io.Reader, out *T) error {
	// The contents are needed as bytes to map error offsets to lines.
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return UnmarshalJSONBytes(b, out)
}

// UnmarshalJSONBytes decodes b into out, rejecting object keys that don't
// correspond to fields of T and keys that are given more than once. Syntax
// and type errors report the line and character where they occurred.
func UnmarshalJSONBytes[T any](b []byte, out *T) error {
	if dups := FindDuplicateJSONKeys(b); len(dups) > 0 {
		var errs []error
		for _, d := range dups {
			errs = append(errs, fmt.Errorf("Duplicate key %q", d.String()))
		}
		return errors.Join(errs...)
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	err := dec.Decode(out)
	if err == nil {
		return nil
	}

	decodeOffset := func(offset int64) (line, char int) {
		line, char = 1, 1
		for i := 0; i < int(offset) && i < len(b); i++ {
			if b[i] == '\n' {
				line++
				char = 1
			} else {
				char++
			}
		}
		return
	}

	var serr *json.SyntaxError
	var terr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &serr):
		line, char := decodeOffset(serr.Offset)
		return fmt.Errorf("Error at line %d, character %d: %w", line, char, serr)

	case errors.As(err, &terr):
		line, char := decodeOffset(terr.Offset)
		return fmt.Errorf("Error at line %d, character %d: %s value for %q invalid for type %s",
			line, char, terr.Value, terr.Field, terr.Type)

	default:
		return err
	}
}
