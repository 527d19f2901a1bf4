// util/json_test.go
// Copyright(c) 2024-2026 gal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"strings"
	"testing"
)

func TestFindDuplicateJSONKeys(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected []DuplicateJSONKey
	}{
		{
			name: "no duplicates",
			json: `{"initial_capacity": 1, "max_vertices": 2}`,
		},
		{
			name:     "duplicate at root",
			json:     `{"max_vertices": 1, "initial_capacity": 2, "max_vertices": 3}`,
			expected: []DuplicateJSONKey{{Path: "", Key: "max_vertices"}},
		},
		{
			name:     "duplicate in nested object",
			json:     `{"limits": {"max": 1, "max": 2}, "after": 3}`,
			expected: []DuplicateJSONKey{{Path: "limits", Key: "max"}},
		},
		{
			name: "same key in sibling objects",
			json: `{"items": [{"x": 1}, {"x": 2}]}`,
		},
		{
			name:     "duplicate inside array element",
			json:     `{"items": [{"x": 1, "x": 2}]}`,
			expected: []DuplicateJSONKey{{Path: "items", Key: "x"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindDuplicateJSONKeys([]byte(tt.json))
			if len(result) != len(tt.expected) {
				t.Fatalf("expected %d duplicates, got %+v", len(tt.expected), result)
			}
			for i, exp := range tt.expected {
				if result[i] != exp {
					t.Errorf("duplicate %d: expected %+v, got %+v", i, exp, result[i])
				}
			}
		})
	}
}

func TestUnmarshalJSON(t *testing.T) {
	type limits struct {
		Min int `json:"min"`
		Max int `json:"max"`
	}

	var l limits
	if err := UnmarshalJSON(strings.NewReader(`{"min": 1, "max": 10}`), &l); err != nil {
		t.Fatal(err)
	} else if l != (limits{Min: 1, Max: 10}) {
		t.Errorf("got %+v", l)
	}

	for _, bad := range []struct{ json, msg string }{
		{"{\"min\": 1,\n \"max\": }", "line 2"},
		{"{\"min\": 1,\n\n  \"max\": \"ten\"}", "line 3"},
		{`{"min": 1, "min": 2}`, `Duplicate key "min"`},
		{`{"min": 1, "mid": 2}`, "mid"},
	} {
		var l limits
		err := UnmarshalJSONBytes([]byte(bad.json), &l)
		if err == nil {
			t.Errorf("%q: expected an error", bad.json)
		} else if !strings.Contains(err.Error(), bad.msg) {
			t.Errorf("%q: error %q does not mention %q", bad.json, err, bad.msg)
		}
	}
}
