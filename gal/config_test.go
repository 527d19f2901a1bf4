// gal/config_test.go
// Copyright(c) 2024-2026 gal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gal.json")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{"max_vertices": 4096}`))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxVertices != 4096 || cfg.InitialCapacity != DefaultConfig().InitialCapacity {
		t.Errorf("got %+v", cfg)
	}

	if _, err := LoadConfig(writeConfig(t, `{"initial_capacity": 64, "max_vertices": 8}`)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("inconsistent limits gave %v, expected ErrInvalidConfig", err)
	}
	if _, err := LoadConfig(writeConfig(t, `{"initial_capacity": 64, "growth": 2}`)); err == nil {
		t.Errorf("unknown field was accepted")
	}
	if _, err := LoadConfig(writeConfig(t, `{"max_vertices": 8, "max_vertices": 16}`)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("repeated field gave %v, expected ErrInvalidConfig", err)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file gave %v", err)
	}
}
