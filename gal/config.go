// gal/config.go
// Copyright(c) 2024-2026 gal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gal

import (
	"fmt"
	"os"

	"github.com/opencad/gal/util"
)

// Config controls how a Container allocates its vertex storage.
type Config struct {
	// InitialCapacity is the number of vertices allocated up front and the
	// minimum size of the buffer when it grows.
	InitialCapacity int `json:"initial_capacity"`
	// MaxVertices bounds the size of the buffer; requests that would take
	// it past this fail with ErrAllocation. Zero means no limit.
	MaxVertices int `json:"max_vertices"`
}

func DefaultConfig() Config {
	return Config{InitialCapacity: 1024}
}

func (c Config) Validate(e *util.ErrorLogger) {
	e.Push("container config")
	defer e.Pop()

	if c.InitialCapacity < 0 {
		e.ErrorString("initial_capacity %d must not be negative", c.InitialCapacity)
	}
	if c.MaxVertices < 0 {
		e.ErrorString("max_vertices %d must not be negative", c.MaxVertices)
	} else if c.MaxVertices > 0 && c.InitialCapacity > c.MaxVertices {
		e.ErrorString("initial_capacity %d exceeds max_vertices %d", c.InitialCapacity, c.MaxVertices)
	}
}

// LoadConfig reads a JSON-encoded Config from the given file. Fields that
// aren't present keep their DefaultConfig values; unknown or repeated
// fields are errors.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	if err := util.UnmarshalJSON(f, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w: %w", path, ErrInvalidConfig, err)
	}

	var e util.ErrorLogger
	cfg.Validate(&e)
	if err := e.Err(); err != nil {
		return cfg, fmt.Errorf("%s: %w: %w", path, ErrInvalidConfig, err)
	}
	return cfg, nil
}
