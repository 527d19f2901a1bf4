// gal/errors.go
// Copyright(c) 2024-2026 gal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gal

import "errors"

// Contract violations
var (
	ErrItemAlreadyOpen = errors.New("An unsized item is already open in the container")
	ErrNoOpenItem      = errors.New("No item is open in the container")
	ErrItemNotFinished = errors.New("Item has not been finished")
	ErrItemFinished    = errors.New("Item has been finished and must be reopened to add vertices")
	ErrItemFreed       = errors.New("Item has already been freed")
	ErrUnknownItem     = errors.New("Item is not allocated in the container")
	ErrInvalidSize     = errors.New("Invalid vertex count")
)

// Resource and consistency errors
var (
	ErrAllocation    = errors.New("Unable to allocate vertex buffer storage")
	ErrCorrupt       = errors.New("Container slots are inconsistent")
	ErrStaleUpload   = errors.New("Container was modified after the upload buffer was loaded")
	ErrInvalidConfig = errors.New("Invalid container configuration")
)
