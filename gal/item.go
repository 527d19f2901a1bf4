// gal/item.go
// Copyright(c) 2024-2026 gal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gal

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/opencad/gal/math"
)

type itemState int

const (
	itemOpen itemState = iota
	itemFinished
	itemReopened
	itemFreed
)

func (s itemState) String() string {
	return [...]string{"open", "finished", "reopened", "freed"}[s]
}

// Item is the handle for one drawable entity's run of vertices in a
// Container. An item is created open: vertices pushed to it are appended
// to the container until Finish fixes the item's size. The item's color
// and shader parameters, and its transform if one is set, are applied to
// each vertex as it is pushed.
//
// The container doesn't own its items, but the item's storage lives in
// the container until Free is called.
type Item struct {
	c     *Container
	id    ItemID
	state itemState
	// dirty is set while the item's final size or location has not yet
	// been fixed in the container.
	dirty bool

	transform    mgl32.Mat4
	hasTransform bool
	color        RGBA
	shader       [ShaderStride]float32
}

// NewItem starts a new open item in the container. It fails if another
// item is already open there.
func NewItem(c *Container) (*Item, error) {
	id, err := c.StartItem()
	if err != nil {
		return nil, err
	}
	return &Item{
		c:     c,
		id:    id,
		state: itemOpen,
		dirty: true,
		color: RGBA{R: 1, G: 1, B: 1, A: 1},
	}, nil
}

func (it *Item) ID() ItemID { return it.id }

// Size returns the number of vertices the item holds in the container.
// It follows the item's slot, so it reflects Container.Resize calls made
// with the item's id.
func (it *Item) Size() int {
	if it.state == itemFreed {
		return 0
	}
	if id, s, ok := it.c.OpenItem(); ok && id == it.id {
		return s.Size
	}
	s, _ := it.c.Slot(it.id)
	return s.Size
}

func (it *Item) IsDirty() bool { return it.dirty }

func (it *Item) String() string {
	return fmt.Sprintf("item %d (%s, %d vertices)", it.id, it.state, it.Size())
}

// SetTransform sets a transformation that is applied to the positions of
// subsequently pushed vertices.
func (it *Item) SetTransform(m mgl32.Mat4) {
	it.transform = m
	it.hasTransform = true
}

func (it *Item) ClearTransform() {
	it.hasTransform = false
}

func (it *Item) Transform() (mgl32.Mat4, bool) {
	return it.transform, it.hasTransform
}

// SetColor sets the color given to subsequently pushed vertices.
func (it *Item) SetColor(c RGBA) { it.color = c }

func (it *Item) Color() RGBA { return it.color }

// SetShader sets the shader parameters given to subsequently pushed
// vertices.
func (it *Item) SetShader(s [ShaderStride]float32) { it.shader = s }

func (it *Item) Shader() [ShaderStride]float32 { return it.shader }

// stamp applies the item's transform, color, and shader to v.
func (it *Item) stamp(v Vertex) Vertex {
	if it.hasTransform {
		p := math.TransformPoint(&it.transform, v.Position())
		v.X, v.Y, v.Z = p[0], p[1], p[2]
	}
	v.setColor(it.color)
	v.Shader = it.shader
	return v
}

func (it *Item) checkPush() error {
	switch it.state {
	case itemFinished:
		return fmt.Errorf("%s: %w", it, ErrItemFinished)
	case itemFreed:
		return fmt.Errorf("item %d: %w", it.id, ErrItemFreed)
	}
	return nil
}

// PushVertex adds a vertex to the item after applying the item's
// transform, color, and shader to it. v is passed by value; the caller's
// copy is never modified.
func (it *Item) PushVertex(v Vertex) error {
	if err := it.checkPush(); err != nil {
		return err
	}
	if err := it.c.Add(it.id, it.stamp(v)); err != nil {
		return err
	}
	it.dirty = true
	return nil
}

// PushVertices adds all of the given vertices, in order, as PushVertex
// does. If there isn't room for all of them, none are added.
func (it *Item) PushVertices(vs []Vertex) error {
	if err := it.checkPush(); err != nil {
		return err
	}
	if len(vs) == 0 {
		return nil
	}

	stamped := make([]Vertex, len(vs))
	for i, v := range vs {
		stamped[i] = it.stamp(v)
	}
	if err := it.c.AddVertices(it.id, stamped); err != nil {
		return err
	}
	it.dirty = true
	return nil
}

// Finish fixes the item's size in the container. It is a no-op if the
// item isn't dirty.
func (it *Item) Finish() error {
	if it.state == itemFreed {
		return fmt.Errorf("item %d: %w", it.id, ErrItemFreed)
	}
	if !it.dirty {
		if it.state == itemReopened {
			it.state = itemFinished
		}
		return nil
	}

	if it.state == itemOpen {
		if id, _, ok := it.c.OpenItem(); !ok || id != it.id {
			return fmt.Errorf("item %d: %w", it.id, ErrUnknownItem)
		}
		if _, err := it.c.EndItem(); err != nil {
			return err
		}
	}

	it.state = itemFinished
	it.dirty = false
	return nil
}

// Reopen allows vertices to be pushed to a finished item again; each one
// is spliced in at the end of the item's slot. Call Finish when done.
func (it *Item) Reopen() error {
	switch it.state {
	case itemOpen:
		return fmt.Errorf("item %d: %w", it.id, ErrItemNotFinished)
	case itemFreed:
		return fmt.Errorf("item %d: %w", it.id, ErrItemFreed)
	}
	it.state = itemReopened
	return nil
}

// GetVertices finishes the item if needed and returns its vertices in
// the order they were pushed. The slice aliases the container's buffer
// and is only valid until the container is next modified.
func (it *Item) GetVertices() ([]Vertex, error) {
	if err := it.Finish(); err != nil {
		return nil, err
	}
	return it.c.GetVertices(it.id)
}

// Slot finishes the item if needed and returns its slot in the container.
func (it *Item) Slot() (Slot, error) {
	if err := it.Finish(); err != nil {
		return Slot{}, err
	}
	s, ok := it.c.Slot(it.id)
	if !ok {
		return Slot{}, fmt.Errorf("item %d: %w", it.id, ErrUnknownItem)
	}
	return s, nil
}

// ChangeColor sets the color of all of the item's vertices, leaving their
// positions and shader parameters unchanged. The new color is also used
// for any vertices pushed after the item is reopened.
func (it *Item) ChangeColor(c RGBA) error {
	vs, err := it.GetVertices()
	if err != nil {
		return err
	}
	for i := range vs {
		vs[i].setColor(c)
	}
	it.color = c
	it.c.generation++
	return nil
}

// Free releases the item's storage in the container. It may be called
// whether or not the item was finished; calling it again returns
// ErrItemFreed.
func (it *Item) Free() error {
	if it.state == itemFreed {
		return fmt.Errorf("item %d: %w", it.id, ErrItemFreed)
	}
	err := it.c.Free(it.id)
	it.state = itemFreed
	it.dirty = false
	return err
}
