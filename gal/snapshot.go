// gal/snapshot.go
// Copyright(c) 2024-2026 gal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gal

import (
	"fmt"
	"io"

	"github.com/brunoga/deep"
	"github.com/opencad/gal/log"
	"github.com/opencad/gal/util"
)

// Snapshot is a copy of a container's finished items that is independent
// of the container and so remains valid as the container is modified. It
// can be encoded to persist baked geometry between sessions.
type Snapshot struct {
	Vertices []Vertex     `msgpack:"vertices"`
	Slots    []SlotRecord `msgpack:"slots"`
	NextID   ItemID       `msgpack:"next_id"`
}

type SlotRecord struct {
	ID     ItemID `msgpack:"id"`
	Offset int    `msgpack:"offset"`
	Size   int    `msgpack:"size"`
}

// Snapshot returns a copy of the container's finished items. The
// vertices of the open item, if any, are not included.
func (c *Container) Snapshot() *Snapshot {
	vs := c.vertices
	if c.open != nil {
		vs = vs[:c.open.offset]
	}

	s := Snapshot{Vertices: vs, NextID: c.nextID}
	for _, id := range c.Items() {
		sl := c.slots[id]
		s.Slots = append(s.Slots, SlotRecord{ID: id, Offset: sl.Offset, Size: sl.Size})
	}

	s = deep.MustCopy(s)
	return &s
}

// Encode writes the snapshot to w as zstd-compressed msgpack.
func (s *Snapshot) Encode(w io.Writer) error {
	return util.EncodeObject(w, s)
}

func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var s Snapshot
	if err := util.DecodeObject(r, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// RestoreContainer creates a container holding the snapshot's items,
// returning it along with a finished Item for each restored slot. Each
// item takes its color and shader parameters from its first vertex.
func RestoreContainer(s *Snapshot, cfg Config, lg *log.Logger) (*Container, map[ItemID]*Item, error) {
	c, err := NewContainer(cfg, lg)
	if err != nil {
		return nil, nil, err
	}
	if err := c.Reserve(len(s.Vertices)); err != nil {
		return nil, nil, err
	}
	c.vertices = append(c.vertices, s.Vertices...)

	items := make(map[ItemID]*Item, len(s.Slots))
	for _, r := range s.Slots {
		if _, ok := c.slots[r.ID]; ok {
			return nil, nil, fmt.Errorf("item %d: duplicate slot: %w", r.ID, ErrCorrupt)
		}
		if r.ID > s.NextID {
			return nil, nil, fmt.Errorf("item %d: id past next id %d: %w", r.ID, s.NextID, ErrCorrupt)
		}
		c.slots[r.ID] = Slot{Offset: r.Offset, Size: r.Size}
	}
	if err := c.Check(); err != nil {
		return nil, nil, err
	}
	c.nextID = s.NextID

	for _, r := range s.Slots {
		it := &Item{
			c:     c,
			id:    r.ID,
			state: itemFinished,
			color: RGBA{R: 1, G: 1, B: 1, A: 1},
		}
		if r.Size > 0 {
			v := c.vertices[r.Offset]
			it.color = v.Color()
			it.shader = v.Shader
		}
		items[r.ID] = it
	}

	return c, items, nil
}
