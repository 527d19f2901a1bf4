// gal/container.go
// Copyright(c) 2024-2026 gal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gal

import (
	"cmp"
	"fmt"
	"log/slog"
	gomath "math"
	"slices"

	"github.com/goforj/godump"
	"github.com/opencad/gal/log"
	"github.com/opencad/gal/util"
)

// ItemID identifies an item's slot in a Container.
type ItemID uint32

// Slot is the range of vertex records that an item occupies in a
// Container's buffer.
type Slot struct {
	Offset int
	Size   int
}

func (s Slot) End() int { return s.Offset + s.Size }

// Overlaps reports whether the two slots share at least one vertex.
func (s Slot) Overlaps(o Slot) bool {
	return s.Size > 0 && o.Size > 0 && s.Offset < o.End() && o.Offset < s.End()
}

// openItem records the item that is currently being appended to. Its
// vertices always run from offset to the end of the buffer.
type openItem struct {
	id     ItemID
	offset int
}

// Container packs the vertices of many items into a single contiguous
// buffer that can be uploaded to the GPU as-is. Each finished item owns a
// Slot in the buffer; at most one item at a time may be open, in which
// case its vertices are appended at the end of the buffer until EndItem
// fixes its size.
//
// Freeing an item compacts the buffer: every later slot moves backward by
// the freed size, so there are never holes. Growing a finished item
// similarly splices room in after it and moves every later slot forward.
// Offsets returned by the Container are therefore only valid until its
// next mutating call.
//
// A Container is not safe for concurrent use.
type Container struct {
	vertices []Vertex
	slots    map[ItemID]Slot
	open     *openItem
	nextID   ItemID

	// generation is incremented by every call that may move or modify
	// vertices.
	generation uint64

	cfg Config
	lg  *log.Logger

	nGrows, nSplices, nCompactions int
}

// NewContainer returns an empty container with cfg.InitialCapacity
// vertices allocated. lg may be nil.
func NewContainer(cfg Config, lg *log.Logger) (*Container, error) {
	var e util.ErrorLogger
	cfg.Validate(&e)
	if err := e.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return &Container{
		vertices: make([]Vertex, 0, cfg.InitialCapacity),
		slots:    make(map[ItemID]Slot),
		cfg:      cfg,
		lg:       lg,
	}, nil
}

// maxBufferVertices bounds the buffer regardless of Config.MaxVertices so
// that draw offsets fit in an int32 and the byte size fits in an int.
const maxBufferVertices = min(gomath.MaxInt32, gomath.MaxInt/(2*VertexByteSize))

// growFor ensures that at least n more vertices can be added to the end
// of the buffer without going past its capacity. If that isn't possible
// without exceeding the configured limit, the buffer is left untouched
// and ErrAllocation is returned.
func (c *Container) growFor(n int) error {
	if n > maxBufferVertices-len(c.vertices) {
		return fmt.Errorf("%d vertices requested with %d in use: %w", n, len(c.vertices), ErrAllocation)
	}
	need := len(c.vertices) + n
	if c.cfg.MaxVertices > 0 && need > c.cfg.MaxVertices {
		return fmt.Errorf("%d vertices requested with limit %d: %w", need, c.cfg.MaxVertices, ErrAllocation)
	}
	if need <= cap(c.vertices) {
		return nil
	}

	sz := 2 * cap(c.vertices)
	if sz < c.cfg.InitialCapacity {
		sz = c.cfg.InitialCapacity
	}
	if sz < need {
		sz = 2 * need
	}
	if c.cfg.MaxVertices > 0 && sz > c.cfg.MaxVertices {
		sz = c.cfg.MaxVertices
	}
	sz = min(sz, maxBufferVertices)

	b := make([]Vertex, len(c.vertices), sz)
	copy(b, c.vertices)
	c.vertices = b
	c.nGrows++

	c.lg.Debug("grew vertex buffer", slog.Int("capacity", sz), slog.Int("used", len(c.vertices)))
	return nil
}

// Reserve ensures that n more vertices can be added without the buffer
// being reallocated.
func (c *Container) Reserve(n int) error {
	if n < 0 {
		return fmt.Errorf("reserve %d: %w", n, ErrInvalidSize)
	}
	return c.growFor(n)
}

// StartItem opens a new item whose size is not yet known; its vertices
// will start at the current end of the buffer. Only one item may be open
// at a time.
func (c *Container) StartItem() (ItemID, error) {
	if c.open != nil {
		c.lg.Warn("attempted to start an item while another is open", slog.Int("open_item", int(c.open.id)))
		return 0, fmt.Errorf("item %d: %w", c.open.id, ErrItemAlreadyOpen)
	}

	c.nextID++
	c.open = &openItem{id: c.nextID, offset: len(c.vertices)}
	return c.nextID, nil
}

// Add adds a vertex to the given item. For the open item it is appended
// at the end of the buffer; for a finished item, room is spliced in at
// the end of its slot and all later slots move forward by one.
func (c *Container) Add(id ItemID, v Vertex) error {
	return c.AddVertices(id, []Vertex{v})
}

// AddVertices adds the given vertices, in order, to the item. Either all
// of them are added or, on error, the container is unchanged.
func (c *Container) AddVertices(id ItemID, vs []Vertex) error {
	if c.open != nil && c.open.id == id {
		if err := c.growFor(len(vs)); err != nil {
			return err
		}
		c.vertices = append(c.vertices, vs...)
		c.generation++
		return nil
	}

	s, ok := c.slots[id]
	if !ok {
		return fmt.Errorf("item %d: %w", id, ErrUnknownItem)
	}
	if len(vs) == 0 {
		return nil
	}
	if err := c.insert(id, s.End(), len(vs)); err != nil {
		return err
	}
	copy(c.vertices[s.End():], vs)
	s.Size += len(vs)
	c.slots[id] = s
	return nil
}

// EndItem fixes the size of the open item and returns its slot, after
// which another item may be started.
func (c *Container) EndItem() (Slot, error) {
	if c.open == nil {
		return Slot{}, ErrNoOpenItem
	}

	s := Slot{Offset: c.open.offset, Size: len(c.vertices) - c.open.offset}
	c.slots[c.open.id] = s
	c.open = nil
	return s, nil
}

// GetVertices returns the vertices of a finished item. The returned slice
// aliases the container's buffer: writes to it modify the item, and it
// must not be used after any further mutating call on the container.
func (c *Container) GetVertices(id ItemID) ([]Vertex, error) {
	if c.open != nil && c.open.id == id {
		return nil, fmt.Errorf("item %d: %w", id, ErrItemNotFinished)
	}
	s, ok := c.slots[id]
	if !ok {
		return nil, fmt.Errorf("item %d: %w", id, ErrUnknownItem)
	}
	return c.vertices[s.Offset:s.End():s.End()], nil
}

// Slot returns the slot of a finished item.
func (c *Container) Slot(id ItemID) (Slot, bool) {
	s, ok := c.slots[id]
	return s, ok
}

// OpenItem returns the currently open item, if any, and the vertices
// that have been added to it so far.
func (c *Container) OpenItem() (ItemID, Slot, bool) {
	if c.open == nil {
		return 0, Slot{}, false
	}
	return c.open.id, Slot{Offset: c.open.offset, Size: len(c.vertices) - c.open.offset}, true
}

// Free releases the item's storage. A finished item's slot is removed and
// the buffer compacted; an open item is discarded along with any vertices
// it had, after which a new item may be started.
func (c *Container) Free(id ItemID) error {
	if c.open != nil && c.open.id == id {
		c.vertices = c.vertices[:c.open.offset]
		c.open = nil
		c.generation++
		return nil
	}

	s, ok := c.slots[id]
	if !ok {
		c.lg.Warn("attempted to free unknown item", slog.Int("item", int(id)))
		return fmt.Errorf("item %d: %w", id, ErrUnknownItem)
	}

	delete(c.slots, id)
	if s.Size > 0 {
		c.remove(id, s.Offset, s.Size)
		c.nCompactions++
	}
	c.generation++
	return nil
}

// Resize changes the number of vertices in a finished item's slot to n.
// Growing adds zeroed vertices at the end of the slot; shrinking drops
// vertices from its end. Later slots move accordingly.
func (c *Container) Resize(id ItemID, n int) error {
	if n < 0 {
		return fmt.Errorf("resize to %d: %w", n, ErrInvalidSize)
	}
	if c.open != nil && c.open.id == id {
		return fmt.Errorf("item %d: %w", id, ErrItemNotFinished)
	}
	s, ok := c.slots[id]
	if !ok {
		return fmt.Errorf("item %d: %w", id, ErrUnknownItem)
	}

	switch {
	case n > s.Size:
		if err := c.insert(id, s.End(), n-s.Size); err != nil {
			return err
		}
		clear(c.vertices[s.End() : s.Offset+n])
	case n < s.Size:
		c.remove(id, s.Offset+n, s.Size-n)
	default:
		return nil
	}

	s.Size = n
	c.slots[id] = s
	return nil
}

// insert makes room for n vertices at offset at, moving the vertices
// after it and the slots of every item other than skip that start at or
// after it forward. The new vertices are left for the caller to fill in.
func (c *Container) insert(skip ItemID, at, n int) error {
	if err := c.growFor(n); err != nil {
		return err
	}

	end := len(c.vertices)
	c.vertices = c.vertices[:end+n]
	copy(c.vertices[at+n:], c.vertices[at:end])

	for id, s := range c.slots {
		if id != skip && s.Offset >= at {
			s.Offset += n
			c.slots[id] = s
		}
	}
	if c.open != nil && c.open.id != skip && c.open.offset >= at {
		c.open.offset += n
	}

	c.nSplices++
	c.generation++
	return nil
}

// remove deletes the n vertices starting at offset at, moving everything
// after them backward.
func (c *Container) remove(skip ItemID, at, n int) {
	end := at + n
	copy(c.vertices[at:], c.vertices[end:])
	c.vertices = c.vertices[:len(c.vertices)-n]

	for id, s := range c.slots {
		if id != skip && s.Offset >= end {
			s.Offset -= n
			c.slots[id] = s
		}
	}
	if c.open != nil && c.open.id != skip && c.open.offset >= end {
		c.open.offset -= n
	}

	c.generation++
	c.lg.Debug("compacted vertex buffer", slog.Int("offset", at), slog.Int("removed", n),
		slog.Int("used", len(c.vertices)))
}

// Items returns the ids of the finished items, ordered by their offset
// in the buffer.
func (c *Container) Items() []ItemID {
	ids := make([]ItemID, 0, len(c.slots))
	for id := range c.slots {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b ItemID) int {
		sa, sb := c.slots[a], c.slots[b]
		if sa.Offset != sb.Offset {
			return cmp.Compare(sa.Offset, sb.Offset)
		}
		return cmp.Compare(a, b)
	})
	return ids
}

// Vertices returns the whole linear buffer, including the vertices of the
// open item, if any. As with GetVertices, the slice aliases the
// container's storage.
func (c *Container) Vertices() []Vertex {
	return c.vertices
}

// Len returns the number of vertices stored in the buffer.
func (c *Container) Len() int { return len(c.vertices) }

// Cap returns the number of vertices the buffer can hold before it must
// be reallocated.
func (c *Container) Cap() int { return cap(c.vertices) }

// Generation returns a counter that changes whenever vertices are added,
// moved, or removed.
func (c *Container) Generation() uint64 { return c.generation }

// Clear frees all items, including the open one, while keeping the
// buffer's allocation.
func (c *Container) Clear() {
	c.vertices = c.vertices[:0]
	clear(c.slots)
	c.open = nil
	c.generation++
}

// Check verifies that every slot lies within the buffer, that no two slots
// overlap, and that the open item, if any, is at the end of the buffer.
func (c *Container) Check() error {
	ids := c.Items()
	end := 0
	for _, id := range ids {
		s := c.slots[id]
		if s.Offset < 0 || s.Size < 0 || s.Offset > len(c.vertices) || s.Size > len(c.vertices)-s.Offset {
			return fmt.Errorf("item %d: slot at %d with %d vertices outside buffer of %d: %w", id, s.Offset,
				s.Size, len(c.vertices), ErrCorrupt)
		}
		if s.Offset < end {
			return fmt.Errorf("item %d: slot [%d,%d) overlaps previous slot ending at %d: %w", id,
				s.Offset, s.End(), end, ErrCorrupt)
		}
		end = s.End()
	}
	if c.open != nil && (c.open.offset < end || c.open.offset > len(c.vertices)) {
		return fmt.Errorf("open item %d: offset %d not at end of buffer: %w", c.open.id, c.open.offset, ErrCorrupt)
	}
	return nil
}

// Dump returns a human-readable description of the container's slots for
// debugging.
func (c *Container) Dump() string {
	type slotDump struct {
		ID     ItemID
		Offset int
		Size   int
	}
	d := struct {
		Len, Cap int
		Open     *slotDump
		Slots    []slotDump
	}{Len: len(c.vertices), Cap: cap(c.vertices)}

	if id, s, ok := c.OpenItem(); ok {
		d.Open = &slotDump{ID: id, Offset: s.Offset, Size: s.Size}
	}
	for _, id := range c.Items() {
		s := c.slots[id]
		d.Slots = append(d.Slots, slotDump{ID: id, Offset: s.Offset, Size: s.Size})
	}
	return godump.DumpStr(d)
}

///////////////////////////////////////////////////////////////////////////
// Stats

// Stats encapsulates assorted statistics about a container's storage.
type Stats struct {
	Items, OpenItems            int
	Vertices, Capacity          int
	Grows, Splices, Compactions int
}

func (c *Container) Stats() Stats {
	s := Stats{
		Items:       len(c.slots),
		Vertices:    len(c.vertices),
		Capacity:    cap(c.vertices),
		Grows:       c.nGrows,
		Splices:     c.nSplices,
		Compactions: c.nCompactions,
	}
	if c.open != nil {
		s.OpenItems = 1
	}
	return s
}

func (s Stats) Bytes() int { return s.Vertices * VertexByteSize }

func (s Stats) String() string {
	return fmt.Sprintf("%d items (%d open), %d/%d vertices (%.2f MB), %d grows, %d splices, %d compactions",
		s.Items, s.OpenItems, s.Vertices, s.Capacity, float32(s.Bytes())/(1024*1024), s.Grows, s.Splices,
		s.Compactions)
}

func (s *Stats) Merge(o Stats) {
	s.Items += o.Items
	s.OpenItems += o.OpenItems
	s.Vertices += o.Vertices
	s.Capacity += o.Capacity
	s.Grows += o.Grows
	s.Splices += o.Splices
	s.Compactions += o.Compactions
}

func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("items", s.Items),
		slog.Int("open_items", s.OpenItems),
		slog.Int("vertices", s.Vertices),
		slog.Int("capacity", s.Capacity),
		slog.Int("bytes", s.Bytes()),
		slog.Int("grows", s.Grows),
		slog.Int("splices", s.Splices),
		slog.Int("compactions", s.Compactions),
	)
}
