// gal/upload.go
// Copyright(c) 2024-2026 gal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gal

import (
	"fmt"
	"sync"
	"unsafe"
)

// UploadBuffer holds a copy of a Container's vertices laid out exactly as
// the GPU consumes them, along with the draw commands for the items that
// are to be drawn from it. The layout of each vertex is described by
// VertexAttributes.
type UploadBuffer struct {
	Buf   []uint32
	Draws []DrawCommand

	c          *Container
	generation uint64
}

// DrawCommand specifies the range of vertices of one item to draw.
type DrawCommand struct {
	Item  ItemID
	First int // first vertex
	Count int // number of vertices
}

// ByteOffset returns the offset in bytes of the first vertex in the
// upload buffer.
func (d DrawCommand) ByteOffset() int {
	return d.First * VertexByteSize
}

// UploadBuffers are managed using a sync.Pool so that their Buf slice
// allocations persist across multiple uses.
var uploadBufferPool = sync.Pool{New: func() any { return &UploadBuffer{} }}

func GetUploadBuffer() *UploadBuffer {
	return uploadBufferPool.Get().(*UploadBuffer)
}

func ReturnUploadBuffer(ub *UploadBuffer) {
	ub.Reset()
	uploadBufferPool.Put(ub)
}

// Reset resets the buffer's length to zero so that it can be reused.
func (ub *UploadBuffer) Reset() {
	ub.Buf = ub.Buf[:0]
	ub.Draws = ub.Draws[:0]
	ub.c = nil
	ub.generation = 0
}

// growFor ensures that at least n more values can be added to the end of
// the buffer without going past its capacity.
func (ub *UploadBuffer) growFor(n int) {
	if len(ub.Buf)+n > cap(ub.Buf) {
		sz := 2 * cap(ub.Buf)
		if sz < 1024 {
			sz = 1024
		}
		if sz < len(ub.Buf)+n {
			sz = 2 * (len(ub.Buf) + n)
		}
		b := make([]uint32, len(ub.Buf), sz)
		copy(b, ub.Buf)
		ub.Buf = b
	}
}

// Load copies all of the container's vertices into the buffer, replacing
// its previous contents. The container's slots are checked first so that
// an inconsistent buffer is never handed to the GPU.
func (ub *UploadBuffer) Load(c *Container) error {
	if err := c.Check(); err != nil {
		return err
	}

	ub.Reset()
	vs := c.Vertices()
	n := VertexStride * len(vs)
	ub.growFor(n)
	ub.Buf = ub.Buf[:n]
	if n > 0 {
		copy(ub.Buf, unsafe.Slice((*uint32)(unsafe.Pointer(&vs[0])), n))
	}

	ub.c = c
	ub.generation = c.Generation()
	return nil
}

// Draw adds a draw command for the given finished item. It fails if the
// container has been modified since Load was called.
func (ub *UploadBuffer) Draw(id ItemID) error {
	if ub.c == nil || ub.c.Generation() != ub.generation {
		return ErrStaleUpload
	}
	s, ok := ub.c.Slot(id)
	if !ok {
		if oid, _, open := ub.c.OpenItem(); open && oid == id {
			return fmt.Errorf("item %d: %w", id, ErrItemNotFinished)
		}
		return fmt.Errorf("item %d: %w", id, ErrUnknownItem)
	}
	if s.Size > 0 {
		ub.Draws = append(ub.Draws, DrawCommand{Item: id, First: s.Offset, Count: s.Size})
	}
	return nil
}

// DrawAll adds draw commands for all of the container's finished items in
// buffer order.
func (ub *UploadBuffer) DrawAll() error {
	if ub.c == nil || ub.c.Generation() != ub.generation {
		return ErrStaleUpload
	}
	for _, id := range ub.c.Items() {
		if err := ub.Draw(id); err != nil {
			return err
		}
	}
	return nil
}

// Bytes returns the buffer's contents in host byte order, ready to be
// passed to the graphics API's buffer upload call.
func (ub *UploadBuffer) Bytes() []byte {
	if len(ub.Buf) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&ub.Buf[0])), 4*len(ub.Buf))
}

// VertexCount returns the number of vertices in the buffer.
func (ub *UploadBuffer) VertexCount() int {
	return len(ub.Buf) / VertexStride
}
