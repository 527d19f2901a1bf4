// gal/vertex.go
// Copyright(c) 2024-2026 gal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gal

import (
	"unsafe"

	"github.com/opencad/gal/math"
)

// Layout of a Vertex, in float32 components and in bytes.
const (
	CoordStride  = 3
	ColorStride  = 4
	ShaderStride = 4
	VertexStride = CoordStride + ColorStride + ShaderStride

	CoordByteOffset  = 0
	ColorByteOffset  = CoordByteOffset + 4*CoordStride
	ShaderByteOffset = ColorByteOffset + 4*ColorStride
	ColorByteSize    = 4 * ColorStride
	VertexByteSize   = 4 * VertexStride
)

// Shader kinds, stored in the first component of Vertex.Shader.
const (
	ShaderNone          = 0
	ShaderLine          = 1
	ShaderFilledCircle  = 2
	ShaderStrokedCircle = 3
)

// Vertex is the fixed-size record stored in a Container and uploaded
// as-is to the GPU.
type Vertex struct {
	X, Y, Z    float32
	R, G, B, A float32
	Shader     [ShaderStride]float32
}

// The upload path reinterprets []Vertex as []uint32, so the struct must
// be exactly VertexStride packed float32s.
var _ [VertexByteSize - unsafe.Sizeof(Vertex{})]struct{}
var _ [unsafe.Sizeof(Vertex{}) - VertexByteSize]struct{}

func V2(p [2]float32) Vertex {
	return Vertex{X: p[0], Y: p[1]}
}

func (v Vertex) Position() [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func (v Vertex) Color() RGBA {
	return RGBA{R: v.R, G: v.G, B: v.B, A: v.A}
}

func (v *Vertex) setColor(c RGBA) {
	v.R, v.G, v.B, v.A = c.R, c.G, c.B, c.A
}

// VertexAttribute describes one attribute array of the vertex layout in
// the form the GPU layer passes to its vertex array setup.
type VertexAttribute struct {
	Name       string
	Components int
	Offset     int // bytes
	Stride     int // bytes
}

// VertexAttributes returns the attribute arrays of the interleaved vertex
// buffer produced by UploadBuffer.
func VertexAttributes() []VertexAttribute {
	return []VertexAttribute{
		{Name: "position", Components: CoordStride, Offset: CoordByteOffset, Stride: VertexByteSize},
		{Name: "color", Components: ColorStride, Offset: ColorByteOffset, Stride: VertexByteSize},
		{Name: "shader", Components: ShaderStride, Offset: ShaderByteOffset, Stride: VertexByteSize},
	}
}

///////////////////////////////////////////////////////////////////////////
// RGBA

type RGBA struct {
	R, G, B, A float32
}

// RGBAFromHex converts a packed integer color value to an opaque RGBA
// where the low 8 bits give blue, the next 8 give green, and then the
// next 8 give red.
func RGBAFromHex(c int) RGBA {
	r, g, b := (c>>16)&255, (c>>8)&255, c&255
	return RGBA{R: float32(r) / 255, G: float32(g) / 255, B: float32(b) / 255, A: 1}
}

func LerpRGBA(x float32, a, b RGBA) RGBA {
	return RGBA{
		R: math.Lerp(x, a.R, b.R),
		G: math.Lerp(x, a.G, b.G),
		B: math.Lerp(x, a.B, b.B),
		A: math.Lerp(x, a.A, b.A),
	}
}

func (c RGBA) WithAlpha(a float32) RGBA {
	c.A = math.Clamp(a, 0, 1)
	return c
}

// LineShader returns shader parameters for a stroked line of the given
// width.
func LineShader(width float32) [ShaderStride]float32 {
	return [ShaderStride]float32{ShaderLine, width}
}

// CircleShader returns shader parameters for a circle; a zero width gives
// a filled circle.
func CircleShader(radius, width float32) [ShaderStride]float32 {
	if width == 0 {
		return [ShaderStride]float32{ShaderFilledCircle, radius}
	}
	return [ShaderStride]float32{ShaderStrokedCircle, radius, width}
}
