// math/vecmat.go
// Copyright(c) 2024-2026 gal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"github.com/go-gl/mathgl/mgl32"
)

///////////////////////////////////////////////////////////////////////////
// point/vector

func Add2f(a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{a[0] + b[0], a[1] + b[1]}
}

func Sub2f(a [2]float32, b [2]float32) [2]float32 {
	return [2]float32{a[0] - b[0], a[1] - b[1]}
}

func Scale2f(a [2]float32, s float32) [2]float32 {
	return [2]float32{s * a[0], s * a[1]}
}

func Length2f(v [2]float32) float32 {
	return Sqrt(v[0]*v[0] + v[1]*v[1])
}

// Normalize2f returns a unit-length vector in the direction of a; the
// zero vector is returned unchanged.
func Normalize2f(a [2]float32) [2]float32 {
	l := Length2f(a)
	if l == 0 {
		return [2]float32{0, 0}
	}
	return Scale2f(a, 1/l)
}

// Perp2f returns a rotated 90 degrees counter-clockwise.
func Perp2f(a [2]float32) [2]float32 {
	return [2]float32{-a[1], a[0]}
}

///////////////////////////////////////////////////////////////////////////
// 4x4 transforms

// TransformPoint applies the homogeneous transformation m to the point p,
// treating it as (x, y, z, 1). The resulting w component is discarded
// without a perspective divide.
func TransformPoint(m *mgl32.Mat4, p [3]float32) [3]float32 {
	v := m.Mul4x1(mgl32.Vec4{p[0], p[1], p[2], 1})
	return [3]float32{v[0], v[1], v[2]}
}

// Translate returns a 4x4 translation matrix.
func Translate(x, y, z float32) mgl32.Mat4 {
	return mgl32.Translate3D(x, y, z)
}

// Rotate2D returns a 4x4 matrix that rotates about the z axis by the given
// angle in radians.
func Rotate2D(theta float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DZ(theta)
}

// MirrorX returns a 4x4 matrix that flips x about the vertical axis
// through cx.
func MirrorX(cx float32) mgl32.Mat4 {
	return mgl32.Translate3D(cx, 0, 0).Mul4(mgl32.Scale3D(-1, 1, 1)).Mul4(mgl32.Translate3D(-cx, 0, 0))
}
