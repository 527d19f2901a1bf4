// math/math_test.go
// Copyright(c) 2024-2026 gal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b float32) bool {
	return Abs(a-b) < 1e-5
}

func TestTransformPoint(t *testing.T) {
	type testCase struct {
		name     string
		m        mgl32.Mat4
		p        [3]float32
		expected [3]float32
	}

	for _, tc := range []testCase{
		{name: "Identity", m: mgl32.Ident4(), p: [3]float32{1, 2, 3}, expected: [3]float32{1, 2, 3}},
		{name: "Translate", m: Translate(10, 0, 0), p: [3]float32{0, 0, 0}, expected: [3]float32{10, 0, 0}},
		{name: "TranslateXYZ", m: Translate(1, -2, 3), p: [3]float32{1, 1, 1}, expected: [3]float32{2, -1, 4}},
		{name: "Rotate90", m: Rotate2D(Radians(90)), p: [3]float32{1, 0, 0}, expected: [3]float32{0, 1, 0}},
		{name: "Mirror", m: MirrorX(5), p: [3]float32{7, 2, 0}, expected: [3]float32{3, 2, 0}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := TransformPoint(&tc.m, tc.p)
			for i := range r {
				if !near(r[i], tc.expected[i]) {
					t.Errorf("got %v, expected %v", r, tc.expected)
					break
				}
			}
		})
	}
}

func TestCirclePoints(t *testing.T) {
	pts := CirclePoints(16)
	if len(pts) != 16 {
		t.Fatalf("got %d points, expected 16", len(pts))
	}
	for i, p := range pts {
		if !near(Length2f(p), 1) {
			t.Errorf("%d: point %v not on unit circle", i, p)
		}
	}
	if &CirclePoints(16)[0] != &pts[0] {
		t.Errorf("CirclePoints didn't reuse cached points")
	}
}

func TestArcPoints(t *testing.T) {
	pts := ArcPoints([2]float32{1, 1}, 2, 0, Radians(90), 4)
	if len(pts) != 5 {
		t.Fatalf("got %d points, expected 5", len(pts))
	}
	if !near(pts[0][0], 3) || !near(pts[0][1], 1) {
		t.Errorf("first point %v, expected [3 1]", pts[0])
	}
	if !near(pts[4][0], 1) || !near(pts[4][1], 3) {
		t.Errorf("last point %v, expected [1 3]", pts[4])
	}
}

func TestNormalizeDeciDegrees(t *testing.T) {
	for _, c := range [][2]int{{0, 0}, {3600, 0}, {-900, 2700}, {4500, 900}, {1799, 1799}} {
		if n := NormalizeDeciDegrees(c[0]); n != c[1] {
			t.Errorf("NormalizeDeciDegrees(%d) = %d, expected %d", c[0], n, c[1])
		}
	}
}

func TestNormalize2f(t *testing.T) {
	if v := Normalize2f([2]float32{0, 0}); v != [2]float32{0, 0} {
		t.Errorf("zero vector normalized to %v", v)
	}
	v := Normalize2f([2]float32{3, 4})
	if !near(v[0], 0.6) || !near(v[1], 0.8) {
		t.Errorf("got %v, expected [0.6 0.8]", v)
	}
	if p := Perp2f([2]float32{1, 0}); p != [2]float32{0, 1} {
		t.Errorf("Perp2f gave %v", p)
	}
}
