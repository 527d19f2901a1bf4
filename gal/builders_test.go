// gal/builders_test.go
// Copyright(c) 2024-2026 gal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gal

import (
	"errors"
	"testing"

	"github.com/opencad/gal/math"
)

func newOpenItem(t *testing.T, c *Container) *Item {
	t.Helper()
	it, err := NewItem(c)
	if err != nil {
		t.Fatal(err)
	}
	return it
}

func finishedVertices(t *testing.T, it *Item) []Vertex {
	t.Helper()
	vs, err := it.GetVertices()
	if err != nil {
		t.Fatal(err)
	}
	return vs
}

func triangleArea(a, b, c Vertex) float32 {
	return math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
}

func totalArea(vs []Vertex) float32 {
	var area float32
	for i := 0; i+2 < len(vs); i += 3 {
		area += triangleArea(vs[i], vs[i+1], vs[i+2])
	}
	return area
}

func TestDrawSegment(t *testing.T) {
	c := newTestContainer(t, DefaultConfig())
	it := newOpenItem(t, c)
	if err := DrawSegment(it, [2]float32{0, 0}, [2]float32{10, 0}, 2); err != nil {
		t.Fatal(err)
	}

	vs := finishedVertices(t, it)
	if len(vs) != 6 {
		t.Fatalf("got %d vertices, expected 6", len(vs))
	}
	for i, v := range vs {
		if math.Abs(v.Y) != 1 || (v.X != 0 && v.X != 10) {
			t.Errorf("vertex %d at %v is not a corner of the segment's quad", i, v.Position())
		}
	}
	if a := totalArea(vs); math.Abs(a-20) > 1e-4 {
		t.Errorf("segment area %f, expected 20", a)
	}

	it = newOpenItem(t, c)
	if err := DrawSegment(it, [2]float32{0, 0}, [2]float32{1, 1}, -1); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("negative width gave %v", err)
	}
}

func TestDrawCircle(t *testing.T) {
	c := newTestContainer(t, DefaultConfig())
	it := newOpenItem(t, c)
	center := [2]float32{5, 5}
	if err := DrawCircle(it, center, 2, 8); err != nil {
		t.Fatal(err)
	}

	vs := finishedVertices(t, it)
	if len(vs) != 24 {
		t.Fatalf("got %d vertices, expected 24", len(vs))
	}
	for i, v := range vs {
		d := math.Length2f(math.Sub2f([2]float32{v.X, v.Y}, center))
		if d > 2+1e-4 {
			t.Errorf("vertex %d is %f from center", i, d)
		}
	}

	it = newOpenItem(t, c)
	if err := DrawCircle(it, center, 2, 2); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("2-segment circle gave %v", err)
	}
}

func TestDrawArc(t *testing.T) {
	c := newTestContainer(t, DefaultConfig())

	for _, tc := range []struct {
		name       string
		start, end int
	}{
		{"QuarterCCW", 0, 900},
		{"Wrapping", 2700, 900},
		{"FullCircle", 450, 450},
	} {
		t.Run(tc.name, func(t *testing.T) {
			it := newOpenItem(t, c)
			if err := DrawArc(it, [2]float32{0, 0}, 10, tc.start, tc.end, 0.5, 4); err != nil {
				t.Fatal(err)
			}
			vs := finishedVertices(t, it)
			if len(vs) != 4*6 {
				t.Fatalf("got %d vertices, expected 24", len(vs))
			}

			// The first segment starts at the start angle.
			p0 := math.Scale2f([2]float32{vs[0].X + vs[1].X, vs[0].Y + vs[1].Y}, 0.5)
			a := math.DeciDegreesToRadians(tc.start)
			exp := [2]float32{10 * math.Cos(a), 10 * math.Sin(a)}
			if math.Length2f(math.Sub2f(p0, exp)) > 1e-3 {
				t.Errorf("arc starts at %v, expected %v", p0, exp)
			}
		})
	}
}

func TestDrawPolygon(t *testing.T) {
	c := newTestContainer(t, DefaultConfig())

	square := func(x0, y0, sz float32) [][2]float32 {
		return [][2]float32{{x0, y0}, {x0 + sz, y0}, {x0 + sz, y0 + sz}, {x0, y0 + sz}}
	}

	it := newOpenItem(t, c)
	if err := DrawPolygon(it, [][][2]float32{square(0, 0, 4)}); err != nil {
		t.Fatal(err)
	}
	vs := finishedVertices(t, it)
	if len(vs) != 6 {
		t.Errorf("square gave %d vertices, expected 6", len(vs))
	}
	if a := totalArea(vs); math.Abs(a-16) > 1e-4 {
		t.Errorf("square area %f, expected 16", a)
	}

	it = newOpenItem(t, c)
	if err := DrawPolygon(it, [][][2]float32{square(0, 0, 4), square(1, 1, 2)}); err != nil {
		t.Fatal(err)
	}
	vs = finishedVertices(t, it)
	if a := totalArea(vs); math.Abs(a-12) > 1e-4 {
		t.Errorf("square with hole area %f, expected 12", a)
	}

	it = newOpenItem(t, c)
	if err := DrawPolygon(it, [][][2]float32{{{0, 0}, {1, 1}}}); !errors.Is(err, ErrInvalidSize) {
		t.Errorf("degenerate polygon gave %v", err)
	}
}

func TestDrawPolylineUsesItemState(t *testing.T) {
	c := newTestContainer(t, DefaultConfig())
	it := newOpenItem(t, c)
	it.SetColor(red)
	it.SetShader(LineShader(1))
	it.SetTransform(math.Translate(0, 100, 0))

	if err := DrawPolyline(it, [][2]float32{{0, 0}, {1, 0}, {1, 1}}, 1); err != nil {
		t.Fatal(err)
	}
	vs := finishedVertices(t, it)
	if len(vs) != 12 {
		t.Fatalf("got %d vertices, expected 12", len(vs))
	}
	for i, v := range vs {
		if v.Color() != red || v.Shader != LineShader(1) {
			t.Errorf("vertex %d: color %+v shader %v", i, v.Color(), v.Shader)
		}
		if v.Y < 99 {
			t.Errorf("vertex %d: y %f wasn't transformed", i, v.Y)
		}
	}
}
