// gal/builders.go
// Copyright(c) 2024-2026 gal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package gal

import (
	"fmt"

	"github.com/mmp/earcut-go"
	"github.com/opencad/gal/math"
)

///////////////////////////////////////////////////////////////////////////
// Producers

// The Draw* functions tessellate drawing primitives into triangle lists
// and push the resulting vertices to an item. The whole primitive is
// pushed in a single batch, so if the container can't hold it, none of it
// is added to the item.

func segmentTriangles(tris []Vertex, a, b [2]float32, width float32) []Vertex {
	d := math.Normalize2f(math.Sub2f(b, a))
	if d == [2]float32{0, 0} {
		// Degenerate segment; draw it as a square dot.
		d = [2]float32{1, 0}
	}
	n := math.Scale2f(math.Perp2f(d), width/2)

	a0, a1 := math.Add2f(a, n), math.Sub2f(a, n)
	b0, b1 := math.Add2f(b, n), math.Sub2f(b, n)
	return append(tris, V2(a0), V2(a1), V2(b0), V2(b0), V2(a1), V2(b1))
}

// DrawSegment adds two triangles covering the line segment from a to b
// with the given width.
func DrawSegment(it *Item, a, b [2]float32, width float32) error {
	if width < 0 {
		return fmt.Errorf("segment width %f: %w", width, ErrInvalidSize)
	}
	return it.PushVertices(segmentTriangles(nil, a, b, width))
}

// DrawPolyline adds segments between each successive pair of points.
func DrawPolyline(it *Item, pts [][2]float32, width float32) error {
	if width < 0 {
		return fmt.Errorf("polyline width %f: %w", width, ErrInvalidSize)
	}
	var tris []Vertex
	for i := 0; i < len(pts)-1; i++ {
		tris = segmentTriangles(tris, pts[i], pts[i+1], width)
	}
	return it.PushVertices(tris)
}

// DrawCircle adds a filled circle as a fan of nsegs triangles around its
// center.
func DrawCircle(it *Item, center [2]float32, radius float32, nsegs int) error {
	if nsegs < 3 {
		return fmt.Errorf("circle with %d segments: %w", nsegs, ErrInvalidSize)
	}

	circle := math.CirclePoints(nsegs)
	tris := make([]Vertex, 0, 3*nsegs)
	pt := func(i int) Vertex {
		return V2(math.Add2f(center, math.Scale2f(circle[i%nsegs], radius)))
	}
	for i := 0; i < nsegs; i++ {
		tris = append(tris, V2(center), pt(i), pt(i+1))
	}
	return it.PushVertices(tris)
}

// DrawArc adds a stroked arc around center. The start and end angles are
// given in tenths of a degree; the arc always runs counter-clockwise from
// start to end, so it covers at most a full circle.
func DrawArc(it *Item, center [2]float32, radius float32, startDeci, endDeci int, width float32, nsegs int) error {
	if nsegs < 1 {
		return fmt.Errorf("arc with %d segments: %w", nsegs, ErrInvalidSize)
	}
	if width < 0 {
		return fmt.Errorf("arc width %f: %w", width, ErrInvalidSize)
	}

	start := math.NormalizeDeciDegrees(startDeci)
	end := math.NormalizeDeciDegrees(endDeci)
	if end <= start {
		end += 3600
	}

	pts := math.ArcPoints(center, radius, math.DeciDegreesToRadians(start), math.DeciDegreesToRadians(end), nsegs)
	return DrawPolyline(it, pts, width)
}

// DrawPolygon adds a filled polygon given by an outer ring followed by
// zero or more hole rings.
func DrawPolygon(it *Item, rings [][][2]float32) error {
	if len(rings) == 0 || len(rings[0]) < 3 {
		return fmt.Errorf("polygon outer ring needs at least 3 points: %w", ErrInvalidSize)
	}

	var poly earcut.Polygon
	for _, ring := range rings {
		vertices := make([]earcut.Vertex, len(ring))
		for i, p := range ring {
			vertices[i].P = [2]float64{float64(p[0]), float64(p[1])}
		}
		poly.Rings = append(poly.Rings, vertices)
	}

	var tris []Vertex
	for _, tri := range earcut.Triangulate(poly) {
		for _, v := range tri.Vertices {
			tris = append(tris, Vertex{X: float32(v.P[0]), Y: float32(v.P[1])})
		}
	}
	return it.PushVertices(tris)
}
