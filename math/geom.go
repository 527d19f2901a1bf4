// math/geom.go
// Copyright(c) 2024-2026 gal contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import "sync"

var (
	circlePointsMu sync.Mutex
	circlePoints   map[int][][2]float32
)

// CirclePoints returns the vertices for a unit circle at the origin
// with the given number of segments; it creates the vertex slice if this
// tessellation rate hasn't been seen before and otherwise returns a
// preexisting one. The returned slice must not be modified.
func CirclePoints(nsegs int) [][2]float32 {
	circlePointsMu.Lock()
	defer circlePointsMu.Unlock()

	if circlePoints == nil {
		circlePoints = make(map[int][][2]float32)
	}
	if _, ok := circlePoints[nsegs]; !ok {
		// Evaluate the vertices of the circle to initialize a new slice.
		pts := make([][2]float32, 0, nsegs)
		for d := 0; d < nsegs; d++ {
			angle := Radians(float32(d) / float32(nsegs) * 360)
			pts = append(pts, [2]float32{Cos(angle), Sin(angle)})
		}
		circlePoints[nsegs] = pts
	}

	return circlePoints[nsegs]
}

// ArcPoints returns nsegs+1 points along the arc of the given radius
// around center, sweeping counter-clockwise from start to end (both in
// radians).
func ArcPoints(center [2]float32, radius, start, end float32, nsegs int) [][2]float32 {
	if nsegs < 1 {
		nsegs = 1
	}
	pts := make([][2]float32, nsegs+1)
	for i := range pts {
		a := Lerp(float32(i)/float32(nsegs), start, end)
		pts[i] = [2]float32{center[0] + radius*Cos(a), center[1] + radius*Sin(a)}
	}
	return pts
}
