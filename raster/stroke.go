// seehuhn.de/go/psiprint - rendering of print jobs from Psion PDAs
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package raster

import (
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// segment is a straight piece of a flattened path, in user space.
type segment struct {
	A, B vec.Vec2
	T    vec.Vec2 // unit tangent from A to B
	N    vec.Vec2 // T rotated by 90° counter-clockwise
}

// subpath is a range of segments in one of the segment buffers.
type subpath struct {
	start, end int
	closed     bool
}

// Stroke paints the outline of the path, using the parameters in
// r.Style.  The stroke is built from one polygon per segment, join
// and cap, all oriented the same way, and these are filled together
// with the nonzero winding rule.
//
// The coverage slice passed to emit is only valid during the call.
func (r *Rasteriser) Stroke(p path.Path, emit func(y, xMin int, coverage []float32)) {
	if r.Width <= 0 || !r.buildOutline(p) {
		return
	}

	r.resetEdges()
	for i := range r.polyStart {
		poly := r.polygon(i)
		for j := range poly {
			r.addEdge(poly[j], poly[(j+1)%len(poly)])
		}
	}
	r.rasterise(false, emit)
}

// StrokeBounds returns the bounding box, in user space, of the area
// painted by Stroke.  If the line width is zero, the bounding box of the
// flattened path is returned instead.  The second return value is false if
// the path has no drawing operations.
func (r *Rasteriser) StrokeBounds(p path.Path) (rect.Rect, bool) {
	var box rect.Rect
	first := true
	include := func(pt vec.Vec2) {
		if first {
			box = rect.Rect{LLx: pt.X, LLy: pt.Y, URx: pt.X, URy: pt.Y}
			first = false
			return
		}
		box.LLx = min(box.LLx, pt.X)
		box.LLy = min(box.LLy, pt.Y)
		box.URx = max(box.URx, pt.X)
		box.URy = max(box.URy, pt.Y)
	}

	if r.Width <= 0 {
		r.flattenPath(p)
		for _, s := range r.segs {
			include(s.A)
			include(s.B)
		}
		for _, pt := range r.dots {
			include(pt)
		}
		return box, !first
	}

	if !r.buildOutline(p) {
		return box, false
	}
	for _, pt := range r.outline {
		include(pt)
	}
	return box, true
}

// buildOutline flattens the path and fills r.outline with the stroke
// polygons.  It returns false if there is nothing to paint.
func (r *Rasteriser) buildOutline(p path.Path) bool {
	r.flattenPath(p)
	r.outline = r.outline[:0]
	r.polyStart = r.polyStart[:0]

	if r.StartCap == graphics.LineCapRound || r.EndCap == graphics.LineCapRound {
		for _, pt := range r.dots {
			r.beginPoly()
			r.addArc(pt, r.Width/2, vec.Vec2{X: 1}, 2*math.Pi, true)
			r.endPoly()
		}
	}

	if r.applyDash() {
		for _, sp := range r.dashes {
			r.strokeSubpath(r.dashSegs[sp.start:sp.end], sp.closed)
		}
	} else {
		for _, sp := range r.subpaths {
			r.strokeSubpath(r.segs[sp.start:sp.end], sp.closed)
		}
	}
	return len(r.polyStart) > 0
}

// flattenPath converts the path into straight segments.  Subpaths which
// contain drawing operations but have no extent are recorded in r.dots.
func (r *Rasteriser) flattenPath(p path.Path) {
	r.segs = r.segs[:0]
	r.subpaths = r.subpaths[:0]
	r.dots = r.dots[:0]

	var cur, start vec.Vec2
	first := 0
	open, drawn := false, false
	finish := func(closed bool) {
		switch {
		case len(r.segs) > first:
			r.subpaths = append(r.subpaths, subpath{start: first, end: len(r.segs), closed: closed})
		case drawn || closed:
			r.dots = append(r.dots, start)
		}
		first = len(r.segs)
		drawn = false
	}

	for cmd, pts := range p {
		if cmd != path.CmdMoveTo && !open {
			continue
		}
		switch cmd {
		case path.CmdMoveTo:
			if open {
				finish(false)
			}
			cur, start = pts[0], pts[0]
			open = true
		case path.CmdLineTo:
			drawn = true
			r.addSegment(cur, pts[0])
			cur = pts[0]
		case path.CmdQuadTo:
			drawn = true
			r.flattenQuadratic(cur, pts[0], pts[1], r.addSegment)
			cur = pts[1]
		case path.CmdCubeTo:
			drawn = true
			r.flattenCubic(cur, pts[0], pts[1], pts[2], r.addSegment)
			cur = pts[2]
		case path.CmdClose:
			if cur != start {
				r.addSegment(cur, start)
			}
			finish(true)
			cur = start
			open = false
		}
	}
	if open {
		finish(false)
	}
}

func (r *Rasteriser) addSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	l := d.Length()
	if l < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / l)
	r.segs = append(r.segs, segment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
}

// strokeSubpath adds the polygons for one run of connected segments.
func (r *Rasteriser) strokeSubpath(segs []segment, closed bool) {
	if len(segs) == 0 {
		return
	}
	d := r.Width / 2

	if len(segs) == 1 && segs[0].A == segs[0].B {
		// zero length dash: the caps still have a direction
		s := segs[0]
		r.addCap(s.A, s.T.Mul(-1), r.StartCap)
		r.addCap(s.A, s.T, r.EndCap)
		return
	}

	for i := range segs {
		s := &segs[i]
		if s.A == s.B {
			continue
		}
		r.beginPoly()
		r.outline = append(r.outline,
			s.A.Add(s.N.Mul(d)), s.B.Add(s.N.Mul(d)),
			s.B.Sub(s.N.Mul(d)), s.A.Sub(s.N.Mul(d)))
		r.endPoly()

		if i > 0 {
			r.addJoin(&segs[i-1], s)
		}
	}

	first, last := &segs[0], &segs[len(segs)-1]
	if closed {
		r.addJoin(last, first)
	} else {
		r.addCap(first.A, first.T.Mul(-1), r.StartCap)
		r.addCap(last.B, last.T, r.EndCap)
	}
}

// addJoin adds the join polygon between two consecutive segments.
// The join covers the gap on the outer side of the corner.
func (r *Rasteriser) addJoin(s1, s2 *segment) {
	P := s1.B
	cross := s1.T.X*s2.T.Y - s1.T.Y*s2.T.X
	dot := s1.T.Dot(s2.T)
	if math.Abs(cross) < collinearityThreshold && dot > 0 {
		return
	}

	// for a left turn the outer side is -N
	side := 1.0
	if cross > 0 {
		side = -1
	}
	d := r.Width / 2
	u1 := s1.N.Mul(side)
	u2 := s2.N.Mul(side)
	a := P.Add(u1.Mul(d))
	b := P.Add(u2.Mul(d))

	r.beginPoly()
	switch r.Join {
	case graphics.LineJoinRound:
		sweep := math.Atan2(u1.X*u2.Y-u1.Y*u2.X, u1.Dot(u2))
		if math.Abs(cross) < collinearityThreshold {
			// cusp: bulge forward along the incoming direction
			sweep = -side * math.Pi
		}
		r.outline = append(r.outline, P)
		r.addArc(P, d, u1, sweep, true)

	case graphics.LineJoinMiter:
		r.outline = append(r.outline, P, a)
		cosHalf := math.Sqrt((1 + dot) / 2)
		bis := u1.Add(u2)
		if l := bis.Length(); cosHalf > 0 && l > zeroLengthThreshold &&
			1/cosHalf <= r.MiterLimit+miterEpsilon {
			r.outline = append(r.outline, P.Add(bis.Mul(d/(cosHalf*l))))
		}
		r.outline = append(r.outline, b)

	default:
		r.outline = append(r.outline, P, a, b)
	}
	r.endPoly()
}

// addCap adds the cap polygon at P, where T points away from the line.
func (r *Rasteriser) addCap(P, T vec.Vec2, style graphics.LineCapStyle) {
	d := r.Width / 2
	N := vec.Vec2{X: -T.Y, Y: T.X}

	switch style {
	case graphics.LineCapSquare:
		r.beginPoly()
		r.outline = append(r.outline,
			P.Add(N.Mul(d)), P.Add(N.Mul(d)).Add(T.Mul(d)),
			P.Sub(N.Mul(d)).Add(T.Mul(d)), P.Sub(N.Mul(d)))
		r.endPoly()

	case graphics.LineCapRound:
		r.beginPoly()
		r.outline = append(r.outline, P)
		r.addArc(P, d, N, -math.Pi, true)
		r.endPoly()

	case LineCapTriangle:
		hw := r.TriangleWidth * r.Width
		l := r.TriangleLength * r.Width
		r.beginPoly()
		r.outline = append(r.outline,
			P.Add(N.Mul(d)), P.Add(N.Mul(hw)), P.Add(T.Mul(l)),
			P.Sub(N.Mul(hw)), P.Sub(N.Mul(d)))
		r.endPoly()
	}
}

// addArc appends points on a circular arc around center.  The arc starts
// in direction startDir and turns by sweep radians, counter-clockwise for
// positive values.
func (r *Rasteriser) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, withStart bool) {
	devRadius := max(
		r.deviceLength(vec.Vec2{X: radius}),
		r.deviceLength(vec.Vec2{Y: radius}))

	n := 1
	if devRadius > r.Flatness {
		// a chord spanning angle θ deviates from the arc by r(1-cos(θ/2))
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		if step > 0 && !math.IsNaN(step) {
			n = max(int(math.Ceil(math.Abs(sweep)/step)), 1)
		} else {
			n = int(math.Ceil(math.Abs(sweep) / (math.Pi / 4)))
		}
	}

	i0 := 1
	if withStart {
		i0 = 0
	}
	for i := i0; i <= n; i++ {
		sin, cos := math.Sincos(sweep * float64(i) / float64(n))
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		r.outline = append(r.outline, center.Add(dir.Mul(radius)))
	}
}

func (r *Rasteriser) beginPoly() {
	r.polyStart = append(r.polyStart, len(r.outline))
}

// endPoly finishes the most recent polygon.  Degenerate polygons are
// dropped, all others are oriented to have positive area.
func (r *Rasteriser) endPoly() {
	k := len(r.polyStart) - 1
	poly := r.outline[r.polyStart[k]:]

	var area float64
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		area += a.X*b.Y - a.Y*b.X
	}
	if len(poly) < 3 || area == 0 {
		r.outline = r.outline[:r.polyStart[k]]
		r.polyStart = r.polyStart[:k]
		return
	}
	if area < 0 {
		for i, j := 0, len(poly)-1; i < j; i, j = i+1, j-1 {
			poly[i], poly[j] = poly[j], poly[i]
		}
	}
}

// polygon returns the i-th stroke polygon.
func (r *Rasteriser) polygon(i int) []vec.Vec2 {
	end := len(r.outline)
	if i+1 < len(r.polyStart) {
		end = r.polyStart[i+1]
	}
	return r.outline[r.polyStart[i]:end]
}

// miterEpsilon absorbs rounding errors at the miter limit.
const miterEpsilon = 1e-10
