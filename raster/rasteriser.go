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

// Package raster converts vector paths into per-pixel coverage values.
//
// The [Rasteriser] fills and strokes paths given as [path.Path] iterators.
// Coverage is delivered one scanline at a time through a callback, so
// that callers can composite into any pixel format.  [Canvas] uses this
// to implement a complete display back-end on top of an [image.RGBA].
package raster

import (
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// Rasteriser converts vector paths to pixel coverage values.
//
// A Rasteriser is meant to be reused: internal buffers grow as needed and
// are kept between calls.  A Rasteriser must not be used concurrently.
type Rasteriser struct {
	// CTM maps user space to device space.  It must be non-singular.
	CTM matrix.Matrix

	// Clip is the output region in device coordinates.  The coordinates
	// must be integers.
	Clip rect.Rect

	// Flatness is the maximal distance, in device pixels, between a curve
	// and the polygon used to approximate it.
	Flatness float64

	// Style describes how Stroke and StrokeBounds outline a path.
	Style

	// per-scanline accumulation buffers
	cover []float32
	area  []float32

	edges  []edge
	active []int
	devBox [4]float64 // xMin, yMin, xMax, yMax of all edges
	hasBox bool

	// stroking state, see stroke.go and dash.go
	segs      []segment
	subpaths  []subpath
	dots      []vec.Vec2
	dashSegs  []segment
	dashes    []subpath
	outline   []vec.Vec2
	polyStart []int
}

// Style collects the parameters of a stroke.  All lengths are in user
// space units.
type Style struct {
	// Width is the line width.  A width of zero makes Stroke paint nothing;
	// callers wanting hairlines must substitute the width of a device pixel.
	Width float64

	// StartCap and EndCap are the cap styles at the two ends of each open
	// subpath.  In addition to the graphics cap styles, LineCapTriangle is
	// supported.
	StartCap graphics.LineCapStyle
	EndCap   graphics.LineCapStyle

	// Join is the line join style.
	Join graphics.LineJoinStyle

	// MiterLimit limits the length of miter joins; it must be at least 1.
	MiterLimit float64

	// TriangleWidth is the half width of a triangular cap, and TriangleLength
	// is its length beyond the end point, both as multiples of the line width.
	TriangleWidth  float64
	TriangleLength float64

	// Dash is the dash pattern.  A nil or all-zero pattern gives a solid line.
	Dash      []float64
	DashPhase float64
}

// LineCapTriangle is a cap in the shape of a triangle, pointing away from
// the end of the line.  The shape is given by Style.TriangleWidth and
// Style.TriangleLength.
const LineCapTriangle graphics.LineCapStyle = 3

// DefaultStyle returns the stroke style used by a new Rasteriser.
func DefaultStyle() Style {
	return Style{
		Width:          1,
		StartCap:       graphics.LineCapButt,
		EndCap:         graphics.LineCapButt,
		Join:           graphics.LineJoinMiter,
		MiterLimit:     defaultMiterLimit,
		TriangleWidth:  1,
		TriangleLength: 2,
	}
}

// edge is a non-horizontal line segment in device coordinates, oriented so
// that y0 < y1.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64
	dir    float32 // +1 if the original segment pointed downwards, -1 otherwise
}

// NewRasteriser allocates a Rasteriser for the given device clip rectangle.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores all parameters to their default values and sets a new clip
// rectangle.  Buffer capacity is kept.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Style = DefaultStyle()
}

// FillNonZero fills the path using the nonzero winding rule.
// Open subpaths are closed implicitly.
//
// The coverage slice passed to emit is only valid during the call.
func (r *Rasteriser) FillNonZero(p path.Path, emit func(y, xMin int, coverage []float32)) {
	r.collectPathEdges(p)
	r.rasterise(false, emit)
}

// FillEvenOdd fills the path using the even-odd rule.
// Open subpaths are closed implicitly.
//
// The coverage slice passed to emit is only valid during the call.
func (r *Rasteriser) FillEvenOdd(p path.Path, emit func(y, xMin int, coverage []float32)) {
	r.collectPathEdges(p)
	r.rasterise(true, emit)
}

func (r *Rasteriser) collectPathEdges(p path.Path) {
	r.resetEdges()

	var cur, start vec.Vec2
	for cmd, pts := range p {
		switch cmd {
		case path.CmdMoveTo:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur, start = pts[0], pts[0]
		case path.CmdLineTo:
			r.addEdge(cur, pts[0])
			cur = pts[0]
		case path.CmdQuadTo:
			r.flattenQuadratic(cur, pts[0], pts[1], r.addEdge)
			cur = pts[1]
		case path.CmdCubeTo:
			r.flattenCubic(cur, pts[0], pts[1], pts[2], r.addEdge)
			cur = pts[2]
		case path.CmdClose:
			if cur != start {
				r.addEdge(cur, start)
			}
			cur = start
		}
	}
	if cur != start {
		r.addEdge(cur, start)
	}
}

func (r *Rasteriser) resetEdges() {
	r.edges = r.edges[:0]
	r.hasBox = false
}

// addEdge transforms a segment from user space to device space and appends
// it to the edge list.
func (r *Rasteriser) addEdge(a, b vec.Vec2) {
	m := r.CTM
	ax := m[0]*a.X + m[2]*a.Y + m[4]
	ay := m[1]*a.X + m[3]*a.Y + m[5]
	bx := m[0]*b.X + m[2]*b.Y + m[4]
	by := m[1]*b.X + m[3]*b.Y + m[5]

	if math.Abs(by-ay) < horizontalEdgeThreshold {
		return
	}

	e := edge{x0: ax, y0: ay, x1: bx, y1: by, dir: 1}
	if by < ay {
		e = edge{x0: bx, y0: by, x1: ax, y1: ay, dir: -1}
	}
	e.dxdy = (e.x1 - e.x0) / (e.y1 - e.y0)
	r.edges = append(r.edges, e)

	xLo, xHi := min(ax, bx), max(ax, bx)
	if !r.hasBox {
		r.devBox = [4]float64{xLo, e.y0, xHi, e.y1}
		r.hasBox = true
		return
	}
	r.devBox[0] = min(r.devBox[0], xLo)
	r.devBox[1] = min(r.devBox[1], e.y0)
	r.devBox[2] = max(r.devBox[2], xHi)
	r.devBox[3] = max(r.devBox[3], e.y1)
}

// pixelRange returns the range of pixels touched by the collected edges,
// clamped to the clip rectangle.
func (r *Rasteriser) pixelRange() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}
	xMin = max(int(math.Floor(r.devBox[0])), int(r.Clip.LLx))
	yMin = max(int(math.Floor(r.devBox[1])), int(r.Clip.LLy))
	xMax = min(int(math.Floor(r.devBox[2]))+1, int(r.Clip.URx))
	yMax = min(int(math.Floor(r.devBox[3]))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// rasterise scans the collected edges using an active edge list.
//
// For every pixel two values are accumulated: cover is the signed vertical
// extent of all edge pieces inside the pixel, area weights this by the
// fraction of the pixel which lies right of the edge.  Summing cover from
// the left gives the winding number of each pixel, anti-aliased by area.
// Edges left of the clip region contribute their full cover to the first
// pixel.
func (r *Rasteriser) rasterise(evenOdd bool, emit func(y, xMin int, coverage []float32)) {
	xMin, xMax, yMin, yMax, ok := r.pixelRange()
	if !ok {
		return
	}
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(a.y0, b.y0)
	})

	r.active = r.active[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		top, bot := float64(y), float64(y+1)

		for next < len(r.edges) && r.edges[next].y0 < bot {
			r.active = append(r.active, next)
			next++
		}

		touched := false
		for i := 0; i < len(r.active); {
			e := &r.edges[r.active[i]]
			if e.y1 <= top {
				last := len(r.active) - 1
				r.active[i] = r.active[last]
				r.active = r.active[:last]
				continue
			}
			if !touched {
				clear(r.cover)
				clear(r.area)
				touched = true
			}
			r.accumulate(e, top, bot, xMin, xMax)
			i++
		}
		if !touched {
			continue
		}

		if evenOdd {
			integrateEvenOdd(r.cover, r.area)
		} else {
			integrateNonZero(r.cover, r.area)
		}
		if row, offs := trimZeros(r.cover); row != nil {
			emit(y, xMin+offs, row)
		}
	}
}

// accumulate adds the contribution of the part of e between top and bot.
// The edge is cut wherever it crosses a vertical pixel boundary, which
// happens at monotonically increasing y values.
func (r *Rasteriser) accumulate(e *edge, top, bot float64, xMin, xMax int) {
	top = max(top, e.y0)
	bot = min(bot, e.y1)
	if bot <= top {
		return
	}

	xTop := e.x0 + e.dxdy*(top-e.y0)
	xBot := e.x0 + e.dxdy*(bot-e.y0)

	prev := top
	switch {
	case xBot > xTop:
		for bx := math.Floor(xTop) + 1; bx < xBot; bx++ {
			yb := e.y0 + (bx-e.x0)/e.dxdy
			r.addPiece(e, prev, yb, xMin, xMax)
			prev = yb
		}
	case xBot < xTop:
		for bx := math.Ceil(xTop) - 1; bx > xBot; bx-- {
			yb := e.y0 + (bx-e.x0)/e.dxdy
			r.addPiece(e, prev, yb, xMin, xMax)
			prev = yb
		}
	}
	r.addPiece(e, prev, bot, xMin, xMax)
}

// addPiece records a part of an edge which lies within a single pixel.
func (r *Rasteriser) addPiece(e *edge, ya, yb float64, xMin, xMax int) {
	if yb <= ya {
		return
	}
	c := e.dir * float32(yb-ya)
	xm := e.x0 + e.dxdy*((ya+yb)/2-e.y0)
	px := int(math.Floor(xm))
	switch {
	case px < xMin:
		r.cover[0] += c
		r.area[0] += c
	case px < xMax:
		i := px - xMin
		r.cover[i] += c
		r.area[i] += c * float32(1-(xm-float64(px)))
	}
}

// integrateNonZero turns the accumulated values into coverage, in place.
func integrateNonZero(cover, area []float32) {
	var acc float32
	for i, c := range cover {
		v := acc + area[i]
		acc += c
		if v < 0 {
			v = -v
		}
		cover[i] = min(v, 1)
	}
}

// integrateEvenOdd turns the accumulated values into coverage, in place.
// Winding numbers are folded into the range [0, 1] with period 2.
func integrateEvenOdd(cover, area []float32) {
	var acc float32
	for i, c := range cover {
		v := acc + area[i]
		acc += c
		if v < 0 {
			v = -v
		}
		v -= 2 * float32(int(v/2))
		if v > 1 {
			v = 2 - v
		}
		cover[i] = v
	}
}

// trimZeros returns the part of a scanline between the first and last
// non-zero entry.
func trimZeros(row []float32) ([]float32, int) {
	lo := 0
	for lo < len(row) && row[lo] == 0 {
		lo++
	}
	if lo == len(row) {
		return nil, 0
	}
	hi := len(row)
	for row[hi-1] == 0 {
		hi--
	}
	return row[lo:hi], lo
}

// deviceLength returns the length of a user space vector after mapping
// through the linear part of the CTM.
func (r *Rasteriser) deviceLength(v vec.Vec2) float64 {
	m := r.CTM
	return math.Hypot(m[0]*v.X+m[2]*v.Y, m[1]*v.X+m[3]*v.Y)
}

// flattenQuadratic approximates a quadratic Bézier curve by line segments
// and passes them to emit.  The number of segments is chosen so that the
// error in device space stays below the flatness.
func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(a, b vec.Vec2)) {
	dev := r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))
	n := 1
	if dev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(dev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s).Add(p1.Mul(2 * s * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments.
// The segment count follows Wang's formula.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(a, b vec.Vec2)) {
	dev := max(
		r.deviceLength(p0.Sub(p1.Mul(2)).Add(p2)),
		r.deviceLength(p1.Sub(p2.Mul(2)).Add(p3)),
	)
	n := 1
	if nf := math.Sqrt(3 * dev / (4 * r.Flatness)); nf > 1 {
		n = int(math.Ceil(nf))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		s := 1 - t
		pt := p0.Mul(s * s * s).
			Add(p1.Mul(3 * s * s * t)).
			Add(p2.Mul(3 * s * t * t)).
			Add(p3.Mul(t * t * t))
		emit(prev, pt)
		prev = pt
	}
}

const (
	// defaultFlatness is a quarter pixel, below the threshold of visibility.
	defaultFlatness = 0.25

	// defaultMiterLimit converts joins to bevels below about 11.5 degrees.
	defaultMiterLimit = 10.0

	horizontalEdgeThreshold = 1e-10
	zeroLengthThreshold     = 1e-10
	collinearityThreshold   = 1e-6
)
