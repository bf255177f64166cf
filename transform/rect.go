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

package transform

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/rect"
)

// Point is a position in integer coordinates.
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is an axis-aligned rectangle in integer coordinates.
//
// A valid rectangle has X0 <= X1 and Y0 <= Y1.  The rectangle with all
// coordinates zero is the null rectangle, which describes no region at all.
// Degenerate rectangles (zero width or height) are valid and not null,
// unless all four coordinates are zero.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// Null is the null rectangle.
var Null = Rect{}

// Infinite covers the whole coordinate range used by the container format.
var Infinite = Rect{
	X0: math.MinInt32, Y0: math.MinInt32,
	X1: math.MaxInt32, Y1: math.MaxInt32,
}

// RectFromPoints returns the smallest rectangle containing both points.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		X0: min(a.X, b.X), Y0: min(a.Y, b.Y),
		X1: max(a.X, b.X), Y1: max(a.Y, b.Y),
	}
}

func (r Rect) String() string {
	if r.IsNull() {
		return "null"
	}
	return fmt.Sprintf("(%d,%d,%d,%d)", r.X0, r.Y0, r.X1, r.Y1)
}

// IsNull reports whether r is the null rectangle.
func (r Rect) IsNull() bool {
	return r == Rect{}
}

// Valid reports whether r is a non-null rectangle with ordered corners.
func (r Rect) Valid() bool {
	return !r.IsNull() && r.X0 <= r.X1 && r.Y0 <= r.Y1
}

// Dx returns the width of r.
func (r Rect) Dx() int {
	return r.X1 - r.X0
}

// Dy returns the height of r.
func (r Rect) Dy() int {
	return r.Y1 - r.Y0
}

// Overlap reports whether r and o have at least one point in common.
// Rectangles touching along an edge overlap.  The null rectangle
// overlaps nothing, not even itself.
func (r Rect) Overlap(o Rect) bool {
	if !r.Valid() || !o.Valid() {
		return false
	}
	return r.X0 <= o.X1 && o.X0 <= r.X1 && r.Y0 <= o.Y1 && o.Y0 <= r.Y1
}

// Encloses reports whether o lies completely inside r.
func (r Rect) Encloses(o Rect) bool {
	if !r.Valid() || !o.Valid() {
		return false
	}
	return r.X0 <= o.X0 && o.X1 <= r.X1 && r.Y0 <= o.Y0 && o.Y1 <= r.Y1
}

// Contains reports whether the point p lies inside r, including the edges.
func (r Rect) Contains(p Point) bool {
	return r.Valid() && r.X0 <= p.X && p.X <= r.X1 && r.Y0 <= p.Y && p.Y <= r.Y1
}

// Intersect returns the intersection of r and o.
// The result is the null rectangle if the two do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	if !r.Overlap(o) {
		return Null
	}
	return Rect{
		X0: max(r.X0, o.X0), Y0: max(r.Y0, o.Y0),
		X1: min(r.X1, o.X1), Y1: min(r.Y1, o.Y1),
	}
}

// Combine returns the smallest rectangle enclosing both r and o.
// A null (or otherwise invalid) operand does not contribute to the result.
func (r Rect) Combine(o Rect) Rect {
	switch {
	case !o.Valid():
		return r
	case !r.Valid():
		return o
	}
	return Rect{
		X0: min(r.X0, o.X0), Y0: min(r.Y0, o.Y0),
		X1: max(r.X1, o.X1), Y1: max(r.Y1, o.Y1),
	}
}

// Inset returns r shrunk by dx horizontally and dy vertically on each side.
// Negative values grow the rectangle.
func (r Rect) Inset(dx, dy int) Rect {
	if r.IsNull() {
		return r
	}
	return Rect{X0: r.X0 + dx, Y0: r.Y0 + dy, X1: r.X1 - dx, Y1: r.Y1 - dy}
}

// Geom converts r into a floating point rectangle.
func (r Rect) Geom() rect.Rect {
	return rect.Rect{
		LLx: float64(r.X0), LLy: float64(r.Y0),
		URx: float64(r.X1), URy: float64(r.Y1),
	}
}

// FromGeom converts a floating point rectangle into integer coordinates,
// using the rounding mode mode.
func FromGeom(g rect.Rect, mode Round) Rect {
	lo, hi := mode.corners()
	return Rect{
		X0: lo.apply(g.LLx), Y0: lo.apply(g.LLy),
		X1: hi.apply(g.URx), Y1: hi.apply(g.URy),
	}
}
