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

// Package transform implements the coordinate systems used when rendering
// print jobs, and the scaling transformations between them.
//
// Four units are in use: internal units, the canonical unit in which all
// drawing objects are stored; twips, the unit of the incoming page stream;
// millipoints, the unit of the font engine; and OS units, the unit of the
// display.  All transformations are diagonal: they scale and translate each
// axis independently, without shear or rotation.
package transform

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Round selects how transformed coordinates are mapped to integers.
type Round int

// These are the supported rounding modes.
const (
	// RoundNearest rounds to the nearest integer, halves away from zero.
	RoundNearest Round = iota

	// RoundUp rounds towards positive infinity.
	RoundUp

	// RoundDown rounds towards negative infinity.
	RoundDown

	// RoundZero rounds towards zero.
	RoundZero

	// RoundOut grows rectangles: lower corners round down and upper
	// corners round up.  Lone values are rounded away from zero.
	RoundOut

	// RoundIn shrinks rectangles: lower corners round up and upper
	// corners round down.  Lone values are rounded towards zero.
	RoundIn

	// roundAway rounds away from zero.  Only used internally, for lone
	// values transformed with RoundOut.
	roundAway
)

func (r Round) String() string {
	switch r {
	case RoundNearest:
		return "nearest"
	case RoundUp:
		return "up"
	case RoundDown:
		return "down"
	case RoundZero:
		return "zero"
	case RoundOut:
		return "out"
	case RoundIn:
		return "in"
	default:
		return fmt.Sprintf("Round(%d)", int(r))
	}
}

// corners translates r into the base modes for the lower and the upper
// corner of a rectangle.
func (r Round) corners() (lo, hi Round) {
	switch r {
	case RoundOut:
		return RoundDown, RoundUp
	case RoundIn:
		return RoundUp, RoundDown
	default:
		return r, r
	}
}

// scalar translates r into the base mode for a lone value.
func (r Round) scalar() Round {
	switch r {
	case RoundOut:
		return roundAway
	case RoundIn:
		return RoundZero
	default:
		return r
	}
}

// apply rounds x.  The receiver must be a base mode.
func (r Round) apply(x float64) int {
	var y float64
	switch r {
	case RoundUp:
		y = math.Ceil(x)
	case RoundDown:
		y = math.Floor(x)
	case RoundZero:
		y = math.Trunc(x)
	case roundAway:
		if x < 0 {
			y = math.Floor(x)
		} else {
			y = math.Ceil(x)
		}
	default:
		y = math.Round(x)
	}
	return int(y)
}

// Transform maps coordinates from one unit to another.
//
// A coordinate x is mapped to x*SX + OX horizontally, and y to y*SY + OY
// vertically.  Transform values are immutable and can be copied freely;
// the forward and inverse matrices are computed once, on construction.
type Transform struct {
	fwd, inv matrix.Matrix
	identity bool
}

// Identity is the identity transformation.
var Identity = New(1, 1, 0, 0)

// New returns the transformation with the given scale factors and offsets.
// The scale factors must be non-zero.
func New(sx, sy, ox, oy float64) Transform {
	if sx == 0 || sy == 0 {
		panic("transform: singular transformation")
	}
	fwd := matrix.Matrix{sx, 0, 0, sy, ox, oy}
	inv := matrix.Matrix{1 / sx, 0, 0, 1 / sy, -ox / sx, -oy / sy}
	return Transform{
		fwd:      fwd,
		inv:      inv,
		identity: fwd == matrix.Identity,
	}
}

// Scale returns the transformation scaling both axes by s.
func Scale(s float64) Transform {
	return New(s, s, 0, 0)
}

// SX returns the horizontal scale factor.
func (t Transform) SX() float64 { return t.fwd[0] }

// SY returns the vertical scale factor.
func (t Transform) SY() float64 { return t.fwd[3] }

// OX returns the horizontal offset.
func (t Transform) OX() float64 { return t.fwd[4] }

// OY returns the vertical offset.
func (t Transform) OY() float64 { return t.fwd[5] }

// IsIdentity reports whether t leaves all coordinates unchanged.
func (t Transform) IsIdentity() bool {
	return t.identity || t == Transform{}
}

// Matrix returns t as an affine matrix.
func (t Transform) Matrix() matrix.Matrix {
	if t == (Transform{}) {
		return matrix.Identity
	}
	return t.fwd
}

// InverseMatrix returns the inverse of t as an affine matrix.
func (t Transform) InverseMatrix() matrix.Matrix {
	if t == (Transform{}) {
		return matrix.Identity
	}
	return t.inv
}

// Inverse returns the transformation which undoes t.
func (t Transform) Inverse() Transform {
	if t.IsIdentity() {
		return Identity
	}
	return Transform{fwd: t.inv, inv: t.fwd}
}

// Compose returns the transformation which first applies t and then u.
func (t Transform) Compose(u Transform) Transform {
	switch {
	case t.IsIdentity():
		return u
	case u.IsIdentity():
		return t
	}
	a, b := t.fwd, u.fwd
	return New(a[0]*b[0], a[3]*b[3], a[4]*b[0]+b[4], a[5]*b[3]+b[5])
}

// Equal reports whether t and u agree to within tol in every scale factor
// and offset.
func (t Transform) Equal(u Transform, tol float64) bool {
	a, b := t.Matrix(), u.Matrix()
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func (t Transform) String() string {
	m := t.Matrix()
	return fmt.Sprintf("x*%g%+g, y*%g%+g", m[0], m[4], m[3], m[5])
}

// ApplyX maps a horizontal coordinate without rounding.
func (t Transform) ApplyX(x float64) float64 {
	if t.IsIdentity() {
		return x
	}
	return x*t.fwd[0] + t.fwd[4]
}

// ApplyY maps a vertical coordinate without rounding.
func (t Transform) ApplyY(y float64) float64 {
	if t.IsIdentity() {
		return y
	}
	return y*t.fwd[3] + t.fwd[5]
}

// Vec maps a point given in floating point coordinates.
func (t Transform) Vec(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{X: t.ApplyX(v.X), Y: t.ApplyY(v.Y)}
}

// X maps a horizontal coordinate.
func (t Transform) X(x int, mode Round) int {
	if t.IsIdentity() {
		return x
	}
	return mode.scalar().apply(t.ApplyX(float64(x)))
}

// Y maps a vertical coordinate.
func (t Transform) Y(y int, mode Round) int {
	if t.IsIdentity() {
		return y
	}
	return mode.scalar().apply(t.ApplyY(float64(y)))
}

// Length maps a horizontal distance.  Offsets and the sign of the scale
// factor are ignored, so the result has the same sign as d.
func (t Transform) Length(d int, mode Round) int {
	if t.IsIdentity() {
		return d
	}
	return mode.scalar().apply(float64(d) * math.Abs(t.fwd[0]))
}

// Height maps a vertical distance, like Length does for horizontal ones.
func (t Transform) Height(d int, mode Round) int {
	if t.IsIdentity() {
		return d
	}
	return mode.scalar().apply(float64(d) * math.Abs(t.fwd[3]))
}

// Point maps a point.
func (t Transform) Point(p Point, mode Round) Point {
	if t.IsIdentity() {
		return p
	}
	return Point{X: t.X(p.X, mode), Y: t.Y(p.Y, mode)}
}

// Rect maps a rectangle.  Scale factors with negative sign swap the
// corners, so that the result is again a valid rectangle.  With RoundOut
// the result encloses the exact image of r, with RoundIn it is enclosed by
// it.  The null rectangle maps to the null rectangle.
func (t Transform) Rect(r Rect, mode Round) Rect {
	if r.IsNull() || t.IsIdentity() {
		return r
	}
	x0, x1 := t.ApplyX(float64(r.X0)), t.ApplyX(float64(r.X1))
	y0, y1 := t.ApplyY(float64(r.Y0)), t.ApplyY(float64(r.Y1))
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	lo, hi := mode.corners()
	return Rect{
		X0: lo.apply(x0), Y0: lo.apply(y0),
		X1: hi.apply(x1), Y1: hi.apply(y1),
	}
}

// InverseRect maps a rectangle through the inverse of t.
func (t Transform) InverseRect(r Rect, mode Round) Rect {
	return t.Inverse().Rect(r, mode)
}

// InversePoint maps a point through the inverse of t.
func (t Transform) InversePoint(p Point, mode Round) Point {
	return t.Inverse().Point(p, mode)
}
