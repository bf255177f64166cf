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
	"fmt"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// kappa is the control point distance for a quarter circle, relative to
// the radius.
const kappa = 0.5522847498

// circleQuarters returns the control points of a circle made from four
// cubic Bézier curves, starting at the top.  Each quarter is given by
// three points; the start point is the end of the previous quarter.
func circleQuarters(cx, cy, r float64, clockwise bool) (start vec.Vec2, quarters [4][3]vec.Vec2) {
	k := kappa * r
	s := 1.0
	if clockwise {
		s = -1
	}
	start = vec.Vec2{X: cx, Y: cy - r}
	quarters = [4][3]vec.Vec2{
		{{X: cx + s*k, Y: cy - r}, {X: cx + s*r, Y: cy - k}, {X: cx + s*r, Y: cy}},
		{{X: cx + s*r, Y: cy + k}, {X: cx + s*k, Y: cy + r}, {X: cx, Y: cy + r}},
		{{X: cx - s*k, Y: cy + r}, {X: cx - s*r, Y: cy + k}, {X: cx - s*r, Y: cy}},
		{{X: cx - s*r, Y: cy - k}, {X: cx - s*k, Y: cy - r}, start},
	}
	return start, quarters
}

// ringPath is an "O" shape: outer circle one way, inner circle the other.
func ringPath(cx, cy, outer, inner float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [3]vec.Vec2
		for i, r := range []float64{outer, inner} {
			start, qs := circleQuarters(cx, cy, r, i == 1)
			buf[0] = start
			if !yield(path.CmdMoveTo, buf[:1]) {
				return
			}
			for _, q := range qs {
				buf = q
				if !yield(path.CmdCubeTo, buf[:]) {
					return
				}
			}
			if !yield(path.CmdClose, nil) {
				return
			}
		}
	}
}

func BenchmarkRasteriserO(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasteriser(clip)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			c := float64(size) / 2
			ring := ringPath(c, c, float64(size)*0.45, float64(size)*0.30)

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(clip)
				r.FillEvenOdd(ring, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, v := range coverage {
						row[i] = uint8(v * 255)
					}
				})
			}
		})
	}
}

// BenchmarkVectorO draws the same shape with golang.org/x/image/vector,
// as a baseline.
func BenchmarkVectorO(b *testing.B) {
	for _, size := range []int{20, 200, 2000} {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)
			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{A: 255})
			c := float64(size) / 2

			b.ReportAllocs()
			for b.Loop() {
				r.Reset(size, size)
				for i, rad := range []float64{float64(size) * 0.45, float64(size) * 0.30} {
					start, qs := circleQuarters(c, c, rad, i == 1)
					r.MoveTo(float32(start.X), float32(start.Y))
					for _, q := range qs {
						r.CubeTo(float32(q[0].X), float32(q[0].Y),
							float32(q[1].X), float32(q[1].Y),
							float32(q[2].X), float32(q[2].Y))
					}
					r.ClosePath()
				}
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

func BenchmarkStrokeDashed(b *testing.B) {
	clip := rect.Rect{URx: 500, URy: 500}
	r := NewRasteriser(clip)
	emit := func(y, xMin int, coverage []float32) {}
	ring := ringPath(250, 250, 200, 100)

	b.ReportAllocs()
	for b.Loop() {
		r.Reset(clip)
		r.Width = 6
		r.Join = graphics.LineJoinRound
		r.StartCap = graphics.LineCapRound
		r.EndCap = LineCapTriangle
		r.Dash = []float64{20, 10, 5, 10}
		r.Stroke(ring, emit)
	}
}
