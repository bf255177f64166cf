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

package graphic

import (
	"math"

	"seehuhn.de/go/psiprint"
	"seehuhn.de/go/psiprint/drawfile"
	"seehuhn.de/go/psiprint/transform"
)

// minDashUnit is the smallest length unit of a dash pattern, one point
// in internal units.
const minDashUnit = 640

// kappa is the control point offset, relative to the radius, of a cubic
// Bézier curve approximating a quarter circle.
var kappa = 4 * (math.Sqrt2 - 1) / 3

// newPath returns an empty path styled with the current pen and, for
// closed shapes, the current brush.
func newPath(st psiprint.State, filled bool) *drawfile.Path {
	fill := drawfile.Transparent
	if filled {
		fill = brushColour(st)
	}
	width := toInternal.Length(st.Pen.Size, transform.RoundNearest)
	p := drawfile.NewPath(fill, penColour(st), width)
	p.Dash = dashPattern(st.Pen.Style, width)
	return p
}

// dashPattern returns the dash pattern for a pen style, or nil for solid
// lines.
func dashPattern(style psiprint.PenStyle, width int) *drawfile.Dash {
	u := max(width, minDashUnit)
	var pattern []int
	switch style {
	case psiprint.PenDotted:
		pattern = []int{u, u}
	case psiprint.PenDashed:
		pattern = []int{4 * u, 2 * u}
	case psiprint.PenDotDash:
		pattern = []int{4 * u, 2 * u, u, 2 * u}
	case psiprint.PenDotDotDash:
		pattern = []int{4 * u, 2 * u, u, 2 * u, u, 2 * u}
	default:
		return nil
	}
	return &drawfile.Dash{Lengths: pattern}
}

func visible(p *drawfile.Path) bool {
	return !p.Fill.IsTransparent() || !p.Outline.IsTransparent()
}

func (g *Backend) finish(e *psiprint.Engine, p *drawfile.Path) {
	if err := p.End(); err != nil {
		e.Error(err.Error(), false)
		return
	}
	g.add(e.State(), p)
}

// DrawLine implements the psiprint.Backend interface.
func (g *Backend) DrawLine(e *psiprint.Engine, a, b transform.Point) {
	p := newPath(e.State(), false)
	if !visible(p) {
		return
	}
	p.MoveTo(toInternal.Point(a, transform.RoundNearest))
	p.LineTo(toInternal.Point(b, transform.RoundNearest))
	g.finish(e, p)
}

// DrawRectangle implements the psiprint.Backend interface.
func (g *Backend) DrawRectangle(e *psiprint.Engine, r transform.Rect) {
	p := newPath(e.State(), true)
	if !visible(p) {
		return
	}
	q := toInternal.Rect(r, transform.RoundNearest)
	p.MoveTo(transform.Point{X: q.X0, Y: q.Y0})
	p.LineTo(transform.Point{X: q.X1, Y: q.Y0})
	p.LineTo(transform.Point{X: q.X1, Y: q.Y1})
	p.LineTo(transform.Point{X: q.X0, Y: q.Y1})
	p.Close()
	g.finish(e, p)
}

// DrawEllipse implements the psiprint.Backend interface.  The ellipse is
// made of four Bézier arcs.
func (g *Backend) DrawEllipse(e *psiprint.Engine, r transform.Rect) {
	p := newPath(e.State(), true)
	if !visible(p) {
		return
	}
	q := toInternal.Rect(r, transform.RoundNearest)
	cx, cy := float64(q.X0+q.X1)/2, float64(q.Y0+q.Y1)/2
	rx, ry := float64(q.Dx())/2, float64(q.Dy())/2
	kx, ky := kappa*rx, kappa*ry

	at := func(x, y float64) transform.Point {
		return transform.Point{X: int(math.Round(x)), Y: int(math.Round(y))}
	}
	p.MoveTo(at(cx+rx, cy))
	p.BezierTo(at(cx+rx, cy+ky), at(cx+kx, cy+ry), at(cx, cy+ry))
	p.BezierTo(at(cx-kx, cy+ry), at(cx-rx, cy+ky), at(cx-rx, cy))
	p.BezierTo(at(cx-rx, cy-ky), at(cx-kx, cy-ry), at(cx, cy-ry))
	p.BezierTo(at(cx+kx, cy-ry), at(cx+rx, cy-ky), at(cx+rx, cy))
	p.Close()
	g.finish(e, p)
}

// DrawPolygon implements the psiprint.Backend interface.
func (g *Backend) DrawPolygon(e *psiprint.Engine, vertices []transform.Point, rule psiprint.FillRule) {
	p := newPath(e.State(), true)
	if !visible(p) {
		return
	}
	p.EvenOdd = rule == psiprint.Alternate
	for i, v := range vertices {
		pt := toInternal.Point(v, transform.RoundNearest)
		if i == 0 {
			p.MoveTo(pt)
		} else {
			p.LineTo(pt)
		}
	}
	p.Close()
	g.finish(e, p)
}

// DrawBitmap implements the psiprint.Backend interface.  The engine only
// passes monochrome bitmaps, with src inside the bitmap.
func (g *Backend) DrawBitmap(e *psiprint.Engine, src, dst transform.Rect, bm *psiprint.Bitmap) {
	w, h := src.Dx(), src.Dy()
	stride := drawfile.RowBytes(w, 1)
	data := make([]byte, stride*h)
	for y := range h {
		row := bm.Data[(src.Y0+y)*bm.RowBytes():]
		for x := range w {
			sx := src.X0 + x
			if row[sx/8]>>(sx%8)&1 != 0 {
				data[y*stride+x/8] |= 1 << (x % 8)
			}
		}
	}

	palette := []drawfile.Colour{drawfile.Black, drawfile.White}
	box := toInternal.Rect(dst, transform.RoundNearest)
	s, err := drawfile.NewSprite(1, w, h, box, data, palette)
	if err != nil {
		e.Error(err.Error(), false)
		return
	}
	g.add(e.State(), s)
}
