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
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/psiprint/transform"
)

// polyline returns a path visiting the given points.
func polyline(closed bool, pts ...vec.Vec2) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		for i, pt := range pts {
			cmd := path.CmdLineTo
			if i == 0 {
				cmd = path.CmdMoveTo
			}
			if !yield(cmd, []vec.Vec2{pt}) {
				return
			}
		}
		if closed {
			yield(path.CmdClose, nil)
		}
	}
}

// render collects the coverage of a rasterisation into a w×h buffer.
func render(w, h int, draw func(emit func(y, xMin int, coverage []float32))) [][]float32 {
	buf := make([][]float32, h)
	for i := range buf {
		buf[i] = make([]float32, w)
	}
	draw(func(y, xMin int, coverage []float32) {
		copy(buf[y][xMin:], coverage)
	})
	return buf
}

// TestTriangleCoverage checks exact coverage values for a thin triangle
// with the diagonal edge y = x/10.  Pixel x has coverage (2x+1)/20.
func TestTriangleCoverage(t *testing.T) {
	tri := polyline(true, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0}, vec.Vec2{X: 10, Y: 1})
	r := NewRasteriser(rect.Rect{URx: 10, URy: 1})

	got := render(10, 1, func(emit func(int, int, []float32)) {
		r.FillNonZero(tri, emit)
	})

	for x := range 10 {
		want := float32(2*x+1) / 20
		if math.Abs(float64(got[0][x]-want)) > 1e-6 {
			t.Errorf("pixel %d: coverage %.4f, want %.4f", x, got[0][x], want)
		}
	}
}

func TestFillRules(t *testing.T) {
	// two nested squares with the same orientation
	square := func(x0, y0, x1, y1 float64) []vec.Vec2 {
		return []vec.Vec2{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
	}
	outer, inner := square(0, 0, 8, 8), square(2, 2, 6, 6)
	p := func(yield func(path.Command, []vec.Vec2) bool) {
		for _, poly := range [][]vec.Vec2{outer, inner} {
			polyline(true, poly...)(yield)
		}
	}

	r := NewRasteriser(rect.Rect{URx: 8, URy: 8})
	nonZero := render(8, 8, func(emit func(int, int, []float32)) { r.FillNonZero(p, emit) })
	evenOdd := render(8, 8, func(emit func(int, int, []float32)) { r.FillEvenOdd(p, emit) })

	if nonZero[4][4] != 1 {
		t.Errorf("nonzero: centre coverage %g, want 1", nonZero[4][4])
	}
	if evenOdd[4][4] != 0 {
		t.Errorf("even-odd: centre coverage %g, want 0", evenOdd[4][4])
	}
	if evenOdd[1][1] != 1 || nonZero[1][1] != 1 {
		t.Errorf("ring coverage %g/%g, want 1", evenOdd[1][1], nonZero[1][1])
	}
}

func TestImplicitClose(t *testing.T) {
	open := polyline(false, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 0}, vec.Vec2{X: 4, Y: 4}, vec.Vec2{X: 0, Y: 4})
	closed := polyline(true, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 0}, vec.Vec2{X: 4, Y: 4}, vec.Vec2{X: 0, Y: 4})

	r := NewRasteriser(rect.Rect{URx: 4, URy: 4})
	a := render(4, 4, func(emit func(int, int, []float32)) { r.FillNonZero(open, emit) })
	b := render(4, 4, func(emit func(int, int, []float32)) { r.FillNonZero(closed, emit) })
	if diff := cmp.Diff(b, a); diff != "" {
		t.Errorf("open subpath filled differently (-closed +open):\n%s", diff)
	}
}

func TestStrokeBoundsHairline(t *testing.T) {
	r := NewRasteriser(rect.Rect{})
	r.Width = 0

	p := polyline(false, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 1024000, Y: 0})
	box, ok := r.StrokeBounds(p)
	if !ok {
		t.Fatal("no bounds for a line")
	}
	want := rect.Rect{LLx: 0, LLy: 0, URx: 1024000, URy: 0}
	if diff := cmp.Diff(want, box); diff != "" {
		t.Errorf("bounds mismatch (-want +got):\n%s", diff)
	}

	if _, ok := r.StrokeBounds(polyline(false, vec.Vec2{X: 5, Y: 5})); ok {
		t.Error("bounds for a lone move-to")
	}
}

func TestStrokeBoundsCaps(t *testing.T) {
	line := polyline(false, vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 30, Y: 10})
	approx := cmpopts.EquateApprox(0, 1e-9)

	cases := []struct {
		name       string
		start, end graphics.LineCapStyle
		want       rect.Rect
	}{
		{"butt", graphics.LineCapButt, graphics.LineCapButt,
			rect.Rect{LLx: 10, LLy: 8, URx: 30, URy: 12}},
		{"square", graphics.LineCapSquare, graphics.LineCapSquare,
			rect.Rect{LLx: 8, LLy: 8, URx: 32, URy: 12}},
		{"round", graphics.LineCapRound, graphics.LineCapRound,
			rect.Rect{LLx: 8, LLy: 8, URx: 32, URy: 12}},
		{"mixed", graphics.LineCapButt, graphics.LineCapSquare,
			rect.Rect{LLx: 10, LLy: 8, URx: 32, URy: 12}},
		// half width 1×4, length 2×4
		{"triangle", graphics.LineCapButt, LineCapTriangle,
			rect.Rect{LLx: 10, LLy: 6, URx: 38, URy: 14}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRasteriser(rect.Rect{})
			r.Width = 4
			r.StartCap = tc.start
			r.EndCap = tc.end
			box, ok := r.StrokeBounds(line)
			if !ok {
				t.Fatal("no bounds")
			}
			if diff := cmp.Diff(tc.want, box, approx); diff != "" {
				t.Errorf("bounds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMiterJoin(t *testing.T) {
	corner := polyline(false, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0}, vec.Vec2{X: 10, Y: 10})

	r := NewRasteriser(rect.Rect{})
	r.Width = 2
	box, _ := r.StrokeBounds(corner)
	if math.Abs(box.URx-11) > 1e-9 || math.Abs(box.LLy+1) > 1e-9 {
		t.Errorf("miter join: got %v", box)
	}

	r.Join = graphics.LineJoinBevel
	box, _ = r.StrokeBounds(corner)
	// the bevel still reaches the offset lines of both segments
	if box.URx != 11 || box.LLy != -1 {
		t.Errorf("bevel join: got %v", box)
	}
}

func TestDashSplitsLine(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 20, URy: 4})
	r.Width = 2
	r.Dash = []float64{4, 2}

	line := polyline(false, vec.Vec2{X: 0, Y: 2}, vec.Vec2{X: 20, Y: 2})
	got := render(20, 4, func(emit func(int, int, []float32)) { r.Stroke(line, emit) })

	// dashes cover [0,4), [6,10), [12,16), [18,20)
	for x := range 20 {
		on := x%6 < 4
		if c := got[2][x]; (c == 1) != on {
			t.Errorf("pixel %d: coverage %g, dash on=%t", x, c, on)
		}
	}
}

func TestDashClosedJoin(t *testing.T) {
	r := NewRasteriser(rect.Rect{})
	r.Width = 1
	r.Dash = []float64{3, 1}
	r.DashPhase = 1
	r.flattenPath(polyline(true,
		vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 4, Y: 0}, vec.Vec2{X: 4, Y: 4}, vec.Vec2{X: 0, Y: 4}))
	if !r.applyDash() {
		t.Fatal("pattern treated as solid")
	}
	// perimeter 16 gives five dashes, but the last one wraps into the first
	if len(r.dashes) != 4 {
		t.Errorf("got %d dashes, want 4", len(r.dashes))
	}

	r.Dash = []float64{0, 0}
	if r.applyDash() {
		t.Error("all-zero pattern must give a solid line")
	}
}

func TestZeroLengthDashDots(t *testing.T) {
	r := NewRasteriser(rect.Rect{URx: 20, URy: 6})
	r.Width = 2
	r.StartCap = graphics.LineCapRound
	r.EndCap = graphics.LineCapRound
	r.Dash = []float64{0, 5}

	line := polyline(false, vec.Vec2{X: 2, Y: 3}, vec.Vec2{X: 18, Y: 3})
	got := render(20, 6, func(emit func(int, int, []float32)) { r.Stroke(line, emit) })
	for _, x := range []int{2, 7, 12, 17} {
		if got[3][x] == 0 && got[2][x] == 0 {
			t.Errorf("no dot near x=%d", x)
		}
	}
	if got[3][10] != 0 {
		t.Errorf("coverage %g between dots", got[3][10])
	}
}

func newTestCanvas() *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	// OS units (0,0)-(20,20), two OS units per pixel
	c := NewCanvas(img, transform.Point{X: 0, Y: 20}, 2)
	c.Clear(color.White)
	return c
}

func TestCanvasFill(t *testing.T) {
	c := newTestCanvas()
	red := color.RGBA{R: 255, A: 255}

	// lower-left quarter in OS units is the bottom-left of the image
	sq := polyline(true, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 10, Y: 0}, vec.Vec2{X: 10, Y: 10}, vec.Vec2{X: 0, Y: 10})
	if err := c.FillPath(sq, red, false, 0.5); err != nil {
		t.Fatal(err)
	}
	if got := c.Image.RGBAAt(2, 7); got != red {
		t.Errorf("inside: got %v", got)
	}
	if got := c.Image.RGBAAt(2, 2); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("outside: got %v", got)
	}

	// transparent colours paint nothing
	if err := c.FillPath(sq, color.Transparent, false, 0.5); err != nil {
		t.Fatal(err)
	}
}

func TestCanvasWindow(t *testing.T) {
	c := newTestCanvas()
	c.SetWindow(transform.Rect{X0: 10, Y0: 0, X1: 20, Y1: 20})

	all := polyline(true, vec.Vec2{X: 0, Y: 0}, vec.Vec2{X: 20, Y: 0}, vec.Vec2{X: 20, Y: 20}, vec.Vec2{X: 0, Y: 20})
	if err := c.FillPath(all, color.Black, false, 0.5); err != nil {
		t.Fatal(err)
	}
	if got := c.Image.RGBAAt(1, 5); got.R != 255 {
		t.Errorf("outside window painted: %v", got)
	}
	if got := c.Image.RGBAAt(8, 5); got.R != 0 {
		t.Errorf("inside window not painted: %v", got)
	}

	c.SetWindow(transform.Null)
	if err := c.FillPath(all, color.Black, false, 0.5); err != nil {
		t.Fatal(err)
	}
	if got := c.Image.RGBAAt(1, 5); got.R != 255 {
		t.Errorf("null window painted: %v", got)
	}
}

func TestCanvasAntiAliasProbe(t *testing.T) {
	c := newTestCanvas()
	c.NoAntiAlias = true
	style := DefaultStyle()
	style.Width = 4
	line := polyline(false, vec.Vec2{X: 0, Y: 10}, vec.Vec2{X: 20, Y: 10})

	err := c.StrokePath(line, color.Black, &style, 0.5, true)
	if !errors.Is(err, ErrNoAntiAlias) {
		t.Fatalf("got %v, want ErrNoAntiAlias", err)
	}
	if err := c.StrokePath(line, color.Black, &style, 0.5, false); err != nil {
		t.Fatal(err)
	}

	// aliased output contains no intermediate grey levels
	for y := range 10 {
		for x := range 10 {
			if v := c.Image.RGBAAt(x, y).G; v != 0 && v != 255 {
				t.Fatalf("pixel (%d,%d) has grey level %d", x, y, v)
			}
		}
	}
}

func TestCanvasDrawImage(t *testing.T) {
	c := newTestCanvas()
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(0, 0, color.Gray{Y: 0})
	src.SetGray(1, 0, color.Gray{Y: 255})
	src.SetGray(0, 1, color.Gray{Y: 255})
	src.SetGray(1, 1, color.Gray{Y: 0})

	if err := c.DrawImage(src, rect.Rect{LLx: 0, LLy: 0, URx: 20, URy: 20}); err != nil {
		t.Fatal(err)
	}
	if got := c.Image.RGBAAt(2, 2).R; got != 0 {
		t.Errorf("top-left quadrant: %d, want 0", got)
	}
	if got := c.Image.RGBAAt(7, 2).R; got != 255 {
		t.Errorf("top-right quadrant: %d, want 255", got)
	}
}
