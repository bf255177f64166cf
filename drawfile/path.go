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

package drawfile

import (
	"errors"
	"io"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"

	"seehuhn.de/go/psiprint/internal/logging"
	"seehuhn.de/go/psiprint/raster"
	"seehuhn.de/go/psiprint/transform"
)

// PathOp is a path element tag in the container format.
type PathOp uint32

// The path elements.
const (
	OpEnd    PathOp = 0
	OpMove   PathOp = 2
	OpClose  PathOp = 5
	OpBezier PathOp = 6
	OpLine   PathOp = 8
)

func (op PathOp) points() int {
	switch op {
	case OpMove, OpLine:
		return 1
	case OpBezier:
		return 3
	default:
		return 0
	}
}

// PathElement is one element of a path.  Unused points are zero.
type PathElement struct {
	Op     PathOp
	Points [3]transform.Point
}

// Dash is a dash pattern, in internal units.
type Dash struct {
	Offset  int
	Lengths []int
}

// Path is a path object.  Build the path with MoveTo, LineTo, BezierTo and
// Close, then call End to finish it.  The style must be set before End is
// called, since the bounding box depends on it.
type Path struct {
	Fill    Colour
	Outline Colour

	// Width is the line width in internal units.  Zero gives the thinnest
	// line the device can show.
	Width int

	Join     graphics.LineJoinStyle
	StartCap graphics.LineCapStyle
	EndCap   graphics.LineCapStyle

	// TriangleWidth and TriangleLength give the shape of triangular caps,
	// in sixteenths of the line width.
	TriangleWidth  uint8
	TriangleLength uint8

	EvenOdd bool
	Dash    *Dash

	elems []PathElement
	box   transform.Rect
	ended bool
}

// ErrPathEnded is returned when elements are added to a finished path.
var ErrPathEnded = errors.New("path already ended")

// NewPath returns an empty path with the given colours and line width.
// Caps are butt and joins are mitred.
func NewPath(fill, outline Colour, width int) *Path {
	return &Path{
		Fill:           fill,
		Outline:        outline,
		Width:          width,
		Join:           graphics.LineJoinMiter,
		StartCap:       graphics.LineCapButt,
		EndCap:         graphics.LineCapButt,
		TriangleWidth:  16,
		TriangleLength: 32,
	}
}

func (p *Path) add(op PathOp, pts ...transform.Point) error {
	if p.ended {
		return ErrPathEnded
	}
	e := PathElement{Op: op}
	copy(e.Points[:], pts)
	p.elems = append(p.elems, e)
	return nil
}

// MoveTo starts a new subpath.
func (p *Path) MoveTo(a transform.Point) error {
	return p.add(OpMove, a)
}

// LineTo adds a straight line to the current subpath.
func (p *Path) LineTo(a transform.Point) error {
	return p.add(OpLine, a)
}

// BezierTo adds a cubic Bézier curve to the current subpath.
func (p *Path) BezierTo(c1, c2, a transform.Point) error {
	return p.add(OpBezier, c1, c2, a)
}

// Close closes the current subpath.
func (p *Path) Close() error {
	return p.add(OpClose)
}

// End finishes the path and computes its bounding box, which includes
// the full extent of the stroke and of the fill.
func (p *Path) End() error {
	if err := p.add(OpEnd); err != nil {
		return err
	}
	p.ended = true

	r := raster.NewRasteriser(transform.Infinite.Geom())
	r.Flatness = boundsFlatness
	r.Style = p.style(1)
	stroked := !p.Outline.IsTransparent()
	if !stroked {
		r.Width = 0
	}
	p.box = transform.Null
	if box, ok := r.StrokeBounds(p.Geom()); ok {
		p.box = transform.FromGeom(box, transform.RoundOut)
	}

	// A dashed outline can leave parts of the fill uncovered.
	if stroked && p.Dash != nil && !p.Fill.IsTransparent() {
		r.Width = 0
		if box, ok := r.StrokeBounds(p.Geom()); ok {
			p.box = p.box.Combine(transform.FromGeom(box, transform.RoundOut))
		}
	}
	return nil
}

// boundsFlatness is the curve tolerance for bounding boxes, a quarter of
// an OS unit.
const boundsFlatness = 64

// Elements returns the path elements, including the final end element.
func (p *Path) Elements() []PathElement {
	return p.elems
}

// Geom returns the path in internal units.
func (p *Path) Geom() path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [3]vec.Vec2
		for _, e := range p.elems {
			var cmd path.Command
			switch e.Op {
			case OpMove:
				cmd = path.CmdMoveTo
			case OpLine:
				cmd = path.CmdLineTo
			case OpBezier:
				cmd = path.CmdCubeTo
			case OpClose:
				cmd = path.CmdClose
			default:
				return
			}
			n := e.Op.points()
			for i := range n {
				buf[i] = vec.Vec2{X: float64(e.Points[i].X), Y: float64(e.Points[i].Y)}
			}
			if !yield(cmd, buf[:n]) {
				return
			}
		}
	}
}

// style returns the stroke style, with all lengths multiplied by scale.
func (p *Path) style(scale float64) raster.Style {
	s := raster.DefaultStyle()
	s.Width = float64(p.Width) * scale
	s.Join = p.Join
	s.StartCap = p.StartCap
	s.EndCap = p.EndCap
	s.TriangleWidth = float64(p.TriangleWidth) / 16
	s.TriangleLength = float64(p.TriangleLength) / 16
	if p.Dash != nil {
		s.Dash = make([]float64, len(p.Dash.Lengths))
		for i, l := range p.Dash.Lengths {
			s.Dash[i] = float64(l) * scale
		}
		s.DashPhase = float64(p.Dash.Offset) * scale
	}
	return s
}

// Tag implements the Object interface.
func (p *Path) Tag() Tag { return TagPath }

// BBox implements the Object interface.
func (p *Path) BBox() transform.Rect { return p.box }

// Size implements the Object interface.
func (p *Path) Size() int {
	if !p.ended {
		return 0
	}
	size := objectHeaderSize + 16
	if p.Dash != nil {
		size += 8 + 4*len(p.Dash.Lengths)
	}
	for _, e := range p.elems {
		size += 4 + 8*e.Op.points()
	}
	return size
}

// styleWord returns the packed style word of the container format.
func (p *Path) styleWord() uint32 {
	w := uint32(p.Join)&3 | (uint32(p.EndCap)&3)<<2 | (uint32(p.StartCap)&3)<<4
	if p.EvenOdd {
		w |= 1 << 6
	}
	if p.Dash != nil {
		w |= 1 << 7
	}
	w |= uint32(p.TriangleWidth)<<16 | uint32(p.TriangleLength)<<24
	return w
}

// Paint implements the Object interface.
func (p *Path) Paint(rc *RenderControl) error {
	if !p.ended || !rc.visible(p.box) {
		return nil
	}
	dev := rc.Device
	osPath := rc.osPath(p.Geom())

	if !p.Fill.IsTransparent() {
		err := dev.FillPath(osPath, p.Fill, p.EvenOdd, rc.Flatness)
		if err != nil {
			return err
		}
	}

	if p.Outline.IsTransparent() {
		return nil
	}
	style := p.style(math.Abs(rc.Trans.ToOS.SX()))
	if rc.AntiAlias {
		err := dev.StrokePath(osPath, p.Outline, &style, rc.Flatness, true)
		if err == nil {
			return nil
		}
		logging.Get().Debug("anti-aliased stroke failed", "error", err)
	}
	return dev.StrokePath(osPath, p.Outline, &style, rc.Flatness, false)
}

// Save implements the Object interface.
func (p *Path) Save(w io.Writer, st transform.Transform) error {
	size := p.Size()
	if size == 0 {
		return nil
	}
	scale := math.Abs(st.SX())

	var e encoder
	e.header(TagPath, size, p.box, st)
	e.uword(uint32(p.Fill))
	e.uword(uint32(p.Outline))
	e.word(int(math.Round(float64(p.Width) * scale)))
	e.uword(p.styleWord())
	if p.Dash != nil {
		e.word(int(math.Round(float64(p.Dash.Offset) * scale)))
		e.word(len(p.Dash.Lengths))
		for _, l := range p.Dash.Lengths {
			e.word(int(math.Round(float64(l) * scale)))
		}
	}
	for _, el := range p.elems {
		e.uword(uint32(el.Op))
		for i := range el.Op.points() {
			e.point(st.Point(el.Points[i], transform.RoundNearest))
		}
	}
	return e.flush(w)
}
