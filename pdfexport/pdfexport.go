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

// Package pdfexport writes pages as PDF files.
package pdfexport

import (
	stdcolor "image/color"
	"io"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/psiprint/drawfile"
	"seehuhn.de/go/psiprint/raster"
	"seehuhn.de/go/psiprint/transform"
)

// internalPerPoint is the number of internal units in a PDF point.
const internalPerPoint = 640

// Write writes the page f as a one-page PDF file.  The paper size is the
// one chosen for the vector container format.
func Write(w io.Writer, f *drawfile.File) error {
	root := f.Root()
	if root == nil {
		return drawfile.ErrReleased
	}

	pw, ph := f.Options().PaperSize()
	paper := &pdf.Rectangle{
		URx: float64(pw) / internalPerPoint,
		URy: float64(ph) / internalPerPoint,
	}
	page, err := document.WriteSinglePage(w, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	// Internal units have their origin at the top left, PDF at the
	// bottom left.
	s := 1.0 / internalPerPoint
	page.Transform(matrix.Matrix{s, 0, 0, -s, 0, paper.URy})

	ex := &exporter{page: page}
	if err := ex.object(root); err != nil {
		return err
	}
	return page.Close()
}

type exporter struct {
	page *document.Page
}

func (ex *exporter) object(o drawfile.Object) error {
	switch o := o.(type) {
	case *drawfile.Group:
		return ex.group(o)
	case *drawfile.Path:
		ex.path(o)
	case *drawfile.Text:
		return ex.text(o)
	case *drawfile.Sprite:
		ex.sprite(o)
	}
	return nil
}

func (ex *exporter) group(g *drawfile.Group) error {
	clip, clipped := g.Clip()
	if clipped {
		ex.page.PushGraphicsState()
		ex.rect(clip)
		ex.page.ClipNonZero()
		ex.page.EndPath()
	}
	for _, c := range g.Children() {
		if err := ex.object(c); err != nil {
			return err
		}
	}
	if clipped {
		ex.page.PopGraphicsState()
	}
	return nil
}

func (ex *exporter) rect(r transform.Rect) {
	ex.page.Rectangle(float64(r.X0), float64(r.Y0), float64(r.Dx()), float64(r.Dy()))
}

func (ex *exporter) emit(p path.Path) {
	// PDF has no quadratic curves
	for cmd, pts := range p.ToCubic() {
		switch cmd {
		case path.CmdMoveTo:
			ex.page.MoveTo(pts[0].X, pts[0].Y)
		case path.CmdLineTo:
			ex.page.LineTo(pts[0].X, pts[0].Y)
		case path.CmdCubeTo:
			ex.page.CurveTo(pts[0].X, pts[0].Y, pts[1].X, pts[1].Y, pts[2].X, pts[2].Y)
		case path.CmdClose:
			ex.page.ClosePath()
		}
	}
}

func pdfColour(c drawfile.Colour) color.Color {
	r, g, b := c.Components()
	return color.DeviceRGB(float64(r)/255, float64(g)/255, float64(b)/255)
}

func toDevice(c stdcolor.Color) color.Color {
	r, g, b, _ := c.RGBA()
	return color.DeviceRGB(float64(r)/0xFFFF, float64(g)/0xFFFF, float64(b)/0xFFFF)
}

func (ex *exporter) path(p *drawfile.Path) {
	fill := !p.Fill.IsTransparent()
	stroke := !p.Outline.IsTransparent()
	if !fill && !stroke {
		return
	}

	page := ex.page
	if fill {
		page.SetFillColor(pdfColour(p.Fill))
	}
	if stroke {
		page.SetStrokeColor(pdfColour(p.Outline))
		page.SetLineWidth(float64(p.Width))
		page.SetLineJoin(p.Join)
		// PDF has a single cap style for both ends, and no triangles.
		lineCap := p.EndCap
		if lineCap == raster.LineCapTriangle {
			lineCap = graphics.LineCapButt
		}
		page.SetLineCap(lineCap)
		if p.Dash != nil && len(p.Dash.Lengths) > 0 {
			pattern := make([]float64, len(p.Dash.Lengths))
			for i, l := range p.Dash.Lengths {
				pattern[i] = float64(l)
			}
			page.SetLineDash(pattern, float64(p.Dash.Offset))
		} else {
			page.SetLineDash(nil, 0)
		}
	}

	ex.emit(p.Geom())
	switch {
	case fill && stroke && p.EvenOdd:
		page.FillAndStrokeEvenOdd()
	case fill && stroke:
		page.FillAndStroke()
	case fill && p.EvenOdd:
		page.FillEvenOdd()
	case fill:
		page.Fill()
	default:
		page.Stroke()
	}
}

func (ex *exporter) text(t *drawfile.Text) error {
	if t.Fill.IsTransparent() {
		return nil
	}
	return t.WithOutline(func(p path.Path) error {
		ex.page.SetFillColor(pdfColour(t.Fill))
		ex.emit(p)
		ex.page.Fill()
		return nil
	})
}

// sprite paints the image as one rectangle per run of equal pixels.
func (ex *exporter) sprite(s *drawfile.Sprite) {
	box := s.BBox()
	img := s.Image()
	dx := float64(box.Dx()) / float64(s.Width)
	dy := float64(box.Dy()) / float64(s.Height)
	for y := range s.Height {
		x0 := 0
		for x := 1; x <= s.Width; x++ {
			if x < s.Width && img.At(x, y) == img.At(x0, y) {
				continue
			}
			ex.page.SetFillColor(toDevice(img.At(x0, y)))
			ex.page.Rectangle(float64(box.X0)+float64(x0)*dx, float64(box.Y0)+float64(y)*dy,
				float64(x-x0)*dx, dy)
			ex.page.Fill()
			x0 = x
		}
	}
}
