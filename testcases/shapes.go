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

package testcases

import (
	"seehuhn.de/go/psiprint"
	"seehuhn.de/go/psiprint/transform"
)

var shapeCases = []TestCase{
	{
		Name: "hairline",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			e.DrawLine(pt(1440, 1440), pt(10466, 1440))
		}},
	},
	{
		Name: "pen_styles",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			styles := []psiprint.PenStyle{
				psiprint.PenSolid,
				psiprint.PenDotted,
				psiprint.PenDashed,
				psiprint.PenDotDash,
				psiprint.PenDotDotDash,
				psiprint.PenNull,
			}
			for i, style := range styles {
				e.SetPenStyle(style)
				e.SetPenSize(20 * i)
				y := 1440 + 720*i
				e.DrawLine(pt(1440, y), pt(10466, y))
			}
		}},
	},
	{
		Name: "rectangles",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			e.SetPenSize(40)
			e.SetBrushStyle(psiprint.BrushSolid)
			e.SetBrushColour(psiprint.Colour{R: 0xC0, G: 0xC0, B: 0xFF})
			e.DrawRectangle(rc(1440, 1440, 5760, 4320))

			// corners given the wrong way round
			e.SetBrushStyle(psiprint.BrushNull)
			e.SetPenColour(psiprint.Colour{R: 0xFF})
			e.DrawRectangle(rc(10466, 4320, 6146, 1440))
		}},
	},
	{
		Name: "ellipses",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			e.SetPenSize(20)
			e.DrawEllipse(rc(1440, 1440, 5760, 4320))
			e.SetBrushStyle(psiprint.BrushSolid)
			e.SetBrushColour(psiprint.Colour{G: 0x80})
			e.DrawEllipse(rc(6146, 1440, 9026, 4320))
		}},
	},
	{
		Name: "polygon_rules",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			star := func(dx int) []transform.Point {
				return []transform.Point{
					pt(dx+1440, 4320),
					pt(dx+2880, 1440),
					pt(dx+4320, 4320),
					pt(dx+1000, 2400),
					pt(dx+4760, 2400),
				}
			}
			e.SetBrushStyle(psiprint.BrushSolid)
			e.SetBrushColour(psiprint.Colour{R: 0xFF, G: 0xC0})
			e.DrawPolygon(star(0), psiprint.Alternate)
			e.DrawPolygon(star(5040), psiprint.Winding)
		}},
	},
	{
		Name: "inverted_pen",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			e.SetPenSize(100)
			e.SetDrawMode(psiprint.ModeSet | psiprint.InvertPen)
			e.DrawLine(pt(1440, 1440), pt(10466, 8000))
		}},
	},
}
