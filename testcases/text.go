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
)

var textCases = []TestCase{
	{
		Name: "point_text",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			e.UseFont(font("Times New Roman", 12))
			e.DrawText("The quick brown fox", pt(1440, 1440))
			e.UseFont(font("Arial", 24))
			e.DrawText("jumps over", pt(1440, 2160))
			e.UseFont(font("Courier New", 10))
			e.DrawText("the lazy dog.", pt(1440, 2880))
		}},
	},
	{
		Name: "styles",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			f := font("Arial", 14)
			y := 1440
			for _, weight := range []psiprint.Weight{psiprint.Normal, psiprint.Bold} {
				for _, posture := range []psiprint.Posture{psiprint.Upright, psiprint.Italic} {
					f.Weight = weight
					f.Posture = posture
					e.UseFont(f)
					e.DrawText("Psion Series 5", pt(1440, y))
					y += 480
				}
			}
		}},
	},
	{
		Name: "alignment",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			e.UseFont(font("Times New Roman", 12))
			aligns := []psiprint.Alignment{
				psiprint.AlignLeft,
				psiprint.AlignCentre,
				psiprint.AlignRight,
			}
			for i, align := range aligns {
				y := 1440 + 480*i
				e.DrawTextJustified("aligned text", rc(1440, y, 10466, y+360), align, 280, 144)
			}
		}},
	},
	{
		Name: "decorations",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			e.UseFont(font("Arial", 18))
			e.SetUnderline(true)
			e.DrawText("underlined", pt(1440, 1440))
			e.SetUnderline(false)
			e.SetStrikethrough(true)
			e.DrawText("struck out", pt(1440, 2160))
			e.SetUnderline(true)
			e.DrawTextJustified("both", rc(1440, 2520, 10466, 3000), psiprint.AlignCentre, 380, 0)
		}},
	},
	{
		Name: "background",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			e.UseFont(font("Courier New", 12))
			e.SetBrushStyle(psiprint.BrushSolid)
			e.SetBrushColour(psiprint.Colour{R: 0xFF, G: 0xFF, B: 0x80})
			e.SetPenColour(psiprint.Colour{B: 0x80})
			e.DrawTextJustified("highlighted", rc(1440, 1440, 5760, 1800), psiprint.AlignLeft, 280, 72)
		}},
	},
	{
		Name: "code_page",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			e.UseFont(font("Times New Roman", 12))
			e.DrawText("caf\xe9 \x80 \x93quoted\x94 na\xefve", pt(1440, 1440))
		}},
	},
	{
		Name: "screen_font",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			// unknown faces fall back to the matching screen font
			f := font("Wingdings", 12)
			f.Screen = 2
			e.UseFont(f)
			e.DrawText("monospaced", pt(1440, 1440))
		}},
	},
}
