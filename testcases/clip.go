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

var clipCases = []TestCase{
	{
		Name: "clipped_ellipse",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			e.SetBrushStyle(psiprint.BrushSolid)
			e.SetBrushColour(psiprint.Colour{B: 0xFF})
			e.SetClip(rc(1440, 1440, 4320, 4320))
			e.DrawEllipse(rc(720, 720, 5040, 5040))
		}},
	},
	{
		Name: "clip_changes",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			e.SetPenSize(60)
			e.SetClip(rc(1440, 1440, 5760, 2880))
			e.DrawLine(pt(0, 1440), pt(11906, 2880))
			e.DrawLine(pt(0, 2880), pt(11906, 1440))
			e.SetClip(rc(5760, 2880, 10466, 4320))
			e.DrawLine(pt(0, 2880), pt(11906, 4320))
			e.CancelClip()
			e.DrawLine(pt(0, 5760), pt(11906, 5760))
		}},
	},
	{
		Name: "clipped_away",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			e.SetClip(rc(1440, 1440, 2880, 2880))
			e.DrawLine(pt(5760, 5760), pt(10466, 10466))
			e.UseFont(font("Arial", 12))
			e.DrawText("invisible", pt(5760, 8000))
		}},
	},
}
