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
	"strconv"

	"seehuhn.de/go/psiprint"
	"seehuhn.de/go/psiprint/transform"
)

// letter draws a simple page with a header, a body and a footer.
func letter(n int) func(*psiprint.Engine) {
	return func(e *psiprint.Engine) {
		e.Start(n, psiprint.Header)
		e.UseFont(font("Arial", 8))
		e.DrawTextJustified("Header", rc(1440, 720, 10466, 1080), psiprint.AlignRight, 200, 0)

		e.Start(n, psiprint.Body)
		e.UseFont(font("Times New Roman", 12))
		for i := range 5 {
			e.DrawText("Line "+strconv.Itoa(i+1)+" of page "+strconv.Itoa(n), pt(1440, 1800+360*i))
			e.LineFeed()
		}

		e.Start(n, psiprint.Footer)
		e.UseFont(font("Arial", 8))
		e.DrawTextJustified("Page "+strconv.Itoa(n), rc(1440, 15758, 10466, 16118), psiprint.AlignCentre, 200, 0)
	}
}

var jobCases = []TestCase{
	{
		Name:  "empty",
		Pages: []func(*psiprint.Engine){func(*psiprint.Engine) {}},
	},
	{
		Name:  "letter",
		Pages: []func(*psiprint.Engine){letter(1), letter(2), letter(3)},
	},
	{
		Name: "debug",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			e.SetPenSize(40)
			e.DrawRectangle(rc(1440, 1440, 4320, 2880))
			e.Debug("rectangle", false)
			e.UseFont(font("Arial", 12))
			e.DrawText("annotated", pt(5760, 2160))
			e.Debug("text", true)
		}},
	},
	{
		Name: "bad_section",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			e.Start(1, psiprint.Section(7))
			e.DrawLine(pt(1440, 1440), pt(2880, 1440))
		}},
		Faulty: true,
	},
	{
		Name: "text_without_font",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			e.DrawText("default font", pt(1440, 1440))
			e.DrawPolygon([]transform.Point{pt(1440, 2880)}, psiprint.Winding)
		}},
		Faulty: true,
	},
}
