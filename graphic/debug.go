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
	"seehuhn.de/go/psiprint"
	"seehuhn.de/go/psiprint/drawfile"
	"seehuhn.de/go/psiprint/fonts"
	"seehuhn.de/go/psiprint/transform"
)

// Layout of debug annotations, in internal units.
const (
	debugFontSize = 6 * 640
	debugGap      = 640
)

// Debug implements the psiprint.Backend interface.  The message is shown
// in small type below the most recently drawn object, which is outlined.
// Important messages are red, others blue.
func (g *Backend) Debug(e *psiprint.Engine, msg string, important bool) {
	g.defaults()
	page := g.current()
	g.closeClip()

	col := drawfile.Blue
	if important {
		col = drawfile.Red
	}

	at := transform.Point{X: 0, Y: debugFontSize}
	if box := g.last; box.Valid() {
		frame := drawfile.NewPath(drawfile.Transparent, col, 0)
		frame.MoveTo(transform.Point{X: box.X0, Y: box.Y0})
		frame.LineTo(transform.Point{X: box.X1, Y: box.Y0})
		frame.LineTo(transform.Point{X: box.X1, Y: box.Y1})
		frame.LineTo(transform.Point{X: box.X0, Y: box.Y1})
		frame.Close()
		frame.End()
		page.Add(frame)
		at = transform.Point{X: box.X0, Y: box.Y1 + debugGap + debugFontSize}
	}

	var idx byte
	if msg != "" {
		idx = page.Fonts().Index(fonts.SystemFont)
	}
	t, err := drawfile.NewText(g.Fonts, fonts.SystemFont, idx, debugFontSize, debugFontSize,
		at, msg, col, drawfile.Transparent)
	if err != nil {
		e.Error(err.Error(), false)
		return
	}
	page.Add(t)
}
