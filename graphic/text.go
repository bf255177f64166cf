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
	"fmt"

	"seehuhn.de/go/psiprint"
	"seehuhn.de/go/psiprint/drawfile"
	"seehuhn.de/go/psiprint/fonts"
	"seehuhn.de/go/psiprint/transform"
)

// defaultFontSize is used for text drawn without a font, in twips.
const defaultFontSize = 240

// textFont describes the font used for a text primitive.
type textFont struct {
	name   string
	size   int // internal units
	offset int // baseline shift, internal units, positive is up
	handle *fonts.Handle
}

// font resolves and acquires the current font.  The caller must release
// the handle.
func (g *Backend) font(e *psiprint.Engine) (*textFont, bool) {
	g.defaults()
	st := e.State()
	tf := &textFont{name: fonts.DefaultFont}
	sizeTwips := defaultFontSize
	if f := st.Font; f != nil {
		tf.name = f.Resolve(g.Map)
		sizeTwips = f.Size
		tf.offset = toInternal.Length(f.BaselineOffset, transform.RoundNearest)
	}
	tf.size = toInternal.Length(sizeTwips, transform.RoundNearest)

	h, err := g.Fonts.Acquire(tf.name, max(1, (tf.size+20)/40))
	if err != nil {
		e.Error(fmt.Sprintf("font %q: %v", tf.name, err), false)
		return nil, false
	}
	if h.Substituted() && !g.substituted[tf.name] {
		g.substituted[tf.name] = true
		e.Error(fmt.Sprintf("font %q is not available, using %q", tf.name, fonts.SystemFont), false)
	}
	tf.handle = h
	return tf, true
}

// text returns a text object for the current font and pen.
func (g *Backend) text(e *psiprint.Engine, tf *textFont, baseline transform.Point, s string) (*drawfile.Text, bool) {
	st := e.State()
	page := g.current()
	var idx byte
	if s != "" {
		// empty text is not saved and must not claim a table entry
		idx = page.Fonts().Index(tf.name)
	}
	t, err := drawfile.NewText(g.Fonts, tf.name, idx, tf.size, tf.size,
		baseline, s, textColour(st), brushColour(st))
	if err != nil {
		e.Error(err.Error(), false)
		return nil, false
	}
	return t, true
}

// decorations returns filled rectangles for underline and strikethrough.
func decorations(st psiprint.State, lay fonts.Layout) []drawfile.Object {
	var res []drawfile.Object
	add := func(r transform.Rect) {
		p := drawfile.NewPath(textColour(st), drawfile.Transparent, 0)
		p.MoveTo(transform.Point{X: r.X0, Y: r.Y0})
		p.LineTo(transform.Point{X: r.X1, Y: r.Y0})
		p.LineTo(transform.Point{X: r.X1, Y: r.Y1})
		p.LineTo(transform.Point{X: r.X0, Y: r.Y1})
		p.Close()
		p.End()
		res = append(res, p)
	}
	if st.Underline {
		add(lay.Underline)
	}
	if st.Strikethrough {
		add(lay.Strikethrough)
	}
	return res
}

// DrawText implements the psiprint.Backend interface.
func (g *Backend) DrawText(e *psiprint.Engine, s string, at transform.Point) {
	tf, ok := g.font(e)
	if !ok {
		return
	}
	defer tf.handle.Release()

	baseline := toInternal.Point(at, transform.RoundNearest)
	baseline.Y -= tf.offset

	t, ok := g.text(e, tf, baseline, s)
	if !ok {
		return
	}
	st := e.State()
	g.add(st, t)

	j := fonts.NewJustification(tf.handle, tf.size)
	j.SetText(s)
	j.SetPositionPoint(baseline)
	for _, d := range decorations(st, j.Calculate()) {
		g.container(st).Add(d)
	}
}

// DrawTextJustified implements the psiprint.Backend interface.  The text
// is placed in a clip group covering the bounding rectangle.
func (g *Backend) DrawTextJustified(e *psiprint.Engine, s string, bound transform.Rect, align psiprint.Alignment, baseline, margin int) {
	tf, ok := g.font(e)
	if !ok {
		return
	}
	defer tf.handle.Release()

	st := e.State()
	box := toInternal.Rect(bound, transform.RoundNearest)
	m := toInternal.Length(margin, transform.RoundNearest)
	y := box.Y0 + toInternal.Length(baseline, transform.RoundNearest) - tf.offset

	j := fonts.NewJustification(tf.handle, tf.size)
	j.SetText(s)
	j.SetPositionLine(box.X0+m, box.X1-m, y)
	j.SetAlignment(align)
	lay := j.Calculate()

	t, ok := g.text(e, tf, lay.Start, s)
	if !ok {
		return
	}
	if lay.Spacing != 0 {
		if err := t.SetSpacing(lay.Spacing, lay.XSize); err != nil {
			e.Error(err.Error(), false)
			return
		}
	}

	clip := drawfile.NewClip(box)
	if fill := brushColour(st); !fill.IsTransparent() {
		bg := drawfile.NewPath(fill, drawfile.Transparent, 0)
		bg.MoveTo(transform.Point{X: box.X0, Y: box.Y0})
		bg.LineTo(transform.Point{X: box.X1, Y: box.Y0})
		bg.LineTo(transform.Point{X: box.X1, Y: box.Y1})
		bg.LineTo(transform.Point{X: box.X0, Y: box.Y1})
		bg.Close()
		bg.End()
		clip.Add(bg)
	}
	clip.Add(t)
	for _, d := range decorations(st, lay) {
		clip.Add(d)
	}
	g.add(st, clip)
}
