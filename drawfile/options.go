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
	"fmt"
	"io"

	"seehuhn.de/go/psiprint/transform"
)

// Paper is one of the ISO A paper sizes.
type Paper int

// The supported paper sizes.
const (
	A0 Paper = iota
	A1
	A2
	A3
	A4
	A5
)

var paperMM = [...][2]float64{
	A0: {841, 1189},
	A1: {594, 841},
	A2: {420, 594},
	A3: {297, 420},
	A4: {210, 297},
	A5: {148, 210},
}

func (p Paper) String() string {
	return fmt.Sprintf("A%d", int(p))
}

// Size returns the width and height of the paper in portrait orientation,
// in internal units.
func (p Paper) Size() (w, h int) {
	mm := paperMM[p]
	return transform.MM.ToInternal().Length(int(mm[0]), transform.RoundNearest),
		transform.MM.ToInternal().Length(int(mm[1]), transform.RoundNearest)
}

// Options is the options record, which tells the viewer the paper size.
type Options struct {
	Paper     Paper
	Landscape bool
}

// ChooseOptions returns the smallest paper, from A5 upwards, which holds
// a page of the given extent in either orientation.  Portrait is tried
// first.  If no paper is large enough, A4 portrait is used.
func ChooseOptions(width, height int) Options {
	for p := A5; p >= A0; p-- {
		w, h := p.Size()
		if width <= w && height <= h {
			return Options{Paper: p}
		}
		if width <= h && height <= w {
			return Options{Paper: p, Landscape: true}
		}
	}
	return Options{Paper: A4}
}

// PaperSize returns the width and height of the paper in the selected
// orientation, in internal units.
func (o Options) PaperSize() (w, h int) {
	w, h = o.Paper.Size()
	if o.Landscape {
		w, h = h, w
	}
	return w, h
}

// Tag implements the Object interface.
func (o Options) Tag() Tag { return TagOptions }

// Size implements the Object interface.
func (o Options) Size() int { return optionsSize }

// BBox implements the Object interface.  The options record has no extent.
func (o Options) BBox() transform.Rect { return transform.Null }

// Paint implements the Object interface.
func (o Options) Paint(*RenderControl) error { return nil }

// Save implements the Object interface.
func (o Options) Save(w io.Writer, st transform.Transform) error {
	var e encoder
	e.header(TagOptions, optionsSize, transform.Null, st)
	word := uint32(o.Paper+1) << 8
	if o.Landscape {
		word |= 1 << 4
	}
	e.uword(word)
	return e.flush(w)
}
