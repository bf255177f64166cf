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
	"io"

	"seehuhn.de/go/psiprint/transform"
)

// MaxFonts is the number of entries a font table can hold.
const MaxFonts = 255

// FontTable maps font names to the one-byte indices used by text objects.
// Index 0 is reserved for the system font.
type FontTable struct {
	names []string
	index map[string]byte
	body  int
}

// NewFontTable returns an empty font table.
func NewFontTable() *FontTable {
	return &FontTable{index: make(map[string]byte)}
}

// Index returns the index of the named font, allocating a new entry on
// first use.  When the table is full, 0 is returned.
func (ft *FontTable) Index(name string) byte {
	if i, ok := ft.index[name]; ok {
		return i
	}
	if len(ft.names) >= MaxFonts {
		return 0
	}
	ft.names = append(ft.names, name)
	i := byte(len(ft.names))
	ft.index[name] = i
	ft.body += 1 + len(name) + 1
	return i
}

// Names returns the font names in index order, starting with index 1.
func (ft *FontTable) Names() []string {
	return ft.names
}

// Len returns the number of fonts in the table.
func (ft *FontTable) Len() int {
	return len(ft.names)
}

// Tag implements the Object interface.
func (ft *FontTable) Tag() Tag { return TagFontTable }

// Size implements the Object interface.  An empty table has size 0.
func (ft *FontTable) Size() int {
	if len(ft.names) == 0 {
		return 0
	}
	return (fontHeaderSize + ft.body + 3) &^ 3
}

// BBox implements the Object interface.
func (ft *FontTable) BBox() transform.Rect { return transform.Null }

// Paint implements the Object interface.
func (ft *FontTable) Paint(*RenderControl) error { return nil }

// Save implements the Object interface.
func (ft *FontTable) Save(w io.Writer, _ transform.Transform) error {
	size := ft.Size()
	if size == 0 {
		return nil
	}
	var e encoder
	e.uword(uint32(TagFontTable))
	e.word(size)
	for i, name := range ft.names {
		e.buf = append(e.buf, byte(i+1))
		e.buf = append(e.buf, name...)
		e.buf = append(e.buf, 0)
	}
	e.pad()
	return e.flush(w)
}
