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
	"encoding/binary"
	"io"

	"seehuhn.de/go/psiprint/transform"
)

// Sizes of the fixed parts of the container records.
const (
	fileHeaderSize   = 40
	objectHeaderSize = 24
	fontHeaderSize   = 8
	groupHeaderSize  = objectHeaderSize + 12
	optionsSize      = objectHeaderSize + 4
)

// encoder assembles a record in memory.  All words are little-endian and
// every record is a multiple of four bytes long.
type encoder struct {
	buf []byte
}

func (e *encoder) word(v int) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(int32(v)))
}

func (e *encoder) uword(v uint32) {
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
}

func (e *encoder) rect(r transform.Rect) {
	e.word(r.X0)
	e.word(r.Y0)
	e.word(r.X1)
	e.word(r.Y1)
}

func (e *encoder) point(p transform.Point) {
	e.word(p.X)
	e.word(p.Y)
}

// name writes s into a field of n bytes, padded with spaces.
func (e *encoder) name(s string, n int) {
	if len(s) > n {
		s = s[:n]
	}
	e.buf = append(e.buf, s...)
	for range n - len(s) {
		e.buf = append(e.buf, ' ')
	}
}

// cstring writes s with a terminating NUL, padded with zeros to a word
// boundary.
func (e *encoder) cstring(s string) {
	e.buf = append(e.buf, s...)
	e.buf = append(e.buf, 0)
	e.pad()
}

func (e *encoder) pad() {
	for len(e.buf)%4 != 0 {
		e.buf = append(e.buf, 0)
	}
}

// header writes the common object header.  The bounding box is mapped
// through st.
func (e *encoder) header(tag Tag, size int, box transform.Rect, st transform.Transform) {
	e.uword(uint32(tag))
	e.word(size)
	if box.IsNull() {
		e.rect(transform.Null)
	} else {
		e.rect(st.Rect(box, transform.RoundOut))
	}
}

func (e *encoder) flush(w io.Writer) error {
	_, err := w.Write(e.buf)
	e.buf = e.buf[:0]
	return err
}

// paddedLen returns the size of a NUL terminated string of length n,
// rounded up to a word boundary.
func paddedLen(n int) int {
	return (n + 1 + 3) &^ 3
}
