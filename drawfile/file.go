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
	"errors"
	"io"
	"sync/atomic"

	"seehuhn.de/go/psiprint/transform"
)

// ErrReleased is returned when a released file handle is used.
var ErrReleased = errors.New("draw file has been released")

// programName is written into the file header.
const programName = "PsiPrint"

// File is a page: a root group of drawing objects together with the
// font table their text objects refer to.
//
// Files are reference counted.  Copy returns a second handle for the
// same file, and each handle must be released once.
type File struct {
	d *fileData
}

type fileData struct {
	refs  atomic.Int32
	root  *Group
	fonts *FontTable

	width, height int
}

// NewFile returns an empty file with a reference count of one.
func NewFile() *File {
	d := &fileData{
		root:  NewGroup(),
		fonts: NewFontTable(),
	}
	d.refs.Store(1)
	return &File{d: d}
}

// Copy returns a new handle for the same file.
func (f *File) Copy() *File {
	if f.d == nil {
		return &File{}
	}
	f.d.refs.Add(1)
	return &File{d: f.d}
}

// Release gives up this handle.  The handle must not be used afterwards.
func (f *File) Release() {
	if f.d == nil {
		return
	}
	f.d.refs.Add(-1)
	f.d = nil
}

// Refs returns the number of live handles for the file.
func (f *File) Refs() int {
	if f.d == nil {
		return 0
	}
	return int(f.d.refs.Load())
}

// Add appends an object to the root group.
func (f *File) Add(o Object) error {
	if f.d == nil {
		return ErrReleased
	}
	f.d.root.Add(o)
	return nil
}

// Root returns the root group, or nil for a released handle.
func (f *File) Root() *Group {
	if f.d == nil {
		return nil
	}
	return f.d.root
}

// Fonts returns the font table, or nil for a released handle.
func (f *File) Fonts() *FontTable {
	if f.d == nil {
		return nil
	}
	return f.d.fonts
}

// SetPageSize records the page extent in internal units.  It is used to
// choose the paper size when the file is saved.
func (f *File) SetPageSize(width, height int) {
	if f.d == nil {
		return
	}
	f.d.width, f.d.height = width, height
}

// BBox returns the bounding box of the page content.
func (f *File) BBox() transform.Rect {
	if f.d == nil {
		return transform.Null
	}
	return f.d.root.BBox()
}

// Options returns the options record written by Save.  Without an
// explicit page size, the extent of the content is used.
func (f *File) Options() Options {
	if f.d == nil {
		return Options{Paper: A4}
	}
	w, h := f.d.width, f.d.height
	if w <= 0 || h <= 0 {
		box := f.d.root.BBox()
		w, h = max(box.X1, 0), max(box.Y1, 0)
	}
	return ChooseOptions(w, h)
}

// Paint draws the page.
func (f *File) Paint(rc *RenderControl) error {
	if f.d == nil {
		return ErrReleased
	}
	return f.d.root.Paint(rc)
}

// SavingTransform returns the map from internal units to the coordinates
// of the container format, whose origin is the bottom left corner of the
// paper.
func (f *File) SavingTransform() transform.Transform {
	_, h := f.Options().PaperSize()
	return transform.New(1, -1, 0, float64(h))
}

// Size returns the number of bytes Save writes.
func (f *File) Size() int {
	if f.d == nil {
		return 0
	}
	return fileHeaderSize + optionsSize + f.d.fonts.Size() + f.d.root.Size()
}

// Save writes the page in the vector container format.
func (f *File) Save(w io.Writer) error {
	if f.d == nil {
		return ErrReleased
	}
	opt := f.Options()
	st := f.SavingTransform()

	var e encoder
	e.buf = append(e.buf, "Draw"...)
	e.word(201)
	e.word(0)
	e.name(programName, 12)
	box := f.d.root.BBox()
	if box.IsNull() || f.d.root.Size() == 0 {
		e.rect(transform.Null)
	} else {
		e.rect(st.Rect(box, transform.RoundOut))
	}
	if err := e.flush(w); err != nil {
		return err
	}

	if err := opt.Save(w, st); err != nil {
		return err
	}
	if err := f.d.fonts.Save(w, st); err != nil {
		return err
	}
	return f.d.root.Save(w, st)
}
