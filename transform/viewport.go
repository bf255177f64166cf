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

package transform

// Viewport describes where a document's work area appears on screen.
// All values are in OS units.  Screen coordinates grow upwards, so the
// work area origin (the top-left corner of the page) is found at
// (X0-ScrollX, Y1-ScrollY).
type Viewport struct {
	X0, Y1           int // top-left corner of the visible area on screen
	ScrollX, ScrollY int // scroll offsets; ScrollY is zero or negative
}

// Internal is the set of transformations needed to paint a document:
// all three start in internal units.
type Internal struct {
	// ToInternal applies the zoom factor, giving "transformed" internal
	// units.
	ToInternal Transform

	// ToMillipoint maps to font engine units, including the zoom factor.
	ToMillipoint Transform

	// ToOS maps to screen coordinates, including zoom, the flip of the
	// vertical axis and the position of the viewport.
	ToOS Transform
}

// NewInternal returns the transformations for painting into the given
// viewport at a zoom factor of percent percent.
func NewInternal(v Viewport, percent int) Internal {
	if percent <= 0 {
		percent = 100
	}
	zoom := float64(percent) / 100
	toInternal := Scale(zoom)
	toOS := New(1/OS.Factor(), -1/OS.Factor(),
		float64(v.X0-v.ScrollX), float64(v.Y1-v.ScrollY))
	return Internal{
		ToInternal:   toInternal,
		ToMillipoint: toInternal.Compose(InternalToMillipoint),
		ToOS:         toInternal.Compose(toOS),
	}
}

// PageToOS returns the transformations for painting a page whose top-left
// corner is at OS coordinates (x, y), without any scrolling.
func PageToOS(x, y, percent int) Internal {
	return NewInternal(Viewport{X0: x, Y1: y}, percent)
}
