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

import "fmt"

// Colour is a colour in the container format: the word 0xBBGGRR00.
// Colour implements color.Color.
type Colour uint32

// Transparent is the colour which paints nothing.
const Transparent Colour = 0xFFFFFFFF

// Commonly used colours.
const (
	Black Colour = 0x00000000
	White Colour = 0xFFFFFF00
	Red   Colour = 0x0000FF00
	Blue  Colour = 0xFF000000
)

// RGB returns the colour with the given components.
func RGB(r, g, b uint8) Colour {
	return Colour(b)<<24 | Colour(g)<<16 | Colour(r)<<8
}

// Components returns the red, green and blue components of c.
func (c Colour) Components() (r, g, b uint8) {
	return uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

// IsTransparent reports whether c is the transparent colour.
func (c Colour) IsTransparent() bool {
	return c == Transparent
}

// Invert returns the complementary colour.  Transparent stays transparent.
func (c Colour) Invert() Colour {
	if c == Transparent {
		return c
	}
	return ^c &^ 0xFF
}

// RGBA implements the color.Color interface.
func (c Colour) RGBA() (r, g, b, a uint32) {
	if c == Transparent {
		return 0, 0, 0, 0
	}
	r8, g8, b8 := c.Components()
	return uint32(r8) * 0x101, uint32(g8) * 0x101, uint32(b8) * 0x101, 0xFFFF
}

func (c Colour) String() string {
	if c == Transparent {
		return "transparent"
	}
	r, g, b := c.Components()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
