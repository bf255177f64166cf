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
	"image"
	"image/color"
	"io"

	"seehuhn.de/go/psiprint/transform"
)

// Sprite is a bitmap image, scaled to fill its bounding box.
//
// Pixel data is stored row by row, top row first, with each row padded
// to a multiple of four bytes.  Within a byte, the leftmost pixel
// occupies the least significant bits.
type Sprite struct {
	BPP           int
	Width, Height int // in pixels

	// Palette holds one colour per pixel value, for depths of up to 8
	// bits per pixel.
	Palette []Colour

	Data []byte

	box transform.Rect
}

const (
	spriteHeaderSize = 44
	spriteDPI        = 90
)

// RowBytes returns the number of bytes per row of a bitmap, including
// the padding.
func RowBytes(width, bpp int) int {
	return (width*bpp + 31) / 32 * 4
}

// NewSprite returns a sprite covering box.  If palette is nil and bpp is
// at most 8, a grey ramp from black to white is used.
func NewSprite(bpp, width, height int, box transform.Rect, data []byte, palette []Colour) (*Sprite, error) {
	switch bpp {
	case 1, 2, 4, 8, 16, 32:
	default:
		return nil, fmt.Errorf("unsupported sprite depth %d", bpp)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid sprite size %dx%d", width, height)
	}
	if need := RowBytes(width, bpp) * height; len(data) != need {
		return nil, fmt.Errorf("sprite data has %d bytes, expected %d", len(data), need)
	}
	if bpp <= 8 && palette == nil {
		palette = greyRamp(1 << bpp)
	}
	if bpp <= 8 && len(palette) != 1<<bpp {
		return nil, fmt.Errorf("palette has %d entries, expected %d", len(palette), 1<<bpp)
	}
	if bpp > 8 {
		palette = nil
	}
	return &Sprite{
		BPP:     bpp,
		Width:   width,
		Height:  height,
		Palette: palette,
		Data:    data,
		box:     box,
	}, nil
}

func greyRamp(n int) []Colour {
	res := make([]Colour, n)
	for i := range res {
		v := uint8(i * 255 / (n - 1))
		res[i] = RGB(v, v, v)
	}
	return res
}

// Tag implements the Object interface.
func (s *Sprite) Tag() Tag { return TagSprite }

// BBox implements the Object interface.
func (s *Sprite) BBox() transform.Rect { return s.box }

func (s *Sprite) spriteSize() int {
	return spriteHeaderSize + 8*len(s.Palette) + len(s.Data)
}

// Size implements the Object interface.
func (s *Sprite) Size() int {
	return objectHeaderSize + s.spriteSize()
}

// pixel returns the value of the pixel at (x, y).
func (s *Sprite) pixel(x, y int) uint32 {
	row := s.Data[y*RowBytes(s.Width, s.BPP):]
	switch s.BPP {
	case 16:
		return uint32(row[2*x]) | uint32(row[2*x+1])<<8
	case 32:
		return uint32(row[4*x]) | uint32(row[4*x+1])<<8 | uint32(row[4*x+2])<<16
	}
	bit := x * s.BPP
	return uint32(row[bit/8]>>(bit%8)) & (1<<s.BPP - 1)
}

// Image decodes the pixel data.
func (s *Sprite) Image() image.Image {
	bounds := image.Rect(0, 0, s.Width, s.Height)
	if s.BPP <= 8 {
		pal := make(color.Palette, len(s.Palette))
		for i, c := range s.Palette {
			pal[i] = c
		}
		img := image.NewPaletted(bounds, pal)
		for y := range s.Height {
			for x := range s.Width {
				img.SetColorIndex(x, y, uint8(s.pixel(x, y)))
			}
		}
		return img
	}

	img := image.NewRGBA(bounds)
	for y := range s.Height {
		for x := range s.Width {
			v := s.pixel(x, y)
			var c color.RGBA
			if s.BPP == 16 {
				c = color.RGBA{
					R: expand5(v), G: expand5(v >> 5), B: expand5(v >> 10), A: 0xFF,
				}
			} else {
				c = color.RGBA{R: uint8(v), G: uint8(v >> 8), B: uint8(v >> 16), A: 0xFF}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func expand5(v uint32) uint8 {
	v &= 0x1F
	return uint8(v<<3 | v>>2)
}

// modeWord returns the sprite mode word for the pixel depth.
func (s *Sprite) modeWord() uint32 {
	var typ uint32
	switch s.BPP {
	case 1:
		typ = 1
	case 2:
		typ = 2
	case 4:
		typ = 3
	case 8:
		typ = 4
	case 16:
		typ = 5
	case 32:
		typ = 6
	}
	return typ<<27 | spriteDPI<<14 | spriteDPI<<1 | 1
}

// Paint implements the Object interface.
func (s *Sprite) Paint(rc *RenderControl) error {
	if !rc.visible(s.box) {
		return nil
	}
	return rc.Device.DrawImage(s.Image(), rc.osRect(s.box))
}

// Save implements the Object interface.
func (s *Sprite) Save(w io.Writer, st transform.Transform) error {
	var e encoder
	e.header(TagSprite, s.Size(), s.box, st)

	imageOffset := spriteHeaderSize + 8*len(s.Palette)
	e.word(s.spriteSize())
	e.buf = append(e.buf, "bitmap"...)
	e.buf = append(e.buf, make([]byte, 6)...)
	e.word(RowBytes(s.Width, s.BPP)/4 - 1)
	e.word(s.Height - 1)
	e.word(0)
	e.word((s.Width*s.BPP - 1) % 32)
	e.word(imageOffset)
	e.word(imageOffset) // no mask
	e.uword(s.modeWord())
	for _, c := range s.Palette {
		e.uword(uint32(c))
		e.uword(uint32(c))
	}
	e.buf = append(e.buf, s.Data...)
	return e.flush(w)
}
