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

package psiprint

import (
	"fmt"

	"seehuhn.de/go/psiprint/fonts"
	"seehuhn.de/go/psiprint/transform"
)

// Section is a part of a page.
type Section int

// The sections of a page.
const (
	Header Section = iota
	Body
	Footer
)

func (s Section) String() string {
	switch s {
	case Header:
		return "header"
	case Body:
		return "body"
	case Footer:
		return "footer"
	default:
		return fmt.Sprintf("Section(%d)", int(s))
	}
}

// Valid reports whether s is one of the three sections.
func (s Section) Valid() bool {
	return s >= Header && s <= Footer
}

// DrawMode combines a logical operation with inversion flags.  Only
// InvertPen changes the output; the other modes are recorded.
type DrawMode uint8

// Logical operations, in the low bits of a DrawMode.
const (
	ModeSet DrawMode = iota
	ModeAnd
	ModeOr
	ModeXor

	modeOpMask DrawMode = 0x0F
)

// Inversion flags.
const (
	InvertPen    DrawMode = 0x10
	InvertScreen DrawMode = 0x20
)

// Op returns the logical operation of the mode.
func (m DrawMode) Op() DrawMode {
	return m & modeOpMask
}

// InvertsPen reports whether the pen colour is inverted.
func (m DrawMode) InvertsPen() bool {
	return m&InvertPen != 0
}

// Colour is a 24-bit RGB colour.
type Colour struct {
	R, G, B uint8
}

// Common colours.
var (
	Black = Colour{0, 0, 0}
	White = Colour{0xFF, 0xFF, 0xFF}
)

// Invert returns the complementary colour.
func (c Colour) Invert() Colour {
	return Colour{^c.R, ^c.G, ^c.B}
}

func (c Colour) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// PenStyle is the line style of the pen.
type PenStyle int

// The pen styles.
const (
	PenNull PenStyle = iota
	PenSolid
	PenDotted
	PenDashed
	PenDotDash
	PenDotDotDash
)

// Pen describes how lines are drawn.
type Pen struct {
	Colour Colour
	Style  PenStyle

	// Size is the line width in twips.  Zero gives the thinnest line
	// the output device can show.
	Size int
}

// BrushStyle is the fill style of the brush.  All styles other than
// BrushNull fill with the brush colour.
type BrushStyle int

// The brush styles.
const (
	BrushNull BrushStyle = iota
	BrushSolid
	BrushPatterned
	BrushVerticalHatch
	BrushForwardDiagonalHatch
	BrushHorizontalHatch
	BrushRearwardDiagonalHatch
	BrushSquareCrossHatch
	BrushDiamondCrossHatch
)

// Brush describes how shapes are filled.
type Brush struct {
	Colour Colour
	Style  BrushStyle
}

// Posture is the slant of a font.
type Posture int

// The font postures.
const (
	Upright Posture = iota
	Italic
)

// Weight is the stroke weight of a font.
type Weight int

// The font weights.
const (
	Normal Weight = iota
	Bold
)

// PrintPosition selects normal, superscript or subscript text.
type PrintPosition int

// The print positions.
const (
	PositionNormal PrintPosition = iota
	PositionSuperscript
	PositionSubscript
)

// Font describes the current font.  Sizes are in twips.
type Font struct {
	Face     string
	Screen   int // index of the matching screen font
	Posture  Posture
	Weight   Weight
	Position PrintPosition

	BaseSize int
	Size     int

	// BaselineOffset raises the baseline, for super- and subscripts.
	BaselineOffset int
}

// Resolve returns the name of the font to use for f.
func (f *Font) Resolve(m *fonts.Map) string {
	return m.Resolve(f.Face, f.Screen, f.Weight == Bold, f.Posture == Italic)
}

// FillRule selects which parts of a self-intersecting polygon are filled.
type FillRule int

// The fill rules.
const (
	Alternate FillRule = iota // even-odd
	Winding                   // nonzero
)

// DisplayMode is the pixel format of a bitmap.  Only Gray2 bitmaps are
// supported.
type DisplayMode int

// The display modes.
const (
	Gray2 DisplayMode = iota
	Gray4
	Gray16
	Gray256
	Colour16
	Colour256
	Colour64K
	Colour16M
)

func (m DisplayMode) String() string {
	switch m {
	case Gray2:
		return "Gray2"
	case Gray4:
		return "Gray4"
	case Gray16:
		return "Gray16"
	case Gray256:
		return "Gray256"
	case Colour16:
		return "Colour16"
	case Colour256:
		return "Colour256"
	case Colour64K:
		return "Colour64K"
	case Colour16M:
		return "Colour16M"
	default:
		return fmt.Sprintf("DisplayMode(%d)", int(m))
	}
}

// Bitmap is an image sent with a draw-bitmap primitive.  Rows are stored
// top to bottom and padded to a multiple of four bytes.  In a Gray2
// bitmap, the leftmost pixel of each byte is in the least significant
// bit, and a set bit is white.
type Bitmap struct {
	Width, Height int
	Mode          DisplayMode
	Data          []byte
}

// RowBytes returns the number of bytes per row of a Gray2 bitmap.
func (b *Bitmap) RowBytes() int {
	return (b.Width + 31) / 32 * 4
}

// Alignment is the horizontal placement of justified text.
type Alignment = fonts.Alignment

// The alignments of justified text.
const (
	AlignLeft   = fonts.AlignLeft
	AlignCentre = fonts.AlignCentre
	AlignRight  = fonts.AlignRight
)

// State is the graphics state of the engine.
type State struct {
	Page    int
	Section Section

	Mode DrawMode

	// Clip is the clip rectangle in twips.  The null rectangle means
	// that no clipping is applied.
	Clip transform.Rect

	// Font is the current font, or nil if no font is selected.
	Font *Font

	Underline     bool
	Strikethrough bool

	Pen   Pen
	Brush Brush
}

// reset restores the defaults, keeping the page and section.
func (s *State) reset() {
	*s = State{
		Page:    s.Page,
		Section: s.Section,
		Mode:    ModeSet,
		Pen:     Pen{Colour: Black, Style: PenSolid},
		Brush:   Brush{Colour: White, Style: BrushNull},
	}
}
