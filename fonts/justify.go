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

package fonts

import (
	"math"

	"seehuhn.de/go/psiprint/transform"
)

// Alignment selects how text is placed between two margins.
type Alignment int

// These are the supported alignments.
const (
	AlignLeft Alignment = iota
	AlignCentre
	AlignRight
)

func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCentre:
		return "centre"
	case AlignRight:
		return "right"
	default:
		return "Alignment(?)"
	}
}

// Limits of the width ratio for enhanced justification.  Squeezing text
// is less noticeable than stretching it, so the band is asymmetric.
const (
	minJustifyRatio = 0.94
	maxJustifyRatio = 1.10
)

// strikePosition is the height of the strikethrough line above the
// baseline, in 1/256 of the font size.
const strikePosition = 80

// Justification places a single line of text.  All coordinates are in
// internal units, with y pointing down.
type Justification struct {
	handle *Handle
	size   int

	text     string
	point    bool
	left     int
	right    int
	baseline int
	align    Alignment
}

// Layout is the result of a justification.
type Layout struct {
	// Start and End are the ends of the baseline.
	Start, End transform.Point

	// Spacing is the extra space added after each character.
	Spacing float64

	// XSize is the horizontal font size which makes the unspaced text
	// fill the line.  It equals the font size unless enhanced
	// justification is used.
	XSize int

	// Underline and Strikethrough are the rectangles for the text
	// decorations.
	Underline     transform.Rect
	Strikethrough transform.Rect
}

// NewJustification starts a justification for text in the font of h, at
// the given size in internal units.
func NewJustification(h *Handle, size int) *Justification {
	return &Justification{handle: h, size: size}
}

// SetText sets the text to be placed.
func (j *Justification) SetText(text string) {
	j.text = text
}

// SetPositionPoint places the start of the baseline at p.  No
// justification is applied.
func (j *Justification) SetPositionPoint(p transform.Point) {
	j.point = true
	j.left, j.right, j.baseline = p.X, p.X, p.Y
}

// SetPositionLine places the text between two margins on the given
// baseline.
func (j *Justification) SetPositionLine(left, right, baseline int) {
	j.point = false
	j.left, j.right, j.baseline = left, right, baseline
}

// SetAlignment sets the alignment between the margins.
func (j *Justification) SetAlignment(a Alignment) {
	j.align = a
}

// Enhanced reports whether raw falls into the band where spacing out the
// text is preferred over aligning it.
func Enhanced(length, raw, requested int) bool {
	r, q := float64(raw), float64(requested)
	return length > 1 && minJustifyRatio*q < r && r < maxJustifyRatio*q
}

// Calculate lays out the text.
func (j *Justification) Calculate() Layout {
	raw := j.handle.Width(j.text)
	if j.size != j.handle.Size()*40 && j.handle.Size() > 0 {
		raw = int(math.Round(float64(raw) * float64(j.size) / float64(j.handle.Size()*40)))
	}

	res := Layout{XSize: j.size}
	actual := raw
	x0 := j.left
	if !j.point {
		requested := j.right - j.left
		if Enhanced(len(j.text), raw, requested) {
			res.Spacing = float64(requested-raw) / float64(len(j.text)-1)
			res.XSize = int(math.Round(float64(j.size) * float64(requested) / float64(raw)))
			actual = requested
		}
		switch j.align {
		case AlignCentre:
			x0 = int(math.Round(float64(j.left+j.right-actual) / 2))
		case AlignRight:
			x0 = j.right - actual
		}
	}
	x1 := x0 + actual
	res.Start = transform.Point{X: x0, Y: j.baseline}
	res.End = transform.Point{X: x1, Y: j.baseline}

	pos, thickness := j.handle.Underline()
	res.Underline = j.decoration(x0, x1, pos, thickness)
	res.Strikethrough = j.decoration(x0, x1, strikePosition, thickness)
	return res
}

// decoration returns the rectangle of a line whose top is pos/256 of the
// font size above the baseline.
func (j *Justification) decoration(x0, x1, pos, thickness int) transform.Rect {
	scale := func(v int) int {
		return int(math.Round(float64(v) * float64(j.size) / 256))
	}
	return transform.Rect{
		X0: x0,
		Y0: j.baseline - scale(pos),
		X1: x1,
		Y1: j.baseline - scale(pos-thickness),
	}
}
