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
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/psiprint/fonts"
	"seehuhn.de/go/psiprint/transform"
)

// Text is a transformed text object: a single line of text in one font.
type Text struct {
	Fill       Colour
	Background Colour // a hint for anti-aliasing, never painted

	Font      string
	FontIndex byte

	// XSize and YSize are the font size in internal units.
	XSize, YSize int

	// Spacing is added after every character, in internal units.
	Spacing float64

	// SqueezedXSize is the font width written to the container when
	// Spacing is non-zero, since the container cannot express letter
	// spacing.
	SqueezedXSize int

	Baseline transform.Point
	Text     string

	cache *fonts.Cache
	box   transform.Rect
}

// NewText returns a text object and measures it using fonts from cache.
// The text is in the font's 8-bit encoding.
func NewText(cache *fonts.Cache, font string, index byte, xSize, ySize int, baseline transform.Point, text string, fill, background Colour) (*Text, error) {
	t := &Text{
		Fill:          fill,
		Background:    background,
		Font:          font,
		FontIndex:     index,
		XSize:         xSize,
		YSize:         ySize,
		SqueezedXSize: xSize,
		Baseline:      baseline,
		Text:          text,
		cache:         cache,
	}
	if err := t.measure(); err != nil {
		return nil, err
	}
	return t, nil
}

// SetSpacing sets the letter spacing and the squeezed font width, and
// measures the text again.
func (t *Text) SetSpacing(spacing float64, squeezed int) error {
	t.Spacing = spacing
	t.SqueezedXSize = squeezed
	return t.measure()
}

func (t *Text) acquire() (*fonts.Handle, error) {
	cache := t.cache
	if cache == nil {
		cache = fonts.DefaultCache()
	}
	return cache.Acquire(t.Font, max(1, (t.YSize+20)/40))
}

func (t *Text) measure() error {
	t.box = transform.Null
	if t.Text == "" {
		return nil
	}
	h, err := t.acquire()
	if err != nil {
		return err
	}
	defer h.Release()

	ys := float64(t.YSize) / float64(h.Size()*40)
	xs := float64(t.XSize) / float64(h.Size()*40)
	width := float64(h.Width(t.Text))*xs + t.Spacing*float64(len(t.Text)-1)
	ascent := int(math.Round(float64(h.Ascent()) * ys))
	descent := int(math.Round(float64(h.Descent()) * ys))

	t.box = transform.Rect{
		X0: t.Baseline.X,
		Y0: t.Baseline.Y - ascent,
		X1: t.Baseline.X + int(math.Ceil(width)),
		Y1: t.Baseline.Y - descent,
	}
	if t.box.X1 < t.box.X0 {
		t.box.X0, t.box.X1 = t.box.X1, t.box.X0
	}

	// Accents and descenders can reach beyond the font's ascent and
	// descent.  The control points enclose the outlines.
	lo := vec.Vec2{X: math.Inf(1), Y: math.Inf(1)}
	hi := vec.Vec2{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, pts := range h.Outline(t.Text, float64(t.XSize), float64(t.YSize), t.Spacing) {
		for _, pt := range pts {
			lo.X, lo.Y = min(lo.X, pt.X), min(lo.Y, pt.Y)
			hi.X, hi.Y = max(hi.X, pt.X), max(hi.Y, pt.Y)
		}
	}
	if lo.X <= hi.X {
		t.box = t.box.Combine(transform.Rect{
			X0: t.Baseline.X + int(math.Floor(lo.X)),
			Y0: t.Baseline.Y + int(math.Floor(lo.Y)),
			X1: t.Baseline.X + int(math.Ceil(hi.X)),
			Y1: t.Baseline.Y + int(math.Ceil(hi.Y)),
		})
	}
	return nil
}

// Tag implements the Object interface.
func (t *Text) Tag() Tag { return TagTransformedText }

// BBox implements the Object interface.
func (t *Text) BBox() transform.Rect { return t.box }

// Size implements the Object interface.  Empty text has size zero.
func (t *Text) Size() int {
	if t.Text == "" {
		return 0
	}
	return objectHeaderSize + 56 + paddedLen(len(t.Text))
}

// WithOutline calls fn with the glyph outlines of the text, in internal
// units.  The path is only valid during the call.
func (t *Text) WithOutline(fn func(p path.Path) error) error {
	if t.Text == "" {
		return nil
	}
	h, err := t.acquire()
	if err != nil {
		return err
	}
	defer h.Release()

	outline := h.Outline(t.Text, float64(t.XSize), float64(t.YSize), t.Spacing)
	bx, by := float64(t.Baseline.X), float64(t.Baseline.Y)
	var shifted path.Path = func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [3]vec.Vec2
		for cmd, pts := range outline {
			for i, pt := range pts {
				buf[i] = vec.Vec2{X: bx + pt.X, Y: by + pt.Y}
			}
			if !yield(cmd, buf[:len(pts)]) {
				return
			}
		}
	}
	return fn(shifted)
}

// Paint implements the Object interface.  The glyph outlines are filled
// in the text colour.
func (t *Text) Paint(rc *RenderControl) error {
	if t.Text == "" || t.Fill.IsTransparent() || !rc.visible(t.box) {
		return nil
	}
	return t.WithOutline(func(p path.Path) error {
		return rc.Device.FillPath(rc.osPath(p), t.Fill, false, rc.Flatness)
	})
}

// Save implements the Object interface.
func (t *Text) Save(w io.Writer, st transform.Transform) error {
	size := t.Size()
	if size == 0 {
		return nil
	}
	xSize := t.XSize
	if t.Spacing != 0 {
		xSize = t.SqueezedXSize
	}

	var e encoder
	e.header(TagTransformedText, size, t.box, st)
	// identity matrix, in 16.16 fixed point
	e.word(0x10000)
	e.word(0)
	e.word(0)
	e.word(0x10000)
	e.word(0)
	e.word(0)
	e.word(1) // kerning
	e.uword(uint32(t.Fill))
	e.uword(uint32(t.Background))
	e.word(int(t.FontIndex))
	e.word(xSize)
	e.word(t.YSize)
	e.point(st.Point(t.Baseline, transform.RoundNearest))
	e.cstring(t.Text)
	return e.flush(w)
}
