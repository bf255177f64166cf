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

	"seehuhn.de/go/psiprint/transform"
)

// Engine interprets the drawing primitives of a print job.
//
// Primitives never fail.  Problems are recorded as errors, which can be
// inspected with Errors once the page is complete.  After a fatal error
// OK returns false; later primitives are still interpreted, but the page
// should be discarded.
type Engine struct {
	backend Backend
	state   State
	errors  errorList
}

// New returns an engine which sends its output to b.
func New(b Backend) *Engine {
	e := &Engine{backend: b}
	e.state.reset()
	e.state.Section = Body
	return e
}

// Backend returns the back-end of the engine.
func (e *Engine) Backend() Backend {
	return e.backend
}

// State returns the current graphics state.
func (e *Engine) State() State {
	return e.state
}

// OK reports whether no fatal error has been recorded since the start of
// the page.
func (e *Engine) OK() bool {
	return len(e.errors.fatal) == 0
}

// Errors returns the recorded errors: first the fatal errors, then the
// recoverable ones, each in the order they occurred.
func (e *Engine) Errors() []*Error {
	return e.errors.all()
}

// Err returns the first fatal error, or nil if there is none.
func (e *Engine) Err() error {
	if len(e.errors.fatal) == 0 {
		return nil
	}
	return e.errors.fatal[0]
}

// Error records an error.
func (e *Engine) Error(msg string, fatal bool) {
	e.errors.add(&Error{Msg: msg, Fatal: fatal})
	if fatal {
		Logger().Error("fatal print error", "page", e.state.Page, "msg", msg)
	} else {
		Logger().Warn("print error", "page", e.state.Page, "msg", msg)
	}
}

func (e *Engine) errorf(fatal bool, format string, args ...any) {
	e.Error(fmt.Sprintf(format, args...), fatal)
}

// Begin starts a new page.  The graphics state is reset and all errors
// are cleared.
func (e *Engine) Begin() {
	e.errors.clear()
	e.state = State{}
	e.state.reset()
	e.state.Section = Body
	Logger().Info("begin page")
	e.backend.Begin(e)
}

// Start marks the start of a section.  The graphics state is reset.
func (e *Engine) Start(page int, section Section) {
	if !section.Valid() {
		e.errorf(true, "unknown section %d", int(section))
		return
	}
	e.state.Page = page
	e.state.Section = section
	e.state.reset()
	Logger().Debug("start section", "page", page, "section", section)
	e.backend.Start(e, page, section)
}

// SetDrawMode sets the draw mode.
func (e *Engine) SetDrawMode(m DrawMode) {
	e.state.Mode = m
}

// SetClip restricts drawing to the rectangle r.
func (e *Engine) SetClip(r transform.Rect) {
	if r.X0 > r.X1 || r.Y0 > r.Y1 {
		e.errorf(true, "invalid clip rectangle %v", r)
		return
	}
	e.state.Clip = r
}

// CancelClip removes the clip rectangle.
func (e *Engine) CancelClip() {
	e.state.Clip = transform.Null
}

// UseFont selects the font for subsequent text.
func (e *Engine) UseFont(f Font) {
	if f.Size <= 0 || f.BaseSize <= 0 {
		e.errorf(true, "invalid size for font %q", f.Face)
		return
	}
	e.state.Font = &f
}

// DiscardFont deselects the current font.
func (e *Engine) DiscardFont() {
	e.state.Font = nil
}

// SetUnderline turns underlining on or off.
func (e *Engine) SetUnderline(on bool) {
	e.state.Underline = on
}

// SetStrikethrough turns strikethrough on or off.
func (e *Engine) SetStrikethrough(on bool) {
	e.state.Strikethrough = on
}

// LineFeed moves to the next line.
func (e *Engine) LineFeed() {
	e.backend.LineFeed(e)
}

// CarriageReturn moves to the start of the line.
func (e *Engine) CarriageReturn() {
	e.backend.CarriageReturn(e)
}

// SetPenColour sets the pen colour.
func (e *Engine) SetPenColour(c Colour) {
	e.state.Pen.Colour = c
}

// SetPenStyle sets the pen style.
func (e *Engine) SetPenStyle(s PenStyle) {
	e.state.Pen.Style = s
}

// SetPenSize sets the line width, in twips.
func (e *Engine) SetPenSize(size int) {
	if size < 0 {
		e.errorf(true, "negative pen size %d", size)
		return
	}
	e.state.Pen.Size = size
}

// SetBrushColour sets the brush colour.
func (e *Engine) SetBrushColour(c Colour) {
	e.state.Brush.Colour = c
}

// SetBrushStyle sets the brush style.
func (e *Engine) SetBrushStyle(s BrushStyle) {
	e.state.Brush.Style = s
}

// DrawLine draws a straight line from a to b.
func (e *Engine) DrawLine(a, b transform.Point) {
	e.backend.DrawLine(e, a, b)
}

// DrawEllipse draws the ellipse inscribed in r.
func (e *Engine) DrawEllipse(r transform.Rect) {
	e.backend.DrawEllipse(e, normalize(r))
}

// DrawRectangle draws a rectangle.
func (e *Engine) DrawRectangle(r transform.Rect) {
	e.backend.DrawRectangle(e, normalize(r))
}

// DrawPolygon draws a closed polygon.
func (e *Engine) DrawPolygon(vertices []transform.Point, rule FillRule) {
	if len(vertices) < 2 {
		e.errorf(false, "polygon with %d vertices", len(vertices))
		return
	}
	e.backend.DrawPolygon(e, vertices, rule)
}

// DrawBitmap scales the whole bitmap into dst.
func (e *Engine) DrawBitmap(dst transform.Rect, bm *Bitmap) {
	if bm == nil {
		e.errorf(false, "missing bitmap")
		return
	}
	src := transform.Rect{X1: bm.Width, Y1: bm.Height}
	e.DrawBitmapSrc(src, dst, bm)
}

// DrawBitmapSrc scales the part src of the bitmap into dst.  The source
// rectangle is in pixels.
func (e *Engine) DrawBitmapSrc(src, dst transform.Rect, bm *Bitmap) {
	switch {
	case bm == nil:
		e.errorf(false, "missing bitmap")
		return
	case bm.Mode != Gray2:
		e.errorf(false, "unsupported bitmap mode %v", bm.Mode)
		return
	case bm.Width <= 0 || bm.Height <= 0:
		e.errorf(false, "empty bitmap")
		return
	case len(bm.Data) != bm.RowBytes()*bm.Height:
		e.errorf(false, "bitmap data has %d bytes, expected %d", len(bm.Data), bm.RowBytes()*bm.Height)
		return
	}
	src = normalize(src).Intersect(transform.Rect{X1: bm.Width, Y1: bm.Height})
	if src.Dx() <= 0 || src.Dy() <= 0 {
		e.errorf(false, "bitmap source rectangle outside the bitmap")
		return
	}
	e.backend.DrawBitmap(e, src, normalize(dst), bm)
}

// DrawText draws text starting at the baseline point at.  The text is in
// the PDA's code page.
func (e *Engine) DrawText(text string, at transform.Point) {
	e.checkFont()
	e.backend.DrawText(e, Translate(text), at)
}

// DrawTextJustified draws text inside bound.  The baseline is the given
// distance below the top of bound, and the margin is kept free at the
// left and right.
func (e *Engine) DrawTextJustified(text string, bound transform.Rect, align Alignment, baseline, margin int) {
	e.checkFont()
	e.backend.DrawTextJustified(e, Translate(text), normalize(bound), align, baseline, margin)
}

func (e *Engine) checkFont() {
	if e.state.Font == nil {
		e.errorf(false, "text drawn without a font")
	}
}

// Debug passes a diagnostic message to the back-end.
func (e *Engine) Debug(msg string, important bool) {
	e.backend.Debug(e, msg, important)
}

// End completes the page.
func (e *Engine) End() {
	Logger().Info("end page", "page", e.state.Page, "errors", len(e.errors.fatal)+len(e.errors.recoverable))
	e.backend.End(e)
}

// normalize orders the corners of r.
func normalize(r transform.Rect) transform.Rect {
	if r.X0 > r.X1 {
		r.X0, r.X1 = r.X1, r.X0
	}
	if r.Y0 > r.Y1 {
		r.Y0, r.Y1 = r.Y1, r.Y0
	}
	return r
}
