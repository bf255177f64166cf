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

import "seehuhn.de/go/psiprint/transform"

// Backend receives the drawing operations of a page.  The engine updates
// its state before calling the back-end, so that the current pen, brush,
// font and clip rectangle are available through Engine.State.  All
// coordinates are in twips and all text is already translated to the
// local code page.
//
// Back-ends report problems through Engine.Error.
type Backend interface {
	Begin(e *Engine)
	Start(e *Engine, page int, section Section)
	LineFeed(e *Engine)
	CarriageReturn(e *Engine)
	DrawLine(e *Engine, a, b transform.Point)
	DrawEllipse(e *Engine, r transform.Rect)
	DrawRectangle(e *Engine, r transform.Rect)
	DrawPolygon(e *Engine, vertices []transform.Point, rule FillRule)
	DrawBitmap(e *Engine, src, dst transform.Rect, bm *Bitmap)
	DrawText(e *Engine, text string, at transform.Point)
	DrawTextJustified(e *Engine, text string, bound transform.Rect, align Alignment, baseline, margin int)
	Debug(e *Engine, msg string, important bool)
	End(e *Engine)
}

// Discard is a Backend which ignores everything.  Embed it in a back-end
// to inherit no-op implementations of the operations it does not need.
type Discard struct{}

var _ Backend = Discard{}

func (Discard) Begin(*Engine)                                                          {}
func (Discard) Start(*Engine, int, Section)                                            {}
func (Discard) LineFeed(*Engine)                                                       {}
func (Discard) CarriageReturn(*Engine)                                                 {}
func (Discard) DrawLine(*Engine, transform.Point, transform.Point)                     {}
func (Discard) DrawEllipse(*Engine, transform.Rect)                                    {}
func (Discard) DrawRectangle(*Engine, transform.Rect)                                  {}
func (Discard) DrawPolygon(*Engine, []transform.Point, FillRule)                       {}
func (Discard) DrawBitmap(*Engine, transform.Rect, transform.Rect, *Bitmap)            {}
func (Discard) DrawText(*Engine, string, transform.Point)                              {}
func (Discard) DrawTextJustified(*Engine, string, transform.Rect, Alignment, int, int) {}
func (Discard) Debug(*Engine, string, bool)                                            {}
func (Discard) End(*Engine)                                                            {}
