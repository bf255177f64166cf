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

// Package graphic implements a back-end which turns each page of a print
// job into a page object graph.
//
// The resulting [drawfile.File] values can be painted onto a raster
// canvas for previewing and saved in the vector container format.
package graphic

import (
	"seehuhn.de/go/psiprint"
	"seehuhn.de/go/psiprint/drawfile"
	"seehuhn.de/go/psiprint/fonts"
	"seehuhn.de/go/psiprint/internal/logging"
	"seehuhn.de/go/psiprint/transform"
)

// toInternal maps the twips of the print stream to internal units.
var toInternal = transform.Twip.ToInternal()

// Backend builds one drawfile.File per page.
type Backend struct {
	psiprint.Discard

	// Fonts supplies the fonts for text objects.
	Fonts *fonts.Cache

	// Map translates the font descriptions of the stream into font names.
	Map *fonts.Map

	// PageWidth and PageHeight give the page size in twips, used to
	// choose the paper size when saving.  If either is zero, the paper is
	// chosen to fit the content.
	PageWidth, PageHeight int

	pages []*drawfile.File
	page  *drawfile.File

	clip     *drawfile.Group
	clipRect transform.Rect // in twips

	last        transform.Rect // bounding box of the latest object
	substituted map[string]bool
}

// New returns a back-end using the given font cache and font map.  Nil
// arguments select the default cache and the built-in map.  The zero
// Backend is also ready to use, with the same defaults.
func New(cache *fonts.Cache, m *fonts.Map) *Backend {
	g := &Backend{Fonts: cache, Map: m}
	g.defaults()
	return g
}

func (g *Backend) defaults() {
	if g.Fonts == nil {
		g.Fonts = fonts.DefaultCache()
	}
	if g.Map == nil {
		g.Map = fonts.DefaultMap()
	}
}

// Pages returns the completed pages.  The files remain owned by the
// back-end.
func (g *Backend) Pages() []*drawfile.File {
	return g.pages
}

// Last returns a new handle for the most recently completed page, or nil
// if there is none.  The caller must release the handle.
func (g *Backend) Last() *drawfile.File {
	if len(g.pages) == 0 {
		return nil
	}
	return g.pages[len(g.pages)-1].Copy()
}

// Release releases all pages, including an unfinished one.
func (g *Backend) Release() {
	for _, f := range g.pages {
		f.Release()
	}
	g.pages = nil
	if g.page != nil {
		g.page.Release()
		g.page = nil
	}
	g.clip = nil
}

// Begin implements the psiprint.Backend interface.
func (g *Backend) Begin(*psiprint.Engine) {
	if g.page != nil {
		g.page.Release()
	}
	g.page = drawfile.NewFile()
	g.clip = nil
	g.last = transform.Null
	g.substituted = make(map[string]bool)
}

// Start implements the psiprint.Backend interface.
func (g *Backend) Start(*psiprint.Engine, int, psiprint.Section) {
	if g.page != nil {
		g.closeClip()
	}
}

// End implements the psiprint.Backend interface.
func (g *Backend) End(e *psiprint.Engine) {
	page := g.current()
	g.closeClip()
	if g.PageWidth > 0 && g.PageHeight > 0 {
		page.SetPageSize(
			toInternal.Length(g.PageWidth, transform.RoundNearest),
			toInternal.Length(g.PageHeight, transform.RoundNearest))
	}
	logging.Get().Debug("page complete",
		"page", e.State().Page, "bytes", page.Size(), "box", page.BBox())
	g.pages = append(g.pages, page)
	g.page = nil
}

// current returns the page under construction, starting one if needed.
func (g *Backend) current() *drawfile.File {
	if g.page == nil {
		g.Begin(nil)
	}
	return g.page
}

// container returns the group new objects go into.  Objects drawn under
// the same clip rectangle share one clip group, which is added to the
// page when the clip rectangle changes.
func (g *Backend) container(st psiprint.State) *drawfile.Group {
	page := g.current()
	if st.Clip.IsNull() {
		g.closeClip()
		return page.Root()
	}
	if g.clip != nil && g.clipRect == st.Clip {
		return g.clip
	}
	g.closeClip()
	g.clip = drawfile.NewClip(toInternal.Rect(st.Clip, transform.RoundOut))
	g.clipRect = st.Clip
	return g.clip
}

func (g *Backend) closeClip() {
	if g.clip == nil {
		return
	}
	g.page.Add(g.clip)
	g.clip = nil
}

// add appends an object to the current container.
func (g *Backend) add(st psiprint.State, o drawfile.Object) {
	g.container(st).Add(o)
	g.last = o.BBox()
}

func colour(c psiprint.Colour) drawfile.Colour {
	return drawfile.RGB(c.R, c.G, c.B)
}

// penColour returns the outline colour for the current pen.
func penColour(st psiprint.State) drawfile.Colour {
	if st.Pen.Style == psiprint.PenNull {
		return drawfile.Transparent
	}
	return textColour(st)
}

// textColour returns the pen colour, regardless of the pen style.
func textColour(st psiprint.State) drawfile.Colour {
	c := st.Pen.Colour
	if st.Mode.InvertsPen() {
		c = c.Invert()
	}
	return colour(c)
}

func brushColour(st psiprint.State) drawfile.Colour {
	if st.Brush.Style == psiprint.BrushNull {
		return drawfile.Transparent
	}
	return colour(st.Brush.Colour)
}
