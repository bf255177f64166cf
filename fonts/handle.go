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
	"sync"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyph"

	"seehuhn.de/go/psiprint/internal/logging"
)

// CacheLimit is the number of unused handles a Cache keeps alive.
const CacheLimit = 16

// Default underline metrics, in 1/256 of the font size.
const (
	DefaultUnderlinePosition  = -25
	DefaultUnderlineThickness = 15
)

// Handle is a font at a given size.  Handles are obtained from a Cache
// and must be released after use.
type Handle struct {
	cache *Cache
	name  string
	size  int
	refs  int

	actual string
	font   *sfnt.Font
	lookup func(rune) glyph.ID
}

// Cache keeps track of the font handles in use.  Handles are kept in the
// order they were last acquired.  When a handle is released, unused handles
// are discarded, oldest first, until at most CacheLimit handles remain.
//
// A Cache is safe for concurrent use.
type Cache struct {
	cat *Catalogue

	mu      sync.Mutex
	handles []*Handle
}

// NewCache returns an empty cache for fonts from cat.
func NewCache(cat *Catalogue) *Cache {
	return &Cache{cat: cat}
}

// DefaultCache returns a process-wide cache using the built-in fonts.
var DefaultCache = sync.OnceValue(func() *Cache {
	return NewCache(NewCatalogue())
})

// Catalogue returns the catalogue the cache loads fonts from.
func (c *Cache) Catalogue() *Catalogue {
	return c.cat
}

// Acquire returns a handle for the named font at the given size, in
// sixteenths of a point.  If the font cannot be loaded, the system font is
// used instead and the handle reports Substituted.  An error is returned
// only if the system font is unavailable, too.
func (c *Cache) Acquire(name string, size int) (*Handle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, h := range c.handles {
		if h.name == name && h.size == size {
			h.refs++
			copy(c.handles[i:], c.handles[i+1:])
			c.handles[len(c.handles)-1] = h
			return h, nil
		}
	}

	actual := name
	f, err := c.cat.Font(name)
	if err != nil {
		logging.Get().Warn("font substituted",
			"font", name, "substitute", SystemFont, "err", err)
		actual = SystemFont
		f, err = c.cat.Font(SystemFont)
		if err != nil {
			return nil, err
		}
	}

	h := &Handle{
		cache:  c,
		name:   name,
		size:   size,
		refs:   2, // one for the caller, one for the cache
		actual: actual,
		font:   f,
	}
	if sub, err := f.CMapTable.GetBest(); err == nil && sub != nil {
		h.lookup = sub.Lookup
	}
	c.handles = append(c.handles, h)
	return h, nil
}

// Release gives up a reference to the handle.
func (h *Handle) Release() {
	c := h.cache
	c.mu.Lock()
	defer c.mu.Unlock()

	if h.refs > 0 {
		h.refs--
	}
	c.trim()
}

// trim discards unused handles, least recently acquired first, until
// the cache is within its limit.  The caller must hold c.mu.
func (c *Cache) trim() {
	excess := len(c.handles) - CacheLimit
	if excess <= 0 {
		return
	}
	kept := c.handles[:0]
	for _, h := range c.handles {
		if excess > 0 && h.refs == 1 {
			h.refs = 0
			excess--
			logging.Get().Debug("font handle discarded", "font", h.name, "size", h.size)
			continue
		}
		kept = append(kept, h)
	}
	clear(c.handles[len(kept):])
	c.handles = kept
}

// LoseAll drops all handles from the cache.  Handles still held by callers
// remain usable until they are released.
func (c *Cache) LoseAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, h := range c.handles {
		h.refs--
	}
	c.handles = nil
}

// Len returns the number of handles in the cache.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.handles)
}

// Idle returns the number of cached handles which are not used outside
// the cache.
func (c *Cache) Idle() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, h := range c.handles {
		if h.refs == 1 {
			n++
		}
	}
	return n
}

// Name returns the font name the handle was requested for.
func (h *Handle) Name() string { return h.name }

// Size returns the font size in sixteenths of a point.
func (h *Handle) Size() int { return h.size }

// Substituted reports whether the system font is used in place of the
// requested one.
func (h *Handle) Substituted() bool { return h.actual != h.name }

func (h *Handle) glyph(c byte) glyph.ID {
	if h.lookup == nil {
		return 0
	}
	// text is in ISO 8859-1, which coincides with the first 256 code points
	return h.lookup(rune(c))
}

// advance returns the advance width of a character in 1/1000 of the
// font size.
func (h *Handle) advance(c byte) float64 {
	return h.font.GlyphWidthPDF(h.glyph(c))
}

// toInternal converts 1/1000 of the font size to internal units.
// One point is 640 internal units and the size is in sixteenths of a
// point.
func (h *Handle) toInternal(v float64) float64 {
	return v / 1000 * float64(h.size) * 40
}

// Width returns the width of the text, in internal units.
func (h *Handle) Width(text string) int {
	var w float64
	for i := 0; i < len(text); i++ {
		w += h.advance(text[i])
	}
	return int(math.Round(h.toInternal(w)))
}

// Ascent returns the height of the font above the baseline, in internal
// units.
func (h *Handle) Ascent() int {
	return int(math.Round(h.toInternal(h.perMille(float64(h.font.Ascent)))))
}

// Descent returns the depth of the font below the baseline, in internal
// units.  The value is usually negative.
func (h *Handle) Descent() int {
	return int(math.Round(h.toInternal(h.perMille(float64(h.font.Descent)))))
}

func (h *Handle) perMille(v float64) float64 {
	if h.font.UnitsPerEm == 0 {
		return 0
	}
	return v * 1000 / float64(h.font.UnitsPerEm)
}

// Underline returns the position and thickness of an underline, in 1/256
// of the font size.  The position is measured upwards from the baseline
// to the top of the underline.  If the font does not specify underline
// metrics, the defaults (-25, 15) are returned.
func (h *Handle) Underline() (pos, thickness int) {
	upem := float64(h.font.UnitsPerEm)
	if upem == 0 || h.font.UnderlineThickness <= 0 {
		return DefaultUnderlinePosition, DefaultUnderlineThickness
	}
	pos = int(math.Round(float64(h.font.UnderlinePosition) * 256 / upem))
	thickness = int(math.Round(float64(h.font.UnderlineThickness) * 256 / upem))
	return pos, thickness
}

// Outline returns the glyph outlines of the text, in internal units.  The
// baseline starts at the origin and the y axis points down.  xSize and
// ySize give the font size in internal units in both directions, and
// spacing is added after every character.
func (h *Handle) Outline(text string, xSize, ySize, spacing float64) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		outlines := h.font.Outlines
		upem := float64(h.font.UnitsPerEm)
		if outlines == nil || upem == 0 {
			return
		}
		sx, sy := xSize/upem, ySize/upem

		var buf [3]vec.Vec2
		x := 0.0
		for i := 0; i < len(text); i++ {
			gid := h.glyph(text[i])
			for cmd, pts := range outlines.Path(gid) {
				for j, pt := range pts {
					buf[j] = vec.Vec2{X: x + pt.X*sx, Y: -pt.Y * sy}
				}
				if !yield(cmd, buf[:len(pts)]) {
					return
				}
			}
			x += h.font.GlyphWidthPDF(gid)/1000*xSize + spacing
		}
	}
}
