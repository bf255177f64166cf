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

// Package drawfile implements the page object graph.
//
// A page is a tree of drawing objects held in a reference-counted [File].
// Objects know their bounding box in internal units and their size in the
// vector container format, paint themselves on a [Device], and write
// themselves in the container format.
package drawfile

import (
	"image"
	"image/color"
	"io"
	"math"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/psiprint/raster"
	"seehuhn.de/go/psiprint/transform"
)

// Tag identifies the type of an object in the container format.
type Tag uint32

// These are the object types used.
const (
	TagFontTable       Tag = 0
	TagPath            Tag = 2
	TagSprite          Tag = 5
	TagGroup           Tag = 6
	TagOptions         Tag = 11
	TagTransformedText Tag = 12
)

func (t Tag) String() string {
	switch t {
	case TagFontTable:
		return "font table"
	case TagPath:
		return "path"
	case TagSprite:
		return "sprite"
	case TagGroup:
		return "group"
	case TagOptions:
		return "options"
	case TagTransformedText:
		return "transformed text"
	default:
		return "unknown"
	}
}

// Object is a drawing object.
type Object interface {
	// Tag returns the container type of the object.
	Tag() Tag

	// Size returns the number of bytes Save writes.  Objects which
	// contribute nothing to the output have size zero.
	Size() int

	// BBox returns the bounding box in internal units.
	BBox() transform.Rect

	// Paint draws the object.  Objects whose bounding box does not
	// overlap rc.Clip paint nothing.
	Paint(rc *RenderControl) error

	// Save writes the object in container format, after mapping the
	// coordinates through st.
	Save(w io.Writer, st transform.Transform) error
}

// Device is a display back-end.  All coordinates are in OS units, with
// the y axis pointing up.
type Device interface {
	// PixelSize returns the size of a pixel in OS units.
	PixelSize() (x, y float64)

	// Window returns the current graphics window.
	Window() transform.Rect

	// SetWindow sets the graphics window.  Nothing is painted outside
	// the window.
	SetWindow(w transform.Rect)

	// FillPath fills a path.
	FillPath(p path.Path, col color.Color, evenOdd bool, flatness float64) error

	// StrokePath strokes a path.  If antiAlias is set and anti-aliased
	// stroking is unavailable, an error is returned.
	StrokePath(p path.Path, col color.Color, style *raster.Style, flatness float64, antiAlias bool) error

	// DrawImage scales an image to fill the rectangle dst.
	DrawImage(img image.Image, dst rect.Rect) error
}

// RenderControl carries the state needed while painting.
type RenderControl struct {
	// Trans maps internal units to the other coordinate spaces.
	Trans transform.Internal

	// Flatness is the curve flattening tolerance in OS units.
	Flatness float64

	// AntiAlias selects anti-aliased stroking, where available.
	AntiAlias bool

	// Clip is the region to paint, in internal units.
	Clip transform.Rect

	// Window is the graphics window, in OS units.
	Window transform.Rect

	Device Device
}

// NewRenderControl prepares painting onto dev.  The clip rectangle is
// given in OS units.  A resolution of zero means painting to the screen:
// the graphics window is taken from the device and the flatness from its
// pixel size.  Otherwise the resolution is in dots per OS unit, as used
// for printing.
func NewRenderControl(dev Device, trans transform.Internal, clipOS transform.Rect, resolution float64, antiAlias bool) *RenderControl {
	rc := &RenderControl{
		Trans:     trans,
		AntiAlias: antiAlias,
		Device:    dev,
	}
	if resolution > 0 {
		rc.Window = clipOS
		rc.Flatness = 1 / resolution
	} else {
		rc.Window = dev.Window()
		if clipOS.Valid() {
			rc.Window = rc.Window.Intersect(clipOS)
		}
		px, py := dev.PixelSize()
		rc.Flatness = max(px, py)
	}
	rc.Clip = trans.ToOS.InverseRect(rc.Window, transform.RoundOut)
	return rc
}

// visible reports whether an object with the given bounding box needs
// painting.
func (rc *RenderControl) visible(box transform.Rect) bool {
	return box.Overlap(rc.Clip)
}

// osPoint maps an internal point to OS units.
func (rc *RenderControl) osPoint(x, y float64) vec.Vec2 {
	return rc.Trans.ToOS.Vec(vec.Vec2{X: x, Y: y})
}

// osLength maps a horizontal length to OS units.
func (rc *RenderControl) osLength(l float64) float64 {
	return l * math.Abs(rc.Trans.ToOS.SX())
}

// osPath maps a path in internal units to OS units.
func (rc *RenderControl) osPath(p path.Path) path.Path {
	return func(yield func(path.Command, []vec.Vec2) bool) {
		var buf [3]vec.Vec2
		for cmd, pts := range p {
			for i, pt := range pts {
				buf[i] = rc.Trans.ToOS.Vec(pt)
			}
			if !yield(cmd, buf[:len(pts)]) {
				return
			}
		}
	}
}

// osRect maps an internal rectangle to OS units, without rounding.
func (rc *RenderControl) osRect(r transform.Rect) rect.Rect {
	a := rc.osPoint(float64(r.X0), float64(r.Y0))
	b := rc.osPoint(float64(r.X1), float64(r.Y1))
	return rect.Rect{
		LLx: min(a.X, b.X), LLy: min(a.Y, b.Y),
		URx: max(a.X, b.X), URy: max(a.Y, b.Y),
	}
}
