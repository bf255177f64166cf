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

package raster

import (
	"errors"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/psiprint/transform"
)

// ErrNoAntiAlias is returned by Canvas.StrokePath when anti-aliased
// stroking was requested but is not available.
var ErrNoAntiAlias = errors.New("raster: anti-aliased stroking not available")

// Canvas is a display back-end which paints into an RGBA image.
//
// All geometry passed to a Canvas is in OS units, with the y axis pointing
// up.  The top-left corner of the image is at Origin, and every pixel
// covers Pixel×Pixel OS units.
type Canvas struct {
	Image  *image.RGBA
	Origin transform.Point

	// Pixel is the size of a pixel in OS units.
	Pixel float64

	// NoAntiAlias makes StrokePath refuse anti-aliased stroking,
	// as on displays without the anti-aliasing module.
	NoAntiAlias bool

	window transform.Rect
	r      *Rasteriser
}

// NewCanvas returns a canvas painting into img.  The graphics window
// initially covers the whole image.
func NewCanvas(img *image.RGBA, origin transform.Point, pixel float64) *Canvas {
	c := &Canvas{
		Image:  img,
		Origin: origin,
		Pixel:  pixel,
		r:      NewRasteriser(rect.Rect{}),
	}
	b := img.Bounds()
	c.window = transform.Rect{
		X0: origin.X,
		Y0: origin.Y - int(math.Ceil(float64(b.Dy())*pixel)),
		X1: origin.X + int(math.Ceil(float64(b.Dx())*pixel)),
		Y1: origin.Y,
	}
	return c
}

// Clear fills the whole image with the given colour.
func (c *Canvas) Clear(col color.Color) {
	draw.Draw(c.Image, c.Image.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// PixelSize returns the size of a pixel in OS units.
func (c *Canvas) PixelSize() (x, y float64) {
	return c.Pixel, c.Pixel
}

// Window returns the current graphics window, in OS units.
func (c *Canvas) Window() transform.Rect {
	return c.window
}

// SetWindow changes the graphics window.  Nothing is painted outside
// the window.
func (c *Canvas) SetWindow(w transform.Rect) {
	c.window = w
}

// FillPath fills a path given in OS units.
func (c *Canvas) FillPath(p path.Path, col color.Color, evenOdd bool, flatness float64) error {
	if !c.prepare(flatness) {
		return nil
	}
	emit := c.compositor(col, false)
	if emit == nil {
		return nil
	}
	if evenOdd {
		c.r.FillEvenOdd(p, emit)
	} else {
		c.r.FillNonZero(p, emit)
	}
	return nil
}

// StrokePath strokes a path given in OS units.  A line width of zero
// gives the thinnest line the display can show.  If antiAlias is set but
// the canvas has NoAntiAlias set, ErrNoAntiAlias is returned and nothing
// is painted.
func (c *Canvas) StrokePath(p path.Path, col color.Color, style *Style, flatness float64, antiAlias bool) error {
	if antiAlias && c.NoAntiAlias {
		return ErrNoAntiAlias
	}
	if !c.prepare(flatness) {
		return nil
	}
	emit := c.compositor(col, !antiAlias)
	if emit == nil {
		return nil
	}
	c.r.Style = *style
	if c.r.Width <= 0 {
		c.r.Width = c.Pixel
	}
	c.r.Stroke(p, emit)
	return nil
}

// DrawImage scales img to fill dst, given in OS units.
func (c *Canvas) DrawImage(img image.Image, dst rect.Rect) error {
	clip, ok := c.pixelClip()
	if !ok {
		return nil
	}
	sr := img.Bounds()
	if sr.Empty() {
		return nil
	}
	b := c.Image.Bounds()
	sx := (dst.URx - dst.LLx) / c.Pixel / float64(sr.Dx())
	sy := (dst.URy - dst.LLy) / c.Pixel / float64(sr.Dy())
	x0 := float64(b.Min.X) + (dst.LLx-float64(c.Origin.X))/c.Pixel
	y0 := float64(b.Min.Y) + (float64(c.Origin.Y)-dst.URy)/c.Pixel
	m := f64.Aff3{
		sx, 0, x0 - sx*float64(sr.Min.X),
		0, sy, y0 - sy*float64(sr.Min.Y),
	}
	target := c.Image.SubImage(clip).(*image.RGBA)
	draw.NearestNeighbor.Transform(target, m, img, sr, draw.Over, nil)
	return nil
}

// prepare sets up the rasteriser for the current window.  It returns
// false if the window is empty.
func (c *Canvas) prepare(flatness float64) bool {
	clip, ok := c.pixelClip()
	if !ok {
		return false
	}
	b := c.Image.Bounds()
	c.r.Reset(rect.Rect{
		LLx: float64(clip.Min.X),
		LLy: float64(clip.Min.Y),
		URx: float64(clip.Max.X),
		URy: float64(clip.Max.Y),
	})
	c.r.CTM = matrix.Matrix{
		1 / c.Pixel, 0,
		0, -1 / c.Pixel,
		float64(b.Min.X) - float64(c.Origin.X)/c.Pixel,
		float64(b.Min.Y) + float64(c.Origin.Y)/c.Pixel,
	}
	if flatness > 0 {
		c.r.Flatness = flatness / c.Pixel
	}
	return true
}

// pixelClip converts the graphics window to image coordinates.
func (c *Canvas) pixelClip() (image.Rectangle, bool) {
	w := c.window
	if !w.Valid() {
		return image.Rectangle{}, false
	}
	b := c.Image.Bounds()
	toX := func(x int) float64 { return float64(b.Min.X) + float64(x-c.Origin.X)/c.Pixel }
	toY := func(y int) float64 { return float64(b.Min.Y) + float64(c.Origin.Y-y)/c.Pixel }
	clip := image.Rect(
		int(math.Floor(toX(w.X0))), int(math.Floor(toY(w.Y1))),
		int(math.Ceil(toX(w.X1))), int(math.Ceil(toY(w.Y0))),
	).Intersect(b)
	return clip, !clip.Empty()
}

// compositor returns an emit function blending col into the image.
// If hard is set, coverage is thresholded to give aliased output.
// The result is nil for fully transparent colours.
func (c *Canvas) compositor(col color.Color, hard bool) func(y, xMin int, coverage []float32) {
	cr, cg, cb, ca := col.RGBA()
	if ca == 0 {
		return nil
	}
	src := [4]float32{float32(cr) / 257, float32(cg) / 257, float32(cb) / 257, float32(ca) / 257}
	alpha := float32(ca) / 0xffff
	img := c.Image
	b := img.Bounds()

	return func(y, xMin int, coverage []float32) {
		offs := (y-b.Min.Y)*img.Stride + (xMin-b.Min.X)*4
		for i, cov := range coverage {
			if hard {
				if cov < 0.5 {
					continue
				}
				cov = 1
			}
			k := 1 - cov*alpha
			p := img.Pix[offs+4*i : offs+4*i+4 : offs+4*i+4]
			for j := range p {
				v := float32(p[j])*k + src[j]*cov + 0.5
				p[j] = uint8(min(v, 255))
			}
		}
	}
}
