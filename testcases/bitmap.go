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

package testcases

import (
	"seehuhn.de/go/psiprint"
)

// checkerboard returns a Gray2 bitmap with squares of the given size.
func checkerboard(width, height, square int) *psiprint.Bitmap {
	bm := &psiprint.Bitmap{Width: width, Height: height, Mode: psiprint.Gray2}
	stride := bm.RowBytes()
	bm.Data = make([]byte, stride*height)
	for y := range height {
		for x := range width {
			if (x/square+y/square)%2 == 0 {
				bm.Data[y*stride+x/8] |= 1 << (x % 8)
			}
		}
	}
	return bm
}

var bitmapCases = []TestCase{
	{
		Name: "checkerboard",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			e.DrawBitmap(rc(1440, 1440, 4320, 4320), checkerboard(40, 40, 5))
		}},
	},
	{
		Name: "bitmap_source",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			bm := checkerboard(64, 32, 4)
			e.DrawBitmapSrc(rc(0, 0, 32, 32), rc(1440, 1440, 4320, 4320), bm)
			e.DrawBitmapSrc(rc(16, 8, 48, 24), rc(5040, 1440, 10800, 4320), bm)
		}},
	},
	{
		Name: "bitmap_mode",
		Pages: []func(*psiprint.Engine){func(e *psiprint.Engine) {
			bm := checkerboard(8, 8, 1)
			bm.Mode = psiprint.Colour256
			e.DrawBitmap(rc(1440, 1440, 2880, 2880), bm)
			e.DrawLine(pt(1440, 3600), pt(10466, 3600))
		}},
		Faulty: true,
	},
}
