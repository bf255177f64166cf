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

// Package testcases holds print jobs used to exercise the back-ends.
//
// Each test case is a script of drawing operations, one function per
// page.  The same scripts are used by the package tests and by the
// export command, which writes the rendered pages to disk for visual
// inspection.
package testcases

import (
	"seehuhn.de/go/psiprint"
	"seehuhn.de/go/psiprint/transform"
)

// A4 page size in twips.
const (
	PageWidth  = 11906
	PageHeight = 16838
)

// TestCase defines a single print job.
type TestCase struct {
	Name  string                   // lowercase a-z and _ only
	Pages []func(*psiprint.Engine) // the drawing operations of each page

	// Faulty is set for jobs which are expected to record errors.
	Faulty bool
}

// Run sends all pages of the job to e.  Every page starts with its body
// section; page functions may start further sections.  The errors
// recorded for all pages are returned.
func (tc TestCase) Run(e *psiprint.Engine) []*psiprint.Error {
	var errs []*psiprint.Error
	for i, page := range tc.Pages {
		e.Begin()
		e.Start(i+1, psiprint.Body)
		page(e)
		e.End()
		errs = append(errs, e.Errors()...)
	}
	return errs
}

// pt is a helper to create a point from x, y coordinates in twips.
func pt(x, y int) transform.Point {
	return transform.Point{X: x, Y: y}
}

// rc is a helper to create a rectangle from corner coordinates in twips.
func rc(x0, y0, x1, y1 int) transform.Rect {
	return transform.Rect{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

// font returns a font description of the given size in points.
func font(face string, size int) psiprint.Font {
	return psiprint.Font{
		Face:     face,
		BaseSize: size * 20,
		Size:     size * 20,
	}
}
