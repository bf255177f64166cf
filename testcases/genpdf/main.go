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

// Command genpdf generates reference images for the print jobs in the
// testcases package.  Each page is exported as PDF and rendered to PNG
// using Ghostscript, giving an independent rendering to compare the
// images of the export command against.
package main

import (
	"fmt"
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"

	"seehuhn.de/go/psiprint"
	"seehuhn.de/go/psiprint/fonts"
	"seehuhn.de/go/psiprint/graphic"
	"seehuhn.de/go/psiprint/pdfexport"
	"seehuhn.de/go/psiprint/testcases"
)

const refDir = "testdata/reference"

func main() {
	if err := os.MkdirAll(refDir, 0755); err != nil {
		panic(err)
	}

	cache := fonts.NewCache(fonts.NewCatalogue())
	for _, category := range slices.Sorted(maps.Keys(testcases.All)) {
		for _, tc := range testcases.All[category] {
			name := category + "_" + tc.Name
			if err := generate(name, tc, cache); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func generate(name string, tc testcases.TestCase, cache *fonts.Cache) error {
	g := graphic.New(cache, nil)
	g.PageWidth = testcases.PageWidth
	g.PageHeight = testcases.PageHeight
	defer g.Release()
	tc.Run(psiprint.New(g))

	for i, f := range g.Pages() {
		base := filepath.Join(refDir, fmt.Sprintf("%s_p%d", name, i+1))
		fd, err := os.Create(base + ".pdf")
		if err != nil {
			return err
		}
		err = pdfexport.Write(fd, f)
		if err2 := fd.Close(); err == nil {
			err = err2
		}
		if err != nil {
			return err
		}
		if err := renderPNG(base+".pdf", base+".png"); err != nil {
			return err
		}
	}
	return nil
}

func renderPNG(pdfPath, pngPath string) error {
	// -r72 matches the default resolution of the export command,
	// -dGraphicsAlphaBits=4 and -dTextAlphaBits=4 give anti-aliasing
	// comparable to the coverage rasteriser.
	cmd := exec.Command(
		"gs", "-q",
		"-sDEVICE=png16m",
		"-r72",
		"-dGraphicsAlphaBits=4",
		"-dTextAlphaBits=4",
		"-o", pngPath,
		pdfPath,
	)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
