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

// Command export renders the print jobs from the testcases package.
//
// For every job, each page is written as a Draw file (.aff), as a PDF
// file and as a PNG image, and the text of the whole job is written to a
// .txt file.  Run from the module root directory.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/psiprint"
	"seehuhn.de/go/psiprint/drawfile"
	"seehuhn.de/go/psiprint/fonts"
	"seehuhn.de/go/psiprint/graphic"
	"seehuhn.de/go/psiprint/pdfexport"
	"seehuhn.de/go/psiprint/raster"
	"seehuhn.de/go/psiprint/testcases"
	"seehuhn.de/go/psiprint/textual"
	"seehuhn.de/go/psiprint/transform"
)

var (
	outDir   = flag.String("out", "testdata/output", "output directory")
	dpi      = flag.Float64("dpi", 72, "resolution of the PNG images")
	fontMap  = flag.String("fonts", "", "YAML font map")
	verbose  = flag.Bool("v", false, "log progress to stderr")
	category = flag.String("only", "", "only export the given category")
)

func main() {
	flag.Parse()

	if *verbose {
		h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
		psiprint.SetLogger(slog.New(h))
	}

	cat := fonts.NewCatalogue()
	m := fonts.DefaultMap()
	if *fontMap != "" {
		var err error
		m, err = fonts.ReadMapFile(*fontMap)
		if err != nil {
			panic(err)
		}
		if err := m.Register(cat); err != nil {
			panic(err)
		}
	}
	cache := fonts.NewCache(cat)

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		panic(err)
	}

	for _, c := range slices.Sorted(maps.Keys(testcases.All)) {
		if *category != "" && c != *category {
			continue
		}
		for _, tc := range testcases.All[c] {
			name := c + "_" + tc.Name
			if err := export(name, tc, cache, m); err != nil {
				panic(fmt.Errorf("%s: %w", name, err))
			}
		}
	}
}

func export(name string, tc testcases.TestCase, cache *fonts.Cache, m *fonts.Map) error {
	g := graphic.New(cache, m)
	g.PageWidth = testcases.PageWidth
	g.PageHeight = testcases.PageHeight
	defer g.Release()

	for _, err := range tc.Run(psiprint.New(g)) {
		fmt.Fprintf(os.Stderr, "%s: %s\n", name, err)
	}

	for i, f := range g.Pages() {
		base := filepath.Join(*outDir, fmt.Sprintf("%s_p%d", name, i+1))
		if err := writeDraw(base+".aff", f); err != nil {
			return err
		}
		if err := writePDF(base+".pdf", f); err != nil {
			return err
		}
		if err := writePNG(base+".png", f); err != nil {
			return err
		}
	}

	buf := &bytes.Buffer{}
	t := textual.New(buf)
	tc.Run(psiprint.New(t))
	if err := t.Err(); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(*outDir, name+".txt"), buf.Bytes(), 0644)
}

func writeDraw(fname string, f *drawfile.File) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = f.Save(fd)
	if err2 := fd.Close(); err == nil {
		err = err2
	}
	return err
}

func writePDF(fname string, f *drawfile.File) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = pdfexport.Write(fd, f)
	if err2 := fd.Close(); err == nil {
		err = err2
	}
	return err
}

func writePNG(fname string, f *drawfile.File) error {
	w, h := f.Options().PaperSize()
	pixel := 180 / *dpi // OS units per pixel
	wOS := float64(w) / transform.OS.Factor()
	hOS := float64(h) / transform.OS.Factor()
	img := image.NewRGBA(image.Rect(0, 0,
		int(math.Ceil(wOS/pixel)), int(math.Ceil(hOS/pixel))))

	top := int(math.Ceil(hOS))
	canvas := raster.NewCanvas(img, transform.Point{X: 0, Y: top}, pixel)
	canvas.Clear(color.White)
	rc := drawfile.NewRenderControl(canvas, transform.PageToOS(0, top, 100), transform.Infinite, 0, true)
	if err := f.Paint(rc); err != nil {
		return err
	}

	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	err = png.Encode(fd, img)
	if err2 := fd.Close(); err == nil {
		err = err2
	}
	return err
}
