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
	"bytes"
	"io"
	"maps"
	"regexp"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/psiprint"
	"seehuhn.de/go/psiprint/drawfile"
	"seehuhn.de/go/psiprint/fonts"
	"seehuhn.de/go/psiprint/graphic"
	"seehuhn.de/go/psiprint/pdfexport"
	"seehuhn.de/go/psiprint/textual"
)

var validName = regexp.MustCompile(`^[a-z_]+$`)

func forAll(t *testing.T, fn func(t *testing.T, tc TestCase)) {
	for _, category := range slices.Sorted(maps.Keys(All)) {
		for _, tc := range All[category] {
			t.Run(category+"_"+tc.Name, func(t *testing.T) {
				fn(t, tc)
			})
		}
	}
}

func TestNames(t *testing.T) {
	seen := make(map[string]bool)
	for category, cases := range All {
		if !validName.MatchString(category) {
			t.Errorf("invalid category %q", category)
		}
		for _, tc := range cases {
			if !validName.MatchString(tc.Name) {
				t.Errorf("invalid name %q", tc.Name)
			}
			key := category + "_" + tc.Name
			if seen[key] {
				t.Errorf("duplicate test case %q", key)
			}
			seen[key] = true
			if len(tc.Pages) == 0 {
				t.Errorf("%s: no pages", key)
			}
		}
	}
}

func render(t *testing.T, tc TestCase) ([]*drawfile.File, []*psiprint.Error) {
	t.Helper()
	g := graphic.New(fonts.NewCache(fonts.NewCatalogue()), nil)
	t.Cleanup(g.Release)
	errs := tc.Run(psiprint.New(g))
	return g.Pages(), errs
}

func TestGraphic(t *testing.T) {
	forAll(t, func(t *testing.T, tc TestCase) {
		pages, errs := render(t, tc)
		if len(pages) != len(tc.Pages) {
			t.Fatalf("got %d pages, expected %d", len(pages), len(tc.Pages))
		}
		if tc.Faulty != (len(errs) > 0) {
			t.Errorf("faulty=%t, errors: %v", tc.Faulty, errs)
		}
		for i, f := range pages {
			buf := &bytes.Buffer{}
			if err := f.Save(buf); err != nil {
				t.Fatalf("page %d: %v", i+1, err)
			}
			if buf.Len() != f.Size() {
				t.Errorf("page %d: wrote %d bytes, Size is %d", i+1, buf.Len(), f.Size())
			}
		}
	})
}

func TestDeterministic(t *testing.T) {
	forAll(t, func(t *testing.T, tc TestCase) {
		save := func() [][]byte {
			pages, _ := render(t, tc)
			var res [][]byte
			for _, f := range pages {
				buf := &bytes.Buffer{}
				if err := f.Save(buf); err != nil {
					t.Fatal(err)
				}
				res = append(res, buf.Bytes())
			}
			return res
		}
		if d := cmp.Diff(save(), save()); d != "" {
			t.Errorf("output differs between runs (-first +second):\n%s", d)
		}
	})
}

func TestPDF(t *testing.T) {
	forAll(t, func(t *testing.T, tc TestCase) {
		pages, _ := render(t, tc)
		for i, f := range pages {
			if err := pdfexport.Write(io.Discard, f); err != nil {
				t.Errorf("page %d: %v", i+1, err)
			}
		}
	})
}

func TestTextual(t *testing.T) {
	forAll(t, func(t *testing.T, tc TestCase) {
		buf := &bytes.Buffer{}
		b := textual.New(buf)
		tc.Run(psiprint.New(b))
		if err := b.Err(); err != nil {
			t.Fatal(err)
		}
		if b.Pages() != len(tc.Pages) {
			t.Errorf("got %d pages, expected %d", b.Pages(), len(tc.Pages))
		}
	})
}
