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
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/psiprint/transform"
)

func TestCatalogue(t *testing.T) {
	c := NewCatalogue()
	for _, name := range []string{DefaultFont, SystemFont, "Corpus.Bold"} {
		if !c.Has(name) {
			t.Errorf("built-in font %q missing", name)
		}
	}
	if _, err := c.Font("No.Such.Font"); !errors.Is(err, ErrUnknownFont) {
		t.Errorf("got %v, want ErrUnknownFont", err)
	}

	f1, err := c.Font(DefaultFont)
	if err != nil {
		t.Fatal(err)
	}
	f2, _ := c.Font(DefaultFont)
	if f1 != f2 {
		t.Error("font parsed twice")
	}
}

func TestCacheTrim(t *testing.T) {
	c := NewCache(NewCatalogue())

	var held []*Handle
	for i := range 40 {
		h, err := c.Acquire(DefaultFont, 16*(i+1))
		if err != nil {
			t.Fatal(err)
		}
		held = append(held, h)
	}
	if c.Len() != 40 {
		t.Fatalf("cache has %d handles, want 40", c.Len())
	}

	// handles in use are never discarded
	held[0].Release()
	if c.Len() != 39 {
		t.Errorf("after first release: %d handles, want 39", c.Len())
	}

	for _, h := range held[1:] {
		h.Release()
		if n := c.Idle(); n > CacheLimit {
			t.Fatalf("%d idle handles after trim", n)
		}
	}
	if c.Len() != CacheLimit {
		t.Errorf("cache has %d handles, want %d", c.Len(), CacheLimit)
	}
}

func TestCachePromotion(t *testing.T) {
	c := NewCache(NewCatalogue())

	first, _ := c.Acquire(DefaultFont, 160)
	first.Release()
	for i := range CacheLimit - 1 {
		h, _ := c.Acquire(DefaultFont, 200+i)
		h.Release()
	}

	// re-acquiring moves the oldest handle to the end of the list
	again, _ := c.Acquire(DefaultFont, 160)
	if again != first {
		t.Fatal("cached handle not reused")
	}
	again.Release()

	h, _ := c.Acquire(DefaultFont, 999)
	h.Release()

	if c.Len() != CacheLimit {
		t.Fatalf("cache has %d handles", c.Len())
	}
	found := false
	for _, h := range c.handles {
		if h == first {
			found = true
		}
		if h.size == 200 {
			t.Error("least recently acquired handle was kept")
		}
	}
	if !found {
		t.Error("promoted handle was discarded")
	}
}

func TestLoseAll(t *testing.T) {
	c := NewCache(NewCatalogue())
	h, _ := c.Acquire(DefaultFont, 160)
	c.LoseAll()
	if c.Len() != 0 {
		t.Errorf("%d handles after LoseAll", c.Len())
	}
	if h.Width("abc") <= 0 {
		t.Error("held handle unusable after LoseAll")
	}
	h.Release()
}

func TestSubstitution(t *testing.T) {
	c := NewCache(NewCatalogue())
	h, err := c.Acquire("Missing.Font", 160)
	if err != nil {
		t.Fatal(err)
	}
	defer h.Release()
	if !h.Substituted() {
		t.Error("missing font not reported as substituted")
	}
	if h.Name() != "Missing.Font" {
		t.Errorf("handle name %q", h.Name())
	}
	if h.Width("x") <= 0 {
		t.Error("substituted font has no widths")
	}
}

func TestMetrics(t *testing.T) {
	c := NewCache(NewCatalogue())
	h, _ := c.Acquire("Corpus.Medium", 12*16)
	defer h.Release()

	// monospaced: every character has the same width
	w := h.Width("i")
	if w <= 0 || h.Width("MMMM") != h.Width("iiii") || abs(h.Width("iiii")-4*w) > 2 {
		t.Errorf("unexpected widths %d, %d, %d", w, h.Width("iiii"), h.Width("MMMM"))
	}
	if h.Width("") != 0 {
		t.Error("empty text has a width")
	}
	if h.Ascent() <= 0 || h.Descent() >= 0 {
		t.Errorf("ascent %d, descent %d", h.Ascent(), h.Descent())
	}
	pos, thick := h.Underline()
	if pos >= 0 || thick <= 0 {
		t.Errorf("underline (%d, %d)", pos, thick)
	}

	n := 0
	for range h.Outline("Hi", 7680, 7680, 0) {
		n++
	}
	if n == 0 {
		t.Error("no outline for text")
	}
}

func TestResolve(t *testing.T) {
	m := NewMap()
	m.Default = "Fallback"
	m.Set("Arial", false, false, "A")
	m.Set("Arial", true, false, "AB")
	m.Set("Arial", false, true, "AI")
	m.Set("Screen3", false, false, "S3")
	m.Set("Screen3", true, true, "S3BI")
	m.Set("Courier", false, true, "CI")

	cases := []struct {
		face         string
		screen       int
		bold, italic bool
		want         string
	}{
		{"Arial", 0, false, false, "A"},
		{"Arial", 0, true, false, "AB"},
		{"Arial", 0, true, true, "AB"},
		{"Arial", 0, false, true, "AI"},
		{"Courier", 0, true, true, "CI"},
		{"Courier", 0, true, false, "Fallback"},
		{"Unknown", 3, true, true, "S3BI"},
		{"Unknown", 3, true, false, "S3"},
		{"Unknown", 4, false, false, "Fallback"},
	}
	for _, tc := range cases {
		got := m.Resolve(tc.face, tc.screen, tc.bold, tc.italic)
		if got != tc.want {
			t.Errorf("Resolve(%q, %d, %t, %t) = %q, want %q",
				tc.face, tc.screen, tc.bold, tc.italic, got, tc.want)
		}
	}

	d := DefaultMap()
	if got := d.Resolve("Arial", 0, true, true); got != "Homerton.Bold.Oblique" {
		t.Errorf("default map: %q", got)
	}
	cat := NewCatalogue()
	for _, e := range d.Entries() {
		if !cat.Has(e.Font) {
			t.Errorf("default map refers to unknown font %q", e.Font)
		}
	}
}

func TestLoadMap(t *testing.T) {
	const doc = `
default: Corpus.Medium
fonts:
  - face: Arial
    font: Homerton.Medium
  - face: Arial
    bold: true
    font: Homerton.Bold
files:
  - name: Extra
    path: /nonexistent/extra.ttf
`
	m, err := LoadMap(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if m.Default != "Corpus.Medium" {
		t.Errorf("default %q", m.Default)
	}
	want := []MapEntry{
		{Face: "Arial", Font: "Homerton.Medium"},
		{Face: "Arial", Bold: true, Font: "Homerton.Bold"},
	}
	if diff := cmp.Diff(want, m.Entries()); diff != "" {
		t.Errorf("entries (-want +got):\n%s", diff)
	}
	if err := m.Register(NewCatalogue()); err == nil {
		t.Error("registering a missing file succeeded")
	}

	// round trip through Write
	buf := &bytes.Buffer{}
	if err := m.Write(buf); err != nil {
		t.Fatal(err)
	}
	m2, err := LoadMap(buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(m.Entries(), m2.Entries()); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}

	if _, err := LoadMap(strings.NewReader("fonts:\n  - face: X\n")); err == nil {
		t.Error("entry without font accepted")
	}
	if _, err := LoadMap(strings.NewReader("colour: red\n")); err == nil {
		t.Error("unknown key accepted")
	}
}

func TestEnhanced(t *testing.T) {
	cases := []struct {
		length, raw, requested int
		want                   bool
	}{
		{1, 1000, 1000, false},
		{2, 1000, 1000, true},
		{5, 940, 1000, false},
		{5, 941, 1000, true},
		{5, 1099, 1000, true},
		{5, 1100, 1000, false},
	}
	for _, tc := range cases {
		if got := Enhanced(tc.length, tc.raw, tc.requested); got != tc.want {
			t.Errorf("Enhanced(%d, %d, %d) = %t", tc.length, tc.raw, tc.requested, got)
		}
	}
}

func TestJustification(t *testing.T) {
	c := NewCache(NewCatalogue())
	h, _ := c.Acquire("Corpus.Medium", 10*16)
	defer h.Release()
	size := 10 * 640

	text := "Hello"
	raw := h.Width(text)

	t.Run("point", func(t *testing.T) {
		j := NewJustification(h, size)
		j.SetText(text)
		j.SetPositionPoint(transform.Point{X: 100, Y: 200})
		l := j.Calculate()
		if l.Start != (transform.Point{X: 100, Y: 200}) || l.End.X != 100+raw || l.Spacing != 0 {
			t.Errorf("got %+v", l)
		}
	})

	for _, align := range []Alignment{AlignLeft, AlignCentre, AlignRight} {
		t.Run(fmt.Sprintf("wide-%s", align), func(t *testing.T) {
			j := NewJustification(h, size)
			j.SetText(text)
			j.SetPositionLine(0, 2*raw, 500)
			j.SetAlignment(align)
			l := j.Calculate()
			if l.Spacing != 0 || l.XSize != size {
				t.Errorf("justification engaged: %+v", l)
			}
			var x0 int
			switch align {
			case AlignCentre:
				x0 = (raw + 1) / 2
			case AlignRight:
				x0 = raw
			}
			if l.Start.X != x0 || l.End.X-l.Start.X != raw {
				t.Errorf("baseline %v-%v, want start %d width %d", l.Start, l.End, x0, raw)
			}
		})
	}

	t.Run("enhanced", func(t *testing.T) {
		requested := raw * 103 / 100
		j := NewJustification(h, size)
		j.SetText(text)
		j.SetPositionLine(1000, 1000+requested, 0)
		j.SetAlignment(AlignCentre)
		l := j.Calculate()

		wantSpacing := float64(requested-raw) / 4
		if l.Spacing != wantSpacing {
			t.Errorf("spacing %g, want %g", l.Spacing, wantSpacing)
		}
		if l.Start.X != 1000 || l.End.X != 1000+requested {
			t.Errorf("baseline %v-%v", l.Start, l.End)
		}
		if l.XSize <= size {
			t.Errorf("adjusted width %d not above %d", l.XSize, size)
		}
	})

	t.Run("decorations", func(t *testing.T) {
		j := NewJustification(h, size)
		j.SetText(text)
		j.SetPositionPoint(transform.Point{X: 0, Y: 1000})
		l := j.Calculate()
		if l.Underline.Y0 <= 1000 || l.Underline.Y1 <= l.Underline.Y0 {
			t.Errorf("underline %v not below the baseline", l.Underline)
		}
		if l.Strikethrough.Y1 >= 1000 || l.Strikethrough.Y1 <= l.Strikethrough.Y0 {
			t.Errorf("strikethrough %v not above the baseline", l.Strikethrough)
		}
		if l.Underline.X0 != 0 || l.Underline.X1 != raw {
			t.Errorf("underline extent %v", l.Underline)
		}
	})
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
