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

package psiprint

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/psiprint/transform"
)

// recorder logs the operations it receives.  Operations it does not
// implement fall through to Discard.
type recorder struct {
	Discard
	log []string
}

func (r *recorder) Begin(*Engine) { r.log = append(r.log, "begin") }

func (r *recorder) Start(_ *Engine, page int, s Section) {
	r.log = append(r.log, fmt.Sprintf("start %d %v", page, s))
}

func (r *recorder) DrawText(_ *Engine, text string, at transform.Point) {
	r.log = append(r.log, fmt.Sprintf("text %q %v", text, at))
}

func (r *recorder) DrawPolygon(_ *Engine, v []transform.Point, _ FillRule) {
	r.log = append(r.log, fmt.Sprintf("polygon %d", len(v)))
}

func (r *recorder) DrawBitmap(_ *Engine, src, dst transform.Rect, _ *Bitmap) {
	r.log = append(r.log, fmt.Sprintf("bitmap %v %v", src, dst))
}

func (r *recorder) End(*Engine) { r.log = append(r.log, "end") }

func messages(errs []*Error) []string {
	var res []string
	for _, err := range errs {
		res = append(res, err.Msg)
	}
	return res
}

func TestErrorOrder(t *testing.T) {
	e := New(Discard{})
	e.Error("A", false)
	if !e.OK() {
		t.Error("recoverable error latched the engine")
	}
	e.Error("B", true)
	e.Error("C", false)
	e.Error("D", true)

	want := []string{"B", "D", "A", "C"}
	if d := cmp.Diff(want, messages(e.Errors())); d != "" {
		t.Errorf("error order (-want +got):\n%s", d)
	}
	if e.OK() {
		t.Error("engine still OK after a fatal error")
	}
	if e.Err() == nil || e.Err().Error() != "B" {
		t.Errorf("Err() = %v", e.Err())
	}

	e.Begin()
	if !e.OK() || len(e.Errors()) != 0 {
		t.Error("Begin did not clear the errors")
	}
}

func TestFatalFirstProperty(t *testing.T) {
	e := New(Discard{})
	for i := range 50 {
		e.Error(fmt.Sprint(i), i%3 == 1 || i%7 == 0)
	}
	errs := e.Errors()
	seenRecoverable := false
	for _, err := range errs {
		if !err.Fatal {
			seenRecoverable = true
		} else if seenRecoverable {
			t.Fatalf("fatal error %q after a recoverable one", err.Msg)
		}
	}
	if len(errs) != 50 {
		t.Errorf("%d errors", len(errs))
	}
}

func TestStateReset(t *testing.T) {
	rec := &recorder{}
	e := New(rec)
	e.Begin()
	e.SetPenColour(Colour{R: 255})
	e.SetPenSize(20)
	e.SetBrushStyle(BrushSolid)
	e.SetClip(transform.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100})
	e.UseFont(Font{Face: "Arial", Size: 240, BaseSize: 240})
	e.SetUnderline(true)
	e.SetDrawMode(ModeXor | InvertPen)

	e.Start(3, Footer)
	got := e.State()
	want := State{
		Page:    3,
		Section: Footer,
		Pen:     Pen{Colour: Black, Style: PenSolid},
		Brush:   Brush{Colour: White, Style: BrushNull},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("state after Start (-want +got):\n%s", d)
	}
	if d := cmp.Diff([]string{"begin", "start 3 footer"}, rec.log); d != "" {
		t.Errorf("back-end calls (-want +got):\n%s", d)
	}
}

func TestValidation(t *testing.T) {
	type testCase struct {
		name  string
		run   func(e *Engine)
		fatal bool
	}
	cases := []testCase{
		{"clip", func(e *Engine) { e.SetClip(transform.Rect{X0: 10, Y0: 0, X1: 5, Y1: 5}) }, true},
		{"section", func(e *Engine) { e.Start(1, Section(7)) }, true},
		{"pen", func(e *Engine) { e.SetPenSize(-1) }, true},
		{"font", func(e *Engine) { e.UseFont(Font{Face: "Arial", Size: 0, BaseSize: 200}) }, true},
		{"polygon", func(e *Engine) { e.DrawPolygon([]transform.Point{{X: 1, Y: 1}}, Winding) }, false},
		{"colour bitmap", func(e *Engine) {
			e.DrawBitmap(transform.Rect{X1: 10, Y1: 10}, &Bitmap{Width: 1, Height: 1, Mode: Colour256, Data: make([]byte, 4)})
		}, false},
		{"short bitmap", func(e *Engine) {
			e.DrawBitmap(transform.Rect{X1: 10, Y1: 10}, &Bitmap{Width: 40, Height: 2, Data: make([]byte, 8)})
		}, false},
		{"no font", func(e *Engine) { e.DrawText("x", transform.Point{}) }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := New(&recorder{})
			e.Begin()
			before := e.State()
			tc.run(e)
			errs := e.Errors()
			if len(errs) != 1 {
				t.Fatalf("%d errors recorded", len(errs))
			}
			if errs[0].Fatal != tc.fatal {
				t.Errorf("fatal = %t, want %t", errs[0].Fatal, tc.fatal)
			}
			if tc.fatal && !cmp.Equal(before, e.State()) {
				t.Error("invalid primitive changed the state")
			}
		})
	}
}

func TestRejectedPrimitivesSkipBackend(t *testing.T) {
	rec := &recorder{}
	e := New(rec)
	e.DrawPolygon(nil, Alternate)
	e.DrawPolygon([]transform.Point{{X: 0, Y: 0}, {X: 10, Y: 0}}, Alternate)
	bm := &Bitmap{Width: 8, Height: 2, Data: make([]byte, 8)}
	e.DrawBitmapSrc(transform.Rect{X0: 20, Y0: 0, X1: 30, Y1: 2}, transform.Rect{X1: 100, Y1: 100}, bm)
	e.DrawBitmapSrc(transform.Rect{X0: 4, Y0: 2, X1: 0, Y1: 0}, transform.Rect{X0: 100, Y0: 100, X1: 0, Y1: 0}, bm)

	want := []string{
		"polygon 2",
		"bitmap (0,0,4,2) (0,0,100,100)",
	}
	if d := cmp.Diff(want, rec.log); d != "" {
		t.Errorf("back-end calls (-want +got):\n%s", d)
	}
	if len(e.Errors()) != 2 {
		t.Errorf("%d errors", len(e.Errors()))
	}
}

func TestTranslate(t *testing.T) {
	cases := []struct{ in, out string }{
		{"", ""},
		{"plain", "plain"},
		{"caf\xe9", "caf\xe9"},
		{"\x93quoted\x94", "quoted"},
		{"5\x80", "5"},
		{"a\x00b", "ab"},
		{"\xa3\xff", "\xa3\xff"},
	}
	for _, tc := range cases {
		if got := Translate(tc.in); got != tc.out {
			t.Errorf("Translate(%q) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestTextIsTranslated(t *testing.T) {
	rec := &recorder{}
	e := New(rec)
	e.UseFont(Font{Face: "Arial", Size: 200, BaseSize: 200})
	e.DrawText("\x84X\x85", transform.Point{X: 1, Y: 2})
	if d := cmp.Diff([]string{`text "X" (1,2)`}, rec.log); d != "" {
		t.Errorf("back-end calls (-want +got):\n%s", d)
	}
}
