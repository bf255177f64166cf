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

package transform

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNullRect(t *testing.T) {
	if Null.Overlap(Null) {
		t.Error("null rectangle overlaps itself")
	}
	r := Rect{X0: -10, Y0: -10, X1: 10, Y1: 10}
	if Null.Overlap(r) || r.Overlap(Null) {
		t.Error("null rectangle overlaps a valid one")
	}
	if Null.Valid() {
		t.Error("null rectangle is valid")
	}
	if got := r.Combine(Null); got != r {
		t.Errorf("Combine(null) = %v, want %v", got, r)
	}
	if got := Null.Combine(r); got != r {
		t.Errorf("null.Combine = %v, want %v", got, r)
	}
}

func TestRectOps(t *testing.T) {
	a := Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}
	b := Rect{X0: 50, Y0: 60, X1: 200, Y1: 70}
	c := Rect{X0: 1000, Y0: 1000, X1: 2000, Y1: 2000}

	type testCase struct {
		name string
		got  Rect
		want Rect
	}
	cases := []testCase{
		{"intersect", a.Intersect(b), Rect{X0: 50, Y0: 60, X1: 100, Y1: 70}},
		{"intersect disjoint", a.Intersect(c), Null},
		{"combine", a.Combine(c), Rect{X0: 0, Y0: 0, X1: 2000, Y1: 2000}},
		{"combine overlapping", a.Combine(b), Rect{X0: 0, Y0: 0, X1: 200, Y1: 100}},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, tc.got, tc.want)
		}
	}

	if a.Overlap(c) {
		t.Error("disjoint rectangles overlap")
	}
	if !a.Overlap(Rect{X0: 100, Y0: 100, X1: 120, Y1: 120}) {
		t.Error("touching rectangles do not overlap")
	}
	if !a.Encloses(Rect{X0: 10, Y0: 10, X1: 20, Y1: 20}) || a.Encloses(b) {
		t.Error("Encloses is wrong")
	}
	line := Rect{X0: 0, Y0: 0, X1: 32000, Y1: 0}
	if !line.Valid() || !line.Overlap(a) {
		t.Error("degenerate rectangles must be usable")
	}
}

func TestRounding(t *testing.T) {
	cases := []struct {
		mode Round
		in   float64
		want int
	}{
		{RoundNearest, 2.5, 3},
		{RoundNearest, -2.5, -3},
		{RoundNearest, 2.4, 2},
		{RoundUp, 2.1, 3},
		{RoundUp, -2.9, -2},
		{RoundDown, 2.9, 2},
		{RoundDown, -2.1, -3},
		{RoundZero, -2.9, -2},
		{RoundZero, 2.9, 2},
		{RoundOut, 2.1, 3},
		{RoundOut, -2.1, -3},
		{RoundIn, 2.9, 2},
		{RoundIn, -2.9, -2},
	}
	for _, tc := range cases {
		tr := New(tc.in, 1, 0, 0)
		if got := tr.X(1, tc.mode); got != tc.want {
			t.Errorf("%s(%g) = %d, want %d", tc.mode, tc.in, got, tc.want)
		}
	}
}

func TestRectRounding(t *testing.T) {
	tr := Scale(0.5)
	r := Rect{X0: 1, Y0: 1, X1: 5, Y1: 5}

	out := tr.Rect(r, RoundOut)
	if want := (Rect{X0: 0, Y0: 0, X1: 3, Y1: 3}); out != want {
		t.Errorf("RoundOut: got %v, want %v", out, want)
	}
	in := tr.Rect(r, RoundIn)
	if want := (Rect{X0: 1, Y0: 1, X1: 2, Y1: 2}); in != want {
		t.Errorf("RoundIn: got %v, want %v", in, want)
	}

	// a negative scale factor swaps the corners
	flip := New(1, -1, 0, 100)
	got := flip.Rect(Rect{X0: 0, Y0: 10, X1: 20, Y1: 30}, RoundNearest)
	if want := (Rect{X0: 0, Y0: 70, X1: 20, Y1: 90}); got != want {
		t.Errorf("flip: got %v, want %v", got, want)
	}

	if got := tr.Rect(Null, RoundOut); !got.IsNull() {
		t.Errorf("null maps to %v", got)
	}
}

func randomTransform(rng *rand.Rand) Transform {
	scale := func() float64 {
		s := rng.Float64()*8 + 0.01
		if rng.IntN(2) == 0 {
			s = -s
		}
		return s
	}
	return New(scale(), scale(), rng.Float64()*2000-1000, rng.Float64()*2000-1000)
}

func randomRect(rng *rand.Rand) Rect {
	x0, y0 := rng.IntN(20000)-10000, rng.IntN(20000)-10000
	return Rect{X0: x0, Y0: y0, X1: x0 + rng.IntN(5000) + 1, Y1: y0 + rng.IntN(5000) + 1}
}

func TestInverseInverse(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 1000 {
		tr := randomTransform(rng)
		if back := tr.Inverse().Inverse(); !back.Equal(tr, 1) {
			t.Fatalf("%v: inverse of inverse is %v", tr, back)
		}
	}
}

func TestRoundOutEncloses(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for range 1000 {
		tr := randomTransform(rng)
		r := randomRect(rng)
		image := tr.Rect(r, RoundOut)
		back := tr.InverseRect(image, RoundOut)
		if !back.Encloses(r) {
			t.Fatalf("%v: %v -> %v -> %v does not enclose the original", tr, r, image, back)
		}
	}
}

func TestComposeAssociative(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 6))
	for range 1000 {
		a, b, c := randomTransform(rng), randomTransform(rng), randomTransform(rng)
		left := a.Compose(b).Compose(c)
		right := a.Compose(b.Compose(c))
		if !left.Equal(right, 1e-6) {
			t.Fatalf("(ab)c = %v, a(bc) = %v", left, right)
		}
	}
}

func TestComposeApply(t *testing.T) {
	a := New(2, 3, 10, 20)
	b := New(-1, 0.5, 5, -5)
	p := Point{X: 7, Y: -4}
	want := b.Point(a.Point(p, RoundNearest), RoundNearest)
	got := a.Compose(b).Point(p, RoundNearest)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("compose mismatch (-want +got):\n%s", diff)
	}
}

func TestUnits(t *testing.T) {
	cases := []struct {
		v        int
		from, to Unit
		want     int
	}{
		{1, Twip, Internal, 32},
		{1, PointUnit, Internal, 640},
		{1, Point16, Internal, 40},
		{1, OS, Internal, 256},
		{10, MM, Internal, 18432},
		{640, Internal, Millipoint, 1000},
		{20, Twip, PointUnit, 1},
	}
	for _, tc := range cases {
		if got := Convert(tc.v, tc.from, tc.to); got != tc.want {
			t.Errorf("%d %s in %s: got %d, want %d", tc.v, tc.from, tc.to, got, tc.want)
		}
	}
	if got := InternalToMillipoint.X(640, RoundNearest); got != 1000 {
		t.Errorf("640 internal units = %d mpt, want 1000", got)
	}
}

func TestIdentity(t *testing.T) {
	var zero Transform
	if !zero.IsIdentity() || !Identity.IsIdentity() {
		t.Error("identity not recognised")
	}
	if Scale(2).IsIdentity() {
		t.Error("scaling reported as identity")
	}
	r := Rect{X0: 1, Y0: 2, X1: 3, Y1: 4}
	if got := Identity.Rect(r, RoundOut); got != r {
		t.Errorf("identity changed %v to %v", r, got)
	}
}

func TestViewport(t *testing.T) {
	v := Viewport{X0: 100, Y1: 1000, ScrollX: 0, ScrollY: -200}
	in := NewInternal(v, 50)

	// the top-left page corner is at the work area origin
	if got := in.ToOS.Point(Point{}, RoundNearest); got != (Point{X: 100, Y: 1200}) {
		t.Errorf("origin maps to %v", got)
	}
	// 512 internal units are 2 OS units, halved by the zoom
	if got := in.ToOS.Point(Point{X: 512, Y: 512}, RoundNearest); got != (Point{X: 101, Y: 1199}) {
		t.Errorf("(512,512) maps to %v", got)
	}
	if got := in.ToMillipoint.Length(640, RoundNearest); got != 500 {
		t.Errorf("1pt at 50%% = %d mpt, want 500", got)
	}
}
