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

import "math"

// applyDash splits the flattened subpaths according to the dash pattern.
// The dashes are stored in r.dashSegs and r.dashes.  The return value is
// false if the pattern describes a solid line.
func (r *Rasteriser) applyDash() bool {
	r.dashSegs = r.dashSegs[:0]
	r.dashes = r.dashes[:0]

	pat := r.Dash
	n := len(pat)
	var total float64
	for _, l := range pat {
		if l < 0 || math.IsNaN(l) || math.IsInf(l, 0) {
			return false
		}
		total += l
	}
	if total <= 0 {
		return false
	}
	if n%2 == 1 {
		total *= 2
	}

	// locate the pattern element at the start of each subpath
	rem := math.Mod(r.DashPhase, total)
	if rem < 0 {
		rem += total
	}
	idx0 := 0
	for {
		l := pat[idx0%n]
		if rem < l || (l == 0 && rem == 0) {
			break
		}
		rem -= l
		idx0++
	}
	left0 := pat[idx0%n] - rem

	for _, sp := range r.subpaths {
		idx, left := idx0, left0
		on := idx%2 == 0
		startedOn := on && left > 0
		firstDash := len(r.dashes)
		dashStart := len(r.dashSegs)
		broken := false

		for _, s := range r.segs[sp.start:sp.end] {
			length := s.B.Sub(s.A).Length()
			pos := 0.0
			for {
				step := min(left, length-pos)
				if on && step > zeroLengthThreshold {
					a := s.A.Add(s.T.Mul(pos))
					b := s.B
					if pos+step < length {
						b = s.A.Add(s.T.Mul(pos + step))
					}
					r.dashSegs = append(r.dashSegs, segment{A: a, B: b, T: s.T, N: s.N})
				}
				pos += step
				left -= step
				if left > 0 {
					break
				}

				// the current pattern element ends at pos
				if on {
					if len(r.dashSegs) == dashStart {
						pt := s.A.Add(s.T.Mul(pos))
						r.dashSegs = append(r.dashSegs, segment{A: pt, B: pt, T: s.T, N: s.N})
					}
					r.dashes = append(r.dashes, subpath{start: dashStart, end: len(r.dashSegs)})
					dashStart = len(r.dashSegs)
				}
				broken = true
				idx++
				left = pat[idx%n]
				on = idx%2 == 0
			}
		}

		if !on || len(r.dashSegs) == dashStart {
			continue
		}
		if !broken {
			// the whole subpath is covered by a single dash
			r.dashes = append(r.dashes, subpath{start: dashStart, end: len(r.dashSegs), closed: sp.closed})
			continue
		}
		last := subpath{start: dashStart, end: len(r.dashSegs)}
		if sp.closed && startedOn && firstDash < len(r.dashes) {
			// join the final dash to the first one across the closing point
			first := r.dashes[firstDash]
			r.dashSegs = append(r.dashSegs, r.dashSegs[first.start:first.end]...)
			last.end = len(r.dashSegs)
			r.dashes = append(r.dashes[:firstDash], r.dashes[firstDash+1:]...)
		}
		r.dashes = append(r.dashes, last)
	}
	return true
}
