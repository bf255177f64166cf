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

// Unit is a length unit which can be converted to internal units.
type Unit int

// These are the units known to the renderer.
const (
	Internal Unit = iota
	Twip
	MM
	PointUnit
	Point16
	OS
	Millipoint
)

// Factor returns the number of internal units per unit u.
func (u Unit) Factor() float64 {
	switch u {
	case Twip:
		return 32
	case MM:
		return 1843.2
	case PointUnit:
		return 640
	case Point16:
		return 40
	case OS:
		return 256
	case Millipoint:
		return 0.64
	default:
		return 1
	}
}

func (u Unit) String() string {
	switch u {
	case Twip:
		return "twip"
	case MM:
		return "mm"
	case PointUnit:
		return "pt"
	case Point16:
		return "pt/16"
	case OS:
		return "OS unit"
	case Millipoint:
		return "mpt"
	default:
		return "internal"
	}
}

// ToInternal returns the transformation from unit u to internal units.
func (u Unit) ToInternal() Transform {
	return Scale(u.Factor())
}

// FromInternal returns the transformation from internal units to unit u.
func (u Unit) FromInternal() Transform {
	return Scale(1 / u.Factor())
}

// Frequently used conversions.
var (
	TwipToInternal       = Twip.ToInternal()
	MMToInternal         = MM.ToInternal()
	PointToInternal      = PointUnit.ToInternal()
	Point16ToInternal    = Point16.ToInternal()
	OSToInternal         = OS.ToInternal()
	InternalToTwip       = Twip.FromInternal()
	InternalToOS         = OS.FromInternal()
	InternalToMillipoint = Millipoint.FromInternal()
)

// Convert converts the length v from unit from to unit to, rounding to
// the nearest integer.
func Convert(v int, from, to Unit) int {
	return RoundNearest.apply(float64(v) * from.Factor() / to.Factor())
}
