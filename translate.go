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
	"sync"

	"golang.org/x/text/encoding/charmap"
)

// Text arrives in the PDA's code page and is rendered in ISO 8859-1.
var (
	sourceCodePage = charmap.Windows1252
	localCodePage  = charmap.ISO8859_1
)

// translation maps source bytes to local bytes.  A zero entry means that
// the character has no local equivalent.
var translation = sync.OnceValue(func() *[256]byte {
	var table [256]byte
	for i := 1; i < 256; i++ {
		r := sourceCodePage.DecodeByte(byte(i))
		if b, ok := localCodePage.EncodeRune(r); ok {
			table[i] = b
		}
	}
	return &table
})

// Translate converts text from the PDA's code page to the local one.
// Characters without a local equivalent are dropped.
func Translate(text string) string {
	table := translation()
	buf := make([]byte, 0, len(text))
	for i := 0; i < len(text); i++ {
		if c := table[text[i]]; c != 0 {
			buf = append(buf, c)
		}
	}
	return string(buf)
}
