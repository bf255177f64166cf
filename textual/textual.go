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

// Package textual implements a back-end which extracts the text of a
// print job.
//
// Text is written in the local 8-bit code page.  Sections are separated
// by a line of dashes and pages by a line of equals signs.
package textual

import (
	"bufio"
	"fmt"
	"io"
	"runtime"
	"strings"

	"seehuhn.de/go/psiprint"
	"seehuhn.de/go/psiprint/transform"
)

const separatorWidth = 80

var (
	pageSeparator    = strings.Repeat("=", separatorWidth)
	sectionSeparator = strings.Repeat("-", separatorWidth)
)

// Guillemets, in ISO 8859-1, mark important debug messages.
const (
	importantOpen  = "\xab"
	importantClose = "\xbb"
)

// Backend writes the text of each page to an io.Writer.
type Backend struct {
	psiprint.Discard

	// Newline is the line terminator.  It defaults to the host
	// convention.
	Newline string

	w       *bufio.Writer
	page    int
	emitted bool
	err     error
}

// New returns a back-end writing to w.
func New(w io.Writer) *Backend {
	nl := "\n"
	if runtime.GOOS == "windows" {
		nl = "\r\n"
	}
	return &Backend{Newline: nl, w: bufio.NewWriter(w)}
}

// Err returns the first write error, if any.
func (t *Backend) Err() error {
	return t.err
}

// Pages returns the number of pages begun.
func (t *Backend) Pages() int {
	return t.page
}

func (t *Backend) write(e *psiprint.Engine, s string) {
	if t.err != nil {
		return
	}
	if _, err := t.w.WriteString(s); err != nil {
		t.fail(e, err)
	}
}

func (t *Backend) fail(e *psiprint.Engine, err error) {
	t.err = err
	if e != nil {
		e.Error(fmt.Sprintf("writing text: %v", err), true)
	}
}

func (t *Backend) separator(e *psiprint.Engine, line string) {
	t.write(e, t.Newline+line+t.Newline)
}

// Begin implements the psiprint.Backend interface.
func (t *Backend) Begin(e *psiprint.Engine) {
	t.page++
	if t.page > 1 {
		t.separator(e, pageSeparator)
	}
	t.emitted = false
}

// Start implements the psiprint.Backend interface.
func (t *Backend) Start(e *psiprint.Engine, _ int, _ psiprint.Section) {
	if t.emitted {
		t.separator(e, sectionSeparator)
	}
	t.emitted = false
}

// LineFeed implements the psiprint.Backend interface.
func (t *Backend) LineFeed(e *psiprint.Engine) {
	t.write(e, t.Newline)
}

// DrawText implements the psiprint.Backend interface.
func (t *Backend) DrawText(e *psiprint.Engine, text string, _ transform.Point) {
	t.write(e, text)
	t.emitted = true
}

// DrawTextJustified implements the psiprint.Backend interface.
func (t *Backend) DrawTextJustified(e *psiprint.Engine, text string, _ transform.Rect, _ psiprint.Alignment, _, _ int) {
	t.write(e, text)
	t.emitted = true
}

// Debug implements the psiprint.Backend interface.
func (t *Backend) Debug(e *psiprint.Engine, msg string, important bool) {
	if important {
		t.write(e, importantOpen+msg+importantClose)
	} else {
		t.write(e, "<"+msg+">")
	}
	t.emitted = true
}

// End implements the psiprint.Backend interface.  Buffered output is
// flushed at the end of every page.
func (t *Backend) End(e *psiprint.Engine) {
	if t.err != nil {
		return
	}
	if err := t.w.Flush(); err != nil {
		t.fail(e, err)
	}
}
