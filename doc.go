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

// Package psiprint renders print jobs from Psion PDAs.
//
// The print redirector on the PDA describes each page as a sequence of
// drawing primitives.  An [Engine] interprets these primitives, keeps
// track of the graphics state, and forwards the drawing operations to a
// [Backend].  Two back-ends are provided: package graphic builds a page
// object graph which can be painted and saved as a vector drawing, and
// package textual extracts the plain text of a job.
//
// Coordinates passed to the engine are in twips, with the origin at the
// top-left corner of the page and the y axis pointing down.
package psiprint

//go:generate go run ./testcases/export
//go:generate go run ./testcases/genpdf

import (
	"log/slog"

	"seehuhn.de/go/psiprint/internal/logging"
)

// SetLogger sets the logger used by psiprint and its sub-packages.
// Passing nil disables logging, which is the default.
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	return logging.Get()
}
