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

// Error is an error recorded while interpreting a page.
type Error struct {
	Msg string

	// Fatal errors mean that the page cannot be used.
	Fatal bool
}

func (e *Error) Error() string {
	return e.Msg
}

// errorList keeps fatal and recoverable errors in separate queues, each
// in order of arrival.
type errorList struct {
	fatal       []*Error
	recoverable []*Error
}

func (l *errorList) add(err *Error) {
	if err.Fatal {
		l.fatal = append(l.fatal, err)
	} else {
		l.recoverable = append(l.recoverable, err)
	}
}

func (l *errorList) clear() {
	l.fatal = l.fatal[:0]
	l.recoverable = l.recoverable[:0]
}

// all returns the fatal errors followed by the recoverable ones.
func (l *errorList) all() []*Error {
	res := make([]*Error, 0, len(l.fatal)+len(l.recoverable))
	res = append(res, l.fatal...)
	return append(res, l.recoverable...)
}
