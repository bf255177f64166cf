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

// Package fonts provides font metrics and outlines for page rendering.
//
// A [Catalogue] maps font names to TrueType data.  Fonts are used through
// reference-counted [Handle] values obtained from a [Cache], which keeps
// a bounded number of unused handles alive.  [Map] translates the font
// descriptions found in print jobs into catalogue names, and
// [Justification] lays out a line of text between two margins.
package fonts

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/sfnt"
)

// ErrUnknownFont is returned when a font name is not in the catalogue.
var ErrUnknownFont = errors.New("fonts: unknown font")

// SystemFont is the name of the font used when a requested font cannot
// be loaded.
const SystemFont = "System.Fixed"

// DefaultFont is the font used when a font mapping has no other answer.
const DefaultFont = "Homerton.Medium"

// builtin lists the fonts every catalogue starts with.
var builtin = map[string][]byte{
	"Homerton.Medium":         goregular.TTF,
	"Homerton.Medium.Oblique": goitalic.TTF,
	"Homerton.Bold":           gobold.TTF,
	"Homerton.Bold.Oblique":   gobolditalic.TTF,
	"Trinity.Medium":          gomedium.TTF,
	"Trinity.Medium.Italic":   gomediumitalic.TTF,
	"Trinity.Bold":            gobold.TTF,
	"Trinity.Bold.Italic":     gobolditalic.TTF,
	"Corpus.Medium":           gomono.TTF,
	"Corpus.Medium.Oblique":   gomonoitalic.TTF,
	"Corpus.Bold":             gomonobold.TTF,
	"Corpus.Bold.Oblique":     gomonobolditalic.TTF,
	SystemFont:                gomono.TTF,
}

// Catalogue maps font names to font files.  Font data is parsed on first
// use.  A Catalogue is safe for concurrent use.
type Catalogue struct {
	mu     sync.Mutex
	data   map[string][]byte
	parsed map[string]*sfnt.Font
}

// NewCatalogue returns a catalogue holding the built-in fonts.
func NewCatalogue() *Catalogue {
	c := &Catalogue{
		data:   make(map[string][]byte, len(builtin)),
		parsed: make(map[string]*sfnt.Font),
	}
	for name, ttf := range builtin {
		c.data[name] = ttf
	}
	return c
}

// Add registers TrueType or OpenType data under the given name, replacing
// any earlier font of that name.
func (c *Catalogue) Add(name string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[name] = data
	delete(c.parsed, name)
}

// AddFile reads a font file and registers it under the given name.
// The file is checked to be a valid font.
func (c *Catalogue) AddFile(name, fname string) error {
	data, err := os.ReadFile(fname)
	if err != nil {
		return err
	}
	f, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("fonts: %s: %w", fname, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[name] = data
	c.parsed[name] = f
	return nil
}

// Has reports whether the catalogue has a font of the given name.
func (c *Catalogue) Has(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[name]
	return ok
}

// Names returns the names of all fonts in the catalogue, in sorted order.
func (c *Catalogue) Names() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	names := make([]string, 0, len(c.data))
	for name := range c.data {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Font returns the parsed font of the given name.
func (c *Catalogue) Font(name string) (*sfnt.Font, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.parsed[name]; ok {
		return f, nil
	}
	data, ok := c.data[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownFont, name)
	}
	f, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("fonts: %s: %w", name, err)
	}
	c.parsed[name] = f
	return f, nil
}
