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
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Map translates the font descriptions of print jobs into catalogue names.
//
// Print jobs describe a font by a face name, a screen font number and
// bold and italic flags.  Lookups try the face name first and then the
// synthetic face "Screen<N>", each time with the exact style, then with
// only the bold or only the italic flag (if requested), and finally
// unstyled.  If nothing matches, Default is used.
type Map struct {
	// Default is the font used when no mapping applies.
	Default string

	// Files lists additional font files to load into the catalogue.
	Files []FontFile

	entries map[mapKey]string
}

// FontFile names a font file to be registered with a catalogue.
type FontFile struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

type mapKey struct {
	face         string
	bold, italic bool
}

// MapEntry is a single font mapping.
type MapEntry struct {
	Face   string `yaml:"face"`
	Bold   bool   `yaml:"bold,omitempty"`
	Italic bool   `yaml:"italic,omitempty"`
	Font   string `yaml:"font"`
}

// mapFile is the YAML representation of a Map.
type mapFile struct {
	Default string     `yaml:"default,omitempty"`
	Fonts   []MapEntry `yaml:"fonts,omitempty"`
	Files   []FontFile `yaml:"files,omitempty"`
}

// NewMap returns an empty font map.
func NewMap() *Map {
	return &Map{
		Default: DefaultFont,
		entries: make(map[mapKey]string),
	}
}

// DefaultMap returns the built-in mappings for the common faces.
func DefaultMap() *Map {
	m := NewMap()
	families := []struct {
		faces  []string
		family string
		italic string
	}{
		{[]string{"Arial", "Helvetica", "Swiss", "Sans Serif", "Screen0"}, "Homerton", "Oblique"},
		{[]string{"Times New Roman", "Times", "Roman", "Serif", "Screen1"}, "Trinity", "Italic"},
		{[]string{"Courier New", "Courier", "Mono", "Screen2"}, "Corpus", "Oblique"},
	}
	for _, f := range families {
		for _, face := range f.faces {
			m.Set(face, false, false, f.family+".Medium")
			m.Set(face, true, false, f.family+".Bold")
			m.Set(face, false, true, f.family+".Medium."+f.italic)
			m.Set(face, true, true, f.family+".Bold."+f.italic)
		}
	}
	return m
}

// Set adds a mapping, replacing any previous one for the same face and
// style.
func (m *Map) Set(face string, bold, italic bool, font string) {
	if m.entries == nil {
		m.entries = make(map[mapKey]string)
	}
	m.entries[mapKey{face: face, bold: bold, italic: italic}] = font
}

// Entries returns all mappings, sorted by face and style.
func (m *Map) Entries() []MapEntry {
	res := make([]MapEntry, 0, len(m.entries))
	for k, font := range m.entries {
		res = append(res, MapEntry{Face: k.face, Bold: k.bold, Italic: k.italic, Font: font})
	}
	slices.SortFunc(res, func(a, b MapEntry) int {
		if c := strings.Compare(a.Face, b.Face); c != 0 {
			return c
		}
		return styleRank(a) - styleRank(b)
	})
	return res
}

func styleRank(e MapEntry) int {
	r := 0
	if e.Bold {
		r += 2
	}
	if e.Italic {
		r++
	}
	return r
}

// Resolve returns the catalogue name for a font description.
func (m *Map) Resolve(face string, screen int, bold, italic bool) string {
	for _, f := range []string{face, "Screen" + strconv.Itoa(screen)} {
		if font, ok := m.lookup(f, bold, italic); ok {
			return font
		}
	}
	if m.Default != "" {
		return m.Default
	}
	return DefaultFont
}

func (m *Map) lookup(face string, bold, italic bool) (string, bool) {
	try := func(b, i bool) (string, bool) {
		font, ok := m.entries[mapKey{face: face, bold: b, italic: i}]
		return font, ok
	}
	if font, ok := try(bold, italic); ok {
		return font, true
	}
	if bold && italic {
		if font, ok := try(true, false); ok {
			return font, true
		}
		if font, ok := try(false, true); ok {
			return font, true
		}
	}
	return try(false, false)
}

// Register adds the font files listed in the map to the catalogue.
// All files are attempted; the errors are joined.
func (m *Map) Register(c *Catalogue) error {
	var errs []error
	for _, f := range m.Files {
		if err := c.AddFile(f.Name, f.Path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// LoadMap reads a font map in YAML format.
func LoadMap(r io.Reader) (*Map, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f mapFile
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("fonts: invalid font map: %w", err)
	}

	m := NewMap()
	if f.Default != "" {
		m.Default = f.Default
	}
	for i, e := range f.Fonts {
		if e.Face == "" || e.Font == "" {
			return nil, fmt.Errorf("fonts: font map entry %d: face and font are required", i+1)
		}
		m.Set(e.Face, e.Bold, e.Italic, e.Font)
	}
	for i, file := range f.Files {
		if file.Name == "" || file.Path == "" {
			return nil, fmt.Errorf("fonts: font file entry %d: name and path are required", i+1)
		}
	}
	m.Files = f.Files
	return m, nil
}

// ReadMapFile reads a font map from a YAML file.
func ReadMapFile(fname string) (*Map, error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	return LoadMap(fd)
}

// Write stores the map in YAML format.
func (m *Map) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	err := enc.Encode(&mapFile{
		Default: m.Default,
		Fonts:   m.Entries(),
		Files:   m.Files,
	})
	if err != nil {
		return err
	}
	return enc.Close()
}
