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

package drawfile

import (
	"io"

	"seehuhn.de/go/psiprint/transform"
)

// Group is a composite object.  The bounding box of a group is the
// combination of the bounding boxes of its children.
//
// A group can carry a clip rectangle.  Children of a clipped group paint
// only inside the clip rectangle; the container format has no clipping,
// so a clipped group is saved like any other group.
type Group struct {
	children []Object
	box      transform.Rect

	clip    transform.Rect
	clipped bool
}

// NewGroup returns an empty group.
func NewGroup() *Group {
	return &Group{}
}

// NewClip returns an empty group which clips its children to r, given in
// internal units.
func NewClip(r transform.Rect) *Group {
	return &Group{clip: r, clipped: true}
}

// Add appends an object to the group.
func (g *Group) Add(o Object) {
	g.children = append(g.children, o)
	g.box = g.box.Combine(o.BBox())
}

// Children returns the objects in the group, in painting order.
func (g *Group) Children() []Object {
	return g.children
}

// Clip returns the clip rectangle of the group, if any.
func (g *Group) Clip() (transform.Rect, bool) {
	return g.clip, g.clipped
}

// Tag implements the Object interface.
func (g *Group) Tag() Tag { return TagGroup }

// BBox implements the Object interface.
func (g *Group) BBox() transform.Rect { return g.box }

// single returns the only child with non-zero size, or nil if the number
// of such children is not one.
func (g *Group) single() Object {
	var res Object
	for _, c := range g.children {
		if c.Size() == 0 {
			continue
		}
		if res != nil {
			return nil
		}
		res = c
	}
	return res
}

// Size implements the Object interface.  A group without content has size
// zero, and a group with exactly one non-empty child is replaced by that
// child when saved.
func (g *Group) Size() int {
	total, n := 0, 0
	var last Object
	for _, c := range g.children {
		if s := c.Size(); s > 0 {
			total += s
			n++
			last = c
		}
	}
	switch n {
	case 0:
		return 0
	case 1:
		return last.Size()
	default:
		return groupHeaderSize + total
	}
}

// Paint implements the Object interface.
func (g *Group) Paint(rc *RenderControl) error {
	if !rc.visible(g.box) {
		return nil
	}
	if !g.clipped {
		return g.paintChildren(rc)
	}
	if !rc.visible(g.clip) {
		return nil
	}

	win := rc.Trans.ToOS.Rect(g.clip, transform.RoundOut).Intersect(rc.Window)
	if !win.Valid() {
		return nil
	}
	inner := *rc
	inner.Clip = rc.Clip.Intersect(g.clip)
	inner.Window = win

	rc.Device.SetWindow(win)
	err := g.paintChildren(&inner)
	rc.Device.SetWindow(rc.Window)
	return err
}

func (g *Group) paintChildren(rc *RenderControl) error {
	for _, c := range g.children {
		if err := c.Paint(rc); err != nil {
			return err
		}
	}
	return nil
}

// Save implements the Object interface.
func (g *Group) Save(w io.Writer, st transform.Transform) error {
	size := g.Size()
	if size == 0 {
		return nil
	}
	if c := g.single(); c != nil {
		return c.Save(w, st)
	}

	var e encoder
	e.header(TagGroup, size, g.box, st)
	e.name("", 12)
	if err := e.flush(w); err != nil {
		return err
	}
	for _, c := range g.children {
		if err := c.Save(w, st); err != nil {
			return err
		}
	}
	return nil
}
