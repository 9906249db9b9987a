package pattern

import (
	"errors"
	"sort"
)

var (
	//ErrNotFound is returned when a pattern source or destination can't be opened
	ErrNotFound = errors.New("pattern: resource not found")
	//ErrUnwritable is returned when a destination exists but can't be written
	ErrUnwritable = errors.New("pattern: resource not writable")
)

//Coordinate is the cell position on the unbounded plane
type Coordinate struct {
	X int
	Y int
}

//LiveSet is the sparse set of alive cells
type LiveSet map[Coordinate]struct{}

//Bounds is the minimal rectangle covering every live cell, both corners are inclusive
type Bounds struct {
	MinX int
	MinY int
	MaxX int
	MaxY int
}

//Document is the canonical in-memory form of a pattern file
type Document struct {
	State       LiveSet
	Rule        RuleSet
	Name        string
	Author      string
	Description []string
}

//New creates an empty document with the standard rule
func New() *Document {
	return &Document{
		State: LiveSet{},
		Rule:  StandardRule,
	}
}

//Clone returns a deep copy of the document, the copy shares nothing with d
func (d *Document) Clone() *Document {
	c := *d
	c.State = d.State.Clone()
	if d.Description != nil {
		c.Description = append([]string(nil), d.Description...)
	}
	return &c
}

//NewLiveSet builds the set from the list of coordinates
func NewLiveSet(cells ...Coordinate) LiveSet {
	s := make(LiveSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

func (s LiveSet) Add(x int, y int) {
	s[Coordinate{x, y}] = struct{}{}
}

func (s LiveSet) Remove(x int, y int) {
	delete(s, Coordinate{x, y})
}

func (s LiveSet) Has(x int, y int) bool {
	_, ok := s[Coordinate{x, y}]
	return ok
}

//Toggle inverses the cell state at point x, y
func (s LiveSet) Toggle(x int, y int) {
	if s.Has(x, y) {
		s.Remove(x, y)
	} else {
		s.Add(x, y)
	}
}

func (s LiveSet) Len() int {
	return len(s)
}

func (s LiveSet) Clone() LiveSet {
	c := make(LiveSet, len(s))
	for k := range s {
		c[k] = struct{}{}
	}
	return c
}

//Equal reports whether both sets contain exactly the same cells
func (s LiveSet) Equal(o LiveSet) bool {
	if len(s) != len(o) {
		return false
	}
	for k := range s {
		if _, ok := o[k]; !ok {
			return false
		}
	}
	return true
}

//Translate returns a copy of the set moved by dx, dy
func (s LiveSet) Translate(dx int, dy int) LiveSet {
	c := make(LiveSet, len(s))
	for k := range s {
		c[Coordinate{k.X + dx, k.Y + dy}] = struct{}{}
	}
	return c
}

//Sorted returns the cells in row-major order
func (s LiveSet) Sorted() []Coordinate {
	cells := make([]Coordinate, 0, len(s))
	for k := range s {
		cells = append(cells, k)
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
	return cells
}

//Bounds calculates the bounding box of the set
//ok is false for the empty set, there is no box to return then
func (s LiveSet) Bounds() (b Bounds, ok bool) {
	for c := range s {
		if !ok {
			b = Bounds{c.X, c.Y, c.X, c.Y}
			ok = true
			continue
		}
		if c.X < b.MinX {
			b.MinX = c.X
		}
		if c.X > b.MaxX {
			b.MaxX = c.X
		}
		if c.Y < b.MinY {
			b.MinY = c.Y
		}
		if c.Y > b.MaxY {
			b.MaxY = c.Y
		}
	}
	return
}

func (b Bounds) Width() int {
	return b.MaxX - b.MinX + 1
}

func (b Bounds) Height() int {
	return b.MaxY - b.MinY + 1
}
