// Package layout computes where suit symbols go on numbered cards.
//
// Pip positions come from a fixed table of templates, one per count from
// 2 to 10. Each template slot is a pair of fractions of the pip box plus an
// inversion flag: slots in the lower half of the card are drawn rotated by
// 180 degrees so that they read correctly from the opposite end. The ace is
// not a table entry; it is a single oversized symbol in the centre of the box.
package layout

import (
	"errors"
	"fmt"
)

// ErrInvalidPipCount is returned for counts outside the supported range.
var ErrInvalidPipCount = errors.New("invalid pip count")

// MaxPips is the largest count with a template.
const MaxPips = 10

// Slot is one entry of a template, in fractions of the pip box.
type Slot struct {
	FX, FY   float64
	Inverted bool
}

// Box is an axis-aligned rectangle in canvas units.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of b.
func (b Box) Width() float64 { return b.MaxX - b.MinX }

// Height returns the vertical extent of b.
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// Center returns the midpoint of b.
func (b Box) Center() (x, y float64) {
	return b.MinX + b.Width()/2, b.MinY + b.Height()/2
}

// Placement is a pip position in canvas units.
type Placement struct {
	X, Y     float64
	Inverted bool
}

func up(fx, fy float64) Slot   { return Slot{FX: fx, FY: fy} }
func down(fx, fy float64) Slot { return Slot{FX: fx, FY: fy, Inverted: true} }

var (
	corners = []Slot{up(0, 0), up(1, 0), down(0, 1), down(1, 1)}
	center  = up(0.5, 0.5)
	six     = []Slot{up(0, 0), up(1, 0), up(0.5, 0.25), down(0.5, 0.75), down(0, 1), down(1, 1)}
	eight   = []Slot{
		up(0, 0), up(0, 1.0/3), down(0, 2.0/3), down(0, 1),
		up(1, 0), up(1, 1.0/3), down(1, 2.0/3), down(1, 1),
	}
)

func join(parts ...[]Slot) []Slot {
	var out []Slot
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

// templates is indexed by pip count; entries 0 and 1 are unused.
var templates = [MaxPips + 1][]Slot{
	2:  {up(0.5, 0), down(0.5, 1)},
	3:  {up(0.5, 0), center, down(0.5, 1)},
	4:  corners,
	5:  join(corners, []Slot{center}),
	6:  six,
	7:  join(six, []Slot{center}),
	8:  eight,
	9:  join(eight, []Slot{center}),
	10: join(eight, []Slot{up(0.5, 1.0/6), down(0.5, 5.0/6)}),
}

// Template returns a copy of the template for n pips, 2 <= n <= 10.
func Template(n int) ([]Slot, error) {
	if n < 2 || n > MaxPips {
		return nil, fmt.Errorf("%w: no template for %d", ErrInvalidPipCount, n)
	}
	return append([]Slot(nil), templates[n]...), nil
}

// Place returns n placements inside box. A count of one yields the single
// centred position used for aces; counts from 2 to 10 are mapped from
// their template.
func Place(n int, box Box) ([]Placement, error) {
	if n == 1 {
		x, y := box.Center()
		return []Placement{{X: x, Y: y}}, nil
	}
	slots, err := Template(n)
	if err != nil {
		return nil, err
	}
	out := make([]Placement, len(slots))
	for i, s := range slots {
		out[i] = Placement{
			X:        box.MinX + s.FX*box.Width(),
			Y:        box.MinY + s.FY*box.Height(),
			Inverted: s.Inverted,
		}
	}
	return out, nil
}
