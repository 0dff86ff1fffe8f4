package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var pipBox = Box{MinX: 100, MinY: 100, MaxX: 200, MaxY: 300}

func TestTemplateCounts(t *testing.T) {
	for n := 2; n <= MaxPips; n++ {
		slots, err := Template(n)
		if err != nil {
			t.Fatalf("Template(%d): %v", n, err)
		}
		if len(slots) != n {
			t.Errorf("Template(%d) has %d slots", n, len(slots))
		}

		inverted, centred := 0, 0
		for _, s := range slots {
			if s.Inverted != (s.FY > 0.5) {
				t.Errorf("Template(%d) slot %+v: inverted flag disagrees with fy", n, s)
			}
			if s.FX < 0 || s.FX > 1 || s.FY < 0 || s.FY > 1 {
				t.Errorf("Template(%d) slot %+v outside the box", n, s)
			}
			if s.Inverted {
				inverted++
			}
			if s.FX == 0.5 && s.FY == 0.5 {
				centred++
				if s.Inverted {
					t.Errorf("Template(%d): centre slot is inverted", n)
				}
			}
		}

		if inverted != n/2 {
			t.Errorf("Template(%d): %d inverted, want %d", n, inverted, n/2)
		}
		wantCentred := n % 2
		if centred != wantCentred {
			t.Errorf("Template(%d): %d centre slots, want %d", n, centred, wantCentred)
		}
	}
}

// Each template must look the same after a half-turn of the card.
func TestTemplateHalfTurnSymmetry(t *testing.T) {
	const eps = 1e-9
	for n := 2; n <= MaxPips; n++ {
		slots, _ := Template(n)
		for _, s := range slots {
			found := false
			for _, o := range slots {
				if math.Abs(o.FX-(1-s.FX)) < eps && math.Abs(o.FY-(1-s.FY)) < eps {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("Template(%d): slot %+v has no half-turn partner", n, s)
			}
		}
	}
}

func TestTemplateRange(t *testing.T) {
	for _, n := range []int{-1, 0, 1, 11, 14} {
		if _, err := Template(n); !errors.Is(err, ErrInvalidPipCount) {
			t.Errorf("Template(%d) error = %v, want ErrInvalidPipCount", n, err)
		}
	}
}

func TestTemplateReturnsCopy(t *testing.T) {
	a, _ := Template(4)
	a[0].FX = 42
	b, _ := Template(4)
	if b[0].FX == 42 {
		t.Fatal("Template exposes the shared table")
	}
}

func TestPlaceAce(t *testing.T) {
	got, err := Place(1, pipBox)
	if err != nil {
		t.Fatal(err)
	}
	want := []Placement{{X: 150, Y: 200}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Place(1) mismatch (-want +got):\n%s", diff)
	}
}

func TestPlace(t *testing.T) {
	tests := []struct {
		n    int
		want []Placement
	}{
		{2, []Placement{{X: 150, Y: 100}, {X: 150, Y: 300, Inverted: true}}},
		{4, []Placement{
			{X: 100, Y: 100}, {X: 200, Y: 100},
			{X: 100, Y: 300, Inverted: true}, {X: 200, Y: 300, Inverted: true},
		}},
		{7, []Placement{
			{X: 100, Y: 100}, {X: 200, Y: 100}, {X: 150, Y: 150},
			{X: 150, Y: 250, Inverted: true},
			{X: 100, Y: 300, Inverted: true}, {X: 200, Y: 300, Inverted: true},
			{X: 150, Y: 200},
		}},
	}
	approx := cmpopts.EquateApprox(0, 1e-9)
	for _, tt := range tests {
		got, err := Place(tt.n, pipBox)
		if err != nil {
			t.Fatalf("Place(%d): %v", tt.n, err)
		}
		if diff := cmp.Diff(tt.want, got, approx); diff != "" {
			t.Errorf("Place(%d) mismatch (-want +got):\n%s", tt.n, diff)
		}
	}
}

func TestPlaceInvalid(t *testing.T) {
	for _, n := range []int{0, 11} {
		if _, err := Place(n, pipBox); !errors.Is(err, ErrInvalidPipCount) {
			t.Errorf("Place(%d) error = %v, want ErrInvalidPipCount", n, err)
		}
	}
}
