package deck

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arcanaland/cardgen/internal/card"
)

func TestStandard(t *testing.T) {
	entries := Standard()
	if len(entries) != 54 {
		t.Fatalf("got %d entries, want 54", len(entries))
	}

	seen := make(map[string]bool)
	backs, jokers := 0, 0
	for _, e := range entries {
		if seen[e.ID] {
			t.Errorf("duplicate entry ID %q", e.ID)
		}
		seen[e.ID] = true
		switch {
		case e.Back:
			backs++
		case e.Identity.IsJoker():
			jokers++
		default:
			if err := e.Identity.Validate(); err != nil {
				t.Errorf("%s: %v", e.ID, err)
			}
		}
	}
	if backs != 1 || jokers != 1 {
		t.Errorf("got %d backs and %d jokers, want 1 each", backs, jokers)
	}

	if entries[0].ID != "A_hearts" || entries[52].ID != "joker" || entries[53].ID != BackID {
		t.Errorf("unexpected order: %s ... %s, %s", entries[0].ID, entries[52].ID, entries[53].ID)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		in   string
		want Entry
	}{
		{"7_hearts", Entry{ID: "7_hearts", Name: "Seven of Hearts", Identity: card.Identity{Rank: card.Seven, Suit: card.Hearts}}},
		{"q_spades", Entry{ID: "Q_spades", Name: "Queen of Spades", Identity: card.Identity{Rank: card.Queen, Suit: card.Spades}}},
		{" Joker ", Entry{ID: "joker", Name: "Joker", Identity: card.JokerCard}},
		{"BACK", Entry{ID: "back", Name: "Card Back", Back: true}},
	}
	for _, tt := range tests {
		got, err := Lookup(tt.in)
		if err != nil {
			t.Errorf("Lookup(%q): %v", tt.in, err)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Lookup(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}

	for _, bad := range []string{"", "11_hearts", "7_stars", "joker_hearts"} {
		if _, err := Lookup(bad); !errors.Is(err, card.ErrUnknownIdentity) {
			t.Errorf("Lookup(%q) error = %v, want ErrUnknownIdentity", bad, err)
		}
	}
}

func TestLookupStandardIDs(t *testing.T) {
	for _, e := range Standard() {
		got, err := Lookup(e.ID)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", e.ID, err)
		}
		if got != e {
			t.Errorf("Lookup(%q) = %+v, want %+v", e.ID, got, e)
		}
	}
}

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	if err := WriteManifest(dir, NewManifest(Standard(), 300, 400)); err != nil {
		t.Fatal(err)
	}

	m, err := ReadManifest(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Cards) != 53 {
		t.Errorf("manifest lists %d cards, want 53", len(m.Cards))
	}
	if m.CardBack.PNG != "back.png" {
		t.Errorf("card back = %+v", m.CardBack)
	}
	if m.Deck.Width != 300 || m.Deck.Height != 400 || m.Deck.AspectRatio != 0.75 {
		t.Errorf("deck section = %+v", m.Deck)
	}

	d, err := LoadDeck(dir)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Standard(), d.Entries()); diff != "" {
		t.Errorf("loaded entries mismatch (-want +got):\n%s", diff)
	}

	e, err := d.GetCard("k_clubs")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := d.PNGPath(e), filepath.Join(dir, "K_clubs.png"); got != want {
		t.Errorf("PNGPath = %q, want %q", got, want)
	}
	if got, want := d.SVGPath(e), filepath.Join(dir, "K_clubs.svg"); got != want {
		t.Errorf("SVGPath = %q, want %q", got, want)
	}
}

func TestLoadDeckMissingManifest(t *testing.T) {
	if _, err := LoadDeck(t.TempDir()); err == nil {
		t.Error("LoadDeck succeeded without deck.toml")
	}
}

func TestGetCardNotInDeck(t *testing.T) {
	dir := t.TempDir()
	if err := WriteManifest(dir, NewManifest(Standard()[:2], 300, 400)); err != nil {
		t.Fatal(err)
	}
	d, err := LoadDeck(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := d.GetCard("joker"); err == nil {
		t.Error("GetCard found a card missing from the manifest")
	}
}
