package card

import (
	"errors"
	"testing"
)

func TestFileBaseRoundTrip(t *testing.T) {
	seen := make(map[string]Identity)
	ids := []Identity{JokerCard}
	for _, s := range Suits {
		for _, r := range Ranks {
			ids = append(ids, Identity{Rank: r, Suit: s})
		}
	}

	for _, id := range ids {
		base := id.FileBase()
		if prev, ok := seen[base]; ok {
			t.Fatalf("%v and %v share file base %q", prev, id, base)
		}
		seen[base] = id

		got, err := Parse(base)
		if err != nil {
			t.Fatalf("Parse(%q): %v", base, err)
		}
		if got != id {
			t.Errorf("Parse(%q) = %v, want %v", base, got, id)
		}
	}
	if len(seen) != 53 {
		t.Errorf("got %d distinct identities, want 53", len(seen))
	}
}

func TestNewRejectsUnknown(t *testing.T) {
	tests := []struct {
		name string
		rank Rank
		suit Suit
	}{
		{"rank zero", 0, Hearts},
		{"rank past joker", Joker + 1, Hearts},
		{"suit past joker", King, JokerSuit + 1},
		{"joker rank with regular suit", Joker, Spades},
		{"regular rank with joker suit", Seven, JokerSuit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rank, tt.suit)
			if !errors.Is(err, ErrUnknownIdentity) {
				t.Errorf("New(%d, %d) error = %v, want ErrUnknownIdentity", tt.rank, tt.suit, err)
			}
		})
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	for _, base := range []string{"", "11_hearts", "A_stars", "A-hearts", "joker_hearts"} {
		if _, err := Parse(base); !errors.Is(err, ErrUnknownIdentity) {
			t.Errorf("Parse(%q) error = %v, want ErrUnknownIdentity", base, err)
		}
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		id   Identity
		want string
	}{
		{Identity{Queen, Spades}, "Queen of Spades"},
		{Identity{Ace, Hearts}, "Ace of Hearts"},
		{Identity{Ten, Diamonds}, "Ten of Diamonds"},
		{JokerCard, "Joker"},
	}
	for _, tt := range tests {
		if got := tt.id.Name(); got != tt.want {
			t.Errorf("%v.Name() = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestPips(t *testing.T) {
	for _, r := range Ranks {
		want := int(r)
		if r.IsCourt() {
			want = 0
		}
		if got := r.Pips(); got != want {
			t.Errorf("%v.Pips() = %d, want %d", r, got, want)
		}
	}
	if got := Joker.Pips(); got != 0 {
		t.Errorf("Joker.Pips() = %d, want 0", got)
	}
}

func TestGlyphExhaustive(t *testing.T) {
	for s := Hearts; s <= JokerSuit; s++ {
		if g, err := s.Glyph(); err != nil || g == "" {
			t.Errorf("%v.Glyph() = %q, %v", s, g, err)
		}
	}
	if _, err := Suit(42).Glyph(); !errors.Is(err, ErrUnknownIdentity) {
		t.Errorf("Suit(42).Glyph() error = %v, want ErrUnknownIdentity", err)
	}
}
