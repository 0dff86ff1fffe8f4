package poker

import (
	"errors"
	"math"
	"testing"

	"github.com/arcanaland/cardgen/internal/card"
)

func hand(t *testing.T, ids ...string) [5]card.Identity {
	t.Helper()
	var h [5]card.Identity
	for i, s := range ids {
		id, err := card.Parse(s)
		if err != nil {
			t.Fatal(err)
		}
		h[i] = id
	}
	return h
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		cards []string
		want  Category
	}{
		{[]string{"10_spades", "J_spades", "Q_spades", "K_spades", "A_spades"}, RoyalFlush},
		{[]string{"A_hearts", "2_hearts", "3_hearts", "4_hearts", "5_hearts"}, StraightFlush},
		{[]string{"9_clubs", "10_clubs", "J_clubs", "Q_clubs", "K_clubs"}, StraightFlush},
		{[]string{"7_hearts", "7_diamonds", "7_clubs", "7_spades", "2_hearts"}, FourOfAKind},
		{[]string{"7_hearts", "7_diamonds", "7_clubs", "K_spades", "K_hearts"}, FullHouse},
		{[]string{"2_diamonds", "5_diamonds", "9_diamonds", "J_diamonds", "K_diamonds"}, Flush},
		{[]string{"A_hearts", "2_clubs", "3_hearts", "4_spades", "5_hearts"}, Straight},
		{[]string{"10_hearts", "J_clubs", "Q_hearts", "K_spades", "A_diamonds"}, Straight},
		{[]string{"J_clubs", "Q_hearts", "K_spades", "A_diamonds", "2_hearts"}, HighCard},
		{[]string{"4_hearts", "4_clubs", "4_spades", "9_spades", "K_hearts"}, ThreeOfAKind},
		{[]string{"4_hearts", "4_clubs", "9_spades", "9_hearts", "K_hearts"}, TwoPair},
		{[]string{"4_hearts", "4_clubs", "8_spades", "9_hearts", "K_hearts"}, OnePair},
		{[]string{"2_hearts", "4_clubs", "8_spades", "9_hearts", "K_hearts"}, HighCard},
	}
	for _, tt := range tests {
		got, err := Evaluate(hand(t, tt.cards...))
		if err != nil {
			t.Errorf("%v: %v", tt.cards, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%v = %s, want %s", tt.cards, got, tt.want)
		}
	}
}

func TestEvaluateInvalid(t *testing.T) {
	tests := [][5]card.Identity{
		hand(t, "2_hearts", "2_hearts", "3_clubs", "4_clubs", "5_clubs"),
		hand(t, "joker", "2_hearts", "3_clubs", "4_clubs", "5_clubs"),
		{{Rank: card.Joker, Suit: card.Hearts}},
	}
	for _, h := range tests {
		if _, err := Evaluate(h); !errors.Is(err, ErrInvalidHand) {
			t.Errorf("Evaluate(%v) error = %v, want ErrInvalidHand", h, err)
		}
	}
}

func TestCount(t *testing.T) {
	if testing.Short() {
		t.Skip("enumerates 2,598,960 hands")
	}
	want := map[Category]int{
		RoyalFlush:    4,
		StraightFlush: 36,
		FourOfAKind:   624,
		FullHouse:     3744,
		Flush:         5108,
		Straight:      10200,
		ThreeOfAKind:  54912,
		TwoPair:       123552,
		OnePair:       1098240,
		HighCard:      1302540,
	}
	table := Count()
	for c, n := range want {
		if table[c] != n {
			t.Errorf("%s: %d hands, want %d", c, table[c], n)
		}
	}
	if table.Total() != 2598960 {
		t.Errorf("total = %d, want 2598960", table.Total())
	}
	if p := table.Probability(OnePair); math.Abs(p-0.422569) > 1e-6 {
		t.Errorf("P(one pair) = %v", p)
	}
}

func TestCategoryString(t *testing.T) {
	if len(Categories) != len(categoryNames) {
		t.Fatalf("Categories lists %d classes, want %d", len(Categories), len(categoryNames))
	}
	for _, c := range Categories {
		if c.String() == "" {
			t.Errorf("category %d has no name", int(c))
		}
	}
	if got := Category(42).String(); got != "Category(42)" {
		t.Errorf("String() = %q", got)
	}
}
