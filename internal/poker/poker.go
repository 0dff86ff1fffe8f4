// Package poker classifies five-card hands and tabulates how often each
// class occurs in the standard 52-card deck.
package poker

import (
	"errors"
	"fmt"

	"github.com/arcanaland/cardgen/internal/card"
)

// Category is a poker hand class, ordered from weakest to strongest.
type Category int

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// Categories lists every class from strongest to weakest.
var Categories = []Category{
	RoyalFlush, StraightFlush, FourOfAKind, FullHouse, Flush,
	Straight, ThreeOfAKind, TwoPair, OnePair, HighCard,
}

var categoryNames = [...]string{
	HighCard:      "High Card",
	OnePair:       "One Pair",
	TwoPair:       "Two Pair",
	ThreeOfAKind:  "Three of a Kind",
	Straight:      "Straight",
	Flush:         "Flush",
	FullHouse:     "Full House",
	FourOfAKind:   "Four of a Kind",
	StraightFlush: "Straight Flush",
	RoyalFlush:    "Royal Flush",
}

func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ErrInvalidHand is returned for hands holding a joker or a repeated card.
var ErrInvalidHand = errors.New("invalid poker hand")

// Evaluate classifies a hand of five distinct regular cards.
func Evaluate(hand [5]card.Identity) (Category, error) {
	var (
		values [5]int
		suits  [5]int
		seen   = make(map[card.Identity]bool, 5)
	)
	for i, c := range hand {
		if err := c.Validate(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidHand, err)
		}
		if c.IsJoker() {
			return 0, fmt.Errorf("%w: joker", ErrInvalidHand)
		}
		if seen[c] {
			return 0, fmt.Errorf("%w: %s appears twice", ErrInvalidHand, c)
		}
		seen[c] = true
		values[i], suits[i] = value(c.Rank), int(c.Suit)
	}
	return classify(values, suits), nil
}

// value ranks the ace high.
func value(r card.Rank) int {
	if r == card.Ace {
		return 14
	}
	return int(r)
}

const wheel = 1<<14 | 1<<2 | 1<<3 | 1<<4 | 1<<5

// classify takes card values 2..14 and suit indices.
func classify(values, suits [5]int) Category {
	var counts [15]int
	mask := 0
	flush := true
	for i, v := range values {
		counts[v]++
		mask |= 1 << v
		if suits[i] != suits[0] {
			flush = false
		}
	}

	straight, high := false, 0
	for hi := 14; hi >= 6 && !straight; hi-- {
		run := 0x1f << (hi - 4)
		if mask == run {
			straight, high = true, hi
		}
	}
	if mask == wheel {
		straight, high = true, 5
	}

	switch {
	case straight && flush && high == 14:
		return RoyalFlush
	case straight && flush:
		return StraightFlush
	case straight:
		return Straight
	case flush:
		return Flush
	}

	pairs, trips := 0, 0
	for _, n := range counts {
		switch n {
		case 4:
			return FourOfAKind
		case 3:
			trips++
		case 2:
			pairs++
		}
	}
	switch {
	case trips == 1 && pairs == 1:
		return FullHouse
	case trips == 1:
		return ThreeOfAKind
	case pairs == 2:
		return TwoPair
	case pairs == 1:
		return OnePair
	}
	return HighCard
}

// Table holds the number of hands in each class.
type Table [len(categoryNames)]int

// Total returns the number of hands counted.
func (t *Table) Total() int {
	n := 0
	for _, c := range t {
		n += c
	}
	return n
}

// Probability returns the share of hands in class c.
func (t *Table) Probability(c Category) float64 {
	total := t.Total()
	if total == 0 {
		return 0
	}
	return float64(t[c]) / float64(total)
}

// Count classifies every five-card hand of the 52-card deck.
func Count() *Table {
	var values, suits []int
	for _, s := range card.Suits {
		for _, r := range card.Ranks {
			values = append(values, value(r))
			suits = append(suits, int(s))
		}
	}

	t := new(Table)
	n := len(values)
	var v, s [5]int
	for a := 0; a < n; a++ {
		v[0], s[0] = values[a], suits[a]
		for b := a + 1; b < n; b++ {
			v[1], s[1] = values[b], suits[b]
			for c := b + 1; c < n; c++ {
				v[2], s[2] = values[c], suits[c]
				for d := c + 1; d < n; d++ {
					v[3], s[3] = values[d], suits[d]
					for e := d + 1; e < n; e++ {
						v[4], s[4] = values[e], suits[e]
						t[classify(v, s)]++
					}
				}
			}
		}
	}
	return t
}
