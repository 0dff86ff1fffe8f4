package card

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownIdentity is returned for a rank or suit outside the
// recognized sets, or for a joker rank paired with a regular suit.
var ErrUnknownIdentity = errors.New("unknown card identity")

// Suit is one of the four French suits or the joker pseudo-suit.
type Suit int

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
	JokerSuit
)

// Suits lists the four regular suits in deck order.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

func (s Suit) String() string {
	switch s {
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	case Spades:
		return "spades"
	case JokerSuit:
		return "joker"
	}
	return fmt.Sprintf("Suit(%d)", int(s))
}

// Glyph returns the symbol printed for the suit.
func (s Suit) Glyph() (string, error) {
	switch s {
	case Hearts:
		return "♥", nil
	case Diamonds:
		return "♦", nil
	case Clubs:
		return "♣", nil
	case Spades:
		return "♠", nil
	case JokerSuit:
		return "*", nil
	}
	return "", fmt.Errorf("%w: suit %d", ErrUnknownIdentity, int(s))
}

// Valid reports whether s is a member of the enumeration.
func (s Suit) Valid() bool {
	return s >= Hearts && s <= JokerSuit
}

// ParseSuit parses a suit name as used in file names.
func ParseSuit(name string) (Suit, error) {
	for s := Hearts; s <= JokerSuit; s++ {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: suit %q", ErrUnknownIdentity, name)
}

// Rank is a card rank. Ace counts as one.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Joker
)

// Ranks lists the thirteen regular ranks in deck order.
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

func (r Rank) String() string {
	switch {
	case r == Ace:
		return "A"
	case r >= Two && r <= Ten:
		return fmt.Sprint(int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Joker:
		return "joker"
	}
	return fmt.Sprintf("Rank(%d)", int(r))
}

// Valid reports whether r is a member of the enumeration.
func (r Rank) Valid() bool {
	return r >= Ace && r <= Joker
}

// IsCourt reports whether r is a jack, queen or king.
func (r Rank) IsCourt() bool {
	return r == Jack || r == Queen || r == King
}

// Pips returns the number of suit symbols on a numbered card,
// 1 for the ace and 0 for court cards and the joker.
func (r Rank) Pips() int {
	if r >= Ace && r <= Ten {
		return int(r)
	}
	return 0
}

// ParseRank parses a rank label ("A", "2".."10", "J", "Q", "K", "joker").
func ParseRank(label string) (Rank, error) {
	for r := Ace; r <= Joker; r++ {
		if r.String() == label {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: rank %q", ErrUnknownIdentity, label)
}

var rankNames = map[Rank]string{
	Ace: "ace", Two: "two", Three: "three", Four: "four", Five: "five",
	Six: "six", Seven: "seven", Eight: "eight", Nine: "nine", Ten: "ten",
	Jack: "jack", Queen: "queen", King: "king", Joker: "joker",
}

// Identity determines every visual parameter of a card face.
type Identity struct {
	Rank Rank
	Suit Suit
}

// JokerCard is the identity of the deck's single joker.
var JokerCard = Identity{Rank: Joker, Suit: JokerSuit}

// New returns a validated identity.
func New(rank Rank, suit Suit) (Identity, error) {
	id := Identity{Rank: rank, Suit: suit}
	if err := id.Validate(); err != nil {
		return Identity{}, err
	}
	return id, nil
}

// Validate checks both enumerations and that the joker rank and the
// joker suit only appear together.
func (id Identity) Validate() error {
	if !id.Rank.Valid() {
		return fmt.Errorf("%w: rank %d", ErrUnknownIdentity, int(id.Rank))
	}
	if !id.Suit.Valid() {
		return fmt.Errorf("%w: suit %d", ErrUnknownIdentity, int(id.Suit))
	}
	if (id.Rank == Joker) != (id.Suit == JokerSuit) {
		return fmt.Errorf("%w: %s of %s", ErrUnknownIdentity, id.Rank, id.Suit)
	}
	return nil
}

// IsJoker reports whether id is the joker.
func (id Identity) IsJoker() bool {
	return id.Suit == JokerSuit
}

// FileBase returns the output file name without extension,
// e.g. "10_hearts" or "joker".
func (id Identity) FileBase() string {
	if id.IsJoker() {
		return "joker"
	}
	return id.Rank.String() + "_" + id.Suit.String()
}

func (id Identity) String() string {
	return id.FileBase()
}

// Name returns the display name, e.g. "Queen of Spades".
func (id Identity) Name() string {
	title := cases.Title(language.English)
	if id.IsJoker() {
		return title.String(rankNames[Joker])
	}
	return title.String(rankNames[id.Rank]) + " of " + title.String(id.Suit.String())
}

// Parse is the inverse of FileBase.
func Parse(base string) (Identity, error) {
	if base == "joker" {
		return JokerCard, nil
	}
	rank, suit, ok := strings.Cut(base, "_")
	if !ok {
		return Identity{}, fmt.Errorf("%w: %q", ErrUnknownIdentity, base)
	}
	r, err := ParseRank(rank)
	if err != nil {
		return Identity{}, err
	}
	s, err := ParseSuit(suit)
	if err != nil {
		return Identity{}, err
	}
	return New(r, s)
}
