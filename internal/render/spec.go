package render

import (
	"fmt"

	"github.com/arcanaland/cardgen/internal/canvas"
	"github.com/arcanaland/cardgen/internal/card"
	"github.com/arcanaland/cardgen/internal/layout"
)

// Spec holds the card geometry shared by every card of a deck.
type Spec struct {
	Width, Height int

	BorderWidth  float64
	CornerRadius float64

	CornerFontSize      float64
	JokerCornerFontSize float64
	PipFontSize         float64
	AceFontSize         float64

	// PipBox bounds the centres of the pips on numbered cards.
	PipBox layout.Box

	FontFamily string
}

// DefaultSpec returns the 300x400 card geometry.
func DefaultSpec() Spec {
	return Spec{
		Width:               300,
		Height:              400,
		BorderWidth:         5,
		CornerRadius:        20,
		CornerFontSize:      70,
		JokerCornerFontSize: 36,
		PipFontSize:         60,
		AceFontSize:         160,
		PipBox:              layout.Box{MinX: 100, MinY: 100, MaxX: 200, MaxY: 300},
		FontFamily:          "Arial",
	}
}

// Palette holds every colour used on faces and the back.
type Palette struct {
	Background canvas.Color
	Border     canvas.Color

	Hearts   canvas.Color
	Diamonds canvas.Color
	Clubs    canvas.Color
	Spades   canvas.Color
	Joker    canvas.Color

	BackBackground canvas.Color
	BackBorder     canvas.Color
	Motif          canvas.Color
}

// DefaultPalette returns the standard deck colours.
func DefaultPalette() Palette {
	return Palette{
		Background:     canvas.RGB(233, 240, 243),
		Border:         canvas.RGB(94, 148, 167),
		Hearts:         canvas.RGB(228, 27, 73),
		Diamonds:       canvas.RGB(235, 89, 38),
		Clubs:          canvas.RGB(0, 0, 0),
		Spades:         canvas.RGB(0, 0, 0),
		Joker:          canvas.RGB(128, 0, 128),
		BackBackground: canvas.RGB(10, 100, 150),
		BackBorder:     canvas.RGB(255, 255, 255),
		Motif:          canvas.RGB(255, 215, 0),
	}
}

// Scheme is the glyph and ink of one suit.
type Scheme struct {
	Glyph string
	Ink   canvas.Color
}

// Scheme resolves the glyph and ink for s.
func (p Palette) Scheme(s card.Suit) (Scheme, error) {
	glyph, err := s.Glyph()
	if err != nil {
		return Scheme{}, err
	}
	var ink canvas.Color
	switch s {
	case card.Hearts:
		ink = p.Hearts
	case card.Diamonds:
		ink = p.Diamonds
	case card.Clubs:
		ink = p.Clubs
	case card.Spades:
		ink = p.Spades
	case card.JokerSuit:
		ink = p.Joker
	default:
		return Scheme{}, fmt.Errorf("%w: suit %d", card.ErrUnknownIdentity, int(s))
	}
	return Scheme{Glyph: glyph, Ink: ink}, nil
}
