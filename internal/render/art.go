package render

import (
	"github.com/arcanaland/cardgen/internal/canvas"
	"github.com/arcanaland/cardgen/internal/card"
)

// courtArt returns the symbolic figure for a jack, queen or king as a
// single path. Subpaths do not overlap.
func courtArt(rank card.Rank, ink canvas.Color) canvas.Path {
	p := canvas.Path{Fill: ink, Role: canvas.RoleCourt}
	switch rank {
	case card.Jack:
		// pointed cap, face, crossed swords
		p = p.MoveTo(110, 170).LineTo(150, 115).LineTo(190, 170).Close()
		p = p.Circle(150, 215, 35)
		p = p.MoveTo(105, 250).LineTo(115, 245).LineTo(195, 300).LineTo(190, 305).Close()
		p = p.MoveTo(110, 305).LineTo(105, 300).LineTo(185, 245).LineTo(195, 250).Close()
	case card.Queen:
		// tiara with jewel, face, pendant
		p = p.MoveTo(110, 160).QuadTo(150, 120, 190, 160).LineTo(180, 170).QuadTo(150, 140, 120, 170).Close()
		p = p.Circle(150, 122, 8)
		p = p.Circle(150, 215, 35)
		p = p.Circle(150, 275, 10)
	case card.King:
		// crown, face, beard
		p = p.MoveTo(100, 170).LineTo(100, 120).LineTo(125, 145).LineTo(150, 110).
			LineTo(175, 145).LineTo(200, 120).LineTo(200, 170).Close()
		p = p.Circle(150, 215, 35)
		p = p.MoveTo(115, 260).LineTo(185, 260).LineTo(170, 295).LineTo(150, 305).LineTo(130, 295).Close()
	}
	return p
}

// jokerArt returns a jester's hat with three bells.
func jokerArt(ink canvas.Color) canvas.Path {
	p := canvas.Path{Fill: ink, Role: canvas.RoleJoker}
	p = p.MoveTo(90, 250).LineTo(105, 160).LineTo(130, 215).LineTo(150, 140).
		LineTo(170, 215).LineTo(195, 160).LineTo(210, 250).Close()
	p = p.Circle(105, 148, 10)
	p = p.Circle(150, 128, 10)
	p = p.Circle(195, 148, 10)
	p = p.Rect(85, 258, 130, 22)
	return p
}
