// Package render draws card faces and the card back onto a canvas.
package render

import (
	"github.com/arcanaland/cardgen/internal/canvas"
	"github.com/arcanaland/cardgen/internal/card"
	"github.com/arcanaland/cardgen/internal/layout"
)

// Renderer draws cards with a fixed geometry and palette.
type Renderer struct {
	spec    Spec
	palette Palette
}

// New returns a renderer for the given geometry and palette.
func New(spec Spec, palette Palette) *Renderer {
	return &Renderer{spec: spec, palette: palette}
}

// Spec returns the renderer's card geometry.
func (r *Renderer) Spec() Spec { return r.spec }

// Face returns a new document holding the face of id.
func (r *Renderer) Face(id card.Identity) (*canvas.Document, error) {
	d := canvas.New(r.spec.Width, r.spec.Height)
	d.SetTitle(id.Name())
	if err := r.DrawFace(d, id); err != nil {
		return nil, err
	}
	return d, nil
}

// DrawFace draws the face of id. Nothing is drawn if id is invalid.
func (r *Renderer) DrawFace(c canvas.Canvas, id card.Identity) error {
	if err := id.Validate(); err != nil {
		return err
	}
	scheme, err := r.palette.Scheme(id.Suit)
	if err != nil {
		return err
	}

	s := r.spec
	c.Rect(canvas.Rect{
		X: s.BorderWidth, Y: s.BorderWidth,
		W:           float64(s.Width) - 2*s.BorderWidth,
		H:           float64(s.Height) - 2*s.BorderWidth,
		Radius:      s.CornerRadius,
		Fill:        r.palette.Background,
		Stroke:      r.palette.Border,
		StrokeWidth: s.BorderWidth,
		Role:        canvas.RoleBackground,
	})

	size := s.CornerFontSize
	if id.IsJoker() {
		size = s.JokerCornerFontSize
	}
	r.drawIndex(c, id.Rank.String(), scheme, size, size+s.BorderWidth)
	r.drawIndex(c, scheme.Glyph, scheme, size, 2*size+s.BorderWidth)

	switch {
	case id.IsJoker():
		c.Path(jokerArt(r.palette.Joker))
	case id.Rank.IsCourt():
		c.Path(courtArt(id.Rank, scheme.Ink))
	default:
		return r.drawPips(c, id.Rank.Pips(), scheme)
	}
	return nil
}

// drawIndex draws one corner label top left and its half-turn image
// bottom right.
func (r *Renderer) drawIndex(c canvas.Canvas, label string, scheme Scheme, size, baseline float64) {
	s := r.spec
	x := s.CornerRadius + s.BorderWidth
	t := canvas.Text{
		X: x, Y: baseline,
		Content: label,
		Size:    size,
		Fill:    scheme.Ink,
		Family:  s.FontFamily,
		Anchor:  canvas.AnchorStart,
		Role:    canvas.RoleIndex,
	}
	c.Text(t)

	t.X = float64(s.Width) - x
	t.Y = float64(s.Height) - baseline
	t.Rotate = 180
	c.Text(t)
}

func (r *Renderer) drawPips(c canvas.Canvas, n int, scheme Scheme) error {
	places, err := layout.Place(n, r.spec.PipBox)
	if err != nil {
		return err
	}
	size, role := r.spec.PipFontSize, canvas.RolePip
	if n == 1 {
		size, role = r.spec.AceFontSize, canvas.RoleAce
	}
	for _, p := range places {
		t := canvas.Text{
			X: p.X, Y: p.Y,
			Content:  scheme.Glyph,
			Size:     size,
			Fill:     scheme.Ink,
			Family:   r.spec.FontFamily,
			Anchor:   canvas.AnchorMiddle,
			Baseline: canvas.BaselineMiddle,
			Role:     role,
		}
		if p.Inverted {
			t.Rotate = 180
		}
		c.Text(t)
	}
	return nil
}

// Back returns a new document holding the card back.
func (r *Renderer) Back() *canvas.Document {
	d := canvas.New(r.spec.Width, r.spec.Height)
	d.SetTitle("Card Back")
	r.DrawBack(d)
	return d
}

// DrawBack draws the back design: a framed field with a central rhombus
// and four smaller rhombi around it.
func (r *Renderer) DrawBack(c canvas.Canvas) {
	const (
		frame  = 10
		large  = 50
		small  = 30
		offset = 60
	)
	s := r.spec
	c.Rect(canvas.Rect{
		W: float64(s.Width), H: float64(s.Height),
		Radius:      s.CornerRadius,
		Fill:        r.palette.BackBackground,
		Stroke:      r.palette.BackBorder,
		StrokeWidth: frame,
		Role:        canvas.RoleBackground,
	})

	cx, cy := float64(s.Width/2), float64(s.Height/2)
	c.Polygon(rhombus(cx, cy, large, r.palette.Motif))
	for _, d := range [][2]float64{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		c.Polygon(rhombus(cx+d[0]*offset, cy+d[1]*offset, small, r.palette.Motif))
	}
}

func rhombus(x, y, half float64, fill canvas.Color) canvas.Polygon {
	return canvas.Polygon{
		Points: []canvas.Point{{X: x, Y: y - half}, {X: x + half, Y: y}, {X: x, Y: y + half}, {X: x - half, Y: y}},
		Fill:   fill,
		Role:   canvas.RoleMotif,
	}
}
