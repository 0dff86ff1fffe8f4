// Package canvas holds vector card drawings.
//
// A Document is an ordered list of primitives (rectangles, text, polygons
// and paths). Renderers append to it through the Canvas interface; Save
// serializes it as SVG. Read parses the subset of SVG that Save produces, so
// that a rasterizer can work from the file on disk.
package canvas

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Canvas accepts drawing primitives and persists the accumulated drawing.
type Canvas interface {
	Rect(r Rect)
	Text(t Text)
	Polygon(p Polygon)
	Path(p Path)
	Save(path string) error
}

// Role tags an element with the part of the card it belongs to.
type Role string

const (
	RoleBackground Role = "background"
	RoleIndex      Role = "index"
	RolePip        Role = "pip"
	RoleAce        Role = "ace"
	RoleCourt      Role = "court"
	RoleJoker      Role = "joker"
	RoleMotif      Role = "motif"
)

// Color is an opaque sRGB colour.
type Color struct {
	R, G, B uint8
}

// RGB returns the colour with the given 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ParseColor parses "#rgb" or "#rrggbb".
func ParseColor(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid colour %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return RGB(r, g, b), nil
}

// Hex returns the colour as "#rrggbb".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return uint32(c.R) * 0x101, uint32(c.G) * 0x101, uint32(c.B) * 0x101, 0xffff
}

// Point is a position in canvas units.
type Point struct {
	X, Y float64
}

// Element is one of Rect, Text, Polygon or Path.
type Element interface {
	ElementRole() Role
}

// Rect is a rectangle with optional rounded corners and outline.
// No outline is drawn when StrokeWidth is zero.
type Rect struct {
	X, Y, W, H  float64
	Radius      float64
	Fill        Color
	Stroke      Color
	StrokeWidth float64
	Role        Role
}

// Anchor is the horizontal alignment of text relative to its position.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Baseline selects which line of the text sits on its position.
type Baseline string

const (
	BaselineAlphabetic Baseline = ""
	BaselineMiddle     Baseline = "middle"
)

// Text is a run of text. A non-zero Rotate turns it by that many degrees
// about its own position.
type Text struct {
	X, Y     float64
	Content  string
	Size     float64
	Fill     Color
	Family   string
	Anchor   Anchor
	Baseline Baseline
	Rotate   float64
	Role     Role
}

// Polygon is a closed, filled polygon.
type Polygon struct {
	Points []Point
	Fill   Color
	Role   Role
}

// Path is a filled outline built from segments.
type Path struct {
	Segments []Segment
	Fill     Color
	Role     Role
}

func (r Rect) ElementRole() Role    { return r.Role }
func (t Text) ElementRole() Role    { return t.Role }
func (p Polygon) ElementRole() Role { return p.Role }
func (p Path) ElementRole() Role    { return p.Role }

// Document is an in-memory vector drawing. It implements Canvas.
type Document struct {
	width, height int
	title         string
	elements      []Element
}

var _ Canvas = (*Document)(nil)

// New returns an empty document of the given size.
func New(width, height int) *Document {
	return &Document{width: width, height: height}
}

// SetTitle sets the document title written into the SVG.
func (d *Document) SetTitle(title string) { d.title = title }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Size returns the document dimensions.
func (d *Document) Size() (width, height int) { return d.width, d.height }

func (d *Document) Rect(r Rect)       { d.elements = append(d.elements, r) }
func (d *Document) Text(t Text)       { d.elements = append(d.elements, t) }
func (d *Document) Polygon(p Polygon) { d.elements = append(d.elements, p) }
func (d *Document) Path(p Path)       { d.elements = append(d.elements, p) }

// Elements returns the elements in drawing order.
func (d *Document) Elements() []Element {
	return append([]Element(nil), d.elements...)
}

// WithRole returns the elements tagged with role, in drawing order.
func (d *Document) WithRole(role Role) []Element {
	var out []Element
	for _, e := range d.elements {
		if e.ElementRole() == role {
			out = append(out, e)
		}
	}
	return out
}

// WriteError reports a failure to persist a document.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
