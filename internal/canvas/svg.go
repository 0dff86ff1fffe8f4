package canvas

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo/float"
)

// WriteSVG serializes d as an SVG document. Coordinates keep two decimals.
func (d *Document) WriteSVG(w io.Writer) error {
	ew := &errWriter{w: w}
	s := svg.New(ew)
	s.Start(float64(d.width), float64(d.height))
	if d.title != "" {
		s.Title(d.title)
	}
	for _, e := range d.elements {
		switch e := e.(type) {
		case Rect:
			attrs := []string{attr("fill", e.Fill.Hex())}
			if e.StrokeWidth > 0 {
				attrs = append(attrs, attr("stroke", e.Stroke.Hex()), attr("stroke-width", num(e.StrokeWidth)))
			}
			attrs = append(attrs, class(e.Role))
			s.Roundrect(e.X, e.Y, e.W, e.H, e.Radius, e.Radius, attrs...)
		case Text:
			attrs := []string{
				attr("font-size", num(e.Size)),
				attr("fill", e.Fill.Hex()),
			}
			if e.Family != "" {
				attrs = append(attrs, attr("font-family", e.Family))
			}
			if e.Anchor != "" && e.Anchor != AnchorStart {
				attrs = append(attrs, attr("text-anchor", string(e.Anchor)))
			}
			if e.Baseline != BaselineAlphabetic {
				attrs = append(attrs, attr("dominant-baseline", string(e.Baseline)))
			}
			if e.Rotate != 0 {
				attrs = append(attrs, attr("transform",
					fmt.Sprintf("rotate(%s %s %s)", num(e.Rotate), num(e.X), num(e.Y))))
			}
			attrs = append(attrs, class(e.Role))
			s.Text(e.X, e.Y, e.Content, attrs...)
		case Polygon:
			xs := make([]float64, len(e.Points))
			ys := make([]float64, len(e.Points))
			for i, p := range e.Points {
				xs[i], ys[i] = p.X, p.Y
			}
			s.Polygon(xs, ys, attr("fill", e.Fill.Hex()), class(e.Role))
		case Path:
			s.Path(e.Data(), attr("fill", e.Fill.Hex()), class(e.Role))
		}
	}
	s.End()
	return ew.err
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) Write(p []byte) (int, error) {
	if ew.err != nil {
		return 0, ew.err
	}
	n, err := ew.w.Write(p)
	ew.err = err
	return n, err
}

// Bytes returns the SVG serialization of d. Equal documents give equal bytes.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	d.WriteSVG(&buf)
	return buf.Bytes()
}

// Save writes the SVG serialization of d to the named file.
func (d *Document) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := d.WriteSVG(f); err != nil {
		f.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func attr(name, value string) string {
	return fmt.Sprintf("%s=%q", name, value)
}

func class(r Role) string {
	return attr("class", string(r))
}

func px(v float64) int {
	return int(math.Round(v))
}

func roundTo(v, scale float64) float64 {
	return math.Round(v*scale) / scale
}

// Load reads an SVG file written by Save.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Read parses an SVG document containing rect, text, polygon and path
// elements. Other elements are skipped.
func Read(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	var d *Document
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error parsing svg: %w", err)
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		a := newAttrs(se.Attr)
		if se.Name.Local == "svg" {
			d = New(px(a.float("width")), px(a.float("height")))
			if a.err != nil {
				return nil, a.err
			}
			continue
		}
		if d == nil {
			return nil, fmt.Errorf("element <%s> outside <svg>", se.Name.Local)
		}

		switch se.Name.Local {
		case "title":
			var s string
			if err := dec.DecodeElement(&s, &se); err != nil {
				return nil, fmt.Errorf("error parsing title: %w", err)
			}
			d.title = s
		case "rect":
			rx := a.optFloat("rx")
			d.Rect(Rect{
				X: a.float("x"), Y: a.float("y"),
				W: a.float("width"), H: a.float("height"),
				Radius:      rx,
				Fill:        a.color("fill"),
				Stroke:      a.color("stroke"),
				StrokeWidth: a.optFloat("stroke-width"),
				Role:        Role(a.get("class")),
			})
		case "text":
			var content string
			if err := dec.DecodeElement(&content, &se); err != nil {
				return nil, fmt.Errorf("error parsing text: %w", err)
			}
			t := Text{
				X: a.float("x"), Y: a.float("y"),
				Content:  content,
				Size:     a.float("font-size"),
				Fill:     a.color("fill"),
				Family:   a.get("font-family"),
				Anchor:   Anchor(a.get("text-anchor")),
				Baseline: Baseline(a.get("dominant-baseline")),
				Role:     Role(a.get("class")),
			}
			if t.Anchor == "" {
				t.Anchor = AnchorStart
			}
			if tr := a.get("transform"); tr != "" {
				t.Rotate, err = parseRotate(tr)
				if err != nil {
					return nil, err
				}
			}
			d.Text(t)
		case "polygon":
			pts, err := parsePoints(a.get("points"))
			if err != nil {
				return nil, err
			}
			d.Polygon(Polygon{Points: pts, Fill: a.color("fill"), Role: Role(a.get("class"))})
		case "path":
			segs, err := ParsePathData(a.get("d"))
			if err != nil {
				return nil, err
			}
			d.Path(Path{Segments: segs, Fill: a.color("fill"), Role: Role(a.get("class"))})
		}
		if a.err != nil {
			return nil, fmt.Errorf("<%s>: %w", se.Name.Local, a.err)
		}
	}
	if d == nil {
		return nil, errors.New("no <svg> element")
	}
	return d, nil
}

// attrs looks up XML attributes and keeps the first conversion error.
type attrs struct {
	m   map[string]string
	err error
}

func newAttrs(list []xml.Attr) *attrs {
	m := make(map[string]string, len(list))
	for _, a := range list {
		m[a.Name.Local] = a.Value
	}
	return &attrs{m: m}
}

func (a *attrs) get(name string) string { return a.m[name] }

func (a *attrs) float(name string) float64 {
	s, ok := a.m[name]
	if !ok {
		if a.err == nil {
			a.err = fmt.Errorf("missing attribute %s", name)
		}
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil && a.err == nil {
		a.err = fmt.Errorf("attribute %s: %w", name, err)
	}
	return v
}

func (a *attrs) optFloat(name string) float64 {
	if _, ok := a.m[name]; !ok {
		return 0
	}
	return a.float(name)
}

func (a *attrs) color(name string) Color {
	s, ok := a.m[name]
	if !ok || s == "none" {
		return Color{}
	}
	c, err := ParseColor(s)
	if err != nil && a.err == nil {
		a.err = err
	}
	return c
}

// parseRotate parses "rotate(angle cx cy)" and returns the angle.
func parseRotate(s string) (float64, error) {
	inner, ok := strings.CutPrefix(strings.TrimSpace(s), "rotate(")
	if !ok || !strings.HasSuffix(inner, ")") {
		return 0, fmt.Errorf("unsupported transform %q", s)
	}
	f := strings.Fields(strings.ReplaceAll(strings.TrimSuffix(inner, ")"), ",", " "))
	if len(f) != 1 && len(f) != 3 {
		return 0, fmt.Errorf("unsupported transform %q", s)
	}
	angle, err := strconv.ParseFloat(f[0], 64)
	if err != nil {
		return 0, fmt.Errorf("transform %q: %w", s, err)
	}
	return angle, nil
}

// parsePoints parses a polygon point list "x1,y1 x2,y2 ...".
func parsePoints(s string) ([]Point, error) {
	var pts []Point
	for _, pair := range strings.Fields(s) {
		xs, ys, ok := strings.Cut(pair, ",")
		if !ok {
			return nil, fmt.Errorf("invalid point %q", pair)
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid point %q: %w", pair, err)
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid point %q: %w", pair, err)
		}
		pts = append(pts, Point{x, y})
	}
	return pts, nil
}
