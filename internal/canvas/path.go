package canvas

import (
	"fmt"
	"strconv"
	"strings"

	vector "github.com/tdewolff/canvas"
)

// Op is an absolute SVG path command.
type Op byte

const (
	OpMove  Op = 'M'
	OpLine  Op = 'L'
	OpQuad  Op = 'Q'
	OpCubic Op = 'C'
	OpClose Op = 'Z'
)

// Segment is one path command with its points.
type Segment struct {
	Op  Op
	Pts []Point
}

// circleK places cubic control points for a quarter circle.
const circleK = 0.5522847498307936

func (p Path) add(op Op, pts ...Point) Path {
	p.Segments = append(append([]Segment(nil), p.Segments...), Segment{Op: op, Pts: pts})
	return p
}

// MoveTo starts a new subpath.
func (p Path) MoveTo(x, y float64) Path { return p.add(OpMove, Point{x, y}) }

// LineTo adds a straight segment.
func (p Path) LineTo(x, y float64) Path { return p.add(OpLine, Point{x, y}) }

// QuadTo adds a quadratic Bézier segment.
func (p Path) QuadTo(cx, cy, x, y float64) Path {
	return p.add(OpQuad, Point{cx, cy}, Point{x, y})
}

// CubicTo adds a cubic Bézier segment.
func (p Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) Path {
	return p.add(OpCubic, Point{c1x, c1y}, Point{c2x, c2y}, Point{x, y})
}

// Close closes the current subpath.
func (p Path) Close() Path { return p.add(OpClose) }

// Circle adds a closed circular subpath made of four cubic segments.
func (p Path) Circle(cx, cy, r float64) Path {
	k := r * circleK
	return p.MoveTo(cx+r, cy).
		CubicTo(cx+r, cy+k, cx+k, cy+r, cx, cy+r).
		CubicTo(cx-k, cy+r, cx-r, cy+k, cx-r, cy).
		CubicTo(cx-r, cy-k, cx-k, cy-r, cx, cy-r).
		CubicTo(cx+k, cy-r, cx+r, cy-k, cx+r, cy).
		Close()
}

// Rect adds a closed rectangular subpath.
func (p Path) Rect(x, y, w, h float64) Path {
	return p.MoveTo(x, y).LineTo(x+w, y).LineTo(x+w, y+h).LineTo(x, y+h).Close()
}

// Data returns the SVG path data, e.g. "M150 100 L130 220 Z".
func (p Path) Data() string {
	var b strings.Builder
	for i, s := range p.Segments {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(byte(s.Op))
		for j, pt := range s.Pts {
			if j > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(num(pt.X))
			b.WriteByte(' ')
			b.WriteString(num(pt.Y))
		}
	}
	return b.String()
}

// ParsePathData parses SVG path data. Relative, shorthand and arc commands
// are accepted and come back as absolute M, L, Q, C and Z segments.
func ParsePathData(d string) ([]Segment, error) {
	if strings.TrimSpace(d) == "" {
		return nil, nil
	}
	p, err := vector.ParseSVGPath(d)
	if err != nil {
		return nil, fmt.Errorf("path data %q: %w", d, err)
	}

	var segs []Segment
	scanner := p.ReplaceArcs().Scanner()
	for scanner.Scan() {
		end := Point{scanner.End().X, scanner.End().Y}
		switch scanner.Cmd() {
		case vector.MoveToCmd:
			segs = append(segs, Segment{Op: OpMove, Pts: []Point{end}})
		case vector.LineToCmd:
			segs = append(segs, Segment{Op: OpLine, Pts: []Point{end}})
		case vector.QuadToCmd:
			cp := scanner.CP1()
			segs = append(segs, Segment{Op: OpQuad, Pts: []Point{{cp.X, cp.Y}, end}})
		case vector.CubeToCmd:
			cp1, cp2 := scanner.CP1(), scanner.CP2()
			segs = append(segs, Segment{Op: OpCubic, Pts: []Point{{cp1.X, cp1.Y}, {cp2.X, cp2.Y}, end}})
		case vector.CloseCmd:
			segs = append(segs, Segment{Op: OpClose})
		default:
			return nil, fmt.Errorf("path data %q: unsupported command %v", d, scanner.Cmd())
		}
	}
	return segs, nil
}

// num formats a coordinate with at most two decimals.
func num(v float64) string {
	return strconv.FormatFloat(roundTo(v, 100), 'f', -1, 64)
}
