// Package raster converts card SVG files into PNG images.
package raster

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"math"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/arcanaland/cardgen/internal/canvas"
)

// ConversionError reports a failed SVG to PNG conversion.
type ConversionError struct {
	Src, Dst string
	Err      error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("error converting %s to %s: %v", e.Src, e.Dst, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Rasterizer draws canvas documents with gg.
type Rasterizer struct {
	scale  float64
	font   []byte
	logger *slog.Logger

	source *text.FontSource
	mu     sync.Mutex
	faces  map[float64]text.Face
}

// Option configures a Rasterizer.
type Option func(*Rasterizer)

// WithScale sets the number of pixels per canvas unit. The default is 1.
func WithScale(s float64) Option {
	return func(r *Rasterizer) { r.scale = s }
}

// WithFont sets the TrueType or OpenType font used for all text.
// The default is Go Regular.
func WithFont(data []byte) Option {
	return func(r *Rasterizer) { r.font = data }
}

// WithLogger sets the logger for per-file debug output.
func WithLogger(l *slog.Logger) Option {
	return func(r *Rasterizer) { r.logger = l }
}

// New returns a rasterizer. It fails if the font cannot be parsed.
func New(opts ...Option) (*Rasterizer, error) {
	r := &Rasterizer{
		scale:  1,
		font:   goregular.TTF,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		faces:  make(map[float64]text.Face),
	}
	for _, o := range opts {
		o(r)
	}
	if r.scale <= 0 {
		return nil, fmt.Errorf("invalid scale %v", r.scale)
	}
	src, err := text.NewFontSource(r.font)
	if err != nil {
		return nil, fmt.Errorf("error loading font: %w", err)
	}
	r.source = src
	return r, nil
}

// Scale returns the number of pixels per canvas unit.
func (r *Rasterizer) Scale() float64 { return r.scale }

// Rasterize reads the SVG file src and writes a PNG of the same aspect
// ratio to dst. Errors are *ConversionError.
func (r *Rasterizer) Rasterize(src, dst string) error {
	d, err := canvas.Load(src)
	if err != nil {
		return &ConversionError{Src: src, Dst: dst, Err: err}
	}
	dc, err := r.draw(d)
	if err != nil {
		return &ConversionError{Src: src, Dst: dst, Err: err}
	}
	defer dc.Close()
	if err := dc.SavePNG(dst); err != nil {
		return &ConversionError{Src: src, Dst: dst, Err: err}
	}
	w, h := d.Size()
	r.logger.Debug("rasterized", "src", src, "dst", dst,
		"width", int(math.Round(float64(w)*r.scale)), "height", int(math.Round(float64(h)*r.scale)))
	return nil
}

// Render draws d into a new image.
func (r *Rasterizer) Render(d *canvas.Document) (image.Image, error) {
	dc, err := r.draw(d)
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

func (r *Rasterizer) draw(d *canvas.Document) (*gg.Context, error) {
	w, h := d.Size()
	dc := gg.NewContext(r.px(float64(w)), r.px(float64(h)))
	for _, e := range d.Elements() {
		var err error
		switch e := e.(type) {
		case canvas.Rect:
			err = r.drawRect(dc, e)
		case canvas.Polygon:
			err = r.drawPolygon(dc, e)
		case canvas.Path:
			err = r.drawPath(dc, e)
		case canvas.Text:
			err = r.drawText(dc, e)
		}
		if err != nil {
			dc.Close()
			return nil, err
		}
	}
	return dc, nil
}

func (r *Rasterizer) px(v float64) int {
	return int(math.Round(v * r.scale))
}

func (r *Rasterizer) drawRect(dc *gg.Context, e canvas.Rect) error {
	s := r.scale
	dc.DrawRoundedRectangle(e.X*s, e.Y*s, e.W*s, e.H*s, e.Radius*s)
	dc.SetColor(e.Fill)
	if e.StrokeWidth <= 0 {
		return dc.Fill()
	}
	if err := dc.FillPreserve(); err != nil {
		return err
	}
	dc.SetColor(e.Stroke)
	dc.SetLineWidth(e.StrokeWidth * s)
	return dc.Stroke()
}

func (r *Rasterizer) drawPolygon(dc *gg.Context, e canvas.Polygon) error {
	s := r.scale
	for i, p := range e.Points {
		if i == 0 {
			dc.MoveTo(p.X*s, p.Y*s)
		} else {
			dc.LineTo(p.X*s, p.Y*s)
		}
	}
	dc.ClosePath()
	dc.SetColor(e.Fill)
	return dc.Fill()
}

func (r *Rasterizer) drawPath(dc *gg.Context, e canvas.Path) error {
	s := r.scale
	for _, seg := range e.Segments {
		p := seg.Pts
		switch seg.Op {
		case canvas.OpMove:
			dc.MoveTo(p[0].X*s, p[0].Y*s)
		case canvas.OpLine:
			dc.LineTo(p[0].X*s, p[0].Y*s)
		case canvas.OpQuad:
			dc.QuadraticTo(p[0].X*s, p[0].Y*s, p[1].X*s, p[1].Y*s)
		case canvas.OpCubic:
			dc.CubicTo(p[0].X*s, p[0].Y*s, p[1].X*s, p[1].Y*s, p[2].X*s, p[2].Y*s)
		case canvas.OpClose:
			dc.ClosePath()
		}
	}
	dc.SetColor(e.Fill)
	return dc.Fill()
}

func (r *Rasterizer) face(size float64) text.Face {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.faces[size]
	if !ok {
		f = r.source.Face(size)
		r.faces[size] = f
	}
	return f
}

// drawText draws e in device space. gg draws text without applying the
// context matrix, so rotated runs are drawn upright into a scratch image
// which is then turned and composited.
func (r *Rasterizer) drawText(dc *gg.Context, e canvas.Text) error {
	face := r.face(e.Size * r.scale)
	m := face.Metrics()
	width := face.Advance(e.Content)

	ax, ay := e.X*r.scale, e.Y*r.scale
	x := ax
	switch e.Anchor {
	case canvas.AnchorMiddle:
		x -= width / 2
	case canvas.AnchorEnd:
		x -= width
	}
	baseline := ay
	if e.Baseline == canvas.BaselineMiddle {
		baseline += (m.Ascent - m.Descent) / 2
	}

	switch math.Mod(math.Mod(e.Rotate, 360)+360, 360) {
	case 0:
		dc.SetFont(face)
		dc.SetColor(e.Fill)
		dc.DrawString(e.Content, x, baseline)
		return nil
	case 180:
	default:
		return fmt.Errorf("unsupported text rotation %v", e.Rotate)
	}

	bw := int(math.Ceil(width))
	bh := int(math.Ceil(m.Ascent + m.Descent))
	if bw <= 0 || bh <= 0 {
		return nil
	}
	scratch := gg.NewContext(bw, bh)
	defer scratch.Close()
	scratch.SetFont(face)
	scratch.SetColor(e.Fill)
	scratch.DrawString(e.Content, 0, m.Ascent)

	// a half turn about (ax, ay) maps the box corner (x+bw, top+bh)
	// to the new top left
	top := baseline - m.Ascent
	turned := imaging.Rotate180(scratch.Image())
	dc.Push()
	dc.Identity()
	dc.DrawImage(gg.ImageBufFromImage(turned), 2*ax-(x+float64(bw)), 2*ay-(top+float64(bh)))
	dc.Pop()
	return nil
}
