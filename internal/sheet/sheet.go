// Package sheet lays generated cards out on a single contact sheet.
package sheet

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/skip2/go-qrcode"
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	pdfimage "seehuhn.de/go/pdf/graphics/image"
)

// Options controls the sheet layout.
type Options struct {
	// Columns is the number of cards per row. Defaults to 13.
	Columns int

	// CardWidth and CardHeight are the cell size in pixels. When zero,
	// the size of the first image is used.
	CardWidth, CardHeight int

	// Gap is the spacing between cells and around the sheet.
	Gap int

	Background color.Color

	// QRText, when set, is encoded as a QR code in a footer strip.
	QRText string
	QRSize int
}

func (o *Options) defaults() {
	if o.Columns <= 0 {
		o.Columns = 13
	}
	if o.Background == nil {
		o.Background = color.White
	}
	if o.QRSize <= 0 {
		o.QRSize = 128
	}
}

// Compose reads the images at paths and arranges them row by row.
func Compose(paths []string, opt Options) (*image.NRGBA, error) {
	if len(paths) == 0 {
		return nil, errors.New("no images to compose")
	}
	opt.defaults()

	cards := make([]image.Image, len(paths))
	for i, p := range paths {
		img, err := imaging.Open(p)
		if err != nil {
			return nil, fmt.Errorf("error opening %s: %w", p, err)
		}
		cards[i] = img
	}
	if opt.CardWidth <= 0 || opt.CardHeight <= 0 {
		b := cards[0].Bounds()
		opt.CardWidth, opt.CardHeight = b.Dx(), b.Dy()
	}

	cols := min(opt.Columns, len(cards))
	rows := (len(cards) + opt.Columns - 1) / opt.Columns
	width := cols*(opt.CardWidth+opt.Gap) + opt.Gap
	height := rows*(opt.CardHeight+opt.Gap) + opt.Gap

	var qr image.Image
	if opt.QRText != "" {
		code, err := qrcode.New(opt.QRText, qrcode.Medium)
		if err != nil {
			return nil, fmt.Errorf("error encoding QR code: %w", err)
		}
		qr = code.Image(opt.QRSize)
		height += qr.Bounds().Dy() + opt.Gap
		width = max(width, qr.Bounds().Dx()+2*opt.Gap)
	}

	dst := imaging.New(width, height, opt.Background)
	for i, img := range cards {
		if b := img.Bounds(); b.Dx() != opt.CardWidth || b.Dy() != opt.CardHeight {
			img = imaging.Resize(img, opt.CardWidth, opt.CardHeight, imaging.Lanczos)
		}
		x := opt.Gap + (i%opt.Columns)*(opt.CardWidth+opt.Gap)
		y := opt.Gap + (i/opt.Columns)*(opt.CardHeight+opt.Gap)
		dst = imaging.Overlay(dst, img, image.Pt(x, y), 1)
	}
	if qr != nil {
		b := qr.Bounds()
		dst = imaging.Paste(dst, qr, image.Pt(width-opt.Gap-b.Dx(), height-opt.Gap-b.Dy()))
	}
	return dst, nil
}

// Save writes img to path; the format follows the file extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("error saving sheet: %w", err)
	}
	return nil
}

// margin is the PDF page margin in points.
const margin = 36

// WritePDF writes a single A4 page with img scaled to fit inside the
// margins, centred, in landscape when the image is wider than tall.
func WritePDF(img image.Image, path string) error {
	paper := *document.A4
	b := img.Bounds()
	if b.Dx() > b.Dy() {
		paper.URx, paper.URy = paper.URy, paper.URx
	}

	page, err := document.CreateSinglePage(path, &paper, pdf.V1_7, nil)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", path, err)
	}

	pw, ph := paper.URx-paper.LLx, paper.URy-paper.LLy
	w, h := Fit(float64(b.Dx()), float64(b.Dy()), pw-2*margin, ph-2*margin)
	left := paper.LLx + (pw-w)/2
	bottom := paper.LLy + (ph-h)/2

	page.PushGraphicsState()
	page.Transform(matrix.Matrix{w, 0, 0, h, left, bottom})
	page.DrawXObject(&pdfimage.PNG{Data: img})
	page.PopGraphicsState()

	if err := page.Close(); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}

// Fit scales w x h to the largest size that fits in maxW x maxH.
func Fit(w, h, maxW, maxH float64) (float64, float64) {
	s := min(maxW/w, maxH/h)
	return w * s, h * s
}
