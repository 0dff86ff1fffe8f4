// Package preview renders card images as ANSI half-block art.
package preview

import (
	"crypto/md5"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// Mode selects the colour escape sequences used.
type Mode int

const (
	TrueColor Mode = iota
	Color256
)

// ToANSI converts img to width columns of half-block characters. Each
// character shows two vertically stacked pixels, so the row count keeps
// the image's aspect ratio.
func ToANSI(img image.Image, width int, mode Mode) string {
	b := img.Bounds()
	if width <= 0 || b.Dx() == 0 || b.Dy() == 0 {
		return ""
	}
	height := Rows(b.Dx(), b.Dy(), width)

	// doubled for the 2x2 sample per cell
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var buffer strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			upper := averageColor(colorAt(resized, x, y), colorAt(resized, x+1, y))
			lower := averageColor(colorAt(resized, x, y+1), colorAt(resized, x+1, y+1))
			buffer.WriteString(cell('▀', upper, lower, mode))
		}
		buffer.WriteString("\n")
	}
	return buffer.String()
}

// Rows returns the number of character rows for an image of w x h pixels
// drawn width columns wide.
func Rows(w, h, width int) int {
	rows := (width*h + w) / (2 * w)
	if rows < 1 {
		rows = 1
	}
	return rows
}

// FileToANSI decodes the image at path and converts it.
func FileToANSI(path string, width int, mode Mode) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	return ToANSI(img, width, mode), nil
}

// Cached returns the ANSI art for the image at path, converting it on the
// first request and storing the result in cacheDir. Entries are keyed by
// path, modification time, width and mode.
func Cached(path, cacheDir string, width int, mode Mode) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s|%d|%d|%d", path, fi.ModTime().UnixNano(), width, mode)
	cachePath := filepath.Join(cacheDir, fmt.Sprintf("%x.ansi", md5.Sum([]byte(key))))

	if data, err := os.ReadFile(cachePath); err == nil {
		return string(data), nil
	}

	art, err := FileToANSI(path, width, mode)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create ANSI cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, []byte(art), 0644); err != nil {
		return "", fmt.Errorf("failed to write ANSI art to file: %w", err)
	}
	return art, nil
}

// colorAt returns the colour at (x, y); transparent and out-of-bounds
// pixels are black.
func colorAt(img image.Image, x, y int) colorful.Color {
	if !(image.Point{X: x, Y: y}).In(img.Bounds()) {
		return colorful.Color{}
	}
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		return colorful.Color{}
	}
	return c
}

func averageColor(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	n := float64(len(colors))
	return colorful.Color{R: r / n, G: g / n, B: b / n}.Clamped()
}

// cell formats one character with foreground and background colours.
func cell(char rune, fg, bg colorful.Color, mode Mode) string {
	if mode == Color256 {
		return fmt.Sprintf("\x1b[38;5;%dm\x1b[48;5;%dm%c\x1b[0m", cube(fg), cube(bg), char)
	}
	r1, g1, b1 := fg.RGB255()
	r2, g2, b2 := bg.RGB255()
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm%c\x1b[0m", r1, g1, b1, r2, g2, b2, char)
}

// cube maps c to the 6x6x6 colour cube of the 256-colour palette.
func cube(c colorful.Color) int {
	q := func(v float64) int { return int(v*5 + 0.5) }
	return 16 + 36*q(c.R) + 6*q(c.G) + q(c.B)
}

// StripANSI removes ANSI escape sequences from a string.
func StripANSI(s string) string {
	var result strings.Builder
	inEscape := false
	for _, c := range s {
		switch {
		case inEscape:
			if c == 'm' {
				inEscape = false
			}
		case c == '\033':
			inEscape = true
		default:
			result.WriteRune(c)
		}
	}
	return result.String()
}

// Wrap wraps text to a specified width.
func Wrap(text string, width int) []string {
	if width < 10 {
		width = 40
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var result []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) <= width {
			line += " " + word
			continue
		}
		result = append(result, line)
		line = word
	}
	return append(result, line)
}

// SideBySide prints art on the left and info lines to its right.
func SideBySide(art string, info []string, spacing int) string {
	artLines := strings.Split(strings.TrimSuffix(art, "\n"), "\n")
	artWidth := 0
	for _, l := range artLines {
		artWidth = max(artWidth, len([]rune(StripANSI(l))))
	}

	var b strings.Builder
	for i := range max(len(artLines), len(info)) {
		b.WriteString("  ")
		pad := artWidth + spacing
		if i < len(artLines) {
			b.WriteString(artLines[i])
			pad -= len([]rune(StripANSI(artLines[i])))
		}
		if i < len(info) {
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(info[i])
		}
		b.WriteString("\n")
	}
	return b.String()
}
