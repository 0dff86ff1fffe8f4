package validator

import (
	"fmt"
	"image"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/arcanaland/cardgen/internal/canvas"
	"github.com/arcanaland/cardgen/internal/deck"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	DeckPath string
	Results  ValidationResults

	manifest *deck.Manifest
}

func NewValidator(deckPath string) *Validator {
	return &Validator{
		DeckPath: deckPath,
		Results:  ValidationResults{},
	}
}

// Validate checks a generated output directory. A missing or unparsable
// manifest is returned as an error; every other problem is recorded in
// the results.
func (v *Validator) Validate() (ValidationResults, error) {
	if err := v.validateDeckToml(); err != nil {
		return v.Results, err
	}

	v.validateEntries()
	v.validateImages()
	v.validateExtraFiles()

	return v.Results, nil
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

func (v *Validator) validateDeckToml() error {
	m, err := deck.ReadManifest(v.DeckPath)
	if err != nil {
		return err
	}
	v.manifest = m

	if m.Deck.ID == "" {
		v.errorf("deck.id is required in %s", deck.ManifestFile)
	}
	if m.Deck.Name == "" {
		v.errorf("deck.name is required in %s", deck.ManifestFile)
	}
	if m.Deck.Version == "" {
		v.errorf("deck.version is required in %s", deck.ManifestFile)
	}
	if m.Deck.SchemaVersion == "" {
		v.errorf("deck.schema_version is required in %s", deck.ManifestFile)
	} else if m.Deck.SchemaVersion != deck.SchemaVersion {
		v.errorf("unsupported schema_version: %s (supported: %s)", m.Deck.SchemaVersion, deck.SchemaVersion)
	}
	if m.Deck.Width <= 0 || m.Deck.Height <= 0 {
		v.errorf("deck.width and deck.height must be positive, got %dx%d", m.Deck.Width, m.Deck.Height)
	}
	if m.CardBack.ID == "" {
		v.errorf("card_back section is missing from %s", deck.ManifestFile)
	}
	return nil
}

// validateEntries checks that the manifest lists every standard entry once
// and that both of its files exist.
func (v *Validator) validateEntries() {
	listed := make(map[string]int)
	for _, c := range v.manifest.Cards {
		e, err := deck.Lookup(c.ID)
		if err != nil {
			v.errorf("unknown card in manifest: %s", c.ID)
			continue
		}
		listed[e.ID]++
	}
	if v.manifest.CardBack.ID != "" {
		listed[deck.BackID]++
	}

	var missing []string
	for _, e := range deck.Standard() {
		switch n := listed[e.ID]; {
		case n == 0 && !e.Back: // a missing back is reported with the manifest
			missing = append(missing, e.ID)
		case n > 1:
			v.errorf("card listed %d times in manifest: %s", n, e.ID)
		}
	}
	if len(missing) > 0 {
		v.errorf("cards missing from manifest: %s", strings.Join(missing, ", "))
	}

	for _, f := range v.files() {
		for _, name := range []string{f.SVG, f.PNG} {
			if name == "" {
				v.errorf("no file names given for %s", f.ID)
				continue
			}
			if _, err := os.Stat(filepath.Join(v.DeckPath, name)); os.IsNotExist(err) {
				v.errorf("image not found for %s: %s", f.ID, name)
			}
		}
	}
}

// validateImages decodes every PNG header and parses every SVG.
func (v *Validator) validateImages() {
	want := v.manifest.Deck
	for _, f := range v.files() {
		if f.PNG != "" {
			v.validatePNG(filepath.Join(v.DeckPath, f.PNG), want.Width, want.Height)
		}
		if f.SVG != "" {
			v.validateSVG(filepath.Join(v.DeckPath, f.SVG), want.AspectRatio)
		}
	}
}

func (v *Validator) validatePNG(path string, width, height int) {
	file, err := os.Open(path)
	if err != nil {
		return // reported as missing
	}
	defer file.Close()

	cfg, format, err := image.DecodeConfig(file)
	if err != nil {
		v.errorf("error decoding %s: %v", filepath.Base(path), err)
		return
	}
	if format != "png" {
		v.errorf("%s is %s, not png", filepath.Base(path), format)
	}
	if width > 0 && height > 0 && (cfg.Width != width || cfg.Height != height) {
		v.errorf("%s is %dx%d, expected %dx%d", filepath.Base(path), cfg.Width, cfg.Height, width, height)
	}
}

func (v *Validator) validateSVG(path string, aspect float64) {
	if _, err := os.Stat(path); err != nil {
		return // reported as missing
	}
	d, err := canvas.Load(path)
	if err != nil {
		v.errorf("error parsing %s: %v", filepath.Base(path), err)
		return
	}
	w, h := d.Size()
	if w <= 0 || h <= 0 {
		v.errorf("%s has empty size %dx%d", filepath.Base(path), w, h)
		return
	}
	if aspect > 0 && math.Abs(float64(w)/float64(h)-aspect) > 0.01 {
		v.warnf("%s aspect ratio %.3f differs from deck aspect ratio %.3f", filepath.Base(path), float64(w)/float64(h), aspect)
	}
	if d.Title() == "" {
		v.warnf("%s has no title", filepath.Base(path))
	}
}

// validateExtraFiles warns about images that belong to no entry.
func (v *Validator) validateExtraFiles() {
	known := map[string]bool{deck.ManifestFile: true, deck.SheetFile: true}
	for _, f := range v.files() {
		known[f.SVG] = true
		known[f.PNG] = true
	}

	entries, err := os.ReadDir(v.DeckPath)
	if err != nil {
		v.errorf("error reading deck directory: %v", err)
		return
	}
	for _, entry := range entries {
		if entry.IsDir() || known[entry.Name()] {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".svg", ".png":
			v.warnf("unexpected image: %s", entry.Name())
		}
	}
}

// files returns the file names of every manifest entry including the back.
func (v *Validator) files() []deck.CardSection {
	out := append([]deck.CardSection(nil), v.manifest.Cards...)
	if b := v.manifest.CardBack; b.ID != "" {
		out = append(out, deck.CardSection{ID: b.ID, SVG: b.SVG, PNG: b.PNG})
	}
	return out
}
