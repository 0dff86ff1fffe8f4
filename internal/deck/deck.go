package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/cardgen/internal/card"
)

// ManifestFile is the name of the manifest written next to the images.
const ManifestFile = "deck.toml"

// SchemaVersion is the manifest format version.
const SchemaVersion = "1"

// SheetFile is the default name of the contact sheet written next to the
// images.
const SheetFile = "sheet.png"

// BackID is the entry ID of the shared card back.
const BackID = "back"

// Entry is one image of the deck: a face or the back.
type Entry struct {
	ID       string
	Name     string
	Identity card.Identity
	Back     bool
}

// Standard returns the 54 entries of a generated deck: the 52 regular
// cards suit by suit, then the joker, then the back.
func Standard() []Entry {
	entries := make([]Entry, 0, len(card.Suits)*len(card.Ranks)+2)
	for _, s := range card.Suits {
		for _, r := range card.Ranks {
			entries = append(entries, faceEntry(card.Identity{Rank: r, Suit: s}))
		}
	}
	entries = append(entries, faceEntry(card.JokerCard), backEntry())
	return entries
}

func faceEntry(id card.Identity) Entry {
	return Entry{ID: id.FileBase(), Name: id.Name(), Identity: id}
}

func backEntry() Entry {
	return Entry{ID: BackID, Name: "Card Back", Back: true}
}

// Lookup finds a standard entry by ID. IDs are matched case-insensitively.
func Lookup(id string) (Entry, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	if id == BackID {
		return backEntry(), nil
	}
	// rank labels are upper case in IDs
	if rank, suit, ok := strings.Cut(id, "_"); ok {
		id = strings.ToUpper(rank) + "_" + suit
	}
	ident, err := card.Parse(id)
	if err != nil {
		return Entry{}, fmt.Errorf("card not found: %w", err)
	}
	return faceEntry(ident), nil
}

// Deck is a generated deck loaded from its manifest.
type Deck struct {
	ID      string
	Name    string
	Version string
	Path    string

	Width, Height int

	entries []Entry
	byID    map[string]Entry
	files   map[string]CardSection
}

// LoadDeck loads a generated deck from a directory.
func LoadDeck(dir string) (*Deck, error) {
	m, err := ReadManifest(dir)
	if err != nil {
		return nil, err
	}

	d := &Deck{
		ID:      m.Deck.ID,
		Name:    m.Deck.Name,
		Version: m.Deck.Version,
		Path:    dir,
		Width:   m.Deck.Width,
		Height:  m.Deck.Height,
		byID:    make(map[string]Entry),
		files:   make(map[string]CardSection),
	}

	for _, c := range m.Cards {
		e, err := Lookup(c.ID)
		if err != nil {
			return nil, fmt.Errorf("error loading card %q: %w", c.ID, err)
		}
		if c.Name != "" {
			e.Name = c.Name
		}
		d.add(e, c)
	}
	if m.CardBack.ID != "" {
		e := backEntry()
		d.add(e, CardSection{ID: e.ID, Name: e.Name, SVG: m.CardBack.SVG, PNG: m.CardBack.PNG})
	}
	return d, nil
}

func (d *Deck) add(e Entry, c CardSection) {
	if _, dup := d.byID[e.ID]; !dup {
		d.entries = append(d.entries, e)
	}
	d.byID[e.ID] = e
	d.files[e.ID] = c
}

// Entries returns the deck's entries in manifest order.
func (d *Deck) Entries() []Entry {
	return append([]Entry(nil), d.entries...)
}

// GetCard gets an entry by its ID.
func (d *Deck) GetCard(id string) (Entry, error) {
	e, err := Lookup(id)
	if err != nil {
		return Entry{}, err
	}
	if _, ok := d.byID[e.ID]; !ok {
		return Entry{}, fmt.Errorf("card not found in deck: %s", id)
	}
	return d.byID[e.ID], nil
}

// SVGPath returns the path of the entry's vector image.
func (d *Deck) SVGPath(e Entry) string {
	if c, ok := d.files[e.ID]; ok && c.SVG != "" {
		return filepath.Join(d.Path, c.SVG)
	}
	return filepath.Join(d.Path, e.ID+".svg")
}

// PNGPath returns the path of the entry's raster image.
func (d *Deck) PNGPath(e Entry) string {
	if c, ok := d.files[e.ID]; ok && c.PNG != "" {
		return filepath.Join(d.Path, c.PNG)
	}
	return filepath.Join(d.Path, e.ID+".png")
}

// Manifest is the content of deck.toml.
type Manifest struct {
	Deck     DeckSection     `toml:"deck"`
	CardBack CardBackSection `toml:"card_back"`
	Cards    []CardSection   `toml:"cards"`
}

type DeckSection struct {
	ID            string  `toml:"id"`
	Name          string  `toml:"name"`
	Version       string  `toml:"version"`
	SchemaVersion string  `toml:"schema_version"`
	Width         int     `toml:"width"`
	Height        int     `toml:"height"`
	AspectRatio   float64 `toml:"aspect_ratio"`
	Generator     string  `toml:"generator"`
}

type CardBackSection struct {
	ID  string `toml:"id"`
	SVG string `toml:"svg"`
	PNG string `toml:"png"`
}

type CardSection struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
	Rank string `toml:"rank,omitempty"`
	Suit string `toml:"suit,omitempty"`
	SVG  string `toml:"svg"`
	PNG  string `toml:"png"`
}

// NewManifest describes entries rendered at the given pixel size.
func NewManifest(entries []Entry, width, height int) *Manifest {
	m := &Manifest{
		Deck: DeckSection{
			ID:            "standard-52",
			Name:          "Standard 52-card deck with joker",
			Version:       "1.0.0",
			SchemaVersion: SchemaVersion,
			Width:         width,
			Height:        height,
			Generator:     "cardgen",
		},
	}
	if height > 0 {
		m.Deck.AspectRatio = float64(width) / float64(height)
	}
	for _, e := range entries {
		if e.Back {
			m.CardBack = CardBackSection{ID: e.ID, SVG: e.ID + ".svg", PNG: e.ID + ".png"}
			continue
		}
		m.Cards = append(m.Cards, CardSection{
			ID:   e.ID,
			Name: e.Name,
			Rank: e.Identity.Rank.String(),
			Suit: e.Identity.Suit.String(),
			SVG:  e.ID + ".svg",
			PNG:  e.ID + ".png",
		})
	}
	return m
}

// WriteManifest writes m to deck.toml in dir.
func WriteManifest(dir string, m *Manifest) error {
	path := filepath.Join(dir, ManifestFile)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating manifest: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(m); err != nil {
		return fmt.Errorf("error encoding manifest: %w", err)
	}
	return file.Close()
}

// ReadManifest reads deck.toml from dir.
func ReadManifest(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s not found in %s", ManifestFile, dir)
	}

	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", ManifestFile, err)
	}
	return &m, nil
}
