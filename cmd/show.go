package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/cardgen/internal/canvas"
	"github.com/arcanaland/cardgen/internal/card"
	"github.com/arcanaland/cardgen/internal/config"
	"github.com/arcanaland/cardgen/internal/deck"
	"github.com/arcanaland/cardgen/internal/layout"
	"github.com/arcanaland/cardgen/internal/preview"
	"github.com/arcanaland/cardgen/internal/raster"
)

var showCmd = &cobra.Command{
	Use:   "show [card_id]",
	Short: "Display information about a generated card with ANSI art",
	Long: `Show displays a generated card as ANSI terminal art next to its details.
Use the card's file name without extension as its ID, like 'Q_spades',
'10_hearts', 'joker' or 'back'. IDs are case-insensitive.

The deck is read from the configured output directory unless --dir is given.

Examples:
  cardgen show A_spades
  cardgen show --dir ./cards joker
  cardgen show --width 24 --256 back`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckPath := cfg.OutputDir
		if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
			deckPath = dir
		}

		// Check if path exists
		if _, err := os.Stat(deckPath); os.IsNotExist(err) {
			return fmt.Errorf("deck directory not found: %s", deckPath)
		}

		d, err := deck.LoadDeck(deckPath)
		if err != nil {
			return fmt.Errorf("error loading deck: %w", err)
		}

		e, err := d.GetCard(args[0])
		if err != nil {
			return fmt.Errorf("error getting card: %w", err)
		}

		termWidth := terminalWidth()
		width, _ := cmd.Flags().GetInt("width")
		if width <= 0 {
			width = min(max(termWidth/3, 16), 40)
		}
		mode := preview.TrueColor
		if use256, _ := cmd.Flags().GetBool("256"); use256 {
			mode = preview.Color256
		}

		art, err := cardArt(d, e, width, mode)
		if err != nil {
			return fmt.Errorf("error loading ANSI art: %w", err)
		}

		// Leave a small margin right of the info column
		infoWidth := max(termWidth-width-showSpacing-4, 20)

		fmt.Println()
		fmt.Print(preview.SideBySide(art, cardInfo(d, e, infoWidth), showSpacing))
		fmt.Println()
		return nil
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("dir", "d", "", "generated deck directory (default from config)")
	showCmd.Flags().Int("width", 0, "art width in columns (default fits the terminal)")
	showCmd.Flags().Bool("256", false, "use the 256-colour palette instead of true colour")
}

const showSpacing = 4

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80 // Default if we can't get terminal width
	}
	return width
}

// cardArt converts the entry's PNG, going through the ANSI cache. When the
// PNG is missing the SVG is rasterized in memory instead.
func cardArt(d *deck.Deck, e deck.Entry, width int, mode preview.Mode) (string, error) {
	pngPath := d.PNGPath(e)
	if _, err := os.Stat(pngPath); err == nil {
		return preview.Cached(pngPath, filepath.Join(config.GetCacheDir(), "ansi_cache"), width, mode)
	}

	logger.Debug("no png, rasterizing svg", "card", e.ID, "svg", d.SVGPath(e))
	doc, err := canvas.Load(d.SVGPath(e))
	if err != nil {
		return "", err
	}
	opts := []raster.Option{raster.WithLogger(logger)}
	fontData, err := cfg.FontData()
	if err != nil {
		return "", err
	}
	if fontData != nil {
		opts = append(opts, raster.WithFont(fontData))
	}
	rz, err := raster.New(opts...)
	if err != nil {
		return "", err
	}
	img, err := rz.Render(doc)
	if err != nil {
		return "", err
	}
	return preview.ToANSI(img, width, mode), nil
}

// describe summarizes what is drawn on the entry.
func describe(e deck.Entry) string {
	id := e.Identity
	switch {
	case e.Back:
		return "Shared card back: a rounded frame around a large centre rhombus and four smaller rhombi above, below and to either side."
	case id.IsJoker():
		return "The joker: a jester's hat with three bells over a band, indexed 'joker' in each corner."
	case id.Rank.IsCourt():
		emblem := map[card.Rank]string{card.Jack: "pointed cap and crossed swords", card.Queen: "tiara, jewel and pendant", card.King: "crown and beard"}[id.Rank]
		return fmt.Sprintf("Court card: a face with %s in the %s colour.", emblem, id.Suit)
	case id.Rank == card.Ace:
		glyph, _ := id.Suit.Glyph()
		return fmt.Sprintf("A single oversized %s in the centre of the card.", glyph)
	}
	n := id.Rank.Pips()
	slots, err := layout.Template(n)
	if err != nil {
		return ""
	}
	inverted := 0
	for _, s := range slots {
		if s.Inverted {
			inverted++
		}
	}
	return fmt.Sprintf("%d %s pips, %d of them in the lower half drawn upside down.", n, id.Suit, inverted)
}

func cardInfo(d *deck.Deck, e deck.Entry, width int) []string {
	info := []string{
		colorize.CyanString("Card: ") + colorize.HiWhiteString("%s", e.Name),
		colorize.CyanString("Deck: ") + colorize.HiWhiteString("%s", d.Name),
		colorize.CyanString("ID:   ") + colorize.HiWhiteString("%s", e.ID),
	}

	switch {
	case e.Back:
		info = append(info, colorize.CyanString("Type: ")+colorize.HiWhiteString("Card Back"))
	case e.Identity.IsJoker():
		info = append(info, colorize.CyanString("Type: ")+colorize.HiWhiteString("Joker · *"))
	default:
		glyph, _ := e.Identity.Suit.Glyph()
		info = append(info,
			colorize.CyanString("Suit: ")+colorize.HiWhiteString("%s · %s", e.Identity.Suit, glyph),
			colorize.CyanString("Rank: ")+colorize.HiWhiteString("%s", e.Identity.Rank),
		)
	}

	info = append(info,
		"",
		colorize.CyanString("SVG:  ")+d.SVGPath(e),
		colorize.CyanString("PNG:  ")+d.PNGPath(e),
	)

	if desc := describe(e); desc != "" {
		info = append(info, "", colorize.CyanString("Description:"))
		info = append(info, preview.Wrap(desc, width)...)
	}
	return info
}
