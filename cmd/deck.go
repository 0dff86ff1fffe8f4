package cmd

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardgen/internal/deck"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Inspect generated decks",
}

// deckListCmd represents the deck ls command
var deckListCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List the cards of a generated deck",
	Long: `List prints every entry of a generated deck in manifest order with its
name. Entries whose SVG or PNG file is missing are marked.

Without an argument the configured output directory is listed; pass --all
to list the standard entries even when no manifest has been written yet.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deckPath := cfg.OutputDir
		if len(args) == 1 {
			deckPath = args[0]
		}

		all, _ := cmd.Flags().GetBool("all")
		if all {
			for _, e := range deck.Standard() {
				fmt.Printf("  %-12s %s\n", e.ID, e.Name)
			}
			return nil
		}

		// Check if deck exists
		if _, err := os.Stat(deckPath); os.IsNotExist(err) {
			fmt.Printf("Deck directory %s does not exist.\n", deckPath)
			fmt.Println("Run 'cardgen generate' to create it.")
			return nil
		}

		d, err := deck.LoadDeck(deckPath)
		if err != nil {
			return fmt.Errorf("error loading deck: %w", err)
		}

		fmt.Printf("%s (%s) %dx%d\n", colorize.HiWhiteString("%s", d.Name), d.Version, d.Width, d.Height)
		for _, e := range d.Entries() {
			var missing []string
			if _, err := os.Stat(d.SVGPath(e)); err != nil {
				missing = append(missing, "svg")
			}
			if _, err := os.Stat(d.PNGPath(e)); err != nil {
				missing = append(missing, "png")
			}

			if len(missing) == 0 {
				fmt.Printf("  %-12s %s\n", e.ID, e.Name)
			} else {
				fmt.Printf("* %-12s %s %s\n", e.ID, e.Name, colorize.RedString("[missing %v]", missing))
			}
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckListCmd)

	deckListCmd.Flags().BoolP("all", "a", false, "list the standard entries without reading a deck")
}
