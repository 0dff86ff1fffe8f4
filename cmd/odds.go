package cmd

import (
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardgen/internal/poker"
)

// oddsCmd represents the odds command
var oddsCmd = &cobra.Command{
	Use:   "odds",
	Short: "Count every five-card poker hand of the deck",
	Long: `Odds enumerates all 2,598,960 five-card hands of the 52 regular cards and
prints how many fall into each hand class, strongest first.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		table := poker.Count()
		for _, c := range poker.Categories {
			fmt.Printf("%s %s %s\n",
				colorize.CyanString("%-16s", c),
				colorize.HiWhiteString("%9d", table[c]),
				colorize.HiBlackString("%.6f%%", 100*table.Probability(c)),
			)
		}
		fmt.Printf("%s %s\n", colorize.CyanString("%-16s", "Total"), colorize.HiWhiteString("%9d", table.Total()))
	},
}

func init() {
	RootCmd.AddCommand(oddsCmd)
}
