package cmd

import (
	"fmt"
	"path/filepath"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardgen/internal/deck"
	"github.com/arcanaland/cardgen/internal/sheet"
)

// sheetCmd represents the sheet command
var sheetCmd = &cobra.Command{
	Use:   "sheet",
	Short: "Compose the generated cards into a contact sheet",
	Long: `Sheet arranges the PNGs of a generated deck in manifest order into one
image, optionally tagged with a QR code and exported as an A4 PDF.

Examples:
  cardgen sheet
  cardgen sheet --columns 9 --qr https://example.com/deck --pdf deck.pdf`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		deckPath := cfg.OutputDir
		if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
			deckPath = dir
		}

		d, err := deck.LoadDeck(deckPath)
		if err != nil {
			return fmt.Errorf("error loading deck: %w", err)
		}

		var paths []string
		for _, e := range d.Entries() {
			paths = append(paths, d.PNGPath(e))
		}

		opt := sheet.Options{}
		opt.Columns, _ = cmd.Flags().GetInt("columns")
		opt.Gap, _ = cmd.Flags().GetInt("gap")
		opt.CardWidth, _ = cmd.Flags().GetInt("card-width")
		if opt.CardWidth > 0 && d.Width > 0 {
			opt.CardHeight = opt.CardWidth * d.Height / d.Width
		}
		opt.QRText, _ = cmd.Flags().GetString("qr")

		img, err := sheet.Compose(paths, opt)
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("out")
		if out == "" {
			out = filepath.Join(deckPath, deck.SheetFile)
		}
		if err := sheet.Save(img, out); err != nil {
			return err
		}
		logger.Debug("wrote sheet", "path", out, "cards", len(paths))
		fmt.Println(colorize.CyanString("Sheet: ") + colorize.HiWhiteString("%s", out))

		if pdfPath, _ := cmd.Flags().GetString("pdf"); pdfPath != "" {
			if err := sheet.WritePDF(img, pdfPath); err != nil {
				return err
			}
			fmt.Println(colorize.CyanString("PDF:   ") + colorize.HiWhiteString("%s", pdfPath))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(sheetCmd)

	sheetCmd.Flags().StringP("dir", "d", "", "generated deck directory (default from config)")
	sheetCmd.Flags().StringP("out", "o", "", "sheet image path (default <dir>/sheet.png)")
	sheetCmd.Flags().String("pdf", "", "also write the sheet as an A4 PDF")
	sheetCmd.Flags().String("qr", "", "text encoded as a QR code in the sheet footer")
	sheetCmd.Flags().Int("columns", 13, "cards per row")
	sheetCmd.Flags().Int("gap", 8, "spacing between cards in pixels")
	sheetCmd.Flags().Int("card-width", 0, "cell width in pixels (default the card width)")
}
