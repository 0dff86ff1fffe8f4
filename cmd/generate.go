package cmd

import (
	"errors"
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardgen/internal/deck"
	"github.com/arcanaland/cardgen/internal/generator"
	"github.com/arcanaland/cardgen/internal/raster"
	"github.com/arcanaland/cardgen/internal/render"
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the deck images",
	Long: `Generate writes {rank}_{suit}.svg and .png for the 52 regular cards,
joker.svg/.png and back.svg/.png, followed by a deck.toml manifest.

Examples:
  cardgen generate
  cardgen generate --out ./cards --workers 4 --scale 2`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	RootCmd.AddCommand(generateCmd)
	addGenerateFlags(generateCmd)
}

func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("out", "o", "", "output directory (default from config)")
	cmd.Flags().IntP("workers", "w", 0, "number of cards generated concurrently (default from config)")
	cmd.Flags().Float64("scale", 0, "PNG pixels per SVG unit (default from config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	outDir := cfg.OutputDir
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		outDir = out
	}
	workers := cfg.Workers
	if cmd.Flags().Changed("workers") {
		workers, _ = cmd.Flags().GetInt("workers")
	}
	scale := cfg.Scale
	if cmd.Flags().Changed("scale") {
		scale, _ = cmd.Flags().GetFloat64("scale")
	}

	palette, err := cfg.RenderPalette()
	if err != nil {
		return err
	}
	fontData, err := cfg.FontData()
	if err != nil {
		return err
	}

	opts := []raster.Option{raster.WithScale(scale), raster.WithLogger(logger)}
	if fontData != nil {
		opts = append(opts, raster.WithFont(fontData))
	}
	rz, err := raster.New(opts...)
	if err != nil {
		return fmt.Errorf("error creating rasterizer: %w", err)
	}

	g := generator.New(render.New(render.DefaultSpec(), palette), rz, outDir,
		generator.WithWorkers(workers),
		generator.WithLogger(logger),
	)
	report, err := g.Run(deck.Standard())
	if err != nil {
		var ce *generator.CardError
		if errors.As(err, &ce) {
			logger.Debug("generation failed", "card", ce.Card, "stage", ce.Stage)
		}
		fmt.Printf("❌ %d of %d cards written\n", len(report.Results), len(deck.Standard()))
		return err
	}

	fmt.Println(colorize.CyanString("Cards:    ") + colorize.HiWhiteString("%d", len(report.Results)))
	fmt.Println(colorize.CyanString("Output:   ") + colorize.HiWhiteString("%s", outDir))
	fmt.Println(colorize.CyanString("Manifest: ") + colorize.HiWhiteString("%s", report.Manifest))
	return nil
}
