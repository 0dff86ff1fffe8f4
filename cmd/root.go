package cmd

import (
	"io"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/arcanaland/cardgen/internal/config"
)

var (
	cfg    *config.Config
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "cardgen",
	Short: "Procedural playing card deck generator",
	Long: `Cardgen draws a standard 52-card deck, a joker and a shared card back
as SVG files and rasterizes each of them to PNG.

Run without a subcommand it generates the full deck into the configured
output directory (godot/cards by default).`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		if verbose {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
		gg.SetLogger(logger)

		configPath, _ := cmd.Flags().GetString("config")
		c, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = c
		logger.Debug("loaded config", "output_dir", cfg.OutputDir, "workers", cfg.Workers, "scale", cfg.Scale)
		return nil
	},
	RunE: runGenerate,
}

func init() {
	RootCmd.PersistentFlags().String("config", "", "config file (default $XDG_CONFIG_HOME/cardgen/config.toml)")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "log progress to stderr")
	addGenerateFlags(RootCmd)

	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
