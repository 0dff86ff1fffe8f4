package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/arcanaland/cardgen/internal/canvas"
	"github.com/arcanaland/cardgen/internal/render"
)

// Config represents the application configuration
type Config struct {
	OutputDir string        `toml:"output_dir"`
	Workers   int           `toml:"workers"`
	Scale     float64       `toml:"scale"`
	Font      string        `toml:"font,omitempty"`
	Palette   PaletteConfig `toml:"palette"`
	Back      BackConfig    `toml:"back"`
}

// PaletteConfig holds the face colours as "#rrggbb" strings.
type PaletteConfig struct {
	Background string `toml:"background"`
	Border     string `toml:"border"`
	Hearts     string `toml:"hearts"`
	Diamonds   string `toml:"diamonds"`
	Clubs      string `toml:"clubs"`
	Spades     string `toml:"spades"`
	Joker      string `toml:"joker"`
}

// BackConfig holds the card back colours.
type BackConfig struct {
	Background string `toml:"background"`
	Border     string `toml:"border"`
	Motif      string `toml:"motif"`
}

// ErrExists is returned by Init when the config file is already present.
var ErrExists = errors.New("config file already exists")

// Default returns the built-in configuration.
func Default() *Config {
	p := render.DefaultPalette()
	return &Config{
		OutputDir: filepath.Join("godot", "cards"),
		Workers:   1,
		Scale:     1,
		Palette: PaletteConfig{
			Background: p.Background.Hex(),
			Border:     p.Border.Hex(),
			Hearts:     p.Hearts.Hex(),
			Diamonds:   p.Diamonds.Hex(),
			Clubs:      p.Clubs.Hex(),
			Spades:     p.Spades.Hex(),
			Joker:      p.Joker.Hex(),
		},
		Back: BackConfig{
			Background: p.BackBackground.Hex(),
			Border:     p.BackBorder.Hex(),
			Motif:      p.Motif.Hex(),
		},
	}
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetXDGCacheHome returns XDG_CACHE_HOME or default path
func GetXDGCacheHome() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return xdgCache
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".cache")
}

// GetCacheDir returns the cardgen cache directory
func GetCacheDir() string {
	return filepath.Join(GetXDGCacheHome(), "cardgen")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "cardgen", "config.toml")
}

// Load reads the config file at path, or at the XDG location when path is
// empty. A missing file yields the defaults; keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		path = GetConfigFilePath()
	}

	config := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}
	if _, err := toml.DecodeFile(path, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return config, nil
}

// Init writes the default config to path, or to the XDG location when path
// is empty. An existing file is only replaced when force is set.
func Init(path string, force bool) (*Config, error) {
	if path == "" {
		path = GetConfigFilePath()
	}
	if _, err := os.Stat(path); err == nil && !force {
		return nil, fmt.Errorf("%w: %s", ErrExists, path)
	}

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("error creating config directory: %w", err)
	}

	config := Default()
	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("error creating config file: %w", err)
	}

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		file.Close()
		return nil, fmt.Errorf("error encoding config: %w", err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("error writing config file: %w", err)
	}
	return config, nil
}

// Validate checks the numeric settings and every colour.
func (c *Config) Validate() error {
	var errs []error
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output_dir is empty"))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale must be positive, got %v", c.Scale))
	}
	if _, err := c.RenderPalette(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// RenderPalette parses the configured colours.
func (c *Config) RenderPalette() (render.Palette, error) {
	var (
		p    render.Palette
		errs []error
	)
	parse := func(key, value string, dst *canvas.Color) {
		col, err := canvas.ParseColor(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = col
	}
	parse("palette.background", c.Palette.Background, &p.Background)
	parse("palette.border", c.Palette.Border, &p.Border)
	parse("palette.hearts", c.Palette.Hearts, &p.Hearts)
	parse("palette.diamonds", c.Palette.Diamonds, &p.Diamonds)
	parse("palette.clubs", c.Palette.Clubs, &p.Clubs)
	parse("palette.spades", c.Palette.Spades, &p.Spades)
	parse("palette.joker", c.Palette.Joker, &p.Joker)
	parse("back.background", c.Back.Background, &p.BackBackground)
	parse("back.border", c.Back.Border, &p.BackBorder)
	parse("back.motif", c.Back.Motif, &p.Motif)
	return p, errors.Join(errs...)
}

// FontData reads the configured font file. It returns nil when no font is
// configured.
func (c *Config) FontData() ([]byte, error) {
	if c.Font == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.Font)
	if err != nil {
		return nil, fmt.Errorf("error reading font: %w", err)
	}
	return data, nil
}
