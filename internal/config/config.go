// Package config provides configuration types and defaults for xselect.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/zjrosen/xselect/internal/log"
)

// ItemConfig declares one selectable item.
type ItemConfig struct {
	Label    string `mapstructure:"label"`
	Value    string `mapstructure:"value"`    // defaults to label
	Selected bool   `mapstructure:"selected"` // initial selection; the last marked item wins
}

// DropdownConfig declares one dropdown.
type DropdownConfig struct {
	ID    string       `mapstructure:"id"`
	Label string       `mapstructure:"label"` // field label shown next to the dropdown
	Value string       `mapstructure:"value"` // initial value; overrides item selected flags
	Open  bool         `mapstructure:"open"`  // start with the list open
	Items []ItemConfig `mapstructure:"items"`
}

// Config holds all configuration options for xselect.
type Config struct {
	Dropdowns []DropdownConfig `mapstructure:"dropdowns"`
	UI        UIConfig         `mapstructure:"ui"`
	Theme     ThemeConfig      `mapstructure:"theme"`
	Flags     map[string]bool  `mapstructure:"flags"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	// ClampListToViewport shifts an open list back on screen when it would
	// overflow the terminal. When false the overflow is clipped.
	ClampListToViewport bool `mapstructure:"clamp_list_to_viewport"`
	ItemMaxWidth        int  `mapstructure:"item_max_width"` // wrap item labels wider than this; 0 disables
	SaveOnExit          bool `mapstructure:"save_on_exit"`   // write current values back to the config file
	ShowHelp            bool `mapstructure:"show_help"`
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "catppuccin-mocha", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Colors allows overriding individual color tokens.
	// Supports both nested YAML structure and dot notation.
	// Example YAML:
	//   colors:
	//     dropdown:
	//       open:
	//         border: "#FF0000"
	// Or quoted dot notation:
	//   colors:
	//     "dropdown.open.border": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
// This handles both nested YAML structures and already-flat keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

// flattenColors recursively flattens a nested map into dot-notation keys.
func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			// YAML sometimes produces map[any]any instead of map[string]any
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// DefaultDropdowns returns the example form written into a fresh config.
func DefaultDropdowns() []DropdownConfig {
	return []DropdownConfig{
		{
			ID:    "waveform",
			Label: "Waveform",
			Items: []ItemConfig{
				{Label: "Sine", Value: "sine"},
				{Label: "Square", Value: "square"},
				{Label: "Ramp up", Value: "ramp-up"},
				{Label: "Ramp down", Value: "ramp-down"},
			},
		},
		{
			ID:    "octave",
			Label: "Octave",
			Value: "4",
			Items: []ItemConfig{
				{Label: "2"}, {Label: "3"}, {Label: "4"}, {Label: "5"},
			},
		},
	}
}

// ValidateDropdowns checks dropdown declarations for errors.
// Returns nil if dropdowns are valid or empty (will use defaults).
func ValidateDropdowns(dropdowns []DropdownConfig) error {
	seen := make(map[string]int, len(dropdowns))
	for i, d := range dropdowns {
		if d.ID == "" {
			return fmt.Errorf("dropdown %d: id is required", i)
		}
		if prev, ok := seen[d.ID]; ok {
			return fmt.Errorf("dropdown %d: id %q already used by dropdown %d", i, d.ID, prev)
		}
		seen[d.ID] = i

		for j, it := range d.Items {
			if it.Label == "" {
				return fmt.Errorf("dropdown %d (%s): item %d: label is required", i, d.ID, j)
			}
		}
	}
	return nil
}

// ValidateUI checks UI options for errors.
func ValidateUI(ui UIConfig) error {
	if ui.ItemMaxWidth < 0 {
		return fmt.Errorf("ui.item_max_width must be >= 0, got %d", ui.ItemMaxWidth)
	}
	return nil
}

// Validate runs every section validator and returns the first error.
func (c Config) Validate() error {
	if err := ValidateDropdowns(c.Dropdowns); err != nil {
		return fmt.Errorf("invalid dropdown configuration: %w", err)
	}
	if err := ValidateUI(c.UI); err != nil {
		return fmt.Errorf("invalid ui configuration: %w", err)
	}
	return nil
}

// GetDropdowns returns the configured dropdowns, or DefaultDropdowns() if none configured.
func (c Config) GetDropdowns() []DropdownConfig {
	if len(c.Dropdowns) == 0 {
		return DefaultDropdowns()
	}
	return c.Dropdowns
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		UI: UIConfig{
			ClampListToViewport: true,
			ItemMaxWidth:        0,
			SaveOnExit:          false,
			ShowHelp:            true,
		},
		Theme: ThemeConfig{
			// Default theme uses the "default" preset
			Preset: "",
		},
	}
}

// SetDefaults registers the values of Defaults with v.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("ui.clamp_list_to_viewport", d.UI.ClampListToViewport)
	v.SetDefault("ui.item_max_width", d.UI.ItemMaxWidth)
	v.SetDefault("ui.save_on_exit", d.UI.SaveOnExit)
	v.SetDefault("ui.show_help", d.UI.ShowHelp)
	v.SetDefault("theme.preset", d.Theme.Preset)
}

// Load reads the config file at path with a fresh viper instance.
// Used for hot reload, where the global viper state must stay untouched.
func Load(path string) (Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config file %s not found: %w", path, err)
		}
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	log.Debug(log.CatConfig, "Loaded config", "path", path, "dropdowns", len(cfg.Dropdowns))
	return cfg, nil
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# xselect configuration

# UI settings
ui:
  clamp_list_to_viewport: true  # Keep open lists on screen (false clips them at the edge)
  item_max_width: 0             # Wrap item labels wider than this many cells (0 = never)
  save_on_exit: false           # Write the current selections back into this file on exit
  show_help: true               # Show the key help footer

# Theme configuration
# Use a preset theme or customize individual colors
theme:
  # preset: catppuccin-mocha
  #
  # Available presets:
  #   default           - Default xselect theme
  #   catppuccin-mocha  - Warm, cozy dark theme
  #   high-contrast     - High contrast for accessibility
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   dropdown.open.border: "#54A0FF"
  #   dropdown.selected.bg: "#CCCCCC"

# Feature flags
# flags:
#   type-ahead: true  # Typing in an open list jumps to the closest match

# Dropdowns are laid out top to bottom. Edits are picked up while running.
dropdowns:
  - id: waveform
    label: Waveform
    items:
      - label: Sine
        value: sine
      - label: Square
        value: square
      - label: Ramp up
        value: ramp-up
      - label: Ramp down
        value: ramp-down

  - id: octave
    label: Octave
    value: "4"
    items:
      - label: "2"
      - label: "3"
      - label: "4"
      - label: "5"

# Dropdown options:
#   id: Unique identifier (required)
#   label: Field label shown next to the dropdown
#   value: Initially selected value (optional)
#   open: Start with the list open (optional)
#   items: Choices in display order
#
# Item options:
#   label: Displayed text (required)
#   value: Value reported when selected (defaults to label)
#   selected: Initially selected (optional; the last marked item wins)
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	// Create parent directory if needed
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	// Write the template
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
