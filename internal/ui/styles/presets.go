package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset mirrors the Dark values of the AdaptiveColor definitions in styles.go.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default xselect theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CCCCCC",
		TokenTextSecondary: "#BBBBBB",
		TokenTextMuted:     "#696969",

		TokenBorderDefault:   "#696969",
		TokenBorderFocus:     "#FFFFFF",
		TokenBorderHighlight: "#54A0FF",

		TokenSelectionIndicator: "#FFFFFF",

		TokenDropdownSelectedFg: "#1E1E1E",
		TokenDropdownSelectedBg: "#CCCCCC",
		TokenDropdownListBorder: "#8C8C8C",
		TokenDropdownOpenBorder: "#54A0FF",

		TokenStatusSuccess: "#73F59F",
		TokenStatusError:   "#FF8787",
	},
}

// CatppuccinMochaPreset is the Catppuccin Mocha palette.
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Soothing pastel theme (dark)",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#CDD6F4", // text
		TokenTextSecondary: "#BAC2DE", // subtext1
		TokenTextMuted:     "#6C7086", // overlay0

		TokenBorderDefault:   "#45475A", // surface1
		TokenBorderFocus:     "#CDD6F4", // text
		TokenBorderHighlight: "#89B4FA", // blue

		TokenSelectionIndicator: "#CDD6F4", // text

		TokenDropdownSelectedFg: "#1E1E2E", // base
		TokenDropdownSelectedBg: "#CBA6F7", // mauve
		TokenDropdownListBorder: "#7F849C", // overlay1
		TokenDropdownOpenBorder: "#89B4FA", // blue

		TokenStatusSuccess: "#A6E3A1", // green
		TokenStatusError:   "#F38BA8", // red
	},
}

// HighContrastPreset maximises legibility.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "Maximum contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:   "#FFFFFF",
		TokenTextSecondary: "#FFFFFF",
		TokenTextMuted:     "#C0C0C0",

		TokenBorderDefault:   "#FFFFFF",
		TokenBorderFocus:     "#FFFF00",
		TokenBorderHighlight: "#00FFFF",

		TokenSelectionIndicator: "#FFFF00",

		TokenDropdownSelectedFg: "#000000",
		TokenDropdownSelectedBg: "#FFFFFF",
		TokenDropdownListBorder: "#FFFFFF",
		TokenDropdownOpenBorder: "#FFFF00",

		TokenStatusSuccess: "#00FF00",
		TokenStatusError:   "#FF0000",
	},
}
