// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens organized by category.
// These are the keys users can override in their config.
const (
	// Text hierarchy
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"

	// Borders
	TokenBorderDefault   ColorToken = "border.default"
	TokenBorderFocus     ColorToken = "border.focus"
	TokenBorderHighlight ColorToken = "border.highlight"

	// Selection
	TokenSelectionIndicator ColorToken = "selection.indicator"

	// Dropdown
	TokenDropdownSelectedFg ColorToken = "dropdown.selected.fg"
	TokenDropdownSelectedBg ColorToken = "dropdown.selected.bg"
	TokenDropdownListBorder ColorToken = "dropdown.list.border"
	TokenDropdownOpenBorder ColorToken = "dropdown.open.border"

	// Status
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusError   ColorToken = "status.error"
)

// AllTokens returns every valid color token.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,
		TokenBorderDefault,
		TokenBorderFocus,
		TokenBorderHighlight,
		TokenSelectionIndicator,
		TokenDropdownSelectedFg,
		TokenDropdownSelectedBg,
		TokenDropdownListBorder,
		TokenDropdownOpenBorder,
		TokenStatusSuccess,
		TokenStatusError,
	}
}
