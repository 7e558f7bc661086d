package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"}
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"}

	// Borders
	BorderDefaultColor        = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusColor          = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}
	BorderHighlightFocusColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Selection indicator color (">" prefix in lists)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

	// Dropdown colors. The selected item is drawn inverted.
	DropdownSelectedFgColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#1E1E1E"}
	DropdownSelectedBgColor = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	DropdownListBorderColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#8C8C8C"}
	DropdownOpenBorderColor = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	// DropdownSelectedItemStyle renders the selected entry inside the open list.
	DropdownSelectedItemStyle = lipgloss.NewStyle().
					Foreground(DropdownSelectedFgColor).
					Background(DropdownSelectedBgColor)

	DropdownItemStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)

	// Field labels in the host form
	LabelStyle        = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	LabelFocusedStyle = lipgloss.NewStyle().Foreground(BorderFocusColor).Bold(true)
	MutedStyle        = lipgloss.NewStyle().Foreground(TextMutedColor)
	SuccessStyle      = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	ErrorStyle        = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)
)
