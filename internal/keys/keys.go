// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// CommonKeys are shared by every view.
type CommonKeys struct {
	Escape key.Binding
	Quit   key.Binding
	Help   key.Binding
}

// DropdownKeys drive a single dropdown component.
type DropdownKeys struct {
	// Toggle opens/closes the list while the summary view has focus.
	Toggle key.Binding
	// Activate selects the focused item while the list is open.
	Activate key.Binding
	// Close dismisses the open list without selecting.
	Close key.Binding
	// Next and Prev move focus through the reachable items.
	Next key.Binding
	Prev key.Binding
}

// AppKeys drive the host form that lays out dropdowns.
type AppKeys struct {
	NextField key.Binding
	PrevField key.Binding
	Quit      key.Binding
	Help      key.Binding
}

// Common holds the shared bindings.
var Common = CommonKeys{
	Escape: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "go back"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "toggle help"),
	),
}

// Dropdown holds the component bindings.
// Space is reported by Bubble Tea as " ".
var Dropdown = DropdownKeys{
	Toggle: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter/space", "open list"),
	),
	Activate: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter/space", "select"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close list"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab/↓", "next option"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab/↑", "previous option"),
	),
}

// App holds the host form bindings.
var App = AppKeys{
	NextField: key.NewBinding(
		key.WithKeys("tab", "down", "j"),
		key.WithHelp("tab/j", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up", "k"),
		key.WithHelp("shift+tab/k", "previous field"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: Common.Help,
}

// ShortHelp returns keybindings for the short help view.
func (k AppKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, Dropdown.Toggle, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k AppKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextField, k.PrevField},
		{Dropdown.Toggle, Dropdown.Activate, Dropdown.Close},
		{Dropdown.Next, Dropdown.Prev},
		{k.Help, k.Quit},
	}
}
