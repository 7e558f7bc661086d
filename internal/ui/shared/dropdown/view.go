package dropdown

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/xselect/internal/ui/overlay"
	"github.com/zjrosen/xselect/internal/ui/styles"
)

const (
	arrowClosed = "▾"
	arrowOpen   = "▴"
)

// View renders the summary view: the selected item's label in a box wide
// enough for the widest item.
func (m Model) View() string {
	attrs := m.Attrs()

	border := styles.BorderDefaultColor
	switch {
	case attrs.Open:
		border = styles.DropdownOpenBorderColor
	case attrs.Focused:
		border = styles.BorderFocusColor
	}

	label := ""
	if m.summary != nil {
		label = m.renderLabel(m.summary.label)
	}
	arrow := arrowClosed
	if attrs.Open {
		arrow = arrowOpen
	}

	content := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(m.summaryWidth).Foreground(styles.TextPrimaryColor).Render(label),
		" ",
		styles.MutedStyle.Render(arrow),
	)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(content)

	return zone.Mark(summaryZoneID(m.id), box)
}

// ListView renders the open list, or "" when closed.
// The selected item is drawn inverted; the focused item carries a ">" marker.
func (m Model) ListView() string {
	if !m.open {
		return ""
	}

	lines := make([]string, 0, len(m.items))
	for _, it := range m.items {
		a := m.ItemAttrs(it.key)

		marker := " "
		if a.Current {
			marker = styles.SelectionIndicatorStyle.Render(">")
		}
		style := styles.DropdownItemStyle
		if a.Selected {
			style = styles.DropdownSelectedItemStyle
		}

		line := lipgloss.JoinHorizontal(lipgloss.Top,
			marker,
			style.Width(m.summaryWidth+1).Render(m.renderLabel(it.label)),
		)
		lines = append(lines, zone.Mark(itemZoneID(m.id, it.key), line))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.DropdownListBorderColor).
		Padding(0, 1, 0, 0).
		Render(strings.Join(lines, "\n"))

	return zone.Mark(listZoneID(m.id), box)
}

// Overlay draws the open list beneath the summary view on top of background.
// at.X and at.Y give the summary view's top-left corner on screen; the
// remaining fields (viewport size, clamping) are passed through to overlay.Place.
func (m Model) Overlay(background string, at overlay.Config) string {
	if !m.open {
		return background
	}
	at.Y += lipgloss.Height(m.View())
	return overlay.Place(at, m.ListView(), background)
}
