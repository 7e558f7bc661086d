package dropdown

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func TestNewItem_ValueFallsBackToLabel(t *testing.T) {
	it := newItem("wave", 1, ItemSpec{Label: "Sine"})
	require.Equal(t, "Sine", it.Value())

	it = newItem("wave", 2, ItemSpec{Label: "Sine", Value: "sine"})
	require.Equal(t, "sine", it.Value())
	require.Equal(t, "Sine", it.Label())
	require.False(t, it.Selected(), "spec Selected is applied by the container, not the item")
}

func TestItem_Activate(t *testing.T) {
	it := newItem("wave", 3, ItemSpec{Label: "Square"})

	req, ok := it.Activate()
	require.True(t, ok)
	require.Equal(t, SelectionRequest{Owner: "wave", Source: 3}, req)

	it.selected = true
	_, ok = it.Activate()
	require.False(t, ok, "already selected item should not request selection")
}

func TestItem_ForceSelect(t *testing.T) {
	it := newItem("wave", 3, ItemSpec{Label: "Square"})
	it.selected = true

	req := it.ForceSelect(true)
	require.Equal(t, SelectionRequest{Owner: "wave", Source: 3, Silent: true}, req)
	require.True(t, it.Selected(), "ForceSelect must not touch the item")
}

func TestItem_HandleKey(t *testing.T) {
	it := newItem("wave", 1, ItemSpec{Label: "Sine"})

	_, ok := it.HandleKey(keyMsg(tea.KeyEnter))
	require.False(t, ok, "item outside the focus order ignores keys")

	it.focusable = true
	req, ok := it.HandleKey(keyMsg(tea.KeyEnter))
	require.True(t, ok)
	require.Equal(t, ItemKey(1), req.Source)

	_, ok = it.HandleKey(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	require.True(t, ok, "space activates")

	_, ok = it.HandleKey(runes("x"))
	require.False(t, ok)
}

func TestItem_HandleClick(t *testing.T) {
	it := newItem("wave", 1, ItemSpec{Label: "Sine"})
	hits := fakeHits{itemZoneID("wave", 1): {0, 5, 10, 5}}

	_, ok := it.HandleClick(click(3, 5), hits)
	require.True(t, ok)

	_, ok = it.HandleClick(click(3, 6), hits)
	require.False(t, ok, "outside the item zone")

	press := click(3, 5)
	press.Action = tea.MouseActionPress
	_, ok = it.HandleClick(press, hits)
	require.False(t, ok, "only the release completes a click")
}

func TestItem_Attrs(t *testing.T) {
	it := newItem("wave", 1, ItemSpec{Label: "Sine"})
	it.selected = true
	require.Equal(t, ItemAttrs{Selected: true}, it.Attrs())
}
