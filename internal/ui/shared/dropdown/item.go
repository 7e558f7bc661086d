package dropdown

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/xselect/internal/keys"
)

// ItemKey identifies a registered item. Keys are never reused within a
// container, so a request naming a removed item cannot match a newer one.
type ItemKey uint64

// ItemSpec declares an item the way host markup does.
type ItemSpec struct {
	Label string
	// Value is the item's value. Empty falls back to Label.
	Value string
	// Selected marks the item as initially selected.
	Selected bool
}

// Item is one selectable choice.
//
// An item never changes its own selected flag; it only produces
// SelectionRequests for its owning container to mediate.
type Item struct {
	key       ItemKey
	owner     string
	label     string
	value     string
	selected  bool
	focusable bool
}

func newItem(owner string, key ItemKey, spec ItemSpec) Item {
	value := spec.Value
	if value == "" {
		value = spec.Label
	}
	return Item{
		key:   key,
		owner: owner,
		label: spec.Label,
		value: value,
	}
}

// Key returns the item's identity within its container.
func (i Item) Key() ItemKey { return i.key }

// Label returns the displayed text.
func (i Item) Label() string { return i.label }

// Value returns the value fixed at construction.
func (i Item) Value() string { return i.value }

// Selected reports whether the container has selected this item.
func (i Item) Selected() bool { return i.selected }

// Focusable reports whether the item is in the keyboard focus order.
func (i Item) Focusable() bool { return i.focusable }

// Activate requests selection of this item.
// Activating an already selected item yields no request.
func (i Item) Activate() (SelectionRequest, bool) {
	if i.selected {
		return SelectionRequest{}, false
	}
	return SelectionRequest{Owner: i.owner, Source: i.key}, true
}

// ForceSelect requests selection regardless of current state.
// Silent requests do not produce a ChangedMsg.
func (i Item) ForceSelect(silent bool) SelectionRequest {
	return SelectionRequest{Owner: i.owner, Source: i.key, Silent: silent}
}

// HandleKey activates the item on Enter or Space while it accepts focus.
func (i Item) HandleKey(msg tea.KeyMsg) (SelectionRequest, bool) {
	if !i.focusable || !key.Matches(msg, keys.Dropdown.Activate) {
		return SelectionRequest{}, false
	}
	return i.Activate()
}

// HandleClick activates the item on a click inside its rendered zone.
func (i Item) HandleClick(msg tea.MouseMsg, hits HitTester) (SelectionRequest, bool) {
	if !isClick(msg) || !hits.InBounds(itemZoneID(i.owner, i.key), msg) {
		return SelectionRequest{}, false
	}
	return i.Activate()
}
