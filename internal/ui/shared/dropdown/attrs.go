package dropdown

// Attrs is the container state projected for styling hooks. It is derived
// on every render and never read back into state.
type Attrs struct {
	Open    bool
	Focused bool
	Value   string
	Empty   bool
}

// Attrs projects the container state.
func (m Model) Attrs() Attrs {
	return Attrs{
		Open:    m.open,
		Focused: m.focused,
		Value:   m.value,
		Empty:   len(m.items) == 0,
	}
}

// ItemAttrs is an item's state projected for styling hooks.
type ItemAttrs struct {
	Selected bool
	// TabStop is true when the item is reachable with Tab.
	TabStop bool
	// Current is true for the item holding keyboard focus.
	Current bool
}

// Attrs projects the item's own state. Current is filled in by the container.
func (i Item) Attrs() ItemAttrs {
	return ItemAttrs{Selected: i.selected, TabStop: i.focusable}
}

// ItemAttrs projects the state of the item identified by k.
func (m Model) ItemAttrs(k ItemKey) ItemAttrs {
	it, ok := m.item(k)
	if !ok {
		return ItemAttrs{}
	}
	a := it.Attrs()
	a.Current = m.focusKey == k
	return a
}
