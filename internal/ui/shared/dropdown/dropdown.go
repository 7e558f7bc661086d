// Package dropdown provides an accessible single-choice dropdown component.
//
// A Model (the container) owns an ordered registry of Items, the open/closed
// state and the summary of the current selection. Items never change their
// own selection; they produce SelectionRequests that the owning container
// mediates inside Update. A non-silent selection emits ChangedMsg.
//
// While open, the container keeps exactly one OutsideWatcher subscribed to
// the host's PointerHub so that a click anywhere else closes the list.
package dropdown

import (
	"slices"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/muesli/reflow/wordwrap"
	"github.com/sahilm/fuzzy"

	"github.com/zjrosen/xselect/internal/keys"
	"github.com/zjrosen/xselect/internal/log"
)

// Config declares a dropdown. Attribute-like fields are read once, at construction.
type Config struct {
	// ID namespaces the container's zones and messages. Generated when empty.
	ID string
	// Value selects the item carrying this value at mount, silently.
	Value string
	// Open starts the container open.
	Open  bool
	Items []ItemSpec

	// ItemMaxWidth wraps item labels wider than this many cells. 0 disables wrapping.
	ItemMaxWidth int
	// TypeAhead moves focus to the best fuzzy match while typing in the open list.
	TypeAhead bool

	// Hub is the ambient click scope. A private hub is created when nil.
	Hub *PointerHub
	// Hits resolves rendered bounds. Defaults to ZoneHitTester.
	Hits HitTester
}

// Model is the dropdown container.
type Model struct {
	id      string
	open    bool
	value   string
	items   []Item
	nextKey ItemKey

	summary      *Item // detached copy of the selected item
	summaryWidth int

	focused  bool
	focusKey ItemKey // 0 = summary view
	query    string

	itemMaxWidth int
	typeAhead    bool

	hub     *PointerHub
	hits    HitTester
	watcher OutsideWatcher
}

// New mounts a container.
// Items marked Selected are selected in order (last wins), then Value is
// applied, then the first item is selected if nothing is. None of these emit ChangedMsg.
func New(cfg Config) Model {
	m := Model{
		id:           cfg.ID,
		itemMaxWidth: cfg.ItemMaxWidth,
		typeAhead:    cfg.TypeAhead,
		hub:          cfg.Hub,
		hits:         cfg.Hits,
	}
	if m.id == "" {
		m.id = uuid.NewString()
	}
	if m.hub == nil {
		m.hub = NewPointerHub()
	}
	if m.hits == nil {
		m.hits = ZoneHitTester{}
	}

	for _, spec := range cfg.Items {
		m = m.register(len(m.items), spec)
	}
	if cfg.Value != "" {
		if it, ok := m.lastWithValue(cfg.Value); ok {
			m, _ = m.mediate(it.ForceSelect(true))
		}
	}
	m = m.reconcile()

	if cfg.Open {
		m = m.SetOpen(true)
	}
	log.Debug(log.CatDropdown, "Dropdown mounted", "id", m.id, "items", len(m.items), "value", m.value)
	return m
}

// ID returns the container ID.
func (m Model) ID() string { return m.id }

// Value returns the selected item's value, or "" when there are no items.
func (m Model) Value() string { return m.value }

// IsOpen reports whether the list is open.
func (m Model) IsOpen() bool { return m.open }

// Focused reports whether the container receives key messages.
func (m Model) Focused() bool { return m.focused }

// Items returns a copy of the item registry in display order.
func (m Model) Items() []Item { return slices.Clone(m.items) }

// Selected returns the selected item.
func (m Model) Selected() (Item, bool) {
	for _, it := range m.items {
		if it.selected {
			return it, true
		}
	}
	return Item{}, false
}

// FocusedItem returns the item holding keyboard focus inside the open list.
func (m Model) FocusedItem() (Item, bool) {
	if m.focusKey == 0 {
		return Item{}, false
	}
	return m.item(m.focusKey)
}

// Watcher returns the current outside-click subscription.
func (m Model) Watcher() OutsideWatcher { return m.watcher }

// SummaryWidth returns the content width reserved for the summary view.
func (m Model) SummaryWidth() int { return m.summaryWidth }

// Focus makes the container receive key messages.
func (m Model) Focus() Model {
	m.focused = true
	return m
}

// Blur stops key handling. The open state is left untouched.
func (m Model) Blur() Model {
	m.focused = false
	return m
}

// SetOpen forces the open state. Setting the current state again is a no-op.
func (m Model) SetOpen(open bool) Model {
	if open == m.open {
		return m
	}
	m.open = open

	if open {
		id, hits := m.id, m.hits
		m.watcher = watchOutside(m.hub, m.id, func(msg tea.MouseMsg) bool {
			return hits.InBounds(summaryZoneID(id), msg) || hits.InBounds(listZoneID(id), msg)
		})
	} else {
		m.watcher = m.watcher.Cancel()
		m.focusKey = 0
		m.query = ""
	}
	log.Debug(log.CatDropdown, "Dropdown open state changed", "id", m.id, "open", open)
	return m.syncFocusable()
}

// Hit reports whether msg lies over the summary or, while open, the list.
// Hosts use it to deliver a click to the topmost container only.
func (m Model) Hit(msg tea.MouseMsg) bool {
	if m.open && m.hits.InBounds(listZoneID(m.id), msg) {
		return true
	}
	return m.hits.InBounds(summaryZoneID(m.id), msg)
}

// Toggle flips the open state, as activating the summary view does.
func (m Model) Toggle() Model {
	return m.SetOpen(!m.open)
}

// SetValue selects the item carrying value, as a user selection would.
// With duplicate values the last matching item wins. Unknown values are ignored.
func (m Model) SetValue(value string) (Model, tea.Cmd) {
	it, ok := m.lastWithValue(value)
	if !ok {
		log.Debug(log.CatDropdown, "SetValue ignored, no matching item", "id", m.id, "value", value)
		return m, nil
	}
	return m.mediate(it.ForceSelect(false))
}

// InsertItem registers a new item at index (clamped to the registry bounds).
func (m Model) InsertItem(index int, spec ItemSpec) Model {
	index = max(0, min(index, len(m.items)))
	m = m.register(index, spec)
	return m.reconcile()
}

// AppendItem registers a new item after the existing ones.
func (m Model) AppendItem(spec ItemSpec) Model {
	return m.InsertItem(len(m.items), spec)
}

// RemoveItem drops an item from the registry. Unknown keys are ignored.
func (m Model) RemoveItem(k ItemKey) Model {
	idx := m.indexOf(k)
	if idx < 0 {
		return m
	}
	m.items = slices.Delete(slices.Clone(m.items), idx, idx+1)
	if m.focusKey == k {
		m.focusKey = 0
	}
	if m.summary != nil && m.summary.key == k {
		m.summary = nil
	}
	return m.reconcile()
}

// SetItems replaces the whole registry, as re-rendered markup does.
func (m Model) SetItems(specs []ItemSpec) Model {
	m.items = nil
	m.summary = nil
	m.value = ""
	m.focusKey = 0
	for _, spec := range specs {
		m = m.register(len(m.items), spec)
	}
	return m.reconcile()
}

// Unmount tears the container down: the list closes and the outside-click
// subscription is cancelled. No ChangedMsg is produced.
func (m Model) Unmount() Model {
	m = m.SetOpen(false)
	m.watcher = m.watcher.Cancel()
	return m
}

// Update handles requests, dismissals and user input.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SelectionRequest:
		return m.mediate(msg)

	case OutsideClickMsg:
		if msg.ID != m.id {
			return m, nil
		}
		if !m.open || msg.Token != m.watcher.Token() {
			log.Debug(log.CatDropdown, "Stale outside click ignored", "id", m.id)
			return m, nil
		}
		return m.SetOpen(false), nil

	case CloseRequestMsg:
		if msg.ID != m.id {
			return m, nil
		}
		return m.SetOpen(false), nil

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.open {
		if key.Matches(msg, keys.Dropdown.Toggle) {
			return m.SetOpen(true), nil
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Dropdown.Close):
		return m.SetOpen(false), nil
	case key.Matches(msg, keys.Dropdown.Next):
		return m.moveFocus(1), nil
	case key.Matches(msg, keys.Dropdown.Prev):
		return m.moveFocus(-1), nil
	}

	if m.focusKey == 0 {
		if key.Matches(msg, keys.Dropdown.Toggle) {
			return m.SetOpen(false), nil
		}
	} else if it, ok := m.item(m.focusKey); ok {
		if req, ok := it.HandleKey(msg); ok {
			return m.mediate(req)
		}
	}

	if m.typeAhead && msg.Type == tea.KeyRunes {
		m.query += string(msg.Runes)
		return m.jumpTo(m.query), nil
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if !isClick(msg) {
		return m, nil
	}
	if m.open {
		for _, it := range m.items {
			if req, ok := it.HandleClick(msg, m.hits); ok {
				m.focused = true
				return m.mediate(req)
			}
		}
	}
	if m.hits.InBounds(summaryZoneID(m.id), msg) {
		m.focused = true
		return m.Toggle(), nil
	}
	return m, nil
}

// mediate resolves a SelectionRequest into the new selection state.
func (m Model) mediate(req SelectionRequest) (Model, tea.Cmd) {
	if req.Owner != m.id {
		return m, nil
	}
	idx := m.indexOf(req.Source)
	if idx < 0 {
		log.Debug(log.CatDropdown, "Selection request from unknown item ignored", "id", m.id, "key", req.Source)
		return m, nil
	}

	m.items = slices.Clone(m.items)
	for i := range m.items {
		m.items[i].selected = i == idx
	}

	summary := m.items[idx]
	summary.selected = false
	summary.focusable = false
	m.summary = &summary
	m.value = summary.value

	m = m.SetOpen(false)
	m = m.syncFocusable()

	log.Debug(log.CatDropdown, "Selection mediated", "id", m.id, "value", m.value, "silent", req.Silent)
	if req.Silent {
		return m, nil
	}
	id := m.id
	return m, func() tea.Msg { return ChangedMsg{ID: id} }
}

// register adds an item without re-evaluating the selection invariant.
func (m Model) register(index int, spec ItemSpec) Model {
	m.nextKey++
	it := newItem(m.id, m.nextKey, spec)
	m.items = slices.Insert(slices.Clone(m.items), index, it)
	if spec.Selected {
		m, _ = m.mediate(it.ForceSelect(true))
	}
	return m
}

// reconcile restores the invariants after the registry changed: exactly one
// selected item when there are items, a summary sized to the widest item and
// focusability matching the open state.
func (m Model) reconcile() Model {
	if len(m.items) == 0 {
		m.value = ""
		m.summary = nil
		m.summaryWidth = 0
		m.focusKey = 0
		return m.syncFocusable()
	}

	if _, ok := m.Selected(); !ok {
		m, _ = m.mediate(m.items[0].ForceSelect(true))
	}

	width := 0
	for _, it := range m.items {
		width = max(width, lipgloss.Width(m.renderLabel(it.label)))
	}
	m.summaryWidth = width
	return m.syncFocusable()
}

// syncFocusable makes exactly the non-selected items focusable while open.
func (m Model) syncFocusable() Model {
	m.items = slices.Clone(m.items)
	for i := range m.items {
		m.items[i].focusable = m.open && !m.items[i].selected
	}
	if it, ok := m.item(m.focusKey); !ok || !it.focusable {
		m.focusKey = 0
	}
	return m
}

// focusStops lists the keyboard stops of the open list: the summary (0) then
// every focusable item in display order.
func (m Model) focusStops() []ItemKey {
	stops := []ItemKey{0}
	for _, it := range m.items {
		if it.focusable {
			stops = append(stops, it.key)
		}
	}
	return stops
}

func (m Model) moveFocus(delta int) Model {
	stops := m.focusStops()
	cur := slices.Index(stops, m.focusKey)
	if cur < 0 {
		cur = 0
	}
	m.focusKey = stops[(cur+delta+len(stops))%len(stops)]
	m.query = ""
	return m
}

// jumpTo focuses the focusable item whose label best matches query.
func (m Model) jumpTo(query string) Model {
	var (
		labels   []string
		itemKeys []ItemKey
	)
	for _, it := range m.items {
		if it.focusable {
			labels = append(labels, it.label)
			itemKeys = append(itemKeys, it.key)
		}
	}
	if matches := fuzzy.Find(query, labels); len(matches) > 0 {
		m.focusKey = itemKeys[matches[0].Index]
	}
	return m
}

func (m Model) renderLabel(label string) string {
	if m.itemMaxWidth > 0 {
		return wordwrap.String(label, m.itemMaxWidth)
	}
	return label
}

func (m Model) indexOf(k ItemKey) int {
	if k == 0 {
		return -1
	}
	return slices.IndexFunc(m.items, func(it Item) bool { return it.key == k })
}

func (m Model) item(k ItemKey) (Item, bool) {
	if idx := m.indexOf(k); idx >= 0 {
		return m.items[idx], true
	}
	return Item{}, false
}

func (m Model) lastWithValue(value string) (Item, bool) {
	for i := len(m.items) - 1; i >= 0; i-- {
		if m.items[i].value == value {
			return m.items[i], true
		}
	}
	return Item{}, false
}
