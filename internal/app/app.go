// Package app contains the root application model: a form that lays out the
// configured dropdowns, owns the pointer hub they share and routes messages.
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/xselect/internal/config"
	"github.com/zjrosen/xselect/internal/flags"
	"github.com/zjrosen/xselect/internal/keys"
	"github.com/zjrosen/xselect/internal/log"
	"github.com/zjrosen/xselect/internal/pubsub"
	"github.com/zjrosen/xselect/internal/ui/overlay"
	"github.com/zjrosen/xselect/internal/ui/shared/dropdown"
	"github.com/zjrosen/xselect/internal/ui/styles"
	"github.com/zjrosen/xselect/internal/ui/toaster"
	"github.com/zjrosen/xselect/internal/watcher"
)

// maxChanges bounds the change log shown under the form.
const maxChanges = 5

// Change records one user selection.
type Change struct {
	ID    string
	Value string
	At    time.Time
}

// field is one labelled dropdown in the form.
type field struct {
	label string
	dd    dropdown.Model
}

// Options configures New.
type Options struct {
	Config     config.Config
	ConfigPath string
	// Watch enables hot reload of ConfigPath.
	Watch bool
	// Hits overrides rendered-bounds lookup. Defaults to bubblezone.
	Hits dropdown.HitTester
}

// Model is the root application state.
type Model struct {
	cfg        config.Config
	configPath string
	flags      *flags.Registry

	fields []field
	focus  int

	hub  *dropdown.PointerHub
	hits dropdown.HitTester

	changes []Change
	toaster toaster.Model
	help    help.Model

	width  int
	height int

	// File watcher for hot reload (pubsub-based)
	watcherHandle   *watcher.Watcher
	watcherCtx      context.Context
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[watcher.WatcherEvent]
}

// New creates the application model. Dropdowns are mounted from
// opts.Config; the first one receives focus.
func New(opts Options) Model {
	m := Model{
		cfg:        opts.Config,
		configPath: opts.ConfigPath,
		flags:      flags.New(opts.Config.Flags),
		hub:        dropdown.NewPointerHub(),
		hits:       opts.Hits,
		toaster:    toaster.New(),
		help:       help.New(),
	}
	if m.hits == nil {
		m.hits = dropdown.ZoneHitTester{}
	}

	for _, dc := range opts.Config.GetDropdowns() {
		m.fields = append(m.fields, m.mountField(dc))
	}
	if len(m.fields) > 0 {
		m.fields[0].dd = m.fields[0].dd.Focus()
	}

	if opts.Watch && opts.ConfigPath != "" && m.flags.Enabled(flags.FlagHotReload) {
		w, err := watcher.New(watcher.DefaultConfig(opts.ConfigPath))
		if err == nil {
			if err := w.Start(); err == nil {
				m.watcherHandle = w
				m.watcherCtx, m.watcherCancel = context.WithCancel(context.Background())
				m.watcherListener = pubsub.NewContinuousListener(m.watcherCtx, w.Broker())
			} else {
				_ = w.Stop()
				log.Warn(log.CatWatcher, "Failed to start config watcher", "error", err)
			}
		} else {
			log.Warn(log.CatWatcher, "Failed to create config watcher", "error", err)
		}
		// The form works without hot reload
	}

	log.Info(log.CatApp, "App initialized", "dropdowns", len(m.fields), "watch", m.watcherHandle != nil)
	return m
}

func (m Model) mountField(dc config.DropdownConfig) field {
	return field{
		label: dc.Label,
		dd: dropdown.New(dropdown.Config{
			ID:           dc.ID,
			Value:        dc.Value,
			Open:         dc.Open,
			Items:        itemSpecs(dc.Items),
			ItemMaxWidth: m.cfg.UI.ItemMaxWidth,
			TypeAhead:    m.flags.Enabled(flags.FlagTypeAhead),
			Hub:          m.hub,
			Hits:         m.hits,
		}),
	}
}

func itemSpecs(items []config.ItemConfig) []dropdown.ItemSpec {
	specs := make([]dropdown.ItemSpec, len(items))
	for i, it := range items {
		specs[i] = dropdown.ItemSpec{Label: it.Label, Value: it.Value, Selected: it.Selected}
	}
	return specs
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.listen()
}

// listen waits for the next watcher event, if watching.
func (m Model) listen() tea.Cmd {
	if m.watcherListener == nil {
		return nil
	}
	return m.watcherListener.Listen()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case dropdown.ChangedMsg:
		return m.recordChange(msg), nil

	case dropdown.SelectionRequest:
		return m.updateByID(msg.Owner, msg)

	case dropdown.OutsideClickMsg:
		return m.updateByID(msg.ID, msg)

	case dropdown.CloseRequestMsg:
		return m.updateByID(msg.ID, msg)

	case toaster.DismissMsg:
		m.toaster = m.toaster.Update(msg)
		return m, nil

	case pubsub.Event[watcher.WatcherEvent]:
		switch msg.Payload.Kind {
		case watcher.ConfigChanged:
			var cmd tea.Cmd
			m, cmd = m.reload()
			return m, tea.Batch(cmd, m.listen())

		case watcher.WatcherError:
			log.Warn(log.CatWatcher, "Watcher error received", "error", msg.Payload.Error)
			return m, m.listen()
		}
		return m, m.listen()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.Common.Quit) {
		return m, tea.Quit
	}

	// An open list owns the keyboard until it closes
	if f, ok := m.focused(); ok && f.dd.IsOpen() {
		return m.updateFocused(msg)
	}

	switch {
	case key.Matches(msg, keys.App.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.App.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, keys.App.NextField):
		return m.moveFocus(1), nil
	case key.Matches(msg, keys.App.PrevField):
		return m.moveFocus(-1), nil
	}
	return m.updateFocused(msg)
}

// handleMouse routes a mouse event through the pointer hub first, so open
// dropdowns learn about clicks outside them, then to the topmost dropdown
// under the pointer. Open lists are drawn over the fields below them, so
// they are hit-tested first and a click never reaches two dropdowns.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	for _, out := range m.hub.Dispatch(msg) {
		var (
			next tea.Model
			cmd  tea.Cmd
		)
		next, cmd = m.Update(out)
		m = next.(Model)
		cmds = append(cmds, cmd)
	}

	i := m.hitField(msg)
	if i < 0 {
		return m, tea.Batch(cmds...)
	}
	m.fields = cloneFields(m.fields)
	wasFocused := m.fields[i].dd.Focused()
	var cmd tea.Cmd
	m.fields[i].dd, cmd = m.fields[i].dd.Update(msg)
	cmds = append(cmds, cmd)
	if !wasFocused && m.fields[i].dd.Focused() {
		m = m.setFocus(i)
	}
	return m, tea.Batch(cmds...)
}

// hitField returns the index of the topmost dropdown under msg, or -1.
func (m Model) hitField(msg tea.MouseMsg) int {
	for i, f := range m.fields {
		if f.dd.IsOpen() && f.dd.Hit(msg) {
			return i
		}
	}
	for i, f := range m.fields {
		if f.dd.Hit(msg) {
			return i
		}
	}
	return -1
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := m.focused(); !ok {
		return m, nil
	}
	m.fields = cloneFields(m.fields)
	var cmd tea.Cmd
	m.fields[m.focus].dd, cmd = m.fields[m.focus].dd.Update(msg)
	return m, cmd
}

func (m Model) updateByID(id string, msg tea.Msg) (tea.Model, tea.Cmd) {
	i := m.indexOf(id)
	if i < 0 {
		log.Debug(log.CatApp, "Message for unknown dropdown dropped", "id", id)
		return m, nil
	}
	m.fields = cloneFields(m.fields)
	var cmd tea.Cmd
	m.fields[i].dd, cmd = m.fields[i].dd.Update(msg)
	return m, cmd
}

func (m Model) recordChange(msg dropdown.ChangedMsg) Model {
	i := m.indexOf(msg.ID)
	if i < 0 {
		return m
	}
	c := Change{ID: msg.ID, Value: m.fields[i].dd.Value(), At: time.Now()}
	log.Info(log.CatApp, "Selection changed", "id", c.ID, "value", c.Value)

	m.changes = append(m.changes, c)
	if len(m.changes) > maxChanges {
		m.changes = m.changes[len(m.changes)-maxChanges:]
	}
	return m
}

// reload re-reads the config file and applies it as structural changes:
// known dropdowns get their items replaced, new ones are mounted and
// missing ones are unmounted.
func (m Model) reload() (Model, tea.Cmd) {
	cfg, err := config.Load(m.configPath)
	if err != nil {
		log.ErrorErr(log.CatConfig, "Config reload failed", err, "path", m.configPath)
		var cmd tea.Cmd
		m.toaster, cmd = m.toaster.Show("Reload failed: "+err.Error(), toaster.StyleError, toaster.DefaultDuration)
		return m, cmd
	}

	focusedID := ""
	if f, ok := m.focused(); ok {
		focusedID = f.dd.ID()
	}

	m.cfg = cfg
	m.flags = flags.New(cfg.Flags)

	fields := make([]field, 0, len(cfg.GetDropdowns()))
	kept := make(map[string]bool)
	for _, dc := range cfg.GetDropdowns() {
		i := m.indexOf(dc.ID)
		if i < 0 {
			fields = append(fields, m.mountField(dc))
			continue
		}
		kept[dc.ID] = true
		f := m.fields[i]
		f.label = dc.Label
		wasOpen, value := f.dd.IsOpen(), f.dd.Value()
		f.dd = f.dd.SetItems(keepSelection(itemSpecs(dc.Items), value))
		if wasOpen && f.dd.Value() == value {
			// Replacing the items mediates the kept selection, which closes
			// the list; reopen it when the user's choice survived.
			f.dd = f.dd.SetOpen(true)
		}
		fields = append(fields, f)
	}
	for _, f := range m.fields {
		if !kept[f.dd.ID()] {
			// Only the hub subscription matters; the model is discarded.
			f.dd.Unmount()
		}
	}

	m.fields = fields
	m.focus = 0
	for i := range m.fields {
		m.fields[i].dd = m.fields[i].dd.Blur()
		if m.fields[i].dd.ID() == focusedID {
			m.focus = i
		}
	}
	if len(m.fields) > 0 {
		m.fields[m.focus].dd = m.fields[m.focus].dd.Focus()
	}

	log.Info(log.CatConfig, "Config reloaded", "path", m.configPath, "dropdowns", len(m.fields))
	var cmd tea.Cmd
	m.toaster, cmd = m.toaster.Show("Config reloaded", toaster.StyleSuccess, toaster.DefaultDuration)
	return m, cmd
}

// keepSelection marks the item carrying value as selected unless the new
// markup selects something itself.
func keepSelection(specs []dropdown.ItemSpec, value string) []dropdown.ItemSpec {
	for _, s := range specs {
		if s.Selected {
			return specs
		}
	}
	for i := len(specs) - 1; i >= 0; i-- {
		v := specs[i].Value
		if v == "" {
			v = specs[i].Label
		}
		if v == value {
			specs[i].Selected = true
			break
		}
	}
	return specs
}

func (m Model) moveFocus(delta int) Model {
	if len(m.fields) == 0 {
		return m
	}
	return m.setFocus((m.focus + delta + len(m.fields)) % len(m.fields))
}

func (m Model) setFocus(i int) Model {
	m.fields = cloneFields(m.fields)
	for j := range m.fields {
		if j == i {
			m.fields[j].dd = m.fields[j].dd.Focus()
		} else {
			m.fields[j].dd = m.fields[j].dd.Blur()
		}
	}
	m.focus = i
	return m
}

func (m Model) focused() (field, bool) {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return field{}, false
	}
	return m.fields[m.focus], true
}

func (m Model) indexOf(id string) int {
	for i, f := range m.fields {
		if f.dd.ID() == id {
			return i
		}
	}
	return -1
}

func cloneFields(fields []field) []field {
	out := make([]field, len(fields))
	copy(out, fields)
	return out
}

// Values returns the current value of every dropdown keyed by ID.
func (m Model) Values() map[string]string {
	values := make(map[string]string, len(m.fields))
	for _, f := range m.fields {
		values[f.dd.ID()] = f.dd.Value()
	}
	return values
}

// Changes returns the recorded user selections, oldest first.
func (m Model) Changes() []Change {
	return append([]Change(nil), m.changes...)
}

// Dropdown returns the dropdown with the given ID.
func (m Model) Dropdown(id string) (dropdown.Model, bool) {
	if i := m.indexOf(id); i >= 0 {
		return m.fields[i].dd, true
	}
	return dropdown.Model{}, false
}

// FocusedID returns the ID of the dropdown holding keyboard focus.
func (m Model) FocusedID() string {
	if f, ok := m.focused(); ok {
		return f.dd.ID()
	}
	return ""
}

// View implements tea.Model.
func (m Model) View() string {
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		styles.LabelFocusedStyle.Render("xselect"),
		" ",
		styles.MutedStyle.Render(m.configPath),
	)
	top := lipgloss.Height(header) + 1

	labelWidth := 0
	for _, f := range m.fields {
		labelWidth = max(labelWidth, lipgloss.Width(f.label))
	}

	rows := make([]string, 0, len(m.fields))
	anchors := make([]overlay.Config, 0, len(m.fields))
	y := top
	for i, f := range m.fields {
		labelStyle := styles.LabelStyle
		if i == m.focus {
			labelStyle = styles.LabelFocusedStyle
		}
		// Label sits on the middle row of the summary box
		label := labelStyle.Width(labelWidth).Render("\n" + f.label)
		row := lipgloss.JoinHorizontal(lipgloss.Top, label, " ", f.dd.View())

		rows = append(rows, row)
		anchors = append(anchors, overlay.Config{
			Width:  m.width,
			Height: m.height,
			X:      labelWidth + 1,
			Y:      y,
			Clamp:  m.cfg.UI.ClampListToViewport,
		})
		y += lipgloss.Height(row)
	}

	sections := []string{header, ""}
	sections = append(sections, rows...)
	sections = append(sections, "", m.changeLogView())
	if m.cfg.UI.ShowHelp {
		sections = append(sections, "", m.help.View(keys.App))
	}
	view := lipgloss.JoinVertical(lipgloss.Left, sections...)

	for i, f := range m.fields {
		view = f.dd.Overlay(view, anchors[i])
	}
	view = m.toaster.Overlay(view, m.width, m.height)

	return zone.Scan(view)
}

func (m Model) changeLogView() string {
	if len(m.changes) == 0 {
		return styles.MutedStyle.Render("No changes yet")
	}
	lines := make([]string, 0, len(m.changes))
	for i := len(m.changes) - 1; i >= 0; i-- {
		c := m.changes[i]
		line := fmt.Sprintf("%s %s = %s", c.At.Format("15:04:05"), c.ID, c.Value)
		if i == len(m.changes)-1 {
			lines = append(lines, styles.SuccessStyle.Render(line))
		} else {
			lines = append(lines, styles.MutedStyle.Render(line))
		}
	}
	return strings.Join(lines, "\n")
}

// Close releases resources held by the application. When ui.save_on_exit is
// set the current values are written back to the config file.
func (m *Model) Close() error {
	for i := range m.fields {
		m.fields[i].dd = m.fields[i].dd.Unmount()
	}

	// Cancel watcher subscription context (stops listener)
	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return fmt.Errorf("stopping config watcher: %w", err)
		}
		m.watcherHandle = nil
	}

	if m.cfg.UI.SaveOnExit && m.configPath != "" {
		if err := config.SaveSelections(m.configPath, m.Values()); err != nil {
			return fmt.Errorf("saving selections: %w", err)
		}
		log.Info(log.CatConfig, "Saved selections", "path", m.configPath)
	}
	return nil
}
