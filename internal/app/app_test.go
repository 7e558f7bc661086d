package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/xselect/internal/config"
	"github.com/zjrosen/xselect/internal/pubsub"
	"github.com/zjrosen/xselect/internal/ui/shared/dropdown"
	"github.com/zjrosen/xselect/internal/watcher"
)

// TestMain initializes the global zone manager for all tests in this package.
func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

type rect struct{ x0, y0, x1, y1 int }

// fakeHits gives every dropdown a fixed screen block: field i occupies rows
// stride*i onwards, summary on the first three rows, one item per row from +4.
type fakeHits map[string]rect

func (f fakeHits) InBounds(zoneID string, msg tea.MouseMsg) bool {
	r, ok := f[zoneID]
	return ok && msg.X >= r.x0 && msg.X <= r.x1 && msg.Y >= r.y0 && msg.Y <= r.y1
}

func (f fakeHits) layout(m Model) { f.layoutEvery(m, 10) }

// layoutEvery places fields stride rows apart. A stride of 3 stacks the
// summaries the way the form renders them, so an open list covers the
// summary of the next field.
func (f fakeHits) layoutEvery(m Model, stride int) {
	for k := range f {
		delete(f, k)
	}
	for i, fl := range m.fields {
		top := stride * i
		id := fl.dd.ID()
		items := fl.dd.Items()
		f[dropdown.SummaryZoneID(id)] = rect{0, top, 19, top + 2}
		f[dropdown.ListZoneID(id)] = rect{0, top + 3, 19, top + 4 + len(items)}
		for j, it := range items {
			f[dropdown.ItemZoneID(id, it.Key())] = rect{1, top + 4 + j, 18, top + 4 + j}
		}
	}
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease}
}

func testConfig() config.Config {
	cfg := config.Defaults()
	cfg.Dropdowns = config.DefaultDropdowns()
	return cfg
}

func createTestModel(t *testing.T, cfg config.Config) (Model, fakeHits) {
	t.Helper()
	hits := fakeHits{}
	m := New(Options{Config: cfg, Hits: hits})
	hits.layout(m)
	t.Cleanup(func() { _ = m.Close() })
	return m, hits
}

// send applies msg and feeds back any synchronous follow-up messages
// (ChangedMsg) the way the Bubble Tea runtime would.
func send(m Model, msg tea.Msg) Model {
	next, cmd := m.Update(msg)
	m = next.(Model)
	for _, out := range drain(cmd) {
		next, _ = m.Update(out)
		m = next.(Model)
	}
	return m
}

// drain runs cmd, flattening batches.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func keyPress(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func TestApp_MountsConfiguredDropdowns(t *testing.T) {
	m, _ := createTestModel(t, testConfig())

	require.Len(t, m.fields, 2)
	require.Equal(t, map[string]string{"waveform": "sine", "octave": "4"}, m.Values())
	require.Equal(t, "waveform", m.FocusedID())
	require.Empty(t, m.Changes(), "mount-time selections are not user changes")
}

func TestApp_EmptyConfigUsesDefaults(t *testing.T) {
	m, _ := createTestModel(t, config.Defaults())
	require.Len(t, m.fields, len(config.DefaultDropdowns()))
}

func TestApp_TabCyclesFocus(t *testing.T) {
	m, _ := createTestModel(t, testConfig())

	m = send(m, keyPress(tea.KeyTab))
	require.Equal(t, "octave", m.FocusedID())
	wave, _ := m.Dropdown("waveform")
	require.False(t, wave.Focused())

	m = send(m, keyPress(tea.KeyTab))
	require.Equal(t, "waveform", m.FocusedID(), "focus wraps")

	m = send(m, keyPress(tea.KeyShiftTab))
	require.Equal(t, "octave", m.FocusedID())
}

func TestApp_KeyboardSelectionIsRecorded(t *testing.T) {
	m, _ := createTestModel(t, testConfig())

	m = send(m, keyPress(tea.KeyEnter))
	wave, _ := m.Dropdown("waveform")
	require.True(t, wave.IsOpen())

	// Tab moves inside the open list instead of between fields
	m = send(m, keyPress(tea.KeyTab))
	require.Equal(t, "waveform", m.FocusedID())

	m = send(m, keyPress(tea.KeyEnter))
	require.Equal(t, "square", m.Values()["waveform"])

	changes := m.Changes()
	require.Len(t, changes, 1)
	require.Equal(t, "waveform", changes[0].ID)
	require.Equal(t, "square", changes[0].Value)
}

func TestApp_EscClosesThenTabMovesField(t *testing.T) {
	m, _ := createTestModel(t, testConfig())

	m = send(m, keyPress(tea.KeyEnter))
	m = send(m, keyPress(tea.KeyEsc))
	wave, _ := m.Dropdown("waveform")
	require.False(t, wave.IsOpen())

	m = send(m, keyPress(tea.KeyTab))
	require.Equal(t, "octave", m.FocusedID())
}

func TestApp_QuitKeys(t *testing.T) {
	m, _ := createTestModel(t, testConfig())

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = m.Update(keyPress(tea.KeyCtrlC))
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_HelpToggle(t *testing.T) {
	m, _ := createTestModel(t, testConfig())
	require.False(t, m.help.ShowAll)
	m = send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	require.True(t, m.help.ShowAll)
}

func TestApp_OutsideClickClosesOpenDropdown(t *testing.T) {
	m, _ := createTestModel(t, testConfig())

	m = send(m, click(5, 1))
	wave, _ := m.Dropdown("waveform")
	require.True(t, wave.IsOpen())
	require.Equal(t, 1, m.hub.Len())

	m = send(m, click(60, 5))
	wave, _ = m.Dropdown("waveform")
	require.False(t, wave.IsOpen())
	require.Equal(t, "sine", wave.Value())
	require.Equal(t, 0, m.hub.Len())
	require.Empty(t, m.Changes())
}

func TestApp_ClickOtherDropdownSwitchesOpenList(t *testing.T) {
	m, _ := createTestModel(t, testConfig())

	m = send(m, click(5, 1))
	// Summary of the second dropdown
	m = send(m, click(5, 11))

	wave, _ := m.Dropdown("waveform")
	oct, _ := m.Dropdown("octave")
	require.False(t, wave.IsOpen())
	require.True(t, oct.IsOpen())
	require.Equal(t, "octave", m.FocusedID())
	require.Equal(t, 1, m.hub.Len(), "only the open dropdown is watching")
}

func TestApp_ClickItemSelects(t *testing.T) {
	m, _ := createTestModel(t, testConfig())

	m = send(m, click(5, 11))
	// Octave items are 2,3,4,5 on rows 14..17
	m = send(m, click(5, 17))

	require.Equal(t, "5", m.Values()["octave"])
	require.Len(t, m.Changes(), 1)
}

func TestApp_ClickOnListOverSiblingOnlySelects(t *testing.T) {
	m, hits := createTestModel(t, testConfig())
	hits.layoutEvery(m, 3)

	m = send(m, keyPress(tea.KeyEnter))
	require.Equal(t, 1, m.hub.Len())

	// Square sits on row 5, which is also inside the octave summary (rows 3..5)
	oct, _ := m.Dropdown("octave")
	require.True(t, oct.Hit(click(5, 5)))
	m = send(m, click(5, 5))

	wave, _ := m.Dropdown("waveform")
	oct, _ = m.Dropdown("octave")
	require.Equal(t, "square", wave.Value())
	require.False(t, wave.IsOpen())
	require.False(t, oct.IsOpen(), "click must not reach the dropdown under the list")
	require.Equal(t, "waveform", m.FocusedID())
	require.Equal(t, 0, m.hub.Len())
	require.Len(t, m.Changes(), 1)
}

func TestApp_ClickSiblingSummaryWhenNotCovered(t *testing.T) {
	m, hits := createTestModel(t, testConfig())
	hits.layoutEvery(m, 3)

	// With every list closed the octave summary is the topmost zone
	m = send(m, click(5, 4))

	wave, _ := m.Dropdown("waveform")
	oct, _ := m.Dropdown("octave")
	require.False(t, wave.IsOpen())
	require.True(t, oct.IsOpen())
	require.Equal(t, "octave", m.FocusedID())
}

func TestApp_ChangeLogIsBounded(t *testing.T) {
	m, _ := createTestModel(t, testConfig())
	for i := 0; i < maxChanges+3; i++ {
		m = send(m, dropdown.ChangedMsg{ID: "waveform"})
	}
	require.Len(t, m.Changes(), maxChanges)

	m = send(m, dropdown.ChangedMsg{ID: "ghost"})
	require.Len(t, m.Changes(), maxChanges)
}

func TestApp_View(t *testing.T) {
	m, _ := createTestModel(t, testConfig())
	m = send(m, tea.WindowSizeMsg{Width: 80, Height: 30})

	view := m.View()
	require.Contains(t, view, "Waveform")
	require.Contains(t, view, "Octave")
	require.Contains(t, view, "Sine")
	require.NotContains(t, view, "Square", "closed list is not rendered")
	require.Contains(t, view, "No changes yet")

	m = send(m, keyPress(tea.KeyEnter))
	view = m.View()
	require.Contains(t, view, "Square")
	require.Contains(t, view, "Ramp down")
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

const reloadBase = `dropdowns:
  - id: waveform
    label: Waveform
    items:
      - label: Sine
      - label: Square
  - id: octave
    label: Octave
    items:
      - label: "3"
      - label: "4"
`

func TestApp_ReloadAppliesStructuralChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, reloadBase)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	m := New(Options{Config: cfg, ConfigPath: path, Hits: fakeHits{}})
	t.Cleanup(func() { _ = m.Close() })
	m = send(m, keyPress(tea.KeyTab))
	m = send(m, keyPress(tea.KeyEnter))
	require.Equal(t, 1, m.hub.Len(), "octave is open")
	next, _ := m.Update(dropdown.SelectionRequest{Owner: "waveform", Source: mustItem(t, m, "waveform", "Square").Key()})
	m = next.(Model)
	require.Equal(t, "Square", m.Values()["waveform"])

	writeFile(t, path, `dropdowns:
  - id: waveform
    label: Wave
    items:
      - label: Ramp
      - label: Sine
      - label: Square
  - id: filter
    label: Filter
    items:
      - label: lowpass
`)
	next, cmd := m.Update(pubsub.Event[watcher.WatcherEvent]{Payload: watcher.WatcherEvent{Kind: watcher.ConfigChanged, Path: path}})
	m = next.(Model)
	require.NotNil(t, cmd)

	require.Equal(t, map[string]string{"waveform": "Square", "filter": "lowpass"}, m.Values(),
		"selection survives reload, new dropdown mounted, removed one dropped")
	require.Equal(t, "Wave", m.fields[0].label)
	require.Equal(t, "waveform", m.FocusedID(), "focused dropdown was removed, focus falls back to the first")
	require.Equal(t, 0, m.hub.Len(), "removed dropdown released its outside-click subscription")
	require.True(t, m.toaster.Visible())
	require.Contains(t, m.toaster.Message(), "reloaded")
}

func TestApp_ReloadKeepsOpenListWhenSelectionSurvives(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, reloadBase)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	m := New(Options{Config: cfg, ConfigPath: path, Hits: fakeHits{}})
	t.Cleanup(func() { _ = m.Close() })
	m = send(m, keyPress(tea.KeyEnter))
	require.Equal(t, 1, m.hub.Len())

	reload := pubsub.Event[watcher.WatcherEvent]{Payload: watcher.WatcherEvent{Kind: watcher.ConfigChanged, Path: path}}
	next, _ := m.Update(reload)
	m = next.(Model)

	wave, _ := m.Dropdown("waveform")
	require.True(t, wave.IsOpen())
	require.Equal(t, "Sine", wave.Value())
	require.Equal(t, 1, m.hub.Len(), "old watcher replaced, not leaked")
	require.Empty(t, m.Changes())

	writeFile(t, path, strings.Replace(reloadBase, "- label: Sine", "- label: Saw", 1))
	next, _ = m.Update(reload)
	m = next.(Model)

	wave, _ = m.Dropdown("waveform")
	require.Equal(t, "Saw", wave.Value())
	require.False(t, wave.IsOpen(), "a replaced selection closes the list")
	require.Equal(t, 0, m.hub.Len())
}

func TestApp_ReloadErrorKeepsForm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, reloadBase)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	m := New(Options{Config: cfg, ConfigPath: path, Hits: fakeHits{}})
	t.Cleanup(func() { _ = m.Close() })

	writeFile(t, path, "dropdowns:\n  - label: no id\n")
	next, _ := m.Update(pubsub.Event[watcher.WatcherEvent]{Payload: watcher.WatcherEvent{Kind: watcher.ConfigChanged}})
	m = next.(Model)

	require.Len(t, m.fields, 2)
	require.Contains(t, m.toaster.Message(), "id is required")
}

func TestApp_WatcherErrorIsNotFatal(t *testing.T) {
	m, _ := createTestModel(t, testConfig())
	next, cmd := m.Update(pubsub.Event[watcher.WatcherEvent]{Payload: watcher.WatcherEvent{Kind: watcher.WatcherError}})
	require.Nil(t, cmd, "no listener without a watcher")
	require.Len(t, next.(Model).fields, 2)
}

func TestApp_CloseSavesSelections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "ui:\n  save_on_exit: true\n"+reloadBase)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.True(t, cfg.UI.SaveOnExit)

	m := New(Options{Config: cfg, ConfigPath: path, Hits: fakeHits{}})
	m.fields[0].dd, _ = m.fields[0].dd.SetValue("Square")
	require.NoError(t, m.Close())

	saved, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "Square", saved.Dropdowns[0].Value)
	require.Equal(t, "3", saved.Dropdowns[1].Value)
}

func TestApp_WatchStartsListener(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, reloadBase)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	m := New(Options{Config: cfg, ConfigPath: path, Watch: true, Hits: fakeHits{}})
	t.Cleanup(func() { _ = m.Close() })
	require.NotNil(t, m.watcherListener)
	require.NotNil(t, m.Init())

	cfg.Flags = map[string]bool{"hot-reload": false}
	off := New(Options{Config: cfg, ConfigPath: path, Watch: true, Hits: fakeHits{}})
	t.Cleanup(func() { _ = off.Close() })
	require.Nil(t, off.watcherListener)
}

func TestApp_EndToEnd(t *testing.T) {
	m := New(Options{Config: testConfig()})
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 30))

	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	tm.Send(tea.KeyMsg{Type: tea.KeyDown})
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return bytes.Contains(bts, []byte("waveform = square"))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)
	require.Equal(t, "square", final.Values()["waveform"])
	require.Len(t, final.Changes(), 1)
}

func mustItem(t *testing.T, m Model, id, label string) dropdown.Item {
	t.Helper()
	dd, ok := m.Dropdown(id)
	require.True(t, ok)
	for _, it := range dd.Items() {
		if it.Label() == label {
			return it
		}
	}
	t.Fatalf("item %q not found in %s", label, id)
	return dropdown.Item{}
}
