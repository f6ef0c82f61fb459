package tui

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lorescape/waymark/internal/mode"
	"github.com/lorescape/waymark/internal/transfer"
	"github.com/lorescape/waymark/internal/util"
)

const (
	headerHeight = 1
	footerHeight = 2
	panelWidth   = 34
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type importResultMsg struct {
	kind   string
	report transfer.Report
	err    error
}

// importCmd reads and imports a file off the update loop.
func (m Model) importCmd(kind, path string) tea.Cmd {
	markers := m.deps.Markers
	routes := m.deps.Routes
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return importResultMsg{kind: kind, err: fmt.Errorf("cannot read %s: %w", path, err)}
		}
		var report transfer.Report
		if kind == "markers" {
			report, err = transfer.ImportMarkers(markers, data)
		} else {
			report, err = transfer.ImportRoutes(routes, data)
		}
		return importResultMsg{kind: kind, report: report, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.panel.SetSize(panelWidth-2, max(4, m.height-headerHeight-footerHeight-2))

	case tickMsg:
		m.refreshWorld()
		m.drainRequests()
		return m, tick()

	case importResultMsg:
		m.reportImport(msg)

	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.MouseMsg:
		m.updateMouse(msg)
		m.drainRequests()
	}

	return m, nil
}

// drainRequests turns queued dispatcher callbacks into open forms.
func (m *Model) drainRequests() {
	for _, p := range m.deps.MarkerDialogs.Drain() {
		m.form = newMarkerForm(p)
	}
	for _, path := range m.deps.FinishedRoutes.Drain() {
		m.form = newRouteForm(path)
	}
}

func (m *Model) reportImport(msg importResultMsg) {
	if msg.err != nil {
		switch {
		case errors.Is(msg.err, transfer.ErrParse):
			m.deps.Notes.Errorf("Import failed: file is not valid JSON")
		case errors.Is(msg.err, transfer.ErrFormat):
			m.deps.Notes.Errorf("Import failed: expected a JSON array of %s", msg.kind)
		case errors.Is(msg.err, transfer.ErrNoValidRecords):
			m.deps.Notes.Errorf("Import failed: no valid %s found", msg.kind)
		default:
			m.deps.Notes.Errorf("Import failed: %v", msg.err)
		}
		m.status = "import failed"
		return
	}
	if msg.report.Partial() {
		m.deps.Notes.Warningf("%s", msg.report.String())
	} else {
		m.deps.Notes.Successf("%s", msg.report.String())
	}
	m.status = fmt.Sprintf("imported %d %s", msg.report.Imported, msg.kind)
	m.refreshWorld()
	m.refreshPanel()
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// an open form captures everything
	if m.form != nil {
		switch msg.String() {
		case "esc":
			m.form = nil
			if m.deps.Modes.Mode() == mode.PlacingMarker && m.deps.UI.SingleShotMarker {
				m.deps.Modes.Exit()
			}
			m.status = "cancelled"
			return m, nil
		case "tab", "down":
			m.form.moveFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.form.moveFocus(-1)
			return m, nil
		case "enter":
			m.submitForm()
			return m, nil
		}
		return m, m.form.update(msg)
	}

	// then the confirmation dialog
	if d := m.deps.Dialogs.Active(); d != nil {
		switch msg.String() {
		case "y", "enter":
			m.deps.Dialogs.Confirm()
			m.refreshWorld()
			m.refreshPanel()
		case "n", "esc":
			m.deps.Dialogs.Cancel()
			m.status = "cancelled"
		}
		return m, nil
	}

	// then the import path prompt
	if m.importKind != "" {
		switch msg.String() {
		case "esc":
			m.importKind = ""
			m.importInput.Blur()
			m.status = "import cancelled"
			return m, nil
		case "enter":
			path := m.importInput.Value()
			kind := m.importKind
			m.importKind = ""
			m.importInput.Blur()
			if path == "" {
				m.status = "import cancelled"
				return m, nil
			}
			m.status = "importing " + kind
			return m, m.importCmd(kind, path)
		}
		var cmd tea.Cmd
		m.importInput, cmd = m.importInput.Update(msg)
		return m, cmd
	}

	// panel gets navigation keys while visible
	if m.showPanel {
		if m.panel.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.panel, cmd = m.panel.Update(msg)
			return m, cmd
		}
		switch msg.String() {
		case "up", "down", "j", "k", "/", "pgup", "pgdown":
			var cmd tea.Cmd
			m.panel, cmd = m.panel.Update(msg)
			return m, cmd
		case "d":
			m.deleteSelected()
			return m, nil
		}
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "m":
		switch m.deps.Modes.ToggleMarkerMode() {
		case mode.PlacingMarker:
			m.status = "placing marker: click the map"
		default:
			m.status = "idle"
		}
	case "r":
		switch m.deps.Modes.ToggleRouteMode() {
		case mode.DrawingRoute:
			m.status = "drawing route: click points, double-click or enter to finish"
		default:
			m.status = "idle"
		}
	case "esc":
		m.deps.Modes.Exit()
		m.status = "idle"
	case "enter":
		if m.deps.Modes.Mode() == mode.DrawingRoute {
			if path, ok := m.deps.Modes.FinishRoute(); ok {
				m.form = newRouteForm(path)
			} else {
				m.deps.Notes.Warningf("A route needs at least two points")
			}
		}
	case "+", "=":
		if m.zoom < 64 {
			m.zoom *= 1.2
			m.deps.Disp.ZoomChanged(m.zoom)
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "-", "_":
		if m.zoom > 0.05 {
			m.zoom /= 1.2
			m.deps.Disp.ZoomChanged(m.zoom)
			m.status = fmt.Sprintf("zoom: %.2fx", m.zoom)
		}
	case "up":
		m.offsetY--
	case "down":
		m.offsetY++
	case "left":
		m.offsetX -= 2
	case "right":
		m.offsetX += 2
	case "tab":
		m.showPanel = !m.showPanel
		if m.showPanel {
			m.refreshPanel()
			m.panel.SetSize(panelWidth-2, max(4, m.height-headerHeight-footerHeight-2))
		}
	case "h":
		m.helpVisible = !m.helpVisible
	case "e":
		m.export("markers", func() (string, error) {
			return transfer.ExportMarkers(m.deps.Markers, m.deps.DataDir)
		})
	case "E":
		m.export("routes", func() (string, error) {
			return transfer.ExportRoutes(m.deps.Routes, m.deps.DataDir)
		})
	case "g":
		m.export("markers", func() (string, error) {
			return transfer.ExportMarkersGeoJSON(m.deps.Markers, m.deps.DataDir)
		})
	case "G":
		m.export("routes", func() (string, error) {
			return transfer.ExportRoutesGeoJSON(m.deps.Routes, m.deps.DataDir)
		})
	case "i":
		m.importKind = "markers"
		m.importInput.SetValue("")
		m.importInput.Focus()
	case "I":
		m.importKind = "routes"
		m.importInput.SetValue("")
		m.importInput.Focus()
	case "x":
		m.confirmClear("markers", len(m.deps.Markers.Custom()), m.deps.Markers.ClearAll)
	case "X":
		m.confirmClear("routes", len(m.deps.Routes.Custom()), m.deps.Routes.ClearAll)
	}
	return m, nil
}

func (m *Model) export(kind string, run func() (string, error)) {
	path, err := run()
	switch {
	case errors.Is(err, transfer.ErrNoRecords):
		m.deps.Notes.Infof("No custom %s to export", kind)
	case err != nil:
		m.deps.Notes.Errorf("Export failed: %v", err)
	default:
		m.deps.Notes.Successf("Exported %s to %s", kind, path)
		m.status = "exported " + kind
	}
}

func (m *Model) confirmClear(kind string, count int, clear func()) {
	if count == 0 {
		m.deps.Notes.Infof("No custom %s to clear", kind)
		return
	}
	notes := m.deps.Notes
	m.deps.Dialogs.ShowConfirm(
		"Clear custom "+kind,
		fmt.Sprintf("Delete all %d custom %s? This cannot be undone.", count, kind),
		"Delete",
		"",
		func() {
			clear()
			notes.Successf("Removed %d custom %s", count, kind)
		},
	)
}

func (m *Model) submitForm() {
	switch m.form.kind {
	case formMarker:
		rec, err := m.form.marker()
		if err != nil {
			m.deps.Notes.Errorf("%v", err)
			return
		}
		added := m.deps.Markers.Add(rec)
		m.deps.Notes.Successf("Marker %q created", added.Name)
		m.status = "marker created"
		if m.deps.UI.SingleShotMarker && m.deps.Modes.Mode() == mode.PlacingMarker {
			m.deps.Modes.Exit()
		}
	case formRoute:
		rec, err := m.form.route()
		if err != nil {
			m.deps.Notes.Errorf("%v", err)
			return
		}
		added := m.deps.Routes.Add(rec)
		m.deps.Notes.Successf("Route %q created", added.Name)
		m.status = "route created"
	}
	m.form = nil
	m.refreshWorld()
	m.refreshPanel()
}

func (m *Model) updateMouse(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	if m.form != nil || m.deps.Dialogs.Active() != nil || m.importKind != "" {
		return
	}

	mapW, mapH, originX, originY := m.mapArea()
	cx, cy := msg.X-originX, msg.Y-originY
	if cx < 0 || cx >= mapW || cy < 0 || cy >= mapH {
		return
	}
	p, ok := m.cellToPoint(cx, cy, mapW, mapH)
	if !ok {
		return
	}

	now := time.Now()
	cell := [2]int{cx, cy}
	if now.Sub(m.lastPress) < doubleClickWindow && cell == m.lastPressCell {
		// the first press of the pair already ran as a single click
		m.deps.Disp.DoubleClick(p)
		m.lastPress = time.Time{}
		return
	}
	m.deps.Disp.Click(p)
	m.lastPress = now
	m.lastPressCell = cell
}

// mapArea computes the map viewport geometry; View uses the same
// numbers to lay the screen out.
func (m Model) mapArea() (w, h, originX, originY int) {
	sidebar := 0
	if m.showPanel {
		sidebar = panelWidth + 1
	}
	w = max(10, m.width-sidebar)
	h = max(4, m.height-headerHeight-footerHeight)
	return w, h, sidebar, headerHeight
}

// panelItem adapts a custom record for the bubbles list.
type panelItem struct {
	id      string
	kind    string
	name    string
	details string
}

func (i panelItem) Title() string       { return i.name }
func (i panelItem) Description() string { return i.details }
func (i panelItem) FilterValue() string { return i.name }

func (m *Model) refreshPanel() {
	var items []list.Item
	for _, rec := range m.deps.Markers.Custom() {
		items = append(items, panelItem{
			id:      rec.ID,
			kind:    "marker",
			name:    util.Truncate(rec.Name, 28),
			details: fmt.Sprintf("marker/%s %.3f, %.3f", rec.Type, rec.Location.Lat(), rec.Location.Lon()),
		})
	}
	for _, rec := range m.deps.Routes.Custom() {
		items = append(items, panelItem{
			id:      rec.ID,
			kind:    "route",
			name:    util.Truncate(rec.Name, 28),
			details: fmt.Sprintf("route/%s %d points", rec.Type, len(rec.Path)),
		})
	}
	m.panel.SetItems(items)
}

func (m *Model) deleteSelected() {
	item, ok := m.panel.SelectedItem().(panelItem)
	if !ok {
		return
	}
	markers := m.deps.Markers
	routes := m.deps.Routes
	notes := m.deps.Notes
	m.deps.Dialogs.ShowConfirm(
		"Delete "+item.kind,
		fmt.Sprintf("Delete %s %q?", item.kind, item.name),
		"Delete",
		"",
		func() {
			removed := false
			if item.kind == "marker" {
				removed = markers.Delete(item.id)
			} else {
				removed = routes.Delete(item.id)
			}
			if removed {
				notes.Successf("Deleted %s %q", item.kind, item.name)
			} else {
				notes.Warningf("%s %q was already gone", item.kind, item.name)
			}
		},
	)
}
