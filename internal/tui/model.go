// Package tui is the terminal front end: a pannable, zoomable map of
// the annotation records with creation modes, record panels, and
// import/export flows.
package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lorescape/waymark/internal/config"
	"github.com/lorescape/waymark/internal/dispatcher"
	"github.com/lorescape/waymark/internal/mode"
	"github.com/lorescape/waymark/internal/model"
	"github.com/lorescape/waymark/internal/notify"
	"github.com/lorescape/waymark/internal/queue"
	"github.com/lorescape/waymark/internal/store"
)

// doubleClickWindow is how quickly a second press on the same cell
// counts as a double click.
const doubleClickWindow = 400 * time.Millisecond

// Deps carries everything the UI talks to.
type Deps struct {
	Markers *store.Store[model.MarkerRecord]
	Routes  *store.Store[model.RouteRecord]
	Modes   *mode.Controller
	Disp    *dispatcher.Dispatcher
	Notes   *notify.Center
	Dialogs *notify.Dialogs
	UI      config.UIConfig
	DataDir string
	Logger  *slog.Logger

	// MarkerDialogs and FinishedRoutes carry dispatcher callback
	// results into the update loop.
	MarkerDialogs  *queue.Queue[model.Point]
	FinishedRoutes *queue.Queue[[]model.Point]
}

type bbox struct {
	MinX, MinY, MaxX, MaxY float64
}

type Model struct {
	deps Deps

	width  int
	height int

	zoom    float64
	offsetX int
	offsetY int

	status string

	helpVisible bool

	// world extent covering every visible record
	world bbox

	// last rendered map size
	mapW int
	mapH int

	// double click detection
	lastPress     time.Time
	lastPressCell [2]int

	// records panel
	showPanel bool
	panel     list.Model

	// active creation form, nil when none
	form *recordForm

	// import path prompt; importKind is empty when inactive
	importKind  string
	importInput textinput.Model
}

// New builds the UI model. Deps must be fully populated.
func New(deps Deps) Model {
	m := Model{
		deps:        deps,
		zoom:        1.0,
		status:      "waymark ready",
		helpVisible: true,
	}

	d := list.NewDefaultDelegate()
	m.panel = list.New(nil, d, 0, 0)
	m.panel.Title = "Custom records"
	m.panel.SetShowHelp(false)
	m.panel.SetShowStatusBar(false)
	m.panel.SetFilteringEnabled(true)

	m.importInput = textinput.New()
	m.importInput.Placeholder = "path to import file"
	m.importInput.CharLimit = 0

	m.refreshWorld()
	return m
}

func (m Model) Init() tea.Cmd { return tick() }

// refreshWorld recomputes the world extent from every record plus the
// pending path, with a small margin so edge records stay visible.
func (m *Model) refreshWorld() {
	first := true
	grow := func(p model.Point) {
		x, y := p.Lon(), p.Lat()
		if first {
			m.world = bbox{MinX: x, MinY: y, MaxX: x, MaxY: y}
			first = false
			return
		}
		if x < m.world.MinX {
			m.world.MinX = x
		}
		if x > m.world.MaxX {
			m.world.MaxX = x
		}
		if y < m.world.MinY {
			m.world.MinY = y
		}
		if y > m.world.MaxY {
			m.world.MaxY = y
		}
	}

	for _, rec := range m.deps.Markers.All() {
		grow(rec.Location)
	}
	for _, rec := range m.deps.Routes.All() {
		for _, p := range rec.Path {
			grow(p)
		}
	}
	for _, p := range m.deps.Modes.PendingPath() {
		grow(p)
	}
	if first {
		m.world = bbox{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}
		return
	}

	padX := (m.world.MaxX - m.world.MinX) * 0.05
	padY := (m.world.MaxY - m.world.MinY) * 0.05
	if padX == 0 {
		padX = 1
	}
	if padY == 0 {
		padY = 1
	}
	m.world.MinX -= padX
	m.world.MaxX += padX
	m.world.MinY -= padY
	m.world.MaxY += padY
}
