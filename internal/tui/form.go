package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lorescape/waymark/internal/model"
	"github.com/lorescape/waymark/internal/util"
)

type formKind int

const (
	formMarker formKind = iota
	formRoute
)

// recordForm is the in-TUI creation dialog for a marker or a route.
type recordForm struct {
	kind   formKind
	title  string
	labels []string
	inputs []textinput.Model
	focus  int

	// marker target
	location model.Point
	// route path, already complete when the form opens
	path []model.Point
}

func typeNames[T ~string](types []T) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, "/")
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 0
	in.Width = 40
	return in
}

func newMarkerForm(at model.Point) *recordForm {
	f := &recordForm{
		kind:     formMarker,
		title:    fmt.Sprintf("New marker at %.4f, %.4f", at.Lat(), at.Lon()),
		labels:   []string{"Name", "Type", "Description", "Link", "Major (y/n)"},
		location: at,
	}
	f.inputs = []textinput.Model{
		newInput("required"),
		newInput(typeNames(model.MarkerTypes)),
		newInput("optional"),
		newInput("optional"),
		newInput("n"),
	}
	f.inputs[0].Focus()
	return f
}

func newRouteForm(path []model.Point) *recordForm {
	f := &recordForm{
		kind:   formRoute,
		title:  fmt.Sprintf("New route with %d points", len(path)),
		labels: []string{"Name", "Type", "Color", "Width", "Description"},
		path:   path,
	}
	f.inputs = []textinput.Model{
		newInput("required"),
		newInput(typeNames(model.RouteTypes)),
		newInput(model.DefaultRouteColor),
		newInput(strconv.Itoa(model.DefaultRouteWidth)),
		newInput("optional"),
	}
	f.inputs[0].Focus()
	return f
}

func (f *recordForm) moveFocus(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *recordForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *recordForm) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

// marker builds the record from the form fields. The error names the
// field the user has to fix.
func (f *recordForm) marker() (model.MarkerRecord, error) {
	name := f.value(0)
	if name == "" {
		return model.MarkerRecord{}, fmt.Errorf("marker name is required")
	}
	typ := model.MarkerType(strings.ToLower(f.value(1)))
	if typ != "" && !model.ValidMarkerType(typ) {
		typ = model.MarkerUnknown
	}
	major := strings.HasPrefix(strings.ToLower(f.value(4)), "y")
	return model.MarkerRecord{
		Name:        name,
		Type:        typ,
		Location:    f.location,
		Description: f.value(2),
		Link:        f.value(3),
		Major:       major,
	}, nil
}

func (f *recordForm) route() (model.RouteRecord, error) {
	name := f.value(0)
	if name == "" {
		return model.RouteRecord{}, fmt.Errorf("route name is required")
	}
	typ := model.RouteType(strings.ToLower(f.value(1)))
	if typ != "" && !model.ValidRouteType(typ) {
		typ = model.RouteCustom
	}
	color := f.value(2)
	if color != "" && !util.ValidHexColor(color) {
		return model.RouteRecord{}, fmt.Errorf("color must be a hex value like %s", model.DefaultRouteColor)
	}
	width := 0
	if v := f.value(3); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return model.RouteRecord{}, fmt.Errorf("width must be a non-negative number")
		}
		width = parsed
	}
	return model.RouteRecord{
		Name:        name,
		Type:        typ,
		Path:        f.path,
		Description: f.value(4),
		Color:       color,
		Width:       width,
	}, nil
}

func (f *recordForm) view() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title))
	b.WriteString("\n\n")
	for i, in := range f.inputs {
		b.WriteString(fmt.Sprintf("%-12s %s\n", f.labels[i], in.View()))
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter save  tab next field  esc cancel"))
	return boxStyle.Render(b.String())
}
