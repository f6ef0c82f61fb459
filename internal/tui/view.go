package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lorescape/waymark/internal/mode"
	"github.com/lorescape/waymark/internal/notify"
	"github.com/lorescape/waymark/internal/util"
)

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	mapW, mapH, _, _ := m.mapArea()

	// Header
	title := titleStyle.Render(" waymark ─ map annotations ")
	counts := dimStyle.Render(fmt.Sprintf(" markers:%d routes:%d ",
		len(m.deps.Markers.All()), len(m.deps.Routes.All())))
	badge := ""
	if current := m.deps.Modes.Mode(); current != mode.Idle {
		badge = modeStyle.Render(" [" + current.String() + "] ")
	}
	header := lipgloss.NewStyle().Width(m.width).Render(
		lipgloss.JoinHorizontal(lipgloss.Top, title, badge, counts))

	// Map column, with any overlay centered inside it
	var mapView string
	switch {
	case m.form != nil:
		mapView = lipgloss.Place(mapW, mapH, lipgloss.Center, lipgloss.Center, m.form.view())
	case m.deps.Dialogs.Active() != nil:
		mapView = lipgloss.Place(mapW, mapH, lipgloss.Center, lipgloss.Center, m.renderDialog())
	case m.importKind != "":
		prompt := boxStyle.Render(
			titleStyle.Render("Import "+m.importKind) + "\n\n" +
				m.importInput.View() + "\n\n" +
				dimStyle.Render("enter import  esc cancel"))
		mapView = lipgloss.Place(mapW, mapH, lipgloss.Center, lipgloss.Center, prompt)
	default:
		mapView = lipgloss.NewStyle().Width(mapW).Height(mapH).Render(m.renderMap(mapW, mapH))
	}

	// Body row
	body := mapView
	if m.showPanel {
		sidebar := lipgloss.NewStyle().Width(panelWidth).Render(m.panel.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	// Footer: status line plus the live notifications
	status := dimStyle.Render(" " + m.status + " ")
	zoom := dimStyle.Render(fmt.Sprintf(" zoom %.2fx ", m.zoom))
	left := lipgloss.JoinHorizontal(lipgloss.Bottom, status, m.renderHelp())
	spacerW := max(0, m.width-lipgloss.Width(left)-lipgloss.Width(zoom))
	footerTop := lipgloss.NewStyle().Width(m.width).Render(
		lipgloss.JoinHorizontal(lipgloss.Bottom, left,
			lipgloss.Place(spacerW+lipgloss.Width(zoom), 1, lipgloss.Right, lipgloss.Center, zoom)))
	footer := lipgloss.JoinVertical(lipgloss.Left, footerTop, m.renderNotifications())

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(m.width).Height(m.height).Render(ui)
}

func (m Model) renderDialog() string {
	d := m.deps.Dialogs.Active()
	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Title))
	b.WriteString("\n\n")
	b.WriteString(d.Message)
	b.WriteString("\n\n")
	b.WriteString(okStyle.Render("y " + d.ConfirmLabel))
	b.WriteString(dimStyle.Render("   n " + d.CancelLabel))
	return boxStyle.Render(b.String())
}

func (m Model) renderNotifications() string {
	active := m.deps.Notes.Active()
	if len(active) == 0 {
		return " "
	}
	parts := make([]string, 0, len(active))
	for _, n := range active {
		msg := util.Truncate(n.Message, 60)
		switch n.Severity {
		case notify.Success:
			parts = append(parts, okStyle.Render(msg))
		case notify.Warning:
			parts = append(parts, warnStyle.Render(msg))
		case notify.Error:
			parts = append(parts, errStyle.Render(msg))
		default:
			parts = append(parts, infoStyle.Render(msg))
		}
	}
	line := " " + strings.Join(parts, dimStyle.Render("  ·  "))
	return lipgloss.NewStyle().Width(m.width).MaxHeight(1).Render(line)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"m marker",
		"r route",
		"↑↓←→ pan",
		"+/- zoom",
		"Tab records",
		"e/E export",
		"g/G geojson",
		"i/I import",
		"x/X clear",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}
