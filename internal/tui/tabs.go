package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// Tab identifies a TUI tab.
type Tab int

const (
	TabEngine Tab = iota
	TabWindow
	TabHitMap
	TabSources
	tabCount // sentinel for iteration
)

func (t Tab) String() string {
	switch t {
	case TabEngine:
		return "Engine"
	case TabWindow:
		return "Window"
	case TabHitMap:
		return "Hit Map"
	case TabSources:
		return "Sources"
	default:
		return "?"
	}
}

var (
	tabStyle = lipgloss.NewStyle().Padding(0, 2)

	activeTab   = tabStyle.Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62"))
	inactiveTab = tabStyle.Foreground(lipgloss.Color("250")).Background(lipgloss.Color("236"))
	tabSep      = lipgloss.NewStyle().Background(lipgloss.Color("235")).Render(" ")

	barStyle = lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("250")).Padding(0, 1)
	dotColor = map[bool]lipgloss.Color{true: "226", false: "42"}
)

// renderTabBar numbers each tab from 1 and highlights active.
func renderTabBar(active Tab, width int) string {
	cells := make([]string, 0, 2*int(tabCount))
	for t := Tab(0); t < tabCount; t++ {
		if t > 0 {
			cells = append(cells, tabSep)
		}
		style := inactiveTab
		if t == active {
			style = activeTab
		}
		cells = append(cells, style.Render(strconv.Itoa(int(t)+1)+":"+t.String()))
	}
	return lipgloss.NewStyle().MarginBottom(1).Width(width).
		Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
}

// renderStatusBar shows the file being edited and whether it has unsaved
// changes. A load error means the editor fell back to the defaults.
func renderStatusBar(path string, dirty bool, loadErr error, width int) string {
	color, text := dotColor[dirty], path
	switch {
	case loadErr != nil:
		color, text = "196", loadErr.Error()+" (editing defaults)"
	case dirty:
		text += "  modified"
	}
	dot := lipgloss.NewStyle().Foreground(color).Render("●")
	return barStyle.Width(width).MaxHeight(1).Render(dot + " " + text)
}

func renderHelpBar(width int) string {
	return lipgloss.NewStyle().Width(width).Foreground(lipgloss.Color("241")).Padding(0, 1).
		Render("tab/shift-tab: switch tabs  1-4: jump to tab  e: edit  ctrl-s: save  q/ctrl-c: quit")
}
