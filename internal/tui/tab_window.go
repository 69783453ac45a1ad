package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/frameless/internal/config"
)

// WindowTab edits the demo window and its embedded panel.
type WindowTab struct {
	cfg *config.Config

	width  int
	height int

	editing bool
	form    *huh.Form

	fTitle      string
	fX          string
	fY          string
	fWidth      string
	fHeight     string
	fMinWidth   string
	fMinHeight  string
	fTitleBar   string
	fBackground string

	fPanelEnabled   bool
	fPanelX         string
	fPanelY         string
	fPanelWidth     string
	fPanelHeight    string
	fPanelMinWidth  string
	fPanelMinHeight string
}

// NewWindowTab creates a WindowTab for cfg.
func NewWindowTab(cfg *config.Config) WindowTab {
	return WindowTab{cfg: cfg}
}

// Update implements tea.Model.
func (w WindowTab) Update(msg tea.Msg) (WindowTab, tea.Cmd) {
	if w.editing {
		return w.updateEditing(msg)
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "e" && w.cfg != nil {
			w.startEditing()
			return w, w.form.Init()
		}
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
	}
	return w, nil
}

func (w WindowTab) updateEditing(msg tea.Msg) (WindowTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			w.editing = false
			w.form = nil
			return w, nil
		}
	case tea.WindowSizeMsg:
		w.width = msg.Width
		w.height = msg.Height
	}

	form, cmd := w.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		w.form = f
	}

	if w.form.State == huh.StateCompleted {
		w.applyForm()
		w.editing = false
		w.form = nil
		return w, nil
	}
	return w, cmd
}

func (w *WindowTab) startEditing() {
	win := w.cfg.Window

	w.fTitle = win.Title
	w.fX = strconv.Itoa(win.X)
	w.fY = strconv.Itoa(win.Y)
	w.fWidth = strconv.Itoa(win.Width)
	w.fHeight = strconv.Itoa(win.Height)
	w.fMinWidth = strconv.Itoa(win.MinWidth)
	w.fMinHeight = strconv.Itoa(win.MinHeight)
	w.fTitleBar = strconv.Itoa(win.TitleBarHeight)
	w.fBackground = win.Background

	p := win.Panel
	w.fPanelEnabled = p.Enabled
	w.fPanelX = strconv.Itoa(p.X)
	w.fPanelY = strconv.Itoa(p.Y)
	w.fPanelWidth = strconv.Itoa(p.Width)
	w.fPanelHeight = strconv.Itoa(p.Height)
	w.fPanelMinWidth = strconv.Itoa(p.MinWidth)
	w.fPanelMinHeight = strconv.Itoa(p.MinHeight)

	w.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Value(&w.fTitle),
			intInput("x", "X", "Negative centers on the pointer's monitor", &w.fX, math.MinInt32),
			intInput("y", "Y", "Negative centers on the pointer's monitor", &w.fY, math.MinInt32),
			intInput("width", "Width", "", &w.fWidth, 1),
			intInput("height", "Height", "", &w.fHeight, 1),
		),
		huh.NewGroup(
			intInput("min_width", "Minimum Width", "Resizes never go below this", &w.fMinWidth, 0),
			intInput("min_height", "Minimum Height", "Resizes never go below this", &w.fMinHeight, 0),
			intInput("title_bar_height", "Title Bar Height", "Drag area at the top; 0 drags anywhere", &w.fTitleBar, 0),
			huh.NewInput().
				Key("background").
				Title("Background").
				Description("#rrggbb").
				Value(&w.fBackground),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Key("panel_enabled").
				Title("Embedded Panel").
				Description("Independently movable child panel").
				Affirmative("On").
				Negative("Off").
				Value(&w.fPanelEnabled),
			intInput("panel_x", "Panel X", "Relative to the window", &w.fPanelX, 0),
			intInput("panel_y", "Panel Y", "Relative to the window", &w.fPanelY, 0),
			intInput("panel_width", "Panel Width", "", &w.fPanelWidth, 1),
			intInput("panel_height", "Panel Height", "", &w.fPanelHeight, 1),
			intInput("panel_min_width", "Panel Minimum Width", "", &w.fPanelMinWidth, 0),
			intInput("panel_min_height", "Panel Minimum Height", "", &w.fPanelMinHeight, 0),
		),
	).WithWidth(formWidth(w.width)).WithShowHelp(true).WithShowErrors(true)

	w.editing = true
}

func (w *WindowTab) applyForm() {
	if w.cfg == nil {
		return
	}
	win := &w.cfg.Window
	win.Title = w.fTitle
	applyInt(&win.X, w.fX)
	applyInt(&win.Y, w.fY)
	applyInt(&win.Width, w.fWidth)
	applyInt(&win.Height, w.fHeight)
	applyInt(&win.MinWidth, w.fMinWidth)
	applyInt(&win.MinHeight, w.fMinHeight)
	applyInt(&win.TitleBarHeight, w.fTitleBar)
	win.Background = strings.TrimSpace(w.fBackground)

	p := &win.Panel
	p.Enabled = w.fPanelEnabled
	applyInt(&p.X, w.fPanelX)
	applyInt(&p.Y, w.fPanelY)
	applyInt(&p.Width, w.fPanelWidth)
	applyInt(&p.Height, w.fPanelHeight)
	applyInt(&p.MinWidth, w.fPanelMinWidth)
	applyInt(&p.MinHeight, w.fPanelMinHeight)
}

// View implements tea.Model.
func (w WindowTab) View() string {
	if w.editing && w.form != nil {
		return renderEditing("Editing Window", w.form, w.width, w.height)
	}
	if w.cfg == nil {
		return renderEmpty("No config loaded", w.width, w.height)
	}
	win := w.cfg.Window

	position := fmt.Sprintf("%d,%d", win.X, win.Y)
	if win.X < 0 || win.Y < 0 {
		position = "centered"
	}
	titleBar := strconv.Itoa(win.TitleBarHeight) + " px"
	if win.TitleBarHeight == 0 {
		titleBar = "(drag anywhere)"
	}
	panel := "off"
	if win.Panel.Enabled {
		p := win.Panel
		panel = fmt.Sprintf("%dx%d+%d+%d  min %dx%d", p.Width, p.Height, p.X, p.Y, p.MinWidth, p.MinHeight)
	}

	swatch := lipgloss.NewStyle().Background(lipgloss.Color(win.Background)).Render("   ")

	lines := []string{
		"",
		row("Title", displayOrDefault(win.Title, "(none)")),
		row("Position", position),
		row("Size", fmt.Sprintf("%dx%d", win.Width, win.Height)),
		row("Minimum Size", fmt.Sprintf("%dx%d", win.MinWidth, win.MinHeight)),
		row("Title Bar", titleBar),
		row("Background", win.Background+" ") + swatch,
		"",
		row("Panel", panel),
		"",
		dimStyle.Render("  Press 'e' to edit settings"),
	}

	return lipgloss.NewStyle().
		Width(w.width).
		Height(w.height).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}
