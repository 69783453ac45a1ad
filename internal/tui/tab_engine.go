package tui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/frameless/internal/config"
)

// EngineTab edits the interaction engine settings.
type EngineTab struct {
	cfg *config.Config

	width  int
	height int

	editing bool
	form    *huh.Form

	// Form-bound values (strings for huh inputs, converted on submit)
	fBorder      string
	fResize      bool
	fMove        bool
	fNativeDrag  config.NativeDragMode
	fHighlight   bool
	fLogLevel    string
	fQuitKey     string
	fMaximizeKey string
}

// NewEngineTab creates an EngineTab for cfg.
func NewEngineTab(cfg *config.Config) EngineTab {
	return EngineTab{cfg: cfg}
}

// Update implements tea.Model.
func (e EngineTab) Update(msg tea.Msg) (EngineTab, tea.Cmd) {
	if e.editing {
		return e.updateEditing(msg)
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "e" && e.cfg != nil {
			e.startEditing()
			return e, e.form.Init()
		}
	case tea.WindowSizeMsg:
		e.width = msg.Width
		e.height = msg.Height
	}
	return e, nil
}

func (e EngineTab) updateEditing(msg tea.Msg) (EngineTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			e.editing = false
			e.form = nil
			return e, nil
		}
	case tea.WindowSizeMsg:
		e.width = msg.Width
		e.height = msg.Height
	}

	form, cmd := e.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.form = f
	}

	if e.form.State == huh.StateCompleted {
		e.applyForm()
		e.editing = false
		e.form = nil
		return e, nil
	}
	return e, cmd
}

func (e *EngineTab) startEditing() {
	cfg := e.cfg

	e.fBorder = strconv.Itoa(cfg.BorderThickness)
	e.fResize = cfg.ResizeEnabled
	e.fMove = cfg.MoveEnabled
	e.fNativeDrag = cfg.NativeDrag
	e.fHighlight = cfg.HighlightBorder
	e.fLogLevel = cfg.LogLevel
	e.fQuitKey = cfg.QuitKey
	e.fMaximizeKey = cfg.MaximizeKey

	e.form = huh.NewForm(
		huh.NewGroup(
			intInput("border_thickness", "Border Thickness",
				"Width in pixels of the resize band on each edge", &e.fBorder, 1),

			huh.NewConfirm().
				Key("resize_enabled").
				Title("Resize").
				Description("Drag the border to resize").
				Affirmative("On").
				Negative("Off").
				Value(&e.fResize),

			huh.NewConfirm().
				Key("move_enabled").
				Title("Move").
				Description("Drag the window body to move it").
				Affirmative("On").
				Negative("Off").
				Value(&e.fMove),

			huh.NewSelect[config.NativeDragMode]().
				Key("native_drag").
				Title("Native Drag").
				Description("Hand moves and resizes to the window manager").
				Options(
					huh.NewOption("auto", config.NativeDragAuto),
					huh.NewOption("on", config.NativeDragOn),
					huh.NewOption("off", config.NativeDragOff),
				).
				Value(&e.fNativeDrag),

			huh.NewConfirm().
				Key("highlight_border").
				Title("Highlight Border").
				Description("Fade in the border under the pointer (ebiten demo)").
				Affirmative("On").
				Negative("Off").
				Value(&e.fHighlight),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("log_level").
				Title("Log Level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&e.fLogLevel),

			huh.NewInput().
				Key("quit_key").
				Title("Quit Key").
				Description("Key sequence that closes the demo window").
				Value(&e.fQuitKey).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errRequired
					}
					return nil
				}),

			huh.NewInput().
				Key("maximize_key").
				Title("Maximize Key").
				Description("Key sequence that toggles maximized (empty disables)").
				Value(&e.fMaximizeKey),
		),
	).WithWidth(formWidth(e.width)).WithShowHelp(true).WithShowErrors(true)

	e.editing = true
}

func (e *EngineTab) applyForm() {
	if e.cfg == nil {
		return
	}
	applyInt(&e.cfg.BorderThickness, e.fBorder)
	e.cfg.ResizeEnabled = e.fResize
	e.cfg.MoveEnabled = e.fMove
	e.cfg.NativeDrag = e.fNativeDrag
	e.cfg.HighlightBorder = e.fHighlight
	e.cfg.LogLevel = e.fLogLevel
	e.cfg.QuitKey = strings.TrimSpace(e.fQuitKey)
	e.cfg.MaximizeKey = strings.TrimSpace(e.fMaximizeKey)
}

// View implements tea.Model.
func (e EngineTab) View() string {
	if e.editing && e.form != nil {
		return renderEditing("Editing Engine Settings", e.form, e.width, e.height)
	}
	cfg := e.cfg
	if cfg == nil {
		return renderEmpty("No config loaded", e.width, e.height)
	}

	lines := []string{
		"",
		row("Border Thickness", strconv.Itoa(cfg.BorderThickness)+" px"),
		row("Resize", onOff(cfg.ResizeEnabled)),
		row("Move", onOff(cfg.MoveEnabled)),
		row("Native Drag", string(cfg.NativeDrag)),
		row("Highlight Border", onOff(cfg.HighlightBorder)),
		"",
		row("Log Level", cfg.LogLevel),
		row("Quit Key", cfg.QuitKey),
		row("Maximize Key", displayOrDefault(cfg.MaximizeKey, "(disabled)")),
		"",
		dimStyle.Render("  Press 'e' to edit settings"),
	}

	return lipgloss.NewStyle().
		Width(e.width).
		Height(e.height).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}
