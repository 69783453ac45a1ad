package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/frameless/internal/config"
)

// explainPaths lists every setting shown on the sources tab.
var explainPaths = []string{
	"border_thickness",
	"resize_enabled",
	"move_enabled",
	"native_drag",
	"highlight_border",
	"log_level",
	"display",
	"quit_key",
	"maximize_key",
	"window.title",
	"window.x",
	"window.y",
	"window.width",
	"window.height",
	"window.min_width",
	"window.min_height",
	"window.title_bar_height",
	"window.background",
	"window.panel.enabled",
	"window.panel.x",
	"window.panel.y",
	"window.panel.width",
	"window.panel.height",
	"window.panel.min_width",
	"window.panel.min_height",
}

// sourceItem is one explained setting.
type sourceItem struct {
	path   string
	value  any
	source config.Source
}

func (i sourceItem) Title() string {
	return i.path + " = " + fmt.Sprint(i.value)
}

func (i sourceItem) Description() string {
	return FormatSource(i.source)
}

func (i sourceItem) FilterValue() string { return i.path }

// FormatSource renders where a setting came from.
func FormatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceDefault:
		return "default"
	default:
		return string(src.Kind)
	}
}

// SourcesTab lists where each effective setting was defined. It reflects
// the config as loaded, not unsaved edits.
type SourcesTab struct {
	list   list.Model
	width  int
	height int
}

// NewSourcesTab creates a SourcesTab from a load result.
func NewSourcesTab(res *config.LoadResult) SourcesTab {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("15")).
		BorderForeground(lipgloss.Color("62"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("250")).
		BorderForeground(lipgloss.Color("62"))

	l := list.New(buildSourceItems(res), delegate, 0, 0)
	l.Title = "Sources"
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	return SourcesTab{list: l}
}

func buildSourceItems(res *config.LoadResult) []list.Item {
	if res == nil {
		return nil
	}
	items := make([]list.Item, 0, len(explainPaths))
	for _, path := range explainPaths {
		value, src, err := config.Explain(res, path)
		if err != nil {
			continue
		}
		items = append(items, sourceItem{path: path, value: value, source: src})
	}
	return items
}

// Filtering reports whether the list is capturing keys for its filter.
func (s SourcesTab) Filtering() bool {
	return s.list.FilterState() == list.Filtering
}

// Update implements tea.Model.
func (s SourcesTab) Update(msg tea.Msg) (SourcesTab, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		s.width = msg.Width
		s.height = msg.Height
		s.list.SetSize(s.width, s.height)
		return s, nil
	}
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

// View implements tea.Model.
func (s SourcesTab) View() string {
	if len(s.list.Items()) == 0 {
		return renderEmpty("No config loaded", s.width, s.height)
	}
	return lipgloss.NewStyle().
		Width(s.width).
		Height(s.height).
		Render(s.list.View())
}
