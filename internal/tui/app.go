package tui

import (
	"fmt"
	"os"
	"reflect"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/1broseidon/frameless/internal/config"
)

// Run opens the config editor for path, or the default config path when
// path is empty.
func Run(path string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("config editor requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	if path == "" {
		p, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	_, err := tea.NewProgram(newModel(path), tea.WithAltScreen()).Run()
	return err
}

// model is the root bubbletea model for the TUI.
type model struct {
	configPath string
	result     *config.LoadResult
	cfg        *config.Config
	loadErr    error

	activeTab Tab

	engineTab  EngineTab
	windowTab  WindowTab
	hitMapTab  HitMapTab
	sourcesTab SourcesTab

	// Save overlay
	originalConfig *config.Config
	saveOverlay    SaveOverlay

	width  int
	height int
}

func newModel(configPath string) model {
	m := model{
		configPath: configPath,
		activeTab:  TabEngine,
	}

	res, err := config.LoadFromPath(configPath)
	if err != nil {
		// Still editable; saving writes a fresh valid file.
		m.loadErr = err
		m.cfg = config.DefaultConfig()
	} else {
		m.result = res
		m.cfg = res.Config
	}
	m.originalConfig = cloneConfig(m.cfg)

	m.engineTab = NewEngineTab(m.cfg)
	m.windowTab = NewWindowTab(m.cfg)
	m.hitMapTab = NewHitMapTab(m.cfg)
	m.sourcesTab = NewSourcesTab(m.result)

	return m
}

// dirty reports whether the config differs from what was loaded or last
// saved.
func (m model) dirty() bool {
	return !reflect.DeepEqual(m.originalConfig, m.cfg)
}

// capturing reports whether the active tab consumes all keys.
func (m model) capturing() bool {
	switch m.activeTab {
	case TabEngine:
		return m.engineTab.editing
	case TabWindow:
		return m.windowTab.editing
	case TabSources:
		return m.sourcesTab.Filtering()
	}
	return false
}

func (m model) resize(msg tea.WindowSizeMsg) model {
	m.width = msg.Width
	m.height = msg.Height
	// status bar (1) + tab bar (2 with margin) + help bar (1)
	sub := tea.WindowSizeMsg{Width: m.width, Height: max(m.height-4, 1)}
	m.engineTab, _ = m.engineTab.Update(sub)
	m.windowTab, _ = m.windowTab.Update(sub)
	m.hitMapTab, _ = m.hitMapTab.Update(sub)
	m.sourcesTab, _ = m.sourcesTab.Update(sub)
	return m
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		return m.resize(size), nil
	}

	// Save overlay captures all input when active
	if m.saveOverlay.Active() {
		if km, ok := msg.(tea.KeyMsg); ok {
			if km.String() == "ctrl+c" {
				return m, tea.Quit
			}
			prevPhase := m.saveOverlay.phase
			m.saveOverlay = m.saveOverlay.Update(km, m.cfg, m.configPath)
			if prevPhase == savePreview && m.saveOverlay.SaveSucceeded() {
				m.originalConfig = cloneConfig(m.cfg)
				m.loadErr = nil
			}
		}
		return m, nil
	}

	// ctrl+s triggers save overlay from any context (including form editing)
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+s" {
		m.saveOverlay.Show(m.originalConfig, m.cfg)
		return m, nil
	}

	if m.capturing() {
		if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.delegate(msg)
	}

	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil
		case "1":
			m.activeTab = TabEngine
			return m, nil
		case "2":
			m.activeTab = TabWindow
			return m, nil
		case "3":
			m.activeTab = TabHitMap
			return m, nil
		case "4":
			m.activeTab = TabSources
			return m, nil
		}
	}

	return m.delegate(msg)
}

func (m model) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case TabEngine:
		m.engineTab, cmd = m.engineTab.Update(msg)
	case TabWindow:
		m.windowTab, cmd = m.windowTab.Update(msg)
	case TabHitMap:
		m.hitMapTab, cmd = m.hitMapTab.Update(msg)
	case TabSources:
		m.sourcesTab, cmd = m.sourcesTab.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.configPath, m.dirty(), m.loadErr, m.width)
	tabBar := renderTabBar(m.activeTab, m.width)
	helpBar := renderHelpBar(m.width)

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(tabBar) + lipgloss.Height(helpBar)
	contentHeight := max(m.height-usedHeight, 1)

	var content string
	if m.saveOverlay.Active() {
		content = m.saveOverlay.View(m.width, contentHeight)
	} else {
		switch m.activeTab {
		case TabEngine:
			content = m.engineTab.View()
		case TabWindow:
			content = m.windowTab.View()
		case TabHitMap:
			content = m.hitMapTab.View()
		case TabSources:
			content = m.sourcesTab.View()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		tabBar,
		content,
		helpBar,
	)
}
