package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/frameless/internal/config"
)

func TestCellSpanCoversAxis(t *testing.T) {
	const size, n = 800, 80
	next := 0
	for i := 0; i < n; i++ {
		lo, hi := cellSpan(i, n, size)
		if lo != next {
			t.Fatalf("cell %d starts at %d, want %d", i, lo, next)
		}
		next = hi
	}
	if next != size {
		t.Fatalf("cells end at %d, want %d", next, size)
	}
}

func TestSamplePrefersBands(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi int
		want   int
	}{
		{"low band", 0, 10, 0},
		{"high band", 790, 800, 799},
		{"interior", 400, 410, 404},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sample(tt.lo, tt.hi, 0, 799, 6); got != tt.want {
				t.Fatalf("sample = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRenderHitMap(t *testing.T) {
	cfg := config.DefaultConfig()
	lines := renderHitMap(cfg, 80, 30)
	if len(lines) != 30 {
		t.Fatalf("rows = %d, want 30", len(lines))
	}

	at := func(col, row int) byte { return lines[row][col] }
	checks := []struct {
		col, row int
		want     byte
	}{
		{0, 0, '\\'},
		{79, 29, '\\'},
		{79, 0, '/'},
		{0, 29, '/'},
		{40, 0, '-'},
		{40, 29, '-'},
		{0, 15, '|'},
		{79, 15, '|'},
		{40, 1, '='},
		{40, 15, ' '},
	}
	for _, c := range checks {
		if got := at(c.col, c.row); got != c.want {
			t.Errorf("cell (%d,%d) = %q, want %q", c.col, c.row, got, c.want)
		}
	}
}

func TestRenderHitMapPanelAndResizeDisabled(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Window.Panel.Enabled = true

	lines := renderHitMap(cfg, 80, 30)
	if got := lines[3][4]; got != '\\' {
		t.Fatalf("panel top-left corner = %q, want '\\\\'", got)
	}
	if got := lines[6][10]; got != ':' {
		t.Fatalf("panel interior = %q, want ':'", got)
	}

	cfg.ResizeEnabled = false
	lines = renderHitMap(cfg, 80, 30)
	if got := lines[15][0]; got != ' ' {
		t.Fatalf("left edge with resize disabled = %q, want ' '", got)
	}
	if got := lines[3][4]; got != ':' {
		t.Fatalf("panel corner with resize disabled = %q, want ':'", got)
	}
}

func TestDescribeProbe(t *testing.T) {
	cfg := config.DefaultConfig()

	got := describeProbe(cfg, 79, 29, 80, 30)
	if !strings.Contains(got, "resize bottom-right") || !strings.Contains(got, "size-fdiag") {
		t.Fatalf("corner probe = %q", got)
	}
	if got := describeProbe(cfg, 40, 1, 80, 30); !strings.Contains(got, "move") {
		t.Fatalf("title bar probe = %q", got)
	}
	if got := describeProbe(cfg, 40, 15, 80, 30); !strings.Contains(got, "ignored") {
		t.Fatalf("body probe = %q", got)
	}

	cfg.MoveEnabled = false
	if got := describeProbe(cfg, 40, 1, 80, 30); !strings.Contains(got, "move disabled") {
		t.Fatalf("move disabled probe = %q", got)
	}
}

func TestComputeDiffLines(t *testing.T) {
	orig := config.DefaultConfig()
	curr := cloneConfig(orig)
	if lines := computeDiffLines(orig, curr); lines != nil {
		t.Fatalf("identical configs should have no diff, got %v", lines)
	}

	curr.BorderThickness = 8
	lines := computeDiffLines(orig, curr)
	var removed, added bool
	for _, l := range lines {
		switch {
		case l.kind == diffRemoved && l.text == "border_thickness: 6":
			removed = true
		case l.kind == diffAdded && l.text == "border_thickness: 8":
			added = true
		}
	}
	if !removed || !added {
		t.Fatalf("expected border_thickness change in diff, got %v", lines)
	}
}

func TestComputeDiffLinesNestedSection(t *testing.T) {
	orig := config.DefaultConfig()
	curr := cloneConfig(orig)
	curr.Window.Panel.Enabled = true
	curr.Window.Panel.Width = 300

	got := computeDiffLines(orig, curr)
	want := []diffLine{
		{diffContext, "window.panel:"},
		{diffRemoved, "window.panel.enabled: false"},
		{diffAdded, "window.panel.enabled: true"},
		{diffRemoved, "window.panel.width: 240"},
		{diffAdded, "window.panel.width: 300"},
	}
	if len(got) != len(want) {
		t.Fatalf("computeDiffLines = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFlattenConfig(t *testing.T) {
	settings, err := flattenConfig(config.DefaultConfig())
	if err != nil {
		t.Fatalf("flattenConfig: %v", err)
	}
	byPath := make(map[string]string, len(settings))
	for _, kv := range settings {
		byPath[kv.path] = kv.value
	}
	for path, want := range map[string]string{
		"border_thickness":       "6",
		"window.title":           "frameless",
		"window.x":               "-1",
		"window.panel.min_width": "80",
	} {
		if got := byPath[path]; got != want {
			t.Errorf("%s = %q, want %q", path, got, want)
		}
	}
}

func TestFormatSource(t *testing.T) {
	tests := []struct {
		src  config.Source
		want string
	}{
		{config.Source{Kind: config.SourceDefault}, "default"},
		{config.Source{Kind: config.SourceFile, File: "/c.yaml", Line: 3, Column: 5}, "file:/c.yaml:3:5"},
		{config.Source{Kind: config.SourceFile, File: "/c.yaml"}, "file:/c.yaml"},
	}
	for _, tt := range tests {
		if got := FormatSource(tt.src); got != tt.want {
			t.Errorf("FormatSource(%+v) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func send(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return out
}

func TestModelTabNavigation(t *testing.T) {
	m := newModel(filepath.Join(t.TempDir(), "config.yaml"))
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	if m.activeTab != TabHitMap {
		t.Fatalf("activeTab = %v, want %v", m.activeTab, TabHitMap)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.activeTab != TabSources {
		t.Fatalf("activeTab = %v, want %v", m.activeTab, TabSources)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.activeTab != TabHitMap {
		t.Fatalf("activeTab = %v, want %v", m.activeTab, TabHitMap)
	}
	if m.View() == "" {
		t.Fatalf("expected a rendered view")
	}
}

func TestModelSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m := newModel(path)
	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	m.cfg.BorderThickness = 9
	if !m.dirty() {
		t.Fatalf("edited config should be dirty")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.saveOverlay.phase != savePreview {
		t.Fatalf("phase = %v, want preview", m.saveOverlay.phase)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.saveOverlay.SaveSucceeded() {
		t.Fatalf("save failed: %v", m.saveOverlay.err)
	}
	if m.dirty() {
		t.Fatalf("saved config should not be dirty")
	}

	res, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("load saved: %v", err)
	}
	if res.Config.BorderThickness != 9 {
		t.Fatalf("saved border_thickness = %d, want 9", res.Config.BorderThickness)
	}
}

func TestModelSaveWithoutChanges(t *testing.T) {
	m := newModel(filepath.Join(t.TempDir(), "config.yaml"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.saveOverlay.phase != saveResult || m.saveOverlay.err == nil {
		t.Fatalf("expected a no-changes result, got phase %v err %v", m.saveOverlay.phase, m.saveOverlay.err)
	}
}
