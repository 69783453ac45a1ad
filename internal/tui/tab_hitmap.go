package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/frameless/internal/config"
	"github.com/1broseidon/frameless/internal/geometry"
)

// probeDrag is the pointer offset used to preview a resize from the probe.
var probeDrag = geometry.Point{X: 40, Y: 40}

// HitMapTab draws the border hit-test regions of the configured window at
// terminal resolution. A movable probe reports what a press there would do.
type HitMapTab struct {
	cfg *config.Config

	width  int
	height int

	probeCol int
	probeRow int
}

// NewHitMapTab creates a HitMapTab for cfg.
func NewHitMapTab(cfg *config.Config) HitMapTab {
	return HitMapTab{cfg: cfg}
}

// Update implements tea.Model.
func (h HitMapTab) Update(msg tea.Msg) (HitMapTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.width = msg.Width
		h.height = msg.Height
	case tea.KeyMsg:
		cols, rows := h.canvasSize()
		switch msg.String() {
		case "left", "h":
			h.probeCol--
		case "right", "l":
			h.probeCol++
		case "up", "k":
			h.probeRow--
		case "down", "j":
			h.probeRow++
		case "home", "g":
			h.probeCol, h.probeRow = 0, 0
		}
		h.probeCol = clamp(h.probeCol, 0, cols-1)
		h.probeRow = clamp(h.probeRow, 0, rows-1)
	}
	return h, nil
}

// canvasSize leaves room for the legend and probe report.
func (h HitMapTab) canvasSize() (int, int) {
	return max(h.width-4, 8), max(h.height-6, 4)
}

// View implements tea.Model.
func (h HitMapTab) View() string {
	if h.cfg == nil {
		return renderEmpty("No config loaded", h.width, h.height)
	}
	cols, rows := h.canvasSize()
	lines := renderHitMap(h.cfg, cols, rows)

	probeStyle := lipgloss.NewStyle().Reverse(true)
	if h.probeRow < len(lines) {
		line := []rune(lines[h.probeRow])
		if h.probeCol < len(line) {
			lines[h.probeRow] = string(line[:h.probeCol]) +
				probeStyle.Render(string(line[h.probeCol])) +
				string(line[h.probeCol+1:])
		}
	}

	legend := dimStyle.Render(`| - \ /  resize bands   = title bar   : panel   arrows/hjkl: move probe`)
	report := valueStyle.Render(describeProbe(h.cfg, h.probeCol, h.probeRow, cols, rows))

	return lipgloss.NewStyle().
		Width(h.width).
		Height(h.height).
		Padding(0, 2).
		Render(strings.Join(lines, "\n") + "\n\n" + legend + "\n" + report)
}

// cellSpan returns the pixel range [lo, hi) covered by cell i of n along an
// axis of size pixels.
func cellSpan(i, n, size int) (int, int) {
	lo := i * size / n
	hi := (i + 1) * size / n
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// sample picks the pixel of [lo, hi) that a hit test for the band layout of
// [start, end] should use, so a band narrower than a cell is never skipped.
func sample(lo, hi, start, end, border int) int {
	switch {
	case lo <= start+border-1 && hi-1 >= start:
		return max(lo, start)
	case lo <= end && hi-1 >= end-border+1:
		return min(hi-1, end)
	default:
		return (lo + hi - 1) / 2
	}
}

// samplePoint picks the representative point of a cell for frame.
func samplePoint(frame geometry.Rect, x0, x1, y0, y1, border int) (geometry.Point, bool) {
	if x1-1 < frame.Left() || x0 > frame.Right() || y1-1 < frame.Top() || y0 > frame.Bottom() {
		return geometry.Point{}, false
	}
	return geometry.Point{
		X: sample(x0, x1, frame.Left(), frame.Right(), border),
		Y: sample(y0, y1, frame.Top(), frame.Bottom(), border),
	}, true
}

func directionGlyph(d geometry.Direction) rune {
	switch d {
	case geometry.Left, geometry.Right:
		return '|'
	case geometry.Up, geometry.Down:
		return '-'
	case geometry.TopLeft, geometry.BottomRight:
		return '\\'
	case geometry.TopRight, geometry.BottomLeft:
		return '/'
	default:
		return ' '
	}
}

func panelRect(cfg *config.Config) (geometry.Rect, bool) {
	p := cfg.Window.Panel
	if !p.Enabled {
		return geometry.Rect{}, false
	}
	return geometry.Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}, true
}

// renderHitMap renders the window in window-local pixels scaled to
// cols x rows cells.
func renderHitMap(cfg *config.Config, cols, rows int) []string {
	win := geometry.Rect{Width: cfg.Window.Width, Height: cfg.Window.Height}
	panel, hasPanel := panelRect(cfg)
	border := cfg.BorderThickness

	lines := make([]string, rows)
	var b strings.Builder
	for r := 0; r < rows; r++ {
		b.Reset()
		y0, y1 := cellSpan(r, rows, win.Height)
		for c := 0; c < cols; c++ {
			x0, x1 := cellSpan(c, cols, win.Width)
			b.WriteRune(cellGlyph(cfg, win, panel, hasPanel, border, x0, x1, y0, y1))
		}
		lines[r] = b.String()
	}
	return lines
}

func cellGlyph(cfg *config.Config, win, panel geometry.Rect, hasPanel bool, border, x0, x1, y0, y1 int) rune {
	if cfg.ResizeEnabled {
		if p, ok := samplePoint(win, x0, x1, y0, y1, border); ok {
			if dir, _ := geometry.ClassifyPoint(win, p, border); dir != geometry.None {
				return directionGlyph(dir)
			}
		}
	}
	if hasPanel {
		if p, ok := samplePoint(panel, x0, x1, y0, y1, border); ok {
			if cfg.ResizeEnabled {
				if dir, _ := geometry.ClassifyPoint(panel, p, border); dir != geometry.None {
					return directionGlyph(dir)
				}
			}
			return ':'
		}
	}
	if cfg.Window.TitleBarHeight > 0 && y0 < cfg.Window.TitleBarHeight {
		return '='
	}
	return ' '
}

// describeProbe reports the outcome of pressing at the probe cell.
func describeProbe(cfg *config.Config, col, row, cols, rows int) string {
	win := geometry.Rect{Width: cfg.Window.Width, Height: cfg.Window.Height}
	x0, x1 := cellSpan(col, cols, win.Width)
	y0, y1 := cellSpan(row, rows, win.Height)
	border := cfg.BorderThickness

	target, name := win, "window"
	minW, minH := cfg.Window.MinWidth, cfg.Window.MinHeight
	p, _ := samplePoint(win, x0, x1, y0, y1, border)
	dir := geometry.None
	if cfg.ResizeEnabled {
		dir, _ = geometry.ClassifyPoint(win, p, border)
	}

	if panel, ok := panelRect(cfg); ok && dir == geometry.None {
		if pp, inside := samplePoint(panel, x0, x1, y0, y1, border); inside {
			target, name, p = panel, "panel", pp
			minW, minH = cfg.Window.Panel.MinWidth, cfg.Window.Panel.MinHeight
			if cfg.ResizeEnabled {
				dir, _ = geometry.ClassifyPoint(panel, p, border)
			}
		}
	}

	if dir != geometry.None {
		resized := geometry.ComputeResizeRect(dir, target, p.Add(probeDrag), minW, minH)
		return fmt.Sprintf("%s %v: resize %s, cursor %s, drag %v -> %v",
			name, p, dir, dir.Cursor(), probeDrag, resized)
	}

	switch {
	case !cfg.MoveEnabled:
		return fmt.Sprintf("%s %v: move disabled", name, p)
	case name == "window" && cfg.Window.TitleBarHeight > 0 && p.Y >= cfg.Window.TitleBarHeight:
		return fmt.Sprintf("%s %v: below the title bar, press is ignored", name, p)
	default:
		return fmt.Sprintf("%s %v: move, cursor %s", name, p, geometry.CursorSizeAll)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
