package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/frameless/internal/config"
)

type savePhase int

const (
	saveHidden savePhase = iota
	savePreview
	saveResult
)

type diffKind int

const (
	diffContext diffKind = iota
	diffRemoved
	diffAdded
)

type diffLine struct {
	kind diffKind
	text string
}

// SaveOverlay reviews pending setting changes before writing them to disk.
// It moves from preview to result on save, and closes on any key after.
type SaveOverlay struct {
	phase     savePhase
	diffLines []diffLine
	offset    int
	savedTo   string
	err       error
}

var errNothingToSave = errors.New("no changes to save")

func (s SaveOverlay) Active() bool { return s.phase != saveHidden }

// SaveSucceeded reports whether the overlay shows a successful write.
func (s SaveOverlay) SaveSucceeded() bool { return s.phase == saveResult && s.err == nil }

// Show opens the overlay on the changes from original to current. With no
// changes it goes straight to the result screen.
func (s *SaveOverlay) Show(original, current *config.Config) {
	*s = SaveOverlay{diffLines: computeDiffLines(original, current), phase: savePreview}
	if len(s.diffLines) == 0 {
		s.phase, s.err = saveResult, errNothingToSave
	}
}

// Update consumes a key while the overlay is open. Confirming writes cfg to
// path.
func (s SaveOverlay) Update(msg tea.Msg, cfg *config.Config, path string) SaveOverlay {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s
	}
	if s.phase == saveResult {
		s.phase = saveHidden
		return s
	}
	if s.phase != savePreview {
		return s
	}
	switch km.String() {
	case "esc":
		s.phase = saveHidden
	case "enter", "y":
		if s.err = cfg.SaveTo(path); s.err == nil {
			s.savedTo = path
		}
		s.phase = saveResult
	case "up", "k":
		s.offset = max(s.offset-1, 0)
	case "down", "j":
		s.offset++
	}
	return s
}

func (s SaveOverlay) View(width, height int) string {
	if s.phase == savePreview {
		return s.viewPreview(width, height)
	}
	if s.phase == saveResult {
		return s.viewResult(width, height)
	}
	return ""
}

func (s SaveOverlay) viewPreview(areaW, areaH int) string {
	addStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	rmStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	// Title, blank lines, footer, border and padding take ten rows.
	rows := max(areaH-10, 3)
	off := min(s.offset, max(len(s.diffLines)-rows, 0))
	end := min(off+rows, len(s.diffLines))
	width := max(boxWidth(areaW, 80)-8, 8)

	lines := make([]string, 0, end-off)
	for _, dl := range s.diffLines[off:end] {
		t := dl.text
		if len(t) > width {
			t = t[:width]
		}
		switch dl.kind {
		case diffAdded:
			lines = append(lines, addStyle.Render("+ "+t))
		case diffRemoved:
			lines = append(lines, rmStyle.Render("- "+t))
		default:
			lines = append(lines, keyStyle.Render(t))
		}
	}

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Render("Save Config: Pending Changes")
	content := title + "\n\n" + strings.Join(lines, "\n") + "\n\n" +
		dimStyle.Render("enter: save  esc: cancel  j/k: scroll")
	return overlayBox(areaW, areaH, 80, content)
}

func (s SaveOverlay) viewResult(areaW, areaH int) string {
	var msg string
	if s.err != nil {
		msg = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true).Render("Error: " + s.err.Error())
	} else {
		msg = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true).Render("Config saved")
		if s.savedTo != "" {
			msg += "\n" + dimStyle.Render(s.savedTo)
		}
		msg += "\n" + dimStyle.Render("Restart the window to apply")
	}
	return overlayBox(areaW, areaH, 60, msg+"\n\n"+dimStyle.Render("press any key to dismiss"))
}

func boxWidth(areaW, maxW int) int {
	return min(max(areaW-8, 30), maxW)
}

func overlayBox(areaW, areaH, maxW int, content string) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(boxWidth(areaW, maxW)).
		Render(content)
	return lipgloss.Place(areaW, areaH, lipgloss.Center, lipgloss.Center, box)
}

// computeDiffLines lists every setting whose value differs, as a section
// header followed by the old and new "key: value" lines. Keys keep the
// order in which Config declares them.
func computeDiffLines(original, current *config.Config) []diffLine {
	if original == nil || current == nil {
		return nil
	}
	before, err := flattenConfig(original)
	if err != nil {
		return nil
	}
	after, err := flattenConfig(current)
	if err != nil {
		return nil
	}

	var lines []diffLine
	section := ""
	for i, kv := range after {
		old := before[i]
		if kv == old {
			continue
		}
		if sec := sectionOf(kv.path); sec != section {
			section = sec
			if sec != "" {
				lines = append(lines, diffLine{kind: diffContext, text: sec + ":"})
			}
		}
		lines = append(lines,
			diffLine{kind: diffRemoved, text: old.String()},
			diffLine{kind: diffAdded, text: kv.String()},
		)
	}
	return lines
}

// setting is one scalar of the effective config.
type setting struct {
	path  string
	value string
}

func (kv setting) String() string {
	return kv.path + ": " + kv.value
}

func sectionOf(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[:i]
	}
	return ""
}

// flattenConfig walks the YAML encoding of cfg and returns its scalars in
// document order. Config has a fixed shape, so two results line up index
// by index.
func flattenConfig(cfg *config.Config) ([]setting, error) {
	var doc yaml.Node
	if err := doc.Encode(cfg); err != nil {
		return nil, err
	}
	var out []setting
	var walk func(prefix string, n *yaml.Node)
	walk = func(prefix string, n *yaml.Node) {
		switch n.Kind {
		case yaml.DocumentNode:
			for _, c := range n.Content {
				walk(prefix, c)
			}
		case yaml.MappingNode:
			for i := 0; i+1 < len(n.Content); i += 2 {
				key := n.Content[i].Value
				if prefix != "" {
					key = prefix + "." + key
				}
				walk(key, n.Content[i+1])
			}
		case yaml.ScalarNode:
			out = append(out, setting{path: prefix, value: n.Value})
		}
	}
	walk("", &doc)
	return out, nil
}

// cloneConfig creates a deep copy of a Config via YAML round-trip.
func cloneConfig(cfg *config.Config) *config.Config {
	if cfg == nil {
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil
	}
	var clone config.Config
	if err := yaml.Unmarshal(data, &clone); err != nil {
		return nil
	}
	return &clone
}
