package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var errRequired = errors.New("required")

// intInput returns an input bound to v that only accepts integers >= min.
func intInput(key, title, description string, v *string, min int) *huh.Input {
	return huh.NewInput().
		Key(key).
		Title(title).
		Description(description).
		Value(v).
		Validate(func(s string) error {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return fmt.Errorf("must be a whole number")
			}
			if n < min {
				return fmt.Errorf("must be >= %d", min)
			}
			return nil
		})
}

// applyInt stores s into dst when it parses.
func applyInt(dst *int, s string) {
	if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		*dst = v
	}
}

func formWidth(width int) int {
	w := width - 4
	if w < 40 {
		w = 40
	}
	return w
}

var (
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250")).
			Width(22).
			Align(lipgloss.Right).
			PaddingRight(2)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func displayOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// renderEditing frames a form with a header.
func renderEditing(title string, form *huh.Form, width, height int) string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Render(title) +
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("  (esc to cancel)")

	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2)

	return style.Render(header + "\n\n" + form.View())
}

func renderEmpty(msg string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Foreground(lipgloss.Color("241")).
		Align(lipgloss.Center, lipgloss.Center).
		Render(msg)
}
