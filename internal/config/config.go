package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// NativeDragMode controls delegation of moves and resizes to the window
// manager.
type NativeDragMode string

const (
	NativeDragAuto NativeDragMode = "auto" // Use it when the window manager advertises support.
	NativeDragOn   NativeDragMode = "on"   // Always try it; declined requests fall back.
	NativeDragOff  NativeDragMode = "off"  // Always run moves and resizes ourselves.
)

const (
	DefaultBorderThickness = 6
	DefaultTitleBarHeight  = 32
	DefaultQuitKey         = "Escape"
	DefaultMaximizeKey     = "m"
)

// PanelConfig describes the optional embedded panel. Its position is
// relative to the top-level window.
type PanelConfig struct {
	Enabled   bool `yaml:"enabled"`
	X         int  `yaml:"x"`
	Y         int  `yaml:"y"`
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	MinWidth  int  `yaml:"min_width"`
	MinHeight int  `yaml:"min_height"`
}

// WindowConfig describes the demo top-level window. Negative X or Y centers
// the window on the monitor under the pointer.
type WindowConfig struct {
	Title          string      `yaml:"title"`
	X              int         `yaml:"x"`
	Y              int         `yaml:"y"`
	Width          int         `yaml:"width"`
	Height         int         `yaml:"height"`
	MinWidth       int         `yaml:"min_width"`
	MinHeight      int         `yaml:"min_height"`
	TitleBarHeight int         `yaml:"title_bar_height"` // 0 = drag anywhere
	Background     string      `yaml:"background"`       // #rrggbb
	Panel          PanelConfig `yaml:"panel"`
}

// Config is the effective configuration.
type Config struct {
	BorderThickness int            `yaml:"border_thickness"`
	ResizeEnabled   bool           `yaml:"resize_enabled"`
	MoveEnabled     bool           `yaml:"move_enabled"`
	NativeDrag      NativeDragMode `yaml:"native_drag"`
	HighlightBorder bool           `yaml:"highlight_border"`
	LogLevel        string         `yaml:"log_level"`
	Display         string         `yaml:"display"`
	QuitKey         string         `yaml:"quit_key"`
	MaximizeKey     string         `yaml:"maximize_key"`
	Window          WindowConfig   `yaml:"window"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		BorderThickness: DefaultBorderThickness,
		ResizeEnabled:   true,
		MoveEnabled:     true,
		NativeDrag:      NativeDragAuto,
		HighlightBorder: true,
		LogLevel:        "info",
		QuitKey:         DefaultQuitKey,
		MaximizeKey:     DefaultMaximizeKey,
		Window: WindowConfig{
			Title:          "frameless",
			X:              -1,
			Y:              -1,
			Width:          800,
			Height:         600,
			MinWidth:       200,
			MinHeight:      150,
			TitleBarHeight: DefaultTitleBarHeight,
			Background:     "#1e1e2e",
			Panel: PanelConfig{
				X:         40,
				Y:         60,
				Width:     240,
				Height:    160,
				MinWidth:  80,
				MinHeight: 60,
			},
		},
	}
}

// Save writes the configuration to the standard location.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the configuration to path.
//
// Note: this marshals the effective config and will not preserve comments or
// include structure from the original YAML.
func (c *Config) SaveTo(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// BackgroundRGB parses the window background colour. Invalid values yield the
// default colour.
func (c *Config) BackgroundRGB() uint32 {
	v, err := parseHexColor(c.Window.Background)
	if err != nil {
		v, _ = parseHexColor(DefaultConfig().Window.Background)
	}
	return v
}

// SlogLevel maps log_level to a slog level. Unknown values yield info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if c.BorderThickness <= 0 {
		return &ValidationError{Path: "border_thickness", Err: fmt.Errorf("border_thickness must be > 0")}
	}
	switch c.NativeDrag {
	case NativeDragAuto, NativeDragOn, NativeDragOff:
	default:
		return &ValidationError{Path: "native_drag", Err: fmt.Errorf("native_drag must be one of: auto, on, off")}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	if strings.TrimSpace(c.QuitKey) == "" {
		return &ValidationError{Path: "quit_key", Err: fmt.Errorf("quit_key is required")}
	}
	if err := validateWindow(&c.Window, c.BorderThickness); err != nil {
		return err
	}
	return nil
}

func validateWindow(w *WindowConfig, border int) error {
	if w.Width <= 0 || w.Height <= 0 {
		return &ValidationError{Path: "window", Err: fmt.Errorf("width and height must be > 0")}
	}
	if w.MinWidth < 0 || w.MinHeight < 0 {
		return &ValidationError{Path: "window", Err: fmt.Errorf("min_width and min_height must be >= 0")}
	}
	if w.MinWidth > w.Width {
		return &ValidationError{Path: "window.min_width", Err: fmt.Errorf("min_width %d exceeds width %d", w.MinWidth, w.Width)}
	}
	if w.MinHeight > w.Height {
		return &ValidationError{Path: "window.min_height", Err: fmt.Errorf("min_height %d exceeds height %d", w.MinHeight, w.Height)}
	}
	// A window narrower than both borders has no interior to grab.
	if w.MinWidth > 0 && w.MinWidth < 2*border {
		return &ValidationError{Path: "window.min_width", Err: fmt.Errorf("min_width must be at least twice border_thickness (%d)", 2*border)}
	}
	if w.MinHeight > 0 && w.MinHeight < 2*border {
		return &ValidationError{Path: "window.min_height", Err: fmt.Errorf("min_height must be at least twice border_thickness (%d)", 2*border)}
	}
	if w.TitleBarHeight < 0 {
		return &ValidationError{Path: "window.title_bar_height", Err: fmt.Errorf("title_bar_height must be >= 0")}
	}
	if w.TitleBarHeight >= w.Height {
		return &ValidationError{Path: "window.title_bar_height", Err: fmt.Errorf("title_bar_height must be less than height")}
	}
	if _, err := parseHexColor(w.Background); err != nil {
		return &ValidationError{Path: "window.background", Err: err}
	}

	p := &w.Panel
	if !p.Enabled {
		return nil
	}
	if p.Width <= 0 || p.Height <= 0 {
		return &ValidationError{Path: "window.panel", Err: fmt.Errorf("width and height must be > 0")}
	}
	if p.X < 0 || p.Y < 0 || p.X+p.Width > w.Width || p.Y+p.Height > w.Height {
		return &ValidationError{Path: "window.panel", Err: fmt.Errorf("panel %dx%d+%d+%d does not fit inside the %dx%d window", p.Width, p.Height, p.X, p.Y, w.Width, w.Height)}
	}
	if p.MinWidth < 0 || p.MinHeight < 0 || p.MinWidth > p.Width || p.MinHeight > p.Height {
		return &ValidationError{Path: "window.panel", Err: fmt.Errorf("panel minimum size must be between 0 and its size")}
	}
	return nil
}

func parseHexColor(s string) (uint32, error) {
	if len(s) != 7 || s[0] != '#' {
		return 0, fmt.Errorf("color %q must have the form #rrggbb", s)
	}
	var v uint32
	for _, ch := range s[1:] {
		var d uint32
		switch {
		case ch >= '0' && ch <= '9':
			d = uint32(ch - '0')
		case ch >= 'a' && ch <= 'f':
			d = uint32(ch-'a') + 10
		case ch >= 'A' && ch <= 'F':
			d = uint32(ch-'A') + 10
		default:
			return 0, fmt.Errorf("color %q must have the form #rrggbb", s)
		}
		v = v<<4 | d
	}
	return v, nil
}
