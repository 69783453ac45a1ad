package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// RawPanel mirrors PanelConfig with every field optional.
type RawPanel struct {
	Enabled   *bool `yaml:"enabled"`
	X         *int  `yaml:"x"`
	Y         *int  `yaml:"y"`
	Width     *int  `yaml:"width"`
	Height    *int  `yaml:"height"`
	MinWidth  *int  `yaml:"min_width"`
	MinHeight *int  `yaml:"min_height"`
}

// RawWindow mirrors WindowConfig with every field optional.
type RawWindow struct {
	Title          *string   `yaml:"title"`
	X              *int      `yaml:"x"`
	Y              *int      `yaml:"y"`
	Width          *int      `yaml:"width"`
	Height         *int      `yaml:"height"`
	MinWidth       *int      `yaml:"min_width"`
	MinHeight      *int      `yaml:"min_height"`
	TitleBarHeight *int      `yaml:"title_bar_height"`
	Background     *string   `yaml:"background"`
	Panel          *RawPanel `yaml:"panel"`
}

// RawConfig is one YAML file as written. Nil fields were not set.
type RawConfig struct {
	Include         IncludeList     `yaml:"include"`
	BorderThickness *int            `yaml:"border_thickness"`
	ResizeEnabled   *bool           `yaml:"resize_enabled"`
	MoveEnabled     *bool           `yaml:"move_enabled"`
	NativeDrag      *NativeDragMode `yaml:"native_drag"`
	HighlightBorder *bool           `yaml:"highlight_border"`
	LogLevel        *string         `yaml:"log_level"`
	Display         *string         `yaml:"display"`
	QuitKey         *string         `yaml:"quit_key"`
	MaximizeKey     *string         `yaml:"maximize_key"`
	Window          *RawWindow      `yaml:"window"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.BorderThickness != nil {
		out.BorderThickness = overlay.BorderThickness
	}
	if overlay.ResizeEnabled != nil {
		out.ResizeEnabled = overlay.ResizeEnabled
	}
	if overlay.MoveEnabled != nil {
		out.MoveEnabled = overlay.MoveEnabled
	}
	if overlay.NativeDrag != nil {
		out.NativeDrag = overlay.NativeDrag
	}
	if overlay.HighlightBorder != nil {
		out.HighlightBorder = overlay.HighlightBorder
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.QuitKey != nil {
		out.QuitKey = overlay.QuitKey
	}
	if overlay.MaximizeKey != nil {
		out.MaximizeKey = overlay.MaximizeKey
	}
	if overlay.Window != nil {
		var base RawWindow
		if out.Window != nil {
			base = *out.Window
		}
		merged := mergeRawWindow(base, *overlay.Window)
		out.Window = &merged
	}
	return out
}

func mergeRawWindow(base RawWindow, overlay RawWindow) RawWindow {
	out := base
	if overlay.Title != nil {
		out.Title = overlay.Title
	}
	if overlay.X != nil {
		out.X = overlay.X
	}
	if overlay.Y != nil {
		out.Y = overlay.Y
	}
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	if overlay.MinWidth != nil {
		out.MinWidth = overlay.MinWidth
	}
	if overlay.MinHeight != nil {
		out.MinHeight = overlay.MinHeight
	}
	if overlay.TitleBarHeight != nil {
		out.TitleBarHeight = overlay.TitleBarHeight
	}
	if overlay.Background != nil {
		out.Background = overlay.Background
	}
	if overlay.Panel != nil {
		var panel RawPanel
		if out.Panel != nil {
			panel = *out.Panel
		}
		merged := mergeRawPanel(panel, *overlay.Panel)
		out.Panel = &merged
	}
	return out
}

func mergeRawPanel(base RawPanel, overlay RawPanel) RawPanel {
	out := base
	if overlay.Enabled != nil {
		out.Enabled = overlay.Enabled
	}
	if overlay.X != nil {
		out.X = overlay.X
	}
	if overlay.Y != nil {
		out.Y = overlay.Y
	}
	if overlay.Width != nil {
		out.Width = overlay.Width
	}
	if overlay.Height != nil {
		out.Height = overlay.Height
	}
	if overlay.MinWidth != nil {
		out.MinWidth = overlay.MinWidth
	}
	if overlay.MinHeight != nil {
		out.MinHeight = overlay.MinHeight
	}
	return out
}
