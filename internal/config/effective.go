package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig applies raw over DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	setInt(&cfg.BorderThickness, raw.BorderThickness)
	setBool(&cfg.ResizeEnabled, raw.ResizeEnabled)
	setBool(&cfg.MoveEnabled, raw.MoveEnabled)
	if raw.NativeDrag != nil {
		cfg.NativeDrag = *raw.NativeDrag
	}
	setBool(&cfg.HighlightBorder, raw.HighlightBorder)
	setString(&cfg.LogLevel, raw.LogLevel)
	setString(&cfg.Display, raw.Display)
	setString(&cfg.QuitKey, raw.QuitKey)
	setString(&cfg.MaximizeKey, raw.MaximizeKey)

	if w := raw.Window; w != nil {
		win := &cfg.Window
		setString(&win.Title, w.Title)
		setInt(&win.X, w.X)
		setInt(&win.Y, w.Y)
		setInt(&win.Width, w.Width)
		setInt(&win.Height, w.Height)
		setInt(&win.MinWidth, w.MinWidth)
		setInt(&win.MinHeight, w.MinHeight)
		setInt(&win.TitleBarHeight, w.TitleBarHeight)
		setString(&win.Background, w.Background)

		if p := w.Panel; p != nil {
			panel := &win.Panel
			setBool(&panel.Enabled, p.Enabled)
			setInt(&panel.X, p.X)
			setInt(&panel.Y, p.Y)
			setInt(&panel.Width, p.Width)
			setInt(&panel.Height, p.Height)
			setInt(&panel.MinWidth, p.MinWidth)
			setInt(&panel.MinHeight, p.MinHeight)
		}
	}

	return cfg
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
