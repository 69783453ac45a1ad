package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/1broseidon/frameless/internal/geometry"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	Bounds geometry.Rect
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		monitors = append(monitors, Monitor{
			ID:   i,
			Name: name,
			Bounds: geometry.Rect{
				X:      int(info.X),
				Y:      int(info.Y),
				Width:  int(info.Width),
				Height: int(info.Height),
			},
		})
	}

	return monitors, nil
}

// PointerMonitor returns the usable area of the monitor under the pointer,
// clipped to the EWMH work area when the window manager publishes one.
func (c *Connection) PointerMonitor() (Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return Monitor{}, err
	}
	if len(monitors) == 0 {
		return Monitor{}, fmt.Errorf("no monitors found")
	}

	mon := monitors[0]
	if p, err := c.PointerPosition(); err == nil {
		if found, ok := MonitorAt(monitors, p); ok {
			mon = found
		}
	}

	if areas, err := ewmh.WorkareaGet(c.XUtil); err == nil && len(areas) > 0 {
		idx := 0
		if desk, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(desk) < len(areas) {
			idx = int(desk)
		}
		wa := areas[idx]
		work := geometry.Rect{X: wa.X, Y: wa.Y, Width: int(wa.Width), Height: int(wa.Height)}
		if clipped, ok := Intersect(mon.Bounds, work); ok {
			mon.Bounds = clipped
		}
	}

	return mon, nil
}

// MonitorAt returns the monitor containing p.
func MonitorAt(monitors []Monitor, p geometry.Point) (Monitor, bool) {
	for _, m := range monitors {
		if m.Bounds.Contains(p) {
			return m, true
		}
	}
	return Monitor{}, false
}

// Intersect returns the overlap of a and b; ok is false when they are disjoint.
func Intersect(a, b geometry.Rect) (geometry.Rect, bool) {
	x1 := max(a.X, b.X)
	y1 := max(a.Y, b.Y)
	x2 := min(a.X+a.Width, b.X+b.Width)
	y2 := min(a.Y+a.Height, b.Y+b.Height)
	if x2 <= x1 || y2 <= y1 {
		return geometry.Rect{}, false
	}
	return geometry.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, true
}

// CenterIn places a width×height rectangle in the middle of area, keeping
// the top-left corner inside it when the window is larger than the area.
func CenterIn(area geometry.Rect, width, height int) geometry.Rect {
	x := area.X + (area.Width-width)/2
	y := area.Y + (area.Height-height)/2
	return geometry.Rect{X: max(x, area.X), Y: max(y, area.Y), Width: width, Height: height}
}
