package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/frameless/internal/geometry"
)

// WindowEventMask is the event mask every frameless window listens with.
const WindowEventMask = xproto.EventMaskKeyPress |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskFocusChange |
	xproto.EventMaskStructureNotify |
	xproto.EventMaskExposure

// WindowSpec describes a window to create.
type WindowSpec struct {
	Title      string
	Bounds     geometry.Rect
	MinWidth   int
	MinHeight  int
	Background uint32
}

// CreateFramelessWindow creates and maps an undecorated top-level window.
func (c *Connection) CreateFramelessWindow(spec WindowSpec) (*xwindow.Window, error) {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate window id: %w", err)
	}

	b := spec.Bounds
	if err := win.CreateChecked(c.Root, b.X, b.Y, b.Width, b.Height,
		xproto.CwBackPixel|xproto.CwEventMask,
		spec.Background, WindowEventMask); err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Ask the window manager to drop its decorations.
	if err := motif.WmHintsSet(c.XUtil, win.Id, &motif.Hints{
		Flags:      motif.HintDecorations,
		Decoration: motif.DecorationNone,
	}); err != nil {
		return nil, fmt.Errorf("failed to set motif hints: %w", err)
	}

	if spec.Title != "" {
		_ = ewmh.WmNameSet(c.XUtil, win.Id, spec.Title)
		_ = icccm.WmNameSet(c.XUtil, win.Id, spec.Title)
	}

	if err := c.SetMinimumSize(win.Id, spec.MinWidth, spec.MinHeight); err != nil {
		return nil, err
	}

	win.Map()
	return win, nil
}

// CreateChildWindow creates and maps an input-output child of parent.
// Bounds are relative to the parent.
func (c *Connection) CreateChildWindow(parent xproto.Window, spec WindowSpec) (*xwindow.Window, error) {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate window id: %w", err)
	}

	b := spec.Bounds
	if err := win.CreateChecked(parent, b.X, b.Y, b.Width, b.Height,
		xproto.CwBackPixel|xproto.CwEventMask,
		spec.Background, WindowEventMask); err != nil {
		return nil, fmt.Errorf("failed to create child window: %w", err)
	}

	win.Map()
	return win, nil
}

// SetMinimumSize publishes the minimum size through WM_NORMAL_HINTS.
func (c *Connection) SetMinimumSize(windowID xproto.Window, width, height int) error {
	if width <= 0 && height <= 0 {
		return nil
	}
	hints := &icccm.NormalHints{
		Flags:     icccm.SizeHintPMinSize,
		MinWidth:  uint(max(width, 0)),
		MinHeight: uint(max(height, 0)),
	}
	if err := icccm.WmNormalHintsSet(c.XUtil, windowID, hints); err != nil {
		return fmt.Errorf("failed to set size hints: %w", err)
	}
	return nil
}

// MinimumSize reads the minimum size from WM_NORMAL_HINTS. ok is false when
// the window does not declare one.
func (c *Connection) MinimumSize(windowID xproto.Window) (width, height int, ok bool) {
	hints, err := icccm.WmNormalHintsGet(c.XUtil, windowID)
	if err != nil || hints.Flags&icccm.SizeHintPMinSize == 0 {
		return 0, 0, false
	}
	return int(hints.MinWidth), int(hints.MinHeight), true
}

// WindowRect returns the window's geometry with its origin in root
// coordinates.
func (c *Connection) WindowRect(windowID xproto.Window) (geometry.Rect, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return geometry.Rect{}, err
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return geometry.Rect{}, err
	}

	return geometry.Rect{
		X:      int(translate.DstX),
		Y:      int(translate.DstY),
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

const atomMoveresizeWindow = "_NET_MOVERESIZE_WINDOW"

// MoveWindow moves a top-level window, preferring the EWMH request.
func (c *Connection) MoveWindow(windowID xproto.Window, x, y int) {
	if !c.Supports(atomMoveresizeWindow) {
		xwindow.New(c.XUtil, windowID).Move(x, y)
		return
	}
	if err := ewmh.MoveWindow(c.XUtil, windowID, x, y); err != nil {
		xwindow.New(c.XUtil, windowID).Move(x, y)
	}
}

// MoveResizeWindow moves and resizes a top-level window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) {
	if !c.Supports(atomMoveresizeWindow) {
		xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
		return
	}
	// Use EWMH MoveResize for better WM compatibility
	if err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height); err != nil {
		// Fallback to direct window manipulation
		xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
	}
}

// SetWindowCursor sets the cursor shown over a window. Zero restores the
// parent's cursor.
func (c *Connection) SetWindowCursor(windowID xproto.Window, cursor xproto.Cursor) {
	xproto.ChangeWindowAttributes(c.XUtil.Conn(), windowID, xproto.CwCursor, []uint32{uint32(cursor)})
}
