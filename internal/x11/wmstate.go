package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/mousebind"

	"github.com/1broseidon/frameless/internal/geometry"
)

const (
	stateMaxHorz      = "_NET_WM_STATE_MAXIMIZED_HORZ"
	stateMaxVert      = "_NET_WM_STATE_MAXIMIZED_VERT"
	stateFullscreen   = "_NET_WM_STATE_FULLSCREEN"
	atomMoveresize    = "_NET_WM_MOVERESIZE"
	atomActiveWindow  = "_NET_ACTIVE_WINDOW"
	sourceApplication = 1
	sourcePager       = 2
)

// IsMaximizedOrFullscreen reports whether the window manager currently has the
// window maximized on either axis or fullscreen.
func (c *Connection) IsMaximizedOrFullscreen(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, state := range states {
		switch state {
		case stateMaxHorz, stateMaxVert, stateFullscreen:
			return true
		}
	}
	return false
}

// ToggleMaximized flips both maximized states.
func (c *Connection) ToggleMaximized(windowID xproto.Window) error {
	return ewmh.WmStateReqExtra(c.XUtil, windowID, ewmh.StateToggle, stateMaxHorz, stateMaxVert, sourcePager)
}

// ActivateWindow activates and raises a window using _NET_ACTIVE_WINDOW.
// The message is built manually because the xgbutil ewmh request helpers
// panic on this library version (uint vs int type assertion).
func (c *Connection) ActivateWindow(windowID xproto.Window) error {
	return c.sendRootMessage(windowID, atomActiveWindow, sourcePager, 0, 0, 0, 0)
}

// StartMoveResize hands an interactive move or resize to the window manager
// via _NET_WM_MOVERESIZE. The implicit pointer grab from the initiating press
// is released first so the window manager can take its own.
func (c *Connection) StartMoveResize(windowID xproto.Window, action int, pointer geometry.Point) error {
	if !c.Supports(atomMoveresize) {
		return fmt.Errorf("window manager does not support %s", atomMoveresize)
	}
	mousebind.UngrabPointer(c.XUtil)
	return c.sendRootMessage(windowID, atomMoveresize,
		uint32(pointer.X), uint32(pointer.Y), uint32(action), uint32(xproto.ButtonIndex1), sourceApplication)
}

// MoveResizeAction maps a resize direction to its _NET_WM_MOVERESIZE action.
// None maps to a move.
func MoveResizeAction(dir geometry.Direction) int {
	switch dir {
	case geometry.TopLeft:
		return ewmh.SizeTopLeft
	case geometry.Up:
		return ewmh.SizeTop
	case geometry.TopRight:
		return ewmh.SizeTopRight
	case geometry.Right:
		return ewmh.SizeRight
	case geometry.BottomRight:
		return ewmh.SizeBottomRight
	case geometry.Down:
		return ewmh.SizeBottom
	case geometry.BottomLeft:
		return ewmh.SizeBottomLeft
	case geometry.Left:
		return ewmh.SizeLeft
	default:
		return ewmh.Move
	}
}

func (c *Connection) sendRootMessage(windowID xproto.Window, atom string, data ...uint32) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len(atom)), atom).Reply()
	if err != nil {
		return fmt.Errorf("failed to intern %s: %w", atom, err)
	}

	payload := make([]uint32, 5)
	copy(payload, data)

	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New(payload),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}
