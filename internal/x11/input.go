package x11

import (
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/frameless/internal/geometry"
)

// PointerHandler receives translated pointer and focus events. It has the
// same method set as platform.InputHandler.
type PointerHandler interface {
	OnFocusIn()
	OnHoverMove(global geometry.Point) bool
	OnPress(global geometry.Point) bool
	OnMove(global geometry.Point)
	OnRelease()
	OnLeave()
}

// PointerBinding forwards the X events of one window to an input handler.
// All callbacks run on the event loop goroutine.
type PointerBinding struct {
	xu      *xgbutil.XUtil
	win     xproto.Window
	handler PointerHandler
	pressed bool
}

var ignoreModsOnce sync.Once

// BindPointer connects pointer, crossing and focus callbacks for win.
func BindPointer(conn *Connection, win xproto.Window, handler PointerHandler) *PointerBinding {
	b := &PointerBinding{xu: conn.XUtil, win: win, handler: handler}

	xevent.ButtonPressFun(func(xu *xgbutil.XUtil, ev xevent.ButtonPressEvent) {
		if ev.Detail != xproto.ButtonIndex1 {
			return
		}
		b.pressed = true
		b.handler.OnPress(rootPoint(ev.RootX, ev.RootY))
	}).Connect(conn.XUtil, win)

	xevent.ButtonReleaseFun(func(xu *xgbutil.XUtil, ev xevent.ButtonReleaseEvent) {
		if ev.Detail != xproto.ButtonIndex1 || !b.pressed {
			return
		}
		b.pressed = false
		b.handler.OnRelease()
	}).Connect(conn.XUtil, win)

	xevent.MotionNotifyFun(func(xu *xgbutil.XUtil, ev xevent.MotionNotifyEvent) {
		b.motion(rootPoint(ev.RootX, ev.RootY), ev.State&xproto.KeyButMaskButton1 != 0)
	}).Connect(conn.XUtil, win)

	xevent.EnterNotifyFun(func(xu *xgbutil.XUtil, ev xevent.EnterNotifyEvent) {
		b.motion(rootPoint(ev.RootX, ev.RootY), ev.State&xproto.KeyButMaskButton1 != 0)
	}).Connect(conn.XUtil, win)

	xevent.LeaveNotifyFun(func(xu *xgbutil.XUtil, ev xevent.LeaveNotifyEvent) {
		// Grab transitions are not real pointer departures.
		if ev.Mode != xproto.NotifyModeNormal {
			return
		}
		b.handler.OnLeave()
	}).Connect(conn.XUtil, win)

	xevent.FocusInFun(func(xu *xgbutil.XUtil, ev xevent.FocusInEvent) {
		b.handler.OnFocusIn()
	}).Connect(conn.XUtil, win)

	return b
}

// motion routes pointer motion by button state. When the window manager ran
// a native move it swallows the button release, so motion without the button
// while we still think it is held is treated as the missing release.
func (b *PointerBinding) motion(p geometry.Point, buttonHeld bool) {
	switch {
	case b.pressed && buttonHeld:
		b.handler.OnMove(p)
	case b.pressed:
		b.pressed = false
		b.handler.OnRelease()
		b.handler.OnHoverMove(p)
	default:
		b.handler.OnHoverMove(p)
	}
}

// Detach removes every callback the binding installed.
func (b *PointerBinding) Detach() {
	xevent.Detach(b.xu, b.win)
}

func rootPoint(x, y int16) geometry.Point {
	return geometry.Point{X: int(x), Y: int(y)}
}

// BindKey runs callback when keySequence is pressed while win has focus.
func BindKey(conn *Connection, win xproto.Window, keySequence string, callback func()) error {
	ignoreModsOnce.Do(func() {
		configureIgnoreMods(conn.XUtil)
	})
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(conn.XUtil, win, keySequence, false)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	xevent.IgnoreMods = ignoreMaskSubsets(base)
}

// ignoreMaskSubsets returns every OR-combination of the given masks,
// including zero.
func ignoreMaskSubsets(base []uint16) []uint16 {
	out := []uint16{0}
	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		out = append(out, mask)
	}
	return out
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
