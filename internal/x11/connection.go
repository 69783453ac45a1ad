package x11

import (
	"context"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/mousebind"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/1broseidon/frameless/internal/geometry"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	supportedOnce sync.Once
	supported     map[string]bool
}

// NewConnection establishes a connection to the X11 server and initializes
// the keyboard and pointer binding modules.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	keybind.Initialize(xu)
	mousebind.Initialize(xu)

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// Drainer is run on the event goroutine between X event callbacks.
type Drainer interface {
	Ready() <-chan struct{}
	Drain() int
}

// EventLoop runs the X event loop until ctx is cancelled or Quit is called.
// X callbacks and d.Drain never run concurrently, which makes this goroutine
// the UI thread for every window on the connection.
func (c *Connection) EventLoop(ctx context.Context, d Drainer) {
	pingBefore, pingAfter, pingQuit := xevent.MainPing(c.XUtil)

	var ready <-chan struct{}
	if d != nil {
		ready = d.Ready()
	}

	for {
		select {
		case <-pingBefore:
			<-pingAfter
		case <-ready:
			d.Drain()
		case <-ctx.Done():
			xevent.Quit(c.XUtil)
			// The loop may be parked in a blocking read.
			c.wake()
			c.waitQuit(pingBefore, pingAfter, pingQuit)
			return
		case <-pingQuit:
			return
		}
	}
}

func (c *Connection) waitQuit(pingBefore, pingAfter, pingQuit chan struct{}) {
	for {
		select {
		case <-pingBefore:
			<-pingAfter
		case <-pingQuit:
			return
		}
	}
}

// wake generates a PropertyNotify on the root window so a blocked event read
// returns.
func (c *Connection) wake() {
	_ = xwindow.New(c.XUtil, c.Root).Listen(xproto.EventMaskPropertyChange)
	_ = xprop.ChangeProp(c.XUtil, c.Root, 8, "_FRAMELESS_WAKE", "STRING", []byte("1"))
}

// Quit stops the event loop.
func (c *Connection) Quit() {
	xevent.Quit(c.XUtil)
}

// Supports reports whether the running window manager advertises the given
// EWMH atom in _NET_SUPPORTED. The list is read once per connection.
func (c *Connection) Supports(atom string) bool {
	c.supportedOnce.Do(func() {
		c.supported = make(map[string]bool)
		names, err := ewmh.SupportedGet(c.XUtil)
		if err != nil {
			return
		}
		for _, name := range names {
			c.supported[name] = true
		}
	})
	return c.supported[atom]
}

// PointerPosition returns the pointer location in root coordinates.
func (c *Connection) PointerPosition() (geometry.Point, error) {
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return geometry.Point{}, err
	}
	return geometry.Point{X: int(reply.RootX), Y: int(reply.RootY)}, nil
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
