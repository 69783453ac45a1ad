package x11

import (
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xcursor"

	"github.com/1broseidon/frameless/internal/geometry"
)

// CursorGlyph returns the X core cursor font glyph for a shape.
func CursorGlyph(shape geometry.CursorShape) uint16 {
	switch shape {
	case geometry.CursorSizeFDiag:
		return xcursor.TopLeftCorner
	case geometry.CursorSizeBDiag:
		return xcursor.TopRightCorner
	case geometry.CursorSizeHor:
		return xcursor.SBHDoubleArrow
	case geometry.CursorSizeVer:
		return xcursor.SBVDoubleArrow
	case geometry.CursorSizeAll:
		return xcursor.Fleur
	default:
		return xcursor.LeftPtr
	}
}

// CursorOverride emulates a process-wide override cursor on X11 by setting
// the same cursor on every registered window. Cursors are created lazily and
// cached per shape.
type CursorOverride struct {
	conn   *Connection
	logger *slog.Logger

	mu      sync.Mutex
	cache   map[geometry.CursorShape]xproto.Cursor
	windows []xproto.Window
}

// NewCursorOverride creates an override slot on conn.
func NewCursorOverride(conn *Connection, logger *slog.Logger) *CursorOverride {
	return &CursorOverride{
		conn:   conn,
		logger: logger,
		cache:  make(map[geometry.CursorShape]xproto.Cursor),
	}
}

// Register adds a window that shows the override cursor.
func (o *CursorOverride) Register(windowID xproto.Window) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.windows = append(o.windows, windowID)
}

// SetOverrideCursor shows shape over every registered window.
func (o *CursorOverride) SetOverrideCursor(shape geometry.CursorShape) {
	o.mu.Lock()
	defer o.mu.Unlock()

	cursor, ok := o.cache[shape]
	if !ok {
		var err error
		cursor, err = xcursor.CreateCursor(o.conn.XUtil, CursorGlyph(shape))
		if err != nil {
			o.logger.Warn("failed to create cursor", "shape", shape, "error", err)
			return
		}
		o.cache[shape] = cursor
	}

	for _, w := range o.windows {
		o.conn.SetWindowCursor(w, cursor)
	}
}

// RestoreOverrideCursor returns every registered window to the inherited
// cursor.
func (o *CursorOverride) RestoreOverrideCursor() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for _, w := range o.windows {
		o.conn.SetWindowCursor(w, 0)
	}
}

// Free releases all cached cursors.
func (o *CursorOverride) Free() {
	o.mu.Lock()
	defer o.mu.Unlock()

	for shape, cursor := range o.cache {
		xproto.FreeCursor(o.conn.XUtil.Conn(), cursor)
		delete(o.cache, shape)
	}
}
