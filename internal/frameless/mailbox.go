package frameless

import (
	"log/slog"
	"sync"
)

// Mailbox is the UI-thread side of the command channel. The dispatcher posts
// into it from its own goroutine; the host event loop watches Ready and calls
// Drain between native events, which executes commands in posting order.
type Mailbox struct {
	mu      sync.Mutex
	pending []Command
	ready   chan struct{}
	cursors *CursorBroker
	logger  *slog.Logger
}

// NewMailbox creates a mailbox that routes cursor commands through cursors.
func NewMailbox(cursors *CursorBroker, logger *slog.Logger) *Mailbox {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mailbox{
		ready:   make(chan struct{}, 1),
		cursors: cursors,
		logger:  logger,
	}
}

// Post queues cmd for the UI thread.
func (m *Mailbox) Post(cmd Command) {
	m.mu.Lock()
	m.pending = append(m.pending, cmd)
	m.mu.Unlock()

	select {
	case m.ready <- struct{}{}:
	default:
	}
}

// Ready fires at least once after any Post that happened since the last Drain.
func (m *Mailbox) Ready() <-chan struct{} {
	return m.ready
}

// Pending returns the number of commands waiting for Drain.
func (m *Mailbox) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// Drain executes all pending commands. It must be called on the UI thread.
func (m *Mailbox) Drain() int {
	m.mu.Lock()
	batch := m.pending
	m.pending = nil
	m.mu.Unlock()

	for _, cmd := range batch {
		m.execute(cmd)
	}
	return len(batch)
}

func (m *Mailbox) execute(cmd Command) {
	c := cmd.target
	if c == nil || c.Detached() {
		return
	}

	switch cmd.Kind {
	case CommandMove:
		c.win.ApplyMove(cmd.Point)
	case CommandGeometry:
		c.win.ApplyGeometry(cmd.Rect)
	case CommandSetCursor:
		if m.cursors != nil {
			m.cursors.Acquire(c, cmd.Shape)
		}
	case CommandClearCursor:
		if m.cursors != nil {
			m.cursors.Release(c)
		}
	case CommandReleaseGrab:
		c.win.ReleasePointerGrab()
	case CommandNativeMove:
		if c.native == nil || !c.native.TryNativeSystemMove(cmd.Point) {
			m.logger.Debug("native move declined", "window", c.win.ID())
			c.post(Event{Kind: EventNativeDeclined})
		}
	case CommandNativeResize:
		if c.native == nil || !c.native.TryNativeSystemResize(cmd.Direction, cmd.Point) {
			m.logger.Debug("native resize declined", "window", c.win.ID(), "direction", cmd.Direction)
			c.post(Event{Kind: EventNativeDeclined})
		}
	default:
		m.logger.Warn("unknown command", "kind", cmd.Kind)
	}
}
