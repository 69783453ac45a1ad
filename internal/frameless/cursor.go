package frameless

import (
	"sync"

	"github.com/1broseidon/frameless/internal/geometry"
	"github.com/1broseidon/frameless/internal/platform"
)

// CursorBroker arbitrates the single process-wide cursor override between
// controllers. A release only restores the cursor when the caller is the
// current owner, so one window leaving cannot clobber another window's
// resize cursor.
type CursorBroker struct {
	mu    sync.Mutex
	slot  platform.CursorSlot
	owner any
	shape geometry.CursorShape
	held  bool
}

// NewCursorBroker wraps a host cursor slot. A nil slot turns the broker into
// pure bookkeeping, which is what headless hosts want.
func NewCursorBroker(slot platform.CursorSlot) *CursorBroker {
	return &CursorBroker{slot: slot}
}

// Acquire installs shape as the override on behalf of owner, taking the slot
// from any previous owner.
func (b *CursorBroker) Acquire(owner any, shape geometry.CursorShape) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.held && b.owner == owner && b.shape == shape {
		return
	}
	if b.slot != nil {
		b.slot.SetOverrideCursor(shape)
	}
	b.owner = owner
	b.shape = shape
	b.held = true
}

// Release restores the cursor if owner holds the override. It reports whether
// anything was restored.
func (b *CursorBroker) Release(owner any) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.held || b.owner != owner {
		return false
	}
	if b.slot != nil {
		b.slot.RestoreOverrideCursor()
	}
	b.owner = nil
	b.shape = geometry.CursorArrow
	b.held = false
	return true
}

// Current returns the owner and shape of the active override.
func (b *CursorBroker) Current() (owner any, shape geometry.CursorShape, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.owner, b.shape, b.held
}
