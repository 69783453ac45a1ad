package ebitenhost

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// highlightFade is the fade duration in seconds.
const highlightFade = 0.15

// Highlight fades a border highlight in and out.
type Highlight struct {
	alpha  float32
	target float32
	tween  *gween.Tween
}

// Set starts fading towards on. Repeated calls with the same value keep the
// running fade.
func (h *Highlight) Set(on bool) {
	target := float32(0)
	if on {
		target = 1
	}
	if target == h.target && (h.tween != nil || h.alpha == target) {
		return
	}
	h.target = target
	// Scale the duration so a reversed fade takes no longer than its
	// remaining distance.
	dist := target - h.alpha
	if dist < 0 {
		dist = -dist
	}
	h.tween = gween.New(h.alpha, target, highlightFade*dist, ease.OutQuad)
}

// Update advances the fade by dt seconds and returns the current alpha.
func (h *Highlight) Update(dt float32) float32 {
	if h.tween == nil {
		return h.alpha
	}
	v, done := h.tween.Update(dt)
	h.alpha = v
	if done {
		h.alpha = h.target
		h.tween = nil
	}
	return h.alpha
}

// Alpha returns the current opacity in [0, 1].
func (h *Highlight) Alpha() float32 {
	return h.alpha
}
