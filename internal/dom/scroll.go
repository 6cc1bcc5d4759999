package dom

import (
	"context"
	"sync"
)

// ScrollArea exposes the horizontal scroll geometry of a container.
type ScrollArea interface {
	ScrollLeft() float64
	ScrollWidth() float64
	ClientWidth() float64
	ScrollBy(ctx context.Context, dx float64, smooth bool)
}

// Viewport is a headless ScrollArea. Offsets are clamped to
// [0, scrollWidth-clientWidth]; every change fires a scroll event on the
// element.
type Viewport struct {
	el *Element

	mu          sync.Mutex
	left        float64
	scrollWidth float64
	clientWidth float64
	lastSmooth  bool
}

func NewViewport(el *Element, scrollWidth, clientWidth float64) *Viewport {
	return &Viewport{el: el, scrollWidth: scrollWidth, clientWidth: clientWidth}
}

func (v *Viewport) ScrollLeft() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.left
}

func (v *Viewport) ScrollWidth() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scrollWidth
}

func (v *Viewport) ClientWidth() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.clientWidth
}

// Resize changes the content or visible width, e.g. after images load.
// It does not fire a scroll event unless the offset had to be clamped.
func (v *Viewport) Resize(ctx context.Context, scrollWidth, clientWidth float64) {
	v.mu.Lock()
	v.scrollWidth, v.clientWidth = scrollWidth, clientWidth
	changed := v.clampLocked()
	v.mu.Unlock()
	if changed {
		v.el.Dispatch(ctx, "scroll")
	}
}

func (v *Viewport) ScrollBy(ctx context.Context, dx float64, smooth bool) {
	v.mu.Lock()
	before := v.left
	v.left += dx
	v.clampLocked()
	v.lastSmooth = smooth
	changed := v.left != before
	v.mu.Unlock()
	if changed {
		v.el.Dispatch(ctx, "scroll")
	}
}

// LastSmooth reports whether the last ScrollBy asked for smooth scrolling.
func (v *Viewport) LastSmooth() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSmooth
}

func (v *Viewport) clampLocked() bool {
	before := v.left
	limit := v.scrollWidth - v.clientWidth
	if limit < 0 {
		limit = 0
	}
	if v.left > limit {
		v.left = limit
	}
	if v.left < 0 {
		v.left = 0
	}
	return v.left != before
}
