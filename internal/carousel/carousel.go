// Package carousel runs the hero slider on the home page.
package carousel

import (
	"context"
	"strconv"
	"sync"
	"time"

	"flicksy/internal/dom"
	"flicksy/internal/logging"
	"flicksy/internal/timer"
)

const (
	TrackSelector     = ".carousel-items"
	ItemSelector      = ".carousel-item"
	IndicatorSelector = ".carousel-indicators button"
	PrevID            = "prevBtn"
	NextID            = "nextBtn"

	DefaultInterval = 5 * time.Second

	activeDot   = "bg-white"
	inactiveDot = "bg-gray-400"
)

type Carousel struct {
	track      *dom.Element
	indicators []*dom.Element
	next       *dom.Element
	n          int

	mu       sync.Mutex
	index    int
	autoplay timer.Stopper
}

// Mount wires the controls and starts autoplay. Autoplay clicks #nextBtn,
// so it goes through the same path as a user click. It returns nil when
// the page has no slides or lacks either control.
func Mount(ctx context.Context, doc *dom.Document, sched timer.Scheduler, interval time.Duration) *Carousel {
	track := doc.QuerySelector(TrackSelector)
	if track == nil {
		return nil
	}
	prev := doc.GetElementByID(PrevID)
	next := doc.GetElementByID(NextID)
	n := len(doc.QuerySelectorAll(ItemSelector))
	if n == 0 || prev == nil || next == nil {
		return nil
	}
	c := &Carousel{
		track:      track,
		indicators: doc.QuerySelectorAll(IndicatorSelector),
		next:       next,
		n:          n,
	}

	prev.AddEventListener("click", func(context.Context, *dom.Event) { c.Prev() })
	next.AddEventListener("click", func(context.Context, *dom.Event) { c.Next() })
	for _, dot := range c.indicators {
		dot.AddEventListener("click", func(ctx context.Context, ev *dom.Event) {
			raw, _ := ev.CurrentTarget.Data("index")
			i, err := strconv.Atoi(raw)
			if err != nil {
				logging.Ctx(ctx).Warn().Str("data_index", raw).Msg("carousel indicator without a valid index")
				return
			}
			c.Goto(i)
		})
	}

	if sched != nil && interval > 0 {
		c.autoplay = sched.Every(interval, func() { next.Click(ctx) })
	}

	c.mu.Lock()
	c.renderLocked()
	c.mu.Unlock()
	return c
}

func (c *Carousel) Len() int { return c.n }

func (c *Carousel) Index() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.index
}

func (c *Carousel) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = (c.index + 1) % c.n
	c.renderLocked()
}

func (c *Carousel) Prev() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = (c.index - 1 + c.n) % c.n
	c.renderLocked()
}

// Goto shows slide i. Indices outside [0, Len) are ignored.
func (c *Carousel) Goto(i int) {
	if i < 0 || i >= c.n {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = i
	c.renderLocked()
}

// Stop cancels autoplay. Manual navigation keeps working.
func (c *Carousel) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.autoplay != nil {
		c.autoplay.Stop()
		c.autoplay = nil
	}
}

func (c *Carousel) renderLocked() {
	c.track.SetStyle("transform", "translateX("+strconv.Itoa(-c.index*100)+"%)")
	for i, dot := range c.indicators {
		dot.ToggleClass(activeDot, i == c.index)
		dot.ToggleClass(inactiveDot, i != c.index)
	}
}
