package details

import (
	"context"

	"flicksy/internal/dom"
)

// ScrollReviews moves the review list one step; dir is -1 or 1.
func (c *Controller) ScrollReviews(ctx context.Context, dir float64) {
	if c.reviews == nil {
		return
	}
	c.reviews.ScrollBy(ctx, dir*c.scrollStep, true)
}

// UpdateArrows disables each arrow at its end of the list.
func (c *Controller) UpdateArrows() {
	left := c.doc.GetElementByID(ScrollLeftID)
	right := c.doc.GetElementByID(ScrollRightID)
	if c.reviews == nil || left == nil || right == nil {
		return
	}
	pos := c.reviews.ScrollLeft()
	maxLeft := c.reviews.ScrollWidth() - c.reviews.ClientWidth()
	left.SetDisabled(pos < 1)
	right.SetDisabled(pos >= maxLeft-1)
}

func (c *Controller) mountScroller() {
	list := c.doc.GetElementByID(ReviewsContainerID)
	left := c.doc.GetElementByID(ScrollLeftID)
	right := c.doc.GetElementByID(ScrollRightID)
	if list == nil || left == nil || right == nil || c.reviews == nil {
		return
	}
	right.AddEventListener("click", func(ctx context.Context, _ *dom.Event) {
		c.ScrollReviews(ctx, 1)
	})
	left.AddEventListener("click", func(ctx context.Context, _ *dom.Event) {
		c.ScrollReviews(ctx, -1)
	})
	list.AddEventListener("scroll", func(context.Context, *dom.Event) {
		c.UpdateArrows()
	})
	c.sched.AfterFunc(c.settleDelay, c.UpdateArrows)
}
