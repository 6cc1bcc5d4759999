// Package watchlist drives the watchlist page and the add/remove buttons
// found on other pages.
package watchlist

import (
	"context"
	"strconv"
	"strings"
	"time"

	"flicksy/internal/api"
	"flicksy/internal/dom"
	"flicksy/internal/logging"
	"flicksy/internal/render"
	"flicksy/internal/timer"
	"flicksy/pkg/models"
)

const (
	ContainerID = "watchlist-container"
	ButtonClass = "watchlist-btn"

	DefaultRemovalDelay = 300 * time.Millisecond

	MsgAddFailed    = "Failed to add to watchlist"
	MsgRemoveFailed = "Failed to remove from watchlist"
)

// API is the slice of the backend the watchlist widgets use.
type API interface {
	Watchlist(ctx context.Context) ([]models.WatchlistEntry, error)
	AddToWatchlist(ctx context.Context, key models.MediaKey) (models.WatchlistMutation, error)
	RemoveFromWatchlist(ctx context.Context, key models.MediaKey) (models.WatchlistMutation, error)
}

type Options struct {
	Document  *dom.Document
	API       API
	Window    dom.Window
	Renderer  *render.Renderer
	Scheduler timer.Scheduler
	// RemovalDelay is how long a removed card stays on screen while it
	// fades out. Zero means DefaultRemovalDelay.
	RemovalDelay time.Duration
}

type Controller struct {
	doc          *dom.Document
	api          API
	win          dom.Window
	render       *render.Renderer
	sched        timer.Scheduler
	removalDelay time.Duration

	busy inflight
}

func New(o Options) *Controller {
	if o.Scheduler == nil {
		o.Scheduler = timer.Real{}
	}
	if o.Renderer == nil {
		o.Renderer = render.New(render.Images{})
	}
	if o.RemovalDelay <= 0 {
		o.RemovalDelay = DefaultRemovalDelay
	}
	return &Controller{
		doc:          o.Document,
		api:          o.API,
		win:          o.Window,
		render:       o.Renderer,
		sched:        o.Scheduler,
		removalDelay: o.RemovalDelay,
	}
}

// Mount installs the delegated click listener on <body>.
func (c *Controller) Mount() {
	if body := c.doc.Body(); body != nil {
		body.AddEventListener("click", c.HandleClick)
	}
}

// Load fills #watchlist-container. Failures are rendered in place and
// also returned.
func (c *Controller) Load(ctx context.Context) error {
	container := c.doc.GetElementByID(ContainerID)
	if container == nil {
		return nil
	}
	items, err := c.api.Watchlist(ctx)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("fetch watchlist")
		c.setMessage(ctx, container, render.ClassListError, render.MsgWatchlistError)
		return err
	}
	if len(items) == 0 {
		c.setMessage(ctx, container, render.ClassEmptyList, render.MsgWatchlistEmpty)
		return nil
	}

	var b strings.Builder
	for _, item := range items {
		card, err := c.render.WatchlistCard(item)
		if err != nil {
			logging.Ctx(ctx).Error().Err(err).Str("item", item.Key().String()).Msg("render watchlist card")
			continue
		}
		b.WriteString(card)
	}
	return container.SetInnerHTML(b.String())
}

func (c *Controller) setMessage(ctx context.Context, el *dom.Element, class, text string) {
	msg, err := c.render.Message(class, text)
	if err == nil {
		err = el.SetInnerHTML(msg)
	}
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("render message")
	}
}

// HandleClick routes clicks on (or inside) a .watchlist-btn by its
// data-action.
func (c *Controller) HandleClick(ctx context.Context, ev *dom.Event) {
	btn := ev.Target.Closest("." + ButtonClass)
	if btn == nil {
		return
	}
	key, ok := buttonKey(btn)
	if !ok {
		logging.Ctx(ctx).Warn().Str("html", btn.OuterHTML()).Msg("watchlist button without a usable id")
		return
	}
	action, _ := btn.Data("action")
	switch action {
	case "add":
		c.Add(ctx, key, btn)
	case "remove":
		c.Remove(ctx, key, btn)
	}
}

// buttonKey reads data-movie-id, then data-tv-id.
func buttonKey(btn *dom.Element) (models.MediaKey, bool) {
	mt := models.MediaMovie
	raw, _ := btn.Data("movie-id")
	if raw == "" {
		mt = models.MediaTV
		raw, _ = btn.Data("tv-id")
	}
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return models.MediaKey{}, false
	}
	return models.MediaKey{TMDBID: id, MediaType: mt}, true
}

func (c *Controller) Add(ctx context.Context, key models.MediaKey, btn *dom.Element) {
	if !c.busy.acquire(btn) {
		return
	}
	defer c.busy.release(btn, false)

	if _, err := c.api.AddToWatchlist(ctx, key); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("item", key.String()).Msg("add to watchlist")
		c.win.Alert(alertText(err, MsgAddFailed))
		return
	}
	if err := btn.SetInnerHTML(render.AddedLabel); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("update button")
	}
	btn.RemoveClass("bg-transparent")
	btn.AddClass("bg-green-500")
	btn.SetData("action", "remove")
}

func (c *Controller) Remove(ctx context.Context, key models.MediaKey, btn *dom.Element) {
	if !c.busy.acquire(btn) {
		return
	}
	defer c.busy.release(btn, false)

	if _, err := c.api.RemoveFromWatchlist(ctx, key); err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("item", key.String()).Msg("remove from watchlist")
		c.win.Alert(alertText(err, MsgRemoveFailed))
		return
	}

	if card := c.doc.GetElementByID(key.CardID()); card != nil {
		card.SetStyle("transition", "transform 0.3s ease, opacity 0.3s ease")
		card.SetStyle("transform", "scale(0.9)")
		card.SetStyle("opacity", "0")
		c.sched.AfterFunc(c.removalDelay, card.Remove)
		return
	}

	if err := btn.SetInnerHTML(render.WatchlistLabel); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("update button")
	}
	btn.RemoveClass("bg-green-500")
	btn.AddClass("bg-transparent")
	btn.SetData("action", "add")
}

// alertText is the server's error text, or fallback.
func alertText(err error, fallback string) string {
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	return fallback
}
