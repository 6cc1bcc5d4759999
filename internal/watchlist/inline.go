package watchlist

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"flicksy/internal/api"
	"flicksy/internal/dom"
	"flicksy/internal/logging"
	"flicksy/internal/render"
	"flicksy/pkg/models"
)

const (
	InlineSelector = ".add-to-watchlist"
	LoginPath      = "/login"

	MsgInlineNetworkError = "Could not add to watchlist. Please try again."
)

// Adder is the one call the inline buttons make.
type Adder interface {
	AddToWatchlist(ctx context.Context, key models.MediaKey) (models.WatchlistMutation, error)
}

// Inline is the one-shot add button embedded in cards across the site.
// Once added it stays disabled; it has no remove path.
type Inline struct {
	api Adder
	win dom.Window

	busy inflight
}

// MountInline binds every .add-to-watchlist element in doc.
func MountInline(doc *dom.Document, a Adder, win dom.Window) *Inline {
	in := &Inline{api: a, win: win}
	for _, btn := range doc.QuerySelectorAll(InlineSelector) {
		btn.AddEventListener("click", func(ctx context.Context, _ *dom.Event) {
			in.HandleClick(ctx, btn)
		})
	}
	return in
}

func (in *Inline) HandleClick(ctx context.Context, btn *dom.Element) {
	rawID, _ := btn.Data("tmdb-id")
	id, err := strconv.Atoi(strings.TrimSpace(rawID))
	if err != nil {
		logging.Ctx(ctx).Warn().Str("tmdb_id", rawID).Msg("inline watchlist button without a numeric id")
		return
	}
	mt, _ := btn.Data("media-type")
	key := models.MediaKey{TMDBID: id, MediaType: models.MediaType(mt)}

	if !in.busy.acquire(btn) {
		return
	}
	added := false
	defer func() { in.busy.release(btn, added) }()

	res, err := in.api.AddToWatchlist(ctx, key)
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		in.win.Navigate(LoginPath)
	case err != nil && !api.IsStatus(err):
		logging.Ctx(ctx).Error().Err(err).Str("item", key.String()).Msg("add to watchlist")
		in.win.Alert(MsgInlineNetworkError)
	case err == nil && (res.Success || strings.Contains(res.Message, "already in watchlist")):
		added = true
		markAdded(ctx, btn)
	default:
		msg := res.Error
		if msg == "" {
			msg = api.ServerMessage(err)
		}
		if msg == "" {
			msg = render.MsgUnknownError
		}
		in.win.Alert(msg)
	}
}

func markAdded(ctx context.Context, btn *dom.Element) {
	btn.SetDisabled(true)
	btn.SetStyle("cursor", "not-allowed")

	content := btn.QuerySelector(".button-content, i")
	if content == nil {
		return
	}
	if content.Tag() == "div" {
		if err := content.SetInnerHTML(render.InlineAdded); err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("update button")
		}
		return
	}
	content.RemoveClass("ri-add-line")
	content.AddClass("ri-check-line")
}
