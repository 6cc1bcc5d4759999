package watchlist

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flicksy/internal/apitest"
	"flicksy/internal/render"
)

const cardsPage = `<html><body>
<button id="div-btn" class="add-to-watchlist" data-tmdb-id="550" data-media-type="movie"><div class="button-content"><i class="ri-add-line"></i><span>Watchlist</span></div></button>
<button id="icon-btn" class="add-to-watchlist" data-tmdb-id="95396" data-media-type="tv"><i class="ri-add-line"></i></button>
<button id="bad-btn" class="add-to-watchlist" data-tmdb-id="n/a" data-media-type="movie"><i class="ri-add-line"></i></button>
<button id="ghost-btn" class="add-to-watchlist" data-tmdb-id="77" data-media-type="movie"><i class="ri-add-line"></i></button>
</body></html>`

func mountInline(t *testing.T, login bool) *fixture {
	t.Helper()
	f := setup(t, cardsPage, login)
	MountInline(f.doc, f.api, f.win)
	return f
}

func TestInlineAddWithContentDiv(t *testing.T) {
	f := mountInline(t, true)
	btn := f.doc.GetElementByID("div-btn")

	btn.Click(context.Background())

	assert.True(t, btn.Disabled())
	assert.Equal(t, "not-allowed", btn.Style("cursor"))
	assert.False(t, btn.HasAttr("aria-busy"))
	assert.Equal(t, render.InlineAdded, btn.QuerySelector(".button-content").InnerHTML())
	assert.Empty(t, f.win.Alerts())

	btn.Click(context.Background())
	assert.Len(t, f.srv.RequestsTo("/api/watchlist/add"), 1)
}

func TestInlineAlreadyInWatchlistCountsAsAdded(t *testing.T) {
	f := mountInline(t, true)
	require.NoError(t, f.srv.Store.SeedWatchlist(apitest.DemoEmail, apitest.Severance))
	btn := f.doc.GetElementByID("icon-btn")

	btn.Click(context.Background())

	assert.True(t, btn.Disabled())
	icon := btn.QuerySelector("i")
	assert.True(t, icon.HasClass("ri-check-line"))
	assert.False(t, icon.HasClass("ri-add-line"))
}

func TestInlineUnauthorizedRedirects(t *testing.T) {
	f := mountInline(t, false)
	btn := f.doc.GetElementByID("icon-btn")

	btn.Click(context.Background())

	assert.Equal(t, []string{LoginPath}, f.win.Navigations())
	assert.Empty(t, f.win.Alerts())
	assert.False(t, btn.Disabled())
}

func TestInlineServerError(t *testing.T) {
	f := mountInline(t, true)
	btn := f.doc.GetElementByID("ghost-btn")

	btn.Click(context.Background())

	assert.Equal(t, []string{"Could not find details for this item"}, f.win.Alerts())
	assert.False(t, btn.Disabled())
}

func TestInlineUnknownError(t *testing.T) {
	f := mountInline(t, true)
	f.srv.FailWith("/api/watchlist/add", http.StatusInternalServerError, "")

	f.doc.GetElementByID("icon-btn").Click(context.Background())
	assert.Equal(t, []string{render.MsgUnknownError}, f.win.Alerts())
}

func TestInlineNetworkError(t *testing.T) {
	f := mountInline(t, true)
	f.srv.Close()

	f.doc.GetElementByID("icon-btn").Click(context.Background())
	assert.Equal(t, []string{MsgInlineNetworkError}, f.win.Alerts())
}

func TestInlineNonNumericIDSendsNothing(t *testing.T) {
	f := mountInline(t, true)
	f.doc.GetElementByID("bad-btn").Click(context.Background())

	require.Empty(t, f.srv.RequestsTo("/api/watchlist/add"))
	assert.Empty(t, f.win.Alerts())
}
