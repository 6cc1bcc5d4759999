package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flicksy/internal/api"
	"flicksy/internal/apitest"
	"flicksy/internal/dom"
	"flicksy/internal/page"
	"flicksy/internal/render"
	"flicksy/internal/timer"
	"flicksy/pkg/utils"
)

func testApp(t *testing.T) (*app, *apitest.Server) {
	t.Helper()
	srv := apitest.NewServer()
	t.Cleanup(srv.Close)
	client, err := api.New(api.Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)

	cfg := utils.DefaultConfig()
	cfg.API.BaseURL = srv.URL
	cfg.API.SessionPath = t.TempDir() + "/session.json"
	return &app{
		cfg:         cfg,
		client:      client,
		sessionPath: cfg.API.SessionPath,
		win:         &dom.HeadlessWindow{},
		sched:       timer.NewManual(),
		renderer:    render.New(render.Images{Base: cfg.Images.BaseURL}),
	}, srv
}

func TestDetailsShellMountsEveryWidget(t *testing.T) {
	a, _ := testApp(t)
	ctx := context.Background()
	require.NoError(t, a.client.Login(ctx, apitest.DemoEmail, apitest.DemoPassword))

	doc := a.parse(detailsShell(apitest.Severance), apitest.Severance.Path())
	p := a.mount(ctx, doc)
	defer p.Close()

	require.NotNil(t, p.Details)
	assert.Equal(t, apitest.Severance, p.Details.Key())
	assert.Contains(t, doc.GetElementByID("cast-container").InnerHTML(), "Adam Scott")

	doc.GetElementByID("reviewText").SetValue("Music dance experience")
	doc.GetElementByID("star5").SetChecked(true)
	doc.GetElementByID("submitReviewBtn").Click(ctx)
	assert.Contains(t, doc.GetElementByID("review-message").InnerHTML(), "Review submitted successfully!")

	btn := doc.QuerySelector(".watchlist-btn")
	btn.Click(ctx)
	action, _ := btn.Data("action")
	assert.Equal(t, "remove", action)
}

func TestSessionRoundTrip(t *testing.T) {
	a, srv := testApp(t)
	ctx := context.Background()
	require.NoError(t, a.client.Login(ctx, apitest.DemoEmail, apitest.DemoPassword))
	require.NoError(t, a.client.SaveSession(a.sessionPath))

	fresh, err := api.New(api.Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	a.client = fresh
	a.mustSession()

	require.NoError(t, srv.Store.SeedWatchlist(apitest.DemoEmail, apitest.Heat))
	doc := a.parse(watchlistShell, "/watchlist")
	page.Mount(ctx, doc, page.Deps{API: a.client, Window: a.win, Scheduler: a.sched, UI: a.cfg.UI}).Close()
	assert.Contains(t, doc.GetElementByID("watchlist-container").InnerHTML(), "Heat")
}

func TestButtonShell(t *testing.T) {
	doc, err := dom.ParseString(buttonShell(apitest.Severance, "remove"), "http://localhost/")
	require.NoError(t, err)
	btn := doc.QuerySelector(".watchlist-btn")
	require.NotNil(t, btn)
	id, ok := btn.Data("tv-id")
	assert.True(t, ok)
	assert.Equal(t, "95396", id)
	action, _ := btn.Data("action")
	assert.Equal(t, "remove", action)
}
