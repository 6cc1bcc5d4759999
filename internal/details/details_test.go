package details

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flicksy/internal/api"
	"flicksy/internal/apitest"
	"flicksy/internal/dom"
	"flicksy/internal/render"
	"flicksy/internal/timer"
	"flicksy/pkg/models"
)

const page = `<html><body>
<div id="cast-container"><p>Loading cast...</p></div>
<div id="platform-container"><p>Loading providers...</p></div>
<form>
<input type="radio" name="rating" value="1"><input type="radio" name="rating" value="2">
<input type="radio" name="rating" value="3"><input type="radio" name="rating" value="4">
<input type="radio" name="rating" value="5">
<textarea id="reviewText"></textarea>
<button id="submitReviewBtn" type="button">Post</button>
<div id="review-message"></div>
</form>
<button id="scroll-left-btn">&lt;</button>
<div id="reviews-container"><p class="text-gray-400">No reviews yet.</p><div class="glass-panel">old review</div></div>
<button id="scroll-right-btn">&gt;</button>
</body></html>`

type fixture struct {
	srv   *apitest.Server
	api   *api.Client
	doc   *dom.Document
	sched *timer.Manual
	view  *dom.Viewport
	ctl   *Controller
}

func setup(t *testing.T, key models.MediaKey, login bool) *fixture {
	t.Helper()
	srv := apitest.NewServer()
	t.Cleanup(srv.Close)

	client, err := api.New(api.Options{BaseURL: srv.URL, Timeout: 5 * time.Second})
	require.NoError(t, err)
	if login {
		require.NoError(t, client.Login(context.Background(), apitest.DemoEmail, apitest.DemoPassword))
	}
	doc, err := dom.ParseString(page, srv.URL+key.Path())
	require.NoError(t, err)

	f := &fixture{srv: srv, api: client, doc: doc, sched: timer.NewManual()}
	f.view = dom.NewViewport(doc.GetElementByID(ReviewsContainerID), 1000, 400)
	f.ctl = New(context.Background(), Options{
		Document:  doc,
		API:       client,
		Renderer:  render.New(render.Images{}),
		Scheduler: f.sched,
		Reviews:   f.view,
	})
	require.NotNil(t, f.ctl)
	return f
}

func (f *fixture) html(id string) string {
	return f.doc.GetElementByID(id).InnerHTML()
}

func TestParse(t *testing.T) {
	tests := []struct {
		path string
		want models.MediaKey
		ok   bool
	}{
		{"/movie/550", models.MediaKey{TMDBID: 550, MediaType: models.MediaMovie}, true},
		{"/tv/95396", models.MediaKey{TMDBID: 95396, MediaType: models.MediaTV}, true},
		{"/tv/95396/", models.MediaKey{TMDBID: 95396, MediaType: models.MediaTV}, true},
		{"/film/12", models.MediaKey{TMDBID: 12, MediaType: models.MediaMovie}, true},
		{"/movie/abc", models.MediaKey{}, false},
		{"/movie/-3", models.MediaKey{}, false},
		{"/", models.MediaKey{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := Parse(tt.path)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewWithoutID(t *testing.T) {
	doc, err := dom.ParseString(page, "http://localhost/movie/latest")
	require.NoError(t, err)
	assert.Nil(t, New(context.Background(), Options{Document: doc}))
}

func TestStartRendersCastAndProviders(t *testing.T) {
	f := setup(t, apitest.FightClub, false)
	f.ctl.Start(context.Background())

	cast := f.html(CastContainerID)
	assert.Equal(t, 3, strings.Count(cast, `<a href="/person/`))
	assert.Contains(t, cast, `href="/person/287"`)
	assert.Contains(t, cast, render.DefaultImageBase+"/w200/norton.jpg")
	assert.Contains(t, cast, render.NoImageProfile)
	assert.NotContains(t, cast, "Loading")

	providers := f.html(PlatformContainerID)
	netflix := strings.Index(providers, ">Netflix<")
	apple := strings.Index(providers, ">Apple TV<")
	play := strings.Index(providers, ">Google Play<")
	require.GreaterOrEqual(t, netflix, 0)
	assert.Greater(t, apple, netflix)
	assert.Greater(t, play, apple)
	assert.Equal(t, 1, strings.Count(providers, ">Apple TV<"))
	assert.NotContains(t, providers, "Netflix (rent)")
	assert.Contains(t, providers, render.DefaultImageBase+"/w45/netflix.png")

	assert.Len(t, f.srv.RequestsTo("/api/movie/550/cast"), 1)
	assert.Len(t, f.srv.RequestsTo("/api/movie/550/platforms"), 1)
}

func TestStartMissingData(t *testing.T) {
	f := setup(t, apitest.Heat, false)
	f.ctl.Start(context.Background())

	assert.Contains(t, f.html(CastContainerID), render.MsgCastError)
	assert.Contains(t, f.html(CastContainerID), render.ClassError)
	assert.Contains(t, f.html(PlatformContainerID), render.MsgProvidersMissing)
}

func TestStartShow(t *testing.T) {
	f := setup(t, apitest.Severance, false)
	f.ctl.Start(context.Background())

	assert.Contains(t, f.html(CastContainerID), "Adam Scott")
	assert.Contains(t, f.html(PlatformContainerID), render.MsgProvidersMissing)
	assert.Len(t, f.srv.RequestsTo("/api/tv/95396/cast"), 1)
}

func TestCastLimit(t *testing.T) {
	f := setup(t, apitest.FightClub, false)
	big := make([]models.CastMember, 14)
	for i := range big {
		big[i] = models.CastMember{ID: 100 + i, Name: fmt.Sprintf("Extra %d", i)}
	}
	f.srv.Store.SetCast(apitest.FightClub, big)

	f.ctl.LoadCast(context.Background())
	cast := f.html(CastContainerID)
	assert.Equal(t, CastLimit, strings.Count(cast, `<a href="/person/`))
	assert.Contains(t, cast, "Extra 9")
	assert.NotContains(t, cast, "Extra 10")
}

func TestProvidersServerError(t *testing.T) {
	f := setup(t, apitest.FightClub, false)
	f.srv.FailWith("/api/movie/550/platforms", http.StatusInternalServerError, "")
	f.ctl.LoadProviders(context.Background())
	assert.Contains(t, f.html(PlatformContainerID), render.MsgProvidersMissing)
}

func (f *fixture) rate(t *testing.T, stars string) {
	t.Helper()
	radio := f.doc.QuerySelector(`input[name="rating"][value="` + stars + `"]`)
	require.NotNil(t, radio)
	radio.SetChecked(true)
}

func (f *fixture) submit(ctx context.Context) {
	f.doc.GetElementByID(SubmitButtonID).Click(ctx)
}

func TestReviewValidation(t *testing.T) {
	f := setup(t, apitest.FightClub, true)
	ctx := context.Background()
	f.ctl.Start(ctx)
	text := f.doc.GetElementByID(ReviewTextID)

	text.SetValue("Loved it")
	f.submit(ctx)
	assert.Contains(t, f.html(ReviewMessageID), render.MsgSelectRating)
	assert.Contains(t, f.html(ReviewMessageID), render.ClassError)

	text.SetValue("   ")
	f.rate(t, "4")
	f.submit(ctx)
	assert.Contains(t, f.html(ReviewMessageID), render.MsgWriteReview)

	text.SetValue("")
	f.doc.QuerySelector(ratingInputSelector).SetChecked(false)
	f.submit(ctx)
	assert.Contains(t, f.html(ReviewMessageID), render.MsgSelectRating)

	assert.Empty(t, f.srv.RequestsTo("/movie/550/review"))
}

func TestReviewSuccess(t *testing.T) {
	f := setup(t, apitest.FightClub, true)
	ctx := context.Background()
	f.ctl.Start(ctx)

	f.doc.GetElementByID(ReviewTextID).SetValue("  First rule: watch it.  ")
	f.rate(t, "4")
	f.submit(ctx)

	msg := f.html(ReviewMessageID)
	assert.Contains(t, msg, "Review submitted successfully!")
	assert.Contains(t, msg, render.ClassSuccess)
	assert.Empty(t, f.doc.GetElementByID(ReviewTextID).Value())
	assert.Nil(t, f.doc.QuerySelector(ratingInputSelector))

	list := f.doc.GetElementByID(ReviewsContainerID)
	children := list.Children()
	require.Len(t, children, 2)
	first := children[0].InnerHTML()
	assert.Contains(t, first, apitest.DemoName)
	assert.Contains(t, first, "First rule: watch it.")
	assert.Contains(t, first, ">D</div>")
	assert.Contains(t, first, "via Flicksy")
	assert.Equal(t, 4, strings.Count(first, "ri-star-fill text-yellow-400"))
	assert.Equal(t, 1, strings.Count(first, "ri-star-fill text-gray-600"))
	assert.Equal(t, "old review", children[1].Text())

	reqs := f.srv.RequestsTo("/movie/550/review")
	require.Len(t, reqs, 1)
	assert.JSONEq(t, `{"review_text":"First rule: watch it.","rating":4}`, string(reqs[0].Body))
}

func TestReviewRejected(t *testing.T) {
	f := setup(t, apitest.FightClub, true)
	ctx := context.Background()
	f.ctl.Start(ctx)

	for range 2 {
		f.doc.GetElementByID(ReviewTextID).SetValue("Again")
		f.rate(t, "5")
		f.submit(ctx)
	}
	assert.Contains(t, f.html(ReviewMessageID), "You have already reviewed this movie.")
	assert.Contains(t, f.html(ReviewMessageID), render.ClassError)
	// The text is kept for the user to edit.
	assert.Equal(t, "Again", f.doc.GetElementByID(ReviewTextID).Value())

	f.srv.FailWith("/movie/550/review", http.StatusBadGateway, "")
	f.submit(ctx)
	assert.Contains(t, f.html(ReviewMessageID), render.MsgUnknownError)
}

func TestReviewLoggedOut(t *testing.T) {
	f := setup(t, apitest.FightClub, false)
	ctx := context.Background()
	f.ctl.Start(ctx)

	f.doc.GetElementByID(ReviewTextID).SetValue("Anonymous take")
	f.rate(t, "3")
	f.submit(ctx)
	assert.Contains(t, f.html(ReviewMessageID), "You must be logged in to post a review.")
}

func TestReviewNetworkError(t *testing.T) {
	f := setup(t, apitest.FightClub, true)
	ctx := context.Background()
	f.ctl.Start(ctx)
	f.srv.Close()

	f.doc.GetElementByID(ReviewTextID).SetValue("Offline")
	f.rate(t, "2")
	f.submit(ctx)
	assert.Contains(t, f.html(ReviewMessageID), render.MsgReviewNetworkError)
}

func TestScroller(t *testing.T) {
	f := setup(t, apitest.FightClub, false)
	ctx := context.Background()
	f.ctl.Start(ctx)

	left := f.doc.GetElementByID(ScrollLeftID)
	right := f.doc.GetElementByID(ScrollRightID)
	assert.False(t, left.Disabled())

	f.sched.Advance(DefaultSettleDelay)
	assert.True(t, left.Disabled())
	assert.False(t, right.Disabled())

	right.Click(ctx)
	assert.Equal(t, 400.0, f.view.ScrollLeft())
	assert.True(t, f.view.LastSmooth())
	assert.False(t, left.Disabled())
	assert.False(t, right.Disabled())

	right.Click(ctx)
	assert.Equal(t, 600.0, f.view.ScrollLeft())
	assert.True(t, right.Disabled())

	right.Click(ctx)
	assert.Equal(t, 600.0, f.view.ScrollLeft())

	left.Click(ctx)
	assert.Equal(t, 200.0, f.view.ScrollLeft())
	assert.False(t, right.Disabled())

	f.view.Resize(ctx, 1000, 1000)
	assert.True(t, left.Disabled())
	assert.True(t, right.Disabled())
}
