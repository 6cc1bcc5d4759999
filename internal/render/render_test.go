package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flicksy/internal/dom"
	"flicksy/pkg/models"
)

func fragment(t *testing.T, s string) *dom.Document {
	t.Helper()
	d, err := dom.ParseString("<html><body>"+s+"</body></html>", "http://localhost/")
	require.NoError(t, err)
	return d
}

func TestReleaseYear(t *testing.T) {
	assert.Equal(t, "2021", ReleaseYear("2021-07-15"))
	assert.Equal(t, "N/A", ReleaseYear(""))
	assert.Equal(t, "1999", ReleaseYear("1999"))
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short...", Excerpt("short", 120))
	long := strings.Repeat("é", 130)
	assert.Equal(t, strings.Repeat("é", 120)+"...", Excerpt(long, 120))
}

func TestFormatVoteAndInitial(t *testing.T) {
	tests := map[float64]string{
		8.44:  "8.4",
		7.25:  "7.3",
		6.75:  "6.8",
		8.05:  "8.1",
		5.5:   "5.5",
		1.45:  "1.4",
		0.05:  "0.1",
		0:     "0.0",
		10:    "10.0",
		-7.25: "-7.3",
	}
	for in, want := range tests {
		v := in
		assert.Equal(t, want, FormatVote(&v), "vote %v", in)
	}
	assert.Equal(t, "N/A", FormatVote(nil))
	assert.Equal(t, "Ž", Initial("Žofia"))
	assert.Equal(t, "?", Initial(""))
}

func TestImagesURL(t *testing.T) {
	img := Images{Base: "https://img.example/t/p/"}
	assert.Equal(t, "https://img.example/t/p/w92/a.jpg", img.URL(SizeThumb, "/a.jpg"))
	assert.Empty(t, img.URL(SizeThumb, ""))
	assert.Equal(t, DefaultImageBase+"/w45/l.png", Images{}.URL(SizeLogo, "/l.png"))
}

func TestWatchlistCard(t *testing.T) {
	r := New(Images{Base: DefaultImageBase})
	vote := 8.4
	out, err := r.WatchlistCard(models.WatchlistEntry{
		TMDBID: 550, MediaType: models.MediaMovie, Title: "Fight Club",
		PosterPath: "/fc.jpg", VoteAverage: &vote, ReleaseDate: "1999-10-15",
	})
	require.NoError(t, err)

	d := fragment(t, out)
	card := d.GetElementByID("item-movie-550")
	require.NotNil(t, card)
	assert.Equal(t, DefaultImageBase+"/w500/fc.jpg", card.QuerySelector("img").Attr("src"))
	assert.Equal(t, "Fight Club (1999)", card.QuerySelector(".overlay-title").Text())
	assert.Contains(t, card.QuerySelector(".star-rating").Text(), "8.4")
	assert.Equal(t, MsgNoOverview+"...", card.QuerySelector(".overlay-desc").Text())
	assert.Equal(t, "/movie/550", card.QuerySelector(".watch-btn").Attr("href"))

	btn := card.QuerySelector(".watchlist-btn")
	require.NotNil(t, btn)
	assert.Equal(t, "remove", btn.Attr("data-action"))
	assert.Equal(t, "550", btn.Attr("data-movie-id"))
	assert.False(t, btn.HasAttr("data-tv-id"))
}

func TestWatchlistCardTVWithoutPoster(t *testing.T) {
	r := New(Images{})
	out, err := r.WatchlistCard(models.WatchlistEntry{
		TMDBID: 1399, MediaType: models.MediaTV, Name: "Game of Thrones",
		Overview: "Seven noble families fight for control.",
	})
	require.NoError(t, err)

	d := fragment(t, out)
	card := d.GetElementByID("item-tv-1399")
	require.NotNil(t, card)
	img := card.QuerySelector("img")
	require.NotNil(t, img)
	assert.False(t, img.HasAttr("src"))
	assert.Equal(t, "Game of Thrones (N/A)", card.QuerySelector(".overlay-title").Text())
	assert.Contains(t, card.QuerySelector(".star-rating").Text(), "N/A")
	assert.Equal(t, "1399", card.QuerySelector(".watchlist-btn").Attr("data-tv-id"))
}

func TestSearchItemFallbackAndEscaping(t *testing.T) {
	r := New(Images{})
	out, err := r.SearchItem(`<b>Heat</b>`, "", "/movie/949")
	require.NoError(t, err)
	assert.NotContains(t, out, "<b>")

	d := fragment(t, out)
	a := d.QuerySelector("a")
	assert.Equal(t, "/movie/949", a.Attr("href"))
	assert.Equal(t, NoImageThumb, a.QuerySelector("img").Attr("src"))
	assert.Equal(t, "<b>Heat</b>", a.QuerySelector("span").Text())
}

func TestCastCardAndBadge(t *testing.T) {
	r := New(Images{})
	out, err := r.CastCard(models.CastMember{ID: 287, Name: "Brad Pitt", Character: "Tyler Durden"})
	require.NoError(t, err)
	d := fragment(t, out)
	assert.Equal(t, "/person/287", d.QuerySelector("a").Attr("href"))
	assert.Equal(t, NoImageProfile, d.QuerySelector("img").Attr("src"))

	out, err = r.ProviderBadge(models.Provider{ProviderID: 8, ProviderName: "Netflix", LogoPath: "/n.png"})
	require.NoError(t, err)
	d = fragment(t, out)
	assert.Equal(t, DefaultImageBase+"/w45/n.png", d.QuerySelector("img").Attr("src"))
	assert.Equal(t, "Netflix", d.QuerySelector("span").Text())
}

func TestReviewCard(t *testing.T) {
	r := New(Images{})
	out, err := r.ReviewCard(models.ReviewRecord{Author: "alice", Content: "Great", Rating: 3})
	require.NoError(t, err)

	d := fragment(t, out)
	assert.Len(t, d.QuerySelectorAll("i.text-yellow-400"), 3)
	assert.Len(t, d.QuerySelectorAll("i.text-gray-600"), 2)
	assert.Equal(t, "a", strings.TrimSpace(d.QuerySelector(".rounded-full").Text()))
	assert.Contains(t, out, "via Flicksy")
}

func TestMessage(t *testing.T) {
	r := New(Images{})
	out, err := r.Message(ClassError, MsgSelectRating)
	require.NoError(t, err)
	assert.Equal(t, `<p class="text-red-400">Please select a star rating.</p>`, out)
}
