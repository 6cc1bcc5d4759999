// Package search is the live suggestion box under the header search input.
package search

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"flicksy/internal/dom"
	"flicksy/internal/logging"
	"flicksy/internal/render"
	"flicksy/pkg/models"
)

const (
	InputSelector = ".search-input"
	PanelID       = "search-results"

	MinQueryLength = 2
	PerCategory    = 5
)

type Searcher interface {
	Search(ctx context.Context, q string) (models.SearchResultSet, error)
}

// Client renders suggestions for the latest query only: every input bumps
// a sequence number and a response renders only if its number is still
// current.
type Client struct {
	input  *dom.Element
	panel  *dom.Element
	api    Searcher
	render *render.Renderer

	mu  sync.Mutex
	seq uint64
}

// Mount wires the input and the outside-click handler. It returns nil when
// the page has no search box.
func Mount(doc *dom.Document, s Searcher, r *render.Renderer) *Client {
	input := doc.QuerySelector(InputSelector)
	panel := doc.GetElementByID(PanelID)
	if input == nil || panel == nil {
		return nil
	}
	c := &Client{input: input, panel: panel, api: s, render: r}
	input.AddEventListener("input", func(ctx context.Context, ev *dom.Event) {
		c.HandleInput(ctx, ev.Target.Value())
	})
	doc.AddEventListener("click", c.HandleDocumentClick)
	return c
}

func (c *Client) HandleInput(ctx context.Context, value string) {
	q := strings.TrimSpace(value)

	c.mu.Lock()
	c.seq++
	seq := c.seq
	if utf8.RuneCountInString(q) < MinQueryLength {
		c.hideLocked(ctx, true)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()

	res, err := c.api.Search(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		logging.Ctx(ctx).Debug().Str("q", q).Msg("dropping stale search response")
		return
	}
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Str("q", q).Msg("search")
		c.hideLocked(ctx, false)
		return
	}
	if err := c.panel.SetInnerHTML(c.renderResults(ctx, res)); err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("render search results")
		return
	}
	c.panel.RemoveClass("hidden")
}

// HandleDocumentClick hides the panel for clicks outside any .relative
// container.
func (c *Client) HandleDocumentClick(_ context.Context, ev *dom.Event) {
	if ev.Target.Closest(".relative") == nil {
		c.panel.AddClass("hidden")
	}
}

// Visible reports whether the panel is shown.
func (c *Client) Visible() bool {
	return !c.panel.HasClass("hidden")
}

func (c *Client) Panel() *dom.Element { return c.panel }

func (c *Client) hideLocked(ctx context.Context, clear bool) {
	c.panel.AddClass("hidden")
	if clear {
		if err := c.panel.SetInnerHTML(""); err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("clear search results")
		}
	}
}

type category struct {
	title string
	items []models.SearchResult
	href  string
}

func (c *Client) renderResults(ctx context.Context, res models.SearchResultSet) string {
	if res.Empty() {
		msg, err := c.render.Message(render.ClassNoResults, render.MsgNoResults)
		if err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("render empty results")
		}
		return msg
	}

	var b strings.Builder
	for _, cat := range []category{
		{title: "Movies", items: res.Movies, href: "/movie/"},
		{title: "TV Shows", items: res.TVShows, href: "/tv/"},
		{title: "Actors", items: res.People, href: "/person/"},
	} {
		if len(cat.items) == 0 {
			continue
		}
		header, err := c.render.SearchHeader(cat.title)
		if err != nil {
			logging.Ctx(ctx).Error().Err(err).Msg("render search header")
			continue
		}
		b.WriteString(header)
		for i, it := range cat.items {
			if i == PerCategory {
				break
			}
			item, err := c.render.SearchItem(label(it), image(it), cat.href+strconv.Itoa(it.ID))
			if err != nil {
				logging.Ctx(ctx).Error().Err(err).Msg("render search item")
				continue
			}
			b.WriteString(item)
		}
	}
	return b.String()
}

func label(r models.SearchResult) string {
	if r.Title != "" {
		return r.Title
	}
	return r.Name
}

func image(r models.SearchResult) string {
	if r.PosterPath != "" {
		return r.PosterPath
	}
	return r.ProfilePath
}
