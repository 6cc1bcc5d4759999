// Package page mounts every widget a document asks for, the way the site's
// scripts do on DOMContentLoaded.
package page

import (
	"context"
	"strings"

	"github.com/sourcegraph/conc"

	"flicksy/internal/carousel"
	"flicksy/internal/details"
	"flicksy/internal/dom"
	"flicksy/internal/logging"
	"flicksy/internal/render"
	"flicksy/internal/search"
	"flicksy/internal/timer"
	"flicksy/internal/watchlist"
	"flicksy/pkg/utils"
)

// API is everything the widgets ask of the backend. *api.Client
// satisfies it.
type API interface {
	watchlist.API
	search.Searcher
	details.API
}

type Deps struct {
	API       API
	Window    dom.Window
	Renderer  *render.Renderer
	Scheduler timer.Scheduler
	UI        utils.UIConfig
	// Reviews is the scroll geometry of the review list on detail pages.
	Reviews dom.ScrollArea
}

// Page holds the mounted widgets. Fields are nil for widgets the document
// has no anchors for.
type Page struct {
	Carousel  *carousel.Carousel
	Search    *search.Client
	Inline    *watchlist.Inline
	Watchlist *watchlist.Controller
	Details   *details.Controller
}

// Mount wires the document and runs the initial loads concurrently,
// returning once they have all finished.
func Mount(ctx context.Context, doc *dom.Document, d Deps) *Page {
	if d.Renderer == nil {
		d.Renderer = render.New(render.Images{})
	}
	if d.Scheduler == nil {
		d.Scheduler = timer.Real{}
	}
	interval := d.UI.CarouselInterval
	if interval == 0 {
		interval = carousel.DefaultInterval
	}

	p := &Page{
		Carousel: carousel.Mount(ctx, doc, d.Scheduler, interval),
		Search:   search.Mount(doc, d.API, d.Renderer),
		Inline:   watchlist.MountInline(doc, d.API, d.Window),
	}

	p.Watchlist = watchlist.New(watchlist.Options{
		Document:     doc,
		API:          d.API,
		Window:       d.Window,
		Renderer:     d.Renderer,
		Scheduler:    d.Scheduler,
		RemovalDelay: d.UI.RemovalDelay,
	})
	p.Watchlist.Mount()

	loc := doc.Location()
	if isDetailPath(loc.Path) {
		p.Details = details.New(ctx, details.Options{
			Document:    doc,
			API:         d.API,
			Renderer:    d.Renderer,
			Scheduler:   d.Scheduler,
			Reviews:     d.Reviews,
			ScrollStep:  d.UI.ScrollStep,
			SettleDelay: d.UI.ScrollSettleDelay,
		})
	}

	var wg conc.WaitGroup
	if doc.GetElementByID(watchlist.ContainerID) != nil {
		wg.Go(func() {
			if err := p.Watchlist.Load(ctx); err != nil {
				logging.Ctx(ctx).Warn().Err(err).Msg("watchlist load")
			}
		})
	}
	if p.Details != nil {
		wg.Go(func() { p.Details.Start(ctx) })
	}
	wg.Wait()
	return p
}

// Close stops the page's recurring timers.
func (p *Page) Close() {
	if p.Carousel != nil {
		p.Carousel.Stop()
	}
}

// isDetailPath matches /movie/{x} and /tv/{x}. The id itself is checked
// by the details controller.
func isDetailPath(path string) bool {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) != 2 {
		return false
	}
	return segs[0] == "movie" || segs[0] == "tv"
}
