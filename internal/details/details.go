// Package details drives the movie and TV detail pages: cast, streaming
// providers, the review form and the review scroller.
package details

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sourcegraph/conc"

	"flicksy/internal/dom"
	"flicksy/internal/logging"
	"flicksy/internal/render"
	"flicksy/internal/timer"
	"flicksy/pkg/models"
)

const (
	CastContainerID     = "cast-container"
	PlatformContainerID = "platform-container"
	ReviewsContainerID  = "reviews-container"
	ReviewMessageID     = "review-message"
	ReviewTextID        = "reviewText"
	SubmitButtonID      = "submitReviewBtn"
	ScrollLeftID        = "scroll-left-btn"
	ScrollRightID       = "scroll-right-btn"

	CastLimit = 10

	DefaultScrollStep  = 400
	DefaultSettleDelay = 500 * time.Millisecond
)

const (
	msgInvalidLocation  = "Could not find a valid Movie ID in the URL."
	ratingInputSelector = `input[name="rating"]:checked`
)

type API interface {
	Cast(ctx context.Context, key models.MediaKey) ([]models.CastMember, error)
	Platforms(ctx context.Context, key models.MediaKey) (models.ProviderOffers, error)
	SubmitReview(ctx context.Context, key models.MediaKey, sub models.ReviewSubmission) (models.ReviewResult, error)
}

type Options struct {
	Document  *dom.Document
	API       API
	Renderer  *render.Renderer
	Scheduler timer.Scheduler
	// Reviews supplies the scroll geometry of #reviews-container. A
	// zero-size viewport is used when nil.
	Reviews     dom.ScrollArea
	ScrollStep  float64
	SettleDelay time.Duration
}

type Controller struct {
	key    models.MediaKey
	doc    *dom.Document
	api    API
	render *render.Renderer
	sched  timer.Scheduler

	reviews     dom.ScrollArea
	scrollStep  float64
	settleDelay time.Duration

	validate *validator.Validate
}

// Parse extracts the media key from a detail page path such as /movie/550
// or /tv/95396. The id is the last segment; the type is the first segment
// and defaults to movie.
func Parse(path string) (models.MediaKey, bool) {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	id, err := strconv.Atoi(segs[len(segs)-1])
	if err != nil || id <= 0 {
		return models.MediaKey{}, false
	}
	mt, ok := models.ParseMediaType(segs[0])
	if !ok {
		mt = models.MediaMovie
	}
	return models.MediaKey{TMDBID: id, MediaType: mt}, true
}

// New builds a controller for the document's location. It returns nil when
// the path carries no numeric id.
func New(ctx context.Context, o Options) *Controller {
	loc := o.Document.Location()
	key, ok := Parse(loc.Path)
	if !ok {
		logging.Ctx(ctx).Error().Str("path", loc.Path).Msg(msgInvalidLocation)
		return nil
	}
	if o.Renderer == nil {
		o.Renderer = render.New(render.Images{})
	}
	if o.Scheduler == nil {
		o.Scheduler = timer.Real{}
	}
	if o.ScrollStep <= 0 {
		o.ScrollStep = DefaultScrollStep
	}
	if o.SettleDelay <= 0 {
		o.SettleDelay = DefaultSettleDelay
	}
	if o.Reviews == nil {
		if el := o.Document.GetElementByID(ReviewsContainerID); el != nil {
			o.Reviews = dom.NewViewport(el, 0, 0)
		}
	}
	return &Controller{
		key:         key,
		doc:         o.Document,
		api:         o.API,
		render:      o.Renderer,
		sched:       o.Scheduler,
		reviews:     o.Reviews,
		scrollStep:  o.ScrollStep,
		settleDelay: o.SettleDelay,
		validate:    validator.New(),
	}
}

func (c *Controller) Key() models.MediaKey { return c.key }

// Start wires the scroller and the review form, then loads cast and
// providers concurrently and waits for both.
func (c *Controller) Start(ctx context.Context) {
	c.mountScroller()
	if btn := c.doc.GetElementByID(SubmitButtonID); btn != nil {
		btn.AddEventListener("click", func(ctx context.Context, _ *dom.Event) {
			c.SubmitReview(ctx)
		})
	}

	var wg conc.WaitGroup
	wg.Go(func() { c.LoadCast(ctx) })
	wg.Go(func() { c.LoadProviders(ctx) })
	wg.Wait()
}

// LoadCast renders the first CastLimit members into #cast-container.
func (c *Controller) LoadCast(ctx context.Context) {
	box := c.doc.GetElementByID(CastContainerID)
	if box == nil {
		return
	}
	log := logging.Ctx(ctx).With().Str("media", c.key.String()).Logger()

	cast, err := c.api.Cast(ctx, c.key)
	if err != nil {
		log.Error().Err(err).Msg("load cast")
		c.message(ctx, box, render.ClassError, render.MsgCastError)
		return
	}
	if len(cast) > CastLimit {
		cast = cast[:CastLimit]
	}
	var b strings.Builder
	for _, m := range cast {
		card, err := c.render.CastCard(m)
		if err != nil {
			log.Error().Err(err).Int("person", m.ID).Msg("render cast card")
			continue
		}
		b.WriteString(card)
	}
	if err := box.SetInnerHTML(b.String()); err != nil {
		log.Error().Err(err).Msg("write cast")
	}
}

// LoadProviders renders one badge per distinct provider into
// #platform-container.
func (c *Controller) LoadProviders(ctx context.Context) {
	box := c.doc.GetElementByID(PlatformContainerID)
	if box == nil {
		return
	}
	log := logging.Ctx(ctx).With().Str("media", c.key.String()).Logger()

	offers, err := c.api.Platforms(ctx, c.key)
	if err != nil {
		log.Error().Err(err).Msg("load providers")
		c.message(ctx, box, render.ClassMuted, render.MsgProvidersMissing)
		return
	}
	providers := offers.Unique()
	if len(providers) == 0 {
		c.message(ctx, box, render.ClassMuted, render.MsgProvidersMissing)
		return
	}
	var b strings.Builder
	for _, p := range providers {
		badge, err := c.render.ProviderBadge(p)
		if err != nil {
			log.Error().Err(err).Int("provider", p.ProviderID).Msg("render provider badge")
			continue
		}
		b.WriteString(badge)
	}
	if err := box.SetInnerHTML(b.String()); err != nil {
		log.Error().Err(err).Msg("write providers")
	}
}

func (c *Controller) message(ctx context.Context, el *dom.Element, class, text string) {
	html, err := c.render.Message(class, text)
	if err == nil {
		err = el.SetInnerHTML(html)
	}
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("write message")
	}
}
