package details

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"flicksy/internal/api"
	"flicksy/internal/logging"
	"flicksy/internal/render"
	"flicksy/pkg/models"
)

// SubmitReview validates the form, posts it and renders the outcome into
// #review-message. A successful review is prepended to the list.
func (c *Controller) SubmitReview(ctx context.Context) {
	msgBox := c.doc.GetElementByID(ReviewMessageID)
	textArea := c.doc.GetElementByID(ReviewTextID)
	if msgBox == nil || textArea == nil {
		return
	}
	log := logging.Ctx(ctx).With().Str("media", c.key.String()).Logger()

	sub := models.ReviewSubmission{ReviewText: strings.TrimSpace(textArea.Value())}
	rating := c.doc.QuerySelector(ratingInputSelector)
	if rating != nil {
		sub.Rating, _ = strconv.Atoi(rating.Value())
	}
	if err := c.validate.Struct(sub); err != nil {
		c.message(ctx, msgBox, render.ClassError, validationMessage(err))
		return
	}

	res, err := c.api.SubmitReview(ctx, c.key, sub)
	switch {
	case err == nil:
	case api.IsStatus(err):
		log.Warn().Err(err).Msg("review rejected")
		text := res.Error
		if text == "" {
			text = render.MsgUnknownError
		}
		c.message(ctx, msgBox, render.ClassError, text)
		return
	default:
		log.Error().Err(err).Msg("submit review")
		c.message(ctx, msgBox, render.ClassError, render.MsgReviewNetworkError)
		return
	}

	c.message(ctx, msgBox, render.ClassSuccess, res.Message)
	textArea.SetValue("")
	if rating != nil {
		rating.SetChecked(false)
	}
	c.prependReview(ctx, res.Review)
}

// validationMessage maps a failed submission to the prompt shown to the
// user. A missing rating is reported before missing text.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Field() == "Rating" {
				return render.MsgSelectRating
			}
		}
		return render.MsgWriteReview
	}
	return render.MsgUnknownError
}

func (c *Controller) prependReview(ctx context.Context, rv models.ReviewRecord) {
	list := c.doc.GetElementByID(ReviewsContainerID)
	if list == nil {
		return
	}
	// The "no reviews yet" placeholder is a bare paragraph.
	for _, child := range list.Children() {
		if child.Tag() == "p" {
			child.Remove()
			break
		}
	}
	card, err := c.render.ReviewCard(rv)
	if err == nil {
		err = list.PrependHTML(card)
	}
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("render review")
	}
}
