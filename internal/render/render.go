// Package render holds the HTML fragments the widgets write into the page.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"flicksy/pkg/models"
)

// Fixed user-facing strings.
const (
	MsgWatchlistError     = "Failed to load your watchlist. Please try again later."
	MsgWatchlistEmpty     = "Your watchlist is empty. Add some movies and TV shows!"
	MsgNoOverview         = "No overview available."
	MsgNoResults          = "No results found"
	MsgCastError          = "Could not load cast information."
	MsgProvidersMissing   = "Provider information not available."
	MsgSelectRating       = "Please select a star rating."
	MsgWriteReview        = "Please write a review."
	MsgUnknownError       = "An unknown error occurred."
	MsgReviewNetworkError = "A network error occurred. Please try again."
)

// Message paragraph classes.
const (
	ClassError     = "text-red-400"
	ClassSuccess   = "text-green-400 font-bold"
	ClassMuted     = "text-gray-400"
	ClassEmptyList = "text-center text-gray-400 text-lg col-span-full"
	ClassListError = "text-center text-red-400"
	ClassNoResults = "p-4 text-gray-400"
)

type Renderer struct {
	images Images
	tpl    *template.Template
}

func New(images Images) *Renderer {
	funcs := template.FuncMap{
		"posterURL": func(p string) string { return images.URL(SizePoster, p) },
		"logoURL":   func(p string) string { return images.URL(SizeLogo, p) },
		"profileURL": func(p string) string {
			if u := images.URL(SizeProfile, p); u != "" {
				return u
			}
			return NoImageProfile
		},
		"year":    ReleaseYear,
		"vote":    FormatVote,
		"initial": Initial,
		"excerpt": func(s string) string {
			if s == "" {
				s = MsgNoOverview
			}
			return Excerpt(s, ExcerptLength)
		},
		"stars": func(rating int) []bool {
			out := make([]bool, 5)
			for i := range out {
				out[i] = i+1 <= rating
			}
			return out
		},
	}
	return &Renderer{
		images: images,
		tpl:    template.Must(template.New("flicksy").Funcs(funcs).Parse(templates)),
	}
}

func (r *Renderer) Images() Images { return r.images }

func (r *Renderer) exec(name string, data any) (string, error) {
	var b strings.Builder
	if err := r.tpl.ExecuteTemplate(&b, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return b.String(), nil
}

// Message renders <p class="{class}">{text}</p> with text escaped.
func (r *Renderer) Message(class, text string) (string, error) {
	return r.exec("message", struct{ Class, Text string }{class, text})
}

func (r *Renderer) WatchlistCard(e models.WatchlistEntry) (string, error) {
	return r.exec("watchlist_card", e)
}

func (r *Renderer) SearchHeader(title string) (string, error) {
	return r.exec("search_header", title)
}

// SearchItem links a suggestion; a missing image falls back to the local
// placeholder.
func (r *Renderer) SearchItem(name, imagePath, href string) (string, error) {
	img := r.images.URL(SizeThumb, imagePath)
	if img == "" {
		img = NoImageThumb
	}
	return r.exec("search_item", struct{ Name, Image, Href string }{name, img, href})
}

func (r *Renderer) CastCard(m models.CastMember) (string, error) {
	return r.exec("cast_card", m)
}

func (r *Renderer) ProviderBadge(p models.Provider) (string, error) {
	return r.exec("provider_badge", p)
}

func (r *Renderer) ReviewCard(rv models.ReviewRecord) (string, error) {
	return r.exec("review_card", rv)
}
