package models

import (
	"fmt"
	"strconv"
	"strings"
)

type MediaType string

const (
	MediaMovie MediaType = "movie"
	MediaTV    MediaType = "tv"
)

// ParseMediaType accepts "movie" and "tv" in any case.
func ParseMediaType(s string) (MediaType, bool) {
	switch MediaType(strings.ToLower(strings.TrimSpace(s))) {
	case MediaMovie:
		return MediaMovie, true
	case MediaTV:
		return MediaTV, true
	default:
		return "", false
	}
}

// MediaKey identifies a title across the catalog and the watchlist.
type MediaKey struct {
	TMDBID    int       `json:"tmdb_id" validate:"gt=0"`
	MediaType MediaType `json:"media_type" validate:"required,oneof=movie tv"`
}

// CardID is the element id of the watchlist card rendered for the key.
func (k MediaKey) CardID() string {
	return fmt.Sprintf("item-%s-%d", k.MediaType, k.TMDBID)
}

// Path is the site-relative details page of the title.
func (k MediaKey) Path() string {
	return fmt.Sprintf("/%s/%d", k.MediaType, k.TMDBID)
}

func (k MediaKey) String() string {
	return string(k.MediaType) + ":" + strconv.Itoa(k.TMDBID)
}
