package models

// WatchlistEntry is one saved title as returned by GET /api/watchlist.
// Movies carry Title and ReleaseDate, shows carry Name and FirstAirDate;
// the server fills both pairs, so callers should go through DisplayTitle
// and AirDate.
type WatchlistEntry struct {
	ID           int       `json:"id,omitempty"`
	UserID       int       `json:"user_id,omitempty"`
	TMDBID       int       `json:"tmdb_id"`
	MediaType    MediaType `json:"media_type"`
	Title        string    `json:"title,omitempty"`
	Name         string    `json:"name,omitempty"`
	PosterPath   string    `json:"poster_path,omitempty"`
	Overview     string    `json:"overview,omitempty"`
	VoteAverage  *float64  `json:"vote_average"`
	ReleaseDate  string    `json:"release_date,omitempty"`
	FirstAirDate string    `json:"first_air_date,omitempty"`
	AddedOn      string    `json:"added_on,omitempty"`
}

func (e WatchlistEntry) Key() MediaKey {
	return MediaKey{TMDBID: e.TMDBID, MediaType: e.MediaType}
}

func (e WatchlistEntry) DisplayTitle() string {
	if e.MediaType == MediaMovie {
		if e.Title != "" {
			return e.Title
		}
		return e.Name
	}
	if e.Name != "" {
		return e.Name
	}
	return e.Title
}

func (e WatchlistEntry) AirDate() string {
	if e.MediaType == MediaMovie {
		return e.ReleaseDate
	}
	return e.FirstAirDate
}

// WatchlistMutation is the body of add/remove responses.
type WatchlistMutation struct {
	Success bool   `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
