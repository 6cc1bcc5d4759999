package models

// SearchResult is the summary record shared by movies, shows and people.
type SearchResult struct {
	ID          int    `json:"id"`
	Title       string `json:"title,omitempty"`
	Name        string `json:"name,omitempty"`
	PosterPath  string `json:"poster_path,omitempty"`
	ProfilePath string `json:"profile_path,omitempty"`
}

type SearchResultSet struct {
	Movies  []SearchResult `json:"movies"`
	TVShows []SearchResult `json:"tv_shows"`
	People  []SearchResult `json:"people"`
}

func (s SearchResultSet) Empty() bool {
	return len(s.Movies) == 0 && len(s.TVShows) == 0 && len(s.People) == 0
}
