package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidWorkType is returned when a work type cannot be parsed.
var ErrInvalidWorkType = errors.New("invalid work type")

// WorkType tags a Work as a movie or a TV show.
type WorkType string

const (
	WorkTypeMovie  WorkType = "movie"
	WorkTypeTVShow WorkType = "tv_show"
)

// ParseWorkType accepts "movie", "tv" and "tv_show" in any case.
func ParseWorkType(s string) (WorkType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies":
		return WorkTypeMovie, nil
	case "tv", "tv_show", "tvshow", "show", "shows":
		return WorkTypeTVShow, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidWorkType, s)
}

// Path returns the TMDb path segment for the type.
func (t WorkType) Path() string {
	if t == WorkTypeTVShow {
		return "tv"
	}
	return "movie"
}

// Work is a movie or TV show as shown in a row or grid.
type Work struct {
	ID            int      `json:"id"`
	Type          WorkType `json:"type"`
	Title         string   `json:"title"`
	OriginalTitle string   `json:"original_title"`
	Overview      string   `json:"overview"`
	PosterPath    string   `json:"poster_path"`
	BackdropPath  string   `json:"backdrop_path"`
	PosterURL     string   `json:"poster_url"`
	BackdropURL   string   `json:"backdrop_url"`
	ReleaseDate   string   `json:"release_date"`
	VoteAverage   float64  `json:"vote_average"`
	VoteCount     int      `json:"vote_count"`
	Popularity    float64  `json:"popularity"`
	GenreIDs      []int    `json:"genre_ids"`
	Favorite      bool     `json:"favorite"`
}

// Key identifies a work across types.
func (w Work) Key() WorkKey {
	return WorkKey{ID: w.ID, Type: w.Type}
}

// WorkKey is the (id, type) pair that identifies a work.
type WorkKey struct {
	ID   int
	Type WorkType
}

func (k WorkKey) String() string {
	return fmt.Sprintf("%s:%d", k.Type, k.ID)
}

// WorkDetail extends Work with the fields only the detail endpoints return.
type WorkDetail struct {
	Work
	Runtime          int     `json:"runtime"`
	Genres           []Genre `json:"genres"`
	Tagline          string  `json:"tagline"`
	Status           string  `json:"status"`
	Homepage         string  `json:"homepage"`
	OriginalLanguage string  `json:"original_language"`
	NumberOfSeasons  int     `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int     `json:"number_of_episodes,omitempty"`
}
