package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseWorkType(t *testing.T) {
	cases := map[string]WorkType{
		"movie":   WorkTypeMovie,
		"MOVIE":   WorkTypeMovie,
		"tv":      WorkTypeTVShow,
		"tv_show": WorkTypeTVShow,
		" Show ":  WorkTypeTVShow,
	}
	for in, want := range cases {
		got, err := ParseWorkType(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseWorkType("podcast")
	assert.True(t, errors.Is(err, ErrInvalidWorkType))
}

func TestWorkTypePath(t *testing.T) {
	assert.Equal(t, "movie", WorkTypeMovie.Path())
	assert.Equal(t, "tv", WorkTypeTVShow.Path())
}

func TestPageHasNext(t *testing.T) {
	assert.True(t, Page{Page: 1, TotalPages: 3}.HasNext())
	assert.False(t, Page{Page: 3, TotalPages: 3}.HasNext())
	assert.False(t, Page{Page: 1, TotalPages: 0}.HasNext())
}

func TestClampTotalPages(t *testing.T) {
	assert.Equal(t, 500, ClampTotalPages(41234))
	assert.Equal(t, 7, ClampTotalPages(7))
	assert.Equal(t, 0, ClampTotalPages(-1))
}

func TestTotalPagesFor(t *testing.T) {
	assert.Equal(t, 0, TotalPagesFor(0, 20))
	assert.Equal(t, 1, TotalPagesFor(20, 20))
	assert.Equal(t, 2, TotalPagesFor(21, 20))
}

func TestTrailers(t *testing.T) {
	videos := []Video{
		{Key: "a", Type: "Trailer"},
		{Key: "b", Type: "Featurette"},
		{Key: "c", Type: "Teaser"},
	}
	got := Trailers(videos)
	assert.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Key)
	assert.Equal(t, "c", got[1].Key)
}

func TestFavoriteRoundTripToWork(t *testing.T) {
	w := Work{ID: 42, Type: WorkTypeTVShow, Title: "Dark", PosterPath: "/p.jpg", PosterURL: TMDBImageBaseW500 + "/p.jpg"}
	f := FavoriteFromWork("dev", w)
	assert.Equal(t, w.Key(), f.Key())

	back := f.Work()
	assert.True(t, back.Favorite)
	assert.Equal(t, "Dark", back.Title)
	assert.Equal(t, "/p.jpg", back.PosterPath)
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "", ImageURL(TMDBImageBaseW500, ""))
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/x.jpg", ImageURL(TMDBImageBaseW500, "/x.jpg"))
}

func TestFavoriteBeforeCursor(t *testing.T) {
	noon := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c := Favorite{WorkID: 10, WorkType: WorkTypeMovie, AddedAt: noon}.Cursor()

	assert.True(t, Favorite{WorkID: 99, WorkType: WorkTypeMovie, AddedAt: noon.Add(-time.Second)}.Before(c))
	assert.False(t, Favorite{WorkID: 1, WorkType: WorkTypeMovie, AddedAt: noon.Add(time.Second)}.Before(c))
	assert.True(t, Favorite{WorkID: 9, WorkType: WorkTypeMovie, AddedAt: noon}.Before(c))
	assert.False(t, Favorite{WorkID: 10, WorkType: WorkTypeMovie, AddedAt: noon}.Before(c))
	assert.False(t, Favorite{WorkID: 1, WorkType: WorkTypeTVShow, AddedAt: noon}.Before(c))
}
