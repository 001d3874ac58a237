package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcuspimenta/bestv/internal/config"
	"github.com/marcuspimenta/bestv/internal/models"
	"github.com/marcuspimenta/bestv/internal/tmdb"
)

// fakeSource serves canned payloads and counts calls per method.
type fakeSource struct {
	calls map[string]int
	err   error
}

func newFakeSource() *fakeSource {
	return &fakeSource{calls: map[string]int{}}
}

func (f *fakeSource) hit(name string) error {
	f.calls[name]++
	return f.err
}

func (f *fakeSource) paged(name string, page int) (*tmdb.PagedResults, error) {
	if err := f.hit(name); err != nil {
		return nil, err
	}
	return &tmdb.PagedResults{
		Page:       page,
		TotalPages: 900,
		Results: []tmdb.Result{
			{ID: 1, Title: "Alien", Name: "Dark", FirstAirDate: "2017-12-01", ReleaseDate: "1979-05-25", PosterPath: "/p.jpg"},
		},
	}, nil
}

func (f *fakeSource) Genres(_ context.Context, media string) ([]tmdb.Genre, error) {
	if err := f.hit("genres"); err != nil {
		return nil, err
	}
	return []tmdb.Genre{{ID: 18, Name: "Drama"}}, nil
}

func (f *fakeSource) List(_ context.Context, _, _ string, page int) (*tmdb.PagedResults, error) {
	return f.paged("list", page)
}

func (f *fakeSource) Trending(_ context.Context, _, _ string, page int) (*tmdb.PagedResults, error) {
	return f.paged("trending", page)
}

func (f *fakeSource) Discover(_ context.Context, _ string, _, page int) (*tmdb.PagedResults, error) {
	return f.paged("discover", page)
}

func (f *fakeSource) Search(_ context.Context, _, _ string, page int) (*tmdb.PagedResults, error) {
	return f.paged("search", page)
}

func (f *fakeSource) Recommendations(_ context.Context, _ string, _, page int) (*tmdb.PagedResults, error) {
	return f.paged("recommendations", page)
}

func (f *fakeSource) Similar(_ context.Context, _ string, _, page int) (*tmdb.PagedResults, error) {
	return f.paged("similar", page)
}

func (f *fakeSource) Detail(_ context.Context, _ string, id int) (*tmdb.Detail, error) {
	if err := f.hit("detail"); err != nil {
		return nil, err
	}
	return &tmdb.Detail{
		Result:         tmdb.Result{ID: id, Name: "Dark"},
		Genres:         []tmdb.Genre{{ID: 18, Name: "Drama"}},
		EpisodeRunTime: []int{55},
		Runtime:        0,
	}, nil
}

func (f *fakeSource) Credits(_ context.Context, _ string, id int) (*tmdb.CreditsResponse, error) {
	if err := f.hit("credits"); err != nil {
		return nil, err
	}
	return &tmdb.CreditsResponse{
		ID: id,
		Cast: []tmdb.CastMember{
			{ID: 2, Name: "B", Order: 1},
			{ID: 1, Name: "A", Order: 0, ProfilePath: "/a.jpg"},
		},
		Crew: []tmdb.CrewMember{{ID: 3, Name: "Director Person", Job: "Director"}},
	}, nil
}

func (f *fakeSource) Videos(_ context.Context, _ string, id int) (*tmdb.VideosResponse, error) {
	if err := f.hit("videos"); err != nil {
		return nil, err
	}
	return &tmdb.VideosResponse{ID: id, Results: []tmdb.VideoResult{
		{ID: "v1", Key: "abc", Site: "YouTube", Type: "Trailer"},
		{ID: "v2", Key: "123", Site: "Vimeo", Type: "Clip"},
	}}, nil
}

func (f *fakeSource) Reviews(_ context.Context, _ string, id, page int) (*tmdb.ReviewsResponse, error) {
	if err := f.hit("reviews"); err != nil {
		return nil, err
	}
	rating := 8.0
	return &tmdb.ReviewsResponse{ID: id, Page: page, TotalPages: 1, Results: []tmdb.ReviewResult{
		{ID: "r1", Author: "joe", AuthorDetails: tmdb.AuthorDetails{Rating: &rating}, CreatedAt: "2021-03-04T10:11:12.345Z"},
	}}, nil
}

func (f *fakeSource) WatchProviders(_ context.Context, _ string, id int) (*tmdb.WatchProvidersResponse, error) {
	if err := f.hit("providers"); err != nil {
		return nil, err
	}
	return &tmdb.WatchProvidersResponse{ID: id, Results: map[string]tmdb.RegionProviders{
		"US": {
			Link:     "https://www.themoviedb.org/movie/1/watch",
			Flatrate: []tmdb.Provider{{ProviderID: 8, ProviderName: "Netflix", LogoPath: "/n.png"}},
			Rent:     []tmdb.Provider{{ProviderID: 2, ProviderName: "Apple TV"}},
		},
	}}, nil
}

func (f *fakeSource) Person(_ context.Context, id int) (*tmdb.PersonResponse, error) {
	if err := f.hit("person"); err != nil {
		return nil, err
	}
	return &tmdb.PersonResponse{ID: id, Name: "Sigourney Weaver"}, nil
}

func (f *fakeSource) PersonCredits(_ context.Context, id int) (*tmdb.PersonCreditsResponse, error) {
	if err := f.hit("person_credits"); err != nil {
		return nil, err
	}
	return &tmdb.PersonCreditsResponse{ID: id,
		Cast: []tmdb.Result{
			{ID: 1, MediaType: "movie", Title: "Alien", Popularity: 10},
			{ID: 9, MediaType: "tv", Name: "The Defenders", Popularity: 30},
			{ID: 1, MediaType: "movie", Title: "Alien", Popularity: 10},
		},
		Crew: []tmdb.Result{{ID: 4, MediaType: "person"}},
	}, nil
}

var testTTL = config.CacheConfig{ListTTL: time.Minute, DetailTTL: time.Minute, GenreTTL: time.Minute}

func newCachedRepo(t *testing.T) (*WorkRepository, *fakeSource, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	src := newFakeSource()
	return NewWorkRepository(src, rdb, testTTL), src, mr
}

func TestListMapsAndClampsPages(t *testing.T) {
	repo := NewWorkRepository(newFakeSource(), nil, testTTL)

	page, err := repo.List(context.Background(), models.WorkTypeMovie, "popular", 1)
	require.NoError(t, err)
	assert.Equal(t, models.MaxPage, page.TotalPages)
	require.Len(t, page.Works, 1)
	w := page.Works[0]
	assert.Equal(t, "Alien", w.Title)
	assert.Equal(t, "1979-05-25", w.ReleaseDate)
	assert.Equal(t, models.WorkTypeMovie, w.Type)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/p.jpg", w.PosterURL)
	assert.Empty(t, w.BackdropURL)
}

func TestTVShowUsesNameAndFirstAirDate(t *testing.T) {
	repo := NewWorkRepository(newFakeSource(), nil, testTTL)

	page, err := repo.Trending(context.Background(), models.WorkTypeTVShow, "week", 1)
	require.NoError(t, err)
	assert.Equal(t, "Dark", page.Works[0].Title)
	assert.Equal(t, "2017-12-01", page.Works[0].ReleaseDate)
}

func TestCacheServesSecondRead(t *testing.T) {
	repo, src, mr := newCachedRepo(t)
	ctx := context.Background()

	_, err := repo.List(ctx, models.WorkTypeMovie, "popular", 2)
	require.NoError(t, err)
	_, err = repo.List(ctx, models.WorkTypeMovie, "popular", 2)
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls["list"])
	assert.True(t, mr.Exists("tmdb:list:movie:popular:2"))
	assert.Greater(t, mr.TTL("tmdb:list:movie:popular:2"), time.Duration(0))
}

func TestCacheSkipsFailures(t *testing.T) {
	repo, src, mr := newCachedRepo(t)
	src.err = &tmdb.StatusError{StatusCode: 500}

	_, err := repo.Detail(context.Background(), models.WorkKey{ID: 1, Type: models.WorkTypeMovie})
	require.Error(t, err)
	assert.False(t, mr.Exists("tmdb:detail:movie:1"))
}

func TestCacheOutageReadsThrough(t *testing.T) {
	repo, src, mr := newCachedRepo(t)
	mr.Close()

	genres, err := repo.Genres(context.Background(), models.WorkTypeTVShow)
	require.NoError(t, err)
	assert.Equal(t, []models.Genre{{ID: 18, Name: "Drama", Source: models.WorkTypeTVShow}}, genres)
	assert.Equal(t, 1, src.calls["genres"])
}

func TestDetailUsesEpisodeRuntimeForTV(t *testing.T) {
	repo := NewWorkRepository(newFakeSource(), nil, testTTL)

	d, err := repo.Detail(context.Background(), models.WorkKey{ID: 70523, Type: models.WorkTypeTVShow})
	require.NoError(t, err)
	assert.Equal(t, 55, d.Runtime)
	assert.Equal(t, "Dark", d.Title)
	assert.Equal(t, []int{18}, d.GenreIDs)
}

func TestCreditsSortedByOrder(t *testing.T) {
	repo := NewWorkRepository(newFakeSource(), nil, testTTL)

	c, err := repo.Credits(context.Background(), models.WorkKey{ID: 1, Type: models.WorkTypeMovie})
	require.NoError(t, err)
	require.Len(t, c.Cast, 2)
	assert.Equal(t, "A", c.Cast[0].Name)
	assert.Equal(t, "https://image.tmdb.org/t/p/w185/a.jpg", c.Cast[0].ProfileURL)
	assert.Len(t, c.Directors(), 1)
}

func TestVideosBuildWatchURLs(t *testing.T) {
	repo := NewWorkRepository(newFakeSource(), nil, testTTL)

	videos, err := repo.Videos(context.Background(), models.WorkKey{ID: 1, Type: models.WorkTypeMovie})
	require.NoError(t, err)
	require.Len(t, videos, 2)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", videos[0].URL)
	assert.Equal(t, "https://img.youtube.com/vi/abc/hqdefault.jpg", videos[0].ThumbnailURL)
	assert.Equal(t, "https://vimeo.com/123", videos[1].URL)
	assert.Len(t, models.Trailers(videos), 1)
}

func TestReviewsParseRatingAndTime(t *testing.T) {
	repo := NewWorkRepository(newFakeSource(), nil, testTTL)

	page, err := repo.Reviews(context.Background(), models.WorkKey{ID: 1, Type: models.WorkTypeMovie}, 1)
	require.NoError(t, err)
	require.Len(t, page.Reviews, 1)
	assert.Equal(t, 8.0, page.Reviews[0].Rating)
	assert.Equal(t, 2021, page.Reviews[0].CreatedAt.Year())
}

func TestWatchProvidersByRegion(t *testing.T) {
	repo := NewWorkRepository(newFakeSource(), nil, testTTL)
	key := models.WorkKey{ID: 1, Type: models.WorkTypeMovie}

	us, err := repo.WatchProviders(context.Background(), key, "us")
	require.NoError(t, err)
	assert.Equal(t, "US", us.Region)
	require.Len(t, us.Providers, 2)
	assert.Equal(t, models.OfferFlatrate, us.Providers[0].Kind)
	assert.Equal(t, "https://image.tmdb.org/t/p/w92/n.png", us.Providers[0].LogoURL)
	assert.Equal(t, models.OfferRent, us.Providers[1].Kind)

	de, err := repo.WatchProviders(context.Background(), key, "DE")
	require.NoError(t, err)
	assert.Empty(t, de.Providers)
	assert.Empty(t, de.Link)
}

func TestPersonDedupesAndSortsWorks(t *testing.T) {
	repo := NewWorkRepository(newFakeSource(), nil, testTTL)

	p, err := repo.Person(context.Background(), 10205)
	require.NoError(t, err)
	assert.Equal(t, "Sigourney Weaver", p.Name)
	require.Len(t, p.Works, 2)
	assert.Equal(t, "The Defenders", p.Works[0].Title)
	assert.Equal(t, models.WorkTypeTVShow, p.Works[0].Type)
	assert.Equal(t, "Alien", p.Works[1].Title)
}
