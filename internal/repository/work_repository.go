package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marcuspimenta/bestv/internal/config"
	"github.com/marcuspimenta/bestv/internal/models"
	"github.com/marcuspimenta/bestv/internal/tmdb"
)

// TMDBSource is the subset of the TMDB client the repository reads from.
type TMDBSource interface {
	Genres(ctx context.Context, media string) ([]tmdb.Genre, error)
	List(ctx context.Context, media, category string, page int) (*tmdb.PagedResults, error)
	Trending(ctx context.Context, media, window string, page int) (*tmdb.PagedResults, error)
	Discover(ctx context.Context, media string, genreID, page int) (*tmdb.PagedResults, error)
	Search(ctx context.Context, media, query string, page int) (*tmdb.PagedResults, error)
	Recommendations(ctx context.Context, media string, id, page int) (*tmdb.PagedResults, error)
	Similar(ctx context.Context, media string, id, page int) (*tmdb.PagedResults, error)
	Detail(ctx context.Context, media string, id int) (*tmdb.Detail, error)
	Credits(ctx context.Context, media string, id int) (*tmdb.CreditsResponse, error)
	Videos(ctx context.Context, media string, id int) (*tmdb.VideosResponse, error)
	Reviews(ctx context.Context, media string, id, page int) (*tmdb.ReviewsResponse, error)
	WatchProviders(ctx context.Context, media string, id int) (*tmdb.WatchProvidersResponse, error)
	Person(ctx context.Context, id int) (*tmdb.PersonResponse, error)
	PersonCredits(ctx context.Context, id int) (*tmdb.PersonCreditsResponse, error)
}

// WorkRepository maps TMDB payloads to domain records and caches the raw
// payloads in Redis. A nil Redis client disables caching.
type WorkRepository struct {
	source TMDBSource
	redis  *redis.Client
	ttl    config.CacheConfig
}

// NewWorkRepository creates a new WorkRepository.
func NewWorkRepository(source TMDBSource, rdb *redis.Client, ttl config.CacheConfig) *WorkRepository {
	return &WorkRepository{source: source, redis: rdb, ttl: ttl}
}

// Genres returns the genres of a work type.
func (r *WorkRepository) Genres(ctx context.Context, t models.WorkType) ([]models.Genre, error) {
	raw, err := cached(ctx, r, cacheKey("genres", t.Path()), r.ttl.GenreTTL, func() ([]tmdb.Genre, error) {
		return r.source.Genres(ctx, t.Path())
	})
	if err != nil {
		return nil, err
	}
	genres := make([]models.Genre, len(raw))
	for i, g := range raw {
		genres[i] = models.Genre{ID: g.ID, Name: g.Name, Source: t}
	}
	return genres, nil
}

// List returns one page of a category list.
func (r *WorkRepository) List(ctx context.Context, t models.WorkType, category string, page int) (*models.Page, error) {
	return r.page(ctx, t, cacheKey("list", t.Path(), category, page), func() (*tmdb.PagedResults, error) {
		return r.source.List(ctx, t.Path(), category, page)
	})
}

// Trending returns one page of trending works.
func (r *WorkRepository) Trending(ctx context.Context, t models.WorkType, window string, page int) (*models.Page, error) {
	return r.page(ctx, t, cacheKey("trending", t.Path(), window, page), func() (*tmdb.PagedResults, error) {
		return r.source.Trending(ctx, t.Path(), window, page)
	})
}

// Discover returns one page of works in a genre.
func (r *WorkRepository) Discover(ctx context.Context, t models.WorkType, genreID, page int) (*models.Page, error) {
	return r.page(ctx, t, cacheKey("discover", t.Path(), genreID, page), func() (*tmdb.PagedResults, error) {
		return r.source.Discover(ctx, t.Path(), genreID, page)
	})
}

// Search returns one page of works matching a title query.
func (r *WorkRepository) Search(ctx context.Context, t models.WorkType, query string, page int) (*models.Page, error) {
	return r.page(ctx, t, cacheKey("search", t.Path(), strings.ToLower(query), page), func() (*tmdb.PagedResults, error) {
		return r.source.Search(ctx, t.Path(), query, page)
	})
}

// Recommendations returns one page of recommended works for a work.
func (r *WorkRepository) Recommendations(ctx context.Context, key models.WorkKey, page int) (*models.Page, error) {
	return r.page(ctx, key.Type, cacheKey("recommendations", key.Type.Path(), key.ID, page), func() (*tmdb.PagedResults, error) {
		return r.source.Recommendations(ctx, key.Type.Path(), key.ID, page)
	})
}

// Similar returns one page of works similar to a work.
func (r *WorkRepository) Similar(ctx context.Context, key models.WorkKey, page int) (*models.Page, error) {
	return r.page(ctx, key.Type, cacheKey("similar", key.Type.Path(), key.ID, page), func() (*tmdb.PagedResults, error) {
		return r.source.Similar(ctx, key.Type.Path(), key.ID, page)
	})
}

// Detail returns the full record of a work.
func (r *WorkRepository) Detail(ctx context.Context, key models.WorkKey) (*models.WorkDetail, error) {
	raw, err := cached(ctx, r, cacheKey("detail", key.Type.Path(), key.ID), r.ttl.DetailTTL, func() (*tmdb.Detail, error) {
		return r.source.Detail(ctx, key.Type.Path(), key.ID)
	})
	if err != nil {
		return nil, err
	}
	return toWorkDetail(raw, key.Type), nil
}

// Credits returns the cast and crew of a work.
func (r *WorkRepository) Credits(ctx context.Context, key models.WorkKey) (*models.Credits, error) {
	raw, err := cached(ctx, r, cacheKey("credits", key.Type.Path(), key.ID), r.ttl.DetailTTL, func() (*tmdb.CreditsResponse, error) {
		return r.source.Credits(ctx, key.Type.Path(), key.ID)
	})
	if err != nil {
		return nil, err
	}
	return toCredits(raw, key.ID), nil
}

// Videos returns the videos of a work.
func (r *WorkRepository) Videos(ctx context.Context, key models.WorkKey) ([]models.Video, error) {
	raw, err := cached(ctx, r, cacheKey("videos", key.Type.Path(), key.ID), r.ttl.DetailTTL, func() (*tmdb.VideosResponse, error) {
		return r.source.Videos(ctx, key.Type.Path(), key.ID)
	})
	if err != nil {
		return nil, err
	}
	return toVideos(raw.Results), nil
}

// Reviews returns one page of reviews of a work.
func (r *WorkRepository) Reviews(ctx context.Context, key models.WorkKey, page int) (*models.ReviewPage, error) {
	raw, err := cached(ctx, r, cacheKey("reviews", key.Type.Path(), key.ID, page), r.ttl.ListTTL, func() (*tmdb.ReviewsResponse, error) {
		return r.source.Reviews(ctx, key.Type.Path(), key.ID, page)
	})
	if err != nil {
		return nil, err
	}
	return toReviewPage(raw), nil
}

// WatchProviders returns the offers of a work in one region.
func (r *WorkRepository) WatchProviders(ctx context.Context, key models.WorkKey, region string) (*models.WatchProviders, error) {
	raw, err := cached(ctx, r, cacheKey("providers", key.Type.Path(), key.ID), r.ttl.DetailTTL, func() (*tmdb.WatchProvidersResponse, error) {
		return r.source.WatchProviders(ctx, key.Type.Path(), key.ID)
	})
	if err != nil {
		return nil, err
	}
	return toWatchProviders(raw, strings.ToUpper(region)), nil
}

// Person returns a cast or crew member with the works they appear in.
func (r *WorkRepository) Person(ctx context.Context, id int) (*models.Person, error) {
	person, err := cached(ctx, r, cacheKey("person", id), r.ttl.DetailTTL, func() (*tmdb.PersonResponse, error) {
		return r.source.Person(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	credits, err := cached(ctx, r, cacheKey("person_credits", id), r.ttl.DetailTTL, func() (*tmdb.PersonCreditsResponse, error) {
		return r.source.PersonCredits(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	return toPerson(person, credits), nil
}

func (r *WorkRepository) page(ctx context.Context, t models.WorkType, key string, fetch func() (*tmdb.PagedResults, error)) (*models.Page, error) {
	raw, err := cached(ctx, r, key, r.ttl.ListTTL, fetch)
	if err != nil {
		return nil, err
	}
	return toPage(raw, t), nil
}

// ---- Redis Helpers ----

func cacheKey(kind string, parts ...any) string {
	var b strings.Builder
	b.WriteString("tmdb:")
	b.WriteString(kind)
	for _, p := range parts {
		b.WriteByte(':')
		switch v := p.(type) {
		case string:
			b.WriteString(v)
		case int:
			b.WriteString(strconv.Itoa(v))
		default:
			fmt.Fprint(&b, v)
		}
	}
	return b.String()
}

// cached reads a raw payload from Redis or fetches and stores it. Cache
// errors never fail the call.
func cached[T any](ctx context.Context, r *WorkRepository, key string, ttl time.Duration, fetch func() (T, error)) (T, error) {
	if r.redis != nil {
		data, err := r.redis.Get(ctx, key).Bytes()
		switch {
		case err == nil:
			var v T
			if json.Unmarshal(data, &v) == nil {
				slog.Debug("cache hit", "key", key)
				return v, nil
			}
		case !errors.Is(err, redis.Nil):
			slog.Warn("cache read failed", "key", key, "error", err)
		}
	}

	v, err := fetch()
	if err != nil {
		return v, err
	}

	if r.redis != nil && ttl > 0 {
		if data, err := json.Marshal(v); err == nil {
			if err := r.redis.Set(ctx, key, data, ttl).Err(); err != nil {
				slog.Error("failed to set cache", "key", key, "error", err)
			}
		}
	}
	return v, nil
}
