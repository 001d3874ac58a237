package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/marcuspimenta/bestv/internal/config"
)

// ErrNotFound matches a StatusError for a 404 response.
var ErrNotFound = errors.New("tmdb: not found")

// StatusError is returned for any non-200 response.
type StatusError struct {
	StatusCode int
	Path       string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("TMDB API returned status %d for %s: %s", e.StatusCode, e.Path, e.Message)
	}
	return fmt.Sprintf("TMDB API returned status %d for %s", e.StatusCode, e.Path)
}

// Is lets errors.Is(err, ErrNotFound) match 404 responses.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client is the TMDB API client.
type Client struct {
	baseURL  string
	apiKey   string
	token    string
	language string
	http     *http.Client
	limiter  *rate.Limiter
}

// NewClient creates a TMDB client. A read access token takes precedence
// over the api_key query parameter.
func NewClient(cfg config.TMDBConfig) *Client {
	limit := rate.Inf
	if cfg.RequestsPerSec > 0 {
		limit = rate.Limit(cfg.RequestsPerSec)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}
	language := cfg.Language
	if language == "" {
		language = "en-US"
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		token:    cfg.ReadAccessToken,
		language: language,
		http:     &http.Client{Timeout: cfg.Timeout},
		limiter:  rate.NewLimiter(limit, burst),
	}
}

// Genres fetches the genre list of a media type ("movie" or "tv").
func (c *Client) Genres(ctx context.Context, media string) ([]Genre, error) {
	var out GenreListResponse
	if err := c.get(ctx, "/genre/"+media+"/list", nil, &out); err != nil {
		return nil, err
	}
	return out.Genres, nil
}

// List fetches a category list such as movie/popular or tv/on_the_air.
func (c *Client) List(ctx context.Context, media, category string, page int) (*PagedResults, error) {
	return c.paged(ctx, "/"+media+"/"+category, nil, page)
}

// Trending fetches trending works for a window of "day" or "week".
func (c *Client) Trending(ctx context.Context, media, window string, page int) (*PagedResults, error) {
	return c.paged(ctx, "/trending/"+media+"/"+window, nil, page)
}

// Discover fetches works of one genre ordered by popularity.
func (c *Client) Discover(ctx context.Context, media string, genreID, page int) (*PagedResults, error) {
	params := url.Values{}
	params.Set("with_genres", strconv.Itoa(genreID))
	params.Set("sort_by", "popularity.desc")
	return c.paged(ctx, "/discover/"+media, params, page)
}

// Search runs a title query.
func (c *Client) Search(ctx context.Context, media, query string, page int) (*PagedResults, error) {
	params := url.Values{}
	params.Set("query", query)
	return c.paged(ctx, "/search/"+media, params, page)
}

// Recommendations fetches works TMDB recommends for a work.
func (c *Client) Recommendations(ctx context.Context, media string, id, page int) (*PagedResults, error) {
	return c.paged(ctx, workPath(media, id, "recommendations"), nil, page)
}

// Similar fetches works similar to a work.
func (c *Client) Similar(ctx context.Context, media string, id, page int) (*PagedResults, error) {
	return c.paged(ctx, workPath(media, id, "similar"), nil, page)
}

// Detail fetches the full record of a work.
func (c *Client) Detail(ctx context.Context, media string, id int) (*Detail, error) {
	var out Detail
	if err := c.get(ctx, workPath(media, id, ""), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Credits fetches cast and crew of a work.
func (c *Client) Credits(ctx context.Context, media string, id int) (*CreditsResponse, error) {
	var out CreditsResponse
	if err := c.get(ctx, workPath(media, id, "credits"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Videos fetches trailers, teasers and clips of a work.
func (c *Client) Videos(ctx context.Context, media string, id int) (*VideosResponse, error) {
	var out VideosResponse
	if err := c.get(ctx, workPath(media, id, "videos"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reviews fetches one page of user reviews.
func (c *Client) Reviews(ctx context.Context, media string, id, page int) (*ReviewsResponse, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	var out ReviewsResponse
	if err := c.get(ctx, workPath(media, id, "reviews"), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WatchProviders fetches streaming and purchase offers for every region.
func (c *Client) WatchProviders(ctx context.Context, media string, id int) (*WatchProvidersResponse, error) {
	var out WatchProvidersResponse
	if err := c.get(ctx, workPath(media, id, "watch/providers"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Person fetches a cast or crew member.
func (c *Client) Person(ctx context.Context, id int) (*PersonResponse, error) {
	var out PersonResponse
	if err := c.get(ctx, "/person/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PersonCredits fetches the movies and shows a person appears in.
func (c *Client) PersonCredits(ctx context.Context, id int) (*PersonCreditsResponse, error) {
	var out PersonCreditsResponse
	if err := c.get(ctx, "/person/"+strconv.Itoa(id)+"/combined_credits", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) paged(ctx context.Context, path string, params url.Values, page int) (*PagedResults, error) {
	if params == nil {
		params = url.Values{}
	}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	var out PagedResults
	if err := c.get(ctx, path, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func workPath(media string, id int, sub string) string {
	p := "/" + media + "/" + strconv.Itoa(id)
	if sub != "" {
		p += "/" + sub
	}
	return p
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("TMDB rate limiter: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("language", c.language)
	if c.token == "" {
		params.Set("api_key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	slog.Debug("fetching TMDB", "path", path)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		serr := &StatusError{StatusCode: resp.StatusCode, Path: path}
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.StatusMessage != "" {
			serr.Message = eb.StatusMessage
		} else {
			serr.Message = strings.TrimSpace(string(body))
		}
		return serr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}
