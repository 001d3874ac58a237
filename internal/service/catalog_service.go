package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/sourcegraph/conc/pool"

	"github.com/marcuspimenta/bestv/internal/models"
)

var categories = map[models.WorkType][]string{
	models.WorkTypeMovie:  {"popular", "top_rated", "now_playing", "upcoming"},
	models.WorkTypeTVShow: {"popular", "top_rated", "on_the_air", "airing_today"},
}

// Categories returns the list categories of a work type in display order.
func Categories(t models.WorkType) []string {
	return slices.Clone(categories[t])
}

// CatalogOptions tunes a CatalogService.
type CatalogOptions struct {
	Region string
	FanOut int
}

// CatalogService answers every read-only catalog use case.
type CatalogService struct {
	works     WorkStore
	favorites FavoriteStore
	region    string
	fanOut    int
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(works WorkStore, favorites FavoriteStore, opts CatalogOptions) *CatalogService {
	if opts.FanOut < 1 {
		opts.FanOut = 4
	}
	if opts.Region == "" {
		opts.Region = "US"
	}
	return &CatalogService{
		works:     works,
		favorites: favorites,
		region:    opts.Region,
		fanOut:    opts.FanOut,
	}
}

// Genres returns the genres of a work type.
func (s *CatalogService) Genres(ctx context.Context, t models.WorkType) ([]models.Genre, error) {
	genres, err := s.works.Genres(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s genres: %w", t, err)
	}
	return genres, nil
}

// Category returns one page of a category list.
func (s *CatalogService) Category(ctx context.Context, device string, t models.WorkType, category string, page int) (*models.Page, error) {
	if !slices.Contains(categories[t], category) {
		return nil, fmt.Errorf("%w: %q for %s", ErrInvalidCategory, category, t)
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}
	return s.marked(ctx, device, "category "+category, func() (*models.Page, error) {
		return s.works.List(ctx, t, category, page)
	})
}

// Trending returns one page of works trending over a day or a week.
func (s *CatalogService) Trending(ctx context.Context, device string, t models.WorkType, window string, page int) (*models.Page, error) {
	if window == "" {
		window = "week"
	}
	if window != "day" && window != "week" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidWindow, window)
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}
	return s.marked(ctx, device, "trending", func() (*models.Page, error) {
		return s.works.Trending(ctx, t, window, page)
	})
}

// ByGenre returns one page of works in a genre.
func (s *CatalogService) ByGenre(ctx context.Context, device string, t models.WorkType, genreID, page int) (*models.Page, error) {
	if genreID <= 0 {
		return nil, fmt.Errorf("%w: genre %d", ErrInvalidID, genreID)
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}
	return s.marked(ctx, device, "genre", func() (*models.Page, error) {
		return s.works.Discover(ctx, t, genreID, page)
	})
}

// Search returns one page of works whose title matches query.
func (s *CatalogService) Search(ctx context.Context, device string, t models.WorkType, query string, page int) (*models.Page, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}
	return s.marked(ctx, device, "search", func() (*models.Page, error) {
		return s.works.Search(ctx, t, query, page)
	})
}

// Recommendations returns one page of works recommended for a work.
func (s *CatalogService) Recommendations(ctx context.Context, device string, key models.WorkKey, page int) (*models.Page, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}
	return s.marked(ctx, device, "recommendations", func() (*models.Page, error) {
		return s.works.Recommendations(ctx, key, page)
	})
}

// Similar returns one page of works similar to a work.
func (s *CatalogService) Similar(ctx context.Context, device string, key models.WorkKey, page int) (*models.Page, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}
	return s.marked(ctx, device, "similar", func() (*models.Page, error) {
		return s.works.Similar(ctx, key, page)
	})
}

// Detail returns the full record of a work with its favorite flag.
func (s *CatalogService) Detail(ctx context.Context, device string, key models.WorkKey) (*models.WorkDetail, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	d, err := s.works.Detail(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load detail %s: %w", key, err)
	}
	works := []models.Work{d.Work}
	s.markFavorites(ctx, device, works)
	d.Favorite = works[0].Favorite
	return d, nil
}

// Credits returns the cast and crew of a work.
func (s *CatalogService) Credits(ctx context.Context, key models.WorkKey) (*models.Credits, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	c, err := s.works.Credits(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load credits %s: %w", key, err)
	}
	return c, nil
}

// Videos returns the videos of a work, optionally only trailers and teasers.
func (s *CatalogService) Videos(ctx context.Context, key models.WorkKey, trailersOnly bool) ([]models.Video, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	videos, err := s.works.Videos(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load videos %s: %w", key, err)
	}
	if trailersOnly {
		return models.Trailers(videos), nil
	}
	return videos, nil
}

// Reviews returns one page of reviews of a work.
func (s *CatalogService) Reviews(ctx context.Context, key models.WorkKey, page int) (*models.ReviewPage, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if err := checkPage(page); err != nil {
		return nil, err
	}
	r, err := s.works.Reviews(ctx, key, page)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews %s: %w", key, err)
	}
	return r, nil
}

// WatchProviders returns the offers for a work in region, or in the
// default region when region is empty.
func (s *CatalogService) WatchProviders(ctx context.Context, key models.WorkKey, region string) (*models.WatchProviders, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	if region == "" {
		region = s.region
	}
	p, err := s.works.WatchProviders(ctx, key, region)
	if err != nil {
		return nil, fmt.Errorf("failed to load providers %s: %w", key, err)
	}
	return p, nil
}

// Person returns a cast member with the works they appear in.
func (s *CatalogService) Person(ctx context.Context, device string, id int) (*models.Person, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: person %d", ErrInvalidID, id)
	}
	p, err := s.works.Person(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load person %d: %w", id, err)
	}
	s.markFavorites(ctx, device, p.Works)
	return p, nil
}

// Row is one category row of a home screen. A row that failed to load has
// no works and carries the error message.
type Row struct {
	Category string       `json:"category"`
	Page     *models.Page `json:"page"`
	Error    string       `json:"error,omitempty"`
}

// Rows loads the first page of every category of a work type concurrently.
func (s *CatalogService) Rows(ctx context.Context, device string, t models.WorkType) ([]Row, error) {
	cats := categories[t]
	if len(cats) == 0 {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidWorkType, t)
	}
	rows := make([]Row, len(cats))

	p := pool.New().WithMaxGoroutines(s.fanOut)
	for i, category := range cats {
		p.Go(func() {
			rows[i] = Row{Category: category, Page: &models.Page{Works: []models.Work{}}}
			page, err := s.works.List(ctx, t, category, 1)
			if err != nil {
				slog.Warn("home row failed", "type", t, "category", category, "error", err)
				rows[i].Error = err.Error()
				return
			}
			rows[i].Page = page
		})
	}
	p.Wait()

	failed := 0
	var all []models.Work
	for _, r := range rows {
		if r.Error != "" {
			failed++
		}
		all = append(all, r.Page.Works...)
	}
	if failed == len(rows) {
		return nil, fmt.Errorf("failed to load %s rows: %s", t, rows[0].Error)
	}

	s.markFavorites(ctx, device, all)
	offset := 0
	for _, r := range rows {
		n := len(r.Page.Works)
		copy(r.Page.Works, all[offset:offset+n])
		offset += n
	}
	return rows, nil
}

// Bundle is everything a detail screen shows.
type Bundle struct {
	Detail          *models.WorkDetail     `json:"detail"`
	Credits         *models.Credits        `json:"credits"`
	Trailers        []models.Video         `json:"trailers"`
	Providers       *models.WatchProviders `json:"providers"`
	Recommendations *models.Page           `json:"recommendations"`
	Similar         *models.Page           `json:"similar"`
}

// Bundle loads a work and its side panels concurrently. A side panel that
// fails is logged and left empty; a failed detail fails the bundle.
func (s *CatalogService) Bundle(ctx context.Context, device string, key models.WorkKey) (*Bundle, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}

	b := &Bundle{
		Credits:         &models.Credits{WorkID: key.ID, Cast: []models.Cast{}, Crew: []models.Crew{}},
		Trailers:        []models.Video{},
		Providers:       &models.WatchProviders{Region: s.region, Providers: []models.WatchProvider{}},
		Recommendations: &models.Page{Works: []models.Work{}},
		Similar:         &models.Page{Works: []models.Work{}},
	}

	side := func(name string, err error) {
		slog.Warn("detail panel failed", "work", key.String(), "panel", name, "error", err)
	}

	p := pool.New().WithContext(ctx).WithMaxGoroutines(s.fanOut).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		d, err := s.works.Detail(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to load detail %s: %w", key, err)
		}
		b.Detail = d
		return nil
	})
	p.Go(func(ctx context.Context) error {
		if c, err := s.works.Credits(ctx, key); err != nil {
			side("credits", err)
		} else {
			b.Credits = c
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		if v, err := s.works.Videos(ctx, key); err != nil {
			side("videos", err)
		} else {
			b.Trailers = models.Trailers(v)
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		if wp, err := s.works.WatchProviders(ctx, key, s.region); err != nil {
			side("providers", err)
		} else {
			b.Providers = wp
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		if r, err := s.works.Recommendations(ctx, key, 1); err != nil {
			side("recommendations", err)
		} else {
			b.Recommendations = r
		}
		return nil
	})
	p.Go(func(ctx context.Context) error {
		if r, err := s.works.Similar(ctx, key, 1); err != nil {
			side("similar", err)
		} else {
			b.Similar = r
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return nil, err
	}

	works := []models.Work{b.Detail.Work}
	s.markFavorites(ctx, device, works)
	b.Detail.Favorite = works[0].Favorite
	s.markFavorites(ctx, device, b.Recommendations.Works)
	s.markFavorites(ctx, device, b.Similar.Works)
	return b, nil
}

func (s *CatalogService) marked(ctx context.Context, device, what string, load func() (*models.Page, error)) (*models.Page, error) {
	page, err := load()
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", what, err)
	}
	s.markFavorites(ctx, device, page.Works)
	return page, nil
}

// markFavorites sets the favorite flag in place with one lookup per work
// type. A failed lookup leaves the flags unset.
func (s *CatalogService) markFavorites(ctx context.Context, device string, works []models.Work) {
	if device == "" || s.favorites == nil || len(works) == 0 {
		return
	}

	ids := make(map[models.WorkType][]int)
	for _, w := range works {
		ids[w.Type] = append(ids[w.Type], w.ID)
	}

	for t, list := range ids {
		keys, err := s.favorites.Keys(ctx, device, t, list)
		if err != nil {
			slog.Warn("favorite lookup failed", "type", t, "error", err)
			continue
		}
		for i := range works {
			if works[i].Type == t {
				works[i].Favorite = keys[works[i].ID]
			}
		}
	}
}

func checkPage(page int) error {
	if page < 1 || page > models.MaxPage {
		return fmt.Errorf("%w: %d (must be 1..%d)", ErrInvalidPage, page, models.MaxPage)
	}
	return nil
}

func checkKey(key models.WorkKey) error {
	if key.ID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, key.ID)
	}
	return nil
}
