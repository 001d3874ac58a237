package browse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/marcuspimenta/bestv/internal/models"
	"github.com/marcuspimenta/bestv/internal/service"
)

// Kind is the list a screen pages through.
type Kind string

const (
	KindCategory        Kind = "category"
	KindGenre           Kind = "genre"
	KindSearch          Kind = "search"
	KindRecommendations Kind = "recommendations"
	KindSimilar         Kind = "similar"
	KindFavorites       Kind = "favorites"
)

// Catalog is the set of paged use cases a screen can browse.
type Catalog interface {
	Category(ctx context.Context, device string, t models.WorkType, category string, page int) (*models.Page, error)
	ByGenre(ctx context.Context, device string, t models.WorkType, genreID, page int) (*models.Page, error)
	Search(ctx context.Context, device string, t models.WorkType, query string, page int) (*models.Page, error)
	Recommendations(ctx context.Context, device string, key models.WorkKey, page int) (*models.Page, error)
	Similar(ctx context.Context, device string, key models.WorkKey, page int) (*models.Page, error)
}

// Favorites is the favorite use cases a screen needs.
type Favorites interface {
	FavoriteToggler
	ListAfter(ctx context.Context, device string, t models.WorkType, after *models.FavoriteCursor) (*models.FavoriteBatch, error)
}

// Params selects what a screen lists.
type Params struct {
	Kind     Kind            `json:"kind"`
	Type     models.WorkType `json:"type"`
	Category string          `json:"category,omitempty"`
	GenreID  int             `json:"genre_id,omitempty"`
	Query    string          `json:"query,omitempty"`
	WorkID   int             `json:"work_id,omitempty"`
}

// Validate checks that the fields the kind needs are set.
func (p Params) Validate() error {
	knownType := p.Type == models.WorkTypeMovie || p.Type == models.WorkTypeTVShow
	// Favorites may list both types at once.
	if !knownType && (p.Kind != KindFavorites || p.Type != "") {
		return fmt.Errorf("%w: type %q", ErrInvalidParams, p.Type)
	}
	switch p.Kind {
	case KindCategory:
		if !slices.Contains(service.Categories(p.Type), p.Category) {
			return fmt.Errorf("%w: category %q for %s", ErrInvalidParams, p.Category, p.Type)
		}
	case KindGenre:
		if p.GenreID <= 0 {
			return fmt.Errorf("%w: genre_id is required", ErrInvalidParams)
		}
	case KindSearch:
		if strings.TrimSpace(p.Query) == "" {
			return fmt.Errorf("%w: query is required", ErrInvalidParams)
		}
	case KindRecommendations, KindSimilar:
		if p.WorkID <= 0 {
			return fmt.Errorf("%w: work_id is required", ErrInvalidParams)
		}
	case KindFavorites:
	default:
		return fmt.Errorf("%w: kind %q", ErrInvalidParams, p.Kind)
	}
	return nil
}

// Screen is the server-side state of one browse screen: its accumulated
// list, the focused work and the settled backdrop.
type Screen struct {
	ID        string
	Device    string
	Params    Params
	CreatedAt time.Time

	pager     *Paginator
	backdrop  *Debouncer
	favorites FavoriteToggler

	mu          sync.Mutex
	focused     *models.Work
	backdropURL string
	lastErr     string
	closed      bool
}

// Snapshot is the render state of a screen.
type Snapshot struct {
	ID          string        `json:"id"`
	Params      Params        `json:"params"`
	CurrentPage int           `json:"current_page"`
	TotalPages  int           `json:"total_pages"`
	HasMore     bool          `json:"has_more"`
	Loading     bool          `json:"loading"`
	Works       []models.Work `json:"works"`
	Focused     *models.Work  `json:"focused,omitempty"`
	BackdropURL string        `json:"backdrop_url,omitempty"`
	Error       string        `json:"error,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

func newScreen(id, device string, p Params, catalog Catalog, favorites Favorites, backdropDelay time.Duration) *Screen {
	return &Screen{
		ID:        id,
		Device:    device,
		Params:    p,
		CreatedAt: time.Now(),
		pager:     NewPaginator(loaderFor(device, p, catalog, favorites)),
		backdrop:  NewDebouncer(backdropDelay),
		favorites: favorites,
	}
}

func loaderFor(device string, p Params, catalog Catalog, favorites Favorites) PageLoader {
	key := models.WorkKey{ID: p.WorkID, Type: p.Type}
	switch p.Kind {
	case KindCategory:
		return func(ctx context.Context, page int) (*models.Page, error) {
			return catalog.Category(ctx, device, p.Type, p.Category, page)
		}
	case KindGenre:
		return func(ctx context.Context, page int) (*models.Page, error) {
			return catalog.ByGenre(ctx, device, p.Type, p.GenreID, page)
		}
	case KindSearch:
		return func(ctx context.Context, page int) (*models.Page, error) {
			return catalog.Search(ctx, device, p.Type, p.Query, page)
		}
	case KindRecommendations:
		return func(ctx context.Context, page int) (*models.Page, error) {
			return catalog.Recommendations(ctx, device, key, page)
		}
	case KindSimilar:
		return func(ctx context.Context, page int) (*models.Page, error) {
			return catalog.Similar(ctx, device, key, page)
		}
	default:
		return favoritesLoader(device, p.Type, favorites)
	}
}

// favoritesLoader pages the stored favorites by cursor so that favorites
// removed from the screen do not shift the pages that follow. The Paginator
// runs one load at a time, so the cursor needs no lock.
func favoritesLoader(device string, t models.WorkType, favorites Favorites) PageLoader {
	var (
		after *models.FavoriteCursor
		shown int
	)
	return func(ctx context.Context, page int) (*models.Page, error) {
		b, err := favorites.ListAfter(ctx, device, t, after)
		if err != nil {
			return nil, err
		}
		works := make([]models.Work, len(b.Favorites))
		for i, f := range b.Favorites {
			works[i] = f.Work()
		}
		if n := len(b.Favorites); n > 0 {
			c := b.Favorites[n-1].Cursor()
			after = &c
		}
		shown += len(works)
		return &models.Page{
			Page:         page,
			TotalPages:   page + models.TotalPagesFor(b.Remaining, len(works)),
			TotalResults: shown + b.Remaining,
			Works:        works,
		}, nil
	}
}

// LoadMore loads the next page. Failures are kept as the screen error until
// the next successful load.
func (s *Screen) LoadMore(ctx context.Context) (int, error) {
	added, err := s.pager.LoadNext(ctx)
	if errors.Is(err, ErrLoadInFlight) {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = err.Error()
		slog.Warn("screen load failed", "screen", s.ID, "kind", s.Params.Kind, "error", err)
		return 0, err
	}
	s.lastErr = ""
	return added, nil
}

// Focus selects a work on the screen. The backdrop follows once focus has
// settled.
func (s *Screen) Focus(key models.WorkKey) error {
	w, ok := s.pager.Item(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrWorkNotFound, key)
	}

	s.mu.Lock()
	s.focused = &w
	s.mu.Unlock()

	s.backdrop.Trigger(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.backdropURL = w.BackdropURL
	})
	return nil
}

// ToggleFavorite flips the favorite flag of a work on the screen and
// persists it. On failure the flag is restored.
func (s *Screen) ToggleFavorite(ctx context.Context, key models.WorkKey) (models.Work, error) {
	w, ok := s.pager.Item(key)
	if !ok {
		return models.Work{}, fmt.Errorf("%w: %s", ErrWorkNotFound, key)
	}

	s.pager.SetFavorite(key, !w.Favorite)
	err := ToggleFavorite(ctx, s.favorites, s.Device, &w)
	s.pager.SetFavorite(key, w.Favorite)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.focused != nil && s.focused.Key() == key {
		s.focused.Favorite = w.Favorite
	}
	if err != nil {
		s.lastErr = err.Error()
		return w, err
	}
	return w, nil
}

// Snapshot returns the current render state.
func (s *Screen) Snapshot() Snapshot {
	st := s.pager.State()

	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		ID:          s.ID,
		Params:      s.Params,
		CurrentPage: st.CurrentPage,
		TotalPages:  st.TotalPages,
		HasMore:     st.HasMore,
		Loading:     st.Loading,
		Works:       st.Works,
		BackdropURL: s.backdropURL,
		Error:       s.lastErr,
		CreatedAt:   s.CreatedAt,
	}
	if s.focused != nil {
		f := *s.focused
		snap.Focused = &f
	}
	return snap
}

// Close stops pending timers. A closed screen stays closed.
func (s *Screen) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.backdrop.Stop()
}

// Closed reports whether the screen was closed.
func (s *Screen) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
