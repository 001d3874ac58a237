package browse

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/marcuspimenta/bestv/internal/models"
)

// PageLoader fetches one page of works.
type PageLoader func(ctx context.Context, page int) (*models.Page, error)

// Paginator accumulates the pages of one list. At most one load runs at a
// time.
type Paginator struct {
	load PageLoader

	mu          sync.Mutex
	currentPage int
	totalPages  int
	items       []models.Work
	index       map[models.WorkKey]int
	loading     bool
}

// NewPaginator creates an empty Paginator.
func NewPaginator(load PageLoader) *Paginator {
	return &Paginator{
		load:  load,
		items: []models.Work{},
		index: make(map[models.WorkKey]int),
	}
}

// PaginatorState is a copy of the paginator counters and items.
type PaginatorState struct {
	CurrentPage int           `json:"current_page"`
	TotalPages  int           `json:"total_pages"`
	HasMore     bool          `json:"has_more"`
	Loading     bool          `json:"loading"`
	Works       []models.Work `json:"works"`
}

// HasMore reports whether LoadNext would issue a request.
func (p *Paginator) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMoreLocked()
}

func (p *Paginator) hasMoreLocked() bool {
	return p.currentPage == 0 || p.currentPage+1 <= p.totalPages
}

// LoadNext requests the page after the current one and appends the works
// not already accumulated. It returns the number of works added.
//
// Once the last page is loaded LoadNext is a no-op and issues no request.
// On failure counters and items are left untouched.
func (p *Paginator) LoadNext(ctx context.Context) (int, error) {
	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return 0, ErrLoadInFlight
	}
	if !p.hasMoreLocked() {
		p.mu.Unlock()
		return 0, nil
	}
	next := p.currentPage + 1
	p.loading = true
	p.mu.Unlock()

	page, err := p.load(ctx, next)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false

	if err != nil {
		return 0, fmt.Errorf("%w: page %d: %w", ErrLoadFailed, next, err)
	}
	if page == nil {
		return 0, fmt.Errorf("%w: page %d: empty response", ErrLoadFailed, next)
	}

	added := 0
	for _, w := range page.Works {
		if _, dup := p.index[w.Key()]; dup {
			continue
		}
		p.index[w.Key()] = len(p.items)
		p.items = append(p.items, w)
		added++
	}

	p.currentPage = page.Page
	if p.currentPage == 0 {
		p.currentPage = next
	}
	p.totalPages = models.ClampTotalPages(page.TotalPages)
	return added, nil
}

// State returns a copy of the counters and accumulated works.
func (p *Paginator) State() PaginatorState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return PaginatorState{
		CurrentPage: p.currentPage,
		TotalPages:  p.totalPages,
		HasMore:     p.hasMoreLocked(),
		Loading:     p.loading,
		Works:       slices.Clone(p.items),
	}
}

// Item returns a copy of an accumulated work.
func (p *Paginator) Item(key models.WorkKey) (models.Work, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	i, ok := p.index[key]
	if !ok {
		return models.Work{}, false
	}
	return p.items[i], true
}

// SetFavorite updates the favorite flag of an accumulated work.
func (p *Paginator) SetFavorite(key models.WorkKey, favorite bool) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	i, ok := p.index[key]
	if ok {
		p.items[i].Favorite = favorite
	}
	return ok
}

// Reset drops every accumulated page.
func (p *Paginator) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.currentPage = 0
	p.totalPages = 0
	p.items = []models.Work{}
	p.index = make(map[models.WorkKey]int)
}
