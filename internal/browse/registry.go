package browse

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/marcuspimenta/bestv/internal/config"
)

// Registry keeps the live screens of every device. Screens idle longer than
// the TTL, or pushed out by newer ones, are closed.
type Registry struct {
	screens       *expirable.LRU[string, *Screen]
	catalog       Catalog
	favorites     Favorites
	backdropDelay time.Duration
}

// NewRegistry creates a Registry sized from the browse config.
func NewRegistry(catalog Catalog, favorites Favorites, cfg config.BrowseConfig) *Registry {
	size := cfg.MaxScreens
	if size < 1 {
		size = 1024
	}
	onEvict := func(id string, s *Screen) {
		s.Close()
		slog.Debug("screen evicted", "screen", id)
	}
	return &Registry{
		screens:       expirable.NewLRU[string, *Screen](size, onEvict, cfg.ScreenTTL),
		catalog:       catalog,
		favorites:     favorites,
		backdropDelay: cfg.BackdropDelay,
	}
}

// Create opens a screen and loads its first page. The screen is kept even
// when the first load fails so that the client can retry with LoadMore.
func (r *Registry) Create(ctx context.Context, device string, p Params) (*Screen, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s := newScreen(uuid.NewString(), device, p, r.catalog, r.favorites, r.backdropDelay)
	r.screens.Add(s.ID, s)
	slog.Info("screen created", "screen", s.ID, "kind", p.Kind, "type", p.Type)

	_, err := s.LoadMore(ctx)
	return s, err
}

// Get returns a screen owned by device and refreshes its TTL.
func (r *Registry) Get(device, id string) (*Screen, error) {
	s, ok := r.screens.Get(id)
	if !ok || s.Device != device {
		return nil, fmt.Errorf("%w: %s", ErrScreenNotFound, id)
	}
	r.screens.Add(id, s)
	// The screen may have expired between Get and Add.
	if s.Closed() {
		r.screens.Remove(id)
		return nil, fmt.Errorf("%w: %s", ErrScreenNotFound, id)
	}
	return s, nil
}

// Delete closes a screen owned by device.
func (r *Registry) Delete(device, id string) error {
	if _, err := r.Get(device, id); err != nil {
		return err
	}
	r.screens.Remove(id)
	return nil
}

// Len returns the number of live screens.
func (r *Registry) Len() int {
	return r.screens.Len()
}
