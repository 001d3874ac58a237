package browse

import (
	"context"
	"fmt"

	"github.com/marcuspimenta/bestv/internal/models"
)

// FavoriteToggler persists a favorite toggle and returns the new state.
type FavoriteToggler interface {
	Toggle(ctx context.Context, device string, work models.Work) (bool, error)
}

// ToggleFavorite flips w.Favorite, persists the change and reverts the flag
// when persisting fails.
func ToggleFavorite(ctx context.Context, store FavoriteToggler, device string, w *models.Work) error {
	previous := w.Favorite
	w.Favorite = !previous

	persisted, err := store.Toggle(ctx, device, *w)
	if err != nil {
		w.Favorite = previous
		return fmt.Errorf("%w: %s: %w", ErrMutationFailed, w.Key(), err)
	}
	w.Favorite = persisted
	return nil
}
