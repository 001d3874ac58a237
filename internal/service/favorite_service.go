package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/marcuspimenta/bestv/internal/models"
)

// DetailSource resolves the display snapshot of a work being favorited.
type DetailSource interface {
	Detail(ctx context.Context, key models.WorkKey) (*models.WorkDetail, error)
}

// FavoriteService handles the favorite use cases.
type FavoriteService struct {
	store    FavoriteStore
	details  DetailSource
	pageSize int
}

// NewFavoriteService creates a new FavoriteService. details may be nil, in
// which case favorites are stored with whatever snapshot the caller passes.
func NewFavoriteService(store FavoriteStore, details DetailSource, pageSize int) *FavoriteService {
	if pageSize < 1 {
		pageSize = 20
	}
	return &FavoriteService{store: store, details: details, pageSize: pageSize}
}

// IsFavorite reports whether the device marked the work.
func (s *FavoriteService) IsFavorite(ctx context.Context, device string, key models.WorkKey) (bool, error) {
	if err := checkKey(key); err != nil {
		return false, err
	}
	ok, err := s.store.Exists(ctx, device, key)
	if err != nil {
		return false, fmt.Errorf("failed to read favorite: %w", err)
	}
	return ok, nil
}

// Toggle removes the favorite when present and inserts it otherwise. It
// returns the new persisted state.
func (s *FavoriteService) Toggle(ctx context.Context, device string, work models.Work) (bool, error) {
	key := work.Key()
	if err := checkKey(key); err != nil {
		return false, err
	}

	exists, err := s.store.Exists(ctx, device, key)
	if err != nil {
		return false, fmt.Errorf("failed to read favorite: %w", err)
	}

	if exists {
		if err := s.store.Delete(ctx, device, key); err != nil {
			return true, fmt.Errorf("failed to remove favorite: %w", err)
		}
		slog.Info("favorite removed", "work", key.String())
		return false, nil
	}

	if work.Title == "" && s.details != nil {
		if d, err := s.details.Detail(ctx, key); err != nil {
			slog.Warn("favorite snapshot lookup failed", "work", key.String(), "error", err)
		} else {
			work = d.Work
		}
	}

	if err := s.store.Insert(ctx, models.FavoriteFromWork(device, work)); err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	slog.Info("favorite added", "work", key.String())
	return true, nil
}

// List returns one page of the device's favorites. An empty type lists all.
func (s *FavoriteService) List(ctx context.Context, device string, t models.WorkType, page int) (*models.FavoritePage, error) {
	if page < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}
	p, err := s.store.List(ctx, device, t, page, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return p, nil
}

// ListAfter returns one page of favorites following after, or the
// newest ones when after is nil.
func (s *FavoriteService) ListAfter(ctx context.Context, device string, t models.WorkType, after *models.FavoriteCursor) (*models.FavoriteBatch, error) {
	b, err := s.store.ListAfter(ctx, device, t, after, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return b, nil
}

// PageSize returns the number of favorites per page.
func (s *FavoriteService) PageSize() int {
	return s.pageSize
}
