package service

import (
	"context"

	"github.com/marcuspimenta/bestv/internal/models"
)

// WorkStore is the read side of the catalog.
type WorkStore interface {
	Genres(ctx context.Context, t models.WorkType) ([]models.Genre, error)
	List(ctx context.Context, t models.WorkType, category string, page int) (*models.Page, error)
	Trending(ctx context.Context, t models.WorkType, window string, page int) (*models.Page, error)
	Discover(ctx context.Context, t models.WorkType, genreID, page int) (*models.Page, error)
	Search(ctx context.Context, t models.WorkType, query string, page int) (*models.Page, error)
	Recommendations(ctx context.Context, key models.WorkKey, page int) (*models.Page, error)
	Similar(ctx context.Context, key models.WorkKey, page int) (*models.Page, error)
	Detail(ctx context.Context, key models.WorkKey) (*models.WorkDetail, error)
	Credits(ctx context.Context, key models.WorkKey) (*models.Credits, error)
	Videos(ctx context.Context, key models.WorkKey) ([]models.Video, error)
	Reviews(ctx context.Context, key models.WorkKey, page int) (*models.ReviewPage, error)
	WatchProviders(ctx context.Context, key models.WorkKey, region string) (*models.WatchProviders, error)
	Person(ctx context.Context, id int) (*models.Person, error)
}

// FavoriteStore persists favorites per device.
type FavoriteStore interface {
	Exists(ctx context.Context, device string, key models.WorkKey) (bool, error)
	Insert(ctx context.Context, f models.Favorite) error
	Delete(ctx context.Context, device string, key models.WorkKey) error
	List(ctx context.Context, device string, t models.WorkType, page, pageSize int) (*models.FavoritePage, error)
	ListAfter(ctx context.Context, device string, t models.WorkType, after *models.FavoriteCursor, limit int) (*models.FavoriteBatch, error)
	Keys(ctx context.Context, device string, t models.WorkType, ids []int) (map[int]bool, error)
}
