package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/marcuspimenta/bestv/internal/models"
)

// MockWorkStore mocks the WorkStore interface
type MockWorkStore struct {
	mock.Mock
}

func pageOrNil(args mock.Arguments) (*models.Page, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Page), args.Error(1)
}

func (m *MockWorkStore) Genres(ctx context.Context, t models.WorkType) ([]models.Genre, error) {
	args := m.Called(ctx, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockWorkStore) List(ctx context.Context, t models.WorkType, category string, page int) (*models.Page, error) {
	return pageOrNil(m.Called(ctx, t, category, page))
}

func (m *MockWorkStore) Trending(ctx context.Context, t models.WorkType, window string, page int) (*models.Page, error) {
	return pageOrNil(m.Called(ctx, t, window, page))
}

func (m *MockWorkStore) Discover(ctx context.Context, t models.WorkType, genreID, page int) (*models.Page, error) {
	return pageOrNil(m.Called(ctx, t, genreID, page))
}

func (m *MockWorkStore) Search(ctx context.Context, t models.WorkType, query string, page int) (*models.Page, error) {
	return pageOrNil(m.Called(ctx, t, query, page))
}

func (m *MockWorkStore) Recommendations(ctx context.Context, key models.WorkKey, page int) (*models.Page, error) {
	return pageOrNil(m.Called(ctx, key, page))
}

func (m *MockWorkStore) Similar(ctx context.Context, key models.WorkKey, page int) (*models.Page, error) {
	return pageOrNil(m.Called(ctx, key, page))
}

func (m *MockWorkStore) Detail(ctx context.Context, key models.WorkKey) (*models.WorkDetail, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkDetail), args.Error(1)
}

func (m *MockWorkStore) Credits(ctx context.Context, key models.WorkKey) (*models.Credits, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Credits), args.Error(1)
}

func (m *MockWorkStore) Videos(ctx context.Context, key models.WorkKey) ([]models.Video, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Video), args.Error(1)
}

func (m *MockWorkStore) Reviews(ctx context.Context, key models.WorkKey, page int) (*models.ReviewPage, error) {
	args := m.Called(ctx, key, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReviewPage), args.Error(1)
}

func (m *MockWorkStore) WatchProviders(ctx context.Context, key models.WorkKey, region string) (*models.WatchProviders, error) {
	args := m.Called(ctx, key, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WatchProviders), args.Error(1)
}

func (m *MockWorkStore) Person(ctx context.Context, id int) (*models.Person, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Person), args.Error(1)
}

// MockFavoriteStore mocks the FavoriteStore interface
type MockFavoriteStore struct {
	mock.Mock
}

func (m *MockFavoriteStore) Exists(ctx context.Context, device string, key models.WorkKey) (bool, error) {
	args := m.Called(ctx, device, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteStore) Insert(ctx context.Context, f models.Favorite) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockFavoriteStore) Delete(ctx context.Context, device string, key models.WorkKey) error {
	return m.Called(ctx, device, key).Error(0)
}

func (m *MockFavoriteStore) List(ctx context.Context, device string, t models.WorkType, page, pageSize int) (*models.FavoritePage, error) {
	args := m.Called(ctx, device, t, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FavoritePage), args.Error(1)
}

func (m *MockFavoriteStore) ListAfter(ctx context.Context, device string, t models.WorkType, after *models.FavoriteCursor, limit int) (*models.FavoriteBatch, error) {
	args := m.Called(ctx, device, t, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FavoriteBatch), args.Error(1)
}

func (m *MockFavoriteStore) Keys(ctx context.Context, device string, t models.WorkType, ids []int) (map[int]bool, error) {
	args := m.Called(ctx, device, t, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]bool), args.Error(1)
}
