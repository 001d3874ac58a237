package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/marcuspimenta/bestv/internal/models"
)

// FavoriteRepository stores favorites in PostgreSQL, scoped per device.
type FavoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new FavoriteRepository.
func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Exists reports whether the device marked the work as favorite.
func (r *FavoriteRepository) Exists(ctx context.Context, device string, key models.WorkKey) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM favorites WHERE device = $1 AND work_type = $2 AND work_id = $3
		)
	`, device, string(key.Type), key.ID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite %s: %w", key, err)
	}
	return exists, nil
}

// Insert stores a favorite. Inserting an existing favorite is a no-op.
func (r *FavoriteRepository) Insert(ctx context.Context, f models.Favorite) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO favorites (device, work_id, work_type, title, poster_path)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING
	`, f.Device, f.WorkID, string(f.WorkType), f.Title, f.PosterPath)
	if err != nil {
		return fmt.Errorf("failed to insert favorite %s: %w", f.Key(), err)
	}
	return nil
}

// Delete removes a favorite. Deleting a missing favorite is not an error.
func (r *FavoriteRepository) Delete(ctx context.Context, device string, key models.WorkKey) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM favorites WHERE device = $1 AND work_type = $2 AND work_id = $3
	`, device, string(key.Type), key.ID)
	if err != nil {
		return fmt.Errorf("failed to delete favorite %s: %w", key, err)
	}
	return nil
}

// List returns one page of the device's favorites, newest first. An empty
// work type lists both movies and TV shows.
func (r *FavoriteRepository) List(ctx context.Context, device string, t models.WorkType, page, pageSize int) (*models.FavoritePage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var total int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM favorites WHERE device = $1 AND ($2 = '' OR work_type = $2)
	`, device, string(t)).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT work_id, work_type, title, poster_path, added_at
		FROM favorites
		WHERE device = $1 AND ($2 = '' OR work_type = $2)
		ORDER BY added_at DESC, work_type DESC, work_id DESC
		LIMIT $3 OFFSET $4
	`, device, string(t), pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	favorites, err := scanFavorites(rows, device)
	if err != nil {
		return nil, err
	}

	return &models.FavoritePage{
		Page:         page,
		PageSize:     pageSize,
		TotalPages:   models.TotalPagesFor(total, pageSize),
		TotalResults: total,
		Favorites:    favorites,
	}, nil
}

// ListAfter returns up to limit favorites that follow after in newest-first
// order, or the newest ones when after is nil. Rows removed before the
// cursor do not shift the rows that follow it.
func (r *FavoriteRepository) ListAfter(ctx context.Context, device string, t models.WorkType, after *models.FavoriteCursor, limit int) (*models.FavoriteBatch, error) {
	if limit < 1 {
		limit = 20
	}

	where := "device = $1 AND ($2 = '' OR work_type = $2)"
	args := []any{device, string(t)}
	if after != nil {
		where += " AND (added_at, work_type, work_id) < ($3, $4, $5)"
		args = append(args, after.AddedAt, string(after.WorkType), after.WorkID)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM favorites WHERE "+where, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT work_id, work_type, title, poster_path, added_at
		FROM favorites
		WHERE %s
		ORDER BY added_at DESC, work_type DESC, work_id DESC
		LIMIT $%d
	`, where, len(args)+1)
	rows, err := r.db.QueryContext(ctx, query, append(args, limit)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	favorites, err := scanFavorites(rows, device)
	if err != nil {
		return nil, err
	}
	return &models.FavoriteBatch{
		Favorites: favorites,
		Remaining: max(0, total-len(favorites)),
	}, nil
}

func scanFavorites(rows *sql.Rows, device string) ([]models.Favorite, error) {
	favorites := []models.Favorite{}
	for rows.Next() {
		var f models.Favorite
		var workType string
		if err := rows.Scan(&f.WorkID, &workType, &f.Title, &f.PosterPath, &f.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		f.Device = device
		f.WorkType = models.WorkType(workType)
		f.PosterURL = models.ImageURL(models.TMDBImageBaseW500, f.PosterPath)
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate favorites: %w", err)
	}
	return favorites, nil
}

// Keys returns the subset of ids the device marked as favorite.
func (r *FavoriteRepository) Keys(ctx context.Context, device string, t models.WorkType, ids []int) (map[int]bool, error) {
	out := make(map[int]bool, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	ids64 := make([]int64, len(ids))
	for i, id := range ids {
		ids64[i] = int64(id)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT work_id FROM favorites
		WHERE device = $1 AND work_type = $2 AND work_id = ANY($3)
	`, device, string(t), pq.Array(ids64))
	if err != nil {
		return nil, fmt.Errorf("failed to query favorite keys: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan favorite key: %w", err)
		}
		out[id] = true
	}
	return out, rows.Err()
}
