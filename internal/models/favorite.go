package models

import "time"

// Favorite is a work marked by a device, persisted by id and type.
type Favorite struct {
	Device     string    `json:"-"`
	WorkID     int       `json:"work_id"`
	WorkType   WorkType  `json:"work_type"`
	Title      string    `json:"title"`
	PosterPath string    `json:"poster_path"`
	PosterURL  string    `json:"poster_url"`
	AddedAt    time.Time `json:"added_at"`
}

// Key returns the work key of the favorite.
func (f Favorite) Key() WorkKey {
	return WorkKey{ID: f.WorkID, Type: f.WorkType}
}

// FavoriteFromWork builds the persisted snapshot of a work.
func FavoriteFromWork(device string, w Work) Favorite {
	return Favorite{
		Device:     device,
		WorkID:     w.ID,
		WorkType:   w.Type,
		Title:      w.Title,
		PosterPath: w.PosterPath,
		PosterURL:  w.PosterURL,
	}
}

// Work converts a favorite back into a list row.
func (f Favorite) Work() Work {
	return Work{
		ID:         f.WorkID,
		Type:       f.WorkType,
		Title:      f.Title,
		PosterPath: f.PosterPath,
		PosterURL:  f.PosterURL,
		Favorite:   true,
	}
}

// FavoriteCursor is the position of a favorite in newest-first order.
type FavoriteCursor struct {
	AddedAt  time.Time
	WorkType WorkType
	WorkID   int
}

// Cursor returns the position of the favorite.
func (f Favorite) Cursor() FavoriteCursor {
	return FavoriteCursor{AddedAt: f.AddedAt, WorkType: f.WorkType, WorkID: f.WorkID}
}

// Before reports whether the favorite sorts after c in newest-first order.
func (f Favorite) Before(c FavoriteCursor) bool {
	if !f.AddedAt.Equal(c.AddedAt) {
		return f.AddedAt.Before(c.AddedAt)
	}
	if f.WorkType != c.WorkType {
		return f.WorkType < c.WorkType
	}
	return f.WorkID < c.WorkID
}
