package models

// MaxPage is the last page TMDb will serve for any paged endpoint.
const MaxPage = 500

// Page is one fetched slice of a paginated work list.
type Page struct {
	Page         int    `json:"page"`
	TotalPages   int    `json:"total_pages"`
	TotalResults int    `json:"total_results"`
	Works        []Work `json:"works"`
}

// HasNext reports whether a page after this one exists.
func (p Page) HasNext() bool {
	return p.Page < p.TotalPages
}

// ClampTotalPages caps the page count at MaxPage.
func ClampTotalPages(total int) int {
	if total > MaxPage {
		return MaxPage
	}
	if total < 0 {
		return 0
	}
	return total
}

// ReviewPage is a paged list of reviews.
type ReviewPage struct {
	Page         int      `json:"page"`
	TotalPages   int      `json:"total_pages"`
	TotalResults int      `json:"total_results"`
	Reviews      []Review `json:"reviews"`
}

// FavoritePage is a paged list of favorites.
type FavoritePage struct {
	Page         int        `json:"page"`
	PageSize     int        `json:"page_size"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
	Favorites    []Favorite `json:"favorites"`
}

// TotalPagesFor returns the number of pages needed for total items.
func TotalPagesFor(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// FavoriteBatch is a run of favorites read after a cursor. Remaining counts
// the favorites that follow the last one in the batch.
type FavoriteBatch struct {
	Favorites []Favorite `json:"favorites"`
	Remaining int        `json:"remaining"`
}
