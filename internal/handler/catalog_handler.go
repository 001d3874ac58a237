package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/marcuspimenta/bestv/internal/middleware"
	"github.com/marcuspimenta/bestv/internal/models"
	"github.com/marcuspimenta/bestv/internal/service"
)

// Catalog is the read side the catalog endpoints serve.
type Catalog interface {
	Genres(ctx context.Context, t models.WorkType) ([]models.Genre, error)
	Rows(ctx context.Context, device string, t models.WorkType) ([]service.Row, error)
	Trending(ctx context.Context, device string, t models.WorkType, window string, page int) (*models.Page, error)
	Category(ctx context.Context, device string, t models.WorkType, category string, page int) (*models.Page, error)
	ByGenre(ctx context.Context, device string, t models.WorkType, genreID, page int) (*models.Page, error)
	Search(ctx context.Context, device string, t models.WorkType, query string, page int) (*models.Page, error)
	Detail(ctx context.Context, device string, key models.WorkKey) (*models.WorkDetail, error)
	Bundle(ctx context.Context, device string, key models.WorkKey) (*service.Bundle, error)
	Credits(ctx context.Context, key models.WorkKey) (*models.Credits, error)
	Videos(ctx context.Context, key models.WorkKey, trailersOnly bool) ([]models.Video, error)
	Reviews(ctx context.Context, key models.WorkKey, page int) (*models.ReviewPage, error)
	WatchProviders(ctx context.Context, key models.WorkKey, region string) (*models.WatchProviders, error)
	Recommendations(ctx context.Context, device string, key models.WorkKey, page int) (*models.Page, error)
	Similar(ctx context.Context, device string, key models.WorkKey, page int) (*models.Page, error)
	Person(ctx context.Context, device string, id int) (*models.Person, error)
}

// CatalogHandler handles HTTP requests for movies, TV shows and people.
type CatalogHandler struct {
	svc Catalog
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc Catalog) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// Register mounts the catalog routes. Static segments are registered before
// /:id so they are not read as ids.
func (h *CatalogHandler) Register(r fiber.Router) {
	g := r.Group("/catalog/:type")
	g.Get("/genres", h.Genres)
	g.Get("/rows", h.Rows)
	g.Get("/trending", h.Trending)
	g.Get("/category/:category", h.Category)
	g.Get("/genre/:genreId", h.ByGenre)
	g.Get("/search", h.Search)
	g.Get("/:id", h.Detail)
	g.Get("/:id/bundle", h.Bundle)
	g.Get("/:id/credits", h.Credits)
	g.Get("/:id/videos", h.Videos)
	g.Get("/:id/reviews", h.Reviews)
	g.Get("/:id/providers", h.WatchProviders)
	g.Get("/:id/recommendations", h.Recommendations)
	g.Get("/:id/similar", h.Similar)

	r.Get("/people/:id", h.Person)
}

// Genres lists the genres of a work type.
// @Summary List genres
// @Tags catalog
// @Produce json
// @Param type path string true "Work type" Enums(movie,tv)
// @Success 200 {array} models.Genre
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /catalog/{type}/genres [get]
func (h *CatalogHandler) Genres(c fiber.Ctx) error {
	t, err := workType(c)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	genres, err := h.svc.Genres(c.Context(), t)
	if err != nil {
		return fail(c, err, fiber.StatusBadGateway)
	}
	return c.JSON(genres)
}

// Rows returns the first page of every category for a home screen.
// @Summary Home rows
// @Tags catalog
// @Produce json
// @Param type path string true "Work type" Enums(movie,tv)
// @Success 200 {array} service.Row
// @Router /catalog/{type}/rows [get]
func (h *CatalogHandler) Rows(c fiber.Ctx) error {
	t, err := workType(c)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	rows, err := h.svc.Rows(c.Context(), middleware.Device(c), t)
	if err != nil {
		return fail(c, err, fiber.StatusBadGateway)
	}
	return c.JSON(rows)
}

// Trending returns trending works.
// @Summary Trending works
// @Tags catalog
// @Param window query string false "Time window" Enums(day,week) default(week)
// @Param page query int false "Page number" default(1)
// @Router /catalog/{type}/trending [get]
func (h *CatalogHandler) Trending(c fiber.Ctx) error {
	t, err := workType(c)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	page, err := h.svc.Trending(c.Context(), middleware.Device(c), t, c.Query("window", "week"), fiber.Query(c, "page", 1))
	if err != nil {
		return fail(c, err, fiber.StatusBadGateway)
	}
	return c.JSON(page)
}

// Category returns one page of a category list.
// @Summary List works by category
// @Tags catalog
// @Param category path string true "Category" Enums(popular,top_rated,now_playing,upcoming,on_the_air,airing_today)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} models.Page
// @Router /catalog/{type}/category/{category} [get]
func (h *CatalogHandler) Category(c fiber.Ctx) error {
	t, err := workType(c)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	page, err := h.svc.Category(c.Context(), middleware.Device(c), t, c.Params("category"), fiber.Query(c, "page", 1))
	if err != nil {
		return fail(c, err, fiber.StatusBadGateway)
	}
	return c.JSON(page)
}

// ByGenre returns one page of works in a genre.
// @Summary List works by genre
// @Tags catalog
// @Router /catalog/{type}/genre/{genreId} [get]
func (h *CatalogHandler) ByGenre(c fiber.Ctx) error {
	t, err := workType(c)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	genreID, err := positiveID(c, "genreId")
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	page, err := h.svc.ByGenre(c.Context(), middleware.Device(c), t, genreID, fiber.Query(c, "page", 1))
	if err != nil {
		return fail(c, err, fiber.StatusBadGateway)
	}
	return c.JSON(page)
}

// Search runs a title search.
// @Summary Search works
// @Tags catalog
// @Param query query string true "Title query"
// @Router /catalog/{type}/search [get]
func (h *CatalogHandler) Search(c fiber.Ctx) error {
	t, err := workType(c)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	page, err := h.svc.Search(c.Context(), middleware.Device(c), t, c.Query("query"), fiber.Query(c, "page", 1))
	if err != nil {
		return fail(c, err, fiber.StatusBadGateway)
	}
	return c.JSON(page)
}

// Detail returns a work.
// @Summary Get work detail
// @Tags catalog
// @Success 200 {object} models.WorkDetail
// @Failure 404 {object} ErrorResponse
// @Router /catalog/{type}/{id} [get]
func (h *CatalogHandler) Detail(c fiber.Ctx) error {
	key, err := workKey(c)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	detail, err := h.svc.Detail(c.Context(), middleware.Device(c), key)
	if err != nil {
		return fail(c, err, fiber.StatusBadGateway)
	}
	return c.JSON(detail)
}

// Bundle returns a work with credits, trailers, providers and related rows.
// @Summary Get detail screen bundle
// @Tags catalog
// @Success 200 {object} service.Bundle
// @Router /catalog/{type}/{id}/bundle [get]
func (h *CatalogHandler) Bundle(c fiber.Ctx) error {
	key, err := workKey(c)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	b, err := h.svc.Bundle(c.Context(), middleware.Device(c), key)
	if err != nil {
		return fail(c, err, fiber.StatusBadGateway)
	}
	return c.JSON(b)
}

// Credits returns cast and crew.
// @Summary Get credits
// @Tags catalog
// @Router /catalog/{type}/{id}/credits [get]
func (h *CatalogHandler) Credits(c fiber.Ctx) error {
	key, err := workKey(c)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	credits, err := h.svc.Credits(c.Context(), key)
	if err != nil {
		return fail(c, err, fiber.StatusBadGateway)
	}
	return c.JSON(credits)
}

// Videos returns videos of a work.
// @Summary Get videos
// @Tags catalog
// @Param trailers_only query bool false "Only trailers and teasers"
// @Router /catalog/{type}/{id}/videos [get]
func (h *CatalogHandler) Videos(c fiber.Ctx) error {
	key, err := workKey(c)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	videos, err := h.svc.Videos(c.Context(), key, fiber.Query(c, "trailers_only", false))
	if err != nil {
		return fail(c, err, fiber.StatusBadGateway)
	}
	return c.JSON(videos)
}

// Reviews returns one page of reviews.
// @Summary Get reviews
// @Tags catalog
// @Router /catalog/{type}/{id}/reviews [get]
func (h *CatalogHandler) Reviews(c fiber.Ctx) error {
	key, err := workKey(c)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	reviews, err := h.svc.Reviews(c.Context(), key, fiber.Query(c, "page", 1))
	if err != nil {
		return fail(c, err, fiber.StatusBadGateway)
	}
	return c.JSON(reviews)
}

// WatchProviders returns where a work can be watched.
// @Summary Get watch providers
// @Tags catalog
// @Param region query string false "ISO 3166-1 region"
// @Router /catalog/{type}/{id}/providers [get]
func (h *CatalogHandler) WatchProviders(c fiber.Ctx) error {
	key, err := workKey(c)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	providers, err := h.svc.WatchProviders(c.Context(), key, c.Query("region"))
	if err != nil {
		return fail(c, err, fiber.StatusBadGateway)
	}
	return c.JSON(providers)
}

// Recommendations returns works recommended for a work.
// @Summary Get recommendations
// @Tags catalog
// @Router /catalog/{type}/{id}/recommendations [get]
func (h *CatalogHandler) Recommendations(c fiber.Ctx) error {
	key, err := workKey(c)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	page, err := h.svc.Recommendations(c.Context(), middleware.Device(c), key, fiber.Query(c, "page", 1))
	if err != nil {
		return fail(c, err, fiber.StatusBadGateway)
	}
	return c.JSON(page)
}

// Similar returns works similar to a work.
// @Summary Get similar works
// @Tags catalog
// @Router /catalog/{type}/{id}/similar [get]
func (h *CatalogHandler) Similar(c fiber.Ctx) error {
	key, err := workKey(c)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	page, err := h.svc.Similar(c.Context(), middleware.Device(c), key, fiber.Query(c, "page", 1))
	if err != nil {
		return fail(c, err, fiber.StatusBadGateway)
	}
	return c.JSON(page)
}

// Person returns a cast or crew member.
// @Summary Get person
// @Tags people
// @Success 200 {object} models.Person
// @Router /people/{id} [get]
func (h *CatalogHandler) Person(c fiber.Ctx) error {
	id, err := positiveID(c, "id")
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	person, err := h.svc.Person(c.Context(), middleware.Device(c), id)
	if err != nil {
		return fail(c, err, fiber.StatusBadGateway)
	}
	return c.JSON(person)
}
