package handler

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"github.com/marcuspimenta/bestv/internal/browse"
	"github.com/marcuspimenta/bestv/internal/middleware"
	"github.com/marcuspimenta/bestv/internal/models"
)

// Favorites is the favorite use cases the endpoints serve.
type Favorites interface {
	IsFavorite(ctx context.Context, device string, key models.WorkKey) (bool, error)
	Toggle(ctx context.Context, device string, work models.Work) (bool, error)
	List(ctx context.Context, device string, t models.WorkType, page int) (*models.FavoritePage, error)
}

// FavoriteHandler handles HTTP requests for favorites.
type FavoriteHandler struct {
	svc Favorites
}

// NewFavoriteHandler creates a new FavoriteHandler.
func NewFavoriteHandler(svc Favorites) *FavoriteHandler {
	return &FavoriteHandler{svc: svc}
}

// Register mounts the favorite routes.
func (h *FavoriteHandler) Register(r fiber.Router) {
	r.Get("/favorites", h.List)
	r.Get("/favorites/:type/:id", h.Get)
	r.Post("/favorites/:type/:id/toggle", h.Toggle)
}

// FavoriteState is the favorite flag of one work.
type FavoriteState struct {
	WorkID   int             `json:"work_id"`
	WorkType models.WorkType `json:"work_type"`
	Favorite bool            `json:"favorite"`
}

// ToggleRequest optionally carries the snapshot stored with a new favorite.
type ToggleRequest struct {
	Title      string `json:"title"`
	PosterPath string `json:"poster_path"`
}

// List returns the device's favorites.
// @Summary List favorites
// @Tags favorites
// @Param type query string false "Work type" Enums(movie,tv)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} models.FavoritePage
// @Router /favorites [get]
func (h *FavoriteHandler) List(c fiber.Ctx) error {
	var t models.WorkType
	if raw := c.Query("type"); raw != "" {
		parsed, err := models.ParseWorkType(raw)
		if err != nil {
			return fail(c, err, fiber.StatusBadRequest)
		}
		t = parsed
	}
	page, err := h.svc.List(c.Context(), middleware.Device(c), t, fiber.Query(c, "page", 1))
	if err != nil {
		return fail(c, err, fiber.StatusInternalServerError)
	}
	return c.JSON(page)
}

// Get reports whether a work is a favorite.
// @Summary Get favorite state
// @Tags favorites
// @Success 200 {object} FavoriteState
// @Router /favorites/{type}/{id} [get]
func (h *FavoriteHandler) Get(c fiber.Ctx) error {
	key, err := workKey(c)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	ok, err := h.svc.IsFavorite(c.Context(), middleware.Device(c), key)
	if err != nil {
		return fail(c, err, fiber.StatusInternalServerError)
	}
	return c.JSON(FavoriteState{WorkID: key.ID, WorkType: key.Type, Favorite: ok})
}

// Toggle flips the favorite state of a work.
// @Summary Toggle favorite
// @Tags favorites
// @Accept json
// @Param body body ToggleRequest false "Snapshot stored with a new favorite"
// @Success 200 {object} FavoriteState
// @Failure 500 {object} ErrorResponse
// @Router /favorites/{type}/{id}/toggle [post]
func (h *FavoriteHandler) Toggle(c fiber.Ctx) error {
	key, err := workKey(c)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}

	var req ToggleRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
		}
	}

	work := models.Work{
		ID:         key.ID,
		Type:       key.Type,
		Title:      req.Title,
		PosterPath: req.PosterPath,
		PosterURL:  models.ImageURL(models.TMDBImageBaseW500, req.PosterPath),
	}
	if err := browse.ToggleFavorite(c.Context(), h.svc, middleware.Device(c), &work); err != nil {
		return fail(c, err, fiber.StatusInternalServerError)
	}
	return c.JSON(FavoriteState{WorkID: key.ID, WorkType: key.Type, Favorite: work.Favorite})
}
