package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/marcuspimenta/bestv/internal/browse"
	"github.com/marcuspimenta/bestv/internal/middleware"
	"github.com/marcuspimenta/bestv/internal/models"
)

// Screens is the screen registry the endpoints drive.
type Screens interface {
	Create(ctx context.Context, device string, p browse.Params) (*browse.Screen, error)
	Get(device, id string) (*browse.Screen, error)
	Delete(device, id string) error
}

// ScreenHandler handles HTTP requests for browse screens.
type ScreenHandler struct {
	screens Screens
}

// NewScreenHandler creates a new ScreenHandler.
func NewScreenHandler(screens Screens) *ScreenHandler {
	return &ScreenHandler{screens: screens}
}

// Register mounts the screen routes.
func (h *ScreenHandler) Register(r fiber.Router) {
	r.Post("/screens", h.Create)
	r.Get("/screens/:id", h.Get)
	r.Post("/screens/:id/more", h.LoadMore)
	r.Post("/screens/:id/focus", h.Focus)
	r.Post("/screens/:id/favorite", h.ToggleFavorite)
	r.Delete("/screens/:id", h.Delete)
}

// CreateScreenRequest selects the list a new screen pages through.
type CreateScreenRequest struct {
	Kind     browse.Kind `json:"kind"`
	Type     string      `json:"type"`
	Category string      `json:"category"`
	GenreID  int         `json:"genre_id"`
	Query    string      `json:"query"`
	WorkID   int         `json:"work_id"`
}

// WorkRef names a work on a screen. Type defaults to the screen's type.
type WorkRef struct {
	WorkID int    `json:"work_id"`
	Type   string `json:"type"`
}

// LoadMoreResponse is returned by the load-more endpoint.
type LoadMoreResponse struct {
	Added  int             `json:"added"`
	Screen browse.Snapshot `json:"screen"`
}

// ToggleResponse is returned by the screen favorite endpoint.
type ToggleResponse struct {
	Work   models.Work     `json:"work"`
	Screen browse.Snapshot `json:"screen"`
}

// Create opens a screen and loads its first page. A failed first load is
// reported in the snapshot error; the screen stays open for a retry.
// @Summary Open a browse screen
// @Tags screens
// @Accept json
// @Param body body CreateScreenRequest true "Screen parameters"
// @Success 201 {object} browse.Snapshot
// @Failure 400 {object} ErrorResponse
// @Router /screens [post]
func (h *ScreenHandler) Create(c fiber.Ctx) error {
	var req CreateScreenRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	p := browse.Params{
		Kind:     req.Kind,
		Category: req.Category,
		GenreID:  req.GenreID,
		Query:    req.Query,
		WorkID:   req.WorkID,
	}
	if req.Type != "" {
		t, err := models.ParseWorkType(req.Type)
		if err != nil {
			return fail(c, err, fiber.StatusBadRequest)
		}
		p.Type = t
	}

	s, err := h.screens.Create(c.Context(), middleware.Device(c), p)
	if s == nil {
		return fail(c, err, fiber.StatusInternalServerError)
	}
	return c.Status(fiber.StatusCreated).JSON(s.Snapshot())
}

// Get returns the render state of a screen.
// @Summary Get screen state
// @Tags screens
// @Success 200 {object} browse.Snapshot
// @Failure 404 {object} ErrorResponse
// @Router /screens/{id} [get]
func (h *ScreenHandler) Get(c fiber.Ctx) error {
	s, err := h.screens.Get(middleware.Device(c), c.Params("id"))
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return c.JSON(s.Snapshot())
}

// LoadMore loads the next page of a screen.
// @Summary Load next page
// @Tags screens
// @Success 200 {object} LoadMoreResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /screens/{id}/more [post]
func (h *ScreenHandler) LoadMore(c fiber.Ctx) error {
	s, err := h.screens.Get(middleware.Device(c), c.Params("id"))
	if err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	added, err := s.LoadMore(c.Context())
	if err != nil {
		return fail(c, err, fiber.StatusBadGateway)
	}
	return c.JSON(LoadMoreResponse{Added: added, Screen: s.Snapshot()})
}

// Focus moves focus to a work on the screen.
// @Summary Focus a work
// @Tags screens
// @Accept json
// @Param body body WorkRef true "Focused work"
// @Success 200 {object} browse.Snapshot
// @Router /screens/{id}/focus [post]
func (h *ScreenHandler) Focus(c fiber.Ctx) error {
	s, key, err := h.screenAndWork(c)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	if err := s.Focus(key); err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return c.JSON(s.Snapshot())
}

// ToggleFavorite flips the favorite flag of a work on the screen.
// @Summary Toggle favorite on a screen
// @Tags screens
// @Accept json
// @Param body body WorkRef true "Work to toggle"
// @Success 200 {object} ToggleResponse
// @Failure 500 {object} ErrorResponse
// @Router /screens/{id}/favorite [post]
func (h *ScreenHandler) ToggleFavorite(c fiber.Ctx) error {
	s, key, err := h.screenAndWork(c)
	if err != nil {
		return fail(c, err, fiber.StatusBadRequest)
	}
	w, err := s.ToggleFavorite(c.Context(), key)
	if err != nil {
		return fail(c, err, fiber.StatusInternalServerError)
	}
	return c.JSON(ToggleResponse{Work: w, Screen: s.Snapshot()})
}

// Delete closes a screen.
// @Summary Close a screen
// @Tags screens
// @Success 204
// @Router /screens/{id} [delete]
func (h *ScreenHandler) Delete(c fiber.Ctx) error {
	if err := h.screens.Delete(middleware.Device(c), c.Params("id")); err != nil {
		return fail(c, err, fiber.StatusNotFound)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

var errBadWorkRef = errors.New("work_id and a known type are required")

func (h *ScreenHandler) screenAndWork(c fiber.Ctx) (*browse.Screen, models.WorkKey, error) {
	s, err := h.screens.Get(middleware.Device(c), c.Params("id"))
	if err != nil {
		return nil, models.WorkKey{}, err
	}

	var ref WorkRef
	if err := c.Bind().JSON(&ref); err != nil {
		return nil, models.WorkKey{}, errors.Join(browse.ErrInvalidParams, err)
	}
	key := models.WorkKey{ID: ref.WorkID, Type: s.Params.Type}
	if ref.Type != "" {
		t, err := models.ParseWorkType(ref.Type)
		if err != nil {
			return nil, models.WorkKey{}, err
		}
		key.Type = t
	}
	if key.ID <= 0 || key.Type == "" {
		return nil, models.WorkKey{}, errors.Join(browse.ErrInvalidParams, errBadWorkRef)
	}
	return s, key, nil
}
