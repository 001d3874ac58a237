package service

import (
	"errors"

	"github.com/marcuspimenta/bestv/internal/models"
)

// Input errors. Handlers map these to 400.
var (
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidWindow   = errors.New("invalid trending window")
	ErrInvalidPage     = errors.New("invalid page")
	ErrEmptyQuery      = errors.New("search query is empty")
	ErrInvalidID       = errors.New("invalid id")
)

// IsInvalidInput reports whether err was caused by a bad argument.
func IsInvalidInput(err error) bool {
	return errors.Is(err, models.ErrInvalidWorkType) ||
		errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidWindow) ||
		errors.Is(err, ErrInvalidPage) ||
		errors.Is(err, ErrEmptyQuery) ||
		errors.Is(err, ErrInvalidID)
}
