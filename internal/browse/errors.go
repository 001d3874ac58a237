package browse

import "errors"

// ErrLoadFailed wraps any failure to fetch a page of works.
var ErrLoadFailed = errors.New("load failed")

// ErrMutationFailed wraps any failure to persist a favorite toggle.
var ErrMutationFailed = errors.New("favorite update failed")

// ErrLoadInFlight is returned when a page load is already running.
var ErrLoadInFlight = errors.New("load already in progress")

var (
	ErrScreenNotFound = errors.New("screen not found")
	ErrWorkNotFound   = errors.New("work not on screen")
	ErrInvalidParams  = errors.New("invalid screen parameters")
)
