package app

import "errors"

var (
	ErrMapNotFound   = errors.New("map not found")
	ErrInvalidName   = errors.New("invalid player name")
	ErrTokenNotFound = errors.New("player token not found")

	// ErrTickForbidden is returned when an external tick is requested while
	// the runtime drives the clock itself.
	ErrTickForbidden = errors.New("external tick forbidden in periodic mode")
)
