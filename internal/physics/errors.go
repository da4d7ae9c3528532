package physics

import "errors"

var (
	// ErrBodyNotFound is returned for any BodyID that is not (or no longer) in the world.
	ErrBodyNotFound = errors.New("body not found")
	// ErrInvalidShape is returned when a shape cannot produce a finite bounding box.
	ErrInvalidShape = errors.New("invalid shape")
)
