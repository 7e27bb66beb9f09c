package collision

import "errors"

var (
	// ErrInvalidCollider indicates a collider that cannot be indexed.
	ErrInvalidCollider = errors.New("collision: invalid collider")
	// ErrDuplicateID indicates a collider id already present in the world.
	ErrDuplicateID = errors.New("collision: duplicate collider id")
	// ErrUnknownID indicates a collider id not present in the world.
	ErrUnknownID = errors.New("collision: unknown collider id")
)
