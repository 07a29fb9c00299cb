// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. ErrNotFound
// is wrapped by the per-entity sentinels, while ErrConflict signals that a
// delete cannot proceed because dependent rows still reference the entity
// (e.g. deleting a design that still has drills).
package repository

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is the common base of every "id does not resolve" error.
// Handlers should translate this into an HTTP 404 response or a redirect.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a delete cannot be performed because other
// rows still reference the entity.
var ErrConflict = errors.New("conflict: entity has dependents")

// Per-entity not found errors; all satisfy errors.Is(err, ErrNotFound).
var (
	ErrDesignNotFound = fmt.Errorf("design %w", ErrNotFound)
	ErrDrillNotFound  = fmt.Errorf("drill %w", ErrNotFound)
	ErrRecordNotFound = fmt.Errorf("record %w", ErrNotFound)
)

// newID mints the opaque identifier for a new row.  Version 7 ids sort by
// creation time, which keeps insertion order stable in listings that
// tie-break on id.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return id.String(), nil
}
