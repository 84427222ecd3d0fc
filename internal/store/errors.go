package store

import "errors"

// Sentinel errors returned by repository methods. Callers should match with
// [errors.Is].
var (
	// ErrSlotNotFound is returned by GetSlot when the named slot has never
	// been written (or was deleted).
	ErrSlotNotFound = errors.New("slot not found")

	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails before it reaches the database.
	ErrBuildingSQLQuery = errors.New("error building sql query")
)
