package service

import "errors"

// Sentinel errors surfaced by the service layer. Match with [errors.Is].
var (
	// ErrValidation is returned when a payload is rejected before any
	// network call (missing title/body, malformed credentials).
	ErrValidation = errors.New("validation failed")

	// ErrNotAuthenticated is returned when an operation requiring a
	// session is attempted while logged out.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrOperationInFlight is returned when a second create/update/delete
	// targets a note identity whose previous operation has not settled.
	ErrOperationInFlight = errors.New("operation already in flight for this note")

	// ErrSavedLocally wraps the remote failure after a create fell back to
	// the local store. The note is kept, marked unsynced; retry is manual.
	ErrSavedLocally = errors.New("note saved locally, not synced")

	// ErrNoteNotFound is returned when the targeted identity is not in the
	// local store.
	ErrNoteNotFound = errors.New("note not found")

	// ErrLabelNotFound is returned when a label id is not in the catalog.
	ErrLabelNotFound = errors.New("label not found")
)
