package store

import (
	"context"

	"github.com/minisamantha/notes-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// SlotRepository is the durable key-value layer every persisted client state
// slot lives in: the cached note list, the bearer token, the label catalog,
// and the in-progress form draft.
type SlotRepository interface {
	// GetSlot returns the raw payload stored under name.
	// Returns [ErrSlotNotFound] if the slot has never been written.
	GetSlot(ctx context.Context, name string) ([]byte, error)

	// PutSlot stores value under name, replacing any previous payload.
	PutSlot(ctx context.Context, name string, value []byte) error

	// DeleteSlot removes the slot. Deleting an absent slot is not an error.
	DeleteSlot(ctx context.Context, name string) error
}

// NoteStore is the single source of truth for the notes list visible in the
// current session. It persists the full list to one slot; there is no partial
// or merge write at this layer.
type NoteStore interface {
	// Load returns the ordered persisted note list. A missing slot or an
	// unparsable payload both yield an empty list, never an error the
	// caller has to handle.
	Load(ctx context.Context) []models.Note

	// Save serialises and persists the whole list, overwriting any
	// previous state.
	Save(ctx context.Context, notes []models.Note) error
}
