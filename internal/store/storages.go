package store

import (
	"context"
	"fmt"

	"github.com/minisamantha/notes-client/internal/config"
	"github.com/minisamantha/notes-client/internal/logger"
)

// ClientStorages groups the client-side persistence layer: the raw slot
// repository and the note store layered on top of it.
type ClientStorages struct {
	// Slots is the durable key-value layer (token, labels, form draft).
	Slots SlotRepository

	// Notes is the note-list store persisting into the notes slot.
	Notes NoteStore
}

// NewClientStorages opens the client SQLite database, runs pending
// migrations, and wires up the repositories.
func NewClientStorages(cfg config.ClientStorage, log *logger.Logger) (*ClientStorages, error) {
	log.Info().Msg("creating client storages...")

	db, err := NewConnectSQLite(context.Background(), cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	slots := NewSlotRepository(db, log)

	return &ClientStorages{
		Slots: slots,
		Notes: NewNoteStore(slots, log),
	}, nil
}
