package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/minisamantha/notes-client/internal/logger"
	"github.com/minisamantha/notes-client/models"
)

type noteStore struct {
	slots  SlotRepository
	logger *logger.Logger
}

// NewNoteStore returns a NoteStore persisting the whole note list into the
// notes slot as one JSON document.
func NewNoteStore(slots SlotRepository, log *logger.Logger) NoteStore {
	return &noteStore{slots: slots, logger: log}
}

// Load implements NoteStore. Missing slot and unparsable payload both yield
// an empty list: a corrupt cache must never take down the notes screen, the
// authoritative copy lives on the server.
func (s *noteStore) Load(ctx context.Context) []models.Note {
	payload, err := s.slots.GetSlot(ctx, SlotNotes)
	if err != nil {
		if !errors.Is(err, ErrSlotNotFound) {
			s.logger.Debug().Err(err).Msg("notes slot unreadable, starting empty")
		}
		return nil
	}

	var notes []models.Note
	if err = json.Unmarshal(payload, &notes); err != nil {
		s.logger.Debug().Err(err).Msg("notes slot payload unparsable, starting empty")
		return nil
	}

	return notes
}

// Save implements NoteStore: whole-list replace, no partial writes.
func (s *noteStore) Save(ctx context.Context, notes []models.Note) error {
	if notes == nil {
		notes = []models.Note{}
	}

	payload, err := json.Marshal(notes)
	if err != nil {
		return fmt.Errorf("encode notes for slot: %w", err)
	}

	if err = s.slots.PutSlot(ctx, SlotNotes, payload); err != nil {
		return fmt.Errorf("persist notes slot: %w", err)
	}

	return nil
}

// Merge combines the previously persisted list with a freshly fetched
// authoritative one: unsynced local entries first, then every remote entry.
// Entries with a remote identity in the prior list are fully superseded by
// the fresh fetch, even when fields differ; remote deletions propagate the
// same way. An unsynced note is never dropped.
func Merge(local, remote []models.Note) []models.Note {
	merged := make([]models.Note, 0, len(local)+len(remote))
	for _, n := range local {
		if n.ID.IsLocal() {
			merged = append(merged, n)
		}
	}
	return append(merged, remote...)
}
