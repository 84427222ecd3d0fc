package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minisamantha/notes-client/internal/logger"
	"github.com/minisamantha/notes-client/internal/store"
	"github.com/minisamantha/notes-client/models"
)

// stubNotes is a hand-written NoteService stub; the form only needs Create
// and Update.
type stubNotes struct {
	createFn func(models.NoteInput) (models.Note, error)
	updateFn func(models.Identity, UpdateInput) (models.Note, error)
}

func (s *stubNotes) List(context.Context) []models.Note               { return nil }
func (s *stubNotes) Refresh(context.Context) ([]models.Note, error)   { return nil, nil }
func (s *stubNotes) PublicFeed(context.Context) ([]models.Note, error) { return nil, nil }
func (s *stubNotes) Delete(context.Context, models.Identity) error    { return nil }

func (s *stubNotes) Create(_ context.Context, input models.NoteInput) (models.Note, error) {
	return s.createFn(input)
}

func (s *stubNotes) Update(_ context.Context, id models.Identity, input UpdateInput) (models.Note, error) {
	return s.updateFn(id, input)
}

func newTestForm(t *testing.T, notes *stubNotes) (*FormController, *memSlots) {
	t.Helper()
	slots := newMemSlots()
	return NewFormController(notes, slots, logger.Nop()), slots
}

// ── state machine ────────────────────────────────────────────────────────────

func TestForm_TextMovesEmptyToEditing(t *testing.T) {
	f, _ := newTestForm(t, &stubNotes{})

	assert.Equal(t, FormEmpty, f.State())

	f.SetTitle("hello")
	assert.Equal(t, FormEditing, f.State())
	assert.Equal(t, EditCreate, f.Kind())

	// Clearing all text while composing returns to Empty.
	f.SetTitle("")
	assert.Equal(t, FormEmpty, f.State())

	f.SetBody("just a body")
	assert.Equal(t, FormEditing, f.State())
}

func TestForm_EditFollowsDraftMembership(t *testing.T) {
	f, _ := newTestForm(t, &stubNotes{})

	published := models.Note{ID: models.RemoteIdentity(1), Title: "t", Body: "b"}
	f.Edit(published)
	assert.Equal(t, EditUpdateNote, f.Kind())
	assert.Equal(t, FormEditing, f.State())
	assert.True(t, f.Editing())

	draft := models.Note{ID: models.RemoteIdentity(2), Title: "t", Body: "b", IsDraft: true}
	f.Edit(draft)
	assert.Equal(t, EditUpdateDraft, f.Kind())
	assert.Equal(t, "t", f.Title())
}

func TestForm_ClearingTextWhileEditingStaysEditing(t *testing.T) {
	f, _ := newTestForm(t, &stubNotes{})
	f.Edit(models.Note{ID: models.RemoteIdentity(1), Title: "t", Body: "b"})

	// An existing target keeps the form in Editing even with empty text.
	f.SetTitle("")
	f.SetBody("")
	assert.Equal(t, FormEditing, f.State())
}

func TestForm_Reset(t *testing.T) {
	f, _ := newTestForm(t, &stubNotes{})
	f.Edit(models.Note{ID: models.RemoteIdentity(1), Title: "t", Body: "b", IsDraft: true})

	f.Reset()

	assert.Equal(t, FormEmpty, f.State())
	assert.Equal(t, EditCreate, f.Kind())
	assert.Empty(t, f.Title())
	assert.Empty(t, f.Body())
}

func TestForm_ToggleLabel(t *testing.T) {
	f, _ := newTestForm(t, &stubNotes{})
	work := models.Label{ID: "1", Name: "Work"}

	f.ToggleLabel(work)
	require.Len(t, f.Labels(), 1)

	f.ToggleLabel(work)
	assert.Empty(t, f.Labels())
}

// ── Submit ───────────────────────────────────────────────────────────────────

func TestForm_Submit_CreateSuccess(t *testing.T) {
	var gotInput models.NoteInput
	notes := &stubNotes{
		createFn: func(input models.NoteInput) (models.Note, error) {
			gotInput = input
			return models.Note{ID: models.RemoteIdentity(1), Title: input.Title, Body: input.Body}, nil
		},
	}
	f, slots := newTestForm(t, notes)

	f.SetTitle("title")
	f.SetBody("body")
	f.ToggleLabel(models.Label{ID: "1", Name: "Work"})
	f.Autosave(context.Background())

	note, err := f.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "title", note.Title)
	assert.Equal(t, "title", gotInput.Title)
	assert.False(t, gotInput.IsDraft)
	assert.Len(t, gotInput.Labels, 1)

	// Settled: form back to Empty, autosave gone.
	assert.Equal(t, FormEmpty, f.State())
	_, err = slots.GetSlot(context.Background(), store.SlotDraft)
	assert.ErrorIs(t, err, store.ErrSlotNotFound)
}

func TestForm_SubmitAsDraft(t *testing.T) {
	notes := &stubNotes{
		createFn: func(input models.NoteInput) (models.Note, error) {
			assert.True(t, input.IsDraft)
			return models.Note{ID: models.RemoteIdentity(1), IsDraft: true}, nil
		},
	}
	f, _ := newTestForm(t, notes)
	f.SetTitle("t")
	f.SetBody("b")

	note, err := f.SubmitAsDraft(context.Background())

	require.NoError(t, err)
	assert.True(t, note.IsDraft)
	assert.Equal(t, FormEmpty, f.State())
}

func TestForm_Submit_SavedLocallyIsSettled(t *testing.T) {
	notes := &stubNotes{
		createFn: func(input models.NoteInput) (models.Note, error) {
			local := models.Note{ID: models.NewLocalIdentity(), Title: input.Title, Body: input.Body, Unsynced: true}
			return local, ErrSavedLocally
		},
	}
	f, _ := newTestForm(t, notes)
	f.SetTitle("t")
	f.SetBody("b")

	note, err := f.Submit(context.Background())

	// The note is durable locally: the submission counts as settled, the
	// warning is surfaced, and the form is cleared.
	assert.ErrorIs(t, err, ErrSavedLocally)
	assert.True(t, note.Unsynced)
	assert.Equal(t, FormEmpty, f.State())
}

func TestForm_Submit_FailurePreservesText(t *testing.T) {
	notes := &stubNotes{
		createFn: func(models.NoteInput) (models.Note, error) {
			return models.Note{}, ErrValidation
		},
	}
	f, _ := newTestForm(t, notes)
	f.SetTitle("keep me")
	f.SetBody("and me")

	_, err := f.Submit(context.Background())

	require.Error(t, err)
	assert.Equal(t, FormEditing, f.State())
	assert.Equal(t, "keep me", f.Title())
	assert.Equal(t, "and me", f.Body())
}

func TestForm_Submit_UpdatePublishesDraft(t *testing.T) {
	target := models.RemoteIdentity(3)
	notes := &stubNotes{
		updateFn: func(id models.Identity, input UpdateInput) (models.Note, error) {
			assert.True(t, id.Equal(target))
			assert.True(t, input.Publish)
			return models.Note{ID: id, Title: input.Title, Body: input.Body}, nil
		},
	}
	f, _ := newTestForm(t, notes)
	f.Edit(models.Note{ID: target, Title: "t", Body: "b", IsDraft: true})

	_, err := f.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, FormEmpty, f.State())
}

func TestForm_Submit_UpdatePublishedNoteDoesNotPublishAgain(t *testing.T) {
	notes := &stubNotes{
		updateFn: func(_ models.Identity, input UpdateInput) (models.Note, error) {
			assert.False(t, input.Publish)
			return models.Note{}, nil
		},
	}
	f, _ := newTestForm(t, notes)
	f.Edit(models.Note{ID: models.RemoteIdentity(3), Title: "t", Body: "b"})

	_, err := f.Submit(context.Background())
	require.NoError(t, err)
}

func TestForm_Submit_WhileSubmitting(t *testing.T) {
	f, _ := newTestForm(t, &stubNotes{})
	f.SetTitle("t")
	f.state = FormSubmitting

	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrOperationInFlight)
}

// ── autosave ─────────────────────────────────────────────────────────────────

func TestForm_AutosaveRoundTrip(t *testing.T) {
	f, slots := newTestForm(t, &stubNotes{})
	f.SetTitle("draft title")
	f.SetBody("draft body")
	f.Autosave(context.Background())

	restored := NewFormController(&stubNotes{}, slots, logger.Nop())
	require.True(t, restored.RestoreAutosave(context.Background()))

	assert.Equal(t, "draft title", restored.Title())
	assert.Equal(t, "draft body", restored.Body())
	assert.Equal(t, EditCreate, restored.Kind())
	assert.Equal(t, FormEditing, restored.State())
}

func TestForm_AutosaveKeepsEditingTarget(t *testing.T) {
	f, slots := newTestForm(t, &stubNotes{})
	f.Edit(models.Note{ID: models.RemoteIdentity(7), Title: "t", Body: "b"})
	f.SetTitle("edited")
	f.Autosave(context.Background())

	restored := NewFormController(&stubNotes{}, slots, logger.Nop())
	require.True(t, restored.RestoreAutosave(context.Background()))

	assert.Equal(t, EditUpdateNote, restored.Kind())
	assert.True(t, restored.Editing())
}

func TestForm_AutosaveKeepsDraftBranch(t *testing.T) {
	f, slots := newTestForm(t, &stubNotes{})
	f.Edit(models.Note{ID: models.RemoteIdentity(9), Title: "t", Body: "b", IsDraft: true})
	f.SetBody("reworked")
	f.Autosave(context.Background())

	var gotInput UpdateInput
	notes := &stubNotes{
		updateFn: func(_ models.Identity, input UpdateInput) (models.Note, error) {
			gotInput = input
			return models.Note{}, nil
		},
	}
	restored := NewFormController(notes, slots, logger.Nop())
	require.True(t, restored.RestoreAutosave(context.Background()))

	// The restored form stays in the draft branch, so submitting still
	// publishes the draft.
	assert.Equal(t, EditUpdateDraft, restored.Kind())

	_, err := restored.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, gotInput.Publish)
}

func TestForm_RestoreAutosave_StaleIsDiscarded(t *testing.T) {
	slots := newMemSlots()
	payload, err := json.Marshal(formAutosave{
		Title:     "ancient",
		Body:      "text",
		Timestamp: time.Now().Add(-25 * time.Hour),
	})
	require.NoError(t, err)
	require.NoError(t, slots.PutSlot(context.Background(), store.SlotDraft, payload))

	f := NewFormController(&stubNotes{}, slots, logger.Nop())

	assert.False(t, f.RestoreAutosave(context.Background()))
	assert.Equal(t, FormEmpty, f.State())

	// The stale slot is gone.
	_, err = slots.GetSlot(context.Background(), store.SlotDraft)
	assert.ErrorIs(t, err, store.ErrSlotNotFound)
}

func TestForm_RestoreAutosave_NothingSaved(t *testing.T) {
	f, _ := newTestForm(t, &stubNotes{})
	assert.False(t, f.RestoreAutosave(context.Background()))
}

func TestForm_Autosave_EmptyFormIsNoop(t *testing.T) {
	f, slots := newTestForm(t, &stubNotes{})
	f.Autosave(context.Background())

	_, err := slots.GetSlot(context.Background(), store.SlotDraft)
	assert.ErrorIs(t, err, store.ErrSlotNotFound)
}
