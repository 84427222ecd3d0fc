package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/minisamantha/notes-client/internal/logger"
	"github.com/minisamantha/notes-client/internal/store"
	"github.com/minisamantha/notes-client/models"
)

// FormState is the note form's lifecycle position.
type FormState int

const (
	// FormEmpty: no text entered, nothing being edited.
	FormEmpty FormState = iota
	// FormEditing: text present, either a new note or an edit of an
	// existing one.
	FormEditing
	// FormSubmitting: an operation is outstanding; further submits are
	// rejected until it settles.
	FormSubmitting
)

// EditKind is the editing branch the form is in.
type EditKind int

const (
	// EditCreate: composing a brand-new note.
	EditCreate EditKind = iota
	// EditUpdateNote: editing an already-published note.
	EditUpdateNote
	// EditUpdateDraft: editing a draft; submitting publishes it.
	EditUpdateDraft
)

// autosaveTTL bounds how long an abandoned in-progress form is restored
// after a restart.
const autosaveTTL = 24 * time.Hour

// formAutosave is the persisted shape of the in-progress form text. The
// draft flag remembers which editing branch the target was in, so a
// restored edit of a draft still publishes on submit.
type formAutosave struct {
	Title     string          `json:"title"`
	Body      string          `json:"body"`
	EditingID models.Identity `json:"editing_id,omitempty"`
	Draft     bool            `json:"draft,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// FormController is the note form state machine. It owns the entered text
// and the editing target and feeds submissions into the sync coordinator.
// It is driven from the single UI event loop and is not safe for concurrent
// use.
type FormController struct {
	notes  NoteService
	slots  store.SlotRepository
	logger *logger.Logger

	state  FormState
	kind   EditKind
	target models.Identity

	title  string
	body   string
	labels []models.Label
}

// NewFormController builds the form controller in the Empty state.
func NewFormController(notes NoteService, slots store.SlotRepository, log *logger.Logger) *FormController {
	return &FormController{notes: notes, slots: slots, logger: log}
}

// State returns the current lifecycle position.
func (f *FormController) State() FormState { return f.state }

// Kind returns the editing branch. Meaningful only while Editing or
// Submitting.
func (f *FormController) Kind() EditKind { return f.kind }

// Title, Body and Labels expose the entered values.
func (f *FormController) Title() string          { return f.title }
func (f *FormController) Body() string           { return f.body }
func (f *FormController) Labels() []models.Label { return f.labels }

// Editing reports whether an existing note is the submit target.
func (f *FormController) Editing() bool {
	return f.state != FormEmpty && f.kind != EditCreate
}

// SetTitle and SetBody update the entered text. Any text moves an Empty form
// into Editing{Create}; clearing all text while composing returns to Empty.
func (f *FormController) SetTitle(title string) { f.title = title; f.syncState() }
func (f *FormController) SetBody(body string)   { f.body = body; f.syncState() }

// SetLabels replaces the attached label selection.
func (f *FormController) SetLabels(labels []models.Label) { f.labels = labels }

// ToggleLabel adds the label to the selection, or removes it if present.
func (f *FormController) ToggleLabel(label models.Label) {
	for i, l := range f.labels {
		if l.ID == label.ID {
			f.labels = append(f.labels[:i], f.labels[i+1:]...)
			return
		}
	}
	f.labels = append(f.labels, label)
}

func (f *FormController) syncState() {
	if f.state == FormSubmitting {
		return
	}
	if f.title == "" && f.body == "" && f.kind == EditCreate {
		f.state = FormEmpty
		return
	}
	f.state = FormEditing
}

// Edit loads an existing note or draft into the form. The editing branch
// always follows the entry's own draft membership, even when editing was
// initiated from the other tab.
func (f *FormController) Edit(note models.Note) {
	f.title = note.Title
	f.body = note.Body
	f.labels = append([]models.Label(nil), note.Labels...)
	f.target = note.ID
	if note.IsDraft {
		f.kind = EditUpdateDraft
	} else {
		f.kind = EditUpdateNote
	}
	f.state = FormEditing
}

// Reset returns the form to Empty, dropping entered text and the editing
// target.
func (f *FormController) Reset() {
	f.title = ""
	f.body = ""
	f.labels = nil
	f.target = models.Identity{}
	f.kind = EditCreate
	f.state = FormEmpty
}

// Submit runs the operation matching the current branch: create for a new
// note, update for an existing one, publish when the target is a draft. On
// success the form returns to Empty and the autosave slot is cleared; on
// failure it stays in Editing with the entered text preserved and the error
// surfaced to the caller.
func (f *FormController) Submit(ctx context.Context) (models.Note, error) {
	return f.submit(ctx, false)
}

// SubmitAsDraft creates the entered text as a draft instead of a published
// note. Only valid in the create branch.
func (f *FormController) SubmitAsDraft(ctx context.Context) (models.Note, error) {
	return f.submit(ctx, true)
}

func (f *FormController) submit(ctx context.Context, asDraft bool) (models.Note, error) {
	if f.state == FormSubmitting {
		return models.Note{}, ErrOperationInFlight
	}

	f.state = FormSubmitting

	var (
		note models.Note
		err  error
	)
	if f.kind == EditCreate {
		note, err = f.notes.Create(ctx, models.NoteInput{
			Title:   f.title,
			Body:    f.body,
			IsDraft: asDraft,
			Labels:  f.labels,
		})
	} else {
		note, err = f.notes.Update(ctx, f.target, UpdateInput{
			Title:  f.title,
			Body:   f.body,
			Labels: f.labels,
			// Submitting a draft publishes it; a published note never
			// goes back to being a draft.
			Publish: f.kind == EditUpdateDraft,
		})
	}

	// A create that fell back to the local store still produced a durable
	// note; treat it as a settled submission and surface the warning.
	if err != nil && !errors.Is(err, ErrSavedLocally) {
		f.state = FormEditing
		return models.Note{}, err
	}

	f.Reset()
	f.ClearAutosave(ctx)
	return note, err
}

// Autosave persists the in-progress form text so an interrupted session can
// pick up where it left off.
func (f *FormController) Autosave(ctx context.Context) {
	if f.title == "" && f.body == "" {
		return
	}

	payload, marshalErr := json.Marshal(formAutosave{
		Title:     f.title,
		Body:      f.body,
		EditingID: f.target,
		Draft:     f.kind == EditUpdateDraft,
		Timestamp: time.Now().UTC(),
	})
	if marshalErr != nil {
		return
	}

	if err := f.slots.PutSlot(ctx, store.SlotDraft, payload); err != nil {
		f.logger.Debug().Err(err).Msg("form autosave failed")
	}
}

// RestoreAutosave loads a previously autosaved form if one exists and is
// fresh enough. Stale autosaves are discarded.
func (f *FormController) RestoreAutosave(ctx context.Context) bool {
	payload, err := f.slots.GetSlot(ctx, store.SlotDraft)
	if err != nil {
		return false
	}

	var saved formAutosave
	if err = json.Unmarshal(payload, &saved); err != nil {
		f.ClearAutosave(ctx)
		return false
	}
	if time.Since(saved.Timestamp) > autosaveTTL {
		f.ClearAutosave(ctx)
		return false
	}

	f.title = saved.Title
	f.body = saved.Body
	f.target = saved.EditingID
	switch {
	case saved.EditingID.IsZero():
		f.kind = EditCreate
	case saved.Draft:
		f.kind = EditUpdateDraft
	default:
		f.kind = EditUpdateNote
	}
	f.syncState()
	return true
}

// ClearAutosave drops the autosaved form.
func (f *FormController) ClearAutosave(ctx context.Context) {
	if err := f.slots.DeleteSlot(ctx, store.SlotDraft); err != nil {
		f.logger.Debug().Err(err).Msg("failed to clear form autosave")
	}
}
