package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/minisamantha/notes-client/internal/adapter"
	"github.com/minisamantha/notes-client/internal/logger"
	"github.com/minisamantha/notes-client/internal/session"
	"github.com/minisamantha/notes-client/internal/store"
	"github.com/minisamantha/notes-client/models"
)

// opState tracks where a single note operation stands in its lifecycle.
// Every mutation moves Idle → Optimistic and then settles: Reconciled,
// RolledBack, or Unsynced for a create kept locally after the server
// refused it. The transitions appear in debug logs.
type opState int

const (
	opIdle opState = iota
	opOptimistic
	opReconciled
	opRolledBack
	opUnsynced
)

func (s opState) String() string {
	switch s {
	case opOptimistic:
		return "optimistic"
	case opReconciled:
		return "reconciled"
	case opRolledBack:
		return "rolled_back"
	case opUnsynced:
		return "unsynced"
	default:
		return "idle"
	}
}

type syncCoordinator struct {
	store    store.NoteStore
	adapter  adapter.ServerAdapter
	session  *session.Holder
	validate *validator.Validate
	logger   *logger.Logger

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewNoteService builds the sync coordinator. The session holder is passed
// explicitly; every operation that talks to the server checks it first.
func NewNoteService(noteStore store.NoteStore, serverAdapter adapter.ServerAdapter, sess *session.Holder, log *logger.Logger) NoteService {
	return &syncCoordinator{
		store:    noteStore,
		adapter:  serverAdapter,
		session:  sess,
		validate: validator.New(),
		logger:   log,
		inflight: make(map[string]struct{}),
	}
}

func (c *syncCoordinator) List(ctx context.Context) []models.Note {
	return c.store.Load(ctx)
}

func (c *syncCoordinator) Refresh(ctx context.Context) ([]models.Note, error) {
	if !c.session.Authenticated() {
		return nil, ErrNotAuthenticated
	}

	remote, err := c.adapter.MyNotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch notes from server: %w", err)
	}

	merged := store.Merge(c.store.Load(ctx), remote)
	if err = c.store.Save(ctx, merged); err != nil {
		return nil, fmt.Errorf("persist merged notes: %w", err)
	}

	return merged, nil
}

func (c *syncCoordinator) PublicFeed(ctx context.Context) ([]models.Note, error) {
	return c.adapter.PublicNotes(ctx)
}

func (c *syncCoordinator) Create(ctx context.Context, input models.NoteInput) (models.Note, error) {
	if err := c.validate.Struct(input); err != nil {
		return models.Note{}, fmt.Errorf("%w: please provide title and body", ErrValidation)
	}
	if !c.session.Authenticated() {
		return models.Note{}, ErrNotAuthenticated
	}

	now := time.Now().UTC()
	note := models.Note{
		ID:        models.NewLocalIdentity(),
		Title:     input.Title,
		Body:      input.Body,
		Labels:    input.Labels,
		IsDraft:   input.IsDraft,
		CreatedAt: now,
		UpdatedAt: now,
		Unsynced:  true,
	}

	if err := c.begin(note.ID); err != nil {
		return models.Note{}, err
	}
	defer c.end(note.ID)

	// Optimistic head insert: the note is visible (and durable) before the
	// server has seen it.
	list := append([]models.Note{note}, c.store.Load(ctx)...)
	if err := c.store.Save(ctx, list); err != nil {
		return models.Note{}, fmt.Errorf("persist optimistic note: %w", err)
	}
	c.logOp(note.ID, "create", opOptimistic)

	confirmed, err := c.adapter.CreateNote(ctx, input)
	if err != nil {
		// Save-locally policy: the entry stays, permanently unsynced for
		// this session. Retry is manual.
		c.logOp(note.ID, "create", opUnsynced)
		c.logger.Warn().Err(err).Str("note", note.ID.Key()).Msg("create failed, note kept locally")
		return note, fmt.Errorf("%w: %v", ErrSavedLocally, err)
	}

	if err = c.replace(ctx, note.ID, confirmed); err != nil {
		return models.Note{}, err
	}
	c.logOp(confirmed.ID, "create", opReconciled)

	return confirmed, nil
}

func (c *syncCoordinator) Update(ctx context.Context, id models.Identity, input UpdateInput) (models.Note, error) {
	payload := models.NoteInput{Title: input.Title, Body: input.Body}
	if err := c.validate.Struct(payload); err != nil {
		return models.Note{}, fmt.Errorf("%w: please provide title and body", ErrValidation)
	}

	if err := c.begin(id); err != nil {
		return models.Note{}, err
	}
	defer c.end(id)

	if id.IsLocal() {
		return c.updateLocal(ctx, id, input)
	}

	if !c.session.Authenticated() {
		return models.Note{}, ErrNotAuthenticated
	}

	// Already-synced notes are never mutated optimistically: the server
	// confirms first, then the store is updated.
	req := adapter.UpdateNoteRequest{Title: input.Title, Body: input.Body, Labels: input.Labels}
	if input.Publish {
		published := false
		req.IsDraft = &published
	}

	confirmed, err := c.adapter.UpdateNote(ctx, id.Remote, req)
	if err != nil {
		return models.Note{}, fmt.Errorf("update note on server: %w", err)
	}

	if err = c.replace(ctx, id, confirmed); err != nil {
		return models.Note{}, err
	}
	c.logOp(id, "update", opReconciled)

	return confirmed, nil
}

// updateLocal edits an unsynced note in the store only; it has never reached
// the server, so there is nothing to update remotely.
func (c *syncCoordinator) updateLocal(ctx context.Context, id models.Identity, input UpdateInput) (models.Note, error) {
	list := c.store.Load(ctx)
	idx := indexOf(list, id)
	if idx < 0 {
		return models.Note{}, ErrNoteNotFound
	}

	n := list[idx]
	n.Title = input.Title
	n.Body = input.Body
	n.Labels = input.Labels
	if input.Publish {
		n.IsDraft = false
	}
	n.UpdatedAt = time.Now().UTC()
	list[idx] = n

	if err := c.store.Save(ctx, list); err != nil {
		return models.Note{}, fmt.Errorf("persist local update: %w", err)
	}
	c.logOp(id, "update", opReconciled)

	return n, nil
}

func (c *syncCoordinator) Delete(ctx context.Context, id models.Identity) error {
	if err := c.begin(id); err != nil {
		return err
	}
	defer c.end(id)

	list := c.store.Load(ctx)
	idx := indexOf(list, id)
	if idx < 0 {
		return ErrNoteNotFound
	}
	removed := list[idx]

	// Delete is always optimistic, regardless of identity kind.
	without := append(append([]models.Note{}, list[:idx]...), list[idx+1:]...)
	if err := c.store.Save(ctx, without); err != nil {
		return fmt.Errorf("persist optimistic delete: %w", err)
	}
	c.logOp(id, "delete", opOptimistic)

	if id.IsLocal() {
		c.logOp(id, "delete", opReconciled)
		return nil
	}

	if !c.session.Authenticated() {
		c.rollbackDelete(ctx, removed, idx)
		return ErrNotAuthenticated
	}

	if err := c.adapter.DeleteNote(ctx, id.Remote); err != nil {
		c.rollbackDelete(ctx, removed, idx)
		c.logOp(id, "delete", opRolledBack)
		return fmt.Errorf("delete note on server: %w", err)
	}
	c.logOp(id, "delete", opReconciled)

	return nil
}

// rollbackDelete reinserts a note at its original index after a failed
// remote delete.
func (c *syncCoordinator) rollbackDelete(ctx context.Context, note models.Note, idx int) {
	list := c.store.Load(ctx)
	if idx > len(list) {
		idx = len(list)
	}

	restored := make([]models.Note, 0, len(list)+1)
	restored = append(restored, list[:idx]...)
	restored = append(restored, note)
	restored = append(restored, list[idx:]...)

	if err := c.store.Save(ctx, restored); err != nil {
		c.logger.Err(err).Str("note", note.ID.Key()).Msg("failed to roll back delete")
	}
}

// replace swaps the entry matching id for confirmed, preserving its list
// position. This is where a note's identity goes local → remote, exactly
// once.
func (c *syncCoordinator) replace(ctx context.Context, id models.Identity, confirmed models.Note) error {
	list := c.store.Load(ctx)
	idx := indexOf(list, id)
	if idx < 0 {
		// The note vanished between the optimistic write and the server
		// response (e.g. store cleared). Prepend rather than lose it.
		list = append([]models.Note{confirmed}, list...)
	} else {
		list[idx] = confirmed
	}

	if err := c.store.Save(ctx, list); err != nil {
		return fmt.Errorf("persist reconciled note: %w", err)
	}
	return nil
}

// begin claims the per-identity mutual exclusion slot.
func (c *syncCoordinator) begin(id models.Identity) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, busy := c.inflight[id.Key()]; busy {
		return ErrOperationInFlight
	}
	c.inflight[id.Key()] = struct{}{}
	return nil
}

func (c *syncCoordinator) end(id models.Identity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inflight, id.Key())
}

func (c *syncCoordinator) logOp(id models.Identity, op string, state opState) {
	c.logger.Debug().
		Str("note", id.Key()).
		Str("op", op).
		Str("state", state.String()).
		Msg("note operation state")
}

func indexOf(list []models.Note, id models.Identity) int {
	for i := range list {
		if list[i].ID.Equal(id) {
			return i
		}
	}
	return -1
}
