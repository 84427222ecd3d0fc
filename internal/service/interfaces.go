// SPDX-License-Identifier: Apache-2.0

// Package service contains the client-side application logic: the sync
// coordinator that keeps the local note store consistent with the server
// under an optimistic-update discipline, the auth service, the label
// catalog, and the note form state machine.
package service

import (
	"context"

	"github.com/minisamantha/notes-client/models"
)

// UpdateInput carries the user-entered fields for an update. Publish flips a
// draft into the published notes view; it is never used the other way round.
type UpdateInput struct {
	Title   string
	Body    string
	Labels  []models.Label
	Publish bool
}

// NoteService is the sync coordinator: it translates form intents into
// remote calls while keeping the local note store consistent.
//
// Per note identity, at most one operation may be in flight at a time; a
// second concurrent call for the same identity fails with
// [ErrOperationInFlight]. Operations on different notes proceed
// independently.
type NoteService interface {
	// List returns the notes currently persisted locally.
	List(ctx context.Context) []models.Note

	// Refresh fetches the authoritative note list from the server, merges
	// it with the persisted list (unsynced local entries first), saves and
	// returns the result. On fetch failure the store is left untouched.
	Refresh(ctx context.Context) ([]models.Note, error)

	// Create inserts an optimistic note at the head of the list under a
	// fresh local identity, then attempts the remote create. On success
	// the local entry is replaced in place by the server-confirmed record.
	// On remote failure the entry stays, permanently marked unsynced for
	// this session, and the returned error wraps [ErrSavedLocally]; the
	// returned note is valid in both cases.
	Create(ctx context.Context, input models.NoteInput) (models.Note, error)

	// Update edits the note with the given identity. Local identities are
	// edited in the store only (there is nothing to update server-side);
	// remote identities are updated on the server first and applied to the
	// store only after confirmation; on failure the store is unchanged.
	Update(ctx context.Context, id models.Identity, input UpdateInput) (models.Note, error)

	// Delete optimistically removes the note from the store. For local
	// identities that is the whole operation. For remote identities the
	// server delete follows; on failure the note is reinserted at its
	// original position and the error surfaced.
	Delete(ctx context.Context, id models.Identity) error

	// PublicFeed fetches the unauthenticated public notes listing.
	PublicFeed(ctx context.Context) ([]models.Note, error)
}

// AuthService handles account creation and session establishment.
type AuthService interface {
	// Signup registers a new account. The credentials are validated before
	// any network call.
	Signup(ctx context.Context, creds models.Credentials) error

	// Login authenticates and stores the issued token in the session
	// holder.
	Login(ctx context.Context, creds models.Credentials) error

	// Profile fetches the authenticated account information.
	Profile(ctx context.Context) (models.Profile, error)

	// Logout clears the session. Unsynced local notes are preserved.
	Logout(ctx context.Context) error
}

// LabelService manages the persisted label catalog.
type LabelService interface {
	// All returns the catalog, falling back to the built-in defaults when
	// nothing usable is persisted.
	All(ctx context.Context) []models.Label

	// Add creates a label with a collision-resistant identity and
	// persists the catalog.
	Add(ctx context.Context, name, color string) (models.Label, error)

	// Update modifies name and/or color of an existing label.
	Update(ctx context.Context, id string, name, color string) error

	// Delete removes a label from the catalog.
	Delete(ctx context.Context, id string) error

	// Get looks a label up by id.
	Get(ctx context.Context, id string) (models.Label, bool)

	// ResetToDefaults restores the built-in catalog.
	ResetToDefaults(ctx context.Context) error
}
