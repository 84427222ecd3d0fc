// SPDX-License-Identifier: Apache-2.0

// Package adapter provides the transport layer for communicating with the
// MiniSamantha server.
//
// The primary abstraction is [ServerAdapter], which decouples the service
// layer from the REST protocol. The HTTP implementation is constructed with
// [NewHTTPServerAdapter].
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/minisamantha/notes-client/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// TokenSource supplies the bearer credential attached to authenticated
// requests. An empty token means no Authorization header is sent.
type TokenSource interface {
	Token() string
}

// UpdateNoteRequest is the payload for PUT /api/posts/:id. IsDraft is a
// pointer because the field must be omitted entirely unless the caller
// intends to change draft membership (publishing sends false).
type UpdateNoteRequest struct {
	Title   string         `json:"title"`
	Body    string         `json:"body"`
	Labels  []models.Label `json:"labels"`
	IsDraft *bool          `json:"is_draft,omitempty"`
}

// ServerAdapter defines transport-agnostic communication with the
// MiniSamantha server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to
// the sentinel values defined in this package.
type ServerAdapter interface {
	// Signup creates a new account. Returns ErrConflict when the email is
	// already registered, ErrBadRequest on invalid input.
	Signup(ctx context.Context, creds models.Credentials) error

	// Login exchanges credentials for a bearer token.
	// Returns ErrUnauthorized on bad credentials.
	Login(ctx context.Context, creds models.Credentials) (models.Token, error)

	// Profile fetches the authenticated user's account information.
	Profile(ctx context.Context) (models.Profile, error)

	// MyNotes fetches every note (drafts included) belonging to the
	// authenticated user. Both the legacy bare-array response and the
	// paginated {data, pagination} envelope are accepted.
	MyNotes(ctx context.Context) ([]models.Note, error)

	// PublicNotes fetches the unauthenticated public feed, each entry
	// carrying the author display name.
	PublicNotes(ctx context.Context) ([]models.Note, error)

	// CreateNote creates a note on the server and returns the confirmed
	// record with its server-assigned identity and timestamps.
	CreateNote(ctx context.Context, input models.NoteInput) (models.Note, error)

	// UpdateNote updates the note with the given server identity and
	// returns the confirmed record.
	UpdateNote(ctx context.Context, id int64, req UpdateNoteRequest) (models.Note, error)

	// DeleteNote deletes the note with the given server identity.
	DeleteNote(ctx context.Context, id int64) error
}
