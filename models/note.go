package models

import "time"

// Note is a single note as held by the client: either a server-confirmed
// record or an optimistic local entry that has not reached the server yet.
type Note struct {
	// ID identifies the note. See [Identity] for the local/remote split.
	ID Identity `json:"id"`

	// Title and Body are the user-entered text fields. Both are required
	// before any create or update is attempted.
	Title string `json:"title"`
	Body  string `json:"body"`

	// Labels attached to the note. Order-insignificant for storage,
	// order-preserving for display.
	Labels []Label `json:"labels,omitempty"`

	// IsDraft determines membership in the notes view vs. the drafts view.
	// A draft is published by an update setting IsDraft to false; a
	// published note never becomes a draft again.
	IsDraft bool `json:"is_draft"`

	// Author is the display name of the note's owner. Populated only on
	// entries from the public feed.
	Author string `json:"author,omitempty"`

	// CreatedAt and UpdatedAt are server-authoritative once the note is
	// synced. For unsynced notes they hold the local creation time.
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Unsynced is true iff the note's identity is local and no server
	// identity has replaced it yet.
	Unsynced bool `json:"unsynced,omitempty"`
}

// NoteInput is the user-entered payload a create or update is built from.
type NoteInput struct {
	Title   string  `validate:"required"`
	Body    string  `validate:"required"`
	IsDraft bool    `validate:"-"`
	Labels  []Label `validate:"-"`
}
