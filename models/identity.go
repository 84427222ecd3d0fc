package models

import (
	"strconv"

	"github.com/google/uuid"
)

// Identity distinguishes notes that exist only on this device from notes the
// server has confirmed. Exactly one of the two fields is set: Local carries a
// client-generated token for notes that were never accepted by the server,
// Remote carries the server-assigned identifier once the first sync succeeds.
//
// The transition is one-way. A note may go local → remote exactly once, when
// the optimistic create is reconciled; a remote identity never becomes local
// again.
type Identity struct {
	// Local is the client-side identity token, generated on this device.
	// Empty once the note has been confirmed by the server.
	Local string `json:"local,omitempty"`

	// Remote is the server-assigned identifier. Zero for unsynced notes.
	Remote int64 `json:"remote,omitempty"`
}

// NewLocalIdentity generates a fresh local identity. UUIDs keep local tokens
// distinct from every server identifier and from each other across sessions.
func NewLocalIdentity() Identity {
	return Identity{Local: uuid.NewString()}
}

// RemoteIdentity wraps a server-assigned identifier.
func RemoteIdentity(id int64) Identity {
	return Identity{Remote: id}
}

// IsLocal reports whether the identity has never been confirmed by the server.
func (id Identity) IsLocal() bool {
	return id.Remote == 0
}

// Equal compares identities. Two notes are the same entity iff their
// identities are equal; titles and bodies are never consulted.
func (id Identity) Equal(other Identity) bool {
	if id.IsLocal() != other.IsLocal() {
		return false
	}
	if id.IsLocal() {
		return id.Local == other.Local
	}
	return id.Remote == other.Remote
}

// Key returns a string form suitable for map keys and log fields.
func (id Identity) Key() string {
	if id.IsLocal() {
		return "local:" + id.Local
	}
	return "remote:" + strconv.FormatInt(id.Remote, 10)
}

// IsZero reports whether neither side of the identity is set.
func (id Identity) IsZero() bool {
	return id.Local == "" && id.Remote == 0
}
