package adapter

import "errors"

// Transport-agnostic sentinel errors. mapHTTPError translates HTTP status
// codes into these values so callers can branch with [errors.Is] without
// knowing about the protocol.
var (
	// ErrUnauthorized signals a missing, expired, or rejected credential
	// (HTTP 401). Callers should degrade to the logged-out view.
	ErrUnauthorized = errors.New("client unauthorized")

	// ErrConflict signals a uniqueness conflict, e.g. signup with an email
	// that already has an account (HTTP 409).
	ErrConflict = errors.New("resource conflict")

	// ErrNotFound signals that the addressed note no longer exists on the
	// server (HTTP 404).
	ErrNotFound = errors.New("resource not found")

	// ErrBadRequest signals that the server rejected the payload
	// (HTTP 400).
	ErrBadRequest = errors.New("bad request")
)
