// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"errors"

	"github.com/minisamantha/notes-client/internal/adapter"
	"github.com/minisamantha/notes-client/internal/service"
)

// Human-readable messages shown in the status line. Keeping them in one
// place ensures consistent wording across pages.
const (
	msgSessionExpired    = "session expired, please sign in again"
	msgServerUnreachable = "server unreachable, working from the local copy"
	msgOperationBusy     = "that note is still syncing, try again in a moment"
	msgNoteMissing       = "that note no longer exists"
)

// humanize maps service and transport errors to a message fit for the
// status line. Unknown errors pass through verbatim.
func humanize(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, service.ErrNotAuthenticated):
		return msgSessionExpired
	case errors.Is(err, service.ErrOperationInFlight):
		return msgOperationBusy
	case errors.Is(err, service.ErrNoteNotFound):
		return msgNoteMissing
	case errors.Is(err, service.ErrSavedLocally):
		return msgServerUnreachable
	}
	return err.Error()
}
