package service

import (
	"github.com/minisamantha/notes-client/internal/adapter"
	"github.com/minisamantha/notes-client/internal/logger"
	"github.com/minisamantha/notes-client/internal/session"
	"github.com/minisamantha/notes-client/internal/store"
)

// ClientServices bundles the service layer for injection into the UI.
type ClientServices struct {
	Auth       AuthService
	Notes      NoteService
	Labels     LabelService
	Form       *FormController
	RefreshJob *RefreshJob
}

// NewClientServices wires the service layer. The session holder is shared:
// the auth service writes it, the sync coordinator and adapter read it, and
// logout subscribers stop the refresh job.
func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, sess *session.Holder, log *logger.Logger) *ClientServices {
	notes := NewNoteService(storages.Notes, serverAdapter, sess, log)
	job := NewRefreshJob(notes)

	sess.Subscribe(job.Stop)

	return &ClientServices{
		Auth:       NewAuthService(serverAdapter, sess, log),
		Notes:      notes,
		Labels:     NewLabelService(storages.Slots, log),
		Form:       NewFormController(notes, storages.Slots, log),
		RefreshJob: job,
	}
}
