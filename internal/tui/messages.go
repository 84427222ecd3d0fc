package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/minisamantha/notes-client/models"
)

// Page identifiers used by the router.
const (
	pageAuth  = "auth"
	pageNotes = "notes"
	pageForm  = "form"
)

// NavigateTo switches the router to another page, optionally delivering a
// payload message to it.
type NavigateTo struct {
	Page    string
	Payload tea.Msg
}

// loggedInMsg is emitted after a successful login or signup+login.
type loggedInMsg struct{}

// loggedOutMsg is emitted after logout completes.
type loggedOutMsg struct{}

// notesLoadedMsg carries the merged note list after a refresh (or the cached
// list when the refresh failed).
type notesLoadedMsg struct {
	notes []models.Note
	err   error
}

// noteSavedMsg is emitted when a form submission settled. warn is non-empty
// when the note was kept locally without reaching the server.
type noteSavedMsg struct {
	note models.Note
	warn string
}

// noteDeletedMsg is emitted after a delete settled.
type noteDeletedMsg struct {
	err error
}

// editNoteMsg routes the form page into editing an existing entry.
type editNoteMsg struct {
	note models.Note
}

// labelsLoadedMsg delivers the label catalog to the form page.
type labelsLoadedMsg struct {
	labels []models.Label
}

// errMsg surfaces an operation failure to the active page.
type errMsg struct {
	err error
}

func (e errMsg) Error() string { return e.err.Error() }
