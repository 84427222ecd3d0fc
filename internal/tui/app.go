// Package tui is the terminal presentation of the MiniSamantha client: a
// page router with an auth page, a tabbed notes/drafts list, and the note
// form. All state and persistence decisions live in the service layer; the
// TUI only translates key presses into service calls.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/minisamantha/notes-client/internal/service"
	"github.com/minisamantha/notes-client/internal/session"
)

// ErrUserQuit reports that the user closed the program from the UI.
var ErrUserQuit = errors.New("user quit")

// TUI owns the bubbletea program.
type TUI struct {
	services *service.ClientServices
	session  *session.Holder
}

// New builds the TUI around the service layer.
func New(services *service.ClientServices, sess *session.Holder) *TUI {
	return &TUI{services: services, session: sess}
}

// Run starts the UI. The start page depends on whether a session was
// restored from the previous run.
func (t *TUI) Run(ctx context.Context) error {
	pages := map[string]tea.Model{
		pageAuth:  newAuthModel(ctx, t.services.Auth),
		pageNotes: newListModel(ctx, t.services),
		pageForm:  newFormModel(ctx, t.services),
	}

	start := pageAuth
	if t.session.Authenticated() {
		start = pageNotes
	}

	root := newRootModel(pages, start)
	final, err := tea.NewProgram(root, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}

	if result, ok := final.(rootModel); ok && result.quitByUser {
		return ErrUserQuit
	}
	return nil
}

// rootModel is a TUI router:
// 1) keeps the active page
// 2) handles global Ctrl+C quit
// 3) handles NavigateTo messages
// 4) delegates all other messages to the active page
type rootModel struct {
	pages   map[string]tea.Model
	current tea.Model

	quitByUser bool
}

func newRootModel(pages map[string]tea.Model, startPage string) rootModel {
	return rootModel{
		pages:   pages,
		current: pages[startPage],
	}
}

func (r rootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		r.quitByUser = true
		return r, tea.Quit
	}

	if _, ok := msg.(loggedOutMsg); ok {
		r.current = r.pages[pageAuth]
		return r, r.current.Init()
	}

	if nav, ok := msg.(NavigateTo); ok {
		next, exists := r.pages[nav.Page]
		if !exists {
			return r, nil
		}
		r.current = next

		if nav.Payload != nil {
			return r, tea.Batch(r.current.Init(), func() tea.Msg { return nav.Payload })
		}
		return r, r.current.Init()
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	return r, cmd
}

func (r rootModel) View() string {
	if r.current == nil {
		return ""
	}
	return appStyle.Render(r.current.View())
}
