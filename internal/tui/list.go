package tui

import (
	"context"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/minisamantha/notes-client/internal/service"
	"github.com/minisamantha/notes-client/models"
)

// listTab selects which slice of the cached list is shown.
type listTab int

const (
	tabNotes listTab = iota
	tabDrafts
)

type listModel struct {
	ctx      context.Context
	services *service.ClientServices

	all     []models.Note
	tab     listTab
	idx     int
	loading bool
	spinner spinner.Model
	status  string
	lastErr string
}

func newListModel(ctx context.Context, services *service.ClientServices) listModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return listModel{ctx: ctx, services: services, spinner: s, loading: true}
}

func (m listModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refresh())
}

// visible returns the notes for the active tab, cached order preserved.
func (m listModel) visible() []models.Note {
	out := make([]models.Note, 0, len(m.all))
	for _, n := range m.all {
		if n.IsDraft == (m.tab == tabDrafts) {
			out = append(out, n)
		}
	}
	return out
}

func (m listModel) current() (models.Note, bool) {
	items := m.visible()
	if len(items) == 0 || m.idx < 0 || m.idx >= len(items) {
		return models.Note{}, false
	}
	return items[m.idx], true
}

func (m listModel) refresh() tea.Cmd {
	return func() tea.Msg {
		notes, err := m.services.Notes.Refresh(m.ctx)
		if err != nil {
			// The cached list keeps serving the screen when the server
			// is unreachable.
			return notesLoadedMsg{notes: m.services.Notes.List(m.ctx), err: err}
		}
		return notesLoadedMsg{notes: notes}
	}
}

func (m listModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case notesLoadedMsg:
		m.loading = false
		m.all = msg.notes
		m.lastErr = ""
		if msg.err != nil {
			m.lastErr = "refresh failed: " + humanize(msg.err)
		}
		m.clampIdx()
		return m, nil

	case noteDeletedMsg:
		if msg.err != nil {
			m.lastErr = humanize(msg.err)
		} else {
			m.status = "deleted"
		}
		return m, func() tea.Msg { return notesLoadedMsg{notes: m.services.Notes.List(m.ctx)} }

	case noteSavedMsg:
		m.status = "saved"
		if msg.warn != "" {
			m.status = msg.warn
		}
		return m, func() tea.Msg { return notesLoadedMsg{notes: m.services.Notes.List(m.ctx)} }

	case errMsg:
		m.lastErr = humanize(msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m listModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.tab == tabNotes {
			m.tab = tabDrafts
		} else {
			m.tab = tabNotes
		}
		m.idx = 0
		return m, nil

	case "up", "k":
		if m.idx > 0 {
			m.idx--
		}
		return m, nil

	case "down", "j":
		if m.idx < len(m.visible())-1 {
			m.idx++
		}
		return m, nil

	case "r":
		m.loading = true
		return m, m.refresh()

	case "n":
		return m, func() tea.Msg { return NavigateTo{Page: pageForm} }

	case "e", "enter":
		if note, ok := m.current(); ok {
			return m, func() tea.Msg {
				return NavigateTo{Page: pageForm, Payload: editNoteMsg{note: note}}
			}
		}
		return m, nil

	case "d":
		if note, ok := m.current(); ok {
			return m, m.deleteNote(note.ID)
		}
		return m, nil

	case "p":
		if note, ok := m.current(); ok && note.IsDraft {
			return m, m.publish(note)
		}
		return m, nil

	case "y":
		if note, ok := m.current(); ok {
			if err := clipboard.WriteAll(note.Body); err == nil {
				m.status = "copied to clipboard"
			}
		}
		return m, nil

	case "L":
		return m, m.logout()
	}

	return m, nil
}

func (m listModel) deleteNote(id models.Identity) tea.Cmd {
	return func() tea.Msg {
		return noteDeletedMsg{err: m.services.Notes.Delete(m.ctx, id)}
	}
}

func (m listModel) publish(note models.Note) tea.Cmd {
	return func() tea.Msg {
		_, err := m.services.Notes.Update(m.ctx, note.ID, service.UpdateInput{
			Title:   note.Title,
			Body:    note.Body,
			Labels:  note.Labels,
			Publish: true,
		})
		if err != nil {
			return errMsg{err}
		}
		return noteSavedMsg{}
	}
}

func (m listModel) logout() tea.Cmd {
	return func() tea.Msg {
		if err := m.services.Auth.Logout(m.ctx); err != nil {
			return errMsg{err}
		}
		return loggedOutMsg{}
	}
}

func (m listModel) clampIdx() {
	if n := len(m.visible()); m.idx >= n {
		m.idx = n - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m listModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("MiniSamantha"))
	if m.loading {
		b.WriteString("  " + m.spinner.View())
	}
	b.WriteString("\n\n")

	tabs := []string{tabStyle.Render("notes"), tabStyle.Render("drafts")}
	if m.tab == tabNotes {
		tabs[0] = activeTab.Render("notes")
	} else {
		tabs[1] = activeTab.Render("drafts")
	}
	b.WriteString(strings.Join(tabs, " ") + "\n\n")

	items := m.visible()
	if len(items) == 0 && !m.loading {
		b.WriteString("nothing here yet\n")
	}
	for i, n := range items {
		line := n.Title
		for _, l := range n.Labels {
			line += " " + labelBadge(l.Name, l.Color)
		}
		if n.Unsynced {
			line += " " + unsyncedStyle.Render("(not synced)")
		}
		if i == m.idx {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(warnStyle.Render(m.status) + "\n")
	}
	if m.lastErr != "" {
		b.WriteString(errorStyle.Render(m.lastErr) + "\n")
	}

	help := "n new · e edit · d delete · y copy · r refresh · tab drafts · L logout"
	if m.tab == tabDrafts {
		help = "n new · e edit · p publish · d delete · tab notes · L logout"
	}
	b.WriteString("\n" + helpStyle.Render(help))

	return b.String()
}
