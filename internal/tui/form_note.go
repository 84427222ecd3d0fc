package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/minisamantha/notes-client/internal/service"
	"github.com/minisamantha/notes-client/models"
)

// formFocus selects which region of the form receives key presses.
type formFocus int

const (
	focusTitle formFocus = iota
	focusBody
	focusLabels
)

// formSyncMsg tells the page to re-read the controller, e.g. after a
// restored autosave.
type formSyncMsg struct{}

type formModel struct {
	ctx      context.Context
	services *service.ClientServices
	form     *service.FormController

	title textinput.Model
	body  textarea.Model

	catalog  []models.Label
	labelIdx int
	focus    formFocus

	submitting bool
	lastErr    string
}

func newFormModel(ctx context.Context, services *service.ClientServices) formModel {
	title := textinput.New()
	title.Placeholder = "title"
	title.Width = 60
	title.Focus()

	body := textarea.New()
	body.Placeholder = "write your note..."
	body.SetWidth(60)
	body.SetHeight(10)

	return formModel{
		ctx:      ctx,
		services: services,
		form:     services.Form,
		title:    title,
		body:     body,
	}
}

func (m formModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.loadLabels(),
		func() tea.Msg { return formSyncMsg{} },
	)
}

func (m formModel) loadLabels() tea.Cmd {
	return func() tea.Msg {
		return labelsLoadedMsg{labels: m.services.Labels.All(m.ctx)}
	}
}

// pull copies the controller's text into the widgets. The controller is the
// single owner of the form text; the widgets only mirror it.
func (m *formModel) pull() {
	m.title.SetValue(m.form.Title())
	m.body.SetValue(m.form.Body())
	m.submitting = false
	m.lastErr = ""
	m.focus = focusTitle
	m.refocus()
}

func (m *formModel) refocus() {
	m.title.Blur()
	m.body.Blur()
	switch m.focus {
	case focusTitle:
		m.title.Focus()
	case focusBody:
		m.body.Focus()
	}
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case formSyncMsg:
		m.pull()
		return m, nil

	case editNoteMsg:
		m.form.Edit(msg.note)
		m.pull()
		return m, nil

	case labelsLoadedMsg:
		m.catalog = msg.labels
		if m.labelIdx >= len(m.catalog) {
			m.labelIdx = 0
		}
		return m, nil

	case noteSavedMsg:
		// The submission settled; hand the result to the list page.
		return m, func() tea.Msg {
			return NavigateTo{Page: pageNotes, Payload: msg}
		}

	case errMsg:
		m.submitting = false
		m.lastErr = humanize(msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m formModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	switch msg.String() {
	case "esc":
		// Leaving keeps the entered text recoverable across restarts.
		m.form.Autosave(m.ctx)
		return m, func() tea.Msg { return NavigateTo{Page: pageNotes} }

	case "tab":
		m.focus = (m.focus + 1) % 3
		m.refocus()
		return m, nil

	case "shift+tab":
		m.focus = (m.focus + 2) % 3
		m.refocus()
		return m, nil

	case "ctrl+s":
		return m.submit(false)

	case "ctrl+d":
		if !m.form.Editing() {
			return m.submit(true)
		}
		return m, nil
	}

	if m.focus == focusLabels {
		switch msg.String() {
		case "left", "h":
			if m.labelIdx > 0 {
				m.labelIdx--
			}
			return m, nil
		case "right", "l":
			if m.labelIdx < len(m.catalog)-1 {
				m.labelIdx++
			}
			return m, nil
		case " ", "enter":
			if m.labelIdx < len(m.catalog) {
				m.form.ToggleLabel(m.catalog[m.labelIdx])
			}
			return m, nil
		}
		return m, nil
	}

	return m.updateFocused(msg)
}

// updateFocused forwards the message to the active widget and mirrors the
// text back into the controller.
func (m formModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
		m.form.SetTitle(m.title.Value())
	case focusBody:
		m.body, cmd = m.body.Update(msg)
		m.form.SetBody(m.body.Value())
	}
	return m, cmd
}

func (m formModel) submit(asDraft bool) (tea.Model, tea.Cmd) {
	if m.form.State() == service.FormEmpty {
		return m, nil
	}

	m.submitting = true
	m.lastErr = ""

	return m, func() tea.Msg {
		var (
			note models.Note
			err  error
		)
		if asDraft {
			note, err = m.form.SubmitAsDraft(m.ctx)
		} else {
			note, err = m.form.Submit(m.ctx)
		}

		if errors.Is(err, service.ErrSavedLocally) {
			return noteSavedMsg{note: note, warn: "server unreachable, note kept locally"}
		}
		if err != nil {
			return errMsg{err}
		}
		return noteSavedMsg{note: note}
	}
}

func (m formModel) selected(label models.Label) bool {
	for _, l := range m.form.Labels() {
		if l.ID == label.ID {
			return true
		}
	}
	return false
}

func (m formModel) View() string {
	title := "New note"
	switch m.form.Kind() {
	case service.EditUpdateNote:
		title = "Edit note"
	case service.EditUpdateDraft:
		title = "Edit draft"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n\n")
	b.WriteString(m.title.View() + "\n\n")
	b.WriteString(m.body.View() + "\n\n")

	b.WriteString("Labels: ")
	for i, l := range m.catalog {
		badge := labelBadge(l.Name, l.Color)
		if m.selected(l) {
			badge = "[" + badge + "]"
		}
		if m.focus == focusLabels && i == m.labelIdx {
			badge = selectedStyle.Render(badge)
		}
		b.WriteString(badge + " ")
	}
	b.WriteString("\n\n")

	if m.submitting {
		b.WriteString("Saving...\n")
	}
	if m.lastErr != "" {
		b.WriteString(errorStyle.Render(m.lastErr) + "\n")
	}

	help := "ctrl+s save · tab next field · esc back"
	if !m.form.Editing() {
		help = "ctrl+s save · ctrl+d save as draft · tab next field · esc back"
	}
	b.WriteString("\n" + helpStyle.Render(help))

	return b.String()
}
