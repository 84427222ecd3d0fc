package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/minisamantha/notes-client/internal/service"
	"github.com/minisamantha/notes-client/models"
)

// authMode selects between the two flows sharing this page.
type authMode int

const (
	modeLogin authMode = iota
	modeSignup
)

type authModel struct {
	ctx  context.Context
	auth service.AuthService

	mode       authMode
	inputs     []textinput.Model
	focus      int
	submitting bool
	status     string
	lastErr    string
}

func newAuthModel(ctx context.Context, auth service.AuthService) authModel {
	inputs := make([]textinput.Model, 2)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 40
	}
	inputs[0].Placeholder = "email"
	inputs[1].Placeholder = "password"
	inputs[1].EchoMode = textinput.EchoPassword
	inputs[1].EchoCharacter = '*'
	inputs[0].Focus()

	return authModel{ctx: ctx, auth: auth, inputs: inputs}
}

func (m authModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m authModel) credentials() models.Credentials {
	return models.Credentials{
		Email:    strings.TrimSpace(m.inputs[0].Value()),
		Password: m.inputs[1].Value(),
	}
}

func (m authModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab":
			if m.mode == modeLogin {
				m.mode = modeSignup
			} else {
				m.mode = modeLogin
			}
			m.lastErr = ""
			return m, nil
		case "up", "shift+tab":
			m.focus = (m.focus + len(m.inputs) - 1) % len(m.inputs)
			return m.refocus()
		case "down":
			m.focus = (m.focus + 1) % len(m.inputs)
			return m.refocus()
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.focus++
				return m.refocus()
			}
			m.submitting = true
			m.lastErr = ""
			return m, m.submit()
		}

	case loggedInMsg:
		m.submitting = false
		return m, func() tea.Msg { return NavigateTo{Page: pageNotes} }

	case errMsg:
		m.submitting = false
		m.lastErr = humanize(msg.err)
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m authModel) refocus() (tea.Model, tea.Cmd) {
	for i := range m.inputs {
		if i == m.focus {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, nil
}

func (m authModel) submit() tea.Cmd {
	creds := m.credentials()
	signup := m.mode == modeSignup

	return func() tea.Msg {
		if signup {
			if err := m.auth.Signup(m.ctx, creds); err != nil {
				return errMsg{err}
			}
		}
		if err := m.auth.Login(m.ctx, creds); err != nil {
			return errMsg{err}
		}
		return loggedInMsg{}
	}
}

func (m authModel) View() string {
	title := "Sign in to MiniSamantha"
	if m.mode == modeSignup {
		title = "Create a MiniSamantha account"
	}

	out := titleStyle.Render(title) + "\n\n"
	out += "Email:    [" + m.inputs[0].View() + "]\n"
	out += "Password: [" + m.inputs[1].View() + "]\n\n"

	if m.submitting {
		out += "Submitting...\n"
	}
	if m.lastErr != "" {
		out += errorStyle.Render(m.lastErr) + "\n"
	}

	out += "\n" + helpStyle.Render("enter submit · tab switch login/signup · ctrl+c quit")
	return out
}
