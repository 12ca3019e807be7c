package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	apperrors "github.com/julianstephens/thirtyday/internal/errors"
	"github.com/julianstephens/thirtyday/internal/tui/components/challengelist"
	"github.com/julianstephens/thirtyday/internal/tui/components/grid"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case authDoneMsg:
		m.status = ""
		if msg.err != nil && msg.action != "status" {
			m.status = fmt.Sprintf("%s failed: %s", msg.action, apperrors.UserMessage(msg.err))
		}
		return m, nil
	}

	switch m.state {
	case StateChallengeForm:
		return m.updateChallengeForm(msg)
	case StateSignIn:
		return m.updateSignInForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			m.closeTracker()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case challengelist.AddChallengeMsg:
		return m.startChallengeForm("")
	case challengelist.OpenChallengeMsg:
		m.openChallenge(msg.ID)
		return m, nil
	case challengelist.EditChallengeMsg:
		return m.startChallengeForm(msg.ID)
	case challengelist.DeleteChallengeMsg:
		return m.confirmDelete(msg.ID), nil
	case grid.EditChallengeMsg:
		return m.startChallengeForm(msg.ID)
	case grid.DeleteChallengeMsg:
		return m.confirmDelete(msg.ID), nil
	case grid.BackMsg:
		m.closeTracker()
		m.refreshList()
		m.state = StateList
		return m, nil
	}

	var cmd tea.Cmd
	switch m.state {
	case StateList:
		if msg, ok := msg.(tea.KeyMsg); ok && m.auth != nil {
			switch {
			case key.Matches(msg, m.keys.SignIn):
				return m.startSignIn()
			case key.Matches(msg, m.keys.SignOut):
				svc := m.auth
				m.status = "Signing out..."
				return m, func() tea.Msg {
					return authDoneMsg{action: "sign out", err: svc.SignOut(context.Background())}
				}
			}
		}
		m.list, cmd = m.list.Update(msg)
	case StateGrid:
		m.grid, cmd = m.grid.Update(msg)
	}
	return m, cmd
}

func (m Model) startChallengeForm(id string) (tea.Model, tea.Cmd) {
	m.editingID = id
	m.formError = ""
	title := "New challenge"
	m.challengeForm = &ChallengeFormModel{}
	if id != "" {
		c, err := m.challenges.Get(id)
		if err != nil {
			m.status = fmt.Sprintf("Failed to load challenge: %v", err)
			return m, nil
		}
		m.challengeForm = challengeFormFrom(c)
		title = "Edit challenge"
	}
	m.previousState = m.state
	m.state = StateChallengeForm
	m.form = newChallengeForm(m.challengeForm, title)
	return m, m.form.Init()
}

func (m Model) startSignIn() (tea.Model, tea.Cmd) {
	m.formError = ""
	m.signInForm = &SignInFormModel{}
	m.previousState = m.state
	m.state = StateSignIn
	m.form = newSignInForm(m.signInForm)
	return m, m.form.Init()
}

func (m Model) confirmDelete(id string) Model {
	m.deleteID = id
	m.previousState = m.state
	m.state = StateConfirmDelete
	return m
}

// updateForm forwards msg to the active form. esc aborts it.
func (m *Model) updateForm(msg tea.Msg) (huh.FormState, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		return huh.StateAborted, nil
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	return m.form.State, cmd
}

func (m Model) updateChallengeForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	state, cmd := m.updateForm(msg)
	switch state {
	case huh.StateCompleted:
		in, err := m.challengeForm.Input()
		if err == nil {
			if m.editingID == "" {
				_, err = m.challenges.Create(in)
			} else {
				_, err = m.challenges.Edit(m.editingID, in)
			}
		}
		if err != nil {
			// Stay in the form so the user can correct it.
			m.formError = apperrors.UserMessage(err)
			m.form.State = huh.StateNormal
			return m, cmd
		}

		m.formError = ""
		m.refreshList()
		if m.previousState == StateGrid && m.tracker != nil {
			m.openChallenge(m.editingID)
			return m, cmd
		}
		m.state = StateList
	case huh.StateAborted:
		m.formError = ""
		m.state = m.previousState
	}
	return m, cmd
}

func (m Model) updateSignInForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	state, cmd := m.updateForm(msg)
	switch state {
	case huh.StateCompleted:
		svc := m.auth
		f := *m.signInForm
		m.signInForm = nil
		m.state = m.previousState
		m.status = "Signing in..."
		return m, func() tea.Msg {
			return authDoneMsg{action: "sign in", err: svc.SignIn(context.Background(), f.Email, f.Password, f.RememberMe)}
		}
	case huh.StateAborted:
		m.signInForm = nil
		m.state = m.previousState
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		if err := m.challenges.Delete(m.deleteID); err != nil {
			m.status = fmt.Sprintf("Failed to delete challenge: %v", err)
			m.state = m.previousState
			return m, nil
		}
		if m.tracker != nil && m.tracker.Challenge().ID == m.deleteID {
			// The progress is gone with the challenge; nothing left to flush.
			m.tracker = nil
		}
		m.deleteID = ""
		m.refreshList()
		m.state = StateList
	case key.Matches(keyMsg, m.keys.Cancel):
		m.deleteID = ""
		m.state = m.previousState
	}
	return m, nil
}
