package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateList:
		content = docStyle.Render(m.list.View())
	case StateGrid:
		content = docStyle.Render(m.grid.View())
	case StateChallengeForm, StateSignIn:
		content = docStyle.Render(m.form.View())
		if m.formError != "" {
			content = lipgloss.JoinVertical(lipgloss.Left, content, dangerStyle.Render("  "+m.formError))
		}
	case StateConfirmDelete:
		content = m.viewConfirmDelete()
	}

	parts := []string{m.viewHeader(), content}
	if m.status != "" {
		parts = append(parts, warningStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewHeader() string {
	title := titleStyle.Render("thirtyday")
	if m.auth == nil {
		return title
	}

	state := m.auth.State()
	var account string
	switch {
	case state.IsLoading:
		account = "checking session..."
	case state.IsAuthenticated && state.User != nil:
		account = "signed in as " + state.User.Email
	case state.ErrorMessage != "":
		account = "signed out: " + state.ErrorMessage
	default:
		account = "signed out"
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, title, accountStyle.Render(account))
}

func (m Model) viewConfirmDelete() string {
	return lipgloss.Place(m.width, m.height-4,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Delete this challenge and all of its progress?"),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
