package challengelist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/thirtyday/internal/constants"
	"github.com/julianstephens/thirtyday/internal/models"
)

type AddChallengeMsg struct{}

type OpenChallengeMsg struct {
	ID string
}

type EditChallengeMsg struct {
	ID string
}

type DeleteChallengeMsg struct {
	ID string
}

type Item struct {
	Challenge models.Challenge
}

func (i Item) Title() string {
	return i.Challenge.Emoji + " " + i.Challenge.Title
}

func (i Item) Description() string {
	return fmt.Sprintf("%s → %s | %s",
		i.Challenge.StartDate.Format(constants.DateFormat),
		i.Challenge.EndDate.Format(constants.DateFormat),
		i.Challenge.DailyAction)
}

func (i Item) FilterValue() string { return i.Challenge.Title }

type KeyMap struct {
	Add    key.Binding
	Open   key.Binding
	Edit   key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func items(challenges []models.Challenge) []list.Item {
	out := make([]list.Item, len(challenges))
	for i, c := range challenges {
		out[i] = Item{Challenge: c}
	}
	return out
}

func New(challenges []models.Challenge, width, height int) Model {
	l := list.New(items(challenges), list.NewDefaultDelegate(), width, height)
	l.Title = "Challenges"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Open, keys.Edit, keys.Delete}
	}
	l.AdditionalFullHelpKeys = l.AdditionalShortHelpKeys

	return Model{list: l, keys: keys}
}

func (m *Model) SetChallenges(challenges []models.Challenge) {
	m.list.SetItems(items(challenges))
}

func (m Model) Len() int {
	return len(m.list.Items())
}

func (m Model) Selected() (models.Challenge, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Challenge, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddChallengeMsg{} }
		case key.Matches(msg, m.keys.Open):
			if c, ok := m.Selected(); ok {
				return m, func() tea.Msg { return OpenChallengeMsg{ID: c.ID} }
			}
		case key.Matches(msg, m.keys.Edit):
			if c, ok := m.Selected(); ok {
				return m, func() tea.Msg { return EditChallengeMsg{ID: c.ID} }
			}
		case key.Matches(msg, m.keys.Delete):
			if c, ok := m.Selected(); ok {
				return m, func() tea.Msg { return DeleteChallengeMsg{ID: c.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No challenges yet.\n  Press 'a' to start one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
