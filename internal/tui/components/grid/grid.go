package grid

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/thirtyday/internal/calendar"
	"github.com/julianstephens/thirtyday/internal/challenge"
	"github.com/julianstephens/thirtyday/internal/constants"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	futureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))

	cursorStyle = lipgloss.NewStyle().
			Reverse(true)
)

type EditChallengeMsg struct {
	ID string
}

type DeleteChallengeMsg struct {
	ID string
}

type BackMsg struct{}

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Edit   key.Binding
	Delete key.Binding
	Back   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "prev week"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next week"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev day"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next day"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "toggle day"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "backspace"),
			key.WithHelp("esc", "back"),
		),
	}
}

// Model shows one challenge's grid with a day cursor.
type Model struct {
	tracker   *challenge.Tracker
	weekStart time.Weekday
	cursor    int
	keys      KeyMap
	width     int
	height    int
}

func New(tracker *challenge.Tracker, weekStart time.Weekday) Model {
	m := Model{
		tracker:   tracker,
		weekStart: weekStart,
		cursor:    -1,
		keys:      DefaultKeyMap(),
	}
	m.cursor = m.initialCursor()
	return m
}

func (m Model) Keys() KeyMap {
	return m.keys
}

func (m Model) Tracker() *challenge.Tracker {
	return m.tracker
}

func (m Model) cells() []calendar.Day {
	var cells []calendar.Day
	for _, row := range m.tracker.Grid() {
		cells = append(cells, row...)
	}
	return cells
}

// initialCursor starts on the last accessible day, or the first shown day when none is.
func (m Model) initialCursor() int {
	cells := m.cells()
	first, lastOpen := -1, -1
	for i, d := range cells {
		if !d.IsShown {
			continue
		}
		if first < 0 {
			first = i
		}
		if d.IsAccessible {
			lastOpen = i
		}
	}
	if lastOpen >= 0 {
		return lastOpen
	}
	return first
}

// Selected returns the day under the cursor.
func (m Model) Selected() (calendar.Day, bool) {
	cells := m.cells()
	if m.cursor < 0 || m.cursor >= len(cells) {
		return calendar.Day{}, false
	}
	return cells[m.cursor], true
}

func (m *Model) move(delta int) {
	cells := m.cells()
	next := m.cursor + delta
	if next < 0 || next >= len(cells) || !cells[next].IsShown {
		return
	}
	m.cursor = next
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.tracker == nil {
		return m, nil
	}

	id := m.tracker.Challenge().ID
	switch {
	case key.Matches(keyMsg, m.keys.Left):
		m.move(-1)
	case key.Matches(keyMsg, m.keys.Right):
		m.move(1)
	case key.Matches(keyMsg, m.keys.Up):
		m.move(-constants.DaysPerWeek)
	case key.Matches(keyMsg, m.keys.Down):
		m.move(constants.DaysPerWeek)
	case key.Matches(keyMsg, m.keys.Toggle):
		if d, ok := m.Selected(); ok {
			m.tracker.Toggle(d)
		}
	case key.Matches(keyMsg, m.keys.Edit):
		return m, func() tea.Msg { return EditChallengeMsg{ID: id} }
	case key.Matches(keyMsg, m.keys.Delete):
		return m, func() tea.Msg { return DeleteChallengeMsg{ID: id} }
	case key.Matches(keyMsg, m.keys.Back):
		return m, func() tea.Msg { return BackMsg{} }
	}
	return m, nil
}

func (m Model) styleNumber(i int, d calendar.Day, text string) string {
	if i == m.cursor {
		return cursorStyle.Render(text)
	}
	if !d.IsAccessible {
		return futureStyle.Render(text)
	}
	return text
}

func (m Model) styleMark(i int, d calendar.Day, text string) string {
	switch {
	case i == m.cursor:
		return cursorStyle.Render(text)
	case d.IsComplete():
		return doneStyle.Render(text)
	case !d.IsAccessible:
		return futureStyle.Render(text)
	}
	return text
}

func (m Model) View() string {
	if m.tracker == nil {
		return "No challenge selected."
	}
	c := m.tracker.Challenge()
	s := m.tracker.Summary()

	header := titleStyle.Render(fmt.Sprintf("%s %s", c.Emoji, c.Title))
	about := subtleStyle.Render(fmt.Sprintf("%s → %s  ·  %s",
		c.StartDate.Format(constants.DateFormat), c.EndDate.Format(constants.DateFormat), c.DailyAction))
	stats := fmt.Sprintf("%d/%d days done (%d%%)  ·  current streak %d  ·  best %d",
		s.Completed, s.TotalDays, s.Percent(), s.CurrentStreak, s.LongestStreak)

	body := render(m.tracker.Grid(), m.weekStart, m.styleNumber, m.styleMark)

	parts := []string{header, about, "", body, stats}
	if pending := m.tracker.Pending(); len(pending) > 0 {
		parts = append(parts, subtleStyle.Render(fmt.Sprintf("⚠ %d day(s) not saved yet, will retry", len(pending))))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
