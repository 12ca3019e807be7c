package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/thirtyday/internal/auth"
	"github.com/julianstephens/thirtyday/internal/challenge"
	"github.com/julianstephens/thirtyday/internal/constants"
	"github.com/julianstephens/thirtyday/internal/logger"
	"github.com/julianstephens/thirtyday/internal/tui/components/challengelist"
	"github.com/julianstephens/thirtyday/internal/tui/components/grid"
)

type SessionState int

const (
	StateList SessionState = iota
	StateGrid
	StateChallengeForm
	StateConfirmDelete
	StateSignIn
)

// authDoneMsg reports the end of a background auth request.
type authDoneMsg struct {
	action string
	err    error
}

type Model struct {
	challenges    *challenge.Service
	auth          *auth.Service
	state         SessionState
	previousState SessionState
	keys          KeyMap
	help          help.Model
	list          challengelist.Model
	grid          grid.Model
	tracker       *challenge.Tracker
	weekStart     time.Weekday
	form          *huh.Form
	challengeForm *ChallengeFormModel
	signInForm    *SignInFormModel
	editingID     string // empty while creating
	deleteID      string
	formError     string
	status        string
	quitting      bool
	width         int
	height        int
}

// NewModel builds the UI over the challenge service. authSvc may be nil, in which
// case the account keys are disabled.
func NewModel(challenges *challenge.Service, authSvc *auth.Service) Model {
	m := Model{
		challenges: challenges,
		auth:       authSvc,
		state:      StateList,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		list:       challengelist.New(nil, 0, 0),
		weekStart:  constants.DefaultWeekStart,
	}
	if b, err := challenges.Builder(); err == nil {
		m.weekStart = b.WeekStart
	}
	m.refreshList()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateList:
		if m.auth != nil {
			keys = append(keys, m.keys.SignIn, m.keys.SignOut)
		}
	case StateGrid:
		gk := m.grid.Keys()
		keys = append(keys, gk.Toggle, gk.Edit, gk.Delete, gk.Back)
	case StateConfirmDelete:
		keys = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	full := [][]key.Binding{m.ShortHelp()}
	if m.state == StateGrid {
		gk := m.grid.Keys()
		full = append(full, []key.Binding{gk.Up, gk.Down, gk.Left, gk.Right})
	}
	return full
}

func (m Model) Init() tea.Cmd {
	if m.auth == nil {
		return nil
	}
	svc := m.auth
	return func() tea.Msg {
		return authDoneMsg{action: "status", err: svc.CheckStatus(context.Background())}
	}
}

func (m *Model) refreshList() {
	challenges, err := m.challenges.List()
	if err != nil {
		logger.Error("Failed to load challenges", "error", err)
		m.status = fmt.Sprintf("Failed to load challenges: %v", err)
		return
	}
	m.list.SetChallenges(challenges)
}

func (m *Model) resize() {
	h := m.height - 6
	if h < 0 {
		h = 0
	}
	m.list.SetSize(m.width-4, h)
	m.grid.SetSize(m.width-4, h)
}

// closeTracker writes any pending progress before the tracker is dropped.
func (m *Model) closeTracker() {
	if m.tracker == nil {
		return
	}
	if err := m.tracker.Flush(); err != nil {
		logger.Error("Progress could not be saved", "challenge", m.tracker.Challenge().ID, "error", err)
	}
	m.tracker = nil
}

func (m *Model) openChallenge(id string) {
	m.closeTracker()
	tracker, err := m.challenges.Open(id)
	if err != nil {
		m.status = fmt.Sprintf("Failed to open challenge: %v", err)
		return
	}
	m.tracker = tracker
	m.grid = grid.New(tracker, m.weekStart)
	m.resize()
	m.state = StateGrid
}

// Flush writes progress that could not be saved earlier. Call it after the program exits.
func (m Model) Flush() error {
	if m.tracker == nil {
		return nil
	}
	return m.tracker.Flush()
}
