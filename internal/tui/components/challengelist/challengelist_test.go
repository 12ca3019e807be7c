package challengelist

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/thirtyday/internal/models"
)

func sample() []models.Challenge {
	return []models.Challenge{
		{
			ID: "c1", Title: "Walk", Emoji: "🚶", DailyAction: "walk 20 minutes",
			StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "c2", Title: "Read", Emoji: "📚", DailyAction: "read",
			StartDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestItem(t *testing.T) {
	i := Item{Challenge: sample()[0]}
	if i.Title() != "🚶 Walk" {
		t.Errorf("Title() = %q", i.Title())
	}
	if want := "2024-03-01 → 2024-03-30 | walk 20 minutes"; i.Description() != want {
		t.Errorf("Description() = %q, want %q", i.Description(), want)
	}
}

func TestKeyMessages(t *testing.T) {
	m := New(sample(), 80, 20)

	tests := []struct {
		key  tea.KeyMsg
		want tea.Msg
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}}, AddChallengeMsg{}},
		{tea.KeyMsg{Type: tea.KeyEnter}, OpenChallengeMsg{ID: "c1"}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}}, EditChallengeMsg{ID: "c1"}},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}}, DeleteChallengeMsg{ID: "c1"}},
	}
	for _, tt := range tests {
		_, cmd := m.Update(tt.key)
		if cmd == nil {
			t.Fatalf("%s produced no command", tt.key)
		}
		if got := cmd(); got != tt.want {
			t.Errorf("%s produced %#v, want %#v", tt.key, got, tt.want)
		}
	}
}

func TestEmptyList(t *testing.T) {
	m := New(nil, 80, 20)
	if !strings.Contains(m.View(), "No challenges yet") {
		t.Errorf("unexpected empty view: %q", m.View())
	}
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	if cmd != nil {
		if _, ok := cmd().(EditChallengeMsg); ok {
			t.Error("edit on an empty list should do nothing")
		}
	}

	m.SetChallenges(sample())
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}
