package settings

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/thirtyday/internal/cli"
	"github.com/julianstephens/thirtyday/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer, func()) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}

	out := &bytes.Buffer{}
	ctx := &cli.Context{Store: store, Out: out}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, out, cleanup
}

func ptr[T any](v T) *T { return &v }

func TestSettingsCmd_List(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&SettingsCmd{List: true}).Run(ctx); err != nil {
		t.Fatalf("settings list failed: %v", err)
	}
	for _, want := range []string{"Week Start:      Sunday", "Default Length:  30 days"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestSettingsCmd_Update(t *testing.T) {
	ctx, _, cleanup := setupTestDB(t)
	defer cleanup()

	cmd := &SettingsCmd{
		WeekStart:     ptr("mon"),
		Timezone:      ptr("Europe/Berlin"),
		DefaultEmoji:  ptr("🏃"),
		DefaultLength: ptr(21),
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("settings update failed: %v", err)
	}

	got, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatal(err)
	}
	if got.WeekStart != time.Monday {
		t.Errorf("WeekStart = %v, want Monday", got.WeekStart)
	}
	if got.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone = %q", got.Timezone)
	}
	if got.DefaultEmoji != "🏃" {
		t.Errorf("DefaultEmoji = %q", got.DefaultEmoji)
	}
	if got.DefaultLengthDays != 21 {
		t.Errorf("DefaultLengthDays = %d, want 21", got.DefaultLengthDays)
	}
}

func TestSettingsCmd_Invalid(t *testing.T) {
	ctx, _, cleanup := setupTestDB(t)
	defer cleanup()

	tests := []struct {
		name string
		cmd  SettingsCmd
	}{
		{"weekday", SettingsCmd{WeekStart: ptr("someday")}},
		{"timezone", SettingsCmd{Timezone: ptr("Mars/Olympus")}},
		{"emoji", SettingsCmd{DefaultEmoji: ptr("abc")}},
		{"zero length", SettingsCmd{DefaultLength: ptr(0)}},
		{"too long", SettingsCmd{DefaultLength: ptr(400)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSettingsCmd_NoChanges(t *testing.T) {
	ctx, out, cleanup := setupTestDB(t)
	defer cleanup()

	if err := (&SettingsCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No changes specified") {
		t.Errorf("unexpected output: %q", out.String())
	}
}
