package system

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/thirtyday/internal/cli"
	"github.com/julianstephens/thirtyday/internal/models"
	"github.com/julianstephens/thirtyday/internal/storage/sqlite"
)

func setupTestInitDB(t *testing.T) (*cli.Context, string, func()) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store := sqlite.NewStore(dbPath)

	ctx := &cli.Context{
		Store: store,
		Out:   &bytes.Buffer{},
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	}
	return ctx, dbPath, cleanup
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		t.Fatalf("settings missing after init: %v", err)
	}
	if settings != models.DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", settings)
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	cmd := &InitCmd{}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Errorf("second init failed: %v", err)
	}
}

func sampleChallenge(id string) models.Challenge {
	now := time.Now().Truncate(time.Second)
	return models.Challenge{
		ID: id, Title: "Walk", Wish: "w", DailyAction: "a", Emoji: "🚶",
		StartDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC),
		CreatedAt: now, UpdatedAt: now,
	}
}

func TestInitCmd_Force(t *testing.T) {
	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Store.AddChallenge(sampleChallenge("c1")); err != nil {
		t.Fatal(err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("forced init failed: %v", err)
	}
	all, err := ctx.Store.GetAllChallenges()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 0 {
		t.Errorf("forced init kept %d challenges", len(all))
	}
}

func TestInitCmd_CopyFromSource(t *testing.T) {
	sourcePath := filepath.Join(t.TempDir(), "source.db")
	source := sqlite.NewStore(sourcePath)
	if err := source.Init(); err != nil {
		t.Fatal(err)
	}
	settings := models.DefaultSettings()
	settings.WeekStart = time.Monday
	if err := source.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}
	if err := source.AddChallenge(sampleChallenge("c1")); err != nil {
		t.Fatal(err)
	}
	for i, day := range []string{"2024-03-01", "2024-03-02"} {
		p := models.DailyProgress{ID: string(rune('a' + i)), ChallengeID: "c1", Day: day, Completion: true}
		if err := source.SaveProgress(p); err != nil {
			t.Fatal(err)
		}
	}
	source.Close()

	ctx, _, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{Source: sourcePath}).Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}

	got, err := ctx.Store.GetSettings()
	if err != nil || got.WeekStart != time.Monday {
		t.Errorf("settings not copied: %+v, %v", got, err)
	}
	records, err := ctx.Store.GetProgressForChallenge("c1")
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Errorf("copied %d progress records, want 2", len(records))
	}
}

func TestInitCmd_ForceSameSource(t *testing.T) {
	ctx, dbPath, cleanup := setupTestInitDB(t)
	defer cleanup()

	if err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx); err == nil {
		t.Error("expected an error when forcing with the destination as source")
	}
}
