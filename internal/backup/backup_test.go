package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/thirtyday/internal/constants"
)

func setupTestDB(t *testing.T) string {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer db.Close()

	for _, stmt := range []string{
		`CREATE TABLE test_data (id INTEGER PRIMARY KEY, name TEXT)`,
		`INSERT INTO test_data (id, name) VALUES (1, 'one'), (2, 'two')`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("failed to seed test database: %v", err)
		}
	}

	return dbPath
}

// steppingClock returns a clock that advances by step on every call.
func steppingClock(start time.Time, step time.Duration) func() time.Time {
	cur := start
	return func() time.Time {
		t := cur
		cur = cur.Add(step)
		return t
	}
}

func countRows(t *testing.T, path string) int {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM test_data").Scan(&count); err != nil {
		t.Fatalf("failed to query %s: %v", path, err)
	}
	return count
}

func TestCreate(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if filepath.Dir(backupPath) != mgr.Dir() {
		t.Errorf("backup written to %s, want %s", filepath.Dir(backupPath), mgr.Dir())
	}
	name := filepath.Base(backupPath)
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		t.Errorf("unexpected backup name %s", name)
	}
	if got := countRows(t, backupPath); got != 2 {
		t.Errorf("expected 2 rows in backup, got %d", got)
	}
}

func TestCreateWithoutDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.Create(); err == nil {
		t.Error("Create should fail when the database does not exist")
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local), time.Minute)

	for i := 0; i < constants.MaxBackups+5; i++ {
		if _, err := mgr.Create(); err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("expected %d backups after rotation, got %d", constants.MaxBackups, len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Errorf("backups not sorted newest first at %d", i)
		}
	}
	// The five oldest (08:00 to 08:04) were pruned.
	oldest := backups[len(backups)-1].Timestamp
	if want := time.Date(2024, 3, 1, 8, 5, 0, 0, time.Local); !oldest.Equal(want) {
		t.Errorf("oldest kept backup = %v, want %v", oldest, want)
	}
}

func TestUniqueNamesWithinAMinute(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	fixed := time.Date(2024, 3, 1, 8, 0, 30, 0, time.Local)
	mgr.now = func() time.Time { return fixed }

	seen := map[string]bool{}
	for i := 0; i < 4; i++ {
		p, err := mgr.Create()
		if err != nil {
			t.Fatalf("Create #%d failed: %v", i, err)
		}
		if seen[p] {
			t.Fatalf("duplicate backup path %s", p)
		}
		seen[p] = true
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 4 {
		t.Errorf("List returned %d backups, want 4", len(backups))
	}
}

func TestParseStamp(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
		want time.Time
	}{
		{"thirtyday-20240301-0800.db", true, time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local)},
		{"thirtyday-20240301-080015.db", true, time.Date(2024, 3, 1, 8, 0, 15, 0, time.Local)},
		{"thirtyday-20240301-080015-3.db", true, time.Date(2024, 3, 1, 8, 0, 15, 0, time.Local)},
		{"thirtyday-notadate.db", false, time.Time{}},
		{"thirtyday-20240301-080015-x.db", false, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseStamp(tt.name)
			if ok != tt.ok || !got.Equal(tt.want) {
				t.Errorf("parseStamp(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestListIgnoresForeignFiles(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if backups, err := mgr.List(); err != nil || len(backups) != 0 {
		t.Fatalf("List on missing dir = %v, %v; want empty, nil", backups, err)
	}

	if _, err := mgr.Create(); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"notes.txt", "thirtyday-garbage.db", "other-20240301-0800.db"} {
		if err := os.WriteFile(filepath.Join(mgr.Dir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("List returned %d backups, want 1", len(backups))
	}
}

func TestRestore(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)
	mgr.now = steppingClock(time.Date(2024, 3, 1, 8, 0, 0, 0, time.Local), time.Minute)

	backupPath, err := mgr.Create()
	if err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("DELETE FROM test_data"); err != nil {
		t.Fatal(err)
	}
	db.Close()

	previous, err := mgr.Restore(backupPath)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if previous == "" {
		t.Fatal("Restore should back up the current database first")
	}
	if got := countRows(t, previous); got != 0 {
		t.Errorf("pre-restore backup has %d rows, want 0", got)
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("restored database has %d rows, want 2", got)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file was left behind")
	}
}

func TestRestoreRejectsBadInput(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	if _, err := mgr.Restore(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("Restore of a missing file should fail")
	}

	corrupt := filepath.Join(t.TempDir(), "corrupt.db")
	if err := os.WriteFile(corrupt, []byte("this is not a database, just text padding it out"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Restore(corrupt); err == nil {
		t.Error("Restore of a corrupted file should fail")
	}
	if got := countRows(t, dbPath); got != 2 {
		t.Errorf("database changed after failed restore: %d rows", got)
	}
}
