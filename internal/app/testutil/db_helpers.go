package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"voicemail-whisper/internal/app/repository"
	"voicemail-whisper/internal/app/repository/pg"
	"voicemail-whisper/internal/app/repository/sqlite"
)

// SetupTestStore opens a fresh sqlite clip store under t.TempDir().
func SetupTestStore(t *testing.T) *repository.SQLClipStore {
	t.Helper()

	store, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "clips_test.db"))
	if err != nil {
		t.Fatalf("Failed to create SQLite test store: %v", err)
	}

	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Logf("Failed to close test store: %v", err)
		}
	})
	return store
}

// SetupTestPostgresStore connects to POSTGRES_TEST_URL and empties the clips table.
// The test is skipped when the variable is unset.
func SetupTestPostgresStore(t *testing.T) *repository.SQLClipStore {
	t.Helper()

	dsn := os.Getenv("POSTGRES_TEST_URL")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping postgres tests")
	}

	store, err := pg.Open(context.Background(), dsn)
	if err != nil {
		t.Fatalf("Failed to connect to PostgreSQL test database: %v", err)
	}
	if _, err := store.DB().Exec("TRUNCATE clips RESTART IDENTITY"); err != nil {
		t.Fatalf("Failed to clear clips table: %v", err)
	}

	t.Cleanup(func() { store.Close() })
	return store
}
