package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	apperrors "voicemail-whisper/internal/app/errors"
	"voicemail-whisper/internal/app/repository"
)

// Open opens (creating if needed) the sqlite database at dbPath and migrates it.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, dbPath string) (*repository.SQLClipStore, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open(repository.DriverSQLite, fmt.Sprintf("file:%s?_busy_timeout=5000", dbPath))
	if err != nil {
		return nil, apperrors.NewStoreError("open", 0, err)
	}
	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, apperrors.NewStoreError("open", 0, err)
	}

	store := repository.NewSQLClipStore(db, repository.DriverSQLite)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}
