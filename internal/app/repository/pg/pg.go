package pg

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"

	apperrors "voicemail-whisper/internal/app/errors"
	"voicemail-whisper/internal/app/repository"
)

// Open connects to postgres with the given DSN and migrates the clips table.
func Open(ctx context.Context, dsn string) (*repository.SQLClipStore, error) {
	db, err := sql.Open(repository.DriverPostgres, dsn)
	if err != nil {
		return nil, apperrors.NewStoreError("open", 0, err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, apperrors.NewStoreError("open", 0, err)
	}

	store := repository.NewSQLClipStore(db, repository.DriverPostgres)
	if err := store.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}
