package repository

import "fmt"

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS clips
(
    id                          INTEGER PRIMARY KEY AUTOINCREMENT,
    audio                       VARCHAR(200) NOT NULL,
    status                      VARCHAR(200) NOT NULL,
    transcription_fast          TEXT NULL,
    transcription_fast_time     REAL NULL,
    transcription_accurate      TEXT NULL,
    transcription_accurate_time REAL NULL,
    resolution                  TEXT NULL,
    failed_stage                VARCHAR(64) NULL,
    failure_reason              TEXT NULL,
    is_valid                    BOOLEAN NULL,
    created_at                  DATETIME NOT NULL,
    updated_at                  DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_clips_status ON clips (status);`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS clips
(
    id                          BIGSERIAL PRIMARY KEY,
    audio                       VARCHAR(200) NOT NULL,
    status                      VARCHAR(200) NOT NULL,
    transcription_fast          TEXT NULL,
    transcription_fast_time     DOUBLE PRECISION NULL,
    transcription_accurate      TEXT NULL,
    transcription_accurate_time DOUBLE PRECISION NULL,
    resolution                  TEXT NULL,
    failed_stage                VARCHAR(64) NULL,
    failure_reason              TEXT NULL,
    is_valid                    BOOLEAN NULL,
    created_at                  TIMESTAMPTZ NOT NULL,
    updated_at                  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_clips_status ON clips (status);`

// Schema returns the DDL creating the clips table for a driver.
func Schema(driverName string) (string, error) {
	switch driverName {
	case DriverSQLite:
		return sqliteSchema, nil
	case DriverPostgres:
		return postgresSchema, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driverName)
	}
}
