package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	apperrors "voicemail-whisper/internal/app/errors"
	"voicemail-whisper/internal/app/model"
)

// Ensure SQLClipStore implements ClipDAO
var _ ClipDAO = (*SQLClipStore)(nil)

// PlaceholderFunc generates parameter placeholders for different SQL dialects
type PlaceholderFunc func(n int) string

const clipColumns = `id, audio, status,
	transcription_fast, transcription_fast_time,
	transcription_accurate, transcription_accurate_time,
	resolution, failed_stage, failure_reason, is_valid,
	created_at, updated_at`

// SQLClipStore is the clip store shared by the sqlite and postgres backends.
// It owns one long-lived *sql.DB for the lifetime of the process.
type SQLClipStore struct {
	db           *sql.DB
	driverName   string
	placeholders PlaceholderFunc
	now          func() time.Time
}

// NewSQLClipStore wraps an open database handle.
func NewSQLClipStore(db *sql.DB, driverName string) *SQLClipStore {
	var placeholders PlaceholderFunc

	switch driverName {
	case DriverPostgres:
		placeholders = func(n int) string { return fmt.Sprintf("$%d", n) }
	default:
		placeholders = func(n int) string { return "?" }
	}

	return &SQLClipStore{
		db:           db,
		driverName:   driverName,
		placeholders: placeholders,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Migrate creates the clips table if it does not exist yet.
func (s *SQLClipStore) Migrate(ctx context.Context) error {
	ddl, err := Schema(s.driverName)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return apperrors.NewStoreError("migrate", 0, err)
	}
	return nil
}

// Create inserts a new clip waiting for its fast transcription.
func (s *SQLClipStore) Create(ctx context.Context, audioRef string) (int64, error) {
	if strings.TrimSpace(audioRef) == "" {
		return 0, apperrors.RequiredField("audio")
	}

	now := s.now()
	query := fmt.Sprintf(
		`INSERT INTO clips (audio, status, created_at, updated_at) VALUES (%s, %s, %s, %s) RETURNING id`,
		s.placeholders(1), s.placeholders(2), s.placeholders(3), s.placeholders(4),
	)

	var id int64
	err := s.db.QueryRowContext(ctx, query, audioRef, string(model.StatusWaitingFast), now, now).Scan(&id)
	if err != nil {
		return 0, apperrors.NewStoreError("create", 0, err)
	}
	return id, nil
}

// Update applies a partial update in one statement, always bumping updated_at.
func (s *SQLClipStore) Update(ctx context.Context, id int64, u ClipUpdate) error {
	assignments := u.assignments()
	if len(assignments) == 0 {
		return apperrors.NewStoreError("update", id, apperrors.ErrNothingToWrite)
	}
	assignments = append(assignments, assignment{"updated_at", s.now()})

	sets := make([]string, 0, len(assignments))
	args := make([]interface{}, 0, len(assignments)+1)
	for i, a := range assignments {
		sets = append(sets, fmt.Sprintf("%s = %s", a.column, s.placeholders(i+1)))
		args = append(args, a.value)
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE clips SET %s WHERE id = %s",
		strings.Join(sets, ", "), s.placeholders(len(args)))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewStoreError("update", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewStoreError("update", id, err)
	}
	if rowsAffected == 0 {
		return apperrors.NewStoreError("update", id, apperrors.ErrClipNotFound)
	}
	return nil
}

// Get reads one clip by id.
func (s *SQLClipStore) Get(ctx context.Context, id int64) (*model.Clip, error) {
	query := fmt.Sprintf("SELECT %s FROM clips WHERE id = %s", clipColumns, s.placeholders(1))

	clip, err := scanClip(s.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("clip %d: %w", id, apperrors.ErrClipNotFound)
	}
	if err != nil {
		return nil, apperrors.NewStoreError("get", id, err)
	}
	return clip, nil
}

// ListByStatus returns clips in any of the given statuses, oldest first.
func (s *SQLClipStore) ListByStatus(ctx context.Context, statuses ...model.Status) ([]model.Clip, error) {
	if len(statuses) == 0 {
		return []model.Clip{}, nil
	}

	params := make([]string, len(statuses))
	for i := range statuses {
		params[i] = s.placeholders(i + 1)
	}
	args := lo.Map(statuses, func(st model.Status, _ int) interface{} { return string(st) })

	query := fmt.Sprintf("SELECT %s FROM clips WHERE status IN (%s) ORDER BY id ASC",
		clipColumns, strings.Join(params, ", "))

	return s.queryClips(ctx, "list", query, args...)
}

// List returns up to limit clips, newest first. With statuses given, only clips
// in one of them are returned.
func (s *SQLClipStore) List(ctx context.Context, limit int, statuses ...model.Status) ([]model.Clip, error) {
	if limit <= 0 {
		limit = 100
	}

	args := lo.Map(statuses, func(st model.Status, _ int) interface{} { return string(st) })
	where := ""
	if len(statuses) > 0 {
		params := make([]string, len(statuses))
		for i := range statuses {
			params[i] = s.placeholders(i + 1)
		}
		where = fmt.Sprintf(" WHERE status IN (%s)", strings.Join(params, ", "))
	}
	args = append(args, limit)

	query := fmt.Sprintf("SELECT %s FROM clips%s ORDER BY id DESC LIMIT %s",
		clipColumns, where, s.placeholders(len(args)))
	return s.queryClips(ctx, "list", query, args...)
}

// ListAfter returns up to limit clips with an id greater than afterID, oldest first.
func (s *SQLClipStore) ListAfter(ctx context.Context, afterID int64, limit int) ([]model.Clip, error) {
	query := fmt.Sprintf("SELECT %s FROM clips WHERE id > %s ORDER BY id ASC LIMIT %s",
		clipColumns, s.placeholders(1), s.placeholders(2))
	return s.queryClips(ctx, "list", query, afterID, limit)
}

// Import inserts a clip keeping its id and timestamps. Used when copying
// between backends.
func (s *SQLClipStore) Import(ctx context.Context, c model.Clip) error {
	params := make([]string, 13)
	for i := range params {
		params[i] = s.placeholders(i + 1)
	}

	var failedStage *string
	if c.FailedStage != nil {
		stage := string(*c.FailedStage)
		failedStage = &stage
	}

	query := fmt.Sprintf("INSERT INTO clips (%s) VALUES (%s)", clipColumns, strings.Join(params, ", "))
	_, err := s.db.ExecContext(ctx, query,
		c.ID, c.AudioRef, string(c.Status),
		c.FastTranscript, c.FastTranscriptSeconds,
		c.AccurateTranscript, c.AccurateTranscriptSeconds,
		c.ExtractionRaw, failedStage, c.FailureReason, c.IsValid,
		c.CreatedAt, c.UpdatedAt,
	)
	return apperrors.NewStoreError("import", c.ID, err)
}

// SyncSequence moves the postgres id sequence past imported ids.
// sqlite tracks AUTOINCREMENT itself.
func (s *SQLClipStore) SyncSequence(ctx context.Context) error {
	if s.driverName != DriverPostgres {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`SELECT setval(pg_get_serial_sequence('clips', 'id'), COALESCE((SELECT MAX(id) FROM clips), 1))`)
	return apperrors.NewStoreError("sync sequence", 0, err)
}

// SetValid records the manual review verdict for a clip.
func (s *SQLClipStore) SetValid(ctx context.Context, id int64, valid bool) error {
	return s.Update(ctx, id, ClipUpdate{IsValid: &valid})
}

// Close closes the database connection
func (s *SQLClipStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// DB returns the underlying database connection
func (s *SQLClipStore) DB() *sql.DB {
	return s.db
}

func (s *SQLClipStore) queryClips(ctx context.Context, op, query string, args ...interface{}) ([]model.Clip, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewStoreError(op, 0, err)
	}
	defer rows.Close()

	clips := make([]model.Clip, 0)
	for rows.Next() {
		clip, err := scanClip(rows)
		if err != nil {
			return nil, apperrors.NewStoreError(op, 0, fmt.Errorf("scan failed: %w", err))
		}
		clips = append(clips, *clip)
	}

	if err = rows.Err(); err != nil {
		return nil, apperrors.NewStoreError(op, 0, fmt.Errorf("rows error: %w", err))
	}
	return clips, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClip(row rowScanner) (*model.Clip, error) {
	var (
		c             model.Clip
		status        string
		fast          sql.NullString
		fastTime      sql.NullFloat64
		accurate      sql.NullString
		accurateTime  sql.NullFloat64
		resolution    sql.NullString
		failedStage   sql.NullString
		failureReason sql.NullString
		isValid       sql.NullBool
	)

	err := row.Scan(
		&c.ID, &c.AudioRef, &status,
		&fast, &fastTime,
		&accurate, &accurateTime,
		&resolution, &failedStage, &failureReason, &isValid,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Status = model.Status(status)
	if fast.Valid {
		c.FastTranscript = &fast.String
	}
	if fastTime.Valid {
		c.FastTranscriptSeconds = &fastTime.Float64
	}
	if accurate.Valid {
		c.AccurateTranscript = &accurate.String
	}
	if accurateTime.Valid {
		c.AccurateTranscriptSeconds = &accurateTime.Float64
	}
	if resolution.Valid {
		c.ExtractionRaw = &resolution.String
	}
	if failedStage.Valid {
		stage := model.Stage(failedStage.String)
		c.FailedStage = &stage
	}
	if failureReason.Valid {
		c.FailureReason = &failureReason.String
	}
	if isValid.Valid {
		c.IsValid = &isValid.Bool
	}

	return &c, nil
}
