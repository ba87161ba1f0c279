package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ironlog/internal/modules/session/domain"
	sessionout "ironlog/internal/modules/session/port/out"
	apperrors "ironlog/internal/platform/errors"
	"ironlog/internal/platform/sqlite"
)

type SQLiteSessionStore struct {
	db *sql.DB
}

func NewSQLiteSessionStore(db *sql.DB) sessionout.SessionStore {
	return &SQLiteSessionStore{db: db}
}

func (s *SQLiteSessionStore) Save(ctx context.Context, session domain.WorkoutSession) error {
	const stmt = `
INSERT INTO workout_sessions
  (id, template_id, template_name, started_at, ended_at, duration_seconds, notes)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  template_id = excluded.template_id,
  template_name = excluded.template_name,
  ended_at = excluded.ended_at,
  duration_seconds = excluded.duration_seconds,
  notes = excluded.notes;
`
	_, err := sqlite.Q(ctx, s.db).ExecContext(ctx, stmt,
		session.ID,
		nullString(session.TemplateID),
		nullString(session.TemplateName),
		session.StartedAt.Format(time.RFC3339),
		nullTime(session.EndedAt),
		nullDuration(session),
		nullString(session.Notes),
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) Get(ctx context.Context, sessionID string) (domain.WorkoutSession, error) {
	row := sqlite.Q(ctx, s.db).QueryRowContext(ctx, `
SELECT id, template_id, template_name, started_at, ended_at, duration_seconds, notes
FROM workout_sessions
WHERE id = ?`, sessionID)

	session, err := scanSession(row.Scan)
	if err == sql.ErrNoRows {
		return domain.WorkoutSession{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.WorkoutSession{}, err
	}
	if err := s.loadExercises(ctx, &session); err != nil {
		return domain.WorkoutSession{}, err
	}
	return session, nil
}

func (s *SQLiteSessionStore) List(ctx context.Context, limit int) ([]domain.WorkoutSession, error) {
	rows, err := sqlite.Q(ctx, s.db).QueryContext(ctx, `
SELECT id, template_id, template_name, started_at, ended_at, duration_seconds, notes
FROM workout_sessions
ORDER BY started_at DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.WorkoutSession
	for rows.Next() {
		session, err := scanSession(rows.Scan)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	for i := range sessions {
		if err := s.loadExercises(ctx, &sessions[i]); err != nil {
			return nil, err
		}
	}
	return sessions, nil
}

func (s *SQLiteSessionStore) SaveExercise(ctx context.Context, exercise domain.SessionExercise) error {
	const stmt = `
INSERT INTO session_exercises (id, session_id, name, order_index, uses_weight)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  name = excluded.name,
  order_index = excluded.order_index,
  uses_weight = excluded.uses_weight;
`
	if _, err := sqlite.Q(ctx, s.db).ExecContext(ctx, stmt,
		exercise.ID, exercise.SessionID, exercise.Name, exercise.OrderIndex, boolToInt(exercise.UsesWeight),
	); err != nil {
		return fmt.Errorf("upsert session exercise: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) DeleteExercise(ctx context.Context, exerciseID string) error {
	if _, err := sqlite.Q(ctx, s.db).ExecContext(ctx, `DELETE FROM session_exercises WHERE id = ?`, exerciseID); err != nil {
		return fmt.Errorf("delete session exercise: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) SaveSet(ctx context.Context, set domain.Set) error {
	const stmt = `
INSERT INTO sets (id, session_exercise_id, reps, weight, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  reps = excluded.reps,
  weight = excluded.weight;
`
	if _, err := sqlite.Q(ctx, s.db).ExecContext(ctx, stmt,
		set.ID, set.SessionExerciseID, set.Reps, set.Weight, set.CreatedAt.Format(time.RFC3339),
	); err != nil {
		return fmt.Errorf("upsert set: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) DeleteSet(ctx context.Context, setID string) error {
	if _, err := sqlite.Q(ctx, s.db).ExecContext(ctx, `DELETE FROM sets WHERE id = ?`, setID); err != nil {
		return fmt.Errorf("delete set: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) End(ctx context.Context, sessionID string, endedAt time.Time, durationSeconds int, notes string) error {
	const stmt = `
UPDATE workout_sessions
SET ended_at = ?, duration_seconds = ?, notes = ?
WHERE id = ?;
`
	result, err := sqlite.Q(ctx, s.db).ExecContext(ctx, stmt,
		endedAt.Format(time.RFC3339), durationSeconds, nullString(notes), sessionID)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *SQLiteSessionStore) Delete(ctx context.Context, sessionID string) error {
	if _, err := sqlite.Q(ctx, s.db).ExecContext(ctx, `DELETE FROM workout_sessions WHERE id = ?`, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) LastWeight(ctx context.Context, exerciseName string) (float64, bool, error) {
	const query = `
SELECT s.weight
FROM sets s
JOIN session_exercises se ON s.session_exercise_id = se.id
WHERE se.name = ? AND s.weight IS NOT NULL
ORDER BY s.created_at DESC
LIMIT 1;
`
	var weight float64
	err := sqlite.Q(ctx, s.db).QueryRowContext(ctx, query, exerciseName).Scan(&weight)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("last weight: %w", err)
	}
	return weight, true, nil
}

func (s *SQLiteSessionStore) loadExercises(ctx context.Context, session *domain.WorkoutSession) error {
	rows, err := sqlite.Q(ctx, s.db).QueryContext(ctx, `
SELECT id, session_id, name, order_index, uses_weight
FROM session_exercises
WHERE session_id = ?
ORDER BY order_index`, session.ID)
	if err != nil {
		return fmt.Errorf("load session exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var exercise domain.SessionExercise
		var usesWeight int
		if err := rows.Scan(&exercise.ID, &exercise.SessionID, &exercise.Name, &exercise.OrderIndex, &usesWeight); err != nil {
			return fmt.Errorf("scan session exercise: %w", err)
		}
		exercise.UsesWeight = usesWeight != 0
		session.Exercises = append(session.Exercises, exercise)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load session exercises: %w", err)
	}

	for i := range session.Exercises {
		if err := s.loadSets(ctx, &session.Exercises[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteSessionStore) loadSets(ctx context.Context, exercise *domain.SessionExercise) error {
	rows, err := sqlite.Q(ctx, s.db).QueryContext(ctx, `
SELECT id, session_exercise_id, reps, weight, created_at
FROM sets
WHERE session_exercise_id = ?
ORDER BY created_at`, exercise.ID)
	if err != nil {
		return fmt.Errorf("load sets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var set domain.Set
		var weight sql.NullFloat64
		var createdAt string
		if err := rows.Scan(&set.ID, &set.SessionExerciseID, &set.Reps, &weight, &createdAt); err != nil {
			return fmt.Errorf("scan set: %w", err)
		}
		if weight.Valid {
			value := weight.Float64
			set.Weight = &value
		}
		set.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return err
		}
		exercise.Sets = append(exercise.Sets, set)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("load sets: %w", err)
	}
	return nil
}

func scanSession(scan func(dest ...any) error) (domain.WorkoutSession, error) {
	var session domain.WorkoutSession
	var templateID, templateName, endedAt, notes sql.NullString
	var startedAt string
	var duration sql.NullInt64

	err := scan(&session.ID, &templateID, &templateName, &startedAt, &endedAt, &duration, &notes)
	if err != nil {
		return domain.WorkoutSession{}, err
	}
	session.TemplateID = templateID.String
	session.TemplateName = templateName.String
	session.Notes = notes.String
	session.StartedAt, err = parseTime(startedAt)
	if err != nil {
		return domain.WorkoutSession{}, err
	}
	if endedAt.Valid {
		session.EndedAt, err = parseTime(endedAt.String)
		if err != nil {
			return domain.WorkoutSession{}, err
		}
	}
	if duration.Valid {
		session.DurationSeconds = int(duration.Int64)
	}
	return session, nil
}

func parseTime(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return parsed, nil
}

func nullString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullTime(value time.Time) any {
	if value.IsZero() {
		return nil
	}
	return value.Format(time.RFC3339)
}

func nullDuration(session domain.WorkoutSession) any {
	if session.EndedAt.IsZero() {
		return nil
	}
	return session.DurationSeconds
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
