package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ironlog/internal/platform/clock"
	"ironlog/internal/platform/id"
	"ironlog/internal/platform/sqlite"
)

// Migrations is the ordered, forward-only schema history. New changes append
// a new version; existing entries never change.
func Migrations(clk clock.Clock, ids id.Generator) []sqlite.Migration {
	return []sqlite.Migration{
		{Version: 1, Name: "initial_schema", Apply: applyInitialSchema},
		{Version: 2, Name: "seed_templates", Apply: seedTemplates(clk, ids)},
	}
}

func applyInitialSchema(ctx context.Context, tx *sql.Tx) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS workout_templates (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  created_at TIMESTAMP NOT NULL
)`,
		`CREATE TABLE IF NOT EXISTS template_exercises (
  id TEXT PRIMARY KEY,
  template_id TEXT NOT NULL,
  name TEXT NOT NULL,
  order_index INTEGER NOT NULL,
  uses_weight INTEGER NOT NULL DEFAULT 1,
  FOREIGN KEY (template_id) REFERENCES workout_templates(id) ON DELETE CASCADE
)`,
		`CREATE TABLE IF NOT EXISTS workout_sessions (
  id TEXT PRIMARY KEY,
  template_id TEXT,
  template_name TEXT,
  started_at TIMESTAMP NOT NULL,
  ended_at TIMESTAMP,
  duration_seconds INTEGER,
  notes TEXT,
  FOREIGN KEY (template_id) REFERENCES workout_templates(id) ON DELETE SET NULL
)`,
		`CREATE TABLE IF NOT EXISTS session_exercises (
  id TEXT PRIMARY KEY,
  session_id TEXT NOT NULL,
  name TEXT NOT NULL,
  order_index INTEGER NOT NULL,
  uses_weight INTEGER NOT NULL DEFAULT 1,
  FOREIGN KEY (session_id) REFERENCES workout_sessions(id) ON DELETE CASCADE
)`,
		`CREATE TABLE IF NOT EXISTS sets (
  id TEXT PRIMARY KEY,
  session_exercise_id TEXT NOT NULL,
  reps INTEGER NOT NULL,
  weight REAL,
  created_at TIMESTAMP NOT NULL,
  FOREIGN KEY (session_exercise_id) REFERENCES session_exercises(id) ON DELETE CASCADE
)`,
		`CREATE TABLE IF NOT EXISTS app_state (
  key TEXT PRIMARY KEY,
  value TEXT
)`,
		`CREATE INDEX IF NOT EXISTS idx_template_exercises_template_id ON template_exercises(template_id)`,
		`CREATE INDEX IF NOT EXISTS idx_session_exercises_session_id ON session_exercises(session_id)`,
		`CREATE INDEX IF NOT EXISTS idx_sets_session_exercise_id ON sets(session_exercise_id)`,
		`CREATE INDEX IF NOT EXISTS idx_workout_sessions_started_at ON workout_sessions(started_at DESC)`,
	}
	for _, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

type seedTemplate struct {
	name      string
	exercises []seedExercise
}

type seedExercise struct {
	name       string
	usesWeight bool
}

func seedTemplates(clk clock.Clock, ids id.Generator) func(ctx context.Context, tx *sql.Tx) error {
	seeds := []seedTemplate{
		{name: "Push Day", exercises: []seedExercise{
			{"Bench Press", true},
			{"Overhead Press", true},
			{"Incline Dumbbell Press", true},
			{"Tricep Pushdowns", true},
			{"Lateral Raises", true},
		}},
		{name: "Pull Day", exercises: []seedExercise{
			{"Deadlift", true},
			{"Barbell Rows", true},
			{"Pull-ups", false},
			{"Face Pulls", true},
			{"Bicep Curls", true},
		}},
		{name: "Leg Day", exercises: []seedExercise{
			{"Squats", true},
			{"Romanian Deadlifts", true},
			{"Leg Press", true},
			{"Leg Curls", true},
			{"Calf Raises", true},
		}},
	}
	return func(ctx context.Context, tx *sql.Tx) error {
		now := clk.Now().Format(time.RFC3339)
		for _, seed := range seeds {
			templateID := ids.New()
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO workout_templates (id, name, created_at) VALUES (?, ?, ?)`,
				templateID, seed.name, now,
			); err != nil {
				return fmt.Errorf("seed template %s: %w", seed.name, err)
			}
			for order, exercise := range seed.exercises {
				usesWeight := 0
				if exercise.usesWeight {
					usesWeight = 1
				}
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO template_exercises (id, template_id, name, order_index, uses_weight) VALUES (?, ?, ?, ?, ?)`,
					ids.New(), templateID, exercise.name, order, usesWeight,
				); err != nil {
					return fmt.Errorf("seed exercise %s: %w", exercise.name, err)
				}
			}
		}
		return nil
	}
}
