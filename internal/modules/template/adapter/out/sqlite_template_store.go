package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ironlog/internal/modules/template/domain"
	templateout "ironlog/internal/modules/template/port/out"
	apperrors "ironlog/internal/platform/errors"
	"ironlog/internal/platform/sqlite"
)

type SQLiteTemplateStore struct {
	db *sql.DB
}

func NewSQLiteTemplateStore(db *sql.DB) templateout.TemplateStore {
	return &SQLiteTemplateStore{db: db}
}

func (s *SQLiteTemplateStore) List(ctx context.Context) ([]domain.WorkoutTemplate, error) {
	rows, err := sqlite.Q(ctx, s.db).QueryContext(ctx, `
SELECT id, name, created_at FROM workout_templates ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var templates []domain.WorkoutTemplate
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	for i := range templates {
		exercises, err := s.loadExercises(ctx, templates[i].ID)
		if err != nil {
			return nil, err
		}
		templates[i].Exercises = exercises
	}
	return templates, nil
}

func (s *SQLiteTemplateStore) Get(ctx context.Context, templateID string) (domain.WorkoutTemplate, error) {
	row := sqlite.Q(ctx, s.db).QueryRowContext(ctx, `
SELECT id, name, created_at FROM workout_templates WHERE id = ?`, templateID)

	var template domain.WorkoutTemplate
	var createdAt string
	err := row.Scan(&template.ID, &template.Name, &createdAt)
	if err == sql.ErrNoRows {
		return domain.WorkoutTemplate{}, apperrors.ErrNotFound
	}
	if err != nil {
		return domain.WorkoutTemplate{}, fmt.Errorf("get template: %w", err)
	}
	template.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return domain.WorkoutTemplate{}, err
	}
	template.Exercises, err = s.loadExercises(ctx, template.ID)
	if err != nil {
		return domain.WorkoutTemplate{}, err
	}
	return template, nil
}

func (s *SQLiteTemplateStore) Save(ctx context.Context, template domain.WorkoutTemplate) error {
	q := sqlite.Q(ctx, s.db)
	const upsert = `
INSERT INTO workout_templates (id, name, created_at) VALUES (?, ?, ?)
ON CONFLICT(id) DO UPDATE SET name = excluded.name;
`
	if _, err := q.ExecContext(ctx, upsert, template.ID, template.Name, template.CreatedAt.Format(time.RFC3339)); err != nil {
		return fmt.Errorf("upsert template: %w", err)
	}
	// Exercises are replaced wholesale; ordering lives in order_index.
	if _, err := q.ExecContext(ctx, `DELETE FROM template_exercises WHERE template_id = ?`, template.ID); err != nil {
		return fmt.Errorf("clear template exercises: %w", err)
	}
	for _, exercise := range template.Exercises {
		if _, err := q.ExecContext(ctx, `
INSERT INTO template_exercises (id, template_id, name, order_index, uses_weight)
VALUES (?, ?, ?, ?, ?)`,
			exercise.ID, template.ID, exercise.Name, exercise.OrderIndex, boolToInt(exercise.UsesWeight),
		); err != nil {
			return fmt.Errorf("insert template exercise: %w", err)
		}
	}
	return nil
}

func (s *SQLiteTemplateStore) Delete(ctx context.Context, templateID string) error {
	if _, err := sqlite.Q(ctx, s.db).ExecContext(ctx, `DELETE FROM workout_templates WHERE id = ?`, templateID); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

func (s *SQLiteTemplateStore) loadExercises(ctx context.Context, templateID string) ([]domain.TemplateExercise, error) {
	rows, err := sqlite.Q(ctx, s.db).QueryContext(ctx, `
SELECT id, template_id, name, order_index, uses_weight
FROM template_exercises
WHERE template_id = ?
ORDER BY order_index`, templateID)
	if err != nil {
		return nil, fmt.Errorf("load template exercises: %w", err)
	}
	defer rows.Close()

	var exercises []domain.TemplateExercise
	for rows.Next() {
		var exercise domain.TemplateExercise
		var usesWeight int
		if err := rows.Scan(&exercise.ID, &exercise.TemplateID, &exercise.Name, &exercise.OrderIndex, &usesWeight); err != nil {
			return nil, fmt.Errorf("scan template exercise: %w", err)
		}
		exercise.UsesWeight = usesWeight != 0
		exercises = append(exercises, exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load template exercises: %w", err)
	}
	return exercises, nil
}

func scanTemplate(rows *sql.Rows) (domain.WorkoutTemplate, error) {
	var template domain.WorkoutTemplate
	var createdAt string
	if err := rows.Scan(&template.ID, &template.Name, &createdAt); err != nil {
		return domain.WorkoutTemplate{}, fmt.Errorf("scan template: %w", err)
	}
	parsed, err := parseTime(createdAt)
	if err != nil {
		return domain.WorkoutTemplate{}, err
	}
	template.CreatedAt = parsed
	return template, nil
}

func parseTime(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return parsed, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
