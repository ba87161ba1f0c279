package domain

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Session is the export view of a workout session, decoupled from the
// session module's own model.
type Session struct {
	ID              string
	TemplateID      string
	TemplateName    string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int
	Notes           string
	Exercises       []Exercise
}

type Exercise struct {
	Name       string
	OrderIndex int
	UsesWeight bool
	Sets       []Set
}

type Set struct {
	Reps      int
	Weight    *float64
	CreatedAt time.Time
}

// Document mirrors the documented JSON export shape; field order matters.
type Document struct {
	SessionID       string             `json:"session_id"`
	TemplateID      *string            `json:"template_id"`
	TemplateName    *string            `json:"template_name"`
	StartedAt       string             `json:"started_at"`
	EndedAt         *string            `json:"ended_at"`
	DurationSeconds *int               `json:"duration_seconds"`
	Notes           *string            `json:"notes"`
	Exercises       []ExerciseDocument `json:"exercises"`
	Summary         Summary            `json:"summary"`
}

type ExerciseDocument struct {
	Name       string        `json:"name"`
	OrderIndex int           `json:"order_index"`
	UsesWeight bool          `json:"uses_weight"`
	Sets       []SetDocument `json:"sets"`
}

type SetDocument struct {
	Reps      int      `json:"reps"`
	Weight    *float64 `json:"weight"`
	CreatedAt string   `json:"created_at"`
}

type Summary struct {
	TotalExercises int     `json:"total_exercises"`
	TotalSets      int     `json:"total_sets"`
	TotalReps      int     `json:"total_reps"`
	TotalVolume    float64 `json:"total_volume"`
}

func BuildDocument(session Session) Document {
	doc := Document{
		SessionID:    session.ID,
		TemplateID:   optional(session.TemplateID),
		TemplateName: optional(session.TemplateName),
		StartedAt:    session.StartedAt.Format(time.RFC3339),
		Notes:        optional(session.Notes),
		Exercises:    make([]ExerciseDocument, 0, len(session.Exercises)),
	}
	if !session.EndedAt.IsZero() {
		ended := session.EndedAt.Format(time.RFC3339)
		doc.EndedAt = &ended
		duration := session.DurationSeconds
		doc.DurationSeconds = &duration
	}

	totalSets, totalReps := 0, 0
	totalVolume := 0.0
	for _, exercise := range session.Exercises {
		exerciseDoc := ExerciseDocument{
			Name:       exercise.Name,
			OrderIndex: exercise.OrderIndex,
			UsesWeight: exercise.UsesWeight,
			Sets:       make([]SetDocument, 0, len(exercise.Sets)),
		}
		for _, set := range exercise.Sets {
			exerciseDoc.Sets = append(exerciseDoc.Sets, SetDocument{
				Reps:      set.Reps,
				Weight:    set.Weight,
				CreatedAt: set.CreatedAt.Format(time.RFC3339),
			})
			totalSets++
			totalReps += set.Reps
			if set.Weight != nil {
				totalVolume += *set.Weight * float64(set.Reps)
			}
		}
		doc.Exercises = append(doc.Exercises, exerciseDoc)
	}
	doc.Summary = Summary{
		TotalExercises: len(session.Exercises),
		TotalSets:      totalSets,
		TotalReps:      totalReps,
		TotalVolume:    totalVolume,
	}
	return doc
}

func RenderJSON(session Session) (string, error) {
	payload, err := json.MarshalIndent(BuildDocument(session), "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal export: %w", err)
	}
	return string(payload), nil
}

// RenderCSV writes one row per set under the documented header. Weight is
// empty for bodyweight sets.
func RenderCSV(session Session) (string, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.Write([]string{"exercise", "set_number", "reps", "weight", "created_at"}); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, exercise := range session.Exercises {
		for n, set := range exercise.Sets {
			weight := ""
			if set.Weight != nil {
				weight = strconv.FormatFloat(*set.Weight, 'g', -1, 64)
			}
			row := []string{
				exercise.Name,
				strconv.Itoa(n + 1),
				strconv.Itoa(set.Reps),
				weight,
				set.CreatedAt.Format(time.RFC3339),
			}
			if err := writer.Write(row); err != nil {
				return "", fmt.Errorf("write csv row: %w", err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return buf.String(), nil
}

// Filename builds ironlog_<name>_<yyyy-mm-dd>.<ext>, stripping characters
// that do not belong in a filename.
func Filename(session Session, extension string) string {
	name := session.TemplateName
	if name == "" {
		name = "Workout"
	}
	var safe strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			safe.WriteRune(r)
		case r == ' ':
			safe.WriteRune('_')
		case r == '-' || r == '_':
			safe.WriteRune(r)
		}
	}
	return fmt.Sprintf("ironlog_%s_%s.%s", safe.String(), session.StartedAt.Format("2006-01-02"), extension)
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
