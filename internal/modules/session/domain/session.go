package domain

import "time"

// Set is a single logged set. Weight is nil for bodyweight exercises.
type Set struct {
	ID                string
	SessionExerciseID string
	Reps              int
	Weight            *float64
	CreatedAt         time.Time
}

type SessionExercise struct {
	ID         string
	SessionID  string
	Name       string
	OrderIndex int
	UsesWeight bool
	Sets       []Set
}

// WorkoutSession is a workout in progress or completed. EndedAt is zero while
// the session is active.
type WorkoutSession struct {
	ID              string
	TemplateID      string
	TemplateName    string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int
	Notes           string
	Exercises       []SessionExercise
}

func (s WorkoutSession) IsActive() bool {
	return s.EndedAt.IsZero()
}

func (s WorkoutSession) TotalSets() int {
	total := 0
	for _, exercise := range s.Exercises {
		total += len(exercise.Sets)
	}
	return total
}

func (s WorkoutSession) TotalReps() int {
	total := 0
	for _, exercise := range s.Exercises {
		for _, set := range exercise.Sets {
			total += set.Reps
		}
	}
	return total
}

// TotalVolume is the sum of weight x reps over all weighted sets.
func (s WorkoutSession) TotalVolume() float64 {
	total := 0.0
	for _, exercise := range s.Exercises {
		for _, set := range exercise.Sets {
			if set.Weight != nil {
				total += *set.Weight * float64(set.Reps)
			}
		}
	}
	return total
}
