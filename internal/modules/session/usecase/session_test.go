package usecase_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"ironlog/internal/bootstrap"
	sessionoutadapter "ironlog/internal/modules/session/adapter/out"
	sessiondto "ironlog/internal/modules/session/dto"
	sessionin "ironlog/internal/modules/session/port/in"
	sessionservice "ironlog/internal/modules/session/service"
	sessionusecase "ironlog/internal/modules/session/usecase"
	templateoutadapter "ironlog/internal/modules/template/adapter/out"
	templatedto "ironlog/internal/modules/template/dto"
	templatein "ironlog/internal/modules/template/port/in"
	templateservice "ironlog/internal/modules/template/service"
	templateusecase "ironlog/internal/modules/template/usecase"
	timeroutadapter "ironlog/internal/modules/timer/adapter/out"
	timerservice "ironlog/internal/modules/timer/service"
	timerusecase "ironlog/internal/modules/timer/usecase"
	apperrors "ironlog/internal/platform/errors"
	"ironlog/internal/platform/sqlite"
	"ironlog/internal/platform/tx"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type sequentialIDs struct {
	n int
}

func (g *sequentialIDs) New() string {
	g.n++
	return fmt.Sprintf("id-%04d", g.n)
}

type fixture struct {
	clock     *fakeClock
	sessions  sessionin.Usecase
	templates templatein.Usecase
	db        *sql.DB
}

// newFixture wires the full session stack over a real store in a temp dir,
// with a controllable clock.
func newFixture(t *testing.T) fixture {
	t.Helper()
	return newFixtureWithManager(t, nil)
}

// newFixtureWithManager swaps the transaction manager; nil means the real
// SQLite one.
func newFixtureWithManager(t *testing.T, txm tx.Manager) fixture {
	t.Helper()

	clk := &fakeClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	ids := &sequentialIDs{}

	db, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := sqlite.Migrate(context.Background(), db, bootstrap.Migrations(clk, ids)); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	templateStore := templateoutadapter.NewSQLiteTemplateStore(db)
	templates := templateusecase.NewInteractor(
		templateservice.NewTemplateService(clk, ids, templateStore),
		templateStore,
	)
	timer := timerusecase.NewInteractor(
		timerservice.NewTimerService(clk, timeroutadapter.NewSQLiteStateStore(db)),
	)
	if txm == nil {
		txm = sqlite.NewTxManager(db)
	}
	sessionStore := sessionoutadapter.NewSQLiteSessionStore(db)
	sessions := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids, sessionStore),
		templates,
		timer,
		sessionStore,
		sessionoutadapter.NewSQLiteAppStateStore(db),
		txm,
	)
	return fixture{clock: clk, sessions: sessions, templates: templates, db: db}
}

func (f fixture) createTemplate(t *testing.T, name string, exercises []templatedto.ExerciseSpec) templatedto.TemplateOutput {
	t.Helper()
	template, err := f.templates.Create(context.Background(), templatedto.CreateInput{Name: name, Exercises: exercises})
	if err != nil {
		t.Fatalf("create template: %v", err)
	}
	return template
}

func TestStartFromTemplateCopiesExercises(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	template := f.createTemplate(t, "Push Day", []templatedto.ExerciseSpec{
		{Name: "Bench Press"},
		{Name: "Pull-ups", Bodyweight: true},
	})

	out, err := f.sessions.Start(ctx, sessiondto.StartInput{TemplateID: template.ID})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if out.TemplateName != "Push Day" {
		t.Fatalf("TemplateName = %q", out.TemplateName)
	}
	if len(out.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(out.Exercises))
	}
	if out.Exercises[0].Name != "Bench Press" || !out.Exercises[0].UsesWeight {
		t.Fatalf("exercise 0 = %+v", out.Exercises[0])
	}
	if out.Exercises[1].Name != "Pull-ups" || out.Exercises[1].UsesWeight {
		t.Fatalf("exercise 1 = %+v", out.Exercises[1])
	}

	// Session exercises are copies; deleting the template must not touch them.
	if err := f.templates.Delete(ctx, template.ID); err != nil {
		t.Fatalf("delete template: %v", err)
	}
	status, err := f.sessions.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(status.Exercises) != 2 {
		t.Fatalf("exercises after template delete = %d, want 2", len(status.Exercises))
	}
}

func TestLifecycleWithNoopTransactionManager(t *testing.T) {
	t.Parallel()

	// The usecase only depends on the tx.Manager contract; the pass-through
	// manager runs every write as its own statement and the flow still holds.
	f := newFixtureWithManager(t, tx.NoopManager{})
	ctx := context.Background()

	start, err := f.sessions.Start(ctx, sessiondto.StartInput{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	f.clock.advance(time.Minute)
	finished, err := f.sessions.Finish(ctx, sessiondto.FinishInput{})
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if finished.SessionID != start.SessionID || finished.DurationSeconds != 60 {
		t.Fatalf("finished = %+v", finished)
	}
	if _, err := f.sessions.Status(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("Status after finish: err = %v, want ErrNoActiveSession", err)
	}
}

func TestStartWithLastTemplate(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	// Nothing used yet.
	if _, err := f.sessions.Start(ctx, sessiondto.StartInput{UseLast: true}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Start --last with no history: err = %v, want ErrNotFound", err)
	}

	template := f.createTemplate(t, "Leg Day", []templatedto.ExerciseSpec{{Name: "Squats"}})
	if _, err := f.sessions.Start(ctx, sessiondto.StartInput{TemplateID: template.ID}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := f.sessions.Finish(ctx, sessiondto.FinishInput{}); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	out, err := f.sessions.Start(ctx, sessiondto.StartInput{UseLast: true})
	if err != nil {
		t.Fatalf("Start --last: %v", err)
	}
	if out.TemplateName != "Leg Day" {
		t.Fatalf("TemplateName = %q, want Leg Day", out.TemplateName)
	}
	if len(out.Exercises) != 1 || out.Exercises[0].Name != "Squats" {
		t.Fatalf("exercises = %+v", out.Exercises)
	}
}

func TestStartRejectsSecondActiveSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.sessions.Start(ctx, sessiondto.StartInput{}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := f.sessions.Start(ctx, sessiondto.StartInput{}); !errors.Is(err, apperrors.ErrActiveSessionExists) {
		t.Fatalf("second Start: err = %v, want ErrActiveSessionExists", err)
	}
}

func TestFinishUsesTimerDuration(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	start, err := f.sessions.Start(ctx, sessiondto.StartInput{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	exercise, err := f.sessions.AddExercise(ctx, sessiondto.AddExerciseInput{Name: "Squats"})
	if err != nil {
		t.Fatalf("AddExercise: %v", err)
	}
	weight := 100.0
	if _, err := f.sessions.LogSet(ctx, sessiondto.LogSetInput{ExerciseID: exercise.ID, Reps: 5, Weight: &weight}); err != nil {
		t.Fatalf("LogSet: %v", err)
	}

	f.clock.advance(10 * time.Minute)
	if _, err := f.sessions.Pause(ctx); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	f.clock.advance(30 * time.Minute) // rest break, excluded from duration
	if _, err := f.sessions.Resume(ctx); err != nil {
		t.Fatalf("Resume: %v", err)
	}
	f.clock.advance(5 * time.Minute)

	finished, err := f.sessions.Finish(ctx, sessiondto.FinishInput{Notes: "short one"})
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if finished.DurationSeconds != 15*60 {
		t.Fatalf("duration = %d, want %d", finished.DurationSeconds, 15*60)
	}
	if finished.TotalSets != 1 || finished.TotalReps != 5 || finished.TotalVolume != 500 {
		t.Fatalf("totals = %+v", finished)
	}

	if _, err := f.sessions.Status(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("Status after finish: err = %v, want ErrNoActiveSession", err)
	}

	detail, err := f.sessions.Get(ctx, start.SessionID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if detail.Active {
		t.Fatalf("finished session still active")
	}
	if detail.Notes != "short one" {
		t.Fatalf("notes = %q", detail.Notes)
	}
	if detail.DurationSeconds != 15*60 {
		t.Fatalf("persisted duration = %d, want %d", detail.DurationSeconds, 15*60)
	}
}

func TestAbandonDeletesSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	start, err := f.sessions.Start(ctx, sessiondto.StartInput{})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := f.sessions.Abandon(ctx); err != nil {
		t.Fatalf("Abandon: %v", err)
	}
	if _, err := f.sessions.Get(ctx, start.SessionID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("Get abandoned: err = %v, want ErrNotFound", err)
	}
	// A new session can start right away.
	if _, err := f.sessions.Start(ctx, sessiondto.StartInput{}); err != nil {
		t.Fatalf("Start after abandon: %v", err)
	}
}

func TestLogSetValidation(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.sessions.Start(ctx, sessiondto.StartInput{}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	bodyweight, err := f.sessions.AddExercise(ctx, sessiondto.AddExerciseInput{Name: "Pull-ups", Bodyweight: true})
	if err != nil {
		t.Fatalf("AddExercise: %v", err)
	}

	if _, err := f.sessions.LogSet(ctx, sessiondto.LogSetInput{ExerciseID: bodyweight.ID, Reps: 0}); err == nil {
		t.Fatal("zero reps accepted")
	}
	if _, err := f.sessions.LogSet(ctx, sessiondto.LogSetInput{ExerciseID: "missing", Reps: 5}); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown exercise: err = %v, want ErrNotFound", err)
	}

	// Weight on a bodyweight exercise is dropped, not an error.
	weight := 20.0
	set, err := f.sessions.LogSet(ctx, sessiondto.LogSetInput{ExerciseID: bodyweight.ID, Reps: 10, Weight: &weight})
	if err != nil {
		t.Fatalf("LogSet: %v", err)
	}
	if set.Weight != nil {
		t.Fatalf("bodyweight set kept weight %v", *set.Weight)
	}
}

func TestDeleteSetAndRemoveExercise(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.sessions.Start(ctx, sessiondto.StartInput{}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	exercise, err := f.sessions.AddExercise(ctx, sessiondto.AddExerciseInput{Name: "Rows"})
	if err != nil {
		t.Fatalf("AddExercise: %v", err)
	}
	set, err := f.sessions.LogSet(ctx, sessiondto.LogSetInput{ExerciseID: exercise.ID, Reps: 8})
	if err != nil {
		t.Fatalf("LogSet: %v", err)
	}

	if err := f.sessions.DeleteSet(ctx, set.SetID); err != nil {
		t.Fatalf("DeleteSet: %v", err)
	}
	if err := f.sessions.DeleteSet(ctx, set.SetID); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("second DeleteSet: err = %v, want ErrNotFound", err)
	}

	if err := f.sessions.RemoveExercise(ctx, exercise.ID); err != nil {
		t.Fatalf("RemoveExercise: %v", err)
	}
	status, err := f.sessions.Status(ctx)
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if len(status.Exercises) != 0 {
		t.Fatalf("exercises = %d, want 0", len(status.Exercises))
	}
}

func TestLastWeight(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.sessions.Start(ctx, sessiondto.StartInput{}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	exercise, err := f.sessions.AddExercise(ctx, sessiondto.AddExerciseInput{Name: "Bench Press"})
	if err != nil {
		t.Fatalf("AddExercise: %v", err)
	}

	if _, ok, err := f.sessions.LastWeight(ctx, "Bench Press"); err != nil || ok {
		t.Fatalf("LastWeight before sets: ok = %v, err = %v", ok, err)
	}

	for _, w := range []float64{135, 145} {
		weight := w
		f.clock.advance(time.Minute)
		if _, err := f.sessions.LogSet(ctx, sessiondto.LogSetInput{ExerciseID: exercise.ID, Reps: 5, Weight: &weight}); err != nil {
			t.Fatalf("LogSet: %v", err)
		}
	}

	weight, ok, err := f.sessions.LastWeight(ctx, "Bench Press")
	if err != nil {
		t.Fatalf("LastWeight: %v", err)
	}
	if !ok || weight != 145 {
		t.Fatalf("LastWeight = %v, %v; want 145, true", weight, ok)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		start, err := f.sessions.Start(ctx, sessiondto.StartInput{})
		if err != nil {
			t.Fatalf("Start: %v", err)
		}
		ids = append(ids, start.SessionID)
		f.clock.advance(time.Minute)
		if _, err := f.sessions.Finish(ctx, sessiondto.FinishInput{}); err != nil {
			t.Fatalf("Finish: %v", err)
		}
		f.clock.advance(time.Hour)
	}

	history, err := f.sessions.History(ctx, 2)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history = %d entries, want 2", len(history))
	}
	if history[0].SessionID != ids[2] || history[1].SessionID != ids[1] {
		t.Fatalf("history order = %s, %s; want %s, %s", history[0].SessionID, history[1].SessionID, ids[2], ids[1])
	}
	if history[0].DurationSeconds != 60 {
		t.Fatalf("duration = %d, want 60", history[0].DurationSeconds)
	}
}

func TestHistoryRejectsNonPositiveLimit(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	for _, limit := range []int{0, -1} {
		if _, err := f.sessions.History(ctx, limit); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("History(%d): err = %v, want ErrInvalidInput", limit, err)
		}
	}
}

func TestOperationsWithoutActiveSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.sessions.Status(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("Status: err = %v, want ErrNoActiveSession", err)
	}
	if _, err := f.sessions.Finish(ctx, sessiondto.FinishInput{}); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("Finish: err = %v, want ErrNoActiveSession", err)
	}
	if err := f.sessions.Abandon(ctx); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("Abandon: err = %v, want ErrNoActiveSession", err)
	}
	if _, err := f.sessions.AddExercise(ctx, sessiondto.AddExerciseInput{Name: "Rows"}); !errors.Is(err, apperrors.ErrNoActiveSession) {
		t.Fatalf("AddExercise: err = %v, want ErrNoActiveSession", err)
	}
}

func TestPauseResumeRequireRunningTimer(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	if _, err := f.sessions.Start(ctx, sessiondto.StartInput{}); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := f.sessions.Resume(ctx); !errors.Is(err, apperrors.ErrTimerNotPaused) {
		t.Fatalf("Resume while running: err = %v, want ErrTimerNotPaused", err)
	}
	if _, err := f.sessions.Pause(ctx); err != nil {
		t.Fatalf("Pause: %v", err)
	}
	if _, err := f.sessions.Pause(ctx); !errors.Is(err, apperrors.ErrTimerNotRunning) {
		t.Fatalf("second Pause: err = %v, want ErrTimerNotRunning", err)
	}
}
