package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	exportinadapter "ironlog/internal/modules/export/adapter/in"
	exportoutadapter "ironlog/internal/modules/export/adapter/out"
	exportservice "ironlog/internal/modules/export/service"
	exportusecase "ironlog/internal/modules/export/usecase"
	sessioninadapter "ironlog/internal/modules/session/adapter/in"
	sessionoutadapter "ironlog/internal/modules/session/adapter/out"
	sessionservice "ironlog/internal/modules/session/service"
	sessionusecase "ironlog/internal/modules/session/usecase"
	templateinadapter "ironlog/internal/modules/template/adapter/in"
	templateoutadapter "ironlog/internal/modules/template/adapter/out"
	templateservice "ironlog/internal/modules/template/service"
	templateusecase "ironlog/internal/modules/template/usecase"
	timeroutadapter "ironlog/internal/modules/timer/adapter/out"
	timerservice "ironlog/internal/modules/timer/service"
	timerusecase "ironlog/internal/modules/timer/usecase"
	"ironlog/internal/platform/clock"
	"ironlog/internal/platform/config"
	"ironlog/internal/platform/id"
	"ironlog/internal/platform/sqlite"
)

type App struct {
	TemplateCLI templateinadapter.CLIHandler
	SessionCLI  sessioninadapter.CLIHandler
	ExportCLI   exportinadapter.CLIHandler

	db *sql.DB
}

// New opens the store and runs pending migrations before wiring anything
// else; no component touches the database ahead of the schema check.
func New(cfg config.Config) (*App, error) {
	clk := clock.SystemClock{}
	ids := id.UUID{}

	db, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	if err := sqlite.Migrate(context.Background(), db, Migrations(clk, ids)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}
	txm := sqlite.NewTxManager(db)

	templateStore := templateoutadapter.NewSQLiteTemplateStore(db)
	templateUC := templateusecase.NewInteractor(
		templateservice.NewTemplateService(clk, ids, templateStore),
		templateStore,
	)

	timerUC := timerusecase.NewInteractor(
		timerservice.NewTimerService(clk, timeroutadapter.NewSQLiteStateStore(db)),
	)

	sessionStore := sessionoutadapter.NewSQLiteSessionStore(db)
	stateStore := sessionoutadapter.NewSQLiteAppStateStore(db)
	sessionUC := sessionusecase.NewInteractor(
		sessionservice.NewSessionService(clk, ids, sessionStore),
		templateUC,
		timerUC,
		sessionStore,
		stateStore,
		txm,
	)

	exportUC := exportusecase.NewInteractor(
		exportservice.NewExportService(exportoutadapter.NewSessionUsecaseSource(sessionUC)),
		cfg.ExportDir,
	)

	return &App{
		TemplateCLI: templateinadapter.NewCLIHandler(templateUC),
		SessionCLI:  sessioninadapter.NewCLIHandler(sessionUC),
		ExportCLI:   exportinadapter.NewCLIHandler(exportUC),
		db:          db,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

// ResetData removes the database files; the next New recreates and reseeds.
func ResetData(cfg config.Config) error {
	for _, path := range []string{cfg.DBPath, cfg.DBPath + "-wal", cfg.DBPath + "-shm"} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", path, err)
		}
	}
	return nil
}
