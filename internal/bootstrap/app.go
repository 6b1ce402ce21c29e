// Package bootstrap builds the application graph: storage backend selection,
// services, handlers and the router.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"healthtrack-backend/internal/analysis"
	googleauth "healthtrack-backend/internal/auth"
	"healthtrack-backend/internal/dashboard"
	"healthtrack-backend/internal/documents"
	"healthtrack-backend/internal/records"
	sharedauth "healthtrack-backend/internal/shared/auth"
	"healthtrack-backend/internal/shared/config"
	"healthtrack-backend/internal/shared/server"
	"healthtrack-backend/internal/shared/storage/db"
	"healthtrack-backend/internal/shared/telemetry"
	"healthtrack-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	// Backend is "postgres" or "memory"; fixed for the process lifetime.
	Backend string

	Tokens *sharedauth.Tokens

	UsersRepo     users.Repo
	DocumentsRepo documents.Repo
	RecordsRepo   records.Repo

	UsersService     *users.Service
	DocumentsService *documents.Service
	AnalysisService  *analysis.Service
	RecordsService   *records.Service
	DashboardService *dashboard.Service

	UsersHandler     *users.Handler
	DocumentsHandler *documents.Handler
	AnalysisHandler  *analysis.Handler
	RecordsHandler   *records.Handler
	DashboardHandler *dashboard.Handler
	GoogleAuth       *googleauth.GoogleService
}

// Build prepares the full dependency graph. The storage backend is selected
// exactly once here: a reachable, migrated Postgres, or the in-memory
// fallback for the rest of the process lifetime.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	app := &App{Config: cfg}

	app.DB = buildDB(ctx, cfg)
	if app.DB != nil {
		app.Backend = "postgres"
	} else {
		app.Backend = "memory"
	}

	tokens, err := sharedauth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("bootstrap tokens: %w", err)
	}
	app.Tokens = tokens

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Tokens:           app.Tokens,
		CORSAllowOrigin:  cfg.CORSAllowOrigin,
		Backend:          app.Backend,
		UserHandler:      app.UsersHandler,
		DocumentHandler:  app.DocumentsHandler,
		AnalysisHandler:  app.AnalysisHandler,
		RecordHandler:    app.RecordsHandler,
		DashboardHandler: app.DashboardHandler,
		GoogleAuth:       app.GoogleAuth,
	})

	return app, nil
}

// buildDB connects and migrates, or returns nil to select the in-memory
// backend. Connection failures are absorbed here and never surface to
// request handling.
func buildDB(ctx context.Context, cfg config.Config) *sql.DB {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		telemetry.Warn("bootstrap.memory_backend", map[string]any{
			"reason": "DATABASE_URL empty",
		})
		return nil
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	opts.PingTimeout = cfg.DBConnectTimeout
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		telemetry.Warn("bootstrap.memory_backend", map[string]any{
			"reason": "database connect failed",
			"error":  err.Error(),
		})
		return nil
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		telemetry.Warn("bootstrap.memory_backend", map[string]any{
			"reason": "migrations failed",
			"error":  err.Error(),
		})
		sqlDB.Close()
		return nil
	}

	return sqlDB
}

func buildServices(app *App) {
	if app.DB != nil {
		app.UsersRepo = users.NewPGRepo(app.DB)
		app.DocumentsRepo = documents.NewPGRepo(app.DB)
		app.RecordsRepo = records.NewPGRepo(app.DB)
	} else {
		app.UsersRepo = users.NewMemoryRepo()
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.RecordsRepo = records.NewMemoryRepo()
	}

	app.UsersService = users.NewService(app.UsersRepo, app.Tokens)
	app.DocumentsService = documents.NewService(app.DocumentsRepo)
	app.RecordsService = records.NewService(app.RecordsRepo)
	app.DashboardService = dashboard.NewService(app.DocumentsService)

	client := analysis.NewGeminiClient(app.Config.GeminiBaseURL, app.Config.GeminiModel)
	app.AnalysisService = analysis.NewService(app.UsersService, app.DocumentsService, client)

	app.UsersHandler = users.NewHandler(app.UsersService)
	app.DocumentsHandler = documents.NewHandler(app.DocumentsService)
	app.AnalysisHandler = analysis.NewHandler(app.AnalysisService)
	app.RecordsHandler = records.NewHandler(app.RecordsService)
	app.DashboardHandler = dashboard.NewHandler(app.DashboardService)

	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)
}
