package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-analyzer/internal/analyses"
	"resume-analyzer/internal/llm"
	"resume-analyzer/internal/llm/gemini"
	"resume-analyzer/internal/shared/config"
	"resume-analyzer/internal/shared/server"
	"resume-analyzer/internal/shared/storage/db"
	"resume-analyzer/internal/users"
)

// App holds shared dependencies wired at startup.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	LLM    llm.Client

	AnalysesRepo    analyses.Repo
	UsersRepo       users.Repo
	AnalysesService *analyses.Service
	UsersService    *users.Service
	AnalysisHandler *analyses.Handler
	UsersHandler    *users.Handler
}

// Build prepares dependencies and the router. In dev, a missing or failing
// database falls back to in-memory repositories; in production it is fatal.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		LLM:    llmClient,
	}

	if sqlDB != nil {
		app.AnalysesRepo = &analyses.PGRepo{DB: sqlDB}
		app.UsersRepo = &users.PGRepo{DB: sqlDB}
	} else {
		app.AnalysesRepo = analyses.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	app.AnalysesService = &analyses.Service{Repo: app.AnalysesRepo, LLM: app.LLM}
	app.UsersService = users.NewService(app.UsersRepo)
	app.AnalysisHandler = analyses.NewHandler(app.AnalysesService)
	app.UsersHandler = users.NewHandler(app.UsersService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:          app.Config,
		AnalysisHandler: app.AnalysisHandler,
		UserHandler:     app.UsersHandler,
	})

	return app, nil
}

// Close releases held connections.
func (a *App) Close() {
	if a.DB != nil {
		_ = a.DB.Close()
	}
	if closer, ok := a.LLM.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: GEMINI_API_KEY empty; analyses will fail until configured")
			return llm.PlaceholderClient{}, nil
		}
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
