package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/WandLZhang/chinese-conversation/internal/config"
	"github.com/WandLZhang/chinese-conversation/internal/evaluation"
	"github.com/WandLZhang/chinese-conversation/internal/platform/gemini"
	"github.com/WandLZhang/chinese-conversation/internal/platform/logger"
	"github.com/WandLZhang/chinese-conversation/internal/platform/postgres"
	"github.com/WandLZhang/chinese-conversation/internal/question"
	"github.com/WandLZhang/chinese-conversation/internal/speech"
	"github.com/WandLZhang/chinese-conversation/internal/store"
)

// application holds the wired dependencies for the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	vocabStore  store.VocabStore
	evaluator   *evaluation.Evaluator
	generator   *question.Generator
	synthesizer speech.Synthesizer
}

// initializeApp loads configuration and sets up application components:
// logging, database (with migrations applied), the Gemini clients, and the
// core services built on them.
func initializeApp(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	db, err := setupDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(db, log); err != nil {
		return nil, err
	}

	judge, err := gemini.NewJudge(ctx, log, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create judge: %w", err)
	}

	synthesizer, err := gemini.NewSynthesizer(ctx, log, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create synthesizer: %w", err)
	}

	extractor := evaluation.NewTargetExtractor(judge, log)
	vocabStore := postgres.NewPostgresVocabStore(db, log)
	dictStore := postgres.NewPostgresDictionaryStore(db, log)

	return &application{
		config:      cfg,
		logger:      log,
		db:          db,
		vocabStore:  vocabStore,
		evaluator:   evaluation.NewEvaluator(judge, extractor, log),
		generator:   question.NewGenerator(judge, extractor, dictStore, log),
		synthesizer: synthesizer,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Failed to close database connection", "error", err)
		}
	}
}
