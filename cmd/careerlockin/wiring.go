package main

import (
	"context"
	"fmt"

	"github.com/careerlockin/careerlockin/internal/config"
	"github.com/careerlockin/careerlockin/internal/db"
	"github.com/careerlockin/careerlockin/internal/linkcheck"
	"github.com/careerlockin/careerlockin/internal/llm"
	"github.com/careerlockin/careerlockin/internal/observability"
	"github.com/careerlockin/careerlockin/internal/pipeline"
)

// app bundles the wired collaborators a command needs to run the pipeline.
// Callers must invoke close when done.
type app struct {
	cfg       *config.Config
	database  *db.DB
	llmClient llm.Client
	generator *pipeline.Generator
}

func (a *app) close() {
	if a.llmClient != nil {
		_ = a.llmClient.Close()
	}
	if a.database != nil {
		a.database.Close()
	}
}

// buildApp loads and validates configuration, then wires the database, the
// model client, and the generation pipeline.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	observability.InitLogger("careerlockin", cfg.Environment)
	log := observability.GetLogger()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	modelCfg := llm.DefaultConfig()
	if cfg.RoadmapModel != "" {
		modelCfg = modelCfg.WithModel(cfg.RoadmapModel)
	}
	client, err := llm.NewClient(ctx, modelCfg, cfg.GeminiAPIKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}

	generator := pipeline.NewGenerator(
		client,
		database,
		database,
		database,
		linkcheck.NewVerifier(nil),
		*log,
	)

	return &app{
		cfg:       cfg,
		database:  database,
		llmClient: client,
		generator: generator,
	}, nil
}
