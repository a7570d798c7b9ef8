package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/sonnq3591/plg-hsdt/internal/config"
	"github.com/sonnq3591/plg-hsdt/internal/pipeline"
	"github.com/sonnq3591/plg-hsdt/pkg/llm"
	"github.com/sonnq3591/plg-hsdt/pkg/llm/openai"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
	"github.com/sonnq3591/plg-hsdt/pkg/pdftext"
	"github.com/sonnq3591/plg-hsdt/pkg/prompt"
	"github.com/sonnq3591/plg-hsdt/pkg/storage/postgres"
)

// getPostgres creates a PostgreSQL client using configuration values and returns it
// along with a cleanup function to close the connection pool.
func getPostgres(ctx context.Context, cfg *config.Config) (*postgres.PgSQL, func()) {
	pgsql, err := postgres.New(ctx, postgres.Options{
		Username:           cfg.Database.Username,
		Password:           cfg.Database.Password,
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		Database:           cfg.Database.DatabaseName,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime:    cfg.Database.ConnMaxIdleTime,
		MaxOpenConnections: cfg.Database.MaxOpenConnections,
		MaxIdleConnections: cfg.Database.MaxIdleConnections,
		SslMode:            cfg.Database.SslMode,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create postgres storage", zap.Error(err))
	}

	return pgsql, func() {
		logger.Info(ctx, "closing postgres client...")
		if err = pgsql.Close(); err != nil {
			logger.Warn(ctx, "could not close postgres connection", zap.Error(err))
		}
	}
}

// getLLM builds the model client: the OpenAI client behind the shared rate
// limiter, with the redis response cache in front when a redis url is set.
func getLLM(ctx context.Context, cfg *config.Config) (llm.Client, func()) {
	api, err := openai.New(openai.Options{
		APIKey:     cfg.OpenAI.APIKey,
		BaseURL:    cfg.OpenAI.BaseURL,
		Model:      cfg.OpenAI.Model,
		Timeout:    cfg.OpenAI.Timeout,
		MaxRetries: cfg.OpenAI.MaxRetries,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create openai client", zap.Error(err))
	}

	var client llm.Client = llm.NewLimited(api, cfg.OpenAI.RequestsPerSecond, cfg.OpenAI.Burst)
	if cfg.Redis.URL == "" {
		return client, func() {}
	}

	cache, err := llm.NewRedisCache(ctx, cfg.Redis.URL)
	if err != nil {
		logger.Fatal(ctx, "could not connect to redis", zap.Error(err))
	}
	logger.Info(ctx, "model response cache enabled", zap.Duration("ttl", cfg.Redis.CacheTTL))

	return llm.NewCached(client, cache, cfg.OpenAI.Model, cfg.Redis.CacheTTL), func() {
		logger.Info(ctx, "closing redis client...")
		if err := cache.Close(); err != nil {
			logger.Warn(ctx, "could not close redis connection", zap.Error(err))
		}
	}
}

// getPipeline wires the pipeline with its extractor, prompts and model client.
func getPipeline(ctx context.Context, cfg *config.Config) (*pipeline.Pipeline, func()) {
	if err := cfg.Validate(); err != nil {
		logger.Fatal(ctx, "invalid config", zap.Error(err))
	}

	prompts, err := prompt.Load(cfg.Prompts.Path)
	if err != nil {
		logger.Fatal(ctx, "could not load prompts", zap.Error(err))
	}

	client, closeLLM := getLLM(ctx, cfg)

	return pipeline.New(client,
		pdftext.New(pdftext.Options{PDFToTextPath: cfg.Pipeline.PDFToTextPath}),
		prompts,
		pipeline.Options{
			TemplatesDir:  cfg.Templates.Dir,
			Concurrency:   cfg.Pipeline.Concurrency,
			StepsFallback: cfg.Pipeline.StepsFallback,
		}), closeLLM
}
