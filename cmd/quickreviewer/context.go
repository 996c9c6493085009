package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"quickreviewer/internal/config"
	"quickreviewer/internal/coordinator"
	"quickreviewer/internal/generation"
	"quickreviewer/internal/logging"
	"quickreviewer/internal/metadata"
	"quickreviewer/internal/metadata/omdb"
	"quickreviewer/internal/metadata/tmdb"
	"quickreviewer/internal/store"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// newLogger builds the configured logger, optionally teeing into the log
// directory for long-running commands.
func (c *commandContext) newLogger(logFile string) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	opts := logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}
	if logFile != "" {
		opts.OutputPaths = []string{"stdout", filepath.Join(cfg.Paths.LogDir, logFile)}
	}
	logger, err := logging.New(opts)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// pipeline wires the full review stack from configuration.
type pipeline struct {
	store       *store.Store
	coordinator *coordinator.Coordinator
}

func (c *commandContext) buildPipeline(logger *slog.Logger) (*pipeline, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}

	reviewStore, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open review store: %w", err)
	}

	primary, err := tmdb.New(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language)
	if err != nil {
		_ = reviewStore.Close()
		return nil, fmt.Errorf("build tmdb client: %w", err)
	}

	// OMDb is optional; without a key the resolver simply has no fallback.
	var fallback omdb.Lookup
	if strings.TrimSpace(cfg.OMDB.APIKey) != "" {
		client, omdbErr := omdb.New(cfg.OMDB.APIKey, cfg.OMDB.BaseURL)
		if omdbErr != nil {
			_ = reviewStore.Close()
			return nil, fmt.Errorf("build omdb client: %w", omdbErr)
		}
		fallback = client
	}

	resolver := metadata.NewResolver(primary, fallback, logger)
	generator := generation.NewClient(generation.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Model:          cfg.LLM.Model,
		Referer:        cfg.LLM.Referer,
		Title:          cfg.LLM.Title,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	})

	return &pipeline{
		store:       reviewStore,
		coordinator: coordinator.New(reviewStore, resolver, generator, logger),
	}, nil
}

func (p *pipeline) Close() error {
	if p == nil {
		return nil
	}
	return p.store.Close()
}
