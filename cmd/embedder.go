package cmd

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-fit/internal/ai"
	"github.com/spigell/resume-fit/internal/ai/gemini"
	"github.com/spigell/resume-fit/internal/ai/openai"
	"github.com/spigell/resume-fit/internal/secrets"
)

// newEmbedder returns nil when embeddings are disabled, so the matcher
// scores semantics lexically.
func newEmbedder(cfg EmbedderConfig, logger *zap.Logger) (*ai.Lazy, error) {
	if !cfg.Enabled {
		logger.Info("embedder disabled, semantic similarity uses lexical overlap")
		return nil, nil
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	var factory ai.Factory

	switch provider {
	case "", gemini.Provider:
		factory = func(ctx context.Context) (ai.Embedder, error) {
			apiKey, err := loadAPIKey(cfg, "gemini api key", "GEMINI_API_KEY")
			if err != nil {
				return nil, err
			}
			e, err := gemini.New(ctx, gemini.Config{
				APIKey:     apiKey,
				Model:      cfg.Model,
				MaxRetries: cfg.MaxRetries,
				Dimensions: cfg.Dimensions,
			}, logger)
			if err != nil {
				return nil, err
			}
			return wrap(e, cfg.Serialize), nil
		}
	case openai.Provider:
		factory = func(_ context.Context) (ai.Embedder, error) {
			apiKey, err := loadAPIKey(cfg, "openai api key", "OPENAI_API_KEY")
			if err != nil {
				return nil, err
			}
			e, err := openai.New(openai.Config{
				APIKey:     apiKey,
				BaseURL:    cfg.BaseURL,
				Model:      cfg.Model,
				MaxRetries: cfg.MaxRetries,
				Dimensions: cfg.Dimensions,
			}, logger)
			if err != nil {
				return nil, err
			}
			return wrap(e, cfg.Serialize), nil
		}
	default:
		return nil, fmt.Errorf("unsupported embedder provider: %s", cfg.Provider)
	}

	return ai.NewLazy(factory, logger.With(zap.String("provider", provider))), nil
}

func loadAPIKey(cfg EmbedderConfig, name, env string) (string, error) {
	key, err := secrets.Load(secrets.Source{
		Name:  name,
		File:  cfg.APIKeyFile,
		Env:   env,
		Value: cfg.APIKey,
	})
	if err != nil {
		return "", fmt.Errorf("%w (set embedder.api-key-file or %s)", err, env)
	}
	return key, nil
}

func wrap(e ai.Embedder, serialize bool) ai.Embedder {
	if serialize {
		return ai.Serialize(e)
	}
	return e
}
