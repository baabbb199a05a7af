// Package openai embeds text through any OpenAI compatible embeddings endpoint.
package openai

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/spigell/resume-fit/internal/ai"
	"github.com/spigell/resume-fit/internal/logger"
)

const (
	Provider = "openai"

	defaultModel = "text-embedding-3-small"
)

// Config describes the endpoint and model.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	MaxRetries int
	Dimensions int
}

// Embedder implements ai.Embedder with the openai-go client.
type Embedder struct {
	client     *openai.Client
	model      string
	dimensions int
	logger     *zap.Logger
}

func New(cfg Config, log *zap.Logger) (*Embedder, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		if !strings.HasSuffix(base, "/") {
			base += "/"
		}
		opts = append(opts, option.WithBaseURL(base))
	}
	if cfg.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(cfg.MaxRetries))
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	return &Embedder{
		client:     openai.NewClient(opts...),
		model:      model,
		dimensions: cfg.Dimensions,
		logger:     logger.WithCommonFields(log, Provider, model),
	}, nil
}

func (e *Embedder) Provider() string { return Provider }
func (e *Embedder) Model() string { return e.model }

// Embed returns one normalized vector per text, ordered like texts.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if e == nil || e.client == nil {
		return nil, ai.ErrUnavailable
	}
	if len(texts) == 0 {
		return nil, nil
	}

	params := openai.EmbeddingNewParams{
		Input: openai.F[openai.EmbeddingNewParamsInputUnion](openai.EmbeddingNewParamsInputArrayOfStrings(texts)),
		Model: openai.F(openai.EmbeddingModel(e.model)),
	}
	if e.dimensions > 0 {
		params.Dimensions = openai.F(int64(e.dimensions))
	}

	resp, err := e.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create embeddings: %w", err)
	}
	if resp == nil || len(resp.Data) == 0 {
		return nil, ai.ErrEmptyEmbedding
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("endpoint returned %d embeddings for %d texts", len(resp.Data), len(texts))
	}

	data := resp.Data
	sort.SliceStable(data, func(i, j int) bool { return data[i].Index < data[j].Index })

	out := make([][]float32, len(data))
	for i, item := range data {
		if len(item.Embedding) == 0 {
			return nil, ai.ErrEmptyEmbedding
		}
		vec := make([]float32, len(item.Embedding))
		for j, v := range item.Embedding {
			vec[j] = float32(v)
		}
		out[i] = ai.Normalize(vec)
	}

	e.logger.Debug("embeddings created", zap.Int("texts", len(texts)))
	return out, nil
}
