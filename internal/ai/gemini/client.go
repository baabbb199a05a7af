// Package gemini embeds text through the Google GenAI embedding endpoint.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/resume-fit/internal/ai"
	"github.com/spigell/resume-fit/internal/logger"
	"github.com/spigell/resume-fit/internal/utils"
)

const (
	Provider = "gemini"

	defaultModel      = "text-embedding-004"
	defaultMaxRetries = 3
	defaultBatchSize  = 100
	maxQuotaDelay     = 10 * time.Second
	retryBase         = 500 * time.Millisecond
	retryLimit        = 8 * time.Second
)

var (
	wait = utils.WaitFor

	retryAfterRe = regexp.MustCompile(`(?i)retry (?:after|in) (\d+(?:\.\d+)?)\s*s`)
)

type embedModels interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Config describes how to reach the embedding model.
type Config struct {
	APIKey     string
	Model      string
	MaxRetries int
	BatchSize  int
	// Dimensions truncates the output vectors when positive.
	Dimensions int
}

// Embedder implements ai.Embedder on top of Gemini embeddings.
type Embedder struct {
	models     embedModels
	model      string
	maxRetries int
	batchSize  int
	dimensions int
	logger     *zap.Logger
}

// New creates an Embedder configured for the Gemini API backend.
func New(ctx context.Context, cfg Config, log *zap.Logger) (*Embedder, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newEmbedder(client.Models, cfg, log), nil
}

func newEmbedder(models embedModels, cfg Config, log *zap.Logger) *Embedder {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}
	retries := cfg.MaxRetries
	if retries <= 0 {
		retries = defaultMaxRetries
	}
	batch := cfg.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}

	return &Embedder{
		models:     models,
		model:      model,
		maxRetries: retries,
		batchSize:  batch,
		dimensions: cfg.Dimensions,
		logger:     logger.WithCommonFields(log, Provider, model),
	}
}

func (e *Embedder) Provider() string { return Provider }

func (e *Embedder) Model() string {
	if e == nil {
		return ""
	}
	return e.model
}

// Embed returns one normalized vector per text.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if e == nil || e.models == nil {
		return nil, ai.ErrUnavailable
	}
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += e.batchSize {
		end := min(start+e.batchSize, len(texts))
		vectors, err := e.embedBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, vectors...)
	}

	return out, nil
}

func (e *Embedder) embedConfig() *genai.EmbedContentConfig {
	cfg := &genai.EmbedContentConfig{TaskType: "SEMANTIC_SIMILARITY"}
	if e.dimensions > 0 {
		cfg.OutputDimensionality = genai.Ptr(int32(e.dimensions))
	}
	return cfg
}

func (e *Embedder) embedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	var lastErr error
	for attempt := 1; attempt <= e.maxRetries; attempt++ {
		resp, err := e.models.EmbedContent(ctx, e.model, contents, e.embedConfig())
		if err == nil {
			return toVectors(resp, len(texts))
		}
		lastErr = err

		delay, retry := retryDelay(err, attempt)
		if !retry || attempt == e.maxRetries {
			break
		}

		e.logger.Warn("embedding request failed, retrying",
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)
		if err := wait(ctx, delay); err != nil {
			return nil, err
		}
	}

	return nil, fmt.Errorf("embed content: %w", lastErr)
}

func toVectors(resp *genai.EmbedContentResponse, want int) ([][]float32, error) {
	if resp == nil || len(resp.Embeddings) == 0 {
		return nil, ai.ErrEmptyEmbedding
	}
	if len(resp.Embeddings) != want {
		return nil, fmt.Errorf("gemini returned %d embeddings for %d texts", len(resp.Embeddings), want)
	}

	out := make([][]float32, len(resp.Embeddings))
	for i, emb := range resp.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, ai.ErrEmptyEmbedding
		}
		out[i] = ai.Normalize(emb.Values)
	}
	return out, nil
}

// retryDelay decides whether err is worth another attempt.
func retryDelay(err error, attempt int) (time.Duration, bool) {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		var apiErrPtr *genai.APIError
		if !errors.As(err, &apiErrPtr) || apiErrPtr == nil {
			return 0, false
		}
		apiErr = *apiErrPtr
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		if m := retryAfterRe.FindStringSubmatch(apiErr.Message); m != nil {
			secs, convErr := strconv.ParseFloat(m[1], 64)
			if convErr == nil {
				delay := time.Duration(secs * float64(time.Second))
				if delay > maxQuotaDelay {
					return 0, false
				}
				return delay, true
			}
		}
		return utils.Backoff(retryBase, retryLimit, attempt), true
	case apiErr.Code >= http.StatusInternalServerError:
		return utils.Backoff(retryBase, retryLimit, attempt), true
	default:
		return 0, false
	}
}
