package semantic

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-fit/internal/ai"
	"github.com/spigell/resume-fit/internal/scoring"
)

var errNoChunks = errors.New("no chunks to embed")

// Scorer compares resume and job description chunks through embeddings.
type Scorer struct {
	embedder ai.Embedder
	logger   *zap.Logger
}

func NewScorer(embedder ai.Embedder, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{embedder: embedder, logger: logger}
}

// Evaluate fails whenever the embedding signal cannot be trusted so that the
// caller can degrade to the lexical variant.
func (s *Scorer) Evaluate(ctx context.Context, resume, jd string) (scoring.Score, error) {
	if s == nil || s.embedder == nil {
		return scoring.Score{}, ai.ErrUnavailable
	}

	avg, err := s.Similarity(ctx, resume, jd)
	if err != nil {
		return scoring.Score{}, err
	}
	return scoring.Score{Value: Curve(avg)}, nil
}

// Similarity averages, over job description chunks, the best cosine
// similarity against any resume chunk. The result is within [0, 1]:
// negative similarities count as zero.
func (s *Scorer) Similarity(ctx context.Context, resume, jd string) (float64, error) {
	resumeChunks := Chunk(resume)
	jdChunks := Chunk(jd)
	if len(resumeChunks) == 0 || len(jdChunks) == 0 {
		return 0, errNoChunks
	}

	batch := make([]string, 0, len(resumeChunks)+len(jdChunks))
	batch = append(batch, resumeChunks...)
	batch = append(batch, jdChunks...)

	vectors, err := s.embedder.Embed(ctx, batch)
	if err != nil {
		return 0, fmt.Errorf("embed chunks: %w", err)
	}
	if err := ai.CheckDimensions(vectors); err != nil {
		return 0, err
	}
	if len(vectors) != len(batch) {
		return 0, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vectors), len(batch))
	}

	normalized := make([][]float32, len(vectors))
	for i, v := range vectors {
		normalized[i] = ai.Normalize(v)
	}
	resumeVecs := normalized[:len(resumeChunks)]
	jdVecs := normalized[len(resumeChunks):]

	total := 0.0
	for _, jv := range jdVecs {
		best := 0.0
		for _, rv := range resumeVecs {
			best = max(best, ai.Dot(jv, rv))
		}
		total += best
	}
	avg := min(total/float64(len(jdVecs)), 1)

	s.logger.Debug("semantic similarity computed",
		zap.Int("resume_chunks", len(resumeChunks)),
		zap.Int("jd_chunks", len(jdChunks)),
		zap.Float64("avg_similarity", avg),
	)

	return avg, nil
}

// Curve maps an average similarity onto a 0-100 score. Low similarity is
// penalized heavily and only strong similarity is rewarded.
func Curve(avg float64) float64 {
	switch {
	case avg < 0.3:
		return avg * 33
	case avg < 0.6:
		return 10 + (avg-0.3)*67
	case avg < 0.8:
		return 30 + (avg-0.6)*100
	default:
		return 50 + (avg-0.8)*150
	}
}
