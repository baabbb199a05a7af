// Package ranking scores one document against many and orders the results.
package ranking

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-fit/internal/matcher"
)

const defaultConcurrency = 4

// Analyzer is satisfied by *matcher.Matcher.
type Analyzer interface {
	Analyze(ctx context.Context, resume, jobDescription string) *matcher.Result
}

type Config struct {
	MinimumFitScore float64 `mapstructure:"minimum-fit-score"`
	Concurrency     int     `mapstructure:"concurrency"`
	Limit           int     `mapstructure:"limit"`
}

// Candidate is one side of a pairing: a job description when ranking jobs
// for a resume, a resume when ranking resumes for a job.
type Candidate struct {
	ID    string
	Title string
	Text  string
}

type Ranked struct {
	Candidate Candidate
	Result    *matcher.Result
}

type Ranker struct {
	analyzer Analyzer
	cfg      Config
	logger   *zap.Logger
}

func New(analyzer Analyzer, cfg Config, logger *zap.Logger) (*Ranker, error) {
	if analyzer == nil {
		return nil, fmt.Errorf("analyzer is required")
	}
	if cfg.MinimumFitScore < 0 || cfg.MinimumFitScore > matcher.MaxOverallScore {
		return nil, fmt.Errorf("minimum fit score must be between 0 and %v, got %v", matcher.MaxOverallScore, cfg.MinimumFitScore)
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Ranker{analyzer: analyzer, cfg: cfg, logger: logger}, nil
}

// RankJobs scores resume against every job description.
func (r *Ranker) RankJobs(ctx context.Context, resume string, jobs []Candidate) ([]Ranked, error) {
	return r.rank(ctx, jobs, func(ctx context.Context, c Candidate) *matcher.Result {
		return r.analyzer.Analyze(ctx, resume, c.Text)
	})
}

// RankResumes scores every resume against the job description.
func (r *Ranker) RankResumes(ctx context.Context, jobDescription string, resumes []Candidate) ([]Ranked, error) {
	return r.rank(ctx, resumes, func(ctx context.Context, c Candidate) *matcher.Result {
		return r.analyzer.Analyze(ctx, c.Text, jobDescription)
	})
}

func (r *Ranker) rank(ctx context.Context, candidates []Candidate, analyze func(context.Context, Candidate) *matcher.Result) ([]Ranked, error) {
	results := make([]*matcher.Result, len(candidates))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(r.cfg.Concurrency)

	for i, candidate := range candidates {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = analyze(gCtx, candidate)
			r.logger.Debug("candidate scored",
				zap.String("id", candidate.ID),
				zap.String("outcome", string(results[i].Outcome)),
				zap.Float64("overall", results[i].OverallScore),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("ranking interrupted: %w", err)
	}

	ranked := make([]Ranked, 0, len(candidates))
	for i, candidate := range candidates {
		res := results[i]
		if res == nil || res.OverallScore < r.cfg.MinimumFitScore {
			r.logger.Debug("candidate dropped below minimum fit score", zap.String("id", candidate.ID))
			continue
		}
		ranked = append(ranked, Ranked{Candidate: candidate, Result: res})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Result.OverallScore > ranked[j].Result.OverallScore
	})

	if r.cfg.Limit > 0 && len(ranked) > r.cfg.Limit {
		ranked = ranked[:r.cfg.Limit]
	}

	r.logger.Info("ranking finished",
		zap.Int("candidates", len(candidates)),
		zap.Int("ranked", len(ranked)),
	)

	return ranked, nil
}
