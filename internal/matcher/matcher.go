// Package matcher scores a resume against a job description.
package matcher

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-fit/internal/ai"
	"github.com/spigell/resume-fit/internal/depth"
	"github.com/spigell/resume-fit/internal/gate"
	"github.com/spigell/resume-fit/internal/scoring"
	"github.com/spigell/resume-fit/internal/semantic"
	"github.com/spigell/resume-fit/internal/skills"
	"github.com/spigell/resume-fit/internal/utils"
)

const (
	SignalSemantic       = "semantic"
	SignalSkills         = "skills"
	SignalExperience     = "experience"
	SignalQualifications = "qualifications"

	defaultMaxLogLength = 120
)

// Recorder observes analyses. Implementations must be safe for concurrent use.
type Recorder interface {
	ObserveAnalysis(outcome Outcome, overall float64)
	ObserveFallback(signal string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveAnalysis(Outcome, float64) {}
func (nopRecorder) ObserveFallback(string) {}

// Config tunes the matcher.
type Config struct {
	Gate         gate.Config
	MaxLogLength int
}

// Matcher runs the gate, the sub-signals and the aggregation.
type Matcher struct {
	gate     *gate.Gate
	signals  []scoring.Signal
	logger   *zap.Logger
	recorder Recorder
	logLimit int
}

// New builds a matcher. A nil embedder makes the semantic signal use its
// lexical variant on every call.
func New(cfg Config, embedder ai.Embedder, logger *zap.Logger, recorder Recorder) (*Matcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}

	g, err := gate.New(cfg.Gate, logger.Named("gate"))
	if err != nil {
		return nil, err
	}
	for _, st := range g.Describe() {
		logger.Debug("gate check",
			zap.String("check", st.Name),
			zap.Bool("enabled", st.Enabled),
			zap.String("reason", st.Reason),
		)
	}

	logLimit := cfg.MaxLogLength
	if logLimit <= 0 {
		logLimit = defaultMaxLogLength
	}

	var primarySemantic scoring.Evaluator
	if embedder != nil {
		primarySemantic = semantic.NewScorer(embedder, logger)
	}

	signals := []scoring.Signal{
		{
			Name:     SignalSemantic,
			Primary:  primarySemantic,
			Fallback: scoring.EvaluatorFunc(semantic.Lexical),
			Floor:    scoring.Score{Value: semantic.LexicalNoContent},
		},
		{
			Name:     SignalSkills,
			Primary:  scoring.NewSkillsScorer(skills.NewExtractor(logger)),
			Fallback: scoring.EvaluatorFunc(scoring.FallbackSkills),
			Floor:    scoring.SkillsFloor,
		},
		{
			Name:     SignalExperience,
			Primary:  scoring.EvaluatorFunc(scoring.Experience),
			Fallback: scoring.Constant(scoring.ExperienceFallback),
			Floor:    scoring.Score{Value: scoring.ExperienceFallback},
		},
		{
			Name:     SignalQualifications,
			Primary:  scoring.EvaluatorFunc(scoring.Qualifications),
			Fallback: scoring.Constant(scoring.QualificationsFallback),
			Floor:    scoring.Score{Value: scoring.QualificationsFallback},
		},
	}

	return &Matcher{
		gate:     g,
		signals:  signals,
		logger:   logger,
		recorder: recorder,
		logLimit: logLimit,
	}, nil
}

// Analyze never fails: degenerate input and internal failures produce
// zero-score results with the same shape as a successful analysis.
func (m *Matcher) Analyze(ctx context.Context, resume, jd string) (res *Result) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("analysis failed", zap.Any("panic", r))
			res = ErrorResult(systemError(r))
		}
		m.recorder.ObserveAnalysis(res.Outcome, res.OverallScore)
	}()

	resume = strings.TrimSpace(resume)
	jd = strings.TrimSpace(jd)

	log := m.logger.With(
		zap.String("resume_preview", utils.TruncateForLog(utils.OneLine(resume), m.logLimit)),
		zap.String("jd_preview", utils.TruncateForLog(utils.OneLine(jd), m.logLimit)),
	)

	verdict := m.gate.Evaluate(gate.Input{Resume: resume, JobDescription: jd})
	switch verdict.Outcome {
	case gate.Insufficient:
		log.Info("analysis stopped by gate", zap.String("reason", verdict.Reason))
		return MinimalResult(verdict.Reason, len(strings.Fields(resume)))
	case gate.Failed:
		log.Info("analysis failed in gate", zap.String("reason", verdict.Reason))
		return ErrorResult(verdict.Reason)
	}

	var scores signalScores
	for _, signal := range m.signals {
		score, fellBack := signal.Run(ctx, resume, jd, log)
		if fellBack {
			m.recorder.ObserveFallback(signal.Name)
		}
		scores.set(signal.Name, score)
	}

	res = aggregate(log, scores, depth.Resume(resume), depth.JobDescription(jd), len(strings.Fields(resume)))

	log.Info("analysis completed",
		zap.Float64("overall_score", res.OverallScore),
		zap.Int("matched_skills", len(res.MatchedSkills)),
		zap.Int("missing_skills", len(res.MissingSkills)),
	)
	return res
}
