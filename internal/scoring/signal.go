// Package scoring holds the sub-signals combined into the overall fit score.
// Every signal pairs a primary evaluator with a degraded one so that a single
// failing signal never stops the others.
package scoring

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-fit/internal/logger"
)

// Score is the output of one signal.
type Score struct {
	Value   float64
	Matched []string
	Missing []string
}

// Evaluator computes a signal from the resume and job description.
type Evaluator interface {
	Evaluate(ctx context.Context, resume, jd string) (Score, error)
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(ctx context.Context, resume, jd string) (Score, error)

func (f EvaluatorFunc) Evaluate(ctx context.Context, resume, jd string) (Score, error) {
	return f(ctx, resume, jd)
}

// Constant returns an evaluator that always yields value.
func Constant(value float64) Evaluator {
	return EvaluatorFunc(func(context.Context, string, string) (Score, error) {
		return Score{Value: value}, nil
	})
}

// Signal is a named primary/fallback pair.
type Signal struct {
	Name     string
	Primary  Evaluator
	Fallback Evaluator
	// Floor is returned when the fallback fails as well.
	Floor Score
}

// Run evaluates the primary variant and degrades to the fallback and then to
// Floor. The second return value reports whether the primary variant was replaced.
func (s Signal) Run(ctx context.Context, resume, jd string, log *zap.Logger) (Score, bool) {
	log = logger.ForSignal(log, s.Name)

	if s.Primary != nil {
		score, err := safeEvaluate(ctx, s.Primary, resume, jd)
		if err == nil {
			return score, false
		}
		log.Warn("signal failed, using fallback", zap.Error(err))
	}

	if s.Fallback != nil {
		score, err := safeEvaluate(ctx, s.Fallback, resume, jd)
		if err == nil {
			return score, true
		}
		log.Warn("signal fallback failed, using floor", zap.Error(err))
	}

	return s.Floor, true
}

func safeEvaluate(ctx context.Context, e Evaluator, resume, jd string) (score Score, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return e.Evaluate(ctx, resume, jd)
}
