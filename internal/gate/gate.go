// Package gate rejects degenerate analysis input before any scoring runs.
package gate

import (
	"fmt"

	"go.uber.org/zap"
)

// Input is the pair of texts under analysis.
type Input struct {
	Resume         string
	JobDescription string
}

// Outcome tells the pipeline how to continue.
type Outcome int

const (
	// Proceed lets the full analysis run.
	Proceed Outcome = iota
	// Insufficient ends the analysis with a minimal-score result.
	Insufficient
	// Failed ends the analysis with a system-error result.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Proceed:
		return "proceed"
	case Insufficient:
		return "insufficient"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Verdict is the result of running the gate.
type Verdict struct {
	Outcome Outcome
	Check   string
	Reason  string
}

// Passed reports whether analysis may proceed.
func (v Verdict) Passed() bool { return v.Outcome == Proceed }

// Check represents a single gate rule.
type Check interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	// Apply returns a non-empty reason when the input must be rejected.
	Apply(in Input) string
}

// Status represents runtime information about a check.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
}

type statusProvider interface {
	Status() Status
}

// DisableByName marks a check with the provided name as disabled while keeping it in the list.
func DisableByName(checks []Check, name, reason string) {
	for _, check := range checks {
		if check.Name() == name {
			check.Disable(reason)
		}
	}
}

// Gate runs its checks in order and stops at the first rejection.
type Gate struct {
	checks []Check
	logger *zap.Logger
}

// New validates cfg and builds the default check chain: length, then spam.
func New(cfg Config, logger *zap.Logger) (*Gate, error) {
	return NewWithChecks(cfg, logger, NewLength(), NewSpam())
}

// NewWithChecks builds a gate from explicit checks.
func NewWithChecks(cfg Config, logger *zap.Logger, checks ...Check) (*Gate, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, name := range cfg.Disabled {
		DisableByName(checks, name, "disabled by configuration")
	}

	for _, check := range checks {
		if !check.IsEnabled() {
			continue
		}
		if err := check.Validate(&cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", check.Name(), err)
		}
	}

	return &Gate{checks: checks, logger: logger}, nil
}

// Evaluate never panics. A failing check yields a Failed verdict.
func (g *Gate) Evaluate(in Input) (verdict Verdict) {
	current := ""
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("gate check panicked", zap.String("check", current), zap.Any("panic", r))
			verdict = Verdict{Outcome: Failed, Check: current, Reason: fmt.Sprintf("System error: %v", r)}
		}
	}()

	for _, check := range g.checks {
		if !check.IsEnabled() {
			continue
		}
		current = check.Name()

		if reason := check.Apply(in); reason != "" {
			g.logger.Info("input rejected by gate",
				zap.String("check", current),
				zap.String("reason", reason),
			)
			return Verdict{Outcome: Insufficient, Check: current, Reason: reason}
		}
	}

	return Verdict{Outcome: Proceed}
}

// Describe returns status entries for the configured checks.
func (g *Gate) Describe() []Status {
	statuses := make([]Status, 0, len(g.checks))
	for _, check := range g.checks {
		if reporter, ok := check.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}
		statuses = append(statuses, Status{Name: check.Name(), Enabled: check.IsEnabled()})
	}
	return statuses
}
