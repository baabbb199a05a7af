package gate

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const validJD = "Senior Python Developer position, 5+ years experience required"

func newGate(t *testing.T, cfg Config) *Gate {
	t.Helper()
	g, err := New(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}
	return g
}

func TestEvaluate(t *testing.T) {
	g := newGate(t, DefaultConfig())

	tests := []struct {
		name    string
		resume  string
		jd      string
		outcome Outcome
		reason  string
	}{
		{
			name:    "valid input",
			resume:  "Python developer with Django and PostgreSQL experience",
			jd:      validJD,
			outcome: Proceed,
		},
		{
			name:    "short resume",
			resume:  "  Python dev  ",
			jd:      validJD,
			outcome: Insufficient,
			reason:  ReasonResumeTooShort,
		},
		{
			name:    "short job description",
			resume:  "Python developer with Django and PostgreSQL experience",
			jd:      "Python",
			outcome: Insufficient,
			reason:  ReasonJDTooShort,
		},
		{
			name:    "short resume in runes",
			resume:  "Привет мир, 你好世界",
			jd:      validJD,
			outcome: Insufficient,
			reason:  ReasonResumeTooShort,
		},
		{
			name:    "dominant token",
			resume:  strings.Repeat("python ", 50),
			jd:      validJD,
			outcome: Insufficient,
			reason:  ReasonSpam,
		},
		{
			name:    "repeated character",
			resume:  strings.Repeat("a", 30),
			jd:      validJD,
			outcome: Insufficient,
			reason:  ReasonSpam,
		},
		{
			name:    "stuffing pattern",
			resume:  strings.Repeat("python java ", 8),
			jd:      validJD,
			outcome: Insufficient,
			reason:  ReasonSpam,
		},
		{
			name:    "short text skips stuffing",
			resume:  "Built services: sql python java in one afternoon",
			jd:      validJD,
			outcome: Proceed,
		},
		{
			name:    "stuffing in a long text",
			resume:  "Built backend services with sql python java for a large retail company over five years",
			jd:      validJD,
			outcome: Insufficient,
			reason:  ReasonSpam,
		},
		{
			name:    "blank lines are not repeated characters",
			resume:  "Jane Doe, Senior Go engineer\n" + strings.Repeat("\n", 12) + "Experience: 2018-2023 Acme, built payment systems in Go and PostgreSQL",
			jd:      validJD,
			outcome: Proceed,
		},
		{
			name:    "short tokens are not counted",
			resume:  "go go go go go go developer building distributed systems daily",
			jd:      validJD,
			outcome: Proceed,
		},
		{
			name:    "comma separated skills pass",
			resume:  "Expert in Python, Java, SQL and cloud platforms for ten years",
			jd:      validJD,
			outcome: Proceed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Evaluate(Input{Resume: tt.resume, JobDescription: tt.jd})
			if got.Outcome != tt.outcome {
				t.Fatalf("expected outcome %s, got %s (%q)", tt.outcome, got.Outcome, got.Reason)
			}
			if got.Reason != tt.reason {
				t.Fatalf("expected reason %q, got %q", tt.reason, got.Reason)
			}
		})
	}
}

func TestRepeatedRune(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{strings.Repeat("x", 10), false},
		{strings.Repeat("x", 11), true},
		{"ab" + strings.Repeat("é", 11) + "cd", true},
		{"aabbaabb", false},
		{strings.Repeat("\n", 20), false},
		{strings.Repeat("-", 6) + "\n" + strings.Repeat("-", 6), false},
		{"\n" + strings.Repeat("x", 11), true},
	}
	for _, tt := range tests {
		if got := repeatedRune(tt.in, DefaultRepeatRun); got != tt.want {
			t.Fatalf("repeatedRune(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestConfigurableThresholds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Spam.MaxTokenRatio = 0.6
	cfg.Spam.StuffingTerms = []string{"c++"}
	g := newGate(t, cfg)

	resume := strings.Repeat("python java ", 8)
	if got := g.Evaluate(Input{Resume: resume, JobDescription: validJD}); !got.Passed() {
		t.Fatalf("expected relaxed thresholds to pass, got %q", got.Reason)
	}

	stuffed := "experience: c++ c++c++ and more text to pass the length"
	if got := g.Evaluate(Input{Resume: stuffed, JobDescription: validJD}); got.Reason != ReasonSpam {
		t.Fatalf("expected custom stuffing term to be detected, got %q", got.Reason)
	}
}

func TestDisabledChecks(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Disabled = []string{"spam"}
	g := newGate(t, cfg)

	if got := g.Evaluate(Input{Resume: strings.Repeat("a", 30), JobDescription: validJD}); !got.Passed() {
		t.Fatalf("expected spam check to be skipped, got %q", got.Reason)
	}

	statuses := g.Describe()
	if len(statuses) != 2 || statuses[1].Enabled || statuses[1].Reason != "disabled by configuration" {
		t.Fatalf("unexpected statuses: %+v", statuses)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Spam.MaxTokenRatio = 1.5
	if _, err := New(cfg, nil); err == nil {
		t.Fatal("expected validation error")
	}

	cfg = DefaultConfig()
	cfg.MinLength = -1
	if _, err := New(cfg, nil); err == nil {
		t.Fatal("expected validation error for negative length")
	}
}

type panickingCheck struct{}

func (panickingCheck) Name() string { return "boom" }
func (panickingCheck) Disable(string) {}
func (panickingCheck) IsEnabled() bool { return true }
func (panickingCheck) Validate(*Config) error { return nil }
func (panickingCheck) Apply(Input) string { panic("broken rule") }

func TestEvaluateRecoversPanics(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	g, err := NewWithChecks(DefaultConfig(), zap.New(core), panickingCheck{})
	if err != nil {
		t.Fatalf("new gate: %v", err)
	}

	got := g.Evaluate(Input{Resume: "whatever", JobDescription: "whatever"})
	if got.Outcome != Failed {
		t.Fatalf("expected failed outcome, got %s", got.Outcome)
	}
	if got.Reason != "System error: broken rule" || got.Check != "boom" {
		t.Fatalf("unexpected verdict: %+v", got)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected one error log, got %d", logs.Len())
	}
}
