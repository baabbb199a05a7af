package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/spigell/resume-fit/internal/matcher"
	"github.com/spigell/resume-fit/internal/ranking"
)

func sampleResult() *matcher.Result {
	return &matcher.Result{
		OverallScore: 54.6,
		Breakdown: matcher.Breakdown{
			Semantic: 38.9, Skills: 80, Experience: 80, Education: 50, ContentQuality: 55,
		},
		Weights:         matcher.DefaultWeights,
		MatchedSkills:   []string{"python", "aws"},
		MissingSkills:   []string{},
		Explanation:     "Moderate match | Strong skills",
		Recommendations: "Add metrics\nMention teamwork",
		ResumeInsights:  matcher.Insights{ContentDepth: 0.25, WordCount: 34, EstimatedCompleteness: 25},
		Outcome:         matcher.OutcomeScored,
	}
}

func TestWriteResultText(t *testing.T) {
	var buf bytes.Buffer
	if err := writeResult(&buf, sampleResult(), outputText); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"Overall score: 54.6",
		"  semantic          38.9",
		"Matched skills: python, aws",
		"Missing skills: none",
		"  Moderate match\n  Strong skills\n",
		"  - Add metrics\n  - Mention teamwork\n",
		"Resume: 34 words, content depth 0.25, estimated completeness 25%",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestWriteResultStructured(t *testing.T) {
	var buf bytes.Buffer
	if err := writeResult(&buf, sampleResult(), outputJSON); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if doc["overall_score"] != 54.6 {
		t.Fatalf("unexpected overall score: %v", doc["overall_score"])
	}
	if _, ok := doc["Outcome"]; ok {
		t.Fatalf("outcome must not be serialized")
	}

	buf.Reset()
	if err := writeResult(&buf, sampleResult(), outputYAML); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var ydoc map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &ydoc); err != nil {
		t.Fatalf("invalid yaml: %v", err)
	}
	if ydoc["overall_score"] != 54.6 {
		t.Fatalf("unexpected yaml overall score: %v", ydoc["overall_score"])
	}
}

func TestCheckOutput(t *testing.T) {
	for _, format := range []string{outputText, outputJSON, outputYAML} {
		if err := checkOutput(format); err != nil {
			t.Fatalf("unexpected error for %s: %v", format, err)
		}
	}
	if err := checkOutput("xml"); err == nil {
		t.Fatalf("expected error for xml")
	}
}

func TestWriteRankingText(t *testing.T) {
	ranked := []ranking.Ranked{
		{Candidate: ranking.Candidate{ID: "a.txt", Title: "a.txt"}, Result: sampleResult()},
		{Candidate: ranking.Candidate{ID: "b.txt", Title: "b.txt"}, Result: matcher.MinimalResult("Resume too short", 2)},
	}

	var buf bytes.Buffer
	if err := writeRanking(&buf, ranked, outputText); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and two rows, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[1], "1") || !strings.Contains(lines[1], "54.6") || !strings.HasSuffix(lines[1], "a.txt") {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
}

func TestWriteSkillsText(t *testing.T) {
	var buf bytes.Buffer
	found := map[string][]string{"databases": {"postgresql"}, "cloud": {}}
	if err := writeSkills(&buf, found, outputText); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "databases: postgresql\ncloud: none\ntaxonomy version 2024.1\n"
	if buf.String() != want {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestFileCandidates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "jd.txt")
	if err := os.WriteFile(path, []byte("Senior Go developer"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	candidates, err := fileCandidates([]string{path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Title != "jd.txt" || candidates[0].Text != "Senior Go developer" {
		t.Fatalf("unexpected candidates: %+v", candidates)
	}

	if _, err := fileCandidates([]string{filepath.Join(dir, "missing.txt")}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestNewEmbedderDisabled(t *testing.T) {
	lazy, err := newEmbedder(EmbedderConfig{Enabled: false}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lazy != nil {
		t.Fatalf("expected nil embedder when disabled")
	}
}

func TestNewEmbedderUnsupportedProvider(t *testing.T) {
	if _, err := newEmbedder(EmbedderConfig{Enabled: true, Provider: "cohere"}, zap.NewNop()); err == nil {
		t.Fatalf("expected error for unsupported provider")
	}
}

func TestNewEmbedderOpenAIBuildsLazily(t *testing.T) {
	lazy, err := newEmbedder(EmbedderConfig{
		Enabled:   true,
		Provider:  "OpenAI",
		APIKey:    "sk-test",
		BaseURL:   "http://127.0.0.1:1",
		Serialize: true,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lazy.Loaded() {
		t.Fatalf("embedder must not be built before first use")
	}

	if _, err := lazy.Get(context.Background()); err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	if !lazy.Loaded() {
		t.Fatalf("expected embedder to be loaded")
	}
}

func TestNewEmbedderMissingKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	lazy, err := newEmbedder(EmbedderConfig{Enabled: true, Provider: "gemini"}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := lazy.Get(context.Background()); err == nil {
		t.Fatalf("expected error without api key")
	}
}

func TestNewMatcherWithoutEmbedder(t *testing.T) {
	config := &Config{}
	m, lazy, err := newMatcher(config, zap.NewNop(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lazy != nil {
		t.Fatalf("expected no embedder")
	}

	res := m.Analyze(context.Background(), "Python developer with Django and AWS experience", "Looking for a Python developer with AWS")
	if res.Outcome != matcher.OutcomeScored {
		t.Fatalf("expected scored outcome, got %s", res.Outcome)
	}
}

func TestConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if config.Embedder.Enabled {
		t.Fatalf("embedder must be disabled by default")
	}
	if config.Gate.MinLength != 20 || config.Gate.Spam.MaxTokenRatio != 0.2 {
		t.Fatalf("unexpected gate defaults: %+v", config.Gate)
	}
	if config.Server.Listen != ":8000" || config.Server.MaxTextLength != 50000 {
		t.Fatalf("unexpected server defaults: %+v", config.Server)
	}
	if config.Rank.Concurrency != 4 {
		t.Fatalf("unexpected rank defaults: %+v", config.Rank)
	}
	if got := strings.Join(config.Gate.Spam.StuffingTerms, ","); got != "python,java,sql" {
		t.Fatalf("unexpected stuffing terms: %s", got)
	}
}

func TestRedactedHidesAPIKey(t *testing.T) {
	config := &Config{Embedder: EmbedderConfig{APIKey: "secret"}}
	if got := redacted(config).Embedder.APIKey; got != "***" {
		t.Fatalf("expected redacted key, got %q", got)
	}
	if config.Embedder.APIKey != "secret" {
		t.Fatalf("original config must stay untouched")
	}
}
