package ranking

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-fit/internal/matcher"
)

type stubAnalyzer struct {
	scores   map[string]float64
	delay    time.Duration
	inFlight atomic.Int32
	peak     atomic.Int32

	mu    sync.Mutex
	pairs [][2]string
}

func (s *stubAnalyzer) Analyze(_ context.Context, resume, jd string) *matcher.Result {
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		peak := s.peak.Load()
		if n <= peak || s.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(s.delay)

	s.mu.Lock()
	s.pairs = append(s.pairs, [2]string{resume, jd})
	s.mu.Unlock()

	key := jd
	if _, ok := s.scores[resume]; ok {
		key = resume
	}
	return &matcher.Result{OverallScore: s.scores[key], Outcome: matcher.OutcomeScored}
}

func candidates(ids ...string) []Candidate {
	out := make([]Candidate, 0, len(ids))
	for _, id := range ids {
		out = append(out, Candidate{ID: id, Title: "title " + id, Text: id})
	}
	return out
}

func ids(ranked []Ranked) []string {
	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, r.Candidate.ID)
	}
	return out
}

func TestRankJobsSortsDescendingAndStable(t *testing.T) {
	analyzer := &stubAnalyzer{scores: map[string]float64{"a": 40, "b": 70, "c": 40, "d": 90}}
	ranker, err := New(analyzer, Config{}, nil)
	require.NoError(t, err)

	ranked, err := ranker.RankJobs(context.Background(), "resume", candidates("a", "b", "c", "d"))
	require.NoError(t, err)

	assert.Equal(t, []string{"d", "b", "a", "c"}, ids(ranked))
	assert.Equal(t, 90.0, ranked[0].Result.OverallScore)
	for _, pair := range analyzer.pairs {
		assert.Equal(t, "resume", pair[0])
	}
}

func TestRankDropsBelowMinimumAndLimits(t *testing.T) {
	analyzer := &stubAnalyzer{scores: map[string]float64{"a": 10, "b": 50, "c": 60, "d": 55}}
	ranker, err := New(analyzer, Config{MinimumFitScore: 50, Limit: 2}, nil)
	require.NoError(t, err)

	ranked, err := ranker.RankJobs(context.Background(), "resume", candidates("a", "b", "c", "d"))
	require.NoError(t, err)

	assert.Equal(t, []string{"c", "d"}, ids(ranked))
}

func TestRankResumesSwapsSides(t *testing.T) {
	analyzer := &stubAnalyzer{scores: map[string]float64{"r1": 20, "r2": 80}}
	ranker, err := New(analyzer, Config{}, nil)
	require.NoError(t, err)

	ranked, err := ranker.RankResumes(context.Background(), "job", candidates("r1", "r2"))
	require.NoError(t, err)

	assert.Equal(t, []string{"r2", "r1"}, ids(ranked))
	for _, pair := range analyzer.pairs {
		assert.Equal(t, "job", pair[1])
	}
}

func TestRankRespectsConcurrency(t *testing.T) {
	analyzer := &stubAnalyzer{scores: map[string]float64{}, delay: 10 * time.Millisecond}
	ranker, err := New(analyzer, Config{Concurrency: 2}, nil)
	require.NoError(t, err)

	_, err = ranker.RankJobs(context.Background(), "resume", candidates("a", "b", "c", "d", "e", "f"))
	require.NoError(t, err)

	assert.LessOrEqual(t, analyzer.peak.Load(), int32(2))
	assert.Len(t, analyzer.pairs, 6)
}

func TestRankCancelledContext(t *testing.T) {
	analyzer := &stubAnalyzer{scores: map[string]float64{}}
	ranker, err := New(analyzer, Config{}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = ranker.RankJobs(ctx, "resume", candidates("a", "b"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestRankEmpty(t *testing.T) {
	ranker, err := New(&stubAnalyzer{}, Config{}, nil)
	require.NoError(t, err)

	ranked, err := ranker.RankJobs(context.Background(), "resume", nil)
	require.NoError(t, err)
	assert.Empty(t, ranked)
}

func TestNewValidatesConfig(t *testing.T) {
	_, err := New(nil, Config{}, nil)
	require.Error(t, err)

	_, err = New(&stubAnalyzer{}, Config{MinimumFitScore: 120}, nil)
	require.Error(t, err)
}
