package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/spigell/resume-fit/internal/matcher"
)

func TestObserveAnalysis(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveAnalysis(matcher.OutcomeScored, 54.6)
	m.ObserveAnalysis(matcher.OutcomeScored, 40)
	m.ObserveAnalysis(matcher.OutcomeInsufficient, 0)

	if got := testutil.ToFloat64(m.analyses.WithLabelValues("scored")); got != 2 {
		t.Fatalf("expected 2 scored analyses, got %v", got)
	}
	if got := testutil.ToFloat64(m.analyses.WithLabelValues("insufficient")); got != 1 {
		t.Fatalf("expected 1 insufficient analysis, got %v", got)
	}
	if got := testutil.CollectAndCount(m.overall); got != 1 {
		t.Fatalf("expected histogram to be collected once, got %d", got)
	}
}

func TestObserveFallback(t *testing.T) {
	m := New(nil)

	m.ObserveFallback(matcher.SignalSemantic)
	m.ObserveFallback(matcher.SignalSemantic)

	if got := testutil.ToFloat64(m.fallbacks.WithLabelValues(matcher.SignalSemantic)); got != 2 {
		t.Fatalf("expected 2 fallbacks, got %v", got)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(prometheus.NewRegistry())

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	if got := testutil.ToFloat64(m.counterVec.WithLabelValues("GET", "/health", "200")); got != 1 {
		t.Fatalf("expected one /health request, got %v", got)
	}
	if got := testutil.ToFloat64(m.counterVec.WithLabelValues("GET", "unmatched", "404")); got != 1 {
		t.Fatalf("expected one unmatched request, got %v", got)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "resume_fit_http_requests_total") {
		t.Fatalf("expected http counter in output")
	}
}
