// Package server exposes the matcher over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/spigell/resume-fit/internal/matcher"
	"github.com/spigell/resume-fit/internal/metrics"
	"github.com/spigell/resume-fit/internal/profile"
)

const (
	defaultListen        = ":8000"
	defaultMaxTextLength = 50000
	shutdownTimeout      = 10 * time.Second
)

type Config struct {
	Listen            string   `mapstructure:"listen"`
	MaxTextLength     int      `mapstructure:"max-text-length"`
	CORSOrigins       []string `mapstructure:"cors-origins"`
	ValidateResponses bool     `mapstructure:"validate-responses"`
}

// Analyzer is satisfied by *matcher.Matcher.
type Analyzer interface {
	Analyze(ctx context.Context, resume, jobDescription string) *matcher.Result
}

// ModelState reports whether the embedding model is ready.
type ModelState interface {
	Loaded() bool
}

type Server struct {
	cfg      Config
	version  string
	analyzer Analyzer
	model    ModelState
	parser   *profile.Parser
	metrics  *metrics.Metrics
	validate *validator.Validate
	logger   *zap.Logger
	engine   *gin.Engine
}

func New(cfg Config, version string, analyzer Analyzer, model ModelState, m *metrics.Metrics, logger *zap.Logger) (*Server, error) {
	if analyzer == nil {
		return nil, errors.New("analyzer is required")
	}
	if cfg.Listen == "" {
		cfg.Listen = defaultListen
	}
	if cfg.MaxTextLength <= 0 {
		cfg.MaxTextLength = defaultMaxTextLength
	}
	if m == nil {
		m = metrics.New(nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	validate, err := newValidator()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:      cfg,
		version:  version,
		analyzer: analyzer,
		model:    model,
		parser:   profile.NewParser(nil),
		metrics:  m,
		validate: validate,
		logger:   logger,
	}
	s.engine = s.routes()

	return s, nil
}

func (s *Server) routes() *gin.Engine {
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		requestID(),
		accessLog(s.logger),
		s.metrics.Middleware(),
		cors.New(s.corsConfig()),
	)

	engine.GET("/health", s.health)
	engine.GET("/skills", s.listSkills)
	engine.POST("/analyze", s.analyze)
	engine.POST("/analyze-file", s.analyzeFile)
	engine.POST("/parse", s.parse)
	engine.GET("/metrics", gin.WrapH(s.metrics.Handler()))

	return engine
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	origins := make([]string, 0, len(s.cfg.CORSOrigins))
	for _, origin := range s.cfg.CORSOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	switch {
	case len(origins) == 0:
		cfg.AllowOriginFunc = func(origin string) bool {
			return strings.HasPrefix(origin, "http://localhost") || strings.HasPrefix(origin, "http://127.0.0.1")
		}
	case len(origins) == 1 && origins[0] == "*":
		cfg.AllowAllOrigins = true
	default:
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}

	return cfg
}

// Handler returns the routed engine.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started", zap.String("listen", s.cfg.Listen))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.cfg.Listen, err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
