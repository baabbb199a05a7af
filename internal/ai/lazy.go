package ai

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Factory builds an embedding backend.
type Factory func(ctx context.Context) (Embedder, error)

// Lazy builds its backend on first use and shares it with every caller
// afterwards. A failed build is not cached, the next call tries again.
// After Close every call fails with ErrUnavailable.
type Lazy struct {
	mu      sync.Mutex
	factory Factory
	current Embedder
	closed  bool
	logger  *zap.Logger
}

// NewLazy wraps factory. A nil factory yields a permanently unavailable embedder.
func NewLazy(factory Factory, logger *zap.Logger) *Lazy {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Lazy{factory: factory, logger: logger}
}

// Get returns the shared backend, building it when needed.
func (l *Lazy) Get(ctx context.Context) (Embedder, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || l.factory == nil {
		return nil, ErrUnavailable
	}
	if l.current != nil {
		return l.current, nil
	}

	e, err := l.factory(ctx)
	if err != nil {
		l.logger.Warn("building embedder failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if e == nil {
		return nil, ErrUnavailable
	}

	fields := []zap.Field{}
	if d, ok := e.(Describer); ok {
		fields = append(fields, zap.String("provider", d.Provider()), zap.String("model", d.Model()))
	}
	l.logger.Info("embedder loaded", fields...)

	l.current = e
	return e, nil
}

// Embed resolves the backend and delegates to it.
func (l *Lazy) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	e, err := l.Get(ctx)
	if err != nil {
		return nil, err
	}
	return e.Embed(ctx, texts)
}

// Loaded reports whether the backend has been built.
func (l *Lazy) Loaded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current != nil
}

// Close releases the backend when it holds resources.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	current := l.current
	l.current = nil

	if c, ok := current.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Serialized guards a backend that must not be called concurrently.
type Serialized struct {
	mu   sync.Mutex
	next Embedder
}

// Serialize wraps e so that at most one Embed call runs at a time.
func Serialize(e Embedder) *Serialized {
	return &Serialized{next: e}
}

func (s *Serialized) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next.Embed(ctx, texts)
}

func (s *Serialized) Provider() string {
	if d, ok := s.next.(Describer); ok {
		return d.Provider()
	}
	return ""
}

func (s *Serialized) Model() string {
	if d, ok := s.next.(Describer); ok {
		return d.Model()
	}
	return ""
}
