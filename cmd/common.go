package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-fit/internal/ai"
	"github.com/spigell/resume-fit/internal/headhunter"
	"github.com/spigell/resume-fit/internal/logger"
	"github.com/spigell/resume-fit/internal/matcher"
	"github.com/spigell/resume-fit/internal/secrets"
)

// setup builds the logger and reads the config. Failures are fatal.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(redacted(config), "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	return logger, config
}

func redacted(config *Config) Config {
	c := *config
	if c.Embedder.APIKey != "" {
		c.Embedder.APIKey = "***"
	}
	return c
}

// newMatcher wires the embedder into a matcher. The returned Lazy is nil
// when embeddings are disabled.
func newMatcher(config *Config, logger *zap.Logger, recorder matcher.Recorder) (*matcher.Matcher, *ai.Lazy, error) {
	lazy, err := newEmbedder(config.Embedder, logger.Named("embedder"))
	if err != nil {
		return nil, nil, err
	}

	var embedder ai.Embedder
	if lazy != nil {
		embedder = lazy
	}

	m, err := matcher.New(matcher.Config{
		Gate:         config.Gate,
		MaxLogLength: config.Embedder.MaxLogLength,
	}, embedder, logger.Named("matcher"), recorder)
	if err != nil {
		return nil, nil, fmt.Errorf("building matcher: %w", err)
	}

	return m, lazy, nil
}

func closeEmbedder(lazy *ai.Lazy, logger *zap.Logger) {
	if lazy == nil {
		return
	}
	if err := lazy.Close(); err != nil {
		logger.Warn("closing embedder", zap.Error(err))
	}
}

// newHeadhunter builds the hh.ru client. The token is optional for public
// vacancies, required=true makes a missing token an error.
func newHeadhunter(config *Config, logger *zap.Logger, required bool) (*headhunter.Client, error) {
	token := ""
	if tokenFile := strings.TrimSpace(config.Headhunter.TokenFile); tokenFile != "" || required {
		var err error
		token, err = secrets.Load(secrets.Source{
			Name: "headhunter token",
			File: tokenFile,
			Env:  "HH_TOKEN",
		})
		if err != nil {
			return nil, err
		}
	}

	return headhunter.New(headhunter.Config{
		Token:     token,
		UserAgent: config.Headhunter.UserAgent,
		APIURL:    config.Headhunter.APIURL,
	}, logger.Named("headhunter")), nil
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
