package cmd

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/resume-fit/internal/gate"
	"github.com/spigell/resume-fit/internal/headhunter"
	"github.com/spigell/resume-fit/internal/ranking"
	"github.com/spigell/resume-fit/internal/server"
)

const (
	app       = "resume-fit"
	envPrefix = "RESUME_FIT"
)

type Config struct {
	Embedder   EmbedderConfig           `mapstructure:"embedder"`
	Gate       gate.Config              `mapstructure:"gate"`
	Server     server.Config            `mapstructure:"server"`
	Headhunter HeadhunterConfig         `mapstructure:"headhunter"`
	Search     *headhunter.SearchParams `mapstructure:"search"`
	Rank       ranking.Config           `mapstructure:"rank"`
}

type EmbedderConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Provider     string `mapstructure:"provider"`
	Model        string `mapstructure:"model"`
	APIKey       string `mapstructure:"api-key"`
	APIKeyFile   string `mapstructure:"api-key-file"`
	BaseURL      string `mapstructure:"base-url"`
	MaxRetries   int    `mapstructure:"max-retries"`
	Dimensions   int    `mapstructure:"dimensions"`
	Serialize    bool   `mapstructure:"serialize"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

type HeadhunterConfig struct {
	TokenFile string `mapstructure:"token-file"`
	UserAgent string `mapstructure:"user-agent"`
	APIURL    string `mapstructure:"api-url"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "resume-fit scores how well a resume matches a job description",
		// Errors are logged by the commands themselves.
		SilenceUsage: true,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("headhunter.token-file", envPrefix+"_HEADHUNTER_TOKEN_FILE", "HH_TOKEN_FILE"); err != nil {
		log.Fatalf("binding HH_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is resume-fit.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	bindFlag("debug")
	bindFlag("json")

	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("embedder.enabled", false)
	v.SetDefault("embedder.provider", "gemini")
	v.SetDefault("embedder.model", "")
	v.SetDefault("embedder.api-key", "")
	v.SetDefault("embedder.api-key-file", "")
	v.SetDefault("embedder.base-url", "")
	v.SetDefault("embedder.dimensions", 0)
	v.SetDefault("embedder.max-retries", 3)
	v.SetDefault("embedder.serialize", false)
	v.SetDefault("embedder.max-log-length", 120)

	def := gate.DefaultConfig()
	v.SetDefault("gate.min-length", def.MinLength)
	v.SetDefault("gate.spam.min-tokens", def.Spam.MinTokens)
	v.SetDefault("gate.spam.max-token-ratio", def.Spam.MaxTokenRatio)
	v.SetDefault("gate.spam.min-token-length", def.Spam.MinTokenLength)
	v.SetDefault("gate.spam.repeat-run", def.Spam.RepeatRun)
	v.SetDefault("gate.spam.stuffing-terms", def.Spam.StuffingTerms)
	v.SetDefault("gate.spam.stuffing-run", def.Spam.StuffingRun)

	v.SetDefault("server.listen", ":8000")
	v.SetDefault("server.max-text-length", 50000)
	v.SetDefault("server.validate-responses", false)

	v.SetDefault("headhunter.token-file", "")
	v.SetDefault("headhunter.user-agent", "")
	v.SetDefault("headhunter.api-url", "")

	v.SetDefault("rank.minimum-fit-score", 0)
	v.SetDefault("rank.concurrency", 4)
	v.SetDefault("rank.limit", 0)
}

func bindFlag(key string) {
	if err := viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(key)); err != nil {
		log.Fatalf("binding %s flag: %v", key, err)
	}
}

func initConfig() {
	// A missing .env is fine, the environment may already be set.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicitly given config must exist and parse.
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if config == nil {
		config = &Config{}
	}

	return config, nil
}
