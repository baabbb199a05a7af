package gate

// Config holds the gate thresholds. Zero values are replaced by defaults in Normalize.
type Config struct {
	MinLength int        `mapstructure:"min-length"`
	Disabled  []string   `mapstructure:"disabled"`
	Spam      SpamConfig `mapstructure:"spam"`
}

// SpamConfig tunes keyword stuffing detection.
type SpamConfig struct {
	// MinTokens is the token count below which the frequency and stuffing rules are skipped.
	MinTokens int `mapstructure:"min-tokens"`
	// MaxTokenRatio is the largest share of all tokens one token may take.
	MaxTokenRatio float64 `mapstructure:"max-token-ratio"`
	// MinTokenLength excludes tokens of this many runes or fewer from the frequency rule.
	MinTokenLength int `mapstructure:"min-token-length"`
	// RepeatRun is the shortest run of one repeated character treated as spam.
	RepeatRun int `mapstructure:"repeat-run"`
	// StuffingTerms are terms whose back-to-back repetition is treated as spam.
	StuffingTerms []string `mapstructure:"stuffing-terms"`
	// StuffingRun is how many stuffing terms in a row trigger the rule.
	StuffingRun int `mapstructure:"stuffing-run"`
}

const (
	DefaultMinLength      = 20
	DefaultMinTokens      = 10
	DefaultMaxTokenRatio  = 0.2
	DefaultMinTokenLength = 3
	DefaultRepeatRun      = 11
	DefaultStuffingRun    = 3
)

// DefaultConfig returns the calibrated thresholds.
func DefaultConfig() Config {
	return Config{
		MinLength: DefaultMinLength,
		Spam: SpamConfig{
			MinTokens:      DefaultMinTokens,
			MaxTokenRatio:  DefaultMaxTokenRatio,
			MinTokenLength: DefaultMinTokenLength,
			RepeatRun:      DefaultRepeatRun,
			StuffingTerms:  []string{"python", "java", "sql"},
			StuffingRun:    DefaultStuffingRun,
		},
	}
}

// Normalize fills unset fields with defaults.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.MinLength <= 0 {
		c.MinLength = def.MinLength
	}
	if c.Spam.MinTokens <= 0 {
		c.Spam.MinTokens = def.Spam.MinTokens
	}
	if c.Spam.MaxTokenRatio <= 0 {
		c.Spam.MaxTokenRatio = def.Spam.MaxTokenRatio
	}
	if c.Spam.MinTokenLength <= 0 {
		c.Spam.MinTokenLength = def.Spam.MinTokenLength
	}
	if c.Spam.RepeatRun <= 0 {
		c.Spam.RepeatRun = def.Spam.RepeatRun
	}
	if len(c.Spam.StuffingTerms) == 0 {
		c.Spam.StuffingTerms = def.Spam.StuffingTerms
	}
	if c.Spam.StuffingRun <= 0 {
		c.Spam.StuffingRun = def.Spam.StuffingRun
	}
	return c
}
