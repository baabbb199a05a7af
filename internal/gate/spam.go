package gate

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const ReasonSpam = "Resume appears to be spam or artificially generated"

type spamCheck struct {
	disabled bool
	reason   string

	cfg      SpamConfig
	stuffing *regexp.Regexp
}

// NewSpam creates the keyword stuffing check for resumes.
func NewSpam() Check {
	return &spamCheck{}
}

func (c *spamCheck) Name() string { return "spam" }

func (c *spamCheck) Disable(reason string) {
	c.disabled = true
	c.reason = reason
}

func (c *spamCheck) IsEnabled() bool { return !c.disabled }

func (c *spamCheck) Validate(cfg *Config) error {
	normalized := DefaultConfig()
	if cfg != nil {
		normalized = cfg.Normalize()
	}
	c.cfg = normalized.Spam

	if c.cfg.MaxTokenRatio > 1 {
		return fmt.Errorf("max-token-ratio must be within (0, 1], got %v", c.cfg.MaxTokenRatio)
	}

	terms := make([]string, 0, len(c.cfg.StuffingTerms))
	for _, term := range c.cfg.StuffingTerms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		terms = append(terms, regexp.QuoteMeta(term))
	}
	if len(terms) == 0 {
		return fmt.Errorf("at least one stuffing term is required")
	}

	alt := "(?:" + strings.Join(terms, "|") + ")"
	parts := make([]string, c.cfg.StuffingRun)
	for i := range parts {
		parts[i] = alt
	}
	re, err := regexp.Compile(strings.Join(parts, `\s*`))
	if err != nil {
		return fmt.Errorf("compile stuffing pattern: %w", err)
	}
	c.stuffing = re

	return nil
}

func (c *spamCheck) Apply(in Input) string {
	if c.isSpam(in.Resume) {
		return ReasonSpam
	}
	return ""
}

func (c *spamCheck) isSpam(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	if repeatedRune(lower, c.cfg.RepeatRun) {
		return true
	}

	tokens := strings.Fields(lower)
	if len(tokens) < c.cfg.MinTokens {
		return false
	}
	return c.dominantToken(tokens) || c.stuffing.MatchString(lower)
}

// dominantToken reports whether one long token makes up too much of the text.
func (c *spamCheck) dominantToken(tokens []string) bool {
	counts := make(map[string]int, len(tokens))
	for _, token := range tokens {
		if utf8.RuneCountInString(token) > c.cfg.MinTokenLength {
			counts[token]++
		}
	}

	total := float64(len(tokens))
	for _, count := range counts {
		if float64(count)/total > c.cfg.MaxTokenRatio {
			return true
		}
	}
	return false
}

// repeatedRune reports whether any rune occurs at least run times in a row.
// Line breaks never count and end the current run.
func repeatedRune(s string, run int) bool {
	var prev rune
	length := 0
	for i, r := range s {
		if r == '\n' {
			length = 0
			prev = r
			continue
		}
		if i > 0 && r == prev {
			length++
		} else {
			length = 1
		}
		if length >= run {
			return true
		}
		prev = r
	}
	return false
}

func (c *spamCheck) Status() Status {
	return Status{Name: c.Name(), Enabled: c.IsEnabled(), Reason: c.reason}
}
