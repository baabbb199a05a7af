package gate

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	ReasonResumeTooShort = "Resume too short"
	ReasonJDTooShort     = "Job description too short"
)

type lengthCheck struct {
	disabled  bool
	reason    string
	minLength int
}

// NewLength creates the check rejecting texts shorter than the configured minimum.
func NewLength() Check {
	return &lengthCheck{}
}

func (c *lengthCheck) Name() string { return "length" }

func (c *lengthCheck) Disable(reason string) {
	c.disabled = true
	c.reason = reason
}

func (c *lengthCheck) IsEnabled() bool { return !c.disabled }

func (c *lengthCheck) Validate(cfg *Config) error {
	c.minLength = DefaultMinLength
	if cfg != nil && cfg.MinLength != 0 {
		c.minLength = cfg.MinLength
	}
	if c.minLength < 0 {
		return fmt.Errorf("min-length must not be negative, got %d", c.minLength)
	}
	return nil
}

func (c *lengthCheck) Apply(in Input) string {
	if utf8.RuneCountInString(strings.TrimSpace(in.Resume)) < c.minLength {
		return ReasonResumeTooShort
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.JobDescription)) < c.minLength {
		return ReasonJDTooShort
	}
	return ""
}

func (c *lengthCheck) Status() Status {
	return Status{Name: c.Name(), Enabled: c.IsEnabled(), Reason: c.statusReason()}
}

func (c *lengthCheck) statusReason() string {
	if c.disabled {
		return c.reason
	}
	return "minimum " + strconv.Itoa(c.minLength) + " characters"
}
