// Package profile pulls contact details and skills out of resume text.
package profile

import (
	"regexp"

	"github.com/spigell/resume-fit/internal/skills"
)

var (
	emailPattern    = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	phonePattern    = regexp.MustCompile(`\+?\d[\d\s().-]{7,}\d`)
	urlPattern      = regexp.MustCompile(`(?i)https?://[^\s)]+`)
	locationPattern = regexp.MustCompile(`(?i)\b(?:Bratislava|Slovakia|Trenčín|Trencin|Kyiv|Ukraine|Prague|Poland|Warsaw|Berlin|Germany|USA|United States|London|UK|England)\b`)
)

// Profile is the structured view of a resume.
type Profile struct {
	Email    string              `json:"email,omitempty" yaml:"email,omitempty"`
	Phone    string              `json:"phone,omitempty" yaml:"phone,omitempty"`
	Location string              `json:"location,omitempty" yaml:"location,omitempty"`
	URLs     []string            `json:"urls" yaml:"urls"`
	Skills   map[string][]string `json:"skills" yaml:"skills"`
}

// Parser extracts profiles.
type Parser struct {
	extractor *skills.Extractor
}

func NewParser(extractor *skills.Extractor) *Parser {
	if extractor == nil {
		extractor = skills.NewExtractor(nil)
	}
	return &Parser{extractor: extractor}
}

// Parse returns the first email, phone and location found, every distinct URL
// in order of appearance and the categorized skills.
func (p *Parser) Parse(text string) Profile {
	return Profile{
		Email:    emailPattern.FindString(text),
		Phone:    phonePattern.FindString(text),
		Location: locationPattern.FindString(text),
		URLs:     uniqueURLs(text),
		Skills:   p.extractor.Categorize(text),
	}
}

// Parse uses the default taxonomy.
func Parse(text string) Profile {
	return NewParser(nil).Parse(text)
}

func uniqueURLs(text string) []string {
	urls := []string{}
	seen := make(map[string]struct{})
	for _, u := range urlPattern.FindAllString(text, -1) {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	return urls
}
