// Package depth estimates how substantial a resume or job description is,
// independent of how well the two match.
package depth

import (
	"regexp"
	"strings"
)

const (
	// ResumeFallback is used when the resume estimate cannot be computed.
	ResumeFallback = 0.25
	// JobDescriptionFallback is used when the job description estimate cannot be computed.
	JobDescriptionFallback = 0.3
)

// indicatorSet is a vocabulary whose distinct hits add weight up to a cap.
type indicatorSet struct {
	name   string
	terms  []string
	weight float64
	cap    float64
}

// hits counts the terms contained in lower at least once.
func (s indicatorSet) hits(lower string) int {
	n := 0
	for _, term := range s.terms {
		if strings.Contains(lower, term) {
			n++
		}
	}
	return n
}

func (s indicatorSet) score(lower string) float64 {
	return min(s.cap, float64(s.hits(lower))*s.weight)
}

var resumeSets = []indicatorSet{
	{
		name: "experience",
		terms: []string{
			"experience", "work", "employment", "position", "role", "job", "developed",
			"managed", "led", "created", "implemented", "designed", "built", "maintained",
			"collaborated", "responsible", "achieved",
		},
		weight: 0.05,
		cap:    0.35,
	},
	{
		name: "skills",
		terms: []string{
			"skills", "technologies", "tools", "programming", "software", "proficient",
			"experienced", "familiar", "expertise",
		},
		weight: 0.04,
		cap:    0.25,
	},
	{
		name: "education",
		terms: []string{
			"education", "degree", "university", "college", "bachelor", "master", "phd",
			"certification", "course", "training", "graduate",
		},
		weight: 0.08,
		cap:    0.20,
	},
	{
		name: "projects",
		terms: []string{
			"project", "projects", "portfolio", "github", "application", "system",
			"website", "platform", "solution",
		},
		weight: 0.05,
		cap:    0.15,
	},
}

var jobDescriptionSets = []indicatorSet{
	{
		name: "requirements",
		terms: []string{
			"experience", "skills", "requirements", "qualifications", "responsibilities",
			"must have", "required", "preferred", "bachelor", "master", "years",
			"knowledge", "proficient", "familiar", "expertise",
		},
		weight: 0.08,
		cap:    0.5,
	},
	{
		name: "technology",
		terms: []string{
			"python", "java", "sql", "aws", "docker", "react", "node", "machine learning",
			"data", "software", "development", "programming",
		},
		weight: 0.05,
		cap:    0.3,
	},
	{
		name:   "company",
		terms:  []string{"company", "team", "we are", "our", "join", "opportunity", "role"},
		weight: 0.05,
		cap:    0.2,
	},
}

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`20\d{2}`),
	regexp.MustCompile(`\b\d{1,2}/20\d{2}`),
	regexp.MustCompile(`(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+20\d{2}`),
}

const (
	dateWeight = 0.01
	dateCap    = 0.05
)

// Resume returns a value in [0,1]. It never panics.
func Resume(text string) float64 {
	return guard(resume, text, ResumeFallback)
}

// JobDescription returns a value in [0,1]. It never panics.
func JobDescription(text string) float64 {
	return guard(jobDescription, text, JobDescriptionFallback)
}

func guard(fn func(string) float64, text string, fallback float64) (score float64) {
	defer func() {
		if recover() != nil {
			score = fallback
		}
	}()
	return fn(text)
}

func resume(text string) float64 {
	words := len(strings.Fields(text))
	switch {
	case words < 30:
		return 0.15
	case words < 50:
		return 0.25
	case words < 100:
		return 0.35
	}

	lower := strings.ToLower(text)
	score := 0.0
	for _, set := range resumeSets {
		score += set.score(lower)
	}

	dates := 0
	for _, re := range datePatterns {
		dates += len(re.FindAllStringIndex(text, -1))
	}
	score += min(dateCap, float64(dates)*dateWeight)

	return min(1.0, score)
}

func jobDescription(text string) float64 {
	if len(strings.Fields(text)) < 20 {
		return 0.1
	}

	lower := strings.ToLower(text)
	score := 0.0
	for _, set := range jobDescriptionSets {
		score += set.score(lower)
	}
	return min(1.0, score)
}

// Multiplier combines both estimates into the factor that scales the overall score.
func Multiplier(resumeDepth, jdDepth float64) float64 {
	return min(resumeDepth+0.3, jdDepth+0.2, 1.0)
}
