package semantic

import (
	"context"
	"regexp"
	"strings"

	"github.com/spigell/resume-fit/internal/scoring"
)

// LexicalNoContent is returned when the job description has no content words.
const LexicalNoContent = 15.0

var (
	wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

	stopWords = map[string]struct{}{
		"the": {}, "and": {}, "or": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {},
		"of": {}, "with": {}, "a": {}, "an": {}, "is": {}, "are": {}, "be": {},
	}
)

func contentWords(text string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if _, stop := stopWords[w]; stop {
			continue
		}
		words[w] = struct{}{}
	}
	return words
}

// LexicalScore measures the share of job description words present in the resume.
func LexicalScore(resume, jd string) float64 {
	jdWords := contentWords(jd)
	if len(jdWords) == 0 {
		return LexicalNoContent
	}

	resumeWords := contentWords(resume)
	shared := 0
	for w := range jdWords {
		if _, ok := resumeWords[w]; ok {
			shared++
		}
	}

	ratio := float64(shared) / float64(len(jdWords))
	return min(ratio*70, 60)
}

// Lexical is the degraded semantic evaluator.
func Lexical(_ context.Context, resume, jd string) (scoring.Score, error) {
	return scoring.Score{Value: LexicalScore(resume, jd)}, nil
}
