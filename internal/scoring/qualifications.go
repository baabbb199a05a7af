package scoring

import (
	"context"
	"strings"
)

// QualificationsFallback replaces the education score when it cannot be computed.
const QualificationsFallback = 30.0

var educationTerms = []string{"bachelor", "master", "phd", "degree", "university", "college"}

func mentionsEducation(text string) bool {
	lower := strings.ToLower(text)
	for _, term := range educationTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// Qualifications scores education requirements.
func Qualifications(_ context.Context, resume, jd string) (Score, error) {
	has := mentionsEducation(resume)
	if mentionsEducation(jd) {
		if has {
			return Score{Value: 70}, nil
		}
		return Score{Value: 20}, nil
	}
	if has {
		return Score{Value: 50}, nil
	}
	return Score{Value: 40}, nil
}
