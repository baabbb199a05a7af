package scoring

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

const (
	// ExperienceFallback replaces the experience score when it cannot be computed.
	ExperienceFallback = 20.0
)

var (
	requiredYearsPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:of\s+)?experience`),
		regexp.MustCompile(`minimum\s+of\s+(\d+)\s+years?`),
		regexp.MustCompile(`at\s+least\s+(\d+)\s+years?`),
	}

	yearRangePattern     = regexp.MustCompile(`(20\d{2})\s*[-–—]\s*(20\d{2})`)
	explicitYearsPattern = regexp.MustCompile(`(\d+)\+?\s*years?\s+(?:of\s+)?experience`)
)

// RequiredYears returns the largest number of years the job description asks for.
func RequiredYears(jd string) int {
	lower := strings.ToLower(jd)
	best := 0
	for _, re := range requiredYearsPatterns {
		best = max(best, maxCapture(re, lower))
	}
	return best
}

// ResumeYears sums the year ranges in the resume. Without ranges it falls
// back to the largest explicit "N years experience" mention.
func ResumeYears(resume string) int {
	ranges := yearRangePattern.FindAllStringSubmatch(resume, -1)
	if len(ranges) > 0 {
		total := 0
		for _, m := range ranges {
			start, _ := strconv.Atoi(m[1])
			end, _ := strconv.Atoi(m[2])
			total += end - start
		}
		return total
	}

	return maxCapture(explicitYearsPattern, strings.ToLower(resume))
}

func maxCapture(re *regexp.Regexp, text string) int {
	best := 0
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		best = max(best, n)
	}
	return best
}

// ExperienceCurve maps demonstrated against required years onto a score.
func ExperienceCurve(required, have int) float64 {
	var score float64
	if required > 0 {
		switch {
		case have >= required:
			score = 80
		case float64(have) >= float64(required)*0.7:
			score = 50
		case have > 0:
			score = 25 * (float64(have) / float64(required))
		}
	} else if have > 0 {
		score = 50
	} else {
		score = 20
	}
	return min(score, 85)
}

// Experience scores the years of experience.
func Experience(_ context.Context, resume, jd string) (Score, error) {
	return Score{Value: ExperienceCurve(RequiredYears(jd), ResumeYears(resume))}, nil
}
