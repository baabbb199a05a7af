package matcher

import (
	"fmt"
	"strings"
)

const (
	explanationSeparator = " | "
	explanationFallback  = "Analysis completed with limited detail due to processing constraints."
)

// explanationInput carries the unrounded values the explanation is based on.
type explanationInput struct {
	semantic, skills, experience, education float64
	multiplier                              float64
	matched, missing                        []string
}

func explain(in explanationInput) string {
	parts := []string{
		overallBand(in),
	}

	if quality := qualityBand(in.multiplier); quality != "" {
		parts = append(parts, quality)
	}

	parts = append(parts,
		relevanceBand(in.semantic),
		skillsBand(in),
		experienceBand(in.experience),
		qualificationsBand(in.education),
	)

	return strings.Join(parts, explanationSeparator)
}

func overallBand(in explanationInput) string {
	weighted := (in.semantic*DefaultWeights.Semantic +
		in.skills*DefaultWeights.Skills +
		in.experience*DefaultWeights.Experience +
		in.education*DefaultWeights.Education) * in.multiplier

	switch {
	case weighted < 15:
		return "CRITICAL MISMATCH: This resume does not align with the job requirements"
	case weighted < 30:
		return "POOR MATCH: Significant improvements needed for this position"
	case weighted < 50:
		return "MODERATE MATCH: Some alignment but major gaps exist"
	case weighted < 70:
		return "GOOD MATCH: Strong alignment with room for improvement"
	default:
		return "EXCELLENT MATCH: Strong candidate for this position"
	}
}

func qualityBand(multiplier float64) string {
	switch {
	case multiplier < 0.2:
		return "RESUME QUALITY: Resume appears incomplete or lacks professional detail"
	case multiplier < 0.4:
		return "RESUME QUALITY: Resume lacks comprehensive professional information"
	case multiplier < 0.6:
		return "RESUME QUALITY: Resume has basic information but could be more detailed"
	default:
		return ""
	}
}

func relevanceBand(semantic float64) string {
	switch {
	case semantic < 15:
		return "RELEVANCE: Extremely poor content alignment"
	case semantic < 25:
		return "RELEVANCE: Poor content match"
	case semantic < 40:
		return "RELEVANCE: Some alignment but significant gaps"
	case semantic < 60:
		return "RELEVANCE: Moderate alignment"
	default:
		return "RELEVANCE: Strong content alignment"
	}
}

func skillsBand(in explanationInput) string {
	matched, missing := in.matched, in.missing

	switch {
	case in.skills < 10:
		msg := "TECHNICAL SKILLS: Critical skills shortage - appears to lack most/all required technical competencies"
		if len(matched) == 0 && len(missing) > 0 {
			msg += ". ZERO matches found for required skills: " + strings.Join(head(missing, 5), ", ")
		}
		return msg
	case in.skills < 25:
		msg := fmt.Sprintf("TECHNICAL SKILLS: Major skills gap - only %d/%d required skills present",
			len(matched), len(matched)+len(missing))
		if len(matched) > 0 {
			msg += ". Has: " + strings.Join(head(matched, 3), ", ")
		}
		if len(missing) > 0 {
			msg += ". CRITICALLY MISSING: " + strings.Join(head(missing, 5), ", ")
		}
		return msg
	case in.skills < 50:
		return fmt.Sprintf("TECHNICAL SKILLS: Partial match - has %d relevant skills but missing %d key requirements",
			len(matched), len(missing))
	default:
		return fmt.Sprintf("TECHNICAL SKILLS: Good coverage - %d relevant skills identified", len(matched))
	}
}

func experienceBand(experience float64) string {
	switch {
	case experience < 20:
		return "EXPERIENCE: Insufficient relevant experience demonstrated or no clear work history provided"
	case experience < 40:
		return "EXPERIENCE: Limited relevant experience or experience level below job requirements"
	case experience < 60:
		return "EXPERIENCE: Adequate experience level with some relevant background"
	default:
		return "EXPERIENCE: Strong relevant experience matching job requirements"
	}
}

func qualificationsBand(education float64) string {
	switch {
	case education < 30:
		return "QUALIFICATIONS: Education/certification requirements not clearly met"
	case education < 60:
		return "QUALIFICATIONS: Basic educational requirements partially satisfied"
	default:
		return "QUALIFICATIONS: Educational background aligns well with requirements"
	}
}

func head(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
