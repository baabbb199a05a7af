package matcher

import "fmt"

const (
	InsufficientNote = "Insufficient content for analysis"
	FailedNote       = "Analysis failed"

	minimalRecommendations = "Provide comprehensive resume with work history\n" +
		"List specific technical skills and tools used\n" +
		"Include education background and certifications\n" +
		"Describe concrete projects and achievements\n" +
		"Ensure both resume and job description are detailed"

	errorRecommendations = "Verify proper text formatting\n" +
		"Check for special characters\n" +
		"Try with plain text versions"
)

// MinimalResult is returned for input too thin or too suspicious to analyze.
func MinimalResult(reason string, wordCount int) *Result {
	return &Result{
		OverallScore:  0,
		Breakdown:     Breakdown{ContentQuality: 10},
		Weights:       DefaultWeights,
		MatchedSkills: []string{},
		MissingSkills: []string{InsufficientNote},
		Explanation: fmt.Sprintf("Very low score: %s. A complete resume should include detailed work experience, "+
			"technical skills, education, and project descriptions.", reason),
		Recommendations: minimalRecommendations,
		ResumeInsights: Insights{
			ContentDepth:          0.03,
			WordCount:             wordCount,
			EstimatedCompleteness: 3,
		},
		Outcome: OutcomeInsufficient,
	}
}

// ErrorResult is returned when the analysis itself broke.
func ErrorResult(reason string) *Result {
	return &Result{
		OverallScore:    0,
		Breakdown:       Breakdown{},
		Weights:         DefaultWeights,
		MatchedSkills:   []string{},
		MissingSkills:   []string{FailedNote},
		Explanation:     fmt.Sprintf("Analysis failed: %s. Please check your input and try again.", reason),
		Recommendations: errorRecommendations,
		ResumeInsights:  Insights{},
		Outcome:         OutcomeFailed,
	}
}
