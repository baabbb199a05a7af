package matcher

import (
	"math"

	"go.uber.org/zap"

	"github.com/spigell/resume-fit/internal/depth"
	"github.com/spigell/resume-fit/internal/scoring"
	"github.com/spigell/resume-fit/internal/utils"
)

// MaxOverallScore caps every score: no automated match is certain.
const MaxOverallScore = 95.0

type signalScores struct {
	semantic, skills, experience, qualifications scoring.Score
}

func (s *signalScores) set(name string, score scoring.Score) {
	switch name {
	case SignalSemantic:
		s.semantic = score
	case SignalSkills:
		s.skills = score
	case SignalExperience:
		s.experience = score
	case SignalQualifications:
		s.qualifications = score
	}
}

// Overall combines the sub-scores and the content multiplier.
func Overall(semantic, skills, experience, education, multiplier float64) float64 {
	base := semantic*DefaultWeights.Semantic +
		skills*DefaultWeights.Skills +
		experience*DefaultWeights.Experience +
		education*DefaultWeights.Education
	return min(base*(0.7+multiplier*0.3), MaxOverallScore)
}

func aggregate(log *zap.Logger, s signalScores, resumeDepth, jdDepth float64, wordCount int) *Result {
	multiplier := depth.Multiplier(resumeDepth, jdDepth)
	overall := Overall(s.semantic.Value, s.skills.Value, s.experience.Value, s.qualifications.Value, multiplier)

	matched := nonNil(s.skills.Matched)
	missing := nonNil(s.skills.Missing)

	explanation := safeText(log, "explanation", func() string {
		return explain(explanationInput{
			semantic:   s.semantic.Value,
			skills:     s.skills.Value,
			experience: s.experience.Value,
			education:  s.qualifications.Value,
			multiplier: multiplier,
			matched:    matched,
			missing:    missing,
		})
	}, explanationFallback)

	recommendations := safeText(log, "recommendations", func() string {
		return recommend(overall, missing, s.experience.Value)
	}, recommendationsFallback)

	return &Result{
		OverallScore: utils.Round1(overall),
		Breakdown: Breakdown{
			Semantic:       utils.Round1(s.semantic.Value),
			Skills:         utils.Round1(s.skills.Value),
			Experience:     utils.Round1(s.experience.Value),
			Education:      utils.Round1(s.qualifications.Value),
			ContentQuality: utils.Round1(multiplier * 100),
		},
		Weights:         DefaultWeights,
		MatchedSkills:   matched,
		MissingSkills:   missing,
		Explanation:     explanation,
		Recommendations: recommendations,
		ResumeInsights: Insights{
			ContentDepth:          math.Round(resumeDepth*100) / 100,
			WordCount:             wordCount,
			EstimatedCompleteness: int(math.Round(min(100, resumeDepth*100))),
		},
		Outcome: OutcomeScored,
	}
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
