package scoring

import (
	"context"
	"strings"

	"github.com/spigell/resume-fit/internal/skills"
)

const (
	NoRequirementsNote         = "No specific technical requirements identified"
	NoRequirementsFallbackNote = "No technical requirements identified"
	SkillsFailedNote           = "Skills analysis failed"

	maxMatched         = 10
	maxMissing         = 15
	maxFallbackMatched = 8
	maxFallbackMissing = 8
	maxMissingNoSkills = 8
	maxFallbackNoSkill = 5
)

var (
	softSkillCues = []string{"team", "collaborate", "communication", "work with"}
	softSkills    = []string{"communication", "teamwork", "collaboration"}
)

// SkillsFloor is used when both skills variants fail.
var SkillsFloor = Score{Value: 10, Missing: []string{SkillsFailedNote}}

// SkillsScorer measures how many of the job's skills the resume covers.
type SkillsScorer struct {
	extractor *skills.Extractor
}

func NewSkillsScorer(extractor *skills.Extractor) *SkillsScorer {
	if extractor == nil {
		extractor = skills.NewExtractor(nil)
	}
	return &SkillsScorer{extractor: extractor}
}

func (s *SkillsScorer) Evaluate(_ context.Context, resume, jd string) (Score, error) {
	jdSkills := s.extractor.Flatten(jd)
	resumeSkills := s.extractor.Flatten(resume)

	if len(jdSkills) == 0 {
		return Score{Value: 15, Matched: []string{}, Missing: []string{NoRequirementsNote}}, nil
	}
	if len(resumeSkills) == 0 {
		return Score{Value: 3, Matched: []string{}, Missing: head(jdSkills, maxMissingNoSkills)}, nil
	}

	matched, missing := partition(jdSkills, resumeSkills)
	missing = appendSoftSkills(resume, jd, matched, missing)

	coverage := float64(len(matched)) / float64(len(jdSkills))

	return Score{
		Value:   min(CoverageCurve(coverage), 85),
		Matched: head(matched, maxMatched),
		Missing: head(missing, maxMissing),
	}, nil
}

// CoverageCurve maps the share of covered skills onto a score.
func CoverageCurve(c float64) float64 {
	switch {
	case c == 0:
		return 5
	case c < 0.2:
		return 5 + c*50
	case c < 0.5:
		return 15 + (c-0.2)*67
	case c < 0.8:
		return 35 + (c-0.5)*67
	default:
		return 55 + (c-0.8)*125
	}
}

// FallbackSkills scores coverage over the short keyword list.
func FallbackSkills(_ context.Context, resume, jd string) (Score, error) {
	jdSkills := skills.Fallback(jd)
	resumeSkills := skills.Fallback(resume)

	if len(jdSkills) == 0 {
		return Score{Value: 20, Matched: []string{}, Missing: []string{NoRequirementsFallbackNote}}, nil
	}
	if len(resumeSkills) == 0 {
		return Score{Value: 5, Matched: []string{}, Missing: head(jdSkills, maxFallbackNoSkill)}, nil
	}

	matched, missing := partition(jdSkills, resumeSkills)
	coverage := float64(len(matched)) / float64(len(jdSkills))

	return Score{
		Value:   min(coverage*60, 60),
		Matched: head(matched, maxFallbackMatched),
		Missing: head(missing, maxFallbackMissing),
	}, nil
}

// partition splits required skills into those the resume covers and the rest.
func partition(required, have []string) (matched, missing []string) {
	matched = []string{}
	missing = []string{}
	for _, want := range required {
		found := false
		for _, got := range have {
			if skills.Match(want, got) {
				found = true
				break
			}
		}
		if found {
			matched = append(matched, want)
		} else {
			missing = append(missing, want)
		}
	}
	return matched, missing
}

func appendSoftSkills(resume, jd string, matched, missing []string) []string {
	jdLower := strings.ToLower(jd)
	cued := false
	for _, cue := range softSkillCues {
		if strings.Contains(jdLower, cue) {
			cued = true
			break
		}
	}
	if !cued {
		return missing
	}

	listed := make(map[string]struct{}, len(matched)+len(missing))
	for _, s := range matched {
		listed[strings.ToLower(s)] = struct{}{}
	}
	for _, s := range missing {
		listed[strings.ToLower(s)] = struct{}{}
	}

	resumeLower := strings.ToLower(resume)
	for _, soft := range softSkills {
		if _, ok := listed[soft]; ok {
			continue
		}
		if strings.Contains(resumeLower, soft) {
			continue
		}
		missing = append(missing, soft)
	}
	return missing
}

func head(items []string, n int) []string {
	if len(items) > n {
		items = items[:n]
	}
	out := make([]string, len(items))
	copy(out, items)
	return out
}
