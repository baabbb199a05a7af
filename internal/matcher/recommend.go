package matcher

import "strings"

const (
	maxRecommendations = 5

	recommendationsFallback = "Focus on improving resume completeness and technical skills alignment\n" +
		"Add detailed work experience with specific achievements\n" +
		"Develop the technical skills mentioned in job requirements"
)

func recommend(overall float64, missing []string, experience float64) string {
	var recs []string

	switch {
	case overall < 20:
		recs = []string{
			"Resume needs major overhaul",
			"Add detailed work experience",
			"List technical skills",
			"Include education",
		}
	case overall < 35:
		recs = []string{
			"Significant improvements needed",
			"Focus on missing skills",
			"Highlight relevant experience",
		}
	case overall < 50:
		recs = []string{
			"Moderate improvements needed",
			"Strengthen technical skills",
			"Add quantified achievements",
		}
	default:
		recs = []string{"Good foundation", "Add more detail", "Highlight projects"}
	}

	if len(missing) > 0 {
		recs = append(recs, "Missing skills: "+strings.Join(head(missing, 3), ", "))
	}
	if experience < 20 {
		recs = append(recs, "Build more relevant experience")
	}
	if overall < 30 {
		recs = append(recs, "Improve resume structure", "Add quantified achievements")
	}

	return strings.Join(head(recs, maxRecommendations), "\n")
}
