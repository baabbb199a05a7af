package matcher

import (
	"strings"
	"testing"
)

func TestExplainSkillsBands(t *testing.T) {
	tests := []struct {
		name string
		in   explanationInput
		want string
	}{
		{
			name: "zero matches",
			in:   explanationInput{skills: 3, missing: []string{"python", "go", "rust", "java", "scala", "php"}},
			want: "TECHNICAL SKILLS: Critical skills shortage - appears to lack most/all required technical competencies" +
				". ZERO matches found for required skills: python, go, rust, java, scala",
		},
		{
			name: "major gap",
			in:   explanationInput{skills: 14, matched: []string{"python"}, missing: []string{"go", "rust"}},
			want: "TECHNICAL SKILLS: Major skills gap - only 1/3 required skills present. Has: python. CRITICALLY MISSING: go, rust",
		},
		{
			name: "partial",
			in:   explanationInput{skills: 35, matched: []string{"python", "go"}, missing: []string{"rust", "java"}},
			want: "TECHNICAL SKILLS: Partial match - has 2 relevant skills but missing 2 key requirements",
		},
		{
			name: "good",
			in:   explanationInput{skills: 80, matched: []string{"python"}},
			want: "TECHNICAL SKILLS: Good coverage - 1 relevant skills identified",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := skillsBand(tt.in); got != tt.want {
				t.Fatalf("unexpected band:\n got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestExplainOverallUsesMultiplier(t *testing.T) {
	in := explanationInput{semantic: 80, skills: 80, experience: 80, education: 70, multiplier: 0.3}
	got := explain(in)

	// base 78.5 scaled by 0.3 falls in the poor band
	if !strings.HasPrefix(got, "POOR MATCH") {
		t.Fatalf("expected poor match band, got %q", got)
	}
	if !strings.Contains(got, "RESUME QUALITY: Resume lacks comprehensive professional information") {
		t.Fatalf("expected quality band, got %q", got)
	}
	if parts := strings.Split(got, " | "); len(parts) != 6 {
		t.Fatalf("expected 6 clauses, got %d", len(parts))
	}

	in.multiplier = 1
	if got := explain(in); !strings.HasPrefix(got, "EXCELLENT MATCH") || strings.Contains(got, "RESUME QUALITY") {
		t.Fatalf("unexpected explanation for full multiplier: %q", got)
	}
}

func TestRecommend(t *testing.T) {
	tests := []struct {
		name       string
		overall    float64
		missing    []string
		experience float64
		want       []string
	}{
		{
			name:       "low score is capped at five",
			overall:    10,
			missing:    []string{"go", "rust", "java", "php"},
			experience: 0,
			want: []string{
				"Resume needs major overhaul",
				"Add detailed work experience",
				"List technical skills",
				"Include education",
				"Missing skills: go, rust, java",
			},
		},
		{
			name:       "poor score adds structure advice",
			overall:    25,
			experience: 50,
			want: []string{
				"Significant improvements needed",
				"Focus on missing skills",
				"Highlight relevant experience",
				"Improve resume structure",
				"Add quantified achievements",
			},
		},
		{
			name:       "moderate",
			overall:    45,
			experience: 10,
			want: []string{
				"Moderate improvements needed",
				"Strengthen technical skills",
				"Add quantified achievements",
				"Build more relevant experience",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recommend(tt.overall, tt.missing, tt.experience); got != strings.Join(tt.want, "\n") {
				t.Fatalf("unexpected recommendations:\n%s", got)
			}
		})
	}
}

func TestOverall(t *testing.T) {
	if got := Overall(100, 100, 100, 100, 1); got != MaxOverallScore {
		t.Fatalf("expected cap %v, got %v", MaxOverallScore, got)
	}
	if got := Overall(0, 0, 0, 0, 1); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}
