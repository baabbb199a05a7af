package matcher

// Breakdown holds the sub-scores, each within [0,100].
type Breakdown struct {
	Semantic       float64 `json:"semantic" yaml:"semantic"`
	Skills         float64 `json:"skills" yaml:"skills"`
	Experience     float64 `json:"experience" yaml:"experience"`
	Education      float64 `json:"education" yaml:"education"`
	ContentQuality float64 `json:"content_quality" yaml:"content_quality"`
}

// Weights are the fixed factors of each sub-score. ContentQuality is
// informational, content depth scales the score instead of adding to it.
type Weights struct {
	Semantic       float64 `json:"semantic" yaml:"semantic"`
	Skills         float64 `json:"skills" yaml:"skills"`
	Experience     float64 `json:"experience" yaml:"experience"`
	Education      float64 `json:"education" yaml:"education"`
	ContentQuality float64 `json:"content_quality" yaml:"content_quality"`
}

// DefaultWeights are the calibrated weights.
var DefaultWeights = Weights{
	Semantic:       0.30,
	Skills:         0.35,
	Experience:     0.20,
	Education:      0.15,
	ContentQuality: 1.0,
}

// Insights describe the resume on its own.
type Insights struct {
	ContentDepth          float64 `json:"content_depth" yaml:"content_depth"`
	WordCount             int     `json:"word_count" yaml:"word_count"`
	EstimatedCompleteness int     `json:"estimated_completeness" yaml:"estimated_completeness"`
}

// Outcome tells how a result was produced.
type Outcome string

const (
	OutcomeScored       Outcome = "scored"
	OutcomeInsufficient Outcome = "insufficient"
	OutcomeFailed       Outcome = "failed"
)

// Result is the full analysis of one resume against one job description.
// Every outcome shares this shape.
type Result struct {
	OverallScore    float64   `json:"overall_score" yaml:"overall_score"`
	Breakdown       Breakdown `json:"breakdown" yaml:"breakdown"`
	Weights         Weights   `json:"weights" yaml:"weights"`
	MatchedSkills   []string  `json:"matched_skills" yaml:"matched_skills"`
	MissingSkills   []string  `json:"missing_skills" yaml:"missing_skills"`
	Explanation     string    `json:"explanation" yaml:"explanation"`
	Recommendations string    `json:"recommendations" yaml:"recommendations"`
	ResumeInsights  Insights  `json:"resume_insights" yaml:"resume_insights"`

	Outcome Outcome `json:"-" yaml:"-"`
}
