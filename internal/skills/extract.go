package skills

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
)

var fallbackKeywords = []string{
	"python", "java", "javascript", "typescript", "react", "node.js", "sql",
	"postgresql", "mysql", "mongodb", "docker", "kubernetes", "aws", "azure",
	"git", "tensorflow", "pytorch", "pandas", "numpy", "html", "css", "django",
}

// Extractor finds taxonomy skills in text.
type Extractor struct {
	categories []Category
	logger     *zap.Logger
}

// NewExtractor builds an extractor over the default taxonomy.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{categories: taxonomy, logger: logger}
}

// Categorize returns every category mapped to its sorted, unique tokens found in text.
func (e *Extractor) Categorize(text string) map[string][]string {
	out := make(map[string][]string, len(e.categories))
	for _, c := range e.categories {
		found := make([]string, 0)
		for _, entry := range c.Entries {
			if entry.Pattern.MatchString(text) {
				found = append(found, entry.Token)
			}
		}
		sort.Strings(found)
		out[c.Name] = found
	}
	return out
}

// Flatten returns the detected skills in taxonomy category order without
// duplicates. When categorization fails the fallback keyword list is used.
func (e *Extractor) Flatten(text string) (skills []string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("skill extraction failed, using keyword fallback", zap.String("error", fmt.Sprint(r)))
			skills = Fallback(text)
		}
	}()

	byCategory := e.Categorize(text)
	seen := make(map[string]struct{})
	for _, c := range e.categories {
		for _, token := range byCategory[c.Name] {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			skills = append(skills, token)
		}
	}
	return skills
}

// Fallback detects a short list of common technology keywords by substring.
func Fallback(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, kw := range fallbackKeywords {
		if strings.Contains(lower, kw) {
			out = append(out, kw)
		}
	}
	return out
}
