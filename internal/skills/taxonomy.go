// Package skills maps free text onto a fixed taxonomy of technical skills.
package skills

import (
	"regexp"
	"strings"
)

// TaxonomyVersion changes whenever a category or token is added or removed.
const TaxonomyVersion = "2024.1"

// Entry is one canonical token and the pattern that detects it.
type Entry struct {
	Token   string
	Pattern *regexp.Regexp
}

// Category groups entries under a stable name.
type Category struct {
	Name    string
	Entries []Entry
}

var taxonomy = []Category{
	category("programming_languages",
		"python", "java", "javascript", "typescript", "go", "golang", "rust",
		"kotlin", "scala", "c++", "c#", "ruby", "php", "swift", "julia", "r", "perl",
	),
	category("ml_frameworks",
		"ml", "machine learning", "pytorch", "tensorflow", "keras", "scikit-learn",
		"sklearn", "transformers", "huggingface", "hf", "mxnet", "caffe", "torch",
	),
	category("data_tools",
		"pandas", "numpy", "matplotlib", "seaborn", "plotly", "altair", "pyspark",
		"apache spark", "dask", "polars",
	),
	category("databases",
		"mysql", "postgresql", "postgres", "sqlite", "mongodb", "cassandra", "redis",
		"elasticsearch", "dynamodb", "neo4j",
	),
	category("cloud",
		"aws", "amazon web services", "azure", "gcp", "google cloud", "heroku",
		"digitalocean", "kubernetes", "k8s", "docker",
	),
	category("ai_rag",
		"rag", "retrieval augmented", "generative ai", "llm", "large language model",
		"faiss", "vectorstore", "embedding", "prompt engineering", "langchain",
		"deep learning", "neural networks", "neural network", "ai",
		"artificial intelligence", "computer vision", "nlp", "natural language processing",
	),
}

func category(name string, tokens ...string) Category {
	c := Category{Name: name, Entries: make([]Entry, len(tokens))}
	for i, token := range tokens {
		c.Entries[i] = Entry{Token: token, Pattern: wordPattern(token)}
	}
	return c
}

// wordPattern matches token as a whole word. Tokens ending in a symbol such as
// "c++" cannot rely on a trailing \b, so they require a non-word rune or the end.
func wordPattern(token string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(token)
	last := token[len(token)-1]
	tail := `\b`
	if !isWordByte(last) {
		tail = `(?:\W|$)`
	}
	return regexp.MustCompile(`(?i)\b` + quoted + tail)
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// Taxonomy returns the category table. Callers must not modify it.
func Taxonomy() []Category {
	return taxonomy
}

// Categories lists the category names in taxonomy order.
func Categories() []string {
	names := make([]string, len(taxonomy))
	for i, c := range taxonomy {
		names[i] = c.Name
	}
	return names
}

// Tokens lists the canonical tokens of the named category.
func Tokens(name string) []string {
	for _, c := range taxonomy {
		if c.Name != name {
			continue
		}
		out := make([]string, len(c.Entries))
		for i, e := range c.Entries {
			out[i] = e.Token
		}
		return out
	}
	return nil
}

var synonyms = map[string]string{
	"ml":      "machine learning",
	"ai":      "artificial intelligence",
	"js":      "javascript",
	"ts":      "typescript",
	"py":      "python",
	"sklearn": "scikit-learn",
	"tf":      "tensorflow",
	"torch":   "pytorch",
}

// Canonical lowercases and trims s and resolves a known abbreviation.
func Canonical(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if full, ok := synonyms[s]; ok {
		return full
	}
	return s
}

// Match reports whether a and b name the same skill.
func Match(a, b string) bool {
	return Canonical(a) == Canonical(b)
}
