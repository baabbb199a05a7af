package skills

import (
	"reflect"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCategorize(t *testing.T) {
	e := NewExtractor(nil)

	got := e.Categorize("Senior engineer: Python, Django, PostgreSQL, AWS and Docker. Some C++ and C# too. Used ML & PyTorch.")

	want := map[string][]string{
		"programming_languages": {"c#", "c++", "python"},
		"ml_frameworks":         {"ml", "pytorch"},
		"data_tools":            {},
		"databases":             {"postgresql"},
		"cloud":                 {"aws", "docker"},
		"ai_rag":                {},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected categories:\n got %v\nwant %v", got, want)
	}
}

func TestCategorizeWholeWords(t *testing.T) {
	e := NewExtractor(nil)
	got := e.Categorize("javascript developer, going forward with rusty tools")

	if langs := got["programming_languages"]; !reflect.DeepEqual(langs, []string{"javascript"}) {
		t.Fatalf("expected only javascript, got %v", langs)
	}
}

func TestFlattenOrder(t *testing.T) {
	e := NewExtractor(nil)
	got := e.Flatten("docker, python, go, redis, pandas")

	want := []string{"go", "python", "pandas", "redis", "docker"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected flat list: got %v want %v", got, want)
	}
}

func TestFlattenRecoversToFallback(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	e := &Extractor{
		categories: []Category{{Name: "broken", Entries: []Entry{{Token: "python"}}}},
		logger:     zap.New(core),
	}

	got := e.Flatten("Python and Docker with node.js")
	want := []string{"python", "node.js", "docker"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected fallback skills: got %v want %v", got, want)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected a warning, got %d entries", logs.Len())
	}
}

func TestFallback(t *testing.T) {
	got := Fallback("Worked with JavaScript and HTML/CSS")
	want := []string{"java", "javascript", "html", "css"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected fallback: got %v want %v", got, want)
	}
	if len(fallbackKeywords) != 22 {
		t.Fatalf("expected 22 fallback keywords, got %d", len(fallbackKeywords))
	}
}

func TestMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Python", " python ", true},
		{"ml", "machine learning", true},
		{"ai", "artificial intelligence", true},
		{"js", "javascript", true},
		{"ts", "typescript", true},
		{"py", "python", true},
		{"sklearn", "scikit-learn", true},
		{"tf", "tensorflow", true},
		{"torch", "pytorch", true},
		{"java", "javascript", false},
		{"ml", "ai", false},
		{"go", "golang", false},
	}

	for _, tt := range tests {
		if got := Match(tt.a, tt.b); got != tt.want {
			t.Fatalf("Match(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestMatchSymmetric(t *testing.T) {
	var all []string
	for _, c := range Taxonomy() {
		for _, e := range c.Entries {
			all = append(all, e.Token)
		}
	}
	for short, full := range synonyms {
		all = append(all, short, full, "  "+short+" ")
	}

	for _, a := range all {
		for _, b := range all {
			if Match(a, b) != Match(b, a) {
				t.Fatalf("Match is not symmetric for %q and %q", a, b)
			}
		}
	}
}

func TestTaxonomy(t *testing.T) {
	wantCategories := []string{"programming_languages", "ml_frameworks", "data_tools", "databases", "cloud", "ai_rag"}
	if got := Categories(); !reflect.DeepEqual(got, wantCategories) {
		t.Fatalf("unexpected categories: %v", got)
	}

	total := 0
	for _, c := range Taxonomy() {
		total += len(c.Entries)
	}
	if total != 78 {
		t.Fatalf("expected 78 patterns, got %d", total)
	}

	if got := Tokens("databases"); len(got) != 10 || got[0] != "mysql" {
		t.Fatalf("unexpected database tokens: %v", got)
	}
	if Tokens("unknown") != nil {
		t.Fatalf("expected nil for unknown category")
	}
}
