package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/spigell/resume-fit/internal/matcher"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func checkOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (use text, json or yaml)", format)
	}
}

// writeStructured encodes v as json or yaml.
func writeStructured(w io.Writer, v any, format string) error {
	switch format {
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}

func writeResult(w io.Writer, res *matcher.Result, format string) error {
	if format != outputText {
		return writeStructured(w, res, format)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Overall score: %.1f\n\n", res.OverallScore)

	b.WriteString("Breakdown:\n")
	fmt.Fprintf(&b, "  semantic         %5.1f\n", res.Breakdown.Semantic)
	fmt.Fprintf(&b, "  skills           %5.1f\n", res.Breakdown.Skills)
	fmt.Fprintf(&b, "  experience       %5.1f\n", res.Breakdown.Experience)
	fmt.Fprintf(&b, "  education        %5.1f\n", res.Breakdown.Education)
	fmt.Fprintf(&b, "  content quality  %5.1f\n\n", res.Breakdown.ContentQuality)

	fmt.Fprintf(&b, "Matched skills: %s\n", list(res.MatchedSkills))
	fmt.Fprintf(&b, "Missing skills: %s\n\n", list(res.MissingSkills))

	b.WriteString("Explanation:\n")
	for _, part := range strings.Split(res.Explanation, " | ") {
		fmt.Fprintf(&b, "  %s\n", part)
	}

	b.WriteString("\nRecommendations:\n")
	for _, line := range strings.Split(res.Recommendations, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			fmt.Fprintf(&b, "  - %s\n", line)
		}
	}

	fmt.Fprintf(&b, "\nResume: %d words, content depth %.2f, estimated completeness %d%%\n",
		res.ResumeInsights.WordCount,
		res.ResumeInsights.ContentDepth,
		res.ResumeInsights.EstimatedCompleteness,
	)

	_, err := io.WriteString(w, b.String())
	return err
}

func list(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
