package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-fit/internal/skills"
)

var skillsCmd = &cobra.Command{
	Use:   "skills [text-file]",
	Short: "List the detectable skills, or the skills found in a file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger, _ := setup()

		output, _ := cmd.Flags().GetString("output")
		if err := checkOutput(output); err != nil {
			logger.Fatal("invalid flag", zap.Error(err))
		}

		found := taxonomyTokens()
		if len(args) == 1 {
			text, err := readText(args[0])
			if err != nil {
				logger.Fatal("reading the file", zap.Error(err))
			}
			found = skills.NewExtractor(logger.Named("skills")).Categorize(text)
		}

		if err := writeSkills(cmd.OutOrStdout(), found, output); err != nil {
			logger.Fatal("writing skills", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(skillsCmd)

	skillsCmd.Flags().StringP("output", "o", outputText, "output format: text, json or yaml")
}

func taxonomyTokens() map[string][]string {
	out := make(map[string][]string)
	for _, name := range skills.Categories() {
		out[name] = skills.Tokens(name)
	}
	return out
}

func writeSkills(w io.Writer, byCategory map[string][]string, format string) error {
	if format != outputText {
		return writeStructured(w, byCategory, format)
	}

	for _, name := range skills.Categories() {
		tokens, ok := byCategory[name]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s: %s\n", name, list(tokens)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "taxonomy version %s\n", skills.TaxonomyVersion)
	return err
}
