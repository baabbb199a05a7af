package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-fit/internal/profile"
)

var parseCmd = &cobra.Command{
	Use:   "parse <resume-file>",
	Short: "Extract contacts, location and skills from a resume",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		logger, _ := setup()

		output, _ := cmd.Flags().GetString("output")
		if output == outputText {
			output = outputYAML
		}
		if err := checkOutput(output); err != nil {
			logger.Fatal("invalid flag", zap.Error(err))
		}

		text, err := readText(args[0])
		if err != nil {
			logger.Fatal("reading the resume", zap.Error(err))
		}

		if err := writeStructured(cmd.OutOrStdout(), profile.Parse(text), output); err != nil {
			logger.Fatal("writing the profile", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringP("output", "o", outputYAML, "output format: json or yaml")
}
