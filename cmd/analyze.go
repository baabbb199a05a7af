package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-fit/internal/headhunter"
)

const (
	PromptJDFile    = "Job description file"
	PromptVacancyID = "hh.ru vacancy id"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a resume against a job description",
	Run: func(cmd *cobra.Command, _ []string) {
		analyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringP("resume", "r", "", "path to the resume text file")
	analyzeCmd.Flags().Bool("hh-resume", false, "choose the resume among your hh.ru resumes")
	analyzeCmd.Flags().String("jd", "", "path to the job description text file")
	analyzeCmd.Flags().String("vacancy", "", "hh.ru vacancy id to use as the job description")
	analyzeCmd.Flags().StringP("output", "o", outputText, "output format: text, json or yaml")
}

func analyze(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	output, _ := cmd.Flags().GetString("output")
	if err := checkOutput(output); err != nil {
		logger.Fatal("invalid flag", zap.Error(err))
	}

	hh, err := newHeadhunter(config, logger, false)
	if err != nil {
		logger.Fatal("creating hh.ru client", zap.Error(err))
	}

	resume, err := resolveResume(ctx, cmd, hh)
	if err != nil {
		logger.Fatal("getting the resume", zap.Error(err))
	}

	jd, err := resolveJobDescription(ctx, cmd, hh)
	if err != nil {
		logger.Fatal("getting the job description", zap.Error(err))
	}

	m, lazy, err := newMatcher(config, logger, nil)
	if err != nil {
		logger.Fatal("creating the matcher", zap.Error(err))
	}
	defer closeEmbedder(lazy, logger)

	res := m.Analyze(ctx, resume, jd)

	if err := writeResult(cmd.OutOrStdout(), res, output); err != nil {
		logger.Fatal("writing the result", zap.Error(err))
	}
}

func resolveResume(ctx context.Context, cmd *cobra.Command, hh *headhunter.Client) (string, error) {
	if fromHH, _ := cmd.Flags().GetBool("hh-resume"); fromHH {
		return selectHHResume(ctx, hh)
	}

	path, _ := cmd.Flags().GetString("resume")
	if path == "" {
		var err error
		path, err = promptPath("Resume file")
		if err != nil {
			return "", err
		}
	}

	return readText(path)
}

func selectHHResume(ctx context.Context, hh *headhunter.Client) (string, error) {
	if !hh.HasToken() {
		return "", errors.New("hh.ru token is required to read your resumes (set headhunter.token-file)")
	}

	resumes, err := hh.GetMineResumes(ctx)
	if err != nil {
		return "", err
	}
	if resumes.Len() == 0 {
		return "", errors.New("no resumes found on hh.ru")
	}

	selectPrompt := promptui.Select{
		Label: "Choose a resume and press ENTER",
		Items: resumes.Titles(),
	}
	_, title, err := selectPrompt.Run()
	if err != nil {
		return "", err
	}

	selected := resumes.FindByTitle(title)
	if selected == nil {
		return "", fmt.Errorf("resume with title %q not found", title)
	}

	details, err := hh.GetResumeDetails(ctx, selected.ID)
	if err != nil {
		return "", err
	}

	return details.Text(), nil
}

func resolveJobDescription(ctx context.Context, cmd *cobra.Command, hh *headhunter.Client) (string, error) {
	path, _ := cmd.Flags().GetString("jd")
	vacancyID, _ := cmd.Flags().GetString("vacancy")

	if path != "" && vacancyID != "" {
		return "", errors.New("--jd and --vacancy are mutually exclusive")
	}

	if path == "" && vacancyID == "" {
		sourcePrompt := promptui.Select{
			Label: "Where is the job description?",
			Items: []string{PromptJDFile, PromptVacancyID},
		}
		_, source, err := sourcePrompt.Run()
		if err != nil {
			return "", err
		}

		switch source {
		case PromptJDFile:
			path, err = promptPath(PromptJDFile)
		case PromptVacancyID:
			vacancyID, err = promptValue(PromptVacancyID)
		}
		if err != nil {
			return "", err
		}
	}

	if path != "" {
		return readText(path)
	}

	vacancy, err := hh.GetVacancy(ctx, vacancyID)
	if headhunter.IsNotFound(err) {
		return "", fmt.Errorf("vacancy %s not found", vacancyID)
	}
	if err != nil {
		return "", err
	}
	return vacancy.Text()
}

func promptPath(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			info, err := os.Stat(strings.TrimSpace(input))
			if err != nil {
				return err
			}
			if info.IsDir() {
				return fmt.Errorf("%s is a directory", input)
			}
			return nil
		},
	}

	path, err := p.Run()
	return strings.TrimSpace(path), err
}

func promptValue(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return errors.New("value is required")
			}
			return nil
		},
	}

	value, err := p.Run()
	return strings.TrimSpace(value), err
}
