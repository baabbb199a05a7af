package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-fit/internal/headhunter"
	"github.com/spigell/resume-fit/internal/ranking"
)

const defaultSearchLimit = 20

var rankCmd = &cobra.Command{
	Use:   "rank [files...]",
	Short: "Rank job descriptions for a resume, or resumes for a job description",
	Long: `With --resume the positional files (or hh.ru search results with --search)
are job descriptions ranked for that resume. With --jd the positional files are
resumes ranked for that job description.`,
	Run: func(cmd *cobra.Command, args []string) {
		rank(cmd, args)
	},
}

type rankedEntry struct {
	ID           string  `json:"id" yaml:"id"`
	Title        string  `json:"title" yaml:"title"`
	OverallScore float64 `json:"overall_score" yaml:"overall_score"`
	Matched      int     `json:"matched_skills" yaml:"matched_skills"`
	Explanation  string  `json:"explanation" yaml:"explanation"`
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("resume", "r", "", "resume file to rank job descriptions for")
	rankCmd.Flags().String("jd", "", "job description file to rank resumes for")
	rankCmd.Flags().Bool("search", false, "rank hh.ru vacancies found with the search section of the config")
	rankCmd.Flags().Int("search-limit", defaultSearchLimit, "max vacancies to take from the search")
	rankCmd.Flags().StringP("output", "o", outputText, "output format: text, json or yaml")
}

func rank(cmd *cobra.Command, args []string) {
	ctx := context.Background()
	logger, config := setup()

	output, _ := cmd.Flags().GetString("output")
	if err := checkOutput(output); err != nil {
		logger.Fatal("invalid flag", zap.Error(err))
	}

	resumePath, _ := cmd.Flags().GetString("resume")
	jdPath, _ := cmd.Flags().GetString("jd")
	search, _ := cmd.Flags().GetBool("search")

	if (resumePath == "") == (jdPath == "") {
		logger.Fatal("exactly one of --resume or --jd is required")
	}

	m, lazy, err := newMatcher(config, logger, nil)
	if err != nil {
		logger.Fatal("creating the matcher", zap.Error(err))
	}
	defer closeEmbedder(lazy, logger)

	ranker, err := ranking.New(m, config.Rank, logger.Named("ranking"))
	if err != nil {
		logger.Fatal("creating the ranker", zap.Error(err))
	}

	var ranked []ranking.Ranked
	switch {
	case resumePath != "":
		resume, err := readText(resumePath)
		if err != nil {
			logger.Fatal("reading the resume", zap.Error(err))
		}

		jobs, err := fileCandidates(args)
		if err != nil {
			logger.Fatal("reading job descriptions", zap.Error(err))
		}

		if search {
			limit, _ := cmd.Flags().GetInt("search-limit")
			found, err := searchCandidates(ctx, config, logger, limit)
			if err != nil {
				logger.Fatal("searching vacancies", zap.Error(err))
			}
			jobs = append(jobs, found...)
		}

		if len(jobs) == 0 {
			logger.Fatal("nothing to rank", zap.String("hint", "pass job description files or --search"))
		}

		ranked, err = ranker.RankJobs(ctx, resume, jobs)
		if err != nil {
			logger.Fatal("ranking job descriptions", zap.Error(err))
		}
	default:
		if search {
			logger.Fatal("--search works only with --resume")
		}

		jd, err := readText(jdPath)
		if err != nil {
			logger.Fatal("reading the job description", zap.Error(err))
		}

		resumes, err := fileCandidates(args)
		if err != nil {
			logger.Fatal("reading resumes", zap.Error(err))
		}
		if len(resumes) == 0 {
			logger.Fatal("nothing to rank", zap.String("hint", "pass resume files"))
		}

		ranked, err = ranker.RankResumes(ctx, jd, resumes)
		if err != nil {
			logger.Fatal("ranking resumes", zap.Error(err))
		}
	}

	if err := writeRanking(cmd.OutOrStdout(), ranked, output); err != nil {
		logger.Fatal("writing the ranking", zap.Error(err))
	}
}

func fileCandidates(paths []string) ([]ranking.Candidate, error) {
	candidates := make([]ranking.Candidate, 0, len(paths))
	for _, path := range paths {
		text, err := readText(path)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, ranking.Candidate{
			ID:    path,
			Title: filepath.Base(path),
			Text:  text,
		})
	}
	return candidates, nil
}

// searchCandidates fetches full descriptions of the found vacancies. A
// vacancy whose details cannot be fetched is ranked by its search snippet.
func searchCandidates(ctx context.Context, config *Config, logger *zap.Logger, limit int) ([]ranking.Candidate, error) {
	if config.Search == nil || config.Search.Text == "" {
		return nil, errors.New("search.text is required in the config")
	}

	hh, err := newHeadhunter(config, logger, false)
	if err != nil {
		return nil, err
	}

	vacancies, err := hh.Search(ctx, config.Search, limit)
	if err != nil {
		return nil, err
	}
	if excluded := vacancies.ExcludeArchived(); len(excluded) > 0 {
		logger.Info("archived vacancies excluded", zap.Strings("ids", excluded))
	}
	logger.Info("vacancies found", zap.Int("count", vacancies.Len()))
	logger.Debug("vacancies to fetch", zap.Strings("ids", vacancies.IDs()))

	candidates := make([]ranking.Candidate, 0, vacancies.Len())
	for _, found := range vacancies.Items {
		vacancy := found
		full, err := hh.GetVacancy(ctx, found.ID)
		if headhunter.IsNotFound(err) {
			logger.Info("vacancy disappeared, skipping", zap.String("vacancy_id", found.ID))
			continue
		}
		if err != nil {
			logger.Warn("using the search snippet", zap.String("vacancy_id", found.ID), zap.Error(err))
		} else {
			vacancy = full
		}

		text, err := vacancy.Text()
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, ranking.Candidate{
			ID:    vacancy.ID,
			Title: vacancyTitle(vacancy),
			Text:  text,
		})
	}

	return candidates, nil
}

func vacancyTitle(v *headhunter.Vacancy) string {
	if v.AlternateURL == "" {
		return v.Title()
	}
	return fmt.Sprintf("%s %s", v.Title(), v.AlternateURL)
}

func writeRanking(w io.Writer, ranked []ranking.Ranked, format string) error {
	entries := make([]rankedEntry, 0, len(ranked))
	for _, r := range ranked {
		entries = append(entries, rankedEntry{
			ID:           r.Candidate.ID,
			Title:        r.Candidate.Title,
			OverallScore: r.Result.OverallScore,
			Matched:      len(r.Result.MatchedSkills),
			Explanation:  r.Result.Explanation,
		})
	}

	if format != outputText {
		return writeStructured(w, entries, format)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSCORE\tMATCHED\tTITLE")
	for i, e := range entries {
		fmt.Fprintf(tw, "%d\t%.1f\t%d\t%s\n", i+1, e.OverallScore, e.Matched, e.Title)
	}
	return tw.Flush()
}
