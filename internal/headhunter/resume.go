package headhunter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
)

var now = time.Now

type Resumes struct {
	Items []*Resume
}

type Resume struct {
	Title string
	ID    string `json:"id,omitempty"`
}

type ResumeExperience struct {
	Company     string `json:"company,omitempty"`
	Position    string `json:"position,omitempty"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start,omitempty"`
	End         string `json:"end,omitempty"`
}

type ResumeEducationItem struct {
	Name         string `json:"name,omitempty"`
	Organization string `json:"organization,omitempty"`
	Result       string `json:"result,omitempty"`
	Year         int    `json:"year,omitempty"`
}

type ResumeEducation struct {
	Level   NamedEntity           `json:"level,omitempty"`
	Primary []ResumeEducationItem `json:"primary,omitempty"`
}

type ResumeDetails struct {
	ID         string             `json:"id,omitempty"`
	Title      string             `json:"title,omitempty"`
	About      string             `json:"skills,omitempty"`
	SkillSet   []string           `json:"skill_set,omitempty"`
	Experience []ResumeExperience `json:"experience,omitempty"`
	Education  ResumeEducation    `json:"education,omitempty"`
}

// GetMineResumes lists resumes of the token owner.
func (c *Client) GetMineResumes(ctx context.Context) (*Resumes, error) {
	if !c.HasToken() {
		return nil, fmt.Errorf("listing own resumes requires an hh.ru token")
	}

	apiURLMineResumes := fmt.Sprintf("%s/resumes/%s", c.APIURL, mineResumeID)

	items, err := c.GetItems(ctx, apiURLMineResumes, nil, 0)
	if err != nil {
		return nil, err
	}

	var resumes []*Resume
	if err = mapstructure.Decode(items, &resumes); err != nil {
		return nil, err
	}

	return &Resumes{
		Items: resumes,
	}, nil
}

func (r *Resumes) Len() int {
	return len(r.Items)
}

func (r *Resumes) Titles() []string {
	titles := make([]string, 0, len(r.Items))

	for _, v := range r.Items {
		titles = append(titles, v.Title)
	}

	return titles
}

func (r *Resumes) FindByTitle(title string) *Resume {
	for _, resume := range r.Items {
		if resume.Title == title {
			return resume
		}
	}

	return nil
}

func (c *Client) GetResumeDetails(ctx context.Context, id string) (*ResumeDetails, error) {
	if id == "" {
		return nil, fmt.Errorf("resume id is required")
	}

	apiURL := fmt.Sprintf("%s/resumes/%s", c.APIURL, id)

	var details ResumeDetails
	if err := c.getJSON(ctx, apiURL, nil, &details); err != nil {
		return nil, fmt.Errorf("get resume %s: %w", id, err)
	}

	return &details, nil
}

// Text renders the resume as plain text. Experience periods are written as
// "YYYY - YYYY" so that the years can be summed by the experience scorer.
func (r *ResumeDetails) Text() string {
	var b strings.Builder

	if r.Title != "" {
		b.WriteString(r.Title)
		b.WriteString("\n\n")
	}

	if len(r.Experience) > 0 {
		b.WriteString("Experience\n")
		for _, exp := range r.Experience {
			fmt.Fprintf(&b, "%s at %s (%s)\n", exp.Position, exp.Company, period(exp.Start, exp.End))
			if d := strings.TrimSpace(exp.Description); d != "" {
				b.WriteString(d)
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	if len(r.Education.Primary) > 0 {
		b.WriteString("Education\n")
		if r.Education.Level.Name != "" {
			b.WriteString(r.Education.Level.Name)
			b.WriteString("\n")
		}
		for _, edu := range r.Education.Primary {
			line := strings.TrimSpace(strings.Join(nonEmpty(edu.Name, edu.Organization, edu.Result), ", "))
			if edu.Year > 0 {
				line = fmt.Sprintf("%s (%d)", line, edu.Year)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if about := strings.TrimSpace(r.About); about != "" {
		b.WriteString(about)
		b.WriteString("\n\n")
	}

	if len(r.SkillSet) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(r.SkillSet, ", "))
	}

	return strings.TrimSpace(b.String())
}

func period(start, end string) string {
	from := year(start)
	to := year(end)
	if to == "" {
		to = fmt.Sprintf("%d", now().Year())
	}
	if from == "" {
		return to
	}

	return fmt.Sprintf("%s - %s", from, to)
}

func year(date string) string {
	if len(date) < 4 {
		return ""
	}
	return date[:4]
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
