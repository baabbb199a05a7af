package headhunter

import (
	"context"
	"fmt"
	"strings"
)

type Vacancies struct {
	Items []*Vacancy
}

type NamedEntity struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

type Salary struct {
	From     int    `json:"from,omitempty"`
	To       int    `json:"to,omitempty"`
	Currency string `json:"currency,omitempty"`
	Gross    bool   `json:"gross,omitempty"`
}

type Employer struct {
	ID           string `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	URL          string `json:"url,omitempty"`
	AlternateURL string `json:"alternate_url,omitempty"`
	Trusted      bool   `json:"trusted,omitempty"`
}

type KeySkill struct {
	Name string `json:"name,omitempty"`
}

type Snippet struct {
	Requirement    string `json:"requirement,omitempty"`
	Responsibility string `json:"responsibility,omitempty"`
}

type Vacancy struct {
	ID           string        `json:"id,omitempty"`
	Name         string        `json:"name,omitempty"`
	Area         NamedEntity   `json:"area,omitempty"`
	Salary       *Salary       `json:"salary,omitempty"`
	Experience   NamedEntity   `json:"experience,omitempty"`
	Schedule     NamedEntity   `json:"schedule,omitempty"`
	Employment   NamedEntity   `json:"employment,omitempty"`
	Employer     Employer      `json:"employer,omitempty"`
	AlternateURL string        `json:"alternate_url,omitempty"`
	Description  string        `json:"description,omitempty"`
	KeySkills    []KeySkill    `json:"key_skills,omitempty"`
	Snippet      Snippet       `json:"snippet,omitempty"`
	Roles        []NamedEntity `json:"professional_roles,omitempty"`
	Archived     bool          `json:"archived,omitempty"`
	PublishedAt  string        `json:"published_at,omitempty"`
}

// GetVacancy fetches a single vacancy with its full description.
func (c *Client) GetVacancy(ctx context.Context, id string) (*Vacancy, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("vacancy id is required")
	}

	var vacancy Vacancy
	if err := c.getJSON(ctx, fmt.Sprintf("%s%s/%s", c.APIURL, SearchPath, id), nil, &vacancy); err != nil {
		return nil, fmt.Errorf("get vacancy %s: %w", id, err)
	}

	return &vacancy, nil
}

// Text renders the vacancy as a plain-text job description: the title,
// the description without markup and the key skills. Search results have
// no description, so their snippet is used instead.
func (va *Vacancy) Text() (string, error) {
	var parts []string

	if name := strings.TrimSpace(va.Name); name != "" {
		parts = append(parts, name)
	}
	if va.Experience.Name != "" {
		parts = append(parts, fmt.Sprintf("Experience: %s", va.Experience.Name))
	}

	description, err := htmlToText(va.Description)
	if err != nil {
		return "", fmt.Errorf("vacancy %s description: %w", va.ID, err)
	}
	if description == "" {
		description, err = va.snippetText()
		if err != nil {
			return "", err
		}
	}
	if description != "" {
		parts = append(parts, description)
	}

	if skills := va.SkillNames(); len(skills) > 0 {
		parts = append(parts, fmt.Sprintf("Key skills: %s", strings.Join(skills, ", ")))
	}

	return strings.Join(parts, "\n\n"), nil
}

func (va *Vacancy) snippetText() (string, error) {
	var lines []string
	for _, fragment := range []string{va.Snippet.Responsibility, va.Snippet.Requirement} {
		text, err := htmlToText(fragment)
		if err != nil {
			return "", fmt.Errorf("vacancy %s snippet: %w", va.ID, err)
		}
		if text != "" {
			lines = append(lines, text)
		}
	}

	return strings.Join(lines, "\n"), nil
}

func (va *Vacancy) SkillNames() []string {
	names := make([]string, 0, len(va.KeySkills))
	for _, skill := range va.KeySkills {
		if name := strings.TrimSpace(skill.Name); name != "" {
			names = append(names, name)
		}
	}

	return names
}

// Title is a one-line label used in ranking output.
func (va *Vacancy) Title() string {
	if va.Employer.Name == "" {
		return fmt.Sprintf("%s (%s)", va.Name, va.ID)
	}

	return fmt.Sprintf("%s at %s (%s)", va.Name, va.Employer.Name, va.ID)
}

func (v *Vacancies) Len() int {
	return len(v.Items)
}

func (v *Vacancies) IDs() []string {
	ids := make([]string, 0, len(v.Items))
	for _, vacancy := range v.Items {
		ids = append(ids, vacancy.ID)
	}
	return ids
}

// ExcludeArchived drops archived vacancies, preserving order, and returns
// the ids that were removed.
func (v *Vacancies) ExcludeArchived() []string {
	var excluded []string
	kept := v.Items[:0]
	for _, vacancy := range v.Items {
		if vacancy.Archived {
			excluded = append(excluded, vacancy.ID)
			continue
		}
		kept = append(kept, vacancy)
	}
	v.Items = kept

	return excluded
}
