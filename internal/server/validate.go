package server

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	minAnalyzeTextLength = 20
	minFileJDLength      = 10
)

var errEmptyBody = errors.New("request body must be a JSON object")

type AnalyzeRequest struct {
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

type ParseRequest struct {
	ResumeText string `json:"resume_text" validate:"required,trimmin=1"`
}

func newValidator() (*validator.Validate, error) {
	v := validator.New()
	if err := v.RegisterValidation("trimmin", trimMin); err != nil {
		return nil, fmt.Errorf("register trimmin validation: %w", err)
	}
	return v, nil
}

// trimMin checks the rune length of the trimmed string against the tag param.
func trimMin(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= limit
}

// checkText enforces the length bounds of one text field.
func (s *Server) checkText(field, value string, minLen int) error {
	if err := s.validate.Var(value, fmt.Sprintf("trimmin=%d", minLen)); err != nil {
		return fmt.Errorf("%s must be at least %d characters long", field, minLen)
	}
	if err := s.validate.Var(value, fmt.Sprintf("max=%d", s.cfg.MaxTextLength)); err != nil {
		return fmt.Errorf("%s too long (max %d characters)", field, s.cfg.MaxTextLength)
	}
	return nil
}

// describe turns validator errors into a single client-facing message.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed on %s", jsonName(fe.Field()), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}

func jsonName(field string) string {
	switch field {
	case "ResumeText":
		return "resume_text"
	case "JobDescription":
		return "job_description"
	default:
		return field
	}
}
