package server

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/resume-fit/internal/matcher"
	"github.com/spigell/resume-fit/internal/schema"
	"github.com/spigell/resume-fit/internal/skills"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

type healthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	ModelLoaded bool   `json:"model_loaded"`
}

type skillCategory struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

type skillsResponse struct {
	TaxonomyVersion string          `json:"taxonomy_version"`
	AvailableSkills []skillCategory `json:"available_skills"`
}

func (s *Server) health(c *gin.Context) {
	loaded := s.model != nil && s.model.Loaded()
	c.JSON(http.StatusOK, healthResponse{
		Status:      "healthy",
		Version:     s.version,
		ModelLoaded: loaded,
	})
}

func (s *Server) listSkills(c *gin.Context) {
	categories := skills.Categories()
	out := make([]skillCategory, 0, len(categories))
	for _, name := range categories {
		out = append(out, skillCategory{Category: name, Skills: skills.Tokens(name)})
	}

	c.JSON(http.StatusOK, skillsResponse{
		TaxonomyVersion: skills.TaxonomyVersion,
		AvailableSkills: out,
	})
}

func (s *Server) analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, fmt.Errorf("%w: %v", errEmptyBody, err))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.badRequest(c, errors.New(describe(err)))
		return
	}
	if err := s.checkText("resume_text", req.ResumeText, minAnalyzeTextLength); err != nil {
		s.badRequest(c, err)
		return
	}
	if err := s.checkText("job_description", req.JobDescription, minAnalyzeTextLength); err != nil {
		s.badRequest(c, err)
		return
	}

	resume := strings.TrimSpace(req.ResumeText)
	jd := strings.TrimSpace(req.JobDescription)

	requestLogger(c, s.logger).Info("analyzing resume",
		zap.Int("resume_chars", len(resume)),
		zap.Int("jd_chars", len(jd)),
	)

	s.respond(c, s.analyzer.Analyze(c.Request.Context(), resume, jd))
}

func (s *Server) analyzeFile(c *gin.Context) {
	jd := c.PostForm("job_description")
	if err := s.checkText("job_description", jd, minFileJDLength); err != nil {
		s.badRequest(c, err)
		return
	}

	header, err := c.FormFile("resume_file")
	if err != nil {
		s.badRequest(c, errors.New("resume_file is required"))
		return
	}

	mediaType, _, err := mime.ParseMediaType(header.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}
	switch mediaType {
	case "text/plain":
	case "application/pdf", "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		s.badRequest(c, errors.New("PDF/DOCX parsing is not supported, please upload a text file"))
		return
	default:
		s.badRequest(c, errors.New("unsupported file type, allowed: TXT"))
		return
	}

	maxBytes := int64(s.cfg.MaxTextLength) * utf8.UTFMax
	if header.Size > maxBytes {
		s.badRequest(c, fmt.Errorf("resume_file too large (max %d characters)", s.cfg.MaxTextLength))
		return
	}

	f, err := header.Open()
	if err != nil {
		s.serverError(c, fmt.Errorf("open upload: %w", err), "File processing failed")
		return
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxBytes))
	if err != nil {
		s.serverError(c, fmt.Errorf("read upload: %w", err), "File processing failed")
		return
	}
	if !utf8.Valid(raw) {
		s.badRequest(c, errors.New("invalid text encoding"))
		return
	}

	resume := strings.TrimSpace(string(raw))
	if err := s.checkText("resume_file", resume, 1); err != nil {
		s.badRequest(c, err)
		return
	}

	requestLogger(c, s.logger).Info("analyzing uploaded resume",
		zap.String("filename", header.Filename),
		zap.Int("resume_chars", len(resume)),
	)

	s.respond(c, s.analyzer.Analyze(c.Request.Context(), resume, strings.TrimSpace(jd)))
}

func (s *Server) parse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, fmt.Errorf("%w: %v", errEmptyBody, err))
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.badRequest(c, errors.New(describe(err)))
		return
	}
	if err := s.checkText("resume_text", req.ResumeText, 1); err != nil {
		s.badRequest(c, err)
		return
	}

	c.JSON(http.StatusOK, s.parser.Parse(req.ResumeText))
}

func (s *Server) respond(c *gin.Context, res *matcher.Result) {
	if s.cfg.ValidateResponses {
		if err := schema.ValidateResult(res); err != nil {
			s.serverError(c, fmt.Errorf("result does not match schema: %w", err), "Internal server error during analysis")
			return
		}
	}

	requestLogger(c, s.logger).Info("analysis complete",
		zap.String("outcome", string(res.Outcome)),
		zap.Float64("overall", res.OverallScore),
	)

	c.JSON(http.StatusOK, res)
}

func (s *Server) badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Detail: err.Error()})
}

func (s *Server) serverError(c *gin.Context, err error, detail string) {
	_ = c.Error(err)
	requestLogger(c, s.logger).Error(detail, zap.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Detail: detail})
}
