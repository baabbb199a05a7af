package headhunter

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL       = "https://api.hh.ru"
	mineResumeID = "mine"
	userAgent    = "spigell/resume-fit (spigelly@gmail.com)"
	// Max value for search per page.
	perPage = "100"
)

type Config struct {
	Token     string
	UserAgent string
	APIURL    string
	Timeout   time.Duration
}

type Client struct {
	token      string
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// New returns a client for the public hh.ru API. The token is optional:
// vacancies are public, resumes are not.
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		token:     cfg.Token,
		APIURL:    apiURL,
		UserAgent: userAgent,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}

	if cfg.APIURL != "" {
		c.APIURL = cfg.APIURL
	}
	if cfg.UserAgent != "" {
		c.UserAgent = cfg.UserAgent
	}
	if cfg.Timeout > 0 {
		c.HTTPClient.Timeout = cfg.Timeout
	}

	return c
}

func (c *Client) HasToken() bool {
	return c.token != ""
}
